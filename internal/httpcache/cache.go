// Package httpcache is a persistent, encrypted response cache for GET
// requests, stored in a local SQLite file.
//
// Entries are sealed with XChaCha20-Poly1305 under a key derived from a
// user secret, so the cache file can sit next to the sources without
// exposing responses to anyone lacking the secret. An entry that does not
// open under the current secret is treated as a miss.
package httpcache

import (
	"context"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"database/sql"
	"embed"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/pressly/goose/v3"
	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/hkdf"
	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrations embed.FS

const (
	table    = "responses"
	hkdfInfo = "pinyinchart http cache v1"
)

// Entry is one cached response.
type Entry struct {
	Status int         `json:"status"`
	Header http.Header `json:"header"`
	Body   []byte      `json:"body"`
}

// Cache stores sealed entries keyed by request.
type Cache struct {
	db   *sql.DB
	aead cipher.AEAD
	log  *slog.Logger
}

// Open opens (creating if needed) the cache file at path and applies the
// schema migrations.
func Open(ctx context.Context, path, secret string, logger *slog.Logger) (*Cache, error) {
	if secret == "" {
		return nil, errors.New("httpcache: empty secret")
	}

	aead, err := newAEAD(secret)
	if err != nil {
		return nil, fmt.Errorf("httpcache: derive key: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("httpcache: open %s: %w", path, err)
	}
	db.SetMaxOpenConns(1)

	if err := migrate(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("httpcache: migrate %s: %w", path, err)
	}

	return &Cache{
		db:   db,
		aead: aead,
		log:  logger.With("adapter", "httpcache"),
	}, nil
}

func migrate(ctx context.Context, db *sql.DB) error {
	fsys, err := fs.Sub(migrations, "migrations")
	if err != nil {
		return err
	}
	provider, err := goose.NewProvider(goose.DialectSQLite3, db, fsys)
	if err != nil {
		return fmt.Errorf("goose new provider: %w", err)
	}
	if _, err := provider.Up(ctx); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}
	return nil
}

func newAEAD(secret string) (cipher.AEAD, error) {
	key := make([]byte, chacha20poly1305.KeySize)
	if _, err := io.ReadFull(hkdf.New(sha256.New, []byte(secret), nil, []byte(hkdfInfo)), key); err != nil {
		return nil, err
	}
	return chacha20poly1305.NewX(key)
}

// Close releases the database handle.
func (c *Cache) Close() error {
	return c.db.Close()
}

// Key returns the cache key of req: method plus URL with its query
// parameters in sorted order.
func Key(req *http.Request) string {
	u := *req.URL
	u.Fragment = ""
	u.RawQuery = sortedQuery(u.RawQuery)

	sum := sha256.Sum256([]byte(req.Method + " " + u.String()))
	return hex.EncodeToString(sum[:])
}

func sortedQuery(raw string) string {
	if raw == "" {
		return ""
	}
	q, err := url.ParseQuery(raw)
	if err != nil {
		return raw
	}
	return q.Encode()
}

// Get returns the entry stored under key. ok is false on a miss, including
// entries sealed under another secret.
func (c *Cache) Get(ctx context.Context, key string) (entry *Entry, ok bool, err error) {
	query, args, err := sq.Select("payload").From(table).Where(sq.Eq{"key": key}).ToSql()
	if err != nil {
		return nil, false, fmt.Errorf("httpcache: build select: %w", err)
	}

	var sealed []byte
	if err := c.db.QueryRowContext(ctx, query, args...).Scan(&sealed); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("httpcache: select: %w", err)
	}

	plain, err := c.open(key, sealed)
	if err != nil {
		c.log.WarnContext(ctx, "discarding unreadable cache entry", slog.String("key", key), slog.String("error", err.Error()))
		return nil, false, nil
	}

	var e Entry
	if err := json.Unmarshal(plain, &e); err != nil {
		c.log.WarnContext(ctx, "discarding undecodable cache entry", slog.String("key", key), slog.String("error", err.Error()))
		return nil, false, nil
	}
	return &e, true, nil
}

// Put stores entry under key, replacing any previous value.
func (c *Cache) Put(ctx context.Context, key, rawURL string, entry *Entry) error {
	plain, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("httpcache: encode entry: %w", err)
	}
	sealed, err := c.seal(key, plain)
	if err != nil {
		return fmt.Errorf("httpcache: seal entry: %w", err)
	}

	query, args, err := sq.Replace(table).
		Columns("key", "url", "payload", "created_at").
		Values(key, rawURL, sealed, time.Now().UTC().Format(time.RFC3339)).
		ToSql()
	if err != nil {
		return fmt.Errorf("httpcache: build replace: %w", err)
	}
	if _, err := c.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("httpcache: replace: %w", err)
	}
	return nil
}

// Len returns the number of stored entries.
func (c *Cache) Len(ctx context.Context) (int, error) {
	query, args, err := sq.Select("COUNT(*)").From(table).ToSql()
	if err != nil {
		return 0, fmt.Errorf("httpcache: build count: %w", err)
	}
	var n int
	if err := c.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("httpcache: count: %w", err)
	}
	return n, nil
}

// seal encrypts plain, binding it to key. The nonce is prepended.
func (c *Cache) seal(key string, plain []byte) ([]byte, error) {
	nonce := make([]byte, c.aead.NonceSize(), c.aead.NonceSize()+len(plain)+c.aead.Overhead())
	if _, err := rand.Read(nonce); err != nil {
		return nil, err
	}
	return c.aead.Seal(nonce, nonce, plain, []byte(key)), nil
}

func (c *Cache) open(key string, sealed []byte) ([]byte, error) {
	n := c.aead.NonceSize()
	if len(sealed) < n {
		return nil, errors.New("sealed entry too short")
	}
	return c.aead.Open(nil, sealed[:n], sealed[n:], []byte(key))
}
