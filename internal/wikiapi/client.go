// Package wikiapi queries the MediaWiki action API of the English Wikipedia.
package wikiapi

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

// ArticleBase prefixes article URLs built by ArticleURL.
const ArticleBase = "https://en.wikipedia.org/wiki/"

var (
	// ErrAmbiguous reports a title query that did not yield exactly one page.
	ErrAmbiguous = errors.New("expected exactly one page")
	// ErrNotFound reports a title with no English Wikipedia article.
	ErrNotFound = errors.New("English Wikipedia article not found")
)

// Getter fetches an API URL with query parameters.
type Getter interface {
	Get(ctx context.Context, rawURL string, params url.Values) ([]byte, error)
}

// Client talks to one api.php endpoint.
type Client struct {
	endpoint string
	getter   Getter
	log      *slog.Logger
}

// New creates a Client for endpoint (e.g. https://en.wikipedia.org/w/api.php).
func New(getter Getter, endpoint string, logger *slog.Logger) *Client {
	return &Client{
		endpoint: endpoint,
		getter:   getter,
		log:      logger.With("adapter", "wikiapi"),
	}
}

// Page is the plain-text introduction of an article.
type Page struct {
	ID      int64
	Title   string
	Extract string
}

// Intro looks up title, following redirects, and returns the article's
// introduction as plain text.
func (c *Client) Intro(ctx context.Context, title string) (Page, error) {
	body, err := c.getter.Get(ctx, c.endpoint, url.Values{
		"action":      {"query"},
		"format":      {"json"},
		"titles":      {title},
		"prop":        {"extracts"},
		"exintro":     {"1"},
		"explaintext": {"1"},
		"redirects":   {"1"},
	})
	if err != nil {
		return Page{}, fmt.Errorf("wikiapi: query %q: %w", title, err)
	}
	if !gjson.ValidBytes(body) {
		return Page{}, fmt.Errorf("wikiapi: query %q: invalid JSON response", title)
	}

	pages := gjson.GetBytes(body, "query.pages")
	if !pages.IsObject() {
		return Page{}, fmt.Errorf("wikiapi: query %q: %w: no pages in response", title, ErrAmbiguous)
	}

	var (
		count int
		id    string
		info  gjson.Result
	)
	pages.ForEach(func(key, value gjson.Result) bool {
		count++
		id, info = key.String(), value
		return true
	})
	if count != 1 {
		return Page{}, fmt.Errorf("wikiapi: %w for %q (got %d)", ErrAmbiguous, title, count)
	}

	pageID, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return Page{}, fmt.Errorf("wikiapi: query %q: bad page id %q: %w", title, id, err)
	}
	if pageID < 0 {
		return Page{}, fmt.Errorf("wikiapi: %w for %q", ErrNotFound, title)
	}

	page := Page{
		ID:      pageID,
		Title:   info.Get("title").String(),
		Extract: info.Get("extract").String(),
	}
	c.log.DebugContext(ctx, "resolved article",
		slog.String("title", title),
		slog.String("article", page.Title),
		slog.Int64("page_id", page.ID),
	)
	return page, nil
}

// SectionHTML returns the rendered HTML of one section of the page with
// the given id.
func (c *Client) SectionHTML(ctx context.Context, pageID int64, section int) (string, error) {
	body, err := c.getter.Get(ctx, c.endpoint, url.Values{
		"format":             {"json"},
		"action":             {"parse"},
		"pageid":             {strconv.FormatInt(pageID, 10)},
		"section":            {strconv.Itoa(section)},
		"prop":               {"text"},
		"disabletoc":         {"1"},
		"sectionpreview":     {"1"},
		"disableeditsection": {"1"},
	})
	if err != nil {
		return "", fmt.Errorf("wikiapi: parse page %d section %d: %w", pageID, section, err)
	}

	if msg := gjson.GetBytes(body, "error.info"); msg.Exists() {
		return "", fmt.Errorf("wikiapi: parse page %d section %d: %s", pageID, section, msg.String())
	}
	text := gjson.GetBytes(body, "parse.text.\\*")
	if !text.Exists() {
		return "", fmt.Errorf("wikiapi: parse page %d section %d: no text in response", pageID, section)
	}
	return text.String(), nil
}

// ArticleURL returns the canonical article URL for title: spaces become
// underscores and everything except letters, digits and "_.-~/" is
// percent-encoded.
func ArticleURL(title string) string {
	return ArticleBase + quote(strings.ReplaceAll(title, " ", "_"))
}

func quote(s string) string {
	const hex = "0123456789ABCDEF"
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isUnreserved(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(hex[c>>4])
		b.WriteByte(hex[c&0x0f])
	}
	return b.String()
}

func isUnreserved(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	return strings.IndexByte("_.-~/", c) >= 0
}
