// Package app wires configuration, the HTTP cache and the compiler into
// the operations of the pinyinchart command.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ribbanya/pinyin-beginners-anki-deck/internal/compiler"
	"github.com/ribbanya/pinyin-beginners-anki-deck/internal/config"
	"github.com/ribbanya/pinyin-beginners-anki-deck/internal/dataset"
	"github.com/ribbanya/pinyin-beginners-anki-deck/internal/glossary"
	"github.com/ribbanya/pinyin-beginners-anki-deck/internal/httpcache"
	"github.com/ribbanya/pinyin-beginners-anki-deck/internal/scrape"
	"github.com/ribbanya/pinyin-beginners-anki-deck/internal/secrets"
	"github.com/ribbanya/pinyin-beginners-anki-deck/internal/wikiapi"
)

// session holds the cached HTTP stack of one run.
type session struct {
	cache   *httpcache.Cache
	fetcher *scrape.Fetcher
	wiki    *wikiapi.Client
}

// openSession loads the secret and opens the encrypted cache.
func openSession(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*session, error) {
	sec, err := secrets.Load(cfg.Paths.Secrets)
	if err != nil {
		return nil, err
	}

	cache, err := httpcache.Open(ctx, cfg.Paths.Cache, sec.HTTPCache, logger)
	if err != nil {
		return nil, err
	}

	client := cache.Client(nil)
	client.Timeout = cfg.HTTP.Timeout

	fetcher := scrape.NewFetcher(client, cfg.HTTP.UserAgent, logger)
	return &session{
		cache:   cache,
		fetcher: fetcher,
		wiki:    wikiapi.New(fetcher, cfg.Sources.WikiAPIURL, logger),
	}, nil
}

func (s *session) Close() error {
	return s.cache.Close()
}

// Compile scrapes every source and writes syllables.json and ipa.json to
// the output directory. Nothing is written unless every step succeeds.
func Compile(ctx context.Context, cfg *config.Config, logger *slog.Logger) (err error) {
	logger.InfoContext(ctx, "starting compilation",
		slog.String("chart", cfg.Sources.ChartURL),
		slog.String("output", cfg.Paths.Output),
	)

	s, err := openSession(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, s.Close())
	}()

	c := compiler.New(s.fetcher, glossary.NewResolver(s.wiki, logger), compiler.Options{
		ChartURL: cfg.Sources.ChartURL,
		YaleURL:  cfg.Sources.YaleURL,
	}, logger)

	res, err := c.Run(ctx)
	if err != nil {
		return err
	}

	if err := dataset.WriteAll(cfg.Paths.Output,
		dataset.Table{Name: dataset.Syllables, Value: res.Syllables},
		dataset.Table{Name: dataset.IPA, Value: res.Glossary, SortKeys: true},
	); err != nil {
		return err
	}

	if n, err := s.cache.Len(ctx); err == nil {
		logger.DebugContext(ctx, "cache size", slog.Int("entries", n))
	}
	logger.InfoContext(ctx, "wrote tables",
		slog.String("syllables", dataset.Path(cfg.Paths.Output, dataset.Syllables)),
		slog.String("ipa", dataset.Path(cfg.Paths.Output, dataset.IPA)),
	)
	return nil
}

// Section returns the rendered HTML of one Wikipedia section, through the
// same cache as a compilation.
func Section(ctx context.Context, cfg *config.Config, logger *slog.Logger, pageID int64, section int) (html string, err error) {
	s, err := openSession(ctx, cfg, logger)
	if err != nil {
		return "", err
	}
	defer func() {
		err = errors.Join(err, s.Close())
	}()

	html, err = s.wiki.SectionHTML(ctx, pageID, section)
	if err != nil {
		return "", fmt.Errorf("section: %w", err)
	}
	return html, nil
}
