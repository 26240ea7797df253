package glossary

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ribbanya/pinyin-beginners-anki-deck/internal/ipachar"
	"github.com/ribbanya/pinyin-beginners-anki-deck/internal/wikiapi"
)

// ErrLookup reports a symbol whose article could not be resolved.
var ErrLookup = errors.New("glossary lookup failed")

// TitleOverrides name the article for symbols whose "<symbol> (IPA)" page
// does not exist.
var TitleOverrides = map[string]string{
	"\u032f":   "Semivowel",
	"ʰ":        "ʰ",
	"t\u0361ɕ": "t\u0361ɕ",
	"ɕ":        "ɕ",
}

// Lookup fetches the introduction of an article.
type Lookup interface {
	Intro(ctx context.Context, title string) (wikiapi.Page, error)
}

// Resolver fills a glossary from Wikipedia.
type Resolver struct {
	lookup Lookup
	log    *slog.Logger
}

// NewResolver creates a Resolver backed by lookup.
func NewResolver(lookup Lookup, logger *slog.Logger) *Resolver {
	return &Resolver{
		lookup: lookup,
		log:    logger.With("component", "glossary"),
	}
}

// Title returns the article title queried for key.
func Title(key string) string {
	if t, ok := TitleOverrides[key]; ok {
		return t
	}
	return key + " (IPA)"
}

// Resolve adds an entry to g for every symbol it does not hold yet, in
// order. Lookups stop at the first failure.
func (r *Resolver) Resolve(ctx context.Context, g *Glossary, symbols []ipachar.Symbol) error {
	for _, sym := range symbols {
		if g.Has(sym.Key) {
			continue
		}
		title := Title(sym.Key)
		page, err := r.lookup.Intro(ctx, title)
		if err != nil {
			return fmt.Errorf("%w: symbol %q (title %q): %w", ErrLookup, sym.Key, title, err)
		}
		g.Set(sym.Key, Entry{
			Name:    sym.Name,
			URL:     wikiapi.ArticleURL(page.Title),
			Extract: page.Extract,
		})
		r.log.InfoContext(ctx, "resolved symbol",
			slog.String("symbol", sym.Key),
			slog.String("article", page.Title),
		)
	}
	return nil
}
