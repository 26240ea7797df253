// Package compiler turns the scraped chart into the syllable and IPA
// tables.
package compiler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/PuerkitoBio/goquery"

	"github.com/ribbanya/pinyin-beginners-anki-deck/internal/chart"
	"github.com/ribbanya/pinyin-beginners-anki-deck/internal/glossary"
	"github.com/ribbanya/pinyin-beginners-anki-deck/internal/ipachar"
	"github.com/ribbanya/pinyin-beginners-anki-deck/internal/yale"
)

// ErrNoYale reports a chart Zhuyin spelling missing from the Yale table.
var ErrNoYale = errors.New("no Yale spelling")

// Source fetches and parses HTML pages.
type Source interface {
	Document(ctx context.Context, rawURL string) (*goquery.Document, error)
}

// Options names the pages to scrape.
type Options struct {
	ChartURL string
	YaleURL  string
}

// Result holds both compiled tables.
type Result struct {
	Syllables *Syllables
	Glossary  *glossary.Glossary
}

// Compiler runs the scrape and build steps of a compilation.
type Compiler struct {
	source   Source
	resolver *glossary.Resolver
	inv      *ipachar.Inventory
	opts     Options
	log      *slog.Logger
}

// New creates a Compiler over the standard IPA inventory.
func New(source Source, resolver *glossary.Resolver, opts Options, logger *slog.Logger) *Compiler {
	return &Compiler{
		source:   source,
		resolver: resolver,
		inv:      ipachar.Standard(),
		opts:     opts,
		log:      logger.With("component", "compiler"),
	}
}

// Run fetches the Yale table, then the chart, and builds both tables.
func (c *Compiler) Run(ctx context.Context) (*Result, error) {
	c.log.InfoContext(ctx, "fetching yale table", slog.String("url", c.opts.YaleURL))
	yaleDoc, err := c.source.Document(ctx, c.opts.YaleURL)
	if err != nil {
		return nil, fmt.Errorf("compiler: yale table: %w", err)
	}
	table, err := yale.Parse(yaleDoc)
	if err != nil {
		return nil, fmt.Errorf("compiler: yale table: %w", err)
	}

	c.log.InfoContext(ctx, "fetching chart", slog.String("url", c.opts.ChartURL))
	chartDoc, err := c.source.Document(ctx, c.opts.ChartURL)
	if err != nil {
		return nil, fmt.Errorf("compiler: chart: %w", err)
	}
	cells, err := chart.Parse(chartDoc)
	if err != nil {
		return nil, fmt.Errorf("compiler: chart: %w", err)
	}
	c.log.InfoContext(ctx, "parsed chart", slog.Int("cells", len(cells)), slog.Int("yale", len(table)))

	g := glossary.Seeded()
	syllables, err := c.Build(ctx, cells, table, g)
	if err != nil {
		return nil, err
	}
	c.log.InfoContext(ctx, "compiled",
		slog.Int("syllables", syllables.Len()),
		slog.Int("symbols", g.Len()),
	)
	return &Result{Syllables: syllables, Glossary: g}, nil
}

// Build validates every cell, resolves its symbols into g and assembles
// the syllable table. The first failing cell aborts the build.
func (c *Compiler) Build(ctx context.Context, cells []chart.Cell, table yale.Table, g *glossary.Glossary) (*Syllables, error) {
	out := NewSyllables()
	for _, cell := range cells {
		symbols, err := c.inv.Decompose(cell.IPA)
		if err != nil {
			return nil, fmt.Errorf("compiler: cell %q: %w", cell.ID, err)
		}
		if err := c.resolver.Resolve(ctx, g, symbols); err != nil {
			return nil, fmt.Errorf("compiler: cell %q: %w", cell.ID, err)
		}

		y, ok := table.Lookup(cell.Zhuyin)
		if !ok {
			return nil, fmt.Errorf("compiler: cell %q: %w for %q", cell.ID, ErrNoYale, cell.Zhuyin)
		}

		if !out.Add(cell.Pinyin, Syllable{
			Parts:     [2]string{cell.Initial, cell.Final},
			Zhuyin:    cell.Zhuyin,
			IPA:       ipachar.Keys(symbols),
			Yale:      y,
			WadeGiles: cell.WadeGiles,
			URL:       cell.URL,
		}) {
			return nil, fmt.Errorf("compiler: %w: duplicate pinyin %q", chart.ErrStructure, cell.Pinyin)
		}
	}
	return out, nil
}
