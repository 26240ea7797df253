package compiler

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ribbanya/pinyin-beginners-anki-deck/internal/chart"
	"github.com/ribbanya/pinyin-beginners-anki-deck/internal/glossary"
	"github.com/ribbanya/pinyin-beginners-anki-deck/internal/ipachar"
	"github.com/ribbanya/pinyin-beginners-anki-deck/internal/scrape"
	"github.com/ribbanya/pinyin-beginners-anki-deck/internal/wikiapi"
	"github.com/ribbanya/pinyin-beginners-anki-deck/internal/yale"
)

var _ Source = (*scrape.Fetcher)(nil)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// titles records the titles queried from the fake API.
type titles struct {
	mu   sync.Mutex
	list []string
}

func (ts *titles) add(title string) {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	ts.list = append(ts.list, title)
}

func (ts *titles) get() []string {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	return append([]string(nil), ts.list...)
}

// wikiHandler answers every title query with a page named after the title.
func wikiHandler(queried *titles) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		title := r.URL.Query().Get("titles")
		queried.add(title)
		body, _ := json.Marshal(map[string]any{
			"query": map[string]any{
				"pages": map[string]any{
					"42": map[string]any{
						"pageid":  42,
						"title":   "Article " + title,
						"extract": "About " + title + ".",
					},
				},
			},
		})
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(body)
	}
}

func fixtureServer(t *testing.T, queried *titles) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/chart", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "testdata/pinyin_chart.html")
	})
	mux.HandleFunc("/yale", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "testdata/yale_basic.html")
	})
	mux.HandleFunc("/w/api.php", wikiHandler(queried))
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newCompiler(srv *httptest.Server) *Compiler {
	logger := discardLogger()
	fetcher := scrape.NewFetcher(srv.Client(), "test", logger)
	wiki := wikiapi.New(fetcher, srv.URL+"/w/api.php", logger)
	return New(fetcher, glossary.NewResolver(wiki, logger), Options{
		ChartURL: srv.URL + "/chart",
		YaleURL:  srv.URL + "/yale",
	}, logger)
}

func TestRun(t *testing.T) {
	var queried titles
	srv := fixtureServer(t, &queried)

	res, err := newCompiler(srv).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"ba", "bo", "bi", "zha", "zhi", "a", "o"}, res.Syllables.Keys())

	ba, ok := res.Syllables.Get("ba")
	require.True(t, ok)
	assert.Equal(t, Syllable{
		Parts:     [2]string{"b", "a"},
		Zhuyin:    "ㄅㄚ",
		IPA:       []string{"p", "a"},
		Yale:      "ba",
		WadeGiles: "pa",
		URL:       "https://resources.allsetlearning.com/chinese/pronunciation/ba",
	}, ba)

	zhi, _ := res.Syllables.Get("zhi")
	assert.Equal(t, []string{"ʈ\u0361ʂ", "ʅ"}, zhi.IPA, "extension is appended last")
	assert.Equal(t, "jr", zhi.Yale)

	o, _ := res.Syllables.Get("o")
	assert.Equal(t, "o", o.Yale, "override wins over the table")

	assert.Equal(t, []string{"p (IPA)", "a (IPA)", "w (IPA)", "o (IPA)", "i (IPA)", "ʈ\u0361ʂ (IPA)"}, queried.get(),
		"each symbol is looked up once in first-seen order")
	assert.Equal(t, []string{"ɿ", "ʅ", "p", "a", "w", "o", "i", "ʈ\u0361ʂ"}, res.Glossary.Keys())

	p, _ := res.Glossary.Get("p")
	assert.Equal(t, glossary.Entry{
		Name:    "voiceless bilabial plosive consonant",
		URL:     "https://en.wikipedia.org/wiki/Article_p_%28IPA%29",
		Extract: "About p (IPA).",
	}, p)

	ext, _ := res.Glossary.Get("ʅ")
	assert.Equal(t, ipachar.SinologicalURL, ext.URL)
}

func TestRun_EveryKeyIsKnown(t *testing.T) {
	var queried titles
	res, err := newCompiler(fixtureServer(t, &queried)).Run(context.Background())
	require.NoError(t, err)

	for _, pinyin := range res.Syllables.Keys() {
		syl, _ := res.Syllables.Get(pinyin)
		for _, key := range syl.IPA {
			assert.True(t, res.Glossary.Has(key), "%s: %q", pinyin, key)
		}
	}
}

func TestRun_Deterministic(t *testing.T) {
	var queried titles
	srv := fixtureServer(t, &queried)

	encode := func() []byte {
		res, err := newCompiler(srv).Run(context.Background())
		require.NoError(t, err)
		b, err := json.Marshal(res.Syllables)
		require.NoError(t, err)
		g, err := json.Marshal(res.Glossary)
		require.NoError(t, err)
		return append(b, g...)
	}
	assert.Equal(t, encode(), encode())
}

func TestRun_SourceError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	t.Cleanup(srv.Close)

	_, err := newCompiler(srv).Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "yale table")
}

func buildOne(t *testing.T, cell chart.Cell, table yale.Table) (*Syllables, error) {
	t.Helper()
	var queried titles
	srv := fixtureServer(t, &queried)
	return newCompiler(srv).Build(context.Background(), []chart.Cell{cell}, table, glossary.Seeded())
}

func TestBuild_SyntheticCell(t *testing.T) {
	cell := chart.Cell{
		ID: "ba", Initial: "b", Final: "a", Pinyin: "ba",
		Zhuyin: "ㄅㄚ", WadeGiles: "pa", IPA: "[pa]",
		URL: "https://example.com/ba",
	}
	out, err := buildOne(t, cell, yale.Table{"ㄅㄚ": "ba"})
	require.NoError(t, err)

	b, err := json.Marshal(out)
	require.NoError(t, err)
	assert.JSONEq(t, `{"ba": {
		"parts": ["b", "a"],
		"zhuyin": "ㄅㄚ",
		"ipa": ["p", "a"],
		"yale": "ba",
		"wadeGiles": "pa",
		"url": "https://example.com/ba"
	}}`, string(b))
	assert.Equal(t,
		`{"ba":{"parts":["b","a"],"zhuyin":"ㄅㄚ","ipa":["p","a"],"yale":"ba","wadeGiles":"pa","url":"https://example.com/ba"}}`,
		string(b), "field order is fixed")
}

func TestBuild_InvalidIPA(t *testing.T) {
	cell := chart.Cell{ID: "ba", Pinyin: "ba", Zhuyin: "ㄅㄚ", IPA: "[pa§]"}
	_, err := buildOne(t, cell, yale.Table{"ㄅㄚ": "ba"})
	require.ErrorIs(t, err, ipachar.ErrInvalidIPA)
}

func TestBuild_MissingYale(t *testing.T) {
	cell := chart.Cell{ID: "ba", Pinyin: "ba", Zhuyin: "ㄅㄚ", IPA: "[pa]"}
	_, err := buildOne(t, cell, yale.Table{})
	require.ErrorIs(t, err, ErrNoYale)
}

func TestBuild_LookupFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"query": {"pages": {"-1": {"title": "p (IPA)", "missing": ""}}}}`)
	}))
	t.Cleanup(srv.Close)

	cell := chart.Cell{ID: "ba", Pinyin: "ba", Zhuyin: "ㄅㄚ", IPA: "[pa]"}
	_, err := newCompiler(srv).Build(context.Background(), []chart.Cell{cell}, yale.Table{"ㄅㄚ": "ba"}, glossary.New())
	require.ErrorIs(t, err, glossary.ErrLookup)
	require.ErrorIs(t, err, wikiapi.ErrNotFound)
}
