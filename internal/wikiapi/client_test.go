package wikiapi

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGetter struct {
	body   string
	err    error
	params url.Values
	url    string
}

func (f *fakeGetter) Get(_ context.Context, rawURL string, params url.Values) ([]byte, error) {
	f.url, f.params = rawURL, params
	return []byte(f.body), f.err
}

func newClient(g Getter) *Client {
	return New(g, "https://en.wikipedia.org/w/api.php", slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestIntro(t *testing.T) {
	g := &fakeGetter{body: `{
		"batchcomplete": "",
		"query": {
			"redirects": [{"from": "p (IPA)", "to": "Voiceless bilabial plosive"}],
			"pages": {
				"160985": {
					"pageid": 160985,
					"ns": 0,
					"title": "Voiceless bilabial plosive",
					"extract": "The voiceless bilabial plosive is a type of consonantal sound."
				}
			}
		}
	}`}

	page, err := newClient(g).Intro(context.Background(), "p (IPA)")
	require.NoError(t, err)

	assert.Equal(t, int64(160985), page.ID)
	assert.Equal(t, "Voiceless bilabial plosive", page.Title)
	assert.Equal(t, "The voiceless bilabial plosive is a type of consonantal sound.", page.Extract)

	assert.Equal(t, "https://en.wikipedia.org/w/api.php", g.url)
	assert.Equal(t, "query", g.params.Get("action"))
	assert.Equal(t, "json", g.params.Get("format"))
	assert.Equal(t, "p (IPA)", g.params.Get("titles"))
	assert.Equal(t, "extracts", g.params.Get("prop"))
	assert.Equal(t, "1", g.params.Get("exintro"))
	assert.Equal(t, "1", g.params.Get("explaintext"))
	assert.Equal(t, "1", g.params.Get("redirects"))
}

func TestIntro_Failures(t *testing.T) {
	tests := []struct {
		name string
		body string
		want error
	}{
		{
			name: "missing article",
			body: `{"query": {"pages": {"-1": {"ns": 0, "title": "Q (IPA)", "missing": ""}}}}`,
			want: ErrNotFound,
		},
		{
			name: "two pages",
			body: `{"query": {"pages": {"1": {"title": "A"}, "2": {"title": "B"}}}}`,
			want: ErrAmbiguous,
		},
		{
			name: "no pages",
			body: `{"query": {"pages": {}}}`,
			want: ErrAmbiguous,
		},
		{
			name: "no query",
			body: `{"batchcomplete": ""}`,
			want: ErrAmbiguous,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newClient(&fakeGetter{body: tt.body}).Intro(context.Background(), "x")
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestIntro_TransportError(t *testing.T) {
	boom := errors.New("boom")
	_, err := newClient(&fakeGetter{err: boom}).Intro(context.Background(), "x")
	require.ErrorIs(t, err, boom)
}

func TestIntro_InvalidJSON(t *testing.T) {
	_, err := newClient(&fakeGetter{body: "<html>"}).Intro(context.Background(), "x")
	require.Error(t, err)
}

func TestSectionHTML(t *testing.T) {
	g := &fakeGetter{body: `{"parse": {"title": "Standard Chinese phonology", "pageid": 21727674, "text": {"*": "<div>Syllabic consonants</div>"}}}`}

	html, err := newClient(g).SectionHTML(context.Background(), 21727674, 6)
	require.NoError(t, err)

	assert.Equal(t, "<div>Syllabic consonants</div>", html)
	assert.Equal(t, "parse", g.params.Get("action"))
	assert.Equal(t, "21727674", g.params.Get("pageid"))
	assert.Equal(t, "6", g.params.Get("section"))
	assert.Equal(t, "text", g.params.Get("prop"))
}

func TestSectionHTML_APIError(t *testing.T) {
	g := &fakeGetter{body: `{"error": {"code": "nosuchsection", "info": "There is no section 99."}}`}

	_, err := newClient(g).SectionHTML(context.Background(), 21727674, 99)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "There is no section 99.")
}

func TestArticleURL(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"Voiceless bilabial plosive", "https://en.wikipedia.org/wiki/Voiceless_bilabial_plosive"},
		{"Open front unrounded vowel", "https://en.wikipedia.org/wiki/Open_front_unrounded_vowel"},
		{"Voiceless alveolo-palatal affricate", "https://en.wikipedia.org/wiki/Voiceless_alveolo-palatal_affricate"},
		{"Semivowel", "https://en.wikipedia.org/wiki/Semivowel"},
		{"Aspirated consonant", "https://en.wikipedia.org/wiki/Aspirated_consonant"},
		{"ɕ", "https://en.wikipedia.org/wiki/%C9%95"},
		{"A/B (x)", "https://en.wikipedia.org/wiki/A/B_%28x%29"},
		{"Rock & roll: 1+1", "https://en.wikipedia.org/wiki/Rock_%26_roll%3A_1%2B1"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ArticleURL(tt.title), tt.title)
	}
}
