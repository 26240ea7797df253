package app

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ribbanya/pinyin-beginners-anki-deck/internal/compiler"
	"github.com/ribbanya/pinyin-beginners-anki-deck/internal/dataset"
	"github.com/ribbanya/pinyin-beginners-anki-deck/internal/glossary"
)

func writeTables(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	syllables := compiler.NewSyllables()
	syllables.Add("ba", compiler.Syllable{
		Parts:     [2]string{"b", "a"},
		Zhuyin:    "ㄅㄚ",
		IPA:       []string{"p", "a"},
		Yale:      "ba",
		WadeGiles: "pa",
		URL:       "https://example.com/ba",
	})
	syllables.Add("bo", compiler.Syllable{IPA: []string{"p", "w", "o"}})

	g := glossary.New()
	g.Set("p", glossary.Entry{Name: "voiceless bilabial plosive consonant", URL: "https://en.wikipedia.org/wiki/p", Extract: "plosive"})
	g.Set("a", glossary.Entry{Name: "open front unrounded vowel", URL: "https://en.wikipedia.org/wiki/a", Extract: "vowel"})

	require.NoError(t, dataset.Write(dir, dataset.Syllables, syllables, false))
	require.NoError(t, dataset.Write(dir, dataset.IPA, g, true))
	return dir
}

func TestShow_JSON(t *testing.T) {
	dir := writeTables(t)
	var buf bytes.Buffer

	require.NoError(t, Show(&buf, dir, "ba", OutputJSON))

	var info SyllableInfo
	require.NoError(t, json.Unmarshal(buf.Bytes(), &info))
	assert.Equal(t, "ba", info.Pinyin)
	assert.Equal(t, "ㄅㄚ", info.Syllable.Zhuyin)
	require.Len(t, info.Symbols, 2)
	assert.Equal(t, "p", info.Symbols[0].Symbol)
	assert.Equal(t, "plosive", info.Symbols[0].Extract)
	assert.Contains(t, buf.String(), `"name": "open front unrounded vowel"`, "entry fields are inlined")
}

func TestShow_Text(t *testing.T) {
	dir := writeTables(t)
	var buf bytes.Buffer

	require.NoError(t, Show(&buf, dir, "ba", OutputText))
	assert.Equal(t, "ba\tㄅㄚ\tyale ba\twade-giles pa\t[pa]\n"+
		"  initial b, final a\n"+
		"  audio https://example.com/ba\n"+
		"  p\tvoiceless bilabial plosive consonant\thttps://en.wikipedia.org/wiki/p\n"+
		"  a\topen front unrounded vowel\thttps://en.wikipedia.org/wiki/a\n",
		buf.String())
}

func TestShow_Errors(t *testing.T) {
	dir := writeTables(t)

	err := Show(&bytes.Buffer{}, dir, "zz", OutputJSON)
	require.ErrorIs(t, err, ErrUnknownSyllable)

	err = Show(&bytes.Buffer{}, dir, "bo", OutputJSON)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `symbol "w"`)

	err = Show(&bytes.Buffer{}, dir, "ba", "yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid output mode")

	err = Show(&bytes.Buffer{}, t.TempDir(), "ba", OutputText)
	require.Error(t, err)
}
