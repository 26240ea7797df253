// Package glossary collects the description of every IPA symbol used by the
// chart, keyed by canonical symbol.
package glossary

import (
	"bytes"
	"encoding/json"

	"github.com/ribbanya/pinyin-beginners-anki-deck/internal/ipachar"
)

// Entry describes one IPA symbol.
type Entry struct {
	Name    string `json:"name"`
	URL     string `json:"url"`
	Extract string `json:"extract"`
}

// sinologicalExtracts describe the syllabic continuants, which have no
// article of their own.
var sinologicalExtracts = map[string]string{
	"ɿ": "Syllabic continuant of Standard Chinese heard after the dental sibilant initials z, c and s, as in zi, ci and si.",
	"ʅ": "Syllabic continuant of Standard Chinese heard after the retroflex initials zh, ch, sh and r, as in zhi, chi, shi and ri.",
}

// Glossary maps symbols to entries in insertion order. The first entry set
// for a symbol is kept.
type Glossary struct {
	keys    []string
	entries map[string]Entry
}

// New returns an empty glossary.
func New() *Glossary {
	return &Glossary{entries: make(map[string]Entry)}
}

// Seeded returns a glossary holding the Sinological extensions.
func Seeded() *Glossary {
	g := New()
	for _, sym := range ipachar.SinologicalExtensions {
		g.Set(sym.Key, Entry{
			Name:    sym.Name,
			URL:     ipachar.SinologicalURL,
			Extract: sinologicalExtracts[sym.Key],
		})
	}
	return g
}

// Has reports whether key has an entry.
func (g *Glossary) Has(key string) bool {
	_, ok := g.entries[key]
	return ok
}

// Get returns the entry for key.
func (g *Glossary) Get(key string) (Entry, bool) {
	e, ok := g.entries[key]
	return e, ok
}

// Set stores e under key unless key already has an entry. It reports
// whether e was stored.
func (g *Glossary) Set(key string, e Entry) bool {
	if g.Has(key) {
		return false
	}
	g.keys = append(g.keys, key)
	g.entries[key] = e
	return true
}

// Keys returns the symbols in insertion order.
func (g *Glossary) Keys() []string {
	return append([]string(nil), g.keys...)
}

// Len returns the number of entries.
func (g *Glossary) Len() int {
	return len(g.keys)
}

// MarshalJSON encodes the glossary as an object in insertion order.
func (g *Glossary) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range g.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(g.entries[key])
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
