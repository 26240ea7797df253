// Package ipachar validates IPA transcriptions and splits them into the
// atomic symbols used as glossary keys.
//
// A transcription is checked against a reference inventory of standard IPA
// symbols. Symbols outside that inventory are rejected, except for the two
// Sinological extensions used for the Mandarin syllabic consonants.
package ipachar

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"github.com/temporal-IPA/tipa/pkg/ipa"
	"golang.org/x/text/unicode/norm"
)

// ErrInvalidIPA reports a transcription carrying symbols the inventory and
// the Sinological extensions cannot account for.
var ErrInvalidIPA = errors.New("invalid IPA transcription")

// Symbol is one atomic IPA character.
type Symbol struct {
	Key  string // canonical spelling
	Name string
	Kind Kind
}

// Inventory is a set of IPA symbols indexed by every accepted spelling.
type Inventory struct {
	bySpelling map[string]Symbol
	byKey      map[string]Symbol
	runes      map[rune]struct{}
	maxRunes   int
}

// newInventory indexes the given table rows, then admits every rune of
// reference the rows do not spell as a single-rune symbol of kind
// Reference. Sinological extensions and white space are never admitted.
func newInventory(rows []entry, reference string) *Inventory {
	inv := &Inventory{
		bySpelling: make(map[string]Symbol),
		byKey:      make(map[string]Symbol, len(rows)),
		runes:      make(map[rune]struct{}),
	}
	for _, row := range rows {
		sym := Symbol{Key: row.spellings[0], Name: row.name, Kind: row.kind}
		inv.byKey[sym.Key] = sym
		for _, sp := range row.spellings {
			inv.bySpelling[sp] = sym
			if n := utf8.RuneCountInString(sp); n > inv.maxRunes {
				inv.maxRunes = n
			}
			for _, r := range sp {
				inv.runes[r] = struct{}{}
			}
		}
	}

	for _, r := range reference {
		if inv.ValidRune(r) || unicode.IsSpace(r) {
			continue
		}
		if _, ext := Sinological(r); ext {
			continue
		}
		sym := Symbol{Key: string(r), Name: fmt.Sprintf("IPA symbol %U", r), Kind: Reference}
		inv.byKey[sym.Key] = sym
		inv.bySpelling[sym.Key] = sym
		inv.runes[r] = struct{}{}
		if inv.maxRunes == 0 {
			inv.maxRunes = 1
		}
	}
	return inv
}

var (
	standardOnce sync.Once
	standard     *Inventory
)

// Standard returns the shared inventory: the symbol table completed by
// the tipa IPA character set.
func Standard() *Inventory {
	standardOnce.Do(func() {
		standard = newInventory(table, ipa.Charset)
	})
	return standard
}

// Lookup returns the symbol whose canonical key is key.
func (inv *Inventory) Lookup(key string) (Symbol, bool) {
	sym, ok := inv.byKey[key]
	return sym, ok
}

// Len returns the number of distinct symbols.
func (inv *Inventory) Len() int {
	return len(inv.byKey)
}

// ValidRune reports whether r may appear in a standard transcription.
func (inv *Inventory) ValidRune(r rune) bool {
	_, ok := inv.runes[r]
	return ok
}

// precomposed restores the few inventory letters that NFD splits apart.
var precomposed = strings.NewReplacer("c\u0327", "\u00e7")

// Strip removes the enclosing brackets of a phonetic transcription.
func Strip(raw string) string {
	return strings.TrimRight(strings.TrimLeft(raw, "["), "]")
}

// Normalize puts s in canonical decomposed form so that combining marks are
// matched as separate symbols.
func Normalize(s string) string {
	return precomposed.Replace(norm.NFD.String(s))
}

// InvalidRunes returns the distinct runes of s that the inventory does not
// know, in order of first appearance.
func (inv *Inventory) InvalidRunes(s string) []rune {
	var out []rune
	for _, r := range s {
		if inv.ValidRune(r) || slices.Contains(out, r) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// Split decomposes s into inventory symbols by longest match, left to
// right. Runes outside the inventory are ignored.
func (inv *Inventory) Split(s string) []Symbol {
	rs := make([]rune, 0, len(s))
	for _, r := range s {
		if inv.ValidRune(r) {
			rs = append(rs, r)
		}
	}

	var out []Symbol
	for i := 0; i < len(rs); {
		matched := false
		for n := min(inv.maxRunes, len(rs)-i); n > 0; n-- {
			if sym, ok := inv.bySpelling[string(rs[i:i+n])]; ok {
				out = append(out, sym)
				i += n
				matched = true
				break
			}
		}
		if !matched {
			// A rune that only occurs inside longer spellings.
			i++
		}
	}
	return out
}

// Decompose validates a bracketed transcription and returns its symbols.
//
// At most one distinct non-standard rune is tolerated, and only when it is
// a Sinological extension. That symbol is appended after the standard ones
// regardless of where it occurred in the transcription.
func (inv *Inventory) Decompose(raw string) ([]Symbol, error) {
	s := Normalize(Strip(raw))

	var ext *Symbol
	if invalid := inv.InvalidRunes(s); len(invalid) > 0 {
		if len(invalid) != 1 {
			return nil, fmt.Errorf("%w: unexpected invalid characters %q in %q", ErrInvalidIPA, string(invalid), s)
		}
		sym, ok := Sinological(invalid[0])
		if !ok {
			return nil, fmt.Errorf("%w: unexpected invalid character %q in %q", ErrInvalidIPA, invalid[0], s)
		}
		ext = &sym
	}

	out := inv.Split(s)
	if ext != nil {
		out = append(out, *ext)
	}
	return out, nil
}

// Sinological returns the extension symbol spelled by r.
func Sinological(r rune) (Symbol, bool) {
	for _, sym := range SinologicalExtensions {
		if sym.Key == string(r) {
			return sym, true
		}
	}
	return Symbol{}, false
}

// Keys projects symbols onto their canonical keys.
func Keys(symbols []Symbol) []string {
	out := make([]string, len(symbols))
	for i, sym := range symbols {
		out[i] = sym.Key
	}
	return out
}
