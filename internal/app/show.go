package app

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/ribbanya/pinyin-beginners-anki-deck/internal/compiler"
	"github.com/ribbanya/pinyin-beginners-anki-deck/internal/dataset"
	"github.com/ribbanya/pinyin-beginners-anki-deck/internal/glossary"
)

// Output modes of Show.
const (
	OutputJSON = "json"
	OutputText = "txt"
)

// ErrUnknownSyllable reports a Pinyin spelling absent from syllables.json.
var ErrUnknownSyllable = errors.New("unknown syllable")

// SymbolInfo pairs an IPA key with its glossary entry.
type SymbolInfo struct {
	Symbol string `json:"symbol"`
	glossary.Entry
}

// SyllableInfo is one syllable with the description of each of its symbols.
type SyllableInfo struct {
	Pinyin   string            `json:"pinyin"`
	Syllable compiler.Syllable `json:"syllable"`
	Symbols  []SymbolInfo      `json:"symbols"`
}

// Lookup reads the compiled tables in dir and gathers what they hold about
// pinyin.
func Lookup(dir, pinyin string) (*SyllableInfo, error) {
	var syllables map[string]compiler.Syllable
	if err := dataset.Read(dir, dataset.Syllables, &syllables); err != nil {
		return nil, err
	}
	syl, ok := syllables[pinyin]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownSyllable, pinyin)
	}

	var entries map[string]glossary.Entry
	if err := dataset.Read(dir, dataset.IPA, &entries); err != nil {
		return nil, err
	}

	info := &SyllableInfo{Pinyin: pinyin, Syllable: syl}
	for _, key := range syl.IPA {
		e, ok := entries[key]
		if !ok {
			return nil, fmt.Errorf("symbol %q of %q missing from %s", key, pinyin, dataset.Path(dir, dataset.IPA))
		}
		info.Symbols = append(info.Symbols, SymbolInfo{Symbol: key, Entry: e})
	}
	return info, nil
}

// Show writes the syllable spelled pinyin to w, as indented JSON or as
// plain text.
func Show(w io.Writer, dir, pinyin, mode string) error {
	switch mode {
	case OutputJSON, OutputText:
	default:
		return fmt.Errorf("invalid output mode %q (expected %q or %q)", mode, OutputJSON, OutputText)
	}

	info, err := Lookup(dir, pinyin)
	if err != nil {
		return err
	}

	if mode == OutputJSON {
		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		return enc.Encode(info)
	}
	_, err = io.WriteString(w, composeText(info))
	return err
}

// composeText renders info as one header line followed by one line per
// symbol.
func composeText(info *SyllableInfo) string {
	var b strings.Builder
	s := info.Syllable
	fmt.Fprintf(&b, "%s\t%s\tyale %s\twade-giles %s\t[%s]\n",
		info.Pinyin, s.Zhuyin, s.Yale, s.WadeGiles, strings.Join(s.IPA, ""))
	fmt.Fprintf(&b, "  initial %s, final %s\n", s.Parts[0], s.Parts[1])
	fmt.Fprintf(&b, "  audio %s\n", s.URL)
	for _, sym := range info.Symbols {
		fmt.Fprintf(&b, "  %s\t%s\t%s\n", sym.Symbol, sym.Name, sym.URL)
	}
	return b.String()
}
