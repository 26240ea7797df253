// Package dataset writes and reads the compiled JSON tables.
//
// Files are indented by two spaces and contain only ASCII: every other rune
// is written as a \u escape, using surrogate pairs outside the BMP. There is
// no trailing newline.
package dataset

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"unicode/utf16"
	"unicode/utf8"
)

// Names of the produced tables.
const (
	Syllables = "syllables"
	IPA       = "ipa"
)

// Path returns the location of table name in dir.
func Path(dir, name string) string {
	return filepath.Join(dir, name+".json")
}

// Encode renders v. With sortKeys, object keys are sorted at every level;
// otherwise v's own field and key order is kept.
func Encode(v any, sortKeys bool) ([]byte, error) {
	if sortKeys {
		sorted, err := toGeneric(v)
		if err != nil {
			return nil, err
		}
		v = sorted
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("dataset: encode: %w", err)
	}
	return escapeNonASCII(bytes.TrimSuffix(buf.Bytes(), []byte("\n"))), nil
}

// toGeneric round-trips v through maps, which encoding/json writes with
// sorted keys.
func toGeneric(v any) (any, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("dataset: encode: %w", err)
	}
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	var out any
	if err := dec.Decode(&out); err != nil {
		return nil, fmt.Errorf("dataset: re-decode: %w", err)
	}
	return out, nil
}

// escapeNonASCII rewrites runes outside printable ASCII. JSON syntax is
// ASCII, so such runes only occur inside strings.
func escapeNonASCII(b []byte) []byte {
	out := make([]byte, 0, len(b))
	for len(b) > 0 {
		r, size := utf8.DecodeRune(b)
		b = b[size:]
		if r < utf8.RuneSelf && r != 0x7f {
			out = append(out, byte(r))
			continue
		}
		if r >= 0x10000 {
			hi, lo := utf16.EncodeRune(r)
			out = fmt.Appendf(out, `\u%04x\u%04x`, hi, lo)
			continue
		}
		out = fmt.Appendf(out, `\u%04x`, r)
	}
	return out
}

// Table is one file written by WriteAll.
type Table struct {
	Name     string
	Value    any
	SortKeys bool
}

// Write encodes v into dir/name.json, creating dir if needed. The file is
// replaced atomically.
func Write(dir, name string, v any, sortKeys bool) error {
	return WriteAll(dir, Table{Name: name, Value: v, SortKeys: sortKeys})
}

// WriteAll encodes every table before touching dir, stages each in a temp
// file, then renames them into place back to back. An encoding or staging
// failure leaves dir as it was.
func WriteAll(dir string, tables ...Table) error {
	data := make([][]byte, len(tables))
	for i, t := range tables {
		b, err := Encode(t.Value, t.SortKeys)
		if err != nil {
			return fmt.Errorf("%s: %w", t.Name, err)
		}
		data[i] = b
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("dataset: create %s: %w", dir, err)
	}

	staged := make([]string, 0, len(tables))
	defer func() {
		for _, p := range staged {
			os.Remove(p)
		}
	}()
	for i, t := range tables {
		p, err := stage(dir, t.Name, data[i])
		if err != nil {
			return err
		}
		staged = append(staged, p)
	}

	for i, t := range tables {
		if err := os.Rename(staged[i], Path(dir, t.Name)); err != nil {
			return fmt.Errorf("dataset: write %s: %w", Path(dir, t.Name), err)
		}
	}
	return nil
}

// stage writes data to a temp file in dir and returns its path.
func stage(dir, name string, data []byte) (string, error) {
	tmp, err := os.CreateTemp(dir, "."+name+".*.tmp")
	if err != nil {
		return "", fmt.Errorf("dataset: create temp file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", fmt.Errorf("dataset: write %s: %w", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("dataset: close %s: %w", tmp.Name(), err)
	}
	return tmp.Name(), nil
}

// Read decodes dir/name.json into v.
func Read(dir, name string, v any) error {
	data, err := os.ReadFile(Path(dir, name))
	if err != nil {
		return fmt.Errorf("dataset: %w", err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("dataset: decode %s: %w", Path(dir, name), err)
	}
	return nil
}
