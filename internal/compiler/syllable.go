package compiler

import (
	"bytes"
	"encoding/json"
)

// Syllable is one entry of syllables.json.
type Syllable struct {
	Parts     [2]string `json:"parts"` // initial, final
	Zhuyin    string    `json:"zhuyin"`
	IPA       []string  `json:"ipa"`
	Yale      string    `json:"yale"`
	WadeGiles string    `json:"wadeGiles"`
	URL       string    `json:"url"`
}

// Syllables maps Pinyin to syllables in chart order.
type Syllables struct {
	keys  []string
	byKey map[string]Syllable
}

// NewSyllables returns an empty table.
func NewSyllables() *Syllables {
	return &Syllables{byKey: make(map[string]Syllable)}
}

// Add appends syl under pinyin. It reports false if pinyin is already present.
func (s *Syllables) Add(pinyin string, syl Syllable) bool {
	if _, ok := s.byKey[pinyin]; ok {
		return false
	}
	s.keys = append(s.keys, pinyin)
	s.byKey[pinyin] = syl
	return true
}

// Get returns the syllable spelled pinyin.
func (s *Syllables) Get(pinyin string) (Syllable, bool) {
	syl, ok := s.byKey[pinyin]
	return syl, ok
}

// Keys returns the Pinyin spellings in chart order.
func (s *Syllables) Keys() []string {
	return append([]string(nil), s.keys...)
}

// Len returns the number of syllables.
func (s *Syllables) Len() int {
	return len(s.keys)
}

// MarshalJSON encodes the table as an object in chart order.
func (s *Syllables) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range s.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(s.byKey[key])
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
