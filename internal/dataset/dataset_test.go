package dataset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type record struct {
	Zhuyin string   `json:"zhuyin"`
	IPA    []string `json:"ipa"`
	Yale   string   `json:"yale"`
}

func TestEncode_KeepsFieldOrder(t *testing.T) {
	b, err := Encode(record{Zhuyin: "ㄅㄚ", IPA: []string{"p", "a"}, Yale: "ba"}, false)
	require.NoError(t, err)
	assert.Equal(t, `{
  "zhuyin": "\u3105\u311a",
  "ipa": [
    "p",
    "a"
  ],
  "yale": "ba"
}`, string(b))
}

func TestEncode_SortsKeys(t *testing.T) {
	v := map[string]record{
		"ʅ": {Yale: "r", IPA: []string{}},
		"a": {Zhuyin: "ㄚ"},
	}
	b, err := Encode(v, true)
	require.NoError(t, err)
	assert.Equal(t, `{
  "a": {
    "ipa": null,
    "yale": "",
    "zhuyin": "\u311a"
  },
  "\u0285": {
    "ipa": [],
    "yale": "r",
    "zhuyin": ""
  }
}`, string(b))
}

func TestEncode_Escapes(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain", `"plain"`},
		{"<a&b>", `"<a&b>"`},
		{"\u0261", `"\u0261"`},
		{"t\u0361\u0255", `"t\u0361\u0255"`},
		{"\U0001d11e", `"\ud834\udd1e"`},
		{"\u007f", `"\u007f"`},
		{"quote\"and\\", `"quote\"and\\"`},
		{"line\nbreak", `"line\nbreak"`},
	}
	for _, tt := range tests {
		b, err := Encode(tt.in, false)
		require.NoError(t, err)
		assert.Equal(t, tt.want, string(b), tt.in)
	}
}

func TestWriteRead(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "recordings")

	in := map[string]record{"ba": {Zhuyin: "ㄅㄚ", IPA: []string{"p", "a"}, Yale: "ba"}}
	require.NoError(t, Write(dir, Syllables, in, true))

	data, err := os.ReadFile(filepath.Join(dir, "syllables.json"))
	require.NoError(t, err)
	assert.NotEqual(t, byte('\n'), data[len(data)-1], "no trailing newline")
	for _, c := range data {
		assert.Less(t, c, byte(0x80), "output is ASCII")
	}

	var out map[string]record
	require.NoError(t, Read(dir, Syllables, &out))
	assert.Equal(t, in, out)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp file is gone")
}

func TestWrite_Replaces(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Write(dir, IPA, map[string]string{"a": "1"}, true))
	require.NoError(t, Write(dir, IPA, map[string]string{"b": "2"}, true))

	var out map[string]string
	require.NoError(t, Read(dir, IPA, &out))
	assert.Equal(t, map[string]string{"b": "2"}, out)
}

func TestWrite_UnencodableLeavesNoFile(t *testing.T) {
	dir := t.TempDir()
	err := Write(dir, IPA, map[string]any{"f": func() {}}, false)
	require.Error(t, err)
	_, statErr := os.Stat(Path(dir, IPA))
	assert.True(t, os.IsNotExist(statErr))
}

func TestWriteAll(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")

	require.NoError(t, WriteAll(dir,
		Table{Name: Syllables, Value: map[string]string{"ba": "ㄅㄚ"}},
		Table{Name: IPA, Value: map[string]string{"p": "plosive"}, SortKeys: true},
	))

	var syl, ipa map[string]string
	require.NoError(t, Read(dir, Syllables, &syl))
	require.NoError(t, Read(dir, IPA, &ipa))
	assert.Equal(t, map[string]string{"ba": "ㄅㄚ"}, syl)
	assert.Equal(t, map[string]string{"p": "plosive"}, ipa)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestWriteAll_LaterFailureKeepsEarlierTable(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Write(dir, Syllables, map[string]string{"ba": "old"}, false))

	err := WriteAll(dir,
		Table{Name: Syllables, Value: map[string]string{"ba": "new"}},
		Table{Name: IPA, Value: map[string]any{"f": func() {}}, SortKeys: true},
	)
	require.Error(t, err)
	assert.Contains(t, err.Error(), IPA)

	var syl map[string]string
	require.NoError(t, Read(dir, Syllables, &syl))
	assert.Equal(t, map[string]string{"ba": "old"}, syl)

	_, statErr := os.Stat(Path(dir, IPA))
	assert.True(t, os.IsNotExist(statErr))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files are left")
}

func TestWriteAll_FailureCreatesNoDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")

	err := WriteAll(dir,
		Table{Name: Syllables, Value: map[string]string{"ba": "new"}},
		Table{Name: IPA, Value: map[string]any{"f": func() {}}},
	)
	require.Error(t, err)
	_, statErr := os.Stat(dir)
	assert.True(t, os.IsNotExist(statErr))
}

func TestRead_Missing(t *testing.T) {
	var out map[string]string
	require.Error(t, Read(t.TempDir(), IPA, &out))
}
