// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package latex

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTableApply(t *testing.T) {
	table := DefaultTable()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"trims", "  plain text  ", "plain text"},
		{"ampersand after space", "heat & mass", `heat \& mass`},
		{"percent after space", "gain of 5 %", `gain of 5 \%`},
		{"square millimetre before square metre", "area 4 mm2", `area 4 \si{\square \milli\metre}`},
		{"square metre", "1 m2", `1 \si{\square m}`},
		{"underscore", "file_name", `file\_name`},
		{"chemical formula keeps subscript", "CO2 capture", `\chemform{CO_2} capture`},
		{"paragraph breaks doubled", "one\ntwo", "one\n\ntwo"},
		{"degree sign", "20°C", `20$^{\circ}$C`},
		{"greek", "α and ρ", `$\alpha$ and $\rho$`},
		{"typographic apostrophe", "l’eau", "l'eau"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, table.Apply(tt.in))
		})
	}
}

func TestLoadTable(t *testing.T) {
	t.Run("empty path uses built-in table", func(t *testing.T) {
		table, err := LoadTable("")
		require.NoError(t, err)
		assert.NotEmpty(t, table.Rules)
	})

	t.Run("custom file replaces rules", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "subs.toml")
		content := "[[rule]]\nfrom = \"foo\"\nto = \"bar\"\n\n[[rule]]\nfrom = \"bar\"\nto = \"baz\"\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

		table, err := LoadTable(path)
		require.NoError(t, err)
		require.Len(t, table.Rules, 2)
		assert.Equal(t, "baz", table.Apply("foo"), "rules apply in order")
	})

	t.Run("empty from rejected", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.toml")
		require.NoError(t, os.WriteFile(path, []byte("[[rule]]\nfrom = \"\"\nto = \"x\"\n"), 0o644))
		_, err := LoadTable(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "empty from")
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadTable(filepath.Join(t.TempDir(), "nope.toml"))
		require.Error(t, err)
	})
}

func TestNilTableTrims(t *testing.T) {
	var table *Table
	assert.Equal(t, "x", table.Apply(" x "))
}

func TestTitleCase(t *testing.T) {
	assert.Equal(t, "Dupont", TitleCase("  DUPONT "))
	assert.Equal(t, "Marie Curie", TitleCase("marie curie"))
}

func TestIndexKey(t *testing.T) {
	assert.Equal(t, "EtienneDupre", IndexKey("Étienne Dupré"))
	assert.Equal(t, "Muller", IndexKey("Müller"))
	assert.Equal(t, "", IndexKey(""))
}

func TestSortByLastWord(t *testing.T) {
	names := []string{"Obiwan Kenobi", "Clark Kent", "Bruce Wayne", "Jean Dupont"}
	SortByLastWord(names)
	assert.Equal(t, []string{"Jean Dupont", "Obiwan Kenobi", "Clark Kent", "Bruce Wayne"}, names)
}

func TestChunk(t *testing.T) {
	tests := []struct {
		name  string
		items []string
		n     int
		want  [][]string
	}{
		{"exact rows", []string{"a", "b", "c", "d"}, 2, [][]string{{"a", "b"}, {"c", "d"}}},
		{"padded last row", []string{"a", "b", "c", "d"}, 3, [][]string{{"a", "b", "c"}, {"d", "", ""}}},
		{"empty input", nil, 3, nil},
		{"zero width treated as one", []string{"a", "b"}, 0, [][]string{{"a"}, {"b"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Chunk(tt.items, tt.n, ""))
		})
	}
}

func TestSupertabular(t *testing.T) {
	got := Supertabular([][]string{{"A", "B"}, {"C", ""}}, 2)
	want := "\\begin{supertabular}{ll}\nA & B \\\\\nC &  \\\\\n\\end{supertabular}"
	assert.Equal(t, want, got)
}
