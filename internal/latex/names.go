// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package latex

import (
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// TitleCase trims s and capitalizes each word, lowering the rest.
func TitleCase(s string) string {
	return cases.Title(language.Und).String(strings.TrimSpace(s))
}

// asciiFold decomposes accented letters and drops everything outside ASCII.
func asciiFold() transform.Transformer {
	return transform.Chain(
		norm.NFKD,
		runes.Remove(runes.Predicate(func(r rune) bool { return r > unicode.MaxASCII })),
	)
}

// IndexKey returns the makeindex sort key of a name: accents folded to
// ASCII and spaces removed, so "Étienne Dupré" sorts as "EtienneDupre".
func IndexKey(s string) string {
	out, _, err := transform.String(asciiFold(), s)
	if err != nil {
		return strings.ReplaceAll(s, " ", "")
	}
	return strings.ReplaceAll(out, " ", "")
}

// lastWord returns the final whitespace-separated token of s.
func lastWord(s string) string {
	f := strings.Fields(s)
	if len(f) == 0 {
		return ""
	}
	return f[len(f)-1]
}

// SortByLastWord sorts full names by their final word, keeping the input
// order for equal keys.
func SortByLastWord(names []string) {
	sort.SliceStable(names, func(i, j int) bool {
		return lastWord(names[i]) < lastWord(names[j])
	})
}
