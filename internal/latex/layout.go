// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package latex

import "strings"

// Warning is the banner written at the top of every generated file.
const Warning = `

    %=====================================
    %   WARNING
    %   FICHIER AUTOMATISE
    %   NE PAS MODIFIER
    %=====================================

    `

// BannerRule is the comment rule framing paper banners.
const BannerRule = "%%%%%%%%%%%%%%%%%%%%%%%%%%%%%%%%%%%%%%%%%%%%"

// Chunk splits items into rows of n, padding the last row with fill.
// n < 1 is treated as 1.
func Chunk(items []string, n int, fill string) [][]string {
	if n < 1 {
		n = 1
	}
	var rows [][]string
	for start := 0; start < len(items); start += n {
		row := make([]string, n)
		for i := range row {
			if start+i < len(items) {
				row[i] = items[start+i]
			} else {
				row[i] = fill
			}
		}
		rows = append(rows, row)
	}
	return rows
}

// Supertabular renders rows as a supertabular environment with one left
// aligned column per cell.
func Supertabular(rows [][]string, cols int) string {
	var b strings.Builder
	b.WriteString(`\begin{supertabular}{` + strings.Repeat("l", cols) + "}\n")
	for _, row := range rows {
		b.WriteString(strings.Join(row, " & "))
		b.WriteString(` \\` + "\n")
	}
	b.WriteString(`\end{supertabular}`)
	return b.String()
}
