// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package booklet

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/pdiddy/proceedings-engine/internal/latex"
)

// WriteReviewers writes the reviewers table into dir: the start template,
// then the names sorted by last word in a supertabular of cols columns,
// then \end{center}.
func WriteReviewers(dir string, names []string, cols int, opts Options) (err error) {
	if cols < 1 {
		cols = 1
	}
	sorted := make([]string, len(names))
	for i, n := range names {
		sorted[i] = opts.Table.Apply(n)
	}
	latex.SortByLastWord(sorted)

	main, err := startFrom(filepath.Join(dir, ReviewersStart), filepath.Join(dir, ReviewersMain))
	if err != nil {
		return err
	}
	defer closeMain(main, &err)

	var b strings.Builder
	b.WriteString(latex.Warning)
	b.WriteString(latex.Supertabular(latex.Chunk(sorted, cols, ""), cols))
	b.WriteString("\n\\end{center}\n")

	if _, err := main.WriteString(b.String()); err != nil {
		return fmt.Errorf("writing %s: %w", ReviewersMain, err)
	}
	return nil
}
