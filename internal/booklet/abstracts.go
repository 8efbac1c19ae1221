// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package booklet

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/proceedings-engine/internal/abstracts"
	"github.com/pdiddy/proceedings-engine/internal/latex"
	"github.com/pdiddy/proceedings-engine/pkg/types"
)

// WriteAbstracts writes the abstracts booklet into dir: the main file built
// from the start template with one chapter per theme, and one
// abstract.N.inc.tex per theme listing the paper fragments. abstractsRel is
// the fragments directory relative to dir.
func WriteAbstracts(dir, abstractsRel string, program types.Program, subs types.SubmissionIndex, opts Options) (err error) {
	main, err := startFrom(filepath.Join(dir, AbstractsStart), filepath.Join(dir, AbstractsMain))
	if err != nil {
		return err
	}
	defer closeMain(main, &err)

	var b strings.Builder
	b.WriteString(latex.Warning)
	for i, theme := range program.Themes {
		n := i + 1
		inc := fmt.Sprintf("abstract.%d.inc.tex", n)
		fmt.Fprintf(&b, "\\chapter{%s}\n", opts.Table.Apply(theme.Name))
		b.WriteString("\\minitoc\n")
		fmt.Fprintf(&b, "\\input{%s}\n", inc)
		b.WriteString("\\cleardoublepage\n\n")

		body := includeList(n, " : ", theme, abstractsRel, subs, opts)
		if err := os.WriteFile(filepath.Join(dir, inc), []byte(body), 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", inc, err)
		}
	}

	b.WriteString("\\backmatter\n")
	fmt.Fprintf(&b, "\\part{%s}\n", opts.Labels.Annexes)
	b.WriteString("\\phantomsection\n")
	b.WriteString("\\addtocounter{chapter}{1}\n")
	fmt.Fprintf(&b, "\\addcontentsline{toc}{chapter}{%s}\n", opts.Labels.AuthorIndex)
	b.WriteString("\\printindex\n")
	b.WriteString("\\end{document}\n")

	if _, err := main.WriteString(b.String()); err != nil {
		return fmt.Errorf("writing %s: %w", AbstractsMain, err)
	}
	return nil
}

// includeList renders a chapter include file: a header naming the theme and
// one \input line per paper. Papers missing from subs are warned about and
// skipped.
func includeList(n int, sep string, theme types.Theme, rel string, subs types.SubmissionIndex, opts Options) string {
	var b strings.Builder
	b.WriteString(incRule + "\n")
	fmt.Fprintf(&b, "%% %s %d%s%s\n", opts.Labels.Theme, n, sep, theme.Name)
	b.WriteString(incRule + "\n")
	for _, id := range theme.PaperIDs {
		if _, ok := subs[id]; !ok {
			opts.warnf("theme %q lists unknown submission %d", theme.Name, id)
			continue
		}
		fmt.Fprintf(&b, "\\input{%s}\n", filepath.ToSlash(filepath.Join(rel, abstracts.FileName(id))))
	}
	return b.String()
}
