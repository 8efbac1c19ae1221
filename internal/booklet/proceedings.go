// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package booklet

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/proceedings-engine/internal/abstracts"
	"github.com/pdiddy/proceedings-engine/pkg/types"
)

// Tagger stamps papers and locates the stamped files. stamp.Tagger
// implements it.
type Tagger interface {
	Tag(sub types.Submission) (bool, error)
	StampedPath(id int) string
	Pages(id int) (int, error)
}

// ProceedingsLayout locates the proceedings outputs.
type ProceedingsLayout struct {
	// Dir is the booklet directory holding the templates and actes.tex.
	Dir string

	// PagesDir receives one p<ID>.tex page per stamped paper.
	PagesDir string

	// Volumes is the number of volumes; 1 or less disables breaks.
	Volumes int

	// SplitBy balances volumes by paper count or by page count.
	SplitBy types.SplitBy
}

// ProceedingsResult summarizes a proceedings build.
type ProceedingsResult struct {
	// Tagging counts stamped (Done), untagged (Skipped) and failed papers.
	Tagging types.BatchResult

	// Breaks lists the 0-based chapter indexes preceded by a volume break.
	Breaks []int

	// Tagged lists the stamped submission IDs in booklet order.
	Tagged []int
}

// WriteProceedings stamps every paper of the program and writes the
// proceedings booklet: actes.tex from the templates, one paper.N.inc.tex per
// theme, and a page per stamped paper. With N volumes, volume k+1 starts at
// the chapter following the one whose running paper (or page) count first
// reaches k/N of the total. A chapter heavier than a share keeps its place in
// the earlier volume.
func WriteProceedings(layout ProceedingsLayout, program types.Program, subs types.SubmissionIndex, tagger Tagger, r *abstracts.Renderer, opts Options, w io.Writer) (res ProceedingsResult, err error) {

	if err := os.MkdirAll(layout.PagesDir, 0o755); err != nil {
		return res, fmt.Errorf("creating %s: %w", layout.PagesDir, err)
	}
	bookletAbs, err := filepath.Abs(layout.Dir)
	if err != nil {
		return res, fmt.Errorf("resolving %s: %w", layout.Dir, err)
	}
	pagesRel, err := relFrom(bookletAbs, layout.PagesDir)
	if err != nil {
		return res, err
	}

	// Tag papers and write pages; themes keep only known, stamped IDs.
	chapters := make([]types.Theme, len(program.Themes))
	weights := make([]int, len(program.Themes))
	for i, theme := range program.Themes {
		chapters[i].Name = theme.Name
		for _, id := range theme.PaperIDs {
			sub, ok := subs[id]
			if !ok {
				opts.warnf("theme %q lists unknown submission %d", theme.Name, id)
				continue
			}
			tagged, err := tagger.Tag(sub)
			if err != nil {
				fmt.Fprintf(w, "failed:  p%d (%v)\n", id, err)
				res.Tagging.Add(types.ItemFailed)
				continue
			}
			if !tagged {
				res.Tagging.Add(types.ItemSkipped)
				continue
			}

			pdfRel, err := relFrom(bookletAbs, tagger.StampedPath(id))
			if err != nil {
				return res, err
			}
			page := r.RenderProceedingsPage(sub, pdfRel)
			if err := os.WriteFile(filepath.Join(layout.PagesDir, abstracts.FileName(id)), []byte(page), 0o644); err != nil {
				return res, fmt.Errorf("writing page of p%d: %w", id, err)
			}
			fmt.Fprintf(w, "tagged:  p%d %s\n", id, sub.DOI)
			res.Tagging.Add(types.ItemDone)
			res.Tagged = append(res.Tagged, id)
			chapters[i].PaperIDs = append(chapters[i].PaperIDs, id)
			weights[i] += paperWeight(layout.SplitBy, tagger, id, opts)
		}
	}

	res.Breaks = volumeBreaks(weights, layout.Volumes)

	main, err := startFrom(filepath.Join(layout.Dir, ProceedingsStart), filepath.Join(layout.Dir, ProceedingsMain))
	if err != nil {
		return res, err
	}
	defer closeMain(main, &err)

	var b strings.Builder
	volume := 1
	next := 0
	for i, ch := range chapters {
		if next < len(res.Breaks) && res.Breaks[next] == i {
			next++
			volume++
			fmt.Fprintf(&b, "\n%%%%%%%%%%%%%%%% %s %d %%%%%%%%%%\n", opts.Labels.Volume, volume)
			b.WriteString("\\cleardoublepage\n")
			b.WriteString("\\phantomsection\n")
			fmt.Fprintf(&b, "\\addcontentsline{toc}{part}{%s %d}\n\n", opts.Labels.Volume, volume)
		}
		n := i + 1
		inc := fmt.Sprintf("paper.%d.inc.tex", n)
		fmt.Fprintf(&b, "\n\\chapter{%s}\n", opts.Table.Apply(ch.Name))
		b.WriteString("\\minitoc\n")
		fmt.Fprintf(&b, "\\input{%s}\n", inc)

		body := includeList(n, " | ", ch, pagesRel, subs, opts)
		if err := os.WriteFile(filepath.Join(layout.Dir, inc), []byte(body), 0o644); err != nil {
			return res, fmt.Errorf("writing %s: %w", inc, err)
		}
	}

	end, err := os.ReadFile(filepath.Join(layout.Dir, ProceedingsEnd))
	if err != nil {
		return res, fmt.Errorf("reading template: %w", err)
	}
	b.Write(end)

	if _, err := main.WriteString(b.String()); err != nil {
		return res, fmt.Errorf("writing %s: %w", ProceedingsMain, err)
	}
	res.Tagging.Summarize(w, "tagged")
	return res, nil
}

// paperWeight is 1 per paper, or the stamped PDF's page count when
// splitting by pages. Unreadable PDFs weigh 1.
func paperWeight(split types.SplitBy, tagger Tagger, id int, opts Options) int {
	if split != types.SplitByPages {
		return 1
	}
	n, err := tagger.Pages(id)
	if err != nil || n < 1 {
		opts.warnf("page count of p%d unavailable, counting it as one page: %v", id, err)
		return 1
	}
	return n
}

// volumeBreaks returns the chapter indexes that start volumes 2..n. Volume k
// starts at the first chapter whose preceding weight reaches (k-1)/n of the
// total. A chapter starts at most one volume.
func volumeBreaks(weights []int, n int) []int {
	total := 0
	for _, w := range weights {
		total += w
	}
	if n < 2 || total == 0 {
		return nil
	}
	var breaks []int
	k := 1
	cum := 0
	for i, w := range weights {
		if i > 0 && k < n && cum*n >= k*total {
			breaks = append(breaks, i)
			k++
		}
		cum += w
	}
	return breaks
}

// relFrom returns target relative to base, in the form TeX expects.
func relFrom(base, target string) (string, error) {
	abs, err := filepath.Abs(target)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", target, err)
	}
	rel, err := filepath.Rel(base, abs)
	if err != nil {
		return "", fmt.Errorf("locating %s from %s: %w", target, base, err)
	}
	return rel, nil
}
