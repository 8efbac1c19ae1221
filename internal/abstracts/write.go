// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package abstracts

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/pdiddy/proceedings-engine/internal/openconf"
	"github.com/pdiddy/proceedings-engine/pkg/types"
)

// RenderFunc renders one submission.
type RenderFunc func(types.Submission) string

// WriteOne renders sub into dir/p<ID>.tex. An existing file is kept unless
// overwrite is set.
func WriteOne(sub types.Submission, dir string, render RenderFunc, overwrite bool, w io.Writer) types.ItemStatus {
	name := FileName(sub.ID)
	path := filepath.Join(dir, name)

	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			fmt.Fprintf(w, "skipped: %s (already exists)\n", name)
			return types.ItemSkipped
		}
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		fmt.Fprintf(w, "failed:  %s (%v)\n", name, err)
		return types.ItemFailed
	}
	if err := os.WriteFile(path, []byte(render(sub)), 0o644); err != nil {
		fmt.Fprintf(w, "failed:  %s (%v)\n", name, err)
		return types.ItemFailed
	}

	status := "written:"
	if !sub.HasDOI() {
		status = "written: (WIP)"
	}
	fmt.Fprintf(w, "%s %s\n", status, name)
	return types.ItemDone
}

// WriteAll renders every submission into dir, printing per-file status to w
// and returning a summary.
func WriteAll(subs []types.Submission, dir string, render RenderFunc, overwrite bool, w io.Writer) types.BatchResult {
	var result types.BatchResult
	for _, s := range subs {
		result.Add(WriteOne(s, dir, render, overwrite, w))
	}
	result.Summarize(w, "written")
	return result
}

// WriteBooklet writes the abstracts-booklet fragments.
func (r *Renderer) WriteBooklet(subs []types.Submission, dir string, overwrite bool, w io.Writer) types.BatchResult {
	return WriteAll(subs, dir, r.RenderBooklet, overwrite, w)
}

// WriteHTMLSources writes the standalone sources for HTML conversion. A
// source links the stamped PDF when <ID>_doi.pdf exists in pdfDir. Sources
// are always regenerated so the link follows the tagging state.
func (r *Renderer) WriteHTMLSources(subs []types.Submission, dir, pdfDir string, w io.Writer) types.BatchResult {
	render := func(s types.Submission) string {
		_, err := os.Stat(openconf.StampedPDFPath(pdfDir, s.ID))
		return r.RenderHTMLSource(s, err == nil)
	}
	return WriteAll(subs, dir, render, true, w)
}
