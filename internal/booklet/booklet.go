// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package booklet assembles the LaTeX sources of the abstracts booklet, the
// proceedings booklet, and the reviewers table, and compiles them.
package booklet

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/pdiddy/proceedings-engine/internal/latex"
	"github.com/pdiddy/proceedings-engine/pkg/types"
)

// Template and output file names inside the booklet directories.
const (
	AbstractsStart   = "Recueil_Resume_start.tex"
	AbstractsMain    = "Recueil_Resume.tex"
	ProceedingsStart = "actes_start.tex"
	ProceedingsEnd   = "actes_end.tex"
	ProceedingsMain  = "actes.tex"
	ReviewersStart   = "Tableau_Reviewer_start.tex"
	ReviewersMain    = "Tableau_Reviewer.tex"
)

// incRule frames the header of chapter include files.
const incRule = "%%%%%%%%%%%%%%%%%%%%%%%%%%"

// Options holds what the booklet writers share.
type Options struct {
	Labels types.LabelsConfig
	Table  *latex.Table

	// Warn receives per-paper warnings such as unknown theme IDs.
	Warn io.Writer
}

func (o Options) warnf(format string, args ...any) {
	if o.Warn != nil {
		fmt.Fprintf(o.Warn, "warning: "+format+"\n", args...)
	}
}

// startFrom copies the template start into main and opens main for
// appending.
func startFrom(start, main string) (*os.File, error) {
	data, err := os.ReadFile(start)
	if err != nil {
		return nil, fmt.Errorf("reading template: %w", err)
	}
	if err := os.WriteFile(main, data, 0o644); err != nil {
		return nil, fmt.Errorf("writing %s: %w", filepath.Base(main), err)
	}
	f, err := os.OpenFile(main, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", filepath.Base(main), err)
	}
	return f, nil
}

// closeMain closes f and reports its error into err unless err is already
// set.
func closeMain(f *os.File, err *error) {
	if cerr := f.Close(); cerr != nil && *err == nil {
		*err = fmt.Errorf("closing %s: %w", filepath.Base(f.Name()), cerr)
	}
}

// Target names a compilable booklet.
type Target struct {
	Dir  string
	Job  string
	Main string
}

// Compiler builds a LaTeX document. convert.Latexmk implements it.
type Compiler interface {
	Compile(ctx context.Context, dir, job, main string) error
}

// Compile builds target with c.
func Compile(ctx context.Context, c Compiler, target Target) error {
	if _, err := os.Stat(filepath.Join(target.Dir, target.Main)); err != nil {
		return fmt.Errorf("booklet source missing: %w", err)
	}
	if err := c.Compile(ctx, target.Dir, target.Job, target.Main); err != nil {
		return fmt.Errorf("compiling %s: %w", target.Job, err)
	}
	return nil
}
