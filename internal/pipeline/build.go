// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/pdiddy/proceedings-engine/pkg/types"
)

// StageFunc is one pipeline stage.
type StageFunc func(ctx context.Context) (types.BatchResult, error)

// StageResult reports one stage of a build.
type StageResult struct {
	Name     string
	Result   types.BatchResult
	Duration time.Duration
	Err      error
}

// Report collects the stage results of a build.
type Report struct {
	RunID  string
	Stages []StageResult
}

// HasFailures reports whether any stage failed or counted failed items.
func (r Report) HasFailures() bool {
	for _, s := range r.Stages {
		if s.Err != nil || s.Result.HasFailures() {
			return true
		}
	}
	return false
}

// Failed returns the number of failed items across stages.
func (r Report) Failed() int {
	n := 0
	for _, s := range r.Stages {
		n += s.Result.Failed
	}
	return n
}

// BuildOptions selects optional build steps.
type BuildOptions struct {
	// Compile runs latexmk on both booklets after writing them.
	Compile bool
}

// Stage is a named StageFunc.
type Stage struct {
	Name string
	Run  StageFunc
}

// Stages returns the build stages in order.
func (p *Pipeline) Stages() []Stage {
	return []Stage{
		{StageReviewers, p.Reviewers},
		{StageAbstracts, p.Abstracts},
		{StageBooklet, p.AbstractsBooklet},
		{StageIndex, p.Index},
		{StageProceedings, p.Proceedings},
		{StageHTML, p.HTML},
		{StageXML, p.XML},
		{StageBibliography, p.Bibliography},
	}
}

// Build runs every stage under the export-tree lock. A stage error stops the
// build; items that fail inside a stage are counted and the build goes on.
// Metrics are written to the configured textfile in either case.
func (p *Pipeline) Build(ctx context.Context, opts BuildOptions) (Report, error) {
	report := Report{RunID: p.RunID}

	unlock, err := p.Lock()
	if err != nil {
		return report, err
	}
	defer unlock()

	if err := p.Load(); err != nil {
		return report, err
	}

	runErr := func() error {
		for _, st := range p.Stages() {
			if err := ctx.Err(); err != nil {
				return err
			}
			fmt.Fprintf(p.Out, "\n== %s ==\n", st.Name)
			if err := p.RunStage(ctx, &report, st.Name, st.Run); err != nil {
				return fmt.Errorf("%s: %w", st.Name, err)
			}
		}
		if !opts.Compile {
			return nil
		}
		for _, name := range []string{AbstractsBooklet, ProceedingsBooklet} {
			stage := "compile-" + name
			fmt.Fprintf(p.Out, "\n== %s ==\n", stage)
			run := func(ctx context.Context) (types.BatchResult, error) {
				if err := p.Compile(ctx, name); err != nil {
					return types.BatchResult{Failed: 1}, err
				}
				return types.BatchResult{Done: 1}, nil
			}
			if err := p.RunStage(ctx, &report, stage, run); err != nil {
				return fmt.Errorf("%s: %w", stage, err)
			}
		}
		return nil
	}()

	p.Metrics.Finish(p.now())
	if err := p.Metrics.WriteTextfile(p.Config.Metrics.Textfile); err != nil {
		fmt.Fprintf(p.Warn, "warning: %v\n", err)
	}
	return report, runErr
}

// RunStage times fn, records its metrics, and appends it to report.
func (p *Pipeline) RunStage(ctx context.Context, report *Report, name string, fn StageFunc) error {
	start := p.now()
	res, err := fn(ctx)
	d := p.now().Sub(start)
	p.Metrics.ObserveStage(name, res, d, err)
	report.Stages = append(report.Stages, StageResult{Name: name, Result: res, Duration: d, Err: err})
	return err
}
