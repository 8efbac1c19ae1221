// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline runs the proceedings stages against one configured export
// tree. Each stage reads the OpenConf exports loaded by Load and writes its
// outputs with per-item status lines; Build chains every stage under a file
// lock and records per-stage metrics.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"

	"github.com/pdiddy/proceedings-engine/internal/abstracts"
	"github.com/pdiddy/proceedings-engine/internal/booklet"
	"github.com/pdiddy/proceedings-engine/internal/convert"
	"github.com/pdiddy/proceedings-engine/internal/latex"
	"github.com/pdiddy/proceedings-engine/internal/ledger"
	"github.com/pdiddy/proceedings-engine/internal/metrics"
	"github.com/pdiddy/proceedings-engine/internal/openconf"
	"github.com/pdiddy/proceedings-engine/internal/stamp"
	"github.com/pdiddy/proceedings-engine/pkg/types"
)

// LockFile is created in the LaTeX export directory while a build runs.
const LockFile = ".proceedings.lock"

// Ledger records generated publications.
type Ledger interface {
	Record(ctx context.Context, p types.Publication) error
}

// Pipeline holds the configuration, the loaded exports, and the tools the
// stages run.
type Pipeline struct {
	Config types.Config

	// Out receives status lines and batch summaries; Warn receives warnings.
	Out  io.Writer
	Warn io.Writer

	// Overwrite regenerates fragments and stamped PDFs that already exist.
	Overwrite bool

	// Root is the project directory, mounted into converter containers.
	Root string

	Renderer *abstracts.Renderer
	Stamper  stamp.Stamper
	Ledger   Ledger
	Metrics  *metrics.Recorder
	RunID    string

	// NewConverter builds the HTML converter for an input format. NewCompiler
	// builds the LaTeX compiler. Both default to the configured backend.
	NewConverter func(ctx context.Context, from string) (convert.Converter, error)
	NewCompiler  func(ctx context.Context) (booklet.Compiler, error)

	table   *latex.Table
	subs    []types.Submission
	program types.Program
	loaded  bool
	runner  convert.Runner
	now     func() time.Time
}

// New returns a pipeline for cfg with the production PDF stamper and the
// configured conversion backend.
func New(cfg types.Config, out, warn io.Writer) (*Pipeline, error) {
	table := latex.DefaultTable()
	if cfg.Booklet.Substitutions != "" {
		t, err := latex.LoadTable(cfg.Booklet.Substitutions)
		if err != nil {
			return nil, err
		}
		table = t
	}
	root, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("resolving project root: %w", err)
	}
	p := &Pipeline{
		Config:   cfg,
		Out:      out,
		Warn:     warn,
		Root:     root,
		Renderer: abstracts.NewRenderer(cfg.Event, table),
		Stamper:  stamp.NewPDFCPU(),
		Metrics:  metrics.New(),
		RunID:    ledger.NewRunID(),
		table:    table,
		now:      time.Now,
	}
	p.NewConverter = p.pandoc
	p.NewCompiler = p.latexmk
	return p, nil
}

func (p *Pipeline) backend(ctx context.Context) (convert.Runner, error) {
	if p.runner != nil {
		return p.runner, nil
	}
	r, err := convert.NewRunner(ctx, p.Config.Conversion, p.Root)
	if err != nil {
		return nil, fmt.Errorf("preparing %s backend: %w", p.Config.Conversion.Backend, err)
	}
	p.runner = r
	return r, nil
}

func (p *Pipeline) pandoc(ctx context.Context, from string) (convert.Converter, error) {
	r, err := p.backend(ctx)
	if err != nil {
		return nil, err
	}
	return convert.NewPandoc(r, p.Config.Conversion.Pandoc, from, p.Config.Conversion.Stylesheet), nil
}

func (p *Pipeline) latexmk(ctx context.Context) (booklet.Compiler, error) {
	r, err := p.backend(ctx)
	if err != nil {
		return nil, err
	}
	return convert.NewLatexmk(r, p.Config.Conversion.Latexmk), nil
}

// Load reads the submissions and theme exports and assigns DOIs to the
// submissions whose paper was uploaded. It is idempotent.
func (p *Pipeline) Load() error {
	if p.loaded {
		return nil
	}
	paths := p.Config.Paths
	subs, err := openconf.ReadSubmissions(paths.SubmissionsCSV(), p.Config.Fields)
	if err != nil {
		return err
	}
	openconf.AssignDOIs(subs, paths.PDFDir(), p.Config.Event)

	program, err := openconf.ReadThemes(paths.ThemesCSV())
	if err != nil {
		return err
	}
	p.subs, p.program, p.loaded = subs, program, true
	return nil
}

// Submissions returns the loaded submissions.
func (p *Pipeline) Submissions() []types.Submission { return p.subs }

// Program returns the loaded theme assignment.
func (p *Pipeline) Program() types.Program { return p.program }

// Check validates the loaded exports against each other and the PDF
// directory.
func (p *Pipeline) Check() ([]openconf.Finding, error) {
	if err := p.Load(); err != nil {
		return nil, err
	}
	return openconf.Validate(p.subs, p.program, p.Config.Paths.PDFDir()), nil
}

// Lock takes the export-tree lock. The returned function releases it.
func (p *Pipeline) Lock() (func(), error) {
	dir := p.Config.Paths.TexDir
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating %s: %w", dir, err)
	}
	path := filepath.Join(dir, LockFile)
	lock := flock.New(path)
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("another build holds %s", path)
	}
	return func() {
		if err := lock.Unlock(); err != nil {
			fmt.Fprintf(p.Warn, "warning: releasing %s: %v\n", path, err)
		}
	}, nil
}

func (p *Pipeline) options() booklet.Options {
	return booklet.Options{Labels: p.Config.Event.Labels, Table: p.table, Warn: p.Warn}
}

func (p *Pipeline) tagger() *stamp.Tagger {
	return stamp.NewTagger(p.Stamper, p.Config.Paths.PDFDir(), p.Overwrite)
}
