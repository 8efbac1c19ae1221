// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pdiddy/proceedings-engine/internal/bibliography"
	"github.com/pdiddy/proceedings-engine/internal/booklet"
	"github.com/pdiddy/proceedings-engine/internal/convert"
	"github.com/pdiddy/proceedings-engine/internal/datacite"
	"github.com/pdiddy/proceedings-engine/internal/openconf"
	"github.com/pdiddy/proceedings-engine/internal/stamp"
	"github.com/pdiddy/proceedings-engine/internal/webindex"
	"github.com/pdiddy/proceedings-engine/pkg/types"
)

// Stage names, in build order.
const (
	StageReviewers    = "reviewers"
	StageAbstracts    = "abstracts"
	StageBooklet      = "booklet"
	StageIndex        = "index"
	StageProceedings  = "proceedings"
	StageHTML         = "html"
	StageXML          = "xml"
	StageBibliography = "bibliography"
)

// Reviewers writes the reviewers table into the LaTeX export directory.
func (p *Pipeline) Reviewers(_ context.Context) (types.BatchResult, error) {
	var result types.BatchResult
	names, err := openconf.ReadReviewers(p.Config.Paths.ReviewersCSV())
	if err != nil {
		return result, err
	}
	if err := booklet.WriteReviewers(p.Config.Paths.TexDir, names, p.Config.Booklet.ReviewerColumns, p.options()); err != nil {
		return result, err
	}
	result.Done = len(names)
	fmt.Fprintf(p.Out, "written: %s (%d reviewers)\n", booklet.ReviewersMain, len(names))
	return result, nil
}

// Abstracts writes one booklet fragment per submission.
func (p *Pipeline) Abstracts(_ context.Context) (types.BatchResult, error) {
	if err := p.Load(); err != nil {
		return types.BatchResult{}, err
	}
	dir := p.Config.Paths.AbstractsDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return types.BatchResult{}, fmt.Errorf("creating %s: %w", dir, err)
	}
	return p.Renderer.WriteBooklet(p.subs, dir, p.Overwrite, p.Out), nil
}

// AbstractsBooklet writes the abstracts booklet chapters from the fragments.
func (p *Pipeline) AbstractsBooklet(_ context.Context) (types.BatchResult, error) {
	var result types.BatchResult
	if err := p.Load(); err != nil {
		return result, err
	}
	paths := p.Config.Paths
	rel, err := filepath.Rel(paths.AbstractsBookletDir(), paths.AbstractsDir())
	if err != nil {
		return result, fmt.Errorf("locating fragments: %w", err)
	}
	if err := booklet.WriteAbstracts(paths.AbstractsBookletDir(), filepath.ToSlash(rel), p.program, types.Index(p.subs), p.options()); err != nil {
		return result, err
	}
	result.Done = len(p.program.Themes)
	fmt.Fprintf(p.Out, "written: %s (%d themes)\n", booklet.AbstractsMain, len(p.program.Themes))
	return result, nil
}

// Index writes and converts the HTML table of contents.
func (p *Pipeline) Index(ctx context.Context) (types.BatchResult, error) {
	var result types.BatchResult
	if err := p.Load(); err != nil {
		return result, err
	}
	c, err := p.NewConverter(ctx, convert.FromMarkdown)
	if err != nil {
		return result, err
	}
	out, err := webindex.Write(ctx, c, p.Config.Paths.HTMLDir, p.program, types.Index(p.subs), p.Config.Event.AbstractsURL(), p.Warn)
	if err != nil {
		return result, err
	}
	result.Done = 1
	fmt.Fprintf(p.Out, "converted: %s\n", filepath.Base(out))
	return result, nil
}

// Proceedings stamps the papers and writes the proceedings booklet. The
// result counts tagging outcomes.
func (p *Pipeline) Proceedings(_ context.Context) (types.BatchResult, error) {
	if err := p.Load(); err != nil {
		return types.BatchResult{}, err
	}
	paths := p.Config.Paths
	layout := booklet.ProceedingsLayout{
		Dir:      paths.ProceedingsBookletDir(),
		PagesDir: paths.ProceedingsPagesDir(),
		Volumes:  p.Config.Booklet.Volumes,
		SplitBy:  p.Config.Booklet.SplitBy,
	}
	res, err := booklet.WriteProceedings(layout, p.program, types.Index(p.subs), p.tagger(), p.Renderer, p.options(), p.Out)
	return res.Tagging, err
}

// Tag stamps the DOI on every paper without writing the booklet.
func (p *Pipeline) Tag(_ context.Context) (types.BatchResult, error) {
	if err := p.Load(); err != nil {
		return types.BatchResult{}, err
	}
	return p.tagger().TagAll(p.subs, p.Out), nil
}

// HTML regenerates the standalone abstract sources and converts them to the
// HTML landing pages. Stamp papers first so the sources link them.
func (p *Pipeline) HTML(ctx context.Context) (types.BatchResult, error) {
	var result types.BatchResult
	if err := p.Load(); err != nil {
		return result, err
	}
	paths := p.Config.Paths
	for _, dir := range []string{paths.HTMLSourceDir(), paths.HTMLAbstractsDir()} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return result, fmt.Errorf("creating %s: %w", dir, err)
		}
	}
	written := p.Renderer.WriteHTMLSources(p.subs, paths.HTMLSourceDir(), paths.PDFDir(), p.Out)

	c, err := p.NewConverter(ctx, convert.FromLaTeX)
	if err != nil {
		return written, err
	}
	srcs, err := convert.Sources(paths.HTMLSourceDir(), ".tex")
	if err != nil {
		return written, err
	}
	result = convert.ConvertBatch(ctx, c, srcs, paths.HTMLAbstractsDir(), true, p.Out)
	result.Failed += written.Failed
	return result, ctx.Err()
}

// stamped returns the submissions with a DOI and a stamped paper.
func (p *Pipeline) stamped() []types.Submission {
	var out []types.Submission
	for _, s := range p.subs {
		if !s.HasDOI() {
			continue
		}
		if _, err := os.Stat(openconf.StampedPDFPath(p.Config.Paths.PDFDir(), s.ID)); err == nil {
			out = append(out, s)
		}
	}
	return out
}

// XML writes a DataCite record per stamped paper, the DOI listing, and the
// matching ledger rows.
func (p *Pipeline) XML(ctx context.Context) (types.BatchResult, error) {
	var result types.BatchResult
	if err := p.Load(); err != nil {
		return result, err
	}
	dir := p.Config.Paths.XMLDir
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return result, fmt.Errorf("creating %s: %w", dir, err)
	}

	event := p.Config.Event
	var rows []datacite.ListingRow
	for _, s := range p.stamped() {
		if ctx.Err() != nil {
			break
		}
		name := datacite.FileName(s.ID)
		if err := p.writeRecord(ctx, s, filepath.Join(dir, name)); err != nil {
			fmt.Fprintf(p.Out, "failed:  %s (%v)\n", name, err)
			result.Add(types.ItemFailed)
			continue
		}
		rows = append(rows, datacite.ListingRow{DOI: s.DOI, URL: event.LandingURL(s.ID)})
		fmt.Fprintf(p.Out, "written: %s\n", name)
		result.Add(types.ItemDone)
	}

	listing := datacite.ListingName(event.Name)
	if err := datacite.WriteListing(filepath.Join(dir, listing), rows); err != nil {
		return result, err
	}
	fmt.Fprintf(p.Out, "written: %s (%d DOIs)\n", listing, len(rows))
	result.Summarize(p.Out, "written")
	return result, ctx.Err()
}

func (p *Pipeline) writeRecord(ctx context.Context, s types.Submission, path string) error {
	rec, err := datacite.NewRecord(s, p.Config.Event)
	if err != nil {
		return err
	}
	if err := datacite.WriteRecord(path, rec); err != nil {
		return err
	}
	if p.Ledger == nil {
		return nil
	}
	sum, err := stamp.SHA256File(openconf.StampedPDFPath(p.Config.Paths.PDFDir(), s.ID))
	if err != nil {
		return fmt.Errorf("hashing stamped paper: %w", err)
	}
	return p.Ledger.Record(ctx, types.Publication{
		ID:         s.ID,
		DOI:        s.DOI,
		Title:      s.Title,
		LandingURL: p.Config.Event.LandingURL(s.ID),
		PDFURL:     p.Config.Event.PDFURL(s.ID),
		PDFSHA256:  sum,
		XMLPath:    path,
		RunID:      p.RunID,
		RecordedAt: p.now(),
	})
}

// Bibliography exports the stamped papers as CSL-YAML.
func (p *Pipeline) Bibliography(_ context.Context) (types.BatchResult, error) {
	var result types.BatchResult
	if err := p.Load(); err != nil {
		return result, err
	}
	subs := p.stamped()
	tagger := p.tagger()
	pages := make(map[int]int, len(subs))
	for _, s := range subs {
		n, err := tagger.Pages(s.ID)
		if err != nil {
			fmt.Fprintf(p.Warn, "warning: p%d: %v\n", s.ID, err)
			continue
		}
		pages[s.ID] = n
	}
	if err := os.MkdirAll(p.Config.Paths.XMLDir, 0o755); err != nil {
		return result, fmt.Errorf("creating %s: %w", p.Config.Paths.XMLDir, err)
	}
	path := filepath.Join(p.Config.Paths.XMLDir, bibliography.FileName)
	if err := bibliography.WriteFile(path, subs, p.Config.Event, pages); err != nil {
		return result, err
	}
	result.Done = len(subs)
	fmt.Fprintf(p.Out, "written: %s (%d entries)\n", bibliography.FileName, len(subs))
	return result, nil
}

// Booklet names accepted by Compile.
const (
	AbstractsBooklet   = "abstracts"
	ProceedingsBooklet = "proceedings"
)

// Target returns the compile target of a booklet.
func (p *Pipeline) Target(name string) (booklet.Target, error) {
	paths, cfg := p.Config.Paths, p.Config.Booklet
	switch name {
	case AbstractsBooklet:
		return booklet.Target{Dir: paths.AbstractsBookletDir(), Job: cfg.AbstractsJob, Main: booklet.AbstractsMain}, nil
	case ProceedingsBooklet:
		return booklet.Target{Dir: paths.ProceedingsBookletDir(), Job: cfg.ProceedingsJob, Main: booklet.ProceedingsMain}, nil
	default:
		return booklet.Target{}, fmt.Errorf("unknown booklet %q (want %s or %s)", name, AbstractsBooklet, ProceedingsBooklet)
	}
}

// Compile builds the PDF of a booklet with latexmk.
func (p *Pipeline) Compile(ctx context.Context, name string) error {
	target, err := p.Target(name)
	if err != nil {
		return err
	}
	c, err := p.NewCompiler(ctx)
	if err != nil {
		return err
	}
	if err := booklet.Compile(ctx, c, target); err != nil {
		return err
	}
	fmt.Fprintf(p.Out, "compiled: %s.pdf\n", target.Job)
	return nil
}
