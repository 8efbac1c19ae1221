// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/proceedings-engine/internal/abstracts"
	"github.com/pdiddy/proceedings-engine/internal/booklet"
	"github.com/pdiddy/proceedings-engine/internal/convert"
	"github.com/pdiddy/proceedings-engine/internal/latex"
	"github.com/pdiddy/proceedings-engine/internal/metrics"
	"github.com/pdiddy/proceedings-engine/internal/openconf"
	"github.com/pdiddy/proceedings-engine/pkg/types"
)

const submissionsCSV = `SUBMISSION ID,TITRE,MOTS CLÉS,RÉSUMÉ,CONTACT AUTHOR EMAIL,CONTACT AUTHOR NOM,AUTHOR 1 NOM,AUTHOR 1 PRÉNOM,AUTHOR 1 AFFILIATION
12,Heat transfer in foams,foam; conduction,Foams conduct heat.,jdupont@example.org,DUPONT,DUPONT,jean,LEMTA
13,Radiative cooling,radiation,Work in progress.,c@example.org,curie,curie,marie,ESPCI
`

const themesCSV = "num_id;name_theme\n12;Conduction\n13;Rayonnement\n"

const reviewersCSV = "id,name\n1,JEAN DUPONT\n2,claire martin\n"

type fakeStamper struct{}

func (fakeStamper) StampFirstPage(in, out, text string) error {
	data, err := os.ReadFile(in)
	if err != nil {
		return err
	}
	return os.WriteFile(out, append(data, text...), 0o644)
}

func (fakeStamper) PageCount(string) (int, error) { return 8, nil }

type fakeConverter struct {
	calls []string
	err   error
}

func (f *fakeConverter) Convert(_ context.Context, src string) (string, error) {
	f.calls = append(f.calls, filepath.Base(src))
	if f.err != nil {
		return "", f.err
	}
	return "<html>" + filepath.Base(src) + "</html>", nil
}

type fakeCompiler struct{ jobs []string }

func (f *fakeCompiler) Compile(_ context.Context, _, job, _ string) error {
	f.jobs = append(f.jobs, job)
	return nil
}

type fakeLedger struct{ rows []types.Publication }

func (f *fakeLedger) Record(_ context.Context, p types.Publication) error {
	f.rows = append(f.rows, p)
	return nil
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

// newTestPipeline lays out an export tree under a temp dir: two
// submissions, of which only 12 uploaded a paper.
func newTestPipeline(t *testing.T) (*Pipeline, *fakeConverter, *bytes.Buffer) {
	t.Helper()
	root := t.TempDir()
	cfg := types.DefaultConfig()
	cfg.Paths.ImportDir = filepath.Join(root, "Imports_OpenConf")
	cfg.Paths.TexDir = filepath.Join(root, "Export_Tex")
	cfg.Paths.HTMLDir = filepath.Join(root, "Export_HTML")
	cfg.Paths.XMLDir = filepath.Join(root, "Export_XML")
	cfg.Metrics.Textfile = filepath.Join(root, "proceedings.prom")
	cfg.Booklet.Volumes = 1

	writeFile(t, cfg.Paths.SubmissionsCSV(), submissionsCSV)
	writeFile(t, cfg.Paths.ThemesCSV(), themesCSV)
	writeFile(t, cfg.Paths.ReviewersCSV(), reviewersCSV)
	writeFile(t, filepath.Join(cfg.Paths.PDFDir(), "12.pdf"), "%PDF-1.7")
	writeFile(t, filepath.Join(cfg.Paths.TexDir, booklet.ReviewersStart), "% reviewers\n")
	writeFile(t, filepath.Join(cfg.Paths.AbstractsBookletDir(), booklet.AbstractsStart), "% abstracts\n")
	writeFile(t, filepath.Join(cfg.Paths.ProceedingsBookletDir(), booklet.ProceedingsStart), "% actes\n")
	writeFile(t, filepath.Join(cfg.Paths.ProceedingsBookletDir(), booklet.ProceedingsEnd), "\\end{document}\n")
	writeFile(t, filepath.Join(cfg.Paths.HTMLDir, "Table_of_contents_start.md"), "# SFT 2021\n\n")

	var out bytes.Buffer
	conv := &fakeConverter{}
	table := latex.DefaultTable()
	p := &Pipeline{
		Config:   cfg,
		Out:      &out,
		Warn:     &out,
		Root:     root,
		Renderer: abstracts.NewRenderer(cfg.Event, table),
		Stamper:  fakeStamper{},
		Metrics:  metrics.New(),
		RunID:    "run-1",
		table:    table,
		now:      func() time.Time { return time.Date(2021, 6, 1, 0, 0, 0, 0, time.UTC) },
	}
	p.NewConverter = func(context.Context, string) (convert.Converter, error) { return conv, nil }
	return p, conv, &out
}

func TestLoadAssignsDOIs(t *testing.T) {
	p, _, _ := newTestPipeline(t)
	require.NoError(t, p.Load())

	subs := p.Submissions()
	require.Len(t, subs, 2)
	assert.Equal(t, "10.25855/SFT2021-012", subs[0].DOI)
	assert.Empty(t, subs[1].DOI)
	assert.Len(t, p.Program().Themes, 2)
}

func TestBuild(t *testing.T) {
	p, conv, out := newTestPipeline(t)
	l := &fakeLedger{}
	p.Ledger = l
	comp := &fakeCompiler{}
	p.NewCompiler = func(context.Context) (booklet.Compiler, error) { return comp, nil }

	report, err := p.Build(context.Background(), BuildOptions{Compile: true})
	require.NoError(t, err, out.String())
	assert.False(t, report.HasFailures())

	names := make([]string, len(report.Stages))
	for i, s := range report.Stages {
		names[i] = s.Name
	}
	assert.Equal(t, []string{
		StageReviewers, StageAbstracts, StageBooklet, StageIndex,
		StageProceedings, StageHTML, StageXML, StageBibliography,
		"compile-abstracts", "compile-proceedings",
	}, names)

	paths := p.Config.Paths
	assert.FileExists(t, filepath.Join(paths.TexDir, booklet.ReviewersMain))
	assert.FileExists(t, filepath.Join(paths.AbstractsDir(), "p12.tex"))
	assert.FileExists(t, filepath.Join(paths.AbstractsDir(), "p13.tex"))
	assert.FileExists(t, filepath.Join(paths.AbstractsBookletDir(), booklet.AbstractsMain))
	assert.FileExists(t, filepath.Join(paths.ProceedingsBookletDir(), booklet.ProceedingsMain))
	assert.FileExists(t, filepath.Join(paths.ProceedingsPagesDir(), "p12.tex"))
	assert.NoFileExists(t, filepath.Join(paths.ProceedingsPagesDir(), "p13.tex"))
	assert.FileExists(t, filepath.Join(paths.PDFDir(), "12_doi.pdf"))
	assert.FileExists(t, filepath.Join(paths.HTMLDir, "Table_of_contents.html"))
	assert.FileExists(t, filepath.Join(paths.HTMLAbstractsDir(), "p12.html"))
	assert.FileExists(t, filepath.Join(paths.HTMLAbstractsDir(), "p13.html"))
	assert.FileExists(t, filepath.Join(paths.XMLDir, "p12.xml"))
	assert.NoFileExists(t, filepath.Join(paths.XMLDir, "p13.xml"))
	assert.FileExists(t, filepath.Join(paths.XMLDir, "proceedings.csl.yaml"))
	assert.FileExists(t, p.Config.Metrics.Textfile)

	listing, err := os.ReadFile(filepath.Join(paths.XMLDir, "listing_SFT2021_xml.txt"))
	require.NoError(t, err)
	assert.Equal(t, "10.25855/SFT2021-012\thttps://www.sft.asso.fr/DOIeditions/CFT2021/Abstracts/p12.html\n", string(listing))

	src, err := os.ReadFile(filepath.Join(paths.HTMLSourceDir(), "p12.tex"))
	require.NoError(t, err)
	assert.Contains(t, string(src), "PDF/12_doi.pdf")

	require.Len(t, l.rows, 1)
	assert.Equal(t, 12, l.rows[0].ID)
	assert.Equal(t, "run-1", l.rows[0].RunID)
	assert.Len(t, l.rows[0].PDFSHA256, 64)

	assert.Contains(t, conv.calls, "Table_of_contents.md")
	assert.Equal(t, []string{"Resumes_SFT2021", "Actes_SFT2021"}, comp.jobs)
}

func TestBuildCountsConverterFailures(t *testing.T) {
	p, conv, _ := newTestPipeline(t)
	require.NoError(t, p.Load())
	conv.err = errors.New("pandoc exited 64")

	res, err := p.HTML(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, res.Failed)
}

func TestBuildStopsOnStageError(t *testing.T) {
	p, _, _ := newTestPipeline(t)
	require.NoError(t, os.Remove(p.Config.Paths.ReviewersCSV()))

	report, err := p.Build(context.Background(), BuildOptions{})
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), StageReviewers+":"))
	require.Len(t, report.Stages, 1)
	assert.True(t, report.HasFailures())
	assert.FileExists(t, p.Config.Metrics.Textfile)
}

func TestLockIsExclusive(t *testing.T) {
	p, _, _ := newTestPipeline(t)
	unlock, err := p.Lock()
	require.NoError(t, err)
	defer unlock()

	other, _, _ := newTestPipeline(t)
	other.Config.Paths.TexDir = p.Config.Paths.TexDir
	_, err = other.Lock()
	assert.ErrorContains(t, err, "another build holds")
}

func TestTarget(t *testing.T) {
	p, _, _ := newTestPipeline(t)
	target, err := p.Target(ProceedingsBooklet)
	require.NoError(t, err)
	assert.Equal(t, "Actes_SFT2021", target.Job)
	assert.Equal(t, booklet.ProceedingsMain, target.Main)

	_, err = p.Target("posters")
	assert.ErrorContains(t, err, "unknown booklet")
}

func TestCheck(t *testing.T) {
	p, _, _ := newTestPipeline(t)
	findings, err := p.Check()
	require.NoError(t, err)
	for _, f := range findings {
		assert.NotEqual(t, openconf.SeverityError, f.Severity, f.String())
	}
}
