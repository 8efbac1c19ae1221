// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package abstracts

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/proceedings-engine/internal/latex"
	"github.com/pdiddy/proceedings-engine/pkg/types"
)

func testSubmission() types.Submission {
	return types.Submission{
		ID:                12,
		Title:             "Transferts & pertes",
		Keywords:          "foam; conduction",
		Abstract:          "First line\nSecond line",
		ContactEmail:      "jdupont@example.org",
		ContactFamilyName: "DUPONT",
		Authors: []types.Author{
			{FamilyName: "Dupré", GivenName: "Étienne", Affiliation: "LEMTA"},
			{FamilyName: "Dupont", GivenName: "Jean", Affiliation: "CETHIL"},
			{FamilyName: "Martin", GivenName: "Claire", Affiliation: "LEMTA"},
		},
		DOI: "10.25855/SFT2021-012",
	}
}

func testRenderer() *Renderer {
	return NewRenderer(types.DefaultConfig().Event, latex.DefaultTable())
}

func TestRenderBooklet(t *testing.T) {
	out := testRenderer().RenderBooklet(testSubmission())

	for _, want := range []string{
		"NE PAS MODIFIER",
		"\\newpage\n\n",
		"%% Papier 12\n",
		"\\index{DupreEtienne@Dupré, Étienne}\n",
		"\\addcontentsline{toc}{section}{Transferts \\& pertes}\n",
		"{\\Large \\textbf{Transferts \\& pertes}}\\label{ref:12}\n",
		"Étienne Dupré$^{1}$, Jean Dupont$^{2,\\star}$, Claire Martin$^{1}$\\\\[2mm]\n",
		"$^{\\star}$ \\Letter : \\url{jdupont@example.org}\\\\[2mm]\n",
		"{\\footnotesize $^{1}$ LEMTA}\\\\\n{\\footnotesize $^{2}$ CETHIL}\\\\\n[4mm]\n",
		"\\noindent \\textbf{Mots clés : } foam; conduction\\\\[4mm]\n",
		"{\\normalsize\nFirst line\n\nSecond line",
		"\\vfill doi : \\url{https://doi.org/10.25855/SFT2021-012}\n",
	} {
		assert.Contains(t, out, want)
	}
	assert.NotContains(t, out, "BgThispage")
	assert.True(t, strings.HasSuffix(out, "\n}\n \n"))
}

func TestRenderBookletWorkInProgress(t *testing.T) {
	sub := testSubmission()
	sub.DOI = ""
	out := testRenderer().RenderBooklet(sub)

	assert.Contains(t, out, "\\backgroundsetup{contents={Work In Progress},scale=7}\n\\BgThispage\n")
	assert.Contains(t, out, "\\vfill Work In Progress\n")
	assert.NotContains(t, out, "doi.org")
}

func TestRenderBookletSectionMarkers(t *testing.T) {
	out := testRenderer().RenderBooklet(testSubmission())
	for _, want := range []string{
		"% Indexations\n\\index{",
		"%\n% Titre\n\\begin{flushleft}\n",
		"%\n% Auteurs\n",
		"%\n% Mots clés\n\\noindent",
		"%\n% Résumé\n\\noindent",
	} {
		assert.Contains(t, out, want)
	}

	event := types.DefaultConfig().Event
	event.Labels.Title = "Title"
	event.Labels.Authors = "Authors"
	event.Labels.Indexing = "Index entries"
	out = NewRenderer(event, nil).RenderBooklet(testSubmission())
	assert.Contains(t, out, "% Index entries\n")
	assert.Contains(t, out, "%\n% Title\n")
	assert.Contains(t, out, "%\n% Authors\n")
	assert.NotContains(t, out, "Auteurs")
}

func TestRenderHTMLSource(t *testing.T) {
	r := testRenderer()

	out := r.RenderHTMLSource(testSubmission(), true)
	assert.True(t, strings.HasPrefix(out, "\\documentclass[a4paper]{article}\n\\input{../config_html.tex}\n\\begin{document}\n"))
	assert.Contains(t, out, "{\\Large \\textbf{Transferts \\& pertes}}\n")
	assert.Contains(t, out, "\\href{https://www.sft.asso.fr/DOIeditions/CFT2021/PDF/12_doi.pdf}{download}")
	assert.True(t, strings.HasSuffix(out, "\\end{document}\n"))
	assert.NotContains(t, out, "\\index{")
	assert.NotContains(t, out, "\\label{")
	assert.NotContains(t, out, "\\addcontentsline")

	out = r.RenderHTMLSource(testSubmission(), false)
	assert.NotContains(t, out, "\\href{")
}

func TestRenderProceedingsPage(t *testing.T) {
	out := testRenderer().RenderProceedingsPage(testSubmission(), filepath.Join("..", "..", "PDF", "12_doi.pdf"))

	assert.Contains(t, out, "\\cleardoublepage\n\n")
	assert.Contains(t, out, "\\index{DupontJean@Dupont, Jean}\n")
	assert.Contains(t, out, "\\phantomsection\\addtocounter{section}{1}\n\\addcontentsline{toc}{section}{Transferts \\& pertes}\n\\label{ref:12}\n")
	assert.True(t, strings.HasSuffix(out,
		"\\includepdf[pages=-,pagecommand={\\thispagestyle{fancyplain}},width=1.05\\paperwidth]{../../PDF/12_doi.pdf}\n"))
	assert.NotContains(t, out, "\\newpage")
	assert.NotContains(t, out, "\\normalsize")
}

func TestSuperscript(t *testing.T) {
	tests := []struct {
		name   string
		author escapedAuthor
		want   string
	}{
		{"affiliation only", escapedAuthor{aff: 3}, "$^{3}$"},
		{"contact", escapedAuthor{aff: 1, contact: true}, "$^{1,\\star}$"},
		{"contact without affiliation", escapedAuthor{contact: true}, "$^{\\star}$"},
		{"none", escapedAuthor{}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, superscript(tt.author))
		})
	}
}

func TestWriteAll(t *testing.T) {
	dir := t.TempDir()
	r := testRenderer()
	wip := testSubmission()
	wip.ID = 13
	wip.DOI = ""
	subs := []types.Submission{testSubmission(), wip}

	var buf bytes.Buffer
	result := r.WriteBooklet(subs, dir, false, &buf)
	assert.Equal(t, types.BatchResult{Done: 2}, result)
	assert.Contains(t, buf.String(), "written: p12.tex")
	assert.Contains(t, buf.String(), "written: (WIP) p13.tex")

	data, err := os.ReadFile(filepath.Join(dir, "p12.tex"))
	require.NoError(t, err)
	assert.Equal(t, r.RenderBooklet(subs[0]), string(data))

	buf.Reset()
	result = r.WriteBooklet(subs, dir, false, &buf)
	assert.Equal(t, types.BatchResult{Skipped: 2}, result)
	assert.Contains(t, buf.String(), "skipped: p12.tex (already exists)")

	buf.Reset()
	result = r.WriteBooklet(subs, dir, true, &buf)
	assert.Equal(t, 2, result.Done)
	assert.Contains(t, buf.String(), "Batch summary: 2 written, 0 skipped, 0 failed (total: 2)")
}

func TestWriteAllFailure(t *testing.T) {
	// A regular file where the output directory should be.
	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))

	var buf bytes.Buffer
	result := testRenderer().WriteBooklet([]types.Submission{testSubmission()}, blocker, true, &buf)
	assert.True(t, result.HasFailures())
	assert.Contains(t, buf.String(), "failed:  p12.tex")
}

func TestWriteHTMLSources(t *testing.T) {
	dir := t.TempDir()
	pdfDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(pdfDir, "12_doi.pdf"), []byte("%PDF"), 0o644))

	var buf bytes.Buffer
	result := testRenderer().WriteHTMLSources([]types.Submission{testSubmission()}, dir, pdfDir, &buf)
	assert.Equal(t, 1, result.Done)

	data, err := os.ReadFile(filepath.Join(dir, "p12.tex"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "12_doi.pdf}{download}")
}
