// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package stamp writes the DOI link onto the first page of submitted papers
// and counts PDF pages.
package stamp

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/pdiddy/proceedings-engine/internal/openconf"
	"github.com/pdiddy/proceedings-engine/pkg/types"
)

// stampDesc places the link 85pt from the left edge and 30pt above the
// bottom edge of the page, black Helvetica 11pt, unrotated.
const stampDesc = "font:Helvetica, points:11, pos:bl, off:85 30, scale:1 abs, rot:0, fillc:#000000, op:1"

// Stamper edits PDF files. PDFCPU is the production implementation.
type Stamper interface {
	// StampFirstPage writes text on page 1 of in and saves the result to out.
	StampFirstPage(in, out, text string) error

	// PageCount returns the number of pages of a PDF.
	PageCount(path string) (int, error)
}

// PDFCPU implements Stamper with pdfcpu.
type PDFCPU struct {
	conf *model.Configuration
}

// NewPDFCPU returns a Stamper using pdfcpu's default configuration.
func NewPDFCPU() *PDFCPU {
	return &PDFCPU{conf: model.NewDefaultConfiguration()}
}

// StampFirstPage adds text as an on-top stamp on page 1.
func (p *PDFCPU) StampFirstPage(in, out, text string) error {
	if err := api.AddTextWatermarksFile(in, out, []string{"1"}, true, text, stampDesc, p.conf); err != nil {
		return fmt.Errorf("stamping %s: %w", in, err)
	}
	return nil
}

// PageCount returns the page count of the PDF at path.
func (p *PDFCPU) PageCount(path string) (int, error) {
	n, err := api.PageCountFile(path)
	if err != nil {
		return 0, fmt.Errorf("counting pages of %s: %w", path, err)
	}
	return n, nil
}

// Tagger stamps DOI links onto the papers in PDFDir.
type Tagger struct {
	Stamper   Stamper
	PDFDir    string
	Overwrite bool
}

// NewTagger returns a Tagger over pdfDir.
func NewTagger(s Stamper, pdfDir string, overwrite bool) *Tagger {
	return &Tagger{Stamper: s, PDFDir: pdfDir, Overwrite: overwrite}
}

// DOIURL returns the resolver URL printed on a stamped paper.
func DOIURL(doi string) string {
	return "https://doi.org/" + doi
}

// Tag stamps sub's paper and reports whether a stamped PDF is available.
// Submissions without a DOI or without an uploaded paper are not tagged. An
// existing stamped file is reused unless Overwrite is set.
func (t *Tagger) Tag(sub types.Submission) (bool, error) {
	if !sub.HasDOI() {
		return false, nil
	}
	out := t.StampedPath(sub.ID)
	if !t.Overwrite {
		if _, err := os.Stat(out); err == nil {
			return true, nil
		}
	}
	in := openconf.PDFPath(t.PDFDir, sub.ID)
	if _, err := os.Stat(in); err != nil {
		return false, nil
	}
	if err := t.Stamper.StampFirstPage(in, out, DOIURL(sub.DOI)); err != nil {
		return false, err
	}
	return true, nil
}

// StampedPath returns the path of a submission's stamped paper.
func (t *Tagger) StampedPath(id int) string {
	return openconf.StampedPDFPath(t.PDFDir, id)
}

// Pages returns the page count of a submission's stamped paper.
func (t *Tagger) Pages(id int) (int, error) {
	return t.Stamper.PageCount(t.StampedPath(id))
}

// TagAll tags every submission, printing per-paper status to w.
func (t *Tagger) TagAll(subs []types.Submission, w io.Writer) types.BatchResult {
	var result types.BatchResult
	for _, s := range subs {
		ok, err := t.Tag(s)
		switch {
		case err != nil:
			fmt.Fprintf(w, "failed:  p%d (%v)\n", s.ID, err)
			result.Add(types.ItemFailed)
		case ok:
			fmt.Fprintf(w, "tagged:  p%d %s\n", s.ID, s.DOI)
			result.Add(types.ItemDone)
		default:
			result.Add(types.ItemSkipped)
		}
	}
	result.Summarize(w, "tagged")
	return result
}

// SHA256File returns the hex SHA-256 digest of a file.
func SHA256File(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("hashing %s: %w", path, err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
