// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package openconf reads the CSV exports of the submission-management system:
// submissions, theme assignment, and reviewers.
package openconf

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pdiddy/proceedings-engine/internal/latex"
	"github.com/pdiddy/proceedings-engine/pkg/types"
)

// maxAuthors bounds the author column scan.
const maxAuthors = 64

// header maps trimmed column names to their index.
type header map[string]int

func newHeader(cols []string) header {
	h := make(header, len(cols))
	for i, c := range cols {
		c = strings.TrimSpace(strings.TrimPrefix(c, "\ufeff"))
		if _, dup := h[c]; !dup {
			h[c] = i
		}
	}
	return h
}

// get returns the trimmed value of column name, or "" when the column is
// absent or the row is short.
func (h header) get(row []string, name string) string {
	i, ok := h[name]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// record maps every column to its trimmed value, omitting empty values.
func (h header) record(row []string) map[string]string {
	out := make(map[string]string, len(h))
	for name := range h {
		if v := h.get(row, name); v != "" {
			out[name] = v
		}
	}
	return out
}

func (h header) has(name string) bool {
	_, ok := h[name]
	return ok
}

// ReadSubmissions reads a submissions export. Column names come from fields.
// Submissions are returned in file order.
func ReadSubmissions(path string, fields types.FieldsConfig) ([]types.Submission, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening submissions: %w", err)
	}
	defer f.Close()

	subs, err := ParseSubmissions(f, fields)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", filepath.Base(path), err)
	}
	return subs, nil
}

// ParseSubmissions parses a comma-delimited submissions export with a header
// row.
func ParseSubmissions(r io.Reader, fields types.FieldsConfig) ([]types.Submission, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	cols, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("empty export")
		}
		return nil, fmt.Errorf("reading header: %w", err)
	}
	h := newHeader(cols)
	if !h.has(fields.ID) {
		return nil, fmt.Errorf("missing column %q", fields.ID)
	}

	var subs []types.Submission
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading row: %w", err)
		}

		raw := h.get(row, fields.ID)
		if raw == "" {
			continue
		}
		id, err := strconv.Atoi(raw)
		if err != nil {
			line, _ := cr.FieldPos(0)
			return nil, fmt.Errorf("line %d: invalid submission ID %q", line, raw)
		}

		subs = append(subs, types.Submission{
			ID:                id,
			Title:             h.get(row, fields.Title),
			Keywords:          h.get(row, fields.Keywords),
			Abstract:          normalizeNewlines(h.get(row, fields.Abstract)),
			ContactEmail:      h.get(row, fields.ContactEmail),
			ContactFamilyName: h.get(row, fields.ContactFamilyName),
			Authors:           readAuthors(h, row, fields),
			DOI:               h.get(row, fields.DOI),
			Row:               h.record(row),
		})
	}
	return subs, nil
}

// readAuthors collects AUTHOR n columns for n = 1.. while the family-name
// column exists. Authors missing either name are dropped.
func readAuthors(h header, row []string, fields types.FieldsConfig) []types.Author {
	var authors []types.Author
	for n := 1; n <= maxAuthors; n++ {
		familyCol := fmt.Sprintf(fields.AuthorFamilyName, n)
		if !h.has(familyCol) {
			break
		}
		family := h.get(row, familyCol)
		given := h.get(row, fmt.Sprintf(fields.AuthorGivenName, n))
		if family == "" || given == "" {
			continue
		}
		authors = append(authors, types.Author{
			FamilyName:  latex.TitleCase(family),
			GivenName:   latex.TitleCase(given),
			Affiliation: h.get(row, fmt.Sprintf(fields.AuthorAffiliation, n)),
		})
	}
	return authors
}

func normalizeNewlines(s string) string {
	return strings.ReplaceAll(s, "\r\n", "\n")
}

// PDFPath returns the path of a submission's uploaded paper.
func PDFPath(pdfDir string, id int) string {
	return filepath.Join(pdfDir, strconv.Itoa(id)+".pdf")
}

// StampedPDFPath returns the path of a submission's DOI-stamped paper.
func StampedPDFPath(pdfDir string, id int) string {
	return filepath.Join(pdfDir, strconv.Itoa(id)+"_doi.pdf")
}

// AssignDOIs gives a DOI to every submission that has no DOI from the export
// and whose full paper was uploaded to pdfDir. Submissions without a paper
// stay work in progress.
func AssignDOIs(subs []types.Submission, pdfDir string, event types.EventConfig) {
	for i := range subs {
		if subs[i].DOI != "" {
			continue
		}
		if _, err := os.Stat(PDFPath(pdfDir, subs[i].ID)); err == nil {
			subs[i].DOI = event.DOI(subs[i].ID)
		}
	}
}
