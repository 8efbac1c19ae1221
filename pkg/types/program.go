// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// Theme is an editorial category: one chapter of each booklet.
type Theme struct {
	// Name is the chapter title.
	Name string `json:"name" yaml:"name"`

	// PaperIDs lists the submissions of the theme in assignment-file order.
	PaperIDs []int `json:"paper_ids" yaml:"paper_ids"`
}

// Program is the ordered list of themes. Themes are sorted by name.
type Program struct {
	Themes []Theme `json:"themes" yaml:"themes"`
}

// PaperIDs returns every submission ID in chapter order.
func (p Program) PaperIDs() []int {
	var ids []int
	for _, t := range p.Themes {
		ids = append(ids, t.PaperIDs...)
	}
	return ids
}

// Publication is one ledger row: a paper whose DOI metadata was generated.
type Publication struct {
	// ID is the submission ID.
	ID int `json:"id" yaml:"id"`

	// DOI is the registered identifier.
	DOI string `json:"doi" yaml:"doi"`

	// Title is the paper title.
	Title string `json:"title" yaml:"title"`

	// LandingURL is the public abstract page the DOI resolves to.
	LandingURL string `json:"landing_url" yaml:"landing_url"`

	// PDFURL is the public location of the stamped PDF.
	PDFURL string `json:"pdf_url" yaml:"pdf_url"`

	// PDFSHA256 is the hex digest of the stamped PDF.
	PDFSHA256 string `json:"pdf_sha256,omitempty" yaml:"pdf_sha256,omitempty"`

	// XMLPath is the local path of the DataCite record.
	XMLPath string `json:"xml_path" yaml:"xml_path"`

	// RunID identifies the pipeline run that last wrote the row.
	RunID string `json:"run_id" yaml:"run_id"`

	// RecordedAt is when the metadata was last generated.
	RecordedAt time.Time `json:"recorded_at" yaml:"recorded_at"`

	// PublishedAt is when the files were last uploaded. Zero if never.
	PublishedAt time.Time `json:"published_at,omitzero" yaml:"published_at,omitempty"`
}

// IsPublished reports whether the publication has been uploaded.
func (p Publication) IsPublished() bool {
	return !p.PublishedAt.IsZero()
}
