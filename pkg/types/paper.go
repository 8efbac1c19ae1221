// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the proceedings pipeline.
// Implements: submission records (Submission, Author), the editorial program
// (Program, Theme), the publication ledger row (Publication), and the
// pipeline configuration.
package types

import (
	"strings"
)

// Author identifies one author of a submission. Names are trimmed and
// title-cased at ingestion.
type Author struct {
	// FamilyName is the author's family name (the NOM column).
	FamilyName string `json:"family_name" yaml:"family_name"`

	// GivenName is the author's given name (the PRÉNOM column).
	GivenName string `json:"given_name" yaml:"given_name"`

	// Affiliation is the author's institutional affiliation.
	Affiliation string `json:"affiliation,omitempty" yaml:"affiliation,omitempty"`
}

// FullName returns the display form "Given Family".
func (a Author) FullName() string {
	return strings.TrimSpace(a.GivenName + " " + a.FamilyName)
}

// Submission holds one paper or abstract exported by the submission system.
// Text fields are kept raw; LaTeX escaping happens at render time.
type Submission struct {
	// ID is the submission number assigned by the submission system.
	ID int `json:"id" yaml:"id"`

	// Title is the paper title.
	Title string `json:"title" yaml:"title"`

	// Keywords is the free-text keyword field, separated by ";" or ",".
	Keywords string `json:"keywords" yaml:"keywords"`

	// Abstract is the abstract body. Line breaks are paragraph breaks.
	Abstract string `json:"abstract" yaml:"abstract"`

	// ContactEmail is the corresponding author's e-mail address.
	ContactEmail string `json:"contact_email" yaml:"contact_email"`

	// ContactFamilyName is the corresponding author's family name, used to
	// mark that author in the author line.
	ContactFamilyName string `json:"contact_family_name" yaml:"contact_family_name"`

	// Authors lists the authors in submission order.
	Authors []Author `json:"authors" yaml:"authors"`

	// DOI is the persistent identifier. Empty for work-in-progress
	// submissions that have no full paper.
	DOI string `json:"doi,omitempty" yaml:"doi,omitempty"`

	// Row holds every non-empty column of the export row, for columns the
	// pipeline does not map.
	Row map[string]string `json:"-" yaml:"-"`
}

// Column returns the raw value of an export column, or "" when absent.
func (s Submission) Column(name string) string {
	return s.Row[name]
}

// HasDOI reports whether the submission was assigned a DOI.
func (s Submission) HasDOI() bool {
	return s.DOI != ""
}

// Affiliations returns the distinct non-empty affiliations in first-seen
// author order. Affiliation numbers in rendered documents are 1-based
// indexes into this slice.
func (s Submission) Affiliations() []string {
	var out []string
	seen := make(map[string]bool)
	for _, a := range s.Authors {
		if a.Affiliation == "" || seen[a.Affiliation] {
			continue
		}
		seen[a.Affiliation] = true
		out = append(out, a.Affiliation)
	}
	return out
}

// AffiliationIndex returns the 1-based affiliation number of an author, or 0
// when the author has no affiliation.
func (s Submission) AffiliationIndex(a Author) int {
	for i, aff := range s.Affiliations() {
		if aff == a.Affiliation {
			return i + 1
		}
	}
	return 0
}

// IsContact reports whether a is the corresponding author. The comparison
// ignores case because the contact column is not title-cased by the export.
func (s Submission) IsContact(a Author) bool {
	return s.ContactFamilyName != "" && strings.EqualFold(strings.TrimSpace(s.ContactFamilyName), a.FamilyName)
}

// KeywordList splits the keyword field on ";" and ",", dropping blanks.
func (s Submission) KeywordList() []string {
	fields := strings.FieldsFunc(s.Keywords, func(r rune) bool {
		return r == ';' || r == ','
	})
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

// AuthorNames returns the authors' display names in order.
func (s Submission) AuthorNames() []string {
	names := make([]string, len(s.Authors))
	for i, a := range s.Authors {
		names[i] = a.FullName()
	}
	return names
}

// SubmissionIndex maps submission IDs to records.
type SubmissionIndex map[int]Submission

// Index builds a SubmissionIndex from a slice. Later duplicates overwrite
// earlier ones; callers that care use openconf.Validate first.
func Index(subs []Submission) SubmissionIndex {
	idx := make(SubmissionIndex, len(subs))
	for _, s := range subs {
		idx[s.ID] = s
	}
	return idx
}
