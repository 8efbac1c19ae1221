// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package bibliography exports the published papers as CSL-YAML so they can
// be cited with Pandoc and reference managers.
package bibliography

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/proceedings-engine/pkg/types"
)

// FileName is the default export file name.
const FileName = "proceedings.csl.yaml"

// CSLItem represents a bibliographic entry in CSL (Citation Style Language)
// format. The field names and structure follow the CSL-JSON/CSL-YAML schema.
type CSLItem struct {
	ID             string    `yaml:"id"`
	Type           string    `yaml:"type"`
	Title          string    `yaml:"title"`
	Author         []CSLName `yaml:"author,omitempty"`
	ContainerTitle string    `yaml:"container-title,omitempty"`
	Publisher      string    `yaml:"publisher,omitempty"`
	Abstract       string    `yaml:"abstract,omitempty"`
	Keyword        string    `yaml:"keyword,omitempty"`
	Issued         *CSLDate  `yaml:"issued,omitempty"`
	Language       string    `yaml:"language,omitempty"`
	NumberOfPages  string    `yaml:"number-of-pages,omitempty"`
	DOI            string    `yaml:"DOI,omitempty"`
	URL            string    `yaml:"URL,omitempty"`
}

// CSLName represents a person's name in CSL format.
type CSLName struct {
	Family string `yaml:"family,omitempty"`
	Given  string `yaml:"given,omitempty"`
}

// CSLDate represents a date in CSL format using date-parts.
type CSLDate struct {
	DateParts [][]int `yaml:"date-parts"`
}

// ToCSLItem converts a DOI-bearing submission. pages is the stamped PDF's
// page count, 0 when unknown.
func ToCSLItem(sub types.Submission, event types.EventConfig, pages int) CSLItem {
	item := CSLItem{
		ID:             fmt.Sprintf("%s-%03d", event.Name, sub.ID),
		Type:           "paper-conference",
		Title:          sub.Title,
		ContainerTitle: event.Title,
		Publisher:      event.Publisher,
		Abstract:       sub.Abstract,
		Keyword:        strings.Join(sub.KeywordList(), ", "),
		Language:       strings.ToLower(event.Language),
		DOI:            sub.DOI,
		URL:            event.LandingURL(sub.ID),
	}
	if event.Year > 0 {
		item.Issued = &CSLDate{DateParts: [][]int{{event.Year}}}
	}
	if pages > 0 {
		item.NumberOfPages = strconv.Itoa(pages)
	}
	for _, a := range sub.Authors {
		item.Author = append(item.Author, CSLName{Family: a.FamilyName, Given: a.GivenName})
	}
	return item
}

// FormatCSL writes the DOI-bearing submissions as a CSL-YAML list to w, in
// the order given. pages maps submission IDs to page counts.
func FormatCSL(subs []types.Submission, event types.EventConfig, pages map[int]int, w io.Writer) error {
	items := make([]CSLItem, 0, len(subs))
	for _, s := range subs {
		if !s.HasDOI() {
			continue
		}
		items = append(items, ToCSLItem(s, event, pages[s.ID]))
	}
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(items)
}

// WriteFile writes the CSL-YAML export to path.
func WriteFile(path string, subs []types.Submission, event types.EventConfig, pages map[int]int) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()
	if err := FormatCSL(subs, event, pages, f); err != nil {
		return fmt.Errorf("encoding CSL: %w", err)
	}
	return f.Close()
}
