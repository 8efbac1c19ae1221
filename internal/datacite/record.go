// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package datacite builds DataCite kernel-4 metadata records for DOI
// registration and the DOI-to-URL listing submitted with them.
package datacite

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/pdiddy/proceedings-engine/pkg/types"
)

const (
	namespace      = "http://datacite.org/schema/kernel-4"
	namespaceXSI   = "http://www.w3.org/2001/XMLSchema-instance"
	schemaLocation = "http://datacite.org/schema/kernel-4 http://schema.datacite.org/meta/kernel-4.3/metadata.xsd"
)

// Resource is the root element of a DataCite record.
type Resource struct {
	XMLName        xml.Name    `xml:"resource"`
	Xmlns          string      `xml:"xmlns,attr"`
	XmlnsXSI       string      `xml:"xmlns:xsi,attr"`
	SchemaLocation string      `xml:"xsi:schemaLocation,attr"`
	Generator      xml.Comment `xml:",comment"`

	Identifier      Identifier    `xml:"identifier"`
	Creators        []Creator     `xml:"creators>creator"`
	Titles          []string      `xml:"titles>title"`
	Publisher       string        `xml:"publisher"`
	PublicationYear int           `xml:"publicationYear"`
	Subjects        []string      `xml:"subjects>subject"`
	Language        string        `xml:"language"`
	ResourceType    ResourceType  `xml:"resourceType"`
	Descriptions    []Description `xml:"descriptions>description"`
}

// Identifier is the DOI of the resource.
type Identifier struct {
	Type  string `xml:"identifierType,attr"`
	Value string `xml:",chardata"`
}

// Creator is one author.
type Creator struct {
	Name        CreatorName `xml:"creatorName"`
	GivenName   string      `xml:"givenName"`
	FamilyName  string      `xml:"familyName"`
	Affiliation string      `xml:"affiliation,omitempty"`
}

// CreatorName is the "Family, Given" display name.
type CreatorName struct {
	NameType string `xml:"nameType,attr"`
	Value    string `xml:",chardata"`
}

// ResourceType is the free-text type under a general category.
type ResourceType struct {
	General string `xml:"resourceTypeGeneral,attr"`
	Value   string `xml:",chardata"`
}

// Description is a typed free-text description.
type Description struct {
	Type  string `xml:"descriptionType,attr"`
	Value string `xml:",chardata"`
}

// NewRecord builds the record of a DOI-bearing submission. Text is taken raw
// from the export; XML escaping is left to the encoder.
func NewRecord(sub types.Submission, event types.EventConfig) (Resource, error) {
	if !sub.HasDOI() {
		return Resource{}, fmt.Errorf("submission %d has no DOI", sub.ID)
	}

	r := Resource{
		Xmlns:           namespace,
		XmlnsXSI:        namespaceXSI,
		SchemaLocation:  schemaLocation,
		Generator:       xml.Comment(fmt.Sprintf(" Generated for %s by proceedings-engine ", event.Publisher)),
		Identifier:      Identifier{Type: "DOI", Value: sub.DOI},
		Titles:          []string{sub.Title},
		Publisher:       event.Publisher,
		PublicationYear: event.Year,
		Subjects:        sub.KeywordList(),
		Language:        event.Language,
		ResourceType:    ResourceType{General: "Text", Value: event.ResourceType},
		Descriptions:    []Description{{Type: "Abstract", Value: sub.Abstract}},
	}
	for _, a := range sub.Authors {
		r.Creators = append(r.Creators, Creator{
			Name:        CreatorName{NameType: "Personal", Value: a.FamilyName + ", " + a.GivenName},
			GivenName:   a.GivenName,
			FamilyName:  a.FamilyName,
			Affiliation: a.Affiliation,
		})
	}
	return r, nil
}

// Marshal encodes the record with an XML declaration.
func (r Resource) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")
	if err := enc.Encode(r); err != nil {
		return nil, fmt.Errorf("encoding record %s: %w", r.Identifier.Value, err)
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// FileName returns the record file name of a submission.
func FileName(id int) string {
	return "p" + strconv.Itoa(id) + ".xml"
}

// WriteRecord encodes r to path, creating the parent directory.
func WriteRecord(path string, r Resource) error {
	data, err := r.Marshal()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
