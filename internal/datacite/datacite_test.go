// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package datacite

import (
	"encoding/xml"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/proceedings-engine/pkg/types"
)

func testSubmission() types.Submission {
	return types.Submission{
		ID:       4,
		Title:    "Heat & mass transfer <in> foams",
		Keywords: "foam; conduction, radiation",
		Abstract: "Body text.",
		Authors: []types.Author{
			{FamilyName: "Dupré", GivenName: "Étienne", Affiliation: "LEMTA"},
			{FamilyName: "Martin", GivenName: "Claire"},
		},
		DOI: "10.25855/SFT2021-004",
	}
}

func TestNewRecord(t *testing.T) {
	event := types.DefaultConfig().Event
	r, err := NewRecord(testSubmission(), event)
	require.NoError(t, err)

	assert.Equal(t, Identifier{Type: "DOI", Value: "10.25855/SFT2021-004"}, r.Identifier)
	assert.Equal(t, []string{"foam", "conduction", "radiation"}, r.Subjects)
	assert.Equal(t, 2021, r.PublicationYear)
	assert.Equal(t, "FR", r.Language)
	assert.Equal(t, ResourceType{General: "Text", Value: "Acte de congrès"}, r.ResourceType)
	require.Len(t, r.Creators, 2)
	assert.Equal(t, "Dupré, Étienne", r.Creators[0].Name.Value)
	assert.Equal(t, "Personal", r.Creators[0].Name.NameType)
	assert.Equal(t, "LEMTA", r.Creators[0].Affiliation)
}

func TestNewRecordWithoutDOI(t *testing.T) {
	sub := testSubmission()
	sub.DOI = ""
	_, err := NewRecord(sub, types.DefaultConfig().Event)
	assert.Error(t, err)
}

func TestMarshal(t *testing.T) {
	r, err := NewRecord(testSubmission(), types.DefaultConfig().Event)
	require.NoError(t, err)

	data, err := r.Marshal()
	require.NoError(t, err)
	out := string(data)

	assert.True(t, strings.HasPrefix(out, `<?xml version="1.0" encoding="UTF-8"?>`))
	for _, want := range []string{
		`<resource xmlns="http://datacite.org/schema/kernel-4" xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance" xsi:schemaLocation="http://datacite.org/schema/kernel-4 http://schema.datacite.org/meta/kernel-4.3/metadata.xsd">`,
		`<!-- Generated for Société Française de Thermique by proceedings-engine -->`,
		`<identifier identifierType="DOI">10.25855/SFT2021-004</identifier>`,
		`<creatorName nameType="Personal">Dupré, Étienne</creatorName>`,
		`<title>Heat &amp; mass transfer &lt;in&gt; foams</title>`,
		`<subject>conduction</subject>`,
		`<resourceType resourceTypeGeneral="Text">Acte de congrès</resourceType>`,
		`<description descriptionType="Abstract">Body text.</description>`,
	} {
		assert.Contains(t, out, want)
	}
	// An author without affiliation has no affiliation element.
	assert.Equal(t, 1, strings.Count(out, "<affiliation>"))

	// The output is well-formed.
	var decoded struct {
		Identifier string `xml:"identifier"`
	}
	require.NoError(t, xml.Unmarshal(data, &decoded))
	assert.Equal(t, "10.25855/SFT2021-004", decoded.Identifier)
}

func TestWriteRecord(t *testing.T) {
	r, err := NewRecord(testSubmission(), types.DefaultConfig().Event)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "xml", FileName(4))
	require.NoError(t, WriteRecord(path, r))
	assert.Equal(t, "p4.xml", filepath.Base(path))
	assert.FileExists(t, path)
}

func TestWriteListing(t *testing.T) {
	path := filepath.Join(t.TempDir(), ListingName("SFT2021"))
	rows := []ListingRow{
		{DOI: "10.25855/SFT2021-012", URL: "https://example.org/Abstracts/p12.html"},
		{DOI: "10.25855/SFT2021-004", URL: "https://example.org/Abstracts/p4.html"},
	}
	require.NoError(t, WriteListing(path, rows))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t,
		"10.25855/SFT2021-004\thttps://example.org/Abstracts/p4.html\n"+
			"10.25855/SFT2021-012\thttps://example.org/Abstracts/p12.html\n",
		string(data))
	assert.Equal(t, "listing_SFT2021_xml.txt", filepath.Base(path))
}
