// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package webindex

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/proceedings-engine/pkg/types"
)

type fakeConverter struct {
	src string
	err error
}

func (f *fakeConverter) Convert(_ context.Context, src string) (string, error) {
	f.src = src
	return "<html>toc</html>", f.err
}

func testData() (types.Program, types.SubmissionIndex) {
	program := types.Program{Themes: []types.Theme{
		{Name: "Convection", PaperIDs: []int{3, 99}},
		{Name: "Rayonnement", PaperIDs: []int{1}},
	}}
	subs := types.Index([]types.Submission{
		{ID: 1, Title: "Radiative cooling", Authors: []types.Author{{FamilyName: "Curie", GivenName: "Marie"}}},
		{ID: 3, Title: "Natural convection", Authors: []types.Author{
			{FamilyName: "Dupont", GivenName: "Jean"},
			{FamilyName: "Martin", GivenName: "Claire"},
		}},
	})
	return program, subs
}

func TestRender(t *testing.T) {
	program, subs := testData()
	var warn bytes.Buffer

	got := Render("# Index\n\n", program, subs, "https://example.org/Abstracts/", &warn)

	want := "# Index\n\n" +
		"### Convection\n\n" +
		"[Natural convection](https://example.org/Abstracts/p3.html)<br>Jean Dupont, Claire Martin\n\n" +
		"### Rayonnement\n\n" +
		"[Radiative cooling](https://example.org/Abstracts/p1.html)<br>Marie Curie\n\n"
	assert.Equal(t, want, got)
	assert.Contains(t, warn.String(), "unknown submission 99")
}

func TestWrite(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, HeaderFile), []byte("# Index\n\n"), 0o644))
	program, subs := testData()
	conv := &fakeConverter{}

	path, err := Write(context.Background(), conv, dir, program, subs, "https://example.org/Abstracts/", io.Discard)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "Table_of_contents.html"), path)
	assert.Equal(t, filepath.Join(dir, MarkdownFile), conv.src)
	html, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "<html>toc</html>", string(html))
}

func TestWriteErrors(t *testing.T) {
	program, subs := testData()

	_, err := Write(context.Background(), &fakeConverter{}, t.TempDir(), program, subs, "", io.Discard)
	assert.ErrorContains(t, err, "reading index header")

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, HeaderFile), nil, 0o644))
	_, err = Write(context.Background(), &fakeConverter{err: errors.New("exit status 1")}, dir, program, subs, "", io.Discard)
	assert.ErrorContains(t, err, "converting table of contents")
}
