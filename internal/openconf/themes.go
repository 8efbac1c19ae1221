// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package openconf

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"

	"github.com/pdiddy/proceedings-engine/internal/latex"
	"github.com/pdiddy/proceedings-engine/pkg/types"
)

const (
	colThemeID   = "num_id"
	colThemeName = "name_theme"
)

// ReadThemes reads the theme-assignment file.
func ReadThemes(path string) (types.Program, error) {
	f, err := os.Open(path)
	if err != nil {
		return types.Program{}, fmt.Errorf("opening themes: %w", err)
	}
	defer f.Close()
	return ParseThemes(f)
}

// ParseThemes parses a ";"-delimited file with header num_id;name_theme.
// Themes are sorted by name; IDs keep file order within a theme.
func ParseThemes(r io.Reader) (types.Program, error) {
	cr := csv.NewReader(r)
	cr.Comma = ';'
	cr.FieldsPerRecord = -1

	cols, err := cr.Read()
	if err != nil {
		return types.Program{}, fmt.Errorf("reading theme header: %w", err)
	}
	h := newHeader(cols)
	if !h.has(colThemeID) || !h.has(colThemeName) {
		return types.Program{}, fmt.Errorf("theme header must contain %s and %s", colThemeID, colThemeName)
	}

	byName := make(map[string][]int)
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return types.Program{}, fmt.Errorf("reading themes: %w", err)
		}
		name := h.get(row, colThemeName)
		raw := h.get(row, colThemeID)
		if name == "" && raw == "" {
			continue
		}
		id, err := strconv.Atoi(raw)
		if err != nil {
			line, _ := cr.FieldPos(0)
			return types.Program{}, fmt.Errorf("line %d: invalid paper ID %q", line, raw)
		}
		byName[name] = append(byName[name], id)
	}

	names := make([]string, 0, len(byName))
	for n := range byName {
		names = append(names, n)
	}
	sort.Strings(names)

	p := types.Program{Themes: make([]types.Theme, len(names))}
	for i, n := range names {
		p.Themes[i] = types.Theme{Name: n, PaperIDs: byName[n]}
	}
	return p, nil
}

// ReadReviewers reads the reviewers export and returns the title-cased full
// names from the second column, header excluded.
func ReadReviewers(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening reviewers: %w", err)
	}
	defer f.Close()

	cr := csv.NewReader(f)
	cr.FieldsPerRecord = -1
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading reviewers: %w", err)
	}

	var names []string
	for i, row := range rows {
		if i == 0 || len(row) < 2 {
			continue
		}
		if name := latex.TitleCase(row[1]); name != "" {
			names = append(names, name)
		}
	}
	return names, nil
}
