// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package latex prepares submission text for LaTeX output: ordered
// character and unit substitutions, index keys, name casing, and table
// layout helpers.
package latex

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed substitutions.toml
var defaultSubstitutions []byte

// Rule replaces every occurrence of From with To.
type Rule struct {
	From string `toml:"from"`
	To   string `toml:"to"`
}

// Table is an ordered list of substitution rules. Rules run one after the
// other over the whole string, so a later rule sees the output of earlier ones.
type Table struct {
	Rules []Rule `toml:"rule"`
}

// DefaultTable returns the built-in substitution table.
func DefaultTable() *Table {
	t, err := parseTable(defaultSubstitutions)
	if err != nil {
		panic(fmt.Sprintf("built-in substitution table: %v", err))
	}
	return t
}

// LoadTable reads a substitution table from a TOML file. An empty path
// returns the built-in table.
func LoadTable(path string) (*Table, error) {
	if path == "" {
		return DefaultTable(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading substitution table: %w", err)
	}
	t, err := parseTable(data)
	if err != nil {
		return nil, fmt.Errorf("parsing substitution table %s: %w", path, err)
	}
	return t, nil
}

func parseTable(data []byte) (*Table, error) {
	var t Table
	if err := toml.Unmarshal(data, &t); err != nil {
		return nil, err
	}
	for i, r := range t.Rules {
		if r.From == "" {
			return nil, fmt.Errorf("rule %d: empty from", i+1)
		}
	}
	return &t, nil
}

// Apply trims s and runs every rule over it in order.
func (t *Table) Apply(s string) string {
	s = strings.TrimSpace(s)
	if t == nil {
		return s
	}
	for _, r := range t.Rules {
		s = strings.ReplaceAll(s, r.From, r.To)
	}
	return s
}
