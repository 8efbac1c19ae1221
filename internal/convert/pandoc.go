// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
)

// Input formats understood by Pandoc.
const (
	FromLaTeX    = "latex"
	FromMarkdown = "markdown"
)

// Pandoc converts documents to standalone HTML5 with pandoc.
type Pandoc struct {
	Runner     Runner
	Binary     string
	From       string
	Stylesheet string
}

// NewPandoc returns a converter reading the from format.
func NewPandoc(r Runner, binary, from, stylesheet string) *Pandoc {
	return &Pandoc{Runner: r, Binary: binary, From: from, Stylesheet: stylesheet}
}

// Args returns the pandoc command line for a source file name.
func (p *Pandoc) Args(srcName string) []string {
	args := []string{"--quiet", "-s", "-f", p.From, "-t", "html5"}
	if p.Stylesheet != "" {
		args = append(args, "-c", p.Stylesheet)
	}
	return append(args, "--metadata", "charset=utf-8", srcName)
}

// Convert runs pandoc in the source's directory, so relative \input paths
// resolve, and returns the HTML written to stdout.
func (p *Pandoc) Convert(ctx context.Context, srcPath string) (string, error) {
	var out bytes.Buffer
	err := p.Runner.Run(ctx, Invocation{
		Tool:   p.Binary,
		Args:   p.Args(filepath.Base(srcPath)),
		Dir:    filepath.Dir(srcPath),
		Stdout: &out,
	})
	if err != nil {
		return "", fmt.Errorf("converting %s: %w", filepath.Base(srcPath), err)
	}
	if out.Len() == 0 {
		return "", fmt.Errorf("pandoc produced empty output for %s", filepath.Base(srcPath))
	}
	return out.String(), nil
}
