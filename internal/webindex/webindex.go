// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package webindex writes the Markdown table of contents of the published
// abstracts and converts it to HTML.
package webindex

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/proceedings-engine/internal/convert"
	"github.com/pdiddy/proceedings-engine/pkg/types"
)

const (
	// HeaderFile is the hand-written Markdown header in the HTML directory.
	HeaderFile = "Table_of_contents_start.md"
	// MarkdownFile is the generated table of contents.
	MarkdownFile = "Table_of_contents.md"
)

// Render returns the Markdown table of contents: header, then one "###"
// section per theme with a link and author line per paper. abstractsURL is
// the public directory holding p<ID>.html. Theme IDs missing from subs are
// reported to warn and skipped.
func Render(header string, program types.Program, subs types.SubmissionIndex, abstractsURL string, warn io.Writer) string {
	var b strings.Builder
	b.WriteString(header)
	for _, theme := range program.Themes {
		fmt.Fprintf(&b, "### %s\n\n", theme.Name)
		for _, id := range theme.PaperIDs {
			sub, ok := subs[id]
			if !ok {
				fmt.Fprintf(warn, "warning: theme %q lists unknown submission %d\n", theme.Name, id)
				continue
			}
			fmt.Fprintf(&b, "[%s](%sp%d.html)<br>%s\n\n",
				sub.Title, abstractsURL, id, strings.Join(sub.AuthorNames(), ", "))
		}
	}
	return b.String()
}

// Write renders the table of contents into htmlDir and converts it with c.
// It returns the path of the generated HTML page.
func Write(ctx context.Context, c convert.Converter, htmlDir string, program types.Program, subs types.SubmissionIndex, abstractsURL string, warn io.Writer) (string, error) {
	header, err := os.ReadFile(filepath.Join(htmlDir, HeaderFile))
	if err != nil {
		return "", fmt.Errorf("reading index header: %w", err)
	}

	mdPath := filepath.Join(htmlDir, MarkdownFile)
	md := Render(string(header), program, subs, abstractsURL, warn)
	if err := os.WriteFile(mdPath, []byte(md), 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", MarkdownFile, err)
	}

	html, err := c.Convert(ctx, mdPath)
	if err != nil {
		return "", fmt.Errorf("converting table of contents: %w", err)
	}
	htmlPath := filepath.Join(htmlDir, convert.OutputName(mdPath))
	if err := os.WriteFile(htmlPath, []byte(html), 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", filepath.Base(htmlPath), err)
	}
	return htmlPath, nil
}
