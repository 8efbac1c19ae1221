// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert runs the external document converters: pandoc for HTML
// and latexmk for the booklets, either from host binaries or from a
// container image.
package convert

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/proceedings-engine/pkg/types"
)

// Converter transforms a source document into HTML.
type Converter interface {
	// Convert reads the document at srcPath and returns the HTML content.
	Convert(ctx context.Context, srcPath string) (string, error)
}

// OutputName returns the HTML file name for a source path.
func OutputName(srcPath string) string {
	base := filepath.Base(srcPath)
	return strings.TrimSuffix(base, filepath.Ext(base)) + ".html"
}

// ConvertFile converts one source into outDir. If the HTML output already
// exists and overwrite is false, conversion is skipped.
func ConvertFile(ctx context.Context, c Converter, srcPath, outDir string, overwrite bool, w io.Writer) types.ItemStatus {
	name := OutputName(srcPath)
	outPath := filepath.Join(outDir, name)

	if !overwrite {
		if _, err := os.Stat(outPath); err == nil {
			fmt.Fprintf(w, "skipped: %s (already exists)\n", name)
			return types.ItemSkipped
		}
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		fmt.Fprintf(w, "failed:  %s (%v)\n", name, err)
		return types.ItemFailed
	}

	html, err := c.Convert(ctx, srcPath)
	if err != nil {
		fmt.Fprintf(w, "failed:  %s (%v)\n", name, err)
		return types.ItemFailed
	}

	if err := os.WriteFile(outPath, []byte(html), 0o644); err != nil {
		fmt.Fprintf(w, "failed:  %s (%v)\n", name, err)
		return types.ItemFailed
	}

	fmt.Fprintf(w, "converted: %s\n", name)
	return types.ItemDone
}

// ConvertBatch converts a list of sources, printing per-file status to w and
// returning a summary. A cancelled context stops the batch.
func ConvertBatch(ctx context.Context, c Converter, srcPaths []string, outDir string, overwrite bool, w io.Writer) types.BatchResult {
	var result types.BatchResult
	for _, p := range srcPaths {
		if ctx.Err() != nil {
			break
		}
		result.Add(ConvertFile(ctx, c, p, outDir, overwrite, w))
	}
	result.Summarize(w, "converted")
	return result
}

// Sources lists the files of dir with extension ext, sorted by name.
func Sources(dir, ext string) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*"+ext))
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", dir, err)
	}
	return matches, nil
}
