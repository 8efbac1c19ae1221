// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/spf13/cobra"

	"github.com/pdiddy/proceedings-engine/internal/pipeline"
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Generate the HTML table of contents",
	Long: `Index writes Table_of_contents.md from Table_of_contents_start.md, one
section per theme linking each abstract page, and converts it to HTML.`,
	RunE: stageRunner(func(p *pipeline.Pipeline) pipeline.StageFunc { return p.Index }),
}

func init() {
	rootCmd.AddCommand(indexCmd)
}
