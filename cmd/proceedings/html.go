// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/spf13/cobra"

	"github.com/pdiddy/proceedings-engine/internal/pipeline"
)

var htmlCmd = &cobra.Command{
	Use:   "html",
	Short: "Generate the HTML landing page of each abstract",
	Long: `HTML writes a standalone LaTeX source per submission, linking the stamped
paper when one exists, and converts each source to HTML with pandoc. Run tag
first so the links are present.`,
	RunE: stageRunner(func(p *pipeline.Pipeline) pipeline.StageFunc { return p.HTML }),
}

func init() {
	rootCmd.AddCommand(htmlCmd)
}
