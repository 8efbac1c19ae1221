// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/spf13/cobra"

	"github.com/pdiddy/proceedings-engine/internal/pipeline"
)

var bibliographyCmd = &cobra.Command{
	Use:   "bibliography",
	Short: "Export the published papers as CSL-YAML",
	RunE:  stageRunner(func(p *pipeline.Pipeline) pipeline.StageFunc { return p.Bibliography }),
}

func init() {
	rootCmd.AddCommand(bibliographyCmd)
}
