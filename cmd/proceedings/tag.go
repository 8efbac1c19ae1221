// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/spf13/cobra"

	"github.com/pdiddy/proceedings-engine/internal/pipeline"
)

var tagCmd = &cobra.Command{
	Use:   "tag",
	Short: "Stamp the DOI link on each uploaded paper",
	Long: `Tag writes https://doi.org/<DOI> on the first page of every uploaded paper
that has a DOI and saves it as <ID>_doi.pdf next to the original.`,
	RunE: stageRunner(func(p *pipeline.Pipeline) pipeline.StageFunc { return p.Tag }),
}

func init() {
	rootCmd.AddCommand(tagCmd)
}
