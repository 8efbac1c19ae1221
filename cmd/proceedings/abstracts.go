// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/spf13/cobra"

	"github.com/pdiddy/proceedings-engine/internal/pipeline"
)

var abstractsCmd = &cobra.Command{
	Use:   "abstracts",
	Short: "Write one LaTeX abstract per submission",
	Long: `Abstracts writes p<ID>.tex for every submission into Export_Tex/Abstracts.
Existing fragments are kept so hand edits survive; pass --overwrite to
regenerate them. Submissions without an uploaded paper are marked work in
progress.`,
	RunE: stageRunner(func(p *pipeline.Pipeline) pipeline.StageFunc { return p.Abstracts }),
}

func init() {
	rootCmd.AddCommand(abstractsCmd)
}
