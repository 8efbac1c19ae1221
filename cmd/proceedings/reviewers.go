// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/spf13/cobra"

	"github.com/pdiddy/proceedings-engine/internal/pipeline"
)

var reviewersCmd = &cobra.Command{
	Use:   "reviewers",
	Short: "Write the reviewers table",
	Long: `Reviewers reads the reviewers export, sorts the names by family name, and
writes Tableau_Reviewer.tex from Tableau_Reviewer_start.tex in the LaTeX
export directory.`,
	RunE: stageRunner(func(p *pipeline.Pipeline) pipeline.StageFunc { return p.Reviewers }),
}

func init() {
	rootCmd.AddCommand(reviewersCmd)
}
