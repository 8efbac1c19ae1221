// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/proceedings-engine/internal/pipeline"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Run every stage in order",
	Long: `Build runs reviewers, abstracts, the abstracts booklet, the HTML index, the
proceedings booklet (stamping papers), the HTML pages, the DataCite records,
and the bibliography, holding a lock on the export tree. With --compile both
booklets are then compiled with latexmk.`,
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().Bool("compile", false, "compile both booklets after writing them")
	buildCmd.Flags().Bool("no-ledger", false, "do not record publications in the ledger")

	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	p, err := newPipeline(cmd)
	if err != nil {
		return err
	}
	if noLedger, _ := cmd.Flags().GetBool("no-ledger"); !noLedger {
		store, err := openLedger(p)
		if err != nil {
			return err
		}
		defer store.Close()
	}

	compile, _ := cmd.Flags().GetBool("compile")
	report, err := p.Build(cmd.Context(), pipeline.BuildOptions{Compile: compile})

	fmt.Fprintln(os.Stdout)
	fmt.Fprintln(os.Stdout, renderReport(report))
	if err != nil {
		return err
	}
	if report.HasFailures() {
		return fmt.Errorf("%d item(s) failed", report.Failed())
	}
	return nil
}
