// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/proceedings-engine/internal/openconf"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate the OpenConf exports",
	Long: `Check reads the submissions and theme exports and reports duplicate IDs,
unknown or doubly assigned theme entries, unassigned submissions, missing
titles, authors, or affiliations, and submissions without an uploaded paper.
It fails when any error-level finding is reported.`,
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	p, err := newPipeline(cmd)
	if err != nil {
		return err
	}
	findings, err := p.Check()
	if err != nil {
		return err
	}
	for _, f := range findings {
		fmt.Fprintln(os.Stdout, f.String())
	}
	fmt.Fprintf(os.Stdout, "\n%d submission(s), %d theme(s), %d finding(s)\n",
		len(p.Submissions()), len(p.Program().Themes), len(findings))
	if openconf.HasErrors(findings) {
		return fmt.Errorf("exports have errors")
	}
	return nil
}
