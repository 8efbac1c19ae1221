// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pdiddy/proceedings-engine/internal/booklet"
	"github.com/pdiddy/proceedings-engine/internal/deps"
	"github.com/pdiddy/proceedings-engine/internal/webindex"
	"github.com/pdiddy/proceedings-engine/pkg/types"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check external tools and input files",
	Long: `Doctor reports whether the converters of the configured backend are
installed and whether the exports and LaTeX templates the stages read are in
place.`,
	RunE: runDoctor,
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

// inputFiles lists the files the stages read, by label.
func inputFiles(cfg types.Config) [][2]string {
	p := cfg.Paths
	return [][2]string{
		{"Submissions", p.SubmissionsCSV()},
		{"Themes", p.ThemesCSV()},
		{"Reviewers", p.ReviewersCSV()},
		{"Papers", p.PDFDir()},
		{"Reviewers template", filepath.Join(p.TexDir, booklet.ReviewersStart)},
		{"Abstracts template", filepath.Join(p.AbstractsBookletDir(), booklet.AbstractsStart)},
		{"Proceedings start", filepath.Join(p.ProceedingsBookletDir(), booklet.ProceedingsStart)},
		{"Proceedings end", filepath.Join(p.ProceedingsBookletDir(), booklet.ProceedingsEnd)},
		{"HTML preamble", filepath.Join(p.TexDir, "config_html.tex")},
		{"Index header", filepath.Join(p.HTMLDir, webindex.HeaderFile)},
	}
}

func runDoctor(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	colorize := shouldColorize(os.Stdout)

	fmt.Fprintf(os.Stdout, "Tools (%s backend)\n", cfg.Conversion.Backend)
	statuses := deps.CheckBinaries(deps.Requirements(cfg.Conversion))
	for _, st := range statuses {
		kind := statusOK
		if !st.Available {
			kind = statusError
			if st.Optional {
				kind = statusWarn
			}
		}
		fmt.Fprintln(os.Stdout, statusLine(st.Name, kind, st.Detail, colorize))
	}

	fmt.Fprintln(os.Stdout, "\nInputs")
	missing := 0
	for _, in := range inputFiles(cfg) {
		if _, err := os.Stat(in[1]); err != nil {
			missing++
			fmt.Fprintln(os.Stdout, statusLine(in[0], statusError, "missing "+in[1], colorize))
			continue
		}
		fmt.Fprintln(os.Stdout, statusLine(in[0], statusOK, in[1], colorize))
	}

	if !deps.Satisfied(statuses) {
		return fmt.Errorf("required tools are missing")
	}
	if missing > 0 {
		return fmt.Errorf("%d input(s) missing", missing)
	}
	return nil
}
