// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/proceedings-engine/internal/pipeline"
)

var bookletCmd = &cobra.Command{
	Use:   "booklet",
	Short: "Assemble and compile the abstracts and proceedings booklets",
}

var bookletAbstractsCmd = &cobra.Command{
	Use:   "abstracts",
	Short: "Write the abstracts booklet chapters",
	Long: `Writes Recueil_Resume.tex from Recueil_Resume_start.tex with one chapter per
theme and an abstract.N.inc.tex listing the fragments of each theme. Run the
abstracts command first.`,
	RunE: stageRunner(func(p *pipeline.Pipeline) pipeline.StageFunc { return p.AbstractsBooklet }),
}

var bookletProceedingsCmd = &cobra.Command{
	Use:   "proceedings",
	Short: "Stamp papers and write the proceedings booklet",
	Long: `Stamps every paper of the program and writes actes.tex from actes_start.tex
and actes_end.tex, one page per stamped paper, and volume breaks balanced by
paper or page count.`,
	RunE: stageRunner(func(p *pipeline.Pipeline) pipeline.StageFunc { return p.Proceedings }),
}

var bookletCompileCmd = &cobra.Command{
	Use:       "compile [abstracts|proceedings]...",
	Short:     "Compile booklets to PDF with latexmk",
	ValidArgs: []string{pipeline.AbstractsBooklet, pipeline.ProceedingsBooklet},
	Args:      cobra.OnlyValidArgs,
	RunE:      runBookletCompile,
}

func init() {
	bookletCmd.AddCommand(bookletAbstractsCmd, bookletProceedingsCmd, bookletCompileCmd)
	rootCmd.AddCommand(bookletCmd)
}

func runBookletCompile(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		args = []string{pipeline.AbstractsBooklet, pipeline.ProceedingsBooklet}
	}
	p, err := newPipeline(cmd)
	if err != nil {
		return err
	}
	failed := 0
	for _, name := range args {
		if err := p.Compile(cmd.Context(), name); err != nil {
			fmt.Fprintf(p.Out, "failed:  %s (%v)\n", name, err)
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d booklet(s) failed to compile", failed)
	}
	return nil
}
