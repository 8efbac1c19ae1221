// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pdiddy/proceedings-engine/internal/ledger"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Summarize the state of the export tree",
	Long: `Status counts submissions, DOIs, generated fragments, stamped papers, HTML
pages, and DataCite records, and how many ledger rows still await
publishing.`,
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func countFiles(pattern string) int {
	m, _ := filepath.Glob(pattern)
	return len(m)
}

func runStatus(cmd *cobra.Command, args []string) error {
	p, err := newPipeline(cmd)
	if err != nil {
		return err
	}
	if err := p.Load(); err != nil {
		return err
	}
	cfg := p.Config
	colorize := shouldColorize(os.Stdout)

	subs := p.Submissions()
	withDOI := 0
	for _, s := range subs {
		if s.HasDOI() {
			withDOI++
		}
	}

	line := func(label string, have, want int) {
		kind := statusOK
		if have < want {
			kind = statusWarn
		}
		fmt.Fprintln(os.Stdout, statusLine(label, kind, fmt.Sprintf("%d/%d", have, want), colorize))
	}

	fmt.Fprintf(os.Stdout, "%s (%s)\n", cfg.Event.Title, cfg.Event.Name)
	fmt.Fprintln(os.Stdout, statusLine("Submissions", statusInfo, fmt.Sprintf("%d in %d themes", len(subs), len(p.Program().Themes)), colorize))
	fmt.Fprintln(os.Stdout, statusLine("DOIs", statusInfo, fmt.Sprintf("%d (%d work in progress)", withDOI, len(subs)-withDOI), colorize))
	line("Abstracts", countFiles(filepath.Join(cfg.Paths.AbstractsDir(), "p*.tex")), len(subs))
	line("Stamped papers", countFiles(filepath.Join(cfg.Paths.PDFDir(), "*_doi.pdf")), withDOI)
	line("HTML pages", countFiles(filepath.Join(cfg.Paths.HTMLAbstractsDir(), "p*.html")), len(subs))
	line("DataCite records", countFiles(filepath.Join(cfg.Paths.XMLDir, "p*.xml")), withDOI)

	l, err := ledger.Open(cfg.Ledger)
	if err != nil {
		fmt.Fprintln(os.Stdout, statusLine("Ledger", statusError, err.Error(), colorize))
		return nil
	}
	defer l.Close()

	all, err := l.List(cmd.Context(), ledger.ListOptions{})
	if err != nil {
		return err
	}
	pending, err := l.List(cmd.Context(), ledger.ListOptions{Unpublished: true})
	if err != nil {
		return err
	}
	kind := statusOK
	if len(pending) > 0 {
		kind = statusWarn
	}
	fmt.Fprintln(os.Stdout, statusLine("Ledger", kind, fmt.Sprintf("%d recorded, %d awaiting publish", len(all), len(pending)), colorize))
	return nil
}
