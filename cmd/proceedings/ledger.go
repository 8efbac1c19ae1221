// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/proceedings-engine/internal/ledger"
)

var ledgerCmd = &cobra.Command{
	Use:   "ledger",
	Short: "Inspect the publication ledger",
	Long: `The ledger records every paper whose DataCite record was generated, with
the digest of its stamped PDF and when it was last published.`,
}

var ledgerListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded publications",
	RunE:  runLedgerList,
}

var ledgerExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the ledger as YAML or JSON",
	RunE:  runLedgerExport,
}

func init() {
	ledgerListCmd.Flags().Bool("unpublished", false, "only rows not yet published")
	ledgerListCmd.Flags().String("run", "", "only rows written by this run ID")
	ledgerExportCmd.Flags().String("format", "yaml", "output format: yaml or json")

	ledgerCmd.AddCommand(ledgerListCmd, ledgerExportCmd)
	rootCmd.AddCommand(ledgerCmd)
}

func openConfiguredLedger() (*ledger.Store, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return ledger.Open(cfg.Ledger)
}

func runLedgerList(cmd *cobra.Command, args []string) error {
	l, err := openConfiguredLedger()
	if err != nil {
		return err
	}
	defer l.Close()

	var opts ledger.ListOptions
	opts.Unpublished, _ = cmd.Flags().GetBool("unpublished")
	opts.RunID, _ = cmd.Flags().GetString("run")

	pubs, err := l.List(cmd.Context(), opts)
	if err != nil {
		return err
	}
	if len(pubs) == 0 {
		fmt.Fprintln(os.Stdout, "No publications recorded.")
		return nil
	}
	fmt.Fprintln(os.Stdout, renderPublications(pubs))
	return nil
}

func runLedgerExport(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	l, err := openConfiguredLedger()
	if err != nil {
		return err
	}
	defer l.Close()

	switch format {
	case "yaml":
		return l.ExportYAML(cmd.Context(), os.Stdout)
	case "json":
		return l.ExportJSON(cmd.Context(), os.Stdout)
	default:
		return fmt.Errorf("unknown format %q (want yaml or json)", format)
	}
}
