// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var xmlCmd = &cobra.Command{
	Use:   "xml",
	Short: "Write DataCite records and the DOI listing",
	Long: `XML writes a DataCite kernel-4 record p<ID>.xml for every stamped paper,
the tab-separated listing of DOIs and landing pages, and records each paper
in the publication ledger.`,
	RunE: runXML,
}

func init() {
	xmlCmd.Flags().Bool("no-ledger", false, "do not record publications in the ledger")

	rootCmd.AddCommand(xmlCmd)
}

func runXML(cmd *cobra.Command, args []string) error {
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

	res, err := p.XML(cmd.Context())
	if err != nil {
		return err
	}
	if res.HasFailures() {
		return fmt.Errorf("%d record(s) failed", res.Failed)
	}
	return nil
}
