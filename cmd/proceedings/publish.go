// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/proceedings-engine/internal/ledger"
	"github.com/pdiddy/proceedings-engine/internal/publish"
)

var publishCmd = &cobra.Command{
	Use:   "publish",
	Short: "Upload the site, stamped papers, and DataCite records",
	Long: `Publish uploads the HTML abstracts, the table of contents, and the DOI
listing, then the stamped PDF and DataCite record of every ledger row not yet
published (or changed since). Keys mirror the public URL layout: Abstracts/,
PDF/, and XML/ under the configured prefix. The s3 driver targets any
S3-compatible bucket; the fs driver copies into a local web root.`,
	RunE: runPublish,
}

func init() {
	publishCmd.Flags().Bool("all", false, "republish every ledger row")
	publishCmd.Flags().String("driver", "", "override publish.driver (s3 or fs)")

	rootCmd.AddCommand(publishCmd)
}

func runPublish(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if d, _ := cmd.Flags().GetString("driver"); d != "" {
		cfg.Publish.Driver = d
	}

	store, err := publish.New(cmd.Context(), cfg.Publish)
	if err != nil {
		return err
	}
	l, err := ledger.Open(cfg.Ledger)
	if err != nil {
		return err
	}
	defer l.Close()

	p := publish.NewPublisher(store, l, cfg)
	p.All, _ = cmd.Flags().GetBool("all")

	fmt.Fprintf(os.Stdout, "Publishing to %s\n", store.Location())
	res, err := p.Publish(cmd.Context(), os.Stdout)
	res.Summarize(os.Stdout, "uploaded")
	if err != nil {
		return err
	}
	if res.HasFailures() {
		return fmt.Errorf("%d upload(s) failed", res.Failed)
	}
	return nil
}
