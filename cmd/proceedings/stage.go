// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/proceedings-engine/internal/ledger"
	"github.com/pdiddy/proceedings-engine/internal/pipeline"
)

// newPipeline builds a pipeline from the merged configuration and the
// persistent flags.
func newPipeline(cmd *cobra.Command) (*pipeline.Pipeline, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	p, err := pipeline.New(cfg, os.Stdout, os.Stderr)
	if err != nil {
		return nil, err
	}
	p.Overwrite, _ = cmd.Flags().GetBool("overwrite")
	return p, nil
}

// openLedger attaches the configured ledger to p. The caller closes it.
func openLedger(p *pipeline.Pipeline) (*ledger.Store, error) {
	store, err := ledger.Open(p.Config.Ledger)
	if err != nil {
		return nil, err
	}
	p.Ledger = store
	return store, nil
}

// stageRunner adapts a pipeline stage to a cobra RunE. The command fails
// when the stage errors or any item failed.
func stageRunner(stage func(p *pipeline.Pipeline) pipeline.StageFunc) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		p, err := newPipeline(cmd)
		if err != nil {
			return err
		}
		res, err := stage(p)(cmd.Context())
		if err != nil {
			return err
		}
		if res.HasFailures() {
			return fmt.Errorf("%d item(s) failed", res.Failed)
		}
		return nil
	}
}
