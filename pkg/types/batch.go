// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"fmt"
	"io"
)

// ItemStatus is the outcome of processing one paper in a batch stage.
type ItemStatus string

const (
	ItemDone    ItemStatus = "done"
	ItemSkipped ItemStatus = "skipped"
	ItemFailed  ItemStatus = "failed"
)

// BatchResult holds the outcome of a batch stage run.
type BatchResult struct {
	Done    int
	Skipped int
	Failed  int
}

// Add counts one item outcome.
func (r *BatchResult) Add(s ItemStatus) {
	switch s {
	case ItemDone:
		r.Done++
	case ItemSkipped:
		r.Skipped++
	case ItemFailed:
		r.Failed++
	}
}

// Total returns the number of items processed.
func (r BatchResult) Total() int {
	return r.Done + r.Skipped + r.Failed
}

// HasFailures reports whether any item failed.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// Summarize prints the batch summary line. verb names the done count
// ("written", "converted", "tagged").
func (r BatchResult) Summarize(w io.Writer, verb string) {
	fmt.Fprintf(w, "\nBatch summary: %d %s, %d skipped, %d failed (total: %d)\n",
		r.Done, verb, r.Skipped, r.Failed, r.Total())
}
