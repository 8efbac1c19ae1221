// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package datacite

import (
	"encoding/csv"
	"fmt"
	"os"
	"sort"
)

// ListingRow pairs a DOI with the URL it resolves to.
type ListingRow struct {
	DOI string
	URL string
}

// ListingName returns the listing file name for an event.
func ListingName(event string) string {
	return "listing_" + event + "_xml.txt"
}

// WriteListing writes rows as tab-separated DOI and URL lines, sorted by DOI.
func WriteListing(path string, rows []ListingRow) error {
	sorted := append([]ListingRow(nil), rows...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].DOI < sorted[j].DOI })

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating listing: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	w.Comma = '\t'
	for _, r := range sorted {
		if err := w.Write([]string{r.DOI, r.URL}); err != nil {
			return fmt.Errorf("writing listing: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("writing listing: %w", err)
	}
	return f.Close()
}
