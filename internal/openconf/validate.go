// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package openconf

import (
	"fmt"
	"os"
	"sort"

	"github.com/pdiddy/proceedings-engine/pkg/types"
)

// Severity grades a validation finding.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Finding is one problem found in the inputs.
type Finding struct {
	Severity     Severity
	SubmissionID int
	Message      string
}

func (f Finding) String() string {
	if f.SubmissionID == 0 {
		return fmt.Sprintf("%-7s %s", f.Severity, f.Message)
	}
	return fmt.Sprintf("%-7s p%d: %s", f.Severity, f.SubmissionID, f.Message)
}

// Validate cross-checks submissions, the program, and the PDF directory.
// Errors break booklet generation; warnings and info do not.
func Validate(subs []types.Submission, program types.Program, pdfDir string) []Finding {
	var findings []Finding

	seen := make(map[int]bool, len(subs))
	for _, s := range subs {
		if seen[s.ID] {
			findings = append(findings, Finding{SeverityError, s.ID, "duplicate submission ID"})
		}
		seen[s.ID] = true
	}

	inTheme := make(map[int]string)
	for _, t := range program.Themes {
		for _, id := range t.PaperIDs {
			if !seen[id] {
				findings = append(findings, Finding{SeverityError, id, fmt.Sprintf("theme %q references an unknown submission", t.Name)})
			}
			if prev, ok := inTheme[id]; ok {
				findings = append(findings, Finding{SeverityWarning, id, fmt.Sprintf("assigned to both %q and %q", prev, t.Name)})
				continue
			}
			inTheme[id] = t.Name
		}
	}

	for _, s := range subs {
		if _, ok := inTheme[s.ID]; !ok {
			findings = append(findings, Finding{SeverityWarning, s.ID, "not assigned to any theme"})
		}
		if s.Title == "" {
			findings = append(findings, Finding{SeverityError, s.ID, "missing title"})
		}
		if len(s.Authors) == 0 {
			findings = append(findings, Finding{SeverityError, s.ID, "no complete author"})
		}
		for _, a := range s.Authors {
			if a.Affiliation == "" {
				findings = append(findings, Finding{SeverityWarning, s.ID, fmt.Sprintf("author %s has no affiliation", a.FullName())})
			}
		}
		if pdfDir != "" {
			if _, err := os.Stat(PDFPath(pdfDir, s.ID)); err != nil && s.DOI == "" {
				findings = append(findings, Finding{SeverityInfo, s.ID, "no paper uploaded (work in progress)"})
			}
		}
	}

	sort.SliceStable(findings, func(i, j int) bool {
		return rank(findings[i].Severity) < rank(findings[j].Severity)
	})
	return findings
}

func rank(s Severity) int {
	switch s {
	case SeverityError:
		return 0
	case SeverityWarning:
		return 1
	default:
		return 2
	}
}

// HasErrors reports whether any finding is an error.
func HasErrors(findings []Finding) bool {
	for _, f := range findings {
		if f.Severity == SeverityError {
			return true
		}
	}
	return false
}
