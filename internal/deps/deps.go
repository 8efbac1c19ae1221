// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package deps reports which external programs the pipeline can reach.
package deps

import (
	"fmt"
	"os/exec"
	"strings"

	"github.com/pdiddy/proceedings-engine/pkg/types"
)

// Requirement is an external program a stage runs.
type Requirement struct {
	Name        string
	Command     string
	Description string
	Optional    bool
}

// Status is the result of checking one Requirement.
type Status struct {
	Requirement
	Available bool
	Detail    string
}

// Requirements lists the programs needed by a conversion backend. The
// container backend needs one of docker or podman; the native backend needs
// pandoc and latexmk on PATH.
func Requirements(cfg types.ConversionConfig) []Requirement {
	if cfg.Backend == types.BackendContainer {
		return []Requirement{
			{Name: "Docker", Command: "docker", Description: "container runtime for " + cfg.Image, Optional: true},
			{Name: "Podman", Command: "podman", Description: "container runtime fallback", Optional: true},
		}
	}
	return []Requirement{
		{Name: "Pandoc", Command: cfg.Pandoc, Description: "LaTeX and Markdown to HTML"},
		{Name: "Latexmk", Command: cfg.Latexmk, Description: "booklet compilation"},
	}
}

// CheckBinaries looks up each requirement on PATH.
func CheckBinaries(reqs []Requirement) []Status {
	out := make([]Status, 0, len(reqs))
	for _, req := range reqs {
		req.Command = strings.TrimSpace(req.Command)
		st := Status{Requirement: req}
		switch {
		case req.Command == "":
			st.Detail = "command not configured"
		default:
			path, err := exec.LookPath(req.Command)
			if err != nil {
				st.Detail = fmt.Sprintf("binary %q not found", req.Command)
			} else {
				st.Available = true
				st.Detail = path
			}
		}
		out = append(out, st)
	}
	return out
}

// Satisfied reports whether the checked set can run. Every required entry
// must be available; a set of only optional entries needs one of them.
func Satisfied(statuses []Status) bool {
	required, optionalOK := 0, false
	for _, st := range statuses {
		if st.Optional {
			optionalOK = optionalOK || st.Available
			continue
		}
		if !st.Available {
			return false
		}
		required++
	}
	return required > 0 || optionalOK || len(statuses) == 0
}
