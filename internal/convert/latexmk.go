// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"bytes"
	"context"
	"fmt"
	"strings"
)

// Latexmk compiles booklets with latexmk.
type Latexmk struct {
	Runner Runner
	Binary string
}

// NewLatexmk returns a compiler using binary through r.
func NewLatexmk(r Runner, binary string) *Latexmk {
	return &Latexmk{Runner: r, Binary: binary}
}

// CleanArgs returns the command line removing every generated file.
func (l *Latexmk) CleanArgs() []string {
	return []string{"-CA"}
}

// BuildArgs returns the command line compiling main into <job>.pdf.
func (l *Latexmk) BuildArgs(job, main string) []string {
	return []string{"-CF", "--silent", "-pdf", "-jobname=" + job, main}
}

// Compile cleans dir, then builds main.tex into <job>.pdf. On failure the
// tail of latexmk's output is included in the error.
func (l *Latexmk) Compile(ctx context.Context, dir, job, main string) error {
	for _, args := range [][]string{l.CleanArgs(), l.BuildArgs(job, main)} {
		var out bytes.Buffer
		err := l.Runner.Run(ctx, Invocation{Tool: l.Binary, Args: args, Dir: dir, Stdout: &out})
		if err != nil {
			if tail := tailLines(out.String(), 5); tail != "" {
				return fmt.Errorf("latexmk %s: %w\n%s", strings.Join(args, " "), err, tail)
			}
			return fmt.Errorf("latexmk %s: %w", strings.Join(args, " "), err)
		}
	}
	return nil
}

func tailLines(s string, n int) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
