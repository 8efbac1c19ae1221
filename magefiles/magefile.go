//go:build mage

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main contains Mage build targets for proceedings developer tooling.
package main

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"

	"github.com/pdiddy/proceedings-engine/pkg/types"
)

const (
	binDir  = "bin"
	binName = "proceedings"
	cmdPkg  = "./cmd/proceedings"
)

// projectDirs lists the working directories of the default layout.
func projectDirs() []string {
	p := types.DefaultConfig().Paths
	return []string{
		p.PDFDir(),
		p.AbstractsDir(),
		p.HTMLSourceDir(),
		p.ProceedingsPagesDir(),
		p.AbstractsBookletDir(),
		p.ProceedingsBookletDir(),
		p.HTMLAbstractsDir(),
		p.XMLDir,
		".secrets",
	}
}

// Init creates the export tree the pipeline expects.
func Init() error {
	for _, dir := range projectDirs() {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
		fmt.Println("  ", dir)
	}
	fmt.Println("Project directories initialized.")
	return nil
}

// Build compiles the CLI binary into bin/.
func Build() error {
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", binDir, err)
	}
	version, err := sh.Output("git", "describe", "--tags", "--always", "--dirty")
	if err != nil {
		version = "dev"
	}
	out := filepath.Join(binDir, binName)
	if err := sh.RunV("go", "build", "-ldflags", "-X main.version="+version, "-o", out, cmdPkg); err != nil {
		return fmt.Errorf("go build: %w", err)
	}
	fmt.Printf("Built %s\n", out)
	return nil
}

// Test runs the unit tests.
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// Proceedings builds the CLI and runs every pipeline stage, compiling the
// booklets.
func Proceedings() error {
	mg.Deps(Build)
	return sh.RunV(filepath.Join(binDir, binName), "build", "--compile")
}

// Publish builds the CLI and uploads pending publications.
func Publish() error {
	mg.Deps(Build)
	return sh.RunV(filepath.Join(binDir, binName), "publish")
}

// Stats prints project metrics: Go production/test LOC and documentation word count.
func Stats() error {
	prodLines, testLines, err := countGoLines(".")
	if err != nil {
		return err
	}
	docWords, err := countDocWords(".")
	if err != nil {
		return err
	}

	fmt.Printf("Lines of code (Go, production): %d\n", prodLines)
	fmt.Printf("Lines of code (Go, tests):      %d\n", testLines)
	fmt.Printf("Words (documentation):           %d\n", docWords)
	return nil
}

func skipDir(path string, info os.FileInfo) bool {
	name := info.Name()
	return info.IsDir() && path != "." && (strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_"))
}

// countGoLines counts non-blank lines in production and test Go files.
func countGoLines(root string) (prod, tests int, err error) {
	err = filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if skipDir(path, info) {
			return filepath.SkipDir
		}
		if info.IsDir() || filepath.Ext(path) != ".go" {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		n := 0
		sc := bufio.NewScanner(bytes.NewReader(data))
		for sc.Scan() {
			if strings.TrimSpace(sc.Text()) != "" {
				n++
			}
		}
		if strings.HasSuffix(path, "_test.go") {
			tests += n
		} else {
			prod += n
		}
		return nil
	})
	return prod, tests, err
}

// countDocWords counts words in the Markdown files of the repository.
func countDocWords(root string) (int, error) {
	total := 0
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if skipDir(path, info) {
			return filepath.SkipDir
		}
		if info.IsDir() || filepath.Ext(path) != ".md" {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		total += len(strings.Fields(string(data)))
		return nil
	})
	return total, err
}
