//go:build mage

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main contains Mage build targets for pdf-renamer developer tooling.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binDir  = "bin"
	binName = "pdf-renamer"
	cmdPkg  = "./cmd/pdf-renamer"
)

// Build compiles the CLI binary into bin/.
func Build() error {
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", binDir, err)
	}
	out := filepath.Join(binDir, binName)
	if err := sh.RunV("go", "build", "-o", out, cmdPkg); err != nil {
		return fmt.Errorf("go build: %w", err)
	}
	fmt.Printf("Built %s\n", out)
	return nil
}

// Test runs the unit tests of every package.
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// DryRun builds the CLI and runs it with --dry-run against $PDF_DIR
// (default: the current directory).
func DryRun() error {
	mg.Deps(Build)
	dir := os.Getenv("PDF_DIR")
	if dir == "" {
		dir = "."
	}
	return sh.RunV(filepath.Join(binDir, binName), "rename", "--dry-run", dir)
}

// pkgFilesFormat makes go list print one line per package:
// import path, directory, production files, test files.
const pkgFilesFormat = `{{.ImportPath}}|{{.Dir}}|{{join .GoFiles ","}}|{{join .TestGoFiles ","}}`

// Stats prints non-blank Go lines per package, split into production and
// test code, as reported by go list.
func Stats() error {
	out, err := sh.Output("go", "list", "-f", pkgFilesFormat, "./...")
	if err != nil {
		return fmt.Errorf("go list: %w", err)
	}

	var prodTotal, testTotal int
	fmt.Printf("%-50s %8s %8s\n", "Package", "Prod", "Test")
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		parts := strings.Split(line, "|")
		if len(parts) != 4 {
			continue
		}
		prod, err := countLines(parts[1], parts[2])
		if err != nil {
			return err
		}
		test, err := countLines(parts[1], parts[3])
		if err != nil {
			return err
		}
		prodTotal += prod
		testTotal += test
		fmt.Printf("%-50s %8d %8d\n", parts[0], prod, test)
	}
	fmt.Printf("%-50s %8d %8d\n", "total", prodTotal, testTotal)
	return nil
}

// countLines counts non-blank lines in the comma-separated files under dir.
func countLines(dir, files string) (int, error) {
	if files == "" {
		return 0, nil
	}
	total := 0
	for _, name := range strings.Split(files, ",") {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return 0, fmt.Errorf("reading %s: %w", name, err)
		}
		for _, l := range strings.Split(string(data), "\n") {
			if strings.TrimSpace(l) != "" {
				total++
			}
		}
	}
	return total, nil
}
