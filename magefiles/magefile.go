//go:build mage

// Package main contains Mage build targets for pypack developer tooling.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// projectDirs lists the working directories the packaging workflow expects.
var projectDirs = []string{
	"dist",
	"build",
	".pypack",
}

// Init creates the working directory structure for the packaging workflow.
func Init() error {
	for _, dir := range projectDirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
		fmt.Println("  ", dir)
	}
	fmt.Println("Project directories initialized.")
	return nil
}

const (
	binDir  = "bin"
	binName = "pypack"
	cmdPkg  = "./cmd/pypack"
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

// Test runs the full test suite.
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// Check builds and then tests.
func Check() {
	mg.SerialDeps(Build, Test)
}

// Clean removes build output: the Go binary, the bundler's scratch and dist
// directories, and recorded state.
func Clean() error {
	for _, dir := range []string{binDir, "dist", "build", ".pypack"} {
		if err := sh.Rm(dir); err != nil {
			return fmt.Errorf("removing %s: %w", dir, err)
		}
	}
	fmt.Println("Cleaned.")
	return nil
}
