// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package bundle wraps PyInstaller invocation: option handling, argument
// construction, and platform-aware artifact path resolution.
package bundle

import (
	"fmt"
	"io"
	"path/filepath"
	"runtime"

	"github.com/pdiddy/pypack/internal/pytool"
	"github.com/pdiddy/pypack/pkg/types"
)

// Options describes one PyInstaller invocation.
type Options struct {
	// Name is the artifact name passed to --name.
	Name string

	// Entry is the Python entry script.
	Entry string

	// DistDir is passed to --distpath when set.
	DistDir string

	// WorkDir is passed to --workpath when set.
	WorkDir string

	// OneFile requests --onefile output.
	OneFile bool

	// Windowed requests --windowed output.
	Windowed bool

	// Clean requests --clean.
	Clean bool

	// NoConfirm requests --noconfirm, overwriting previous output.
	NoConfirm bool
}

// FromProject maps a project configuration onto bundler options. Rebuilds
// always pass --noconfirm; the previous artifact is replaced, never prompted
// over.
func FromProject(cfg types.ProjectConfig) Options {
	return Options{
		Name:      cfg.Name,
		Entry:     cfg.Entry,
		DistDir:   cfg.DistDir,
		WorkDir:   cfg.WorkDir,
		OneFile:   cfg.OneFile,
		Windowed:  cfg.Windowed,
		Clean:     cfg.Clean,
		NoConfirm: true,
	}
}

// Args builds the PyInstaller argument list. The entry script is always last.
func (o Options) Args() []string {
	var args []string
	if o.NoConfirm {
		args = append(args, "--noconfirm")
	}
	if o.Clean {
		args = append(args, "--clean")
	}
	if o.OneFile {
		args = append(args, "--onefile")
	}
	if o.Windowed {
		args = append(args, "--windowed")
	}
	args = append(args, "--name", o.Name)
	if o.DistDir != "" {
		args = append(args, "--distpath", o.DistDir)
	}
	if o.WorkDir != "" {
		args = append(args, "--workpath", o.WorkDir)
	}
	return append(args, o.Entry)
}

// ArtifactPath returns where PyInstaller places the artifact on this platform.
func (o Options) ArtifactPath() string {
	return o.artifactPath(runtime.GOOS)
}

// artifactPath resolves the artifact name per platform: an .exe on Windows,
// an .app bundle for windowed macOS builds, a bare binary elsewhere.
func (o Options) artifactPath(goos string) string {
	name := o.Name
	switch {
	case goos == "windows":
		name += ".exe"
	case goos == "darwin" && o.Windowed:
		name += ".app"
	}
	dist := o.DistDir
	if dist == "" {
		dist = types.DefaultDistDir
	}
	return filepath.Join(dist, name)
}

// Bundler runs PyInstaller through a Python interpreter injected at
// construction time.
type Bundler struct {
	py pytool.Interpreter
}

// New creates a Bundler backed by the given interpreter.
func New(py pytool.Interpreter) *Bundler {
	return &Bundler{py: py}
}

// Bundle verifies PyInstaller is importable, then runs it with the given
// options, streaming its output. The availability probe runs here rather
// than at construction because the install step may be what provides
// PyInstaller.
func (b *Bundler) Bundle(opts Options, stdout, stderr io.Writer) error {
	if err := b.py.ModuleAvailable(pytool.ModulePyInstaller); err != nil {
		return fmt.Errorf("PyInstaller not available: %w", err)
	}
	if err := b.py.RunModule(pytool.ModulePyInstaller, opts.Args(), stdout, stderr); err != nil {
		return fmt.Errorf("bundling %s: %w", opts.Entry, err)
	}
	return nil
}
