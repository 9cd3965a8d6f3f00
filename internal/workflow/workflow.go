// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package workflow runs the packaging sequence: install the dependency
// manifest, then bundle the entry script into a standalone executable. The
// two steps always run in that order, never concurrently, and the first
// failure ends the run.
package workflow

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/AlecAivazis/survey/v2"
	"github.com/fatih/color"

	"github.com/pdiddy/pypack/internal/bundle"
	"github.com/pdiddy/pypack/internal/pytool"
	"github.com/pdiddy/pypack/pkg/types"
)

// Terminal workflow errors. Callers match these with errors.Is; both map to
// process exit status 1.
var (
	// ErrDependencyInstall marks a failed dependency-installation step.
	ErrDependencyInstall = errors.New("dependency installation failed")

	// ErrBundleBuild marks a failed bundling step.
	ErrBundleBuild = errors.New("bundle build failed")
)

// Installer runs the dependency-installation step.
type Installer interface {
	Install(manifestPath string, stdout, stderr io.Writer) error
}

// Bundler runs the bundling step.
type Bundler interface {
	Bundle(opts bundle.Options, stdout, stderr io.Writer) error
}

// Recorder persists build outcomes. *history.Store satisfies it.
type Recorder interface {
	Record(ctx context.Context, rec types.BuildRecord) error
}

// Prompter blocks for user acknowledgement before the process exits, so a
// double-clicked console window does not vanish with the diagnostic.
type Prompter interface {
	Pause(message string)
}

// SurveyPrompter is the interactive Prompter used by the CLI.
type SurveyPrompter struct{}

func (SurveyPrompter) Pause(message string) {
	var discard string
	_ = survey.AskOne(&survey.Input{Message: message}, &discard)
}

// PipInstaller installs a requirements manifest through the interpreter's
// pip module.
type PipInstaller struct {
	py pytool.Interpreter
}

// NewPipInstaller creates an installer backed by the given interpreter.
func NewPipInstaller(py pytool.Interpreter) *PipInstaller {
	return &PipInstaller{py: py}
}

func (p *PipInstaller) Install(manifestPath string, stdout, stderr io.Writer) error {
	args := []string{"install", "-r", manifestPath}
	if err := p.py.RunModule(pytool.ModulePip, args, stdout, stderr); err != nil {
		return fmt.Errorf("installing %s: %w", manifestPath, err)
	}
	return nil
}

// Orchestrator drives the two-step packaging workflow.
type Orchestrator struct {
	Deps    Installer
	Bundler Bundler

	// History is optional; a nil Recorder disables build records.
	History Recorder

	// Prompter is optional; when set, failures pause before returning.
	Prompter Prompter

	// Out receives progress and step output; Err receives step stderr.
	Out io.Writer
	Err io.Writer
}

// Run executes install then bundle for the given project. It returns the
// artifact path on success. On failure it returns an error matching
// ErrDependencyInstall or ErrBundleBuild; the bundling step is never
// attempted after a failed install.
func (o *Orchestrator) Run(ctx context.Context, cfg types.ProjectConfig) (string, error) {
	start := time.Now()

	if err := ctx.Err(); err != nil {
		return "", err
	}

	fmt.Fprintf(o.Out, "[1/2] Installing dependencies from %s\n", cfg.Manifest)
	if err := o.Deps.Install(cfg.Manifest, o.Out, o.Err); err != nil {
		return "", o.fail(ctx, start, cfg, types.StepInstall, err)
	}

	if err := ctx.Err(); err != nil {
		return "", err
	}

	opts := bundle.FromProject(cfg)
	fmt.Fprintf(o.Out, "[2/2] Bundling %s with PyInstaller\n", cfg.Entry)
	if err := o.Bundler.Bundle(opts, o.Out, o.Err); err != nil {
		return "", o.fail(ctx, start, cfg, types.StepBundle, err)
	}

	artifact := opts.ArtifactPath()
	o.record(ctx, types.BuildRecord{
		StartedAt: start,
		Duration:  time.Since(start),
		Entry:     cfg.Entry,
		Artifact:  artifact,
		Status:    types.BuildSucceeded,
	})

	color.New(color.FgGreen).Fprintf(o.Out, "Build complete: %s\n", artifact)
	return artifact, nil
}

// remediation hints shown with each failure kind.
const (
	installHint = "Check that Python and pip are installed and on PATH (python -m pip --version)."
	bundleHint  = "Check that PyInstaller is installed (python -m pip install pyinstaller)."
)

func (o *Orchestrator) fail(ctx context.Context, start time.Time, cfg types.ProjectConfig, step types.StepName, cause error) error {
	var sentinel error
	var hint string
	switch step {
	case types.StepInstall:
		sentinel, hint = ErrDependencyInstall, installHint
	default:
		sentinel, hint = ErrBundleBuild, bundleHint
	}

	color.New(color.FgRed).Fprintf(o.Out, "%s: %v\n", sentinel, cause)
	fmt.Fprintln(o.Out, hint)

	o.record(ctx, types.BuildRecord{
		StartedAt:  start,
		Duration:   time.Since(start),
		Entry:      cfg.Entry,
		Status:     types.BuildFailed,
		FailedStep: step,
		Error:      cause.Error(),
	})

	if o.Prompter != nil {
		o.Prompter.Pause("Press Enter to exit")
	}
	return fmt.Errorf("%w: %v", sentinel, cause)
}

func (o *Orchestrator) record(ctx context.Context, rec types.BuildRecord) {
	if o.History == nil {
		return
	}
	if err := o.History.Record(ctx, rec); err != nil {
		fmt.Fprintf(o.Err, "warning: could not record build history: %v\n", err)
	}
}
