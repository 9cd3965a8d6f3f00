// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pytool implements Python interpreter detection and execution.
package pytool

import (
	"fmt"
	"io"
	"os/exec"
)

const (
	binPython3 = "python3"
	binPython  = "python"
)

// Module names invoked through the interpreter's -m switch.
const (
	// ModulePip is the package installer.
	ModulePip = "pip"

	// ModulePyInstaller is the executable bundler.
	ModulePyInstaller = "PyInstaller"
)

// Interpreter provides Python operations: checking availability, probing
// installed modules, and running modules with streamed output.
type Interpreter interface {
	// Name returns the interpreter binary name ("python3" or "python").
	Name() string

	// Available reports whether the interpreter binary exists on PATH and
	// responds to a version query.
	Available() bool

	// ModuleAvailable checks whether the named module can be invoked via -m.
	// Returns nil when the module responds, or an error describing the failure.
	ModuleAvailable(module string) error

	// RunModule executes `<python> -m <module> <args...>`, streaming output
	// to stdout and stderr.
	RunModule(module string, args []string, stdout, stderr io.Writer) error
}

// executor abstracts command execution for testing.
type executor interface {
	LookPath(file string) (string, error)
	RunSilent(name string, args ...string) error
	RunStreamed(name string, args []string, stdout, stderr io.Writer) error
}

// osExecutor is the production executor backed by os/exec.
type osExecutor struct{}

func (o *osExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (o *osExecutor) RunSilent(name string, args ...string) error {
	return exec.Command(name, args...).Run()
}

func (o *osExecutor) RunStreamed(name string, args []string, stdout, stderr io.Writer) error {
	cmd := exec.Command(name, args...)
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	return cmd.Run()
}

// interpreter implements Interpreter for a specific Python binary. python3
// and python share the same logic; they differ only in binary name.
type interpreter struct {
	bin  string
	exec executor
}

func (p *interpreter) Name() string { return p.bin }

func (p *interpreter) Available() bool {
	if _, err := p.exec.LookPath(p.bin); err != nil {
		return false
	}
	return p.exec.RunSilent(p.bin, "--version") == nil
}

func (p *interpreter) ModuleAvailable(module string) error {
	if err := p.exec.RunSilent(p.bin, "-m", module, "--version"); err != nil {
		return fmt.Errorf("module %s not available in %s: %w", module, p.bin, err)
	}
	return nil
}

func (p *interpreter) RunModule(module string, args []string, stdout, stderr io.Writer) error {
	full := make([]string, 0, len(args)+2)
	full = append(full, "-m", module)
	full = append(full, args...)

	if err := p.exec.RunStreamed(p.bin, full, stdout, stderr); err != nil {
		return fmt.Errorf("running %s -m %s: %w", p.bin, module, err)
	}
	return nil
}

func newInterpreter(bin string, exec executor) *interpreter {
	return &interpreter{bin: bin, exec: exec}
}

var defaultExec = &osExecutor{}

// Detect tries python3 first, falls back to python. Returns an error if
// neither interpreter is available.
func Detect() (Interpreter, error) {
	return detect(defaultExec)
}

func detect(exec executor) (Interpreter, error) {
	python3 := newInterpreter(binPython3, exec)
	if python3.Available() {
		return python3, nil
	}

	python := newInterpreter(binPython, exec)
	if python.Available() {
		return python, nil
	}

	return nil, fmt.Errorf(
		"no Python interpreter available: neither %s nor %s found or operational",
		binPython3, binPython,
	)
}
