// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package bundle

import (
	"bytes"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pdiddy/pypack/pkg/types"
)

// fakeInterpreter implements pytool.Interpreter for testing.
type fakeInterpreter struct {
	missingModules map[string]bool
	runErr         error
	gotModule      string
	gotArgs        []string
}

func (f *fakeInterpreter) Name() string { return "python3" }

func (f *fakeInterpreter) Available() bool { return true }

func (f *fakeInterpreter) ModuleAvailable(module string) error {
	if f.missingModules[module] {
		return errors.New("module " + module + " not available")
	}
	return nil
}

func (f *fakeInterpreter) RunModule(module string, args []string, stdout, stderr io.Writer) error {
	f.gotModule = module
	f.gotArgs = args
	if f.runErr != nil {
		return f.runErr
	}
	_, _ = stdout.Write([]byte("Building EXE from EXE-00.toc completed successfully.\n"))
	return nil
}

func TestOptionsArgs(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		want []string
	}{
		{
			name: "full one-file windowed build",
			opts: Options{
				Name:      "PDFSplitter",
				Entry:     "pdf_splitter.py",
				DistDir:   "dist",
				WorkDir:   "build",
				OneFile:   true,
				Windowed:  true,
				Clean:     true,
				NoConfirm: true,
			},
			want: []string{
				"--noconfirm", "--clean", "--onefile", "--windowed",
				"--name", "PDFSplitter", "--distpath", "dist", "--workpath", "build",
				"pdf_splitter.py",
			},
		},
		{
			name: "console directory build",
			opts: Options{Name: "tool", Entry: "main.py"},
			want: []string{"--name", "tool", "main.py"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.opts.Args()
			if strings.Join(got, " ") != strings.Join(tt.want, " ") {
				t.Errorf("args = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestArtifactPath(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		goos string
		want string
	}{
		{
			name: "windows gets exe suffix",
			opts: Options{Name: "PDFSplitter", DistDir: "dist", Windowed: true},
			goos: "windows",
			want: filepath.Join("dist", "PDFSplitter.exe"),
		},
		{
			name: "windowed darwin gets app bundle",
			opts: Options{Name: "PDFSplitter", DistDir: "dist", Windowed: true},
			goos: "darwin",
			want: filepath.Join("dist", "PDFSplitter.app"),
		},
		{
			name: "console darwin is a bare binary",
			opts: Options{Name: "PDFSplitter", DistDir: "dist"},
			goos: "darwin",
			want: filepath.Join("dist", "PDFSplitter"),
		},
		{
			name: "linux is a bare binary",
			opts: Options{Name: "PDFSplitter", DistDir: "dist", Windowed: true},
			goos: "linux",
			want: filepath.Join("dist", "PDFSplitter"),
		},
		{
			name: "empty dist dir falls back to default",
			opts: Options{Name: "PDFSplitter"},
			goos: "linux",
			want: filepath.Join(types.DefaultDistDir, "PDFSplitter"),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.opts.artifactPath(tt.goos); got != tt.want {
				t.Errorf("artifactPath(%q) = %q, want %q", tt.goos, got, tt.want)
			}
		})
	}
}

func TestBundle(t *testing.T) {
	opts := Options{Name: "PDFSplitter", Entry: "pdf_splitter.py", OneFile: true, Windowed: true}

	t.Run("runs PyInstaller with built args", func(t *testing.T) {
		py := &fakeInterpreter{}
		b := New(py)
		var out, errOut bytes.Buffer

		if err := b.Bundle(opts, &out, &errOut); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if py.gotModule != "PyInstaller" {
			t.Errorf("module = %q, want PyInstaller", py.gotModule)
		}
		if strings.Join(py.gotArgs, " ") != strings.Join(opts.Args(), " ") {
			t.Errorf("args = %v, want %v", py.gotArgs, opts.Args())
		}
		if !strings.Contains(out.String(), "completed successfully") {
			t.Errorf("output should stream through, got %q", out.String())
		}
	})

	t.Run("missing PyInstaller fails before running", func(t *testing.T) {
		py := &fakeInterpreter{missingModules: map[string]bool{"PyInstaller": true}}
		b := New(py)

		err := b.Bundle(opts, io.Discard, io.Discard)
		if err == nil {
			t.Fatal("expected error, got nil")
		}
		if !strings.Contains(err.Error(), "PyInstaller not available") {
			t.Errorf("error should mention PyInstaller, got: %v", err)
		}
		if py.gotModule != "" {
			t.Error("RunModule should not be called when the probe fails")
		}
	})

	t.Run("bundler failure returns wrapped error", func(t *testing.T) {
		py := &fakeInterpreter{runErr: errors.New("exit status 1")}
		b := New(py)

		err := b.Bundle(opts, io.Discard, io.Discard)
		if err == nil {
			t.Fatal("expected error, got nil")
		}
		if !strings.Contains(err.Error(), "pdf_splitter.py") {
			t.Errorf("error should mention entry script, got: %v", err)
		}
	})
}
