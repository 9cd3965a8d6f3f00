package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/pdiddy/pypack/internal/bundle"
	"github.com/pdiddy/pypack/internal/pytool"
	"github.com/pdiddy/pypack/internal/workflow"
)

var bundleCmd = &cobra.Command{
	Use:   "bundle",
	Short: "Bundle the entry script with PyInstaller",
	Long: `Bundle runs only the bundling step, assuming dependencies are already
installed. It produces a single-file windowed executable by default.`,
	RunE: runBundle,
}

func runBundle(cmd *cobra.Command, args []string) error {
	cfg := projectFromFlags(cmd)

	py, err := pytool.Detect()
	if err != nil {
		return err
	}

	opts := bundle.FromProject(cfg)
	if err := bundle.New(py).Bundle(opts, os.Stdout, os.Stderr); err != nil {
		return fmt.Errorf("%w: %v", workflow.ErrBundleBuild, err)
	}

	color.New(color.FgGreen).Printf("Build complete: %s\n", opts.ArtifactPath())
	return nil
}

func init() {
	addProjectFlags(bundleCmd)

	rootCmd.AddCommand(bundleCmd)
}
