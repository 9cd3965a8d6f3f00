// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/pypack/internal/bundle"
	"github.com/pdiddy/pypack/internal/history"
	"github.com/pdiddy/pypack/internal/manifest"
	"github.com/pdiddy/pypack/internal/pytool"
	"github.com/pdiddy/pypack/internal/workflow"
	"github.com/pdiddy/pypack/pkg/types"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Install dependencies and bundle the application",
	Long: `Build runs the full packaging workflow: install the dependency manifest
with pip, then bundle the entry script with PyInstaller into a single-file
windowed executable. The steps run strictly in that order; the first failure
ends the run with exit status 1 after a pause so the message stays visible.`,
	RunE: runBuild,
}

func runBuild(cmd *cobra.Command, args []string) error {
	cfg := projectFromFlags(cmd)

	// Fail fast on a missing or empty manifest before spawning anything.
	man, err := manifest.Load(cfg.Manifest)
	if err != nil {
		return err
	}
	if err := man.Validate(); err != nil {
		return fmt.Errorf("%s: %w", cfg.Manifest, err)
	}

	py, err := pytool.Detect()
	if err != nil {
		return err
	}

	orch := &workflow.Orchestrator{
		Deps:    workflow.NewPipInstaller(py),
		Bundler: bundle.New(py),
		Out:     os.Stdout,
		Err:     os.Stderr,
	}

	if noPause, _ := cmd.Flags().GetBool("no-pause"); !noPause {
		orch.Prompter = workflow.SurveyPrompter{}
	}

	// History is best-effort; a broken store must not block a build.
	if hist, err := history.Open("."); err == nil {
		defer hist.Close()
		orch.History = hist
	} else {
		fmt.Fprintf(os.Stderr, "warning: build history unavailable: %v\n", err)
	}

	_, err = orch.Run(cmd.Context(), cfg)
	return err
}

// projectFromFlags resolves the project configuration: flag, then config
// file, then the packaged project's defaults.
func projectFromFlags(cmd *cobra.Command) types.ProjectConfig {
	cfg := types.ProjectConfig{
		Name:     stringSetting(cmd, "name", "name"),
		Entry:    stringSetting(cmd, "entry", "entry"),
		Manifest: stringSetting(cmd, "manifest", "manifest"),
		DistDir:  stringSetting(cmd, "dist", "dist_dir"),
		WorkDir:  viper.GetString("work_dir"),
	}
	cfg.Normalize()

	console, _ := cmd.Flags().GetBool("console")
	noOneFile, _ := cmd.Flags().GetBool("no-onefile")
	clean, _ := cmd.Flags().GetBool("clean")
	cfg.Windowed = !console
	cfg.OneFile = !noOneFile
	cfg.Clean = clean
	return cfg
}

func stringSetting(cmd *cobra.Command, flag, key string) string {
	if v, _ := cmd.Flags().GetString(flag); v != "" {
		return v
	}
	return viper.GetString(key)
}

// addProjectFlags registers the target-selection flags shared by build and
// bundle.
func addProjectFlags(cmd *cobra.Command) {
	cmd.Flags().String("name", "", "artifact name (default: "+types.DefaultName+")")
	cmd.Flags().String("entry", "", "entry script (default: "+types.DefaultEntry+")")
	cmd.Flags().String("dist", "", "output directory (default: "+types.DefaultDistDir+")")
	cmd.Flags().Bool("console", false, "keep the console window (disable --windowed)")
	cmd.Flags().Bool("no-onefile", false, "produce a directory instead of a single file")
	cmd.Flags().Bool("clean", false, "discard the PyInstaller cache before building")
}

func init() {
	addProjectFlags(buildCmd)
	buildCmd.Flags().String("manifest", "", "pip requirements file (default: "+types.DefaultManifest+")")
	buildCmd.Flags().Bool("no-pause", false, "do not wait for Enter after a failure")

	rootCmd.AddCommand(buildCmd)
}
