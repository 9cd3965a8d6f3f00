package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/pypack/internal/manifest"
	"github.com/pdiddy/pypack/internal/pytool"
	"github.com/pdiddy/pypack/internal/workflow"
	"github.com/pdiddy/pypack/pkg/types"
)

var depsCmd = &cobra.Command{
	Use:   "deps",
	Short: "Install the dependency manifest with pip",
	Long: `Deps runs only the dependency-installation step: it parses the
requirements file, then installs it through the detected interpreter's pip
module. Use --list to show the parsed requirements without installing.`,
	RunE: runDeps,
}

func runDeps(cmd *cobra.Command, args []string) error {
	path := stringSetting(cmd, "manifest", "manifest")
	if path == "" {
		path = types.DefaultManifest
	}

	man, err := manifest.Load(path)
	if err != nil {
		return err
	}
	if err := man.Validate(); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	if listOnly, _ := cmd.Flags().GetBool("list"); listOnly {
		for _, r := range man.Requirements {
			fmt.Println(r.Raw)
		}
		if len(man.Directives) > 0 {
			fmt.Printf("(%d pip directive(s): %s)\n", len(man.Directives), strings.Join(man.Directives, ", "))
		}
		return nil
	}

	py, err := pytool.Detect()
	if err != nil {
		return err
	}

	fmt.Printf("Installing %d requirement(s) from %s with %s\n", len(man.Requirements), path, py.Name())
	if err := workflow.NewPipInstaller(py).Install(path, os.Stdout, os.Stderr); err != nil {
		return fmt.Errorf("%w: %v", workflow.ErrDependencyInstall, err)
	}
	return nil
}

func init() {
	depsCmd.Flags().String("manifest", "", "pip requirements file (default: "+types.DefaultManifest+")")
	depsCmd.Flags().Bool("list", false, "print parsed requirements and exit")

	rootCmd.AddCommand(depsCmd)
}
