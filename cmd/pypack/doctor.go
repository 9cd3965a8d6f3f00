package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/pdiddy/pypack/internal/pytool"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Report Python toolchain availability",
	Long: `Doctor checks everything the packaging workflow needs: a Python
interpreter on PATH, the pip module, and the PyInstaller module. Missing
PyInstaller is a warning only, since the install step can provide it.`,
	RunE: runDoctor,
}

func runDoctor(cmd *cobra.Command, args []string) error {
	ok := color.New(color.FgGreen).SprintFunc()
	bad := color.New(color.FgRed).SprintFunc()
	warn := color.New(color.FgYellow).SprintFunc()

	py, err := pytool.Detect()
	if err != nil {
		fmt.Printf("interpreter  %s  %v\n", bad("missing"), err)
		return err
	}
	fmt.Printf("interpreter  %s  %s\n", ok("ok"), py.Name())

	if err := py.ModuleAvailable(pytool.ModulePip); err != nil {
		fmt.Printf("pip          %s  %v\n", bad("missing"), err)
		return err
	}
	fmt.Printf("pip          %s\n", ok("ok"))

	if err := py.ModuleAvailable(pytool.ModulePyInstaller); err != nil {
		fmt.Printf("PyInstaller  %s  installed by the deps step when listed in the manifest\n", warn("missing"))
		return nil
	}
	fmt.Printf("PyInstaller  %s\n", ok("ok"))
	return nil
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}
