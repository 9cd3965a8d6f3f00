// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the pypack CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the pypack CLI.
var rootCmd = &cobra.Command{
	Use:   "pypack",
	Short: "Package a Python application into a standalone executable",
	Long: `pypack replaces the per-platform packaging scripts with one tool: it
installs the pip dependency manifest, then runs PyInstaller to produce a
single-file windowed executable.

Run "pypack build" for the full workflow, or "deps" and "bundle" to run the
two steps individually. "doctor" reports toolchain availability, "history"
lists recorded builds.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./pypack.yaml or ~/.config/pypack/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("pypack")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "pypack"))
		}
	}

	viper.SetEnvPrefix("PYPACK")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
