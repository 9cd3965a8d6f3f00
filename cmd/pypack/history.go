// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/pypack/internal/history"
	"github.com/pdiddy/pypack/pkg/types"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded builds",
	Long: `History lists past workflow runs, newest first, from the local
.pypack/history.db database. Failed runs show the step that failed and the
error. Use --export to write the full history to .pypack/history.yaml.`,
	RunE: runHistory,
}

func runHistory(cmd *cobra.Command, args []string) error {
	store, err := history.Open(".")
	if err != nil {
		return err
	}
	defer store.Close()

	if export, _ := cmd.Flags().GetBool("export"); export {
		path, err := store.ExportYAML(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Println("Exported to", path)
		return nil
	}

	limit, _ := cmd.Flags().GetInt("limit")
	recs, err := store.List(cmd.Context(), limit)
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatHistoryOutput(recs, jsonOutput)
}

func formatHistoryOutput(recs []types.BuildRecord, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(recs)
	}

	if len(recs) == 0 {
		fmt.Println("No builds recorded.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-4s  %-20s  %-9s  %-9s  %-24s  %s\n",
		"ID", "Started", "Duration", "Status", "Artifact", "Error")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 90))

	for _, r := range recs {
		detail := r.Artifact
		errText := r.Error
		if r.Status == types.BuildFailed {
			detail = "-"
			errText = fmt.Sprintf("[%s] %s", r.FailedStep, r.Error)
		}
		errText = truncate(errText, 40)
		fmt.Fprintf(os.Stdout, "%-4d  %-20s  %-9s  %-9s  %-24s  %s\n",
			r.ID, r.StartedAt.Format("2006-01-02 15:04:05"),
			r.Duration.Round(100*time.Millisecond).String(), r.Status, detail, errText)
	}

	fmt.Fprintf(os.Stdout, "\n%d build(s)\n", len(recs))
	return nil
}

// truncate shortens s to at most max characters, ending in "...". It counts
// runes, not bytes; step errors from the packaged toolchain are not ASCII-only.
func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}

func init() {
	historyCmd.Flags().Int("limit", 0, "maximum builds to list (0 = default 20, negative = all)")
	historyCmd.Flags().Bool("json", false, "output records as JSON")
	historyCmd.Flags().Bool("export", false, "export full history to YAML")

	rootCmd.AddCommand(historyCmd)
}
