// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/pdf-renamer/internal/history"
	"github.com/pdiddy/pdf-renamer/pkg/types"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List renames applied by previous runs",
	Long: `History prints the most recent renames recorded in the history database,
newest first. Dry runs are never recorded.`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().Int("limit", 50, "maximum number of entries to show")
	historyCmd.Flags().Bool("json", false, "output results as JSON")
	historyCmd.Flags().String("history-dir", "", "directory for the rename history database (default ~/.config/pdf-renamer)")

	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	dir, _ := cmd.Flags().GetString("history-dir")
	if dir == "" {
		dir = viper.GetString("history_dir")
	}
	limit, _ := cmd.Flags().GetInt("limit")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	store, err := history.Open(dir)
	if err != nil {
		return err
	}
	defer store.Close()

	entries, err := store.List(cmd.Context(), limit)
	if err != nil {
		return err
	}
	return formatHistory(cmd.OutOrStdout(), entries, jsonOutput)
}

func formatHistory(w io.Writer, entries []types.HistoryEntry, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if entries == nil {
			entries = []types.HistoryEntry{}
		}
		return enc.Encode(entries)
	}

	if len(entries) == 0 {
		fmt.Fprintln(w, "No renames recorded.")
		return nil
	}

	fmt.Fprintf(w, "%-20s  %-40s  %-40s  %s\n", "When", "Old name", "New name", "Directory")
	fmt.Fprintln(w, strings.Repeat("-", 120))
	for _, e := range entries {
		fmt.Fprintf(w, "%-20s  %-40s  %-40s  %s\n",
			e.RenamedAt.Local().Format("2006-01-02 15:04:05"), truncate(e.OldName, 40), truncate(e.NewName, 40), e.Dir)
	}
	return nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
