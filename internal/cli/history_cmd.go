package cli

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ariel-frischer/relpatch/internal/errors"
	"github.com/ariel-frischer/relpatch/internal/history"
)

var historyCmd = &cobra.Command{
	Use:          "history",
	Short:        "View patch run history",
	Long:         `View a log of relpatch runs with timestamp, command, components, target document, exit code, and duration.`,
	GroupID:      GroupConfiguration,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE:         runHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().StringP("component", "s", "", "Filter by component name")
	historyCmd.Flags().IntP("limit", "n", 0, "Limit to last N entries (most recent)")
	historyCmd.Flags().BoolP("clear", "C", false, "Clear all history")
}

func runHistory(cmd *cobra.Command, args []string) error {
	clearFlag, _ := cmd.Flags().GetBool("clear")
	componentFilter, _ := cmd.Flags().GetString("component")
	limit, _ := cmd.Flags().GetInt("limit")

	if limit < 0 {
		return fmt.Errorf("limit must be positive, got %d", limit)
	}
	if clearFlag && (componentFilter != "" || limit > 0) {
		return errors.InvalidFlagCombination("--clear with --component or --limit",
			"clearing removes every entry, so filters do not apply")
	}

	cfg, _, err := getConfig()
	if err != nil {
		return err
	}
	stateDir := cfg.StateDir

	if clearFlag {
		if err := history.ClearHistory(stateDir); err != nil {
			return fmt.Errorf("clearing history: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "History cleared.")
		return nil
	}

	histFile, err := history.LoadHistory(stateDir)
	if err != nil {
		return fmt.Errorf("loading history: %w", err)
	}

	entries := filterEntries(histFile.Entries, componentFilter, limit)

	if len(entries) == 0 {
		if componentFilter != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "No matching entries for component '%s'.\n", componentFilter)
		} else {
			fmt.Fprintln(cmd.OutOrStdout(), "No history available.")
		}
		return nil
	}

	displayEntries(cmd, entries)
	return nil
}

// filterEntries filters by component name and limits history entries.
func filterEntries(entries []history.HistoryEntry, componentFilter string, limit int) []history.HistoryEntry {
	var result []history.HistoryEntry

	for _, entry := range entries {
		if componentFilter == "" || entryMentions(entry, componentFilter) {
			result = append(result, entry)
		}
	}

	// Apply limit (most recent entries)
	if limit > 0 && len(result) > limit {
		result = result[len(result)-limit:]
	}

	return result
}

// entryMentions reports whether an entry's component list includes name,
// ignoring the @version suffix.
func entryMentions(entry history.HistoryEntry, name string) bool {
	for _, c := range entry.Components {
		if c == name || strings.HasPrefix(c, name+"@") {
			return true
		}
	}
	return false
}

// displayEntries formats and displays history entries.
func displayEntries(cmd *cobra.Command, entries []history.HistoryEntry) {
	out := cmd.OutOrStdout()

	green := color.New(color.FgGreen).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()
	cyan := color.New(color.FgCyan).SprintFunc()

	for _, entry := range entries {
		timestamp := entry.Timestamp.Format("2006-01-02 15:04:05")

		exitCodeStr := fmt.Sprintf("%d", entry.ExitCode)
		if entry.ExitCode == 0 {
			exitCodeStr = green(exitCodeStr)
		} else {
			exitCodeStr = red(exitCodeStr)
		}

		components := strings.Join(entry.Components, ", ")
		fmt.Fprintf(out, "%s  %s  [%s]  exit=%s  %s\n",
			timestamp, cyan(entry.Command), components, exitCodeStr, entry.Duration)
	}
}
