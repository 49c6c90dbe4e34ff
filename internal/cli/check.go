package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ariel-frischer/relpatch/internal/output"
	"github.com/ariel-frischer/relpatch/internal/progress"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify components are ready to patch, without writing",
	Long: `Check every selected component without modifying anything: the manifest
resolves to a version, the changelog is readable and carries a heading for
that version, and the component's placeholder token is present in the
release description document.

Exits non-zero when any component fails, so release pipelines can gate the
patch step on it. Component checks run concurrently.`,
	Example: `  relpatch check --all
  relpatch check --sn-api --sn-cli
  relpatch check --sn-api-version 0.26.0`,
	GroupID:      GroupRelease,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE:         runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().Bool("all", false, "Check every configured component")
	checkCmd.Flags().StringP("description", "D", "", "Release description document (default from config)")
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, registry, err := getConfig()
	if err != nil {
		return err
	}

	selections, err := resolveSelections(cmd, registry, true)
	if err != nil {
		return err
	}

	assembler := assemblerFromFlags(cmd, cfg)

	runner := progress.NewRunner(progress.DetectTerminalCapabilities(), cmd.ErrOrStderr())
	runner.Start(fmt.Sprintf("Verifying %d component(s)", len(selections)))

	results, err := assembler.Check(cmd.Context(), selections)
	if err != nil {
		runner.Stop()
		return mapDomainError(err)
	}

	failures := 0
	for _, r := range results {
		if !r.OK() {
			failures++
		}
	}
	if failures == 0 {
		runner.Succeed(fmt.Sprintf("Verified %d component(s)", len(results)))
	} else {
		runner.Fail(fmt.Sprintf("%d of %d component(s) failed verification.", failures, len(results)))
	}

	out := cmd.OutOrStdout()
	for _, r := range results {
		label := r.Name
		if r.Version != "" {
			label += " " + r.Version
		}
		if r.OK() {
			output.PrintSuccess(out, label)
			continue
		}
		output.PrintFailure(out, fmt.Sprintf("%s: %v", label, r.Err))
	}

	if failures > 0 {
		return NewExitError(ExitCheckFailed)
	}

	fmt.Fprintf(out, "\nAll %d component(s) ready.\n", len(results))
	return nil
}
