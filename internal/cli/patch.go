package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ariel-frischer/relpatch/internal/config"
	"github.com/ariel-frischer/relpatch/internal/errors"
	"github.com/ariel-frischer/relpatch/internal/git"
	"github.com/ariel-frischer/relpatch/internal/history"
	"github.com/ariel-frischer/relpatch/internal/output"
	"github.com/ariel-frischer/relpatch/internal/release"
)

var patchCmd = &cobra.Command{
	Use:   "patch",
	Short: "Splice changelog entries into the release description",
	Long: `Patch the release description document: for each selected component,
resolve its version, extract that version's changelog entry, and replace
every occurrence of the component's placeholder token.

Component selection (flags exist per configured component):
  --<component>                 version discovered from its Cargo.toml
  --<component>-version <v>     explicit version
  --all                         every configured component via manifests

The document is read once, patched for all selections, and written once.
A blank entry inserts the configured fallback text; a version heading that
does not exist in the changelog fails the run.`,
	Example: `  relpatch patch --all
  relpatch patch --sn-api --sn-cli
  relpatch patch --sn-api-version 0.26.0 --dry-run
  relpatch patch --all --commit -o dist/release_description.md`,
	GroupID:      GroupRelease,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE:         runPatch,
}

func init() {
	rootCmd.AddCommand(patchCmd)
	patchCmd.Flags().Bool("all", false, "Select every configured component")
	patchCmd.Flags().StringP("description", "D", "", "Release description document (default from config)")
	patchCmd.Flags().StringP("output", "o", "", "Write the patched document here instead of in place")
	patchCmd.Flags().Bool("dry-run", false, "Print the patched document without writing")
	patchCmd.Flags().Bool("commit", false, "Substitute __RELEASE_COMMIT__ with the short HEAD hash")
}

func runPatch(cmd *cobra.Command, args []string) error {
	cfg, registry, err := getConfig()
	if err != nil {
		return err
	}

	selections, err := resolveSelections(cmd, registry, true)
	if err != nil {
		return err
	}

	if resolveCommit, _ := cmd.Flags().GetBool("commit"); resolveCommit && !git.IsRepository("") {
		return errors.NotARepository()
	}

	assembler := assemblerFromFlags(cmd, cfg)

	result, err := assembler.Run(cmd.Context(), selections)
	err = mapDomainError(err)

	writer := history.NewWriter(cfg.StateDir, cfg.MaxHistoryEntries)
	writer.LogRun("patch", selectionNames(selections, result), assembler.DescriptionPath, ExitCode(err), durationOf(result))

	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	if dryRun {
		fmt.Fprint(out, result.Document)
		return nil
	}

	printRunSummary(cmd, result)
	return nil
}

// assemblerFromFlags builds an Assembler from config plus command flags.
// Shared by patch and watch, which carry different flag subsets.
func assemblerFromFlags(cmd *cobra.Command, cfg *config.Configuration) *release.Assembler {
	descPath, _ := cmd.Flags().GetString("description")
	if descPath == "" {
		descPath = cfg.Description
	}
	outPath, _ := cmd.Flags().GetString("output")

	a := &release.Assembler{
		DescriptionPath: descPath,
		OutputPath:      outPath,
		Fallback:        cfg.FallbackText,
		RemoteTimeout:   cfg.RemoteTimeout(),
	}

	if cmd.Flags().Lookup("dry-run") != nil {
		a.DryRun, _ = cmd.Flags().GetBool("dry-run")
	}
	if cmd.Flags().Lookup("commit") != nil {
		a.ResolveCommit, _ = cmd.Flags().GetBool("commit")
	}
	return a
}

// printRunSummary reports per-component outcomes and the written document.
func printRunSummary(cmd *cobra.Command, result *release.Result) {
	out := cmd.OutOrStdout()
	total := len(result.Components)

	for i, c := range result.Components {
		output.PrintComponentHeader(out, i+1, total, c.Name, c.Version)
		switch {
		case c.Replacements == 0:
			output.PrintWarning(out, "token not present in document, nothing replaced")
		case c.UsedFallback:
			output.PrintSuccess(out, fmt.Sprintf("no entry text, fallback inserted at %d occurrence(s)", c.Replacements))
		default:
			output.PrintSuccess(out, fmt.Sprintf("entry (%d chars) inserted at %d occurrence(s)", c.EntryLen, c.Replacements))
		}
	}

	if result.Commit != "" {
		line := "release commit " + result.Commit
		if result.Branch != "" {
			line += " on " + result.Branch
		}
		output.PrintSuccess(out, line)
	}
	output.PrintWritten(out, result.OutputPath)
	output.PrintRule(out, fmt.Sprintf("patched in %s", result.Duration.Round(time.Millisecond)))
}

// selectionNames renders name@version pairs for history, preferring the
// versions the run actually resolved.
func selectionNames(selections []release.Selection, result *release.Result) []string {
	if result != nil {
		names := make([]string, 0, len(result.Components))
		for _, c := range result.Components {
			names = append(names, c.Name+"@"+c.Version)
		}
		return names
	}
	names := make([]string, 0, len(selections))
	for _, s := range selections {
		names = append(names, s.String())
	}
	return names
}

func durationOf(result *release.Result) time.Duration {
	if result != nil {
		return result.Duration
	}
	return 0
}
