package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ariel-frischer/relpatch/internal/changelog"
	"github.com/ariel-frischer/relpatch/internal/errors"
	"github.com/ariel-frischer/relpatch/internal/release"
)

var versionsCmd = &cobra.Command{
	Use:   "versions <component>",
	Short: "List the version labels in a component's changelog",
	Long: `List every '## v<version>' heading label found in the component's
changelog, in document order (newest first by convention).`,
	Example:      `  relpatch versions sn_api`,
	GroupID:      GroupInspection,
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE:         runVersions,
}

func init() {
	rootCmd.AddCommand(versionsCmd)
}

func runVersions(cmd *cobra.Command, args []string) error {
	_, registry, err := getConfig()
	if err != nil {
		return err
	}
	if registry.Len() == 0 {
		return errors.NoComponentsConfigured()
	}

	comp, ok := registry.Lookup(args[0])
	if !ok {
		return errors.UnknownComponent(args[0], registry.Names())
	}

	doc, err := changelog.Resolve(cmd.Context(), comp.Changelog)
	if err != nil {
		return mapDomainError(&release.ComponentError{Name: comp.Name, Err: err})
	}

	labels := doc.Versions()
	if len(labels) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "No version headings in %s.\n", comp.Changelog)
		return nil
	}

	for _, label := range labels {
		fmt.Fprintln(cmd.OutOrStdout(), label)
	}
	return nil
}
