package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ariel-frischer/relpatch/internal/changelog"
	"github.com/ariel-frischer/relpatch/internal/errors"
	"github.com/ariel-frischer/relpatch/internal/manifest"
	"github.com/ariel-frischer/relpatch/internal/release"
)

var extractCmd = &cobra.Command{
	Use:   "extract <component> [version]",
	Short: "Print one component's changelog entry",
	Long: `Extract the changelog entry for one component and version and print it
to stdout, without touching the release description document.

When the version argument is omitted, it is discovered from the component's
Cargo.toml manifest. A version with no matching '## v<version>' heading is
an error, never empty output.`,
	Example: `  relpatch extract sn_api 0.26.0
  relpatch extract sn_cli          # version from sn_cli/Cargo.toml`,
	GroupID:      GroupInspection,
	Args:         cobra.RangeArgs(1, 2),
	SilenceUsage: true,
	RunE:         runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, args []string) error {
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

	version := ""
	if len(args) == 2 {
		version = args[1]
	}
	if version == "" {
		version, err = manifest.Version(comp.Manifest)
		if err != nil {
			return mapDomainError(&release.ComponentError{Name: comp.Name, Err: err})
		}
	}

	doc, err := changelog.Resolve(cmd.Context(), comp.Changelog)
	if err != nil {
		return mapDomainError(&release.ComponentError{Name: comp.Name, Err: err})
	}

	entry, err := doc.Entry(version)
	if err != nil {
		return mapDomainError(&release.ComponentError{Name: comp.Name, Err: err})
	}

	fmt.Fprintln(cmd.OutOrStdout(), entry)
	return nil
}
