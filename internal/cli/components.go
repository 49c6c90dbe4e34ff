package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ariel-frischer/relpatch/internal/errors"
)

var componentsCmd = &cobra.Command{
	Use:          "components",
	Short:        "Print the configured component table",
	Long:         `Print the component registry: each component's directory, changelog and manifest locations, and the placeholder token it patches.`,
	GroupID:      GroupInspection,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE:         runComponents,
}

func init() {
	rootCmd.AddCommand(componentsCmd)
}

func runComponents(cmd *cobra.Command, args []string) error {
	_, registry, err := getConfig()
	if err != nil {
		return err
	}
	if registry.Len() == 0 {
		return errors.NoComponentsConfigured()
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tCHANGELOG\tMANIFEST\tTOKEN")
	for _, c := range registry.All() {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", c.Name, c.Changelog, c.Manifest, c.Token)
	}
	return w.Flush()
}
