package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ariel-frischer/relpatch/internal/version"
)

var versionCmd = &cobra.Command{
	Use:          "version",
	Short:        "Show relpatch version information",
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Version:    %s\n", version.Version)
		fmt.Fprintf(out, "Commit:     %s\n", version.Commit)
		fmt.Fprintf(out, "Build Date: %s\n", version.BuildDate)
		if version.IsDevBuild() {
			fmt.Fprintln(out, "\nDevelopment build. Release builds set these via ldflags.")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
