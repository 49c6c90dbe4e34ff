package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ariel-frischer/relpatch/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the project configuration file",
	Long: `Write a commented starter configuration to .relpatch/config.yml.

The config declares the component table that drives patching: one entry per
component, with directory, changelog, manifest and token all derivable from
the component name.`,
	Example: `  relpatch init            # scaffold .relpatch/config.yml
  relpatch init --force    # overwrite an existing config`,
	GroupID:      GroupConfiguration,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE:         runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().BoolP("force", "f", false, "Overwrite existing config without prompting")
}

func runInit(cmd *cobra.Command, args []string) error {
	force, _ := cmd.Flags().GetBool("force")
	out := cmd.OutOrStdout()

	configPath := config.ProjectConfigPath()
	if _, err := os.Stat(configPath); err == nil && !force {
		fmt.Fprintf(out, "Config already exists at %s (use --force to overwrite).\n", configPath)
		return nil
	}

	if err := os.MkdirAll(config.ProjectConfigDir(), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(config.GetDefaultConfigTemplate()), 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	fmt.Fprintf(out, "✓ Created %s\n", configPath)
	fmt.Fprintln(out, "Declare your components under the 'components' key, then run: relpatch check --all")
	return nil
}
