package cli

import (
	"fmt"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ariel-frischer/relpatch/internal/config"
	"github.com/ariel-frischer/relpatch/internal/errors"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage relpatch configuration",
	Long: `Manage relpatch configuration settings.

Configuration is loaded with the following priority (highest to lowest):
  1. Environment variables (RELPATCH_*)
  2. Project config (.relpatch/config.yml)
  3. User config (~/.config/relpatch/config.yml)
  4. Built-in defaults`,
	Example: `  # Show the effective configuration
  relpatch config show

  # List known keys with their defaults
  relpatch config keys

  # Set a value in the project config
  relpatch config set max_history_entries 50`,
	GroupID: GroupConfiguration,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConfigShow(cmd, args)
	},
}

var configShowCmd = &cobra.Command{
	Use:          "show",
	Short:        "Show the effective configuration",
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE:         runConfigShow,
}

var configKeysCmd = &cobra.Command{
	Use:          "keys",
	Short:        "List known configuration keys",
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE:         runConfigKeys,
}

var configSetCmd = &cobra.Command{
	Use:          "set <key> <value>",
	Short:        "Set a value in the project config file",
	Args:         cobra.ExactArgs(2),
	SilenceUsage: true,
	RunE:         runConfigSet,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd, configKeysCmd, configSetCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, registry, err := getConfig()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "description: %s\n", cfg.Description)
	fmt.Fprintf(out, "fallback_text: %q\n", cfg.FallbackText)
	fmt.Fprintf(out, "state_dir: %s\n", cfg.StateDir)
	fmt.Fprintf(out, "max_history_entries: %d\n", cfg.MaxHistoryEntries)
	fmt.Fprintf(out, "remote_timeout_seconds: %d\n", cfg.RemoteTimeoutSeconds)
	fmt.Fprintf(out, "color: %s\n", cfg.Color)
	fmt.Fprintf(out, "components: %d configured\n", registry.Len())

	if userPath, err := config.UserConfigPath(); err == nil {
		fmt.Fprintf(out, "\nuser config: %s\n", userPath)
	}
	fmt.Fprintf(out, "project config: %s\n", projectConfigPath())
	return nil
}

func runConfigKeys(cmd *cobra.Command, args []string) error {
	keys := make([]string, 0, len(config.KnownKeys))
	for key := range config.KnownKeys {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "KEY\tTYPE\tDEFAULT\tDESCRIPTION")
	for _, key := range keys {
		schema := config.KnownKeys[key]
		fmt.Fprintf(w, "%s\t%s\t%v\t%s\n", key, schema.Type, schema.Default, schema.Description)
	}
	return w.Flush()
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key, value := args[0], args[1]

	if err := config.SetValue(key, value); err != nil {
		return errors.Wrap(err, errors.Configuration,
			"List known keys with: relpatch config keys")
	}

	fmt.Fprintf(cmd.OutOrStdout(), "✓ Set %s = %s in %s\n", key, value, config.ProjectConfigPath())
	return nil
}
