// relpatch - Release Description Assembly
// Author: Ariel Frischer
// Source: https://github.com/ariel-frischer/relpatch

// Package cli implements the relpatch command tree. The root command loads
// configuration before flag parsing so each configured component gets its
// own selection flags on patch and check.
package cli

import (
	stderrors "errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ariel-frischer/relpatch/internal/changelog"
	"github.com/ariel-frischer/relpatch/internal/component"
	"github.com/ariel-frischer/relpatch/internal/config"
	"github.com/ariel-frischer/relpatch/internal/description"
	"github.com/ariel-frischer/relpatch/internal/errors"
	"github.com/ariel-frischer/relpatch/internal/git"
	"github.com/ariel-frischer/relpatch/internal/manifest"
	"github.com/ariel-frischer/relpatch/internal/release"
)

// Command group IDs for help output organization.
const (
	GroupRelease       = "release"
	GroupInspection    = "inspection"
	GroupConfiguration = "configuration"
)

var (
	// cfgFile is the --config override for the project config path.
	cfgFile string
	// debugMode enables debug logging on stderr.
	debugMode bool

	loadedCfg *config.Configuration
	loadedReg *component.Registry
	loadErr   error
)

var rootCmd = &cobra.Command{
	Use:   "relpatch",
	Short: "Assemble release descriptions from per-component changelogs",
	Long: `relpatch splices versioned changelog entries into a release description
document. Each configured component has a Markdown changelog with
'## v<version>' section headings and a placeholder token
(__<COMPONENT>_CHANGELOG_TEXT__) in the description template; relpatch
replaces every token with the entry text for the version being released.

Versions come from each component's Cargo.toml manifest, or explicitly via
--<component>-version flags. Components are declared once in
.relpatch/config.yml instead of one release script per component.`,
	Example: `  # Patch the description for every configured component
  relpatch patch --all

  # Select components, versions from their manifests
  relpatch patch --sn-api --sn-cli

  # Explicit versions
  relpatch patch --sn-api-version 0.26.0

  # Print one entry without touching anything
  relpatch extract sn_api 0.26.0`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "Path to project config file (default .relpatch/config.yml)")
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug output")

	rootCmd.AddGroup(
		&cobra.Group{ID: GroupRelease, Title: "Release Commands:"},
		&cobra.Group{ID: GroupInspection, Title: "Inspection Commands:"},
		&cobra.Group{ID: GroupConfiguration, Title: "Configuration Commands:"},
	)

	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if loadedCfg != nil {
			switch loadedCfg.Color {
			case "always":
				color.NoColor = false
			case "never":
				color.NoColor = true
			}
		}
		if debugMode {
			git.SetDebugLogger(func(format string, args ...any) {
				fmt.Fprintf(os.Stderr, format+"\n", args...)
			})
		}
	}
}

// Execute runs the relpatch CLI. Configuration loads before cobra parses
// flags so the per-component selection flags exist when parsing happens;
// a config failure is deferred to the commands that actually need it, so
// 'relpatch init' and 'relpatch version' still work in a broken setup.
func Execute() error {
	loadConfiguration(peekConfigFlag(os.Args[1:]))
	registerComponentFlags()

	err := rootCmd.Execute()
	if err == nil {
		return nil
	}

	var exitErr *ExitError
	if stderrors.As(err, &exitErr) {
		return err // already reported by the command
	}

	if cliErr := errors.AsCLIError(err); cliErr != nil {
		errors.PrintError(cliErr)
	} else {
		errors.PrintSimpleError(err, errors.Runtime)
	}
	return err
}

// loadConfiguration loads config once and caches the result.
func loadConfiguration(configPath string) {
	loadedCfg, loadErr = config.Load(configPath)
	if loadErr != nil {
		return
	}
	loadedReg, loadErr = loadedCfg.Registry()
}

// getConfig returns the loaded configuration and registry, converting a
// deferred load failure into a structured error.
func getConfig() (*config.Configuration, *component.Registry, error) {
	if loadErr != nil {
		if stderrors.Is(loadErr, os.ErrNotExist) {
			return nil, nil, errors.ConfigFileNotFound(projectConfigPath())
		}
		return nil, nil, errors.ConfigParseError(projectConfigPath(), loadErr)
	}
	return loadedCfg, loadedReg, nil
}

// projectConfigPath reports the config path in effect for error messages.
func projectConfigPath() string {
	if cfgFile != "" {
		return cfgFile
	}
	return config.ProjectConfigPath()
}

// peekConfigFlag scans raw arguments for --config/-c ahead of cobra's own
// parsing, because component flags can only be registered after the config
// is read.
func peekConfigFlag(args []string) string {
	for i, arg := range args {
		switch {
		case arg == "--config" || arg == "-c":
			if i+1 < len(args) {
				return args[i+1]
			}
		case len(arg) > len("--config=") && arg[:len("--config=")] == "--config=":
			return arg[len("--config="):]
		case len(arg) > len("-c=") && arg[:len("-c=")] == "-c=":
			return arg[len("-c="):]
		}
	}
	return ""
}

// registerComponentFlags adds --<name> and --<name>-version selection flags
// for every configured component to the commands that select components.
func registerComponentFlags() {
	if loadErr != nil || loadedReg == nil {
		return
	}

	for _, cmd := range []*cobra.Command{patchCmd, checkCmd, watchCmd} {
		for _, c := range loadedReg.All() {
			cmd.Flags().Bool(c.FlagName(), false,
				fmt.Sprintf("Include %s, version from its manifest", c.Name))
			if cmd != watchCmd {
				cmd.Flags().String(c.VersionFlagName(), "",
					fmt.Sprintf("Include %s with an explicit version", c.Name))
			}
		}
	}
}

// resolveSelections turns selection flags into an ordered selection list.
// Flag order of precedence per component: explicit version flag, then the
// boolean manifest-discovery flag, then --all.
func resolveSelections(cmd *cobra.Command, registry *component.Registry, allowVersions bool) ([]release.Selection, error) {
	if registry.Len() == 0 {
		return nil, errors.NoComponentsConfigured()
	}

	all, _ := cmd.Flags().GetBool("all")

	var selections []release.Selection
	for _, c := range registry.All() {
		version := ""
		if allowVersions {
			version, _ = cmd.Flags().GetString(c.VersionFlagName())
		}
		selected, _ := cmd.Flags().GetBool(c.FlagName())

		if version == "" && !selected && !all {
			continue
		}
		selections = append(selections, release.Selection{Component: c, Version: version})
	}

	if len(selections) == 0 {
		return nil, errors.MissingComponentSelection()
	}
	return selections, nil
}

// mapDomainError converts typed domain errors into structured CLI errors
// with remediation, falling back to a runtime wrap.
func mapDomainError(err error) error {
	if err == nil {
		return nil
	}

	name := ""
	var compErr *release.ComponentError
	if stderrors.As(err, &compErr) {
		name = compErr.Name
	}

	var manifestErr *manifest.NotFoundError
	if stderrors.As(err, &manifestErr) {
		return errors.ManifestMissing(name, manifestErr.Path)
	}

	var changelogErr *changelog.NotFoundError
	if stderrors.As(err, &changelogErr) {
		return errors.ChangelogMissing(name, changelogErr.Path)
	}

	var versionErr *changelog.VersionNotFoundError
	if stderrors.As(err, &versionErr) {
		return errors.VersionHeadingMissing(name, versionErr.Path, versionErr.Version, versionErr.Available)
	}

	var targetErr *description.NotFoundError
	if stderrors.As(err, &targetErr) {
		return errors.TargetMissing(targetErr.Path)
	}

	var writeErr *description.WriteError
	if stderrors.As(err, &writeErr) {
		return errors.FileNotWritable(writeErr.Path)
	}

	if git.IsNotRepository(err) {
		return errors.NotARepository()
	}

	if cliErr := errors.AsCLIError(err); cliErr != nil {
		return cliErr
	}
	return errors.Wrap(err, errors.Runtime)
}
