package errors

import (
	"fmt"
	"strings"
)

// Common error messages for the relpatch CLI.
// These templates keep failure output consistent and actionable.

// MissingComponentSelection creates an error when patch is invoked with no
// component selected.
func MissingComponentSelection() *CLIError {
	return NewArgumentErrorWithUsage(
		"no components selected",
		"relpatch patch [--all | --<component> | --<component>-version <value>]",
		"Select every configured component with: relpatch patch --all",
		"List configured components with: relpatch components",
	)
}

// UnknownComponent creates an error for a component name that is not in
// the registry.
func UnknownComponent(name string, available []string) *CLIError {
	remediation := []string{
		"List configured components with: relpatch components",
		"Add missing components to .relpatch/config.yml",
	}
	if len(available) > 0 {
		remediation = append([]string{
			"Configured components: " + strings.Join(available, ", "),
		}, remediation...)
	}
	return NewArgumentError(
		fmt.Sprintf("unknown component: %s", name),
		remediation...,
	)
}

// NoComponentsConfigured creates an error when the registry is empty.
func NoComponentsConfigured() *CLIError {
	return NewConfigError(
		"no components configured",
		"Run 'relpatch init' to scaffold .relpatch/config.yml",
		"Then declare your components under the 'components' key",
	)
}

// ManifestMissing creates an error for a missing component manifest.
func ManifestMissing(name, path string) *CLIError {
	return NewPrerequisiteError(
		fmt.Sprintf("manifest for %s not found: %s", name, path),
		"Check the configured manifest path with: relpatch components",
		fmt.Sprintf("Or pass the version explicitly: relpatch patch --%s-version <value>", strings.ReplaceAll(name, "_", "-")),
	)
}

// ChangelogMissing creates an error for a missing component changelog.
func ChangelogMissing(name, path string) *CLIError {
	return NewPrerequisiteError(
		fmt.Sprintf("changelog for %s not found: %s", name, path),
		"Check the configured changelog path with: relpatch components",
		"Create the changelog before cutting a release",
	)
}

// VersionHeadingMissing creates an error when a changelog has no heading
// for the requested version.
func VersionHeadingMissing(name, path, version string, available []string) *CLIError {
	remediation := []string{
		fmt.Sprintf("Add a '## v%s' section to %s", version, path),
		fmt.Sprintf("List the versions present with: relpatch versions %s", name),
	}
	if len(available) > 0 {
		remediation = append([]string{
			"Versions present: " + strings.Join(available, ", "),
		}, remediation...)
	}
	return NewPrerequisiteError(
		fmt.Sprintf("no '## v%s' heading in %s", version, path),
		remediation...,
	)
}

// TargetMissing creates an error for a missing release description.
func TargetMissing(path string) *CLIError {
	return NewPrerequisiteError(
		fmt.Sprintf("release description not found: %s", path),
		"Create the template document with placeholder tokens (e.g. __SN_API_CHANGELOG_TEXT__)",
		"Or point at it with: relpatch patch --description <path>",
	)
}

// ConfigFileNotFound creates an error for a missing config file.
func ConfigFileNotFound(path string) *CLIError {
	return NewConfigError(
		fmt.Sprintf("config file not found: %s", path),
		"Run 'relpatch init' to create the default configuration",
		"Or create the file manually with a 'components' table",
	)
}

// ConfigParseError creates an error for an invalid config file.
func ConfigParseError(path string, err error) *CLIError {
	return WrapWithMessage(err, Configuration,
		fmt.Sprintf("failed to parse config file: %s", path),
		"Check the file for YAML syntax errors",
		"Reset to defaults with: relpatch init --force",
	)
}

// InvalidFlagCombination creates an error for incompatible flags.
func InvalidFlagCombination(flags string, reason string) *CLIError {
	return NewArgumentError(
		fmt.Sprintf("invalid flag combination: %s", flags),
		reason,
		"Use 'relpatch <command> --help' to see valid options",
	)
}

// NotARepository creates an error when commit resolution runs outside a
// git repository.
func NotARepository() *CLIError {
	return NewPrerequisiteError(
		"not a git repository",
		"Run from inside the release workspace checkout",
		"Or drop --commit to skip commit hash substitution",
	)
}

// WatchNeedsDistinctOutput creates an error when watch would overwrite
// its own template.
func WatchNeedsDistinctOutput() *CLIError {
	return NewArgumentErrorWithUsage(
		"watch requires an output path different from the template",
		"relpatch watch --output <path>",
		"Patching in place consumes the placeholder tokens, so repeated runs need a separate output file",
	)
}

// FileNotWritable creates an error when a document cannot be written.
func FileNotWritable(path string) *CLIError {
	return NewRuntimeError(
		fmt.Sprintf("cannot write to file: %s", path),
		"Check file permissions: ls -la "+path,
		"Ensure the parent directory exists and is writable",
	)
}
