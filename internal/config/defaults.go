package config

import "github.com/ariel-frischer/relpatch/internal/description"

// GetDefaultConfigTemplate returns a fully commented config template that
// helps users understand all available options.
func GetDefaultConfigTemplate() string {
	return `# Relpatch Configuration
# See 'relpatch config -h' for commands, 'relpatch config keys' for all options

# Document settings
description: release_description.md   # Release description document to patch
# fallback_text: "No changes for this release"  # Inserted when an entry is blank
# color: auto                          # Colored output: auto, always, or never

# History settings
state_dir: ~/.relpatch/state          # Directory for run history
max_history_entries: 200              # Max patch run entries to retain

# Remote changelogs
remote_timeout_seconds: 5             # Fetch budget for http(s) changelog locations

# Release components.
# Every field except 'name' derives from the name when omitted:
#   dir:       <name>
#   changelog: <dir>/CHANGELOG.md     (may also be an http(s) URL)
#   manifest:  <dir>/Cargo.toml
#   token:     __<NAME>_CHANGELOG_TEXT__
#   version_token: __<NAME>_VERSION__
components: []
#  - name: sn_api
#  - name: sn_cli
#  - name: sn_authd
#  - name: sn_node
#  - name: safe_app
#    changelog: https://raw.githubusercontent.com/example/safe_app/master/CHANGELOG.md
`
}

// GetDefaults returns the default configuration values.
func GetDefaults() map[string]interface{} {
	return map[string]interface{}{
		// description: The document whose placeholder tokens get replaced.
		// Relative paths resolve against the working directory.
		"description": "release_description.md",
		// fallback_text: Inserted when a component's entry for the released
		// version is empty or whitespace-only.
		"fallback_text": description.FallbackText,
		"state_dir":     "~/.relpatch/state",
		// max_history_entries: Maximum number of patch run entries to retain.
		// Oldest entries are pruned when this limit is exceeded.
		"max_history_entries": 200,
		// remote_timeout_seconds: Per-fetch budget for changelog URLs.
		"remote_timeout_seconds": 5,
		"color":                  "auto",
		"components":             []interface{}{},
	}
}
