package config

import (
	"os"
	"path/filepath"
)

// UserConfigPath returns the path to the user-level config file.
// This follows the XDG Base Directory Specification:
// - Linux: ~/.config/relpatch/config.yml
// - macOS: ~/Library/Application Support/relpatch/config.yml
// - Windows: %APPDATA%\relpatch\config.yml
//
// If XDG_CONFIG_HOME is set, it will be respected on Linux.
func UserConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "relpatch", "config.yml"), nil
}

// UserConfigDir returns the path to the user-level config directory.
func UserConfigDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "relpatch"), nil
}

// ProjectConfigPath returns the path to the project-level config file.
// This is always .relpatch/config.yml relative to the current directory.
func ProjectConfigPath() string {
	return filepath.Join(".relpatch", "config.yml")
}

// ProjectConfigDir returns the path to the project-level config directory.
func ProjectConfigDir() string {
	return ".relpatch"
}
