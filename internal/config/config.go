// relpatch - Release Description Assembly
// Author: Ariel Frischer
// Source: https://github.com/ariel-frischer/relpatch

// Package config provides hierarchical configuration management for
// relpatch using koanf. Configuration is loaded with priority: environment
// variables > project config (.relpatch/config.yml) > user config
// (~/.config/relpatch/config.yml) > defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/ariel-frischer/relpatch/internal/component"
)

// ConfigSource tracks where a configuration value came from.
type ConfigSource string

const (
	SourceDefault ConfigSource = "default"
	SourceUser    ConfigSource = "user"
	SourceProject ConfigSource = "project"
	SourceEnv     ConfigSource = "env"
)

// Configuration represents the relpatch CLI tool configuration.
type Configuration struct {
	// Description is the release description document that gets patched.
	// Can be set via RELPATCH_DESCRIPTION.
	Description string `koanf:"description" yaml:"description" validate:"required"`

	// FallbackText is inserted when a component has no entry text for the
	// released version.
	FallbackText string `koanf:"fallback_text" yaml:"fallback_text" validate:"required"`

	// StateDir holds run history. A leading ~ expands to the home
	// directory after loading.
	StateDir string `koanf:"state_dir" yaml:"state_dir"`

	// MaxHistoryEntries caps the run history; oldest entries are pruned
	// past the limit. Zero means unlimited.
	MaxHistoryEntries int `koanf:"max_history_entries" yaml:"max_history_entries" validate:"min=0"`

	// RemoteTimeoutSeconds bounds fetches of http(s) changelogs.
	RemoteTimeoutSeconds int `koanf:"remote_timeout_seconds" yaml:"remote_timeout_seconds" validate:"min=1"`

	// Color selects the output mode: auto (detect), always, or never.
	Color string `koanf:"color" yaml:"color" validate:"oneof=auto always never"`

	// Components is the release component table. Derivable fields
	// (dir, changelog, manifest, tokens) default from each name.
	Components []component.Component `koanf:"components" yaml:"components"`
}

// Load loads configuration from user, project, and environment sources.
// Priority: environment variables > project config > user config > defaults.
// An empty projectConfigPath uses the default .relpatch/config.yml.
func Load(projectConfigPath string) (*Configuration, error) {
	k := koanf.New(".")

	loadDefaults(k)

	if err := loadUserConfig(k); err != nil {
		return nil, err
	}
	if err := loadProjectConfig(k, projectConfigPath); err != nil {
		return nil, err
	}
	if err := loadEnvironmentConfig(k); err != nil {
		return nil, err
	}

	return finalizeConfig(k)
}

// loadDefaults applies default configuration values.
func loadDefaults(k *koanf.Koanf) {
	for key, value := range GetDefaults() {
		k.Set(key, value)
	}
}

// loadUserConfig loads the XDG user-level config when present.
func loadUserConfig(k *koanf.Koanf) error {
	path, err := UserConfigPath()
	if err != nil {
		return nil // no resolvable home, defaults apply
	}
	if !fileExists(path) {
		return nil
	}
	if err := loadYAMLConfig(k, path, "user"); err != nil {
		return fmt.Errorf("loading user config: %w", err)
	}
	return nil
}

// loadProjectConfig loads the project-level config when present.
// A custom path is an explicit request, so its absence is an error.
func loadProjectConfig(k *koanf.Koanf, customPath string) error {
	path := ProjectConfigPath()
	if customPath != "" {
		if !fileExists(customPath) {
			return fmt.Errorf("config file not found: %s: %w", customPath, os.ErrNotExist)
		}
		path = customPath
	} else if !fileExists(path) {
		return nil
	}
	if err := loadYAMLConfig(k, path, "project"); err != nil {
		return fmt.Errorf("loading project config: %w", err)
	}
	return nil
}

// loadYAMLConfig validates and loads a YAML config file.
func loadYAMLConfig(k *koanf.Koanf, path, configType string) error {
	if err := ValidateYAMLSyntax(path); err != nil {
		return fmt.Errorf("validating YAML syntax for %s config: %w", configType, err)
	}
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return fmt.Errorf("failed to load %s config %s: %w", configType, path, err)
	}
	return nil
}

// loadEnvironmentConfig loads environment variable overrides.
func loadEnvironmentConfig(k *koanf.Koanf) error {
	if err := k.Load(env.Provider("RELPATCH_", ".", envTransform), nil); err != nil {
		return fmt.Errorf("failed to load environment config: %w", err)
	}
	return nil
}

// finalizeConfig unmarshals, validates, and applies final transformations.
func finalizeConfig(k *koanf.Koanf) (*Configuration, error) {
	var cfg Configuration
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := ValidateConfigValues(&cfg, "config"); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	cfg.StateDir = expandHomePath(cfg.StateDir)

	return &cfg, nil
}

// Registry builds the component registry from the configured table.
func (c *Configuration) Registry() (*component.Registry, error) {
	return component.NewRegistry(c.Components)
}

// RemoteTimeout returns the fetch budget for remote changelogs.
func (c *Configuration) RemoteTimeout() time.Duration {
	return time.Duration(c.RemoteTimeoutSeconds) * time.Second
}

// fileExists returns true if the file exists and is readable.
func fileExists(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}

// envTransform converts environment variable names to config keys.
// Example: RELPATCH_MAX_HISTORY_ENTRIES -> max_history_entries
func envTransform(s string) string {
	return strings.ToLower(strings.TrimPrefix(s, "RELPATCH_"))
}

// expandHomePath expands ~ to the user's home directory.
func expandHomePath(path string) string {
	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(homeDir, path[2:])
		}
	}
	return path
}
