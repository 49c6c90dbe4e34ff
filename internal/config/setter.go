package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrEmptyKeyPath is returned when a key path is empty or whitespace.
var ErrEmptyKeyPath = errors.New("empty key path")

// ParseKeyPath splits a dotted key path into its segments.
// Example: "notifications.enabled" -> ["notifications", "enabled"].
func ParseKeyPath(path string) ([]string, error) {
	if strings.TrimSpace(path) == "" {
		return nil, ErrEmptyKeyPath
	}

	segments := strings.Split(path, ".")
	for _, seg := range segments {
		if strings.TrimSpace(seg) == "" {
			return nil, fmt.Errorf("invalid key path %q: empty segment", path)
		}
	}
	return segments, nil
}

// SetValue validates and persists a configuration value in the project
// config file. The value is checked against the key's declared schema
// before anything is written, so a typo never lands on disk.
func SetValue(key, value string) error {
	return SetValueInFile(ProjectConfigPath(), key, value)
}

// SetValueInFile validates and persists a configuration value in a specific
// YAML config file, creating the file and its directory when absent.
func SetValueInFile(configPath, key, value string) error {
	parsed, err := ValidateValue(key, value)
	if err != nil {
		return err
	}

	segments, err := ParseKeyPath(key)
	if err != nil {
		return err
	}

	doc := make(map[string]interface{})
	if data, err := os.ReadFile(configPath); err == nil {
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return fmt.Errorf("parsing config file %s: %w", configPath, err)
		}
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("reading config file %s: %w", configPath, err)
	}

	setNested(doc, segments, parsed.Parsed)

	data, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		return fmt.Errorf("writing config file %s: %w", configPath, err)
	}
	return nil
}

// setNested writes value at the key path, creating intermediate maps.
// Intermediate values that are not maps are replaced.
func setNested(doc map[string]interface{}, segments []string, value interface{}) {
	for _, seg := range segments[:len(segments)-1] {
		next, ok := doc[seg].(map[string]interface{})
		if !ok {
			next = make(map[string]interface{})
			doc[seg] = next
		}
		doc = next
	}
	doc[segments[len(segments)-1]] = value
}
