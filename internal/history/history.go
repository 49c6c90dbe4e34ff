// Package history records relpatch runs so operators can audit which
// components and versions went into each release description.
package history

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// historyFileName is the file inside the state directory holding run history.
const historyFileName = "history.yaml"

// HistoryEntry records one relpatch command execution.
type HistoryEntry struct {
	// Timestamp is when the command finished.
	Timestamp time.Time `yaml:"timestamp"`
	// Command is the relpatch subcommand that ran (patch, check, ...).
	Command string `yaml:"command"`
	// Components lists the selected components as name@version pairs.
	Components []string `yaml:"components,omitempty"`
	// Target is the release description document that was patched.
	Target string `yaml:"target,omitempty"`
	// ExitCode is the command's exit code.
	ExitCode int `yaml:"exit_code"`
	// Duration is the human-readable run duration.
	Duration string `yaml:"duration"`
}

// HistoryFile is the on-disk history document.
type HistoryFile struct {
	Entries []HistoryEntry `yaml:"entries"`
}

// historyPath returns the history file path inside a state directory.
func historyPath(stateDir string) string {
	return filepath.Join(stateDir, historyFileName)
}

// LoadHistory reads the history file from the state directory.
// A missing file yields an empty history, not an error.
func LoadHistory(stateDir string) (*HistoryFile, error) {
	data, err := os.ReadFile(historyPath(stateDir))
	if err != nil {
		if os.IsNotExist(err) {
			return &HistoryFile{}, nil
		}
		return nil, fmt.Errorf("reading history file: %w", err)
	}

	var history HistoryFile
	if err := yaml.Unmarshal(data, &history); err != nil {
		return nil, fmt.Errorf("parsing history file: %w", err)
	}
	return &history, nil
}

// SaveHistory writes the history file, creating the state directory as needed.
func SaveHistory(stateDir string, history *HistoryFile) error {
	if err := os.MkdirAll(stateDir, 0o755); err != nil {
		return fmt.Errorf("creating state directory: %w", err)
	}

	data, err := yaml.Marshal(history)
	if err != nil {
		return fmt.Errorf("marshaling history: %w", err)
	}

	if err := os.WriteFile(historyPath(stateDir), data, 0o644); err != nil {
		return fmt.Errorf("writing history file: %w", err)
	}
	return nil
}

// ClearHistory removes the history file. Removing a file that does not
// exist is not an error.
func ClearHistory(stateDir string) error {
	err := os.Remove(historyPath(stateDir))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing history file: %w", err)
	}
	return nil
}
