// Package manifest reads component release metadata from Cargo.toml files.
package manifest

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Manifest is the subset of a Cargo.toml that release tooling needs.
// Unknown tables and keys are ignored.
type Manifest struct {
	Path    string  `toml:"-"`
	Package Package `toml:"package"`
}

// Package mirrors the [package] table.
type Package struct {
	Name    string `toml:"name"`
	Version string `toml:"version"`
}

// NotFoundError indicates a missing component manifest.
type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("manifest not found: %s", e.Path)
}

// Load reads and decodes a manifest file.
// Returns *NotFoundError when the file does not exist.
func Load(path string) (*Manifest, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &NotFoundError{Path: path}
		}
		return nil, fmt.Errorf("opening manifest %s: %w", path, err)
	}
	defer f.Close()

	var m Manifest
	if err := toml.NewDecoder(f).Decode(&m); err != nil {
		return nil, fmt.Errorf("parsing manifest %s: %w", path, err)
	}
	m.Path = path
	return &m, nil
}

// PackageVersion returns the package.version value. A manifest that parses
// but carries no version is a configuration problem, not a lookup miss, so
// this is a plain error rather than a NotFoundError.
func (m *Manifest) PackageVersion() (string, error) {
	if m.Package.Version == "" {
		return "", fmt.Errorf("manifest %s has no package.version", m.Path)
	}
	return m.Package.Version, nil
}

// Version loads a manifest and returns its package.version in one step.
func Version(path string) (string, error) {
	m, err := Load(path)
	if err != nil {
		return "", err
	}
	return m.PackageVersion()
}
