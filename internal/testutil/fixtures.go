// Package testutil provides test utilities and helpers for relpatch tests.
package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

// Workspace scaffolds a release workspace fixture under a temp directory:
// component directories with changelogs and manifests, plus a release
// description template.
type Workspace struct {
	t *testing.T
	// Root is the workspace directory.
	Root string
}

// NewWorkspace creates an empty workspace fixture.
func NewWorkspace(t *testing.T) *Workspace {
	t.Helper()
	return &Workspace{t: t, Root: t.TempDir()}
}

// Path joins elements onto the workspace root.
func (w *Workspace) Path(elem ...string) string {
	return filepath.Join(append([]string{w.Root}, elem...)...)
}

// WriteFile writes a file relative to the workspace root, creating parent
// directories as needed.
func (w *Workspace) WriteFile(rel, content string) string {
	w.t.Helper()

	path := w.Path(rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		w.t.Fatalf("creating fixture directory: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		w.t.Fatalf("writing fixture file %s: %v", rel, err)
	}
	return path
}

// ReadFile reads a file relative to the workspace root.
func (w *Workspace) ReadFile(rel string) string {
	w.t.Helper()

	data, err := os.ReadFile(w.Path(rel))
	if err != nil {
		w.t.Fatalf("reading fixture file %s: %v", rel, err)
	}
	return string(data)
}

// AddComponent scaffolds a component directory with a Cargo.toml manifest
// and a changelog document.
func (w *Workspace) AddComponent(name, version, changelogText string) {
	w.t.Helper()

	w.WriteManifest(filepath.Join(name, "Cargo.toml"), name, version)
	w.WriteFile(filepath.Join(name, "CHANGELOG.md"), changelogText)
}

// WriteManifest writes a minimal Cargo.toml with the given package name
// and version.
func (w *Workspace) WriteManifest(rel, name, version string) {
	w.t.Helper()

	w.WriteFile(rel, fmt.Sprintf("[package]\nname = %q\nversion = %q\n", name, version))
}

// WriteDescription writes a release description template and returns its
// absolute path.
func (w *Workspace) WriteDescription(rel, content string) string {
	w.t.Helper()
	return w.WriteFile(rel, content)
}

// ChangelogWithVersions builds a changelog document with one section per
// version, each with a single body line, newest first.
func ChangelogWithVersions(versions ...string) string {
	doc := "# Changelog\n\n"
	for _, v := range versions {
		doc += fmt.Sprintf("## v%s\n\nChanges in %s.\n\n", v, v)
	}
	return doc
}
