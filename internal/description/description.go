// Package description patches placeholder tokens in release description
// documents with per-component changelog entries.
package description

import (
	"fmt"
	"os"
	"strings"
)

// FallbackText replaces a placeholder when a release carries no entry text.
const FallbackText = "No changes for this release"

// Substitution pairs a placeholder token with the entry text that should
// replace it.
type Substitution struct {
	Token string
	Entry string
}

// Applied reports the outcome of one substitution.
type Applied struct {
	Token        string
	Replacements int
	UsedFallback bool
}

// NotFoundError indicates a missing release description document.
type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("release description not found: %s", e.Path)
}

// WriteError indicates a patched document that could not be written back.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("writing release description %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// Patch replaces every occurrence of token in doc with entry. A blank
// entry (empty or whitespace-only) is replaced by FallbackText instead,
// so a released component with nothing to say still reads deliberately.
// Returns the patched document and the number of occurrences replaced.
func Patch(doc, token, entry string) (string, int) {
	return PatchWith(doc, token, entry, FallbackText)
}

// PatchWith is Patch with a caller-chosen fallback literal.
func PatchWith(doc, token, entry, fallback string) (string, int) {
	if strings.TrimSpace(entry) == "" {
		entry = fallback
	}

	n := strings.Count(doc, token)
	if n == 0 {
		return doc, 0
	}
	return strings.ReplaceAll(doc, token, entry), n
}

// Apply runs a batch of substitutions over doc in order, one patch per
// substitution, and reports what each one did. The document is returned
// once so callers keep the read-patch-write cycle to a single write.
func Apply(doc string, subs []Substitution, fallback string) (string, []Applied) {
	if fallback == "" {
		fallback = FallbackText
	}

	results := make([]Applied, 0, len(subs))
	for _, sub := range subs {
		patched, n := PatchWith(doc, sub.Token, sub.Entry, fallback)
		results = append(results, Applied{
			Token:        sub.Token,
			Replacements: n,
			UsedFallback: strings.TrimSpace(sub.Entry) == "",
		})
		doc = patched
	}
	return doc, results
}

// Load reads a release description document.
// Returns *NotFoundError when the file does not exist.
func Load(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", &NotFoundError{Path: path}
		}
		return "", fmt.Errorf("reading release description %s: %w", path, err)
	}
	return string(data), nil
}

// Save writes a patched document back to disk.
// Returns *WriteError when the write fails.
func Save(path, doc string) error {
	if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
		return &WriteError{Path: path, Err: err}
	}
	return nil
}
