// Package changelog locates versioned entries in Markdown changelog documents.
//
// This package implements:
//   - Line-oriented parsing of version sections ("## v<version>" headings)
//   - Exact-label entry lookup with explicit not-found errors
//   - Loading documents from local files or raw HTTP(S) URLs
//
// Version labels are matched exactly, never by prefix: a request for "1.0"
// does not match a "## v1.0.1" heading, and vice versa.
package changelog
