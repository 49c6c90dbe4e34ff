package changelog

import "fmt"

// HeadingPrefix marks a version heading line. A line opens a new section
// iff it starts with this literal prefix at column zero.
const HeadingPrefix = "## v"

// Section is one versioned region of a changelog document: a heading line
// and the raw text that follows it up to the next heading (or EOF).
type Section struct {
	// Label is the version identifier from the heading, e.g. "0.17.2".
	// It is the first whitespace-delimited word after HeadingPrefix, so
	// trailing annotations ("## v0.17.2 (2020-06-11)") are not part of it.
	Label string

	// Heading is the full heading line as written in the document.
	Heading string

	// Body is the raw text between this heading and the next one. The
	// heading line itself is not part of the body.
	Body string

	// Line is the 1-based line number of the heading in the document.
	Line int
}

// Document is a parsed changelog.
type Document struct {
	// Path is the file path or URL the document was loaded from.
	// Empty for documents parsed from memory.
	Path string

	// Preamble is everything before the first version heading: title,
	// badges, format notes. Empty when the document starts with a heading.
	Preamble string

	// Sections holds the version sections in document order. Changelogs
	// conventionally list the newest release first.
	Sections []Section
}

// NotFoundError indicates a changelog document that could not be read:
// a missing local file or an unreachable URL.
type NotFoundError struct {
	Path string
	Err  error
}

func (e *NotFoundError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("changelog not available: %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("changelog not found: %s", e.Path)
}

func (e *NotFoundError) Unwrap() error { return e.Err }
