package changelog

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// Load reads and parses a changelog from a local file.
// Returns *NotFoundError when the file does not exist.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &NotFoundError{Path: path}
		}
		return nil, fmt.Errorf("reading changelog %s: %w", path, err)
	}

	doc := ParseString(string(data))
	doc.Path = path
	return doc, nil
}

// Parse reads a changelog document from r.
func Parse(r io.Reader) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading changelog: %w", err)
	}
	return ParseString(string(data)), nil
}

// ParseString splits a changelog document into version sections.
//
// The scan is line-oriented: a line starting with HeadingPrefix opens a new
// section whose label is the first whitespace-delimited word after the
// prefix. Everything up to the next heading belongs to that section's body;
// everything before the first heading is the document preamble. Substring
// occurrences of the prefix inside a line never open a section.
func ParseString(text string) *Document {
	doc := &Document{}

	var lines []string // lines of the region being scanned
	current := -1      // section index, -1 while in the preamble

	flush := func() {
		joined := strings.Join(lines, "\n")
		if current < 0 {
			doc.Preamble = joined
		} else {
			doc.Sections[current].Body = joined
		}
		lines = nil
	}

	for i, line := range strings.Split(text, "\n") {
		line = strings.TrimSuffix(line, "\r")

		if strings.HasPrefix(line, HeadingPrefix) {
			flush()
			doc.Sections = append(doc.Sections, Section{
				Label:   headingLabel(line),
				Heading: line,
				Line:    i + 1,
			})
			current = len(doc.Sections) - 1
			continue
		}

		lines = append(lines, line)
	}
	flush()

	return doc
}

// headingLabel extracts the version label from a heading line.
// Returns "" for a bare "## v" heading.
func headingLabel(line string) string {
	rest := strings.TrimPrefix(line, HeadingPrefix)
	fields := strings.Fields(rest)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
