package changelog

import (
	"fmt"
	"strings"
)

// VersionNotFoundError indicates that a changelog was parsed successfully
// but contains no heading for the requested version label.
type VersionNotFoundError struct {
	Version   string
	Path      string
	Available []string
}

func (e *VersionNotFoundError) Error() string {
	where := "changelog"
	if e.Path != "" {
		where = e.Path
	}
	if len(e.Available) == 0 {
		return fmt.Sprintf("version %q not found in %s (no version headings present)", e.Version, where)
	}
	return fmt.Sprintf("version %q not found in %s (available: %s)", e.Version, where, strings.Join(e.Available, ", "))
}

// Entry returns the trimmed body text of the section whose label equals
// version exactly. A section that exists but has a blank body yields the
// empty string without error; the caller decides how to render that.
// Returns *VersionNotFoundError when no heading carries the label.
func (d *Document) Entry(version string) (string, error) {
	for _, s := range d.Sections {
		if s.Label == version {
			return strings.TrimSpace(s.Body), nil
		}
	}
	return "", &VersionNotFoundError{
		Version:   version,
		Path:      d.Path,
		Available: d.Versions(),
	}
}

// Lookup returns the section for an exact version label.
func (d *Document) Lookup(version string) (*Section, bool) {
	for i := range d.Sections {
		if d.Sections[i].Label == version {
			return &d.Sections[i], true
		}
	}
	return nil, false
}

// Versions lists the section labels in document order.
func (d *Document) Versions() []string {
	labels := make([]string, 0, len(d.Sections))
	for _, s := range d.Sections {
		labels = append(labels, s.Label)
	}
	return labels
}

// Latest returns the label of the first section in the document. Changelogs
// list the newest release first, so this is the most recent version.
func (d *Document) Latest() (string, error) {
	if len(d.Sections) == 0 {
		where := "changelog"
		if d.Path != "" {
			where = d.Path
		}
		return "", fmt.Errorf("%s has no version headings", where)
	}
	return d.Sections[0].Label, nil
}
