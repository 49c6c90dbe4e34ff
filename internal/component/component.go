// Package component defines the release component registry: the table of
// names, paths and placeholder tokens that drives description assembly.
package component

import (
	"fmt"
	"path/filepath"
	"strings"
	"unicode"
)

// Component describes one releasable component of the workspace.
type Component struct {
	// Name identifies the component in flags and config, e.g. "sn_api".
	Name string `koanf:"name" yaml:"name"`

	// Dir is the component directory relative to the workspace root.
	// Defaults to Name.
	Dir string `koanf:"dir" yaml:"dir,omitempty"`

	// Changelog is the changelog location: a path relative to the
	// workspace root, or an http(s) URL. Defaults to <dir>/CHANGELOG.md.
	Changelog string `koanf:"changelog" yaml:"changelog,omitempty"`

	// Manifest is the Cargo.toml path used for version discovery.
	// Defaults to <dir>/Cargo.toml.
	Manifest string `koanf:"manifest" yaml:"manifest,omitempty"`

	// Token is the changelog placeholder in the description document.
	// Defaults to __<NAME>_CHANGELOG_TEXT__ with the name shouty-snaked.
	Token string `koanf:"token" yaml:"token,omitempty"`

	// VersionToken is the version placeholder, substituted only when it
	// appears in the document. Defaults to __<NAME>_VERSION__.
	VersionToken string `koanf:"version_token" yaml:"version_token,omitempty"`
}

// Normalize fills every derivable field from Name. Explicit values win.
func (c *Component) Normalize() {
	if c.Dir == "" {
		c.Dir = c.Name
	}
	if c.Changelog == "" {
		c.Changelog = filepath.Join(c.Dir, "CHANGELOG.md")
	}
	if c.Manifest == "" {
		c.Manifest = filepath.Join(c.Dir, "Cargo.toml")
	}

	shouty := ShoutySnake(c.Name)
	if c.Token == "" {
		c.Token = fmt.Sprintf("__%s_CHANGELOG_TEXT__", shouty)
	}
	if c.VersionToken == "" {
		c.VersionToken = fmt.Sprintf("__%s_VERSION__", shouty)
	}
}

// FlagName is the cobra flag spelling of the name: "sn_api" -> "sn-api".
func (c *Component) FlagName() string {
	return strings.ReplaceAll(c.Name, "_", "-")
}

// VersionFlagName is the explicit version flag: "sn-api-version".
func (c *Component) VersionFlagName() string {
	return c.FlagName() + "-version"
}

// ShoutySnake converts a component name to SHOUTY_SNAKE_CASE for token
// derivation: "sn-api" -> "SN_API", "safe_app" -> "SAFE_APP".
func ShoutySnake(name string) string {
	var b strings.Builder
	for _, r := range name {
		if r == '-' || r == ' ' || r == '.' {
			b.WriteRune('_')
			continue
		}
		b.WriteRune(unicode.ToUpper(r))
	}
	return b.String()
}

// Registry is an ordered set of components with unique names and tokens.
type Registry struct {
	components []Component
	byName     map[string]int
}

// NewRegistry normalizes and indexes a component list.
func NewRegistry(components []Component) (*Registry, error) {
	r := &Registry{byName: make(map[string]int, len(components))}
	tokenOwner := make(map[string]string, len(components))

	for i, c := range components {
		if strings.TrimSpace(c.Name) == "" {
			return nil, fmt.Errorf("component %d has no name", i+1)
		}

		c.Normalize()

		if _, dup := r.byName[c.Name]; dup {
			return nil, fmt.Errorf("duplicate component name %q", c.Name)
		}
		if owner, dup := tokenOwner[c.Token]; dup {
			return nil, fmt.Errorf("components %q and %q share token %s", owner, c.Name, c.Token)
		}

		tokenOwner[c.Token] = c.Name
		r.byName[c.Name] = len(r.components)
		r.components = append(r.components, c)
	}
	return r, nil
}

// Lookup finds a component by name.
func (r *Registry) Lookup(name string) (Component, bool) {
	i, ok := r.byName[name]
	if !ok {
		return Component{}, false
	}
	return r.components[i], true
}

// All returns the components in registration order.
func (r *Registry) All() []Component {
	out := make([]Component, len(r.components))
	copy(out, r.components)
	return out
}

// Names lists the component names in registration order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.components))
	for _, c := range r.components {
		names = append(names, c.Name)
	}
	return names
}

// Len reports the number of registered components.
func (r *Registry) Len() int {
	return len(r.components)
}
