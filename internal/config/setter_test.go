package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestParseKeyPath(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		path    string
		want    []string
		wantErr error
	}{
		"single key": {
			path: "max_history_entries",
			want: []string{"max_history_entries"},
		},
		"nested key": {
			path: "remote.timeout",
			want: []string{"remote", "timeout"},
		},
		"deeply nested key": {
			path: "a.b.c.d",
			want: []string{"a", "b", "c", "d"},
		},
		"empty string": {
			path:    "",
			wantErr: ErrEmptyKeyPath,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			got, err := ParseKeyPath(tt.path)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("ParseKeyPath(%q) error = %v, wantErr = %v", tt.path, err, tt.wantErr)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Errorf("ParseKeyPath(%q) = %v, want %v", tt.path, got, tt.want)
				return
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("ParseKeyPath(%q)[%d] = %q, want %q", tt.path, i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestSetValueInFile(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		existing string
		key      string
		value    string
		wantErr  bool
		check    func(t *testing.T, doc map[string]interface{})
	}{
		"set string key in new file": {
			key:   "description",
			value: "notes/release.md",
			check: func(t *testing.T, doc map[string]interface{}) {
				if doc["description"] != "notes/release.md" {
					t.Errorf("description = %v", doc["description"])
				}
			},
		},
		"set int key preserves other keys": {
			existing: "description: release_description.md\n",
			key:      "max_history_entries",
			value:    "50",
			check: func(t *testing.T, doc map[string]interface{}) {
				if doc["max_history_entries"] != 50 {
					t.Errorf("max_history_entries = %v", doc["max_history_entries"])
				}
				if doc["description"] != "release_description.md" {
					t.Errorf("existing key lost: %v", doc["description"])
				}
			},
		},
		"invalid int value rejected before write": {
			key:     "remote_timeout_seconds",
			value:   "soon",
			wantErr: true,
		},
		"set enum key": {
			key:   "color",
			value: "never",
			check: func(t *testing.T, doc map[string]interface{}) {
				if doc["color"] != "never" {
					t.Errorf("color = %v", doc["color"])
				}
			},
		},
		"invalid enum value rejected before write": {
			key:     "color",
			value:   "blue",
			wantErr: true,
		},
		"unknown key rejected": {
			key:     "no_such_key",
			value:   "x",
			wantErr: true,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			configPath := filepath.Join(t.TempDir(), ".relpatch", "config.yml")
			if tt.existing != "" {
				if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
					t.Fatal(err)
				}
				if err := os.WriteFile(configPath, []byte(tt.existing), 0o644); err != nil {
					t.Fatal(err)
				}
			}

			err := SetValueInFile(configPath, tt.key, tt.value)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			data, err := os.ReadFile(configPath)
			if err != nil {
				t.Fatalf("reading config: %v", err)
			}
			doc := make(map[string]interface{})
			if err := yaml.Unmarshal(data, &doc); err != nil {
				t.Fatalf("parsing written config: %v", err)
			}
			tt.check(t, doc)
		})
	}
}
