package description

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPatch(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		doc       string
		token     string
		entry     string
		want      string
		wantCount int
	}{
		"single occurrence": {
			doc:       "Changes:\n__SN_API_CHANGELOG_TEXT__\n",
			token:     "__SN_API_CHANGELOG_TEXT__",
			entry:     "- fixed resolver",
			want:      "Changes:\n- fixed resolver\n",
			wantCount: 1,
		},
		"token occurring twice is replaced at both positions": {
			doc:       "__SN_CLI_CHANGELOG_TEXT__\n---\n__SN_CLI_CHANGELOG_TEXT__\n",
			token:     "__SN_CLI_CHANGELOG_TEXT__",
			entry:     "body A",
			want:      "body A\n---\nbody A\n",
			wantCount: 2,
		},
		"empty entry inserts the fallback literal": {
			doc:       "__SN_AUTHD_CHANGELOG_TEXT__\n",
			token:     "__SN_AUTHD_CHANGELOG_TEXT__",
			entry:     "",
			want:      FallbackText + "\n",
			wantCount: 1,
		},
		"whitespace-only entry inserts the fallback literal": {
			doc:       "__SN_AUTHD_CHANGELOG_TEXT__\n",
			token:     "__SN_AUTHD_CHANGELOG_TEXT__",
			entry:     "  \n\t\n  ",
			want:      FallbackText + "\n",
			wantCount: 1,
		},
		"absent token leaves the document untouched": {
			doc:       "no placeholders here\n",
			token:     "__SN_NODE_CHANGELOG_TEXT__",
			entry:     "body",
			want:      "no placeholders here\n",
			wantCount: 0,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, n := Patch(tc.doc, tc.token, tc.entry)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, tc.wantCount, n)
		})
	}
}

func TestPatchWith(t *testing.T) {
	t.Parallel()

	got, n := PatchWith("__T__", "__T__", "   ", "Nothing new here")
	assert.Equal(t, "Nothing new here", got)
	assert.Equal(t, 1, n)
}

func TestApply(t *testing.T) {
	t.Parallel()

	doc := "# Release\n\n## sn_api\n__SN_API_CHANGELOG_TEXT__\n\n## sn_cli\n__SN_CLI_CHANGELOG_TEXT__\n"
	subs := []Substitution{
		{Token: "__SN_API_CHANGELOG_TEXT__", Entry: "- api fix"},
		{Token: "__SN_CLI_CHANGELOG_TEXT__", Entry: "  "},
	}

	patched, applied := Apply(doc, subs, "")

	assert.Equal(t, "# Release\n\n## sn_api\n- api fix\n\n## sn_cli\n"+FallbackText+"\n", patched)

	require.Len(t, applied, 2)
	assert.Equal(t, Applied{Token: "__SN_API_CHANGELOG_TEXT__", Replacements: 1}, applied[0])
	assert.Equal(t, Applied{Token: "__SN_CLI_CHANGELOG_TEXT__", Replacements: 1, UsedFallback: true}, applied[1])
}

func TestLoadSave(t *testing.T) {
	t.Parallel()

	t.Run("round trip", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "release_description.md")
		require.NoError(t, Save(path, "patched content\n"))

		doc, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "patched content\n", doc)
	})

	t.Run("missing target returns NotFoundError", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "release_description.md")

		_, err := Load(path)
		require.Error(t, err)

		var notFound *NotFoundError
		require.True(t, errors.As(err, &notFound))
		assert.Equal(t, path, notFound.Path)
	})

	t.Run("load preserves bytes exactly", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "release_description.md")
		content := "line one\r\nline two\n\ttabbed\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))

		doc, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, content, doc)
	})
}

func TestSave_WriteError(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "missing", "out.md")
	err := Save(path, "doc")

	var writeErr *WriteError
	require.ErrorAs(t, err, &writeErr)
	assert.Equal(t, path, writeErr.Path)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestTokens(t *testing.T) {
	t.Parallel()

	doc := "__SN_API_CHANGELOG_TEXT__ then __SN_CLI_CHANGELOG_TEXT__ and __SN_API_CHANGELOG_TEXT__ again, plus __SN_API_VERSION__ and __RELEASE_COMMIT__"

	assert.Equal(t, []string{"__SN_API_CHANGELOG_TEXT__", "__SN_CLI_CHANGELOG_TEXT__"}, Tokens(doc))
	assert.Equal(t, []string{"__SN_API_VERSION__"}, VersionTokens(doc))
	assert.True(t, HasToken(doc, CommitToken))
	assert.False(t, HasToken(doc, "__SN_NODE_CHANGELOG_TEXT__"))

	assert.Empty(t, Tokens("plain text"))
}
