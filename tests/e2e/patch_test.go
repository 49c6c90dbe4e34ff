//go:build e2e

package e2e

import (
	"testing"

	"github.com/ariel-frischer/relpatch/internal/testutil"
	"github.com/stretchr/testify/require"
)

func TestE2E_PatchAll(t *testing.T) {
	env := testutil.NewE2EEnv(t)
	writeProjectConfig(env, "sn_api", "sn_cli")

	env.Workspace.AddComponent("sn_api", "0.26.0",
		"# Changelog\n\n## v0.26.0\n\nAdded the sequence API.\n\n## v0.25.0\n\nOlder.\n")
	env.Workspace.AddComponent("sn_cli", "0.17.2",
		"## v0.17.2 (2020-06-11)\n\nFixed wallet transfers.\n")
	env.Workspace.WriteDescription("release_description.md",
		"API (__SN_API_VERSION__):\n__SN_API_CHANGELOG_TEXT__\n\nCLI:\n__SN_CLI_CHANGELOG_TEXT__\n")

	result := env.Run("patch", "--all")
	require.Equal(t, 0, result.ExitCode, "stdout: %s\nstderr: %s", result.Stdout, result.Stderr)

	doc := env.Workspace.ReadFile("release_description.md")
	require.Contains(t, doc, "API (0.26.0):")
	require.Contains(t, doc, "Added the sequence API.")
	require.Contains(t, doc, "Fixed wallet transfers.")
	require.NotContains(t, doc, "_CHANGELOG_TEXT__")
}

func TestE2E_PatchExplicitVersionAndDryRun(t *testing.T) {
	env := testutil.NewE2EEnv(t)
	writeProjectConfig(env, "sn_api")

	// No manifest on disk: the explicit version flag must carry the run.
	env.Workspace.WriteFile("sn_api/CHANGELOG.md", "## v1.0\nbody A\n## v2.0\nbody B\n")
	original := "__SN_API_CHANGELOG_TEXT__\n"
	env.Workspace.WriteDescription("release_description.md", original)

	result := env.Run("patch", "--sn-api-version", "1.0", "--dry-run")
	require.Equal(t, 0, result.ExitCode, "stderr: %s", result.Stderr)
	require.Contains(t, result.Stdout, "body A")
	require.Equal(t, original, env.Workspace.ReadFile("release_description.md"),
		"dry run must not write")
}

func TestE2E_PatchBlankEntryInsertsFallback(t *testing.T) {
	env := testutil.NewE2EEnv(t)
	writeProjectConfig(env, "sn_node")

	env.Workspace.AddComponent("sn_node", "0.2.0", "## v0.2.0\n\n\n## v0.1.0\nFirst cut.\n")
	env.Workspace.WriteDescription("release_description.md", "__SN_NODE_CHANGELOG_TEXT__\n")

	result := env.Run("patch", "--sn-node")
	require.Equal(t, 0, result.ExitCode, "stderr: %s", result.Stderr)
	require.Contains(t, env.Workspace.ReadFile("release_description.md"),
		"No changes for this release")
}

func TestE2E_PatchFailureExitCodes(t *testing.T) {
	tests := map[string]struct {
		setup        func(env *testutil.E2EEnv)
		args         []string
		wantExitCode int
		wantStderr   string
	}{
		"no selection is invalid arguments": {
			setup: func(env *testutil.E2EEnv) {
				writeProjectConfig(env, "sn_api")
			},
			args:         []string{"patch"},
			wantExitCode: 3,
			wantStderr:   "no components selected",
		},
		"missing manifest is a prerequisite failure": {
			setup: func(env *testutil.E2EEnv) {
				writeProjectConfig(env, "sn_api")
				env.Workspace.WriteFile("sn_api/CHANGELOG.md", "## v1.0\nbody\n")
				env.Workspace.WriteDescription("release_description.md", "__SN_API_CHANGELOG_TEXT__\n")
			},
			args:         []string{"patch", "--sn-api"},
			wantExitCode: 4,
			wantStderr:   "Cargo.toml",
		},
		"missing changelog is a prerequisite failure": {
			setup: func(env *testutil.E2EEnv) {
				writeProjectConfig(env, "sn_api")
				env.Workspace.WriteManifest("sn_api/Cargo.toml", "sn_api", "1.0")
				env.Workspace.WriteDescription("release_description.md", "__SN_API_CHANGELOG_TEXT__\n")
			},
			args:         []string{"patch", "--sn-api"},
			wantExitCode: 4,
			wantStderr:   "CHANGELOG.md",
		},
		"missing version heading fails instead of patching empty": {
			setup: func(env *testutil.E2EEnv) {
				writeProjectConfig(env, "sn_api")
				env.Workspace.AddComponent("sn_api", "3.0", "## v1.0\nbody A\n")
				env.Workspace.WriteDescription("release_description.md", "__SN_API_CHANGELOG_TEXT__\n")
			},
			args:         []string{"patch", "--sn-api"},
			wantExitCode: 4,
			wantStderr:   "v3.0",
		},
		"missing target document": {
			setup: func(env *testutil.E2EEnv) {
				writeProjectConfig(env, "sn_api")
				env.Workspace.AddComponent("sn_api", "1.0", "## v1.0\nbody A\n")
			},
			args:         []string{"patch", "--sn-api"},
			wantExitCode: 4,
			wantStderr:   "release description not found",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			env := testutil.NewE2EEnv(t)
			tt.setup(env)

			result := env.Run(tt.args...)
			require.Equal(t, tt.wantExitCode, result.ExitCode,
				"stdout: %s\nstderr: %s", result.Stdout, result.Stderr)
			require.Contains(t, result.Stderr, tt.wantStderr)
		})
	}
}

func TestE2E_PatchCommitOutsideRepository(t *testing.T) {
	env := testutil.NewE2EEnv(t)
	writeProjectConfig(env, "sn_api")
	env.Workspace.AddComponent("sn_api", "1.0", "## v1.0\nbody A\n")
	env.Workspace.WriteDescription("release_description.md",
		"__SN_API_CHANGELOG_TEXT__\n__RELEASE_COMMIT__\n")

	result := env.Run("patch", "--sn-api", "--commit")
	require.Equal(t, 4, result.ExitCode,
		"stdout: %s\nstderr: %s", result.Stdout, result.Stderr)
	require.Contains(t, result.Stderr, "not a git repository")
}

func TestE2E_HistoryClearRejectsFilters(t *testing.T) {
	env := testutil.NewE2EEnv(t)
	writeProjectConfig(env, "sn_api")

	result := env.Run("history", "--clear", "--limit", "2")
	require.Equal(t, 3, result.ExitCode, "stderr: %s", result.Stderr)
	require.Contains(t, result.Stderr, "invalid flag combination")
}

func TestE2E_PatchWritesHistory(t *testing.T) {
	env := testutil.NewE2EEnv(t)
	env.Workspace.WriteFile(".relpatch/config.yml",
		"state_dir: .relpatch/state\ncomponents:\n  - name: sn_api\n")
	env.Workspace.AddComponent("sn_api", "1.0", "## v1.0\nbody A\n")
	env.Workspace.WriteDescription("release_description.md", "__SN_API_CHANGELOG_TEXT__\n")

	result := env.Run("patch", "--all")
	require.Equal(t, 0, result.ExitCode, "stderr: %s", result.Stderr)

	result = env.Run("history")
	require.Equal(t, 0, result.ExitCode, "stderr: %s", result.Stderr)
	require.Contains(t, result.Stdout, "patch")
	require.Contains(t, result.Stdout, "sn_api@1.0")
}
