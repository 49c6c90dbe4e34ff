//go:build e2e

package e2e

import (
	"testing"

	"github.com/ariel-frischer/relpatch/internal/testutil"
	"github.com/stretchr/testify/require"
)

func TestE2E_Extract(t *testing.T) {
	tests := map[string]struct {
		changelog    string
		version      string // manifest version
		args         []string
		wantExitCode int
		wantStdout   string
		wantStderr   string
	}{
		"explicit version prints the entry body": {
			changelog:  "## v1.0\nbody A\n## v2.0\nbody B\n",
			version:    "2.0",
			args:       []string{"extract", "sn_api", "1.0"},
			wantStdout: "body A",
		},
		"omitted version comes from the manifest": {
			changelog:  "## v1.0\nbody A\n## v2.0\nbody B\n",
			version:    "2.0",
			args:       []string{"extract", "sn_api"},
			wantStdout: "body B",
		},
		"version label must match exactly": {
			changelog:    "## v1.0.1\nbody\n",
			version:      "1.0.1",
			args:         []string{"extract", "sn_api", "1.0"},
			wantExitCode: 4,
			wantStderr:   "no '## v1.0' heading",
		},
		"unknown component is rejected": {
			changelog:    "## v1.0\nbody\n",
			version:      "1.0",
			args:         []string{"extract", "nope"},
			wantExitCode: 3,
			wantStderr:   "unknown component: nope",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			env := testutil.NewE2EEnv(t)
			writeProjectConfig(env, "sn_api")
			env.Workspace.AddComponent("sn_api", tt.version, tt.changelog)

			result := env.Run(tt.args...)
			require.Equal(t, tt.wantExitCode, result.ExitCode,
				"stdout: %s\nstderr: %s", result.Stdout, result.Stderr)
			if tt.wantStdout != "" {
				require.Contains(t, result.Stdout, tt.wantStdout)
			}
			if tt.wantStderr != "" {
				require.Contains(t, result.Stderr, tt.wantStderr)
			}
		})
	}
}

func TestE2E_Versions(t *testing.T) {
	env := testutil.NewE2EEnv(t)
	writeProjectConfig(env, "sn_api")
	env.Workspace.AddComponent("sn_api", "2.0",
		testutil.ChangelogWithVersions("2.0", "1.1", "1.0"))

	result := env.Run("versions", "sn_api")
	require.Equal(t, 0, result.ExitCode, "stderr: %s", result.Stderr)
	require.Equal(t, "2.0\n1.1\n1.0\n", result.Stdout)
}

func TestE2E_Check(t *testing.T) {
	t.Run("all components ready", func(t *testing.T) {
		env := testutil.NewE2EEnv(t)
		writeProjectConfig(env, "sn_api", "sn_cli")
		env.Workspace.AddComponent("sn_api", "1.0", "## v1.0\nbody\n")
		env.Workspace.AddComponent("sn_cli", "0.2.0", "## v0.2.0\nbody\n")
		env.Workspace.WriteDescription("release_description.md",
			"__SN_API_CHANGELOG_TEXT__\n__SN_CLI_CHANGELOG_TEXT__\n")

		result := env.Run("check", "--all")
		require.Equal(t, 0, result.ExitCode, "stdout: %s\nstderr: %s", result.Stdout, result.Stderr)
		require.Contains(t, result.Stdout, "All 2 component(s) ready.")
	})

	t.Run("missing heading fails the check", func(t *testing.T) {
		env := testutil.NewE2EEnv(t)
		writeProjectConfig(env, "sn_api", "sn_cli")
		env.Workspace.AddComponent("sn_api", "1.0", "## v1.0\nbody\n")
		env.Workspace.AddComponent("sn_cli", "0.3.0", "## v0.2.0\nbody\n")
		env.Workspace.WriteDescription("release_description.md",
			"__SN_API_CHANGELOG_TEXT__\n__SN_CLI_CHANGELOG_TEXT__\n")

		result := env.Run("check", "--all")
		require.Equal(t, 1, result.ExitCode, "stdout: %s\nstderr: %s", result.Stdout, result.Stderr)
		require.Contains(t, result.Stdout, "sn_cli")
		require.Contains(t, result.Stderr, "1 of 2 component(s) failed verification.")
	})

	t.Run("check does not write anything", func(t *testing.T) {
		env := testutil.NewE2EEnv(t)
		writeProjectConfig(env, "sn_api")
		env.Workspace.AddComponent("sn_api", "1.0", "## v1.0\nbody\n")
		original := "__SN_API_CHANGELOG_TEXT__\n"
		env.Workspace.WriteDescription("release_description.md", original)

		result := env.Run("check", "--sn-api")
		require.Equal(t, 0, result.ExitCode, "stderr: %s", result.Stderr)
		require.Equal(t, original, env.Workspace.ReadFile("release_description.md"))
	})
}
