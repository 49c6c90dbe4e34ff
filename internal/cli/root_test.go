package cli

import (
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ariel-frischer/relpatch/internal/errors"
)

func TestRootCmd_Structure(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "relpatch", rootCmd.Use)
	assert.NotEmpty(t, rootCmd.Short)
	assert.NotEmpty(t, rootCmd.Long)
	assert.NotEmpty(t, rootCmd.Example)
	assert.True(t, rootCmd.SilenceUsage)
	assert.True(t, rootCmd.SilenceErrors)
}

func TestRootCmd_PersistentFlags(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		flagName string
	}{
		"config flag exists": {flagName: "config"},
		"debug flag exists":  {flagName: "debug"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			flag := rootCmd.PersistentFlags().Lookup(tt.flagName)
			assert.NotNil(t, flag, "Flag %s should exist", tt.flagName)
		})
	}
}

func TestRootCmd_HasSubcommands(t *testing.T) {
	t.Parallel()

	want := []string{
		"patch", "extract", "versions", "check", "components",
		"init", "config", "watch", "history", "version",
	}

	registered := make(map[string]bool)
	for _, cmd := range rootCmd.Commands() {
		registered[cmd.Name()] = true
	}

	for _, name := range want {
		assert.True(t, registered[name], "command %s should be registered", name)
	}
}

func TestRootCmd_SubcommandGroups(t *testing.T) {
	t.Parallel()

	groups := rootCmd.Groups()
	require.Len(t, groups, 3)

	ids := make(map[string]bool)
	for _, g := range groups {
		ids[g.ID] = true
	}
	assert.True(t, ids[GroupRelease])
	assert.True(t, ids[GroupInspection])
	assert.True(t, ids[GroupConfiguration])
}

func TestGetConfig_MissingConfigFile(t *testing.T) {
	// Not parallel: swaps the package-level load state.
	oldErr, oldCfg, oldReg := loadErr, loadedCfg, loadedReg
	defer func() { loadErr, loadedCfg, loadedReg = oldErr, oldCfg, oldReg }()

	loadErr = fmt.Errorf("config file not found: custom.yml: %w", os.ErrNotExist)
	loadedCfg, loadedReg = nil, nil

	_, _, err := getConfig()
	cliErr := errors.AsCLIError(err)
	require.NotNil(t, cliErr)
	assert.Equal(t, errors.Configuration, cliErr.Category)
	assert.Contains(t, cliErr.Message, "config file not found")
}

func TestPeekConfigFlag(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		args []string
		want string
	}{
		"no config flag": {
			args: []string{"patch", "--all"},
			want: "",
		},
		"long flag with space": {
			args: []string{"patch", "--config", "custom.yml", "--all"},
			want: "custom.yml",
		},
		"long flag with equals": {
			args: []string{"--config=custom.yml", "patch"},
			want: "custom.yml",
		},
		"short flag with space": {
			args: []string{"-c", "custom.yml", "check"},
			want: "custom.yml",
		},
		"short flag with equals": {
			args: []string{"-c=custom.yml"},
			want: "custom.yml",
		},
		"flag at end without value": {
			args: []string{"patch", "--config"},
			want: "",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, peekConfigFlag(tt.args))
		})
	}
}
