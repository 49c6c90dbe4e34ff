package testutil

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"sync"
	"testing"
	"time"
)

var (
	// relpatchBinaryPath caches the built relpatch binary path.
	relpatchBinaryPath string
	relpatchBuildOnce  sync.Once
	relpatchBuildErr   error
)

// E2EEnv provides an isolated environment for E2E testing. It builds the
// relpatch binary once per test session and runs it inside a throwaway
// workspace with a sanitized environment, so host-level relpatch config
// never leaks into test runs.
type E2EEnv struct {
	t *testing.T
	// Workspace is the fixture tree commands run in.
	Workspace *Workspace
	configDir string
}

// CommandResult captures the result of running a relpatch command.
type CommandResult struct {
	ExitCode int
	Stdout   string
	Stderr   string
	Duration time.Duration
}

// NewE2EEnv creates a new E2E test environment.
func NewE2EEnv(t *testing.T) *E2EEnv {
	t.Helper()

	env := &E2EEnv{
		t:         t,
		Workspace: NewWorkspace(t),
		configDir: t.TempDir(),
	}

	env.buildRelpatch()
	return env
}

func (e *E2EEnv) buildRelpatch() {
	e.t.Helper()

	// Build relpatch binary once per test session
	relpatchBuildOnce.Do(func() {
		relpatchBinaryPath, relpatchBuildErr = doBuildRelpatch()
	})

	if relpatchBuildErr != nil {
		e.t.Fatalf("building relpatch: %v", relpatchBuildErr)
	}
}

func doBuildRelpatch() (string, error) {
	// Get repo root relative to this source file
	_, currentFile, _, ok := runtime.Caller(0)
	if !ok {
		return "", fmt.Errorf("determining current file location")
	}
	repoRoot := filepath.Join(filepath.Dir(currentFile), "..", "..")

	tmpDir, err := os.MkdirTemp("", "relpatch-build-*")
	if err != nil {
		return "", fmt.Errorf("creating temp dir for build: %w", err)
	}

	binaryPath := filepath.Join(tmpDir, "relpatch")

	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/relpatch")
	cmd.Dir = repoRoot
	output, err := cmd.CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("building relpatch: %w\nOutput: %s", err, output)
	}

	return binaryPath, nil
}

// Run executes a relpatch command inside the workspace.
func (e *E2EEnv) Run(args ...string) CommandResult {
	e.t.Helper()

	start := time.Now()

	cmd := exec.Command(relpatchBinaryPath, args...)
	cmd.Dir = e.Workspace.Root
	cmd.Env = e.buildIsolatedEnv()

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()

	result := CommandResult{
		ExitCode: 0,
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		Duration: time.Since(start),
	}

	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			result.ExitCode = exitErr.ExitCode()
		} else {
			result.ExitCode = 1
		}
	}

	return result
}

// buildIsolatedEnv builds a minimal environment: HOME and XDG_CONFIG_HOME
// point into throwaway directories so user-level relpatch config and state
// cannot affect the run.
func (e *E2EEnv) buildIsolatedEnv() []string {
	env := []string{
		"PATH=" + os.Getenv("PATH"),
		"HOME=" + e.Workspace.Root,
		"XDG_CONFIG_HOME=" + e.configDir,
		"NO_COLOR=1",
	}

	safeVars := []string{"TERM", "LANG", "LC_ALL", "TMPDIR", "TMP", "TEMP"}
	for _, key := range safeVars {
		if val, ok := os.LookupEnv(key); ok {
			env = append(env, key+"="+val)
		}
	}

	return env
}
