package cli

import (
	stderrors "errors"

	"github.com/ariel-frischer/relpatch/internal/errors"
)

// Exit codes for the relpatch CLI
// These codes support programmatic composition and CI/CD integration
const (
	// ExitSuccess indicates successful command execution
	ExitSuccess = 0

	// ExitCheckFailed indicates a verification (check) failure
	ExitCheckFailed = 1

	// ExitRuntimeFailure indicates the command failed during execution
	ExitRuntimeFailure = 2

	// ExitInvalidArguments indicates invalid command arguments
	ExitInvalidArguments = 3

	// ExitMissingPrerequisite indicates a required manifest, changelog or
	// target document is missing
	ExitMissingPrerequisite = 4
)

// ExitError carries an explicit exit code through RunE without any further
// message; the command has already reported the failure.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return "exit"
}

// NewExitError creates an ExitError with the given code.
func NewExitError(code int) *ExitError {
	return &ExitError{Code: code}
}

// ExitCode maps an error returned by Execute to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitError
	if stderrors.As(err, &exitErr) {
		return exitErr.Code
	}

	if cliErr := errors.AsCLIError(err); cliErr != nil {
		switch cliErr.Category {
		case errors.Argument, errors.Configuration:
			return ExitInvalidArguments
		case errors.Prerequisite:
			return ExitMissingPrerequisite
		default:
			return ExitRuntimeFailure
		}
	}

	return ExitRuntimeFailure
}
