// Package shared provides constants and types used across CLI subpackages.
package shared

import (
	"errors"
	"fmt"

	"github.com/ariel-frischer/historian/internal/output"
)

// Exit codes for the historian CLI.
// These codes support programmatic composition and CI/CD integration.
const (
	// ExitSuccess indicates successful command execution
	ExitSuccess = 0
	// ExitFailure indicates an unexpected runtime failure
	ExitFailure = 1
	// ExitChangelogInvalid indicates the changelog content could not be parsed
	ExitChangelogInvalid = 2
	// ExitInvalidArguments indicates invalid command arguments or configuration
	ExitInvalidArguments = 3
	// ExitMissingDependency indicates a missing prerequisite (e.g. no git repository)
	ExitMissingDependency = 4
	// ExitLocked indicates another process holds the changelog lock
	ExitLocked = 5
)

// Command group IDs shown in help output.
const (
	GroupInspect       = "inspect"
	GroupEdit          = "edit"
	GroupConfiguration = "configuration"
	GroupInternal      = "internal"
)

// ExitError carries a specific process exit code.
type ExitError struct {
	Code int
	Err  error
}

// NewExitError creates an error that makes the process exit with code.
func NewExitError(code int) error {
	return &ExitError{Code: code}
}

// WithExitCode attaches an exit code to err.
func WithExitCode(code int, err error) error {
	return &ExitError{Code: code, Err: err}
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("exit code %d", e.Code)
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// ExitCode returns the exit code for err: ExitSuccess for nil, the carried
// code for an ExitError anywhere in the chain, ExitFailure otherwise.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// GetTerminalWidth returns the stdout terminal width, or 80 when stdout is
// not a terminal.
func GetTerminalWidth() int {
	return output.GetTerminalWidth()
}
