package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/ariel-frischer/historian/internal/changelog"
	"github.com/ariel-frischer/historian/internal/cli/shared"
	clierrors "github.com/ariel-frischer/historian/internal/errors"
	"github.com/ariel-frischer/historian/internal/git"
	"github.com/ariel-frischer/historian/internal/lock"
)

// Exit codes for the historian CLI, re-exported from shared.
const (
	ExitSuccess           = shared.ExitSuccess
	ExitFailure           = shared.ExitFailure
	ExitChangelogInvalid  = shared.ExitChangelogInvalid
	ExitInvalidArguments  = shared.ExitInvalidArguments
	ExitMissingDependency = shared.ExitMissingDependency
	ExitLocked            = shared.ExitLocked
)

// NewExitError creates an error that makes the process exit with code.
func NewExitError(code int) error {
	return shared.NewExitError(code)
}

// ExitCode maps an error returned by Execute to a process exit code.
// An explicit ExitError wins; typed domain errors come next, then the
// category of a CLIError in the chain.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var exitErr *shared.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	switch {
	case lock.IsLockedError(err):
		return ExitLocked
	case changelog.IsParseError(err):
		return ExitChangelogInvalid
	case changelog.IsCallerError(err):
		return ExitInvalidArguments
	case git.IsTagExistsError(err):
		return ExitMissingDependency
	}

	if cliErr := clierrors.AsCLIError(err); cliErr != nil {
		switch cliErr.Category {
		case clierrors.Changelog:
			return ExitChangelogInvalid
		case clierrors.Argument, clierrors.Configuration:
			return ExitInvalidArguments
		case clierrors.Prerequisite:
			return ExitMissingDependency
		}
	}

	return ExitFailure
}

// printError writes err to w. An ExitError without a cause has already
// been reported by the command and prints nothing.
func printError(w io.Writer, err error) {
	var exitErr *shared.ExitError
	if errors.As(err, &exitErr) && exitErr.Err == nil {
		return
	}

	if cliErr := clierrors.AsCLIError(err); cliErr != nil {
		clierrors.FprintError(w, cliErr)
		return
	}
	fmt.Fprint(w, clierrors.FormatSimpleError(err, clierrors.Runtime))
}
