// Package shared_test tests shared constants and types used across CLI subpackages.
// Related: internal/cli/shared/constants.go
// Tags: cli, shared, constants, exit-codes, errors

package shared

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExitCodeConstants(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		constant int
		want     int
	}{
		"ExitSuccess":           {constant: ExitSuccess, want: 0},
		"ExitFailure":           {constant: ExitFailure, want: 1},
		"ExitChangelogInvalid":  {constant: ExitChangelogInvalid, want: 2},
		"ExitInvalidArguments":  {constant: ExitInvalidArguments, want: 3},
		"ExitMissingDependency": {constant: ExitMissingDependency, want: 4},
		"ExitLocked":            {constant: ExitLocked, want: 5},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, tc.constant)
		})
	}
}

func TestExitError_Error(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		err         error
		wantMessage string
	}{
		"bare code":    {err: NewExitError(2), wantMessage: "exit code 2"},
		"wrapped err":  {err: WithExitCode(5, errors.New("locked")), wantMessage: "locked"},
		"zero no text": {err: NewExitError(0), wantMessage: "exit code 0"},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.wantMessage, tc.err.Error())
		})
	}
}

func TestExitCode(t *testing.T) {
	t.Parallel()

	inner := errors.New("locked")

	tests := map[string]struct {
		err  error
		want int
	}{
		"nil error":          {err: nil, want: ExitSuccess},
		"exit error code 0":  {err: NewExitError(0), want: 0},
		"exit error code 3":  {err: NewExitError(3), want: 3},
		"generic error":      {err: errors.New("generic error"), want: ExitFailure},
		"wrapped exit error": {err: fmt.Errorf("running: %w", WithExitCode(ExitLocked, inner)), want: ExitLocked},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, ExitCode(tc.err))
		})
	}

	assert.ErrorIs(t, WithExitCode(ExitLocked, inner), inner)
}

func TestConstantsUniqueness(t *testing.T) {
	t.Parallel()

	codes := []int{ExitSuccess, ExitFailure, ExitChangelogInvalid, ExitInvalidArguments, ExitMissingDependency, ExitLocked}
	seen := make(map[int]bool)
	for _, code := range codes {
		assert.False(t, seen[code], "Duplicate exit code: %d", code)
		seen[code] = true
	}

	groups := []string{GroupInspect, GroupEdit, GroupConfiguration, GroupInternal}
	seenGroups := make(map[string]bool)
	for _, group := range groups {
		assert.False(t, seenGroups[group], "Duplicate group constant: %s", group)
		seenGroups[group] = true
	}
}
