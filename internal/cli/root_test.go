// Package cli tests the root command, global flags and exit code mapping.
// Related: internal/cli/root.go, internal/cli/exit_codes.go
// Tags: cli, root, commands, global-flags, exit-codes

package cli

import (
	"errors"
	"fmt"
	"testing"

	"github.com/ariel-frischer/historian/internal/changelog"
	"github.com/ariel-frischer/historian/internal/cli/shared"
	clierrors "github.com/ariel-frischer/historian/internal/errors"
	"github.com/ariel-frischer/historian/internal/git"
	"github.com/ariel-frischer/historian/internal/lock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCmd_Structure(t *testing.T) {
	assert.Equal(t, "historian", rootCmd.Use)
	assert.NotEmpty(t, rootCmd.Short)
	assert.Contains(t, rootCmd.Long, "github.com")
	assert.Contains(t, rootCmd.Example, "historian add")
	assert.Contains(t, rootCmd.Example, "historian release")
}

func TestRootCmd_PersistentFlags(t *testing.T) {
	tests := map[string]struct {
		shorthand string
	}{
		"config":  {shorthand: "c"},
		"file":    {shorthand: "f"},
		"verbose": {shorthand: "v"},
		"no-lock": {},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			flag := rootCmd.PersistentFlags().Lookup(name)
			require.NotNil(t, flag, "flag %s should exist", name)
			assert.Equal(t, tt.shorthand, flag.Shorthand)
		})
	}
}

func TestRootCmd_Subcommands(t *testing.T) {
	tests := map[string]string{
		"current": GroupInspect,
		"next":    GroupInspect,
		"pending": GroupInspect,
		"log":     GroupInspect,
		"export":  GroupInspect,
		"status":  GroupInspect,
		"add":     GroupEdit,
		"release": GroupEdit,
		"config":  GroupConfiguration,
		"version": GroupInternal,
	}

	for name, group := range tests {
		t.Run(name, func(t *testing.T) {
			cmd, _, err := rootCmd.Find([]string{name})
			require.NoError(t, err)
			assert.Equal(t, name, cmd.Name())
			assert.Equal(t, group, cmd.GroupID)
			assert.True(t, rootCmd.ContainsGroup(group))
		})
	}
}

func TestExecute_Help(t *testing.T) {
	workspace(t)

	stdout, _, err := run(t, "--help")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Inspect:")
	assert.Contains(t, stdout, "Edit:")
	assert.Contains(t, stdout, "release")
}

func TestExecute_UnknownCommand(t *testing.T) {
	workspace(t)

	_, stderr, err := run(t, "publish")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, ExitCode(err))
	assert.Contains(t, stderr, "unknown command")
}

func TestExitCode(t *testing.T) {
	tests := map[string]struct {
		err  error
		want int
	}{
		"nil":              {err: nil, want: ExitSuccess},
		"plain":            {err: errors.New("boom"), want: ExitFailure},
		"explicit":         {err: shared.NewExitError(ExitLocked), want: ExitLocked},
		"wrapped explicit": {err: fmt.Errorf("outer: %w", shared.WithExitCode(ExitInvalidArguments, errors.New("bad flag"))), want: ExitInvalidArguments},
		"locked":           {err: clierrors.ChangelogLocked("History.txt.lock", &lock.LockedError{Path: "History.txt.lock"}), want: ExitLocked},
		"parse":            {err: &changelog.ParseError{Line: 3, Text: "x", Err: changelog.ErrUnrecognizedContent}, want: ExitChangelogInvalid},
		"parse cli error":  {err: clierrors.ChangelogParseError("History.txt", &changelog.ParseError{Line: 1, Err: changelog.ErrUnknownSignificance}), want: ExitChangelogInvalid},
		"caller":           {err: &changelog.CallerError{Field: "release", Message: "bad"}, want: ExitInvalidArguments},
		"argument":         {err: clierrors.MissingChanges(), want: ExitInvalidArguments},
		"configuration":    {err: clierrors.ConfigParseError(errors.New("bad yaml")), want: ExitInvalidArguments},
		"tag exists":       {err: &git.TagExistsError{Tag: "v1.0.0"}, want: ExitMissingDependency},
		"no repository":    {err: clierrors.NotAGitRepository("/tmp", errors.New("repository does not exist")), want: ExitMissingDependency},
		"runtime":          {err: clierrors.ChangelogNotWritable("History.txt", errors.New("read-only")), want: ExitFailure},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExitCode(tt.err))
		})
	}
}
