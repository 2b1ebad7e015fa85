package errors

import "fmt"

// Common error messages for the historian CLI.
// These templates ensure consistent, actionable error messages.

// ChangelogParseError creates an error for changelog content that does not
// follow the changelog format. err carries the offending line.
func ChangelogParseError(path string, err error) *CLIError {
	return &CLIError{
		Category: Changelog,
		Message:  fmt.Sprintf("cannot read %s: %v", path, err),
		Cause:    err,
		Remediation: []string{
			"Every change above the first release must sit under a '=== Major Changes', '=== Minor Changes' or '=== Bugfixes' section",
			"Change lines start with '* ', section lines with '=== ', release lines with '== X.Y.Z'",
			"Fix the reported line by hand; released history below the first '== X.Y.Z' line is never modified",
		},
	}
}

// ChangelogLocked creates an error when another process is writing the changelog.
func ChangelogLocked(lockPath string, err error) *CLIError {
	return WrapWithMessage(err, Runtime,
		"changelog is being modified by another process",
		"Wait for the other historian command to finish and retry",
		fmt.Sprintf("If no other command is running, remove %s", lockPath),
		"Or skip locking for this run with --no-lock",
	)
}

// ChangelogNotWritable creates an error when the changelog cannot be opened or saved.
func ChangelogNotWritable(path string, err error) *CLIError {
	return WrapWithMessage(err, Runtime,
		fmt.Sprintf("cannot update %s", path),
		"Check that the file and its directory are writable",
		"Use --file to point at a different changelog",
	)
}

// InvalidChange creates an error for a rejected change or release argument.
func InvalidChange(err error) *CLIError {
	cliErr := NewArgumentErrorWithUsage(
		err.Error(),
		"historian add --patch \"<message>\" [--minor \"<message>\"] [--major \"<message>\"]",
		"Change messages must be non-empty single lines",
		"Release names must be single lines",
	)
	cliErr.Cause = err
	return cliErr
}

// MissingChanges creates an error when add is run without any change flag.
func MissingChanges() *CLIError {
	return NewArgumentErrorWithUsage(
		"no changes given",
		"historian add --patch \"<message>\"",
		"Pass at least one of --major, --minor or --patch",
		"Each flag can be repeated to add several changes at once",
	)
}

// VersionNotFound creates an error when a requested release does not exist.
func VersionNotFound(version string, available []string) *CLIError {
	remediation := []string{"Run 'historian log --all' to see released versions"}
	if len(available) > 0 {
		remediation = append(remediation, fmt.Sprintf("Latest release is %s", available[0]))
	}
	return NewArgumentError(fmt.Sprintf("version %s has not been released", version), remediation...)
}

// ConfigParseError creates an error for an invalid config file or value.
func ConfigParseError(err error) *CLIError {
	return WrapWithMessage(err, Configuration,
		"failed to load configuration",
		"Check .historian.yml and ~/.config/historian/config.yml for syntax errors",
		"Check HISTORIAN_* environment variables",
		"Print a commented default config with: historian config init --stdout",
	)
}

// TagExists creates an error when the release tag is already present.
func TagExists(tag string) *CLIError {
	return NewPrerequisiteError(
		fmt.Sprintf("git tag %s already exists", tag),
		"The changelog was updated but the tag was not created",
		fmt.Sprintf("Inspect the existing tag with: git show %s", tag),
		"Change git.tag_prefix if tags use a different naming scheme",
	)
}

// NotAGitRepository creates an error when tagging is requested outside a repository.
func NotAGitRepository(path string, err error) *CLIError {
	return WrapWithMessage(err, Prerequisite,
		fmt.Sprintf("cannot tag release: %s is not inside a git repository", path),
		"Run the command from inside the repository",
		"Or set git.repo in .historian.yml",
		"Or release without --tag",
	)
}

// InvalidFlagCombination creates an error for incompatible flag combinations.
func InvalidFlagCombination(flags string, reason string) *CLIError {
	return NewArgumentError(
		fmt.Sprintf("invalid flag combination: %s", flags),
		reason,
		"Use 'historian <command> --help' to see valid options",
	)
}
