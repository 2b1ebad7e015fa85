package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
)

var releaseDay = time.Date(2010, 12, 12, 9, 30, 0, 0, time.UTC)

// workspace runs the test from an empty directory with no user config,
// no HISTORIAN_* variables and a fixed release date. It returns the path
// of the default changelog file.
func workspace(t *testing.T) string {
	t.Helper()

	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	for _, key := range []string{"HISTORIAN_FILE", "HISTORIAN_LOG_LEVEL", "HISTORIAN_LOCK", "HISTORIAN_ATOMIC", "HISTORIAN_GIT_TAG", "HISTORIAN_GIT_TAG_PREFIX", "HISTORIAN_GIT_REPO"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	dir := t.TempDir()
	t.Chdir(dir)

	orig := now
	now = func() time.Time { return releaseDay }
	t.Cleanup(func() { now = orig })

	return filepath.Join(dir, "History.txt")
}

// run executes the historian command line with args and returns stdout,
// stderr and the error Execute returned. Commands are package globals, so
// every flag is reset first.
func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	resetFlags(rootCmd)

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := Execute()
	return stdout.String(), stderr.String(), err
}

// mustRun is run for commands expected to succeed.
func mustRun(t *testing.T, args ...string) string {
	t.Helper()
	stdout, stderr, err := run(t, args...)
	require.NoError(t, err, "historian %v failed: %s", args, stderr)
	return stdout
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

func writeChangelog(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func readChangelog(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}
