// historian - Changelog maintenance for semantically versioned projects
// Author: Ariel Frischer
// Source: https://github.com/ariel-frischer/historian

// Package cli implements the historian command line.
package cli

import (
	clicfg "github.com/ariel-frischer/historian/internal/cli/config"
	"github.com/ariel-frischer/historian/internal/cli/shared"
	"github.com/ariel-frischer/historian/internal/cli/util"
	"github.com/spf13/cobra"
)

// Command group IDs, re-exported for the commands in this package.
const (
	GroupInspect       = shared.GroupInspect
	GroupEdit          = shared.GroupEdit
	GroupConfiguration = shared.GroupConfiguration
	GroupInternal      = shared.GroupInternal
)

var rootCmd = &cobra.Command{
	Use:   "historian",
	Short: "Maintain a semantically versioned History.txt changelog",
	Long: `historian maintains a plain-text changelog and the project version derived from it.

Pending changes live at the top of the file under "== In Progress", grouped
into Major Changes, Minor Changes and Bugfixes. Releasing stamps them with
the next semantic version and today's date. Released history below is never
modified.

Source: https://github.com/ariel-frischer/historian`,
	Example: `  # Record changes
  historian add --minor "Add export command" --patch "Fix wrapping of long entries"

  # Show the current and next versions
  historian current
  historian next

  # Review what will be released
  historian pending

  # Cut a named release and tag it in git
  historian release "Lucky Luke" --tag

  # Browse released history
  historian log --last 3
  historian status --watch`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddGroup(
		&cobra.Group{ID: GroupInspect, Title: "Inspect:"},
		&cobra.Group{ID: GroupEdit, Title: "Edit:"},
		&cobra.Group{ID: GroupConfiguration, Title: "Configuration:"},
		&cobra.Group{ID: GroupInternal, Title: "Internal Commands:"},
	)
	rootCmd.SetHelpCommandGroupID(GroupInternal)
	rootCmd.SetCompletionCommandGroupID(GroupInternal)

	rootCmd.PersistentFlags().StringP(shared.FlagConfig, "c", "", "Path to project config file (default: .historian.yml)")
	rootCmd.PersistentFlags().StringP(shared.FlagFile, "f", "", "Changelog file (default: History.txt)")
	rootCmd.PersistentFlags().BoolP(shared.FlagVerbose, "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().Bool(shared.FlagNoLock, false, "Do not take the changelog lock file")

	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return shared.WithExitCode(shared.ExitInvalidArguments, err)
	})

	rootCmd.AddCommand(util.VersionCmd)
	rootCmd.AddCommand(clicfg.ConfigCmd)
}

// Execute runs the root command and prints any error it returns.
// Use ExitCode to turn the returned error into a process exit code.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		printError(rootCmd.ErrOrStderr(), err)
	}
	return err
}
