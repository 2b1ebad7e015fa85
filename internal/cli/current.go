package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var currentCmd = &cobra.Command{
	Use:   "current",
	Short: "Print the most recently released version",
	Long: `Print the version of the most recent release in the changelog.

Prints 0.0.0 when nothing has been released yet. With --name, the release
name is printed after the version when the release has one.`,
	Example: `  historian current
  historian current --name`,
	Args: cobra.NoArgs,
	RunE: runCurrent,
}

var nextCmd = &cobra.Command{
	Use:   "next",
	Short: "Print the version the pending changes would be released as",
	Long: `Print the version a release of the pending changes would get.

Any major change bumps the major version, otherwise any minor change bumps
the minor version, otherwise the patch version is bumped.`,
	Example: `  historian next`,
	Args:    cobra.NoArgs,
	RunE:    runNext,
}

func init() {
	currentCmd.GroupID = GroupInspect
	nextCmd.GroupID = GroupInspect
	rootCmd.AddCommand(currentCmd, nextCmd)

	currentCmd.Flags().Bool("name", false, "Also print the release name")
}

func runCurrent(cmd *cobra.Command, args []string) error {
	withName, _ := cmd.Flags().GetBool("name")

	s, err := openSession(cmd, false)
	if err != nil {
		return err
	}
	defer s.close()

	v, err := s.engine.CurrentVersion()
	if err != nil {
		return s.wrap(err)
	}

	out := v.String()
	if withName {
		name, ok, err := s.engine.CurrentReleaseName()
		if err != nil {
			return s.wrap(err)
		}
		if ok {
			out += " " + name
		}
	}
	fmt.Fprintln(cmd.OutOrStdout(), out)
	return nil
}

func runNext(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd, false)
	if err != nil {
		return err
	}
	defer s.close()

	v, err := s.engine.NextVersion()
	if err != nil {
		return s.wrap(err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), v.String())
	return nil
}
