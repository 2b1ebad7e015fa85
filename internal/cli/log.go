package cli

import (
	"fmt"

	"github.com/ariel-frischer/historian/internal/changelog"
	clierrors "github.com/ariel-frischer/historian/internal/errors"
	"github.com/spf13/cobra"
)

var logCmd = &cobra.Command{
	Use:   "log [version]",
	Short: "Show released history",
	Long: `Show released entries of the changelog.

By default, shows the most recent release. Use a version argument to see a
specific release, --last to show several, or --all for the whole history.`,
	Example: `  historian log              # Most recent release
  historian log 1.2.0        # A specific release
  historian log v1.2.0       # Same (v prefix optional)
  historian log --last 5     # Five most recent releases
  historian log --all        # Everything
  historian log --plain      # Plain output (no colors/icons)`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLog,
}

func init() {
	logCmd.GroupID = GroupInspect
	rootCmd.AddCommand(logCmd)

	logCmd.Flags().Int("last", 1, "Number of releases to show")
	logCmd.Flags().Bool("all", false, "Show every release")
	logCmd.Flags().Bool("plain", false, "Plain text output (no colors/icons)")
}

func runLog(cmd *cobra.Command, args []string) error {
	last, _ := cmd.Flags().GetInt("last")
	all, _ := cmd.Flags().GetBool("all")
	plain, _ := cmd.Flags().GetBool("plain")

	if len(args) == 1 && (all || cmd.Flags().Changed("last")) {
		return clierrors.InvalidFlagCombination("[version], --last, --all", "A version argument shows exactly one release")
	}
	if last < 1 && !all {
		return clierrors.NewArgumentError(fmt.Sprintf("--last must be at least 1, got %d", last), "Use --all to show every release")
	}

	s, err := openSession(cmd, false)
	if err != nil {
		return err
	}
	defer s.close()

	history, err := s.engine.History()
	if err != nil {
		return s.wrap(err)
	}

	out := cmd.OutOrStdout()
	opts := changelog.FormatOptions{Plain: plain}

	if len(args) == 1 {
		release, err := history.Get(args[0])
		if err != nil {
			return s.wrap(err)
		}
		return changelog.FormatRelease(release, out, opts)
	}

	if len(history.Releases) == 0 {
		fmt.Fprintln(out, "No releases yet.")
		return nil
	}

	if all {
		last = 0
	}
	if err := changelog.FormatHistory(history, last, out, opts); err != nil {
		return fmt.Errorf("formatting history: %w", err)
	}

	total := len(history.Releases)
	if last > 0 && total > last {
		fmt.Fprintf(out, "\n(%d of %d releases shown. Use --last %d or --all to see more)\n", last, total, total)
	}
	return nil
}
