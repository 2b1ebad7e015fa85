package cli

import (
	"fmt"

	"github.com/ariel-frischer/historian/internal/changelog"
	clierrors "github.com/ariel-frischer/historian/internal/errors"
	"github.com/spf13/cobra"
)

var pendingCmd = &cobra.Command{
	Use:   "pending",
	Short: "Show changes waiting for the next release",
	Long: `Show the pending changes recorded above the released history.

By default changes are grouped and colored for the terminal. --raw prints
the block exactly as it is written to the changelog, and prints nothing when
no change is pending.`,
	Example: `  historian pending
  historian pending --plain
  historian pending --raw > NOTES.txt`,
	Args: cobra.NoArgs,
	RunE: runPending,
}

func init() {
	pendingCmd.GroupID = GroupInspect
	rootCmd.AddCommand(pendingCmd)

	pendingCmd.Flags().Bool("plain", false, "Plain text output (no colors/icons)")
	pendingCmd.Flags().Bool("raw", false, "Print the pending block as stored in the changelog")
}

func runPending(cmd *cobra.Command, args []string) error {
	plain, _ := cmd.Flags().GetBool("plain")
	raw, _ := cmd.Flags().GetBool("raw")
	if plain && raw {
		return clierrors.InvalidFlagCombination("--plain, --raw", "--raw output is never styled; pass only one of them")
	}

	s, err := openSession(cmd, false)
	if err != nil {
		return err
	}
	defer s.close()

	out := cmd.OutOrStdout()
	if raw {
		text, err := s.engine.PendingChangelog()
		if err != nil {
			return s.wrap(err)
		}
		if text != "" {
			fmt.Fprintln(out, text)
		}
		return nil
	}

	changes, err := s.engine.Changes()
	if err != nil {
		return s.wrap(err)
	}
	if changes.IsEmpty() {
		fmt.Fprintln(out, "No pending changes.")
		return nil
	}

	next, err := s.engine.NextVersion()
	if err != nil {
		return s.wrap(err)
	}
	heading := fmt.Sprintf("%s (next: v%s)", s.cfg.UnreleasedMarker, next)
	return changelog.FormatPending(heading, changes, out, changelog.FormatOptions{Plain: plain})
}
