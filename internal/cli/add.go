package cli

import (
	"fmt"

	"github.com/ariel-frischer/historian/internal/changelog"
	clierrors "github.com/ariel-frischer/historian/internal/errors"
	"github.com/spf13/cobra"
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Record changes for the next release",
	Long: `Record one or more pending changes.

Each flag takes one change message and can be repeated. Changes are appended
to their section in the order given and the pending block is rewritten; the
released history is left untouched.`,
	Example: `  # One bug fix
  historian add --patch "Fix crash on empty changelog"

  # Several changes at once
  historian add --minor "Add export command" --patch "Fix wrapping" --patch "Fix typo in help"`,
	Args: cobra.NoArgs,
	RunE: runAdd,
}

func init() {
	addCmd.GroupID = GroupEdit
	rootCmd.AddCommand(addCmd)

	registerChangeFlags(addCmd)
}

// registerChangeFlags adds the repeatable --major, --minor and --patch flags.
func registerChangeFlags(cmd *cobra.Command) {
	for _, s := range changelog.Significances() {
		cmd.Flags().StringArray(s.String(), nil, fmt.Sprintf("Record a change under %q (repeatable)", s.Title()))
	}
}

// changesFromFlags collects change flags in major, minor, patch order.
func changesFromFlags(cmd *cobra.Command) []changelog.Change {
	var changes []changelog.Change
	for _, s := range changelog.Significances() {
		messages, _ := cmd.Flags().GetStringArray(s.String())
		for _, m := range messages {
			changes = append(changes, changelog.Change{Significance: s, Message: m})
		}
	}
	return changes
}

func runAdd(cmd *cobra.Command, args []string) error {
	changes := changesFromFlags(cmd)
	if len(changes) == 0 {
		return clierrors.MissingChanges()
	}

	s, err := openSession(cmd, true)
	if err != nil {
		return err
	}
	defer s.close()

	if _, err := s.engine.Update(changelog.UpdateRequest{Changes: changes}); err != nil {
		return s.wrap(err)
	}
	if err := s.commit(); err != nil {
		return err
	}

	next, err := s.engine.NextVersion()
	if err != nil {
		return s.wrap(err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Recorded %d change(s); next release: %s\n", len(changes), next)
	return nil
}
