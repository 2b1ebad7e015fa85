package cli

import (
	"fmt"
	"path/filepath"

	"github.com/ariel-frischer/historian/internal/changelog"
	clierrors "github.com/ariel-frischer/historian/internal/errors"
	"github.com/ariel-frischer/historian/internal/git"
	"github.com/ariel-frischer/historian/internal/output"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var releaseCmd = &cobra.Command{
	Use:   "release [name]",
	Short: "Release the pending changes under the next version",
	Long: `Cut a release: the pending block is stamped with the next version, the
optional release name and today's date, and the release log is printed.

Change flags are recorded first, so a change can be added and released in
one step. A release without pending changes still gets a header and a patch
bump.

With --tag (or git.tag: true in the config) an annotated git tag named
<git.tag_prefix><version> is created at HEAD with the release log as its
message. The tag is checked before the changelog is touched.`,
	Example: `  # Anonymous release
  historian release

  # Named release
  historian release "Lucky Luke"

  # Add a last fix, release and tag
  historian release --patch "Fix date format" --tag`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRelease,
}

func init() {
	releaseCmd.GroupID = GroupEdit
	rootCmd.AddCommand(releaseCmd)

	registerChangeFlags(releaseCmd)
	releaseCmd.Flags().Bool("tag", false, "Create an annotated git tag for the release (overrides git.tag)")
}

func runRelease(cmd *cobra.Command, args []string) error {
	var name string
	if len(args) == 1 {
		name = args[0]
	}
	changes := changesFromFlags(cmd)

	s, err := openSession(cmd, true)
	if err != nil {
		return err
	}
	defer s.close()

	tag := s.cfg.Git.Tag
	if cmd.Flags().Changed("tag") {
		tag, _ = cmd.Flags().GetBool("tag")
	}

	var repo, tagName string
	if tag {
		version, err := upcomingVersion(s, changes)
		if err != nil {
			return s.wrap(err)
		}
		tagName = s.cfg.TagName(version.String())
		if repo, err = preflightTag(s, tagName); err != nil {
			return err
		}
	}

	log, err := s.engine.Update(changelog.UpdateRequest{
		Changes: changes,
		Release: changelog.Named(name),
	})
	if err != nil {
		return s.wrap(err)
	}
	if err := s.commit(); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), log)

	if !tag {
		return nil
	}

	created, err := git.TagRelease(repo, tagName, log)
	if err != nil {
		if git.IsTagExistsError(err) {
			cliErr := clierrors.TagExists(tagName)
			cliErr.Cause = err
			return cliErr
		}
		return clierrors.WrapWithMessage(err, clierrors.Runtime,
			fmt.Sprintf("released, but tagging %s failed", tagName),
			"The changelog was updated but the tag was not created",
			fmt.Sprintf("Create it by hand with: git tag -a %s", tagName),
		)
	}

	s.logger.Debug("tagged release", zap.String("tag", created.Name), zap.String("commit", created.Commit))
	output.PrintSuccess(cmd.ErrOrStderr(), fmt.Sprintf("Tagged %s at %s", created.Name, shortHash(created.Commit)))
	return nil
}

// upcomingVersion computes the version the release will get once changes
// are merged into the pending set.
func upcomingVersion(s *session, changes []changelog.Change) (changelog.Version, error) {
	current, err := s.engine.CurrentVersion()
	if err != nil {
		return changelog.Version{}, err
	}
	pending, err := s.engine.Changes()
	if err != nil {
		return changelog.Version{}, err
	}
	for _, c := range changes {
		pending.Add(c.Significance, c.Message)
	}
	return current.Next(pending), nil
}

// preflightTag resolves the repository to tag and fails early if it is not
// a repository or the tag already exists.
func preflightTag(s *session, tagName string) (string, error) {
	repo := s.cfg.Git.Repo
	if repo == "" {
		abs, err := filepath.Abs(s.cfg.File)
		if err != nil {
			return "", fmt.Errorf("resolving changelog path: %w", err)
		}
		repo = filepath.Dir(abs)
	}

	root, err := git.RepositoryRoot(repo)
	if err != nil {
		return "", clierrors.NotAGitRepository(repo, err)
	}

	exists, err := git.HasTag(root, tagName)
	if err != nil {
		return "", err
	}
	if exists {
		return "", clierrors.TagExists(tagName)
	}
	return root, nil
}

func shortHash(hash string) string {
	if len(hash) > 7 {
		return hash[:7]
	}
	return hash
}
