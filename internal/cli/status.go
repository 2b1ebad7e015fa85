package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/ariel-frischer/historian/internal/changelog"
	"github.com/ariel-frischer/historian/internal/git"
	"github.com/ariel-frischer/historian/internal/output"
	"github.com/ariel-frischer/historian/internal/watch"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var statusCmd = &cobra.Command{
	Use:     "status",
	Aliases: []string{"st"},
	Short:   "Summarize versions and pending changes (st)",
	Long: `Show the current version, the version the next release would get, and
the pending changes. Inside a git repository the release tag of the current
version is checked too.

With --watch the summary is redrawn whenever the changelog changes, until
interrupted.`,
	Example: `  historian status
  historian status --watch`,
	Args: cobra.NoArgs,
	RunE: runStatus,
}

func init() {
	statusCmd.GroupID = GroupInspect
	rootCmd.AddCommand(statusCmd)

	statusCmd.Flags().BoolP("watch", "w", false, "Redraw when the changelog changes")
	statusCmd.Flags().Bool("plain", false, "Plain text output (no colors/icons)")
}

func runStatus(cmd *cobra.Command, args []string) error {
	watchMode, _ := cmd.Flags().GetBool("watch")
	plain, _ := cmd.Flags().GetBool("plain")
	out := cmd.OutOrStdout()

	if !watchMode {
		return renderStatus(cmd, out, plain)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return watchStatus(ctx, cmd, out, plain)
}

// watchStatus redraws the status after each change until ctx is done.
// Parse errors are shown in place of the summary instead of ending the watch,
// since the file is usually mid-edit.
func watchStatus(ctx context.Context, cmd *cobra.Command, out io.Writer, plain bool) error {
	s, err := openSession(cmd, false)
	if err != nil {
		return err
	}
	path, logger := s.cfg.File, s.logger
	s.close()

	w, err := watch.New(path, watch.WithLogger(logger.Named("watch")))
	if err != nil {
		return err
	}

	redraw := func() error {
		output.ClearScreen(out)
		if err := renderStatus(cmd, out, plain); err != nil {
			fmt.Fprintf(out, "%v\n", err)
			logger.Debug("status render failed", zap.Error(err))
		}
		fmt.Fprintf(out, "\nWatching %s (Ctrl+C to stop)\n", path)
		return nil
	}

	if err := redraw(); err != nil {
		return err
	}
	return w.Watch(ctx, redraw)
}

// renderStatus writes a one-shot status summary.
func renderStatus(cmd *cobra.Command, out io.Writer, plain bool) error {
	s, err := openSession(cmd, false)
	if err != nil {
		return err
	}
	defer s.close()

	current, err := s.engine.CurrentVersion()
	if err != nil {
		return s.wrap(err)
	}
	name, _, err := s.engine.CurrentReleaseName()
	if err != nil {
		return s.wrap(err)
	}
	next, err := s.engine.NextVersion()
	if err != nil {
		return s.wrap(err)
	}
	changes, err := s.engine.Changes()
	if err != nil {
		return s.wrap(err)
	}

	bold := color.New(color.Bold).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()
	if plain {
		bold, dim = fmt.Sprint, fmt.Sprint
	}

	fmt.Fprintln(out, bold(s.cfg.File))

	currentLine := current.String()
	if name != "" {
		currentLine += " " + name
	}
	if current != (changelog.Version{}) {
		currentLine += " " + dim(tagStatus(s, current))
	}
	fmt.Fprintf(out, "  current: %s\n", currentLine)
	fmt.Fprintf(out, "  next:    %s\n", next)
	fmt.Fprintf(out, "  pending: %s\n", pendingSummary(changes))

	if changes.IsEmpty() {
		return nil
	}
	fmt.Fprintln(out)
	return changelog.FormatPending(s.cfg.UnreleasedMarker, changes, out, changelog.FormatOptions{Plain: plain})
}

// tagStatus describes whether the release tag of v exists.
func tagStatus(s *session, v changelog.Version) string {
	repo := s.cfg.Git.Repo
	if repo == "" {
		abs, err := filepath.Abs(s.cfg.File)
		if err != nil {
			return ""
		}
		repo = filepath.Dir(abs)
	}
	if !git.IsGitRepository(repo) {
		return "(not a git repository)"
	}

	tag := s.cfg.TagName(v.String())
	ok, err := git.HasTag(repo, tag)
	if err != nil {
		s.logger.Debug("checking release tag", zap.String("tag", tag), zap.Error(err))
		return ""
	}
	if ok {
		return fmt.Sprintf("(tagged %s)", tag)
	}
	return fmt.Sprintf("(untagged, expected %s)", tag)
}

// pendingSummary formats counts like "1 major, 2 bugfixes" or "none".
func pendingSummary(c changelog.ChangeSet) string {
	if c.IsEmpty() {
		return "none"
	}
	var parts []string
	for _, s := range changelog.Significances() {
		n := len(c.Entries(s))
		if n == 0 {
			continue
		}
		label := s.String()
		if s == changelog.Patch {
			label = "bugfix"
			if n > 1 {
				label = "bugfixes"
			}
		}
		parts = append(parts, fmt.Sprintf("%d %s", n, label))
	}
	return strings.Join(parts, ", ")
}

