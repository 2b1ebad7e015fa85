package cli

import (
	"errors"
	"time"

	"github.com/ariel-frischer/historian/internal/changelog"
	"github.com/ariel-frischer/historian/internal/cli/shared"
	"github.com/ariel-frischer/historian/internal/config"
	clierrors "github.com/ariel-frischer/historian/internal/errors"
	"github.com/ariel-frischer/historian/internal/git"
	"github.com/ariel-frischer/historian/internal/lock"
	"github.com/ariel-frischer/historian/internal/logging"
	"github.com/ariel-frischer/historian/internal/store"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// now dates releases. Tests replace it.
var now = time.Now

// session is one command's view of the changelog: loaded configuration, an
// open storage handle, the lock when writing, and the engine over them.
type session struct {
	cfg    *config.Configuration
	logger *zap.Logger
	handle store.Handle
	lock   *lock.Lock
	engine *changelog.Engine
}

// openSession loads configuration and opens the changelog. Read-only
// sessions buffer the file and never write it back, so a missing changelog
// is not created. Writing sessions take the lock first when enabled.
func openSession(cmd *cobra.Command, write bool) (*session, error) {
	cfg, err := shared.LoadConfig(cmd)
	if err != nil {
		return nil, err
	}

	logger, err := logging.NewWithWriter(cfg.LogLevel, cmd.ErrOrStderr())
	if err != nil {
		return nil, clierrors.ConfigParseError(err)
	}
	git.SetLogger(logger)

	s := &session{cfg: cfg, logger: logger}

	if write && cfg.Lock {
		l, err := lock.Acquire(cfg.File, logger)
		if err != nil {
			if lock.IsLockedError(err) {
				return nil, clierrors.ChangelogLocked(lock.PathFor(cfg.File), err)
			}
			return nil, clierrors.ChangelogNotWritable(cfg.File, err)
		}
		s.lock = l
	}

	if write {
		s.handle, err = store.Open(cfg.File, cfg.Atomic)
	} else {
		s.handle, err = store.OpenAtomic(cfg.File)
	}
	if err != nil {
		s.close()
		return nil, clierrors.ChangelogNotWritable(cfg.File, err)
	}

	s.engine = changelog.New(s.handle,
		changelog.WithLogger(logger.Named("changelog")),
		changelog.WithUnreleasedMarker(cfg.UnreleasedMarker),
		changelog.WithClock(now),
	)
	logger.Debug("opened changelog",
		zap.String("file", cfg.File),
		zap.Bool("write", write),
		zap.Bool("atomic", cfg.Atomic))
	return s, nil
}

// commit makes the engine's writes durable.
func (s *session) commit() error {
	if err := s.handle.Commit(); err != nil {
		return clierrors.ChangelogNotWritable(s.cfg.File, err)
	}
	return nil
}

// close releases the handle and the lock. Uncommitted atomic writes are
// discarded.
func (s *session) close() {
	if s.handle != nil {
		if err := s.handle.Close(); err != nil {
			s.logger.Warn("closing changelog", zap.Error(err))
		}
	}
	if err := s.lock.Release(); err != nil {
		s.logger.Warn("releasing lock", zap.Error(err))
	}
}

// wrap turns engine errors into CLI errors with remediation.
func (s *session) wrap(err error) error {
	if err == nil {
		return nil
	}
	var notFound *changelog.VersionNotFoundError
	switch {
	case changelog.IsParseError(err):
		return clierrors.ChangelogParseError(s.cfg.File, err)
	case changelog.IsCallerError(err):
		return clierrors.InvalidChange(err)
	case errors.As(err, &notFound):
		cliErr := clierrors.VersionNotFound(notFound.Version, notFound.AvailableVersions)
		cliErr.Cause = err
		return cliErr
	}
	return err
}
