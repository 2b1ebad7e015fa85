// Package lock guards a changelog file against concurrent writers.
//
// A lock is a small YAML file next to the changelog ("History.txt.lock")
// recording who holds it. Locks left behind by processes that are no longer
// running are considered stale and are removed on the next acquire.
package lock

import (
	"errors"
	"fmt"
	"os"
	"syscall"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Lock is the content of a lock file.
type Lock struct {
	// Holder identifies the acquiring session.
	Holder string `yaml:"holder"`
	// PID is the process ID holding the lock.
	PID int `yaml:"pid"`
	// Target is the changelog file being guarded.
	Target string `yaml:"target"`
	// StartedAt is when the lock was acquired.
	StartedAt time.Time `yaml:"started_at"`

	path   string
	logger *zap.Logger
}

// LockedError is returned when another live process holds the lock.
type LockedError struct {
	Path   string
	Holder *Lock
}

func (e *LockedError) Error() string {
	return fmt.Sprintf("%s is locked by PID %d since %s (remove %s if that process is gone)",
		e.Holder.Target, e.Holder.PID, e.Holder.StartedAt.Format(time.RFC3339), e.Path)
}

// IsLockedError returns true if err is or wraps a LockedError.
func IsLockedError(err error) bool {
	var le *LockedError
	return errors.As(err, &le)
}

// PathFor returns the lock file path guarding target.
func PathFor(target string) string {
	return target + ".lock"
}

// Acquire takes the lock for target. A stale lock is removed and the
// acquire retried once; a lock held by a running process yields a
// LockedError.
func Acquire(target string, logger *zap.Logger) (*Lock, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	l := &Lock{
		Holder:    uuid.NewString(),
		PID:       os.Getpid(),
		Target:    target,
		StartedAt: time.Now().UTC(),
		path:      PathFor(target),
		logger:    logger,
	}

	data, err := yaml.Marshal(l)
	if err != nil {
		return nil, fmt.Errorf("marshaling lock: %w", err)
	}

	for attempt := 0; attempt < 2; attempt++ {
		err := create(l.path, data)
		if err == nil {
			logger.Debug("acquired changelog lock",
				zap.String("path", l.path),
				zap.String("holder", l.Holder))
			return l, nil
		}
		if !errors.Is(err, os.ErrExist) {
			return nil, err
		}

		existing, err := Load(l.path)
		if err != nil {
			return nil, err
		}
		if existing != nil && !IsStale(existing) {
			return nil, &LockedError{Path: l.path, Holder: existing}
		}

		logger.Debug("removing stale changelog lock", zap.String("path", l.path))
		if err := os.Remove(l.path); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("removing stale lock file: %w", err)
		}
	}

	return nil, fmt.Errorf("acquiring lock %s: lock file keeps reappearing", l.path)
}

// Release removes the lock file if it still belongs to this holder.
func (l *Lock) Release() error {
	if l == nil {
		return nil
	}

	current, err := Load(l.path)
	if err != nil {
		return err
	}
	if current == nil {
		return nil
	}
	if current.Holder != l.Holder {
		l.logger.Warn("changelog lock taken over by another holder, leaving it in place",
			zap.String("path", l.path),
			zap.String("holder", current.Holder))
		return nil
	}

	if err := os.Remove(l.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing lock file: %w", err)
	}
	l.logger.Debug("released changelog lock", zap.String("path", l.path))
	return nil
}

// Path returns the lock file path.
func (l *Lock) Path() string {
	return l.path
}

// Load reads a lock file from disk.
// Returns nil and no error if the lock file doesn't exist.
func Load(path string) (*Lock, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading lock file: %w", err)
	}

	var l Lock
	if err := yaml.Unmarshal(data, &l); err != nil {
		return nil, fmt.Errorf("parsing lock file %s: %w", path, err)
	}
	l.path = path
	l.logger = zap.NewNop()
	return &l, nil
}

// IsStale checks if a lock is stale based on PID.
// A lock is stale if the PID that created it is no longer running.
func IsStale(l *Lock) bool {
	if l == nil || l.PID <= 0 {
		return true
	}
	return !isProcessRunning(l.PID)
}

// isProcessRunning checks if a process with the given PID exists.
func isProcessRunning(pid int) bool {
	process, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	// On Unix, FindProcess always succeeds. Send signal 0 to check existence.
	err = process.Signal(syscall.Signal(0))
	return err == nil || errors.Is(err, syscall.EPERM)
}

// create writes a new lock file, failing with os.ErrExist if one is present.
func create(path string, data []byte) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return err
		}
		return fmt.Errorf("creating lock file: %w", err)
	}

	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(path) // Best effort cleanup
		return fmt.Errorf("writing lock file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path) // Best effort cleanup
		return fmt.Errorf("closing lock file: %w", err)
	}
	return nil
}
