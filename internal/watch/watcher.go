// Package watch notifies about changes to a single file.
//
// Editors and the atomic store replace files through rename, which drops a
// watch placed on the file itself, so the parent directory is watched and
// events are filtered by name. A slow stat poll backs up missed events.
package watch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

const (
	defaultInterval = 500 * time.Millisecond
	defaultDebounce = 100 * time.Millisecond
)

// Watcher reports changes to one file.
type Watcher struct {
	path     string
	interval time.Duration
	debounce time.Duration
	logger   *zap.Logger

	last stamp
}

// stamp is what the poll fallback compares.
type stamp struct {
	exists bool
	size   int64
	mod    time.Time
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithInterval sets the poll interval used as a fallback for missed events.
func WithInterval(d time.Duration) Option {
	return func(w *Watcher) {
		w.interval = d
	}
}

// WithDebounce sets how long the watcher waits for a burst of events to
// settle before reporting a change.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		w.debounce = d
	}
}

// WithLogger sets the logger for watch events.
func WithLogger(logger *zap.Logger) Option {
	return func(w *Watcher) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// New creates a Watcher for path. The file does not need to exist yet.
func New(path string, opts ...Option) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving watch path: %w", err)
	}

	w := &Watcher{
		path:     abs,
		interval: defaultInterval,
		debounce: defaultDebounce,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Path returns the absolute path being watched.
func (w *Watcher) Path() string {
	return w.path
}

// Watch calls onChange after every settled change to the file until ctx is
// cancelled. An error from onChange stops the watch and is returned.
// Cancellation returns nil.
func (w *Watcher) Watch(ctx context.Context, onChange func() error) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating fsnotify watcher: %w", err)
	}
	defer fsw.Close()

	dir := filepath.Dir(w.path)
	if err := fsw.Add(dir); err != nil {
		return fmt.Errorf("watching directory %s: %w", dir, err)
	}
	w.last = w.stat()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	// settle is nil while no change is pending.
	var settle <-chan time.Time
	var timer *time.Timer
	arm := func() {
		if timer != nil {
			timer.Stop()
		}
		timer = time.NewTimer(w.debounce)
		settle = timer.C
	}
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-fsw.Events:
			if !ok {
				return errors.New("watcher closed")
			}
			if w.relevant(event) {
				w.logger.Debug("file event", zap.String("path", event.Name), zap.Stringer("op", event.Op))
				arm()
			}
		case err, ok := <-fsw.Errors:
			if !ok {
				return errors.New("watcher closed")
			}
			// Polling still covers the file.
			w.logger.Warn("watch error", zap.Error(err))
		case <-ticker.C:
			if w.stat() != w.last && settle == nil {
				arm()
			}
		case <-settle:
			settle = nil
			current := w.stat()
			if current == w.last {
				continue
			}
			w.last = current
			if err := onChange(); err != nil {
				return err
			}
		}
	}
}

// relevant reports whether event concerns the watched file.
func (w *Watcher) relevant(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != w.path {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create) ||
		event.Has(fsnotify.Rename) || event.Has(fsnotify.Remove)
}

func (w *Watcher) stat() stamp {
	info, err := os.Stat(w.path)
	if err != nil {
		return stamp{}
	}
	return stamp{exists: true, size: info.Size(), mod: info.ModTime()}
}
