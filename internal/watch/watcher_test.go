package watch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// touchUntil rewrites path with growing content until done is closed or
// the deadline passes. The watcher may start after the first write, so a
// single write is not enough.
func touchUntil(t *testing.T, path string, done <-chan struct{}) {
	t.Helper()
	deadline := time.After(5 * time.Second)
	for i := 1; ; i++ {
		require.NoError(t, os.WriteFile(path, []byte(strings.Repeat("x", i)), 0o644))
		select {
		case <-done:
			return
		case <-deadline:
			t.Fatal("no change reported")
		case <-time.After(50 * time.Millisecond):
		}
	}
}

func TestWatch_ReportsChanges(t *testing.T) {
	tests := map[string]struct {
		exists bool
	}{
		"existing file": {exists: true},
		"created later": {exists: false},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "History.txt")
			if tt.exists {
				require.NoError(t, os.WriteFile(path, []byte("== 0.0.1\n"), 0o644))
			}

			w, err := New(path, WithDebounce(10*time.Millisecond), WithInterval(20*time.Millisecond))
			require.NoError(t, err)

			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			changed := make(chan struct{})
			result := make(chan error, 1)
			go func() {
				result <- w.Watch(ctx, func() error {
					close(changed)
					return errStop
				})
			}()

			touchUntil(t, path, changed)
			assert.ErrorIs(t, <-result, errStop)
		})
	}
}

var errStop = errors.New("stop")

func TestWatch_CancelReturnsNil(t *testing.T) {
	w, err := New(filepath.Join(t.TempDir(), "History.txt"))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	result := make(chan error, 1)
	go func() {
		result <- w.Watch(ctx, func() error { return nil })
	}()
	cancel()

	select {
	case err := <-result:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop")
	}
}

func TestWatch_MissingDirectory(t *testing.T) {
	w, err := New(filepath.Join(t.TempDir(), "missing", "History.txt"))
	require.NoError(t, err)

	err = w.Watch(context.Background(), func() error { return nil })
	require.Error(t, err)
	assert.Contains(t, err.Error(), "watching directory")
}

func TestRelevant(t *testing.T) {
	dir := t.TempDir()
	w, err := New(filepath.Join(dir, "History.txt"))
	require.NoError(t, err)

	tests := map[string]struct {
		event fsnotify.Event
		want  bool
	}{
		"write":        {event: fsnotify.Event{Name: w.Path(), Op: fsnotify.Write}, want: true},
		"rename":       {event: fsnotify.Event{Name: w.Path(), Op: fsnotify.Rename}, want: true},
		"create":       {event: fsnotify.Event{Name: w.Path(), Op: fsnotify.Create}, want: true},
		"chmod only":   {event: fsnotify.Event{Name: w.Path(), Op: fsnotify.Chmod}, want: false},
		"sibling file": {event: fsnotify.Event{Name: w.Path() + ".lock", Op: fsnotify.Write}, want: false},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.want, w.relevant(tt.event))
		})
	}
}
