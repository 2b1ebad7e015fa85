package changelog

import (
	"bytes"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"
)

// Storage is the handle an Engine reads and rewrites. It must be both
// readable and writable; *os.File opened with os.O_RDWR satisfies it.
// The current position is reported through Seek(0, io.SeekCurrent).
type Storage interface {
	io.Reader
	io.Writer
	io.Seeker
	Truncate(size int64) error
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock sets the time source used to date releases.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// WithLogger sets the logger for parse and rewrite events.
func WithLogger(logger *zap.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithUnreleasedMarker sets the text written after "== " above pending
// changes (default "In Progress").
func WithUnreleasedMarker(marker string) Option {
	return func(e *Engine) {
		e.marker = marker
	}
}

// Engine maintains a changelog stored in a Storage it owns for the session.
//
// State is parsed from storage on first access and cached. The cache is
// dropped only after an update that cut a release (or a failed rewrite), at
// which point storage is parsed again. An Engine is not safe for concurrent
// use, and assumes no other writer touches the storage.
type Engine struct {
	store  Storage
	now    func() time.Time
	logger *zap.Logger
	marker string

	parsed  bool
	state   *ParsedState
	changes ChangeSet
	release ReleaseAnnotation

	releaseLog string
	released   bool
}

// New creates an Engine over store. Nothing is read until first use.
func New(store Storage, opts ...Option) *Engine {
	e := &Engine{
		store:  store,
		now:    time.Now,
		logger: zap.NewNop(),
		marker: DefaultUnreleasedMarker,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// CurrentVersion returns the most recently released version (0.0.0 if none).
func (e *Engine) CurrentVersion() (Version, error) {
	if err := e.ensureParsed(); err != nil {
		return Version{}, err
	}
	return e.state.Current, nil
}

// NextVersion returns the version a release of the pending changes would get.
func (e *Engine) NextVersion() (Version, error) {
	if err := e.ensureParsed(); err != nil {
		return Version{}, err
	}
	return e.state.Current.Next(e.changes), nil
}

// CurrentReleaseName returns the name of the most recent release, and false
// if it has none.
func (e *Engine) CurrentReleaseName() (string, bool, error) {
	if err := e.ensureParsed(); err != nil {
		return "", false, err
	}
	return e.state.ReleaseName, e.state.ReleaseName != "", nil
}

// Changes returns a copy of the pending ChangeSet.
func (e *Engine) Changes() (ChangeSet, error) {
	if err := e.ensureParsed(); err != nil {
		return ChangeSet{}, err
	}
	return e.changes.Clone(), nil
}

// HasChanges reports whether any change is pending.
func (e *Engine) HasChanges() (bool, error) {
	if err := e.ensureParsed(); err != nil {
		return false, err
	}
	return !e.changes.IsEmpty(), nil
}

// PendingChangelog renders the pending changes under the unreleased marker.
// It returns "" when nothing is pending.
func (e *Engine) PendingChangelog() (string, error) {
	if err := e.ensureParsed(); err != nil {
		return "", err
	}
	return RenderPending(e.marker, e.changes), nil
}

// ReleaseLog returns the text of the release cut by the most recent Update
// call. It is reset at the start of every Update, so it reports false unless
// the last call performed a release.
func (e *Engine) ReleaseLog() (string, bool) {
	return e.releaseLog, e.released
}

// Release cuts a release of the pending changes. An empty name produces an
// anonymous release. It returns the release log.
func (e *Engine) Release(name string) (string, error) {
	return e.Update(UpdateRequest{Release: Named(name)})
}

// Update merges req.Changes into the pending set and rewrites storage with
// the pending block prepended to the released history. When req.Release is
// requested the pending block is stamped with the next version and today's
// date, the returned string is that release log, and the engine re-reads
// storage so the release becomes the current version. Otherwise Update
// returns "".
//
// The request is validated before anything changes. If the rewrite fails the
// storage content is unknown; the engine drops its cached state and will
// parse storage again on next use.
func (e *Engine) Update(req UpdateRequest) (string, error) {
	if err := e.ensureParsed(); err != nil {
		return "", err
	}
	if err := req.validate(); err != nil {
		return "", err
	}

	e.releaseLog, e.released = "", false
	for _, c := range req.Changes {
		e.changes.Add(c.Significance, c.Message)
	}
	e.release = req.Release

	text := e.render()
	if err := e.rewrite(text); err != nil {
		e.invalidate()
		return "", fmt.Errorf("rewriting changelog: %w", err)
	}

	if !req.Release.Requested {
		e.logger.Debug("recorded pending changes", zap.Int("pending", e.changes.Count()))
		return "", nil
	}

	e.releaseLog, e.released = text, true
	e.invalidate()
	if err := e.ensureParsed(); err != nil {
		return text, fmt.Errorf("reading changelog after release: %w", err)
	}
	e.logger.Debug("cut release",
		zap.Stringer("version", e.state.Current),
		zap.String("name", e.state.ReleaseName))
	return text, nil
}

// render produces the block for the pending region: a release entry when a
// release was requested, the unreleased block otherwise.
func (e *Engine) render() string {
	if e.release.Requested {
		return RenderRelease(e.state.Current, e.release, e.changes, e.now())
	}
	return RenderPending(e.marker, e.changes)
}

// rewrite replaces storage content with text, a blank separator and the
// untouched trailing buffer, then truncates whatever old content remains.
func (e *Engine) rewrite(text string) error {
	var buf bytes.Buffer
	if text != "" {
		buf.WriteString(text)
		buf.WriteString("\n")
	}
	if len(e.state.Trailing) > 0 {
		if text != "" {
			buf.WriteString("\n")
		}
		buf.Write(e.state.Trailing)
	}

	if _, err := e.store.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("seeking to start: %w", err)
	}
	if _, err := e.store.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("writing: %w", err)
	}
	pos, err := e.store.Seek(0, io.SeekCurrent)
	if err != nil {
		return fmt.Errorf("reading position: %w", err)
	}
	if err := e.store.Truncate(pos); err != nil {
		return fmt.Errorf("truncating: %w", err)
	}

	e.logger.Debug("rewrote changelog", zap.Int64("size", pos))
	return nil
}

// invalidate drops cached state so the next access parses storage again.
func (e *Engine) invalidate() {
	e.parsed = false
	e.state = nil
	e.changes = ChangeSet{}
	e.release = ReleaseAnnotation{}
}

func (e *Engine) ensureParsed() error {
	if e.parsed {
		return nil
	}

	if _, err := e.store.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("seeking to start: %w", err)
	}
	raw, err := io.ReadAll(e.store)
	if err != nil {
		return fmt.Errorf("reading changelog: %w", err)
	}

	state, err := Parse(raw)
	if err != nil {
		return err
	}

	e.state = state
	e.changes = state.Pending.Clone()
	e.parsed = true

	e.logger.Debug("parsed changelog",
		zap.Stringer("current", state.Current),
		zap.Int("pending", state.Pending.Count()),
		zap.Int("history_bytes", len(state.Trailing)))
	return nil
}
