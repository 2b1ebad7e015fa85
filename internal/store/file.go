package store

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Handle is a read-write changelog handle. Commit makes the written content
// durable; Close releases the handle without committing anything further.
type Handle interface {
	io.ReadWriteSeeker
	Truncate(size int64) error
	Commit() error
	Close() error
}

// Open opens path for reading and writing. With atomic set, edits are
// buffered in memory and Commit replaces the file through a temp file and
// rename; otherwise edits go straight to the file. A missing file is
// created (atomic mode creates it on Commit).
func Open(path string, atomic bool) (Handle, error) {
	if atomic {
		return OpenAtomic(path)
	}
	return OpenFile(path)
}

// File is a changelog handle writing directly to an *os.File.
type File struct {
	*os.File
}

// OpenFile opens path read-write, creating it if needed.
func OpenFile(path string) (*File, error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening changelog file: %w", err)
	}
	return &File{File: f}, nil
}

// Commit flushes the file to stable storage.
func (f *File) Commit() error {
	if err := f.Sync(); err != nil {
		return fmt.Errorf("syncing changelog file: %w", err)
	}
	return nil
}

// AtomicFile buffers a file in memory. Commit writes the buffer to a temp
// file next to the target and renames it into place, so readers never see a
// partially rewritten changelog.
type AtomicFile struct {
	*Buffer
	path     string
	original []byte
	perm     os.FileMode
}

// OpenAtomic loads path into memory. A missing file reads as empty.
func OpenAtomic(path string) (*AtomicFile, error) {
	a := &AtomicFile{Buffer: &Buffer{}, path: path, perm: 0o644}

	info, err := os.Stat(path)
	switch {
	case err == nil:
		if info.IsDir() {
			return nil, fmt.Errorf("opening changelog file: %s is a directory", path)
		}
		a.perm = info.Mode().Perm()
	case !errors.Is(err, os.ErrNotExist):
		return nil, fmt.Errorf("opening changelog file: %w", err)
	}

	if err == nil {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading changelog file: %w", err)
		}
		a.Buffer = NewBuffer(data)
		a.original = data
	}

	return a, nil
}

// Path returns the target file path.
func (a *AtomicFile) Path() string {
	return a.path
}

// Changed reports whether the buffer differs from the file as loaded or
// last committed.
func (a *AtomicFile) Changed() bool {
	return !bytes.Equal(a.data, a.original)
}

// Commit replaces the target with the buffer content. It does nothing if
// the content is unchanged.
func (a *AtomicFile) Commit() error {
	if !a.Changed() {
		return nil
	}

	dir, base := filepath.Split(a.path)
	if dir == "" {
		dir = "."
	}

	tmp, err := os.CreateTemp(dir, "."+base+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp changelog file: %w", err)
	}
	tmpPath := tmp.Name()

	if err := writeAndClose(tmp, a.data, a.perm); err != nil {
		os.Remove(tmpPath) // Best effort cleanup
		return err
	}

	if err := os.Rename(tmpPath, a.path); err != nil {
		os.Remove(tmpPath) // Best effort cleanup
		return fmt.Errorf("renaming temp changelog file: %w", err)
	}

	a.original = a.Bytes()
	return nil
}

// Close discards uncommitted changes.
func (a *AtomicFile) Close() error {
	return nil
}

func writeAndClose(f *os.File, data []byte, perm os.FileMode) error {
	if _, err := f.Write(data); err != nil {
		f.Close()
		return fmt.Errorf("writing temp changelog file: %w", err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return fmt.Errorf("syncing temp changelog file: %w", err)
	}
	if err := f.Chmod(perm); err != nil {
		f.Close()
		return fmt.Errorf("setting temp changelog file mode: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing temp changelog file: %w", err)
	}
	return nil
}
