// Package store provides the storage handles historian rewrites changelogs
// through: an in-memory Buffer, a direct read-write file, and an atomic file
// that buffers edits in memory and replaces the target on Commit.
package store

import (
	"errors"
	"io"
)

var errNegativePosition = errors.New("negative position")

// Buffer is an in-memory read/write/seek/truncate handle. Its zero value is
// an empty buffer positioned at 0.
type Buffer struct {
	data []byte
	pos  int64
}

// NewBuffer returns a Buffer holding a copy of data, positioned at 0.
func NewBuffer(data []byte) *Buffer {
	return &Buffer{data: append([]byte(nil), data...)}
}

// NewBufferString returns a Buffer holding s.
func NewBufferString(s string) *Buffer {
	return NewBuffer([]byte(s))
}

// Read implements io.Reader from the current position.
func (b *Buffer) Read(p []byte) (int, error) {
	if b.pos >= int64(len(b.data)) {
		return 0, io.EOF
	}
	n := copy(p, b.data[b.pos:])
	b.pos += int64(n)
	return n, nil
}

// Write implements io.Writer at the current position, overwriting existing
// bytes and growing the buffer as needed.
func (b *Buffer) Write(p []byte) (int, error) {
	end := b.pos + int64(len(p))
	if end > int64(len(b.data)) {
		b.grow(end)
	}
	n := copy(b.data[b.pos:end], p)
	b.pos = end
	return n, nil
}

// WriteString writes s at the current position.
func (b *Buffer) WriteString(s string) (int, error) {
	return b.Write([]byte(s))
}

// Seek implements io.Seeker. Seeking past the end is allowed; a later Write
// fills the gap with zero bytes, as a file would.
func (b *Buffer) Seek(offset int64, whence int) (int64, error) {
	var abs int64
	switch whence {
	case io.SeekStart:
		abs = offset
	case io.SeekCurrent:
		abs = b.pos + offset
	case io.SeekEnd:
		abs = int64(len(b.data)) + offset
	default:
		return 0, errors.New("invalid whence")
	}
	if abs < 0 {
		return 0, errNegativePosition
	}
	b.pos = abs
	return abs, nil
}

// Truncate changes the size of the buffer without moving the position.
func (b *Buffer) Truncate(size int64) error {
	if size < 0 {
		return errNegativePosition
	}
	if size <= int64(len(b.data)) {
		b.data = b.data[:size]
		return nil
	}
	b.grow(size)
	return nil
}

// Bytes returns a copy of the buffer content.
func (b *Buffer) Bytes() []byte {
	return append([]byte(nil), b.data...)
}

// String returns the buffer content as a string.
func (b *Buffer) String() string {
	return string(b.data)
}

// Len returns the content size in bytes.
func (b *Buffer) Len() int {
	return len(b.data)
}

func (b *Buffer) grow(size int64) {
	if size <= int64(cap(b.data)) {
		old := len(b.data)
		b.data = b.data[:size]
		clear(b.data[old:])
		return
	}
	grown := make([]byte, size, size*2)
	copy(grown, b.data)
	b.data = grown
}
