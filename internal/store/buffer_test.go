package store

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuffer_ReadAll(t *testing.T) {
	b := NewBufferString("hello\nworld\n")

	data, err := io.ReadAll(b)
	require.NoError(t, err)
	assert.Equal(t, "hello\nworld\n", string(data))

	n, err := b.Read(make([]byte, 4))
	assert.Equal(t, 0, n)
	assert.ErrorIs(t, err, io.EOF)
}

func TestBuffer_OverwriteAndTruncate(t *testing.T) {
	b := NewBufferString("0123456789")

	_, err := b.Seek(0, io.SeekStart)
	require.NoError(t, err)
	_, err = b.WriteString("abc")
	require.NoError(t, err)

	pos, err := b.Seek(0, io.SeekCurrent)
	require.NoError(t, err)
	assert.Equal(t, int64(3), pos)
	assert.Equal(t, "abc3456789", b.String())

	require.NoError(t, b.Truncate(pos))
	assert.Equal(t, "abc", b.String())

	// Truncate does not move the position
	pos, err = b.Seek(0, io.SeekCurrent)
	require.NoError(t, err)
	assert.Equal(t, int64(3), pos)
}

func TestBuffer_Seek(t *testing.T) {
	tests := map[string]struct {
		offset  int64
		whence  int
		want    int64
		wantErr bool
	}{
		"start":            {offset: 2, whence: io.SeekStart, want: 2},
		"current":          {offset: 1, whence: io.SeekCurrent, want: 1},
		"end":              {offset: -1, whence: io.SeekEnd, want: 3},
		"past end":         {offset: 10, whence: io.SeekStart, want: 10},
		"negative":         {offset: -1, whence: io.SeekStart, wantErr: true},
		"invalid whence":   {offset: 0, whence: 42, wantErr: true},
		"before start end": {offset: -5, whence: io.SeekEnd, wantErr: true},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			b := NewBufferString("abcd")
			got, err := b.Seek(tt.offset, tt.whence)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBuffer_WritePastEndFillsGap(t *testing.T) {
	b := NewBufferString("ab")

	_, err := b.Seek(4, io.SeekStart)
	require.NoError(t, err)
	_, err = b.WriteString("z")
	require.NoError(t, err)

	assert.Equal(t, []byte{'a', 'b', 0, 0, 'z'}, b.Bytes())
}

func TestBuffer_TruncateGrows(t *testing.T) {
	b := NewBufferString("ab")
	require.NoError(t, b.Truncate(4))
	assert.Equal(t, []byte{'a', 'b', 0, 0}, b.Bytes())
	assert.Error(t, b.Truncate(-1))
}

func TestBuffer_BytesIsCopy(t *testing.T) {
	b := NewBufferString("abc")
	data := b.Bytes()
	data[0] = 'x'
	assert.Equal(t, "abc", b.String())
}
