package logging

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewWithWriter_Levels(t *testing.T) {
	tests := map[string]struct {
		level     string
		wantDebug bool
		wantWarn  bool
	}{
		"debug": {level: "debug", wantDebug: true, wantWarn: true},
		"warn":  {level: "warn", wantDebug: false, wantWarn: true},
		"error": {level: "error", wantDebug: false, wantWarn: false},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			var buf bytes.Buffer
			logger, err := NewWithWriter(tt.level, &buf)
			require.NoError(t, err)

			logger.Debug("parsed changelog", zap.Int("lines", 3))
			logger.Warn("legacy config")
			require.NoError(t, logger.Sync())

			out := buf.String()
			assert.Equal(t, tt.wantDebug, bytes.Contains(buf.Bytes(), []byte("parsed changelog")), out)
			assert.Equal(t, tt.wantWarn, bytes.Contains(buf.Bytes(), []byte("legacy config")), out)
		})
	}
}

func TestNewWithWriter_Format(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewWithWriter("info", &buf)
	require.NoError(t, err)

	logger.Info("rewrote changelog", zap.String("path", "History.txt"))

	out := buf.String()
	assert.Contains(t, out, "INFO")
	assert.Contains(t, out, "historian")
	assert.Contains(t, out, `{"path": "History.txt"}`)
}

func TestNew_InvalidLevel(t *testing.T) {
	_, err := New("chatty")
	assert.Error(t, err)
}
