package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"smalipatch/internal/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newObservedLogger() (*ZapLogger, *observer.ObservedLogs) {
	level := zap.NewAtomicLevelAt(zapcore.InfoLevel)
	core, logs := observer.New(level)
	return newZapLogger(core, level), logs
}

func TestZapLogger_WritesKeyValueFields(t *testing.T) {
	sut, logs := newObservedLogger()

	sut.Info("patch applied", "file", "smali/a/B.smali", "index", 3)

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "patch applied", entry.Message)
	assert.Equal(t, zapcore.InfoLevel, entry.Level)
	assert.Equal(t, "smali/a/B.smali", entry.ContextMap()["file"])
	assert.Equal(t, int64(3), entry.ContextMap()["index"])
}

func TestZapLogger_DebugIsFilteredAtDefaultLevel(t *testing.T) {
	sut, logs := newObservedLogger()

	sut.Debug("fingerprint search", "start", 0)
	sut.Warn("parse warning", "line", 7)

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, zapcore.WarnLevel, logs.All()[0].Level)
}

func TestZapLogger_SetLevel(t *testing.T) {
	tests := []struct {
		name     string
		level    ports.LogLevel
		expected int
	}{
		{"debug shows everything", ports.LogLevelDebug, 4},
		{"info hides debug", ports.LogLevelInfo, 3},
		{"warn hides info", ports.LogLevelWarn, 2},
		{"error shows only errors", ports.LogLevelError, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sut, logs := newObservedLogger()
			sut.SetLevel(tt.level)

			sut.Debug("d")
			sut.Info("i")
			sut.Warn("w")
			sut.Error("e")

			assert.Equal(t, tt.expected, logs.Len())
		})
	}
}

func TestZapLogger_AddFileOutputWritesJsonAtAllLevels(t *testing.T) {
	sut, logs := newObservedLogger()
	path := filepath.Join(t.TempDir(), "smalipatch.log")

	require.NoError(t, sut.AddFileOutput(path))
	sut.Debug("only in file", "action", "PATCH")
	sut.Info("everywhere")
	require.NoError(t, sut.Sync())

	assert.Equal(t, 1, logs.Len())
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], `"msg":"only in file"`)
	assert.Contains(t, lines[0], `"action":"PATCH"`)
	assert.Contains(t, lines[1], `"msg":"everywhere"`)
}

func TestZapLogger_AddFileOutputFailsForMissingDirectory(t *testing.T) {
	sut, _ := newObservedLogger()

	err := sut.AddFileOutput(filepath.Join(t.TempDir(), "missing", "smalipatch.log"))

	assert.Error(t, err)
}

func TestZapLogger_CloseReleasesLogFiles(t *testing.T) {
	sut, logs := newObservedLogger()
	path := filepath.Join(t.TempDir(), "smalipatch.log")
	require.NoError(t, sut.AddFileOutput(path))
	sut.Info("before close")

	require.NoError(t, sut.Close())
	sut.Info("after close")

	assert.Empty(t, sut.files)
	assert.Equal(t, 2, logs.Len())
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "before close")
	assert.NotContains(t, string(data), "after close")
	assert.NoError(t, sut.Close())
}
