package testutil

import (
	"sync"

	"smalipatch/internal/ports"
)

// LogEntry is a single event captured by RecordingLogger.
type LogEntry struct {
	Level         ports.LogLevel
	Message       string
	KeysAndValues []any
}

// Field returns the value logged under key, or nil.
func (e LogEntry) Field(key string) any {
	for i := 0; i+1 < len(e.KeysAndValues); i += 2 {
		if e.KeysAndValues[i] == key {
			return e.KeysAndValues[i+1]
		}
	}
	return nil
}

// RecordingLogger keeps every event in memory regardless of level.
type RecordingLogger struct {
	mu      sync.Mutex
	Level   ports.LogLevel
	Entries []LogEntry
	Files   []string
	Closed  bool
}

func NewRecordingLogger() *RecordingLogger {
	return &RecordingLogger{Level: ports.LogLevelInfo}
}

func (l *RecordingLogger) record(level ports.LogLevel, msg string, keysAndValues []any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Entries = append(l.Entries, LogEntry{Level: level, Message: msg, KeysAndValues: keysAndValues})
}

func (l *RecordingLogger) Debug(msg string, keysAndValues ...any) {
	l.record(ports.LogLevelDebug, msg, keysAndValues)
}

func (l *RecordingLogger) Info(msg string, keysAndValues ...any) {
	l.record(ports.LogLevelInfo, msg, keysAndValues)
}

func (l *RecordingLogger) Warn(msg string, keysAndValues ...any) {
	l.record(ports.LogLevelWarn, msg, keysAndValues)
}

func (l *RecordingLogger) Error(msg string, keysAndValues ...any) {
	l.record(ports.LogLevelError, msg, keysAndValues)
}

func (l *RecordingLogger) SetLevel(level ports.LogLevel) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Level = level
}

func (l *RecordingLogger) AddFileOutput(path string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Files = append(l.Files, path)
	return nil
}

func (l *RecordingLogger) Sync() error {
	return nil
}

func (l *RecordingLogger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Closed = true
	return nil
}

// Messages returns the logged messages at level, in order.
func (l *RecordingLogger) Messages(level ports.LogLevel) []LogEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	var entries []LogEntry
	for _, entry := range l.Entries {
		if entry.Level == level {
			entries = append(entries, entry)
		}
	}
	return entries
}
