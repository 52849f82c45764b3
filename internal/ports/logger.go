package ports

type LogLevel int

const (
	LogLevelDebug LogLevel = iota
	LogLevelInfo
	LogLevelWarn
	LogLevelError
)

// Logger is the structured event sink used by the core. Key/value pairs
// follow the message, e.g. Info("applied", "file", path).
type Logger interface {
	Debug(msg string, keysAndValues ...any)
	Info(msg string, keysAndValues ...any)
	Warn(msg string, keysAndValues ...any)
	Error(msg string, keysAndValues ...any)
	SetLevel(level LogLevel)
	// AddFileOutput additionally writes every event, at all levels, as JSON to path.
	AddFileOutput(path string) error
	Sync() error
	// Close flushes and releases the outputs added by AddFileOutput.
	Close() error
}
