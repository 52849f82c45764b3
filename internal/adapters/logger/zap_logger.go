package logger

import (
	"errors"
	"fmt"
	"os"

	"smalipatch/internal/ports"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ZapLogger implements ports.Logger on top of a zap logger writing
// human readable lines to stderr.
type ZapLogger struct {
	level   zap.AtomicLevel
	console zapcore.Core
	logger  *zap.Logger
	files   []*os.File
}

func ProvideZapLogger() *ZapLogger {
	level := zap.NewAtomicLevelAt(zapcore.InfoLevel)

	encoderConfig := zap.NewDevelopmentEncoderConfig()
	encoderConfig.TimeKey = ""
	encoderConfig.CallerKey = ""
	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderConfig),
		zapcore.Lock(os.Stderr),
		level,
	)

	return newZapLogger(core, level)
}

func newZapLogger(core zapcore.Core, level zap.AtomicLevel) *ZapLogger {
	return &ZapLogger{
		level:   level,
		console: core,
		logger:  zap.New(core),
	}
}

func (l *ZapLogger) Debug(msg string, keysAndValues ...any) {
	l.logger.Sugar().Debugw(msg, keysAndValues...)
}

func (l *ZapLogger) Info(msg string, keysAndValues ...any) {
	l.logger.Sugar().Infow(msg, keysAndValues...)
}

func (l *ZapLogger) Warn(msg string, keysAndValues ...any) {
	l.logger.Sugar().Warnw(msg, keysAndValues...)
}

func (l *ZapLogger) Error(msg string, keysAndValues ...any) {
	l.logger.Sugar().Errorw(msg, keysAndValues...)
}

func (l *ZapLogger) SetLevel(level ports.LogLevel) {
	l.level.SetLevel(toZapLevel(level))
}

func (l *ZapLogger) AddFileOutput(path string) error {
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}

	fileCore := zapcore.NewCore(
		zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
		zapcore.AddSync(file),
		zapcore.DebugLevel,
	)
	l.logger = zap.New(zapcore.NewTee(l.logger.Core(), fileCore))
	l.files = append(l.files, file)
	return nil
}

func (l *ZapLogger) Sync() error {
	// syncing stderr fails on some terminals, only the log files matter here
	_ = l.logger.Sync()
	for _, file := range l.files {
		if err := file.Sync(); err != nil {
			return fmt.Errorf("failed to sync log file: %w", err)
		}
	}
	return nil
}

// Close flushes and closes the log files. Later events only reach the console.
func (l *ZapLogger) Close() error {
	syncErr := l.Sync()
	var closeErr error
	for _, file := range l.files {
		if err := file.Close(); err != nil && closeErr == nil {
			closeErr = fmt.Errorf("failed to close log file: %w", err)
		}
	}
	l.files = nil
	l.logger = zap.New(l.console)
	return errors.Join(syncErr, closeErr)
}

func toZapLevel(level ports.LogLevel) zapcore.Level {
	switch level {
	case ports.LogLevelDebug:
		return zapcore.DebugLevel
	case ports.LogLevelWarn:
		return zapcore.WarnLevel
	case ports.LogLevelError:
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}
