// zaplogger_logger.go
// Ref: https://betterstack.com/community/guides/logging/go/zap/#logging-errors-with-zap
package logger

import (
	"errors"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger interface with structured logging capabilities at various levels.
type Logger interface {
	GetLogLevel() LogLevel
	SetLevel(level LogLevel)
	With(fields ...zapcore.Field) Logger
	Debug(msg string, fields ...zapcore.Field)
	Info(msg string, fields ...zapcore.Field)
	Warn(msg string, fields ...zapcore.Field)
	Error(msg string, fields ...zapcore.Field) error
	Panic(msg string, fields ...zapcore.Field)
	Fatal(msg string, fields ...zapcore.Field)
	Sync() error

	LogRequestStart(event string, requestID string, method string, url string, headers map[string][]string)
	LogRequestEnd(event string, method string, url string, statusCode int, duration time.Duration)
	LogError(event string, method string, url string, statusCode int, serverStatusMessage string, err error, rawResponse string)
	LogAuthTokenError(event string, method string, url string, statusCode int, err error)
	LogRetryAttempt(event string, method string, url string, attempt int, reason string, err error)
}

// defaultLogger wraps a *zap.Logger and drops entries below logLevel before they reach zap.
// LogLevelNone silences everything.
type defaultLogger struct {
	logger   *zap.Logger
	logLevel LogLevel
}

// NewLoggerFromZap wraps an existing *zap.Logger. Level gating is applied on top of whatever the zap core allows.
func NewLoggerFromZap(zl *zap.Logger, level LogLevel) Logger {
	return &defaultLogger{logger: zl, logLevel: level}
}

// NewNopLogger returns a Logger that discards everything.
func NewNopLogger() Logger {
	return &defaultLogger{logger: zap.NewNop(), logLevel: LogLevelNone}
}

func (d *defaultLogger) GetLogLevel() LogLevel {
	return d.logLevel
}

func (d *defaultLogger) SetLevel(level LogLevel) {
	d.logLevel = level
}

// With returns a child logger that adds fields to every entry and shares the parent's level.
func (d *defaultLogger) With(fields ...zapcore.Field) Logger {
	return &defaultLogger{
		logger:   d.logger.With(fields...),
		logLevel: d.logLevel,
	}
}

// enabled reports whether an entry at level passes the gate.
func (d *defaultLogger) enabled(level LogLevel) bool {
	return d.logLevel <= level
}

func (d *defaultLogger) Debug(msg string, fields ...zapcore.Field) {
	if d.enabled(LogLevelDebug) {
		d.logger.Debug(msg, fields...)
	}
}

func (d *defaultLogger) Info(msg string, fields ...zapcore.Field) {
	if d.enabled(LogLevelInfo) {
		d.logger.Info(msg, fields...)
	}
}

func (d *defaultLogger) Warn(msg string, fields ...zapcore.Field) {
	if d.enabled(LogLevelWarn) {
		d.logger.Warn(msg, fields...)
	}
}

// Error logs msg and also returns it as an error, so a caller can log and return in one statement:
//
//	return log.Error("Failed to decode token response", zap.Error(err))
func (d *defaultLogger) Error(msg string, fields ...zapcore.Field) error {
	if d.enabled(LogLevelError) {
		d.logger.Error(msg, fields...)
	}
	return errors.New(msg)
}

// Panic logs and then panics. The panic happens even when the level filters the entry out.
func (d *defaultLogger) Panic(msg string, fields ...zapcore.Field) {
	if d.enabled(LogLevelPanic) {
		d.logger.Panic(msg, fields...)
	}
	panic(msg)
}

// Fatal logs and then calls os.Exit(1) through zap. Filtered entries do not exit.
func (d *defaultLogger) Fatal(msg string, fields ...zapcore.Field) {
	if d.enabled(LogLevelFatal) {
		d.logger.Fatal(msg, fields...)
	}
}

// Sync flushes buffered entries. Syncing a console sink that does not support it (stderr on
// most terminals) returns EINVAL or ENOTTY; those are ignored.
func (d *defaultLogger) Sync() error {
	err := d.logger.Sync()
	if err != nil && (errors.Is(err, syscall.EINVAL) || errors.Is(err, syscall.ENOTTY)) {
		return nil
	}
	return err
}
