// mocklogger/mocklogger.go
package mocklogger

import (
	"errors"
	"time"

	"github.com/deploymenttheory/go-api-offers-client/logger"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

// MockLogger is a testify mock satisfying logger.Logger.
// Expectations are optional: unexpected calls are swallowed unless Strict is set,
// so tests only declare the log events they care about.
type MockLogger struct {
	mock.Mock
	logLevel logger.LogLevel
	Strict   bool
}

// NewMockLogger creates a new instance of MockLogger.
func NewMockLogger() *MockLogger {
	return &MockLogger{logLevel: logger.LogLevelDebug}
}

// Ensure MockLogger implements the logger.Logger interface from the logger package
var _ logger.Logger = (*MockLogger)(nil)

// record forwards the call to the mock only if an expectation exists for method.
func (m *MockLogger) record(method string, args ...interface{}) mock.Arguments {
	if !m.Strict && !m.expects(method) {
		return nil
	}
	return m.MethodCalled(method, args...)
}

func (m *MockLogger) expects(method string) bool {
	for _, call := range m.ExpectedCalls {
		if call.Method == method {
			return true
		}
	}
	return false
}

// GetLogLevel returns the level set with SetLevel.
func (m *MockLogger) GetLogLevel() logger.LogLevel {
	return m.logLevel
}

// SetLevel sets the logging level of the MockLogger.
func (m *MockLogger) SetLevel(level logger.LogLevel) {
	m.logLevel = level
	m.record("SetLevel", level)
}

// With returns the same mock so expectations keep matching on derived loggers.
func (m *MockLogger) With(fields ...zap.Field) logger.Logger {
	m.record("With", fields)
	return m
}

// Debug logs a message at the Debug level.
func (m *MockLogger) Debug(msg string, fields ...zap.Field) {
	m.record("Debug", msg, fields)
}

// Info logs a message at the Info level.
func (m *MockLogger) Info(msg string, fields ...zap.Field) {
	m.record("Info", msg, fields)
}

// Warn logs a message at the Warn level.
func (m *MockLogger) Warn(msg string, fields ...zap.Field) {
	m.record("Warn", msg, fields)
}

// Error logs a message at the Error level and returns an error carrying msg.
func (m *MockLogger) Error(msg string, fields ...zap.Field) error {
	m.record("Error", msg, fields)
	return errors.New(msg)
}

// Panic records the call and panics, mirroring the real logger.
func (m *MockLogger) Panic(msg string, fields ...zap.Field) {
	m.record("Panic", msg, fields)
	panic(msg)
}

// Fatal records the call. It does not exit.
func (m *MockLogger) Fatal(msg string, fields ...zap.Field) {
	m.record("Fatal", msg, fields)
}

// LogRequestStart logs the start of an HTTP request.
func (m *MockLogger) LogRequestStart(event string, requestID string, method string, url string, headers map[string][]string) {
	m.record("LogRequestStart", event, requestID, method, url, headers)
}

// LogRequestEnd logs the end of an HTTP request.
func (m *MockLogger) LogRequestEnd(event string, method string, url string, statusCode int, duration time.Duration) {
	m.record("LogRequestEnd", event, method, url, statusCode, duration)
}

// LogError logs an error event.
func (m *MockLogger) LogError(event string, method string, url string, statusCode int, serverStatusMessage string, err error, rawResponse string) {
	m.record("LogError", event, method, url, statusCode, serverStatusMessage, err, rawResponse)
}

// LogAuthTokenError logs a failed token exchange.
func (m *MockLogger) LogAuthTokenError(event string, method string, url string, statusCode int, err error) {
	m.record("LogAuthTokenError", event, method, url, statusCode, err)
}

// LogRetryAttempt logs a retry attempt.
func (m *MockLogger) LogRetryAttempt(event string, method string, url string, attempt int, reason string, err error) {
	m.record("LogRetryAttempt", event, method, url, attempt, reason, err)
}

// Sync returns the error configured with On("Sync"), or nil.
func (m *MockLogger) Sync() error {
	args := m.record("Sync")
	if len(args) > 0 {
		return args.Error(0)
	}
	return nil
}
