// zaplogger_log_levels_test.go
package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zapcore"
)

// TestParseLogLevelFromString tests the conversion from string to LogLevel
func TestParseLogLevelFromString(t *testing.T) {
	tests := []struct {
		levelStr      string
		expectedLevel LogLevel
	}{
		{"LogLevelDebug", LogLevelDebug},
		{"LogLevelInfo", LogLevelInfo},
		{"LogLevelWarn", LogLevelWarn},
		{"LogLevelError", LogLevelError},
		{"LogLevelDPanic", LogLevelDPanic},
		{"LogLevelPanic", LogLevelPanic},
		{"LogLevelFatal", LogLevelFatal},
		{"Invalid", LogLevelNone},
	}

	for _, tt := range tests {
		t.Run(tt.levelStr, func(t *testing.T) {
			assert.Equal(t, tt.expectedLevel, ParseLogLevelFromString(tt.levelStr))
			assert.Equal(t, tt.expectedLevel != LogLevelNone, IsValidLogLevelString(tt.levelStr))
		})
	}
}

func TestConvertToZapLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, convertToZapLevel(LogLevelDebug))
	assert.Equal(t, zapcore.WarnLevel, convertToZapLevel(LogLevelWarn))
	assert.Equal(t, zapcore.FatalLevel, convertToZapLevel(LogLevelFatal))
	assert.Equal(t, zapcore.InfoLevel, convertToZapLevel(LogLevelNone))
}
