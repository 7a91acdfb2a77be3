package log

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestNewZapLoggerLevel(t *testing.T) {
	logger, err := NewZapLogger(Config{Level: "warn"})
	if err != nil {
		t.Fatalf("NewZapLogger: %v", err)
	}
	if logger.Core().Enabled(zapcore.InfoLevel) {
		t.Fatal("info must be disabled at warn level")
	}
	if !logger.Core().Enabled(zapcore.WarnLevel) {
		t.Fatal("warn must be enabled at warn level")
	}
}

func TestLevelOfFallback(t *testing.T) {
	if got := levelOf(Config{}, zapcore.InfoLevel); got != zapcore.InfoLevel {
		t.Fatalf("unexpected fallback level: %v", got)
	}
	if got := levelOf(Config{Level: "bogus"}, zapcore.DebugLevel); got != zapcore.DebugLevel {
		t.Fatalf("unexpected fallback level: %v", got)
	}
}
