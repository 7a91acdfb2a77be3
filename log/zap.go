package log

import (
	"github.com/bronystylecrazy/ultrawire/build"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func NewZapLogger(cfg Config) (*zap.Logger, error) {
	if build.IsDevelopment() {
		zapConfig := zap.NewDevelopmentConfig()
		zapConfig.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapConfig.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		zapConfig.Level = zap.NewAtomicLevelAt(levelOf(cfg, zapcore.DebugLevel))
		return zapConfig.Build()
	}

	zapConfig := zap.NewProductionConfig()
	zapConfig.Level = zap.NewAtomicLevelAt(levelOf(cfg, zapcore.InfoLevel))
	return zapConfig.Build()
}

func levelOf(cfg Config, fallback zapcore.Level) zapcore.Level {
	switch cfg.Level {
	case "debug":
		return zapcore.DebugLevel
	case "info":
		return zapcore.InfoLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	case "fatal":
		return zapcore.FatalLevel
	default:
		return fallback
	}
}

// NewEventLogger routes fx lifecycle events to zap, at debug level so CLI output
// stays quiet.
func NewEventLogger(log *zap.Logger) fxevent.Logger {
	l := &fxevent.ZapLogger{Logger: log}
	l.UseLogLevel(zapcore.DebugLevel)
	return l
}
