package logger

import (
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var global = zap.NewNop()

// L returns the process-wide logger. Defaults to a no-op logger until
// ReplaceGlobal is called at startup.
func L() *zap.Logger {
	return global
}

// ReplaceGlobal installs l as the process-wide logger and syncs zap's
// own globals so zap.L()/zap.S() agree with it.
func ReplaceGlobal(l *zap.Logger) {
	global = l
	zap.ReplaceGlobals(l)
}

// Build constructs a zap logger from the configured level and encoding.
// Unknown levels fall back to info instead of failing startup.
func Build(level, encoding string) (*zap.Logger, error) {
	atomicLevel := zap.NewAtomicLevel()
	if err := atomicLevel.UnmarshalText([]byte(strings.ToLower(level))); err != nil {
		atomicLevel = zap.NewAtomicLevelAt(zap.InfoLevel)
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = atomicLevel
	cfg.Encoding = "json"
	if strings.ToLower(encoding) == "console" {
		cfg.Encoding = "console"
		cfg.EncoderConfig = zap.NewDevelopmentEncoderConfig()
	}
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.RFC3339NanoTimeEncoder

	return cfg.Build(zap.AddCaller())
}
