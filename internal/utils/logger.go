package utils

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// DefaultLogLevel is used until the --log-level flag is resolved.
const DefaultLogLevel = "info"

// NewApplicationLogger constructs a zap logger configured for human-readable console output.
// The level is shared so the CLI can adjust verbosity after flags are parsed.
func NewApplicationLogger(level zap.AtomicLevel) (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	config.Level = level
	config.Encoding = "console"
	config.DisableCaller = true
	config.DisableStacktrace = true
	config.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	config.EncoderConfig.TimeKey = ""
	config.EncoderConfig.NameKey = ""
	config.EncoderConfig.CallerKey = ""
	config.EncoderConfig.MessageKey = "message"
	config.EncoderConfig.StacktraceKey = ""
	return config.Build()
}
