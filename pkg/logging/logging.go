// Package logging builds the diagnostic logger used by LogHunter.
//
// Diagnostics (load warnings, debug traces) go to stderr so they never mix
// with command output on stdout.
package logging

import (
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options configures a logger.
type Options struct {
	// Level is the minimum level written.
	Level zapcore.Level

	// Writer receives encoded entries. Defaults to os.Stderr.
	Writer io.Writer
}

// New creates a console-encoded logger.
func New(opts Options) *zap.Logger {
	w := opts.Writer
	if w == nil {
		w = os.Stderr
	}

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(EncoderConfig()),
		zapcore.Lock(zapcore.AddSync(w)),
		zap.NewAtomicLevelAt(opts.Level),
	)
	return zap.New(core)
}

// EncoderConfig returns the encoder settings for console output: ISO8601
// time, upper-case level, no caller or stacktrace.
func EncoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		TimeKey:          "time",
		LevelKey:         "level",
		NameKey:          "logger",
		MessageKey:       "msg",
		LineEnding:       zapcore.DefaultLineEnding,
		EncodeLevel:      zapcore.CapitalLevelEncoder,
		EncodeTime:       zapcore.ISO8601TimeEncoder,
		EncodeDuration:   zapcore.StringDurationEncoder,
		EncodeName:       zapcore.FullNameEncoder,
		ConsoleSeparator: "\t",
	}
}
