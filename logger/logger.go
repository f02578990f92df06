// Package logger builds the zap loggers used by typeweaver.
//
// There is no package-level logger. Commands call New once and pass the
// result down; library packages accept a *zap.SugaredLogger and never
// construct their own.
package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options controls logger construction.
type Options struct {
	// Verbosity is the -v flag count, see VerbosityToLevel
	Verbosity int

	// JSON selects zap's production JSON encoder instead of the console encoder
	JSON bool

	// Color enables ANSI colors in console output
	Color bool

	// Output receives log entries. Defaults to stderr.
	Output zapcore.WriteSyncer
}

// New creates a sugared logger from opts.
func New(opts Options) *zap.SugaredLogger {
	out := opts.Output
	if out == nil {
		out = zapcore.Lock(os.Stderr)
	}
	level := zap.NewAtomicLevelAt(VerbosityToLevel(opts.Verbosity))

	var encoder zapcore.Encoder
	if opts.JSON {
		// JSON structured output for machine consumption
		encoder = zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	} else {
		// Human-readable console output with minimal, calm formatting
		encoder = newConsoleEncoder(opts.Color)
	}

	return zap.New(zapcore.NewCore(encoder, out, level)).Sugar()
}

// Nop returns a logger that discards everything.
func Nop() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}
