// Package logger builds the zerolog logger used across sitemedic.
package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Options control how the logger is constructed.
type Options struct {
	// Verbose lowers the level to debug.
	Verbose bool
	// JSON disables the human console writer and emits raw JSON lines.
	JSON bool
	// Writer overrides the destination; defaults to stderr.
	Writer io.Writer
}

// New returns a configured logger. Diagnostics always go to stderr so
// stdout stays reserved for results.
func New(opts Options) zerolog.Logger {
	w := opts.Writer
	if w == nil {
		w = os.Stderr
	}
	if !opts.JSON {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
	}

	level := zerolog.InfoLevel
	if opts.Verbose {
		level = zerolog.DebugLevel
	}

	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}

// Nop returns a disabled logger for tests and library callers that do
// not want log output.
func Nop() zerolog.Logger {
	return zerolog.Nop()
}
