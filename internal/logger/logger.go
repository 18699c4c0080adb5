// Package logger configures the process-wide structured logger.
// Logs go to stderr so command output on stdout stays clean; the
// --verbose flag lowers the level to debug.
package logger

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

var (
	mu   sync.RWMutex
	base = New(os.Stderr, false)
)

// New builds a zerolog logger writing human-readable output to w.
func New(w io.Writer, verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}

	out := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.TimeOnly,
	}
	return zerolog.New(out).With().Timestamp().Logger().Level(level)
}

// Setup replaces the process-wide logger. Called once from the CLI
// after flags are parsed.
func Setup(verbose bool) {
	mu.Lock()
	defer mu.Unlock()
	base = New(os.Stderr, verbose)
}

// SetOutput redirects the process-wide logger. Useful for testing.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	base = New(w, true)
}

// L returns the process-wide logger.
func L() zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return base
}
