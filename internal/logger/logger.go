// Package logger provides verbose logging for the expense tracker.
// When verbose mode is enabled via the --verbose flag, debug messages
// are printed to stderr. Nothing is ever written to stdout, which the
// stdio MCP transport owns.
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
)

// quietLevel is above every level slog emits, silencing the bridge.
const quietLevel = slog.LevelError + 4

var (
	mu      sync.RWMutex
	verbose bool
	output  io.Writer = os.Stderr

	slogLevel = func() *slog.LevelVar {
		v := new(slog.LevelVar)
		v.Set(quietLevel)
		return v
	}()
)

// SetVerbose enables or disables verbose logging.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
	if v {
		slogLevel.Set(slog.LevelDebug)
	} else {
		slogLevel.Set(quietLevel)
	}
}

// IsVerbose returns true if verbose mode is enabled.
func IsVerbose() bool {
	mu.RLock()
	defer mu.RUnlock()
	return verbose
}

// SetOutput sets the output writer for verbose logs.
// Defaults to os.Stderr. Useful for testing.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
}

// Debug prints a message if verbose mode is enabled.
func Debug(format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	if verbose {
		fmt.Fprintf(output, "[DEBUG] "+format+"\n", args...)
	}
}

// Section prints a section header if verbose mode is enabled.
func Section(name string) {
	mu.RLock()
	defer mu.RUnlock()
	if verbose {
		fmt.Fprintf(output, "\n=== %s ===\n", name)
	}
}

// Info prints an informational message if verbose mode is enabled.
func Info(format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	if verbose {
		fmt.Fprintf(output, "[INFO] "+format+"\n", args...)
	}
}

// Warn prints a warning message if verbose mode is enabled.
func Warn(format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	if verbose {
		fmt.Fprintf(output, "[WARN] "+format+"\n", args...)
	}
}

// Slog returns a structured logger for libraries that take a *slog.Logger.
// It shares the verbose switch and output writer with the package functions.
func Slog() *slog.Logger {
	return slog.New(slog.NewTextHandler(writerFunc(write), &slog.HandlerOptions{Level: slogLevel}))
}

type writerFunc func(p []byte) (int, error)

func (f writerFunc) Write(p []byte) (int, error) {
	return f(p)
}

func write(p []byte) (int, error) {
	mu.RLock()
	defer mu.RUnlock()
	return output.Write(p)
}
