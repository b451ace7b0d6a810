// Package logging builds the slog loggers used by the CLI and the TUI.
// CLI commands log to stderr; the TUI logs to a file so frames stay intact.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
)

func level(debug bool) slog.Level {
	if debug {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}

// NewCLI returns a text logger writing to stderr.
func NewCLI(debug bool) *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level(debug)}))
}

// NewFile returns a text logger appending to path, plus a closer for the
// underlying file.
func NewFile(path string, debug bool) (*slog.Logger, io.Closer, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: level(debug)})), f, nil
}
