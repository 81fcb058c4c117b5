// Package logging builds the zerolog loggers songmatch writes to.
//
// The TUI owns the terminal, so the interactive client logs JSON lines to a
// file that the Activity view tails. One-shot commands may log to stderr
// through a console writer instead.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
)

// ParseLevel maps a level name to a zerolog level, defaulting to info.
func ParseLevel(level string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}

// New returns a JSON logger writing to w.
func New(w io.Writer, level string) zerolog.Logger {
	return zerolog.New(w).With().Timestamp().Logger().Level(ParseLevel(level))
}

// NewConsole returns a human-readable logger writing to w.
func NewConsole(w io.Writer, level string) zerolog.Logger {
	return New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}, level)
}

// OpenFile opens (or creates) the log file at path, appending to it. The
// returned closer releases the file.
func OpenFile(path, level string) (zerolog.Logger, io.Closer, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("create log dir: %w", err)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("open log file: %w", err)
	}
	return New(file, level), file, nil
}
