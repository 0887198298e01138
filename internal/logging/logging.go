// Package logging builds the zerolog logger. The TUI owns the terminal, so
// logs only ever go to a file.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
)

// DebugEnv names a file that receives debug-level logs regardless of config.
const DebugEnv = "AUTOINSTALL_DEBUG"

// Options selects the log destination and level.
type Options struct {
	File  string
	Level string
}

// New returns a logger writing to the configured file, the debug file from
// the environment, or nowhere. The returned closer must be called on exit.
func New(opts Options) (zerolog.Logger, io.Closer, error) {
	path, level := opts.File, opts.Level
	if debugPath := os.Getenv(DebugEnv); debugPath != "" {
		path, level = debugPath, "debug"
	}
	if path == "" {
		return zerolog.Nop(), nopCloser{}, nil
	}

	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Nop(), nopCloser{}, fmt.Errorf("parse log level: %w", err)
	}
	if lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return zerolog.Nop(), nopCloser{}, fmt.Errorf("create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return zerolog.Nop(), nopCloser{}, fmt.Errorf("open log file: %w", err)
	}

	logger := zerolog.New(f).
		Level(lvl).
		With().
		Timestamp().
		Str("session", time.Now().Format("20060102T150405")).
		Logger()
	return logger, f, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
