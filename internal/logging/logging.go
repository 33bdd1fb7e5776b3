// Package logging configures the process-wide slog logger.
package logging

import (
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Logger is the global slog instance for the application
var Logger *slog.Logger

// Options controls where logs go and how verbose they are.
type Options struct {
	Level string // debug, info, warn or error
	Path  string // empty means ~/.cadence/logs/cadence.log
}

// ParseLevel maps a level name to a slog.Level. Unknown names are an error.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
	}
}

// DefaultPath returns ~/.cadence/logs/cadence.log.
func DefaultPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".cadence", "logs", "cadence.log"), nil
}

// Init initializes the logging system with a text handler writing to a file.
// The returned closer releases the file.
func Init(opts Options) (io.Closer, error) {
	level, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, err
	}

	path := opts.Path
	if path == "" {
		if path, err = DefaultPath(); err != nil {
			return nil, err
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	// Open log file in append mode
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}

	Setup(file, level)
	return file, nil
}

// Setup installs a text handler on w as the default logger and redirects the
// standard log package to the same writer.
func Setup(w io.Writer, level slog.Level) *slog.Logger {
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
	})

	Logger = slog.New(handler)
	slog.SetDefault(Logger)

	log.SetOutput(w)
	log.SetFlags(log.LstdFlags)

	return Logger
}
