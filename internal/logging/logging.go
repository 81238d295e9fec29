// Package logging provides slog-based logging for apidoc runs.
package logging

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"

	"github.com/tessro/apidoc/internal/config"
	"github.com/tessro/apidoc/internal/paths"
)

// DefaultLogPath returns the default log file path (~/.apidoc/apidoc.log).
func DefaultLogPath() string {
	return paths.LogPath()
}

// ParseLevel converts a log level string to slog.Level.
// Valid values: "debug", "info", "warn", "error" (case-insensitive).
// Returns slog.LevelWarn for unrecognized values.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

// Setup initializes the global slog logger to append JSON records to path.
// If path is empty, uses DefaultLogPath().
// Returns a cleanup function to close the log file.
func Setup(path string, level slog.Level) (cleanup func(), err error) {
	if path == "" {
		path = DefaultLogPath()
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, err
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return nil, err
	}

	handler := slog.NewJSONHandler(f, &slog.HandlerOptions{
		Level: level,
	})
	slog.SetDefault(slog.New(handler))

	return func() { f.Close() }, nil
}

// SetupWriter initializes the global slog logger to write text records to w.
func SetupWriter(w io.Writer, level slog.Level) {
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
	})
	slog.SetDefault(slog.New(handler))
}

// ForSettings configures logging for a run. Records go to the log file when
// one is set and to stderr otherwise. Debug mode lowers the level to debug.
func ForSettings(s *config.Settings) (cleanup func(), err error) {
	level := ParseLevel(s.LogLevel)
	if s.Debug {
		level = slog.LevelDebug
	}
	switch s.LogFile {
	case "":
		SetupWriter(os.Stderr, level)
		return func() {}, nil
	case config.DefaultLogFile:
		return Setup("", level)
	default:
		return Setup(s.LogFile, level)
	}
}

// SetupTest configures logging for tests (writes to provided writer, text format).
func SetupTest(w io.Writer) {
	SetupWriter(w, slog.LevelDebug)
}

// LogPanic logs a panic with stack trace and context.
// Use in a defer at the start of goroutines:
//
//	defer logging.LogPanic("page-loader", nil)
func LogPanic(name string, onRecover func(any)) {
	if r := recover(); r != nil {
		slog.Error("panic recovered",
			"goroutine", name,
			"panic", r,
			"stack", string(debug.Stack()),
		)
		if onRecover != nil {
			onRecover(r)
		}
	}
}
