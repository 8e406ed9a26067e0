// Package logging builds the slog logger used by every command. Lifecycle
// records go to a size-rotated file; warnings and errors are echoed to the console.
package logging

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Config controls logger construction
type Config struct {
	// Level applies to the file sink: debug/info/warn/error
	Level string
	// File is the rotating log file; empty disables the file sink
	File string
	// Console receives warn and above; nil disables console logging
	Console io.Writer
}

// DefaultFile returns the per-user log file location
func DefaultFile() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "audiomerge", "audiomerge.log")
}

// LevelFromString parses a level name; an empty string is info
func LevelFromString(level string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, errors.New("invalid log level: " + level)
	}
}

// Logger writes lifecycle records to the file sink and echoes warnings to the console
type Logger struct {
	*slog.Logger

	fileOnly *slog.Logger
	closer   io.Closer
}

// FileOnly returns a logger that skips the console sink. Full-screen TUIs use
// it so log lines do not tear the display.
func (l *Logger) FileOnly() *slog.Logger {
	return l.fileOnly
}

// Close releases the log file
func (l *Logger) Close() error {
	return l.closer.Close()
}

// New creates the logger. Close must be called before exit.
func New(cfg Config) (*Logger, error) {
	lvl, err := LevelFromString(cfg.Level)
	if err != nil {
		return nil, err
	}

	l := &Logger{closer: nopCloser{}}
	var file slog.Handler = slog.DiscardHandler

	if cfg.File != "" {
		writer := &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    10, // MB
			MaxBackups: 3,
			MaxAge:     30, // days
			Compress:   true,
		}
		l.closer = writer
		file = slog.NewTextHandler(writer, &slog.HandlerOptions{Level: lvl})
	}
	l.fileOnly = slog.New(file)

	if cfg.Console == nil {
		l.Logger = l.fileOnly
		return l, nil
	}

	console := slog.NewTextHandler(cfg.Console, &slog.HandlerOptions{Level: slog.LevelWarn})
	if cfg.File == "" {
		l.Logger = slog.New(console)
	} else {
		l.Logger = slog.New(fanout{file, console})
	}
	return l, nil
}

// Discard returns a logger that drops everything
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// fanout sends each record to every handler that accepts its level
type fanout []slog.Handler

func (f fanout) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range f {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (f fanout) Handle(ctx context.Context, r slog.Record) error {
	var errs []error
	for _, h := range f {
		if h.Enabled(ctx, r.Level) {
			if err := h.Handle(ctx, r.Clone()); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}

func (f fanout) WithAttrs(attrs []slog.Attr) slog.Handler {
	out := make(fanout, len(f))
	for i, h := range f {
		out[i] = h.WithAttrs(attrs)
	}
	return out
}

func (f fanout) WithGroup(name string) slog.Handler {
	out := make(fanout, len(f))
	for i, h := range f {
		out[i] = h.WithGroup(name)
	}
	return out
}
