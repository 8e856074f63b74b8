package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"time"
)

var (
	mu            sync.Mutex
	defaultLogger *slog.Logger
)

// Init configures the package logger from cfg and directs output to w.
// Call it from main once configuration is loaded; the last call wins, so
// early logging (config loading itself, say) cannot pin the discard
// logger that callers get before Init.
func Init(cfg Config, w io.Writer) {
	if w == nil {
		w = io.Discard
	}
	cfg.normalize()

	opts := slog.HandlerOptions{
		Level:     cfg.level,
		AddSource: true,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.SourceKey {
				if source, ok := a.Value.Any().(*slog.Source); ok && source != nil {
					source.File = filepath.Base(source.File)
				}
			}
			if a.Key == slog.TimeKey {
				a.Value = slog.StringValue(a.Value.Time().Format(time.TimeOnly))
			}
			return a
		},
	}
	handler := newFilterHandler(slog.NewTextHandler(w, &opts), &cfg)

	mu.Lock()
	defaultLogger = slog.New(handler)
	mu.Unlock()

	r := slog.NewRecord(time.Now(), slog.LevelInfo, "logger initialized", 0)
	r.AddAttrs(slog.String("level", cfg.level.String()))
	_ = handler.Handle(context.Background(), r)
}

// OpenOutput resolves cfg.FilePath into a writer. "-" or "" selects
// stderr; otherwise the file is opened for append. The returned closer
// is nil for stderr.
func OpenOutput(cfg Config) (io.Writer, io.Closer, error) {
	if cfg.FilePath == "" || cfg.FilePath == "-" {
		return os.Stderr, nil, nil
	}
	f, err := os.OpenFile(cfg.FilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file %q: %w", cfg.FilePath, err)
	}
	return f, f, nil
}

// current returns the configured logger, lazily installing a discard
// logger so library code never has to nil-check before Init runs.
func current() *slog.Logger {
	mu.Lock()
	defer mu.Unlock()
	if defaultLogger == nil {
		defaultLogger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return defaultLogger
}

// logAt builds the record by hand so the recorded source location is the
// caller of the exported wrapper, not this file.
func logAt(level slog.Level, tag string, format string, args ...interface{}) {
	l := current()
	if !l.Enabled(context.Background(), level) {
		return
	}

	// Skip runtime.Callers, logAt, and the wrapper itself.
	var pcs [1]uintptr
	runtime.Callers(3, pcs[:])

	r := slog.NewRecord(time.Now(), level, fmt.Sprintf(format, args...), pcs[0])
	if tag != "" {
		r.AddAttrs(slog.String(tagKey, tag))
	}
	_ = l.Handler().Handle(context.Background(), r)
}

// Debugf logs a debug message using Printf-style formatting.
func Debugf(format string, args ...interface{}) {
	logAt(slog.LevelDebug, "", format, args...)
}

// Infof logs an info message using Printf-style formatting.
func Infof(format string, args ...interface{}) {
	logAt(slog.LevelInfo, "", format, args...)
}

// Warnf logs a warning message using Printf-style formatting.
func Warnf(format string, args ...interface{}) {
	logAt(slog.LevelWarn, "", format, args...)
}

// Errorf logs an error message using Printf-style formatting.
func Errorf(format string, args ...interface{}) {
	logAt(slog.LevelError, "", format, args...)
}

// DebugTagf logs a debug message carrying a filterable tag.
func DebugTagf(tag, format string, args ...interface{}) {
	logAt(slog.LevelDebug, tag, format, args...)
}

// InfoTagf logs an info message carrying a filterable tag.
func InfoTagf(tag, format string, args ...interface{}) {
	logAt(slog.LevelInfo, tag, format, args...)
}

// WarnTagf logs a warning message carrying a filterable tag.
func WarnTagf(tag, format string, args ...interface{}) {
	logAt(slog.LevelWarn, tag, format, args...)
}

// Fatalf logs an error message then exits.
func Fatalf(format string, args ...interface{}) {
	logAt(slog.LevelError, "", format, args...)
	os.Exit(1)
}

// Get returns the configured *slog.Logger for callers that want the
// structured API directly.
func Get() *slog.Logger {
	return current()
}
