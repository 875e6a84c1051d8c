// Package logging wraps slog.Logger with the field names used by region loading.
package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with featidx-specific helpers.
type Logger struct {
	*slog.Logger
}

// New creates a Logger with the given handler.
// A nil handler logs text to stderr at info level.
func New(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo})
	}

	return &Logger{Logger: slog.New(handler)}
}

// Wrap adapts an existing slog.Logger. A nil logger yields Noop().
func Wrap(l *slog.Logger) *Logger {
	if l == nil {
		return Noop()
	}

	return &Logger{Logger: l}
}

// NewText creates a Logger writing human-readable text to w.
func NewText(w io.Writer, level slog.Level) *Logger {
	return New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// Noop creates a Logger that discards everything.
func Noop() *Logger {
	return New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.Level(1000)}))
}

// WithRegion tags all records with the region path.
func (l *Logger) WithRegion(path string) *Logger {
	return &Logger{Logger: l.Logger.With("region", path)}
}

// LogSectionLoad records the outcome of loading one auxiliary section.
// A failed section is a warning: the region stays usable without it.
func (l *Logger) LogSectionLoad(ctx context.Context, name string, size int, err error) {
	if err != nil {
		l.WarnContext(ctx, "auxiliary section unavailable",
			"section", name,
			"size", size,
			"error", err,
		)

		return
	}

	l.DebugContext(ctx, "auxiliary section loaded",
		"section", name,
		"size", size,
	)
}

// LogSectionAbsent records an optional section that the region does not carry.
func (l *Logger) LogSectionAbsent(ctx context.Context, name string) {
	l.DebugContext(ctx, "auxiliary section absent", "section", name)
}

// LogSectionWrite records a section emitted by a region writer.
func (l *Logger) LogSectionWrite(ctx context.Context, name string, offset, size int64) {
	l.DebugContext(ctx, "section written",
		"section", name,
		"offset", offset,
		"size", size,
	)
}
