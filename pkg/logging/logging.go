// Package logging provides the structured logger used by rkmatch.
package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/Veraticus/rkmatch/pkg/matcher"
)

// Logger wraps slog.Logger with search-specific helpers.
type Logger struct {
	*slog.Logger
}

// New creates a Logger writing to w in the given format ("text" or "json").
func New(w io.Writer, format string, level slog.Level) *Logger {
	if w == nil {
		w = os.Stderr
	}
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if format == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return &Logger{Logger: slog.New(handler)}
}

// NoopLogger discards all output.
func NoopLogger() *Logger {
	return New(io.Discard, "text", slog.LevelError+1)
}

// ParseLevel parses a level name. Unknown names map to info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// WithSource tags the logger with the name of the searched text.
func (l *Logger) WithSource(name string) *Logger {
	return &Logger{Logger: l.Logger.With("source", name)}
}

// LogSearch logs the outcome of one search.
func (l *Logger) LogSearch(ctx context.Context, source string, res matcher.Result, err error) {
	if err != nil {
		l.ErrorContext(ctx, "search failed",
			"source", source,
			"error", err,
		)
		return
	}
	l.DebugContext(ctx, "search completed",
		"source", source,
		"matches", len(res.Offsets),
		"text_length", res.TextLength,
		"pattern_length", res.PatternLength,
		"hash_comparisons", res.HashComparisons,
		"verification_comparisons", res.VerificationComparisons,
		"spurious_hits", res.SpuriousHits,
		"elapsed", res.Elapsed,
	)
}
