package songchain

import (
	"context"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with songchain-specific helpers.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
// Use this to disable logging entirely.
func NoopLogger() *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// WithTrackID adds a track_id field to the logger.
func (l *Logger) WithTrackID(id string) *Logger {
	return &Logger{
		Logger: l.Logger.With("track_id", id),
	}
}

// WithCollection adds a collection field to the logger.
func (l *Logger) WithCollection(name string) *Logger {
	return &Logger{
		Logger: l.Logger.With("collection", name),
	}
}

// LogSimilarity logs a segment similarity request.
func (l *Logger) LogSimilarity(ctx context.Context, trackID string, results int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "similarity failed",
			"track_id", trackID,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "similarity completed",
			"track_id", trackID,
			"results", results,
		)
	}
}

// LogWholeTrack logs a whole-track similarity request.
func (l *Logger) LogWholeTrack(ctx context.Context, trackID string, k, results int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "whole-track search failed",
			"track_id", trackID,
			"k", k,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "whole-track search completed",
			"track_id", trackID,
			"k", k,
			"results", results,
		)
	}
}

// LogChain logs a chain construction request.
func (l *Logger) LogChain(ctx context.Context, seedID string, length int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "chain build failed",
			"seed", seedID,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "chain built",
			"seed", seedID,
			"length", length,
		)
	}
}

// LogEmptyWindow logs a request answered with an empty result because the
// track is unknown to the index or its search window filtered out every
// segment.
func (l *Logger) LogEmptyWindow(ctx context.Context, trackID string, cause error) {
	l.WarnContext(ctx, "no candidates",
		"track_id", trackID,
		"cause", cause,
	)
}

// LogCacheHit logs a score cache hit.
func (l *Logger) LogCacheHit(collection, trackID string) {
	l.Debug("score cache hit",
		"collection", collection,
		"track_id", trackID,
	)
}

// LogCacheMiss logs a score cache miss.
func (l *Logger) LogCacheMiss(collection, trackID string) {
	l.Debug("score cache miss",
		"collection", collection,
		"track_id", trackID,
	)
}
