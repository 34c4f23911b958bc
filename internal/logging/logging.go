// Package logging provides zerolog construction and context plumbing for
// the ghgcalc CLI and engine.
//
// Loggers travel on context.Context so that library code (engine, registry)
// can emit structured events without holding a logger field per call site.
package logging

import (
	"context"
	"io"
	"math/rand"
	"os"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"
)

// Config controls logger construction.
type Config struct {
	// Level is a zerolog level string ("debug", "info", "warn", ...).
	// Unparseable values fall back to info.
	Level string

	// Format selects the output encoding: "console" or "json".
	Format string

	// File is an optional log file path. When set, log output is written
	// to the file in addition to stderr.
	File string
}

// Result holds the constructed logger and the file handle, if any, so the
// caller can close it on shutdown.
type Result struct {
	Logger   zerolog.Logger
	FilePath string
	file     *os.File
}

// Close releases the log file handle, if one was opened.
func (r *Result) Close() error {
	if r.file == nil {
		return nil
	}
	err := r.file.Close()
	r.file = nil
	return err
}

// New builds a zerolog.Logger from cfg.
//
// Console format uses zerolog.ConsoleWriter on stderr; json format writes
// raw events. A configured file is opened in append mode and combined with
// the console writer via MultiLevelWriter. File open errors are not fatal:
// logging falls back to stderr only and the error is reported on the Result
// logger at warn level.
func New(cfg Config) Result {
	lvl, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || cfg.Level == "" {
		lvl = zerolog.InfoLevel
	}

	var console io.Writer = os.Stderr
	if cfg.Format != "json" {
		console = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	}

	result := Result{}
	writers := []io.Writer{console}

	var fileErr error
	if cfg.File != "" {
		var logFile *os.File
		logFile, fileErr = os.OpenFile(cfg.File, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
		if fileErr == nil {
			result.file = logFile
			result.FilePath = cfg.File
			writers = append(writers, logFile)
		}
	}

	logger := zerolog.New(zerolog.MultiLevelWriter(writers...)).
		Level(lvl).
		With().
		Timestamp().
		Logger()

	if fileErr != nil {
		logger.Warn().Err(fileErr).Str("file", cfg.File).Msg("log file unavailable; logging to stderr only")
	}

	result.Logger = logger
	return result
}

// ComponentLogger returns a child logger tagged with a component field.
func ComponentLogger(logger zerolog.Logger, component string) zerolog.Logger {
	return logger.With().Str("component", component).Logger()
}

// FromContext returns the logger attached to ctx, or a disabled logger when
// none was attached. Library code must tolerate bare contexts.
func FromContext(ctx context.Context) *zerolog.Logger {
	return zerolog.Ctx(ctx)
}

type traceIDKey struct{}

// ContextWithTraceID attaches a trace ID to ctx.
func ContextWithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, traceIDKey{}, traceID)
}

// TraceIDFromContext returns the trace ID on ctx, or "" when absent.
func TraceIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(traceIDKey{}).(string); ok {
		return id
	}
	return ""
}

// GetOrGenerateTraceID returns the trace ID already on ctx, generating a
// fresh ULID when none is present. ULIDs sort by creation time, which keeps
// interleaved log files reconstructable.
func GetOrGenerateTraceID(ctx context.Context) string {
	if id := TraceIDFromContext(ctx); id != "" {
		return id
	}
	entropy := ulid.Monotonic(rand.New(rand.NewSource(time.Now().UnixNano())), 0) //nolint:gosec // log correlation only
	return ulid.MustNew(ulid.Timestamp(time.Now()), entropy).String()
}
