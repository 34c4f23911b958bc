package logging

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaultsToInfo(t *testing.T) {
	tests := []struct {
		name  string
		level string
		want  zerolog.Level
	}{
		{name: "empty defaults to info", level: "", want: zerolog.InfoLevel},
		{name: "garbage defaults to info", level: "shouting", want: zerolog.InfoLevel},
		{name: "debug parses", level: "debug", want: zerolog.DebugLevel},
		{name: "warn parses", level: "warn", want: zerolog.WarnLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := New(Config{Level: tt.level})
			defer func() { require.NoError(t, result.Close()) }()
			assert.Equal(t, tt.want, result.Logger.GetLevel())
		})
	}
}

func TestNewFileWriter(t *testing.T) {
	path := t.TempDir() + "/ghgcalc.log"
	result := New(Config{Level: "info", File: path})

	result.Logger.Info().Msg("hello")
	require.NoError(t, result.Close())

	assert.Equal(t, path, result.FilePath)
	assert.FileExists(t, path)
}

func TestNewUnopenableFileFallsBackToStderr(t *testing.T) {
	// Parent directory does not exist, so the open fails.
	path := t.TempDir() + "/missing/ghgcalc.log"
	result := New(Config{Level: "info", File: path})

	assert.Empty(t, result.FilePath)
	assert.NoError(t, result.Close(), "no file handle to release")
	// Logging must still work on the stderr-only writer.
	result.Logger.Info().Msg("still alive")
}

func TestTraceIDRoundTrip(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, TraceIDFromContext(ctx))

	id := GetOrGenerateTraceID(ctx)
	require.NotEmpty(t, id)

	ctx = ContextWithTraceID(ctx, id)
	assert.Equal(t, id, TraceIDFromContext(ctx))
	assert.Equal(t, id, GetOrGenerateTraceID(ctx), "existing trace ID must be reused")
}

func TestFromContextBareContext(t *testing.T) {
	logger := FromContext(context.Background())
	require.NotNil(t, logger)
	// Must not panic on a bare context.
	logger.Debug().Msg("no-op")
}
