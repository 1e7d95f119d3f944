package adapter

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLogLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warning": slog.LevelWarn,
		"Error":   slog.LevelError,
		"bogus":   slog.LevelInfo,
	}
	for in, want := range tests {
		assert.Equal(t, want, parseLogLevel(in), in)
	}
}

func TestSetupLoggerWritesJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "marquee.log")
	logger, closer, err := SetupLogger(&LoggingConfig{File: path, Level: "DEBUG", MaxSizeMB: 1})
	require.NoError(t, err)

	logger.Debug("fetched page", "kind", "movie/popular")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"fetched page"`)
	assert.Contains(t, string(data), `"kind":"movie/popular"`)
}

func TestSetupLoggerHonorsLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "marquee.log")
	logger, closer, err := SetupLogger(&LoggingConfig{File: path, Level: "WARN"})
	require.NoError(t, err)

	logger.Info("quiet")
	logger.Warn("loud")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "quiet")
	assert.Contains(t, string(data), "loud")
}
