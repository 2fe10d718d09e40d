package observability

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseLogLevel(t *testing.T) {
	require.Equal(t, slog.LevelDebug, parseLogLevel("debug"))
	require.Equal(t, slog.LevelWarn, parseLogLevel("WARN"))
	require.Equal(t, slog.LevelWarn, parseLogLevel("warning"))
	require.Equal(t, slog.LevelError, parseLogLevel(" error "))
	require.Equal(t, slog.LevelInfo, parseLogLevel(""))
	require.Equal(t, slog.LevelInfo, parseLogLevel("verbose"))
}

func TestEnvOrDefault(t *testing.T) {
	t.Setenv("OBS_TEST_KEY", "  staging  ")
	require.Equal(t, "staging", envOrDefault("OBS_TEST_KEY", "local"))
	require.Equal(t, "local", envOrDefault("OBS_TEST_KEY_MISSING", "local"))
}
