package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("ANIMESCHED_CLIENT_ID", "client-1")

	cfg := LoadConfig()
	require.Equal(t, "client-1", cfg.ClientID)
	require.Equal(t, "http://127.0.0.1:18423/callback", cfg.RedirectURI)
	require.Equal(t, "animesched.db", cfg.DatabaseFile)
	require.Equal(t, "dev", cfg.Env)
	require.Equal(t, "info", cfg.LogLevel)
	require.Equal(t, "text", cfg.LogFormat)
	require.Equal(t, 30*time.Second, cfg.HTTPTimeout)
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("ANIMESCHED_CLIENT_ID", "client-1")
	t.Setenv("ANIMESCHED_REDIRECT_URI", "http://127.0.0.1:9999/cb")
	t.Setenv("ANIMESCHED_DATABASE_FILE", "/tmp/cache.db")
	t.Setenv("ANIMESCHED_HTTP_TIMEOUT", "5s")
	t.Setenv("LOG_FORMAT", "json")

	cfg := LoadConfig()
	require.Equal(t, "http://127.0.0.1:9999/cb", cfg.RedirectURI)
	require.Equal(t, "/tmp/cache.db", cfg.DatabaseFile)
	require.Equal(t, 5*time.Second, cfg.HTTPTimeout)
	require.Equal(t, "json", cfg.LogFormat)
}

func TestLoadConfigBadDurationFallsBack(t *testing.T) {
	t.Setenv("ANIMESCHED_HTTP_TIMEOUT", "not-a-duration")

	cfg := LoadConfig()
	require.Equal(t, 30*time.Second, cfg.HTTPTimeout)
}
