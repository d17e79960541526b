package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/fakenewsdetect/backend/pkg/config"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)

	require.Equal(t, "0.0.0.0:5000", cfg.Addr())
	require.Equal(t, 2*time.Second, cfg.Analysis.TextDelay)
	require.Equal(t, 2*time.Second, cfg.Analysis.URLDelay)
	require.Equal(t, 3*time.Second, cfg.Analysis.ImageDelay)
	require.Equal(t, 10*time.Second, cfg.Analysis.Timeout)
	require.Equal(t, int64(10*1024*1024), cfg.Analysis.MaxImageSize)
	require.False(t, cfg.Cache.Enabled)
	require.Equal(t, "memory", cfg.Cache.Backend)
	require.Equal(t, "info", cfg.Logging.Level)
	require.Equal(t, "/metrics", cfg.Metrics.Path)
	require.Len(t, cfg.Server.AllowedOrigins, 2)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("FAKENEWS_SERVER_PORT", "9090")
	t.Setenv("FAKENEWS_ANALYSIS_TEXTDELAY", "150ms")
	t.Setenv("FAKENEWS_CACHE_ENABLED", "true")
	t.Setenv("FAKENEWS_CACHE_BACKEND", "redis")
	t.Setenv("FAKENEWS_LOGGING_LEVEL", "debug")

	cfg, err := config.Load("")
	require.NoError(t, err)

	require.Equal(t, 9090, cfg.Server.Port)
	require.Equal(t, 150*time.Millisecond, cfg.Analysis.TextDelay)
	require.True(t, cfg.Cache.Enabled)
	require.Equal(t, "redis", cfg.Cache.Backend)
	require.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := `
server:
  port: 7000
  allowedOrigins: ["https://fakenews.example"]
analysis:
  imageDelay: 500ms
rateLimit:
  requestsPerMinute: 5
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o600))

	cfg, err := config.Load(path)
	require.NoError(t, err)

	require.Equal(t, 7000, cfg.Server.Port)
	require.Equal(t, []string{"https://fakenews.example"}, cfg.Server.AllowedOrigins)
	require.Equal(t, 500*time.Millisecond, cfg.Analysis.ImageDelay)
	require.Equal(t, 5, cfg.RateLimit.RequestsPerMinute)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestLoadRejectsUnknownCacheBackend(t *testing.T) {
	t.Setenv("FAKENEWS_CACHE_BACKEND", "memcached")

	_, err := config.Load("")
	require.Error(t, err)
}
