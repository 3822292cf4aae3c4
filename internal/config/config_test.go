package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	return dir
}

func TestLoad_DefaultsWithoutEnvFile(t *testing.T) {
	chdirTemp(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "postgres", cfg.Cache.Backend)
	assert.Equal(t, 30*24*time.Hour, cfg.Cache.RouteTTL)
	assert.Equal(t, "mapbox", cfg.Routing.DrivingProvider)
	assert.Equal(t, "google", cfg.Routing.TransitProvider)
	assert.Equal(t, 10*time.Second, cfg.Routing.LookupTimeout)
	assert.Equal(t, "route-warm-workers", cfg.Worker.ConsumerGroup)
	assert.Equal(t, 20, cfg.Worker.BatchSize)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	chdirTemp(t)
	t.Setenv("API_PORT", "9090")
	t.Setenv("ROUTE_CACHE_BACKEND", "Redis")
	t.Setenv("ROUTE_CACHE_TTL_HOURS", "48")
	t.Setenv("ROUTING_LOOKUP_TIMEOUT_MS", "1500")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "redis", cfg.Cache.Backend)
	assert.Equal(t, 48*time.Hour, cfg.Cache.RouteTTL)
	assert.Equal(t, 1500*time.Millisecond, cfg.Routing.LookupTimeout)
}

func TestLoad_ReadsDotEnv(t *testing.T) {
	dir := chdirTemp(t)
	content := "DB_HOST=db.internal\nDB_PORT=5544\nREDIS_HOST=cache\nREDIS_PORT=6380\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(content), 0o600))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, 5544, cfg.Database.Port)
	assert.Equal(t, "cache:6380", cfg.GetRedisAddr())
}
