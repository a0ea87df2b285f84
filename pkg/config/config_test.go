package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadDefaultsWithMockBackend(t *testing.T) {
	t.Setenv("SHOPDASH_BACKEND_MOCK", "true")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Address)
	assert.Equal(t, "shopping", cfg.Server.Namespace)
	assert.Equal(t, 10*time.Second, cfg.Backend.Timeout)
	assert.Equal(t, 5*time.Minute, cfg.Chart.CacheTTL)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.True(t, cfg.Backend.Mock)
}

func TestLoadWithOverridesWinsOverEnv(t *testing.T) {
	t.Setenv("SHOPDASH_BACKEND_MOCK", "false")
	t.Setenv("SHOPDASH_BACKEND_URL", "")

	_, err := Load("")
	require.Error(t, err)

	cfg, err := LoadWithOverrides("", nil, WithMockBackend(true))
	require.NoError(t, err)
	assert.True(t, cfg.Backend.Mock)
	assert.Equal(t, "false", os.Getenv("SHOPDASH_BACKEND_MOCK"))

	_, err = LoadWithOverrides("", nil, WithMockBackend(false), nil)
	require.Error(t, err)
}

func TestLoadYAMLThenEnvOverrides(t *testing.T) {
	path := writeFile(t, "shopdash.yaml", `
server:
  address: ":9000"
  namespace: groceries
backend:
  base_url: http://backend.local
  timeout: 3s
chart:
  theme: chalk
  cache_ttl: 1m
translations:
  dashboard.navbar.brand:
    af: Paneelbord
`)
	t.Setenv("SHOPDASH_LOG_LEVEL", "debug")
	t.Setenv("SHOPDASH_BACKEND_TIMEOUT", "7s")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.Server.Address)
	assert.Equal(t, "groceries", cfg.Server.Namespace)
	assert.Equal(t, "http://backend.local", cfg.Backend.BaseURL)
	assert.Equal(t, 7*time.Second, cfg.Backend.Timeout)
	assert.Equal(t, "chalk", cfg.Chart.Theme)
	assert.Equal(t, time.Minute, cfg.Chart.CacheTTL)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "Paneelbord", cfg.Translations["dashboard.navbar.brand"]["af"])
}

func TestLoadEnvFile(t *testing.T) {
	envFile := writeFile(t, ".env", "SHOPDASH_BACKEND_URL=http://from-dotenv:8000\nSHOPDASH_NAMESPACE=pantry\n")
	t.Cleanup(func() {
		os.Unsetenv("SHOPDASH_BACKEND_URL")
		os.Unsetenv("SHOPDASH_NAMESPACE")
	})

	cfg, err := Load("", envFile, filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, "http://from-dotenv:8000", cfg.Backend.BaseURL)
	assert.Equal(t, "pantry", cfg.Server.Namespace)
}

func TestLoadRejectsInvalidConfig(t *testing.T) {
	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "base_url is required")

	t.Setenv("SHOPDASH_BACKEND_URL", "http://backend")
	t.Setenv("SHOPDASH_LOG_LEVEL", "chatty")
	_, err = Load("")
	require.Error(t, err)

	t.Setenv("SHOPDASH_LOG_LEVEL", "info")
	t.Setenv("SHOPDASH_BACKEND_TIMEOUT", "soon")
	_, err = Load("")
	require.Error(t, err)

	t.Setenv("SHOPDASH_BACKEND_TIMEOUT", "5s")
	t.Setenv("SHOPDASH_NAMESPACE", "a/b")
	_, err = Load("")
	require.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}
