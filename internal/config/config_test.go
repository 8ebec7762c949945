package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("API_PORT", "")
	t.Setenv("PORT", "")
	t.Setenv("ALLOWED_ORIGINS", "")
	t.Setenv("AUTH_REQUIRED", "")
	t.Setenv("DEFAULT_USER_ID", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "5001", cfg.Port)
	assert.Equal(t, int64(1), cfg.DefaultUserID)
	assert.False(t, cfg.AuthRequired)
	assert.Contains(t, cfg.AllowedOrigins, "http://localhost:5173")
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "synergy.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
port: "7000"
environment: staging
default_user_id: 9
allowed_origins:
  - https://a.example
`), 0o600))

	t.Setenv("CONFIG_FILE", path)
	t.Setenv("API_PORT", "")
	t.Setenv("PORT", "")
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("ALLOWED_ORIGINS", "https://b.example, https://c.example")
	t.Setenv("AUTH_REQUIRED", "yes")
	t.Setenv("DEFAULT_USER_ID", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "7000", cfg.Port)
	assert.Equal(t, int64(9), cfg.DefaultUserID)
	assert.True(t, cfg.IsProduction())
	assert.True(t, cfg.AuthRequired)
	assert.Equal(t, []string{"https://b.example", "https://c.example"}, cfg.AllowedOrigins)
}

func TestLoadBadFile(t *testing.T) {
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))
	_, err := Load()
	assert.Error(t, err)
}
