package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Port)
	assert.Equal(t, ":9090", cfg.GRPCPort)
	assert.Equal(t, 10*time.Minute, cfg.CatalogCacheTTL)
	assert.Equal(t, "EGP", cfg.Currency)
	assert.False(t, cfg.IsProduction())
}

func TestLoadConfigEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	file := "DB_HOST=db\nDB_NAME=lms\nPORT=:8081\nCURRENCY=USD\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "app.env"), []byte(file), 0o600))

	t.Setenv("PORT", ":7000")
	t.Setenv("CATALOG_CACHE_TTL", "30s")
	t.Setenv("TRACING_ENABLED", "true")
	t.Setenv("APP_ENV", "production")

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, ":7000", cfg.Port)
	assert.Equal(t, "db", cfg.DBHost)
	assert.Equal(t, "USD", cfg.Currency)
	assert.Equal(t, 30*time.Second, cfg.CatalogCacheTTL)
	assert.True(t, cfg.TracingEnabled)
	assert.True(t, cfg.IsProduction())
	assert.Contains(t, cfg.DSN(), "host=db")
	assert.Contains(t, cfg.DSN(), "dbname=lms")
}
