package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "file", cfg.Store.Backend)
	assert.Equal(t, 15*time.Second, cfg.HTTPTimeout)
	assert.InDelta(t, 80.435, cfg.Pricing.AvgLTV(), 1e-9)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel())
}

func TestLoadFileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := `
port: "9090"
log_level: debug
http_timeout: 3s
pricing:
  monthly_price: 10
  annual_price: 100
store:
  backend: sqlite
  sqlite_path: /tmp/x.db
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("PORT", "7070")
	t.Setenv("ANNUAL_PRICE", "120")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "7070", cfg.Port)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel())
	assert.Equal(t, 3*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, "sqlite", cfg.Store.Backend)
	assert.Equal(t, "/tmp/x.db", cfg.Store.SQLitePath)
	assert.Equal(t, 10.0, cfg.Pricing.MonthlyPrice)
	assert.Equal(t, 120.0, cfg.Pricing.AnnualPrice)
	assert.Equal(t, "creator_crm:", cfg.Store.RedisPrefix)
}

func TestLoadRejectsUnknownBackend(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("STORE_BACKEND", "postgres")
	_, err := Load()
	assert.Error(t, err)
}
