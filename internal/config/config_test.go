package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rockysnow7/cyoa/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:0", cfg.Addr)
	assert.Equal(t, 24*time.Hour, cfg.SessionTimeout.Std())
	assert.Equal(t, "port.json", cfg.PortFile)
	assert.Equal(t, "memory", cfg.Store)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
addr: ":9000"
prefix: /api
session_timeout: 30m
store: redis
redis:
  addr: localhost:6379
  db: 2
  ttl: 48h
`), 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.Addr)
	assert.Equal(t, "/api", cfg.Prefix)
	assert.Equal(t, 30*time.Minute, cfg.SessionTimeout.Std())
	assert.Equal(t, "redis", cfg.Store)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, 2, cfg.Redis.DB)
	assert.Equal(t, 48*time.Hour, cfg.Redis.TTL.Std())

	// Unset fields keep their defaults.
	assert.Equal(t, "port.json", cfg.PortFile)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("CYOA_ADDR", ":7777")
	t.Setenv("CYOA_SESSION_TIMEOUT", "15m")
	t.Setenv("CYOA_STORE", "redis")
	t.Setenv("CYOA_REDIS_DB", "3")

	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, ":7777", cfg.Addr)
	assert.Equal(t, 15*time.Minute, cfg.SessionTimeout.Std())
	assert.Equal(t, "redis", cfg.Store)
	assert.Equal(t, 3, cfg.Redis.DB)
}

func TestLoad_InvalidEnvDuration(t *testing.T) {
	t.Setenv("CYOA_SESSION_TIMEOUT", "soon")
	_, err := config.Load("")
	assert.Error(t, err)
}
