package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, "systematic_equity", cfg.Database.Schema)
	assert.Equal(t, 10, cfg.Database.MaxConns)
	assert.Equal(t, 2, cfg.Database.MinConns)
	assert.Equal(t, time.Hour, cfg.Database.MaxConnLifetime)
	assert.Equal(t, "config/engine.yaml", cfg.EngineConfigPath)
	assert.Equal(t, "0 0 6 * * 1-5", cfg.ScheduleSpec)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("ENV", "production")
	t.Setenv("DB_SCHEMA", "equity_test")
	t.Setenv("DB_MAX_CONNS", "25")
	t.Setenv("DB_MAX_CONN_LIFETIME", "2h")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.Env)
	assert.Equal(t, "equity_test", cfg.Database.Schema)
	assert.Equal(t, 25, cfg.Database.MaxConns)
	assert.Equal(t, 2*time.Hour, cfg.Database.MaxConnLifetime)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoad_InvalidIntFallsBack(t *testing.T) {
	t.Setenv("DB_MAX_CONNS", "lots")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 10, cfg.Database.MaxConns)
}

func TestLoad_PoolBoundsValidated(t *testing.T) {
	t.Setenv("DB_MAX_CONNS", "1")
	t.Setenv("DB_MIN_CONNS", "5")

	_, err := Load()
	assert.Error(t, err)
}
