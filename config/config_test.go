package config_test

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/zoo-engine/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()

	require.NoError(t, err)
	assert.Equal(t, config.StoreMemory, cfg.LedgerStore)
	assert.Equal(t, ":memory:", cfg.SQLitePath)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.Empty(t, cfg.MetricsFile)
	assert.False(t, cfg.StrictLoad)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("ZOO_LEDGER_STORE", "sqlite")
	t.Setenv("ZOO_SQLITE_PATH", "/tmp/zoo.db")
	t.Setenv("ZOO_LOG_LEVEL", "debug")
	t.Setenv("ZOO_METRICS_FILE", "/tmp/zoo.prom")
	t.Setenv("ZOO_STRICT_LOAD", "true")

	cfg, err := config.Load()

	require.NoError(t, err)
	assert.Equal(t, config.StoreSQLite, cfg.LedgerStore)
	assert.Equal(t, "/tmp/zoo.db", cfg.SQLitePath)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.Equal(t, "/tmp/zoo.prom", cfg.MetricsFile)
	assert.True(t, cfg.StrictLoad)
}

func TestLoad_UnknownStoreRejected(t *testing.T) {
	t.Setenv("ZOO_LEDGER_STORE", "postgres")

	_, err := config.Load()

	assert.ErrorContains(t, err, "unknown store")
}

func TestLoad_BadLogLevel(t *testing.T) {
	t.Setenv("ZOO_LOG_LEVEL", "chatty")

	_, err := config.Load()

	assert.ErrorContains(t, err, "parse env")
}
