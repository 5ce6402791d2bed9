package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lusitania/vatledger/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "clientes.txt", cfg.StorePath)
	assert.Equal(t, "vatledger.db", cfg.SnapshotPath)
	assert.Equal(t, ":8080", cfg.ListenAddr)
	assert.Equal(t, 10*time.Second, cfg.ReadTimeout)
	assert.Equal(t, 30*time.Second, cfg.WriteTimeout)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.False(t, cfg.Debug)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("VATLEDGER_STORE_PATH", "/tmp/faturas.txt")
	t.Setenv("VATLEDGER_DEBUG", "true")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "/tmp/faturas.txt", cfg.StorePath)
	assert.True(t, cfg.Debug)
}
