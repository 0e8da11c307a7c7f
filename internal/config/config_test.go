package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ads-dashboard/internal/config/configs"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, uint16(8080), cfg.HTTP.Port)
	assert.Equal(t, 5*time.Second, cfg.HTTP.ShutdownTimeout)
	assert.Equal(t, "text", cfg.Log.SlogFormat())
	assert.Equal(t, configs.StorageDriverPostgres, cfg.Storage.Driver)
	assert.Equal(t, "localhost:5432", cfg.Psql.Addr.Host)
	assert.Equal(t, int32(10), cfg.Psql.MaxConns)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("LOG_FORMAT", "JSON")
	t.Setenv("STORAGE_DRIVER", "memory")
	t.Setenv("STORAGE_SEED", "true")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, uint16(9090), cfg.HTTP.Port)
	assert.Equal(t, "json", cfg.Log.SlogFormat())
	assert.Equal(t, configs.StorageDriverMemory, cfg.Storage.Driver)
	assert.True(t, cfg.Storage.Seed)
}

func TestLoadDotenvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("LOG_LEVEL=debug\n"), 0o600))
	// godotenv sets the variable for the whole process
	t.Setenv("LOG_LEVEL", "")
	require.NoError(t, os.Unsetenv("LOG_LEVEL"))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadRejectsUnknownDriver(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "sqlite")

	_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sqlite")
}
