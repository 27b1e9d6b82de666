package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv blanks out every variable the config reads, so the tests do not depend on the
// environment of the machine they run on.
func clearEnv(t *testing.T) {
	for _, name := range []string{
		"APP_ENV", "PORT", "STORE_DRIVER", "GIN_LOGGING",
		"MONGODB_URI", "DB_NAME", "DBHOST", "DBUSER", "DBPWD",
	} {
		t.Setenv(name, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("MONGODB_URI", "mongodb://localhost:27017")
	t.Setenv("DB_NAME", "contacts")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultPort, cfg.Port)
	assert.Equal(t, DriverMongoDB, cfg.StoreDriver)
	assert.Equal(t, "mongodb://localhost:27017", cfg.MongoURI)
	assert.Equal(t, "contacts", cfg.DBName)
	assert.False(t, cfg.Production())
	assert.True(t, cfg.RequestLogging())
}

func TestLoadMissingMongoURI(t *testing.T) {
	clearEnv(t)
	t.Setenv("DB_NAME", "contacts")

	_, err := Load()
	require.Error(t, err)
	assert.Equal(t, "missing required env var: MONGODB_URI", err.Error())
}

func TestLoadMissingBoth(t *testing.T) {
	clearEnv(t)

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing required env var: MONGODB_URI")
	assert.Contains(t, err.Error(), "missing required env var: DB_NAME")
}

func TestLoadPortAndProduction(t *testing.T) {
	clearEnv(t)
	t.Setenv("MONGODB_URI", "mongodb://localhost:27017")
	t.Setenv("DB_NAME", "contacts")
	t.Setenv("PORT", "3000")
	t.Setenv("APP_ENV", "Production")
	t.Setenv("GIN_LOGGING", "OFF")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 3000, cfg.Port)
	assert.True(t, cfg.Production())
	assert.False(t, cfg.RequestLogging())
}

func TestLoadInvalidPort(t *testing.T) {
	clearEnv(t)
	t.Setenv("MONGODB_URI", "mongodb://localhost:27017")
	t.Setenv("DB_NAME", "contacts")
	t.Setenv("PORT", "70000")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PORT")
}

// TestLoadMemoryDriver expects the in-memory store to need no database settings at all.
func TestLoadMemoryDriver(t *testing.T) {
	clearEnv(t)
	t.Setenv("STORE_DRIVER", "memory")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DriverMemory, cfg.StoreDriver)
}

func TestLoadMySQLDriver(t *testing.T) {
	clearEnv(t)
	t.Setenv("STORE_DRIVER", "mysql")
	t.Setenv("DB_NAME", "test")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing required env var: DBHOST")
	assert.Contains(t, err.Error(), "missing required env var: DBUSER")
	assert.NotContains(t, err.Error(), "MONGODB_URI")
}

func TestLoadUnknownDriver(t *testing.T) {
	clearEnv(t)
	t.Setenv("STORE_DRIVER", "redis")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "STORE_DRIVER")
}
