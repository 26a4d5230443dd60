package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"DB_HOST", "SERVER_PORT", "STORAGE_DRIVER", "OPENING_BALANCE", "DEACTIVATION_ACTOR", "SHUTDOWN_TIMEOUT", "DB_AUTO_MIGRATE"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "localhost", cfg.DBHost)
	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, StorageDriverPostgres, cfg.StorageDriver)
	assert.Equal(t, "Admin", cfg.DeactivationActor)
	assert.Equal(t, "1000", cfg.OpeningBalance.String())
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
	assert.True(t, cfg.AutoMigrate)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "MEMORY")
	t.Setenv("OPENING_BALANCE", "50.25")
	t.Setenv("DEACTIVATION_ACTOR", "backoffice")
	t.Setenv("SHUTDOWN_TIMEOUT", "5s")
	t.Setenv("DB_AUTO_MIGRATE", "false")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, StorageDriverMemory, cfg.StorageDriver)
	assert.Equal(t, "50.25", cfg.OpeningBalance.String())
	assert.Equal(t, "backoffice", cfg.DeactivationActor)
	assert.Equal(t, 5*time.Second, cfg.ShutdownTimeout)
	assert.False(t, cfg.AutoMigrate)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cases := map[string]string{
		"OPENING_BALANCE":  "lots",
		"SHUTDOWN_TIMEOUT": "soon",
		"STORAGE_DRIVER":   "mongo",
		"DB_AUTO_MIGRATE":  "sometimes",
	}
	for key, value := range cases {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, value)
			_, err := Load()
			assert.Error(t, err)
		})
	}

	t.Run("negative opening balance", func(t *testing.T) {
		t.Setenv("OPENING_BALANCE", "-10")
		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("sub-cent opening balance", func(t *testing.T) {
		t.Setenv("OPENING_BALANCE", "1000.005")
		_, err := Load()
		assert.ErrorContains(t, err, "OPENING_BALANCE")
	})
}

func TestGetDBConnectionString(t *testing.T) {
	cfg := &Config{
		DBHost:     "db",
		DBPort:     "6543",
		DBUser:     "bank",
		DBPassword: "secret",
		DBName:     "vbanking",
		DBSSLMode:  "disable",
	}
	assert.Equal(t, "host=db port=6543 user=bank password=secret dbname=vbanking sslmode=disable", cfg.GetDBConnectionString())
}
