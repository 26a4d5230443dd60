package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	StorageDriverPostgres = "postgres"
	StorageDriverMemory   = "memory"
)

// Config holds runtime settings read from the environment.
type Config struct {
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// AutoMigrate applies the embedded schema on startup.
	AutoMigrate bool

	ServerPort      string
	ShutdownTimeout time.Duration

	// StorageDriver selects postgres or the in-process memory store.
	StorageDriver string

	OpeningBalance    decimal.Decimal
	DeactivationActor string

	LogLevel  string
	LogFormat string
}

// Load reads configuration from environment variables, applying defaults.
func Load() (*Config, error) {
	cfg := &Config{
		DBHost:            valueOrDefault("DB_HOST", "localhost"),
		DBPort:            valueOrDefault("DB_PORT", "5432"),
		DBUser:            valueOrDefault("DB_USER", "postgres"),
		DBPassword:        valueOrDefault("DB_PASSWORD", "password"),
		DBName:            valueOrDefault("DB_NAME", "vbanking"),
		DBSSLMode:         valueOrDefault("DB_SSLMODE", "disable"),
		AutoMigrate:       true,
		ServerPort:        valueOrDefault("SERVER_PORT", "8080"),
		ShutdownTimeout:   30 * time.Second,
		StorageDriver:     strings.ToLower(valueOrDefault("STORAGE_DRIVER", StorageDriverPostgres)),
		OpeningBalance:    decimal.New(100000, -2),
		DeactivationActor: valueOrDefault("DEACTIVATION_ACTOR", "Admin"),
		LogLevel:          valueOrDefault("LOG_LEVEL", "info"),
		LogFormat:         valueOrDefault("LOG_FORMAT", "json"),
	}

	if v := os.Getenv("OPENING_BALANCE"); v != "" {
		balance, err := decimal.NewFromString(v)
		if err != nil {
			return nil, fmt.Errorf("invalid OPENING_BALANCE: %w", err)
		}
		if balance.IsNegative() {
			return nil, fmt.Errorf("invalid OPENING_BALANCE %q: must not be negative", v)
		}
		if !balance.Equal(balance.Truncate(2)) {
			return nil, fmt.Errorf("invalid OPENING_BALANCE %q: at most two decimal places", v)
		}
		cfg.OpeningBalance = balance
	}

	if v := os.Getenv("DB_AUTO_MIGRATE"); v != "" {
		autoMigrate, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("invalid DB_AUTO_MIGRATE: %w", err)
		}
		cfg.AutoMigrate = autoMigrate
	}

	if v := os.Getenv("SHUTDOWN_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid SHUTDOWN_TIMEOUT: %w", err)
		}
		cfg.ShutdownTimeout = d
	}

	switch cfg.StorageDriver {
	case StorageDriverPostgres, StorageDriverMemory:
	default:
		return nil, fmt.Errorf("invalid STORAGE_DRIVER %q", cfg.StorageDriver)
	}

	return cfg, nil
}

// GetDBConnectionString returns a lib/pq keyword/value DSN.
func (c *Config) GetDBConnectionString() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode)
}

func valueOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
