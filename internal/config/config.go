// internal/config/config.go
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"sqlrow/pkg/db" // Import db package for its Config struct
)

// AppConfig holds all application-wide configurations.
type AppConfig struct {
	LogLevel slog.Level
	DB       db.Config
}

// LoadConfig loads configuration from environment variables.
// It returns an AppConfig instance or an error if any variable is invalid.
func LoadConfig() (*AppConfig, error) {
	driver := getenv("DB_DRIVER", db.DriverPostgres)
	if driver != db.DriverPostgres && driver != db.DriverMySQL {
		return nil, fmt.Errorf("invalid DB_DRIVER %q: want %s or %s", driver, db.DriverPostgres, db.DriverMySQL)
	}

	defaultPort := "5432" // Default PostgreSQL port
	if driver == db.DriverMySQL {
		defaultPort = "3306"
	}
	dbPort, err := strconv.Atoi(getenv("DB_PORT", defaultPort))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	maxOpen, err := strconv.Atoi(getenv("DB_MAX_OPEN_CONNS", "25"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MAX_OPEN_CONNS: %w", err)
	}
	maxIdle, err := strconv.Atoi(getenv("DB_MAX_IDLE_CONNS", "10"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MAX_IDLE_CONNS: %w", err)
	}
	lifetime, err := time.ParseDuration(getenv("DB_CONN_MAX_LIFETIME", "5m"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_CONN_MAX_LIFETIME: %w", err)
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(getenv("LOG_LEVEL", "info"))); err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}

	return &AppConfig{
		LogLevel: level,
		DB: db.Config{
			Driver:          driver,
			Host:            getenv("DB_HOST", "localhost"),
			Port:            dbPort,
			User:            getenv("DB_USER", "user"),
			Password:        getenv("DB_PASSWORD", "password"),
			DBName:          getenv("DB_NAME", "appdb"),
			SSLMode:         getenv("DB_SSLMODE", "disable"),
			MaxOpenConns:    maxOpen,
			MaxIdleConns:    maxIdle,
			ConnMaxLifetime: lifetime,
		},
	}, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
