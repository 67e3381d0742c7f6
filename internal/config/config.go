package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/bedwards/wdi-go/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Database DatabaseConfig
	Output   OutputConfig
	Server   ServerConfig
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	URL      string
	Host     string
	Port     int
	Name     string
	User     string
	Password string
	SSLMode  string
}

// OutputConfig holds report output settings
type OutputConfig struct {
	Dir string
}

// ServerConfig holds report server settings
type ServerConfig struct {
	Port string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	config := &Config{
		Database: loadDatabaseConfig(),
		Output:   OutputConfig{Dir: getEnvOrDefault("OUTPUT_DIR", "data/output")},
		Server:   ServerConfig{Port: getEnvOrDefault("PORT", "8080")},
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func loadDatabaseConfig() DatabaseConfig {
	return DatabaseConfig{
		URL:      getEnvOrDefault("DATABASE_URL", ""),
		Host:     getEnvOrDefault("DB_HOST", "localhost"),
		Port:     getEnvIntOrDefault("DB_PORT", 5432),
		Name:     getEnvOrDefault("DB_NAME", "db"),
		User:     getEnvOrDefault("DB_USER", "postgres"),
		Password: getEnvOrDefault("DB_PASSWORD", ""),
		SSLMode:  getEnvOrDefault("SSL_MODE", "disable"),
	}
}

// DSN returns the lib/pq connection string. DATABASE_URL wins when set;
// otherwise the string is assembled from the discrete settings.
func (d DatabaseConfig) DSN() string {
	if d.URL != "" {
		return d.URL
	}
	dsn := fmt.Sprintf("host=%s port=%d dbname=%s user=%s sslmode=%s",
		d.Host, d.Port, d.Name, d.User, d.SSLMode)
	if d.Password != "" {
		dsn += " password=" + d.Password
	}
	return dsn
}

func validateConfig(config *Config) error {
	if config.Database.URL == "" && config.Database.Host == "" {
		return errors.ConfigInvalid("either DATABASE_URL or DB_HOST is required")
	}
	if config.Output.Dir == "" {
		return errors.ConfigInvalid("output directory is required")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
