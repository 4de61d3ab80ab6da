// Package config provides environment-driven configuration, loaded by
// cmd/rosterctl only when a result is persisted (--persist).
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config is the engine's full runtime configuration.
type Config struct {
	App      AppConfig      `yaml:"app"`
	Database DatabaseConfig `yaml:"database"`
	Solver   SolverConfig   `yaml:"solver"`
	Log      LogConfig      `yaml:"log"`
}

// AppConfig holds process-identity settings.
type AppConfig struct {
	Name string `yaml:"name"`
	Env  string `yaml:"env"`
}

// DatabaseConfig configures the optional result store (pkg/store). The
// engine itself never requires a database — this is only consulted when
// cmd/rosterctl is invoked with --persist.
type DatabaseConfig struct {
	Host            string        `yaml:"host"`
	Port            int           `yaml:"port"`
	Name            string        `yaml:"name"`
	User            string        `yaml:"user"`
	Password        string        `yaml:"password"`
	SSLMode         string        `yaml:"ssl_mode"`
	MaxOpenConns    int           `yaml:"max_open_conns"`
	MaxIdleConns    int           `yaml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"`
}

// DSN returns the lib/pq connection string.
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode,
	)
}

// SolverConfig holds default SolveConfig values (spec.md §6.1). The CLI
// does not read this section; its flags carry their own defaults.
type SolverConfig struct {
	DefaultTimeout  time.Duration `yaml:"default_timeout"`
	DefaultRestarts int           `yaml:"default_restarts"`
	DefaultSeed     uint64        `yaml:"default_seed"`
}

// LogConfig configures pkg/logger.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Output string `yaml:"output"`
}

// Load reads configuration from the environment, falling back to
// defaults suitable for local/CI use.
func Load() (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Name: getEnv("APP_NAME", "rotaengine"),
			Env:  getEnv("APP_ENV", "development"),
		},
		Database: DatabaseConfig{
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnvInt("DB_PORT", 5432),
			Name:            getEnv("DB_NAME", "rotaengine"),
			User:            getEnv("DB_USER", "rotaengine"),
			Password:        getEnv("DB_PASSWORD", ""),
			SSLMode:         getEnv("DB_SSL_MODE", "disable"),
			MaxOpenConns:    getEnvInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getEnvDuration("DB_CONN_MAX_LIFETIME", 5*time.Minute),
		},
		Solver: SolverConfig{
			DefaultTimeout:  getEnvDuration("SOLVER_TIMEOUT", 30*time.Second),
			DefaultRestarts: getEnvInt("SOLVER_RESTARTS", 8),
			DefaultSeed:     uint64(getEnvInt("SOLVER_SEED", 1)),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "console"),
			Output: getEnv("LOG_OUTPUT", "stdout"),
		},
	}

	return cfg, nil
}

// IsDevelopment reports whether the app env is "development".
func (c *Config) IsDevelopment() bool {
	return c.App.Env == "development"
}

// IsProduction reports whether the app env is "production".
func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
