package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
// All environment variables are read here and nowhere else.
type Config struct {
	// Server
	Port string
	Env  string // development, staging, production

	// Database
	Database DatabaseConfig

	// Redis
	Redis RedisConfig

	// External forecasting service
	Forecast ForecastConfig

	// Synthetic data generation
	Generator GeneratorConfig

	// Logging
	LogLevel  string
	LogFormat string
}

// DatabaseConfig holds PostgreSQL configuration
type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	URL      string

	// Connection Pool
	MaxConns        int
	MinConns        int
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	Enabled  bool
}

// ForecastConfig holds the managed forecasting service configuration
type ForecastConfig struct {
	BaseURL   string
	Model     string
	Algorithm string // forecasting algorithm selector, "auto" lets the service choose
	ErrorMode string // "skip" isolates per-series failures, "fail" aborts the run
	Evaluate  bool   // request backtest evaluation alongside predictions
	Horizon   int    // forecast horizon in months
	Timeout   time.Duration
	RateRPS   float64 // outbound request rate limit
}

// GeneratorConfig holds synthetic policy generation parameters
type GeneratorConfig struct {
	StartDate time.Time
	Months    int
	Seed      int64 // 0 means seed from the clock
}

// Load reads configuration from environment variables.
// This is the only function that calls os.Getenv().
func Load() (*Config, error) {
	loadEnvFile()

	startDate, err := time.Parse("2006-01-02", getEnv("GEN_START_DATE", "2020-01-01"))
	if err != nil {
		return nil, fmt.Errorf("invalid GEN_START_DATE: %w", err)
	}

	cfg := &Config{
		// Server
		Port: getEnv("PORT", "8090"),
		Env:  getEnv("ENV", "development"),

		// Database
		Database: DatabaseConfig{
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnv("DB_PORT", "5432"),
			Name:            getEnv("DB_NAME", "premiumcast"),
			User:            getEnv("DB_USER", "premiumcast"),
			Password:        getEnv("DB_PASSWORD", ""),
			URL:             getEnv("DATABASE_URL", ""),
			MaxConns:        getEnvAsInt("DB_MAX_CONNS", 25),
			MinConns:        getEnvAsInt("DB_MIN_CONNS", 5),
			MaxConnLifetime: getEnvAsDuration("DB_MAX_CONN_LIFETIME", "1h"),
			MaxConnIdleTime: getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", "30m"),
		},

		// Redis
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
			Enabled:  getEnvAsBool("REDIS_ENABLED", true),
		},

		// Forecasting service
		Forecast: ForecastConfig{
			BaseURL:   getEnv("FORECAST_BASE_URL", "http://localhost:9400"),
			Model:     getEnv("FORECAST_MODEL", "premium_model"),
			Algorithm: getEnv("FORECAST_ALGORITHM", "auto"),
			ErrorMode: getEnv("FORECAST_ERROR_MODE", "skip"),
			Evaluate:  getEnvAsBool("FORECAST_EVALUATE", true),
			Horizon:   getEnvAsInt("FORECAST_HORIZON", 12),
			Timeout:   getEnvAsDuration("FORECAST_TIMEOUT", "10m"),
			RateRPS:   getEnvAsFloat("FORECAST_RATE_RPS", 2.0),
		},

		// Generator
		Generator: GeneratorConfig{
			StartDate: startDate,
			Months:    getEnvAsInt("GEN_MONTHS_OF_DATA", 72),
			Seed:      int64(getEnvAsInt("GEN_SEED", 0)),
		},

		// Logging
		LogLevel:  getEnv("LOG_LEVEL", "debug"),
		LogFormat: getEnv("LOG_FORMAT", "json"),
	}

	// Validate configuration
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// validate checks if required configuration values are set.
// Generation and forecast parameters fail fast here, before any data
// is materialized.
func (c *Config) validate() error {
	// Database URL is required
	if c.Database.URL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}

	// Validate environment
	if c.Env != "development" && c.Env != "staging" && c.Env != "production" {
		return fmt.Errorf("ENV must be one of: development, staging, production")
	}

	if c.Generator.Months <= 0 {
		return fmt.Errorf("GEN_MONTHS_OF_DATA must be positive, got %d", c.Generator.Months)
	}
	if c.Generator.StartDate.IsZero() {
		return fmt.Errorf("GEN_START_DATE is required")
	}

	if c.Forecast.Horizon <= 0 {
		return fmt.Errorf("FORECAST_HORIZON must be positive, got %d", c.Forecast.Horizon)
	}
	if c.Forecast.ErrorMode != "skip" && c.Forecast.ErrorMode != "fail" {
		return fmt.Errorf("FORECAST_ERROR_MODE must be one of: skip, fail")
	}

	return nil
}

// Helper functions (private, only used within this file)

// loadEnvFile tries to load .env from multiple locations
func loadEnvFile() {
	// Try paths in order of priority
	paths := []string{
		".env",
	}

	// Also try relative to executable
	if exe, err := os.Executable(); err == nil {
		exeDir := filepath.Dir(exe)
		paths = append(paths,
			filepath.Join(exeDir, ".env"),
			filepath.Join(exeDir, "..", ".env"),
			filepath.Join(exeDir, "..", "..", ".env"),
		)
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			return
		}
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		valueStr = defaultValue
	}

	duration, err := time.ParseDuration(valueStr)
	if err != nil {
		// Fallback to default
		duration, _ = time.ParseDuration(defaultValue)
	}

	return duration
}
