package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"cryptoclient/internal/auth"
)

// Config holds all configuration for the client. Environment variables are
// read here and nowhere else; everything below the cmd boundary receives
// explicit values.
type Config struct {
	API     APIConfig     `json:"api"`
	HTTP    HTTPConfig    `json:"http"`
	Logging LoggingConfig `json:"logging"`
}

// APIConfig holds trading API credentials and endpoint
type APIConfig struct {
	Key            string `json:"key"`
	PrivateKeySeed string `json:"-"`
	BaseURL        string `json:"base_url"`
}

// HTTPConfig holds dispatcher tuning
type HTTPConfig struct {
	Timeout            time.Duration `json:"timeout"`
	RateLimitPerSecond float64       `json:"rate_limit_per_second"`
	RateLimitBurst     int           `json:"rate_limit_burst"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `json:"level"`
	Format string `json:"format"` // json or console
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	config := &Config{
		API: APIConfig{
			Key:            getEnv("CRYPTO_API_KEY", ""),
			PrivateKeySeed: getEnv("CRYPTO_PRIVATE_KEY_SEED", ""),
			BaseURL:        getEnv("CRYPTO_BASE_URL", "https://trading.robinhood.com"),
		},
		HTTP: HTTPConfig{
			Timeout:            getEnvAsDuration("CRYPTO_HTTP_TIMEOUT", "10s"),
			RateLimitPerSecond: getEnvAsFloat("CRYPTO_RATE_LIMIT_PER_SECOND", 5),
			RateLimitBurst:     getEnvAsInt("CRYPTO_RATE_LIMIT_BURST", 10),
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "console"),
		},
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.API.Key == "" {
		return fmt.Errorf("CRYPTO_API_KEY is required")
	}
	if c.API.PrivateKeySeed == "" {
		return fmt.Errorf("CRYPTO_PRIVATE_KEY_SEED is required")
	}
	if _, err := auth.DecodeSeed(c.API.PrivateKeySeed); err != nil {
		return fmt.Errorf("CRYPTO_PRIVATE_KEY_SEED: %w", err)
	}
	if c.API.BaseURL == "" {
		return fmt.Errorf("CRYPTO_BASE_URL is required")
	}
	if c.HTTP.Timeout <= 0 {
		return fmt.Errorf("invalid HTTP timeout: %s", c.HTTP.Timeout)
	}
	if c.HTTP.RateLimitPerSecond <= 0 {
		return fmt.Errorf("invalid rate limit: %g requests per second", c.HTTP.RateLimitPerSecond)
	}
	if c.HTTP.RateLimitBurst <= 0 {
		return fmt.Errorf("invalid rate limit burst: %d", c.HTTP.RateLimitBurst)
	}
	return nil
}

// Helper functions for environment variable parsing

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	duration, _ := time.ParseDuration(defaultValue)
	return duration
}
