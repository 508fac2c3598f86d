package config

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cryptoclient/internal/auth"
)

var validSeed = base64.StdEncoding.EncodeToString(make([]byte, auth.SeedLength))

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("CRYPTO_API_KEY", "test-key")
	t.Setenv("CRYPTO_PRIVATE_KEY_SEED", validSeed)
}

func TestLoad(t *testing.T) {
	t.Run("loads with defaults", func(t *testing.T) {
		setRequiredEnv(t)

		cfg, err := Load()

		require.NoError(t, err)
		assert.Equal(t, "test-key", cfg.API.Key)
		assert.Equal(t, "https://trading.robinhood.com", cfg.API.BaseURL)
		assert.Equal(t, 10*time.Second, cfg.HTTP.Timeout)
		assert.Equal(t, 5.0, cfg.HTTP.RateLimitPerSecond)
		assert.Equal(t, "info", cfg.Logging.Level)
	})

	t.Run("reads overrides from environment", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("CRYPTO_BASE_URL", "https://sandbox.example.com/")
		t.Setenv("CRYPTO_HTTP_TIMEOUT", "3s")
		t.Setenv("CRYPTO_RATE_LIMIT_BURST", "2")
		t.Setenv("LOG_LEVEL", "debug")

		cfg, err := Load()

		require.NoError(t, err)
		assert.Equal(t, "https://sandbox.example.com/", cfg.API.BaseURL)
		assert.Equal(t, 3*time.Second, cfg.HTTP.Timeout)
		assert.Equal(t, 2, cfg.HTTP.RateLimitBurst)
		assert.Equal(t, "debug", cfg.Logging.Level)
	})

	t.Run("requires API key", func(t *testing.T) {
		t.Setenv("CRYPTO_API_KEY", "")
		t.Setenv("CRYPTO_PRIVATE_KEY_SEED", validSeed)

		_, err := Load()

		require.Error(t, err)
		assert.Contains(t, err.Error(), "CRYPTO_API_KEY")
	})

	t.Run("requires private key seed", func(t *testing.T) {
		t.Setenv("CRYPTO_API_KEY", "test-key")
		t.Setenv("CRYPTO_PRIVATE_KEY_SEED", "")

		_, err := Load()

		require.Error(t, err)
		assert.Contains(t, err.Error(), "CRYPTO_PRIVATE_KEY_SEED")
	})

	t.Run("rejects a malformed seed up front", func(t *testing.T) {
		t.Setenv("CRYPTO_API_KEY", "test-key")
		t.Setenv("CRYPTO_PRIVATE_KEY_SEED", "not base64")

		_, err := Load()

		require.Error(t, err)
		var formatErr *auth.KeyFormatError
		assert.ErrorAs(t, err, &formatErr)
	})

	t.Run("rejects a non-positive rate limit", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("CRYPTO_RATE_LIMIT_PER_SECOND", "-1")

		_, err := Load()

		require.Error(t, err)
		assert.Contains(t, err.Error(), "rate limit")
	})

	t.Run("rejects a non-positive rate limit burst", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("CRYPTO_RATE_LIMIT_BURST", "0")

		_, err := Load()

		require.Error(t, err)
		assert.Contains(t, err.Error(), "burst")
	})

	t.Run("ignores unparsable duration override", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("CRYPTO_HTTP_TIMEOUT", "soon")

		cfg, err := Load()

		require.NoError(t, err)
		assert.Equal(t, 10*time.Second, cfg.HTTP.Timeout)
	})
}
