// nolint: funlen
package config_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"moviecatalog/pkg/config"
)

func TestLoadConfig(t *testing.T) {
	t.Run("loads config from environment variables", func(t *testing.T) {
		envVars := map[string]string{
			"APP_ENV":       "test",
			"PORT":          "9090",
			"SENTRY_DSN":    "https://test@sentry.io/123",
			"ALLOW_ORIGINS": "*",
			"LOG_LEVEL":     "debug",
			"RATE_LIMIT":    "12.5",
			"DB_DRIVER":     "postgres",
			"DB_NAME":       "catalog",
			"DB_HOST":       "localhost",
			"DB_PORT":       "5433",
			"DB_USER":       "catalog",
			"DB_PASS":       "secret",
			"ENABLE_SSL":    "true",
		}
		for key, value := range envVars {
			t.Setenv(key, value)
		}

		cfg, err := config.LoadConfig()

		require.NoError(t, err)
		require.NotNil(t, cfg)
		assert.Equal(t, "test", cfg.AppEnv)
		assert.Equal(t, 9090, cfg.Port)
		assert.Equal(t, "https://test@sentry.io/123", cfg.SentryDSN)
		assert.Equal(t, "*", cfg.AllowOrigins)
		assert.Equal(t, "debug", cfg.LogLevel)
		assert.Equal(t, 12.5, cfg.RateLimit)
		assert.Equal(t, config.DriverPostgres, cfg.DB.Driver)
		assert.Equal(t, "catalog", cfg.DB.Name)
		assert.Equal(t, "localhost", cfg.DB.Host)
		assert.Equal(t, 5433, cfg.DB.Port)
		assert.Equal(t, "catalog", cfg.DB.User)
		assert.Equal(t, "secret", cfg.DB.Pass)
		assert.True(t, cfg.DB.EnableSSL)
	})

	t.Run("applies defaults", func(t *testing.T) {
		for _, key := range []string{"APP_ENV", "PORT", "DB_DRIVER", "DB_PORT", "RATE_LIMIT"} {
			// Setenv restores the original value once the test ends.
			t.Setenv(key, "")
			require.NoError(t, os.Unsetenv(key))
		}

		cfg, err := config.LoadConfig()

		require.NoError(t, err)
		assert.Equal(t, "local", cfg.AppEnv)
		assert.Equal(t, 8080, cfg.Port)
		assert.Equal(t, config.DriverPostgres, cfg.DB.Driver)
		assert.Equal(t, 5432, cfg.DB.Port)
		assert.Zero(t, cfg.RateLimit)
	})

	t.Run("accepts sqlite driver", func(t *testing.T) {
		t.Setenv("DB_DRIVER", "sqlite")
		t.Setenv("DB_NAME", "catalog.db")

		cfg, err := config.LoadConfig()

		require.NoError(t, err)
		assert.Equal(t, config.DriverSQLite, cfg.DB.Driver)
		assert.Equal(t, "catalog.db", cfg.DB.Name)
	})

	t.Run("rejects unknown driver", func(t *testing.T) {
		t.Setenv("DB_DRIVER", "mysql")

		cfg, err := config.LoadConfig()

		assert.Error(t, err)
		assert.Nil(t, cfg)
		assert.Contains(t, err.Error(), "DB_DRIVER")
	})

	invalid := map[string]string{
		"PORT":       "invalid",
		"ENABLE_SSL": "not-a-boolean",
		"DB_PORT":    "not-a-number",
		"RATE_LIMIT": "fast",
	}
	for key, value := range invalid {
		t.Run("handles invalid "+key, func(t *testing.T) {
			t.Setenv(key, value)

			cfg, err := config.LoadConfig()

			assert.Error(t, err)
			assert.Nil(t, cfg)
			assert.Contains(t, err.Error(), "load config error")
		})
	}
}
