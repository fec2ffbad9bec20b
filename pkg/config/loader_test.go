package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viteshop/backend/pkg/config"
)

type testServerConfig struct {
	Addr    string        `env:"TEST_SERVER_ADDR" envDefault:":9090"`
	Timeout time.Duration `env:"TEST_SERVER_TIMEOUT" envDefault:"15s"`
}

type testRequiredConfig struct {
	Secret string `env:"TEST_MISSING_SECRET_VALUE,required"`
}

func TestLoad(t *testing.T) {
	t.Run("applies defaults when env is unset", func(t *testing.T) {
		var cfg testServerConfig
		require.NoError(t, config.Load(&cfg))

		assert.Equal(t, ":9090", cfg.Addr)
		assert.Equal(t, 15*time.Second, cfg.Timeout)
	})

	t.Run("reads values from environment", func(t *testing.T) {
		t.Setenv("TEST_ENV_ADDR", ":7070")

		type envConfig struct {
			Addr string `env:"TEST_ENV_ADDR" envDefault:":9090"`
		}

		var cfg envConfig
		require.NoError(t, config.Load(&cfg))
		assert.Equal(t, ":7070", cfg.Addr)
	})

	t.Run("caches per type", func(t *testing.T) {
		t.Setenv("TEST_CACHE_ADDR", ":1111")

		type cachedConfig struct {
			Addr string `env:"TEST_CACHE_ADDR"`
		}

		var first cachedConfig
		require.NoError(t, config.Load(&first))

		// Changing the environment must not affect an already-loaded type.
		t.Setenv("TEST_CACHE_ADDR", ":2222")

		var second cachedConfig
		require.NoError(t, config.Load(&second))
		assert.Equal(t, first.Addr, second.Addr)
	})

	t.Run("fails on missing required variable", func(t *testing.T) {
		var cfg testRequiredConfig
		err := config.Load(&cfg)
		require.Error(t, err)
		assert.ErrorIs(t, err, config.ErrParsingConfig)
	})

	t.Run("rejects nil pointer", func(t *testing.T) {
		err := config.Load[testServerConfig](nil)
		assert.ErrorIs(t, err, config.ErrNilPointer)
	})
}

func TestMustLoad(t *testing.T) {
	t.Run("panics on failure", func(t *testing.T) {
		assert.Panics(t, func() {
			var cfg testRequiredConfig
			config.MustLoad(&cfg)
		})
	})
}
