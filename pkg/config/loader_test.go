package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/schoolkit/pkg/config"
)

type smtpConfig struct {
	Host string `env:"TEST_SMTP_HOST"`
	Port int    `env:"TEST_SMTP_PORT" envDefault:"587"`
}

type brokenConfig struct {
	Count int `env:"TEST_BROKEN_COUNT"`
}

func TestLoad(t *testing.T) {
	t.Run("parses env tags with defaults", func(t *testing.T) {
		config.ResetCache()
		t.Setenv("TEST_SMTP_HOST", "mail.example.com")

		var cfg smtpConfig
		require.NoError(t, config.Load(&cfg))
		assert.Equal(t, "mail.example.com", cfg.Host)
		assert.Equal(t, 587, cfg.Port)
	})

	t.Run("caches per type", func(t *testing.T) {
		config.ResetCache()
		t.Setenv("TEST_SMTP_HOST", "first.example.com")

		var first smtpConfig
		require.NoError(t, config.Load(&first))

		// The environment changes, but the cached value wins.
		t.Setenv("TEST_SMTP_HOST", "second.example.com")
		var second smtpConfig
		require.NoError(t, config.Load(&second))
		assert.Equal(t, "first.example.com", second.Host)

		config.ResetCache()
		var third smtpConfig
		require.NoError(t, config.Load(&third))
		assert.Equal(t, "second.example.com", third.Host)
	})

	t.Run("nil pointer", func(t *testing.T) {
		err := config.Load[smtpConfig](nil)
		assert.ErrorIs(t, err, config.ErrNilPointer)
	})

	t.Run("unparsable value", func(t *testing.T) {
		config.ResetCache()
		t.Setenv("TEST_BROKEN_COUNT", "not-a-number")

		var cfg brokenConfig
		err := config.Load(&cfg)
		assert.ErrorIs(t, err, config.ErrParsingConfig)
	})
}

func TestLoadEnv(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		err := config.LoadEnv("testdata/does-not-exist.env")
		assert.ErrorIs(t, err, config.ErrLoadingEnvFile)
	})
}
