package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.test.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	t.Run("yaml values override defaults", func(t *testing.T) {
		path := writeConfig(t, `
server:
  port: 9090
storefront:
  delivery_fee: "20.50"
  points_divisor: 5
  whatsapp_number: "966500000000"
`)
		cfg, err := Load(path)
		require.NoError(t, err)

		assert.Equal(t, 9090, cfg.Server.Port)
		assert.Equal(t, int64(5), cfg.Storefront.PointsDivisor)
		fee, err := cfg.Storefront.DeliveryFeeDecimal()
		require.NoError(t, err)
		assert.Equal(t, "20.5", fee.String())
		// untouched defaults survive
		assert.Equal(t, "SAR", cfg.Storefront.Currency)
		assert.Equal(t, "gemini-2.5-flash", cfg.Advisor.Model)
	})

	t.Run("missing file falls back to defaults", func(t *testing.T) {
		cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		require.NoError(t, err)
		assert.Equal(t, "15", cfg.Storefront.DeliveryFee)
		assert.Equal(t, int64(10), cfg.Storefront.PointsDivisor)
	})

	t.Run("env overrides secrets", func(t *testing.T) {
		t.Setenv("GEMINI_API_KEY", "test-key")
		t.Setenv("STORE_WHATSAPP_NUMBER", "966511111111")
		t.Setenv("REDIS_HOST", "cache")

		cfg, err := Load(writeConfig(t, "server:\n  port: 8000\n"))
		require.NoError(t, err)
		assert.Equal(t, "test-key", cfg.Advisor.APIKey)
		assert.Equal(t, "966511111111", cfg.Storefront.WhatsAppNumber)
		assert.True(t, cfg.Redis.Enabled)
		assert.Equal(t, "cache", cfg.Redis.Host)
	})

	t.Run("invalid yaml", func(t *testing.T) {
		_, err := Load(writeConfig(t, "server: [unclosed"))
		assert.Error(t, err)
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"negative delivery fee", func(c *Config) { c.Storefront.DeliveryFee = "-1" }},
		{"garbage delivery fee", func(c *Config) { c.Storefront.DeliveryFee = "abc" }},
		{"zero points divisor", func(c *Config) { c.Storefront.PointsDivisor = 0 }},
		{"unknown driver", func(c *Config) { c.Database.Driver = "postgres" }},
		{"empty currency", func(c *Config) { c.Storefront.Currency = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}

	assert.NoError(t, Default().Validate())
}

func TestDatabaseDSN(t *testing.T) {
	d := DatabaseConfig{Driver: "mysql", User: "u", Password: "p", Host: "db", Port: 3306, DBName: "shop"}
	assert.Equal(t, "u:p@tcp(db:3306)/shop?charset=utf8mb4&parseTime=True&loc=Local", d.GetDSN())

	d.DSN = "explicit"
	assert.Equal(t, "explicit", d.GetDSN())
}
