package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// inDir runs the test from an empty directory so no storefront.yaml is found.
func inDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	return dir
}

func TestLoad_Defaults(t *testing.T) {
	inDir(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTP.Addr)
	assert.Equal(t, ":9092", cfg.GRPC.Addr)
	assert.Equal(t, "mysql", cfg.DB.Driver)
	assert.Equal(t, 10, cfg.DB.MaxOpenConns)
	assert.Empty(t, cfg.Redis.Addr)
	assert.Equal(t, 24*time.Hour, cfg.Checkout.IdempotencyTTL)
	assert.False(t, cfg.OTel.Enabled)

	rate, err := cfg.Checkout.ShippingRateDecimal()
	require.NoError(t, err)
	assert.Equal(t, "5.00", rate.StringFixed(2))

	loc, err := cfg.Checkout.Location()
	require.NoError(t, err)
	assert.Equal(t, time.UTC, loc)
}

func TestLoad_FileAndEnv(t *testing.T) {
	dir := inDir(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "storefront.yaml"), []byte(`
db:
  driver: sqlite
  dsn: /tmp/storefront.db
checkout:
  shipping_rate: "7.50"
  timezone: Europe/Madrid
  idempotency_ttl: 1h
`), 0o600))
	t.Setenv("STOREFRONT_REDIS_ADDR", "redis:6379")
	t.Setenv("STOREFRONT_CHECKOUT_SHIPPING_RATE", "9.99")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.DB.Driver)
	assert.Equal(t, "redis:6379", cfg.Redis.Addr)
	assert.Equal(t, "9.99", cfg.Checkout.ShippingRate, "env overrides the file")
	assert.Equal(t, time.Hour, cfg.Checkout.IdempotencyTTL)

	loc, err := cfg.Checkout.Location()
	require.NoError(t, err)
	assert.Equal(t, "Europe/Madrid", loc.String())
}

func TestLoad_Invalid(t *testing.T) {
	tests := map[string][2]string{
		"driver":        {"STOREFRONT_DB_DRIVER", "postgres"},
		"shipping rate": {"STOREFRONT_CHECKOUT_SHIPPING_RATE", "cheap"},
		"negative rate": {"STOREFRONT_CHECKOUT_SHIPPING_RATE", "-1"},
		"timezone":      {"STOREFRONT_CHECKOUT_TIMEZONE", "Mars/Olympus"},
	}
	for name, env := range tests {
		t.Run(name, func(t *testing.T) {
			inDir(t)
			t.Setenv(env[0], env[1])
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
