package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

type Config struct {
	HTTP      HTTPConfig      `mapstructure:"http"`
	GRPC      GRPCConfig      `mapstructure:"grpc"`
	DB        DBConfig        `mapstructure:"db"`
	Redis     RedisConfig     `mapstructure:"redis"`
	SagaLog   SagaLogConfig   `mapstructure:"sagalog"`
	Checkout  CheckoutConfig  `mapstructure:"checkout"`
	Inventory InventoryConfig `mapstructure:"inventory"`
	OTel      OTelConfig      `mapstructure:"otel"`
}

type HTTPConfig struct {
	Addr string `mapstructure:"addr"`
}

type GRPCConfig struct {
	Addr string `mapstructure:"addr"`
}

type DBConfig struct {
	Driver       string `mapstructure:"driver"`
	DSN          string `mapstructure:"dsn"`
	MaxOpenConns int    `mapstructure:"max_open_conns"`
}

// RedisConfig points at the cart / idempotency cache. An empty Addr selects
// the in-process cache, which is only suitable for a single gateway replica.
type RedisConfig struct {
	Addr string `mapstructure:"addr"`
}

type SagaLogConfig struct {
	Path string `mapstructure:"path"`
}

type CheckoutConfig struct {
	ShippingRate   string        `mapstructure:"shipping_rate"`
	Timezone       string        `mapstructure:"timezone"`
	IdempotencyTTL time.Duration `mapstructure:"idempotency_ttl"`
}

// InventoryConfig.Addr, when set, routes stock administration through the
// inventory-service gRPC API instead of the in-process ledger.
type InventoryConfig struct {
	Addr string `mapstructure:"addr"`
}

type OTelConfig struct {
	Enabled     bool   `mapstructure:"enabled"`
	ServiceName string `mapstructure:"service_name"`
}

// ShippingRateDecimal parses the flat shipping rate.
func (c CheckoutConfig) ShippingRateDecimal() (decimal.Decimal, error) {
	rate, err := decimal.NewFromString(c.ShippingRate)
	if err != nil {
		return decimal.Zero, fmt.Errorf("config: invalid checkout.shipping_rate %q: %w", c.ShippingRate, err)
	}
	if rate.IsNegative() {
		return decimal.Zero, fmt.Errorf("config: checkout.shipping_rate must not be negative")
	}
	return rate, nil
}

// Location resolves the time zone used for calendar-day arithmetic.
func (c CheckoutConfig) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("config: invalid checkout.timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("http.addr", ":8080")
	v.SetDefault("grpc.addr", ":9092")
	v.SetDefault("db.driver", "mysql")
	v.SetDefault("db.dsn", "storefront:storefront@tcp(localhost:3306)/storefront?parseTime=false")
	v.SetDefault("db.max_open_conns", 10)
	v.SetDefault("redis.addr", "")
	v.SetDefault("sagalog.path", "./data/checkout.db")
	v.SetDefault("checkout.shipping_rate", "5.00")
	v.SetDefault("checkout.timezone", "UTC")
	v.SetDefault("checkout.idempotency_ttl", 24*time.Hour)
	v.SetDefault("inventory.addr", "")
	v.SetDefault("otel.enabled", false)
	v.SetDefault("otel.service_name", "storefront")
}

// Load reads storefront.yaml (if present) and STOREFRONT_* environment
// variables on top of the built-in defaults.
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName("storefront")
	v.SetConfigType("yaml")
	v.AddConfigPath("./deploy/")
	v.AddConfigPath("./")
	v.AddConfigPath("/etc/storefront/")

	v.SetEnvPrefix("STOREFRONT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config: failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: failed to unmarshal config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.DB.Driver {
	case "mysql", "sqlite":
	default:
		return fmt.Errorf("config: unsupported db.driver %q", c.DB.Driver)
	}
	if _, err := c.Checkout.ShippingRateDecimal(); err != nil {
		return err
	}
	if _, err := c.Checkout.Location(); err != nil {
		return err
	}
	return nil
}
