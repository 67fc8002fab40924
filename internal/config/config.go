package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"github.com/phenrril/skywholesale/internal/pricing"
)

// DefaultMaxImageBytes is the admin upload ceiling (5 MB).
const DefaultMaxImageBytes int64 = 5 * 1024 * 1024

type Config struct {
	Port          string
	Env           string
	LogLevel      string
	SeedCatalog   bool
	MaxImageBytes int64
	Rules         pricing.Rules
}

func (c Config) IsDev() bool {
	return c.Env == "" || c.Env == "development" || c.Env == "dev"
}

// Load reads .env when present, then the process environment.
func Load() (Config, error) {
	_ = godotenv.Load()
	return FromEnv()
}

func FromEnv() (Config, error) {
	cfg := Config{
		Port:          envOr("PORT", "8080"),
		Env:           strings.ToLower(strings.TrimSpace(os.Getenv("APP_ENV"))),
		LogLevel:      envOr("LOG_LEVEL", "info"),
		SeedCatalog:   true,
		MaxImageBytes: DefaultMaxImageBytes,
		Rules:         pricing.DefaultRules(),
	}
	var err error
	if v := strings.TrimSpace(os.Getenv("SEED_CATALOG")); v != "" {
		if cfg.SeedCatalog, err = strconv.ParseBool(v); err != nil {
			return Config{}, fmt.Errorf("SEED_CATALOG: %w", err)
		}
	}
	if v := strings.TrimSpace(os.Getenv("MAX_IMAGE_BYTES")); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil || n <= 0 {
			return Config{}, fmt.Errorf("MAX_IMAGE_BYTES: invalid value %q", v)
		}
		cfg.MaxImageBytes = n
	}

	fields := []struct {
		key string
		dst *decimal.Decimal
	}{
		{"BULK_DISCOUNT_THRESHOLD", &cfg.Rules.BulkDiscountThreshold},
		{"BULK_DISCOUNT_RATE", &cfg.Rules.BulkDiscountRate},
		{"FREE_SHIPPING_THRESHOLD", &cfg.Rules.FreeShippingThreshold},
		{"FLAT_SHIPPING_FEE", &cfg.Rules.FlatShippingFee},
		{"TAX_RATE", &cfg.Rules.TaxRate},
	}
	for _, f := range fields {
		v := strings.TrimSpace(os.Getenv(f.key))
		if v == "" {
			continue
		}
		d, err := decimal.NewFromString(v)
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", f.key, err)
		}
		if d.IsNegative() {
			return Config{}, fmt.Errorf("%s: must not be negative", f.key)
		}
		*f.dst = d
	}
	if cfg.Rules.BulkDiscountRate.GreaterThan(decimal.NewFromInt(1)) {
		return Config{}, fmt.Errorf("BULK_DISCOUNT_RATE: must be a fraction, got %s", cfg.Rules.BulkDiscountRate)
	}
	return cfg, nil
}

func envOr(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}
