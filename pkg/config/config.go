package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/vasiliy-maslov/laundry-service/internal/order"
)

type Config struct {
	App struct {
		Port string
	}
	Data struct {
		Dir        string
		ReceiptDir string
	}
	Billing struct {
		LateFeePerDay decimal.Decimal
	}
}

// Load reads configuration from the environment, optionally seeded
// from a .env file. Every value has a default; a missing .env is fine.
func Load(path string) (*Config, error) {
	if path != "" {
		if err := godotenv.Load(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to load .env: %w", err)
		}
	}

	cfg := &Config{}
	cfg.App.Port = getenv("APP_PORT", "8081")
	cfg.Data.Dir = getenv("LAUNDRY_DATA_DIR", "data_laundry")
	cfg.Data.ReceiptDir = os.Getenv("LAUNDRY_RECEIPT_DIR")
	if cfg.Data.ReceiptDir == "" {
		cfg.Data.ReceiptDir = filepath.Join(cfg.Data.Dir, "receipts")
	}

	feeStr := getenv("LAUNDRY_LATE_FEE_PER_DAY", order.DefaultLateFeePerDay.String())
	fee, err := decimal.NewFromString(feeStr)
	if err != nil {
		return nil, fmt.Errorf("invalid LAUNDRY_LATE_FEE_PER_DAY %q: %w", feeStr, err)
	}
	cfg.Billing.LateFeePerDay = fee

	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
