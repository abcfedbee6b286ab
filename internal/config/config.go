// Package config loads runtime settings from the environment and an optional .env file.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"github.com/mmynk/qitta/internal/roster"
	"github.com/mmynk/qitta/internal/tripstore"
)

// Config holds every setting of the server and the CLI.
type Config struct {
	Port       int
	DBPath     string
	StorageKey string

	RosterURL      string
	RosterProxyURL string
	RosterTimeout  time.Duration

	DefaultAdultFee decimal.Decimal
	DefaultChildFee decimal.Decimal

	// KeepFeeCoveredExpenses keeps a zero-amount ledger line for expenses
	// entirely absorbed by the payer's fee.
	KeepFeeCoveredExpenses bool
}

// Load reads .env (if present) and then the environment.
func Load() (*Config, error) {
	godotenv.Load() // Load .env file if present

	cfg := &Config{
		DBPath:         getEnv("DB_PATH", "./data/qitta.db"),
		StorageKey:     getEnv("STORAGE_KEY", tripstore.DefaultKey),
		RosterURL:      getEnv("ROSTER_URL", ""),
		RosterProxyURL: getEnv("ROSTER_PROXY_URL", roster.DefaultProxyURL),
	}

	var err error
	if cfg.Port, err = strconv.Atoi(getEnv("PORT", "8080")); err != nil {
		return nil, fmt.Errorf("invalid PORT: %w", err)
	}
	if cfg.RosterTimeout, err = time.ParseDuration(getEnv("ROSTER_TIMEOUT", "15s")); err != nil {
		return nil, fmt.Errorf("invalid ROSTER_TIMEOUT: %w", err)
	}
	if cfg.DefaultAdultFee, err = decimal.NewFromString(getEnv("DEFAULT_ADULT_FEE", "100")); err != nil {
		return nil, fmt.Errorf("invalid DEFAULT_ADULT_FEE: %w", err)
	}
	if cfg.DefaultChildFee, err = decimal.NewFromString(getEnv("DEFAULT_CHILD_FEE", "50")); err != nil {
		return nil, fmt.Errorf("invalid DEFAULT_CHILD_FEE: %w", err)
	}
	if cfg.KeepFeeCoveredExpenses, err = strconv.ParseBool(getEnv("KEEP_FEE_COVERED_EXPENSES", "false")); err != nil {
		return nil, fmt.Errorf("invalid KEEP_FEE_COVERED_EXPENSES: %w", err)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return fallback
}
