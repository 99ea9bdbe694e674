// Package config loads run settings from the environment.
package config

import (
	"fmt"
	"log/slog"

	"github.com/caarlos0/env/v11"
)

// Ledger backends.
const (
	StoreMemory = "memory"
	StoreSQLite = "sqlite"
)

type Config struct {
	// LedgerStore selects where the food journal lives.
	LedgerStore string `env:"ZOO_LEDGER_STORE" envDefault:"memory"`
	// SQLitePath is only read when LedgerStore is sqlite.
	SQLitePath  string     `env:"ZOO_SQLITE_PATH" envDefault:":memory:"`
	LogLevel    slog.Level `env:"ZOO_LOG_LEVEL" envDefault:"info"`
	MetricsFile string     `env:"ZOO_METRICS_FILE"`
	StrictLoad  bool       `env:"ZOO_STRICT_LOAD" envDefault:"false"`
}

// Load parses the environment and validates the result.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.LedgerStore {
	case StoreMemory, StoreSQLite:
	default:
		return fmt.Errorf("ZOO_LEDGER_STORE: unknown store %q (want %s or %s)", c.LedgerStore, StoreMemory, StoreSQLite)
	}
	if c.LedgerStore == StoreSQLite && c.SQLitePath == "" {
		return fmt.Errorf("ZOO_SQLITE_PATH must be set for the sqlite store")
	}
	return nil
}
