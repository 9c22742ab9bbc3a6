package tradesim

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// LoggingConfig configures the application logger.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text or json
}

// ServerConfig holds the network listener configuration of the HTTP API.
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// Config carries every path and tunable of the simulator. Components receive
// it (or values derived from it) explicitly through their constructors; there
// are no process-wide mutable defaults.
type Config struct {
	DataDir       string `yaml:"data_dir"`
	LedgerFile    string `yaml:"ledger_file"`
	SnapshotsFile string `yaml:"snapshots_file"`
	HistoryFile   string `yaml:"history_file"`

	Currency string  `yaml:"currency"`
	SeedCash float64 `yaml:"seed_cash"`

	// EnforceMarketHours enables the MarketClosed gate on the engine.
	EnforceMarketHours bool `yaml:"enforce_market_hours"`

	Logging LoggingConfig `yaml:"logging"`
	Server  ServerConfig  `yaml:"server"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() Config {
	return Config{
		DataDir:       "data",
		LedgerFile:    "portfolio.json",
		SnapshotsFile: "snapshots.csv",
		HistoryFile:   "transactions.json",
		Currency:      "USD",
		SeedCash:      10000,
		Logging:       LoggingConfig{Level: "info", Format: "text"},
		Server:        ServerConfig{Host: "127.0.0.1", Port: 8080},
	}
}

// LoadConfig reads the YAML configuration at path, starting from the
// defaults, and then applies environment variable overrides. An empty path
// yields the defaults (plus overrides).
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("could not read config file %q: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("could not parse config file %q: %w", path, err)
		}
	}

	cfg.applyEnvOverrides()

	if cfg.SeedCash < 0 {
		return cfg, fmt.Errorf("seed_cash %v must not be negative", cfg.SeedCash)
	}
	return cfg, nil
}

// applyEnvOverrides checks well-known environment variables and overrides
// the corresponding fields when they are set.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("TRADESIM_DATA_DIR"); v != "" {
		c.DataDir = v
	}
	if v := os.Getenv("TRADESIM_CURRENCY"); v != "" {
		c.Currency = v
	}
	if v := os.Getenv("TRADESIM_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Server.Port = port
		}
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
}

// resolve joins a configured file name with the data directory, leaving
// absolute paths alone.
func (c Config) resolve(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(c.DataDir, name)
}

// LedgerPath is the resolved location of the persisted ledger.
func (c Config) LedgerPath() string { return c.resolve(c.LedgerFile) }

// SnapshotsPath is the resolved location of the audit log.
func (c Config) SnapshotsPath() string { return c.resolve(c.SnapshotsFile) }

// HistoryPath is the resolved location of the transaction history.
func (c Config) HistoryPath() string { return c.resolve(c.HistoryFile) }

// Seed is the cash balance a fresh ledger starts with.
func (c Config) Seed() Money { return M(c.SeedCash, c.Currency) }
