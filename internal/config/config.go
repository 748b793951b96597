package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/example/barter/internal/core/messaging"
	"github.com/example/barter/internal/db"
)

// Environment variables overlaid on the file configuration.
const (
	EnvDBPath      = "BARTER_DB_PATH"
	EnvAddr        = "BARTER_ADDR"
	EnvLogLevel    = "BARTER_LOG_LEVEL"
	EnvPageSize    = "BARTER_PAGE_SIZE"
	EnvMaxPageSize = "BARTER_MAX_PAGE_SIZE"
	EnvMaxBody     = "BARTER_MAX_BODY"
	EnvRateRPS     = "BARTER_RATE_RPS"
	EnvRateBurst   = "BARTER_RATE_BURST"
)

// Config represents the barter configuration.
type Config struct {
	DBPath      string  `yaml:"db_path"`
	Addr        string  `yaml:"addr"`
	LogLevel    string  `yaml:"log_level"`
	PageSize    int     `yaml:"page_size"`
	MaxPageSize int     `yaml:"max_page_size"`
	MaxBody     int     `yaml:"max_body"` // message text limit, in characters
	RateRPS     float64 `yaml:"rate_rps"` // sends per second per user
	RateBurst   int     `yaml:"rate_burst"`
	MaxRequest  int64   `yaml:"max_request_bytes"` // HTTP request body limit
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		DBPath:      defaultDBPath(),
		Addr:        ":8080",
		LogLevel:    "info",
		PageSize:    messaging.DefaultPageSize,
		MaxPageSize: messaging.MaxPageSize,
		MaxBody:     messaging.DefaultMaxBodyLength,
		RateRPS:     5,
		RateBurst:   10,
		MaxRequest:  64 << 10,
	}
}

// DefaultPath returns ~/.barter/config.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".barter", "config.yaml"), nil
}

func defaultDBPath() string {
	path, err := db.DefaultPath()
	if err != nil {
		return "barter.db"
	}
	return path
}

// LoadConfig reads the YAML file at path over the defaults.
// A missing file is not an error.
func LoadConfig(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

// Load reads the file at path, loads an optional .env file from the working
// directory and applies environment overrides. The result is validated.
func Load(path string) (*Config, error) {
	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, err
	}

	// .env is optional; variables already set in the environment win
	_ = godotenv.Load()

	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SaveConfig writes cfg to path as YAML, creating parent directories.
func SaveConfig(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config dir: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// ApplyEnv overlays variables returned by lookup (os.LookupEnv in production).
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvDBPath); ok && v != "" {
		c.DBPath = v
	}
	if v, ok := lookup(EnvAddr); ok && v != "" {
		c.Addr = v
	}
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		c.LogLevel = strings.ToLower(v)
	}

	ints := []struct {
		name string
		dst  *int
	}{
		{EnvPageSize, &c.PageSize},
		{EnvMaxPageSize, &c.MaxPageSize},
		{EnvMaxBody, &c.MaxBody},
		{EnvRateBurst, &c.RateBurst},
	}
	for _, e := range ints {
		v, ok := lookup(e.name)
		if !ok || v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", e.name, v, err)
		}
		*e.dst = n
	}

	if v, ok := lookup(EnvRateRPS); ok && v != "" {
		rps, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvRateRPS, v, err)
		}
		c.RateRPS = rps
	}
	return nil
}

// Validate reports the first inconsistent setting.
func (c *Config) Validate() error {
	switch {
	case c.DBPath == "":
		return fmt.Errorf("db_path must be set")
	case c.PageSize < 1:
		return fmt.Errorf("page_size must be positive, got %d", c.PageSize)
	case c.MaxPageSize < c.PageSize:
		return fmt.Errorf("max_page_size %d is smaller than page_size %d", c.MaxPageSize, c.PageSize)
	case c.MaxBody < 1:
		return fmt.Errorf("max_body must be positive, got %d", c.MaxBody)
	case c.RateRPS < 0:
		return fmt.Errorf("rate_rps must not be negative, got %v", c.RateRPS)
	case c.RateRPS > 0 && c.RateBurst < 1:
		return fmt.Errorf("rate_burst must be positive when rate_rps is set, got %d", c.RateBurst)
	case c.MaxRequest < 1:
		return fmt.Errorf("max_request_bytes must be positive, got %d", c.MaxRequest)
	}

	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log_level %q", c.LogLevel)
	}
	return nil
}
