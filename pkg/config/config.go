package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/Veraticus/rkmatch/pkg/matcher"
	"github.com/Veraticus/rkmatch/pkg/report"
)

// Style names accepted in addition to the report delimiter styles.
const (
	StyleAuto = "auto"
)

// Config holds all configuration for rkmatch
type Config struct {
	// Hash parameters
	CaseSensitive bool  `yaml:"case_sensitive" env:"RKMATCH_CASE_SENSITIVE"`
	Base          int64 `yaml:"base" env:"RKMATCH_BASE"`
	Modulus       int64 `yaml:"modulus" env:"RKMATCH_MODULUS"`

	// Output
	Style      string `yaml:"style" env:"RKMATCH_STYLE"`
	ExportPath string `yaml:"export_path" env:"RKMATCH_EXPORT"`
	ShowStats  bool   `yaml:"show_stats" env:"RKMATCH_STATS"`

	// Concurrent sources
	Workers int `yaml:"workers" env:"RKMATCH_WORKERS"`

	// Logging
	LogLevel  string `yaml:"log_level" env:"RKMATCH_LOG_LEVEL"`
	LogFormat string `yaml:"log_format" env:"RKMATCH_LOG_FORMAT"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		CaseSensitive: true,
		Base:          matcher.DefaultBase,
		Modulus:       matcher.DefaultModulus,
		Style:         StyleAuto,
		ShowStats:     true,
		Workers:       4,
		LogLevel:      "warn",
		LogFormat:     "text",
	}
}

// SearchOptions returns the matcher options described by the configuration.
func (c *Config) SearchOptions() matcher.Options {
	return matcher.Options{
		CaseSensitive: c.CaseSensitive,
		Base:          c.Base,
		Modulus:       c.Modulus,
	}
}

// Load loads configuration from the default file location and environment
func Load() (*Config, error) {
	return LoadFrom(getConfigPath())
}

// LoadFrom loads configuration from path (if it exists) and environment.
// An empty path skips the file.
func LoadFrom(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		if err := loadFromFile(cfg, path); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	}

	// Override with environment variables
	if err := loadFromEnv(cfg); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// getConfigPath returns the config file path
func getConfigPath() string {
	if path := os.Getenv("RKMATCH_CONFIG"); path != "" {
		return path
	}

	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "rkmatch", "config.yaml")
	}

	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".config", "rkmatch", "config.yaml")
	}

	return ""
}

// loadFromFile loads configuration from a YAML file
func loadFromFile(cfg *Config, path string) error {
	// #nosec G304 - The config file path comes from trusted sources (flag, env var or standard locations)
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	return yaml.Unmarshal(data, cfg)
}

// loadFromEnv loads configuration from environment variables
func loadFromEnv(cfg *Config) error {
	if v := os.Getenv("RKMATCH_CASE_SENSITIVE"); v != "" {
		b, err := parseBool(v)
		if err != nil {
			return fmt.Errorf("invalid RKMATCH_CASE_SENSITIVE value: %w", err)
		}
		cfg.CaseSensitive = b
	}

	if v := os.Getenv("RKMATCH_BASE"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid RKMATCH_BASE: %w", err)
		}
		cfg.Base = n
	}

	if v := os.Getenv("RKMATCH_MODULUS"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid RKMATCH_MODULUS: %w", err)
		}
		cfg.Modulus = n
	}

	if v := os.Getenv("RKMATCH_STYLE"); v != "" {
		cfg.Style = v
	}

	if v := os.Getenv("RKMATCH_EXPORT"); v != "" {
		cfg.ExportPath = v
	}

	if v := os.Getenv("RKMATCH_STATS"); v != "" {
		b, err := parseBool(v)
		if err != nil {
			return fmt.Errorf("invalid RKMATCH_STATS value: %w", err)
		}
		cfg.ShowStats = b
	}

	if v := os.Getenv("RKMATCH_WORKERS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid RKMATCH_WORKERS: %w", err)
		}
		cfg.Workers = n
	}

	if v := os.Getenv("RKMATCH_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}

	if v := os.Getenv("RKMATCH_LOG_FORMAT"); v != "" {
		cfg.LogFormat = v
	}

	return nil
}

func parseBool(v string) (bool, error) {
	switch v {
	case "true", "1", "yes":
		return true, nil
	case "false", "0", "no":
		return false, nil
	default:
		return false, fmt.Errorf("%q (use true/false)", v)
	}
}

// Validate checks the configuration. Invalid hash parameters are reported as
// a *matcher.ConfigurationError.
func Validate(cfg *Config) error {
	if err := cfg.SearchOptions().Validate(); err != nil {
		return err
	}

	switch cfg.Style {
	case StyleAuto, report.TerminalName:
	default:
		if _, ok := report.StyleByName(cfg.Style); !ok {
			return fmt.Errorf("unknown style %q (use auto, terminal, display or export)", cfg.Style)
		}
	}

	if cfg.Workers < 1 {
		return fmt.Errorf("workers must be at least 1")
	}

	switch cfg.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("unknown log_format %q (use text or json)", cfg.LogFormat)
	}

	return nil
}
