package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/example/ninegrid/internal/core/puzzle"
)

// Store kinds
const (
	StoreSQLite = "sqlite"
	StoreRedis  = "redis"
	StoreMemory = "memory"
)

// EnvPrefix is prepended to every environment variable name.
const EnvPrefix = "NINEGRID_"

// Config represents the flat ninegrid configuration
type Config struct {
	Version       string   `json:"version"`
	Profile       string   `json:"profile" env:"PROFILE"`
	Store         string   `json:"store" env:"STORE"` // "sqlite", "redis" or "memory"
	DBPath        string   `json:"db_path,omitempty" env:"DB_PATH"`
	RedisAddr     string   `json:"redis_addr,omitempty" env:"REDIS_ADDR"`
	RedisPassword string   `json:"-" env:"REDIS_PASSWORD"`
	RedisDB       int      `json:"redis_db,omitempty" env:"REDIS_DB"`
	PagesBaseURL  string   `json:"pages_base_url,omitempty" env:"PAGES_BASE_URL"`
	NavigateDelay Duration `json:"navigate_delay" env:"NAVIGATE_DELAY"`
	ModalDelay    Duration `json:"modal_delay" env:"MODAL_DELAY"`
	OpenBrowser   bool     `json:"open_browser" env:"OPEN_BROWSER"`
	Sound         bool     `json:"sound" env:"SOUND"`
	LogLevel      string   `json:"log_level" env:"LOG_LEVEL"`
	LogFormat     string   `json:"log_format" env:"LOG_FORMAT"` // "console" or "json"
	LogFile       string   `json:"log_file,omitempty" env:"LOG_FILE"`
}

// Duration is a time.Duration written as "800ms" in JSON and env.
type Duration time.Duration

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	timing := puzzle.DefaultTiming()
	return &Config{
		Version:       "1",
		Profile:       "default",
		Store:         StoreSQLite,
		NavigateDelay: Duration(timing.NavigateDelay),
		ModalDelay:    Duration(timing.ModalDelay),
		Sound:         true,
		LogLevel:      "warn",
		LogFormat:     "console",
	}
}

// DefaultDir returns ~/.ninegrid.
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".ninegrid"), nil
}

// LoadConfig reads config.json from the specified directory.
// Returns error if no config found - caller should handle accordingly.
func LoadConfig(dir string) (*Config, error) {
	data, err := os.ReadFile(filepath.Join(dir, "config.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := DefaultConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return cfg, nil
}

// Resolve layers defaults, dir/config.json (when present) and NINEGRID_*
// environment variables, then validates the result.
func Resolve(dir string) (*Config, error) {
	cfg, err := LoadConfig(dir)
	if errors.Is(err, fs.ErrNotExist) {
		cfg = DefaultConfig()
	} else if err != nil {
		return nil, err
	}

	if err := ApplyEnv(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv overrides cfg with any NINEGRID_* variables that are set.
func ApplyEnv(cfg *Config) error {
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Validate checks field values.
func (c *Config) Validate() error {
	if c.Profile == "" {
		return errors.New("profile must not be empty")
	}
	switch c.Store {
	case StoreSQLite, StoreMemory:
	case StoreRedis:
		if c.RedisAddr == "" {
			return errors.New("redis store requires redis_addr")
		}
	default:
		return fmt.Errorf("unknown store %q (want sqlite, redis or memory)", c.Store)
	}
	if c.NavigateDelay < 0 || c.ModalDelay < 0 {
		return errors.New("delays must not be negative")
	}
	return nil
}

// Timing returns the configured delays.
func (c *Config) Timing() puzzle.Timing {
	return puzzle.Timing{
		NavigateDelay: time.Duration(c.NavigateDelay),
		ModalDelay:    time.Duration(c.ModalDelay),
	}
}

// SaveConfig writes config.json to directory
func SaveConfig(dir string, cfg *Config) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config dir: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	path := filepath.Join(dir, "config.json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}
