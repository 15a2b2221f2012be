// Package config handles loading and saving user configuration for morty.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/f3rmion/morty/internal/api"
	"github.com/f3rmion/morty/internal/browse"
	"github.com/f3rmion/morty/internal/paging"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// FileName is the config file inside the config directory.
const FileName = "config.yaml"

// EnvPrefix prefixes environment overrides, e.g. MORTY_PAGE_SIZE.
const EnvPrefix = "MORTY"

// ErrInvalidPageSize is returned for page sizes outside paging.PageSizes.
var ErrInvalidPageSize = errors.New("invalid page size")

// Config holds all user configuration.
type Config struct {
	APIBaseURL        string        `mapstructure:"api_base_url"`
	PageSize          int           `mapstructure:"page_size"`
	Debounce          time.Duration `mapstructure:"debounce"`
	HTTPTimeout       time.Duration `mapstructure:"http_timeout"` // 0 = no timeout
	RequestsPerSecond float64       `mapstructure:"requests_per_second"`
	StorePath         string        `mapstructure:"store_path"` // Favorites database
	LogFile           string        `mapstructure:"log_file"`
	Portraits         bool          `mapstructure:"portraits"` // Render avatars in the detail view
}

// fileConfig is the on-disk shape written by Save. Durations are kept as
// strings so the file stays readable.
type fileConfig struct {
	APIBaseURL        string  `yaml:"api_base_url"`
	PageSize          int     `yaml:"page_size"`
	Debounce          string  `yaml:"debounce"`
	HTTPTimeout       string  `yaml:"http_timeout"`
	RequestsPerSecond float64 `yaml:"requests_per_second"`
	StorePath         string  `yaml:"store_path,omitempty"`
	LogFile           string  `yaml:"log_file,omitempty"`
	Portraits         bool    `yaml:"portraits"`
}

// Default returns the configuration used when no file is present. Paths are
// resolved against dir.
func Default(dir string) Config {
	return Config{
		APIBaseURL:        api.DefaultBaseURL,
		PageSize:          paging.DefaultPageSize,
		Debounce:          browse.DefaultDebounce,
		RequestsPerSecond: 5,
		StorePath:         filepath.Join(dir, "favorites.db"),
		LogFile:           filepath.Join(dir, "morty.log"),
		Portraits:         true,
	}
}

// Load reads dir/config.yaml if it exists and applies MORTY_* environment
// overrides on top of the defaults.
func Load(dir string) (*Config, error) {
	v := viper.New()
	def := Default(dir)
	v.SetDefault("api_base_url", def.APIBaseURL)
	v.SetDefault("page_size", def.PageSize)
	v.SetDefault("debounce", def.Debounce)
	v.SetDefault("http_timeout", def.HTTPTimeout)
	v.SetDefault("requests_per_second", def.RequestsPerSecond)
	v.SetDefault("store_path", def.StorePath)
	v.SetDefault("log_file", def.LogFile)
	v.SetDefault("portraits", def.Portraits)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	path := filepath.Join(dir, FileName)
	if _, err := os.Stat(path); err == nil {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	// Relative paths in the file are relative to the config directory.
	cfg.StorePath = resolve(dir, cfg.StorePath)
	cfg.LogFile = resolve(dir, cfg.LogFile)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if !paging.ValidPageSize(c.PageSize) {
		return fmt.Errorf("%w: %d (allowed %v)", ErrInvalidPageSize, c.PageSize, paging.PageSizes)
	}
	if c.Debounce < 0 {
		return fmt.Errorf("debounce must not be negative: %s", c.Debounce)
	}
	if c.HTTPTimeout < 0 {
		return fmt.Errorf("http_timeout must not be negative: %s", c.HTTPTimeout)
	}
	if c.RequestsPerSecond < 0 {
		return fmt.Errorf("requests_per_second must not be negative: %v", c.RequestsPerSecond)
	}
	if c.StorePath == "" {
		return fmt.Errorf("store_path must be set")
	}
	return nil
}

// Save writes cfg to path as YAML.
func Save(path string, cfg *Config) error {
	data := fileConfig{
		APIBaseURL:        cfg.APIBaseURL,
		PageSize:          cfg.PageSize,
		Debounce:          cfg.Debounce.String(),
		HTTPTimeout:       cfg.HTTPTimeout.String(),
		RequestsPerSecond: cfg.RequestsPerSecond,
		StorePath:         cfg.StorePath,
		LogFile:           cfg.LogFile,
		Portraits:         cfg.Portraits,
	}

	out, err := yaml.Marshal(&data)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, out, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// GetConfigDir returns the default configuration directory.
func GetConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "morty"), nil
}

// EnsureDir creates dir if it doesn't exist.
func EnsureDir(dir string) error {
	return os.MkdirAll(dir, 0755)
}

func resolve(dir, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(dir, path)
}
