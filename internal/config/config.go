package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

const (
	// DirName is the per-user data directory under $HOME.
	DirName = ".sysos"
	// FileName is the config file inside DirName.
	FileName = "config.yaml"
	// EnvPrefix is prepended to every environment override, e.g. SYSOS_DSN.
	EnvPrefix = "SYSOS"
)

const defaultConfigYAML = `# SYSTEM.OS configuration
# Any value can be overridden from the environment, e.g. SYSOS_TIMEZONE=Europe/Rome.

# Identifies the snapshot row in the database.
user_id: local

# SQLite file path, or a postgres:// URL. Empty uses ~/.sysos/sysos.db.
dsn: ""

# IANA zone used for day boundaries. Empty uses the system zone.
timezone: ""

log:
  level: info
  encoding: json
  # Empty writes to ~/.sysos/sysos.log so terminal output stays clean.
  path: ""

generator:
  # Leave empty to always use the built-in templates.
  api_key: ""
  model: gpt-4o-mini
  base_url: ""
  timeout: 8s
`

type LogConfig struct {
	Level    string `yaml:"level" split_words:"true"`
	Encoding string `yaml:"encoding" split_words:"true"`
	Path     string `yaml:"path" split_words:"true"`
}

type GeneratorConfig struct {
	APIKey  string        `yaml:"api_key" split_words:"true"`
	Model   string        `yaml:"model" split_words:"true"`
	BaseURL string        `yaml:"base_url" split_words:"true"`
	Timeout time.Duration `yaml:"timeout" split_words:"true"`
}

// Config holds the runtime configuration for sysos.
type Config struct {
	UserID   string `yaml:"user_id" split_words:"true"`
	DSN      string `yaml:"dsn" split_words:"true"`
	Timezone string `yaml:"timezone" split_words:"true"`

	// Nested fields are read from SYSOS_LOG_* and SYSOS_GENERATOR_*. Keys are
	// always prefixed; bare names such as PATH are never consulted.
	Log       LogConfig       `yaml:"log"`
	Generator GeneratorConfig `yaml:"generator"`

	// Dir is the data directory the config was loaded from.
	Dir string `yaml:"-" ignored:"true"`
}

func defaults() Config {
	return Config{
		UserID: "local",
		Log: LogConfig{
			Level:    "info",
			Encoding: "json",
		},
		Generator: GeneratorConfig{
			Model:   "gpt-4o-mini",
			Timeout: 8 * time.Second,
		},
	}
}

// DefaultDir returns ~/.sysos.
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, DirName), nil
}

// Load reads dir/config.yaml, writing the default file first if it does not
// exist, then applies SYSOS_* environment overrides.
func Load(dir string) (*Config, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create config dir: %w", err)
	}
	path := filepath.Join(dir, FileName)
	if err := ensureFile(path); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg := defaults()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("process env vars: %w", err)
	}
	cfg.Dir = dir
	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func ensureFile(path string) error {
	_, err := os.Stat(path)
	if err == nil {
		return nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("stat config: %w", err)
	}
	if err := os.WriteFile(path, []byte(defaultConfigYAML), 0o600); err != nil {
		return fmt.Errorf("write default config: %w", err)
	}
	return nil
}

func (c *Config) normalize() {
	c.UserID = strings.TrimSpace(c.UserID)
	if c.UserID == "" {
		c.UserID = "local"
	}
	c.DSN = strings.TrimSpace(c.DSN)
	if c.Log.Path == "" && c.Dir != "" {
		c.Log.Path = filepath.Join(c.Dir, "sysos.log")
	}
	if c.Generator.Timeout <= 0 {
		c.Generator.Timeout = 8 * time.Second
	}
}

// Validate checks values that would otherwise fail much later.
func (c *Config) Validate() error {
	if _, err := c.Location(); err != nil {
		return err
	}
	switch strings.ToLower(c.Log.Encoding) {
	case "", "json", "console":
	default:
		return fmt.Errorf("log.encoding must be json or console, got %q", c.Log.Encoding)
	}
	return nil
}

// Location resolves Timezone, falling back to the system zone when empty.
func (c *Config) Location() (*time.Location, error) {
	if strings.TrimSpace(c.Timezone) == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// GeneratorEnabled reports whether remote content generation is configured.
func (c *Config) GeneratorEnabled() bool {
	return strings.TrimSpace(c.Generator.APIKey) != ""
}
