package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Storage   StorageConfig   `yaml:"storage"`
	Auth      AuthConfig      `yaml:"auth"`
	Tailscale TailscaleConfig `yaml:"tailscale"`
	Views     ViewsConfig     `yaml:"views"`
	Theme     ThemeConfig     `yaml:"theme"`
	Log       LogConfig       `yaml:"log"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

type StorageConfig struct {
	Driver string `yaml:"driver"` // sqlite, postgres or memory
	Path   string `yaml:"path"`   // sqlite file
	DSN    string `yaml:"dsn"`    // postgres connection string
}

type AuthConfig struct {
	APIKey string `yaml:"api_key"`
}

type TailscaleConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Hostname string `yaml:"hostname"`
	StateDir string `yaml:"state_dir"`
}

type ViewsConfig struct {
	Locale string `yaml:"locale"`
}

type ThemeConfig struct {
	Default string `yaml:"default"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// Default returns a config usable without a file: SQLite under the user's home
// directory, server on 127.0.0.1:8080.
func Default() *Config {
	home, _ := os.UserHomeDir()
	return &Config{
		Server:  ServerConfig{Host: "127.0.0.1", Port: 8080},
		Storage: StorageConfig{Driver: "sqlite", Path: home + "/.repbook/repbook.db"},
		Tailscale: TailscaleConfig{
			Hostname: "repbook",
			StateDir: home + "/.repbook/tsnet",
		},
		Views: ViewsConfig{Locale: "fr"},
		Theme: ThemeConfig{Default: "light"},
		Log:   LogConfig{Level: "info"},
	}
}

// Load reads config from a YAML file on top of Default(), then applies environment
// variable overrides. Env vars use the prefix REPBOOK_:
//
//	REPBOOK_SERVER_HOST, REPBOOK_SERVER_PORT,
//	REPBOOK_STORAGE_DRIVER, REPBOOK_STORAGE_PATH, REPBOOK_STORAGE_DSN,
//	REPBOOK_AUTH_API_KEY, REPBOOK_VIEWS_LOCALE, REPBOOK_LOG_LEVEL
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	return finish(cfg)
}

// LoadOrDefault behaves like Load but falls back to Default() when the file does
// not exist.
func LoadOrDefault(path string) (*Config, error) {
	if path != "" {
		cfg, err := Load(path)
		if err == nil || !errors.Is(err, os.ErrNotExist) {
			return cfg, err
		}
	}
	return finish(Default())
}

func finish(cfg *Config) (*Config, error) {
	applyEnvOverrides(cfg)

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("REPBOOK_SERVER_HOST"); v != "" {
		cfg.Server.Host = v
	}
	if v := os.Getenv("REPBOOK_SERVER_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("REPBOOK_STORAGE_DRIVER"); v != "" {
		cfg.Storage.Driver = v
	}
	if v := os.Getenv("REPBOOK_STORAGE_PATH"); v != "" {
		cfg.Storage.Path = v
	}
	if v := os.Getenv("REPBOOK_STORAGE_DSN"); v != "" {
		cfg.Storage.DSN = v
	}
	if v := os.Getenv("REPBOOK_AUTH_API_KEY"); v != "" {
		cfg.Auth.APIKey = v
	}
	if v := os.Getenv("REPBOOK_VIEWS_LOCALE"); v != "" {
		cfg.Views.Locale = v
	}
	if v := os.Getenv("REPBOOK_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
}

func (c *Config) validate() error {
	if c.Server.Port <= 0 {
		return fmt.Errorf("server.port is required")
	}
	switch c.Storage.Driver {
	case "sqlite":
		if c.Storage.Path == "" {
			return fmt.Errorf("storage.path is required for sqlite")
		}
	case "postgres":
		if c.Storage.DSN == "" {
			return fmt.Errorf("storage.dsn is required for postgres")
		}
	case "memory":
	default:
		return fmt.Errorf("storage.driver %q is not one of sqlite, postgres, memory", c.Storage.Driver)
	}
	if c.Theme.Default != "light" && c.Theme.Default != "dark" {
		return fmt.Errorf("theme.default must be light or dark")
	}
	if c.Tailscale.Enabled && c.Tailscale.Hostname == "" {
		return fmt.Errorf("tailscale.hostname is required when tailscale is enabled")
	}
	if _, err := c.Log.SlogLevel(); err != nil {
		return err
	}
	if _, err := c.Views.Tag(); err != nil {
		return err
	}
	return nil
}

// Tag parses views.locale as a BCP 47 language tag. Empty means French.
func (v ViewsConfig) Tag() (language.Tag, error) {
	if v.Locale == "" {
		return language.French, nil
	}
	tag, err := language.Parse(v.Locale)
	if err != nil {
		return language.Und, fmt.Errorf("views.locale: %w", err)
	}
	return tag, nil
}

// SlogLevel maps log.level to a slog.Level. Empty means info.
func (l LogConfig) SlogLevel() (slog.Level, error) {
	var lvl slog.Level
	if l.Level == "" {
		return slog.LevelInfo, nil
	}
	if err := lvl.UnmarshalText([]byte(l.Level)); err != nil {
		return 0, fmt.Errorf("log.level: %w", err)
	}
	return lvl, nil
}
