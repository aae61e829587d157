package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"
)

// ModelTiers holds the three configurable Anthropic model names.
// The default tier used at runtime lives in the app_settings table,
// not here; these are the allowed values.
type ModelTiers struct {
	Haiku  string `json:"haiku"`
	Sonnet string `json:"sonnet"`
	Opus   string `json:"opus"`
}

// Names returns the configured tier names in a fixed order.
func (t ModelTiers) Names() []string {
	return []string{t.Haiku, t.Sonnet, t.Opus}
}

// Contains reports whether name is one of the configured tiers.
func (t ModelTiers) Contains(name string) bool {
	return name == t.Haiku || name == t.Sonnet || name == t.Opus
}

type AnthropicConfig struct {
	BaseURL        string     `json:"base_url"`
	APIKey         string     `json:"api_key"`
	Version        string     `json:"version"`
	TimeoutSeconds int        `json:"timeout_seconds"`
	Models         ModelTiers `json:"models"`
}

type Config struct {
	Server struct {
		Host      string `json:"host"`
		Port      int    `json:"port"`
		JWTSecret string `json:"jwtSecret"`
	} `json:"server"`
	Postgres struct {
		DSN string `json:"dsn"`
	} `json:"postgres"`
	Redis struct {
		Addr     string `json:"addr"`
		Password string `json:"password"`
		DB       int    `json:"db"`
	} `json:"redis"`
	Anthropic AnthropicConfig `json:"anthropic"`
}

var (
	once   sync.Once
	cfg    *Config
	cfgErr error
)

// LoadConfig reads config.json from disk (singleton)
func LoadConfig(path string) (*Config, error) {
	once.Do(func() {
		raw, err := os.ReadFile(path)
		if err != nil {
			cfgErr = fmt.Errorf("failed to read config file: %w", err)
			return
		}
		var c Config
		if err := json.Unmarshal(raw, &c); err != nil {
			cfgErr = fmt.Errorf("invalid config format: %w", err)
			return
		}
		// Minimal validation
		if c.Server.JWTSecret == "" {
			cfgErr = errors.New("jwtSecret must be set in config")
			return
		}
		if c.Anthropic.APIKey == "" {
			cfgErr = errors.New("anthropic api_key must be set in config")
			return
		}
		applyDefaults(&c)
		cfg = &c
	})
	return cfg, cfgErr
}

func applyDefaults(c *Config) {
	if c.Anthropic.BaseURL == "" {
		c.Anthropic.BaseURL = "https://api.anthropic.com"
	}
	if c.Anthropic.Version == "" {
		c.Anthropic.Version = "2023-06-01"
	}
	if c.Anthropic.TimeoutSeconds == 0 {
		c.Anthropic.TimeoutSeconds = 120
	}
	if c.Anthropic.Models.Haiku == "" {
		c.Anthropic.Models.Haiku = "claude-3-5-haiku-20241022"
	}
	if c.Anthropic.Models.Sonnet == "" {
		c.Anthropic.Models.Sonnet = "claude-sonnet-4-5"
	}
	if c.Anthropic.Models.Opus == "" {
		c.Anthropic.Models.Opus = "claude-opus-4-5"
	}
}

// GetConfig returns the loaded config (must call LoadConfig first)
func GetConfig() *Config {
	return cfg
}

// ResetConfigForTest resets the singleton state (for testing only)
func ResetConfigForTest() {
	once = sync.Once{}
	cfg = nil
	cfgErr = nil
}
