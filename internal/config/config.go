/*
PURPOSE:
  Defines the configuration structure and loading logic for dexview.
  Adheres to "Config IS Code" philosophy.

REQUIREMENTS:
  User-specified:
  - Allow configuration of the upstream API base, index page size and listen address.

  Implementation-discovered:
  - Needs to support YAML parsing.
  - Needs to support Environment variables overrides (DEX_...), including values from a .env file.
  - Needs validation before the engine dials anything.

ARCHITECTURE INTEGRATION:
  - Used by: internal/cli, internal/engine, internal/server
  - Dependencies: gopkg.in/yaml.v3, github.com/go-playground/validator/v10

ERROR HANDLING:
  - Returns explicit error if config file is invalid.
  - Missing default files fall back to defaults silently.
  - Malformed env values are reported, not ignored.

IMPLEMENTATION RULES:
  - Config struct tags should support yaml.
  - Defaults mirror the public API (100 entries per index page, no request timeout).

USAGE:
  cfg, err := config.Load("dexview.yaml")

SELF-HEALING INSTRUCTIONS:
  - If new fields are needed, add to Config struct, DefaultConfig() and applyEnv().

RELATED FILES:
  - internal/cli/root.go

MAINTENANCE:
  - Update when adding new tuning parameters.
*/

package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// DefaultAPIBase is the public creature-data API.
const DefaultAPIBase = "https://pokeapi.co/api/v2"

// Config represents the full configuration for dexview.
type Config struct {
	APIBase    string `yaml:"api_base" validate:"required,url"`
	PageLimit  int    `yaml:"page_limit" validate:"min=1,max=2000"`
	PageOffset int    `yaml:"page_offset" validate:"min=0"`
	// RequestTimeout bounds each upstream request. Zero means no timeout.
	RequestTimeout time.Duration `yaml:"request_timeout" validate:"min=0"`
	UserAgent      string        `yaml:"user_agent"`
	ListenAddr     string        `yaml:"listen_addr" validate:"required"`
	LogLevel       string        `yaml:"log_level" validate:"omitempty,oneof=debug info warn error"`
	LogFormat      string        `yaml:"log_format" validate:"omitempty,oneof=text json"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		APIBase:    DefaultAPIBase,
		PageLimit:  100,
		PageOffset: 0,
		UserAgent:  "dexview/1.0",
		ListenAddr: ":8080",
		LogLevel:   "info",
		LogFormat:  "text",
	}
}

// Load reads configuration from a file.
// If path is specified, it attempts to load that file.
// If path is empty, it searches for default files in order.
// Environment overrides are applied last, then the result is validated.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	var data []byte
	var err error

	if path != "" {
		data, err = os.ReadFile(path)
		if err != nil {
			return cfg, err
		}
	} else {
		defaults := []string{"dexview.yaml", "dexview.yml"}
		for _, name := range defaults {
			data, err = os.ReadFile(name)
			if err == nil {
				path = name
				break
			}
		}
	}

	if data != nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks field constraints.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("DEX_API_BASE"); v != "" {
		c.APIBase = v
	}
	if v := os.Getenv("DEX_USER_AGENT"); v != "" {
		c.UserAgent = v
	}
	if v := os.Getenv("DEX_LISTEN_ADDR"); v != "" {
		c.ListenAddr = v
	}
	if v := os.Getenv("DEX_PAGE_LIMIT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("DEX_PAGE_LIMIT: %w", err)
		}
		c.PageLimit = n
	}
	if v := os.Getenv("DEX_PAGE_OFFSET"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("DEX_PAGE_OFFSET: %w", err)
		}
		c.PageOffset = n
	}
	if v := os.Getenv("DEX_REQUEST_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("DEX_REQUEST_TIMEOUT: %w", err)
		}
		c.RequestTimeout = d
	}
	return nil
}
