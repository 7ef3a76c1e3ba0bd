// Package config loads the telwired server configuration.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Addr        string `yaml:"addr"`
	MetricsAddr string `yaml:"metrics_addr"`
	Welcome     string `yaml:"welcome_message"`
	Translate   bool   `yaml:"translate"`
	LogLevel    string `yaml:"log_level"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Addr:      ":4001",
		Welcome:   "connected to telwired\n",
		Translate: true,
		LogLevel:  "info",
	}
}

// Load reads a YAML configuration file over the defaults.
func Load(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Addr == "" {
		return fmt.Errorf("config: addr must not be empty")
	}
	return nil
}
