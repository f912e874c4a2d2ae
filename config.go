package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/walterschell/chess-notation/notation"
)

const DefaultPort = 8080

// Config holds the service settings. Values come from an optional YAML file
// and are then overridden by command-line flags.
type Config struct {
	Port      uint   `yaml:"port"`
	Delimiter string `yaml:"delimiter"`
	// Normalize folds full-width input to ASCII before decoding.
	Normalize bool `yaml:"normalize"`
}

func DefaultConfig() Config {
	return Config{
		Port:      DefaultPort,
		Delimiter: notation.DefaultDelimiter,
	}
}

// LoadConfig reads a YAML file on top of DefaultConfig.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	if c.Port == 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port number %d", c.Port)
	}
	return nil
}
