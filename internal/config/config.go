// Package config provides configuration management for the autocomplete
// client. It handles loading config.yaml, applying environment overrides,
// and mapping the result onto the Config struct.
package config

import (
	"time"

	"go.uber.org/zap"
)

// Config holds all client configuration.
type Config struct {
	// Endpoint is the base URL of the server hosting /autocomplete.
	Endpoint string `yaml:"endpoint"`

	// Timeout bounds a single suggestion request. Zero disables it.
	Timeout time.Duration `yaml:"timeout"`

	// LogLevel controls logging verbosity.
	LogLevel string `yaml:"logLevel"`

	// Prompt is the prefix rendered before each input field.
	Prompt string `yaml:"prompt"`

	// MaxVisible is the number of suggestion rows shown at once.
	MaxVisible int `yaml:"maxVisible"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Endpoint:   "http://localhost:5000",
		Timeout:    5 * time.Second,
		LogLevel:   "info",
		Prompt:     "> ",
		MaxVisible: 8,
	}
}

// Level parses LogLevel, falling back to info for unknown values.
func (c *Config) Level() zap.AtomicLevel {
	level, err := zap.ParseAtomicLevel(c.LogLevel)
	if err != nil {
		return zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	return level
}
