package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/bookindex/autocomplete/internal/core"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Environment variables that override values from the config file.
const (
	EnvEndpoint = "AUTOCOMPLETE_ENDPOINT"
	EnvLogLevel = "AUTOCOMPLETE_LOG_LEVEL"
)

// Loader handles loading and parsing of config.yaml files.
type Loader struct {
	logger *zap.Logger
	getenv func(string) string
}

// NewLoader creates a new configuration loader.
func NewLoader(logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{
		logger: logger,
		getenv: os.Getenv,
	}
}

// LoadResult contains the result of loading a configuration file.
type LoadResult struct {
	Config *Config
	Errors []error
}

// LoadFromFile loads configuration from a YAML file.
// Returns the configuration and any non-fatal errors encountered.
// If the file doesn't exist, returns default configuration with no error.
func (l *Loader) LoadFromFile(path string) (*LoadResult, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			l.logger.Debug("config file not found, using defaults", zap.String("path", path))
			result := &LoadResult{Config: DefaultConfig(), Errors: []error{}}
			l.applyEnv(result)
			return result, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return l.LoadFromString(string(content))
}

// LoadFromString loads configuration from a YAML document.
func (l *Loader) LoadFromString(source string) (*LoadResult, error) {
	result := &LoadResult{
		Config: DefaultConfig(),
		Errors: []error{},
	}

	if strings.TrimSpace(source) != "" {
		decoder := yaml.NewDecoder(bytes.NewBufferString(source))
		decoder.KnownFields(true)

		parsed := *result.Config
		if err := decoder.Decode(&parsed); err != nil && !errors.Is(err, io.EOF) {
			result.Errors = append(result.Errors, fmt.Errorf("parse error: %w", err))
			// Continue with defaults on parse errors
		} else {
			result.Config = &parsed
		}
	}

	l.applyEnv(result)
	l.validate(result)

	return result, nil
}

// LoadDefaultConfigPath loads configuration from the default path
// (~/.autocomplete/config.yaml).
func (l *Loader) LoadDefaultConfigPath() (*LoadResult, error) {
	return l.LoadFromFile(core.ConfigFile())
}

// applyEnv overrides file values with environment variables.
func (l *Loader) applyEnv(result *LoadResult) {
	if endpoint := l.getenv(EnvEndpoint); endpoint != "" {
		result.Config.Endpoint = endpoint
	}
	if level := l.getenv(EnvLogLevel); level != "" {
		result.Config.LogLevel = level
	}
}

// validate resets invalid values to their defaults, recording an error for each.
func (l *Loader) validate(result *LoadResult) {
	defaults := DefaultConfig()
	cfg := result.Config

	if cfg.Timeout < 0 {
		result.Errors = append(result.Errors, fmt.Errorf("timeout must not be negative, got %s", cfg.Timeout))
		cfg.Timeout = defaults.Timeout
	}

	if cfg.MaxVisible <= 0 {
		result.Errors = append(result.Errors, fmt.Errorf("maxVisible must be positive, got %d", cfg.MaxVisible))
		cfg.MaxVisible = defaults.MaxVisible
	}

	if _, err := zap.ParseAtomicLevel(cfg.LogLevel); err != nil {
		result.Errors = append(result.Errors, fmt.Errorf("invalid logLevel %q", cfg.LogLevel))
		cfg.LogLevel = defaults.LogLevel
	}
}
