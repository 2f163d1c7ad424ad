package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/mcncl/jsonv/internal/transform"
)

// Config represents the complete configuration for jsonv
type Config struct {
	// SortKeys emits object members in sorted key order for
	// deterministic, diffable output.
	SortKeys bool `yaml:"sort_keys"`
	// RenameKeys converts every object key to the named style
	// (snake, camel, lower-camel, kebab, screaming-snake). Empty
	// disables renaming.
	RenameKeys string `yaml:"rename_keys"`
	// TrailingNewline appends a newline to the serialized document.
	TrailingNewline bool `yaml:"trailing_newline"`
}

// NewConfig creates a new Config with default values
func NewConfig() *Config {
	return &Config{
		SortKeys:        false,
		RenameKeys:      "",
		TrailingNewline: true,
	}
}

// LoadConfig loads configuration from a YAML file
func LoadConfig(path string) (*Config, error) {
	// Read file
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Start with defaults
	cfg := NewConfig()

	// Parse YAML
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// FindConfigFile searches for a config file in current directory and parents
func FindConfigFile() string {
	configNames := []string{".jsonv.yml", ".jsonv.yaml", "jsonv.yml", "jsonv.yaml"}

	// Start from current directory
	currentDir, err := os.Getwd()
	if err != nil {
		return ""
	}

	// Search up the directory tree
	for {
		for _, name := range configNames {
			configPath := filepath.Join(currentDir, name)
			if _, err := os.Stat(configPath); err == nil {
				return configPath
			}
		}

		// Move up one directory
		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			// Reached root directory
			break
		}
		currentDir = parentDir
	}

	return ""
}

// validate rejects config values the engine cannot honor
func (c *Config) validate() error {
	if c.RenameKeys != "" {
		if _, err := transform.ParseStyle(c.RenameKeys); err != nil {
			return fmt.Errorf("invalid rename_keys in config: %w", err)
		}
	}
	return nil
}

// LoadConfigWithCLI loads config with CLI argument precedence.
// Boolean flags override only when set, since false is also the default.
func LoadConfigWithCLI(configPath string, cliSortKeys bool, cliRenameKeys string) (*Config, error) {
	// Start with defaults
	cfg := NewConfig()

	// Load config file if provided
	if configPath != "" {
		fileConfig, err := LoadConfig(configPath)
		if err != nil {
			return nil, err
		}
		cfg = fileConfig
	}

	// Apply CLI overrides only when they differ from the defaults, so
	// config file values survive default CLI args
	if cliSortKeys {
		cfg.SortKeys = true
	}
	if cliRenameKeys != "" {
		if _, err := transform.ParseStyle(cliRenameKeys); err != nil {
			return nil, err
		}
		cfg.RenameKeys = cliRenameKeys
	}

	return cfg, nil
}
