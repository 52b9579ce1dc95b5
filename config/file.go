package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Format is a config file syntax
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// FormatFromPath picks the file syntax from the extension.
// Anything that is not .toml is read as YAML.
func FormatFromPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return FormatTOML
	}
	return FormatYAML
}

// LoadConfigFile loads configuration from a YAML or TOML file.
// Values missing from the file keep their defaults.
func LoadConfigFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()

	// Lists replace the defaults instead of extending them.
	defaults := cfg.Curve
	heights := cfg.Ruler.TickHeights
	cfg.Curve.Tiers = nil
	cfg.Curve.Spans = nil
	cfg.Ruler.TickHeights = nil

	switch FormatFromPath(path) {
	case FormatTOML:
		err = toml.Unmarshal(data, cfg)
	default:
		err = yaml.Unmarshal(data, cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if cfg.Curve.Tiers == nil {
		cfg.Curve.Tiers = defaults.Tiers
	}
	if cfg.Curve.Spans == nil {
		cfg.Curve.Spans = defaults.Spans
	}
	if cfg.Ruler.TickHeights == nil {
		cfg.Ruler.TickHeights = heights
	}

	return cfg, nil
}

// FindConfigFile searches for config file in standard locations
// Returns empty string if not found (non-fatal)
func FindConfigFile() string {
	home := os.Getenv("HOME")
	locations := []string{
		"./timeline.yaml",
		"./timeline.yml",
		"./timeline.toml",
		filepath.Join(home, ".timeline", "config.yaml"),
		filepath.Join(home, ".timeline", "config.yml"),
		filepath.Join(home, ".timeline", "config.toml"),
		"/etc/timeline/config.yaml",
		"/etc/timeline/config.yml",
		"/etc/timeline/config.toml",
	}

	for _, path := range locations {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// SaveConfigFile saves configuration to a YAML or TOML file, chosen by extension
func SaveConfigFile(cfg *Config, path string) error {
	// Create directory if it doesn't exist
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	var data []byte
	var err error
	switch FormatFromPath(path) {
	case FormatTOML:
		data, err = toml.Marshal(cfg)
	default:
		data, err = yaml.Marshal(cfg)
	}
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
