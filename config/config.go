// Package config provides configuration loading and management for commitcheck.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"

	"github.com/c360studio/commitcheck/registry"
)

// Config represents the complete commitcheck configuration
type Config struct {
	// Types is the commit type table; empty means the built-in defaults
	Types []TypeRule `yaml:"types" json:"types,omitempty"`
	// Scopes maps a commit type to glob patterns its scope must match
	Scopes map[string][]string `yaml:"scopes" json:"scopes,omitempty"`
	// IgnoreCase compares commit type tokens case-insensitively
	IgnoreCase bool `yaml:"ignore_case" json:"ignore_case"`
	// NoExit prints violations but reports success to the caller
	NoExit bool `yaml:"no_exit" json:"no_exit"`
	// Format selects the report format ("text" or "json")
	Format string `yaml:"format" json:"format"`
}

// TypeRule is the config-file form of one registry entry
type TypeRule struct {
	// Name is the commit type identifier (e.g. "feat")
	Name string `yaml:"name" json:"name"`
	// Requires lists the structural fields the type mandates; a
	// description is always required and need not be listed
	Requires []string `yaml:"requires,omitempty" json:"requires,omitempty"`
}

// Report formats accepted by Config.Format.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Types:      nil, // built-in registry
		Scopes:     nil,
		IgnoreCase: false,
		NoExit:     false,
		Format:     FormatText,
	}
}

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if c.Format != FormatText && c.Format != FormatJSON {
		return fmt.Errorf("format must be %q or %q, got %q", FormatText, FormatJSON, c.Format)
	}
	for _, t := range c.Types {
		if t.Name == "" {
			return fmt.Errorf("types: commit type name is required")
		}
	}
	for typeName, patterns := range c.Scopes {
		for _, p := range patterns {
			if !doublestar.ValidatePattern(p) {
				return fmt.Errorf("scopes.%s: invalid glob pattern %q", typeName, p)
			}
		}
	}
	return nil
}

// Registry builds the commit type registry from the config. An empty type
// table yields the built-in defaults.
func (c *Config) Registry() (*registry.Registry, error) {
	if len(c.Types) == 0 {
		return registry.Default(), nil
	}
	types := make([]registry.Type, 0, len(c.Types))
	for _, t := range c.Types {
		requires := t.Requires
		if !contains(requires, "description") {
			requires = append(append([]string{}, requires...), "description")
		}
		types = append(types, registry.Type{Name: t.Name, Requires: requires})
	}
	return registry.New(types)
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// LoadFromFile loads configuration from a YAML file
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveToFile saves configuration to a YAML file
func (c *Config) SaveToFile(path string) error {
	// Ensure parent directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Merge merges another config into this one (other takes precedence for non-zero values)
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}

	if len(other.Types) > 0 {
		c.Types = other.Types
	}
	if len(other.Scopes) > 0 {
		c.Scopes = other.Scopes
	}
	if other.IgnoreCase {
		c.IgnoreCase = true
	}
	if other.NoExit {
		c.NoExit = true
	}
	if other.Format != "" {
		c.Format = other.Format
	}
}
