package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// DefaultFile is the tool configuration file looked up in the working
// directory.
const DefaultFile = "kbforge.toml"

// ProjectConfig locates the keyboard definitions
type ProjectConfig struct {
	Keyboards string `toml:"keyboards"` // Keyboards root, defaults to "keyboards"
}

// DefaultProjectConfig returns a project config with defaults
func DefaultProjectConfig() ProjectConfig {
	return ProjectConfig{
		Keyboards: "keyboards",
	}
}

// GenerateConfig contains defaults for the generate subcommand
type GenerateConfig struct {
	Keyboard string `toml:"keyboard"` // Default keyboard when -kb is omitted
	Keymap   string `toml:"keymap"`
	Quiet    bool   `toml:"quiet"`
}

// DefaultGenerateConfig returns a generate config with defaults
func DefaultGenerateConfig() GenerateConfig {
	return GenerateConfig{}
}

// DocsConfig contains settings for the docs subcommand
type DocsConfig struct {
	BuildDir string `toml:"build-dir"`
}

// DefaultDocsConfig returns a docs config with defaults
func DefaultDocsConfig() DocsConfig {
	return DocsConfig{
		BuildDir: "docs-site",
	}
}

// Config is the top-level tool configuration
type Config struct {
	Project  ProjectConfig  `toml:"project"`
	Generate GenerateConfig `toml:"generate"`
	Docs     DocsConfig     `toml:"docs"`
}

// NewDefaultConfig returns a config with sensible defaults
func NewDefaultConfig() *Config {
	return &Config{
		Project:  DefaultProjectConfig(),
		Generate: DefaultGenerateConfig(),
		Docs:     DefaultDocsConfig(),
	}
}

// LoadFromFile loads configuration from a kbforge.toml file
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return LoadFromString(string(data))
}

// LoadFromString loads configuration from a TOML string
func LoadFromString(content string) (*Config, error) {
	cfg := NewDefaultConfig()
	if err := toml.Unmarshal([]byte(content), cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.UpdateFromEnv()
	return cfg, nil
}

// UpdateFromEnv updates config from environment variables
// Variables starting with KBFORGE_ are used
// KBFORGE_FOO_BAR -> foo-bar
// KBFORGE_FOO__BAR -> foo.bar
func (c *Config) UpdateFromEnv() {
	for _, env := range os.Environ() {
		if !strings.HasPrefix(env, "KBFORGE_") {
			continue
		}

		parts := strings.SplitN(env, "=", 2)
		if len(parts) != 2 {
			continue
		}

		key := strings.TrimPrefix(parts[0], "KBFORGE_")
		value := parts[1]

		configKey := strings.ToLower(key)
		configKey = strings.ReplaceAll(configKey, "__", ".")
		configKey = strings.ReplaceAll(configKey, "_", "-")

		c.Set(configKey, value)
	}
}

// Set sets a configuration value using dot notation (e.g., "generate.keyboard")
func (c *Config) Set(key, value string) {
	parts := strings.SplitN(key, ".", 2)
	if len(parts) != 2 {
		return
	}

	switch parts[0] {
	case "project":
		if strings.ToLower(parts[1]) == "keyboards" {
			c.Project.Keyboards = value
		}
	case "generate":
		switch strings.ToLower(parts[1]) {
		case "keyboard":
			c.Generate.Keyboard = value
		case "keymap":
			c.Generate.Keymap = value
		case "quiet":
			c.Generate.Quiet = strings.ToLower(value) == "true"
		}
	case "docs":
		if strings.ToLower(parts[1]) == "build-dir" {
			c.Docs.BuildDir = value
		}
	}
}
