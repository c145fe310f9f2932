package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the syllabus tool.
type Config struct {
	Units  UnitsConfig  `yaml:"units"`
	Output OutputConfig `yaml:"output"`
}

// UnitsConfig controls which files are treated as lesson units and which
// metadata constraints are enforced on them.
type UnitsConfig struct {
	Includes     []string `yaml:"includes"`
	Excludes     []string `yaml:"excludes"`
	Themes       []string `yaml:"themes"` // allowed theme tags; empty means any
	RequireTheme bool     `yaml:"require_theme"`
}

// OutputConfig holds report output configuration.
type OutputConfig struct {
	Format string `yaml:"format"` // "text" or "dot"
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Units: UnitsConfig{
			Includes:     []string{"**/*.md", "**/*.markdown"},
			Excludes:     []string{"**/.git/**", "**/.syllabus/**", "**/node_modules/**", "**/README.md"},
			Themes:       nil,
			RequireTheme: false,
		},
		Output: OutputConfig{
			Format: "text",
		},
	}
}

// Load loads configuration from a YAML file.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil // Return defaults if no config file
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadFromDir loads configuration from a directory (looks for syllabus.yaml).
func LoadFromDir(dir string) (*Config, error) {
	path := filepath.Join(dir, "syllabus.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}

	path = filepath.Join(dir, ".syllabus", "config.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}

	return DefaultConfig(), nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// CollectionDBPath returns the path to the built collection database.
func CollectionDBPath(dir string) string {
	return filepath.Join(dir, ".syllabus", "collection.db")
}

// EnsureSyllabusDir ensures the .syllabus directory exists.
func EnsureSyllabusDir(dir string) error {
	return os.MkdirAll(filepath.Join(dir, ".syllabus"), 0755)
}
