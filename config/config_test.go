package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if len(cfg.Units.Includes) == 0 {
		t.Error("expected default includes, got none")
	}
	if cfg.Units.Includes[0] != "**/*.md" {
		t.Errorf("expected first include '**/*.md', got %q", cfg.Units.Includes[0])
	}
	if cfg.Units.RequireTheme {
		t.Error("expected RequireTheme=false by default")
	}
	if cfg.Output.Format != "text" {
		t.Errorf("expected Format=text, got %q", cfg.Output.Format)
	}
}

func TestLoad_NonExistent(t *testing.T) {
	cfg, err := Load("/nonexistent/path/config.yaml")
	if err != nil {
		t.Errorf("expected no error for non-existent file, got %v", err)
	}
	if cfg == nil {
		t.Error("expected default config, got nil")
	}
}

func TestLoad_ValidYAML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "syllabus.yaml")

	content := `
units:
  includes: ["units/**/*.md"]
  themes: [wrangle, visualize]
  require_theme: true
output:
  format: dot
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(cfg.Units.Includes) != 1 || cfg.Units.Includes[0] != "units/**/*.md" {
		t.Errorf("unexpected includes: %v", cfg.Units.Includes)
	}
	if len(cfg.Units.Themes) != 2 {
		t.Errorf("expected 2 themes, got %v", cfg.Units.Themes)
	}
	if !cfg.Units.RequireTheme {
		t.Error("expected RequireTheme=true")
	}
	if cfg.Output.Format != "dot" {
		t.Errorf("expected Format=dot, got %q", cfg.Output.Format)
	}
}

func TestLoadFromDir(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "syllabus.yaml")

	content := `
output:
  format: dot
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromDir(tmpDir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Output.Format != "dot" {
		t.Errorf("expected Format=dot, got %q", cfg.Output.Format)
	}
}

func TestLoadFromDir_Defaults(t *testing.T) {
	cfg, err := LoadFromDir(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Output.Format != "text" {
		t.Errorf("expected default config, got format %q", cfg.Output.Format)
	}
}
