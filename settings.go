package main

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Settings is the application configuration, loaded from a YAML file
// under the config directory. Missing or corrupt files fall back to
// defaults; startup never aborts over configuration.
type Settings struct {
	App struct {
		Name    string `yaml:"name"`
		DataDir string `yaml:"data_dir"`
		Debug   bool   `yaml:"debug"`
	} `yaml:"app"`

	AI struct {
		Enabled        bool   `yaml:"enabled"`
		OllamaURL      string `yaml:"ollama_url"`
		Model          string `yaml:"model"`
		TimeoutSeconds int    `yaml:"timeout_seconds"`
	} `yaml:"ai"`

	Learning struct {
		Enabled        bool `yaml:"enabled"`
		ArchiveEnabled bool `yaml:"archive_enabled"`
	} `yaml:"learning"`

	System struct {
		SearchDepth          int `yaml:"search_depth"`
		SearchTimeoutSeconds int `yaml:"search_timeout_seconds"`
	} `yaml:"system"`
}

// DefaultSettings returns the configuration used when no file exists
func DefaultSettings() *Settings {
	s := &Settings{}
	s.App.Name = "Aura"
	s.App.DataDir = defaultDataDir()
	s.AI.Enabled = true
	s.AI.OllamaURL = "http://localhost:11434"
	s.AI.Model = "llama3.2:latest"
	s.AI.TimeoutSeconds = 10
	s.Learning.Enabled = true
	s.Learning.ArchiveEnabled = true
	s.System.SearchDepth = 10
	s.System.SearchTimeoutSeconds = 30
	return s
}

func defaultDataDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = os.Getenv("HOME")
	}
	return filepath.Join(homeDir, ".config", "aura")
}

// DefaultSettingsPath is where LoadSettings looks when no explicit path
// is given
func DefaultSettingsPath() string {
	return filepath.Join(defaultDataDir(), "config.yaml")
}

// LoadSettings reads the YAML configuration at path. A missing file yields
// defaults silently; a corrupt file yields defaults with a warning.
func LoadSettings(path string) *Settings {
	if path == "" {
		path = DefaultSettingsPath()
	}

	settings := DefaultSettings()

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			fmt.Printf("Warning: failed to read config file: %v\n", err)
		}
		return settings
	}

	if err := yaml.Unmarshal(data, settings); err != nil {
		fmt.Printf("Warning: failed to parse config file, using defaults: %v\n", err)
		return DefaultSettings()
	}

	// Backfill anything the file left out
	if settings.App.DataDir == "" {
		settings.App.DataDir = defaultDataDir()
	}
	if settings.AI.OllamaURL == "" {
		settings.AI.OllamaURL = "http://localhost:11434"
	}
	if settings.AI.Model == "" {
		settings.AI.Model = "llama3.2:latest"
	}
	if settings.AI.TimeoutSeconds <= 0 {
		settings.AI.TimeoutSeconds = 10
	}
	if settings.System.SearchDepth <= 0 {
		settings.System.SearchDepth = 10
	}
	if settings.System.SearchTimeoutSeconds <= 0 {
		settings.System.SearchTimeoutSeconds = 30
	}

	return settings
}

// Save writes the configuration to path as YAML
func (s *Settings) Save(path string) error {
	if path == "" {
		path = DefaultSettingsPath()
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %v", err)
	}

	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %v", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %v", err)
	}
	return nil
}
