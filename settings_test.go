package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadSettingsMissingFile(t *testing.T) {
	settings := LoadSettings(filepath.Join(t.TempDir(), "nope.yaml"))

	if settings.App.Name != "Aura" {
		t.Errorf("expected default app name, got %q", settings.App.Name)
	}
	if !settings.AI.Enabled || settings.AI.OllamaURL != "http://localhost:11434" {
		t.Errorf("expected default AI settings, got %+v", settings.AI)
	}
	if !settings.Learning.Enabled {
		t.Error("expected learning enabled by default")
	}
	if settings.System.SearchDepth != 10 {
		t.Errorf("expected default search depth 10, got %d", settings.System.SearchDepth)
	}
}

func TestSettingsRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	settings := DefaultSettings()
	settings.App.Name = "Aura Test"
	settings.App.Debug = true
	settings.AI.Model = "llama3.2:1b"
	settings.Learning.ArchiveEnabled = false
	settings.System.SearchDepth = 4

	if err := settings.Save(path); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded := LoadSettings(path)
	if loaded.App.Name != "Aura Test" || !loaded.App.Debug {
		t.Errorf("app settings lost in round trip: %+v", loaded.App)
	}
	if loaded.AI.Model != "llama3.2:1b" {
		t.Errorf("expected model llama3.2:1b, got %q", loaded.AI.Model)
	}
	if loaded.Learning.ArchiveEnabled {
		t.Error("expected archive disabled after round trip")
	}
	if loaded.System.SearchDepth != 4 {
		t.Errorf("expected search depth 4, got %d", loaded.System.SearchDepth)
	}
}

func TestLoadSettingsBackfill(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	partial := "app:\n  name: Custom\nai:\n  enabled: true\n"
	if err := os.WriteFile(path, []byte(partial), 0644); err != nil {
		t.Fatal(err)
	}

	settings := LoadSettings(path)
	if settings.App.Name != "Custom" {
		t.Errorf("expected custom name kept, got %q", settings.App.Name)
	}
	if settings.AI.OllamaURL == "" || settings.AI.TimeoutSeconds <= 0 {
		t.Errorf("expected omitted AI fields backfilled, got %+v", settings.AI)
	}
	if settings.System.SearchDepth != 10 {
		t.Errorf("expected omitted search depth backfilled, got %d", settings.System.SearchDepth)
	}
}

func TestLoadSettingsCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(":\t{{{not yaml"), 0644); err != nil {
		t.Fatal(err)
	}

	settings := LoadSettings(path)
	if settings.App.Name != "Aura" {
		t.Errorf("expected defaults for corrupt config, got %q", settings.App.Name)
	}
}
