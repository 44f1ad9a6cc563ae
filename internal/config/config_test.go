package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestSessionSettingsOverridePersisted(t *testing.T) {
	cfg := &Config{
		Settings:        map[string]string{"status": "on", "indent": "2"},
		sessionSettings: make(map[string]string),
	}

	cfg.Set("indent", "4")
	if cfg.Get("indent") != "4" {
		t.Errorf("Expected session value '4', got '%s'", cfg.Get("indent"))
	}
	if cfg.Get("status") != "on" {
		t.Errorf("Expected persisted value 'on', got '%s'", cfg.Get("status"))
	}
	if cfg.Get("nonexistent") != "" {
		t.Errorf("Expected empty string for nonexistent key, got '%s'", cfg.Get("nonexistent"))
	}

	all := cfg.GetAll()
	if len(all) != 2 || all["indent"] != "4" {
		t.Errorf("Unexpected merged settings: %v", all)
	}

	// GetAll returns a copy
	all["status"] = "off"
	if cfg.Get("status") != "on" {
		t.Errorf("GetAll() should return a copy, not a reference")
	}
}

func TestNilSessionSettings(t *testing.T) {
	cfg := &Config{}

	cfg.Set("key", "value")
	if cfg.Get("key") != "value" {
		t.Errorf("Set should initialize nil sessionSettings")
	}

	cfg2 := &Config{}
	if cfg2.Get("key") != "" {
		t.Errorf("Get should return empty string for nil sessionSettings")
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()
	if cfg.Theme != "tokyo-night" {
		t.Errorf("Expected default theme 'tokyo-night', got '%s'", cfg.Theme)
	}
	if !cfg.MultipleSelectionEnabled() {
		t.Errorf("Multiple selection should be enabled by default")
	}
	if cfg.DragLeaveDelay() != 0 {
		t.Errorf("Expected zero delay (engine default), got %v", cfg.DragLeaveDelay())
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	data := `
theme = "default"
multiple_selection = false
drag_leave_delay_ms = 150

[settings]
status = "off"
`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile failed: %v", err)
	}
	if cfg.Theme != "default" {
		t.Errorf("Expected theme 'default', got '%s'", cfg.Theme)
	}
	if cfg.MultipleSelectionEnabled() {
		t.Errorf("Expected multiple selection to be disabled")
	}
	if cfg.DragLeaveDelay() != 150*time.Millisecond {
		t.Errorf("Expected 150ms, got %v", cfg.DragLeaveDelay())
	}
	if cfg.LogLevel != "info" {
		t.Errorf("Expected default log level, got '%s'", cfg.LogLevel)
	}
	if cfg.Get("status") != "off" {
		t.Errorf("Expected setting 'off', got '%s'", cfg.Get("status"))
	}
}

func TestLoadFromFileErrors(t *testing.T) {
	dir := t.TempDir()

	cfg, err := LoadFromFile(filepath.Join(dir, "missing.toml"))
	if err != nil || cfg.Theme != "tokyo-night" {
		t.Errorf("Missing file should give defaults, got %v, %v", cfg, err)
	}

	bad := filepath.Join(dir, "bad.toml")
	if err := os.WriteFile(bad, []byte("theme = "), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFromFile(bad); err == nil {
		t.Errorf("Expected parse error")
	}
}

func TestSaveWritesLoadedPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.toml")
	cfg, err := LoadFromFile(path)
	if err != nil {
		t.Fatal(err)
	}
	cfg.Settings["status"] = "on"
	cfg.Set("session-only", "x")

	if err := cfg.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	reloaded, err := LoadFromFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if reloaded.Get("status") != "on" {
		t.Errorf("Expected persisted setting, got '%s'", reloaded.Get("status"))
	}
	if reloaded.Get("session-only") != "" {
		t.Errorf("Session settings should not be persisted")
	}
}

func TestParseSetting(t *testing.T) {
	key, value, err := ParseSetting(" autosave = off ")
	if err != nil || key != "autosave" || value != "off" {
		t.Errorf("Unexpected parse: %q %q %v", key, value, err)
	}

	key, value, err = ParseSetting("time_format=%H:%M=x")
	if err != nil || key != "time_format" || value != "%H:%M=x" {
		t.Errorf("Value should keep later '=': %q %q %v", key, value, err)
	}

	for _, bad := range []string{"autosave", "=off", ""} {
		if _, _, err := ParseSetting(bad); err == nil {
			t.Errorf("Expected error for %q", bad)
		}
	}
}

func TestPersistWritesAndDropsSessionOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	cfg, err := LoadFromFile(path)
	if err != nil {
		t.Fatal(err)
	}
	cfg.Set("autosave", "on")

	if err := cfg.Persist("autosave", "off"); err != nil {
		t.Fatalf("Persist failed: %v", err)
	}
	if cfg.Get("autosave") != "off" {
		t.Errorf("Persisted value should win over the dropped override, got '%s'", cfg.Get("autosave"))
	}

	reloaded, err := LoadFromFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if reloaded.Get("autosave") != "off" {
		t.Errorf("Expected persisted setting, got '%s'", reloaded.Get("autosave"))
	}
}

func TestKeysSorted(t *testing.T) {
	cfg := &Config{Settings: map[string]string{"time_format": "%H", "autosave": "off"}}
	cfg.Set("theme_hint", "x")
	cfg.Set("autosave", "on")

	keys := cfg.Keys()
	want := []string{"autosave", "theme_hint", "time_format"}
	if len(keys) != len(want) {
		t.Fatalf("Expected %v, got %v", want, keys)
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Errorf("Expected %v, got %v", want, keys)
		}
	}
}
