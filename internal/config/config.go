package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

const appDirName = "tui-treeview"

// Config holds application configuration
type Config struct {
	Theme             string            `toml:"theme"`
	MultipleSelection *bool             `toml:"multiple_selection,omitempty"`
	DragLeaveDelayMS  int               `toml:"drag_leave_delay_ms,omitempty"`
	LogLevel          string            `toml:"log_level,omitempty"`
	Settings          map[string]string `toml:"settings"`

	// Session settings (not persisted to TOML, overrides persisted settings)
	sessionSettings map[string]string
	path            string
}

// Load loads the config file from the standard location
func Load() (*Config, error) {
	configPath, err := getConfigPath()
	if err != nil {
		return defaultConfig(), nil // Return default if can't find config path
	}

	return LoadFromFile(configPath)
}

// LoadFromFile loads config from a specific file
func LoadFromFile(filePath string) (*Config, error) {
	// If file doesn't exist, return default config
	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		config := defaultConfig()
		config.path = filePath
		return config, nil
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	err = toml.Unmarshal(data, &config)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Apply defaults if not specified
	if config.Theme == "" {
		config.Theme = "tokyo-night"
	}
	if config.LogLevel == "" {
		config.LogLevel = "info"
	}
	if config.Settings == nil {
		config.Settings = make(map[string]string)
	}

	config.sessionSettings = make(map[string]string)
	config.path = filePath

	return &config, nil
}

// getConfigPath returns the path to the config file
func getConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(configDir, "config.toml"), nil
}

// defaultConfig returns the default configuration
func defaultConfig() *Config {
	return &Config{
		Theme:           "tokyo-night",
		LogLevel:        "info",
		Settings:        make(map[string]string),
		sessionSettings: make(map[string]string),
	}
}

// GetConfigDir returns the config directory
func GetConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(home, ".config", appDirName), nil
}

// MultipleSelectionEnabled reports whether shift/ctrl clicks extend the
// selection. Defaults to true.
func (c *Config) MultipleSelectionEnabled() bool {
	if c.MultipleSelection == nil {
		return true
	}
	return *c.MultipleSelection
}

// DragLeaveDelay returns the drop marker debounce, zero meaning the default
func (c *Config) DragLeaveDelay() time.Duration {
	if c.DragLeaveDelayMS <= 0 {
		return 0
	}
	return time.Duration(c.DragLeaveDelayMS) * time.Millisecond
}

// Set sets a session configuration value
func (c *Config) Set(key, value string) {
	if c.sessionSettings == nil {
		c.sessionSettings = make(map[string]string)
	}
	c.sessionSettings[key] = value
}

// Get retrieves a configuration value, checking session settings first (which override persisted settings)
// Returns empty string if not found in either source
func (c *Config) Get(key string) string {
	if c.sessionSettings != nil {
		if val, ok := c.sessionSettings[key]; ok {
			return val
		}
	}

	if c.Settings != nil {
		if val, ok := c.Settings[key]; ok {
			return val
		}
	}

	return ""
}

// GetAll returns all configuration values (both persisted and session)
// Session settings override persisted settings with the same key
func (c *Config) GetAll() map[string]string {
	result := make(map[string]string)

	for k, v := range c.Settings {
		result[k] = v
	}
	for k, v := range c.sessionSettings {
		result[k] = v
	}

	return result
}

// Path returns the file the config was loaded from, if any
func (c *Config) Path() string {
	return c.path
}

// Keys returns the names of all settings in sorted order
func (c *Config) Keys() []string {
	all := c.GetAll()
	keys := make([]string, 0, len(all))
	for k := range all {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ParseSetting splits a "key=value" assignment
func ParseSetting(s string) (key, value string, err error) {
	key, value, ok := strings.Cut(s, "=")
	key = strings.TrimSpace(key)
	if !ok || key == "" {
		return "", "", fmt.Errorf("invalid setting %q, expected key=value", s)
	}
	return key, strings.TrimSpace(value), nil
}

// Persist stores a setting in the config file. A session override for the
// same key is dropped so the new value takes effect.
func (c *Config) Persist(key, value string) error {
	if c.Settings == nil {
		c.Settings = make(map[string]string)
	}
	c.Settings[key] = value
	delete(c.sessionSettings, key)
	return c.Save()
}

// Save persists the configuration to the file it was loaded from, or the
// standard location
// Note: This only persists the Settings map, not session settings
func (c *Config) Save() error {
	configPath := c.path
	if configPath == "" {
		var err error
		configPath, err = getConfigPath()
		if err != nil {
			return fmt.Errorf("failed to get config path: %w", err)
		}
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
