package theme

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gdamore/tcell/v2"
	"github.com/pelletier/go-toml/v2"
)

// ThemeConfig represents the raw TOML theme configuration
type ThemeConfig struct {
	Name   string `toml:"name"`
	Colors struct {
		Background       string `toml:"background"`
		TreeNormalText   string `toml:"tree_normal_text"`
		TreeGroupText    string `toml:"tree_group_text"`
		TreeSelectedItem string `toml:"tree_selected_item"`
		TreeSelectedBg   string `toml:"tree_selected_bg"`
		TreeToggle       string `toml:"tree_toggle"`
		TreeGuide        string `toml:"tree_guide"`
		DropMarker       string `toml:"drop_marker"`
		DropInsideBg     string `toml:"drop_inside_bg"`
		PromptLabel      string `toml:"prompt_label"`
		PromptText       string `toml:"prompt_text"`
		StatusMessage    string `toml:"status_message"`
		StatusDirty      string `toml:"status_dirty"`
		HeaderTitle      string `toml:"header_title"`
	} `toml:"colors"`
}

// getThemePaths returns the search paths for theme files
func getThemePaths() []string {
	paths := []string{}

	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths,
			filepath.Join(home, ".config", "tui-treeview", "themes"),
			filepath.Join(home, ".local", "share", "tui-treeview", "themes"),
		)
	}

	return paths
}

// findThemeFile searches for a theme file in standard locations
func findThemeFile(themeName string) (string, error) {
	filename := themeName + ".toml"

	for _, dir := range getThemePaths() {
		path := filepath.Join(dir, filename)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}

	return "", fmt.Errorf("theme file not found: %s", filename)
}

// LoadThemeFromFile loads a theme from a TOML file
func LoadThemeFromFile(filePath string) (*Theme, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read theme file: %w", err)
	}

	var config ThemeConfig
	err = toml.Unmarshal(data, &config)
	if err != nil {
		return nil, fmt.Errorf("failed to parse theme file: %w", err)
	}

	return configToTheme(config), nil
}

// LoadTheme loads a theme by name, searching standard theme directories
func LoadTheme(themeName string) (*Theme, error) {
	filePath, err := findThemeFile(themeName)
	if err != nil {
		return nil, err
	}

	return LoadThemeFromFile(filePath)
}

// configToTheme converts a ThemeConfig to a Theme, with fallback to Tokyo Night for missing colors
func configToTheme(config ThemeConfig) *Theme {
	t := TokyoNight()
	c := &config.Colors

	overrides := []struct {
		value string
		dst   *tcell.Color
	}{
		{c.Background, &t.Colors.Background},
		{c.TreeNormalText, &t.Colors.TreeNormalText},
		{c.TreeGroupText, &t.Colors.TreeGroupText},
		{c.TreeSelectedItem, &t.Colors.TreeSelectedItem},
		{c.TreeSelectedBg, &t.Colors.TreeSelectedBg},
		{c.TreeToggle, &t.Colors.TreeToggle},
		{c.TreeGuide, &t.Colors.TreeGuide},
		{c.DropMarker, &t.Colors.DropMarker},
		{c.PromptLabel, &t.Colors.PromptLabel},
		{c.PromptText, &t.Colors.PromptText},
		{c.StatusMessage, &t.Colors.StatusMessage},
		{c.StatusDirty, &t.Colors.StatusDirty},
		{c.HeaderTitle, &t.Colors.HeaderTitle},
	}
	for _, o := range overrides {
		if o.value != "" {
			*o.dst = ParseColorString(o.value)
		}
	}

	// The inside marker follows the background and marker colors unless set
	if c.DropInsideBg != "" {
		t.Colors.DropInsideBg = ParseColorString(c.DropInsideBg)
	} else {
		t.Colors.DropInsideBg = Blend(t.Colors.Background, t.Colors.DropMarker, 0.25)
	}

	if config.Name != "" {
		t.Name = config.Name
	}

	return t
}

// LoadThemeOrDefault loads a theme by name, or returns Tokyo Night if not found
func LoadThemeOrDefault(themeName string) *Theme {
	switch themeName {
	case "default":
		return Default()
	case "tokyo-night", "":
		return TokyoNight()
	}

	theme, err := LoadTheme(themeName)
	if err != nil {
		return TokyoNight()
	}

	return theme
}
