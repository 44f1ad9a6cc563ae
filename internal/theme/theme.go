package theme

import (
	"github.com/gdamore/tcell/v2"
)

// Colors holds all the color definitions for the theme
type Colors struct {
	Background tcell.Color

	// Tree view colors
	TreeNormalText   tcell.Color
	TreeGroupText    tcell.Color
	TreeSelectedItem tcell.Color
	TreeSelectedBg   tcell.Color
	TreeToggle       tcell.Color
	TreeGuide        tcell.Color

	// Drop marker colors
	DropMarker   tcell.Color
	DropInsideBg tcell.Color

	// Prompt and status line colors
	PromptLabel   tcell.Color
	PromptText    tcell.Color
	StatusMessage tcell.Color
	StatusDirty   tcell.Color
	HeaderTitle   tcell.Color
}

// Theme represents a complete color theme
type Theme struct {
	Name   string
	Colors Colors
}

// Default returns a default theme using terminal defaults
func Default() *Theme {
	return &Theme{
		Name: "default",
		Colors: Colors{
			Background:       tcell.ColorDefault,
			TreeNormalText:   tcell.ColorDefault,
			TreeGroupText:    tcell.ColorDefault,
			TreeSelectedItem: tcell.ColorDefault,
			TreeSelectedBg:   tcell.ColorDefault,
			TreeToggle:       tcell.ColorDefault,
			TreeGuide:        tcell.ColorDefault,
			DropMarker:       tcell.ColorYellow,
			DropInsideBg:     tcell.ColorDefault,
			PromptLabel:      tcell.ColorDefault,
			PromptText:       tcell.ColorDefault,
			StatusMessage:    tcell.ColorDefault,
			StatusDirty:      tcell.ColorRed,
			HeaderTitle:      tcell.ColorDefault,
		},
	}
}

// TokyoNight returns the Tokyo Night theme
func TokyoNight() *Theme {
	bg := HexToColor("#1a1b26")
	return &Theme{
		Name: "tokyo-night",
		Colors: Colors{
			Background:       bg,
			TreeNormalText:   HexToColor("#c0caf5"), // Light gray-blue
			TreeGroupText:    HexToColor("#bb9af7"), // Magenta
			TreeSelectedItem: HexToColor("#1a1b26"),
			TreeSelectedBg:   HexToColor("#7aa2f7"), // Blue
			TreeToggle:       HexToColor("#7dcfff"), // Cyan
			TreeGuide:        HexToColor("#565f89"), // Comment gray
			DropMarker:       HexToColor("#e0af68"), // Orange
			DropInsideBg:     Blend(bg, HexToColor("#e0af68"), 0.25),
			PromptLabel:      HexToColor("#bb9af7"),
			PromptText:       HexToColor("#c0caf5"),
			StatusMessage:    HexToColor("#9ece6a"), // Green
			StatusDirty:      HexToColor("#f7768e"), // Red
			HeaderTitle:      HexToColor("#bb9af7"),
		},
	}
}
