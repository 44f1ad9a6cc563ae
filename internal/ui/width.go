package ui

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// RuneWidth returns the number of screen columns r occupies. Combining and
// control runes take none.
func RuneWidth(r rune) int {
	if w := runewidth.RuneWidth(r); w > 0 {
		return w
	}
	return 0
}

// StringWidth returns the number of screen columns s occupies
func StringWidth(s string) int {
	return runewidth.StringWidth(s)
}

// TruncateToWidth cuts s to at most maxWidth columns without splitting runes
func TruncateToWidth(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	width := 0
	for i, r := range s {
		width += RuneWidth(r)
		if width > maxWidth {
			return s[:i]
		}
	}
	return s
}

// TruncateToWidthWithEllipsis cuts s to maxWidth columns, ending in "..."
// when anything was dropped
func TruncateToWidthWithEllipsis(s string, maxWidth int) string {
	if StringWidth(s) <= maxWidth {
		return s
	}
	if maxWidth <= 3 {
		return TruncateToWidth(s, maxWidth)
	}
	return TruncateToWidth(s, maxWidth-3) + "..."
}

// PadStringToWidth right-pads s with spaces to width columns
func PadStringToWidth(s string, width int) string {
	if pad := width - StringWidth(s); pad > 0 {
		return s + strings.Repeat(" ", pad)
	}
	return s
}
