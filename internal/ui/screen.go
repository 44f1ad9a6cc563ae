package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/pstuifzand/tui-treeview/internal/theme"
)

// Screen manages the tcell screen and rendering
type Screen struct {
	tcellScreen tcell.Screen
	width       int
	height      int
	Theme       *theme.Theme
}

// NewScreenWithTheme creates a new terminal Screen with a specific theme
func NewScreenWithTheme(t *theme.Theme) (*Screen, error) {
	tcellScreen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("failed to create screen: %w", err)
	}
	return NewScreenFrom(tcellScreen, t)
}

// NewScreenFrom initializes an existing tcell screen, such as a simulation
// screen in tests
func NewScreenFrom(tcellScreen tcell.Screen, t *theme.Theme) (*Screen, error) {
	if err := tcellScreen.Init(); err != nil {
		return nil, fmt.Errorf("failed to init screen: %w", err)
	}
	if t == nil {
		t = theme.Default()
	}

	width, height := tcellScreen.Size()
	return &Screen{
		tcellScreen: tcellScreen,
		width:       width,
		height:      height,
		Theme:       t,
	}, nil
}

// Close closes the screen
func (s *Screen) Close() error {
	s.tcellScreen.Fini()
	return nil
}

// Clear clears the entire screen
func (s *Screen) Clear() {
	s.tcellScreen.SetStyle(s.BackgroundStyle())
	s.tcellScreen.Clear()
}

// SetCell sets a cell at the given position
func (s *Screen) SetCell(x, y int, r rune, style tcell.Style) {
	if x >= 0 && x < s.width && y >= 0 && y < s.height {
		s.tcellScreen.SetContent(x, y, r, nil, style)
	}
}

// DrawString draws a string at the given position and returns the number of
// columns used. Wide runes take two columns.
func (s *Screen) DrawString(x, y int, text string, style tcell.Style) int {
	col := x
	for _, r := range text {
		w := RuneWidth(r)
		if w == 0 {
			continue
		}
		s.SetCell(col, y, r, style)
		col += w
	}
	return col - x
}

// DrawStringLimited draws a string, truncating it if it exceeds maxWidth
func (s *Screen) DrawStringLimited(x, y int, text string, maxWidth int, style tcell.Style) int {
	if maxWidth <= 0 {
		return 0
	}
	return s.DrawString(x, y, TruncateToWidthWithEllipsis(text, maxWidth), style)
}

// FillRow paints columns [x, x+width) of row y with style
func (s *Screen) FillRow(x, y, width int, style tcell.Style) {
	for i := 0; i < width; i++ {
		s.SetCell(x+i, y, ' ', style)
	}
}

// PollEvent polls for the next event (key press, mouse, etc.)
func (s *Screen) PollEvent() tcell.Event {
	return s.tcellScreen.PollEvent()
}

// PostEvent queues an event for delivery through PollEvent. It is safe to
// call from any goroutine.
func (s *Screen) PostEvent(ev tcell.Event) error {
	return s.tcellScreen.PostEvent(ev)
}

// Show shows the screen
func (s *Screen) Show() {
	s.tcellScreen.Show()
}

// Sync refreshes the size after a resize event
func (s *Screen) Sync() {
	s.tcellScreen.Sync()
	s.Size()
}

// Size returns the width and height of the screen
func (s *Screen) Size() (int, int) {
	w, h := s.tcellScreen.Size()
	s.width = w
	s.height = h
	return w, h
}

// GetWidth returns the width of the screen
func (s *Screen) GetWidth() int {
	s.width, _ = s.tcellScreen.Size()
	return s.width
}

// GetHeight returns the height of the screen
func (s *Screen) GetHeight() int {
	_, s.height = s.tcellScreen.Size()
	return s.height
}

// HasMouse returns true if mouse is supported
func (s *Screen) HasMouse() bool {
	return s.tcellScreen.HasMouse()
}

// EnableMouse enables button and drag reporting
func (s *Screen) EnableMouse() {
	s.tcellScreen.EnableMouse(tcell.MouseButtonEvents, tcell.MouseDragEvents)
}

// Theme-aware style methods

// BackgroundStyle returns the default background style for the application
func (s *Screen) BackgroundStyle() tcell.Style {
	return tcell.StyleDefault.Background(s.Theme.Colors.Background)
}

// TreeNormalStyle returns the style for item rows
func (s *Screen) TreeNormalStyle() tcell.Style {
	return theme.ColorPairToStyle(s.Theme.Colors.TreeNormalText, s.Theme.Colors.Background)
}

// TreeGroupStyle returns the style for group rows
func (s *Screen) TreeGroupStyle() tcell.Style {
	return theme.ColorPairToStyle(s.Theme.Colors.TreeGroupText, s.Theme.Colors.Background).Bold(true)
}

// TreeSelectedStyle returns the style for selected rows
func (s *Screen) TreeSelectedStyle() tcell.Style {
	return theme.ColorPairToStyle(s.Theme.Colors.TreeSelectedItem, s.Theme.Colors.TreeSelectedBg).Bold(true)
}

// TreeToggleStyle returns the style for group expand/collapse glyphs
func (s *Screen) TreeToggleStyle() tcell.Style {
	return theme.ColorPairToStyle(s.Theme.Colors.TreeToggle, s.Theme.Colors.Background)
}

// TreeGuideStyle returns the style for indentation guides
func (s *Screen) TreeGuideStyle() tcell.Style {
	return theme.ColorPairToStyle(s.Theme.Colors.TreeGuide, s.Theme.Colors.Background)
}

// DropMarkerStyle returns the style for above/below drop lines
func (s *Screen) DropMarkerStyle() tcell.Style {
	return theme.ColorPairToStyle(s.Theme.Colors.DropMarker, s.Theme.Colors.Background).Bold(true)
}

// DropInsideStyle returns the style for a group row that would receive a drop
func (s *Screen) DropInsideStyle() tcell.Style {
	return theme.ColorPairToStyle(s.Theme.Colors.TreeGroupText, s.Theme.Colors.DropInsideBg).Bold(true)
}

// PromptLabelStyle returns the style for prompt labels
func (s *Screen) PromptLabelStyle() tcell.Style {
	return theme.ColorPairToStyle(s.Theme.Colors.PromptLabel, s.Theme.Colors.Background).Bold(true)
}

// PromptTextStyle returns the style for prompt input
func (s *Screen) PromptTextStyle() tcell.Style {
	return theme.ColorPairToStyle(s.Theme.Colors.PromptText, s.Theme.Colors.Background)
}

// PromptCursorStyle returns the style for the prompt cursor
func (s *Screen) PromptCursorStyle() tcell.Style {
	return theme.ColorPairToStyle(s.Theme.Colors.Background, s.Theme.Colors.PromptText)
}

// StatusMessageStyle returns the style for status messages
func (s *Screen) StatusMessageStyle() tcell.Style {
	return theme.ColorPairToStyle(s.Theme.Colors.StatusMessage, s.Theme.Colors.Background)
}

// StatusDirtyStyle returns the style for the modified indicator
func (s *Screen) StatusDirtyStyle() tcell.Style {
	return theme.ColorPairToStyle(s.Theme.Colors.StatusDirty, s.Theme.Colors.Background).Bold(true)
}

// HeaderStyle returns the style for the header title
func (s *Screen) HeaderStyle() tcell.Style {
	return theme.ColorPairToStyle(s.Theme.Colors.HeaderTitle, s.Theme.Colors.Background).Bold(true)
}
