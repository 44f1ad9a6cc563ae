package ui

import "time"

// HelpEntry is one line of the key reference
type HelpEntry struct {
	Key         string
	Description string
}

// HelpScreen manages the help overlay: the key reference followed by the
// most recent status messages
type HelpScreen struct {
	visible  bool
	entries  []HelpEntry
	messages *MessageLogger
}

// NewHelpScreen creates a new HelpScreen
func NewHelpScreen(entries []HelpEntry, messages *MessageLogger) *HelpScreen {
	return &HelpScreen{
		entries:  entries,
		messages: messages,
	}
}

// Toggle toggles the help screen visibility
func (h *HelpScreen) Toggle() {
	h.visible = !h.visible
}

// IsVisible returns whether the help screen is visible
func (h *HelpScreen) IsVisible() bool {
	return h.visible
}

// Lines returns the overlay content
func (h *HelpScreen) Lines() []string {
	keyWidth := 0
	for _, e := range h.entries {
		keyWidth = max(keyWidth, StringWidth(e.Key))
	}

	lines := []string{"Keys:", ""}
	for _, e := range h.entries {
		lines = append(lines, "  "+PadStringToWidth(e.Key, keyWidth)+"  "+e.Description)
	}

	if h.messages != nil && h.messages.Count() > 0 {
		lines = append(lines, "", "Recent messages:", "")
		for _, m := range h.messages.GetMessagesReverse() {
			lines = append(lines, "  "+m.Timestamp.Format(time.TimeOnly)+"  "+m.Text)
		}
	}
	return lines
}

// Render draws the overlay in a box inset from the screen edges
func (h *HelpScreen) Render(screen *Screen) {
	if !h.visible {
		return
	}

	contentStyle := screen.TreeNormalStyle()
	borderStyle := screen.TreeGuideStyle()
	titleStyle := screen.HeaderStyle()

	width, height := screen.Size()
	startX, startY := 4, 1
	boxWidth := width - 2*startX
	boxHeight := height - 2*startY
	if boxWidth < 10 || boxHeight < 4 {
		return
	}

	for y := startY; y < startY+boxHeight; y++ {
		screen.FillRow(startX, y, boxWidth, contentStyle)
		screen.SetCell(startX, y, '│', borderStyle)
		screen.SetCell(startX+boxWidth-1, y, '│', borderStyle)
	}
	bottom := startY + boxHeight - 1
	for x := startX + 1; x < startX+boxWidth-1; x++ {
		screen.SetCell(x, startY, '─', borderStyle)
		screen.SetCell(x, bottom, '─', borderStyle)
	}
	screen.SetCell(startX, startY, '┌', borderStyle)
	screen.SetCell(startX+boxWidth-1, startY, '┐', borderStyle)
	screen.SetCell(startX, bottom, '└', borderStyle)
	screen.SetCell(startX+boxWidth-1, bottom, '┘', borderStyle)

	screen.DrawString(startX+2, startY, " Help (? to close) ", titleStyle)

	y := startY + 1
	for _, line := range h.Lines() {
		if y >= bottom {
			break
		}
		screen.DrawStringLimited(startX+2, y, line, boxWidth-4, contentStyle)
		y++
	}
}
