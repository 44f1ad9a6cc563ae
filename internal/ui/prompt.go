package ui

import (
	"github.com/gdamore/tcell/v2"
)

// Prompt is a single line input shown at the bottom of the screen
type Prompt struct {
	label     string
	text      []rune
	cursorPos int
	active    bool
	info      string

	// Up and Down walk history; draft keeps the unsent input meanwhile
	history []string
	histPos int
	draft   []rune
}

// NewPrompt creates an inactive prompt
func NewPrompt() *Prompt {
	return &Prompt{}
}

// Start activates the prompt with label and an empty input
func (p *Prompt) Start(label string) {
	p.label = label
	p.text = p.text[:0]
	p.cursorPos = 0
	p.info = ""
	p.active = true
	p.histPos = len(p.history)
	p.draft = nil
}

// SetHistory sets the earlier inputs reachable with Up and Down, oldest first
func (p *Prompt) SetHistory(entries []string) {
	p.history = entries
	p.histPos = len(entries)
}

// Stop deactivates the prompt
func (p *Prompt) Stop() {
	p.active = false
}

// IsActive returns whether the prompt takes input
func (p *Prompt) IsActive() bool {
	return p.active
}

// Label returns the label the prompt was started with
func (p *Prompt) Label() string {
	return p.label
}

// Text returns the current input
func (p *Prompt) Text() string {
	return string(p.text)
}

// SetInfo sets the text shown right-aligned after the input
func (p *Prompt) SetInfo(info string) {
	p.info = info
}

// PromptResult tells the caller what a key did to the prompt
type PromptResult int

const (
	PromptNone    PromptResult = iota // Cursor moved or key ignored
	PromptChanged                     // Input text changed
	PromptSubmit                      // Enter pressed; the prompt is stopped
	PromptCancel                      // Escape pressed; the prompt is stopped
)

// HandleKey edits the input
func (p *Prompt) HandleKey(ev *tcell.EventKey) PromptResult {
	if !p.active {
		return PromptNone
	}

	switch ev.Key() {
	case tcell.KeyEscape:
		p.Stop()
		return PromptCancel
	case tcell.KeyEnter:
		p.Stop()
		return PromptSubmit
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if p.cursorPos > 0 {
			p.text = append(p.text[:p.cursorPos-1], p.text[p.cursorPos:]...)
			p.cursorPos--
			return PromptChanged
		}
	case tcell.KeyDelete:
		if p.cursorPos < len(p.text) {
			p.text = append(p.text[:p.cursorPos], p.text[p.cursorPos+1:]...)
			return PromptChanged
		}
	case tcell.KeyLeft:
		p.cursorPos = max(p.cursorPos-1, 0)
	case tcell.KeyRight:
		p.cursorPos = min(p.cursorPos+1, len(p.text))
	case tcell.KeyUp:
		if p.histPos > 0 {
			if p.histPos == len(p.history) {
				p.draft = append([]rune(nil), p.text...)
			}
			p.histPos--
			p.setText([]rune(p.history[p.histPos]))
			return PromptChanged
		}
	case tcell.KeyDown:
		if p.histPos < len(p.history) {
			p.histPos++
			if p.histPos == len(p.history) {
				p.setText(p.draft)
			} else {
				p.setText([]rune(p.history[p.histPos]))
			}
			return PromptChanged
		}
	case tcell.KeyHome, tcell.KeyCtrlA:
		p.cursorPos = 0
	case tcell.KeyEnd, tcell.KeyCtrlE:
		p.cursorPos = len(p.text)
	case tcell.KeyRune:
		p.text = append(p.text[:p.cursorPos], append([]rune{ev.Rune()}, p.text[p.cursorPos:]...)...)
		p.cursorPos++
		return PromptChanged
	}
	return PromptNone
}

func (p *Prompt) setText(text []rune) {
	p.text = append(p.text[:0], text...)
	p.cursorPos = len(p.text)
}

// Render draws the prompt on row y
func (p *Prompt) Render(screen *Screen, y int) {
	width := screen.GetWidth()
	textStyle := screen.PromptTextStyle()
	cursorStyle := screen.PromptCursorStyle()

	screen.FillRow(0, y, width, textStyle)
	x := screen.DrawString(0, y, p.label, screen.PromptLabelStyle())

	for i, r := range p.text {
		style := textStyle
		if i == p.cursorPos {
			style = cursorStyle
		}
		screen.SetCell(x, y, r, style)
		x += RuneWidth(r)
	}
	if p.cursorPos >= len(p.text) {
		screen.SetCell(x, y, ' ', cursorStyle)
	}

	if p.info != "" {
		info := " (" + p.info + ")"
		screen.DrawString(width-StringWidth(info), y, info, screen.StatusMessageStyle())
	}
}
