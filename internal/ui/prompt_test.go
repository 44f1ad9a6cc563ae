package ui

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
)

func keyRune(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func key(k tcell.Key) *tcell.EventKey {
	return tcell.NewEventKey(k, 0, tcell.ModNone)
}

func TestPromptEditing(t *testing.T) {
	p := NewPrompt()
	assert.Equal(t, PromptNone, p.HandleKey(keyRune('x')), "inactive prompt ignores keys")

	p.Start("Find: ")
	assert.True(t, p.IsActive())
	for _, r := range "tre" {
		assert.Equal(t, PromptChanged, p.HandleKey(keyRune(r)))
	}
	p.HandleKey(key(tcell.KeyLeft))
	p.HandleKey(keyRune('é'))
	assert.Equal(t, "trée", p.Text())

	assert.Equal(t, PromptChanged, p.HandleKey(key(tcell.KeyBackspace2)))
	assert.Equal(t, "tre", p.Text())

	p.HandleKey(key(tcell.KeyHome))
	assert.Equal(t, PromptChanged, p.HandleKey(key(tcell.KeyDelete)))
	assert.Equal(t, "re", p.Text())
	assert.Equal(t, PromptNone, p.HandleKey(key(tcell.KeyBackspace2)))

	assert.Equal(t, PromptSubmit, p.HandleKey(key(tcell.KeyEnter)))
	assert.False(t, p.IsActive())
	assert.Equal(t, "re", p.Text())

	p.Start("New item: ")
	assert.Equal(t, "", p.Text())
	assert.Equal(t, PromptCancel, p.HandleKey(key(tcell.KeyEscape)))
}

func TestPromptRender(t *testing.T) {
	screen, sim := newTestScreen(t, 30, 3)
	p := NewPrompt()
	p.Start("Find: ")
	p.HandleKey(keyRune('a'))
	p.SetInfo("2 matches")
	p.Render(screen, 2)

	assert.Equal(t, "Find: a            (2 matches)", rowText(sim, 2))
}

func TestPromptHistory(t *testing.T) {
	p := NewPrompt()
	p.SetHistory([]string{"alpha", "beta"})
	p.Start("Find: ")
	p.HandleKey(keyRune('z'))

	assert.Equal(t, PromptChanged, p.HandleKey(key(tcell.KeyUp)))
	assert.Equal(t, "beta", p.Text())
	p.HandleKey(key(tcell.KeyUp))
	assert.Equal(t, "alpha", p.Text())
	assert.Equal(t, PromptNone, p.HandleKey(key(tcell.KeyUp)), "oldest entry reached")

	p.HandleKey(keyRune('!'))
	assert.Equal(t, "alpha!", p.Text(), "cursor moves to the end")

	p.HandleKey(key(tcell.KeyDown))
	assert.Equal(t, "beta", p.Text())
	p.HandleKey(key(tcell.KeyDown))
	assert.Equal(t, "z", p.Text(), "the draft comes back")
	assert.Equal(t, PromptNone, p.HandleKey(key(tcell.KeyDown)))

	// Every start begins after the newest entry
	p.Start("Find: ")
	p.HandleKey(key(tcell.KeyUp))
	assert.Equal(t, "beta", p.Text())
}
