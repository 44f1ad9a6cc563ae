package app

import (
	"github.com/gdamore/tcell/v2"
	"github.com/pstuifzand/tui-treeview/internal/treeview"
	"github.com/pstuifzand/tui-treeview/internal/ui"
)

// KeyBinding represents a key binding with its description and handler
type KeyBinding struct {
	Key         rune
	Description string
	Handler     func(*App)
}

// InitializeKeybindings sets up the rune key bindings of the tree view
func (a *App) InitializeKeybindings() []KeyBinding {
	return []KeyBinding{
		{
			Key:         'j',
			Description: "Select next node",
			Handler:     func(app *App) { app.tree.HandleKey(treeview.KeyDown) },
		},
		{
			Key:         'k',
			Description: "Select previous node",
			Handler:     func(app *App) { app.tree.HandleKey(treeview.KeyUp) },
		},
		{
			Key:         'h',
			Description: "Collapse group or select parent",
			Handler:     func(app *App) { app.tree.HandleKey(treeview.KeyLeft) },
		},
		{
			Key:         'l',
			Description: "Expand group or select first child",
			Handler:     func(app *App) { app.tree.HandleKey(treeview.KeyRight) },
		},
		{
			Key:         ' ',
			Description: "Toggle the selected group",
			Handler: func(app *App) {
				if n := app.tree.Anchor(); n != nil && n.IsGroup() {
					app.tree.ToggleCollapsed(n)
					app.dirty = true
				}
			},
		},
		{
			Key:         'n',
			Description: "New item in the selected group",
			Handler:     func(app *App) { app.startPrompt(promptNewItem) },
		},
		{
			Key:         'g',
			Description: "New group in the selected group",
			Handler:     func(app *App) { app.startPrompt(promptNewGroup) },
		},
		{
			Key:         'x',
			Description: "Remove selected nodes",
			Handler:     func(app *App) { app.removeSelected() },
		},
		{
			Key:         '/',
			Description: "Find by label",
			Handler:     func(app *App) { app.startPrompt(promptFind) },
		},
		{
			Key:         ';',
			Description: "Next find match",
			Handler:     func(app *App) { app.nextMatch() },
		},
		{
			Key:         ':',
			Description: "Set a session setting (key=value)",
			Handler:     func(app *App) { app.startPrompt(promptSet) },
		},
		{
			Key:         'w',
			Description: "Save",
			Handler:     func(app *App) { app.saveWithStatus() },
		},
		{
			Key:         '?',
			Description: "Toggle help",
			Handler:     func(app *App) { app.help.Toggle() },
		},
		{
			Key:         'q',
			Description: "Quit",
			Handler: func(app *App) {
				if app.dirty {
					app.SetStatus("Unsaved changes! Press w to save or Q to quit anyway")
					return
				}
				app.quit = true
			},
		},
		{
			Key:         'Q',
			Description: "Quit without saving",
			Handler:     func(app *App) { app.quit = true },
		},
	}
}

// helpEntries lists the bindings for the help overlay
func (a *App) helpEntries() []ui.HelpEntry {
	entries := []ui.HelpEntry{
		{Key: "Arrows", Description: "Navigate"},
		{Key: "Enter", Description: "Activate the selected node"},
		{Key: "Ctrl-S", Description: "Save"},
		{Key: "Esc", Description: "Cancel drag or prompt"},
		{Key: "Click", Description: "Select (Ctrl toggles, Shift extends)"},
		{Key: "Drag", Description: "Move selection (Shift: above, Ctrl: inside/below)"},
	}
	for _, kb := range a.keybindings {
		key := string(kb.Key)
		if kb.Key == ' ' {
			key = "Space"
		}
		entries = append(entries, ui.HelpEntry{Key: key, Description: kb.Description})
	}
	return entries
}

// GetKeybindingByKey returns the binding for key, or nil
func (a *App) GetKeybindingByKey(key rune) *KeyBinding {
	for i := range a.keybindings {
		if a.keybindings[i].Key == key {
			return &a.keybindings[i]
		}
	}
	return nil
}

// navigationKeys maps terminal keys onto tree navigation keys
var navigationKeys = map[tcell.Key]treeview.Key{
	tcell.KeyUp:    treeview.KeyUp,
	tcell.KeyDown:  treeview.KeyDown,
	tcell.KeyLeft:  treeview.KeyLeft,
	tcell.KeyRight: treeview.KeyRight,
	tcell.KeyEnter: treeview.KeyEnter,
}

// handleKeypress handles a single keypress while the tree has focus
func (a *App) handleKeypress(ev *tcell.EventKey) {
	if a.debugMode {
		a.SetStatus("Key: " + ev.Name())
	}

	if k, ok := navigationKeys[ev.Key()]; ok {
		a.tree.HandleKey(k)
		return
	}

	switch ev.Key() {
	case tcell.KeyCtrlS:
		a.saveWithStatus()
		return
	case tcell.KeyPgUp:
		a.view.Scroll(-a.pageSize())
		return
	case tcell.KeyPgDn:
		a.view.Scroll(a.pageSize())
		return
	case tcell.KeyEscape:
		a.cancelDrag()
		return
	case tcell.KeyRune:
		if kb := a.GetKeybindingByKey(ev.Rune()); kb != nil {
			kb.Handler(a)
		}
	}
}
