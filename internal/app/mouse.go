package app

import (
	"time"

	"github.com/gdamore/tcell/v2"
)

// DoubleClickInterval is the longest gap between two clicks on the same row
// that still counts as a double click
const DoubleClickInterval = 400 * time.Millisecond

type gesture int

const (
	gestureClick gesture = iota
	gestureDoubleClick
	gestureDragStart
	gestureDragOver
	gestureDragLeave
	gestureDrop
	gestureScrollUp
	gestureScrollDown
)

func (g gesture) String() string {
	switch g {
	case gestureClick:
		return "click"
	case gestureDoubleClick:
		return "double-click"
	case gestureDragStart:
		return "drag-start"
	case gestureDragOver:
		return "drag-over"
	case gestureDragLeave:
		return "drag-leave"
	case gestureDrop:
		return "drop"
	case gestureScrollUp:
		return "scroll-up"
	case gestureScrollDown:
		return "scroll-down"
	default:
		return "unknown"
	}
}

// mouseAction is a recognized gesture at a screen cell
type mouseAction struct {
	kind gesture
	x, y int
	mods tcell.ModMask
}

// mouseTracker turns raw button state reports into clicks and drags. A press
// that is released on the row it started on is a click; moving to another
// row while the button is held starts a drag.
type mouseTracker struct {
	pressed   bool
	dragging  bool
	cancelled bool
	startX    int
	startY    int
	startMods tcell.ModMask
	hoverY    int

	lastClick  time.Time
	lastClickY int

	now func() time.Time
}

func newMouseTracker() *mouseTracker {
	return &mouseTracker{now: time.Now}
}

// handle consumes one mouse event and returns the gestures it completes
func (m *mouseTracker) handle(ev *tcell.EventMouse) []mouseAction {
	x, y := ev.Position()
	mods := ev.Modifiers()
	buttons := ev.Buttons()

	switch {
	case buttons&tcell.WheelUp != 0:
		return []mouseAction{{kind: gestureScrollUp, x: x, y: y, mods: mods}}
	case buttons&tcell.WheelDown != 0:
		return []mouseAction{{kind: gestureScrollDown, x: x, y: y, mods: mods}}
	}

	if buttons&tcell.Button1 != 0 {
		return m.held(x, y, mods)
	}
	return m.released(x, y, mods)
}

func (m *mouseTracker) held(x, y int, mods tcell.ModMask) []mouseAction {
	if !m.pressed {
		m.pressed = true
		m.dragging = false
		m.cancelled = false
		m.startX, m.startY, m.startMods = x, y, mods
		return nil
	}
	if m.cancelled {
		return nil
	}

	if !m.dragging {
		if y == m.startY {
			return nil
		}
		m.dragging = true
		m.hoverY = y
		return []mouseAction{
			{kind: gestureDragStart, x: m.startX, y: m.startY, mods: m.startMods},
			{kind: gestureDragOver, x: x, y: y, mods: mods},
		}
	}

	var actions []mouseAction
	if y != m.hoverY {
		actions = append(actions, mouseAction{kind: gestureDragLeave, x: x, y: m.hoverY, mods: mods})
		m.hoverY = y
	}
	return append(actions, mouseAction{kind: gestureDragOver, x: x, y: y, mods: mods})
}

func (m *mouseTracker) released(x, y int, mods tcell.ModMask) []mouseAction {
	if !m.pressed {
		return nil
	}
	dragging, cancelled := m.dragging, m.cancelled
	m.reset()

	switch {
	case cancelled:
		return nil
	case dragging:
		return []mouseAction{{kind: gestureDrop, x: x, y: y, mods: mods}}
	}

	now := m.now()
	actions := []mouseAction{{kind: gestureClick, x: m.startX, y: m.startY, mods: m.startMods}}
	if !m.lastClick.IsZero() && m.lastClickY == m.startY && now.Sub(m.lastClick) <= DoubleClickInterval {
		actions = append(actions, mouseAction{kind: gestureDoubleClick, x: m.startX, y: m.startY, mods: m.startMods})
		m.lastClick = time.Time{}
	} else {
		m.lastClick = now
		m.lastClickY = m.startY
	}
	return actions
}

// cancel ignores the rest of the current press
func (m *mouseTracker) cancel() {
	if m.pressed {
		m.cancelled = true
		m.dragging = false
	}
}

func (m *mouseTracker) reset() {
	m.pressed = false
	m.dragging = false
	m.cancelled = false
}
