package app

import (
	"time"

	"github.com/gdamore/tcell/v2"
)

// deferredEvent carries a scheduled callback through the screen's event
// queue so it runs on the event loop goroutine
type deferredEvent struct {
	tcell.EventTime
	fn func()
}

// eventScheduler implements treeview.Scheduler by posting deferred events
type eventScheduler struct {
	post func(tcell.Event) error
}

func (s eventScheduler) AfterFunc(d time.Duration, fn func()) {
	time.AfterFunc(d, func() {
		ev := &deferredEvent{fn: fn}
		ev.SetEventNow()
		// Fails only once the screen is gone
		_ = s.post(ev)
	})
}
