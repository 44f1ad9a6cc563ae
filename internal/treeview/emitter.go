package treeview

import (
	"io"

	"github.com/charmbracelet/log"
)

// EventName names a notification emitted by the tree
type EventName string

const (
	EventSelectionChange EventName = "selectionChange"
	EventActivate        EventName = "activate"
)

// Event is a notification payload
type Event interface {
	Name() EventName
}

// SelectionChanged is emitted once per gesture that changed the selection
type SelectionChanged struct {
	Selected []*Node
}

// Name implements Event
func (SelectionChanged) Name() EventName { return EventSelectionChange }

// Activated is emitted when the single selected node is activated
type Activated struct {
	Node *Node
}

// Name implements Event
func (Activated) Name() EventName { return EventActivate }

// Listener receives emitted events
type Listener func(Event)

// ListenerID identifies a registration for Off
type ListenerID uint64

const defaultMaxListeners = 10

type registration struct {
	id   ListenerID
	fn   Listener
	once bool
}

// Emitter dispatches named events to registered listeners
type Emitter struct {
	listeners    map[EventName][]registration
	nextID       ListenerID
	maxListeners int
	logger       *log.Logger
}

// NewEmitter creates an Emitter. A nil logger discards leak warnings.
func NewEmitter(logger *log.Logger) *Emitter {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Emitter{
		listeners:    make(map[EventName][]registration),
		maxListeners: defaultMaxListeners,
		logger:       logger,
	}
}

// On registers fn for every emission of name
func (e *Emitter) On(name EventName, fn Listener) ListenerID {
	return e.add(name, fn, false)
}

// Once registers fn for the next emission of name only
func (e *Emitter) Once(name EventName, fn Listener) ListenerID {
	return e.add(name, fn, true)
}

func (e *Emitter) add(name EventName, fn Listener, once bool) ListenerID {
	e.nextID++
	e.listeners[name] = append(e.listeners[name], registration{id: e.nextID, fn: fn, once: once})
	if n := len(e.listeners[name]); e.maxListeners > 0 && n > e.maxListeners {
		e.logger.Warn("possible listener leak", "event", name, "listeners", n, "max", e.maxListeners)
	}
	return e.nextID
}

// Off removes a single registration. It reports whether one was found.
func (e *Emitter) Off(id ListenerID) bool {
	for name, regs := range e.listeners {
		for i, r := range regs {
			if r.id == id {
				e.listeners[name] = append(regs[:i:i], regs[i+1:]...)
				return true
			}
		}
	}
	return false
}

// OffAll removes every listener of the given events, or of all events when
// no names are given
func (e *Emitter) OffAll(names ...EventName) {
	if len(names) == 0 {
		e.listeners = make(map[EventName][]registration)
		return
	}
	for _, name := range names {
		delete(e.listeners, name)
	}
}

// Emit calls the listeners of ev.Name() in registration order and reports
// whether there were any
func (e *Emitter) Emit(ev Event) bool {
	regs := e.listeners[ev.Name()]
	if len(regs) == 0 {
		return false
	}
	snapshot := make([]registration, len(regs))
	copy(snapshot, regs)

	kept := regs[:0:0]
	for _, r := range regs {
		if !r.once {
			kept = append(kept, r)
		}
	}
	e.listeners[ev.Name()] = kept

	for _, r := range snapshot {
		r.fn(ev)
	}
	return true
}

// Listeners returns the listeners currently registered for name
func (e *Emitter) Listeners(name EventName) []Listener {
	regs := e.listeners[name]
	result := make([]Listener, 0, len(regs))
	for _, r := range regs {
		result = append(result, r.fn)
	}
	return result
}

// ListenerCount returns the number of listeners registered for name
func (e *Emitter) ListenerCount(name EventName) int {
	return len(e.listeners[name])
}

// SetMaxListeners sets the per-event count above which a warning is logged.
// Zero disables the warning.
func (e *Emitter) SetMaxListeners(n int) {
	e.maxListeners = n
}

// MaxListeners returns the leak warning threshold
func (e *Emitter) MaxListeners() int {
	return e.maxListeners
}
