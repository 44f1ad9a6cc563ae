package treeview

import "time"

// Rect is an on-screen bounding box in surface units
type Rect struct {
	X, Y          int
	Width, Height int
}

// Surface is the rendering substrate the tree is drawn on. The tree asks it
// for node geometry when resolving drop locations and to bring a node into
// view after keyboard navigation.
type Surface interface {
	Bounds(n *Node) (Rect, bool)
	ScrollIntoView(n *Node)
}

// Scheduler runs fn after d on the goroutine that delivers input events
type Scheduler interface {
	AfterFunc(d time.Duration, fn func())
}

// SchedulerFunc adapts a function to the Scheduler interface
type SchedulerFunc func(d time.Duration, fn func())

// AfterFunc calls f(d, fn)
func (f SchedulerFunc) AfterFunc(d time.Duration, fn func()) {
	f(d, fn)
}

// Area identifies which part of the tree a pointer is over
type Area int

const (
	AreaNone     Area = iota // Outside the tree
	AreaRoot                 // Empty space of the tree itself
	AreaNode                 // A node's row
	AreaToggle               // The expand/collapse toggle of a group
	AreaChildren             // Empty space of a group's children list; Node is the group
)

// Target is the hit-test result for a pointer position
type Target struct {
	Area Area
	Node *Node
}

// Modifiers is a bitmask of held modifier keys
type Modifiers uint8

const (
	ModShift Modifiers = 1 << iota
	ModCtrl
	ModAlt
)

// Has reports whether all bits of m are set
func (mods Modifiers) Has(m Modifiers) bool {
	return mods&m == m
}

// PointerEvent is a pointer input delivered by the host
type PointerEvent struct {
	Target Target
	X, Y   int
	Mods   Modifiers
}

// Key is a navigation key understood by the tree
type Key int

const (
	KeyUp Key = iota
	KeyDown
	KeyLeft
	KeyRight
	KeyEnter
)
