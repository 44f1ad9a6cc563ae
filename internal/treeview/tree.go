package treeview

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

var (
	ErrInvalidType      = errors.New("invalid type")
	ErrInvalidParent    = errors.New("invalid parent group")
	ErrInvalidReference = errors.New("invalid reference node")
)

// DefaultDragLeaveDelay is how long drop markers survive a drag leave
const DefaultDragLeaveDelay = 300 * time.Millisecond

// DragStartCallback may veto a drag that starts on n
type DragStartCallback func(ev PointerEvent, n *Node) bool

// DropCallback decides whether a drop proceeds. ordered is nil for drags
// that did not start on this tree.
type DropCallback func(ev PointerEvent, loc DropLocation, ordered []*Node) bool

// Options configures a Tree
type Options struct {
	DragStartCallback DragStartCallback
	DropCallback      DropCallback
	MultipleSelection bool
	DragLeaveDelay    time.Duration
	Scheduler         Scheduler
	Surface           Surface
	Logger            *log.Logger
}

// DefaultOptions returns options with multiple selection enabled
func DefaultOptions() Options {
	return Options{
		MultipleSelection: true,
		DragLeaveDelay:    DefaultDragLeaveDelay,
	}
}

// Tree is a selectable, reorderable tree of items and groups. It is not safe
// for concurrent use; all calls are expected from the input event goroutine.
type Tree struct {
	opts   Options
	logger *log.Logger
	events *Emitter

	root *list

	selected []*Node
	anchor   *Node
	focused  bool

	state     DragState
	hovering  bool
	marker    DropLocation
	hasMarker bool
}

// New creates an empty tree
func New(opts Options) *Tree {
	if opts.DragLeaveDelay <= 0 {
		opts.DragLeaveDelay = DefaultDragLeaveDelay
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Tree{
		opts:   opts,
		logger: logger,
		events: NewEmitter(logger),
		root:   newList(nil),
	}
}

// Events returns the tree's notification emitter
func (t *Tree) Events() *Emitter {
	return t.events
}

// SetSurface attaches the rendering substrate used for geometry and scrolling
func (t *Tree) SetSurface(s Surface) {
	t.opts.Surface = s
}

// MultipleSelection reports whether shift/ctrl clicks extend the selection
func (t *Tree) MultipleSelection() bool {
	return t.opts.MultipleSelection
}

// Append marks n with kind and moves it to the end of parent's children, or
// of the root when parent is nil
func (t *Tree) Append(n *Node, kind Kind, parent *Node) error {
	if err := t.checkNode(n, kind); err != nil {
		return fmt.Errorf("append: %w", err)
	}
	target, err := t.containerFor(n, parent)
	if err != nil {
		return fmt.Errorf("append %q: %w", n.Label, err)
	}
	t.mark(n, kind)
	t.place(n, target, nil)
	return nil
}

// InsertBefore marks n with kind and moves it directly before ref
func (t *Tree) InsertBefore(n *Node, kind Kind, ref *Node) error {
	if err := t.checkNode(n, kind); err != nil {
		return fmt.Errorf("insert before: %w", err)
	}
	if !t.Contains(ref) {
		return fmt.Errorf("insert %q before: %w", n.Label, ErrInvalidReference)
	}
	if ref == n {
		t.mark(n, kind)
		return nil
	}
	if n.IsGroup() && t.IsDescendant(ref, n) {
		return fmt.Errorf("insert %q before its own descendant: %w", n.Label, ErrInvalidReference)
	}
	t.mark(n, kind)
	t.place(n, ref.container, ref)
	return nil
}

// InsertAt places n at index within parent's children (or the root). An
// index at or beyond the child count appends.
func (t *Tree) InsertAt(n *Node, kind Kind, index int, parent *Node) error {
	if index < 0 {
		return fmt.Errorf("insert at %d: %w", index, ErrInvalidReference)
	}
	if err := t.checkNode(n, kind); err != nil {
		return fmt.Errorf("insert at %d: %w", index, err)
	}
	target, err := t.containerFor(n, parent)
	if err != nil {
		return fmt.Errorf("insert %q at %d: %w", n.Label, index, err)
	}
	if index >= len(target.nodes) {
		return t.Append(n, kind, parent)
	}
	return t.InsertBefore(n, kind, target.nodes[index])
}

// Remove detaches n, and for a group its whole subtree, from the tree.
// Removed nodes leave the selection; the anchor is re-derived if needed.
func (t *Tree) Remove(n *Node) error {
	if !t.Contains(n) {
		return fmt.Errorf("remove: %w", ErrInvalidReference)
	}

	if t.hasMarker && t.marker.Target != nil && (t.marker.Target == n || t.IsDescendant(t.marker.Target, n)) {
		t.clearMarker()
	}

	t.deselect(n)
	if n.IsGroup() {
		var removed []*Node
		for _, s := range t.selected {
			if t.IsDescendant(s, n) {
				removed = append(removed, s)
			}
		}
		for _, s := range removed {
			t.deselect(s)
		}
	}

	n.container.detach(n)
	t.release(n)
	return nil
}

// Clear empties the tree and resets selection and drag state
func (t *Tree) Clear() {
	for _, n := range t.root.nodes {
		t.release(n)
	}
	t.root = newList(nil)
	t.selected = nil
	t.anchor = nil
	t.state = StateIdle
	t.hovering = false
	t.clearMarker()
}

// release drops tree membership from n and discards the subtree below it.
// A released group keeps an empty children list for a later re-append.
func (t *Tree) release(n *Node) {
	n.tree = nil
	n.container = nil
	if n.IsGroup() {
		for _, c := range n.children.nodes {
			t.release(c)
		}
		n.children = newList(n)
	}
}

func (t *Tree) checkNode(n *Node, kind Kind) error {
	if kind != KindItem && kind != KindGroup {
		return fmt.Errorf("kind %d: %w", kind, ErrInvalidType)
	}
	if n == nil {
		return ErrInvalidReference
	}
	if n.kind != KindNone && n.kind != kind {
		return fmt.Errorf("%q is already a %s: %w", n.Label, n.kind, ErrInvalidType)
	}
	if n.tree != nil && n.tree != t {
		return fmt.Errorf("%q belongs to another tree: %w", n.Label, ErrInvalidReference)
	}
	return nil
}

// containerFor resolves the list that Append and InsertAt write into
func (t *Tree) containerFor(n, parent *Node) (*list, error) {
	if parent == nil {
		return t.root, nil
	}
	if !t.Contains(parent) || !parent.IsGroup() {
		return nil, ErrInvalidParent
	}
	if parent == n || t.IsDescendant(parent, n) {
		return nil, ErrInvalidParent
	}
	return parent.children, nil
}

// mark stamps the kind on a fresh node and gives groups their children list
func (t *Tree) mark(n *Node, kind Kind) {
	if n.kind == KindNone {
		n.kind = kind
		if kind == KindGroup {
			n.children = newList(n)
		}
	}
	n.tree = t
}

// place moves n (with its children list) before ref in l
func (t *Tree) place(n *Node, l *list, ref *Node) {
	from := n.container
	if from != nil {
		from.detach(n)
	}
	l.insert(n, ref)

	// Keep the selection on one sibling level.
	if from != l && t.IsSelected(n) && len(t.selected) > 1 {
		t.deselect(n)
	}
}

// Contains reports whether n is currently part of this tree
func (t *Tree) Contains(n *Node) bool {
	return n != nil && n.tree == t && n.container != nil
}

// Roots returns the top-level nodes in display order
func (t *Tree) Roots() []*Node {
	return append([]*Node(nil), t.root.nodes...)
}

// Children returns the direct children of a group
func (t *Tree) Children(n *Node) []*Node {
	if !t.Contains(n) || !n.IsGroup() {
		return nil
	}
	return append([]*Node(nil), n.children.nodes...)
}

// Parent returns the group containing n, or nil for top-level nodes
func (t *Tree) Parent(n *Node) *Node {
	if !t.Contains(n) {
		return nil
	}
	return n.container.owner
}

// Index returns n's position among its siblings, or -1
func (t *Tree) Index(n *Node) int {
	if !t.Contains(n) {
		return -1
	}
	return n.container.index(n)
}

// IsDescendant reports whether n lies strictly inside ancestor's subtree
func (t *Tree) IsDescendant(n, ancestor *Node) bool {
	if n == nil || ancestor == nil || n.container == nil {
		return false
	}
	for p := n.container.owner; p != nil; p = p.container.owner {
		if p == ancestor {
			return true
		}
		if p.container == nil {
			return false
		}
	}
	return false
}

// Len returns the number of nodes in the tree
func (t *Tree) Len() int {
	count := 0
	t.Walk(func(*Node, int) bool {
		count++
		return true
	})
	return count
}

// Walk visits every node depth-first in display order. Returning false from
// fn skips the node's children.
func (t *Tree) Walk(fn func(n *Node, depth int) bool) {
	walk(t.root, 0, false, fn)
}

// Visible walks like Walk but does not descend into collapsed groups
func (t *Tree) Visible(fn func(n *Node, depth int) bool) {
	walk(t.root, 0, true, fn)
}

func walk(l *list, depth int, skipCollapsed bool, fn func(*Node, int) bool) {
	for _, n := range l.nodes {
		if !fn(n, depth) {
			continue
		}
		if n.IsGroup() && !(skipCollapsed && n.collapsed) {
			walk(n.children, depth+1, skipCollapsed, fn)
		}
	}
}

// SetCollapsed collapses or expands a group
func (t *Tree) SetCollapsed(n *Node, collapsed bool) {
	if t.Contains(n) && n.IsGroup() {
		n.collapsed = collapsed
	}
}

// ToggleCollapsed flips a group's collapse state
func (t *Tree) ToggleCollapsed(n *Node) {
	if t.Contains(n) && n.IsGroup() {
		n.collapsed = !n.collapsed
	}
}
