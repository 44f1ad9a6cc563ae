package treeview

// Where is the position of a drop relative to its target
type Where int

const (
	WhereAbove Where = iota
	WhereInside
	WhereBelow
)

func (w Where) String() string {
	switch w {
	case WhereAbove:
		return "above"
	case WhereInside:
		return "inside"
	default:
		return "below"
	}
}

// Class returns the marker class a renderer styles the target with
func (w Where) Class() string {
	return "drop-" + w.String()
}

// DropLocation describes where a drag would land. A nil Target is the tree
// root itself, which only happens for an empty tree.
type DropLocation struct {
	Target *Node
	Where  Where
}

// DragState is the phase of a drag that started on this tree
type DragState int

const (
	StateIdle DragState = iota
	StateDragStarted
	StateDragOver
	StateDragLeave
)

func (s DragState) String() string {
	switch s {
	case StateDragStarted:
		return "drag-started"
	case StateDragOver:
		return "drag-over"
	case StateDragLeave:
		return "drag-leave"
	default:
		return "idle"
	}
}

// DragState returns the current drag phase
func (t *Tree) DragState() DragState {
	return t.state
}

// DropMarker returns the location currently highlighted as a drop target
func (t *Tree) DropMarker() (DropLocation, bool) {
	return t.marker, t.hasMarker
}

func (t *Tree) ownDrag() bool {
	return t.state != StateIdle
}

func (t *Tree) setState(s DragState) {
	if t.state != s {
		t.logger.Debug("drag state", "from", t.state, "to", s)
		t.state = s
	}
}

func (t *Tree) clearMarker() {
	t.marker = DropLocation{}
	t.hasMarker = false
}

// DragStart begins dragging the node under the pointer. Dragging a node that
// is not selected makes it the whole selection. It reports whether the drag
// started.
func (t *Tree) DragStart(ev PointerEvent) bool {
	n := t.nodeAt(ev.Target)
	if n == nil {
		return false
	}
	if t.opts.DragStartCallback != nil && !t.opts.DragStartCallback(ev, n) {
		t.logger.Debug("drag start vetoed", "node", n.Label)
		return false
	}

	if !t.IsSelected(n) {
		t.selectOnly(n)
		t.emitSelectionChange()
	}
	t.hovering = false
	t.setState(StateDragStarted)
	return true
}

// DragOver updates the drop marker for the pointer position and reports
// whether a drop there would be accepted
func (t *Tree) DragOver(ev PointerEvent) bool {
	loc, ok := t.DropLocationFor(ev)
	if !ok {
		return false
	}
	if t.ownDrag() && (len(t.selected) == 0 || !t.acceptsDrop(loc)) {
		return false
	}

	t.hovering = true
	t.marker = loc
	t.hasMarker = true
	if t.ownDrag() {
		t.setState(StateDragOver)
	}
	return true
}

// DragLeave schedules the drop marker to be cleared unless another DragOver
// arrives within the drag leave delay
func (t *Tree) DragLeave(ev PointerEvent) {
	t.hovering = false
	if t.ownDrag() {
		t.setState(StateDragLeave)
	}

	check := func() {
		if !t.hovering {
			t.clearMarker()
		}
	}
	if t.opts.Scheduler == nil {
		check()
		return
	}
	t.opts.Scheduler.AfterFunc(t.opts.DragLeaveDelay, check)
}

// DragEnd cancels a drag that was not dropped
func (t *Tree) DragEnd() {
	if t.ownDrag() {
		t.logger.Debug("drag cancelled")
	}
	t.hovering = false
	t.clearMarker()
	t.setState(StateIdle)
}

// Drop finishes a drag at the pointer position. For drags that started on
// this tree the selected nodes are moved after the drop callback approves;
// foreign drags are handed to the drop callback only. It reports whether
// nodes were moved.
func (t *Tree) Drop(ev PointerEvent) bool {
	own := t.ownDrag()
	t.hovering = false
	defer t.setState(StateIdle)

	loc, ok := t.DropLocationFor(ev)
	if !ok {
		t.clearMarker()
		return false
	}
	t.clearMarker()

	if !own {
		if t.opts.DropCallback != nil {
			t.opts.DropCallback(ev, loc, nil)
		}
		return false
	}

	if len(t.selected) == 0 || !t.acceptsDrop(loc) {
		return false
	}

	ordered := t.orderedSelection()
	if t.opts.DropCallback != nil && !t.opts.DropCallback(ev, loc, ordered) {
		t.logger.Debug("drop vetoed", "where", loc.Where, "nodes", len(ordered))
		return false
	}

	parent, ref, ok := t.dropPoint(loc)
	if !ok {
		return false
	}
	t.moveNodes(ordered, parent, ref)
	t.logger.Debug("dropped", "where", loc.Where, "nodes", len(ordered))
	return true
}

// DropLocationFor resolves the drop location for a pointer event
func (t *Tree) DropLocationFor(ev PointerEvent) (DropLocation, bool) {
	var n *Node
	switch ev.Target.Area {
	case AreaRoot:
		last := t.root.last()
		if last == nil {
			return DropLocation{Where: WhereInside}, true
		}
		return DropLocation{Target: last, Where: WhereBelow}, true
	case AreaChildren:
		n = ev.Target.Node
		if !t.Contains(n) || !n.IsGroup() {
			return DropLocation{}, false
		}
	case AreaNode, AreaToggle:
		n = t.nodeAt(ev.Target)
	}
	if n == nil {
		return DropLocation{}, false
	}

	where, ok := t.insertionPoint(n, ev.Y)
	if !ok {
		return DropLocation{}, false
	}

	// A gap between two siblings is always described as above the second.
	if where == WhereBelow {
		if next := n.container.next(n); next != nil {
			return DropLocation{Target: next, Where: WhereAbove}, true
		}
	}
	return DropLocation{Target: n, Where: where}, true
}

// insertionPoint classifies y within n's bounds: top quarter above, bottom
// quarter inside a group with children (below otherwise), middle half below
// an item or inside a group
func (t *Tree) insertionPoint(n *Node, y int) (Where, bool) {
	if t.opts.Surface == nil {
		return WhereBelow, false
	}
	rect, ok := t.opts.Surface.Bounds(n)
	if !ok {
		return WhereBelow, false
	}

	offset := y - rect.Y
	switch {
	case offset*4 < rect.Height:
		return WhereAbove, true
	case offset*4 > rect.Height*3:
		if n.IsGroup() && len(n.children.nodes) > 0 {
			return WhereInside, true
		}
		return WhereBelow, true
	case n.IsGroup():
		return WhereInside, true
	default:
		return WhereBelow, true
	}
}

// acceptsDrop rejects dropping the dragged selection onto itself or into
// the subtree of a dragged group
func (t *Tree) acceptsDrop(loc DropLocation) bool {
	if loc.Target == nil {
		return true
	}
	if t.IsSelected(loc.Target) {
		return false
	}
	for _, s := range t.selected {
		if s.IsGroup() && t.IsDescendant(loc.Target, s) {
			return false
		}
	}
	return true
}

// orderedSelection returns the selected nodes in display order
func (t *Tree) orderedSelection() []*Node {
	if len(t.selected) == 0 {
		return nil
	}
	ordered := make([]*Node, 0, len(t.selected))
	for _, n := range t.selected[0].container.nodes {
		if t.IsSelected(n) {
			ordered = append(ordered, n)
		}
	}
	return ordered
}

// dropPoint returns the list and the node to insert before (nil for the end)
func (t *Tree) dropPoint(loc DropLocation) (*list, *Node, bool) {
	if loc.Target == nil {
		return t.root, t.root.first(), true
	}
	switch loc.Where {
	case WhereInside:
		if !loc.Target.IsGroup() {
			return nil, nil, false
		}
		return loc.Target.children, loc.Target.children.first(), true
	case WhereBelow:
		return loc.Target.container, loc.Target.container.next(loc.Target), true
	default:
		return loc.Target.container, loc.Target, true
	}
}

// moveNodes reinserts nodes, in order, before ref in parent. Groups carry
// their children list along.
func (t *Tree) moveNodes(nodes []*Node, parent *list, ref *Node) {
	for _, n := range nodes {
		if ref == n {
			ref = n.container.next(n)
		}
		n.container.detach(n)
		parent.insert(n, ref)
		ref = parent.next(n)
	}
}
