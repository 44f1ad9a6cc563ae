package treeview

// SetFocused records whether the tree holds input focus. Keys are ignored
// while it does not.
func (t *Tree) SetFocused(focused bool) {
	t.focused = focused
}

// Focused reports whether the tree holds input focus
func (t *Tree) Focused() bool {
	return t.focused
}

// HandleKey routes a navigation key and reports whether it was consumed
func (t *Tree) HandleKey(k Key) bool {
	if !t.focused {
		return false
	}
	switch k {
	case KeyUp:
		t.MoveVertically(-1)
	case KeyDown:
		t.MoveVertically(1)
	case KeyLeft:
		t.MoveHorizontally(-1)
	case KeyRight:
		t.MoveHorizontally(1)
	case KeyEnter:
		t.activate()
	default:
		return false
	}
	return true
}

// MoveVertically selects the previous (offset < 0) or next visible node
// relative to the anchor. Without a selection, moving down selects the first
// top-level node. It reports whether the selection moved.
func (t *Tree) MoveVertically(offset int) bool {
	var target *Node
	switch {
	case t.anchor == nil:
		if offset > 0 {
			target = t.root.first()
		}
	case offset > 0:
		target = t.nextVisible(t.anchor)
	case offset < 0:
		target = t.prevVisible(t.anchor)
	}
	if target == nil {
		return false
	}
	t.navigateTo(target)
	return true
}

// MoveHorizontally collapses (offset < 0) or expands (offset > 0) the anchor
// group. Moving left from a collapsed group or an item selects the parent;
// moving right from an expanded group selects its first child. It reports
// whether the selection moved.
func (t *Tree) MoveHorizontally(offset int) bool {
	n := t.anchor
	if n == nil || offset == 0 {
		return false
	}

	if offset < 0 {
		if n.IsGroup() && !n.collapsed {
			n.collapsed = true
			return false
		}
		parent := n.container.owner
		if parent == nil {
			return false
		}
		t.navigateTo(parent)
		return true
	}

	if !n.IsGroup() {
		return false
	}
	if n.collapsed {
		n.collapsed = false
		return false
	}
	first := n.children.first()
	if first == nil {
		return false
	}
	t.navigateTo(first)
	return true
}

// ScrollIntoView expands every collapsed ancestor of n and asks the surface
// to bring it on screen
func (t *Tree) ScrollIntoView(n *Node) {
	if !t.Contains(n) {
		return
	}
	for p := n.container.owner; p != nil; p = p.container.owner {
		p.collapsed = false
	}
	if t.opts.Surface != nil {
		t.opts.Surface.ScrollIntoView(n)
	}
}

func (t *Tree) navigateTo(n *Node) {
	t.selectOnly(n)
	t.ScrollIntoView(n)
	t.emitSelectionChange()
}

// nextVisible returns the node after n in collapse-aware depth-first order
func (t *Tree) nextVisible(n *Node) *Node {
	if n.IsGroup() && !n.collapsed {
		if first := n.children.first(); first != nil {
			return first
		}
	}
	for cur := n; cur != nil; cur = cur.container.owner {
		if next := cur.container.next(cur); next != nil {
			return next
		}
	}
	return nil
}

// prevVisible returns the node before n in collapse-aware depth-first order
func (t *Tree) prevVisible(n *Node) *Node {
	prev := n.container.prev(n)
	if prev == nil {
		return n.container.owner
	}
	for prev.IsGroup() && !prev.collapsed {
		last := prev.children.last()
		if last == nil {
			break
		}
		prev = last
	}
	return prev
}
