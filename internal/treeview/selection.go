package treeview

// Selected returns the selected nodes in selection order
func (t *Tree) Selected() []*Node {
	return append([]*Node(nil), t.selected...)
}

// IsSelected reports whether n is selected
func (t *Tree) IsSelected(n *Node) bool {
	return indexOf(t.selected, n) >= 0
}

// Anchor returns the node range selection extends from, or nil
func (t *Tree) Anchor() *Node {
	return t.anchor
}

// ClearSelection deselects every node
func (t *Tree) ClearSelection() {
	t.selected = nil
	t.anchor = nil
}

// AddToSelection adds n to the selection. Nodes outside the tree or on a
// different sibling level than the current selection are ignored.
func (t *Tree) AddToSelection(n *Node) bool {
	if !t.Contains(n) {
		return false
	}
	if len(t.selected) > 0 && t.selected[0].container != n.container {
		return false
	}
	return t.addToSelection(n)
}

func (t *Tree) addToSelection(n *Node) bool {
	if t.IsSelected(n) {
		return false
	}
	t.selected = append(t.selected, n)
	if len(t.selected) == 1 {
		t.anchor = n
	}
	return true
}

// deselect removes n and moves the anchor to the first remaining node if
// n held it
func (t *Tree) deselect(n *Node) {
	i := indexOf(t.selected, n)
	if i < 0 {
		return
	}
	t.selected = append(t.selected[:i], t.selected[i+1:]...)
	if t.anchor == n {
		t.anchor = nil
		if len(t.selected) > 0 {
			t.anchor = t.selected[0]
		}
	}
}

// selectOnly replaces the selection with n
func (t *Tree) selectOnly(n *Node) {
	t.ClearSelection()
	t.addToSelection(n)
}

// Click handles a pointer click. Clicking a group's toggle flips its collapse
// state; anything else updates the selection.
func (t *Tree) Click(ev PointerEvent) {
	if ev.Target.Area == AreaToggle && t.Contains(ev.Target.Node) && ev.Target.Node.IsGroup() {
		t.ToggleCollapsed(ev.Target.Node)
		return
	}
	if t.updateSelection(ev) {
		t.emitSelectionChange()
	}
}

// DoubleClick activates the selected node when exactly one is selected and
// the pointer is over a node. Double clicks on empty space are ignored.
func (t *Tree) DoubleClick(ev PointerEvent) {
	if t.nodeAt(ev.Target) == nil {
		return
	}
	t.activate()
}

// updateSelection applies a click to the selection and reports whether it
// changed
func (t *Tree) updateSelection(ev PointerEvent) bool {
	shift := ev.Mods.Has(ModShift)
	ctrl := ev.Mods.Has(ModCtrl)

	changed := false
	if (!t.opts.MultipleSelection || (!shift && !ctrl)) && len(t.selected) > 0 {
		t.ClearSelection()
		changed = true
	}

	n := t.nodeAt(ev.Target)
	if n == nil {
		return changed
	}

	// The selection never spans sibling levels.
	if len(t.selected) > 0 && t.selected[0].container != n.container {
		return changed
	}

	if t.opts.MultipleSelection && shift && len(t.selected) > 0 {
		anchor := t.anchor
		run := n.container.between(anchor, n)
		if run == nil {
			return changed
		}
		t.selected = run
		t.anchor = anchor
		return true
	}

	if ctrl && t.IsSelected(n) {
		t.deselect(n)
		return true
	}

	return t.addToSelection(n) || changed
}

// nodeAt resolves a pointer target to the node it designates, if any.
// Empty space of the root or of a children list selects nothing.
func (t *Tree) nodeAt(target Target) *Node {
	switch target.Area {
	case AreaNode, AreaToggle:
		if t.Contains(target.Node) && target.Node.kind != KindNone {
			return target.Node
		}
	}
	return nil
}

func (t *Tree) emitSelectionChange() {
	t.events.Emit(SelectionChanged{Selected: t.Selected()})
}

func (t *Tree) activate() bool {
	if len(t.selected) != 1 {
		return false
	}
	t.events.Emit(Activated{Node: t.selected[0]})
	return true
}

func indexOf(nodes []*Node, n *Node) int {
	for i, c := range nodes {
		if c == n {
			return i
		}
	}
	return -1
}
