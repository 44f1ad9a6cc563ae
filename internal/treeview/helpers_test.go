package treeview

import (
	"testing"
	"time"

	"github.com/davecgh/go-spew/spew"
)

const rowHeight = 8

// Offsets within a row that land in each band of insertionPoint
const (
	offTop    = 0
	offMiddle = 4
	offBottom = 7
)

// rowSurface lays visible nodes out as fixed-height rows
type rowSurface struct {
	tree     *Tree
	scrolled []*Node
}

func (s *rowSurface) Bounds(n *Node) (Rect, bool) {
	row, i := -1, 0
	s.tree.Visible(func(c *Node, depth int) bool {
		if c == n {
			row = i
		}
		i++
		return true
	})
	if row < 0 {
		return Rect{}, false
	}
	return Rect{X: 0, Y: row * rowHeight, Width: 80, Height: rowHeight}, true
}

func (s *rowSurface) ScrollIntoView(n *Node) {
	s.scrolled = append(s.scrolled, n)
}

// manualScheduler queues deferred functions until run is called
type manualScheduler struct {
	pending []func()
	delays  []time.Duration
}

func (m *manualScheduler) AfterFunc(d time.Duration, fn func()) {
	m.pending = append(m.pending, fn)
	m.delays = append(m.delays, d)
}

func (m *manualScheduler) run() {
	pending := m.pending
	m.pending = nil
	for _, fn := range pending {
		fn()
	}
}

func newTestTree(t *testing.T, opts Options) (*Tree, *rowSurface) {
	t.Helper()
	tree := New(opts)
	surface := &rowSurface{tree: tree}
	tree.SetSurface(surface)
	return tree, surface
}

func mustAppend(t *testing.T, tree *Tree, label string, kind Kind, parent *Node) *Node {
	t.Helper()
	n := NewNode(label)
	if err := tree.Append(n, kind, parent); err != nil {
		t.Fatalf("append %s: %v", label, err)
	}
	return n
}

func flat(t *testing.T, tree *Tree, labels ...string) []*Node {
	t.Helper()
	nodes := make([]*Node, 0, len(labels))
	for _, l := range labels {
		nodes = append(nodes, mustAppend(t, tree, l, KindItem, nil))
	}
	return nodes
}

func labels(nodes []*Node) []string {
	result := make([]string, 0, len(nodes))
	for _, n := range nodes {
		result = append(result, n.Label)
	}
	return result
}

func click(n *Node, mods Modifiers) PointerEvent {
	return PointerEvent{Target: Target{Area: AreaNode, Node: n}, Mods: mods}
}

// at builds a pointer event over n at the given offset within its row
func at(t *testing.T, tree *Tree, n *Node, offset int) PointerEvent {
	t.Helper()
	rect, ok := tree.opts.Surface.Bounds(n)
	if !ok {
		t.Fatalf("%s is not visible", n.Label)
	}
	return PointerEvent{Target: Target{Area: AreaNode, Node: n}, Y: rect.Y + offset}
}

// checkInvariants verifies group/children pairing, parent links and the
// selection constraints
func checkInvariants(t *testing.T, tree *Tree) {
	t.Helper()
	var check func(l *list)
	check = func(l *list) {
		for _, n := range l.nodes {
			if n.container != l {
				t.Fatalf("%s has a stale container\n%s", n, spew.Sdump(labels(l.nodes)))
			}
			if n.tree != tree {
				t.Fatalf("%s does not point at its tree", n)
			}
			if n.IsGroup() {
				if n.children == nil || n.children.owner != n {
					t.Fatalf("group %s is not paired with its children list", n)
				}
				check(n.children)
			} else if n.children != nil {
				t.Fatalf("item %s owns a children list", n)
			}
		}
	}
	check(tree.root)

	if len(tree.selected) == 0 {
		if tree.anchor != nil {
			t.Fatalf("anchor %s set with empty selection", tree.anchor)
		}
		return
	}
	if !tree.IsSelected(tree.anchor) {
		t.Fatalf("anchor %v is not selected", tree.anchor)
	}
	for _, s := range tree.selected {
		if !tree.Contains(s) {
			t.Fatalf("selected %s is not in the tree", s)
		}
		if s.container != tree.selected[0].container {
			t.Fatalf("selection spans levels: %s", spew.Sdump(labels(tree.selected)))
		}
	}
}
