// Package treeview implements a selectable, drag-and-drop reorderable tree.
//
// A Tree owns an ordered list of top-level nodes. Each node is either an item
// (leaf) or a group; a group always owns exactly one children list, which
// travels with it whenever the group is moved. On top of the structure the
// tree keeps a selection restricted to one sibling level, keyboard navigation
// that respects collapsed groups and a drag-and-drop protocol that resolves
// drop locations from pointer geometry.
package treeview

import "fmt"

// Kind classifies a node once it has been placed in a tree
type Kind int

const (
	// KindNone marks a node that was never appended to a tree
	KindNone Kind = iota
	KindItem
	KindGroup
)

// String returns the markup name of the kind
func (k Kind) String() string {
	switch k {
	case KindItem:
		return "item"
	case KindGroup:
		return "group"
	default:
		return "none"
	}
}

// ParseKind converts "item" or "group" into a Kind
func ParseKind(s string) (Kind, error) {
	switch s {
	case "item":
		return KindItem, nil
	case "group":
		return KindGroup, nil
	}
	return KindNone, fmt.Errorf("kind %q: %w", s, ErrInvalidType)
}

// Node is one selectable unit of the tree
type Node struct {
	Label string
	Value any // Host payload, never touched by the tree

	kind      Kind
	tree      *Tree
	container *list // List this node currently lives in
	children  *list // Non-nil for groups
	collapsed bool
}

// NewNode creates an unmarked node. Its kind is assigned by the first
// Append, InsertBefore or InsertAt call.
func NewNode(label string) *Node {
	return &Node{Label: label}
}

// Kind returns the node's kind
func (n *Node) Kind() Kind {
	return n.kind
}

// IsGroup reports whether the node owns a children list
func (n *Node) IsGroup() bool {
	return n.kind == KindGroup
}

// Collapsed reports whether a group is collapsed
func (n *Node) Collapsed() bool {
	return n.collapsed
}

func (n *Node) String() string {
	return fmt.Sprintf("%s(%s)", n.kind, n.Label)
}

// list is an ordered sequence of sibling nodes. The owner is the group the
// list belongs to, or nil for the tree root.
type list struct {
	owner *Node
	nodes []*Node
}

func newList(owner *Node) *list {
	return &list{owner: owner, nodes: make([]*Node, 0)}
}

func (l *list) index(n *Node) int {
	for i, c := range l.nodes {
		if c == n {
			return i
		}
	}
	return -1
}

// insert places n before ref, or at the end when ref is nil or not in l
func (l *list) insert(n *Node, ref *Node) {
	idx := len(l.nodes)
	if ref != nil {
		if i := l.index(ref); i >= 0 {
			idx = i
		}
	}
	l.nodes = append(l.nodes, nil)
	copy(l.nodes[idx+1:], l.nodes[idx:])
	l.nodes[idx] = n
	n.container = l
}

func (l *list) detach(n *Node) {
	if i := l.index(n); i >= 0 {
		l.nodes = append(l.nodes[:i], l.nodes[i+1:]...)
	}
	if n.container == l {
		n.container = nil
	}
}

func (l *list) next(n *Node) *Node {
	i := l.index(n)
	if i < 0 || i+1 >= len(l.nodes) {
		return nil
	}
	return l.nodes[i+1]
}

func (l *list) prev(n *Node) *Node {
	i := l.index(n)
	if i <= 0 {
		return nil
	}
	return l.nodes[i-1]
}

func (l *list) first() *Node {
	if len(l.nodes) == 0 {
		return nil
	}
	return l.nodes[0]
}

func (l *list) last() *Node {
	if len(l.nodes) == 0 {
		return nil
	}
	return l.nodes[len(l.nodes)-1]
}

// between returns the inclusive run of nodes from a to b in display order,
// whichever comes first
func (l *list) between(a, b *Node) []*Node {
	ia, ib := l.index(a), l.index(b)
	if ia < 0 || ib < 0 {
		return nil
	}
	if ia > ib {
		ia, ib = ib, ia
	}
	run := make([]*Node, ib-ia+1)
	copy(run, l.nodes[ia:ib+1])
	return run
}
