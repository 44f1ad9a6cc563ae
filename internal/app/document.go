package app

import (
	"fmt"
	"strings"

	"github.com/pstuifzand/tui-treeview/internal/model"
	"github.com/pstuifzand/tui-treeview/internal/treeview"
)

// buildTree appends the outline's items to t, keeping each *model.Item as
// its node's Value
func buildTree(t *treeview.Tree, outline *model.Outline) error {
	var add func(items []*model.Item, parent *treeview.Node) error
	add = func(items []*model.Item, parent *treeview.Node) error {
		for _, item := range items {
			kind, err := treeview.ParseKind(item.Kind())
			if err != nil {
				return err
			}
			n := treeview.NewNode(item.Text)
			n.Value = item
			if err := t.Append(n, kind, parent); err != nil {
				return fmt.Errorf("failed to add %q: %w", item.Text, err)
			}
			if kind == treeview.KindGroup {
				if err := add(item.Children, n); err != nil {
					return err
				}
				t.SetCollapsed(n, item.Collapsed)
			}
		}
		return nil
	}
	return add(outline.Items, nil)
}

// outlineFromTree rebuilds the outline document from the tree's current
// order and collapse state
func outlineFromTree(t *treeview.Tree, title string) *model.Outline {
	outline := model.NewOutline(title)

	var collect func(nodes []*treeview.Node, parent *model.Item) []*model.Item
	collect = func(nodes []*treeview.Node, parent *model.Item) []*model.Item {
		items := make([]*model.Item, 0, len(nodes))
		for _, n := range nodes {
			item := itemFor(n)
			item.Text = n.Label
			item.Type = n.Kind().String()
			item.Parent = parent
			item.Collapsed = false
			item.Children = nil
			if n.IsGroup() {
				item.Collapsed = n.Collapsed()
				item.Children = collect(t.Children(n), item)
			}
			items = append(items, item)
		}
		return items
	}
	outline.Items = collect(t.Roots(), nil)
	return outline
}

// itemFor returns the document item behind n, creating one for nodes that
// were not loaded from a document
func itemFor(n *treeview.Node) *model.Item {
	if item, ok := n.Value.(*model.Item); ok && item != nil {
		return item
	}
	var item *model.Item
	if n.IsGroup() {
		item = model.NewGroup(n.Label)
	} else {
		item = model.NewItem(n.Label)
	}
	n.Value = item
	return item
}

// findGroup resolves a slash separated path of group labels starting at the
// root. The empty path is the root itself and resolves to nil.
func findGroup(t *treeview.Tree, path string) (*treeview.Node, error) {
	path = strings.Trim(path, "/")
	if path == "" {
		return nil, nil
	}

	var group *treeview.Node
	candidates := t.Roots()
	for _, label := range strings.Split(path, "/") {
		var found *treeview.Node
		for _, n := range candidates {
			if n.IsGroup() && strings.EqualFold(n.Label, label) {
				found = n
				break
			}
		}
		if found == nil {
			return nil, fmt.Errorf("group %q not found in %q", label, path)
		}
		group = found
		candidates = t.Children(found)
	}
	return group, nil
}
