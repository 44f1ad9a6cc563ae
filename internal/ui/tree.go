package ui

import (
	"github.com/pstuifzand/tui-treeview/internal/treeview"
)

// Each terminal row spans RowUnits vertical pointer units, so a row can be
// split into the quarter bands the tree uses to pick an insertion point.
const (
	RowUnits      = 8
	PointerTop    = 0
	PointerMiddle = RowUnits / 2
	PointerBottom = RowUnits - 1
)

const indentWidth = 2

// Row is one visible line of the tree
type Row struct {
	Node  *treeview.Node
	Depth int
}

// TreeView lays out the visible nodes of a tree on the screen. It is the
// tree's Surface: node bounds are reported in content coordinates (row index
// times RowUnits), independent of scrolling.
type TreeView struct {
	tree  *treeview.Tree
	rows  []Row
	index map[*treeview.Node]int

	startY         int
	width          int
	height         int
	viewportOffset int // Index of first visible row
}

// NewTreeView creates a view of t and attaches it as t's surface
func NewTreeView(t *treeview.Tree) *TreeView {
	tv := &TreeView{
		tree:   t,
		height: 1,
	}
	t.SetSurface(tv)
	tv.Rebuild()
	return tv
}

// SetViewport places the view on screen rows [startY, startY+height)
func (tv *TreeView) SetViewport(startY, width, height int) {
	tv.startY = startY
	tv.width = width
	tv.height = max(height, 1)
	tv.clampOffset()
}

// Rebuild refreshes the row list after the tree changed
func (tv *TreeView) Rebuild() {
	tv.rows = tv.rows[:0]
	tv.index = make(map[*treeview.Node]int)
	tv.tree.Visible(func(n *treeview.Node, depth int) bool {
		tv.index[n] = len(tv.rows)
		tv.rows = append(tv.rows, Row{Node: n, Depth: depth})
		return true
	})
	tv.clampOffset()
}

// Rows returns the visible rows in display order
func (tv *TreeView) Rows() []Row {
	return append([]Row(nil), tv.rows...)
}

// Offset returns the index of the first row on screen
func (tv *TreeView) Offset() int {
	return tv.viewportOffset
}

// Scroll moves the viewport by delta rows
func (tv *TreeView) Scroll(delta int) {
	tv.viewportOffset += delta
	tv.clampOffset()
}

func (tv *TreeView) clampOffset() {
	maxOffset := max(len(tv.rows)-tv.height, 0)
	tv.viewportOffset = min(max(tv.viewportOffset, 0), maxOffset)
}

// Bounds returns n's row rectangle in content coordinates
func (tv *TreeView) Bounds(n *treeview.Node) (treeview.Rect, bool) {
	i, ok := tv.index[n]
	if !ok {
		return treeview.Rect{}, false
	}
	x := tv.rows[i].Depth * indentWidth
	return treeview.Rect{
		X:      x,
		Y:      i * RowUnits,
		Width:  max(tv.width-x, 0),
		Height: RowUnits,
	}, true
}

// ScrollIntoView adjusts the viewport so n is on screen
func (tv *TreeView) ScrollIntoView(n *treeview.Node) {
	tv.Rebuild()
	i, ok := tv.index[n]
	if !ok {
		return
	}
	if i < tv.viewportOffset {
		tv.viewportOffset = i
	} else if i >= tv.viewportOffset+tv.height {
		tv.viewportOffset = i - tv.height + 1
	}
	tv.clampOffset()
}

// HitTest resolves a screen cell to the part of the tree under it. Cells in
// the indentation of a row belong to the children area of the ancestor
// whose column they fall in.
func (tv *TreeView) HitTest(x, y int) treeview.Target {
	if y < tv.startY || y >= tv.startY+tv.height || x < 0 || x >= tv.width {
		return treeview.Target{Area: treeview.AreaNone}
	}
	i := y - tv.startY + tv.viewportOffset
	if i >= len(tv.rows) {
		return treeview.Target{Area: treeview.AreaRoot}
	}

	row := tv.rows[i]
	col := row.Depth * indentWidth
	switch {
	case x < col:
		level := x / indentWidth
		ancestor := row.Node
		for d := row.Depth; d > level; d-- {
			ancestor = tv.tree.Parent(ancestor)
		}
		return treeview.Target{Area: treeview.AreaChildren, Node: ancestor}
	case x == col && row.Node.IsGroup():
		return treeview.Target{Area: treeview.AreaToggle, Node: row.Node}
	default:
		return treeview.Target{Area: treeview.AreaNode, Node: row.Node}
	}
}

// PointerY converts a screen row and an offset within it (0 to RowUnits-1)
// into the content coordinate used by Bounds
func (tv *TreeView) PointerY(y, within int) int {
	return (y-tv.startY+tv.viewportOffset)*RowUnits + within
}

// Render draws the visible rows, the selection and the drop marker. Above
// and below markers underline the row before the gap; a gap at the top of
// the viewport highlights the row after it instead.
func (tv *TreeView) Render(screen *Screen) {
	tv.Rebuild()

	bgStyle := screen.BackgroundStyle()
	markerStyle := screen.DropMarkerStyle()

	underline, inside, flagged := -1, -1, -1
	marker, hasMarker := tv.tree.DropMarker()
	if hasMarker && marker.Target != nil {
		if i, ok := tv.index[marker.Target]; ok {
			switch marker.Where {
			case treeview.WhereAbove:
				if i > tv.viewportOffset {
					underline = i - 1
				} else {
					flagged = i
				}
			case treeview.WhereBelow:
				underline = i
			case treeview.WhereInside:
				inside = i
			}
		}
	}

	y := tv.startY
	for i := tv.viewportOffset; i < len(tv.rows) && y < tv.startY+tv.height; i++ {
		row := tv.rows[i]
		screen.FillRow(0, y, tv.width, bgStyle)

		for d := 0; d < row.Depth; d++ {
			screen.SetCell(d*indentWidth, y, '│', screen.TreeGuideStyle())
		}

		col := row.Depth * indentWidth
		glyph := '·'
		if row.Node.IsGroup() {
			glyph = '▾'
			if row.Node.Collapsed() {
				glyph = '▸'
			}
		}
		screen.SetCell(col, y, glyph, screen.TreeToggleStyle())

		style := screen.TreeNormalStyle()
		if row.Node.IsGroup() {
			style = screen.TreeGroupStyle()
		}
		switch {
		case tv.tree.IsSelected(row.Node):
			style = screen.TreeSelectedStyle()
		case i == inside:
			style = screen.DropInsideStyle()
		case i == flagged:
			style = markerStyle
		}

		textX := col + 2
		if i == underline {
			style = style.Underline(true).Foreground(screen.Theme.Colors.DropMarker)
			screen.FillRow(textX, y, tv.width-textX, markerStyle.Underline(true))
		}
		screen.DrawStringLimited(textX, y, row.Node.Label, tv.width-textX, style)
		y++
	}

	if len(tv.rows) == 0 && tv.height > 0 {
		text, style := "(empty)", screen.TreeGuideStyle()
		if hasMarker {
			text, style = "(drop here)", markerStyle
		}
		screen.FillRow(0, y, tv.width, bgStyle)
		screen.DrawStringLimited(2, y, text, tv.width-2, style)
		y++
	}

	for ; y < tv.startY+tv.height; y++ {
		screen.FillRow(0, y, tv.width, bgStyle)
	}
}
