package search

import (
	"testing"

	"github.com/pstuifzand/tui-treeview/internal/treeview"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildTree(t *testing.T) (*treeview.Tree, map[string]*treeview.Node) {
	t.Helper()
	tree := treeview.New(treeview.DefaultOptions())
	nodes := make(map[string]*treeview.Node)
	add := func(label string, kind treeview.Kind, parent *treeview.Node) *treeview.Node {
		n := treeview.NewNode(label)
		require.NoError(t, tree.Append(n, kind, parent))
		nodes[label] = n
		return n
	}
	docs := add("Documents", treeview.KindGroup, nil)
	add("report.txt", treeview.KindItem, docs)
	add("resume.pdf", treeview.KindItem, docs)
	add("Pictures", treeview.KindGroup, nil)
	add("readme", treeview.KindItem, nil)
	tree.SetCollapsed(docs, true)
	return tree, nodes
}

func labelsOf(matches []Match) []string {
	var out []string
	for _, m := range matches {
		out = append(out, m.Node.Label)
	}
	return out
}

func TestFind(t *testing.T) {
	tree, _ := buildTree(t)

	assert.Empty(t, Find(tree, ""))
	assert.Empty(t, Find(tree, "zzz"))

	// Exact prefix ranks before the looser match; collapsed groups are searched
	matches := Find(tree, "rep")
	require.NotEmpty(t, matches)
	assert.Equal(t, "report.txt", matches[0].Node.Label)

	assert.Equal(t, []string{"Documents"}, labelsOf(Find(tree, "DOCU")))
}

func TestFindKeepsDisplayOrderOnTies(t *testing.T) {
	tree := treeview.New(treeview.DefaultOptions())
	for _, label := range []string{"ab", "ab", "ab"} {
		require.NoError(t, tree.Append(treeview.NewNode(label), treeview.KindItem, nil))
	}
	matches := Find(tree, "ab")
	require.Len(t, matches, 3)
	roots := tree.Roots()
	for i, m := range matches {
		assert.Same(t, roots[i], m.Node)
	}
}

func TestCursor(t *testing.T) {
	tree, nodes := buildTree(t)

	var c Cursor
	assert.Nil(t, c.Next(tree))

	count := c.Reset(tree, "re")
	require.Greater(t, count, 1)
	assert.Equal(t, "re", c.Query())

	first := c.Next(tree)
	require.NotNil(t, first)
	seen := map[*treeview.Node]bool{first: true}
	for i := 1; i < count; i++ {
		seen[c.Next(tree)] = true
	}
	assert.Len(t, seen, count)
	assert.Same(t, first, c.Next(tree), "cursor wraps around")

	require.NoError(t, tree.Remove(nodes["readme"]))
	for i := 0; i < count; i++ {
		assert.NotSame(t, nodes["readme"], c.Next(tree))
	}
}
