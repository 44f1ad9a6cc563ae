// Package search finds tree nodes by fuzzy matching their labels.
package search

import (
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/pstuifzand/tui-treeview/internal/treeview"
)

// Match is a node whose label matched a query
type Match struct {
	Node     *treeview.Node
	Distance int
}

// Find returns nodes whose labels fuzzy-match query, best match first.
// Ties keep display order. Collapsed subtrees are searched too.
func Find(t *treeview.Tree, query string) []Match {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}

	var nodes []*treeview.Node
	var labels []string
	t.Walk(func(n *treeview.Node, depth int) bool {
		nodes = append(nodes, n)
		labels = append(labels, n.Label)
		return true
	})

	ranks := fuzzy.RankFindFold(query, labels)
	sort.Stable(ranks)

	matches := make([]Match, 0, len(ranks))
	for _, r := range ranks {
		matches = append(matches, Match{Node: nodes[r.OriginalIndex], Distance: r.Distance})
	}
	return matches
}

// Cursor steps through the matches of the last query
type Cursor struct {
	query   string
	matches []Match
	pos     int
}

// Reset runs query against t and positions the cursor before the first match
func (c *Cursor) Reset(t *treeview.Tree, query string) int {
	c.query = query
	c.matches = Find(t, query)
	c.pos = -1
	return len(c.matches)
}

// Query returns the query of the last Reset
func (c *Cursor) Query() string {
	return c.query
}

// Next returns the following match, wrapping around, skipping nodes that
// have since been removed from t
func (c *Cursor) Next(t *treeview.Tree) *treeview.Node {
	for range c.matches {
		c.pos = (c.pos + 1) % len(c.matches)
		if n := c.matches[c.pos].Node; t.Contains(n) {
			return n
		}
	}
	return nil
}
