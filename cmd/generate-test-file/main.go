// Command generate-test-file writes a large tree document for trying out
// scrolling and dragging with many nodes.
package main

import (
	"fmt"
	"os"

	"github.com/pstuifzand/tui-treeview/internal/model"
	"github.com/pstuifzand/tui-treeview/internal/storage"
	"github.com/spf13/cobra"
)

func main() {
	var (
		numNodes int
		output   string
		depth    int
	)

	cmd := &cobra.Command{
		Use:          "generate-test-file",
		Short:        "Write a large generated tree document",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if numNodes < 1 {
				return fmt.Errorf("nodes must be at least 1")
			}

			outline := generateOutline(numNodes, depth)
			if err := storage.NewJSONStore(output).Save(outline); err != nil {
				return fmt.Errorf("failed to save: %w", err)
			}

			info, err := os.Stat(output)
			if err != nil {
				return fmt.Errorf("failed to stat output: %w", err)
			}

			groups, items := countNodes(outline.Items)
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Generated %d groups and %d items\n", groups, items)
			fmt.Fprintf(out, "Saved to: %s\n", output)
			fmt.Fprintf(out, "File size: %.2f MB\n", float64(info.Size())/(1024*1024))
			return nil
		},
	}
	cmd.Flags().IntVar(&numNodes, "nodes", 1000, "Number of nodes to generate")
	cmd.Flags().StringVar(&output, "output", "large_test.json", "Output file path")
	cmd.Flags().IntVar(&depth, "depth", 3, "Maximum nesting depth")

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func generateOutline(totalNodes int, maxDepth int) *model.Outline {
	outline := model.NewOutline(fmt.Sprintf("Generated (%d nodes)", totalNodes))

	remaining := totalNodes
	for remaining > 0 {
		if item := generateNode(&remaining, 0, maxDepth); item != nil {
			outline.Items = append(outline.Items, item)
		}
	}
	return outline
}

// generateNode builds a group while depth and the node budget allow, a leaf
// item otherwise
func generateNode(remaining *int, currentDepth int, maxDepth int) *model.Item {
	if *remaining <= 0 {
		return nil
	}

	text := generateUniqueText(*remaining)
	*remaining--

	if currentDepth >= maxDepth || *remaining == 0 {
		return model.NewItem(text)
	}

	group := model.NewGroup(text)
	group.Collapsed = currentDepth > 0 && *remaining%3 == 0
	numChildren := getChildCount(*remaining, maxDepth-currentDepth)
	for i := 0; i < numChildren && *remaining > 0; i++ {
		if child := generateNode(remaining, currentDepth+1, maxDepth); child != nil {
			group.AddChild(child)
		}
	}
	return group
}

func getChildCount(remaining int, depthLeft int) int {
	// Leaf level: create fewer children
	if depthLeft == 1 {
		if remaining > 10 {
			return 5
		}
		return max(remaining/2, 1)
	}
	if remaining > 50 {
		return 3
	}
	return 2
}

func generateUniqueText(index int) string {
	categories := []string{
		"Task", "Note", "Idea", "Bug", "Feature", "Enhancement",
		"Documentation", "Refactor", "Test", "Optimization",
		"Research", "Design", "Implementation", "Review",
	}
	descriptions := []string{
		"Core functionality",
		"User interface",
		"Performance improvement",
		"Bug fix",
		"New capability",
		"API integration",
		"Data validation",
		"Error handling",
		"Caching layer",
		"Database schema",
	}

	return fmt.Sprintf("%s #%d - %s", categories[index%len(categories)], index,
		descriptions[index%len(descriptions)])
}

func countNodes(items []*model.Item) (groups, leaves int) {
	for _, item := range items {
		if item.IsGroup() {
			groups++
			g, l := countNodes(item.Children)
			groups += g
			leaves += l
		} else {
			leaves++
		}
	}
	return groups, leaves
}
