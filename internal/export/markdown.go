// Package export writes tree documents in plain text formats.
package export

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pstuifzand/tui-treeview/internal/model"
)

// WriteMarkdown writes the outline as a nested bullet list under a title
// heading. Group labels end with a slash; a slash ending an item label is
// escaped so the list imports back with the same kinds.
func WriteMarkdown(w io.Writer, outline *model.Outline) error {
	bw := bufio.NewWriter(w)
	if outline.Title != "" {
		fmt.Fprintf(bw, "# %s\n\n", outline.Title)
	}
	for _, item := range outline.Items {
		writeItem(bw, item, 0)
	}
	return bw.Flush()
}

// ExportToMarkdown writes the outline to filePath as markdown
func ExportToMarkdown(outline *model.Outline, filePath string) error {
	f, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create markdown file: %w", err)
	}
	if err := WriteMarkdown(f, outline); err != nil {
		f.Close()
		return fmt.Errorf("failed to write markdown file: %w", err)
	}
	return f.Close()
}

// writeItem writes item and its children, two spaces of indentation per level
func writeItem(w *bufio.Writer, item *model.Item, depth int) {
	if item == nil {
		return
	}

	label := strings.TrimSpace(item.Text)
	if item.IsGroup() {
		label += "/"
	} else if strings.HasSuffix(label, "/") {
		label = strings.TrimSuffix(label, "/") + `\/`
	}

	w.WriteString(strings.Repeat("  ", depth))
	w.WriteString("- ")
	w.WriteString(label)
	w.WriteString("\n")

	for _, child := range item.Children {
		writeItem(w, child, depth+1)
	}
}
