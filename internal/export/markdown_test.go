package export

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/pstuifzand/tui-treeview/internal/model"
)

func sampleOutline() *model.Outline {
	deep := model.NewGroup("Nested Group")
	deep.AddChild(model.NewItem("Deep Item"))

	first := model.NewGroup("First Group")
	first.AddChild(model.NewItem("Nested Item"))
	first.AddChild(deep)

	outline := model.NewOutline("Test Outline")
	outline.Items = []*model.Item{first, model.NewGroup("Empty"), model.NewItem("path/")}
	return outline
}

func TestWriteMarkdown(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteMarkdown(&buf, sampleOutline()); err != nil {
		t.Fatalf("WriteMarkdown failed: %v", err)
	}

	expected := `# Test Outline

- First Group/
  - Nested Item
  - Nested Group/
    - Deep Item
- Empty/
- path\/
`
	if buf.String() != expected {
		t.Errorf("Markdown output mismatch.\nExpected:\n%s\nGot:\n%s", expected, buf.String())
	}
}

func TestWriteMarkdownWithoutTitle(t *testing.T) {
	outline := model.NewOutline("")
	outline.Items = []*model.Item{model.NewItem("only")}

	var buf bytes.Buffer
	if err := WriteMarkdown(&buf, outline); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "- only\n" {
		t.Errorf("Unexpected output %q", buf.String())
	}
}

func TestExportToMarkdown(t *testing.T) {
	outputFile := filepath.Join(t.TempDir(), "test_output.md")

	if err := ExportToMarkdown(sampleOutline(), outputFile); err != nil {
		t.Fatalf("ExportToMarkdown failed: %v", err)
	}

	content, err := os.ReadFile(outputFile)
	if err != nil {
		t.Fatalf("Failed to read output file: %v", err)
	}
	if !bytes.HasPrefix(content, []byte("# Test Outline\n")) {
		t.Errorf("Missing title heading: %q", content)
	}

	if err := ExportToMarkdown(sampleOutline(), filepath.Join(t.TempDir(), "missing", "out.md")); err == nil {
		t.Errorf("Expected error for missing directory")
	}
}
