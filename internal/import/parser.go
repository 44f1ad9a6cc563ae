// Package import_parser reads tree documents from plain text outlines.
package import_parser

import (
	"bufio"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/pstuifzand/tui-treeview/internal/model"
)

// ImportFormat represents different file formats that can be imported
type ImportFormat string

const (
	FormatMarkdown     ImportFormat = "markdown"
	FormatIndentedText ImportFormat = "indented"
	FormatAuto         ImportFormat = "auto" // Detect from the file extension
)

// Parser interface for different import formats
type Parser interface {
	Parse(content string) (*model.Outline, error)
	Name() string
}

// ImportFile parses content in format into a new outline
func ImportFile(content string, format ImportFormat) (*model.Outline, error) {
	var parser Parser

	switch format {
	case FormatMarkdown:
		parser = &MarkdownParser{}
	case FormatIndentedText:
		parser = &IndentedTextParser{}
	default:
		return nil, fmt.Errorf("unsupported import format: %s", format)
	}

	outline, err := parser.Parse(content)
	if err != nil {
		return nil, fmt.Errorf("parse error (%s): %w", parser.Name(), err)
	}
	return outline, nil
}

// DetectFormat picks the format from the file extension, defaulting to
// indented text
func DetectFormat(filename string) ImportFormat {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".md", ".markdown":
		return FormatMarkdown
	default:
		return FormatIndentedText
	}
}

// builder nests items by level. stack[i] is the last item added at level i.
type builder struct {
	roots []*model.Item
	stack []*model.Item
}

// add places a node at level, clamped to one below the deepest open
// level. A trailing slash makes the node a group; an escaped one is kept.
func (b *builder) add(level int, text string) {
	group := false
	switch {
	case strings.HasSuffix(text, `\/`):
		text = strings.TrimSuffix(text, `\/`) + "/"
	case len(text) > 1 && strings.HasSuffix(text, "/"):
		group = true
		text = strings.TrimSpace(strings.TrimSuffix(text, "/"))
	}

	item := model.NewItem(text)
	if group {
		item = model.NewGroup(text)
	}

	level = min(max(level, 0), len(b.stack))
	b.stack = b.stack[:level]
	if level == 0 {
		b.roots = append(b.roots, item)
	} else {
		b.stack[level-1].AddChild(item)
	}
	b.stack = append(b.stack, item)
}

func (b *builder) outline(title string) *model.Outline {
	outline := model.NewOutline(title)
	outline.Items = append(outline.Items, b.roots...)
	return outline
}

// indentLevel counts leading whitespace, a tab counting as two spaces, and
// returns the level at two spaces per level
func indentLevel(line string) int {
	indent := 0
	for i := 0; i < len(line); i++ {
		switch line[i] {
		case '\t':
			indent += 2
		case ' ':
			indent++
		default:
			return indent / 2
		}
	}
	return indent / 2
}

func scanLines(content string, fn func(line string)) error {
	scanner := bufio.NewScanner(strings.NewReader(content))
	for scanner.Scan() {
		if strings.TrimSpace(scanner.Text()) == "" {
			continue
		}
		fn(scanner.Text())
	}
	return scanner.Err()
}

// IndentedTextParser reads one node per line, nested by indentation
type IndentedTextParser struct{}

func (p *IndentedTextParser) Name() string {
	return "Indented Text"
}

// Parse converts indented text to an untitled outline
func (p *IndentedTextParser) Parse(content string) (*model.Outline, error) {
	var b builder
	err := scanLines(content, func(line string) {
		b.add(indentLevel(line), strings.TrimSpace(line))
	})
	if err != nil {
		return nil, err
	}
	return b.outline(""), nil
}

// MarkdownParser reads bullet lists. The first top-level heading before any
// node is the title; other headings become groups that the following
// bullets nest under.
type MarkdownParser struct{}

func (p *MarkdownParser) Name() string {
	return "Markdown"
}

// Parse converts markdown content to an outline
func (p *MarkdownParser) Parse(content string) (*model.Outline, error) {
	var b builder
	title := ""
	titled := false
	base := 0 // level of the bullets after the last heading

	err := scanLines(content, func(line string) {
		if level, text, ok := parseHeader(line); ok {
			if level == 0 && !titled && len(b.roots) == 0 {
				title, titled = text, true
				return
			}
			if titled {
				level--
			}
			b.add(level, strings.TrimSuffix(text, "/")+"/")
			base = min(max(level, 0), len(b.stack)-1) + 1
			return
		}

		if level, text, ok := parseListItem(line); ok {
			b.add(base+level, text)
			return
		}

		b.add(base, strings.TrimSpace(line))
	})
	if err != nil {
		return nil, err
	}
	return b.outline(title), nil
}

// parseHeader extracts the 0-based level and text of a markdown heading
func parseHeader(line string) (level int, text string, ok bool) {
	hashes := 0
	for hashes < len(line) && line[hashes] == '#' {
		hashes++
	}
	if hashes == 0 || hashes == len(line) || line[hashes] != ' ' {
		return 0, "", false
	}
	text = strings.TrimSpace(line[hashes:])
	if text == "" {
		return 0, "", false
	}
	return hashes - 1, text, true
}

// parseListItem extracts the indentation level and text of a bullet
func parseListItem(line string) (level int, text string, ok bool) {
	trimmed := strings.TrimSpace(line)
	if len(trimmed) > 2 && strings.ContainsRune("-*+", rune(trimmed[0])) && trimmed[1] == ' ' {
		return indentLevel(line), strings.TrimSpace(trimmed[2:]), true
	}
	return 0, "", false
}
