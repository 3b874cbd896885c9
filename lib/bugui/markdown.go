// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package bugui

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"

	"github.com/bureau-foundation/graveyard/lib/tui"
)

var (
	markdownParserInstance goldmark.Markdown
	markdownParserOnce     sync.Once
)

func markdownParser() goldmark.Markdown {
	markdownParserOnce.Do(func() {
		markdownParserInstance = goldmark.New(goldmark.WithExtensions(extension.GFM))
	})
	return markdownParserInstance
}

// renderMarkdown renders bug free text (description, root cause, fix,
// lessons) as styled terminal output wrapped to width. Soft line
// breaks become spaces so hard-wrapped source reflows. Fenced code is
// highlighted with chroma and never wrapped.
func renderMarkdown(input string, theme tui.Theme, width int) string {
	if strings.TrimSpace(input) == "" {
		return ""
	}
	source := []byte(input)
	document := markdownParser().Parser().Parse(text.NewReader(source))

	// Forced ANSI256: the output always goes to the TUI, and
	// auto-detection yields uncolored output when stderr is not a tty.
	styles := lipgloss.NewRenderer(os.Stderr, termenv.WithProfile(termenv.ANSI256))
	styles.SetColorProfile(termenv.ANSI256)

	renderer := &markdownRenderer{source: source, theme: theme, styles: styles}
	return strings.Join(renderer.blocks(document, max(width, 10), false), "\n")
}

type markdownRenderer struct {
	source []byte
	theme  tui.Theme
	styles *lipgloss.Renderer
}

// inlineStyle is the emphasis state while rendering inline content.
type inlineStyle struct {
	bold      bool
	italic    bool
	strike    bool
	underline bool
	code      bool
}

// blocks renders the block children of parent. Blocks are separated
// by a blank line unless tight (list items of a tight list).
func (renderer *markdownRenderer) blocks(parent ast.Node, width int, tight bool) []string {
	var lines []string
	for child := parent.FirstChild(); child != nil; child = child.NextSibling() {
		rendered := renderer.block(child, width)
		if len(rendered) == 0 {
			continue
		}
		if len(lines) > 0 && !tight {
			lines = append(lines, "")
		}
		lines = append(lines, rendered...)
	}
	return lines
}

func (renderer *markdownRenderer) block(node ast.Node, width int) []string {
	switch node := node.(type) {
	case *ast.Paragraph, *ast.TextBlock:
		return wrapLines(renderer.inline(node, inlineStyle{}), width)

	case *ast.Heading:
		style := renderer.styles.NewStyle().Bold(true).Foreground(renderer.theme.HeaderForeground)
		var lines []string
		for _, line := range wrapLines(renderer.plainText(node), width) {
			lines = append(lines, style.Render(line))
		}
		return lines

	case *ast.List:
		return renderer.list(node, width)

	case *ast.Blockquote:
		bar := renderer.styles.NewStyle().Foreground(renderer.theme.BorderColor).Render("│ ")
		var lines []string
		for _, line := range renderer.blocks(node, width-2, false) {
			lines = append(lines, bar+line)
		}
		return lines

	case *ast.FencedCodeBlock:
		return renderer.code(renderer.rawLines(node), string(node.Language(renderer.source)))

	case *ast.CodeBlock:
		return renderer.code(renderer.rawLines(node), "")

	case *ast.ThematicBreak:
		return []string{renderer.styles.NewStyle().Foreground(renderer.theme.BorderColor).
			Render(strings.Repeat("─", min(width, 40)))}

	case *ast.HTMLBlock:
		style := renderer.styles.NewStyle().Foreground(renderer.theme.FaintText)
		var lines []string
		for _, line := range strings.Split(strings.TrimRight(renderer.rawLines(node), "\n"), "\n") {
			lines = append(lines, style.Render(line))
		}
		return lines

	case *extast.Table:
		return renderer.table(node, width)
	}
	return wrapLines(renderer.plainText(node), width)
}

func (renderer *markdownRenderer) list(list *ast.List, width int) []string {
	markerStyle := renderer.styles.NewStyle().Foreground(renderer.theme.Accent)
	number := list.Start
	if number == 0 {
		number = 1
	}

	var lines []string
	for item := list.FirstChild(); item != nil; item = item.NextSibling() {
		marker := "• "
		if list.IsOrdered() {
			marker = fmt.Sprintf("%d. ", number)
			number++
		}
		markerWidth := ansi.StringWidth(marker)
		indent := strings.Repeat(" ", markerWidth)

		if len(lines) > 0 && !list.IsTight {
			lines = append(lines, "")
		}
		for index, line := range renderer.blocks(item, width-markerWidth, list.IsTight) {
			if index == 0 {
				lines = append(lines, markerStyle.Render(marker)+line)
			} else {
				lines = append(lines, indent+line)
			}
		}
	}
	return lines
}

// code highlights a code block. Lines are indented two columns and
// never wrapped; the detail viewport clips them.
func (renderer *markdownRenderer) code(code, language string) []string {
	code = strings.TrimRight(code, "\n")
	var builder strings.Builder
	if err := quick.Highlight(&builder, code, language, "terminal256", "monokai"); err != nil {
		builder.Reset()
		builder.WriteString(renderer.styles.NewStyle().Foreground(renderer.theme.FaintText).Render(code))
	}
	highlighted := strings.Split(builder.String(), "\n")
	// The formatter may end with a bare reset sequence after the final
	// newline.
	for len(highlighted) > 0 && strings.TrimSpace(ansi.Strip(highlighted[len(highlighted)-1])) == "" {
		highlighted = highlighted[:len(highlighted)-1]
	}
	lines := make([]string, len(highlighted))
	for index, line := range highlighted {
		lines[index] = "  " + line
	}
	return lines
}

func (renderer *markdownRenderer) table(table *extast.Table, width int) []string {
	separator := renderer.styles.NewStyle().Foreground(renderer.theme.BorderColor).Render(" │ ")
	headerStyle := renderer.styles.NewStyle().Bold(true)
	var lines []string
	for row := table.FirstChild(); row != nil; row = row.NextSibling() {
		var cells []string
		for cell := row.FirstChild(); cell != nil; cell = cell.NextSibling() {
			cells = append(cells, renderer.plainText(cell))
		}
		line := ansi.Truncate(strings.Join(cells, " │ "), width, "…")
		if _, isHeader := row.(*extast.TableHeader); isHeader {
			lines = append(lines, headerStyle.Render(line))
			continue
		}
		lines = append(lines, strings.ReplaceAll(line, " │ ", separator))
	}
	return lines
}

// inline renders the inline children of node as one styled string
// with hard breaks as newlines.
func (renderer *markdownRenderer) inline(node ast.Node, style inlineStyle) string {
	var builder strings.Builder
	for child := node.FirstChild(); child != nil; child = child.NextSibling() {
		switch child := child.(type) {
		case *ast.Text:
			builder.WriteString(renderer.styled(string(child.Segment.Value(renderer.source)), style))
			switch {
			case child.HardLineBreak():
				builder.WriteString("\n")
			case child.SoftLineBreak():
				builder.WriteString(" ")
			}
		case *ast.String:
			builder.WriteString(renderer.styled(string(child.Value), style))
		case *ast.Emphasis:
			nested := style
			if child.Level >= 2 {
				nested.bold = true
			} else {
				nested.italic = true
			}
			builder.WriteString(renderer.inline(child, nested))
		case *extast.Strikethrough:
			nested := style
			nested.strike = true
			builder.WriteString(renderer.inline(child, nested))
		case *ast.CodeSpan:
			nested := style
			nested.code = true
			builder.WriteString(renderer.styled(renderer.plainText(child), nested))
		case *ast.Link:
			nested := style
			nested.underline = true
			builder.WriteString(renderer.inline(child, nested))
		case *ast.AutoLink:
			nested := style
			nested.underline = true
			builder.WriteString(renderer.styled(string(child.Label(renderer.source)), nested))
		case *ast.Image:
			builder.WriteString(renderer.styled("[image: "+renderer.plainText(child)+"]", inlineStyle{italic: true}))
		case *ast.RawHTML:
			for index := 0; index < child.Segments.Len(); index++ {
				segment := child.Segments.At(index)
				builder.WriteString(renderer.styled(string(segment.Value(renderer.source)), inlineStyle{code: true}))
			}
		default:
			builder.WriteString(renderer.inline(child, style))
		}
	}
	return builder.String()
}

func (renderer *markdownRenderer) styled(content string, style inlineStyle) string {
	if content == "" || style == (inlineStyle{}) {
		return content
	}
	lipStyle := renderer.styles.NewStyle().
		Bold(style.bold).
		Italic(style.italic).
		Strikethrough(style.strike).
		Underline(style.underline)
	if style.code {
		lipStyle = lipStyle.Foreground(renderer.theme.Accent)
	}
	return lipStyle.Render(content)
}

// plainText concatenates the text of node's inline descendants.
func (renderer *markdownRenderer) plainText(node ast.Node) string {
	var builder strings.Builder
	for child := node.FirstChild(); child != nil; child = child.NextSibling() {
		switch child := child.(type) {
		case *ast.Text:
			builder.Write(child.Segment.Value(renderer.source))
			if child.SoftLineBreak() || child.HardLineBreak() {
				builder.WriteString(" ")
			}
		case *ast.String:
			builder.Write(child.Value)
		default:
			builder.WriteString(renderer.plainText(child))
		}
	}
	return builder.String()
}

func (renderer *markdownRenderer) rawLines(node ast.Node) string {
	var builder strings.Builder
	lines := node.Lines()
	for index := 0; index < lines.Len(); index++ {
		segment := lines.At(index)
		builder.Write(segment.Value(renderer.source))
	}
	return builder.String()
}

// wrapLines word-wraps styled content to width and splits it into
// lines.
func wrapLines(content string, width int) []string {
	if content == "" {
		return nil
	}
	return strings.Split(ansi.Wrap(content, width, " ,.;-+|"), "\n")
}
