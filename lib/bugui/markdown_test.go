// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package bugui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"

	"github.com/bureau-foundation/graveyard/lib/tui"
)

func renderPlain(t *testing.T, input string, width int) []string {
	t.Helper()
	rendered := renderMarkdown(input, tui.DefaultTheme, width)
	return strings.Split(ansi.Strip(rendered), "\n")
}

func TestRenderMarkdownBlank(t *testing.T) {
	for _, input := range []string{"", "   ", "\n\n"} {
		if got := renderMarkdown(input, tui.DefaultTheme, 40); got != "" {
			t.Errorf("renderMarkdown(%q) = %q, want empty", input, got)
		}
	}
}

func TestRenderMarkdownReflowsParagraphs(t *testing.T) {
	lines := renderPlain(t, "The cache\nnever expired.\n\nSecond paragraph.", 80)
	want := []string{"The cache never expired.", "", "Second paragraph."}
	if len(lines) != len(want) {
		t.Fatalf("lines = %q, want %q", lines, want)
	}
	for index := range want {
		if lines[index] != want[index] {
			t.Fatalf("line %d = %q, want %q", index, lines[index], want[index])
		}
	}
}

func TestRenderMarkdownWraps(t *testing.T) {
	lines := renderPlain(t, strings.Repeat("haunted ", 12), 20)
	if len(lines) < 4 {
		t.Fatalf("got %d lines, want the paragraph wrapped", len(lines))
	}
	for _, line := range lines {
		if width := ansi.StringWidth(line); width > 20 {
			t.Fatalf("line %q is %d wide, want at most 20", line, width)
		}
	}
}

func TestRenderMarkdownLists(t *testing.T) {
	bullets := renderPlain(t, "- first\n- second", 40)
	if len(bullets) != 2 || bullets[0] != "• first" || bullets[1] != "• second" {
		t.Fatalf("bullets = %q", bullets)
	}

	ordered := renderPlain(t, "3. third\n4. fourth", 40)
	if len(ordered) != 2 || ordered[0] != "3. third" || ordered[1] != "4. fourth" {
		t.Fatalf("ordered = %q", ordered)
	}
}

func TestRenderMarkdownInline(t *testing.T) {
	lines := renderPlain(t, "Use **optional** chaining on `user.profile` and ~~hope~~.", 80)
	if lines[0] != "Use optional chaining on user.profile and hope." {
		t.Fatalf("line = %q", lines[0])
	}

	styled := renderMarkdown("**bold**", tui.DefaultTheme, 40)
	if styled == ansi.Strip(styled) {
		t.Fatal("bold text carries no styling")
	}
}

func TestRenderMarkdownBlockquoteAndHeading(t *testing.T) {
	lines := renderPlain(t, "# Postmortem\n\n> never again", 40)
	if lines[0] != "Postmortem" {
		t.Fatalf("heading = %q", lines[0])
	}
	if lines[len(lines)-1] != "│ never again" {
		t.Fatalf("quote = %q", lines[len(lines)-1])
	}
}

func TestRenderMarkdownCodeBlock(t *testing.T) {
	long := strings.Repeat("x", 60)
	lines := renderPlain(t, "```go\nif user == nil {\n\treturn\n}\n"+long+"\n```", 20)
	if len(lines) != 4 {
		t.Fatalf("code lines = %q, want 4", lines)
	}
	if !strings.HasPrefix(lines[0], "  if user == nil") {
		t.Fatalf("first code line = %q, want two-column indent", lines[0])
	}
	if lines[3] != "  "+long {
		t.Fatalf("long code line = %q, want it unwrapped", lines[3])
	}
}

func TestRenderMarkdownTable(t *testing.T) {
	lines := renderPlain(t, "| ttl | effect |\n|---|---|\n| 24h | stale |", 40)
	if len(lines) != 2 {
		t.Fatalf("table lines = %q, want header and one row", lines)
	}
	if lines[1] != "24h │ stale" {
		t.Fatalf("row = %q", lines[1])
	}
}
