// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package bugui

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/x/ansi"

	"github.com/bureau-foundation/graveyard/lib/tui"
)

func TestRenderBodySectionOrder(t *testing.T) {
	renderer := NewDetailRenderer(tui.DefaultTheme, 80)
	body := ansi.Strip(renderer.RenderBody(seedRecord(t, "BUG-001"), testNow))

	previous := -1
	for _, heading := range []string{
		"Description", "Root Cause", "Fix", "Lessons Learned", "Prevention",
		"Timeline", "Impacted Modules", "Details", "buried",
	} {
		position := strings.Index(body, heading)
		if position < 0 {
			t.Fatalf("body missing %q", heading)
		}
		if position < previous {
			t.Fatalf("%q appears out of order", heading)
		}
		previous = position
	}
}

func TestRenderBodyContent(t *testing.T) {
	renderer := NewDetailRenderer(tui.DefaultTheme, 80)
	body := ansi.Strip(renderer.RenderBody(seedRecord(t, "BUG-001"), testNow))

	for _, want := range []string{
		"☐ Add zod schema validation for all API responses",
		"Mar 15, 09:00",
		"● Discovered",
		"by Sarah Chen",
		"Customer reported white screen",
		"◆ Profile Service",
		"Mar 15, 2025",
		"Mike Johnson",
		"5.5h",
		"✝ Here lies a null pointer.",
		"buried 199 days ago",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("body missing %q", want)
		}
	}
}

func TestRenderBodyOpenBug(t *testing.T) {
	renderer := NewDetailRenderer(tui.DefaultTheme, 80)
	body := ansi.Strip(renderer.RenderBody(seedRecord(t, "BUG-007"), testNow))

	for _, absent := range []string{"Fix\n", "Closed", "buried"} {
		if strings.Contains(body, absent) {
			t.Errorf("open bug body contains %q", absent)
		}
	}
	if !strings.Contains(body, "haunting for 21 days") {
		t.Error("open bug body missing its haunting age")
	}
	if !strings.Contains(body, "Time to fix  —") {
		t.Error("open bug body missing the undefined fix time")
	}
	if !strings.Contains(body, "✝ Still haunting the cache to this day...") {
		t.Error("open bug body missing its epitaph")
	}
}

func TestRenderBodyMalformedTimestamps(t *testing.T) {
	record := seedRecord(t, "BUG-007")
	record.CreatedAt = "yesterday-ish"
	record.Timeline[0].Date = ""

	body := ansi.Strip(NewDetailRenderer(tui.DefaultTheme, 80).RenderBody(record, testNow))
	if !strings.Contains(body, "yesterday-ish") {
		t.Error("malformed created_at is not shown raw")
	}
	if !strings.Contains(body, "unknown") {
		t.Error("empty timeline date is not shown as unknown")
	}
	if strings.Contains(body, "haunting for") {
		t.Error("age line rendered from an unparseable timestamp")
	}
}

func TestRenderHeaderTitleTruncation(t *testing.T) {
	record := seedRecord(t, "BUG-003")
	record.Title = strings.Repeat("spooky ", 20)
	header := ansi.Strip(NewDetailRenderer(tui.DefaultTheme, 30).RenderHeader(record))

	lines := strings.Split(header, "\n")
	if len(lines) != detailHeaderLines {
		t.Fatalf("header has %d lines, want %d", len(lines), detailHeaderLines)
	}
	if !strings.HasSuffix(strings.TrimRight(lines[2], " "), "…") {
		t.Fatalf("second title line = %q, want an ellipsis", lines[2])
	}
	if !strings.Contains(lines[0], "BUG-003") {
		t.Fatalf("meta line = %q, want the bug ID", lines[0])
	}
}

func TestRelativeAge(t *testing.T) {
	tests := []struct {
		elapsed time.Duration
		want    string
	}{
		{-time.Hour, "today"},
		{3 * time.Hour, "today"},
		{25 * time.Hour, "1 day ago"},
		{72 * time.Hour, "3 days ago"},
	}
	for _, test := range tests {
		if got := relativeAge(test.elapsed); got != test.want {
			t.Errorf("relativeAge(%v) = %q, want %q", test.elapsed, got, test.want)
		}
	}
}

func TestFormatTimestamp(t *testing.T) {
	tests := []struct {
		value, want string
	}{
		{"2025-03-15T09:00:00Z", "Mar 15, 2025"},
		{"2025-03-15T09:00:00+02:00", "Mar 15, 2025"},
		{"someday", "someday"},
		{"", "unknown"},
	}
	for _, test := range tests {
		if got := formatTimestamp(test.value, dateLayout); got != test.want {
			t.Errorf("formatTimestamp(%q) = %q, want %q", test.value, got, test.want)
		}
	}
}

// --- DetailPane ---

func TestDetailPaneStates(t *testing.T) {
	pane := NewDetailPane(tui.DefaultTheme)
	pane.SetSize(60, 20)

	if !strings.Contains(ansi.Strip(pane.View(false)), "Select a bug to view details") {
		t.Fatal("empty pane missing its placeholder")
	}

	pane.SetBug(seedRecord(t, "BUG-002"), testNow)
	if pane.BugID() != "BUG-002" {
		t.Fatalf("BugID() = %q, want BUG-002", pane.BugID())
	}
	view := pane.View(true)
	if height := strings.Count(view, "\n") + 1; height != 20 {
		t.Fatalf("view height = %d, want 20", height)
	}

	pane.SetNotFound("BUG-404")
	if pane.BugID() != "" {
		t.Fatalf("BugID() after SetNotFound = %q, want empty", pane.BugID())
	}
	if !strings.Contains(ansi.Strip(pane.View(false)), "Bug not found: BUG-404") {
		t.Fatal("not-found pane missing its message")
	}
}

func TestDetailPaneKeepsOffsetForSameBug(t *testing.T) {
	pane := NewDetailPane(tui.DefaultTheme)
	pane.SetSize(60, 10)
	pane.SetBug(seedRecord(t, "BUG-001"), testNow)
	pane.ScrollDown(3)
	if pane.viewport.YOffset != 3 {
		t.Fatalf("YOffset = %d, want 3", pane.viewport.YOffset)
	}

	pane.SetBug(seedRecord(t, "BUG-001"), testNow)
	if pane.viewport.YOffset != 3 {
		t.Fatalf("re-setting the same bug moved YOffset to %d", pane.viewport.YOffset)
	}

	pane.SetBug(seedRecord(t, "BUG-002"), testNow)
	if pane.viewport.YOffset != 0 {
		t.Fatalf("switching bugs left YOffset at %d", pane.viewport.YOffset)
	}
}
