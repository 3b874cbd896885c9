// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/x/ansi"
)

func TestSpliceOverlay(t *testing.T) {
	view := "0123456789\nabcdefghij\nABCDEFGHIJ"
	spliced := SpliceOverlay(view, []string{"XX", "YY"}, 3, 1)
	lines := strings.Split(ansi.Strip(spliced), "\n")
	if lines[0] != "0123456789" {
		t.Errorf("line 0 = %q, untouched line changed", lines[0])
	}
	if lines[1] != "abcXXfghij" || lines[2] != "ABCYYFGHIJ" {
		t.Errorf("lines = %q", lines)
	}
}

func TestSpliceOverlayClipsAndPads(t *testing.T) {
	spliced := SpliceOverlay("ab\ncd", []string{"ZZ", "ZZ", "ZZ"}, 4, 1)
	lines := strings.Split(ansi.Strip(spliced), "\n")
	if len(lines) != 2 {
		t.Fatalf("overlay rows past the view should be dropped: %q", lines)
	}
	if lines[1] != "cd  ZZ" {
		t.Errorf("line 1 = %q, want short line padded to the anchor", lines[1])
	}
}

func TestExcerpt(t *testing.T) {
	if got := Excerpt("first line\n\n  second   line", 80); got != "first line second line" {
		t.Errorf("Excerpt = %q", got)
	}
	got := Excerpt("a fairly long description of a bug", 10)
	if ansi.StringWidth(got) != 10 || !strings.HasSuffix(got, "…") {
		t.Errorf("Excerpt = %q, want 10 columns ending in an ellipsis", got)
	}
}

func TestScrollbarThumb(t *testing.T) {
	offset, size := ScrollbarThumb(10, 100, 10, 0)
	if offset != 0 || size != 1 {
		t.Errorf("top = %d/%d", offset, size)
	}
	offset, size = ScrollbarThumb(10, 100, 10, 90)
	if offset+size != 10 {
		t.Errorf("bottom thumb ends at %d, want 10", offset+size)
	}
	if _, size := ScrollbarThumb(10, 5, 10, 0); size != 10 {
		t.Errorf("content that fits should fill the track, got %d", size)
	}
}

func TestHeatTrackerDecay(t *testing.T) {
	tracker := NewHeatTracker()
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	tracker.Ignite("BUG-001", start)

	if heat := tracker.Heat("BUG-001", start); heat != 1 {
		t.Errorf("heat at ignition = %v, want 1", heat)
	}
	if heat := tracker.Heat("BUG-001", start.Add(HeatDecayDuration/2)); heat < 0.49 || heat > 0.51 {
		t.Errorf("heat at half-life = %v, want 0.5", heat)
	}
	if !tracker.HasHot(start.Add(time.Second)) {
		t.Error("tracker should be hot within the decay window")
	}
	if tracker.HasHot(start.Add(HeatDecayDuration)) {
		t.Error("tracker should be cold after the decay window")
	}
	if tracker.Heat("BUG-001", start) != 0 {
		t.Error("HasHot should drop decayed entries")
	}
	if tracker.Heat("BUG-404", start) != 0 {
		t.Error("unknown items have no heat")
	}
}
