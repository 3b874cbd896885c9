// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package bugui

import (
	"fmt"
	"math"
	"strings"
	"unicode"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/bureau-foundation/graveyard/lib/bugindex"
	"github.com/bureau-foundation/graveyard/lib/schema/bug"
	"github.com/bureau-foundation/graveyard/lib/tui"
)

// severityBadgeWidth is the fixed width of the severity badge column,
// "CRIT" plus one cell of padding either side.
const severityBadgeWidth = 6

// severityBadge renders a short severity label on a background of the
// severity color.
func severityBadge(theme tui.Theme, severity bug.Severity) string {
	label := strings.ToUpper(severity.Label())
	if len(label) > 4 {
		label = label[:4]
	}
	return lipgloss.NewStyle().
		Background(theme.SeverityColor(severity)).
		Foreground(lipgloss.Color("16")).
		Bold(true).
		Width(severityBadgeWidth).
		Align(lipgloss.Center).
		Render(label)
}

// statusIconCell pads the status icon to two cells; the icons mix
// narrow symbols and wide emoji.
func statusIconCell(status bug.Status) string {
	icon := tui.StatusIcon(status)
	if padding := 2 - ansi.StringWidth(icon); padding > 0 {
		icon += strings.Repeat(" ", padding)
	}
	return icon
}

// formatTimeToFix renders a recorded fix time as "30h" or "2.5h", and
// a missing one as the undefined placeholder.
func formatTimeToFix(hours *float64) string {
	if hours == nil {
		return bugindex.UndefinedPlaceholder
	}
	if *hours == math.Trunc(*hours) {
		return fmt.Sprintf("%dh", int(*hours))
	}
	return fmt.Sprintf("%.1fh", *hours)
}

// searchHighlights returns the rune positions in text covered by
// case-insensitive occurrences of query, matching the substring
// semantics of the filter. Occurrences do not overlap.
func searchHighlights(text, query string) []int {
	if strings.TrimSpace(query) == "" {
		return nil
	}
	queryRunes := lowerRunes(query)
	textRunes := lowerRunes(text)

	var positions []int
	for start := 0; start+len(queryRunes) <= len(textRunes); {
		if runesEqual(textRunes[start:start+len(queryRunes)], queryRunes) {
			for offset := range queryRunes {
				positions = append(positions, start+offset)
			}
			start += len(queryRunes)
			continue
		}
		start++
	}
	return positions
}

func lowerRunes(value string) []rune {
	runes := []rune(value)
	for index, character := range runes {
		runes[index] = unicode.ToLower(character)
	}
	return runes
}

func runesEqual(a, b []rune) bool {
	if len(a) != len(b) {
		return false
	}
	for index := range a {
		if a[index] != b[index] {
			return false
		}
	}
	return true
}

// highlightRunes styles the runes of text at positions with the
// search highlight, and everything else with base.
func highlightRunes(theme tui.Theme, text string, positions []int, base lipgloss.Style) string {
	if len(positions) == 0 {
		return base.Render(text)
	}
	marked := make(map[int]bool, len(positions))
	for _, position := range positions {
		marked[position] = true
	}
	highlight := base.Background(theme.SearchHighlightBackground).Bold(true)

	var builder strings.Builder
	var run []rune
	runMarked := false
	flush := func() {
		if len(run) == 0 {
			return
		}
		if runMarked {
			builder.WriteString(highlight.Render(string(run)))
		} else {
			builder.WriteString(base.Render(string(run)))
		}
		run = run[:0]
	}
	for index, character := range []rune(text) {
		if marked[index] != runMarked {
			flush()
			runMarked = marked[index]
		}
		run = append(run, character)
	}
	flush()
	return builder.String()
}

// listRow describes one rendered row of the bug list.
type listRow struct {
	record     *bug.Bug
	selected   bool
	focused    bool
	hot        bool
	highlights []int
}

// renderListRow renders a row exactly width cells wide:
// focus marker, severity badge, status icon, id, title, time to fix.
func renderListRow(theme tui.Theme, row listRow, width int) string {
	base := lipgloss.NewStyle().Foreground(theme.NormalText)
	switch {
	case row.selected:
		base = base.Background(theme.SelectedBackground).Foreground(theme.SelectedForeground)
	case row.hot:
		base = base.Background(theme.HotAccent)
	}

	marker := " "
	if row.selected && row.focused {
		marker = lipgloss.NewStyle().Foreground(theme.Accent).Inherit(base).Render("▌")
	} else {
		marker = base.Render(marker)
	}

	fixTime := formatTimeToFix(row.record.TimeToFix)
	fixWidth := max(ansi.StringWidth(fixTime), 4)
	fixCell := base.Foreground(theme.FaintText).Width(fixWidth).Align(lipgloss.Right).Render(fixTime)

	idCell := base.Foreground(theme.FaintText).Render(row.record.ID)
	prefix := marker +
		severityBadge(theme, row.record.Severity) +
		base.Render(" ") +
		base.Foreground(theme.StatusColor(row.record.Status)).Render(statusIconCell(row.record.Status)) +
		base.Render(" ") +
		idCell +
		base.Render(" ")

	titleWidth := width - ansi.StringWidth(prefix) - fixWidth - 1
	if titleWidth < 1 {
		return ansi.Truncate(prefix, width, "")
	}
	title := row.record.Title
	if ansi.StringWidth(title) > titleWidth {
		title = ansi.Truncate(title, titleWidth, "…")
	}
	titleCell := highlightRunes(theme, title, row.highlights, base)
	if padding := titleWidth - ansi.StringWidth(title); padding > 0 {
		titleCell += base.Render(strings.Repeat(" ", padding))
	}

	return prefix + titleCell + base.Render(" ") + fixCell
}
