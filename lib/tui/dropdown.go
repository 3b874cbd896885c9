// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// DropdownMaxRows caps how many options a dropdown shows at once.
// Longer option lists scroll with the cursor.
const DropdownMaxRows = 10

// DropdownOption is a single selectable item in a dropdown overlay.
type DropdownOption struct {
	Label string // Display text shown in the dropdown.
	Value string // Value applied on selection.
}

// DropdownOverlay renders a floating menu anchored at a screen
// position. It captures all keyboard input when active (up/down to
// navigate, enter to select, escape to dismiss). The model owns the
// dropdown instance and routes input to it while it is open.
//
// When Fuzzy is set, typed characters narrow the options with
// [FuzzyFilter]; the cursor then indexes the narrowed list.
type DropdownOverlay struct {
	Options []DropdownOption
	Cursor  int
	AnchorX int    // Screen X coordinate of the dropdown's top-left corner.
	AnchorY int    // Screen Y coordinate of the dropdown's top-left corner.
	Field   string // Which criterion this dropdown sets ("severity", "status", "module").

	Fuzzy bool
	Query string

	visible []int // indices into Options, in display order
	offset  int   // first visible row when scrolled
}

// NewDropdown creates a dropdown with the cursor on the option whose
// value equals current (or the first option).
func NewDropdown(field string, options []DropdownOption, current string, fuzzy bool) *DropdownOverlay {
	dropdown := &DropdownOverlay{Options: options, Field: field, Fuzzy: fuzzy}
	dropdown.refilter()
	for position, index := range dropdown.visible {
		if options[index].Value == current {
			dropdown.Cursor = position
			break
		}
	}
	dropdown.scrollToCursor()
	return dropdown
}

func (dropdown *DropdownOverlay) refilter() {
	labels := make([]string, len(dropdown.Options))
	for index, option := range dropdown.Options {
		labels[index] = option.Label
	}
	ranks := FuzzyFilter(labels, dropdown.Query)
	dropdown.visible = dropdown.visible[:0]
	for _, rank := range ranks {
		dropdown.visible = append(dropdown.visible, rank.Index)
	}
	dropdown.Cursor = 0
	dropdown.offset = 0
}

// Visible returns the options currently shown, after fuzzy narrowing.
func (dropdown *DropdownOverlay) Visible() []DropdownOption {
	result := make([]DropdownOption, len(dropdown.visible))
	for position, index := range dropdown.visible {
		result[position] = dropdown.Options[index]
	}
	return result
}

// TypeRune appends a character to the fuzzy query. No-op unless
// Fuzzy is set.
func (dropdown *DropdownOverlay) TypeRune(character rune) {
	if !dropdown.Fuzzy {
		return
	}
	dropdown.Query += string(character)
	dropdown.refilter()
}

// Backspace removes the last query character. Returns false when the
// query was already empty.
func (dropdown *DropdownOverlay) Backspace() bool {
	if !dropdown.Fuzzy || dropdown.Query == "" {
		return false
	}
	runes := []rune(dropdown.Query)
	dropdown.Query = string(runes[:len(runes)-1])
	dropdown.refilter()
	return true
}

// MoveUp moves the cursor up by one, wrapping to the bottom.
func (dropdown *DropdownOverlay) MoveUp() {
	if len(dropdown.visible) == 0 {
		return
	}
	dropdown.Cursor--
	if dropdown.Cursor < 0 {
		dropdown.Cursor = len(dropdown.visible) - 1
	}
	dropdown.scrollToCursor()
}

// MoveDown moves the cursor down by one, wrapping to the top.
func (dropdown *DropdownOverlay) MoveDown() {
	if len(dropdown.visible) == 0 {
		return
	}
	dropdown.Cursor++
	if dropdown.Cursor >= len(dropdown.visible) {
		dropdown.Cursor = 0
	}
	dropdown.scrollToCursor()
}

func (dropdown *DropdownOverlay) scrollToCursor() {
	if dropdown.Cursor < dropdown.offset {
		dropdown.offset = dropdown.Cursor
	}
	if dropdown.Cursor >= dropdown.offset+DropdownMaxRows {
		dropdown.offset = dropdown.Cursor - DropdownMaxRows + 1
	}
}

// Selected returns the highlighted option. The boolean is false when
// the fuzzy query matched nothing.
func (dropdown *DropdownOverlay) Selected() (DropdownOption, bool) {
	if dropdown.Cursor < 0 || dropdown.Cursor >= len(dropdown.visible) {
		return DropdownOption{}, false
	}
	return dropdown.Options[dropdown.visible[dropdown.Cursor]], true
}

// Width returns the total visible width of the rendered dropdown in
// columns. It is sized to the full option list so the box does not
// jitter while the user types.
func (dropdown *DropdownOverlay) Width() int {
	// Room for the "no matches" line and the query with its cursor.
	maxLabelWidth := max(len("no matches"), ansi.StringWidth(dropdown.Query)+2)
	for _, option := range dropdown.Options {
		labelWidth := ansi.StringWidth(option.Label)
		if labelWidth > maxLabelWidth {
			maxLabelWidth = labelWidth
		}
	}
	// Layout: " > LABEL " — 2 chars prefix (marker + space), then
	// label, then 1 char padding on each side.
	return 2 + maxLabelWidth + 2
}

// Height returns the number of rendered lines.
func (dropdown *DropdownOverlay) Height() int {
	rows := max(min(len(dropdown.visible), DropdownMaxRows), 1)
	if dropdown.Fuzzy {
		rows++
	}
	return rows
}

// Render produces the dropdown lines for overlay splicing. Each line
// has the same visible width and a solid background. Fuzzy dropdowns
// start with a query line; an empty match shows "no matches".
func (dropdown *DropdownOverlay) Render(theme Theme) []string {
	totalWidth := dropdown.Width()
	innerWidth := totalWidth - 2

	backgroundStyle := lipgloss.NewStyle().
		Background(theme.OverlayBackground).
		Foreground(theme.OverlayForeground)
	selectedStyle := lipgloss.NewStyle().
		Background(theme.SelectedBackground).
		Foreground(theme.SelectedForeground)
	faintStyle := lipgloss.NewStyle().
		Background(theme.OverlayBackground).
		Foreground(theme.FaintText)

	var lines []string
	if dropdown.Fuzzy {
		lines = append(lines, PadOverlayLine(faintStyle.Render("› "+dropdown.Query+"▎"), innerWidth, totalWidth, backgroundStyle))
	}
	if len(dropdown.visible) == 0 {
		lines = append(lines, PadOverlayLine(faintStyle.Render("  no matches"), innerWidth, totalWidth, backgroundStyle))
		return lines
	}

	end := min(dropdown.offset+DropdownMaxRows, len(dropdown.visible))
	for position := dropdown.offset; position < end; position++ {
		option := dropdown.Options[dropdown.visible[position]]
		style := backgroundStyle
		marker := " "
		if position == dropdown.Cursor {
			style = selectedStyle
			marker = ">"
		}
		content := marker + " " + ansi.Truncate(option.Label, innerWidth-2, "…")
		rightPad := innerWidth - ansi.StringWidth(content)
		if rightPad < 0 {
			rightPad = 0
		}
		lines = append(lines, style.Render(" "+content+strings.Repeat(" ", rightPad)+" "))
	}
	return lines
}
