// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package bugui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/bureau-foundation/graveyard/lib/bugindex"
	"github.com/bureau-foundation/graveyard/lib/schema/bug"
	"github.com/bureau-foundation/graveyard/lib/tui"
)

// Dropdown field names for the filter selectors.
const (
	fieldSeverity = "severity"
	fieldStatus   = "status"
	fieldModule   = "module"
)

// FilterBar holds the All Bugs filter state: the search text being
// typed and the three selector values. Criteria is always in sync
// with what the bar displays.
type FilterBar struct {
	Criteria bugindex.Criteria

	// Active is true while the search input has keyboard focus.
	Active bool
}

// NewFilterBar returns a filter bar matching everything.
func NewFilterBar() FilterBar {
	return FilterBar{Criteria: bugindex.DefaultCriteria()}
}

// HandleRune appends a character to the search text.
func (filter *FilterBar) HandleRune(character rune) {
	filter.Criteria.Search += string(character)
}

// HandleBackspace removes the last character of the search text.
// Returns true if the text changed.
func (filter *FilterBar) HandleBackspace() bool {
	runes := []rune(filter.Criteria.Search)
	if len(runes) == 0 {
		return false
	}
	filter.Criteria.Search = string(runes[:len(runes)-1])
	return true
}

// Reset clears every criterion and leaves search mode.
func (filter *FilterBar) Reset() {
	filter.Criteria = bugindex.DefaultCriteria()
	filter.Active = false
}

// Value returns the current value of a selector field.
func (filter *FilterBar) Value(field string) string {
	switch field {
	case fieldSeverity:
		return filter.Criteria.Severity
	case fieldStatus:
		return filter.Criteria.Status
	case fieldModule:
		return filter.Criteria.Module
	}
	return ""
}

// SetValue sets a selector field.
func (filter *FilterBar) SetValue(field, value string) {
	switch field {
	case fieldSeverity:
		filter.Criteria.Severity = value
	case fieldStatus:
		filter.Criteria.Status = value
	case fieldModule:
		filter.Criteria.Module = value
	}
}

// Options returns the dropdown options for a selector field, "All"
// first, drawn from the store's enumerations and module list.
func (filter *FilterBar) Options(field string, store *bugindex.Store) []tui.DropdownOption {
	options := []tui.DropdownOption{{Label: "All", Value: bugindex.All}}
	switch field {
	case fieldSeverity:
		for _, severity := range store.Severities() {
			options = append(options, tui.DropdownOption{Label: severity.Label(), Value: string(severity)})
		}
	case fieldStatus:
		for _, status := range store.Statuses() {
			options = append(options, tui.DropdownOption{Label: status.Label(), Value: string(status)})
		}
	case fieldModule:
		for _, module := range store.Modules() {
			options = append(options, tui.DropdownOption{Label: module, Value: module})
		}
	}
	return options
}

// selectorLabel is how a selector's value reads in the bar.
func selectorLabel(field, value string) string {
	if value == "" || value == bugindex.All {
		return "all"
	}
	switch field {
	case fieldSeverity:
		return bug.Severity(value).Label()
	case fieldStatus:
		return bug.Status(value).Label()
	}
	return value
}

// selectorColumn returns the screen column where a selector chip
// starts in the rendered bar, for anchoring its dropdown.
func (filter *FilterBar) selectorColumn(field string) int {
	column := ansi.StringWidth(filter.searchSegment())
	for _, candidate := range []string{fieldSeverity, fieldStatus, fieldModule} {
		if candidate == field {
			return column + 2
		}
		column += 2 + ansi.StringWidth(filter.chipText(candidate))
	}
	return column
}

func (filter *FilterBar) searchSegment() string {
	if filter.Active {
		return " / " + filter.Criteria.Search + "▎"
	}
	if filter.Criteria.Search != "" {
		return " / " + filter.Criteria.Search
	}
	return " / search"
}

func (filter *FilterBar) chipText(field string) string {
	return fmt.Sprintf("%s: %s", field, selectorLabel(field, filter.Value(field)))
}

// View renders the filter bar and the result count on one line.
func (filter *FilterBar) View(theme tui.Theme, width, count int) string {
	searchStyle := lipgloss.NewStyle().Foreground(theme.FaintText)
	if filter.Active || filter.Criteria.Search != "" {
		searchStyle = lipgloss.NewStyle().Foreground(theme.NormalText)
	}
	if filter.Active {
		searchStyle = searchStyle.Bold(true)
	}

	var builder strings.Builder
	builder.WriteString(searchStyle.Render(filter.searchSegment()))
	for _, field := range []string{fieldSeverity, fieldStatus, fieldModule} {
		chipStyle := lipgloss.NewStyle().Foreground(theme.FaintText)
		if value := filter.Value(field); value != "" && value != bugindex.All {
			chipStyle = lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
		}
		builder.WriteString("  ")
		builder.WriteString(chipStyle.Render(filter.chipText(field)))
	}

	countText := fmt.Sprintf("%d bugs found ", count)
	if count == 1 {
		countText = "1 bug found "
	}
	left := builder.String()
	gap := width - ansi.StringWidth(left) - ansi.StringWidth(countText)
	if gap < 1 {
		return ansi.Truncate(left, width, "…")
	}
	countStyle := lipgloss.NewStyle().Foreground(theme.HeaderForeground)
	return left + strings.Repeat(" ", gap) + countStyle.Render(countText)
}
