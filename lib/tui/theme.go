// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/bureau-foundation/graveyard/lib/schema/bug"
)

// Theme defines the color palette for the graveyard terminal UI. All
// colors use lipgloss ANSI 256-color codes for broad terminal
// compatibility.
type Theme struct {
	// Text colors.
	NormalText lipgloss.Color
	FaintText  lipgloss.Color

	// Selected row.
	SelectedBackground lipgloss.Color
	SelectedForeground lipgloss.Color

	// Severity colors, critical through info.
	SeverityCritical lipgloss.Color
	SeverityHigh     lipgloss.Color
	SeverityMedium   lipgloss.Color
	SeverityLow      lipgloss.Color
	SeverityInfo     lipgloss.Color

	// Status colors.
	StatusOpen          lipgloss.Color
	StatusInvestigating lipgloss.Color
	StatusFixing        lipgloss.Color
	StatusTesting       lipgloss.Color
	StatusClosed        lipgloss.Color

	// Accent is the brand color: active tab, focused scrollbar
	// thumb, chart bars without a semantic color, and the "Fix
	// Deployed" and "Closed" timeline events.
	Accent lipgloss.Color

	// UI chrome.
	HeaderForeground lipgloss.Color
	BorderColor      lipgloss.Color
	HelpText         lipgloss.Color
	WarningText      lipgloss.Color

	// HotAccent tints rows that changed in the last live reload.
	HotAccent lipgloss.Color

	// Search match highlighting in list titles.
	SearchHighlightBackground lipgloss.Color

	// Overlay (dropdown) colors.
	OverlayForeground lipgloss.Color
	OverlayBackground lipgloss.Color
}

// SeverityColor returns the color for a severity. The table is
// closed over the five severities; anything else gets FaintText.
func (theme Theme) SeverityColor(severity bug.Severity) lipgloss.Color {
	switch severity {
	case bug.SeverityCritical:
		return theme.SeverityCritical
	case bug.SeverityHigh:
		return theme.SeverityHigh
	case bug.SeverityMedium:
		return theme.SeverityMedium
	case bug.SeverityLow:
		return theme.SeverityLow
	case bug.SeverityInfo:
		return theme.SeverityInfo
	default:
		return theme.FaintText
	}
}

// StatusColor returns the color for a status, or FaintText for
// unknown values.
func (theme Theme) StatusColor(status bug.Status) lipgloss.Color {
	switch status {
	case bug.StatusOpen:
		return theme.StatusOpen
	case bug.StatusInvestigating:
		return theme.StatusInvestigating
	case bug.StatusFixing:
		return theme.StatusFixing
	case bug.StatusTesting:
		return theme.StatusTesting
	case bug.StatusClosed:
		return theme.StatusClosed
	default:
		return theme.FaintText
	}
}

// EventColor returns the color for a timeline event label. The six
// conventional labels map onto severity and accent colors; any other
// label (timelines are free text) gets FaintText.
func (theme Theme) EventColor(label string) lipgloss.Color {
	switch label {
	case bug.EventDiscovered:
		return theme.SeverityCritical
	case bug.EventAssigned:
		return theme.SeverityMedium
	case bug.EventRootCauseFound:
		return theme.SeverityInfo
	case bug.EventFixDeployed, bug.EventClosed:
		return theme.Accent
	case bug.EventVerified:
		return theme.SeverityLow
	default:
		return theme.FaintText
	}
}

// StatusIcon returns the glyph drawn next to a status in lists.
func StatusIcon(status bug.Status) string {
	switch status {
	case bug.StatusClosed:
		return "✝"
	case bug.StatusOpen:
		return "👻"
	case bug.StatusInvestigating:
		return "🔍"
	case bug.StatusFixing:
		return "🔧"
	case bug.StatusTesting:
		return "🧪"
	default:
		return "?"
	}
}

// DefaultTheme is the built-in dark-terminal color scheme.
var DefaultTheme = Theme{
	NormalText: lipgloss.Color("252"),
	FaintText:  lipgloss.Color("245"),

	SelectedBackground: lipgloss.Color("236"),
	SelectedForeground: lipgloss.Color("255"),

	SeverityCritical: lipgloss.Color("196"), // red
	SeverityHigh:     lipgloss.Color("208"), // orange
	SeverityMedium:   lipgloss.Color("214"), // amber
	SeverityLow:      lipgloss.Color("72"),  // green
	SeverityInfo:     lipgloss.Color("67"),  // blue

	StatusOpen:          lipgloss.Color("203"), // soft red: still haunting
	StatusInvestigating: lipgloss.Color("220"), // yellow
	StatusFixing:        lipgloss.Color("75"),  // blue
	StatusTesting:       lipgloss.Color("141"), // light purple
	StatusClosed:        lipgloss.Color("245"), // gray: buried

	Accent: lipgloss.Color("135"), // purple

	HeaderForeground: lipgloss.Color("255"),
	BorderColor:      lipgloss.Color("240"),
	HelpText:         lipgloss.Color("241"),
	WarningText:      lipgloss.Color("214"),

	HotAccent: lipgloss.Color("58"), // dark amber background tint

	SearchHighlightBackground: lipgloss.Color("58"),

	OverlayForeground: lipgloss.Color("252"),
	OverlayBackground: lipgloss.Color("237"),
}
