// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Bar is one labeled value in a chart. A zero Color falls back to the
// theme accent.
type Bar struct {
	Label string
	Value float64
	Color lipgloss.Color
}

func (bar Bar) color(theme Theme) lipgloss.Color {
	if bar.Color == "" {
		return theme.Accent
	}
	return bar.Color
}

// formatValue prints integers without a decimal point and everything
// else with one decimal.
func formatValue(value float64) string {
	if value == math.Trunc(value) {
		return fmt.Sprintf("%d", int(value))
	}
	return fmt.Sprintf("%.1f", value)
}

func maxValue(bars []Bar) float64 {
	var largest float64
	for _, bar := range bars {
		largest = max(largest, bar.Value)
	}
	return largest
}

// HorizontalBars renders one row per bar: a label column padded to
// the longest label (capped at a third of width), a bar scaled so the
// largest value fills the remaining space, and the value. Non-zero
// values always get at least one cell.
func HorizontalBars(theme Theme, bars []Bar, width int) string {
	if len(bars) == 0 || width <= 0 {
		return ""
	}

	labelWidth := 0
	valueWidth := 0
	for _, bar := range bars {
		labelWidth = max(labelWidth, ansi.StringWidth(bar.Label))
		valueWidth = max(valueWidth, len(formatValue(bar.Value)))
	}
	labelWidth = min(labelWidth, max(width/3, 4))
	barSpace := max(width-labelWidth-valueWidth-2, 1)
	largest := maxValue(bars)

	labelStyle := lipgloss.NewStyle().Foreground(theme.NormalText)
	valueStyle := lipgloss.NewStyle().Foreground(theme.FaintText)

	rows := make([]string, len(bars))
	for index, bar := range bars {
		label := ansi.Truncate(bar.Label, labelWidth, "…")
		label += strings.Repeat(" ", labelWidth-ansi.StringWidth(label))

		cells := 0
		if largest > 0 {
			cells = int(math.Round(bar.Value / largest * float64(barSpace)))
		}
		if bar.Value > 0 && cells == 0 {
			cells = 1
		}
		barStyle := lipgloss.NewStyle().Foreground(bar.color(theme))
		rows[index] = labelStyle.Render(label) + " " +
			barStyle.Render(strings.Repeat("█", cells)) +
			strings.Repeat(" ", barSpace-cells) + " " +
			valueStyle.Render(formatValue(bar.Value))
	}
	return strings.Join(rows, "\n")
}

// StackedWidths splits width cells among values in proportion, using
// largest-remainder rounding so the widths sum to exactly width.
// Non-zero values get at least one cell when width allows.
func StackedWidths(values []float64, width int) []int {
	widths := make([]int, len(values))
	var total float64
	for _, value := range values {
		total += max(value, 0)
	}
	if total == 0 || width <= 0 {
		return widths
	}

	type remainder struct {
		index    int
		fraction float64
	}
	assigned := 0
	remainders := make([]remainder, 0, len(values))
	for index, value := range values {
		exact := max(value, 0) / total * float64(width)
		widths[index] = int(math.Floor(exact))
		assigned += widths[index]
		remainders = append(remainders, remainder{index, exact - math.Floor(exact)})
	}
	for assigned < width {
		best := -1
		for candidate, entry := range remainders {
			if best < 0 || entry.fraction > remainders[best].fraction {
				best = candidate
			}
		}
		widths[remainders[best].index]++
		remainders[best].fraction = -1
		assigned++
	}

	// Steal from the widest segment for any visible value that
	// rounded to nothing.
	for index, value := range values {
		if value <= 0 || widths[index] > 0 {
			continue
		}
		widest := 0
		for candidate := range widths {
			if widths[candidate] > widths[widest] {
				widest = candidate
			}
		}
		if widths[widest] > 1 {
			widths[widest]--
			widths[index]++
		}
	}
	return widths
}

// StackedBar renders a single proportional bar of exactly width
// cells, each segment in its bar's color.
func StackedBar(theme Theme, bars []Bar, width int) string {
	values := make([]float64, len(bars))
	for index, bar := range bars {
		values[index] = bar.Value
	}
	var builder strings.Builder
	for index, cells := range StackedWidths(values, width) {
		if cells == 0 {
			continue
		}
		style := lipgloss.NewStyle().Foreground(bars[index].color(theme))
		builder.WriteString(style.Render(strings.Repeat("█", cells)))
	}
	return builder.String()
}

// Legend renders "■ label value" entries separated by two spaces,
// wrapping to width.
func Legend(theme Theme, bars []Bar, width int) string {
	valueStyle := lipgloss.NewStyle().Foreground(theme.FaintText)
	entries := make([]string, len(bars))
	for index, bar := range bars {
		swatch := lipgloss.NewStyle().Foreground(bar.color(theme)).Render("■")
		entries[index] = swatch + " " + bar.Label + " " + valueStyle.Render(formatValue(bar.Value))
	}

	var lines []string
	var current string
	for _, entry := range entries {
		switch {
		case current == "":
			current = entry
		case ansi.StringWidth(current)+2+ansi.StringWidth(entry) > width:
			lines = append(lines, current)
			current = entry
		default:
			current += "  " + entry
		}
	}
	if current != "" {
		lines = append(lines, current)
	}
	return strings.Join(lines, "\n")
}

// VerticalBars renders a column chart: bars rise from a baseline
// with the value printed above each one and the label below,
// truncated to the column width. height counts only the bar area.
// Columns are as wide as width allows, between 1 and 6 cells with one
// cell of gap.
func VerticalBars(theme Theme, bars []Bar, width, height int) string {
	if len(bars) == 0 || width <= 0 || height <= 0 {
		return ""
	}
	columnWidth := min(max(width/len(bars)-1, 1), 6)
	largest := maxValue(bars)

	heights := make([]int, len(bars))
	for index, bar := range bars {
		if largest > 0 {
			heights[index] = int(math.Round(bar.Value / largest * float64(height)))
		}
		if bar.Value > 0 && heights[index] == 0 {
			heights[index] = 1
		}
	}

	valueStyle := lipgloss.NewStyle().Foreground(theme.FaintText)
	labelStyle := lipgloss.NewStyle().Foreground(theme.NormalText)
	baseStyle := lipgloss.NewStyle().Foreground(theme.BorderColor)

	cell := func(text string) string {
		text = ansi.Truncate(text, columnWidth, "")
		return text + strings.Repeat(" ", columnWidth-ansi.StringWidth(text))
	}

	// Row 0 is the top of the chart area (value labels live one row
	// above each bar's top).
	var rows []string
	for row := 0; row <= height; row++ {
		level := height - row // cells above the baseline at this row
		var line strings.Builder
		for index, bar := range bars {
			switch {
			case level < heights[index]:
				style := lipgloss.NewStyle().Foreground(bar.color(theme))
				line.WriteString(style.Render(strings.Repeat("█", columnWidth)))
			case level == heights[index]:
				line.WriteString(valueStyle.Render(cell(formatValue(bar.Value))))
			default:
				line.WriteString(strings.Repeat(" ", columnWidth))
			}
			line.WriteString(" ")
		}
		rows = append(rows, strings.TrimRight(line.String(), " "))
	}

	rows = append(rows, baseStyle.Render(strings.Repeat("─", len(bars)*(columnWidth+1)-1)))
	var labels strings.Builder
	for _, bar := range bars {
		labels.WriteString(labelStyle.Render(cell(bar.Label)))
		labels.WriteString(" ")
	}
	rows = append(rows, strings.TrimRight(labels.String(), " "))
	return strings.Join(rows, "\n")
}
