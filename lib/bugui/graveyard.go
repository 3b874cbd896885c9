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

// recentBurialCount is how many bugs the home tab lists.
const recentBurialCount = 4

// statCard is one headline number on the home and analytics tabs.
type statCard struct {
	label string
	value string
	color lipgloss.Color
}

// renderStatCards lays cards out side by side, sharing width. When
// the cards would be narrower than 14 columns they stack two per row.
func renderStatCards(theme tui.Theme, cards []statCard, width int) string {
	perRow := len(cards)
	for perRow > 1 && width/perRow < 14 {
		perRow = (perRow + 1) / 2
	}
	cardWidth := max(width/perRow-2, 8)

	valueStyle := lipgloss.NewStyle().Bold(true)
	labelStyle := lipgloss.NewStyle().Foreground(theme.FaintText)
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.BorderColor).
		Width(cardWidth).
		Align(lipgloss.Center)

	var rows []string
	for start := 0; start < len(cards); start += perRow {
		end := min(start+perRow, len(cards))
		var boxes []string
		for _, card := range cards[start:end] {
			value := valueStyle.Foreground(card.color).Render(card.value)
			boxes = append(boxes, boxStyle.Render(value+"\n"+labelStyle.Render(card.label)))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, boxes...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// glanceTrendHeight is the bar area height of the home tab trend chart.
const glanceTrendHeight = 4

// renderGraveyard renders the home tab: a banner, the headline stats,
// the recent burials with the cursor marking the selected one, and a
// compact severity and time-to-fix overview.
func renderGraveyard(theme tui.Theme, analytics bugindex.Analytics, recent []bug.Bug, cursor, width int) string {
	summary := analytics.Summary
	bannerStyle := lipgloss.NewStyle().Bold(true).Foreground(theme.Accent)
	subtitleStyle := lipgloss.NewStyle().Foreground(theme.FaintText).Italic(true)

	sections := []string{
		bannerStyle.Render("⚰  The Bug Graveyard"),
		subtitleStyle.Render("Every bug buried here left a lesson behind."),
		"",
		renderStatCards(theme, []statCard{
			{"Total Bugs", fmt.Sprint(summary.Total), theme.HeaderForeground},
			{"Buried", fmt.Sprint(summary.Buried), theme.StatusClosed},
			{"Still Haunting", fmt.Sprint(summary.Haunting), theme.StatusOpen},
			{"Avg Fix Time", summary.AverageFixTime.String(), theme.Accent},
			{"Lessons Learned", fmt.Sprint(summary.LessonsCaptured), theme.SeverityInfo},
		}, width),
		"",
		lipgloss.NewStyle().Bold(true).Foreground(theme.NormalText).Render("Recent Burials"),
	}

	if len(recent) == 0 {
		sections = append(sections, lipgloss.NewStyle().Foreground(theme.FaintText).Render("  The graveyard is empty."))
		return strings.Join(sections, "\n")
	}

	excerptStyle := lipgloss.NewStyle().Foreground(theme.FaintText)
	markerStyle := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
	for index := range recent {
		record := &recent[index]
		marker := "  "
		titleStyle := lipgloss.NewStyle().Foreground(theme.NormalText)
		if index == cursor {
			marker = markerStyle.Render("▸ ")
			titleStyle = titleStyle.Bold(true).Foreground(theme.HeaderForeground)
		}
		heading := marker + severityBadge(theme, record.Severity) + " " +
			lipgloss.NewStyle().Foreground(theme.StatusColor(record.Status)).Render(statusIconCell(record.Status)) + " " +
			excerptStyle.Render(record.ID) + " " + titleStyle.Render(record.Title)
		sections = append(sections, ansi.Truncate(heading, width, "…"))
		sections = append(sections, "    "+excerptStyle.Render(tui.Excerpt(record.Description, width-4)))
	}
	hint := lipgloss.NewStyle().Foreground(theme.HelpText).Render("  enter: open in All Bugs")
	sections = append(sections, "", hint, "", renderGlance(theme, analytics, width))
	return strings.Join(sections, "\n")
}

func renderGlance(theme tui.Theme, analytics bugindex.Analytics, width int) string {
	headingStyle := lipgloss.NewStyle().Bold(true).Foreground(theme.NormalText)
	labelStyle := lipgloss.NewStyle().Foreground(theme.FaintText)
	return strings.Join([]string{
		headingStyle.Render("At a Glance"),
		labelStyle.Render("Severity Distribution"),
		renderSeverityChart(theme, analytics, width),
		labelStyle.Render("Time to Fix Trend"),
		renderTrendChart(theme, analytics, width, glanceTrendHeight),
	}, "\n")
}
