// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package bugui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/bureau-foundation/graveyard/lib/bugindex"
	"github.com/bureau-foundation/graveyard/lib/schema/bug"
	"github.com/bureau-foundation/graveyard/lib/tui"
)

// trendChartHeight is the bar area height of the time-to-fix chart.
const trendChartHeight = 8

// renderAnalytics renders the analytics dashboard. The result is
// taller than the screen and is shown in a scrolling viewport.
func renderAnalytics(theme tui.Theme, analytics bugindex.Analytics, width int) string {
	width = max(width, 20)
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(theme.NormalText)
	faintStyle := lipgloss.NewStyle().Foreground(theme.FaintText)

	summary := analytics.Summary
	sections := []string{
		renderStatCards(theme, []statCard{
			{"Total Bugs", fmt.Sprint(summary.Total), theme.HeaderForeground},
			{"Resolved", fmt.Sprint(summary.Buried), theme.StatusClosed},
			{"Resolution Rate", summary.ResolutionRate.String(), theme.SeverityLow},
			{"Critical Bugs", fmt.Sprint(summary.Critical), theme.SeverityCritical},
			{"Avg Fix Time", summary.AverageFixTime.String(), theme.Accent},
			{"Lessons Captured", fmt.Sprint(summary.LessonsCaptured), theme.SeverityInfo},
		}, width),
	}

	if len(analytics.Diagnostics) > 0 {
		warning := lipgloss.NewStyle().Foreground(theme.WarningText)
		lines := []string{warning.Render(fmt.Sprintf("⚠ %d bug(s) left out of the trend:", len(analytics.Diagnostics)))}
		for _, diagnostic := range analytics.Diagnostics {
			for _, line := range wrapLines(diagnostic, width-2) {
				lines = append(lines, "  "+warning.Render(line))
			}
		}
		sections = append(sections, strings.Join(lines, "\n"))
	}

	sections = append(sections, titleStyle.Render("Severity Distribution")+"\n"+
		renderSeverityChart(theme, analytics, width))

	hotspotBars := make([]tui.Bar, len(analytics.ModuleHotspots))
	for index, count := range analytics.ModuleHotspots {
		hotspotBars[index] = tui.Bar{Label: count.Label, Value: float64(count.Count)}
	}
	sections = append(sections, titleStyle.Render("Module Hotspots")+"\n"+
		chartOrEmpty(theme, len(hotspotBars), func() string {
			return tui.HorizontalBars(theme, hotspotBars, width)
		}))

	statusBars := make([]tui.Bar, len(analytics.StatusOverview))
	for index, count := range analytics.StatusOverview {
		status := bug.Status(count.Label)
		statusBars[index] = tui.Bar{Label: tui.StatusIcon(status) + " " + status.Label(), Value: float64(count.Count), Color: theme.StatusColor(status)}
	}
	sections = append(sections, titleStyle.Render("Status Overview")+"\n"+
		chartOrEmpty(theme, len(statusBars), func() string {
			return tui.HorizontalBars(theme, statusBars, width)
		}))

	sections = append(sections, titleStyle.Render("Time to Fix Trend")+" "+faintStyle.Render("(hours, by creation date)")+"\n"+
		renderTrendChart(theme, analytics, width, trendChartHeight))

	return strings.Join(sections, "\n\n")
}

// renderSeverityChart draws the severity distribution as one stacked
// bar with a legend underneath.
func renderSeverityChart(theme tui.Theme, analytics bugindex.Analytics, width int) string {
	bars := make([]tui.Bar, len(analytics.SeverityDistribution))
	for index, count := range analytics.SeverityDistribution {
		severity := bug.Severity(count.Label)
		bars[index] = tui.Bar{Label: severity.Label(), Value: float64(count.Count), Color: theme.SeverityColor(severity)}
	}
	return chartOrEmpty(theme, len(bars), func() string {
		return tui.StackedBar(theme, bars, width) + "\n" + tui.Legend(theme, bars, width)
	})
}

func renderTrendChart(theme tui.Theme, analytics bugindex.Analytics, width, height int) string {
	bars := make([]tui.Bar, len(analytics.TimeToFixTrend))
	for index, point := range analytics.TimeToFixTrend {
		bars[index] = tui.Bar{Label: trendLabel(point.BugID), Value: point.Hours}
	}
	return chartOrEmpty(theme, len(bars), func() string {
		return tui.VerticalBars(theme, bars, width, height)
	})
}

func chartOrEmpty(theme tui.Theme, count int, render func() string) string {
	if count == 0 {
		return lipgloss.NewStyle().Foreground(theme.FaintText).Render("no data")
	}
	return render()
}

// trendLabel shortens "BUG-001" to "001" so labels fit narrow columns.
func trendLabel(bugID string) string {
	if index := strings.LastIndex(bugID, "-"); index >= 0 && index < len(bugID)-1 {
		return bugID[index+1:]
	}
	return bugID
}
