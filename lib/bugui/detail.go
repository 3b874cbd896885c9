// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package bugui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/bureau-foundation/graveyard/lib/schema/bug"
	"github.com/bureau-foundation/graveyard/lib/tui"
)

// detailHeaderLines is the fixed height of the header rendered above
// the scrollable body: the meta line, two title lines and a rule.
const detailHeaderLines = 4

// Display layouts for timestamps in the detail pane.
const (
	timelineLayout = "Jan 2, 15:04"
	dateLayout     = "Jan 2, 2006"
)

// DetailRenderer builds the content for the detail pane: a fixed
// header (rendered outside the viewport) and a scrollable body.
type DetailRenderer struct {
	theme tui.Theme
	width int
}

// NewDetailRenderer creates a renderer for content width columns wide.
func NewDetailRenderer(theme tui.Theme, width int) DetailRenderer {
	return DetailRenderer{theme: theme, width: width}
}

// RenderHeader renders exactly detailHeaderLines lines: severity
// badge, status and id; the title over two lines (truncated); and a
// horizontal rule.
func (renderer DetailRenderer) RenderHeader(record bug.Bug) string {
	statusStyle := lipgloss.NewStyle().Foreground(renderer.theme.StatusColor(record.Status))
	idStyle := lipgloss.NewStyle().Foreground(renderer.theme.FaintText)
	meta := severityBadge(renderer.theme, record.Severity) + " " +
		statusStyle.Render(statusIconCell(record.Status)+" "+record.Status.Label()) + "  " +
		idStyle.Render(record.ID)

	first, second := renderer.titleLines(record.Title)
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(renderer.theme.HeaderForeground)
	rule := lipgloss.NewStyle().Foreground(renderer.theme.BorderColor).Render(strings.Repeat("─", max(renderer.width, 1)))

	return strings.Join([]string{
		ansi.Truncate(meta, renderer.width, ""),
		titleStyle.Render(first),
		titleStyle.Render(second),
		rule,
	}, "\n")
}

// titleLines wraps the title into at most two lines, truncating the
// second with an ellipsis.
func (renderer DetailRenderer) titleLines(title string) (string, string) {
	lines := strings.Split(ansi.Wordwrap(title, max(renderer.width, 1), ""), "\n")
	switch len(lines) {
	case 0:
		return "", ""
	case 1:
		return lines[0], ""
	}
	rest := strings.Join(lines[1:], " ")
	return lines[0], ansi.Truncate(rest, renderer.width, "…")
}

// RenderBody renders the sections below the header. now drives the
// relative age line.
func (renderer DetailRenderer) RenderBody(record bug.Bug, now time.Time) string {
	var sections []string
	addSection := func(section string) {
		if section != "" {
			sections = append(sections, section)
		}
	}

	addSection(renderer.renderMarkdownSection("Description", record.Description))
	addSection(renderer.renderMarkdownSection("Root Cause", record.RootCause))
	addSection(renderer.renderMarkdownSection("Fix", record.Fix))
	addSection(renderer.renderMarkdownSection("Lessons Learned", record.LessonsLearned))
	addSection(renderer.renderPrevention(record.Prevention))
	addSection(renderer.renderTimeline(record.Timeline))
	addSection(renderer.renderModules(record.ImpactedModules))
	addSection(renderer.renderMetadata(record))
	addSection(renderer.renderAge(record, now))

	return strings.Join(sections, "\n\n")
}

func (renderer DetailRenderer) sectionTitle(title string) string {
	return lipgloss.NewStyle().Bold(true).Foreground(renderer.theme.NormalText).Render(title)
}

func (renderer DetailRenderer) renderMarkdownSection(title, body string) string {
	rendered := renderMarkdown(body, renderer.theme, renderer.width)
	if rendered == "" {
		return ""
	}
	return renderer.sectionTitle(title) + "\n" + rendered
}

func (renderer DetailRenderer) renderPrevention(items []string) string {
	if len(items) == 0 {
		return ""
	}
	checkStyle := lipgloss.NewStyle().Foreground(renderer.theme.SeverityLow)
	lines := []string{renderer.sectionTitle("Prevention")}
	for _, item := range items {
		for index, line := range wrapLines(item, renderer.width-2) {
			if index == 0 {
				lines = append(lines, checkStyle.Render("☐ ")+line)
			} else {
				lines = append(lines, "  "+line)
			}
		}
	}
	return strings.Join(lines, "\n")
}

func (renderer DetailRenderer) renderTimeline(events []bug.TimelineEvent) string {
	if len(events) == 0 {
		return ""
	}
	dateStyle := lipgloss.NewStyle().Foreground(renderer.theme.FaintText)
	userStyle := lipgloss.NewStyle().Foreground(renderer.theme.FaintText).Italic(true)
	detailStyle := lipgloss.NewStyle().Foreground(renderer.theme.NormalText)

	lines := []string{renderer.sectionTitle("Timeline")}
	for _, event := range events {
		eventStyle := lipgloss.NewStyle().Foreground(renderer.theme.EventColor(event.Event)).Bold(true)
		line := dateStyle.Render(formatTimestamp(event.Date, timelineLayout)) + "  " +
			eventStyle.Render("● "+event.Event)
		if event.User != "" {
			line += " " + userStyle.Render("by "+event.User)
		}
		lines = append(lines, line)
		if event.Detail != "" {
			for _, detailLine := range wrapLines(event.Detail, renderer.width-4) {
				lines = append(lines, "    "+detailStyle.Render(detailLine))
			}
		}
	}
	return strings.Join(lines, "\n")
}

func (renderer DetailRenderer) renderModules(modules []string) string {
	if len(modules) == 0 {
		return ""
	}
	chipStyle := lipgloss.NewStyle().Foreground(renderer.theme.Accent)
	chips := make([]string, len(modules))
	for index, module := range modules {
		chips[index] = chipStyle.Render("◆ " + module)
	}
	return renderer.sectionTitle("Impacted Modules") + "\n" +
		ansi.Wrap(strings.Join(chips, "  "), max(renderer.width, 1), "")
}

func (renderer DetailRenderer) renderMetadata(record bug.Bug) string {
	type field struct{ label, value string }
	fields := []field{{"Created", formatTimestamp(record.CreatedAt, dateLayout)}}
	if record.ClosedAt != "" {
		fields = append(fields, field{"Closed", formatTimestamp(record.ClosedAt, dateLayout)})
	}
	if record.Assignee != "" {
		fields = append(fields, field{"Assignee", record.Assignee})
	}
	if record.Reporter != "" {
		fields = append(fields, field{"Reporter", record.Reporter})
	}
	fields = append(fields, field{"Time to fix", formatTimeToFix(record.TimeToFix)})

	labelStyle := lipgloss.NewStyle().Foreground(renderer.theme.FaintText).Width(13)
	valueStyle := lipgloss.NewStyle().Foreground(renderer.theme.NormalText)
	lines := []string{renderer.sectionTitle("Details")}
	for _, entry := range fields {
		lines = append(lines, labelStyle.Render(entry.label)+valueStyle.Render(entry.value))
	}
	if record.RIP != "" {
		epitaph := lipgloss.NewStyle().Italic(true).Foreground(renderer.theme.StatusClosed)
		lines = append(lines, "")
		for _, line := range wrapLines("✝ "+record.RIP, renderer.width) {
			lines = append(lines, epitaph.Render(line))
		}
	}
	return strings.Join(lines, "\n")
}

// renderAge renders "buried N days ago" for closed bugs with a
// parseable closed_at, and "haunting for N days" for open ones with a
// parseable created_at. Nothing is shown when the timestamp does not
// parse.
func (renderer DetailRenderer) renderAge(record bug.Bug, now time.Time) string {
	style := lipgloss.NewStyle().Foreground(renderer.theme.FaintText).Italic(true)
	if record.IsClosed() {
		closed, err := bug.ParseTimestamp(record.ClosedAt)
		if err != nil {
			return ""
		}
		return style.Render("buried " + relativeAge(now.Sub(closed)))
	}
	created, err := bug.ParseTimestamp(record.CreatedAt)
	if err != nil {
		return ""
	}
	return style.Render("haunting for " + durationInDays(now.Sub(created)))
}

// relativeAge renders an elapsed duration as "today", "1 day ago" or
// "N days ago". Negative durations (timestamps in the future) read as
// "today".
func relativeAge(elapsed time.Duration) string {
	days := int(elapsed.Hours() / 24)
	switch {
	case days <= 0:
		return "today"
	case days == 1:
		return "1 day ago"
	}
	return fmt.Sprintf("%d days ago", days)
}

func durationInDays(elapsed time.Duration) string {
	days := int(elapsed.Hours() / 24)
	switch {
	case days <= 0:
		return "less than a day"
	case days == 1:
		return "1 day"
	}
	return fmt.Sprintf("%d days", days)
}

// formatTimestamp renders an RFC 3339 timestamp with layout in its own
// offset, or the raw string when it does not parse.
func formatTimestamp(value, layout string) string {
	parsed, err := bug.ParseTimestamp(value)
	if err != nil {
		if value == "" {
			return "unknown"
		}
		return value
	}
	return parsed.Format(layout)
}

// DetailPane is the scrollable right-hand pane of the All Bugs tab.
type DetailPane struct {
	theme    tui.Theme
	viewport viewport.Model
	width    int
	height   int

	// hasBug is true when record is displayed. notFoundID is set
	// instead when the selected ID is absent from the store.
	hasBug     bool
	record     bug.Bug
	notFoundID string
	renderTime time.Time

	header string
}

// NewDetailPane creates an empty detail pane.
func NewDetailPane(theme tui.Theme) DetailPane {
	return DetailPane{theme: theme}
}

// contentWidth is the total width minus the left padding column and
// the right scrollbar column.
func (pane DetailPane) contentWidth() int {
	return max(pane.width-2, 1)
}

func (pane DetailPane) bodyHeight() int {
	return max(pane.height-detailHeaderLines, 1)
}

// SetSize updates the pane dimensions, re-rendering at the new width
// so markdown wrapping stays correct.
func (pane *DetailPane) SetSize(width, height int) {
	previousWidth := pane.width
	pane.width = width
	pane.height = height
	pane.viewport.Width = pane.contentWidth()
	pane.viewport.Height = pane.bodyHeight()
	if pane.hasBug && width != previousWidth {
		pane.render(true)
	}
}

// SetBug displays record. Switching to a different bug scrolls to the
// top; re-setting the same bug (after a live reload) keeps the scroll
// position.
func (pane *DetailPane) SetBug(record bug.Bug, now time.Time) {
	sameBug := pane.hasBug && pane.record.ID == record.ID
	pane.hasBug = true
	pane.notFoundID = ""
	pane.record = record
	pane.renderTime = now
	pane.render(sameBug)
}

// SetNotFound shows the fallback for an ID with no record.
func (pane *DetailPane) SetNotFound(bugID string) {
	pane.Clear()
	pane.notFoundID = bugID
}

// Clear removes the pane content.
func (pane *DetailPane) Clear() {
	pane.hasBug = false
	pane.record = bug.Bug{}
	pane.notFoundID = ""
	pane.header = ""
	pane.viewport.SetContent("")
	pane.viewport.GotoTop()
}

// BugID returns the displayed bug's ID, or "" when none is shown.
func (pane DetailPane) BugID() string {
	if !pane.hasBug {
		return ""
	}
	return pane.record.ID
}

func (pane *DetailPane) render(keepOffset bool) {
	previousOffset := pane.viewport.YOffset
	renderer := NewDetailRenderer(pane.theme, pane.contentWidth())
	pane.header = renderer.RenderHeader(pane.record)
	body := renderer.RenderBody(pane.record, pane.renderTime)
	pane.viewport.SetContent(body)

	if !keepOffset {
		pane.viewport.GotoTop()
		return
	}
	maxOffset := max(pane.viewport.TotalLineCount()-pane.viewport.Height, 0)
	pane.viewport.SetYOffset(min(previousOffset, maxOffset))
}

// View renders the pane as exactly height lines: the fixed header, the
// scrollable body, and a scrollbar column on the right.
func (pane DetailPane) View(focused bool) string {
	contentWidth := pane.contentWidth()
	paddingStyle := lipgloss.NewStyle().PaddingLeft(1).Width(pane.width - 1)

	if !pane.hasBug {
		message := "Select a bug to view details"
		messageStyle := lipgloss.NewStyle().Foreground(pane.theme.FaintText)
		if pane.notFoundID != "" {
			message = "Bug not found: " + pane.notFoundID
			messageStyle = lipgloss.NewStyle().Foreground(pane.theme.WarningText)
		}
		content := paddingStyle.Height(pane.height).Render(
			lipgloss.Place(contentWidth, pane.height, lipgloss.Center, lipgloss.Center,
				messageStyle.Render(message)),
		)
		scrollbar := tui.RenderScrollbar(pane.theme, pane.height, 0, pane.height, 0, focused)
		return lipgloss.JoinHorizontal(lipgloss.Top, content, scrollbar)
	}

	headerView := paddingStyle.Height(detailHeaderLines).Render(pane.header)
	bodyView := paddingStyle.Height(pane.bodyHeight()).Render(pane.viewport.View())
	content := headerView + "\n" + bodyView

	headerColumn := lipgloss.NewStyle().Width(1).Height(detailHeaderLines).Render("")
	bodyScrollbar := tui.RenderScrollbar(pane.theme, pane.bodyHeight(),
		pane.viewport.TotalLineCount(), pane.viewport.Height, pane.viewport.YOffset, focused)
	return lipgloss.JoinHorizontal(lipgloss.Top, content, headerColumn+"\n"+bodyScrollbar)
}

// ScrollUp scrolls the body up by count lines.
func (pane *DetailPane) ScrollUp(count int) {
	pane.viewport.SetYOffset(pane.viewport.YOffset - count)
}

// ScrollDown scrolls the body down by count lines.
func (pane *DetailPane) ScrollDown(count int) {
	pane.viewport.SetYOffset(pane.viewport.YOffset + count)
}

// GotoTop scrolls to the top of the body.
func (pane *DetailPane) GotoTop() {
	pane.viewport.GotoTop()
}

// GotoBottom scrolls to the end of the body.
func (pane *DetailPane) GotoBottom() {
	pane.viewport.GotoBottom()
}

// PageSize is the number of body lines visible at once.
func (pane DetailPane) PageSize() int {
	return pane.viewport.Height
}
