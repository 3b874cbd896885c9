// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

const sgrReset = "\x1b[0m"

// SpliceOverlay draws overlay lines over a rendered view, top-left at
// (anchorX, anchorY). Lines falling outside the view are dropped. The
// view's escape sequences survive on both sides of the overlay because
// the cut uses ANSI-aware truncation.
func SpliceOverlay(view string, overlayLines []string, anchorX, anchorY int) string {
	if len(overlayLines) == 0 {
		return view
	}
	anchorX = max(anchorX, 0)

	viewLines := strings.Split(view, "\n")
	for offset, overlayLine := range overlayLines {
		row := anchorY + offset
		if row < 0 || row >= len(viewLines) {
			continue
		}
		viewLines[row] = spliceLine(viewLines[row], overlayLine, anchorX)
	}
	return strings.Join(viewLines, "\n")
}

func spliceLine(base, overlay string, column int) string {
	var line strings.Builder
	baseWidth := ansi.StringWidth(base)

	left := ansi.Truncate(base, column, "")
	line.WriteString(left)
	if gap := column - ansi.StringWidth(left); gap > 0 {
		line.WriteString(strings.Repeat(" ", gap))
	}

	line.WriteString(sgrReset)
	line.WriteString(overlay)
	line.WriteString(sgrReset)

	if resume := column + ansi.StringWidth(overlay); resume < baseWidth {
		line.WriteString(ansi.TruncateLeft(base, resume, ""))
	}
	return line.String()
}

// PadOverlayLine pads styled content to the overlay's width with
// background-colored spaces: one column of left padding, then the
// content, then fill through totalWidth.
func PadOverlayLine(styledContent string, innerWidth, totalWidth int, backgroundStyle lipgloss.Style) string {
	fill := max(innerWidth-ansi.StringWidth(styledContent), 0)
	line := backgroundStyle.Render(" ") + styledContent + backgroundStyle.Render(strings.Repeat(" ", fill+1))
	if short := totalWidth - ansi.StringWidth(line); short > 0 {
		line += backgroundStyle.Render(strings.Repeat(" ", short))
	}
	return line
}

// Excerpt collapses body text to a single line of at most maxWidth
// columns: whitespace runs (including newlines) become one space and
// overlong text ends in an ellipsis. Used for one-line previews of
// descriptions in cards and lists.
func Excerpt(body string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	collapsed := strings.Join(strings.Fields(body), " ")
	if ansi.StringWidth(collapsed) <= maxWidth {
		return collapsed
	}
	return ansi.Truncate(collapsed, maxWidth, "…")
}
