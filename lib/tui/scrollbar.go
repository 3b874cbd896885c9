// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// RenderScrollbar produces a single-column scrollbar of the given height.
// The thumb indicates the visible region within the total content.
//
// The scrollbar is always fully rendered: track + thumb. When content fits
// within the visible area the thumb spans the entire height. The thumb
// uses the accent color when focused, and the border color when not.
func RenderScrollbar(theme Theme, height, totalItems, visibleItems, scrollOffset int, focused bool) string {
	if height <= 0 {
		return ""
	}

	thumbColor := theme.BorderColor
	if focused {
		thumbColor = theme.Accent
	}
	trackStyle := lipgloss.NewStyle().Foreground(theme.BorderColor)
	thumbStyle := lipgloss.NewStyle().Foreground(thumbColor)

	lines := make([]string, height)

	if totalItems <= visibleItems || totalItems <= 0 {
		for index := range lines {
			lines[index] = thumbStyle.Render("┃")
		}
		return strings.Join(lines, "\n")
	}

	thumbOffset, thumbSize := ScrollbarThumb(height, totalItems, visibleItems, scrollOffset)
	for index := range lines {
		if index >= thumbOffset && index < thumbOffset+thumbSize {
			lines[index] = thumbStyle.Render("┃")
		} else {
			lines[index] = trackStyle.Render("│")
		}
	}
	return strings.Join(lines, "\n")
}

// ScrollbarThumb computes the thumb's first row and size. The size is
// proportional to visible/total with a minimum of one row; the offset
// is proportional to scrollOffset within the scrollable range.
func ScrollbarThumb(height, totalItems, visibleItems, scrollOffset int) (offset, size int) {
	if totalItems <= visibleItems || totalItems <= 0 {
		return 0, height
	}
	size = max(height*visibleItems/totalItems, 1)
	scrollableRange := totalItems - visibleItems
	trackRange := height - size
	if scrollableRange > 0 && trackRange > 0 {
		offset = scrollOffset * trackRange / scrollableRange
	}
	if offset+size > height {
		offset = height - size
	}
	return offset, size
}
