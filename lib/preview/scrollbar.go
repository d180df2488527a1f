// Copyright 2026 The mp Authors
// SPDX-License-Identifier: Apache-2.0

package preview

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mpview/mp/lib/theme"
)

// renderScrollbar produces a single-column scrollbar of the given
// height. The thumb indicates the visible region within the total
// content and spans the full height when everything fits. The thumb
// takes the focus color when the pane has focus.
func renderScrollbar(palette theme.Markdown, renderer *lipgloss.Renderer, height, total, visible, offset int, focused bool) string {
	if height <= 0 {
		return ""
	}

	trackStyle := theme.Style{Color: palette.StatusBackgroundColor()}.Lipgloss(renderer)
	thumbColor := palette.DelimiterStyle().Color
	if focused {
		thumbColor = palette.FocusBorderStyle().Color
	}
	thumbStyle := theme.Style{Color: thumbColor}.Lipgloss(renderer)

	lines := make([]string, height)

	if total <= visible || total <= 0 {
		for index := range lines {
			lines[index] = thumbStyle.Render("┃")
		}
		return strings.Join(lines, "\n")
	}

	thumbSize := height * visible / total
	if thumbSize < 1 {
		thumbSize = 1
	}

	scrollableRange := total - visible
	trackRange := height - thumbSize
	thumbOffset := 0
	if scrollableRange > 0 && trackRange > 0 {
		thumbOffset = offset * trackRange / scrollableRange
	}
	if thumbOffset+thumbSize > height {
		thumbOffset = height - thumbSize
	}

	for index := range lines {
		if index >= thumbOffset && index < thumbOffset+thumbSize {
			lines[index] = thumbStyle.Render("┃")
		} else {
			lines[index] = trackStyle.Render("│")
		}
	}
	return strings.Join(lines, "\n")
}
