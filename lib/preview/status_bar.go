// Copyright 2026 The mp Authors
// SPDX-License-Identifier: Apache-2.0

package preview

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/mpview/mp/lib/theme"
)

// Mode is the status-bar interaction mode.
type Mode int

const (
	// ModeNormal is regular navigation.
	ModeNormal Mode = iota
	// ModeSearch means keystrokes edit the search query.
	ModeSearch
	// ModeHelp shows the key reference; any key leaves it.
	ModeHelp
)

func (mode Mode) String() string {
	switch mode {
	case ModeSearch:
		return "SEARCH"
	case ModeHelp:
		return "HELP"
	default:
		return "NORMAL"
	}
}

// statusBar renders the bottom line: mode badge, context text, and a
// right-aligned key hint, padded to the full width on the status
// background color.
type statusBar struct {
	palette  theme.Markdown
	renderer *lipgloss.Renderer
}

func (bar statusBar) modeColor(mode Mode) lipgloss.Color {
	switch mode {
	case ModeSearch:
		return bar.palette.StatusSearchColor()
	case ModeHelp:
		return bar.palette.StatusHelpColor()
	default:
		return bar.palette.StatusNormalColor()
	}
}

// render assembles the status line. An error message wins over a
// transient message, which wins over the context text.
func (bar statusBar) render(width int, mode Mode, context, message string, isError bool, hint string) string {
	background := bar.palette.StatusBackgroundColor()

	badgeStyle := bar.renderer.NewStyle().
		Foreground(background).
		Background(bar.modeColor(mode)).
		Bold(true)
	badge := badgeStyle.Render(" " + mode.String() + " ")

	body := context
	bodyColor := bar.palette.TextStyle().Color
	switch {
	case isError && message != "":
		body = message
		bodyColor = bar.palette.StatusErrorColor()
	case message != "":
		body = message
		bodyColor = bar.palette.StatusMessageColor()
	}
	bodyStyle := bar.renderer.NewStyle().Foreground(bodyColor).Background(background)
	hintStyle := bar.renderer.NewStyle().
		Foreground(bar.palette.DelimiterStyle().Color).
		Background(background)

	left := badge + bodyStyle.Render(" "+body)
	right := hintStyle.Render(hint + " ")

	padding := width - ansi.StringWidth(left) - ansi.StringWidth(right)
	if padding < 0 {
		available := width - ansi.StringWidth(right)
		if available < 0 {
			available = 0
		}
		left = ansi.Truncate(left, available, "…")
		padding = width - ansi.StringWidth(left) - ansi.StringWidth(right)
		if padding < 0 {
			padding = 0
		}
	}

	filler := bar.renderer.NewStyle().Background(background).Render(spaces(padding))
	return left + filler + right
}

func spaces(count int) string {
	if count <= 0 {
		return ""
	}
	result := make([]byte, count)
	for index := range result {
		result[index] = ' '
	}
	return string(result)
}
