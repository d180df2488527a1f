// Copyright 2026 The mp Authors
// SPDX-License-Identifier: Apache-2.0

// Package theme defines the color palette abstraction for markdown
// rendering. Renderers depend only on the Markdown interface, so the
// palette can be swapped for tests or alternate color schemes without
// touching rendering code.
package theme

import "github.com/charmbracelet/lipgloss"

// Style is a color plus the text attributes applied with it.
type Style struct {
	Color     lipgloss.Color
	Bold      bool
	Italic    bool
	Underline bool
}

// Lipgloss converts the style to a lipgloss.Style on the given
// renderer. The renderer carries the forced color profile so output is
// deterministic regardless of terminal detection.
func (style Style) Lipgloss(renderer *lipgloss.Renderer) lipgloss.Style {
	result := renderer.NewStyle().Foreground(style.Color)
	if style.Bold {
		result = result.Bold(true)
	}
	if style.Italic {
		result = result.Italic(true)
	}
	if style.Underline {
		result = result.Underline(true)
	}
	return result
}

// Markdown is the capability lookup for element styling. One accessor
// per markdown element category, plus the status-bar colors used by
// the interactive previewer.
type Markdown interface {
	// HeadingStyle returns the style for a heading of the given level
	// (1-6). Out-of-range levels fall back to the level-6 style.
	HeadingStyle(level int) Style
	StrongStyle() Style
	EmphasisStyle() Style
	// StrongEmphasisStyle is used when strong and emphasis overlap;
	// it gets its own color so the combination reads distinctly.
	StrongEmphasisStyle() Style
	StrikethroughStyle() Style
	LinkStyle() Style
	CodeStyle() Style
	CodeBackground() lipgloss.Color
	ListMarkerStyle() Style
	DelimiterStyle() Style
	TextStyle() Style
	FocusBorderStyle() Style

	StatusNormalColor() lipgloss.Color
	StatusSearchColor() lipgloss.Color
	StatusHelpColor() lipgloss.Color
	StatusErrorColor() lipgloss.Color
	StatusMessageColor() lipgloss.Color
	StatusBackgroundColor() lipgloss.Color
}
