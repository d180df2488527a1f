// Copyright 2026 The mp Authors
// SPDX-License-Identifier: Apache-2.0

package theme

import "github.com/charmbracelet/lipgloss"

// Solarized Osaka palette. TrueColor hex values; lipgloss degrades
// them to the active profile (ANSI256 in practice).
const (
	base02  = lipgloss.Color("#073642")
	base01  = lipgloss.Color("#586e75")
	base0   = lipgloss.Color("#839496")
	yellow  = lipgloss.Color("#b58900")
	orange  = lipgloss.Color("#cb4b16")
	magenta = lipgloss.Color("#d33682")
	blue    = lipgloss.Color("#268bd2")
	cyan    = lipgloss.Color("#2aa198")
	green   = lipgloss.Color("#859900")
	red     = lipgloss.Color("#dc322f")
)

// SolarizedOsaka is the built-in dark-terminal color scheme.
type SolarizedOsaka struct{}

// Default is the theme used when no override is supplied.
var Default Markdown = SolarizedOsaka{}

// headingStyles is indexed by level-1. Levels 1-2 are the brightest;
// deeper levels fade toward the body text color.
var headingStyles = [6]Style{
	{Color: yellow, Bold: true},
	{Color: orange, Bold: true},
	{Color: magenta, Bold: true},
	{Color: blue, Bold: true},
	{Color: cyan, Bold: true},
	{Color: green, Bold: true},
}

func (SolarizedOsaka) HeadingStyle(level int) Style {
	if level < 1 || level > len(headingStyles) {
		return headingStyles[len(headingStyles)-1]
	}
	return headingStyles[level-1]
}

func (SolarizedOsaka) StrongStyle() Style   { return Style{Color: orange, Bold: true} }
func (SolarizedOsaka) EmphasisStyle() Style { return Style{Color: green, Italic: true} }
func (SolarizedOsaka) StrongEmphasisStyle() Style {
	return Style{Color: yellow, Bold: true, Italic: true}
}
func (SolarizedOsaka) StrikethroughStyle() Style { return Style{Color: base01} }
func (SolarizedOsaka) LinkStyle() Style          { return Style{Color: cyan, Underline: true} }
func (SolarizedOsaka) CodeStyle() Style          { return Style{Color: green} }

func (SolarizedOsaka) CodeBackground() lipgloss.Color { return base02 }

func (SolarizedOsaka) ListMarkerStyle() Style  { return Style{Color: blue} }
func (SolarizedOsaka) DelimiterStyle() Style   { return Style{Color: base01} }
func (SolarizedOsaka) TextStyle() Style        { return Style{Color: base0} }
func (SolarizedOsaka) FocusBorderStyle() Style { return Style{Color: blue} }

func (SolarizedOsaka) StatusNormalColor() lipgloss.Color     { return green }
func (SolarizedOsaka) StatusSearchColor() lipgloss.Color     { return yellow }
func (SolarizedOsaka) StatusHelpColor() lipgloss.Color       { return blue }
func (SolarizedOsaka) StatusErrorColor() lipgloss.Color      { return red }
func (SolarizedOsaka) StatusMessageColor() lipgloss.Color    { return yellow }
func (SolarizedOsaka) StatusBackgroundColor() lipgloss.Color { return base02 }
