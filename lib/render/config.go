// Copyright 2026 The mp Authors
// SPDX-License-Identifier: Apache-2.0

package render

import (
	"os"
	"strings"

	"golang.org/x/term"
)

// Config holds the rendering knobs. The zero value is not useful;
// start from DefaultConfig and override fields as needed.
type Config struct {
	// IndentWidth is the number of spaces per list nesting level.
	IndentWidth int

	// Width is the terminal column count used to size horizontal
	// rules. Zero means detect from the controlling terminal, falling
	// back to 80 when there is none.
	Width int

	// BufferSize overrides the output sink's buffer capacity.
	// Zero keeps the default.
	BufferSize int
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{IndentWidth: 2}
}

// indent returns the leading whitespace for a list nesting depth.
func (config Config) indent(depth int) string {
	if depth <= 0 {
		return ""
	}
	return strings.Repeat(" ", config.IndentWidth*depth)
}

// terminalWidth resolves the effective terminal width.
func (config Config) terminalWidth() int {
	if config.Width > 0 {
		return config.Width
	}
	if width, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && width > 0 {
		return width
	}
	return 80
}

// horizontalRule builds the thematic break line: 80% of the terminal
// width, capped at 100 columns.
func (config Config) horizontalRule() string {
	length := config.terminalWidth() * 8 / 10
	if length > 100 {
		length = 100
	}
	if length < 1 {
		length = 1
	}
	return strings.Repeat("─", length)
}
