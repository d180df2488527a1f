// Copyright 2026 The mp Authors
// SPDX-License-Identifier: Apache-2.0

package preview

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// pageStep is how many lines a page up/down command moves.
const pageStep = 10

// Document is one loaded file's pre-rendered line buffer plus the
// scroll position over it. The buffer is built once per load and never
// mutated; selecting another file replaces the whole Document. Only
// the visible window is ever drawn, so arbitrarily long documents
// scroll at constant cost.
type Document struct {
	path   string
	lines  []string
	offset int
}

// NewDocument splits rendered terminal text into the line buffer.
func NewDocument(path, rendered string) *Document {
	rendered = strings.TrimRight(rendered, "\n")
	var lines []string
	if rendered != "" {
		lines = strings.Split(rendered, "\n")
	}
	return &Document{path: path, lines: lines}
}

// Path returns the file path the document was rendered from.
func (document *Document) Path() string {
	return document.path
}

// LineCount returns the size of the line buffer.
func (document *Document) LineCount() int {
	return len(document.lines)
}

// Offset returns the current scroll offset.
func (document *Document) Offset() int {
	return document.offset
}

// ScrollTo moves the offset to an absolute position, clamped into
// [0, line count).
func (document *Document) ScrollTo(offset int) {
	if limit := len(document.lines) - 1; offset > limit {
		offset = limit
	}
	if offset < 0 {
		offset = 0
	}
	document.offset = offset
}

// ScrollBy moves the offset by a line delta.
func (document *Document) ScrollBy(delta int) {
	document.ScrollTo(document.offset + delta)
}

// PageDown moves one page toward the end.
func (document *Document) PageDown() {
	document.ScrollBy(pageStep)
}

// PageUp moves one page toward the start.
func (document *Document) PageUp() {
	document.ScrollBy(-pageStep)
}

// ScrollTop jumps to the first line.
func (document *Document) ScrollTop() {
	document.ScrollTo(0)
}

// ScrollBottom jumps to the last line.
func (document *Document) ScrollBottom() {
	document.ScrollTo(len(document.lines) - 1)
}

// VisibleLines returns the window of at most height lines starting at
// the scroll offset, each truncated to width display columns.
// Truncation is display-width aware, so a wide glyph that would
// straddle the boundary is dropped whole rather than split.
func (document *Document) VisibleLines(height, width int) []string {
	if height <= 0 || document.offset >= len(document.lines) {
		return nil
	}
	end := document.offset + height
	if end > len(document.lines) {
		end = len(document.lines)
	}

	visible := make([]string, 0, end-document.offset)
	for _, line := range document.lines[document.offset:end] {
		visible = append(visible, ansi.Truncate(line, width, ""))
	}
	return visible
}

// FindLine returns the index of the first line at or after start whose
// visible text contains query, searching case-insensitively and
// wrapping around to the top. Reports false when nothing matches.
func (document *Document) FindLine(query string, start int) (int, bool) {
	if query == "" || len(document.lines) == 0 {
		return 0, false
	}
	query = strings.ToLower(query)
	if start < 0 {
		start = 0
	}
	for step := 0; step < len(document.lines); step++ {
		index := (start + step) % len(document.lines)
		visible := strings.ToLower(ansi.Strip(document.lines[index]))
		if strings.Contains(visible, query) {
			return index, true
		}
	}
	return 0, false
}

// FindLineBackward is FindLine searching toward the start, wrapping
// around to the bottom.
func (document *Document) FindLineBackward(query string, start int) (int, bool) {
	if query == "" || len(document.lines) == 0 {
		return 0, false
	}
	query = strings.ToLower(query)
	if start >= len(document.lines) {
		start = len(document.lines) - 1
	}
	if start < 0 {
		start = 0
	}
	for step := 0; step < len(document.lines); step++ {
		index := (start - step + len(document.lines)) % len(document.lines)
		visible := strings.ToLower(ansi.Strip(document.lines[index]))
		if strings.Contains(visible, query) {
			return index, true
		}
	}
	return 0, false
}

// MatchesLine reports whether the line at index contains query,
// case-insensitively over the visible text.
func (document *Document) MatchesLine(query string, index int) bool {
	if query == "" || index < 0 || index >= len(document.lines) {
		return false
	}
	visible := strings.ToLower(ansi.Strip(document.lines[index]))
	return strings.Contains(visible, strings.ToLower(query))
}
