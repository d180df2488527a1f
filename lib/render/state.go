// Copyright 2026 The mp Authors
// SPDX-License-Identifier: Apache-2.0

package render

import (
	"strings"

	"github.com/mpview/mp/lib/mdevent"
)

// emphasisState tracks the inline emphasis currently in effect. Flat
// booleans, not counters: within the event stream consumed here,
// emphasis runs of the same kind do not overlap.
type emphasisState struct {
	strong bool
	italic bool
	strike bool
}

// activeElement is the one construct currently accumulating nested
// content. It is a sealed union over link, image, code block, and
// table: the marker method keeps any other type from slipping in, so
// at most one of the four can be populated at a time by construction.
type activeElement interface {
	isActiveElement()
}

type linkState struct {
	text strings.Builder
	url  string
}

type imageState struct {
	altText strings.Builder
	url     string
}

type codeBlockState struct {
	language string
	content  strings.Builder
}

type tableState struct {
	alignments []mdevent.Alignment
	headers    []string
	rows       [][]string
	currentRow []string
	inHeader   bool
}

func (*linkState) isActiveElement()      {}
func (*imageState) isActiveElement()     {}
func (*codeBlockState) isActiveElement() {}
func (*tableState) isActiveElement()     {}

// listFrame is one level of list nesting. Ordered lists carry their
// own counter; nested lists get fresh frames, so counters never leak
// across levels.
type listFrame struct {
	ordered bool
	counter int
}

// renderState is the mutable state of one render pass. Created empty
// at the start of the pass, owned exclusively by the renderer that
// created it, discarded at the end. Every transition is total: no
// event sequence, however malformed, can make one fail. Out-of-place
// end events are no-ops and a start event for a complex element
// silently replaces whatever was active before it.
type renderState struct {
	emphasis  emphasisState
	active    activeElement
	listStack []listFrame
}

func newRenderState() *renderState {
	return &renderState{}
}

func (state *renderState) startLink(url string) {
	state.active = &linkState{url: url}
}

func (state *renderState) startImage(url string) {
	state.active = &imageState{url: url}
}

func (state *renderState) startCodeBlock(language string) {
	state.active = &codeBlockState{language: language}
}

func (state *renderState) startTable(alignments []mdevent.Alignment) {
	state.active = &tableState{alignments: alignments}
}

func (state *renderState) clearActive() {
	state.active = nil
}

func (state *renderState) activeLink() (*linkState, bool) {
	link, ok := state.active.(*linkState)
	return link, ok
}

func (state *renderState) activeImage() (*imageState, bool) {
	image, ok := state.active.(*imageState)
	return image, ok
}

func (state *renderState) activeCodeBlock() (*codeBlockState, bool) {
	block, ok := state.active.(*codeBlockState)
	return block, ok
}

func (state *renderState) activeTable() (*tableState, bool) {
	table, ok := state.active.(*tableState)
	return table, ok
}

// appendText routes decoded text to the active element's accumulator.
// Returns false when nothing is active, in which case the caller
// renders the text immediately instead.
func (state *renderState) appendText(text string) bool {
	switch element := state.active.(type) {
	case *linkState:
		element.text.WriteString(text)
	case *imageState:
		element.altText.WriteString(text)
	case *codeBlockState:
		element.content.WriteString(text)
	case *tableState:
		element.appendCellText(text)
	default:
		return false
	}
	return true
}

// startCell opens a new, empty cell in the current row.
func (table *tableState) startCell() {
	table.currentRow = append(table.currentRow, "")
}

// appendCellText adds text to the last open cell, opening one first if
// the row is empty.
func (table *tableState) appendCellText(text string) {
	if len(table.currentRow) == 0 {
		table.startCell()
	}
	table.currentRow[len(table.currentRow)-1] += text
}

// endHead captures the accumulated row as the header and leaves header
// mode. No-op outside header accumulation, so a stray end event cannot
// clobber headers already captured.
func (table *tableState) endHead() {
	if !table.inHeader {
		return
	}
	table.headers = append([]string(nil), table.currentRow...)
	table.currentRow = table.currentRow[:0]
	table.inHeader = false
}

// endRow captures the accumulated row as a data row. An empty row is
// dropped silently.
func (table *tableState) endRow() {
	if len(table.currentRow) == 0 {
		return
	}
	table.rows = append(table.rows, append([]string(nil), table.currentRow...))
	table.currentRow = table.currentRow[:0]
}

func (state *renderState) pushList(start *int) {
	frame := listFrame{}
	if start != nil {
		frame.ordered = true
		frame.counter = *start
	}
	state.listStack = append(state.listStack, frame)
}

func (state *renderState) popList() {
	if len(state.listStack) > 0 {
		state.listStack = state.listStack[:len(state.listStack)-1]
	}
}

func (state *renderState) listDepth() int {
	return len(state.listStack)
}

func (state *renderState) currentList() (*listFrame, bool) {
	if len(state.listStack) == 0 {
		return nil, false
	}
	return &state.listStack[len(state.listStack)-1], true
}
