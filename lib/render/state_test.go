// Copyright 2026 The mp Authors
// SPDX-License-Identifier: Apache-2.0

package render

import (
	"testing"

	"github.com/mpview/mp/lib/mdevent"
)

func TestStateSingleActiveElement(t *testing.T) {
	state := newRenderState()

	state.startLink("https://a.test")
	state.appendText("link text")
	state.startTable([]mdevent.Alignment{mdevent.AlignLeft})

	// The link is gone: a new start replaces whatever was active.
	if _, ok := state.activeLink(); ok {
		t.Error("link still active after table start")
	}
	table, ok := state.activeTable()
	if !ok {
		t.Fatal("table not active after table start")
	}
	if len(table.currentRow) != 0 {
		t.Errorf("fresh table carries stale content: %v", table.currentRow)
	}

	state.startCodeBlock("go")
	if _, ok := state.activeTable(); ok {
		t.Error("table still active after code block start")
	}
	if _, ok := state.activeCodeBlock(); !ok {
		t.Error("code block not active after its start")
	}

	state.startImage("img.png")
	if _, ok := state.activeCodeBlock(); ok {
		t.Error("code block still active after image start")
	}

	state.clearActive()
	if state.active != nil {
		t.Error("active element survives clear")
	}
}

func TestStateTextRouting(t *testing.T) {
	state := newRenderState()

	if state.appendText("unrouted") {
		t.Error("appendText claimed text with no active element")
	}

	state.startLink("https://a.test")
	if !state.appendText("part one ") || !state.appendText("part two") {
		t.Fatal("appendText rejected text for active link")
	}
	link, _ := state.activeLink()
	if link.text.String() != "part one part two" {
		t.Errorf("link text = %q", link.text.String())
	}
}

func TestStateTableRowAccumulation(t *testing.T) {
	state := newRenderState()
	state.startTable([]mdevent.Alignment{mdevent.AlignLeft, mdevent.AlignRight})
	table, _ := state.activeTable()

	table.inHeader = true
	table.startCell()
	table.appendCellText("H1")
	table.startCell()
	table.appendCellText("H2")
	table.endHead()

	if table.inHeader {
		t.Error("still in header after endHead")
	}
	if len(table.headers) != 2 || table.headers[1] != "H2" {
		t.Errorf("headers = %v", table.headers)
	}
	if len(table.currentRow) != 0 {
		t.Errorf("current row not cleared: %v", table.currentRow)
	}

	table.startCell()
	table.appendCellText("a")
	table.startCell()
	table.appendCellText("b")
	table.endRow()

	if len(table.rows) != 1 || table.rows[0][0] != "a" {
		t.Errorf("rows = %v", table.rows)
	}

	// A stray head-end outside header accumulation must not clobber
	// the captured headers with whatever row is in flight.
	table.startCell()
	table.appendCellText("c")
	table.endHead()
	if len(table.headers) != 2 || table.headers[0] != "H1" {
		t.Errorf("headers clobbered by stray head end: %v", table.headers)
	}
	if len(table.currentRow) != 1 || table.currentRow[0] != "c" {
		t.Errorf("current row disturbed by stray head end: %v", table.currentRow)
	}

	// Drain the in-flight row left over from the stray head-end check.
	table.endRow()
	if len(table.rows) != 2 {
		t.Errorf("in-flight row not recorded: %v", table.rows)
	}

	// An empty row-end is dropped, not recorded.
	table.endRow()
	if len(table.rows) != 2 {
		t.Errorf("empty row recorded: %v", table.rows)
	}
}

func TestStateTableCellTextWithoutOpenCell(t *testing.T) {
	state := newRenderState()
	state.startTable(nil)
	table, _ := state.activeTable()

	// Text arriving before any cell opened starts the first cell.
	table.appendCellText("implicit")
	if len(table.currentRow) != 1 || table.currentRow[0] != "implicit" {
		t.Errorf("current row = %v", table.currentRow)
	}
}

func TestStateListStackCounters(t *testing.T) {
	state := newRenderState()

	five := 5
	state.pushList(nil)
	state.pushList(&five)

	if state.listDepth() != 2 {
		t.Fatalf("depth = %d, want 2", state.listDepth())
	}
	frame, ok := state.currentList()
	if !ok || !frame.ordered || frame.counter != 5 {
		t.Fatalf("top frame = %+v", frame)
	}
	frame.counter++

	state.popList()
	outer, _ := state.currentList()
	if outer.ordered {
		t.Error("outer frame became ordered")
	}

	state.popList()
	state.popList() // extra pop is a no-op
	if state.listDepth() != 0 {
		t.Errorf("depth after pops = %d", state.listDepth())
	}
}
