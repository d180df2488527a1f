// Copyright 2026 The mp Authors
// SPDX-License-Identifier: Apache-2.0

package render

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"

	"github.com/mpview/mp/lib/mdevent"
)

func TestLayoutTableAlignedColumns(t *testing.T) {
	lines := layoutTable(
		[]string{"Header 1", "Header 2"},
		[][]string{{"Cell 1", "Cell 2"}},
		[]mdevent.Alignment{mdevent.AlignLeft, mdevent.AlignRight},
	)
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3: %v", len(lines), lines)
	}

	width := ansi.StringWidth(lines[0])
	for index, line := range lines {
		if ansi.StringWidth(line) != width {
			t.Errorf("line %d width %d, want %d: %q", index, ansi.StringWidth(line), width, line)
		}
	}

	separatorRow := lines[1]
	if !strings.Contains(separatorRow, ":---") {
		t.Errorf("left marker missing: %q", separatorRow)
	}
	if !strings.Contains(separatorRow, "---:") {
		t.Errorf("right marker missing: %q", separatorRow)
	}
	if !strings.Contains(lines[2], "  Cell 2") {
		t.Errorf("right-aligned cell not left-padded: %q", lines[2])
	}
}

func TestLayoutTableSeparatorMarkerShape(t *testing.T) {
	lines := layoutTable(
		[]string{"L", "C", "R", "N"},
		nil,
		[]mdevent.Alignment{
			mdevent.AlignLeft, mdevent.AlignCenter, mdevent.AlignRight, mdevent.AlignNone,
		},
	)
	markers := strings.Split(strings.Trim(lines[1], "| "), " | ")
	if len(markers) != 4 {
		t.Fatalf("got %d markers: %v", len(markers), markers)
	}

	left, center, right, none := markers[0], markers[1], markers[2], markers[3]
	if !strings.HasPrefix(left, ":") || strings.HasSuffix(left, ":") {
		t.Errorf("left marker malformed: %q", left)
	}
	if !strings.HasPrefix(center, ":") || !strings.HasSuffix(center, ":") {
		t.Errorf("center marker malformed: %q", center)
	}
	if strings.HasPrefix(right, ":") || !strings.HasSuffix(right, ":") {
		t.Errorf("right marker malformed: %q", right)
	}
	if strings.Contains(none, ":") {
		t.Errorf("none marker malformed: %q", none)
	}
}

func TestLayoutTableMinimumColumnWidth(t *testing.T) {
	lines := layoutTable(
		[]string{"a"},
		[][]string{{"b"}},
		[]mdevent.Alignment{mdevent.AlignCenter},
	)
	// One-character content still gets a three-wide column so the
	// alignment marker fits.
	if lines[1] != "| :-: |" {
		t.Errorf("separator = %q, want %q", lines[1], "| :-: |")
	}
}

func TestLayoutTableWideGlyphMeasurement(t *testing.T) {
	lines := layoutTable(
		[]string{"名前", "City"},
		[][]string{{"東京タワー", "Tokyo"}},
		[]mdevent.Alignment{mdevent.AlignLeft, mdevent.AlignLeft},
	)
	width := ansi.StringWidth(lines[0])
	for index, line := range lines {
		if ansi.StringWidth(line) != width {
			t.Errorf("line %d display width %d, want %d: %q", index, ansi.StringWidth(line), width, line)
		}
	}
}

func TestLayoutTableCenterPaddingFavorsRight(t *testing.T) {
	lines := layoutTable(
		[]string{"Wide Header"},
		[][]string{{"xx"}},
		[]mdevent.Alignment{mdevent.AlignCenter},
	)
	// Column width 11, cell width 2, padding 9: four spaces left,
	// five right.
	if lines[2] != "|     xx      |" {
		t.Errorf("centered cell = %q", lines[2])
	}
}

func TestLayoutTableWithoutHeaders(t *testing.T) {
	lines := layoutTable(nil, [][]string{{"a", "b"}}, nil)
	if len(lines) != 1 {
		t.Fatalf("got %d lines, want 1 (no header, no separator): %v", len(lines), lines)
	}
	if strings.Contains(lines[0], "---") {
		t.Errorf("separator emitted without headers: %q", lines[0])
	}
}

func TestLayoutTableEmpty(t *testing.T) {
	if lines := layoutTable(nil, nil, nil); lines != nil {
		t.Errorf("empty table produced lines: %v", lines)
	}
}

func TestTableBuilderValid(t *testing.T) {
	table, err := NewTableBuilder().
		Header("Name", "Age", "City").
		Alignments(mdevent.AlignLeft, mdevent.AlignRight, mdevent.AlignCenter).
		Row("Alice", "30", "New York").
		Row("Bob", "25", "London").
		Build()
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	if table.ColumnCount() != 3 || table.RowCount() != 2 {
		t.Errorf("dimensions = %dx%d, want 3x2", table.ColumnCount(), table.RowCount())
	}
	rendered := table.String()
	for _, want := range []string{"Alice", "London", ":---"} {
		if !strings.Contains(rendered, want) {
			t.Errorf("%q missing from rendered table:\n%s", want, rendered)
		}
	}
}

func TestTableBuilderColumnCountMismatch(t *testing.T) {
	_, err := NewTableBuilder().
		Header("A", "B").
		Row("only one").
		Build()
	if err == nil {
		t.Fatal("mismatched row accepted")
	}
}

func TestTableBuilderAlignmentCountMismatch(t *testing.T) {
	_, err := NewTableBuilder().
		Header("A", "B").
		Alignments(mdevent.AlignLeft).
		Row("1", "2").
		Build()
	if err == nil {
		t.Fatal("mismatched alignments accepted")
	}
}

func TestTableBuilderEmptyIsValid(t *testing.T) {
	table, err := NewTableBuilder().Build()
	if err != nil {
		t.Fatalf("empty build failed: %v", err)
	}
	if table.ColumnCount() != 0 || table.RowCount() != 0 {
		t.Errorf("empty table has dimensions %dx%d", table.ColumnCount(), table.RowCount())
	}
}
