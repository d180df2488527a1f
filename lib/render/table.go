// Copyright 2026 The mp Authors
// SPDX-License-Identifier: Apache-2.0

package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/mpview/mp/lib/mdevent"
)

// minimumColumnWidth keeps every column wide enough to hold the
// shortest alignment marker run.
const minimumColumnWidth = 3

// layoutTable turns accumulated table content into terminal-ready
// lines. Column widths are computed over the whole table before any
// line is emitted, measured by display width so wide glyphs stay
// visually aligned. The separator row appears only when a header row
// is present.
func layoutTable(headers []string, rows [][]string, alignments []mdevent.Alignment) []string {
	columnCount := len(alignments)
	if columnCount == 0 {
		columnCount = len(headers)
	}
	if columnCount == 0 && len(rows) > 0 {
		columnCount = len(rows[0])
	}
	if columnCount == 0 {
		return nil
	}

	columnWidths := make([]int, columnCount)
	for index := range columnWidths {
		columnWidths[index] = minimumColumnWidth
	}
	measureRow := func(row []string) {
		for index, cell := range row {
			if index >= columnCount {
				break
			}
			if width := ansi.StringWidth(cell); width > columnWidths[index] {
				columnWidths[index] = width
			}
		}
	}
	measureRow(headers)
	for _, row := range rows {
		measureRow(row)
	}

	estimated := len(rows)
	if len(headers) > 0 {
		estimated += 2
	}
	lines := make([]string, 0, estimated)

	if len(headers) > 0 {
		headerCells := make([]string, columnCount)
		for index := range headerCells {
			var cell string
			if index < len(headers) {
				cell = headers[index]
			}
			headerCells[index] = padCell(cell, columnWidths[index], mdevent.AlignLeft)
		}
		lines = append(lines, joinCells(headerCells))
		lines = append(lines, separatorLine(columnWidths, alignments))
	}

	for _, row := range rows {
		cells := make([]string, columnCount)
		for index := range cells {
			var cell string
			if index < len(row) {
				cell = row[index]
			}
			cells[index] = padCell(cell, columnWidths[index], columnAlignment(alignments, index))
		}
		lines = append(lines, joinCells(cells))
	}

	return lines
}

func columnAlignment(alignments []mdevent.Alignment, index int) mdevent.Alignment {
	if index < len(alignments) {
		return alignments[index]
	}
	return mdevent.AlignNone
}

// padCell pads cell content to the column width according to the
// column alignment. Centering gives the extra space, when padding is
// odd, to the right side.
func padCell(cell string, width int, alignment mdevent.Alignment) string {
	padding := width - ansi.StringWidth(cell)
	if padding <= 0 {
		return cell
	}
	switch alignment {
	case mdevent.AlignRight:
		return strings.Repeat(" ", padding) + cell
	case mdevent.AlignCenter:
		left := padding / 2
		return strings.Repeat(" ", left) + cell + strings.Repeat(" ", padding-left)
	default:
		return cell + strings.Repeat(" ", padding)
	}
}

// separatorLine builds the alignment marker row. Each marker run is
// exactly the column width: colons claim end positions and dashes fill
// the rest, so the markers stay well formed down to the minimum width.
func separatorLine(columnWidths []int, alignments []mdevent.Alignment) string {
	markers := make([]string, len(columnWidths))
	for index, width := range columnWidths {
		switch columnAlignment(alignments, index) {
		case mdevent.AlignLeft:
			markers[index] = ":" + strings.Repeat("-", width-1)
		case mdevent.AlignCenter:
			markers[index] = ":" + strings.Repeat("-", width-2) + ":"
		case mdevent.AlignRight:
			markers[index] = strings.Repeat("-", width-1) + ":"
		default:
			markers[index] = strings.Repeat("-", width)
		}
	}
	return joinCells(markers)
}

// joinCells wraps padded cells in the pipe delimiter scheme:
// "| a | b |".
func joinCells(cells []string) string {
	var line strings.Builder
	line.WriteByte('|')
	for _, cell := range cells {
		line.WriteByte(' ')
		line.WriteString(cell)
		line.WriteString(" |")
	}
	return line.String()
}

// TableBuilder constructs tables by hand, outside the parser-driven
// path. The parser always produces structurally consistent tables;
// hand-built ones are validated at Build time instead.
type TableBuilder struct {
	headers    []string
	rows       [][]string
	alignments []mdevent.Alignment
}

// NewTableBuilder returns an empty builder.
func NewTableBuilder() *TableBuilder {
	return &TableBuilder{}
}

// Header sets the header row.
func (builder *TableBuilder) Header(cells ...string) *TableBuilder {
	builder.headers = append([]string(nil), cells...)
	return builder
}

// Alignments sets the per-column alignments.
func (builder *TableBuilder) Alignments(alignments ...mdevent.Alignment) *TableBuilder {
	builder.alignments = append([]mdevent.Alignment(nil), alignments...)
	return builder
}

// Row appends a data row.
func (builder *TableBuilder) Row(cells ...string) *TableBuilder {
	builder.rows = append(builder.rows, append([]string(nil), cells...))
	return builder
}

// Build validates the accumulated structure and returns the table.
// Every row must match the header's column count, and the alignment
// count, when set, must match as well.
func (builder *TableBuilder) Build() (*Table, error) {
	columnCount := len(builder.headers)
	if columnCount == 0 && len(builder.rows) > 0 {
		columnCount = len(builder.rows[0])
	}

	for index, row := range builder.rows {
		if len(row) != columnCount {
			return nil, fmt.Errorf("table row %d has %d columns, expected %d", index, len(row), columnCount)
		}
	}
	if len(builder.alignments) != 0 && len(builder.alignments) != columnCount {
		return nil, fmt.Errorf("table has %d alignments for %d columns", len(builder.alignments), columnCount)
	}

	return &Table{
		headers:    builder.headers,
		rows:       builder.rows,
		alignments: builder.alignments,
	}, nil
}

// Table is a validated, ready-to-render table.
type Table struct {
	headers    []string
	rows       [][]string
	alignments []mdevent.Alignment
}

// Lines renders the table as aligned terminal lines.
func (table *Table) Lines() []string {
	return layoutTable(table.headers, table.rows, table.alignments)
}

// ColumnCount reports the number of columns.
func (table *Table) ColumnCount() int {
	if len(table.headers) > 0 {
		return len(table.headers)
	}
	if len(table.rows) > 0 {
		return len(table.rows[0])
	}
	return 0
}

// RowCount reports the number of data rows, header excluded.
func (table *Table) RowCount() int {
	return len(table.rows)
}

// String renders the table with one line per row, for logging and
// tests.
func (table *Table) String() string {
	return strings.Join(table.Lines(), "\n")
}
