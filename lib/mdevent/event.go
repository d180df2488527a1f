// Copyright 2026 The mp Authors
// SPDX-License-Identifier: Apache-2.0

// Package mdevent turns markdown source into a flat, ordered event
// stream. It is the only package in the module that touches goldmark;
// downstream consumers see these types and nothing of the parser.
package mdevent

// Kind identifies an event in the parsed markdown stream. Container
// constructs produce paired Start/End events with their children's
// events in between; leaf constructs produce a single event.
type Kind int

const (
	KindStartHeading Kind = iota
	KindEndHeading
	KindStartParagraph
	KindEndParagraph
	KindStartStrong
	KindEndStrong
	KindStartEmphasis
	KindEndEmphasis
	KindStartStrike
	KindEndStrike
	KindStartLink
	KindEndLink
	KindStartImage
	KindEndImage
	KindStartList
	KindEndList
	KindStartItem
	KindEndItem
	KindStartCodeBlock
	KindEndCodeBlock
	KindStartBlockQuote
	KindEndBlockQuote
	KindStartTable
	KindEndTable
	KindStartTableHead
	KindEndTableHead
	KindStartTableRow
	KindEndTableRow
	KindStartTableCell
	KindEndTableCell
	KindStartFootnoteDefinition
	KindEndFootnoteDefinition
	KindText
	KindCode
	KindHTML
	KindSoftBreak
	KindHardBreak
	KindRule
	KindTaskListMarker
	KindFootnoteReference
)

// Alignment is a table column alignment taken from the separator row.
type Alignment int

const (
	AlignNone Alignment = iota
	AlignLeft
	AlignCenter
	AlignRight
)

// Event is one element of the parsed stream. Only the fields relevant
// to the Kind are populated; the rest stay zero.
type Event struct {
	Kind Kind

	// Text carries literal content for KindText, KindCode, and
	// KindHTML events.
	Text string

	// Level is the heading depth (1-6) for KindStartHeading.
	Level int

	// URL is the destination for KindStartLink and KindStartImage.
	URL string

	// Language is the fence info string for KindStartCodeBlock;
	// empty for indented code blocks and bare fences.
	Language string

	// ListStart is the first ordinal of an ordered list for
	// KindStartList, or nil for a bullet list.
	ListStart *int

	// Alignments holds per-column alignment for KindStartTable.
	Alignments []Alignment

	// Checked is the checkbox state for KindTaskListMarker.
	Checked bool

	// Label names the footnote for KindFootnoteReference and
	// KindStartFootnoteDefinition.
	Label string
}
