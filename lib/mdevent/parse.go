// Copyright 2026 The mp Authors
// SPDX-License-Identifier: Apache-2.0

package mdevent

import (
	"strconv"
	"strings"
	"sync"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

// parserInstance is initialized once and reused. The parser
// configuration (extensions, options) never changes and the goldmark
// Markdown is safe to share — each Parse call creates its own reader
// state.
var (
	parserInstance goldmark.Markdown
	parserOnce     sync.Once
)

func getParser() goldmark.Markdown {
	parserOnce.Do(func() {
		parserInstance = goldmark.New(
			goldmark.WithExtensions(
				extension.GFM,
				extension.Footnote,
			),
		)
	})
	return parserInstance
}

// Parse converts markdown source into its event stream. The stream is
// well formed by construction: every Start event has a matching End
// event, properly nested.
func Parse(source []byte) []Event {
	if len(source) == 0 {
		return nil
	}
	reader := text.NewReader(source)
	document := getParser().Parser().Parse(reader)

	collector := &collector{
		source:         source,
		footnoteLabels: footnoteLabels(document),
	}
	ast.Walk(document, collector.visit)
	return collector.events
}

// footnoteLabels maps footnote index to textual label. References only
// carry the index; the label lives on the definition node, so a
// pre-scan over the footnote list is needed for references and
// definitions to agree.
func footnoteLabels(document ast.Node) map[int]string {
	var labels map[int]string
	for child := document.FirstChild(); child != nil; child = child.NextSibling() {
		list, ok := child.(*extast.FootnoteList)
		if !ok {
			continue
		}
		for node := list.FirstChild(); node != nil; node = node.NextSibling() {
			footnote, ok := node.(*extast.Footnote)
			if !ok || len(footnote.Ref) == 0 {
				continue
			}
			if labels == nil {
				labels = make(map[int]string)
			}
			labels[footnote.Index] = string(footnote.Ref)
		}
	}
	return labels
}

// collector flattens a goldmark AST walk into the event slice.
type collector struct {
	source         []byte
	footnoteLabels map[int]string
	events         []Event
}

func (collector *collector) emit(event Event) {
	collector.events = append(collector.events, event)
}

// pair emits a bare Start or End event depending on walk direction.
func (collector *collector) pair(entering bool, start, end Kind) {
	if entering {
		collector.emit(Event{Kind: start})
	} else {
		collector.emit(Event{Kind: end})
	}
}

func (collector *collector) visit(node ast.Node, entering bool) (ast.WalkStatus, error) {
	switch node.Kind() {

	case ast.KindDocument:
		// Container only.

	case ast.KindHeading:
		heading := node.(*ast.Heading)
		if entering {
			collector.emit(Event{Kind: KindStartHeading, Level: heading.Level})
		} else {
			collector.emit(Event{Kind: KindEndHeading, Level: heading.Level})
		}

	case ast.KindParagraph:
		collector.pair(entering, KindStartParagraph, KindEndParagraph)

	case ast.KindTextBlock:
		// Tight list item content: inline events flow without a
		// paragraph wrapper, so items stay single-spaced.

	case ast.KindBlockquote:
		collector.pair(entering, KindStartBlockQuote, KindEndBlockQuote)

	case ast.KindList:
		if entering {
			list := node.(*ast.List)
			event := Event{Kind: KindStartList}
			if list.IsOrdered() {
				start := list.Start
				event.ListStart = &start
			}
			collector.emit(event)
		} else {
			collector.emit(Event{Kind: KindEndList})
		}

	case ast.KindListItem:
		collector.pair(entering, KindStartItem, KindEndItem)

	case ast.KindFencedCodeBlock:
		if entering {
			block := node.(*ast.FencedCodeBlock)
			collector.emit(Event{
				Kind:     KindStartCodeBlock,
				Language: string(block.Language(collector.source)),
			})
			collector.emitLines(node, KindText)
			collector.emit(Event{Kind: KindEndCodeBlock})
			return ast.WalkSkipChildren, nil
		}

	case ast.KindCodeBlock:
		if entering {
			collector.emit(Event{Kind: KindStartCodeBlock})
			collector.emitLines(node, KindText)
			collector.emit(Event{Kind: KindEndCodeBlock})
			return ast.WalkSkipChildren, nil
		}

	case ast.KindThematicBreak:
		if entering {
			collector.emit(Event{Kind: KindRule})
		}

	case ast.KindHTMLBlock:
		if entering {
			collector.emitLines(node, KindHTML)
			return ast.WalkSkipChildren, nil
		}

	case ast.KindText:
		if entering {
			textNode := node.(*ast.Text)
			value := string(textNode.Segment.Value(collector.source))
			if value != "" {
				collector.emit(Event{Kind: KindText, Text: value})
			}
			if textNode.SoftLineBreak() {
				collector.emit(Event{Kind: KindSoftBreak})
			}
			if textNode.HardLineBreak() {
				collector.emit(Event{Kind: KindHardBreak})
			}
		}

	case ast.KindString:
		if entering {
			value := string(node.(*ast.String).Value)
			if value != "" {
				collector.emit(Event{Kind: KindText, Text: value})
			}
		}

	case ast.KindEmphasis:
		emphasis := node.(*ast.Emphasis)
		if emphasis.Level >= 2 {
			collector.pair(entering, KindStartStrong, KindEndStrong)
		} else {
			collector.pair(entering, KindStartEmphasis, KindEndEmphasis)
		}

	case ast.KindCodeSpan:
		if entering {
			collector.emit(Event{Kind: KindCode, Text: collector.codeSpanText(node)})
			return ast.WalkSkipChildren, nil
		}

	case ast.KindLink:
		link := node.(*ast.Link)
		if entering {
			collector.emit(Event{Kind: KindStartLink, URL: string(link.Destination)})
		} else {
			collector.emit(Event{Kind: KindEndLink})
		}

	case ast.KindAutoLink:
		if entering {
			url := string(node.(*ast.AutoLink).URL(collector.source))
			collector.emit(Event{Kind: KindStartLink, URL: url})
			collector.emit(Event{Kind: KindText, Text: url})
			collector.emit(Event{Kind: KindEndLink})
		}

	case ast.KindImage:
		image := node.(*ast.Image)
		if entering {
			collector.emit(Event{Kind: KindStartImage, URL: string(image.Destination)})
		} else {
			collector.emit(Event{Kind: KindEndImage})
		}

	case ast.KindRawHTML:
		if entering {
			raw := node.(*ast.RawHTML)
			var html strings.Builder
			for index := 0; index < raw.Segments.Len(); index++ {
				segment := raw.Segments.At(index)
				html.Write(segment.Value(collector.source))
			}
			if html.Len() > 0 {
				collector.emit(Event{Kind: KindHTML, Text: html.String()})
			}
			return ast.WalkSkipChildren, nil
		}

	// GFM extension nodes.
	case extast.KindStrikethrough:
		collector.pair(entering, KindStartStrike, KindEndStrike)

	case extast.KindTable:
		if entering {
			table := node.(*extast.Table)
			alignments := make([]Alignment, len(table.Alignments))
			for index, alignment := range table.Alignments {
				alignments[index] = convertAlignment(alignment)
			}
			collector.emit(Event{Kind: KindStartTable, Alignments: alignments})
		} else {
			collector.emit(Event{Kind: KindEndTable})
		}

	case extast.KindTableHeader:
		collector.pair(entering, KindStartTableHead, KindEndTableHead)

	case extast.KindTableRow:
		collector.pair(entering, KindStartTableRow, KindEndTableRow)

	case extast.KindTableCell:
		collector.pair(entering, KindStartTableCell, KindEndTableCell)

	case extast.KindTaskCheckBox:
		if entering {
			checkbox := node.(*extast.TaskCheckBox)
			collector.emit(Event{Kind: KindTaskListMarker, Checked: checkbox.IsChecked})
		}

	// Footnote extension nodes.
	case extast.KindFootnoteLink:
		if entering {
			link := node.(*extast.FootnoteLink)
			label, ok := collector.footnoteLabels[link.Index]
			if !ok {
				label = strconv.Itoa(link.Index)
			}
			collector.emit(Event{Kind: KindFootnoteReference, Label: label})
		}

	case extast.KindFootnote:
		footnote := node.(*extast.Footnote)
		label := string(footnote.Ref)
		if label == "" {
			label = strconv.Itoa(footnote.Index)
		}
		if entering {
			collector.emit(Event{Kind: KindStartFootnoteDefinition, Label: label})
		} else {
			collector.emit(Event{Kind: KindEndFootnoteDefinition, Label: label})
		}

	case extast.KindFootnoteList:
		// Container for footnote definitions — no event of its own.

	case extast.KindFootnoteBacklink:
		// Return arrow for HTML output; meaningless in a terminal.
		return ast.WalkSkipChildren, nil
	}

	return ast.WalkContinue, nil
}

// emitLines produces one event per source line of a block node,
// newline included. Used for code block and HTML block content.
func (collector *collector) emitLines(node ast.Node, kind Kind) {
	lines := node.Lines()
	for index := 0; index < lines.Len(); index++ {
		segment := lines.At(index)
		collector.emit(Event{Kind: kind, Text: string(segment.Value(collector.source))})
	}
}

// codeSpanText joins the text segments of a code span's children.
func (collector *collector) codeSpanText(node ast.Node) string {
	var code strings.Builder
	for child := node.FirstChild(); child != nil; child = child.NextSibling() {
		switch typed := child.(type) {
		case *ast.Text:
			code.Write(typed.Segment.Value(collector.source))
		case *ast.String:
			code.Write(typed.Value)
		}
	}
	return code.String()
}

func convertAlignment(alignment extast.Alignment) Alignment {
	switch alignment {
	case extast.AlignLeft:
		return AlignLeft
	case extast.AlignCenter:
		return AlignCenter
	case extast.AlignRight:
		return AlignRight
	default:
		return AlignNone
	}
}
