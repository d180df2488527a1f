// Copyright 2026 The mp Authors
// SPDX-License-Identifier: Apache-2.0

// Package render converts a parsed markdown event stream into styled
// terminal text. A single stateful pass over the events drives the
// render state machine; styled output goes to a buffered sink, flushed
// once at the end of the pass. Sink write errors are the only failure
// mode and abort the pass.
package render

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/mpview/mp/lib/entity"
	"github.com/mpview/mp/lib/mdevent"
	"github.com/mpview/mp/lib/theme"
)

// Renderer consumes markdown events and writes styled text to its
// sink. One renderer serves one destination; a render call owns its
// state exclusively, so a renderer must not be shared across
// goroutines.
type Renderer struct {
	theme  theme.Markdown
	config Config
	output *Output
	state  *renderState

	// headingLevel is nonzero while inside a heading, so heading text
	// picks up the level's style.
	headingLevel int

	// lipRenderer carries the forced color profile. Output is always
	// for terminal display, so auto-detection (which disables color
	// under tests and pipes) is bypassed.
	lipRenderer *lipgloss.Renderer
}

// NewRenderer builds a renderer writing to writer. A nil palette
// selects the default theme.
func NewRenderer(writer io.Writer, palette theme.Markdown, config Config) *Renderer {
	if palette == nil {
		palette = theme.Default
	}
	if config.IndentWidth <= 0 {
		config.IndentWidth = DefaultConfig().IndentWidth
	}

	lipRenderer := lipgloss.NewRenderer(os.Stderr, termenv.WithProfile(termenv.ANSI256))
	lipRenderer.SetColorProfile(termenv.ANSI256)

	return &Renderer{
		theme:       palette,
		config:      config,
		output:      NewOutputSize(writer, config.BufferSize),
		state:       newRenderState(),
		lipRenderer: lipRenderer,
	}
}

// RenderFile reads, normalizes, and renders one markdown file. The
// read error is recoverable at the call site; render errors are sink
// failures and fatal to the pass.
func (renderer *Renderer) RenderFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	return renderer.RenderContent(normalizeLineEndings(string(data)))
}

// RenderContent parses markdown text and renders its event stream.
func (renderer *Renderer) RenderContent(markdown string) error {
	return renderer.RenderEvents(mdevent.Parse([]byte(markdown)))
}

// RenderEvents drives one full render pass over an event sequence.
// State from any previous pass is discarded first. The sink is
// flushed exactly once, after the last event.
func (renderer *Renderer) RenderEvents(events []mdevent.Event) error {
	renderer.state = newRenderState()
	renderer.headingLevel = 0

	for _, event := range events {
		if err := renderer.dispatch(event); err != nil {
			return err
		}
	}

	// A truncated stream can leave a code block open; flush it so its
	// content is not lost.
	if block, ok := renderer.state.activeCodeBlock(); ok {
		if err := renderer.flushCodeBlock(block); err != nil {
			return err
		}
		renderer.state.clearActive()
	}

	return renderer.output.Flush()
}

// dispatch routes one event. Every branch is total: malformed event
// order degrades to no-ops or silent replacement, never to an error.
// Only sink writes can fail.
func (renderer *Renderer) dispatch(event mdevent.Event) error {
	switch event.Kind {

	case mdevent.KindStartHeading:
		renderer.headingLevel = event.Level
		marker := strings.Repeat("#", event.Level) + " "
		return renderer.output.Write(renderer.headingStyle(event.Level).Render(marker))

	case mdevent.KindEndHeading:
		renderer.headingLevel = 0
		return renderer.output.Write("\n\n")

	case mdevent.KindStartParagraph:
		return nil

	case mdevent.KindEndParagraph:
		// Cell content is terminated by the table layout itself.
		if _, ok := renderer.state.activeTable(); ok {
			return nil
		}
		return renderer.output.Newline()

	case mdevent.KindStartStrong:
		renderer.state.emphasis.strong = true
	case mdevent.KindEndStrong:
		renderer.state.emphasis.strong = false
	case mdevent.KindStartEmphasis:
		renderer.state.emphasis.italic = true
	case mdevent.KindEndEmphasis:
		renderer.state.emphasis.italic = false
	case mdevent.KindStartStrike:
		renderer.state.emphasis.strike = true
	case mdevent.KindEndStrike:
		renderer.state.emphasis.strike = false

	case mdevent.KindStartLink:
		renderer.state.startLink(event.URL)
	case mdevent.KindEndLink:
		if link, ok := renderer.state.activeLink(); ok {
			renderer.state.clearActive()
			return renderer.writeLink(link)
		}

	case mdevent.KindStartImage:
		renderer.state.startImage(event.URL)
	case mdevent.KindEndImage:
		if image, ok := renderer.state.activeImage(); ok {
			renderer.state.clearActive()
			return renderer.writeImage(image)
		}

	case mdevent.KindStartList:
		return renderer.startList(event.ListStart)
	case mdevent.KindEndList:
		return renderer.endList()
	case mdevent.KindStartItem:
		return renderer.startListItem()
	case mdevent.KindEndItem:
		return renderer.output.Newline()

	case mdevent.KindStartCodeBlock:
		renderer.state.startCodeBlock(event.Language)
	case mdevent.KindEndCodeBlock:
		if block, ok := renderer.state.activeCodeBlock(); ok {
			renderer.state.clearActive()
			return renderer.flushCodeBlock(block)
		}

	case mdevent.KindStartBlockQuote:
		marker := renderer.themeStyle(renderer.theme.DelimiterStyle()).Render("> ")
		return renderer.output.Write(marker)
	case mdevent.KindEndBlockQuote:
		return renderer.output.Newline()

	case mdevent.KindStartTable:
		renderer.state.startTable(event.Alignments)
	case mdevent.KindEndTable:
		if table, ok := renderer.state.activeTable(); ok {
			renderer.state.clearActive()
			return renderer.writeTable(table)
		}
	case mdevent.KindStartTableHead:
		if table, ok := renderer.state.activeTable(); ok {
			table.inHeader = true
		}
	case mdevent.KindEndTableHead:
		if table, ok := renderer.state.activeTable(); ok {
			table.endHead()
		}
	case mdevent.KindStartTableRow:
		return nil
	case mdevent.KindEndTableRow:
		if table, ok := renderer.state.activeTable(); ok {
			table.endRow()
		}
	case mdevent.KindStartTableCell:
		if table, ok := renderer.state.activeTable(); ok {
			table.startCell()
		}
	case mdevent.KindEndTableCell:
		return nil

	case mdevent.KindText:
		return renderer.handleText(event.Text)

	case mdevent.KindCode:
		if block, ok := renderer.state.activeCodeBlock(); ok {
			block.content.WriteString(event.Text)
			return nil
		}
		if renderer.state.appendText(event.Text) {
			return nil
		}
		styled := renderer.themeStyle(renderer.theme.CodeStyle()).Render(event.Text)
		return renderer.output.Write(styled)

	case mdevent.KindHTML:
		return renderer.handleText(event.Text)

	case mdevent.KindSoftBreak:
		if renderer.state.appendText(" ") {
			return nil
		}
		return renderer.output.Write(" ")

	case mdevent.KindHardBreak:
		switch renderer.state.active.(type) {
		case *linkState, *imageState:
			// A break inside link text or alt text becomes a space so
			// the surrounding words stay separated.
			renderer.state.appendText(" ")
			return nil
		case *codeBlockState, *tableState:
			// Suppressed while a table or code block accumulates.
			return nil
		}
		return renderer.output.Newline()

	case mdevent.KindRule:
		styled := renderer.themeStyle(renderer.theme.DelimiterStyle()).Render(renderer.config.horizontalRule())
		if err := renderer.output.Writeln(""); err != nil {
			return err
		}
		if err := renderer.output.Writeln(styled); err != nil {
			return err
		}
		return renderer.output.Writeln("")

	case mdevent.KindTaskListMarker:
		marker := "[ ] "
		if event.Checked {
			marker = "[x] "
		}
		styled := renderer.themeStyle(renderer.theme.ListMarkerStyle()).Render(marker)
		return renderer.output.Write(styled)

	case mdevent.KindFootnoteReference:
		reference := "[^" + event.Label + "]"
		styled := renderer.themeStyle(renderer.theme.LinkStyle()).Render(reference)
		return renderer.output.Write(styled)

	case mdevent.KindStartFootnoteDefinition:
		prefix := "[" + event.Label + "]: "
		styled := renderer.themeStyle(renderer.theme.DelimiterStyle()).Render(prefix)
		return renderer.output.Write(styled)
	case mdevent.KindEndFootnoteDefinition:
		return renderer.output.Newline()
	}

	return nil
}

// handleText routes text content. Code block content accumulates
// verbatim; all other destinations receive entity-decoded text.
func (renderer *Renderer) handleText(text string) error {
	if block, ok := renderer.state.activeCodeBlock(); ok {
		block.content.WriteString(text)
		return nil
	}
	decoded := entity.Decode(text)
	if renderer.state.appendText(decoded) {
		return nil
	}
	return renderer.output.Write(renderer.currentStyle().Render(decoded))
}

// currentStyle resolves the style for immediately rendered text.
// Priority: heading context, then strong+italic, strong, italic, body
// text. Strikethrough layers on top of whichever style wins.
func (renderer *Renderer) currentStyle() lipgloss.Style {
	var selected theme.Style
	switch {
	case renderer.headingLevel > 0:
		selected = renderer.theme.HeadingStyle(renderer.headingLevel)
	case renderer.state.emphasis.strong && renderer.state.emphasis.italic:
		selected = renderer.theme.StrongEmphasisStyle()
	case renderer.state.emphasis.strong:
		selected = renderer.theme.StrongStyle()
	case renderer.state.emphasis.italic:
		selected = renderer.theme.EmphasisStyle()
	default:
		selected = renderer.theme.TextStyle()
	}

	style := selected.Lipgloss(renderer.lipRenderer)
	if renderer.state.emphasis.strike {
		style = style.Strikethrough(true)
	}
	return style
}

func (renderer *Renderer) themeStyle(selected theme.Style) lipgloss.Style {
	return selected.Lipgloss(renderer.lipRenderer)
}

func (renderer *Renderer) headingStyle(level int) lipgloss.Style {
	return renderer.themeStyle(renderer.theme.HeadingStyle(level))
}

// writeLink emits an accumulated link. With display text the link
// becomes an OSC 8 hyperlink, so capable terminals make the text
// itself clickable instead of showing the raw URL. A link with no
// text falls back to the styled URL.
func (renderer *Renderer) writeLink(link *linkState) error {
	text := link.text.String()
	styled := renderer.themeStyle(renderer.theme.LinkStyle())

	switch {
	case text == "" && link.url == "":
		return nil
	case text == "":
		return renderer.output.Write(styled.Render(link.url))
	case link.url == "":
		return renderer.output.Write(styled.Render(text))
	default:
		return renderer.output.Write(termenv.Hyperlink(link.url, styled.Render(text)))
	}
}

// writeImage emits an accumulated image as styled alt text followed by
// the source URL.
func (renderer *Renderer) writeImage(image *imageState) error {
	altText := image.altText.String()
	if altText == "" {
		altText = "[Image]"
	}
	styled := renderer.themeStyle(renderer.theme.EmphasisStyle()).Render(altText)
	if err := renderer.output.Write(styled); err != nil {
		return err
	}
	if image.url == "" {
		return nil
	}
	urlText := renderer.themeStyle(renderer.theme.DelimiterStyle()).Render(" (" + image.url + ")")
	return renderer.output.Write(urlText)
}

// startList opens a nesting level. A nested list starting under an
// existing item gets a separating blank line.
func (renderer *Renderer) startList(start *int) error {
	var err error
	if renderer.state.listDepth() > 0 {
		err = renderer.output.Newline()
	}
	renderer.state.pushList(start)
	return err
}

// endList closes the innermost nesting level, with a trailing blank
// line once the outermost list closes.
func (renderer *Renderer) endList() error {
	renderer.state.popList()
	if renderer.state.listDepth() == 0 {
		return renderer.output.Newline()
	}
	return nil
}

// startListItem writes the indentation and marker for the next item.
// Ordered frames advance their counter as a side effect.
func (renderer *Renderer) startListItem() error {
	depth := renderer.state.listDepth()
	if err := renderer.output.Write(renderer.config.indent(depth - 1)); err != nil {
		return err
	}

	frame, ok := renderer.state.currentList()
	if !ok {
		return nil
	}
	marker := "• "
	if frame.ordered {
		marker = fmt.Sprintf("%d. ", frame.counter)
		frame.counter++
	}
	styled := renderer.themeStyle(renderer.theme.ListMarkerStyle()).Render(marker)
	return renderer.output.Write(styled)
}

// flushCodeBlock writes the fence, the verbatim content, and the
// closing fence. Content is styled uniformly and never entity-decoded.
func (renderer *Renderer) flushCodeBlock(block *codeBlockState) error {
	delimiter := renderer.themeStyle(renderer.theme.DelimiterStyle())
	codeStyle := renderer.themeStyle(renderer.theme.CodeStyle())

	fence := delimiter.Render("```")
	opening := fence
	if block.language != "" {
		opening += codeStyle.Render(block.language)
	}
	if err := renderer.output.Writeln(opening); err != nil {
		return err
	}

	content := strings.TrimSuffix(block.content.String(), "\n")
	if content != "" {
		for _, line := range strings.Split(content, "\n") {
			if err := renderer.output.Writeln(codeStyle.Render(line)); err != nil {
				return err
			}
		}
	}

	if err := renderer.output.Writeln(fence); err != nil {
		return err
	}
	return renderer.output.Newline()
}

// writeTable lays out the fully accumulated table and writes its
// lines. Cells are left unstyled so alignment padding stays exact.
func (renderer *Renderer) writeTable(table *tableState) error {
	// A row never closed by its end event still counts.
	table.endRow()

	lines := layoutTable(table.headers, table.rows, table.alignments)
	if len(lines) == 0 {
		return nil
	}
	for _, line := range lines {
		if err := renderer.output.Writeln(line); err != nil {
			return err
		}
	}
	return renderer.output.Newline()
}

// normalizeLineEndings maps CRLF and bare CR to LF. Returns the input
// unchanged when it contains no carriage returns.
func normalizeLineEndings(text string) string {
	if !strings.ContainsRune(text, '\r') {
		return text
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.ReplaceAll(text, "\r", "\n")
}
