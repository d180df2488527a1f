// Copyright 2026 The mp Authors
// SPDX-License-Identifier: Apache-2.0

// Package preview is the interactive terminal UI: a navigable file
// list beside a scrollable rendered preview of the selected markdown
// file. Rendering a document happens once per selection; scrolling
// only re-slices the pre-rendered line buffer.
package preview

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"

	"github.com/mpview/mp/lib/render"
	"github.com/mpview/mp/lib/theme"
)

// FocusRegion identifies which pane has keyboard focus.
type FocusRegion int

const (
	// FocusList means navigation keys move the file list cursor.
	FocusList FocusRegion = iota
	// FocusPreview means navigation keys scroll the preview.
	FocusPreview
)

// listWidthPercent is the file list pane's share of the terminal
// width; the preview takes the rest.
const listWidthPercent = 30

// Model is the bubbletea model for the previewer session.
type Model struct {
	root         string
	files        []string
	palette      theme.Markdown
	renderConfig render.Config
	keys         KeyMap
	lipRenderer  *lipgloss.Renderer
	bar          statusBar

	width  int
	height int
	focus  FocusRegion
	mode   Mode

	cursor     int
	listOffset int

	document *Document

	// searchQuery is the committed query n/N cycle through;
	// searchInput is the line being edited while in search mode.
	searchQuery string
	searchInput string

	message string
	isError bool
}

// NewModel builds the session model. files are root-relative paths in
// display order; the first one is loaded immediately when present.
func NewModel(root string, files []string, palette theme.Markdown, renderConfig render.Config) Model {
	if palette == nil {
		palette = theme.Default
	}

	lipRenderer := lipgloss.NewRenderer(os.Stderr, termenv.WithProfile(termenv.ANSI256))
	lipRenderer.SetColorProfile(termenv.ANSI256)

	model := Model{
		root:         root,
		files:        files,
		palette:      palette,
		renderConfig: renderConfig,
		keys:         DefaultKeyMap,
		lipRenderer:  lipRenderer,
		bar:          statusBar{palette: palette, renderer: lipRenderer},
	}
	if len(files) > 0 {
		model.loadFile(0)
	}
	return model
}

// Init implements tea.Model.
func (model Model) Init() tea.Cmd {
	return nil
}

// loadFile renders the file at index into a fresh document. A read
// failure goes to the status bar; the session keeps running with the
// previous document.
func (model *Model) loadFile(index int) {
	if index < 0 || index >= len(model.files) {
		return
	}
	model.cursor = index
	path := filepath.Join(model.root, model.files[index])

	var buffer bytes.Buffer
	renderer := render.NewRenderer(&buffer, model.palette, model.renderConfig)
	if err := renderer.RenderFile(path); err != nil {
		slog.Warn("failed to load file", "path", path, "error", err)
		model.message = err.Error()
		model.isError = true
		return
	}

	model.document = NewDocument(path, buffer.String())
	model.searchQuery = ""
	model.message = ""
	model.isError = false
}

// Update implements tea.Model.
func (model Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		model.width = msg.Width
		model.height = msg.Height
		model.clampListOffset()
		return model, nil

	case logRecordMsg:
		model.message = msg.Summary
		model.isError = msg.Level >= slog.LevelError
		return model, tea.Tick(logRecordFadeDelay, func(time.Time) tea.Msg {
			return logRecordFadeMsg{}
		})

	case logRecordFadeMsg:
		model.message = ""
		model.isError = false
		return model, nil

	case tea.KeyMsg:
		return model.handleKey(msg)
	}
	return model, nil
}

func (model Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch model.mode {
	case ModeHelp:
		model.mode = ModeNormal
		return model, nil
	case ModeSearch:
		return model.handleSearchKey(msg)
	default:
		return model.handleNormalKey(msg)
	}
}

func (model Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEscape:
		model.mode = ModeNormal
		model.searchInput = ""
		return model, nil

	case tea.KeyEnter:
		model.mode = ModeNormal
		model.searchQuery = model.searchInput
		model.searchInput = ""
		if model.document != nil && model.searchQuery != "" {
			if line, found := model.document.FindLine(model.searchQuery, model.document.Offset()); found {
				model.document.ScrollTo(line)
			} else {
				model.message = fmt.Sprintf("no match for %q", model.searchQuery)
				model.isError = false
			}
		}
		return model, nil

	case tea.KeyBackspace:
		if model.searchInput != "" {
			runes := []rune(model.searchInput)
			model.searchInput = string(runes[:len(runes)-1])
		}
		return model, nil

	case tea.KeySpace:
		model.searchInput += " "
		return model, nil

	case tea.KeyRunes:
		model.searchInput += string(msg.Runes)
		return model, nil
	}
	return model, nil
}

func (model Model) handleNormalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keys := model.keys

	switch {
	case key.Matches(msg, keys.Quit):
		return model, tea.Quit

	case msg.Type == tea.KeyEscape:
		// Escape clears an active search before it quits.
		if model.searchQuery != "" {
			model.searchQuery = ""
			return model, nil
		}
		return model, tea.Quit

	case key.Matches(msg, keys.FocusToggle):
		if model.focus == FocusList {
			model.focus = FocusPreview
		} else {
			model.focus = FocusList
		}

	case key.Matches(msg, keys.Help):
		model.mode = ModeHelp

	case key.Matches(msg, keys.SearchActivate):
		if model.document != nil {
			model.mode = ModeSearch
			model.searchInput = ""
		}

	case key.Matches(msg, keys.SearchNext):
		model.jumpToMatch(false)

	case key.Matches(msg, keys.SearchPrevious):
		model.jumpToMatch(true)

	case key.Matches(msg, keys.Up):
		if model.focus == FocusList {
			model.moveCursor(-1)
		} else if model.document != nil {
			model.document.ScrollBy(-1)
		}

	case key.Matches(msg, keys.Down):
		if model.focus == FocusList {
			model.moveCursor(1)
		} else if model.document != nil {
			model.document.ScrollBy(1)
		}

	case key.Matches(msg, keys.PageUp):
		if model.focus == FocusList {
			model.moveCursor(-pageStep)
		} else if model.document != nil {
			model.document.PageUp()
		}

	case key.Matches(msg, keys.PageDown):
		if model.focus == FocusList {
			model.moveCursor(pageStep)
		} else if model.document != nil {
			model.document.PageDown()
		}

	case key.Matches(msg, keys.Top):
		if model.focus == FocusList {
			model.moveCursor(-len(model.files))
		} else if model.document != nil {
			model.document.ScrollTop()
		}

	case key.Matches(msg, keys.Bottom):
		if model.focus == FocusList {
			model.moveCursor(len(model.files))
		} else if model.document != nil {
			model.document.ScrollBottom()
		}

	case key.Matches(msg, keys.Open):
		if model.focus == FocusList {
			model.loadFile(model.cursor)
		}
	}

	return model, nil
}

// jumpToMatch cycles to the next or previous line matching the
// committed search query.
func (model *Model) jumpToMatch(backward bool) {
	if model.document == nil || model.searchQuery == "" {
		return
	}
	var line int
	var found bool
	if backward {
		line, found = model.document.FindLineBackward(model.searchQuery, model.document.Offset()-1)
	} else {
		line, found = model.document.FindLine(model.searchQuery, model.document.Offset()+1)
	}
	if found {
		model.document.ScrollTo(line)
	} else {
		model.message = fmt.Sprintf("no match for %q", model.searchQuery)
		model.isError = false
	}
}

// moveCursor shifts the file list cursor, clamped to the list bounds.
func (model *Model) moveCursor(delta int) {
	model.cursor += delta
	if model.cursor < 0 {
		model.cursor = 0
	}
	if limit := len(model.files) - 1; model.cursor > limit {
		model.cursor = limit
	}
	if model.cursor < 0 {
		model.cursor = 0
	}
	model.clampListOffset()
}

// paneHeight is the content height inside a pane's border.
func (model Model) paneHeight() int {
	height := model.height - 1 - 2 // status line and border rows
	if height < 0 {
		height = 0
	}
	return height
}

// clampListOffset keeps the cursor inside the visible list window.
func (model *Model) clampListOffset() {
	height := model.paneHeight()
	if height <= 0 {
		return
	}
	if model.cursor < model.listOffset {
		model.listOffset = model.cursor
	}
	if model.cursor >= model.listOffset+height {
		model.listOffset = model.cursor - height + 1
	}
	if model.listOffset < 0 {
		model.listOffset = 0
	}
}

// View implements tea.Model.
func (model Model) View() string {
	if model.width <= 0 || model.height <= 0 {
		return ""
	}

	listWidth := model.width * listWidthPercent / 100
	if listWidth < 16 {
		listWidth = 16
	}
	previewWidth := model.width - listWidth
	innerHeight := model.paneHeight()

	listPane := model.renderListPane(listWidth, innerHeight)
	previewPane := model.renderPreviewPane(previewWidth, innerHeight)
	panes := lipgloss.JoinHorizontal(lipgloss.Top, listPane, previewPane)

	return panes + "\n" + model.renderStatusBar()
}

// paneStyle returns the bordered frame for a pane, with the focus
// color on the focused one.
func (model Model) paneStyle(width, innerHeight int, focused bool) lipgloss.Style {
	borderColor := model.palette.DelimiterStyle().Color
	if focused {
		borderColor = model.palette.FocusBorderStyle().Color
	}
	return model.lipRenderer.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor).
		Width(width - 2).
		Height(innerHeight)
}

func (model Model) renderListPane(width, innerHeight int) string {
	innerWidth := width - 2
	textWidth := innerWidth - 2 // scrollbar column and a gap
	if textWidth < 1 {
		textWidth = 1
	}

	cursorStyle := model.lipRenderer.NewStyle().
		Foreground(model.palette.TextStyle().Color).
		Background(model.palette.StatusBackgroundColor()).
		Bold(true)
	normalStyle := model.palette.TextStyle().Lipgloss(model.lipRenderer)

	end := model.listOffset + innerHeight
	if end > len(model.files) {
		end = len(model.files)
	}

	var lines []string
	for index := model.listOffset; index < end; index++ {
		name := ansi.Truncate(filepath.ToSlash(model.files[index]), textWidth, "…")
		if index == model.cursor {
			lines = append(lines, cursorStyle.Render(name))
		} else {
			lines = append(lines, normalStyle.Render(name))
		}
	}
	if len(lines) == 0 {
		lines = append(lines, model.palette.DelimiterStyle().Lipgloss(model.lipRenderer).Render("no markdown files"))
	}

	body := strings.Join(lines, "\n")
	scrollbar := renderScrollbar(
		model.palette, model.lipRenderer,
		innerHeight, len(model.files), innerHeight, model.listOffset,
		model.focus == FocusList,
	)
	content := lipgloss.JoinHorizontal(
		lipgloss.Top,
		model.lipRenderer.NewStyle().Width(textWidth+1).Render(body),
		scrollbar,
	)
	return model.paneStyle(width, innerHeight, model.focus == FocusList).Render(content)
}

func (model Model) renderPreviewPane(width, innerHeight int) string {
	innerWidth := width - 2
	textWidth := innerWidth - 2
	if textWidth < 1 {
		textWidth = 1
	}

	var content string
	switch {
	case model.mode == ModeHelp:
		content = model.helpText()
	case model.document == nil:
		content = model.palette.DelimiterStyle().Lipgloss(model.lipRenderer).Render("select a file to preview")
	default:
		content = model.renderDocumentWindow(textWidth, innerHeight)
	}

	var scrollbar string
	if model.document != nil && model.mode != ModeHelp {
		scrollbar = renderScrollbar(
			model.palette, model.lipRenderer,
			innerHeight, model.document.LineCount(), innerHeight, model.document.Offset(),
			model.focus == FocusPreview,
		)
	} else {
		scrollbar = renderScrollbar(model.palette, model.lipRenderer, innerHeight, 0, innerHeight, 0, false)
	}

	framed := lipgloss.JoinHorizontal(
		lipgloss.Top,
		model.lipRenderer.NewStyle().Width(textWidth+1).Render(content),
		scrollbar,
	)
	return model.paneStyle(width, innerHeight, model.focus == FocusPreview).Render(framed)
}

// renderDocumentWindow produces the visible document slice, marking
// lines that match the active search with a colored gutter bar.
func (model Model) renderDocumentWindow(width, height int) string {
	// The gutter column is part of the width budget.
	lines := model.document.VisibleLines(height, width-1)

	query := model.searchQuery
	if model.mode == ModeSearch {
		query = model.searchInput
	}
	markerStyle := model.lipRenderer.NewStyle().Foreground(model.palette.StatusSearchColor())

	var builder strings.Builder
	for index, line := range lines {
		if index > 0 {
			builder.WriteByte('\n')
		}
		if query != "" && model.document.MatchesLine(query, model.document.Offset()+index) {
			builder.WriteString(markerStyle.Render("▎"))
		} else {
			builder.WriteByte(' ')
		}
		builder.WriteString(line)
	}
	return builder.String()
}

func (model Model) helpText() string {
	keyStyle := model.lipRenderer.NewStyle().
		Foreground(model.palette.StatusHelpColor()).
		Bold(true)
	textStyle := model.palette.TextStyle().Lipgloss(model.lipRenderer)

	bindings := []key.Binding{
		model.keys.Up, model.keys.Down,
		model.keys.PageUp, model.keys.PageDown,
		model.keys.Top, model.keys.Bottom,
		model.keys.FocusToggle, model.keys.Open,
		model.keys.SearchActivate, model.keys.SearchNext, model.keys.SearchPrevious,
		model.keys.Help, model.keys.Quit,
	}

	var builder strings.Builder
	builder.WriteString(keyStyle.Render("Key bindings"))
	builder.WriteString("\n\n")
	for _, binding := range bindings {
		help := binding.Help()
		builder.WriteString(fmt.Sprintf("  %s  %s\n",
			keyStyle.Render(fmt.Sprintf("%-8s", help.Key)),
			textStyle.Render(help.Desc)))
	}
	builder.WriteString("\n")
	builder.WriteString(textStyle.Render("press any key to close"))
	return builder.String()
}

func (model Model) renderStatusBar() string {
	var context string
	switch {
	case model.mode == ModeSearch:
		context = "/" + model.searchInput
	case model.document != nil:
		context = fmt.Sprintf("%s  %d/%d",
			filepath.ToSlash(model.document.Path()),
			model.document.Offset()+1, model.document.LineCount())
	default:
		context = model.root
	}

	hint := "tab: pane  /: search  ?: help  q: quit"
	return model.bar.render(model.width, model.mode, context, model.message, model.isError, hint)
}
