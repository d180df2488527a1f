// Copyright 2026 The mp Authors
// SPDX-License-Identifier: Apache-2.0

package preview

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// logRecordMsg delivers a slog record to the bubbletea model for
// display in the status bar. Writing records to stderr would corrupt
// the alt-screen display, so the status bar is the only log surface
// while the TUI runs.
type logRecordMsg struct {
	// Summary is the human-readable one-line message.
	Summary string

	// Level is the slog level for styling (warn vs error).
	Level slog.Level
}

// logRecordFadeMsg is sent after a delay to clear the log message from
// the status bar.
type logRecordFadeMsg struct{}

// logRecordFadeDelay is how long log messages stay visible in the
// status bar.
const logRecordFadeDelay = 5 * time.Second

// TUILogHandler is a slog.Handler that routes log records into a
// bubbletea program as messages. Records below the configured level
// are silently dropped.
//
// The handler must be created before the program starts. Call
// SetProgram once the tea.Program is created to enable delivery;
// records arriving earlier are dropped. Handlers derived via
// WithAttrs/WithGroup share the same program pointer, so a single
// SetProgram call propagates to every derived handler.
type TUILogHandler struct {
	level   slog.Level
	program *atomic.Pointer[tea.Program]
	attrs   []slog.Attr
}

// NewTUILogHandler creates a handler that delivers log records at or
// above the given level.
func NewTUILogHandler(level slog.Level) *TUILogHandler {
	return &TUILogHandler{
		level:   level,
		program: &atomic.Pointer[tea.Program]{},
	}
}

// SetProgram sets the bubbletea program that receives log messages.
// Safe to call from any goroutine.
func (handler *TUILogHandler) SetProgram(program *tea.Program) {
	handler.program.Store(program)
}

// Enabled reports whether the handler is interested in records at the
// given level.
func (handler *TUILogHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= handler.level
}

// Handle formats the record and sends it to the bubbletea program.
func (handler *TUILogHandler) Handle(_ context.Context, record slog.Record) error {
	program := handler.program.Load()
	if program == nil {
		return nil
	}

	summary := record.Message
	var attrParts []string
	for _, attr := range handler.attrs {
		attrParts = append(attrParts, fmt.Sprintf("%s=%s", attr.Key, attr.Value))
	}
	record.Attrs(func(attr slog.Attr) bool {
		attrParts = append(attrParts, fmt.Sprintf("%s=%s", attr.Key, attr.Value))
		return true
	})
	if len(attrParts) > 0 {
		summary += " ("
		for index, part := range attrParts {
			if index > 0 {
				summary += ", "
			}
			summary += part
		}
		summary += ")"
	}

	program.Send(logRecordMsg{Summary: summary, Level: record.Level})
	return nil
}

// WithAttrs returns a derived handler with the attributes appended.
func (handler *TUILogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	combined := make([]slog.Attr, 0, len(handler.attrs)+len(attrs))
	combined = append(combined, handler.attrs...)
	combined = append(combined, attrs...)
	return &TUILogHandler{
		level:   handler.level,
		program: handler.program,
		attrs:   combined,
	}
}

// WithGroup returns the handler unchanged: status bar summaries are
// flat one-liners, so group nesting adds nothing here.
func (handler *TUILogHandler) WithGroup(string) slog.Handler {
	return handler
}
