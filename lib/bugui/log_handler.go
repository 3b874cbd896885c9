// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package bugui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// logRecordMsg delivers a slog record to the model for display in the
// status bar.
type logRecordMsg struct {
	// Summary is the one-line message for the status bar.
	Summary string

	// Level selects the styling (warn vs error).
	Level slog.Level
}

// logRecordFadeMsg clears a status-bar message once it has been shown
// for logRecordFadeDelay. sequence matches the message it clears, so
// a newer message is not cut short by an older fade.
type logRecordFadeMsg struct {
	sequence int
}

// logRecordFadeDelay is how long log messages stay visible in the
// status bar before fading back to the keyboard help line.
const logRecordFadeDelay = 5 * time.Second

// messageSender is the part of *tea.Program the handler needs.
type messageSender interface {
	Send(tea.Msg)
}

// programSlot is shared by a handler and everything derived from it.
type programSlot struct {
	mutex  sync.RWMutex
	sender messageSender
}

func (slot *programSlot) load() messageSender {
	slot.mutex.RLock()
	defer slot.mutex.RUnlock()
	return slot.sender
}

func (slot *programSlot) store(sender messageSender) {
	slot.mutex.Lock()
	defer slot.mutex.Unlock()
	slot.sender = sender
}

// TUILogHandler is a slog.Handler that routes log records into a
// bubbletea program as messages. Records below the configured level
// are dropped. Records at or above it are formatted as
// "message (key=value, ...)" and sent via program.Send().
//
// The handler must be created before the program starts. Call
// SetProgram once the tea.Program exists; records arriving earlier
// are dropped. Handlers derived via WithAttrs/WithGroup share the
// program slot, so one SetProgram call covers all of them.
type TUILogHandler struct {
	level  slog.Level
	slot   *programSlot
	attrs  []slog.Attr
	groups []string
}

// NewTUILogHandler creates a handler that delivers log records at or
// above level to the program set by SetProgram.
func NewTUILogHandler(level slog.Level) *TUILogHandler {
	return &TUILogHandler{
		level: level,
		slot:  &programSlot{},
	}
}

// SetProgram sets the bubbletea program that receives log messages.
// Safe to call from any goroutine.
func (handler *TUILogHandler) SetProgram(program *tea.Program) {
	handler.slot.store(program)
}

// Enabled reports whether the handler is interested in records at the
// given level.
func (handler *TUILogHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= handler.level
}

// Handle formats the record and sends it to the program.
func (handler *TUILogHandler) Handle(_ context.Context, record slog.Record) error {
	sender := handler.slot.load()
	if sender == nil {
		return nil
	}

	prefix := ""
	if len(handler.groups) > 0 {
		prefix = strings.Join(handler.groups, ".") + "."
	}

	var attrParts []string
	for _, attr := range handler.attrs {
		attrParts = append(attrParts, fmt.Sprintf("%s=%s", attr.Key, attr.Value))
	}
	record.Attrs(func(attr slog.Attr) bool {
		attrParts = append(attrParts, fmt.Sprintf("%s%s=%s", prefix, attr.Key, attr.Value))
		return true
	})

	summary := record.Message
	if len(attrParts) > 0 {
		summary += " (" + strings.Join(attrParts, ", ") + ")"
	}

	sender.Send(logRecordMsg{Summary: summary, Level: record.Level})
	return nil
}

// WithAttrs returns a new handler with the given attributes appended.
func (handler *TUILogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	prefix := ""
	if len(handler.groups) > 0 {
		prefix = strings.Join(handler.groups, ".") + "."
	}
	combined := sliceClone(handler.attrs)
	for _, attr := range attrs {
		combined = append(combined, slog.Attr{Key: prefix + attr.Key, Value: attr.Value})
	}
	return &TUILogHandler{
		level:  handler.level,
		slot:   handler.slot,
		attrs:  combined,
		groups: sliceClone(handler.groups),
	}
}

// WithGroup returns a new handler whose later attributes are
// qualified by name.
func (handler *TUILogHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return handler
	}
	return &TUILogHandler{
		level:  handler.level,
		slot:   handler.slot,
		attrs:  sliceClone(handler.attrs),
		groups: append(sliceClone(handler.groups), name),
	}
}

// sliceClone returns a shallow copy of a slice. Avoids aliasing when
// building derived handlers with WithAttrs/WithGroup.
func sliceClone[T any](source []T) []T {
	if source == nil {
		return nil
	}
	result := make([]T, len(source))
	copy(result, source)
	return result
}
