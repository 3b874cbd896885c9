// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package bugui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"github.com/bureau-foundation/graveyard/lib/bugindex"
	"github.com/bureau-foundation/graveyard/lib/clock"
	"github.com/bureau-foundation/graveyard/lib/schema/bug"
)

// testNow is after every seed timestamp.
var testNow = time.Date(2025, 10, 1, 12, 0, 0, 0, time.UTC)

type testHarness struct {
	source *StoreSource
	clock  *clock.FakeClock
}

// newTestModel builds a sized model over the seed dataset.
func newTestModel(t *testing.T, tab Tab) (Model, testHarness) {
	t.Helper()
	harness := testHarness{
		source: NewStoreSource(bugindex.MustSeed()),
		clock:  clock.Fake(testNow),
	}
	model := NewModel(harness.source, Options{Clock: harness.clock, DefaultTab: tab})
	return resize(model, 140, 40), harness
}

func resize(model Model, width, height int) Model {
	updated, _ := model.Update(tea.WindowSizeMsg{Width: width, Height: height})
	return updated.(Model)
}

// keyMsg converts a key name to a KeyMsg. Names of special keys map
// to their types; anything else is sent as runes.
func keyMsg(name string) tea.KeyMsg {
	switch name {
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(name)}
}

// press sends each key in order and returns the final model and the
// last command.
func press(t *testing.T, model Model, keys ...string) (Model, tea.Cmd) {
	t.Helper()
	var command tea.Cmd
	for _, name := range keys {
		var updated tea.Model
		updated, command = model.Update(keyMsg(name))
		model = updated.(Model)
	}
	return model, command
}

func plainView(model Model) string {
	return ansi.Strip(model.View())
}

func listedIDs(model Model) []string {
	ids := make([]string, len(model.bugs))
	for index := range model.bugs {
		ids[index] = model.bugs[index].ID
	}
	return ids
}

func requireListed(t *testing.T, model Model, want ...string) {
	t.Helper()
	got := listedIDs(model)
	if len(got) != len(want) {
		t.Fatalf("listed = %v, want %v", got, want)
	}
	for index := range want {
		if got[index] != want[index] {
			t.Fatalf("listed = %v, want %v", got, want)
		}
	}
}

func seedRecord(t *testing.T, id string) bug.Bug {
	t.Helper()
	record, ok := bugindex.MustSeed().Get(id)
	if !ok {
		t.Fatalf("seed has no %s", id)
	}
	return record
}

func mustStore(t *testing.T, bugs []bug.Bug) *bugindex.Store {
	t.Helper()
	store, err := bugindex.NewStore(bugs)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	return store
}
