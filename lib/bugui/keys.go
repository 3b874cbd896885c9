// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package bugui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all key bindings for the graveyard viewer.
type KeyMap struct {
	// Navigation (list movement, detail scrolling or analytics
	// scrolling depending on the tab and focus).
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Home     key.Binding
	End      key.Binding
	Select   key.Binding

	// Focus switching between list and detail.
	FocusToggle key.Binding

	// Splitter resize.
	SplitGrow   key.Binding
	SplitShrink key.Binding

	// Tab switching.
	TabGraveyard key.Binding
	TabBugs      key.Binding
	TabAnalytics key.Binding

	// Filter bar.
	Search         key.Binding
	SeverityFilter key.Binding
	StatusFilter   key.Binding
	ModuleFilter   key.Binding
	ClearFilters   key.Binding

	Quit key.Binding
}

// DefaultKeyMap is the built-in key binding set. Vim-style navigation
// (j/k) alongside standard arrow keys and page up/down.
var DefaultKeyMap = KeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	PageUp: key.NewBinding(
		key.WithKeys("pgup", "ctrl+u"),
		key.WithHelp("pgup", "page up"),
	),
	PageDown: key.NewBinding(
		key.WithKeys("pgdown", "ctrl+d"),
		key.WithHelp("pgdn", "page down"),
	),
	Home: key.NewBinding(
		key.WithKeys("g", "home"),
		key.WithHelp("g", "top"),
	),
	End: key.NewBinding(
		key.WithKeys("G", "end"),
		key.WithHelp("G", "bottom"),
	),
	Select: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "open"),
	),
	FocusToggle: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "focus"),
	),
	SplitGrow: key.NewBinding(
		key.WithKeys("]"),
		key.WithHelp("]", "wider list"),
	),
	SplitShrink: key.NewBinding(
		key.WithKeys("["),
		key.WithHelp("[", "narrower list"),
	),
	TabGraveyard: key.NewBinding(
		key.WithKeys("1"),
		key.WithHelp("1", "graveyard"),
	),
	TabBugs: key.NewBinding(
		key.WithKeys("2"),
		key.WithHelp("2", "all bugs"),
	),
	TabAnalytics: key.NewBinding(
		key.WithKeys("3"),
		key.WithHelp("3", "analytics"),
	),
	Search: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "search"),
	),
	SeverityFilter: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "severity"),
	),
	StatusFilter: key.NewBinding(
		key.WithKeys("t"),
		key.WithHelp("t", "status"),
	),
	ModuleFilter: key.NewBinding(
		key.WithKeys("m"),
		key.WithHelp("m", "module"),
	),
	ClearFilters: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "clear"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}
