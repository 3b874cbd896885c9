// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package bugui

import (
	"fmt"
	"log/slog"
	"reflect"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/bureau-foundation/graveyard/lib/bugindex"
	"github.com/bureau-foundation/graveyard/lib/clock"
	"github.com/bureau-foundation/graveyard/lib/schema/bug"
	"github.com/bureau-foundation/graveyard/lib/tui"
)

// Tab identifies the active view.
type Tab int

const (
	// TabGraveyard is the home view: stats and recent burials.
	TabGraveyard Tab = iota
	// TabBugs is the filterable list with the detail pane.
	TabBugs
	// TabAnalytics is the chart dashboard.
	TabAnalytics
)

// ParseTab maps a config tab name to a Tab.
func ParseTab(name string) (Tab, error) {
	switch name {
	case "graveyard":
		return TabGraveyard, nil
	case "bugs":
		return TabBugs, nil
	case "analytics":
		return TabAnalytics, nil
	}
	return TabGraveyard, fmt.Errorf("unknown tab %q (want graveyard, bugs or analytics)", name)
}

// FocusRegion identifies which part of the All Bugs tab receives
// keyboard input.
type FocusRegion int

const (
	// FocusList routes navigation keys to the bug list.
	FocusList FocusRegion = iota
	// FocusDetail routes navigation keys to the detail pane scroll.
	FocusDetail
	// FocusSearch routes typed characters to the search input.
	FocusSearch
	// FocusDropdown routes input to an open filter dropdown.
	FocusDropdown
)

// Split ratio bounds for the list/detail divider.
const (
	splitRatioMin  = 0.20
	splitRatioMax  = 0.80
	splitRatioStep = 0.05
)

// sourceEventMsg signals that the source has a new snapshot.
type sourceEventMsg struct{}

// heatTickMsg re-renders while recently changed rows are glowing.
type heatTickMsg struct{}

// Options configures a Model. Zero values select the defaults.
type Options struct {
	// Clock drives relative ages, heat decay and status-bar fades.
	// Default: clock.Real().
	Clock clock.Clock

	// Theme defaults to tui.DefaultTheme.
	Theme tui.Theme

	// DefaultTab is the tab shown at startup.
	DefaultTab Tab

	// SplitRatio is the list pane's share of the width on the All
	// Bugs tab, clamped to [0.20, 0.80]. Default: 0.45.
	SplitRatio float64

	// HotspotLimit is how many modules the hotspot chart shows.
	// Default: 6.
	HotspotLimit int

	// Logger receives trend diagnostics. Default: discards.
	Logger *slog.Logger
}

// Model is the bubbletea model for the graveyard viewer.
type Model struct {
	source       Source
	clock        clock.Clock
	theme        tui.Theme
	keys         KeyMap
	logger       *slog.Logger
	hotspotLimit int

	// Terminal dimensions (set by WindowSizeMsg).
	width  int
	height int
	ready  bool

	activeTab Tab

	// Derived from the current snapshot by loadSnapshot.
	store     *bugindex.Store
	analytics bugindex.Analytics
	recent    []bug.Bug

	// Graveyard tab.
	homeCursor int

	// All Bugs tab. bugs is the filtered list; highlights maps bug ID
	// to search-match rune positions in its title.
	filter       FilterBar
	bugs         []bug.Bug
	highlights   map[string][]int
	cursor       int
	scrollOffset int
	selectedID   string // Stable focus: track selection by bug ID.

	focusRegion    FocusRegion
	priorFocus     FocusRegion // Restored when search or a dropdown closes.
	splitRatio     float64
	detailPane     DetailPane
	activeDropdown *tui.DropdownOverlay

	// Analytics tab.
	analyticsView viewport.Model

	// Status bar message from the log handler. statusSequence
	// identifies the message a fade belongs to.
	statusMessage  string
	statusLevel    slog.Level
	statusSequence int

	// Live reload.
	heatTracker  *tui.HeatTracker
	eventChannel <-chan *bugindex.Store
	tickRunning  bool

	// pendingLog holds commands for diagnostics found while loading a
	// snapshot outside Update (in NewModel); Init returns them.
	pendingLog tea.Cmd
}

// NewModel creates a Model showing source's current snapshot.
func NewModel(source Source, options Options) Model {
	if options.Clock == nil {
		options.Clock = clock.Real()
	}
	if options.Theme == (tui.Theme{}) {
		options.Theme = tui.DefaultTheme
	}
	if options.SplitRatio == 0 {
		options.SplitRatio = 0.45
	}
	options.SplitRatio = min(max(options.SplitRatio, splitRatioMin), splitRatioMax)
	if options.HotspotLimit <= 0 {
		options.HotspotLimit = 6
	}
	if options.Logger == nil {
		options.Logger = slog.New(slog.DiscardHandler)
	}

	model := Model{
		source:       source,
		clock:        options.Clock,
		theme:        options.Theme,
		keys:         DefaultKeyMap,
		logger:       options.Logger,
		hotspotLimit: options.HotspotLimit,
		activeTab:    options.DefaultTab,
		filter:       NewFilterBar(),
		splitRatio:   options.SplitRatio,
		detailPane:   NewDetailPane(options.Theme),
		heatTracker:  tui.NewHeatTracker(),
		eventChannel: source.Subscribe(),
	}
	model.pendingLog = model.loadSnapshot(source.Snapshot())
	return model
}

// ActiveTab returns the tab being shown.
func (model Model) ActiveTab() Tab {
	return model.activeTab
}

// SelectedID returns the ID of the selected bug on the All Bugs tab.
func (model Model) SelectedID() string {
	return model.selectedID
}

// Init implements tea.Model. Starts listening for source snapshots.
func (model Model) Init() tea.Cmd {
	return tea.Batch(listenForSourceEvent(model.eventChannel), model.pendingLog)
}

// listenForSourceEvent returns a tea.Cmd that blocks until the source
// publishes a snapshot, then delivers a sourceEventMsg.
func listenForSourceEvent(channel <-chan *bugindex.Store) tea.Cmd {
	if channel == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-channel; !ok {
			return nil
		}
		return sourceEventMsg{}
	}
}

// loadSnapshot re-derives every view from store and restores the
// selection by ID. Trend diagnostics are logged from the returned
// command rather than here: the log handler sends into the program,
// which must not happen on the Update goroutine.
func (model *Model) loadSnapshot(store *bugindex.Store) tea.Cmd {
	model.store = store
	model.analytics = store.Analyze(model.hotspotLimit)
	model.recent = store.Recent(recentBurialCount)
	model.homeCursor = min(model.homeCursor, max(len(model.recent)-1, 0))
	model.applyFilter(false)
	model.renderAnalyticsView()

	diagnostics := bugindex.TimestampErrors(model.analytics.TrendErr)
	if len(diagnostics) == 0 {
		return nil
	}
	logger := model.logger
	return func() tea.Msg {
		for _, diagnostic := range diagnostics {
			logger.Warn("bug excluded from time-to-fix trend",
				"bug", diagnostic.BugID,
				"field", diagnostic.Field,
				"error", diagnostic.Err,
			)
		}
		return nil
	}
}

// applyFilter recomputes the filtered list. With resetCursor the
// selection moves to the first result (the criteria changed);
// otherwise the selected ID is kept when it is still listed.
func (model *Model) applyFilter(resetCursor bool) {
	model.bugs = model.store.List(model.filter.Criteria)
	model.highlights = make(map[string][]int)
	if strings.TrimSpace(model.filter.Criteria.Search) != "" {
		for index := range model.bugs {
			positions := searchHighlights(model.bugs[index].Title, model.filter.Criteria.Search)
			if len(positions) > 0 {
				model.highlights[model.bugs[index].ID] = positions
			}
		}
	}

	if resetCursor {
		model.cursor = 0
		model.scrollOffset = 0
		model.selectedID = ""
		if len(model.bugs) > 0 {
			model.selectedID = model.bugs[0].ID
		}
		model.syncDetailPane()
		return
	}
	model.restoreSelection()
}

// restoreSelection places the cursor on selectedID. When the ID is
// still in the store but filtered out, the bug now at the cursor is
// selected instead. When the ID vanished from the store entirely, the
// ID is kept so the detail pane shows the not-found fallback until
// the user moves.
func (model *Model) restoreSelection() {
	for index := range model.bugs {
		if model.bugs[index].ID == model.selectedID {
			model.cursor = index
			model.ensureCursorVisible()
			model.syncDetailPane()
			return
		}
	}

	model.cursor = model.clampedIndex(model.cursor)
	_, stillStored := model.store.Get(model.selectedID)
	if model.selectedID == "" || stillStored {
		model.selectedID = ""
		if len(model.bugs) > 0 {
			model.selectedID = model.bugs[model.cursor].ID
		}
	}
	model.ensureCursorVisible()
	model.syncDetailPane()
}

func (model *Model) clampedIndex(position int) int {
	if len(model.bugs) == 0 {
		return 0
	}
	return min(max(position, 0), len(model.bugs)-1)
}

// syncDetailPane shows the selected bug, or the not-found fallback
// when the store has no record with the selected ID.
func (model *Model) syncDetailPane() {
	if model.selectedID == "" {
		model.detailPane.Clear()
		return
	}
	record, found := model.store.Get(model.selectedID)
	if !found {
		model.detailPane.SetNotFound(model.selectedID)
		return
	}
	model.detailPane.SetBug(record, model.clock.Now())
}

// Update implements tea.Model. Routes keyboard events based on the
// active tab and focus region and handles layout changes.
func (model Model) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch message := message.(type) {
	case tea.KeyMsg:
		if model.focusRegion == FocusSearch {
			return model.handleSearchKeys(message)
		}
		if model.focusRegion == FocusDropdown {
			return model.handleDropdownKeys(message)
		}

		switch {
		case key.Matches(message, model.keys.Quit):
			return model, tea.Quit
		case key.Matches(message, model.keys.TabGraveyard):
			model.switchTab(TabGraveyard)
		case key.Matches(message, model.keys.TabBugs):
			model.switchTab(TabBugs)
		case key.Matches(message, model.keys.TabAnalytics):
			model.switchTab(TabAnalytics)
		default:
			switch model.activeTab {
			case TabGraveyard:
				model.handleGraveyardKeys(message)
			case TabBugs:
				model.handleBugsKeys(message)
			case TabAnalytics:
				model.handleAnalyticsKeys(message)
			}
		}

	case tea.WindowSizeMsg:
		model.width = message.Width
		model.height = message.Height
		model.ready = true
		model.updatePaneSizes()
		model.renderAnalyticsView()
		model.syncDetailPane()

	case sourceEventMsg:
		return model.handleSourceEvent()

	case heatTickMsg:
		if model.heatTracker.HasHot(model.clock.Now()) {
			return model, model.scheduleHeatTick()
		}
		model.tickRunning = false

	case logRecordMsg:
		model.statusSequence++
		model.statusMessage = message.Summary
		model.statusLevel = message.Level
		sequence := model.statusSequence
		fadeClock := model.clock
		return model, func() tea.Msg {
			<-fadeClock.After(logRecordFadeDelay)
			return logRecordFadeMsg{sequence: sequence}
		}

	case logRecordFadeMsg:
		if message.sequence == model.statusSequence {
			model.statusMessage = ""
		}
	}
	return model, nil
}

func (model *Model) switchTab(tab Tab) {
	model.activeTab = tab
	if tab == TabAnalytics {
		model.analyticsView.GotoTop()
	}
}

func (model *Model) handleGraveyardKeys(message tea.KeyMsg) {
	switch {
	case key.Matches(message, model.keys.Up):
		if model.homeCursor > 0 {
			model.homeCursor--
		}
	case key.Matches(message, model.keys.Down):
		if model.homeCursor < len(model.recent)-1 {
			model.homeCursor++
		}
	case key.Matches(message, model.keys.Select):
		if model.homeCursor < len(model.recent) {
			model.openBug(model.recent[model.homeCursor].ID)
		}
	}
}

// openBug shows bugID on the All Bugs tab with the detail pane
// focused. The filter is reset so the bug is guaranteed to be listed.
func (model *Model) openBug(bugID string) {
	model.filter.Reset()
	model.activeTab = TabBugs
	model.selectedID = bugID
	model.applyFilter(false)
	model.focusRegion = FocusDetail
}

func (model *Model) handleAnalyticsKeys(message tea.KeyMsg) {
	switch {
	case key.Matches(message, model.keys.Up):
		model.analyticsView.SetYOffset(model.analyticsView.YOffset - 1)
	case key.Matches(message, model.keys.Down):
		model.analyticsView.SetYOffset(model.analyticsView.YOffset + 1)
	case key.Matches(message, model.keys.PageUp):
		model.analyticsView.SetYOffset(model.analyticsView.YOffset - model.analyticsView.Height)
	case key.Matches(message, model.keys.PageDown):
		model.analyticsView.SetYOffset(model.analyticsView.YOffset + model.analyticsView.Height)
	case key.Matches(message, model.keys.Home):
		model.analyticsView.GotoTop()
	case key.Matches(message, model.keys.End):
		model.analyticsView.GotoBottom()
	}
}

func (model *Model) handleBugsKeys(message tea.KeyMsg) {
	switch {
	case key.Matches(message, model.keys.FocusToggle):
		if model.focusRegion == FocusList {
			model.focusRegion = FocusDetail
		} else {
			model.focusRegion = FocusList
		}

	case key.Matches(message, model.keys.SplitGrow):
		model.splitRatio = min(model.splitRatio+splitRatioStep, splitRatioMax)
		model.updatePaneSizes()

	case key.Matches(message, model.keys.SplitShrink):
		model.splitRatio = max(model.splitRatio-splitRatioStep, splitRatioMin)
		model.updatePaneSizes()

	case key.Matches(message, model.keys.Search):
		model.priorFocus = model.focusRegion
		model.focusRegion = FocusSearch
		model.filter.Active = true

	case key.Matches(message, model.keys.SeverityFilter):
		model.openDropdown(fieldSeverity)

	case key.Matches(message, model.keys.StatusFilter):
		model.openDropdown(fieldStatus)

	case key.Matches(message, model.keys.ModuleFilter):
		model.openDropdown(fieldModule)

	case key.Matches(message, model.keys.ClearFilters):
		model.filter.Reset()
		model.applyFilter(true)

	case model.focusRegion == FocusList:
		model.handleListKeys(message)

	default:
		model.handleDetailKeys(message)
	}
}

func (model *Model) handleListKeys(message tea.KeyMsg) {
	switch {
	case key.Matches(message, model.keys.Up):
		model.moveCursor(model.cursor - 1)
	case key.Matches(message, model.keys.Down):
		model.moveCursor(model.cursor + 1)
	case key.Matches(message, model.keys.PageUp):
		model.moveCursor(model.cursor - model.visibleHeight())
	case key.Matches(message, model.keys.PageDown):
		model.moveCursor(model.cursor + model.visibleHeight())
	case key.Matches(message, model.keys.Home):
		model.moveCursor(0)
	case key.Matches(message, model.keys.End):
		model.moveCursor(len(model.bugs) - 1)
	case key.Matches(message, model.keys.Select):
		model.focusRegion = FocusDetail
	}
}

func (model *Model) moveCursor(position int) {
	if len(model.bugs) == 0 {
		return
	}
	model.cursor = model.clampedIndex(position)
	model.selectedID = model.bugs[model.cursor].ID
	model.ensureCursorVisible()
	model.syncDetailPane()
}

func (model *Model) handleDetailKeys(message tea.KeyMsg) {
	switch {
	case key.Matches(message, model.keys.Up):
		model.detailPane.ScrollUp(1)
	case key.Matches(message, model.keys.Down):
		model.detailPane.ScrollDown(1)
	case key.Matches(message, model.keys.PageUp):
		model.detailPane.ScrollUp(model.detailPane.PageSize())
	case key.Matches(message, model.keys.PageDown):
		model.detailPane.ScrollDown(model.detailPane.PageSize())
	case key.Matches(message, model.keys.Home):
		model.detailPane.GotoTop()
	case key.Matches(message, model.keys.End):
		model.detailPane.GotoBottom()
	}
}

// handleSearchKeys processes keystrokes while the search input has
// focus. Typed characters (including q and the filter shortcuts) go
// to the input. Esc clears the text, or leaves search mode when it is
// already empty. Enter confirms and returns focus to the list.
func (model Model) handleSearchKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case message.Type == tea.KeyCtrlC:
		return model, tea.Quit

	case message.Type == tea.KeyEsc:
		if model.filter.Criteria.Search != "" {
			model.filter.Criteria.Search = ""
			model.applyFilter(true)
		} else {
			model.filter.Active = false
			model.focusRegion = model.priorFocus
		}

	case message.Type == tea.KeyEnter:
		model.filter.Active = false
		model.focusRegion = FocusList

	case message.Type == tea.KeyBackspace:
		if model.filter.HandleBackspace() {
			model.applyFilter(true)
		}

	case message.Type == tea.KeyRunes || message.Type == tea.KeySpace:
		for _, character := range message.Runes {
			model.filter.HandleRune(character)
		}
		model.applyFilter(true)
	}
	return model, nil
}

// openDropdown opens the selector for field, anchored under its chip
// in the filter bar. The module selector narrows by fuzzy typing.
func (model *Model) openDropdown(field string) {
	options := model.filter.Options(field, model.store)
	dropdown := tui.NewDropdown(field, options, model.filter.Value(field), field == fieldModule)
	dropdown.AnchorX = model.filter.selectorColumn(field)
	dropdown.AnchorY = 2
	model.activeDropdown = dropdown
	model.priorFocus = model.focusRegion
	model.focusRegion = FocusDropdown
}

func (model *Model) dismissDropdown() {
	model.activeDropdown = nil
	model.focusRegion = model.priorFocus
}

// handleDropdownKeys routes input to the open dropdown. Arrow keys
// move; j/k move too unless the dropdown takes typed text.
func (model Model) handleDropdownKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	dropdown := model.activeDropdown
	if dropdown == nil {
		model.focusRegion = model.priorFocus
		return model, nil
	}

	switch {
	case message.Type == tea.KeyCtrlC:
		return model, tea.Quit

	case message.Type == tea.KeyEsc:
		model.dismissDropdown()

	case message.Type == tea.KeyUp:
		dropdown.MoveUp()

	case message.Type == tea.KeyDown:
		dropdown.MoveDown()

	case message.Type == tea.KeyEnter:
		if selected, ok := dropdown.Selected(); ok {
			model.filter.SetValue(dropdown.Field, selected.Value)
			model.applyFilter(true)
		}
		model.dismissDropdown()

	case message.Type == tea.KeyBackspace:
		dropdown.Backspace()

	case dropdown.Fuzzy && (message.Type == tea.KeyRunes || message.Type == tea.KeySpace):
		for _, character := range message.Runes {
			dropdown.TypeRune(character)
		}

	case key.Matches(message, model.keys.Up):
		dropdown.MoveUp()

	case key.Matches(message, model.keys.Down):
		dropdown.MoveDown()

	case key.Matches(message, model.keys.Quit):
		model.dismissDropdown()
	}
	return model, nil
}

// handleSourceEvent swaps in the source's latest snapshot. Bugs that
// are new or whose content changed glow for a few seconds.
func (model Model) handleSourceEvent() (tea.Model, tea.Cmd) {
	commands := []tea.Cmd{listenForSourceEvent(model.eventChannel)}

	store := model.source.Snapshot()
	if store == model.store {
		return model, tea.Batch(commands...)
	}

	now := model.clock.Now()
	for _, record := range store.All() {
		previous, existed := model.store.Get(record.ID)
		if !existed || !reflect.DeepEqual(previous, record) {
			model.heatTracker.Ignite(record.ID, now)
		}
	}

	commands = append(commands, model.loadSnapshot(store))
	if !model.tickRunning && model.heatTracker.HasHot(now) {
		model.tickRunning = true
		commands = append(commands, model.scheduleHeatTick())
	}
	return model, tea.Batch(commands...)
}

func (model Model) scheduleHeatTick() tea.Cmd {
	tickClock := model.clock
	return func() tea.Msg {
		<-tickClock.After(tui.HeatTickInterval)
		return heatTickMsg{}
	}
}

// --- Layout ---

// contentHeight is the height between the tab bar and the bottom
// separator.
func (model Model) contentHeight() int {
	return max(model.height-3, 1)
}

// visibleHeight is the number of list rows on the All Bugs tab (the
// content area minus the filter bar).
func (model Model) visibleHeight() int {
	return max(model.contentHeight()-1, 1)
}

func (model Model) listWidth() int {
	return int(float64(model.width) * model.splitRatio)
}

func (model *Model) updatePaneSizes() {
	detailWidth := max(model.width-model.listWidth()-1, 10)
	model.detailPane.SetSize(detailWidth, model.visibleHeight())
	model.ensureCursorVisible()
}

func (model *Model) ensureCursorVisible() {
	visible := model.visibleHeight()
	if model.cursor < model.scrollOffset {
		model.scrollOffset = model.cursor
	}
	if model.cursor >= model.scrollOffset+visible {
		model.scrollOffset = model.cursor - visible + 1
	}
	maxOffset := max(len(model.bugs)-visible, 0)
	model.scrollOffset = min(max(model.scrollOffset, 0), maxOffset)
}

// renderAnalyticsView re-renders the dashboard into its viewport at
// the current width.
func (model *Model) renderAnalyticsView() {
	model.analyticsView.Width = max(model.width-3, 1)
	model.analyticsView.Height = model.contentHeight()
	model.analyticsView.SetContent(renderAnalytics(model.theme, model.analytics, max(model.width-3, 20)))
}

// --- Rendering ---

// View implements tea.Model.
func (model Model) View() string {
	if !model.ready {
		return "Loading..."
	}

	sections := []string{model.renderHeader()}
	switch model.activeTab {
	case TabGraveyard:
		content := renderGraveyard(model.theme, model.analytics, model.recent, model.homeCursor, max(model.width-2, 10))
		sections = append(sections, lipgloss.NewStyle().
			Padding(0, 1).
			Width(model.width).
			Height(model.contentHeight()).
			MaxHeight(model.contentHeight()).
			Render(content))

	case TabAnalytics:
		body := lipgloss.NewStyle().PaddingLeft(1).Width(model.width - 1).Height(model.contentHeight()).
			Render(model.analyticsView.View())
		scrollbar := tui.RenderScrollbar(model.theme, model.contentHeight(),
			model.analyticsView.TotalLineCount(), model.analyticsView.Height, model.analyticsView.YOffset, true)
		sections = append(sections, lipgloss.JoinHorizontal(lipgloss.Top, body, scrollbar))

	case TabBugs:
		sections = append(sections, model.filter.View(model.theme, model.width, len(model.bugs)))
		contentArea := lipgloss.JoinHorizontal(lipgloss.Top,
			model.renderListPane(),
			model.renderDivider(),
			model.detailPane.View(model.focusRegion == FocusDetail),
		)
		sections = append(sections, contentArea)
	}

	sections = append(sections, lipgloss.NewStyle().
		Foreground(model.theme.BorderColor).
		Render(strings.Repeat("─", model.width)))
	sections = append(sections, model.renderHelp())

	output := strings.Join(sections, "\n")
	if model.activeDropdown != nil {
		output = tui.SpliceOverlay(output, model.activeDropdown.Render(model.theme),
			model.activeDropdown.AnchorX, model.activeDropdown.AnchorY)
	}
	return output
}

// renderListPane renders the filtered list, or the empty state.
func (model Model) renderListPane() string {
	listWidth := model.listWidth()
	height := model.visibleHeight()

	if len(model.bugs) == 0 {
		empty := lipgloss.NewStyle().Foreground(model.theme.FaintText).Render("No bugs found")
		hint := lipgloss.NewStyle().Foreground(model.theme.HelpText).Render("esc clears the filters")
		return lipgloss.Place(listWidth, height, lipgloss.Center, lipgloss.Center, empty+"\n"+hint)
	}

	now := model.clock.Now()
	rowWidth := listWidth - 1
	var rows []string
	for index := model.scrollOffset; index < len(model.bugs) && index < model.scrollOffset+height; index++ {
		record := &model.bugs[index]
		rows = append(rows, renderListRow(model.theme, listRow{
			record:     record,
			selected:   index == model.cursor,
			focused:    model.focusRegion == FocusList,
			hot:        model.heatTracker.Heat(record.ID, now) > 0,
			highlights: model.highlights[record.ID],
		}, rowWidth))
	}
	list := lipgloss.NewStyle().Width(rowWidth).Height(height).Render(strings.Join(rows, "\n"))
	scrollbar := tui.RenderScrollbar(model.theme, height, len(model.bugs), height, model.scrollOffset,
		model.focusRegion == FocusList)
	return lipgloss.JoinHorizontal(lipgloss.Top, list, scrollbar)
}

func (model Model) renderDivider() string {
	style := lipgloss.NewStyle().Foreground(model.theme.BorderColor)
	lines := make([]string, model.visibleHeight())
	for index := range lines {
		lines[index] = style.Render("│")
	}
	return strings.Join(lines, "\n")
}

var tabDefinitions = []struct {
	tab   Tab
	label string
}{
	{TabGraveyard, "1:Graveyard"},
	{TabBugs, "2:All Bugs"},
	{TabAnalytics, "3:Analytics"},
}

// renderHeader renders the tab bar in btop style:
// "─── 1:Graveyard ─── 2:All Bugs ─── 3:Analytics ──── 8 bugs · 1a2b3c4d ─".
func (model Model) renderHeader() string {
	lineStyle := lipgloss.NewStyle().Foreground(model.theme.BorderColor)
	activeStyle := lipgloss.NewStyle().Bold(true).Foreground(model.theme.Accent)
	inactiveStyle := lipgloss.NewStyle().Foreground(model.theme.FaintText)

	var builder strings.Builder
	for _, definition := range tabDefinitions {
		builder.WriteString(lineStyle.Render("─── "))
		if definition.tab == model.activeTab {
			builder.WriteString(activeStyle.Render(definition.label))
		} else {
			builder.WriteString(inactiveStyle.Render(definition.label))
		}
		builder.WriteString(" ")
	}
	left := builder.String()

	stats := fmt.Sprintf(" %d bugs · %s ", model.store.Len(), model.store.Fingerprint().Short())
	statsRendered := lipgloss.NewStyle().Foreground(model.theme.HeaderForeground).Render(stats) + lineStyle.Render("─")
	fill := model.width - ansi.StringWidth(left) - ansi.StringWidth(stats) - 1
	if fill < 1 {
		return ansi.Truncate(left, model.width, "")
	}
	return left + lineStyle.Render(strings.Repeat("─", fill)) + statsRendered
}

// renderHelp renders the bottom line: a recent log message while one
// is showing, otherwise the key help for the current context.
func (model Model) renderHelp() string {
	if model.statusMessage != "" {
		color := model.theme.WarningText
		if model.statusLevel >= slog.LevelError {
			color = model.theme.SeverityCritical
		}
		return lipgloss.NewStyle().Foreground(color).
			Render(ansi.Truncate(" "+model.statusMessage, model.width, "…"))
	}

	var help string
	switch {
	case model.focusRegion == FocusSearch && model.activeTab == TabBugs:
		help = " [SEARCH] type to filter  enter done  esc clear  ctrl+c quit"
	case model.focusRegion == FocusDropdown && model.activeTab == TabBugs:
		help = " [SELECT] ↑/↓ move  enter choose  esc cancel"
		if model.activeDropdown != nil && model.activeDropdown.Fuzzy {
			help = " [SELECT] type to narrow  ↑/↓ move  enter choose  esc cancel"
		}
	case model.activeTab == TabGraveyard:
		help = " j/k move  enter open  1-3 tabs  q quit"
	case model.activeTab == TabAnalytics:
		help = " j/k scroll  pgup/pgdn page  g/G top/bottom  1-3 tabs  q quit"
	case model.focusRegion == FocusDetail:
		help = " [DETAIL] j/k scroll  tab list  / search  s/t/m filter  esc clear  [/] split  q quit"
	default:
		help = " [LIST] j/k move  enter open  tab detail  / search  s/t/m filter  esc clear  [/] split  q quit"
	}
	return lipgloss.NewStyle().Foreground(model.theme.HelpText).Render(ansi.Truncate(help, model.width, "…"))
}
