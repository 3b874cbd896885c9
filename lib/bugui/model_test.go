// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package bugui

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/bureau-foundation/graveyard/lib/bugindex"
	"github.com/bureau-foundation/graveyard/lib/clock"
	"github.com/bureau-foundation/graveyard/lib/schema/bug"
	"github.com/bureau-foundation/graveyard/lib/testutil"
)

func TestViewBeforeWindowSize(t *testing.T) {
	model := NewModel(NewStoreSource(bugindex.MustSeed()), Options{})
	if got := model.View(); got != "Loading..." {
		t.Fatalf("View() before sizing = %q, want Loading...", got)
	}
}

func TestNewModelSelectsFirstBug(t *testing.T) {
	model, _ := newTestModel(t, TabBugs)
	if model.SelectedID() != "BUG-001" {
		t.Fatalf("SelectedID() = %q, want BUG-001", model.SelectedID())
	}
	if !strings.Contains(plainView(model), "The Null Pointer of Doom") {
		t.Fatal("detail pane does not show the first bug")
	}
}

func TestParseTab(t *testing.T) {
	for name, want := range map[string]Tab{"graveyard": TabGraveyard, "bugs": TabBugs, "analytics": TabAnalytics} {
		got, err := ParseTab(name)
		if err != nil || got != want {
			t.Errorf("ParseTab(%q) = %v, %v, want %v", name, got, err, want)
		}
	}
	if _, err := ParseTab("home"); err == nil {
		t.Error("ParseTab(home) succeeded")
	}
}

// --- Tabs ---

func TestTabSwitching(t *testing.T) {
	model, _ := newTestModel(t, TabGraveyard)
	if !strings.Contains(plainView(model), "Recent Burials") {
		t.Fatal("graveyard tab does not list recent burials")
	}

	model, _ = press(t, model, "2")
	if model.ActiveTab() != TabBugs {
		t.Fatalf("after 2: ActiveTab() = %v, want TabBugs", model.ActiveTab())
	}
	if !strings.Contains(plainView(model), "8 bugs found") {
		t.Fatal("bugs tab does not show the result count")
	}

	model, _ = press(t, model, "3")
	if model.ActiveTab() != TabAnalytics {
		t.Fatalf("after 3: ActiveTab() = %v, want TabAnalytics", model.ActiveTab())
	}
	if !strings.Contains(plainView(model), "Resolution Rate") {
		t.Fatal("analytics tab does not show the summary cards")
	}

	model, _ = press(t, model, "1")
	if model.ActiveTab() != TabGraveyard {
		t.Fatalf("after 1: ActiveTab() = %v, want TabGraveyard", model.ActiveTab())
	}
}

func TestQuit(t *testing.T) {
	model, _ := newTestModel(t, TabGraveyard)
	_, command := press(t, model, "q")
	if command == nil {
		t.Fatal("q returned no command")
	}
	if _, ok := command().(tea.QuitMsg); !ok {
		t.Fatal("q did not quit")
	}
}

func TestGraveyardTab(t *testing.T) {
	model, _ := newTestModel(t, TabGraveyard)
	model = resize(model, 140, 80)
	view := plainView(model)
	for _, want := range []string{"Total Bugs", "Still Haunting", "Lessons Learned", "Recent Burials", "At a Glance", "Severity Distribution", "Time to Fix Trend"} {
		if !strings.Contains(view, want) {
			t.Errorf("graveyard view missing %q", want)
		}
	}
	if strings.Index(view, "At a Glance") < strings.Index(view, "Recent Burials") {
		t.Error("At a Glance is drawn above Recent Burials")
	}
}

func TestGraveyardEnterOpensBug(t *testing.T) {
	model, _ := newTestModel(t, TabGraveyard)
	model, _ = press(t, model, "j", "enter")

	if model.ActiveTab() != TabBugs {
		t.Fatalf("ActiveTab() = %v, want TabBugs", model.ActiveTab())
	}
	if model.SelectedID() != "BUG-002" {
		t.Fatalf("SelectedID() = %q, want BUG-002", model.SelectedID())
	}
	if model.focusRegion != FocusDetail {
		t.Fatalf("focusRegion = %v, want FocusDetail", model.focusRegion)
	}
}

func TestGraveyardOpenResetsFilter(t *testing.T) {
	model, _ := newTestModel(t, TabBugs)
	model, _ = press(t, model, "/", "timezone", "enter", "1", "enter")
	if model.SelectedID() != "BUG-001" {
		t.Fatalf("SelectedID() = %q, want BUG-001", model.SelectedID())
	}
	if len(model.bugs) != 8 {
		t.Fatalf("listed %d bugs, want the filter reset to all 8", len(model.bugs))
	}
}

// --- List navigation ---

func TestCursorMovementSelectsBug(t *testing.T) {
	model, _ := newTestModel(t, TabBugs)
	model, _ = press(t, model, "j", "j")
	if model.SelectedID() != "BUG-003" {
		t.Fatalf("SelectedID() = %q, want BUG-003", model.SelectedID())
	}
	if !strings.Contains(plainView(model), "The CSS Z-Index Apocalypse") {
		t.Fatal("detail pane does not follow the cursor")
	}

	model, _ = press(t, model, "G")
	if model.SelectedID() != "BUG-008" {
		t.Fatalf("after G: SelectedID() = %q, want BUG-008", model.SelectedID())
	}
	model, _ = press(t, model, "j")
	if model.SelectedID() != "BUG-008" {
		t.Fatalf("moving past the end: SelectedID() = %q, want BUG-008", model.SelectedID())
	}
	model, _ = press(t, model, "g")
	if model.SelectedID() != "BUG-001" {
		t.Fatalf("after g: SelectedID() = %q, want BUG-001", model.SelectedID())
	}
}

func TestFocusToggleRoutesKeysToDetail(t *testing.T) {
	model, _ := newTestModel(t, TabBugs)
	model, _ = press(t, model, "tab", "j")
	if model.focusRegion != FocusDetail {
		t.Fatalf("focusRegion = %v, want FocusDetail", model.focusRegion)
	}
	if model.SelectedID() != "BUG-001" {
		t.Fatalf("j in the detail pane moved the list to %q", model.SelectedID())
	}
}

func TestSplitKeysClamp(t *testing.T) {
	model, _ := newTestModel(t, TabBugs)
	for range 20 {
		model, _ = press(t, model, "]")
	}
	if model.splitRatio != splitRatioMax {
		t.Fatalf("splitRatio = %v, want %v", model.splitRatio, splitRatioMax)
	}
	for range 20 {
		model, _ = press(t, model, "[")
	}
	if model.splitRatio < splitRatioMin-1e-9 || model.splitRatio > splitRatioMin+1e-9 {
		t.Fatalf("splitRatio = %v, want %v", model.splitRatio, splitRatioMin)
	}
}

// --- Filtering ---

func TestSearchFiltersList(t *testing.T) {
	model, _ := newTestModel(t, TabBugs)
	model, _ = press(t, model, "/", "timezone")

	requireListed(t, model, "BUG-005")
	if model.SelectedID() != "BUG-005" {
		t.Fatalf("SelectedID() = %q, want BUG-005", model.SelectedID())
	}
	if !strings.Contains(plainView(model), "1 bug found") {
		t.Fatal("count does not read 1 bug found")
	}
	if positions := model.highlights["BUG-005"]; len(positions) != len("timezone") {
		t.Fatalf("highlights = %v, want the 8 runes of Timezone", positions)
	}

	model, _ = press(t, model, "enter")
	if model.focusRegion != FocusList || model.filter.Active {
		t.Fatal("enter did not leave search mode")
	}
}

func TestSearchTypesFilterShortcuts(t *testing.T) {
	model, _ := newTestModel(t, TabBugs)
	model, command := press(t, model, "/", "q", "s", "m", "t")
	if command != nil {
		t.Fatal("q in search mode returned a command")
	}
	if model.filter.Criteria.Search != "qsmt" {
		t.Fatalf("Search = %q, want qsmt", model.filter.Criteria.Search)
	}
	if model.activeDropdown != nil {
		t.Fatal("s in search mode opened a dropdown")
	}
}

func TestSearchEscClearsThenExits(t *testing.T) {
	model, _ := newTestModel(t, TabBugs)
	model, _ = press(t, model, "/", "leak", "esc")
	if model.filter.Criteria.Search != "" || model.focusRegion != FocusSearch {
		t.Fatalf("first esc: search = %q, focus = %v; want cleared text, still searching",
			model.filter.Criteria.Search, model.focusRegion)
	}
	model, _ = press(t, model, "esc")
	if model.focusRegion != FocusList {
		t.Fatalf("second esc: focus = %v, want FocusList", model.focusRegion)
	}
}

func TestSearchBackspace(t *testing.T) {
	model, _ := newTestModel(t, TabBugs)
	model, _ = press(t, model, "/", "leakx")
	requireListed(t, model)
	model, _ = press(t, model, "backspace")
	if model.filter.Criteria.Search != "leak" {
		t.Fatalf("Search = %q, want leak", model.filter.Criteria.Search)
	}
	if len(model.bugs) == 0 {
		t.Fatal("backspace did not re-run the filter")
	}
}

func TestNoBugsFoundEmptyState(t *testing.T) {
	model, _ := newTestModel(t, TabBugs)
	model, _ = press(t, model, "/", "zzzqqq")
	view := plainView(model)
	if !strings.Contains(view, "No bugs found") {
		t.Fatal("empty result does not render No bugs found")
	}
	if !strings.Contains(view, "0 bugs found") {
		t.Fatal("empty result count missing")
	}
	if model.SelectedID() != "" {
		t.Fatalf("SelectedID() = %q, want none", model.SelectedID())
	}
}

func TestSeverityDropdown(t *testing.T) {
	model, _ := newTestModel(t, TabBugs)
	model, _ = press(t, model, "s")
	if model.activeDropdown == nil || model.focusRegion != FocusDropdown {
		t.Fatal("s did not open the severity dropdown")
	}
	if !strings.Contains(plainView(model), "Critical") {
		t.Fatal("dropdown is not drawn")
	}

	model, _ = press(t, model, "j", "enter")
	if model.activeDropdown != nil {
		t.Fatal("enter did not close the dropdown")
	}
	if model.filter.Criteria.Severity != string(bug.SeverityCritical) {
		t.Fatalf("Severity = %q, want critical", model.filter.Criteria.Severity)
	}
	requireListed(t, model, "BUG-001", "BUG-002", "BUG-006", "BUG-008")
}

func TestStatusDropdownEscapeKeepsCriteria(t *testing.T) {
	model, _ := newTestModel(t, TabBugs)
	model, _ = press(t, model, "t", "j", "esc")
	if model.activeDropdown != nil {
		t.Fatal("esc did not close the dropdown")
	}
	if model.filter.Criteria.Status != bugindex.All {
		t.Fatalf("Status = %q, want all after cancel", model.filter.Criteria.Status)
	}
	if model.focusRegion != FocusList {
		t.Fatalf("focusRegion = %v, want FocusList restored", model.focusRegion)
	}
}

func TestModuleDropdownFuzzyNarrowing(t *testing.T) {
	model, _ := newTestModel(t, TabBugs)
	model, _ = press(t, model, "m", "paym")
	if model.activeDropdown == nil || model.activeDropdown.Query != "paym" {
		t.Fatal("typing did not narrow the module dropdown")
	}
	model, _ = press(t, model, "enter")
	if model.filter.Criteria.Module != "Payment Service" {
		t.Fatalf("Module = %q, want Payment Service", model.filter.Criteria.Module)
	}
	requireListed(t, model, "BUG-002", "BUG-006")
}

func TestEscClearsAllCriteria(t *testing.T) {
	model, _ := newTestModel(t, TabBugs)
	model, _ = press(t, model, "s", "j", "enter", "/", "race", "enter")
	requireListed(t, model, "BUG-006")

	model, _ = press(t, model, "esc")
	if model.filter.Criteria != bugindex.DefaultCriteria() {
		t.Fatalf("Criteria = %+v, want defaults", model.filter.Criteria)
	}
	if len(model.bugs) != 8 {
		t.Fatalf("listed %d bugs, want 8", len(model.bugs))
	}
}

// --- Live reload ---

func TestReloadPreservesSelection(t *testing.T) {
	model, harness := newTestModel(t, TabBugs)
	model, _ = press(t, model, "j", "j")

	bugs := bugindex.MustSeed().All()
	bugs[2].Title = "The CSS Z-Index Apocalypse, Revisited"
	reordered := append([]bug.Bug{bugs[7]}, bugs[:7]...)
	harness.source.Replace(mustStore(t, reordered))

	updated, command := model.Update(sourceEventMsg{})
	model = updated.(Model)
	if command == nil {
		t.Fatal("reload returned no command (listener and heat tick expected)")
	}
	if model.SelectedID() != "BUG-003" {
		t.Fatalf("SelectedID() = %q, want BUG-003 preserved", model.SelectedID())
	}
	if model.cursor != 3 {
		t.Fatalf("cursor = %d, want 3 (BUG-003's new position)", model.cursor)
	}
	if !strings.Contains(plainView(model), "Revisited") {
		t.Fatal("detail pane was not re-rendered from the new snapshot")
	}

	now := harness.clock.Now()
	if model.heatTracker.Heat("BUG-003", now) == 0 {
		t.Fatal("changed bug is not glowing")
	}
	if model.heatTracker.Heat("BUG-004", now) != 0 {
		t.Fatal("unchanged bug is glowing")
	}
	if !model.tickRunning {
		t.Fatal("heat tick not started")
	}
}

func TestReloadVanishedSelectionShowsNotFound(t *testing.T) {
	model, harness := newTestModel(t, TabBugs)
	model, _ = press(t, model, "j", "j")

	bugs := bugindex.MustSeed().All()
	remaining := append(append([]bug.Bug{}, bugs[:2]...), bugs[3:]...)
	harness.source.Replace(mustStore(t, remaining))

	updated, _ := model.Update(sourceEventMsg{})
	model = updated.(Model)
	if model.SelectedID() != "BUG-003" {
		t.Fatalf("SelectedID() = %q, want the vanished BUG-003 kept", model.SelectedID())
	}
	if !strings.Contains(plainView(model), "Bug not found: BUG-003") {
		t.Fatal("detail pane does not show the not-found fallback")
	}

	model, _ = press(t, model, "j")
	if model.SelectedID() == "BUG-003" {
		t.Fatal("moving the cursor did not leave the vanished bug")
	}
}

func TestSourceEventWithoutChangeOnlyRelistens(t *testing.T) {
	model, _ := newTestModel(t, TabBugs)
	updated, command := model.Update(sourceEventMsg{})
	model = updated.(Model)
	if command == nil {
		t.Fatal("no re-listen command")
	}
	if model.tickRunning {
		t.Fatal("heat tick started without a change")
	}
}

func TestListenForSourceEvent(t *testing.T) {
	source := NewStoreSource(bugindex.MustSeed())
	command := listenForSourceEvent(source.Subscribe())
	result := make(chan tea.Msg, 1)
	go func() { result <- command() }()

	source.Replace(mustStore(t, bugindex.MustSeed().Recent(2)))
	message := testutil.RequireReceive(t, result, 5*time.Second, "waiting for source event")
	if _, ok := message.(sourceEventMsg); !ok {
		t.Fatalf("message = %T, want sourceEventMsg", message)
	}
}

func TestHeatTickStopsWhenCold(t *testing.T) {
	model, harness := newTestModel(t, TabBugs)
	model.heatTracker.Ignite("BUG-001", harness.clock.Now())
	model.tickRunning = true

	updated, command := model.Update(heatTickMsg{})
	model = updated.(Model)
	if command == nil {
		t.Fatal("tick while hot did not reschedule")
	}

	harness.clock.Advance(6 * time.Second)
	updated, command = model.Update(heatTickMsg{})
	model = updated.(Model)
	if command != nil || model.tickRunning {
		t.Fatal("tick kept running after heat decayed")
	}
}

// --- Status bar ---

func TestLogRecordShownAndFades(t *testing.T) {
	model, harness := newTestModel(t, TabBugs)
	updated, command := model.Update(logRecordMsg{Summary: "bug file reload failed", Level: slog.LevelWarn})
	model = updated.(Model)
	if !strings.Contains(plainView(model), "bug file reload failed") {
		t.Fatal("status bar does not show the log message")
	}

	result := make(chan tea.Msg, 1)
	go func() { result <- command() }()
	harness.clock.WaitForTimers(1)
	harness.clock.Advance(logRecordFadeDelay)
	fade := testutil.RequireReceive(t, result, 5*time.Second, "waiting for fade")

	updated, _ = model.Update(fade)
	model = updated.(Model)
	if strings.Contains(plainView(model), "bug file reload failed") {
		t.Fatal("log message did not fade")
	}
}

func TestOlderFadeKeepsNewerMessage(t *testing.T) {
	model, _ := newTestModel(t, TabBugs)
	updated, _ := model.Update(logRecordMsg{Summary: "first", Level: slog.LevelWarn})
	updated, _ = updated.(Model).Update(logRecordMsg{Summary: "second", Level: slog.LevelError})
	updated, _ = updated.(Model).Update(logRecordFadeMsg{sequence: 1})
	model = updated.(Model)
	if model.statusMessage != "second" {
		t.Fatalf("statusMessage = %q, want second", model.statusMessage)
	}
}

// --- Analytics ---

func TestAnalyticsTab(t *testing.T) {
	model, _ := newTestModel(t, TabAnalytics)
	model = resize(model, 140, 120)
	view := plainView(model)
	for _, want := range []string{"Total Bugs", "Resolved", "Resolution Rate", "88%", "23h", "Lessons Captured", "Module Hotspots", "Payment Service", "Status Overview", "Time to Fix Trend"} {
		if !strings.Contains(view, want) {
			t.Errorf("analytics view missing %q", want)
		}
	}
}

func TestAnalyticsScrolls(t *testing.T) {
	model, _ := newTestModel(t, TabAnalytics)
	model = resize(model, 140, 12)
	model, _ = press(t, model, "G")
	if model.analyticsView.YOffset == 0 {
		t.Fatal("G did not scroll the dashboard")
	}
	model, _ = press(t, model, "g")
	if model.analyticsView.YOffset != 0 {
		t.Fatalf("after g: YOffset = %d, want 0", model.analyticsView.YOffset)
	}
}

func TestTrendDiagnosticsAreLogged(t *testing.T) {
	bugs := bugindex.MustSeed().All()
	bugs[2].CreatedAt = "last tuesday"
	var logged bytes.Buffer
	model := NewModel(NewStoreSource(mustStore(t, bugs)), Options{
		Clock:  clock.Fake(testNow),
		Logger: slog.New(slog.NewTextHandler(&logged, nil)),
	})

	if model.pendingLog == nil {
		t.Fatal("no diagnostic log command")
	}
	model.pendingLog()
	if !strings.Contains(logged.String(), "bug=BUG-003") {
		t.Fatalf("log = %q, want a warning for BUG-003", logged.String())
	}

	model = resize(model, 140, 120)
	model, _ = press(t, model, "3")
	if !strings.Contains(plainView(model), "left out of the trend") {
		t.Fatal("analytics tab does not show the diagnostic warning")
	}
}
