// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package bugindex

import (
	"encoding/json"
	"errors"
	"math"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/bureau-foundation/graveyard/lib/schema/bug"
)

func requireCounts(t *testing.T, label string, got []Count, want []Count) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("%s = %v, want %v", label, got, want)
	}
	for index := range want {
		if got[index] != want[index] {
			t.Fatalf("%s[%d] = %v, want %v (full: %v)", label, index, got[index], want[index], got)
		}
	}
}

func sumCounts(counts []Count) int {
	total := 0
	for _, count := range counts {
		total += count.Count
	}
	return total
}

// --- SeverityDistribution / StatusOverview ---

func TestSeverityDistributionSeed(t *testing.T) {
	requireCounts(t, "SeverityDistribution", SeverityDistribution(seedBugs(t)), []Count{
		{"critical", 4}, {"high", 2}, {"medium", 2},
	})
}

func TestSeverityDistributionFirstSeenOrder(t *testing.T) {
	// Info appears before critical in the input, so it comes first
	// despite the canonical enumeration order.
	bugs := []bug.Bug{
		makeBug("1", bug.SeverityInfo, bug.StatusOpen),
		makeBug("2", bug.SeverityCritical, bug.StatusOpen),
		makeBug("3", bug.SeverityInfo, bug.StatusOpen),
	}
	requireCounts(t, "SeverityDistribution", SeverityDistribution(bugs), []Count{
		{"info", 2}, {"critical", 1},
	})
}

func TestStatusOverviewSeed(t *testing.T) {
	requireCounts(t, "StatusOverview", StatusOverview(seedBugs(t)), []Count{
		{"closed", 7}, {"open", 1},
	})
}

func TestGroupingConservesTotals(t *testing.T) {
	store := MustSeed()
	for _, criteria := range criteriaGrid(store) {
		subset := store.List(criteria)
		if got := sumCounts(SeverityDistribution(subset)); got != len(subset) {
			t.Fatalf("%+v: severity total %d, want %d", criteria, got, len(subset))
		}
		if got := sumCounts(StatusOverview(subset)); got != len(subset) {
			t.Fatalf("%+v: status total %d, want %d", criteria, got, len(subset))
		}
	}
}

// --- ModuleHotspots ---

func TestModuleHotspotsSeed(t *testing.T) {
	requireCounts(t, "ModuleHotspots", ModuleHotspots(seedBugs(t), HotspotLimit), []Count{
		{"Profile Service", 2},
		{"Payment Service", 2},
		{"Order Processing", 2},
		{"User Dashboard", 1},
		{"Avatar Component", 1},
		{"Billing API", 1},
	})
}

func TestModuleHotspotsMultiplicity(t *testing.T) {
	bugs := seedBugs(t)
	pairs := 0
	for _, record := range bugs {
		pairs += len(record.ImpactedModules)
	}
	// An unbounded limit exposes every counter.
	if got := sumCounts(ModuleHotspots(bugs, 1000)); got != pairs {
		t.Fatalf("hotspot total = %d, want %d (bug, module) pairs", got, pairs)
	}
	if pairs != 24 {
		t.Fatalf("seed has %d (bug, module) pairs, want 24", pairs)
	}
}

func TestModuleHotspotsTopN(t *testing.T) {
	bugs := []bug.Bug{
		makeBug("1", bug.SeverityLow, bug.StatusOpen, "A", "B", "C", "D", "E", "F", "G", "H"),
		makeBug("2", bug.SeverityLow, bug.StatusOpen, "H", "G"),
		makeBug("3", bug.SeverityLow, bug.StatusOpen, "H"),
	}
	got := ModuleHotspots(bugs, 0)
	if len(got) != HotspotLimit {
		t.Fatalf("len = %d, want %d", len(got), HotspotLimit)
	}
	requireCounts(t, "ModuleHotspots", got, []Count{
		{"H", 3}, {"G", 2}, {"A", 1}, {"B", 1}, {"C", 1}, {"D", 1},
	})

	requireCounts(t, "ModuleHotspots(limit 2)", ModuleHotspots(bugs, 2), []Count{{"H", 3}, {"G", 2}})
}

func TestModuleHotspotsBoundOverGrid(t *testing.T) {
	store := MustSeed()
	for _, criteria := range criteriaGrid(store) {
		subset := store.List(criteria)
		full := ModuleHotspots(subset, 1000)
		top := ModuleHotspots(subset, HotspotLimit)
		if len(top) > HotspotLimit {
			t.Fatalf("%+v: %d hotspots, want <= %d", criteria, len(top), HotspotLimit)
		}
		// The truncated list is exactly the prefix of the full sort,
		// so no omitted module outranks an included one.
		for index := range top {
			if top[index] != full[index] {
				t.Fatalf("%+v: top[%d] = %v, full[%d] = %v", criteria, index, top[index], index, full[index])
			}
		}
		for index := 1; index < len(full); index++ {
			if full[index-1].Count < full[index].Count {
				t.Fatalf("%+v: hotspots not descending: %v", criteria, full)
			}
		}
	}
}

// --- TimeToFixTrend ---

func TestTimeToFixTrendSeed(t *testing.T) {
	points, err := TimeToFixTrend(seedBugs(t))
	if err != nil {
		t.Fatalf("TimeToFixTrend: %v", err)
	}
	wantIDs := []string{"BUG-008", "BUG-001", "BUG-002", "BUG-003", "BUG-004", "BUG-005", "BUG-006"}
	wantHours := []float64{3, 5.5, 6, 22, 49, 69, 6}
	if len(points) != len(wantIDs) {
		t.Fatalf("len(points) = %d, want %d", len(points), len(wantIDs))
	}
	for index, point := range points {
		if point.BugID != wantIDs[index] || point.Hours != wantHours[index] {
			t.Errorf("points[%d] = %s/%v, want %s/%v", index, point.BugID, point.Hours, wantIDs[index], wantHours[index])
		}
		if point.BugID == "BUG-007" {
			t.Error("BUG-007 has no time_to_fix and must be excluded")
		}
		if index > 0 && points[index-1].CreatedAt.After(point.CreatedAt) {
			t.Errorf("points[%d] precedes points[%d] in time", index, index-1)
		}
	}
}

func TestTimeToFixTrendComparesInstants(t *testing.T) {
	// String order would put "2025-06-01T01:00:00+05:00" after
	// "2025-05-31T22:00:00Z"; as instants it is earlier (20:00Z).
	first := makeBug("late-string", bug.SeverityLow, bug.StatusClosed)
	first.CreatedAt = "2025-06-01T01:00:00+05:00"
	first.TimeToFix = bug.Hours(1)
	second := makeBug("early-string", bug.SeverityLow, bug.StatusClosed)
	second.CreatedAt = "2025-05-31T22:00:00Z"
	second.TimeToFix = bug.Hours(2)

	points, err := TimeToFixTrend([]bug.Bug{second, first})
	if err != nil {
		t.Fatal(err)
	}
	if points[0].BugID != "late-string" || points[1].BugID != "early-string" {
		t.Fatalf("order = %s, %s; want late-string, early-string", points[0].BugID, points[1].BugID)
	}
}

func TestTimeToFixTrendZeroHoursIsDefined(t *testing.T) {
	record := makeBug("instant", bug.SeverityInfo, bug.StatusClosed)
	record.TimeToFix = bug.Hours(0)
	points, err := TimeToFixTrend([]bug.Bug{record})
	if err != nil {
		t.Fatal(err)
	}
	if len(points) != 1 || points[0].Hours != 0 {
		t.Fatalf("points = %v, want one zero-hour point", points)
	}
}

func TestTimeToFixTrendMalformedTimestamp(t *testing.T) {
	good := makeBug("good", bug.SeverityLow, bug.StatusClosed)
	good.TimeToFix = bug.Hours(4)
	bad := makeBug("bad", bug.SeverityLow, bug.StatusClosed)
	bad.CreatedAt = "sometime in March"
	bad.TimeToFix = bug.Hours(8)
	worse := makeBug("worse", bug.SeverityLow, bug.StatusClosed)
	worse.CreatedAt = ""
	worse.TimeToFix = bug.Hours(1)
	unfixed := makeBug("unfixed", bug.SeverityLow, bug.StatusOpen)
	unfixed.CreatedAt = "garbage, but no time_to_fix so never parsed"

	points, err := TimeToFixTrend([]bug.Bug{bad, good, unfixed, worse})
	if err == nil {
		t.Fatal("expected a data-integrity error")
	}
	if !errors.Is(err, bug.ErrMalformedTimestamp) {
		t.Errorf("error %v does not wrap ErrMalformedTimestamp", err)
	}
	if len(points) != 1 || points[0].BugID != "good" {
		t.Fatalf("points = %v, want only the valid record", points)
	}

	diagnostics := TimestampErrors(err)
	if len(diagnostics) != 2 {
		t.Fatalf("len(diagnostics) = %d, want 2: %v", len(diagnostics), err)
	}
	if diagnostics[0].BugID != "bad" || diagnostics[1].BugID != "worse" {
		t.Errorf("diagnostics = %s, %s; want bad, worse", diagnostics[0].BugID, diagnostics[1].BugID)
	}
	if diagnostics[0].Field != "created_at" || diagnostics[0].Value != "sometime in March" {
		t.Errorf("diagnostic = %+v", diagnostics[0])
	}
}

// --- AverageFixTime ---

func TestAverageFixTimeSeed(t *testing.T) {
	average := AverageFixTime(seedBugs(t))
	if !average.Defined {
		t.Fatal("average should be defined")
	}
	if math.Abs(average.Hours-160.5/7) > 1e-9 {
		t.Errorf("Hours = %v, want %v", average.Hours, 160.5/7)
	}
	if got := average.String(); got != "23h" {
		t.Errorf("String() = %q, want 23h", got)
	}
}

func TestAverageFixTimeUndefined(t *testing.T) {
	for name, bugs := range map[string][]bug.Bug{
		"empty":        nil,
		"none defined": {makeBug("a", bug.SeverityLow, bug.StatusOpen)},
	} {
		average := AverageFixTime(bugs)
		if average.Defined {
			t.Errorf("%s: average should be undefined", name)
		}
		if got := average.String(); got != UndefinedPlaceholder {
			t.Errorf("%s: String() = %q, want placeholder", name, got)
		}
	}
}

func TestFixTimeMarshaling(t *testing.T) {
	defined, err := json.Marshal(FixTime{Hours: 6, Defined: true})
	if err != nil || string(defined) != "6" {
		t.Errorf("defined JSON = %s, %v", defined, err)
	}
	undefined, err := json.Marshal(FixTime{})
	if err != nil || string(undefined) != "null" {
		t.Errorf("undefined JSON = %s, %v", undefined, err)
	}
	yamlData, err := yaml.Marshal(map[string]FixTime{"average": {}})
	if err != nil {
		t.Fatal(err)
	}
	if string(yamlData) != "average: null\n" {
		t.Errorf("undefined YAML = %q", yamlData)
	}
}

// --- Empty input ---

func TestAggregationsOverEmptyInput(t *testing.T) {
	if got := SeverityDistribution(nil); got == nil || len(got) != 0 {
		t.Errorf("SeverityDistribution(nil) = %#v", got)
	}
	if got := StatusOverview(nil); got == nil || len(got) != 0 {
		t.Errorf("StatusOverview(nil) = %#v", got)
	}
	if got := ModuleHotspots(nil, 0); got == nil || len(got) != 0 {
		t.Errorf("ModuleHotspots(nil) = %#v", got)
	}
	points, err := TimeToFixTrend(nil)
	if err != nil || points == nil || len(points) != 0 {
		t.Errorf("TimeToFixTrend(nil) = %#v, %v", points, err)
	}
}
