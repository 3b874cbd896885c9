// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package bugindex

import (
	"testing"

	"github.com/bureau-foundation/graveyard/lib/schema/bug"
)

// makeBug builds a minimal valid bug. Modules default to the primary
// module alone.
func makeBug(id string, severity bug.Severity, status bug.Status, modules ...string) bug.Bug {
	if len(modules) == 0 {
		modules = []string{"Core"}
	}
	return bug.Bug{
		ID:              id,
		Title:           "Bug " + id,
		Description:     "Description of " + id,
		Severity:        severity,
		Status:          status,
		Module:          modules[0],
		ImpactedModules: modules,
		CreatedAt:       "2025-01-01T00:00:00Z",
	}
}

// bugIDs extracts ids in order.
func bugIDs(bugs []bug.Bug) []string {
	ids := make([]string, len(bugs))
	for index := range bugs {
		ids[index] = bugs[index].ID
	}
	return ids
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for index := range a {
		if a[index] != b[index] {
			return false
		}
	}
	return true
}

func requireIDs(t *testing.T, label string, bugs []bug.Bug, want ...string) {
	t.Helper()
	got := bugIDs(bugs)
	if !equalStrings(got, want) {
		t.Fatalf("%s = %v, want %v", label, got, want)
	}
}

func seedBugs(t *testing.T) []bug.Bug {
	t.Helper()
	store, err := Seed()
	if err != nil {
		t.Fatalf("Seed: %v", err)
	}
	return store.All()
}
