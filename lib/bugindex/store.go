// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package bugindex

import (
	"fmt"

	"github.com/bureau-foundation/graveyard/lib/schema/bug"
)

// Store is an immutable, ordered collection of bugs. Order is the
// order the records were supplied in (file order for loaded
// datasets) and is preserved by every query.
//
// Methods returning slices return copies of the top-level slice. The
// nested slices inside each bug (impacted modules, timeline,
// prevention) are shared and must be treated as read-only.
type Store struct {
	bugs        []bug.Bug
	byID        map[string]int
	modules     []string
	fingerprint Fingerprint
}

// NewStore validates the records and builds a Store. Every bug must
// pass [bug.Bug.Validate] and ids must be unique. The derived module
// list is computed here, once, from a single deduplicating scan.
func NewStore(bugs []bug.Bug) (*Store, error) {
	store := &Store{
		bugs: make([]bug.Bug, len(bugs)),
		byID: make(map[string]int, len(bugs)),
	}
	copy(store.bugs, bugs)

	for index := range store.bugs {
		record := &store.bugs[index]
		if err := record.Validate(); err != nil {
			return nil, fmt.Errorf("bugindex: record %d: %w", index, err)
		}
		if previous, exists := store.byID[record.ID]; exists {
			return nil, fmt.Errorf("bugindex: duplicate id %q at records %d and %d", record.ID, previous, index)
		}
		store.byID[record.ID] = index
	}

	store.modules = distinctModules(store.bugs)

	fingerprint, err := computeFingerprint(store.bugs)
	if err != nil {
		return nil, fmt.Errorf("bugindex: %w", err)
	}
	store.fingerprint = fingerprint

	return store, nil
}

// distinctModules returns the union of all impacted modules in
// first-seen order.
func distinctModules(bugs []bug.Bug) []string {
	seen := make(map[string]struct{})
	modules := []string{}
	for _, record := range bugs {
		for _, module := range record.ImpactedModules {
			if _, exists := seen[module]; exists {
				continue
			}
			seen[module] = struct{}{}
			modules = append(modules, module)
		}
	}
	return modules
}

// Len returns the number of bugs.
func (store *Store) Len() int {
	return len(store.bugs)
}

// All returns every bug in store order.
func (store *Store) All() []bug.Bug {
	result := make([]bug.Bug, len(store.bugs))
	copy(result, store.bugs)
	return result
}

// Get returns the bug with the given id. The boolean is false when no
// such bug exists; callers render a fallback rather than treating
// this as an error.
func (store *Store) Get(id string) (bug.Bug, bool) {
	index, exists := store.byID[id]
	if !exists {
		return bug.Bug{}, false
	}
	return store.bugs[index], true
}

// Modules returns the distinct impacted modules in first-seen order.
func (store *Store) Modules() []string {
	result := make([]string, len(store.modules))
	copy(result, store.modules)
	return result
}

// Severities returns the severity enumeration in canonical order.
func (store *Store) Severities() []bug.Severity {
	return bug.Severities()
}

// Statuses returns the status enumeration in lifecycle order.
func (store *Store) Statuses() []bug.Status {
	return bug.Statuses()
}

// Recent returns the first n bugs in store order, or all of them if
// the store holds fewer than n. The home view shows these as the
// most recent burials.
func (store *Store) Recent(n int) []bug.Bug {
	if n < 0 {
		n = 0
	}
	if n > len(store.bugs) {
		n = len(store.bugs)
	}
	result := make([]bug.Bug, n)
	copy(result, store.bugs[:n])
	return result
}

// List returns the bugs matching criteria, in store order.
func (store *Store) List(criteria Criteria) []bug.Bug {
	return Filter(store.bugs, criteria)
}

// Analyze runs [Analyze] over the store and stamps the result with
// the store's fingerprint.
func (store *Store) Analyze(hotspotLimit int) Analytics {
	analytics := Analyze(store.bugs, hotspotLimit)
	fingerprint := store.fingerprint
	analytics.Fingerprint = &fingerprint
	return analytics
}

// Fingerprint identifies the dataset content. Two stores built from
// identical records have identical fingerprints.
func (store *Store) Fingerprint() Fingerprint {
	return store.fingerprint
}
