// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package bugindex

import (
	"fmt"
	"slices"
	"strings"

	"github.com/bureau-foundation/graveyard/lib/schema/bug"
)

// All is the criteria sentinel meaning "no constraint" for the
// severity, status and module dimensions.
const All = "all"

// Criteria selects bugs for [Filter]. Every active dimension must
// match (AND semantics). For Severity, Status and Module, both [All]
// and the empty string mean no constraint; for Search, an empty or
// whitespace-only value means no constraint.
type Criteria struct {
	// Search matches bugs whose title or description contains it,
	// surrounding whitespace included, as a case-insensitive
	// substring.
	Search string `json:"search"`

	// Severity matches bug.Severity exactly (case-sensitive).
	Severity string `json:"severity"`

	// Status matches bug.Status exactly (case-sensitive).
	Status string `json:"status"`

	// Module matches bugs whose ImpactedModules contains this exact
	// module name. Substrings do not match.
	Module string `json:"module"`
}

// DefaultCriteria returns criteria that match everything: empty
// search and [All] in every other dimension. This is the state the
// filter bar resets to.
func DefaultCriteria() Criteria {
	return Criteria{Severity: All, Status: All, Module: All}
}

// Active reports whether any dimension constrains the result.
func (criteria Criteria) Active() bool {
	return criteria.searchTerm() != "" ||
		isConstrained(criteria.Severity) ||
		isConstrained(criteria.Status) ||
		isConstrained(criteria.Module)
}

// Validate reports severity or status values outside their
// enumerations. Filtering with such criteria is well defined (it
// matches nothing), so this exists for callers that want to reject
// user typos early.
func (criteria Criteria) Validate() error {
	if isConstrained(criteria.Severity) {
		if _, err := bug.ParseSeverity(criteria.Severity); err != nil {
			return fmt.Errorf("criteria: %w", err)
		}
	}
	if isConstrained(criteria.Status) {
		if _, err := bug.ParseStatus(criteria.Status); err != nil {
			return fmt.Errorf("criteria: %w", err)
		}
	}
	return nil
}

// searchTerm returns the search as typed, or "" when it is blank.
// Padding is kept: "Doom " only matches text containing "doom ".
func (criteria Criteria) searchTerm() string {
	if strings.TrimSpace(criteria.Search) == "" {
		return ""
	}
	return criteria.Search
}

func isConstrained(value string) bool {
	return value != "" && value != All
}

// Filter returns the bugs matching criteria in their original
// relative order. The input is not modified. The result is never nil:
// no matches yields an empty slice.
func Filter(bugs []bug.Bug, criteria Criteria) []bug.Bug {
	result := make([]bug.Bug, 0, len(bugs))
	search := strings.ToLower(criteria.searchTerm())
	for index := range bugs {
		if matches(&bugs[index], criteria, search) {
			result = append(result, bugs[index])
		}
	}
	return result
}

// Matches reports whether a single bug satisfies criteria.
func Matches(record *bug.Bug, criteria Criteria) bool {
	return matches(record, criteria, strings.ToLower(criteria.searchTerm()))
}

// matches takes the search term pre-lowered so Filter lowers it once.
func matches(record *bug.Bug, criteria Criteria, loweredSearch string) bool {
	if loweredSearch != "" &&
		!strings.Contains(strings.ToLower(record.Title), loweredSearch) &&
		!strings.Contains(strings.ToLower(record.Description), loweredSearch) {
		return false
	}
	if isConstrained(criteria.Severity) && string(record.Severity) != criteria.Severity {
		return false
	}
	if isConstrained(criteria.Status) && string(record.Status) != criteria.Status {
		return false
	}
	if isConstrained(criteria.Module) && !slices.Contains(record.ImpactedModules, criteria.Module) {
		return false
	}
	return true
}
