// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package bugindex

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"slices"
	"time"

	"github.com/bureau-foundation/graveyard/lib/schema/bug"
)

// HotspotLimit is the default number of entries [ModuleHotspots]
// returns.
const HotspotLimit = 6

// Count is one (label, count) pair in a group-by result.
type Count struct {
	Label string `json:"label" yaml:"label"`
	Count int    `json:"count" yaml:"count"`
}

// counter accumulates counts while remembering the order in which
// labels first appeared.
type counter struct {
	order []string
	index map[string]int
	count []int
}

func newCounter() *counter {
	return &counter{index: make(map[string]int)}
}

func (c *counter) add(label string) {
	position, exists := c.index[label]
	if !exists {
		position = len(c.order)
		c.index[label] = position
		c.order = append(c.order, label)
		c.count = append(c.count, 0)
	}
	c.count[position]++
}

func (c *counter) result() []Count {
	result := make([]Count, len(c.order))
	for position, label := range c.order {
		result[position] = Count{Label: label, Count: c.count[position]}
	}
	return result
}

// SeverityDistribution counts bugs per severity. Only severities that
// occur are emitted, in the order they first appear in bugs.
func SeverityDistribution(bugs []bug.Bug) []Count {
	counts := newCounter()
	for index := range bugs {
		counts.add(string(bugs[index].Severity))
	}
	return counts.result()
}

// StatusOverview counts bugs per status, in first-seen order.
func StatusOverview(bugs []bug.Bug) []Count {
	counts := newCounter()
	for index := range bugs {
		counts.add(string(bugs[index].Status))
	}
	return counts.result()
}

// ModuleHotspots counts every (bug, impacted module) pair, so a bug
// touching three modules contributes to three counters. Results are
// sorted by count descending with ties kept in first-seen order, then
// truncated to limit entries. A limit <= 0 means [HotspotLimit].
func ModuleHotspots(bugs []bug.Bug, limit int) []Count {
	if limit <= 0 {
		limit = HotspotLimit
	}
	counts := newCounter()
	for index := range bugs {
		for _, module := range bugs[index].ImpactedModules {
			counts.add(module)
		}
	}
	result := counts.result()
	slices.SortStableFunc(result, func(a, b Count) int {
		return b.Count - a.Count
	})
	if len(result) > limit {
		result = result[:limit]
	}
	return result
}

// TrendPoint is one bug's fix time, positioned by creation time.
type TrendPoint struct {
	BugID     string    `json:"bug_id" yaml:"bug_id"`
	Hours     float64   `json:"hours" yaml:"hours"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}

// TimestampError reports a record excluded from a time-based view
// because one of its timestamps does not parse. It wraps
// [bug.ErrMalformedTimestamp].
type TimestampError struct {
	BugID string
	Field string
	Value string
	Err   error
}

func (e *TimestampError) Error() string {
	return fmt.Sprintf("bug %s: %s: %v", e.BugID, e.Field, e.Err)
}

func (e *TimestampError) Unwrap() error { return e.Err }

// TimeToFixTrend returns (bug, hours) points for every bug with a
// recorded fix time, sorted ascending by parsed created_at. Bugs
// without a fix time are excluded entirely. Bugs whose created_at
// does not parse are excluded and reported: the returned error joins
// one [*TimestampError] per excluded record, and the points for all
// other bugs are still returned.
func TimeToFixTrend(bugs []bug.Bug) ([]TrendPoint, error) {
	points := []TrendPoint{}
	var diagnostics []error
	for index := range bugs {
		record := &bugs[index]
		if !record.HasTimeToFix() {
			continue
		}
		created, err := record.CreatedTime()
		if err != nil {
			diagnostics = append(diagnostics, &TimestampError{
				BugID: record.ID,
				Field: "created_at",
				Value: record.CreatedAt,
				Err:   err,
			})
			continue
		}
		points = append(points, TrendPoint{
			BugID:     record.ID,
			Hours:     *record.TimeToFix,
			CreatedAt: created,
		})
	}
	slices.SortStableFunc(points, func(a, b TrendPoint) int {
		return a.CreatedAt.Compare(b.CreatedAt)
	})
	return points, errors.Join(diagnostics...)
}

// TimestampErrors flattens an error returned by [TimeToFixTrend] (or
// any joined error) into its individual timestamp diagnostics.
func TimestampErrors(err error) []*TimestampError {
	if err == nil {
		return nil
	}
	var result []*TimestampError
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		for _, inner := range joined.Unwrap() {
			result = append(result, TimestampErrors(inner)...)
		}
		return result
	}
	var timestampErr *TimestampError
	if errors.As(err, &timestampErr) {
		result = append(result, timestampErr)
	}
	return result
}

// FixTime is an average duration in hours that may be undefined.
// Defined is false when no bug contributed a value; such a FixTime
// renders as a placeholder, never as "0h".
type FixTime struct {
	Hours   float64
	Defined bool
}

// AverageFixTime returns the mean fix time over bugs with a recorded
// fix time. With no such bugs the result is undefined.
func AverageFixTime(bugs []bug.Bug) FixTime {
	var sum float64
	var count int
	for index := range bugs {
		if bugs[index].HasTimeToFix() {
			sum += *bugs[index].TimeToFix
			count++
		}
	}
	if count == 0 {
		return FixTime{}
	}
	return FixTime{Hours: sum / float64(count), Defined: true}
}

// UndefinedPlaceholder is what an undefined value renders as.
const UndefinedPlaceholder = "—"

// RoundedHours returns the average rounded to whole hours, half away
// from zero. Only meaningful when Defined.
func (fixTime FixTime) RoundedHours() int {
	return int(math.Round(fixTime.Hours))
}

// String renders "23h", or [UndefinedPlaceholder] when undefined.
func (fixTime FixTime) String() string {
	if !fixTime.Defined {
		return UndefinedPlaceholder
	}
	return fmt.Sprintf("%dh", fixTime.RoundedHours())
}

// MarshalJSON encodes a defined value as its hours and an undefined
// one as null.
func (fixTime FixTime) MarshalJSON() ([]byte, error) {
	if !fixTime.Defined {
		return []byte("null"), nil
	}
	return json.Marshal(fixTime.Hours)
}

// MarshalYAML mirrors MarshalJSON.
func (fixTime FixTime) MarshalYAML() (any, error) {
	if !fixTime.Defined {
		return nil, nil
	}
	return fixTime.Hours, nil
}
