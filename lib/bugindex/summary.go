// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package bugindex

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/bureau-foundation/graveyard/lib/schema/bug"
)

// Percent is a whole-number percentage that may be undefined (for
// example a resolution rate over zero bugs).
type Percent struct {
	Value   int
	Defined bool
}

func percentOf(part, total int) Percent {
	if total == 0 {
		return Percent{}
	}
	return Percent{Value: int(math.Round(float64(part) / float64(total) * 100)), Defined: true}
}

// String renders "88%", or [UndefinedPlaceholder].
func (percent Percent) String() string {
	if !percent.Defined {
		return UndefinedPlaceholder
	}
	return fmt.Sprintf("%d%%", percent.Value)
}

// MarshalJSON encodes an undefined percentage as null.
func (percent Percent) MarshalJSON() ([]byte, error) {
	if !percent.Defined {
		return []byte("null"), nil
	}
	return json.Marshal(percent.Value)
}

// MarshalYAML mirrors MarshalJSON.
func (percent Percent) MarshalYAML() (any, error) {
	if !percent.Defined {
		return nil, nil
	}
	return percent.Value, nil
}

// Summary holds the headline numbers shown on the home and analytics
// views.
type Summary struct {
	Total int `json:"total" yaml:"total"`

	// Buried counts closed bugs.
	Buried int `json:"buried" yaml:"buried"`

	// Haunting counts bugs in any status other than closed.
	Haunting int `json:"haunting" yaml:"haunting"`

	Critical int `json:"critical" yaml:"critical"`

	// LessonsCaptured counts bugs with a non-empty lessons_learned.
	LessonsCaptured int `json:"lessons_captured" yaml:"lessons_captured"`

	// ResolutionRate is Buried/Total as a rounded percentage.
	ResolutionRate Percent `json:"resolution_rate" yaml:"resolution_rate"`

	AverageFixTime FixTime `json:"average_fix_time_hours" yaml:"average_fix_time_hours"`
}

// Summarize computes the headline numbers for bugs.
func Summarize(bugs []bug.Bug) Summary {
	summary := Summary{Total: len(bugs)}
	for index := range bugs {
		record := &bugs[index]
		if record.IsClosed() {
			summary.Buried++
		} else {
			summary.Haunting++
		}
		if record.Severity == bug.SeverityCritical {
			summary.Critical++
		}
		if record.LessonsLearned != "" {
			summary.LessonsCaptured++
		}
	}
	summary.ResolutionRate = percentOf(summary.Buried, summary.Total)
	summary.AverageFixTime = AverageFixTime(bugs)
	return summary
}

// Analytics bundles every aggregation over one set of bugs. It is the
// payload of the analytics view and the CLI analytics command.
type Analytics struct {
	// Fingerprint identifies the dataset the numbers describe. Set by
	// [Store.Analyze]; nil when aggregating a bare slice.
	Fingerprint *Fingerprint `json:"fingerprint,omitempty" yaml:"fingerprint,omitempty"`

	Summary              Summary      `json:"summary" yaml:"summary"`
	SeverityDistribution []Count      `json:"severity_distribution" yaml:"severity_distribution"`
	StatusOverview       []Count      `json:"status_overview" yaml:"status_overview"`
	ModuleHotspots       []Count      `json:"module_hotspots" yaml:"module_hotspots"`
	TimeToFixTrend       []TrendPoint `json:"time_to_fix_trend" yaml:"time_to_fix_trend"`

	// Diagnostics lists records excluded from the trend, one message
	// per record. Empty when every timestamp parsed.
	Diagnostics []string `json:"diagnostics" yaml:"diagnostics"`

	// TrendErr is the joined error from [TimeToFixTrend], kept for
	// callers that log structured diagnostics.
	TrendErr error `json:"-" yaml:"-"`
}

// Analyze runs every aggregation over bugs. hotspotLimit follows
// [ModuleHotspots].
func Analyze(bugs []bug.Bug, hotspotLimit int) Analytics {
	trend, trendErr := TimeToFixTrend(bugs)
	analytics := Analytics{
		Summary:              Summarize(bugs),
		SeverityDistribution: SeverityDistribution(bugs),
		StatusOverview:       StatusOverview(bugs),
		ModuleHotspots:       ModuleHotspots(bugs, hotspotLimit),
		TimeToFixTrend:       trend,
		Diagnostics:          []string{},
		TrendErr:             trendErr,
	}
	for _, diagnostic := range TimestampErrors(trendErr) {
		analytics.Diagnostics = append(analytics.Diagnostics, diagnostic.Error())
	}
	return analytics
}
