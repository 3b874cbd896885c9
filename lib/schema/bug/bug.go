// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package bug

import (
	"errors"
	"fmt"
	"time"
)

// Severity ranks how badly a bug hurt. The set is closed: any value
// outside [Severities] is invalid.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
	SeverityLow      Severity = "low"
	SeverityInfo     Severity = "info"
)

// Severities returns every severity in canonical order, most severe
// first. The returned slice is a fresh copy.
func Severities() []Severity {
	return []Severity{SeverityCritical, SeverityHigh, SeverityMedium, SeverityLow, SeverityInfo}
}

// ParseSeverity converts a string to a Severity, rejecting anything
// outside the enumeration. Matching is exact and case-sensitive.
func ParseSeverity(value string) (Severity, error) {
	severity := Severity(value)
	if !severity.Valid() {
		return "", fmt.Errorf("unknown severity %q", value)
	}
	return severity, nil
}

// Valid reports whether the severity is a member of the enumeration.
func (severity Severity) Valid() bool {
	switch severity {
	case SeverityCritical, SeverityHigh, SeverityMedium, SeverityLow, SeverityInfo:
		return true
	}
	return false
}

// Label returns the capitalized display name ("Critical", "High", ...).
// Unknown values are returned unchanged.
func (severity Severity) Label() string {
	switch severity {
	case SeverityCritical:
		return "Critical"
	case SeverityHigh:
		return "High"
	case SeverityMedium:
		return "Medium"
	case SeverityLow:
		return "Low"
	case SeverityInfo:
		return "Info"
	}
	return string(severity)
}

// Status is the lifecycle state of a bug. Like Severity, the set is
// closed.
type Status string

const (
	StatusOpen          Status = "open"
	StatusInvestigating Status = "investigating"
	StatusFixing        Status = "fixing"
	StatusTesting       Status = "testing"
	StatusClosed        Status = "closed"
)

// Statuses returns every status in lifecycle order.
func Statuses() []Status {
	return []Status{StatusOpen, StatusInvestigating, StatusFixing, StatusTesting, StatusClosed}
}

// ParseStatus converts a string to a Status, rejecting anything
// outside the enumeration.
func ParseStatus(value string) (Status, error) {
	status := Status(value)
	if !status.Valid() {
		return "", fmt.Errorf("unknown status %q", value)
	}
	return status, nil
}

// Valid reports whether the status is a member of the enumeration.
func (status Status) Valid() bool {
	switch status {
	case StatusOpen, StatusInvestigating, StatusFixing, StatusTesting, StatusClosed:
		return true
	}
	return false
}

// Label returns the capitalized display name.
func (status Status) Label() string {
	switch status {
	case StatusOpen:
		return "Open"
	case StatusInvestigating:
		return "Investigating"
	case StatusFixing:
		return "Fixing"
	case StatusTesting:
		return "Testing"
	case StatusClosed:
		return "Closed"
	}
	return string(status)
}

// Bug is one incident record in the graveyard. Records are created
// once when the dataset loads and never modified afterward.
type Bug struct {
	// ID is the unique identifier (e.g., "BUG-007").
	ID string `json:"id" yaml:"id"`

	// Title is the short, usually theatrical, name of the incident.
	Title string `json:"title" yaml:"title"`

	// Description explains what users saw. Supports markdown.
	Description string `json:"description" yaml:"description"`

	// RootCause explains why it happened. Supports markdown.
	RootCause string `json:"root_cause" yaml:"root_cause"`

	Severity Severity `json:"severity" yaml:"severity"`
	Status   Status   `json:"status" yaml:"status"`

	// Module is the primary owning module.
	Module string `json:"module" yaml:"module"`

	// Fix describes the applied fix. Empty while the bug is
	// unresolved.
	Fix string `json:"fix,omitempty" yaml:"fix,omitempty"`

	// LessonsLearned is the post-mortem takeaway. Empty while the
	// bug is unresolved.
	LessonsLearned string `json:"lessons_learned,omitempty" yaml:"lessons_learned,omitempty"`

	// Prevention is an ordered checklist of follow-up measures.
	Prevention []string `json:"prevention,omitempty" yaml:"prevention,omitempty"`

	// ImpactedModules lists every module the bug touched, usually
	// including Module itself. Counted per entry by module hotspot
	// aggregation.
	ImpactedModules []string `json:"impacted_modules" yaml:"impacted_modules"`

	// Timeline is the incident history in author order. Display
	// code may rely on this order; time-based logic must not.
	Timeline []TimelineEvent `json:"timeline,omitempty" yaml:"timeline,omitempty"`

	// CreatedAt is the RFC 3339 discovery time.
	CreatedAt string `json:"created_at" yaml:"created_at"`

	// ClosedAt is the RFC 3339 close time, set only for closed bugs
	// in practice.
	ClosedAt string `json:"closed_at,omitempty" yaml:"closed_at,omitempty"`

	Assignee string `json:"assignee,omitempty" yaml:"assignee,omitempty"`
	Reporter string `json:"reporter,omitempty" yaml:"reporter,omitempty"`

	// TimeToFix is the resolution time in hours. Nil means the bug
	// has no recorded fix time, which is distinct from zero.
	TimeToFix *float64 `json:"time_to_fix,omitempty" yaml:"time_to_fix,omitempty"`

	// RIP is the epitaph shown on the tombstone of a closed bug.
	RIP string `json:"rip,omitempty" yaml:"rip,omitempty"`
}

// TimelineEvent is one step in a bug's history. Event is a free-text
// label; the well-known labels ("Discovered", "Fix Deployed", ...)
// get dedicated colors in the UI and anything else falls back to a
// neutral color.
type TimelineEvent struct {
	Date   string `json:"date" yaml:"date"`
	Event  string `json:"event" yaml:"event"`
	User   string `json:"user" yaml:"user"`
	Detail string `json:"detail,omitempty" yaml:"detail,omitempty"`
}

// Well-known timeline event labels.
const (
	EventDiscovered     = "Discovered"
	EventAssigned       = "Assigned"
	EventRootCauseFound = "Root Cause Found"
	EventFixDeployed    = "Fix Deployed"
	EventVerified       = "Verified"
	EventClosed         = "Closed"
)

// Hours returns a pointer to the given fix time, for building
// records in code.
func Hours(value float64) *float64 {
	return &value
}

// HasTimeToFix reports whether the bug has a recorded fix time.
func (b *Bug) HasTimeToFix() bool {
	return b.TimeToFix != nil
}

// IsClosed reports whether the bug has been laid to rest.
func (b *Bug) IsClosed() bool {
	return b.Status == StatusClosed
}

// CreatedTime parses CreatedAt.
func (b *Bug) CreatedTime() (time.Time, error) {
	return ParseTimestamp(b.CreatedAt)
}

// Validate checks that required fields are present and that severity
// and status are enumeration members. Timestamps are deliberately not
// checked here; see [ParseTimestamp].
func (b *Bug) Validate() error {
	if b.ID == "" {
		return errors.New("bug content: id is required")
	}
	if b.Title == "" {
		return fmt.Errorf("bug content %s: title is required", b.ID)
	}
	switch {
	case b.Severity == "":
		return fmt.Errorf("bug content %s: severity is required", b.ID)
	case !b.Severity.Valid():
		return fmt.Errorf("bug content %s: unknown severity %q", b.ID, b.Severity)
	}
	switch {
	case b.Status == "":
		return fmt.Errorf("bug content %s: status is required", b.ID)
	case !b.Status.Valid():
		return fmt.Errorf("bug content %s: unknown status %q", b.ID, b.Status)
	}
	if b.TimeToFix != nil && *b.TimeToFix < 0 {
		return fmt.Errorf("bug content %s: time_to_fix must be >= 0, got %v", b.ID, *b.TimeToFix)
	}
	for index, event := range b.Timeline {
		if event.Event == "" {
			return fmt.Errorf("bug content %s: timeline[%d]: event is required", b.ID, index)
		}
	}
	return nil
}

// ErrMalformedTimestamp is wrapped by every timestamp parse failure.
var ErrMalformedTimestamp = errors.New("malformed timestamp")

// ParseTimestamp parses an RFC 3339 timestamp. Failures wrap
// [ErrMalformedTimestamp]; there is no fallback instant.
func ParseTimestamp(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, fmt.Errorf("%w: empty value", ErrMalformedTimestamp)
	}
	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q: %v", ErrMalformedTimestamp, value, err)
	}
	return parsed, nil
}
