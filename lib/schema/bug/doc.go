// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package bug defines the graveyard record types: a [Bug] with its
// [TimelineEvent] history, and the closed [Severity] and [Status]
// enumerations that every record must draw from.
//
// Records are plain data. They carry JSON and YAML tags for the file
// formats the loader accepts (CBOR encoding falls back to the JSON
// tags through lib/codec). Timestamps stay strings on the wire and
// are parsed on demand by [ParseTimestamp], so a malformed value is
// reported by whichever time-based view needs it rather than
// rejecting the whole dataset at load time.
package bug
