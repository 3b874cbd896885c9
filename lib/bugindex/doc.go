// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package bugindex holds the graveyard dataset and every computation
// the dashboard performs over it: the [Store], the conjunctive
// [Filter], and the aggregations that feed the analytics charts.
//
// # Lifecycle
//
// A [Store] is built once with [NewStore] (or [LoadFile], [Decode],
// [Seed]) and never modified afterward. There is no Put or Remove:
// when the backing file changes, [Watch] builds a whole new Store and
// hands it to the caller, which swaps its reference. Readers holding
// the old Store keep a consistent snapshot.
//
// # Aggregations
//
// [SeverityDistribution], [StatusOverview], [ModuleHotspots],
// [TimeToFixTrend], [AverageFixTime] and [Summarize] are pure
// functions over a []bug.Bug, so they work equally on the full store
// and on a filtered subset. Group-by outputs are ordered by first
// appearance during a single scan, not by enumeration order.
//
// Time-based operations parse timestamps on demand. A record whose
// created_at does not parse is excluded from the time-based result
// and reported as a [*TimestampError]; the rest of the computation
// proceeds.
//
// # Concurrency
//
// A Store is immutable after construction and safe for concurrent
// readers. The package functions hold no state.
package bugindex
