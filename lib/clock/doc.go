// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package clock is the viewer's time source.
//
// Relative ages ("buried 12 days ago"), heat decay and status-bar
// fades all read time through a [Clock] rather than the time package.
// [Real] is used in production. Tests use [Fake], which stands still
// until Advance:
//
//	fake := clock.Fake(time.Date(2025, 10, 1, 12, 0, 0, 0, time.UTC))
//	model := bugui.NewModel(source, bugui.Options{Clock: fake})
//
// Commands that wait on After run on bubbletea's goroutines, so tests
// call WaitForTimers before Advance to know the timer exists.
package clock
