// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package clock

import "time"

// Clock is the time source for relative ages and timed UI effects.
// The viewer holds one; tests swap in a [FakeClock].
type Clock interface {
	// Now returns the current instant.
	Now() time.Time

	// After delivers the current instant once d has elapsed. A
	// non-positive d delivers immediately.
	After(d time.Duration) <-chan time.Time
}
