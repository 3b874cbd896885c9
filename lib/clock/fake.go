// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package clock

import (
	"sync"
	"time"
)

// FakeClock is a Clock that moves only when Advance is called. Safe
// for concurrent use: the viewer's fade and heat commands wait on it
// from their own goroutines while the test drives it.
type FakeClock struct {
	mu      sync.Mutex
	now     time.Time
	pending []pendingTimer

	// registered is broadcast whenever After adds a timer.
	registered *sync.Cond
}

type pendingTimer struct {
	due     time.Time
	deliver chan time.Time
}

// Fake returns a FakeClock frozen at start.
func Fake(start time.Time) *FakeClock {
	fake := &FakeClock{now: start}
	fake.registered = sync.NewCond(&fake.mu)
	return fake
}

// Now returns the frozen instant.
func (fake *FakeClock) Now() time.Time {
	fake.mu.Lock()
	defer fake.mu.Unlock()
	return fake.now
}

// After returns a channel that fires once Advance has moved the clock
// to or past now+d.
func (fake *FakeClock) After(d time.Duration) <-chan time.Time {
	fake.mu.Lock()
	defer fake.mu.Unlock()

	deliver := make(chan time.Time, 1)
	if d <= 0 {
		deliver <- fake.now
		return deliver
	}
	fake.pending = append(fake.pending, pendingTimer{due: fake.now.Add(d), deliver: deliver})
	fake.registered.Broadcast()
	return deliver
}

// Advance moves the clock forward by d and fires every timer that
// has come due.
func (fake *FakeClock) Advance(d time.Duration) {
	fake.mu.Lock()
	defer fake.mu.Unlock()

	fake.now = fake.now.Add(d)
	waiting := fake.pending[:0]
	for _, timer := range fake.pending {
		if timer.due.After(fake.now) {
			waiting = append(waiting, timer)
			continue
		}
		timer.deliver <- fake.now
	}
	clear(fake.pending[len(waiting):])
	fake.pending = waiting
}

// WaitForTimers blocks until n timers are pending. Call it before
// Advance when the After happens on another goroutine.
func (fake *FakeClock) WaitForTimers(n int) {
	fake.mu.Lock()
	defer fake.mu.Unlock()
	for len(fake.pending) < n {
		fake.registered.Wait()
	}
}
