// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package clock

import (
	"testing"
	"time"
)

var burial = time.Date(2025, 3, 15, 14, 30, 0, 0, time.UTC)

func TestFakeAdvanceMovesNow(t *testing.T) {
	fake := Fake(burial)
	if got := fake.Now(); !got.Equal(burial) {
		t.Fatalf("Now() = %v, want %v", got, burial)
	}
	fake.Advance(199 * 24 * time.Hour)
	if want := burial.Add(199 * 24 * time.Hour); !fake.Now().Equal(want) {
		t.Fatalf("Now() = %v, want %v", fake.Now(), want)
	}
}

func TestFakeAfterWaitsForDeadline(t *testing.T) {
	fake := Fake(burial)
	fired := fake.After(5 * time.Second)

	fake.Advance(4 * time.Second)
	select {
	case <-fired:
		t.Fatal("timer fired a second early")
	default:
	}

	fake.Advance(time.Second)
	select {
	case at := <-fired:
		if want := burial.Add(5 * time.Second); !at.Equal(want) {
			t.Fatalf("fired at %v, want %v", at, want)
		}
	default:
		t.Fatal("timer did not fire at its deadline")
	}
}

func TestFakeAfterNonPositiveFiresImmediately(t *testing.T) {
	fake := Fake(burial)
	select {
	case <-fake.After(0):
	default:
		t.Fatal("After(0) did not fire immediately")
	}
}

func TestFakeWaitForTimers(t *testing.T) {
	fake := Fake(burial)
	done := make(chan struct{})
	go func() {
		<-fake.After(time.Minute)
		close(done)
	}()

	fake.WaitForTimers(1)
	fake.Advance(time.Minute)

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("goroutine still waiting after Advance")
	}
}

func TestRealNow(t *testing.T) {
	before := time.Now()
	if now := Real().Now(); now.Before(before) {
		t.Fatalf("Real().Now() = %v, before %v", now, before)
	}
}
