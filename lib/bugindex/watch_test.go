// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package bugindex

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/bureau-foundation/graveyard/lib/schema/bug"
	"github.com/bureau-foundation/graveyard/lib/testutil"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestWatchReloadsOnRename(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bugs.jsonl")
	seed := MustSeed()
	if err := WriteFile(path, seed.All()); err != nil {
		t.Fatal(err)
	}

	changes := make(chan *Store, 4)
	stop, err := Watch(path, seed.Fingerprint(), discardLogger(), func(store *Store) {
		changes <- store
	})
	if err != nil {
		t.Fatalf("Watch: %v", err)
	}
	defer stop()

	bugs := seed.All()
	bugs = append(bugs, makeBug("BUG-999", bug.SeverityInfo, bug.StatusOpen))
	if err := WriteFile(path, bugs); err != nil {
		t.Fatal(err)
	}

	store := testutil.RequireReceive(t, changes, 5*time.Second, "waiting for reload")
	if store.Len() != seed.Len()+1 {
		t.Fatalf("reloaded Len = %d, want %d", store.Len(), seed.Len()+1)
	}
	if _, found := store.Get("BUG-999"); !found {
		t.Fatal("reloaded store is missing BUG-999")
	}
}

func TestWatchKeepsSnapshotOnInvalidContent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bugs.jsonl")
	seed := MustSeed()
	if err := WriteFile(path, seed.All()); err != nil {
		t.Fatal(err)
	}

	changes := make(chan *Store, 4)
	stop, err := Watch(path, seed.Fingerprint(), discardLogger(), func(store *Store) {
		changes <- store
	})
	if err != nil {
		t.Fatalf("Watch: %v", err)
	}
	defer stop()

	// An invalid rewrite is ignored; the following valid one is
	// delivered. Receiving the valid store first proves the invalid
	// one never reached onChange.
	if err := os.WriteFile(path, []byte("{broken\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	time.Sleep(3 * watchDebounce)
	valid := []bug.Bug{makeBug("ONLY", bug.SeverityLow, bug.StatusClosed)}
	if err := WriteFile(path, valid); err != nil {
		t.Fatal(err)
	}

	store := testutil.RequireReceive(t, changes, 5*time.Second, "waiting for valid reload")
	requireIDs(t, "reloaded", store.All(), "ONLY")
}

func TestWatchStopIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bugs.yaml")
	stop, err := Watch(path, Fingerprint{}, discardLogger(), func(*Store) {})
	if err != nil {
		t.Fatalf("Watch: %v", err)
	}
	stop()
	stop()
}

func TestWatchRejectsUnknownExtension(t *testing.T) {
	if _, err := Watch(filepath.Join(t.TempDir(), "bugs.txt"), Fingerprint{}, discardLogger(), func(*Store) {}); err == nil {
		t.Fatal("expected an error for an undetectable format")
	}
}
