// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package version

import (
	"bytes"
	"strings"
	"testing"
)

// stampFor sets the linker variables for one test.
func stampFor(t *testing.T, commit, dirty, built string) {
	t.Helper()
	savedCommit, savedDirty, savedBuilt := GitCommit, GitDirty, BuildTime
	t.Cleanup(func() { GitCommit, GitDirty, BuildTime = savedCommit, savedDirty, savedBuilt })
	GitCommit, GitDirty, BuildTime = commit, dirty, built
}

func TestInfoUsesLinkerStamp(t *testing.T) {
	stampFor(t, "abc1234", "true", "2026-03-01T10:00:00Z")
	if got, want := Info(), Version+" (abc1234-dirty, 2026-03-01T10:00:00Z)"; got != want {
		t.Fatalf("Info() = %q, want %q", got, want)
	}

	stampFor(t, "abc1234", "false", "2026-03-01T10:00:00Z")
	if got := Info(); strings.Contains(got, "dirty") {
		t.Fatalf("Info() = %q, want no dirty marker", got)
	}
}

func TestInfoWithoutStamp(t *testing.T) {
	// Test binaries carry no vcs settings, so nothing fills the gaps.
	stampFor(t, "", "", "")
	if got, want := Info(), Version+" (unknown, unknown)"; got != want {
		t.Fatalf("Info() = %q, want %q", got, want)
	}
}

func TestFullIncludesPlatform(t *testing.T) {
	full := Full()
	if !strings.Contains(full, "Go: ") || !strings.Contains(full, "Platform: ") {
		t.Fatalf("Full() = %q, want Go and Platform lines", full)
	}
}

func TestFprint(t *testing.T) {
	var buffer bytes.Buffer
	Fprint(&buffer, "graveyard")
	if want := "graveyard " + Info() + "\n"; buffer.String() != want {
		t.Fatalf("Fprint = %q, want %q", buffer.String(), want)
	}
}
