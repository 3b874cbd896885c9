// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package version

import (
	"fmt"
	"io"
	"runtime"
	"runtime/debug"
)

// Release builds set these with -ldflags -X. Empty values fall back to
// the VCS stamp the Go toolchain embeds, then to "unknown".
var (
	Version   = "0.1.0-dev"
	GitCommit = ""
	GitDirty  = ""
	BuildTime = ""
)

// stamp is the resolved provenance of the running binary.
type stamp struct {
	commit string
	dirty  bool
	built  string
}

func resolve() stamp {
	resolved := stamp{commit: GitCommit, dirty: GitDirty == "true", built: BuildTime}
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, setting := range info.Settings {
			switch {
			case setting.Key == "vcs.revision" && resolved.commit == "":
				resolved.commit = setting.Value[:min(len(setting.Value), 7)]
			case setting.Key == "vcs.modified" && GitDirty == "":
				resolved.dirty = setting.Value == "true"
			case setting.Key == "vcs.time" && resolved.built == "":
				resolved.built = setting.Value
			}
		}
	}
	if resolved.commit == "" {
		resolved.commit = "unknown"
	}
	if resolved.built == "" {
		resolved.built = "unknown"
	}
	return resolved
}

// Info is the one-line build description, e.g.
// "0.1.0-dev (a1b2c3d-dirty, 2026-03-01T10:00:00Z)".
func Info() string {
	resolved := resolve()
	commit := resolved.commit
	if resolved.dirty {
		commit += "-dirty"
	}
	return fmt.Sprintf("%s (%s, %s)", Version, commit, resolved.built)
}

// Full is Info plus the toolchain and platform, for "graveyard version".
func Full() string {
	return fmt.Sprintf("%s\n  Go: %s\n  Platform: %s/%s",
		Info(), runtime.Version(), runtime.GOOS, runtime.GOARCH)
}

// Fprint writes the --version line for the named binary.
func Fprint(w io.Writer, name string) {
	fmt.Fprintf(w, "%s %s\n", name, Info())
}
