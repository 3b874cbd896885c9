// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package version describes the running graveyard build.
//
// Release builds stamp it through the linker:
//
//	go build -ldflags "-X github.com/bureau-foundation/graveyard/lib/version.GitCommit=$(git rev-parse --short HEAD)" ./cmd/graveyard
//
// [Version], [GitCommit], [GitDirty] and [BuildTime] may all be set this
// way. Any left empty are filled from the vcs.* settings the Go
// toolchain records in the binary, and read "unknown" when those are
// absent too (go test and go run binaries carry none).
//
// [Info] backs --version, [Full] backs "graveyard version", and
// [Fprint] writes the --version line.
package version
