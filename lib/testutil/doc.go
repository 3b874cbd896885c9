// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil provides shared test helpers for graveyard packages.
//
// [RequireReceive] wraps the select-with-timeout that channel tests
// otherwise repeat. The file watcher and live-reload tests use it.
//
// [WriteFile] drops a fixture (a config file, a bug dataset) into a
// test directory and returns its path.
//
// All helpers call t.Fatalf on failure rather than returning errors,
// since test setup failures are not recoverable.
//
// This package has no graveyard-internal dependencies.
package testutil
