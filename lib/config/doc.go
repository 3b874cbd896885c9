// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides YAML configuration loading for graveyard.
//
// Configuration is loaded from a single file specified by either the
// GRAVEYARD_CONFIG environment variable (via [Load]) or a --config
// flag (via [LoadFile]). There is no ~/.config discovery and no
// automatic file search. Without either, [Default] applies and the
// embedded sample dataset is shown.
//
// Variable expansion is performed on path fields after loading:
// ${HOME} and ${VAR:-default} patterns are expanded. Command-line
// flags override config values; no other environment variables do.
//
// Key exports:
//
//   - [Config] -- master struct with Data, Analytics, UI, Log
//   - [Default] -- returns a Config with the built-in defaults
//   - [Load] and [LoadFile] -- the two entry points for loading
//   - [ParseLevel] -- log.level to slog.Level
//
// This package depends on no other graveyard packages.
package config
