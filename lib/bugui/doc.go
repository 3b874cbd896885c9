// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package bugui implements the interactive terminal viewer for the bug
// graveyard, built on bubbletea.
//
// The viewer has three tabs:
//
//   - Graveyard: headline stats and the most recent burials.
//   - All Bugs: a filter bar (search, severity, status and module
//     selectors), the filtered list, and a detail pane with markdown
//     rendering of the free-text sections.
//   - Analytics: severity distribution, module hotspots, status
//     overview and the time-to-fix trend, drawn with the chart
//     primitives from lib/tui.
//
// Data comes from a [Source]. [StoreSource] holds one immutable
// bugindex.Store and notifies subscribers when [StoreSource.Replace]
// swaps in a new snapshot (the --watch path). The model re-derives
// every view from the new snapshot and keeps the selection by bug ID.
//
// [TUILogHandler] routes slog records into the running program so
// warnings appear in the status bar for a few seconds.
package bugui
