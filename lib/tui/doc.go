// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package tui provides the terminal building blocks shared by the
// graveyard viewer: the color theme and its severity, status and
// timeline-event tables, dropdown overlays, fuzzy matching, charts,
// scrollbars and change-highlight animation.
//
// Everything here is stateless rendering or small value types. The
// viewer in [bugui] owns layout, data and the bubbletea event loop.
package tui
