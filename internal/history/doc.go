// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package history archives finished cooking runs to SQLite.
//
// The store implements run.Archiver: when a run reaches a terminal phase
// its final snapshot is written once, and can be listed or reloaded for
// post-hoc inspection. Archiving sits outside the execution path; a store
// failure never affects run state.
package history
