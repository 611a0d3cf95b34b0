// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package run drives the end-to-end cooking run state machine.
//
// A Run moves through Planning -> Cooking -> Done (or Cancelled), asking
// the plan generator for a plan and then executing each step in ordinal
// order through the step executor. After every transition it publishes a
// fresh immutable Snapshot behind an atomic pointer, so observers polling
// at arbitrary frequency always read a consistent view without taking a
// lock that could touch the executing goroutine.
//
// # Key Types
//
//   - Run: One execution instance for a single recipe
//   - Phase: Planning, Cooking, Done, Cancelled
//   - Snapshot: Read-only projection of a run at an instant
//   - Manager: Starts, queries, cancels, and archives runs by opaque ID
//
// # Usage
//
//	mgr := run.NewManager(run.ManagerConfig{...})
//	id, err := mgr.StartRun("Grilled Cheese Sandwich")
//	snap, _ := mgr.Snapshot(id) // safe to call at sub-second frequency
package run
