// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cook executes single plan steps against the kitchen catalog.
//
// For each step the Executor selects one tool (and the ingredients the
// step handles) via the dynamic-decision service, constrained to the
// catalog; a selection naming anything outside the catalog counts as a
// decision-source failure and triggers the deterministic keyword rules.
// Usage is then simulated with a bounded per-tool delay and an outcome
// decided by a pluggable OutcomePolicy.
//
// # Key Types
//
//   - Executor: Runs one step, never fails outwardly
//   - ToolUsageRecord: Append-only record of one finished step
//   - OutcomePolicy: Decides simulated success/failure (default: always succeed)
//
// # Usage
//
//	exec := cook.NewExecutor(source, cook.DefaultConfig())
//	rec, err := exec.Execute(ctx, step, cat) // err only on cancellation
package cook
