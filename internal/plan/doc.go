// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package plan provides cooking plan generation for a run.
//
// A Generator asks the dynamic-decision service to break a recipe into
// high-level cooking phases. When the service is unavailable, times out,
// or replies with something unparseable, the generator falls back to a
// deterministic plan keyed on the recipe name, so Generate never fails
// outwardly and replays reproduce identical decisions.
//
// # Key Types
//
//   - Plan: Ordered, immutable list of steps for one run
//   - Step: Single step with ordinal, description, and monotonic status
//   - Generator: LLM-backed plan creation with deterministic fallback
//
// # Usage
//
//	gen := plan.NewGenerator(source)
//	p := gen.Generate(ctx, "Chicken Parmesan", cat) // never nil, never empty
package plan
