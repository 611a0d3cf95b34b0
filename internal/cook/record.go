// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cook executes single plan steps against the kitchen catalog.
package cook

import (
	"time"
)

// =============================================================================
// OUTCOME
// =============================================================================

// Outcome is the result of one simulated tool usage.
type Outcome int

const (
	// OutcomeSuccess - the tool usage succeeded
	OutcomeSuccess Outcome = iota

	// OutcomeFailure - the tool usage failed; the run records it and moves on
	OutcomeFailure
)

// String returns the string representation of an outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "Success"
	case OutcomeFailure:
		return "Failure"
	default:
		return "Unknown"
	}
}

// =============================================================================
// TOOL USAGE RECORD
// =============================================================================

// ToolUsageRecord records one finished (or failed) step. Records are
// appended exactly once per step to the run's append-only usage log and
// never mutated afterwards.
type ToolUsageRecord struct {
	// StepOrdinal is the ordinal of the step this record belongs to
	StepOrdinal int `json:"step_ordinal"`

	// Tool is the name of the tool that was used
	Tool string `json:"tool"`

	// Ingredients are the ingredient names handled during the step
	Ingredients []string `json:"ingredients,omitempty"`

	// Outcome is the simulated usage result
	Outcome Outcome `json:"outcome"`

	// Detail is a human-readable result line
	Detail string `json:"detail"`

	// Timestamp is when the usage finished
	Timestamp time.Time `json:"timestamp"`
}
