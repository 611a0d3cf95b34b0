// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cook executes single plan steps against the kitchen catalog.
package cook

// =============================================================================
// OUTCOME POLICY
// =============================================================================

// OutcomePolicy decides whether a simulated tool usage succeeds. The
// decision must be deterministic for a given (step ordinal, tool) so that
// replayed runs reproduce identical outcomes.
type OutcomePolicy interface {
	// Decide returns the outcome for using tool on the step at ordinal.
	Decide(ordinal int, tool string) Outcome
}

// AlwaysSucceed is the default policy: every simulated usage succeeds.
type AlwaysSucceed struct{}

// Decide always returns OutcomeSuccess.
func (AlwaysSucceed) Decide(int, string) Outcome {
	return OutcomeSuccess
}

// FailOrdinals fails the steps whose ordinals appear in the set and
// succeeds everywhere else. Used for failure-injection testing.
type FailOrdinals map[int]bool

// Decide returns OutcomeFailure for listed ordinals.
func (f FailOrdinals) Decide(ordinal int, _ string) Outcome {
	if f[ordinal] {
		return OutcomeFailure
	}
	return OutcomeSuccess
}
