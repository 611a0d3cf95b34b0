// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package run drives the end-to-end cooking run state machine.
package run

import (
	"time"

	"github.com/jeranaias/souschef/internal/cook"
	"github.com/jeranaias/souschef/internal/plan"
)

// =============================================================================
// PHASE
// =============================================================================

// Phase is the state of a cooking run.
type Phase int

const (
	// PhasePlanning - the run is obtaining its plan
	PhasePlanning Phase = iota

	// PhaseCooking - the run is executing plan steps in order
	PhaseCooking

	// PhaseDone - terminal: every step reached Done or Failed
	PhaseDone

	// PhaseCancelled - terminal: the run was cancelled mid-flight
	PhaseCancelled
)

// String returns the string representation of a phase.
func (p Phase) String() string {
	switch p {
	case PhasePlanning:
		return "Planning"
	case PhaseCooking:
		return "Cooking"
	case PhaseDone:
		return "Done"
	case PhaseCancelled:
		return "Cancelled"
	default:
		return "Unknown"
	}
}

// Terminal returns true for Done and Cancelled.
func (p Phase) Terminal() bool {
	return p == PhaseDone || p == PhaseCancelled
}

// =============================================================================
// SNAPSHOT
// =============================================================================

// Snapshot is the read-only projection of a run at an instant. Snapshots
// are immutable once published: the run builds a fresh deep copy after
// every transition and swaps it in atomically, so a reader never observes
// a torn view: in every snapshot len(UsageLog) equals the number of
// steps whose status is Done or Failed.
type Snapshot struct {
	// RunID is the opaque run identifier
	RunID string `json:"run_id"`

	// Recipe is the recipe the run was started for
	Recipe string `json:"recipe"`

	// Phase is the run phase at the instant of the snapshot
	Phase Phase `json:"phase"`

	// Steps are the plan steps with their statuses (nil until planned)
	Steps []plan.Step `json:"steps,omitempty"`

	// UsageLog is the append-only tool usage log
	UsageLog []cook.ToolUsageRecord `json:"usage_log,omitempty"`

	// Summary is the terminal summary (set once the run finishes)
	Summary string `json:"summary,omitempty"`

	// StartedAt is when the run started
	StartedAt time.Time `json:"started_at"`

	// FinishedAt is when the run reached a terminal phase
	FinishedAt time.Time `json:"finished_at,omitempty"`
}

// CurrentStep returns the ordinal of the step currently InProgress,
// or -1 when no step is executing.
func (s *Snapshot) CurrentStep() int {
	for _, st := range s.Steps {
		if st.Status == plan.StepInProgress {
			return st.Ordinal
		}
	}
	return -1
}

// UsedTools returns the distinct tools in the usage log, in first-use order.
func (s *Snapshot) UsedTools() []string {
	seen := make(map[string]bool)
	var tools []string
	for _, rec := range s.UsageLog {
		if rec.Tool != "" && !seen[rec.Tool] {
			seen[rec.Tool] = true
			tools = append(tools, rec.Tool)
		}
	}
	return tools
}
