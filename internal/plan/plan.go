// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package plan provides cooking plan generation for a run.
package plan

import (
	"fmt"
)

// =============================================================================
// STEP STATUS
// =============================================================================

// StepStatus represents the current state of a plan step.
// Transitions are monotonic: Pending -> InProgress -> Done|Failed.
type StepStatus int

const (
	// StepPending - Step not yet started
	StepPending StepStatus = iota

	// StepInProgress - Step currently executing
	StepInProgress

	// StepDone - Step completed successfully
	StepDone

	// StepFailed - Step finished with a failed outcome
	StepFailed
)

// String returns the string representation of a step status.
func (s StepStatus) String() string {
	switch s {
	case StepPending:
		return "Pending"
	case StepInProgress:
		return "InProgress"
	case StepDone:
		return "Done"
	case StepFailed:
		return "Failed"
	default:
		return "Unknown"
	}
}

// Terminal returns true if the status is Done or Failed.
func (s StepStatus) Terminal() bool {
	return s == StepDone || s == StepFailed
}

// =============================================================================
// STEP
// =============================================================================

// Step is a single step in a cooking plan.
type Step struct {
	// Ordinal is the step's unique position, 0..N-1
	Ordinal int

	// Description is the step text, e.g. "Pan-fry until golden brown"
	Description string

	// Status is the current execution status
	Status StepStatus
}

// Advance moves the step to next, enforcing monotonicity. A step never
// regresses and never leaves a terminal status.
func (s *Step) Advance(next StepStatus) error {
	valid := false
	switch s.Status {
	case StepPending:
		valid = next == StepInProgress
	case StepInProgress:
		valid = next == StepDone || next == StepFailed
	}
	if !valid {
		return fmt.Errorf("invalid step transition: %s -> %s", s.Status, next)
	}
	s.Status = next
	return nil
}

// =============================================================================
// PLAN
// =============================================================================

// Plan is the ordered sequence of steps decided for one run.
// A plan is immutable after creation: the run machine owns step statuses,
// everything else stays as generated.
type Plan struct {
	// Recipe is the recipe name the plan was generated for
	Recipe string

	// Steps are the ordered plan steps
	Steps []Step
}

// New builds a plan from step descriptions, assigning contiguous ordinals.
func New(recipe string, descriptions []string) *Plan {
	steps := make([]Step, len(descriptions))
	for i, d := range descriptions {
		steps[i] = Step{Ordinal: i, Description: d, Status: StepPending}
	}
	return &Plan{Recipe: recipe, Steps: steps}
}

// Validate checks the plan invariants: non-empty, ordinals unique and
// contiguous from 0, no empty descriptions.
func (p *Plan) Validate() error {
	if len(p.Steps) == 0 {
		return fmt.Errorf("plan for %q has no steps", p.Recipe)
	}
	for i, s := range p.Steps {
		if s.Ordinal != i {
			return fmt.Errorf("step %d has ordinal %d", i, s.Ordinal)
		}
		if s.Description == "" {
			return fmt.Errorf("step %d has empty description", i)
		}
	}
	return nil
}

// Clone returns a deep copy of the plan.
func (p *Plan) Clone() *Plan {
	steps := make([]Step, len(p.Steps))
	copy(steps, p.Steps)
	return &Plan{Recipe: p.Recipe, Steps: steps}
}

// CompletedSteps returns the number of steps in a terminal status.
func (p *Plan) CompletedSteps() int {
	count := 0
	for _, s := range p.Steps {
		if s.Status.Terminal() {
			count++
		}
	}
	return count
}

// Progress returns the current progress as a string (e.g., "2/5").
func (p *Plan) Progress() string {
	return fmt.Sprintf("%d/%d", p.CompletedSteps(), len(p.Steps))
}
