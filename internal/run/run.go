// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package run drives the end-to-end cooking run state machine.
package run

import (
	"context"
	"strings"
	"sync/atomic"
	"time"

	"github.com/jeranaias/souschef/internal/catalog"
	"github.com/jeranaias/souschef/internal/cook"
	"github.com/jeranaias/souschef/internal/plan"
)

// =============================================================================
// RUN
// =============================================================================

// Run is one execution instance of the orchestration process for a single
// recipe. All mutation happens on the run's own goroutine; observers only
// ever read the atomically swapped snapshot, so the two sides never block
// each other.
type Run struct {
	id     string
	recipe string
	cat    *catalog.Catalog

	generator *plan.Generator
	executor  *cook.Executor

	// Owned exclusively by the run goroutine
	plan      *plan.Plan
	usageLog  []cook.ToolUsageRecord
	phase     Phase
	summary   string
	startedAt time.Time

	snapshot atomic.Pointer[Snapshot]
	cancel   context.CancelFunc
	done     chan struct{}
}

// newRun creates a run in the Planning phase. The caller starts it with
// execute on a fresh goroutine.
func newRun(id, recipe string, cat *catalog.Catalog, gen *plan.Generator, exec *cook.Executor) *Run {
	r := &Run{
		id:        id,
		recipe:    recipe,
		cat:       cat,
		generator: gen,
		executor:  exec,
		phase:     PhasePlanning,
		startedAt: time.Now(),
		done:      make(chan struct{}),
	}
	r.publish()
	return r
}

// ID returns the opaque run identifier.
func (r *Run) ID() string {
	return r.id
}

// Snapshot returns the latest published snapshot. It is wait-free, has no
// side effects, and is safe to call at arbitrarily high frequency.
func (r *Run) Snapshot() *Snapshot {
	return r.snapshot.Load()
}

// Done returns a channel closed when the run reaches a terminal phase.
func (r *Run) Done() <-chan struct{} {
	return r.done
}

// Cancel requests cancellation. The run transitions to the explicit
// Cancelled terminal phase; it never freezes silently in InProgress.
func (r *Run) Cancel() {
	if r.cancel != nil {
		r.cancel()
	}
}

// =============================================================================
// STATE MACHINE
// =============================================================================

// execute drives Planning -> Cooking -> Done on the run's goroutine.
// r.cancel is wired up by the caller before the goroutine starts.
func (r *Run) execute(ctx context.Context) {
	defer r.cancel()
	defer close(r.done)

	// Planning: obtain the plan. The generator never fails; a dead or
	// invalid decision source yields the deterministic fallback plan.
	r.plan = r.generator.Generate(ctx, r.recipe, r.cat)
	if ctx.Err() != nil {
		r.finishCancelled()
		return
	}

	r.phase = PhaseCooking
	r.publish()

	// Cooking: execute steps strictly in ordinal order. A failed step is
	// recorded and execution proceeds; steps are independent.
	for i := range r.plan.Steps {
		step := &r.plan.Steps[i]

		step.Advance(plan.StepInProgress)
		r.publish()

		rec, err := r.executor.Execute(ctx, *step, r.cat)
		if err != nil {
			// Cancellation mid-step: the step must not be left
			// InProgress, and the log must stay consistent with the
			// terminal statuses.
			step.Advance(plan.StepFailed)
			r.usageLog = append(r.usageLog, cook.ToolUsageRecord{
				StepOrdinal: step.Ordinal,
				Outcome:     cook.OutcomeFailure,
				Detail:      "cancelled before completion",
				Timestamp:   time.Now(),
			})
			r.finishCancelled()
			return
		}

		if rec.Outcome == cook.OutcomeSuccess {
			step.Advance(plan.StepDone)
		} else {
			step.Advance(plan.StepFailed)
		}
		r.usageLog = append(r.usageLog, rec)
		r.publish()
	}

	r.phase = PhaseDone
	r.summary = r.composeSummary()
	r.publish()
}

// finishCancelled moves the run to the Cancelled terminal phase.
func (r *Run) finishCancelled() {
	r.phase = PhaseCancelled
	r.summary = "Cancelled " + r.recipe + " after " + r.progress() + " steps"
	r.publish()
}

// composeSummary builds the terminal summary from the full usage log.
func (r *Run) composeSummary() string {
	snap := r.buildSnapshot()
	tools := snap.UsedTools()
	if len(tools) == 0 {
		return "Cooked " + r.recipe
	}
	return "Cooked " + r.recipe + " using " + strings.Join(tools, ", ")
}

// progress reports terminal steps over total, e.g. "2/5".
func (r *Run) progress() string {
	if r.plan == nil {
		return "0/0"
	}
	return r.plan.Progress()
}

// =============================================================================
// SNAPSHOT PUBLISHING
// =============================================================================

// publish swaps in a freshly built immutable snapshot. Only the run
// goroutine calls publish, so no further synchronization is needed on
// the underlying state.
func (r *Run) publish() {
	r.snapshot.Store(r.buildSnapshot())
}

// buildSnapshot deep-copies the run state into a Snapshot.
func (r *Run) buildSnapshot() *Snapshot {
	snap := &Snapshot{
		RunID:     r.id,
		Recipe:    r.recipe,
		Phase:     r.phase,
		Summary:   r.summary,
		StartedAt: r.startedAt,
	}

	if r.plan != nil {
		snap.Steps = make([]plan.Step, len(r.plan.Steps))
		copy(snap.Steps, r.plan.Steps)
	}

	if len(r.usageLog) > 0 {
		snap.UsageLog = make([]cook.ToolUsageRecord, len(r.usageLog))
		copy(snap.UsageLog, r.usageLog)
	}

	if r.phase.Terminal() {
		snap.FinishedAt = time.Now()
	}

	return snap
}
