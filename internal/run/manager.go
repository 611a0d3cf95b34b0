// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package run drives the end-to-end cooking run state machine.
package run

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/jeranaias/souschef/internal/catalog"
	"github.com/jeranaias/souschef/internal/cook"
	"github.com/jeranaias/souschef/internal/plan"
)

// =============================================================================
// ERRORS
// =============================================================================

var (
	// ErrRunNotFound is returned when no run exists for an ID.
	ErrRunNotFound = errors.New("run not found")
)

// =============================================================================
// ARCHIVER
// =============================================================================

// Archiver receives the final snapshot of a terminal run. It is the
// archive half of the durable-execution boundary: the core hands the
// snapshot over and does not care how it is persisted.
type Archiver interface {
	Archive(snap *Snapshot) error
}

// =============================================================================
// MANAGER
// =============================================================================

// ManagerConfig holds the collaborators a Manager needs.
type ManagerConfig struct {
	// Catalog returns the catalog for new runs. Called once per StartRun,
	// so a reloading provider can swap catalogs between runs.
	Catalog func() *catalog.Catalog

	// Generator produces plans (required)
	Generator *plan.Generator

	// Executor runs steps (required)
	Executor *cook.Executor

	// Archiver receives terminal snapshots (optional)
	Archiver Archiver
}

// Manager starts, queries, cancels, and archives cooking runs, keyed by
// opaque run IDs. Multiple independent runs may execute concurrently;
// they share nothing but the read-only catalog. Queries never route
// through the execution path.
type Manager struct {
	cfg ManagerConfig

	mu   sync.RWMutex
	runs map[string]*Run
}

// NewManager creates a run manager.
func NewManager(cfg ManagerConfig) *Manager {
	return &Manager{
		cfg:  cfg,
		runs: make(map[string]*Run),
	}
}

// StartRun starts a new run for recipe and returns its opaque ID. The run
// executes on its own goroutine; progress is available immediately via
// Snapshot.
func (m *Manager) StartRun(ctx context.Context, recipe string) (string, error) {
	if recipe == "" {
		return "", errors.New("recipe must not be empty")
	}

	cat := m.cfg.Catalog()
	if cat == nil {
		return "", errors.New("no catalog available")
	}

	id := uuid.New().String()
	r := newRun(id, recipe, cat, m.cfg.Generator, m.cfg.Executor)

	runCtx, cancel := context.WithCancel(ctx)
	r.cancel = cancel

	m.mu.Lock()
	m.runs[id] = r
	m.mu.Unlock()

	go func() {
		r.execute(runCtx)
		if m.cfg.Archiver != nil {
			// Archive failures are deliberately not surfaced to the run:
			// the run's own state is already terminal and consistent.
			m.cfg.Archiver.Archive(r.Snapshot())
		}
	}()

	return id, nil
}

// Snapshot returns the latest snapshot for a run.
func (m *Manager) Snapshot(id string) (*Snapshot, error) {
	r, err := m.get(id)
	if err != nil {
		return nil, err
	}
	return r.Snapshot(), nil
}

// Cancel requests cancellation of a run.
func (m *Manager) Cancel(id string) error {
	r, err := m.get(id)
	if err != nil {
		return err
	}
	r.Cancel()
	return nil
}

// Wait blocks until the run reaches a terminal phase or ctx expires, and
// returns the final snapshot.
func (m *Manager) Wait(ctx context.Context, id string) (*Snapshot, error) {
	r, err := m.get(id)
	if err != nil {
		return nil, err
	}

	select {
	case <-r.Done():
		return r.Snapshot(), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// RunIDs returns the IDs of all known runs.
func (m *Manager) RunIDs() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ids := make([]string, 0, len(m.runs))
	for id := range m.runs {
		ids = append(ids, id)
	}
	return ids
}

// get looks up a run by ID.
func (m *Manager) get(id string) (*Run, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	r, ok := m.runs[id]
	if !ok {
		return nil, ErrRunNotFound
	}
	return r, nil
}
