// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package history archives finished cooking runs to SQLite.
package history

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/jeranaias/souschef/internal/run"
)

// =============================================================================
// ERRORS
// =============================================================================

var (
	// ErrNotArchived is returned when no archived run exists for an ID.
	ErrNotArchived = errors.New("run not archived")
)

// =============================================================================
// RUN META
// =============================================================================

// RunMeta is the listing view of an archived run.
type RunMeta struct {
	RunID      string
	Recipe     string
	Phase      string
	Summary    string
	Steps      int
	StartedAt  time.Time
	FinishedAt time.Time
}

// =============================================================================
// STORE
// =============================================================================

// Store persists terminal run snapshots in a SQLite database.
// Safe for concurrent use; database/sql serializes access.
type Store struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id          TEXT PRIMARY KEY,
	recipe      TEXT NOT NULL,
	phase       TEXT NOT NULL,
	summary     TEXT NOT NULL DEFAULT '',
	steps       INTEGER NOT NULL DEFAULT 0,
	started_at  TIMESTAMP NOT NULL,
	finished_at TIMESTAMP NOT NULL,
	snapshot    TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_runs_finished ON runs(finished_at);
`

// NewStore opens (or creates) the archive database at path.
func NewStore(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create archive directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open archive database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize archive schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// =============================================================================
// ARCHIVE OPERATIONS
// =============================================================================

// Archive writes a terminal snapshot. It implements run.Archiver.
// Re-archiving the same run ID replaces the previous row.
func (s *Store) Archive(snap *run.Snapshot) error {
	if snap == nil {
		return errors.New("nil snapshot")
	}
	if !snap.Phase.Terminal() {
		return fmt.Errorf("run %s is not terminal (phase %s)", snap.RunID, snap.Phase)
	}

	blob, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT OR REPLACE INTO runs
			(id, recipe, phase, summary, steps, started_at, finished_at, snapshot)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		snap.RunID, snap.Recipe, snap.Phase.String(), snap.Summary,
		len(snap.Steps), snap.StartedAt, snap.FinishedAt, string(blob))
	if err != nil {
		return fmt.Errorf("failed to archive run %s: %w", snap.RunID, err)
	}

	return nil
}

// Load returns the archived snapshot for a run ID.
func (s *Store) Load(id string) (*run.Snapshot, error) {
	var blob string
	err := s.db.QueryRow(`SELECT snapshot FROM runs WHERE id = ?`, id).Scan(&blob)
	if err == sql.ErrNoRows {
		return nil, ErrNotArchived
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load run %s: %w", id, err)
	}

	var snap run.Snapshot
	if err := json.Unmarshal([]byte(blob), &snap); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot for %s: %w", id, err)
	}

	return &snap, nil
}

// List returns metadata for archived runs, most recently finished first.
func (s *Store) List(limit int) ([]RunMeta, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.db.Query(`
		SELECT id, recipe, phase, summary, steps, started_at, finished_at
		FROM runs ORDER BY finished_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var metas []RunMeta
	for rows.Next() {
		var m RunMeta
		if err := rows.Scan(&m.RunID, &m.Recipe, &m.Phase, &m.Summary,
			&m.Steps, &m.StartedAt, &m.FinishedAt); err != nil {
			return nil, fmt.Errorf("failed to scan run row: %w", err)
		}
		metas = append(metas, m)
	}

	return metas, rows.Err()
}
