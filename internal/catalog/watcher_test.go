// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package catalog

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatcherInitialLoad(t *testing.T) {
	dir := writeCatalogDir(t, validTools, validIngredients)

	w, err := NewWatcher(dir, 50*time.Millisecond)
	if err != nil {
		t.Fatalf("NewWatcher failed: %v", err)
	}
	defer w.Close()

	cat := w.Current()
	if cat == nil || len(cat.Tools) != 2 {
		t.Fatal("watcher did not publish the initial catalog")
	}
}

func TestWatcherInitialLoadFailure(t *testing.T) {
	if _, err := NewWatcher(filepath.Join(t.TempDir(), "nope"), 0); err == nil {
		t.Fatal("NewWatcher on a missing dir should fail")
	}
}

func TestWatcherReload(t *testing.T) {
	dir := writeCatalogDir(t, validTools, validIngredients)

	w, err := NewWatcher(dir, 20*time.Millisecond)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	reloaded := make(chan *Catalog, 1)
	w.SetReloadCallback(func(c *Catalog) {
		select {
		case reloaded <- c:
		default:
		}
	})

	if err := w.Watch(); err != nil {
		t.Fatalf("Watch failed: %v", err)
	}

	updated := `[
		{"name": "Skillet", "capabilities": ["fry"], "cost_ms": 200},
		{"name": "Oven", "capabilities": ["bake"], "cost_ms": 500},
		{"name": "Grater", "capabilities": ["grate"], "cost_ms": 50}
	]`
	if err := os.WriteFile(filepath.Join(dir, ToolsFile), []byte(updated), 0644); err != nil {
		t.Fatal(err)
	}

	select {
	case cat := <-reloaded:
		if len(cat.Tools) != 3 {
			t.Errorf("reloaded catalog has %d tools, want 3", len(cat.Tools))
		}
	case <-time.After(5 * time.Second):
		t.Fatal("reload never fired")
	}

	if got := len(w.Current().Tools); got != 3 {
		t.Errorf("Current() has %d tools after reload, want 3", got)
	}
}

func TestWatcherKeepsLastGoodOnBadReload(t *testing.T) {
	dir := writeCatalogDir(t, validTools, validIngredients)

	w, err := NewWatcher(dir, 20*time.Millisecond)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	failed := make(chan error, 1)
	w.SetErrorCallback(func(err error) {
		select {
		case failed <- err:
		default:
		}
	})

	if err := w.Watch(); err != nil {
		t.Fatal(err)
	}

	if err := os.WriteFile(filepath.Join(dir, ToolsFile), []byte(`{broken`), 0644); err != nil {
		t.Fatal(err)
	}

	select {
	case <-failed:
	case <-time.After(5 * time.Second):
		t.Fatal("error callback never fired")
	}

	// The previous catalog must survive the failed reload.
	if got := len(w.Current().Tools); got != 2 {
		t.Errorf("Current() has %d tools after failed reload, want the original 2", got)
	}
}
