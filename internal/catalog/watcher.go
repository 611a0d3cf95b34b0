// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package catalog provides the fixed kitchen catalog of tools and ingredients.
package catalog

import (
	"context"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
)

// =============================================================================
// CATALOG WATCHER
// =============================================================================

// Watcher reloads the catalog when its backing files change and publishes
// the result with an atomic swap. Runs started after a reload see the new
// catalog; runs already executing keep the immutable copy they borrowed.
type Watcher struct {
	dir      string
	watcher  *fsnotify.Watcher
	debounce time.Duration
	current  atomic.Pointer[Catalog]

	mu      sync.Mutex
	pending map[string]time.Time // changed path -> last event time

	ctx    context.Context
	cancel context.CancelFunc

	// onReload is called after each successful swap (for logging)
	onReload func(*Catalog)

	// onError is called when a reload attempt fails (the previous
	// catalog stays in place)
	onError func(error)
}

// NewWatcher loads the catalog from dir and prepares a file watcher over it.
// The initial Load failure is returned as-is; after that, reload failures
// keep the last good catalog.
func NewWatcher(dir string, debounce time.Duration) (*Watcher, error) {
	initial, err := Load(dir)
	if err != nil {
		return nil, err
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	if debounce <= 0 {
		debounce = 500 * time.Millisecond
	}

	ctx, cancel := context.WithCancel(context.Background())

	w := &Watcher{
		dir:      dir,
		watcher:  fw,
		debounce: debounce,
		pending:  make(map[string]time.Time),
		ctx:      ctx,
		cancel:   cancel,
	}
	w.current.Store(initial)

	return w, nil
}

// Current returns the latest successfully loaded catalog.
func (w *Watcher) Current() *Catalog {
	return w.current.Load()
}

// SetReloadCallback sets the function called after each successful reload.
func (w *Watcher) SetReloadCallback(fn func(*Catalog)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onReload = fn
}

// SetErrorCallback sets the function called when a reload fails.
func (w *Watcher) SetErrorCallback(fn func(error)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onError = fn
}

// Watch starts watching the data directory for changes.
func (w *Watcher) Watch() error {
	if err := w.watcher.Add(w.dir); err != nil {
		return err
	}

	go w.processEvents()
	go w.processPending()

	return nil
}

// Close stops watching and releases resources.
func (w *Watcher) Close() error {
	w.cancel()
	return w.watcher.Close()
}

// =============================================================================
// EVENT PROCESSING
// =============================================================================

// processEvents records file change events for debounced handling.
func (w *Watcher) processEvents() {
	for {
		select {
		case <-w.ctx.Done():
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !w.isCatalogFile(event.Name) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			w.mu.Lock()
			w.pending[event.Name] = time.Now()
			w.mu.Unlock()
		case _, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
		}
	}
}

// processPending reloads the catalog once changes settle past the debounce.
func (w *Watcher) processPending() {
	ticker := time.NewTicker(w.debounce / 2)
	defer ticker.Stop()

	for {
		select {
		case <-w.ctx.Done():
			return
		case <-ticker.C:
			w.mu.Lock()
			settled := false
			now := time.Now()
			for path, t := range w.pending {
				if now.Sub(t) >= w.debounce {
					delete(w.pending, path)
					settled = true
				}
			}
			onReload := w.onReload
			onError := w.onError
			w.mu.Unlock()

			if !settled {
				continue
			}

			cat, err := Load(w.dir)
			if err != nil {
				if onError != nil {
					onError(err)
				}
				continue
			}

			w.current.Store(cat)
			if onReload != nil {
				onReload(cat)
			}
		}
	}
}

// isCatalogFile reports whether path is one of the watched data files.
func (w *Watcher) isCatalogFile(path string) bool {
	base := filepath.Base(path)
	return base == ToolsFile || base == IngredientsFile
}
