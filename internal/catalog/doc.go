// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package catalog provides the fixed kitchen catalog of tools and ingredients.
//
// The catalog is loaded once from flat JSON files and is immutable for the
// lifetime of a cooking run. A Watcher can reload the files on change and
// atomically swap the catalog used by future runs; in-flight runs keep the
// copy they borrowed at start.
//
// # Key Types
//
//   - Tool: A kitchen tool with capability tags and a simulated usage cost
//   - Ingredient: A named ingredient with a category
//   - Catalog: The immutable tool and ingredient sets
//   - LoadError: Returned when the backing data is missing or malformed
//   - Watcher: fsnotify-based reloader with atomic swap
//
// # Usage
//
// Load the catalog at process start:
//
//	cat, err := catalog.Load("data")
//	if err != nil {
//	    log.Fatal(err) // the only start-time-fatal error in the core
//	}
package catalog
