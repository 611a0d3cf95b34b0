// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides unified configuration loading for souschef.
//
// Supports both TOML and JSON configuration formats, with sensible
// defaults, environment variable overrides, and validation. The loaded
// Config is passed explicitly into constructors; nothing reads ambient
// global state, so fallback behavior is testable without environment
// manipulation.
//
// Configuration file locations (in order of precedence):
//   - ~/.souschef/config.toml
//   - ~/.souschef/config.json
//   - Built-in defaults
package config
