// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides unified configuration loading for souschef.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/BurntSushi/toml"

	"github.com/jeranaias/souschef/internal/util"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete souschef configuration.
type Config struct {
	// DataDir is the directory holding tools.json and ingredients.json
	DataDir string `toml:"data_dir" json:"data_dir"`

	// LLM configures the dynamic-decision service
	LLM LLMConfig `toml:"llm" json:"llm"`

	// Cook configures step execution
	Cook CookConfig `toml:"cook" json:"cook"`

	// History configures the run archive
	History HistoryConfig `toml:"history" json:"history"`

	// Watch configures catalog file watching
	Watch WatchConfig `toml:"watch" json:"watch"`
}

// LLMConfig contains dynamic-decision service configuration.
type LLMConfig struct {
	// Enabled turns the dynamic path on; when false every decision uses
	// the deterministic fallback
	Enabled bool `toml:"enabled" json:"enabled"`

	// BaseURL is the chat API base URL
	BaseURL string `toml:"base_url" json:"base_url"`

	// Model is the model used for decisions
	Model string `toml:"model" json:"model"`

	// TimeoutSecs bounds each decision call
	TimeoutSecs int `toml:"timeout_secs" json:"timeout_secs"`

	// RequestsPerSecond limits the decision call rate
	RequestsPerSecond float64 `toml:"requests_per_second" json:"requests_per_second"`
}

// CookConfig contains step execution configuration.
type CookConfig struct {
	// MaxStepDelayMs clamps the simulated per-tool usage delay
	MaxStepDelayMs int `toml:"max_step_delay_ms" json:"max_step_delay_ms"`
}

// HistoryConfig contains run archive configuration.
type HistoryConfig struct {
	// Enabled turns archiving of finished runs on
	Enabled bool `toml:"enabled" json:"enabled"`

	// Path is the SQLite database path (empty = ~/.souschef/history.db)
	Path string `toml:"path" json:"path"`
}

// WatchConfig contains catalog watching configuration.
type WatchConfig struct {
	// Enabled turns catalog file watching on
	Enabled bool `toml:"enabled" json:"enabled"`

	// DebounceMs is how long changes settle before a reload
	DebounceMs int `toml:"debounce_ms" json:"debounce_ms"`
}

// =============================================================================
// DEFAULT CONFIGURATION
// =============================================================================

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		DataDir: "data",

		LLM: LLMConfig{
			Enabled:           true,
			BaseURL:           "http://127.0.0.1:11434",
			Model:             "qwen2.5:7b",
			TimeoutSecs:       10,
			RequestsPerSecond: 5,
		},

		Cook: CookConfig{
			MaxStepDelayMs: 2000,
		},

		History: HistoryConfig{
			Enabled: true,
			Path:    "",
		},

		Watch: WatchConfig{
			Enabled:    true,
			DebounceMs: 500,
		},
	}
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// ConfigDir returns the souschef configuration directory path.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".souschef"), nil
}

// HistoryPath resolves the run archive database path.
func (c *Config) HistoryPath() (string, error) {
	if c.History.Path != "" {
		return c.History.Path, nil
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "history.db"), nil
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load loads configuration from the config file(s).
// Tries TOML first, then JSON, and falls back to defaults.
// Environment overrides are applied last.
func Load() (*Config, error) {
	cfg := Default()

	dir, err := ConfigDir()
	if err == nil {
		tomlPath := filepath.Join(dir, "config.toml")
		jsonPath := filepath.Join(dir, "config.json")

		if _, statErr := os.Stat(tomlPath); statErr == nil {
			if _, err := toml.DecodeFile(tomlPath, cfg); err != nil {
				return nil, fmt.Errorf("failed to load TOML config: %w", err)
			}
		} else if _, statErr := os.Stat(jsonPath); statErr == nil {
			data, err := os.ReadFile(jsonPath)
			if err != nil {
				return nil, fmt.Errorf("failed to read JSON config: %w", err)
			}
			if err := json.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to load JSON config: %w", err)
			}
		}
	}

	cfg.ApplyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// LoadFile loads configuration from an explicit TOML file, skipping the
// default search path. Used by tests and the -config flag.
func LoadFile(path string) (*Config, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to load config %s: %w", path, err)
	}

	cfg.ApplyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies SOUSCHEF_* environment variables on top of
// the loaded values.
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv("SOUSCHEF_DATA_DIR"); v != "" {
		c.DataDir = v
	}
	if v := os.Getenv("SOUSCHEF_LLM_URL"); v != "" {
		c.LLM.BaseURL = v
	}
	if v := os.Getenv("SOUSCHEF_LLM_MODEL"); v != "" {
		c.LLM.Model = v
	}
	if v := os.Getenv("SOUSCHEF_LLM_ENABLED"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.LLM.Enabled = b
		}
	}
	if v := os.Getenv("SOUSCHEF_HISTORY_PATH"); v != "" {
		c.History.Path = v
	}
}

// =============================================================================
// VALIDATION
// =============================================================================

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("data_dir must not be empty")
	}
	if c.LLM.TimeoutSecs <= 0 {
		return fmt.Errorf("llm.timeout_secs must be positive, got %d", c.LLM.TimeoutSecs)
	}
	if c.LLM.RequestsPerSecond <= 0 {
		return fmt.Errorf("llm.requests_per_second must be positive, got %g", c.LLM.RequestsPerSecond)
	}
	if c.Cook.MaxStepDelayMs < 0 {
		return fmt.Errorf("cook.max_step_delay_ms must not be negative, got %d", c.Cook.MaxStepDelayMs)
	}
	if c.Watch.DebounceMs < 0 {
		return fmt.Errorf("watch.debounce_ms must not be negative, got %d", c.Watch.DebounceMs)
	}
	return nil
}

// =============================================================================
// SAVE
// =============================================================================

// Save writes the configuration to ~/.souschef/config.toml atomically.
func (c *Config) Save() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	return util.AtomicWriteFile(filepath.Join(dir, "config.toml"), data, 0644)
}
