// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}

	if cfg.DataDir != "data" {
		t.Errorf("DataDir = %q", cfg.DataDir)
	}
	if !cfg.LLM.Enabled || cfg.LLM.Model != "qwen2.5:7b" {
		t.Errorf("LLM defaults wrong: %+v", cfg.LLM)
	}
	if cfg.Cook.MaxStepDelayMs != 2000 {
		t.Errorf("MaxStepDelayMs = %d", cfg.Cook.MaxStepDelayMs)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty data dir", func(c *Config) { c.DataDir = "" }},
		{"zero llm timeout", func(c *Config) { c.LLM.TimeoutSecs = 0 }},
		{"negative rate", func(c *Config) { c.LLM.RequestsPerSecond = -1 }},
		{"negative delay", func(c *Config) { c.Cook.MaxStepDelayMs = -1 }},
		{"negative debounce", func(c *Config) { c.Watch.DebounceMs = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Validate should fail")
			}
		})
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	body := `
data_dir = "/srv/kitchen"

[llm]
enabled = false
base_url = "http://10.0.0.5:11434"
model = "llama3.2:3b"
timeout_secs = 5
requests_per_second = 2.5

[cook]
max_step_delay_ms = 100

[history]
enabled = false
path = "/tmp/archive.db"
`
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}

	if cfg.DataDir != "/srv/kitchen" {
		t.Errorf("DataDir = %q", cfg.DataDir)
	}
	if cfg.LLM.Enabled {
		t.Error("LLM.Enabled should be false")
	}
	if cfg.LLM.Model != "llama3.2:3b" || cfg.LLM.TimeoutSecs != 5 {
		t.Errorf("LLM = %+v", cfg.LLM)
	}
	if cfg.LLM.RequestsPerSecond != 2.5 {
		t.Errorf("RequestsPerSecond = %g", cfg.LLM.RequestsPerSecond)
	}
	if cfg.Cook.MaxStepDelayMs != 100 {
		t.Errorf("MaxStepDelayMs = %d", cfg.Cook.MaxStepDelayMs)
	}

	// Sections absent from the file keep their defaults.
	if !cfg.Watch.Enabled || cfg.Watch.DebounceMs != 500 {
		t.Errorf("Watch = %+v, want defaults", cfg.Watch)
	}
}

func TestLoadFileMissing(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Error("LoadFile on a missing file should fail")
	}
}

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv("SOUSCHEF_DATA_DIR", "/env/data")
	t.Setenv("SOUSCHEF_LLM_URL", "http://env:11434")
	t.Setenv("SOUSCHEF_LLM_MODEL", "env-model")
	t.Setenv("SOUSCHEF_LLM_ENABLED", "false")
	t.Setenv("SOUSCHEF_HISTORY_PATH", "/env/history.db")

	cfg := Default()
	cfg.ApplyEnvOverrides()

	if cfg.DataDir != "/env/data" {
		t.Errorf("DataDir = %q", cfg.DataDir)
	}
	if cfg.LLM.BaseURL != "http://env:11434" || cfg.LLM.Model != "env-model" {
		t.Errorf("LLM = %+v", cfg.LLM)
	}
	if cfg.LLM.Enabled {
		t.Error("SOUSCHEF_LLM_ENABLED=false should disable the LLM")
	}
	if cfg.History.Path != "/env/history.db" {
		t.Errorf("History.Path = %q", cfg.History.Path)
	}
}

func TestApplyEnvOverridesIgnoresBadBool(t *testing.T) {
	t.Setenv("SOUSCHEF_LLM_ENABLED", "maybe")

	cfg := Default()
	cfg.ApplyEnvOverrides()
	if !cfg.LLM.Enabled {
		t.Error("an unparseable bool should leave the value unchanged")
	}
}

func TestHistoryPath(t *testing.T) {
	cfg := Default()
	cfg.History.Path = "/explicit/history.db"
	path, err := cfg.HistoryPath()
	if err != nil {
		t.Fatal(err)
	}
	if path != "/explicit/history.db" {
		t.Errorf("HistoryPath = %q", path)
	}

	cfg.History.Path = ""
	path, err = cfg.HistoryPath()
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Base(path) != "history.db" {
		t.Errorf("default HistoryPath = %q", path)
	}
}
