// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// writeCatalogDir writes tools.json and ingredients.json into a temp dir.
func writeCatalogDir(t *testing.T, tools, ingredients string) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ToolsFile), []byte(tools), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, IngredientsFile), []byte(ingredients), 0644); err != nil {
		t.Fatal(err)
	}
	return dir
}

const validTools = `[
	{"name": "Skillet", "capabilities": ["fry", "saute"], "cost_ms": 200},
	{"name": "Oven", "capabilities": ["bake"], "cost_ms": 500}
]`

const validIngredients = `[
	{"name": "Bread", "category": "grain"},
	{"name": "Butter", "category": "dairy"}
]`

func TestLoad(t *testing.T) {
	dir := writeCatalogDir(t, validTools, validIngredients)

	cat, err := Load(dir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if len(cat.Tools) != 2 {
		t.Errorf("got %d tools, want 2", len(cat.Tools))
	}
	if len(cat.Ingredients) != 2 {
		t.Errorf("got %d ingredients, want 2", len(cat.Ingredients))
	}

	skillet := cat.ToolByName("Skillet")
	if skillet == nil {
		t.Fatal("Skillet not found")
	}
	if skillet.CostMs != 200 {
		t.Errorf("Skillet cost = %d, want 200", skillet.CostMs)
	}
	if len(skillet.Capabilities) != 2 || skillet.Capabilities[0] != "fry" {
		t.Errorf("Skillet capabilities = %v", skillet.Capabilities)
	}
}

func TestLoadMissingDir(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope"))
	if err == nil {
		t.Fatal("Load of missing dir should fail")
	}

	var loadErr *LoadError
	if !errors.As(err, &loadErr) {
		t.Fatalf("error type %T, want *LoadError", err)
	}
	if loadErr.Path == "" {
		t.Error("LoadError should name the failing path")
	}
}

func TestLoadMalformed(t *testing.T) {
	tests := []struct {
		name        string
		tools       string
		ingredients string
	}{
		{"invalid tools json", `{not json`, validIngredients},
		{"invalid ingredients json", validTools, `{not json`},
		{"empty tools list", `[]`, validIngredients},
		{"empty ingredients list", validTools, `[]`},
		{"tool with empty name", `[{"name": "", "capabilities": []}]`, validIngredients},
		{"ingredient with empty name", validTools, `[{"name": ""}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := writeCatalogDir(t, tt.tools, tt.ingredients)
			_, err := Load(dir)
			if err == nil {
				t.Fatal("Load should fail")
			}
			var loadErr *LoadError
			if !errors.As(err, &loadErr) {
				t.Errorf("error type %T, want *LoadError", err)
			}
		})
	}
}

func TestLookups(t *testing.T) {
	dir := writeCatalogDir(t, validTools, validIngredients)
	cat, err := Load(dir)
	if err != nil {
		t.Fatal(err)
	}

	if !cat.HasTool("Oven") || cat.HasTool("Microwave") {
		t.Error("HasTool lookup wrong")
	}
	if !cat.HasIngredient("Bread") || cat.HasIngredient("Caviar") {
		t.Error("HasIngredient lookup wrong")
	}
	if cat.ToolByName("Microwave") != nil {
		t.Error("ToolByName should return nil for unknown tools")
	}

	names := cat.ToolNames()
	if len(names) != 2 || names[0] != "Skillet" || names[1] != "Oven" {
		t.Errorf("ToolNames() = %v", names)
	}
	ings := cat.IngredientNames()
	if len(ings) != 2 || ings[0] != "Bread" {
		t.Errorf("IngredientNames() = %v", ings)
	}
}

func TestLoadErrorMessage(t *testing.T) {
	cause := errors.New("boom")
	err := &LoadError{Path: "/x/tools.json", Message: "failed to read tools", Cause: cause}

	msg := err.Error()
	for _, want := range []string{"catalog:", "/x/tools.json", "boom"} {
		if !strings.Contains(msg, want) {
			t.Errorf("error %q missing %q", msg, want)
		}
	}
	if !errors.Is(err, cause) {
		t.Error("LoadError should unwrap to its cause")
	}
}
