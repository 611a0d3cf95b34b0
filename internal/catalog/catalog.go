// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package catalog provides the fixed kitchen catalog of tools and ingredients.
package catalog

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// =============================================================================
// ERRORS
// =============================================================================

// LoadError indicates the catalog data files are missing or malformed.
// It is the only error in the core that is fatal to a run at start time:
// without a catalog no meaningful plan or execution is possible.
type LoadError struct {
	// Path is the file that failed to load
	Path string

	// Message describes what went wrong
	Message string

	// Cause is the underlying error, if any
	Cause error
}

func (e *LoadError) Error() string {
	msg := "catalog: " + e.Message
	if e.Path != "" {
		msg += " (" + e.Path + ")"
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}

// =============================================================================
// CATALOG TYPES
// =============================================================================

// Tool is a kitchen tool available to the chef.
type Tool struct {
	// Name is the tool's display name, e.g. "Skillet"
	Name string `json:"name"`

	// Capabilities are the action tags the tool supports, e.g. "fry"
	Capabilities []string `json:"capabilities"`

	// CostMs is the simulated usage cost in milliseconds
	CostMs int `json:"cost_ms"`
}

// Ingredient is an ingredient available to the chef.
type Ingredient struct {
	// Name is the ingredient's display name, e.g. "Chicken Breast"
	Name string `json:"name"`

	// Category groups ingredients, e.g. "protein", "dairy"
	Category string `json:"category"`
}

// Catalog holds the fixed sets of tools and ingredients for a kitchen.
// A Catalog is read-only after Load; runs borrow it by reference and
// must never mutate it.
type Catalog struct {
	Tools       []Tool
	Ingredients []Ingredient
}

// =============================================================================
// LOADING
// =============================================================================

// File names the catalog loader expects inside its data directory.
const (
	ToolsFile       = "tools.json"
	IngredientsFile = "ingredients.json"
)

// Load reads tools.json and ingredients.json from dir and returns the
// assembled catalog. Any missing or malformed file yields a *LoadError.
func Load(dir string) (*Catalog, error) {
	tools, err := loadTools(filepath.Join(dir, ToolsFile))
	if err != nil {
		return nil, err
	}

	ingredients, err := loadIngredients(filepath.Join(dir, IngredientsFile))
	if err != nil {
		return nil, err
	}

	return &Catalog{Tools: tools, Ingredients: ingredients}, nil
}

// loadTools reads and validates the tool list.
func loadTools(path string) ([]Tool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Path: path, Message: "failed to read tools", Cause: err}
	}

	var tools []Tool
	if err := json.Unmarshal(data, &tools); err != nil {
		return nil, &LoadError{Path: path, Message: "malformed tools data", Cause: err}
	}

	if len(tools) == 0 {
		return nil, &LoadError{Path: path, Message: "tools list is empty"}
	}

	for _, t := range tools {
		if t.Name == "" {
			return nil, &LoadError{Path: path, Message: "tool with empty name"}
		}
	}

	return tools, nil
}

// loadIngredients reads and validates the ingredient list.
func loadIngredients(path string) ([]Ingredient, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Path: path, Message: "failed to read ingredients", Cause: err}
	}

	var ingredients []Ingredient
	if err := json.Unmarshal(data, &ingredients); err != nil {
		return nil, &LoadError{Path: path, Message: "malformed ingredients data", Cause: err}
	}

	if len(ingredients) == 0 {
		return nil, &LoadError{Path: path, Message: "ingredients list is empty"}
	}

	for _, ing := range ingredients {
		if ing.Name == "" {
			return nil, &LoadError{Path: path, Message: "ingredient with empty name"}
		}
	}

	return ingredients, nil
}

// =============================================================================
// LOOKUPS
// =============================================================================

// HasTool reports whether a tool with the given name exists in the catalog.
func (c *Catalog) HasTool(name string) bool {
	for _, t := range c.Tools {
		if t.Name == name {
			return true
		}
	}
	return false
}

// ToolByName returns the tool with the given name, or nil if absent.
func (c *Catalog) ToolByName(name string) *Tool {
	for i := range c.Tools {
		if c.Tools[i].Name == name {
			return &c.Tools[i]
		}
	}
	return nil
}

// HasIngredient reports whether an ingredient with the given name exists.
func (c *Catalog) HasIngredient(name string) bool {
	for _, ing := range c.Ingredients {
		if ing.Name == name {
			return true
		}
	}
	return false
}

// ToolNames returns the names of all tools in catalog order.
func (c *Catalog) ToolNames() []string {
	names := make([]string, len(c.Tools))
	for i, t := range c.Tools {
		names[i] = t.Name
	}
	return names
}

// IngredientNames returns the names of all ingredients in catalog order.
func (c *Catalog) IngredientNames() []string {
	names := make([]string, len(c.Ingredients))
	for i, ing := range c.Ingredients {
		names[i] = ing.Name
	}
	return names
}
