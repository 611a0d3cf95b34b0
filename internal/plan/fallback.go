// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package plan provides cooking plan generation for a run.
package plan

import (
	"fmt"
	"strings"

	"github.com/jeranaias/souschef/internal/catalog"
)

// =============================================================================
// DETERMINISTIC FALLBACK
// =============================================================================

// Fallback produces the deterministic plan for a recipe. It is a pure
// function of (recipe, catalog): identical inputs always yield identical
// plans, which keeps replayed runs byte-for-byte reproducible when the
// dynamic source is bypassed.
func Fallback(recipe string, cat *catalog.Catalog) *Plan {
	lower := strings.ToLower(recipe)

	switch {
	case strings.Contains(lower, "chicken parm"):
		return New(recipe, []string{
			"Pound and bread the chicken",
			"Pan-fry until golden brown",
			"Assemble with sauce and cheese",
			"Bake until cheese melts",
		})
	case strings.Contains(lower, "pasta"):
		return New(recipe, []string{
			"Boil pasta in salted water",
			"Prepare the sauce",
			"Combine pasta with sauce",
			"Serve with cheese",
		})
	case strings.Contains(lower, "toast"):
		return New(recipe, []string{
			"Whisk eggs with milk and spices",
			"Dip bread slices in mixture",
			"Cook in buttered skillet until golden",
			"Serve with syrup",
		})
	default:
		return genericPlan(recipe, cat)
	}
}

// genericPlan synthesizes a small plan for an unknown recipe from whatever
// the catalog offers. Deterministic: depends only on catalog order.
func genericPlan(recipe string, cat *catalog.Catalog) *Plan {
	cookStep := "Cook the main components"
	if tool := firstToolWithAny(cat, "fry", "boil", "bake"); tool != "" {
		cookStep = fmt.Sprintf("Cook the main components in the %s", tool)
	}

	return New(recipe, []string{
		"Prepare the ingredients",
		cookStep,
		fmt.Sprintf("Combine and finish the %s", recipe),
		"Serve hot",
	})
}

// firstToolWithAny returns the first catalog tool carrying any of the given
// capability tags, or "" when none match.
func firstToolWithAny(cat *catalog.Catalog, capabilities ...string) string {
	for _, t := range cat.Tools {
		for _, c := range t.Capabilities {
			for _, want := range capabilities {
				if c == want {
					return t.Name
				}
			}
		}
	}
	return ""
}
