// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package plan provides cooking plan generation for a run.
package plan

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/jeranaias/souschef/internal/catalog"
	"github.com/jeranaias/souschef/internal/llm"
)

// =============================================================================
// PLAN GENERATOR
// =============================================================================

// Generator generates cooking plans for a recipe using the dynamic-decision
// service, falling back to the deterministic generator on any failure.
type Generator struct {
	source llm.DecisionSource
}

// NewGenerator creates a new plan generator. A nil source skips the dynamic
// path entirely and always produces the deterministic fallback plan.
func NewGenerator(source llm.DecisionSource) *Generator {
	return &Generator{source: source}
}

// Generate creates a plan for recipe. It never fails outwardly: any
// decision-source error (unavailable, timeout, invalid response) is
// recovered by the deterministic fallback.
func (g *Generator) Generate(ctx context.Context, recipe string, cat *catalog.Catalog) *Plan {
	if g.source == nil {
		return Fallback(recipe, cat)
	}

	response, err := g.source.Complete(ctx, g.buildPrompt(recipe, cat))
	if err != nil {
		return Fallback(recipe, cat)
	}

	steps, err := parsePlanResponse(response)
	if err != nil {
		return Fallback(recipe, cat)
	}

	p := New(recipe, steps)
	if err := p.Validate(); err != nil {
		return Fallback(recipe, cat)
	}

	return p
}

// buildPrompt constructs the plan-generation prompt, constrained to the
// catalog's tool and ingredient names.
func (g *Generator) buildPrompt(recipe string, cat *catalog.Catalog) string {
	return fmt.Sprintf(`You are a professional chef. Create a high-level cooking plan for: %s

Available tools: %s
Available ingredients: %s

IMPORTANT CONSTRAINTS:
- You can ONLY use ingredients from the available ingredients list above
- All ingredient names must EXACTLY match the available ingredients list
- Create an authentic, traditional version of this recipe using available ingredients

Provide exactly 4-6 HIGH-LEVEL cooking phases that focus on major cooking
techniques. Each step should represent ONE major phase; assume the cook
knows standard prep work.

Format: Return ONLY a numbered list of 4-6 high-level steps, one per line.`,
		recipe,
		strings.Join(cat.ToolNames(), ", "),
		strings.Join(cat.IngredientNames(), ", "))
}

// parsePlanResponse parses a numbered or dashed list into step descriptions.
func parsePlanResponse(response string) ([]string, error) {
	// Bound the response size before parsing
	const maxResponseSize = 64 * 1024
	if len(response) > maxResponseSize {
		return nil, fmt.Errorf("response too large: %d bytes", len(response))
	}

	var steps []string
	for _, line := range strings.Split(response, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		first := rune(line[0])
		switch {
		case unicode.IsDigit(first):
			// Strip numbering like "1. " or "2) "
			if idx := strings.IndexAny(line, ".)"); idx >= 0 {
				line = strings.TrimSpace(line[idx+1:])
			}
		case strings.HasPrefix(line, "-"):
			line = strings.TrimSpace(strings.TrimLeft(line, "- "))
		default:
			continue
		}

		if line != "" {
			steps = append(steps, line)
		}
	}

	const minSteps, maxSteps = 1, 20
	if len(steps) < minSteps {
		return nil, fmt.Errorf("no steps found in response")
	}
	if len(steps) > maxSteps {
		return nil, fmt.Errorf("too many steps: %d (max %d)", len(steps), maxSteps)
	}

	return steps, nil
}
