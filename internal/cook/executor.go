// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cook executes single plan steps against the kitchen catalog.
package cook

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jeranaias/souschef/internal/catalog"
	"github.com/jeranaias/souschef/internal/llm"
	"github.com/jeranaias/souschef/internal/plan"
)

// =============================================================================
// EXECUTOR CONFIGURATION
// =============================================================================

// Config holds configuration for the step executor.
type Config struct {
	// MaxDelay clamps the simulated per-tool usage delay (default: 2s)
	MaxDelay time.Duration

	// Policy decides simulated outcomes (default: AlwaysSucceed)
	Policy OutcomePolicy
}

// DefaultConfig returns the default executor configuration.
func DefaultConfig() Config {
	return Config{
		MaxDelay: 2 * time.Second,
		Policy:   AlwaysSucceed{},
	}
}

// =============================================================================
// STEP EXECUTOR
// =============================================================================

// Executor executes one plan step at a time: tool selection, ingredient
// selection, then simulated usage. It never fails outwardly; a Failed
// outcome is a normal, representable result. The only error it returns
// is context cancellation.
type Executor struct {
	source   llm.DecisionSource
	maxDelay time.Duration
	policy   OutcomePolicy
}

// NewExecutor creates a step executor. A nil source skips the dynamic
// path and always uses the deterministic selection rules.
func NewExecutor(source llm.DecisionSource, cfg Config) *Executor {
	if cfg.MaxDelay <= 0 {
		cfg.MaxDelay = 2 * time.Second
	}
	if cfg.Policy == nil {
		cfg.Policy = AlwaysSucceed{}
	}
	return &Executor{
		source:   source,
		maxDelay: cfg.MaxDelay,
		policy:   cfg.Policy,
	}
}

// Execute runs a single step: select a tool and ingredients from the
// catalog, simulate usage, and return the usage record. The returned
// error is non-nil only when ctx is cancelled mid-step.
func (e *Executor) Execute(ctx context.Context, step plan.Step, cat *catalog.Catalog) (ToolUsageRecord, error) {
	toolName := e.selectTool(ctx, step, cat)
	ingredients := e.selectIngredients(ctx, step, cat)

	if err := e.simulateDelay(ctx, cat.ToolByName(toolName)); err != nil {
		return ToolUsageRecord{}, err
	}

	outcome := e.policy.Decide(step.Ordinal, toolName)
	detail := fmt.Sprintf("Successfully used %s for: %s", toolName, step.Description)
	if outcome == OutcomeFailure {
		detail = fmt.Sprintf("Failed using %s for: %s", toolName, step.Description)
	}

	return ToolUsageRecord{
		StepOrdinal: step.Ordinal,
		Tool:        toolName,
		Ingredients: ingredients,
		Outcome:     outcome,
		Detail:      detail,
		Timestamp:   time.Now(),
	}, nil
}

// =============================================================================
// TOOL SELECTION
// =============================================================================

// selectTool picks the tool for a step. The dynamic selection is
// constrained to the catalog's tool set; any error, including a reply
// naming a tool outside the catalog, falls back to the keyword rule.
func (e *Executor) selectTool(ctx context.Context, step plan.Step, cat *catalog.Catalog) string {
	if e.source != nil {
		prompt := fmt.Sprintf(`You are selecting the ONE tool needed to complete this cooking step: %q

Available tools: %s

Return ONLY the exact tool name.`, step.Description, strings.Join(cat.ToolNames(), ", "))

		if tool, err := e.source.Select(ctx, prompt, cat.ToolNames()); err == nil && cat.HasTool(tool) {
			return tool
		}
	}
	return fallbackTool(step.Description)
}

// fallbackTool is the deterministic recipe/step-keyed tool rule.
func fallbackTool(step string) string {
	lower := strings.ToLower(step)

	switch {
	case containsAny(lower, "pound", "chop", "cut"):
		return "Chopping Board"
	case containsAny(lower, "bread", "mix", "combine", "whisk"):
		return "Mixing Bowl"
	case containsAny(lower, "pan-fry", "fry", "saute"):
		return "Skillet"
	case containsAny(lower, "bake", "roast"):
		return "Oven"
	case containsAny(lower, "boil", "simmer"):
		return "Saucepan"
	case containsAny(lower, "drain", "strain"):
		return "Strainer"
	default:
		// Versatile default
		return "Spatula"
	}
}

// =============================================================================
// INGREDIENT SELECTION
// =============================================================================

// selectIngredients picks the ingredients a step actively handles. Dynamic
// replies are filtered to catalog members; an empty valid set falls back
// to the keyword rule.
func (e *Executor) selectIngredients(ctx context.Context, step plan.Step, cat *catalog.Catalog) []string {
	if e.source != nil {
		prompt := fmt.Sprintf(`Identify ONLY the ingredients actively used in this cooking step: %q

Available ingredients: %s

Return ONLY ingredient names from the list, separated by commas.`,
			step.Description, strings.Join(cat.IngredientNames(), ", "))

		if reply, err := e.source.Complete(ctx, prompt); err == nil {
			var valid []string
			for _, part := range strings.Split(reply, ",") {
				name := strings.TrimSpace(part)
				if name != "" && cat.HasIngredient(name) {
					valid = append(valid, name)
				}
			}
			if len(valid) > 0 {
				return valid
			}
		}
	}
	return fallbackIngredients(step.Description, cat)
}

// fallbackIngredients is the deterministic step-keyed ingredient rule,
// filtered to what the catalog actually offers.
func fallbackIngredients(step string, cat *catalog.Catalog) []string {
	lower := strings.ToLower(step)

	var picks []string
	switch {
	case strings.Contains(lower, "chicken"):
		picks = []string{"Chicken Breast", "Salt", "Black Pepper"}
	case containsAny(lower, "pasta", "boil"):
		picks = []string{"Pasta", "Salt", "Water"}
	case strings.Contains(lower, "sauce"):
		picks = []string{"Tomato Sauce", "Garlic", "Onion"}
	case strings.Contains(lower, "cheese"):
		picks = []string{"Parmesan Cheese", "Mozzarella Cheese"}
	case strings.Contains(lower, "bread"):
		picks = []string{"Breadcrumbs", "Flour", "Eggs"}
	case strings.Contains(lower, "toast"):
		picks = []string{"Bread", "Eggs", "Milk", "Butter"}
	}

	var valid []string
	for _, name := range picks {
		if cat.HasIngredient(name) {
			valid = append(valid, name)
		}
	}
	return valid
}

// =============================================================================
// SIMULATION
// =============================================================================

// simulateDelay sleeps for the tool's usage cost, clamped to MaxDelay,
// honoring cancellation.
func (e *Executor) simulateDelay(ctx context.Context, tool *catalog.Tool) error {
	delay := e.maxDelay
	if tool != nil {
		cost := time.Duration(tool.CostMs) * time.Millisecond
		if cost < delay {
			delay = cost
		}
	}
	if delay <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// containsAny reports whether s contains any of the substrings.
func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
