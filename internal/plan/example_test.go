// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package plan_test

import (
	"fmt"

	"github.com/jeranaias/souschef/internal/catalog"
	"github.com/jeranaias/souschef/internal/plan"
)

func ExampleFallback() {
	cat := &catalog.Catalog{
		Tools: []catalog.Tool{
			{Name: "Skillet", Capabilities: []string{"fry"}},
		},
		Ingredients: []catalog.Ingredient{
			{Name: "Chicken Breast", Category: "protein"},
		},
	}

	p := plan.Fallback("Chicken Parmesan", cat)
	for _, s := range p.Steps {
		fmt.Printf("%d. %s\n", s.Ordinal+1, s.Description)
	}
	// Output:
	// 1. Pound and bread the chicken
	// 2. Pan-fry until golden brown
	// 3. Assemble with sauce and cheese
	// 4. Bake until cheese melts
}
