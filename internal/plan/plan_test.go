// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package plan

import (
	"strings"
	"testing"
)

func TestStepStatusString(t *testing.T) {
	tests := []struct {
		status StepStatus
		want   string
	}{
		{StepPending, "Pending"},
		{StepInProgress, "InProgress"},
		{StepDone, "Done"},
		{StepFailed, "Failed"},
		{StepStatus(99), "Unknown"},
	}

	for _, tt := range tests {
		if got := tt.status.String(); got != tt.want {
			t.Errorf("StepStatus(%d).String() = %q, want %q", tt.status, got, tt.want)
		}
	}
}

func TestStepStatusTerminal(t *testing.T) {
	if StepPending.Terminal() || StepInProgress.Terminal() {
		t.Error("Pending/InProgress should not be terminal")
	}
	if !StepDone.Terminal() || !StepFailed.Terminal() {
		t.Error("Done/Failed should be terminal")
	}
}

func TestStepAdvance(t *testing.T) {
	s := Step{Ordinal: 0, Description: "Boil pasta", Status: StepPending}

	if err := s.Advance(StepInProgress); err != nil {
		t.Fatalf("Pending -> InProgress failed: %v", err)
	}
	if err := s.Advance(StepDone); err != nil {
		t.Fatalf("InProgress -> Done failed: %v", err)
	}
	if s.Status != StepDone {
		t.Errorf("Status = %s, want Done", s.Status)
	}
}

func TestStepAdvanceRejectsRegression(t *testing.T) {
	tests := []struct {
		name string
		from StepStatus
		to   StepStatus
	}{
		{"pending to done skips in-progress", StepPending, StepDone},
		{"pending to failed skips in-progress", StepPending, StepFailed},
		{"in-progress back to pending", StepInProgress, StepPending},
		{"done back to in-progress", StepDone, StepInProgress},
		{"done to failed", StepDone, StepFailed},
		{"failed to done", StepFailed, StepDone},
		{"failed back to pending", StepFailed, StepPending},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Step{Status: tt.from}
			if err := s.Advance(tt.to); err == nil {
				t.Errorf("Advance(%s -> %s) should have been rejected", tt.from, tt.to)
			}
			if s.Status != tt.from {
				t.Errorf("rejected Advance mutated status: %s", s.Status)
			}
		})
	}
}

func TestNewAssignsContiguousOrdinals(t *testing.T) {
	p := New("Pasta", []string{"Boil", "Sauce", "Combine"})

	if len(p.Steps) != 3 {
		t.Fatalf("got %d steps, want 3", len(p.Steps))
	}
	for i, s := range p.Steps {
		if s.Ordinal != i {
			t.Errorf("step %d has ordinal %d", i, s.Ordinal)
		}
		if s.Status != StepPending {
			t.Errorf("step %d starts as %s, want Pending", i, s.Status)
		}
	}
}

func TestPlanValidate(t *testing.T) {
	good := New("Pasta", []string{"Boil", "Serve"})
	if err := good.Validate(); err != nil {
		t.Errorf("valid plan rejected: %v", err)
	}

	empty := &Plan{Recipe: "Pasta"}
	if err := empty.Validate(); err == nil {
		t.Error("empty plan should fail validation")
	}

	gap := New("Pasta", []string{"Boil", "Serve"})
	gap.Steps[1].Ordinal = 5
	if err := gap.Validate(); err == nil {
		t.Error("non-contiguous ordinals should fail validation")
	}

	blank := New("Pasta", []string{"Boil", ""})
	if err := blank.Validate(); err == nil {
		t.Error("empty description should fail validation")
	}
}

func TestPlanClone(t *testing.T) {
	p := New("Pasta", []string{"Boil", "Serve"})
	c := p.Clone()

	c.Steps[0].Status = StepDone
	if p.Steps[0].Status != StepPending {
		t.Error("Clone shares step storage with the original")
	}
}

func TestPlanProgress(t *testing.T) {
	p := New("Pasta", []string{"Boil", "Sauce", "Serve"})
	if got := p.Progress(); got != "0/3" {
		t.Errorf("Progress() = %q, want 0/3", got)
	}

	p.Steps[0].Status = StepDone
	p.Steps[1].Status = StepFailed
	if got := p.Progress(); got != "2/3" {
		t.Errorf("Progress() = %q, want 2/3", got)
	}
	if got := p.CompletedSteps(); got != 2 {
		t.Errorf("CompletedSteps() = %d, want 2", got)
	}
}

func TestFallbackIsDeterministic(t *testing.T) {
	cat := testCatalog()
	recipes := []string{
		"Chicken Parmesan",
		"Pasta Carbonara",
		"French Toast",
		"Beef Wellington",
	}

	for _, recipe := range recipes {
		a := Fallback(recipe, cat)
		b := Fallback(recipe, cat)

		if len(a.Steps) != len(b.Steps) {
			t.Fatalf("%s: step counts differ: %d vs %d", recipe, len(a.Steps), len(b.Steps))
		}
		for i := range a.Steps {
			if a.Steps[i] != b.Steps[i] {
				t.Errorf("%s step %d differs: %+v vs %+v", recipe, i, a.Steps[i], b.Steps[i])
			}
		}
	}
}

func TestFallbackKnownRecipes(t *testing.T) {
	cat := testCatalog()

	tests := []struct {
		recipe    string
		wantSteps int
		wantFirst string
	}{
		{"Chicken Parmesan", 4, "Pound and bread the chicken"},
		{"chicken parm", 4, "Pound and bread the chicken"},
		{"Pasta Carbonara", 4, "Boil pasta in salted water"},
		{"French Toast", 4, "Whisk eggs with milk and spices"},
	}

	for _, tt := range tests {
		p := Fallback(tt.recipe, cat)
		if err := p.Validate(); err != nil {
			t.Errorf("%s: invalid fallback plan: %v", tt.recipe, err)
			continue
		}
		if len(p.Steps) != tt.wantSteps {
			t.Errorf("%s: got %d steps, want %d", tt.recipe, len(p.Steps), tt.wantSteps)
		}
		if p.Steps[0].Description != tt.wantFirst {
			t.Errorf("%s: first step %q, want %q", tt.recipe, p.Steps[0].Description, tt.wantFirst)
		}
	}
}

func TestFallbackUnknownRecipeUsesCatalog(t *testing.T) {
	cat := testCatalog()
	p := Fallback("Beef Wellington", cat)

	if err := p.Validate(); err != nil {
		t.Fatalf("generic fallback plan invalid: %v", err)
	}
	if len(p.Steps) == 0 {
		t.Fatal("generic fallback produced no steps")
	}

	// The cook step names the first catalog tool that can fry, boil, or bake.
	found := false
	for _, s := range p.Steps {
		if strings.Contains(s.Description, "Skillet") {
			found = true
		}
	}
	if !found {
		t.Error("generic plan should name the first frying-capable tool")
	}
}
