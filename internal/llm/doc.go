// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package llm provides the client boundary to the dynamic-decision service.
//
// The orchestration core never depends on a concrete LLM: it consumes the
// DecisionSource interface, whose remote implementation talks to an
// Ollama-compatible chat endpoint. Every failure is categorized as
// Unavailable, Timeout, or InvalidResponse so callers can treat all three
// uniformly as a fallback trigger.
//
// # Key Types
//
//   - DecisionSource: capability interface (free-form completion + constrained selection)
//   - Client: HTTP client for the chat endpoint
//   - RemoteSource: rate-limited DecisionSource backed by a Client
//   - ClientError: categorized error with Unavailable/Timeout/InvalidResponse
//
// # Usage
//
//	client := llm.NewClient(nil)
//	source := llm.NewRemoteSource(client, llm.DefaultSourceConfig())
//	choice, err := source.Select(ctx, "Pick a tool for: boil pasta", tools)
//	if err != nil {
//	    // always recoverable: fall back to the deterministic rule
//	}
package llm
