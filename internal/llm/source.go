// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package llm provides the client boundary to the dynamic-decision service.
package llm

import (
	"context"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// =============================================================================
// DECISION SOURCE INTERFACE
// =============================================================================

// DecisionSource is the capability the orchestration core needs from the
// dynamic-decision service: free-form completion for plan text and a
// constrained selection over a fixed option set. Implementations report
// failures as *ClientError so callers can fall back deterministically.
type DecisionSource interface {
	// Complete returns free-form text for a prompt.
	Complete(ctx context.Context, prompt string) (string, error)

	// Select returns exactly one member of options. A reply naming
	// anything outside options is an invalid-response error.
	Select(ctx context.Context, prompt string, options []string) (string, error)
}

// =============================================================================
// REMOTE SOURCE
// =============================================================================

// SourceConfig holds configuration for the remote decision source.
type SourceConfig struct {
	// CallTimeout bounds each decision call (default: 10s)
	CallTimeout time.Duration

	// RequestsPerSecond limits the call rate to the service (default: 5)
	RequestsPerSecond float64

	// Burst is the limiter burst size (default: 10)
	Burst int
}

// DefaultSourceConfig returns the default source configuration.
func DefaultSourceConfig() SourceConfig {
	return SourceConfig{
		CallTimeout:       10 * time.Second,
		RequestsPerSecond: 5,
		Burst:             10,
	}
}

// RemoteSource is a DecisionSource backed by a chat Client. Calls are
// rate-limited and carry a bounded timeout; expiry surfaces as a Timeout
// client error, which callers treat as a normal fallback trigger.
type RemoteSource struct {
	client  *Client
	limiter *rate.Limiter
	timeout time.Duration
}

// NewRemoteSource creates a remote decision source over client.
func NewRemoteSource(client *Client, cfg SourceConfig) *RemoteSource {
	if cfg.CallTimeout <= 0 {
		cfg.CallTimeout = 10 * time.Second
	}
	if cfg.RequestsPerSecond <= 0 {
		cfg.RequestsPerSecond = 5
	}
	if cfg.Burst <= 0 {
		cfg.Burst = 10
	}

	return &RemoteSource{
		client:  client,
		limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.Burst),
		timeout: cfg.CallTimeout,
	}
}

// Complete returns free-form text for a prompt.
func (s *RemoteSource) Complete(ctx context.Context, prompt string) (string, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return "", ErrTimeout
	}

	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	reply, err := s.client.Chat(callCtx, prompt)
	if err != nil {
		return "", err
	}

	reply = strings.TrimSpace(reply)
	if reply == "" {
		return "", &ClientError{Type: ErrTypeInvalidResponse, Message: "empty completion"}
	}

	return reply, nil
}

// Select asks for one of options and validates the reply against the set.
func (s *RemoteSource) Select(ctx context.Context, prompt string, options []string) (string, error) {
	reply, err := s.Complete(ctx, prompt)
	if err != nil {
		return "", err
	}

	// Exact match first, then a single-line trim. Anything else means the
	// service named an option outside the constrained set.
	reply = strings.TrimSpace(strings.Trim(reply, "\"'`"))
	for _, opt := range options {
		if reply == opt {
			return opt, nil
		}
	}

	return "", &ClientError{
		Type:    ErrTypeInvalidResponse,
		Message: "selection not in option set: " + reply,
	}
}
