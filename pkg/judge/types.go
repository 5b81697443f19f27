// Copyright © 2026 Teradata Corporation - All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.

// Package judge defines the judge-model abstraction shared by the execution
// engine: a provider-agnostic chat client, a rate limiter registry keyed by
// provider, and a model registry that maps configured model ids to their
// clients.
package judge

import (
	"context"
	"time"
)

// Message is a single turn sent to a judge model. Judge prompts are
// single-shot (one system instruction, one user turn carrying the rendered
// template), so Message intentionally carries no tool-call or multi-modal
// fields the way a full agent conversation would.
type Message struct {
	Role    string // "system" or "user"
	Content string
}

// Usage tracks token accounting for a single judge call.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

// Response is what a ChatClient returns for one completion.
type Response struct {
	Content    string
	StopReason string
	Usage      Usage
}

// ChatClient is the interface every judge provider implements. It is
// intentionally narrow: judges never call tools and never stream, so this
// is smaller than a general-purpose LLM provider interface.
type ChatClient interface {
	// Chat sends messages to the model and returns its completion.
	Chat(ctx context.Context, messages []Message) (*Response, error)

	// Name returns the provider name (e.g. "anthropic", "bedrock").
	Name() string

	// Model returns the concrete model identifier this client targets.
	Model() string
}

// EmbeddingClient is implemented by providers that can embed text, used by
// metrics with an embedding step (SemanticSimilarity, ResponseRelevancy,
// AnswerCorrectness). A provider may implement both ChatClient and
// EmbeddingClient.
type EmbeddingClient interface {
	Embed(ctx context.Context, texts []string) ([][]float64, error)
	Name() string
}

// ModelSpec names one configured judge model instance: a logical name used
// throughout pipeline results (the aggregation key), the provider that
// backs it, and the rate-limit bucket it draws from.
type ModelSpec struct {
	Name       string // logical name, e.g. "claude-sonnet"
	Provider   string // "anthropic", "bedrock", ...
	Model      string // concrete model id passed to the provider
	Timeout    time.Duration
	MaxRetries int
}
