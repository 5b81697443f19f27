// Copyright © 2026 Teradata Corporation - All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.

// Package execengine implements the Multi-Model Executor: it submits
// typed LLM/embedding calls to one or all registered judge models, behind
// two independent bounded worker pools (a small metric-coordination pool
// and a larger HTTP pool), enforcing per-model rate limits and cooperative
// cancellation. Grounded on the fan-out-with-partial-failure shape of this
// codebase's fork/join orchestration executor, narrowed to the judge-call
// contract the metric pipeline runner needs.
package execengine

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/ragloom/ragas-go/internal/log"
	"github.com/ragloom/ragas-go/pkg/eval"
	"github.com/ragloom/ragas-go/pkg/judge"
	"github.com/ragloom/ragas-go/pkg/ragerr"
)

// EmbeddingBatch is the value type of an embedding ModelResult: one vector
// per input text, in input order.
type EmbeddingBatch = [][]float64

// Config sizes the two worker pools.
type Config struct {
	// MetricPoolSize bounds concurrent step-coordination tasks (small).
	MetricPoolSize int
	// HTTPPoolSize bounds concurrent outbound provider calls (large).
	HTTPPoolSize int
}

// DefaultConfig mirrors the teacher's conservative defaults: enough HTTP
// concurrency to fan out across a handful of judge models without
// saturating the coordination pool.
func DefaultConfig() Config {
	return Config{MetricPoolSize: 4, HTTPPoolSize: 16}
}

// Executor is the Multi-Model Executor.
type Executor struct {
	models     *judge.Registry
	limits     *judge.RateLimiterRegistry
	metricPool chan struct{}
	httpPool   chan struct{}
}

// New builds an Executor over the given Model Registry and Rate Limiter
// Registry, sized per cfg.
func New(models *judge.Registry, limits *judge.RateLimiterRegistry, cfg Config) *Executor {
	if cfg.MetricPoolSize <= 0 {
		cfg.MetricPoolSize = DefaultConfig().MetricPoolSize
	}
	if cfg.HTTPPoolSize <= 0 {
		cfg.HTTPPoolSize = DefaultConfig().HTTPPoolSize
	}
	return &Executor{
		models:     models,
		limits:     limits,
		metricPool: make(chan struct{}, cfg.MetricPoolSize),
		httpPool:   make(chan struct{}, cfg.HTTPPoolSize),
	}
}

func (e *Executor) ModelIDs() []string          { return e.models.ChatIDs() }
func (e *Executor) EmbeddingModelIDs() []string { return e.models.EmbeddingIDs() }

// ParseFunc converts a judge's raw text completion into the typed result a
// step expects. Returning an error here is treated exactly like a
// transport failure: the model is excluded for the rest of the evaluation.
type ParseFunc func(raw string) (any, error)

// ExecuteLLMOnModel runs one LLM call against modelID. It always returns a
// ModelResult, never an error: failures are folded into
// ModelResult.failure per §4.3.
func (e *Executor) ExecuteLLMOnModel(ctx context.Context, modelID, prompt string, parse ParseFunc) eval.ModelResult[any] {
	start := time.Now()

	if ctx.Err() != nil {
		return eval.Failed[any](modelID, prompt, time.Since(start), string(ragerr.KindCancelled), "context already done")
	}

	clients, err := e.models.Get(modelID)
	if err != nil || len(clients) == 0 {
		return eval.Failed[any](modelID, prompt, time.Since(start), string(ragerr.KindConfiguration), fmt.Sprintf("no chat client for model %s", modelID))
	}

	// acquire a rate limit permit before entering the HTTP pool
	ok, err := e.limits.Acquire(ctx, modelID)
	if err != nil {
		return toFailure[any](modelID, prompt, start, err)
	}
	if !ok {
		return eval.Failed[any](modelID, prompt, time.Since(start), string(ragerr.KindRateLimit), "skipped: no permit available")
	}

	select {
	case e.httpPool <- struct{}{}:
		defer func() { <-e.httpPool }()
	case <-ctx.Done():
		return eval.Failed[any](modelID, prompt, time.Since(start), string(ragerr.KindCancelled), "cancelled while queued for HTTP pool")
	}

	resp, err := clients[0].Chat(ctx, []judge.Message{{Role: "user", Content: prompt}})
	if err != nil {
		return toFailure[any](modelID, prompt, start, err)
	}

	value, perr := parse(resp.Content)
	if perr != nil {
		return eval.Failed[any](modelID, prompt, time.Since(start), string(ragerr.KindParse), perr.Error())
	}

	return eval.Succeeded[any](modelID, prompt, time.Since(start), value)
}

// ExecuteLLMOnAll fans prompt out to every model in modelIDs concurrently.
// Each model's call is coordinated under the metric pool while its actual
// outbound request runs under the HTTP pool, so a metric task may block on
// an HTTP task but never the reverse.
func (e *Executor) ExecuteLLMOnAll(ctx context.Context, modelIDs []string, prompt string, parse ParseFunc) map[string]eval.ModelResult[any] {
	results := make(map[string]eval.ModelResult[any], len(modelIDs))
	if len(modelIDs) == 0 {
		return results
	}

	var mu sync.Mutex
	var wg sync.WaitGroup

	for _, id := range modelIDs {
		id := id
		wg.Add(1)
		go func() {
			defer wg.Done()

			select {
			case e.metricPool <- struct{}{}:
				defer func() { <-e.metricPool }()
			case <-ctx.Done():
				mu.Lock()
				results[id] = eval.Failed[any](id, prompt, 0, string(ragerr.KindCancelled), "cancelled before coordination slot acquired")
				mu.Unlock()
				return
			}

			r := e.ExecuteLLMOnModel(ctx, id, prompt, parse)
			mu.Lock()
			results[id] = r
			mu.Unlock()
		}()
	}

	wg.Wait()
	return results
}

// ExecuteEmbeddingOnModel embeds texts with the embedding model registered
// under modelID, returning one vector per text in order.
func (e *Executor) ExecuteEmbeddingOnModel(ctx context.Context, modelID string, texts []string) eval.ModelResult[EmbeddingBatch] {
	start := time.Now()
	request := fmt.Sprintf("embed %d texts", len(texts))

	if ctx.Err() != nil {
		return eval.Failed[EmbeddingBatch](modelID, request, time.Since(start), string(ragerr.KindCancelled), "context already done")
	}

	client, err := e.models.GetEmbedding(modelID)
	if err != nil {
		return eval.Failed[EmbeddingBatch](modelID, request, time.Since(start), string(ragerr.KindConfiguration), fmt.Sprintf("no embedding client for model %s", modelID))
	}

	ok, err := e.limits.Acquire(ctx, modelID)
	if err != nil {
		return toFailure[EmbeddingBatch](modelID, request, start, err)
	}
	if !ok {
		return eval.Failed[EmbeddingBatch](modelID, request, time.Since(start), string(ragerr.KindRateLimit), "skipped: no permit available")
	}

	select {
	case e.httpPool <- struct{}{}:
		defer func() { <-e.httpPool }()
	case <-ctx.Done():
		return eval.Failed[EmbeddingBatch](modelID, request, time.Since(start), string(ragerr.KindCancelled), "cancelled while queued for HTTP pool")
	}

	vectors, err := client.Embed(ctx, texts)
	if err != nil {
		return toFailure[EmbeddingBatch](modelID, request, start, err)
	}

	return eval.Succeeded[EmbeddingBatch](modelID, request, time.Since(start), vectors)
}

// ExecuteEmbeddingOnAll fans an embedding batch out to every embedding
// model in modelIDs concurrently.
func (e *Executor) ExecuteEmbeddingOnAll(ctx context.Context, modelIDs []string, texts []string) map[string]eval.ModelResult[EmbeddingBatch] {
	results := make(map[string]eval.ModelResult[EmbeddingBatch], len(modelIDs))
	if len(modelIDs) == 0 {
		return results
	}

	var mu sync.Mutex
	var wg sync.WaitGroup

	for _, id := range modelIDs {
		id := id
		wg.Add(1)
		go func() {
			defer wg.Done()

			select {
			case e.metricPool <- struct{}{}:
				defer func() { <-e.metricPool }()
			case <-ctx.Done():
				mu.Lock()
				results[id] = eval.Failed[EmbeddingBatch](id, "", 0, string(ragerr.KindCancelled), "cancelled before coordination slot acquired")
				mu.Unlock()
				return
			}

			r := e.ExecuteEmbeddingOnModel(ctx, id, texts)
			mu.Lock()
			results[id] = r
			mu.Unlock()
		}()
	}

	wg.Wait()
	return results
}

func toFailure[T any](modelID, prompt string, start time.Time, err error) eval.ModelResult[T] {
	kind := string(ragerr.KindInternal)
	if k, ok := ragerr.KindOf(err); ok {
		kind = string(k)
	}
	log.Debug("judge call failed", zap.String("model", modelID), zap.String("kind", kind), zap.Error(err))
	return eval.Failed[T](modelID, prompt, time.Since(start), kind, err.Error())
}
