// Copyright © 2026 Teradata Corporation - All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.

package judge

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/ragloom/ragas-go/internal/log"
	"github.com/ragloom/ragas-go/pkg/ragerr"
)

// Strategy controls what happens when a provider's rate limit bucket is
// exhausted at call time.
type Strategy string

const (
	// StrategyWait blocks until a token becomes available or ctx is done.
	StrategyWait Strategy = "WAIT"
	// StrategyFailFast returns a RateLimitError immediately instead of waiting.
	StrategyFailFast Strategy = "FAIL_FAST"
	// StrategySkip gives up immediately (Do returns ErrSkipped); the
	// multi-model executor records the skipped call as a failed RATE_LIMIT
	// result for that model.
	StrategySkip Strategy = "SKIP"
)

// ErrSkipped is returned by Limiter.Do under StrategySkip when no token is
// immediately available.
var ErrSkipped = fmt.Errorf("judge: call skipped, no rate limit token available")

// LimiterConfig configures one provider's token bucket: refill rate equals
// RequestsPerSecond, capacity equals Burst, per §4.2.
type LimiterConfig struct {
	RequestsPerSecond float64
	Burst             int
	Strategy          Strategy
	Timeout           time.Duration // bound on StrategyWait
}

// DefaultLimiterConfig returns a conservative default, mirroring the
// teacher's DefaultRateLimiterConfig values for a moderate-throughput judge
// provider.
func DefaultLimiterConfig() LimiterConfig {
	return LimiterConfig{
		RequestsPerSecond: 2.0,
		Burst:             5,
		Strategy:          StrategyWait,
		Timeout:           30 * time.Second,
	}
}

// Metrics is a read-only snapshot of a provider's rate limiter activity.
type Metrics struct {
	Requests  int64
	Waited    int64
	FailFast  int64
	Skipped   int64
	QueueWait time.Duration
}

// Limiter wraps golang.org/x/time/rate.Limiter with the strategy semantics
// the evaluation engine needs (WAIT/FAIL_FAST/SKIP) and a Do(ctx, call)
// wrapper shape carried over from the provider-call pattern used throughout
// this codebase's judge clients.
type Limiter struct {
	provider string
	cfg      LimiterConfig
	limiter  *rate.Limiter

	mu      sync.Mutex
	metrics Metrics
}

// NewLimiter creates a token-bucket limiter for a single provider.
func NewLimiter(cfg LimiterConfig) *Limiter {
	if cfg.RequestsPerSecond <= 0 {
		cfg.RequestsPerSecond = DefaultLimiterConfig().RequestsPerSecond
	}
	if cfg.Burst <= 0 {
		cfg.Burst = DefaultLimiterConfig().Burst
	}
	if cfg.Strategy == "" {
		cfg.Strategy = StrategyWait
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultLimiterConfig().Timeout
	}
	return &Limiter{
		cfg:     cfg,
		limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.Burst),
	}
}

// Acquire blocks (WAIT), tests (FAIL_FAST), or probes (SKIP) for a permit,
// per the limiter's configured strategy. A WAIT acquire is bounded by the
// limiter's Timeout in addition to ctx cancellation. The bool return
// reports whether a permit was actually held when the call proceeds; under
// SKIP a false return is not an error, the caller simply omits the call.
func (l *Limiter) Acquire(ctx context.Context) (bool, error) {
	l.mu.Lock()
	l.metrics.Requests++
	l.mu.Unlock()

	switch l.cfg.Strategy {
	case StrategyFailFast:
		if !l.limiter.Allow() {
			l.mu.Lock()
			l.metrics.FailFast++
			l.mu.Unlock()
			return false, &ragerr.RateLimitError{Provider: l.provider, Message: "rate limit exceeded, fail-fast strategy"}
		}
		return true, nil
	case StrategySkip:
		if !l.limiter.Allow() {
			l.mu.Lock()
			l.metrics.Skipped++
			l.mu.Unlock()
			return false, nil
		}
		return true, nil
	default: // StrategyWait
		waitCtx, cancel := context.WithTimeout(ctx, l.cfg.Timeout)
		defer cancel()

		start := time.Now()
		if err := l.limiter.Wait(waitCtx); err != nil {
			if ctx.Err() != nil {
				return false, ctx.Err()
			}
			return false, &ragerr.RateLimitError{Provider: l.provider, Message: fmt.Sprintf("wait strategy timed out after %s", l.cfg.Timeout)}
		}
		waited := time.Since(start)
		if waited > 0 {
			l.mu.Lock()
			l.metrics.Waited++
			l.metrics.QueueWait += waited
			l.mu.Unlock()
		}
		return true, nil
	}
}

// Do acquires a permit then executes call, translating a SKIP-denied permit
// into ErrSkipped so every caller can treat Do uniformly.
func (l *Limiter) Do(ctx context.Context, call func(context.Context) (*Response, error)) (*Response, error) {
	ok, err := l.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrSkipped
	}
	return call(ctx)
}

// Snapshot returns the current metrics for this limiter.
func (l *Limiter) Snapshot() Metrics {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.metrics
}

// RateLimiterRegistry is the Rate Limiter Registry (§4.2): it maps each
// model id to a provider identifier and holds one token-bucket Limiter per
// provider, created lazily on first use. A model id with no provider
// mapping is unlimited.
type RateLimiterRegistry struct {
	mu             sync.Mutex
	modelProviders map[string]string
	limiters       map[string]*Limiter
	configs        map[string]LimiterConfig
}

// NewRateLimiterRegistry creates an empty rate limiter registry.
func NewRateLimiterRegistry() *RateLimiterRegistry {
	return &RateLimiterRegistry{
		modelProviders: make(map[string]string),
		limiters:       make(map[string]*Limiter),
		configs:        make(map[string]LimiterConfig),
	}
}

// MapModel records that modelID's calls draw from provider's bucket.
func (r *RateLimiterRegistry) MapModel(modelID, provider string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.modelProviders[modelID] = provider
}

// Configure sets the limiter config to use for a provider, before or after
// that provider's limiter has been created. Calling it after creation
// replaces the limiter, dropping its accumulated metrics.
func (r *RateLimiterRegistry) Configure(provider string, cfg LimiterConfig) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.configs[provider] = cfg
	delete(r.limiters, provider)
}

// limiterForProviderLocked returns (creating if needed) the Limiter for a
// provider. Caller must hold r.mu.
func (r *RateLimiterRegistry) limiterForProviderLocked(provider string) *Limiter {
	if l, ok := r.limiters[provider]; ok {
		return l
	}
	cfg, ok := r.configs[provider]
	if !ok {
		cfg = DefaultLimiterConfig()
	}
	l := NewLimiter(cfg)
	l.provider = provider
	r.limiters[provider] = l
	return l
}

// Acquire implements the §4.2 contract: acquire(modelId) → permit held |
// RateLimitError. A model id with no provider mapping is unlimited and
// always returns true immediately.
func (r *RateLimiterRegistry) Acquire(ctx context.Context, modelID string) (bool, error) {
	r.mu.Lock()
	provider, mapped := r.modelProviders[modelID]
	if !mapped {
		r.mu.Unlock()
		return true, nil
	}
	l := r.limiterForProviderLocked(provider)
	r.mu.Unlock()

	return l.Acquire(ctx)
}

// Snapshot returns a metrics snapshot per provider that has an active
// limiter; LogSnapshot writes the same figures to the logger.
func (r *RateLimiterRegistry) Snapshot() map[string]Metrics {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make(map[string]Metrics, len(r.limiters))
	for provider, l := range r.limiters {
		out[provider] = l.Snapshot()
	}
	return out
}

// LogSnapshot writes the current per-provider metrics to the global logger
// at info level, mirroring the teacher's periodic rate limiter reporting.
func (r *RateLimiterRegistry) LogSnapshot() {
	for provider, m := range r.Snapshot() {
		log.Info("rate limiter snapshot",
			zap.String("provider", provider),
			zap.Int64("requests", m.Requests),
			zap.Int64("waited", m.Waited),
			zap.Int64("fail_fast", m.FailFast),
			zap.Int64("skipped", m.Skipped),
			zap.Duration("total_queue_wait", m.QueueWait),
		)
	}
}
