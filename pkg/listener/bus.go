// Copyright © 2026 Teradata Corporation - All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.

// Package listener implements the Listener Bus: an ordered, per-evaluation
// observer stream over the metric pipeline runner's lifecycle events.
// Grounded on this codebase's generic pub/sub dispatch shape, narrowed from
// CRUD events to the runner's fixed lifecycle and hardened so one listener's
// panic or error never blocks or aborts another's callback.
package listener

import (
	"context"
	"sort"

	"go.uber.org/zap"

	"github.com/ragloom/ragas-go/internal/log"
	"github.com/ragloom/ragas-go/pkg/eval"
)

// Listener observes one metric evaluation's lifecycle. GetOrder controls
// dispatch order (ascending; ties keep registration order). ForEvaluation
// returns the Listener instance to use for one evaluation, letting a
// listener hold per-evaluation state without that state leaking across
// evaluations or creating a cycle back to the bus.
type Listener interface {
	BeforeMetricEvaluation(ctx context.Context, evalCtx eval.MetricEvaluationContext)
	BeforeStep(ctx context.Context, stepCtx eval.StepContext)
	AfterStep(ctx context.Context, results eval.StepResults)
	OnModelExcluded(ctx context.Context, event eval.ModelExclusionEvent)
	AfterMetricEvaluation(ctx context.Context, result eval.MetricEvaluationResult)
	GetOrder() int
	ForEvaluation() Listener
}

// Base gives listener implementations sensible defaults: order 0 and every
// callback a no-op. It does not implement ForEvaluation, so a type that
// embeds it defines its own. Embed it and override only the callbacks a
// listener cares about.
type Base struct{}

func (Base) BeforeMetricEvaluation(context.Context, eval.MetricEvaluationContext) {}
func (Base) BeforeStep(context.Context, eval.StepContext)                        {}
func (Base) AfterStep(context.Context, eval.StepResults)                         {}
func (Base) OnModelExcluded(context.Context, eval.ModelExclusionEvent)           {}
func (Base) AfterMetricEvaluation(context.Context, eval.MetricEvaluationResult)  {}
func (Base) GetOrder() int                                                       { return 0 }

// Bus holds the registered listeners. Registration is copy-on-write so an
// in-flight evaluation's snapshot is never mutated by a concurrent Register
// call.
type Bus struct {
	listeners []Listener
}

// New creates an empty bus.
func New() *Bus {
	return &Bus{}
}

// Register appends a listener. Safe to call between evaluations; not
// intended to be called concurrently with itself (the runner registers
// listeners during setup, before any evaluation starts).
func (b *Bus) Register(l Listener) {
	next := make([]Listener, len(b.listeners), len(b.listeners)+1)
	copy(next, b.listeners)
	b.listeners = append(next, l)
}

// ForEvaluation snapshots the bus's listeners, clones each via
// ForEvaluation(), and sorts the clones by ascending GetOrder (stable, so
// ties keep registration order). The runner calls this once per evaluation
// and drives the returned Session through the lifecycle.
func (b *Bus) ForEvaluation() *Session {
	snapshot := b.listeners
	clones := make([]Listener, len(snapshot))
	for i, l := range snapshot {
		clones[i] = l.ForEvaluation()
	}
	sort.SliceStable(clones, func(i, j int) bool {
		return clones[i].GetOrder() < clones[j].GetOrder()
	})
	return &Session{listeners: clones}
}

// Session is the per-evaluation, ordered listener list the runner drives.
// Every dispatch method recovers a panicking listener and logs (rather than
// propagating) a listener error, so one broken listener never blocks later
// listeners or aborts the evaluation.
type Session struct {
	listeners []Listener
}

func (s *Session) BeforeMetricEvaluation(ctx context.Context, evalCtx eval.MetricEvaluationContext) {
	for _, l := range s.listeners {
		dispatch(l.GetOrder(), "beforeMetricEvaluation", func() { l.BeforeMetricEvaluation(ctx, evalCtx) })
	}
}

func (s *Session) BeforeStep(ctx context.Context, stepCtx eval.StepContext) {
	for _, l := range s.listeners {
		dispatch(l.GetOrder(), "beforeStep", func() { l.BeforeStep(ctx, stepCtx) })
	}
}

func (s *Session) AfterStep(ctx context.Context, results eval.StepResults) {
	for _, l := range s.listeners {
		dispatch(l.GetOrder(), "afterStep", func() { l.AfterStep(ctx, results) })
	}
}

func (s *Session) OnModelExcluded(ctx context.Context, event eval.ModelExclusionEvent) {
	for _, l := range s.listeners {
		dispatch(l.GetOrder(), "onModelExcluded", func() { l.OnModelExcluded(ctx, event) })
	}
}

func (s *Session) AfterMetricEvaluation(ctx context.Context, result eval.MetricEvaluationResult) {
	for _, l := range s.listeners {
		dispatch(l.GetOrder(), "afterMetricEvaluation", func() { l.AfterMetricEvaluation(ctx, result) })
	}
}

// dispatch runs one listener callback, converting a panic into a logged
// error so the caller's loop continues to the next listener.
func dispatch(order int, callback string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			log.Error("listener callback panicked",
				zap.Int("order", order),
				zap.String("callback", callback),
				zap.Any("recovered", r),
			)
		}
	}()
	fn()
}
