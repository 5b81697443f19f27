// Copyright © 2026 Teradata Corporation - All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.

package listener

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ragloom/ragas-go/pkg/eval"
)

type orderedListener struct {
	Base
	order int
	tag   string
	calls *[]string
}

func (l orderedListener) GetOrder() int          { return l.order }
func (l orderedListener) ForEvaluation() Listener { return l }
func (l orderedListener) BeforeStep(context.Context, eval.StepContext) {
	*l.calls = append(*l.calls, l.tag)
}

type panickingListener struct {
	Base
	tag   string
	calls *[]string
}

func (l panickingListener) ForEvaluation() Listener { return l }
func (l panickingListener) BeforeStep(context.Context, eval.StepContext) {
	*l.calls = append(*l.calls, l.tag)
	panic("listener exploded")
}

func TestBus_ForEvaluation_DispatchesInAscendingOrderStableOnTies(t *testing.T) {
	var calls []string
	b := New()
	b.Register(orderedListener{order: 5, tag: "five", calls: &calls})
	b.Register(orderedListener{order: 1, tag: "one-a", calls: &calls})
	b.Register(orderedListener{order: 1, tag: "one-b", calls: &calls})
	b.Register(orderedListener{order: 3, tag: "three", calls: &calls})

	session := b.ForEvaluation()
	session.BeforeStep(context.Background(), eval.StepContext{})

	assert.Equal(t, []string{"one-a", "one-b", "three", "five"}, calls)
}

func TestSession_PanickingListenerDoesNotBlockLaterListeners(t *testing.T) {
	var calls []string
	b := New()
	b.Register(panickingListener{tag: "boom", calls: &calls})
	b.Register(orderedListener{order: 0, tag: "survivor", calls: &calls})

	session := b.ForEvaluation()
	assert.NotPanics(t, func() {
		session.BeforeStep(context.Background(), eval.StepContext{})
	})
	assert.Equal(t, []string{"boom", "survivor"}, calls)
}

type statefulListener struct {
	Base
	seen []string
}

func (l *statefulListener) ForEvaluation() Listener {
	return &statefulListener{}
}

func (l *statefulListener) BeforeStep(_ context.Context, sc eval.StepContext) {
	l.seen = append(l.seen, sc.Name)
}

func TestBus_ForEvaluation_ClonesSoStatePerEvaluationDoesNotLeak(t *testing.T) {
	original := &statefulListener{}
	b := New()
	b.Register(original)

	session1 := b.ForEvaluation()
	session1.BeforeStep(context.Background(), eval.StepContext{Name: "first"})

	session2 := b.ForEvaluation()
	session2.BeforeStep(context.Background(), eval.StepContext{Name: "second"})

	assert.Empty(t, original.seen, "the registered listener itself must never accumulate per-evaluation state")
}
