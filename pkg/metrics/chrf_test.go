// Copyright © 2026 Teradata Corporation - All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.

package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ragloom/ragas-go/pkg/eval"
)

func TestChrfScore_IdenticalTextScoresOne(t *testing.T) {
	m := NewChrfScore(ChrfScoreConfig{})
	sample := eval.Sample{Response: "hello world", Reference: "hello world"}
	assert.InDelta(t, 1.0, m.score(sample), 1e-9)
}

func TestChrfScore_EmptyResponseScoresZero(t *testing.T) {
	m := NewChrfScore(ChrfScoreConfig{})
	assert.Equal(t, 0.0, m.score(eval.Sample{Reference: "hello"}))
}

func TestChrfScore_DefaultsCharOrderSixBetaTwo(t *testing.T) {
	m := NewChrfScore(ChrfScoreConfig{})
	assert.Equal(t, 6, m.cfg.CharNgramOrder)
	assert.InDelta(t, 2.0, m.cfg.Beta, 1e-9)
}

func TestChrfScore_PartialOverlapIsBetweenZeroAndOne(t *testing.T) {
	m := NewChrfScore(ChrfScoreConfig{CharNgramOrder: 2})
	sample := eval.Sample{Response: "hello there", Reference: "hello world"}
	got := m.score(sample)
	assert.Greater(t, got, 0.0)
	assert.Less(t, got, 1.0)
}
