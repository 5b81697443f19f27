// Copyright © 2026 Teradata Corporation - All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.

package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ragloom/ragas-go/pkg/eval"
)

func TestSimpleCriteria_NormalizesAgainstMaxScore(t *testing.T) {
	m := NewSimpleCriteria(SimpleCriteriaConfig{Criteria: "conciseness", MaxScore: 10})
	steps := []eval.StepResults{{Results: []eval.ModelResult[any]{
		eval.Succeeded[any]("m1", "", 0, scoreVerdict{Score: 4}),
	}}}
	score, err := m.Score("m1", eval.Sample{}, steps)
	require.NoError(t, err)
	assert.InDelta(t, 0.4, score, 1e-9)
}

func TestSimpleCriteria_DefaultsMaxScoreToFive(t *testing.T) {
	m := NewSimpleCriteria(SimpleCriteriaConfig{})
	assert.Equal(t, 5, m.cfg.MaxScore)
}

func TestSimpleCriteria_NoVerdictErrors(t *testing.T) {
	m := NewSimpleCriteria(SimpleCriteriaConfig{})
	_, err := m.Score("absent", eval.Sample{}, []eval.StepResults{{}})
	require.Error(t, err)
}
