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

func TestFactualCorrectness_Score_FractionSupportedByReference(t *testing.T) {
	m := NewFactualCorrectness(FactualCorrectnessConfig{})
	steps := []eval.StepResults{
		{}, // extract_claims, unused by Score
		{Results: []eval.ModelResult[any]{
			eval.Succeeded[any]("m1", "", 0, verdictList{Verdicts: []statementVerdict{
				{Verdict: 1}, {Verdict: 0}, {Verdict: 1}, {Verdict: 1},
			}}),
		}},
	}
	score, err := m.Score("m1", eval.Sample{}, steps)
	require.NoError(t, err)
	assert.InDelta(t, 0.75, score, 1e-9)
}

func TestFactualCorrectness_Score_NoResultForModelErrors(t *testing.T) {
	m := NewFactualCorrectness(FactualCorrectnessConfig{})
	_, err := m.Score("absent", eval.Sample{}, []eval.StepResults{{}, {}})
	require.Error(t, err)
}
