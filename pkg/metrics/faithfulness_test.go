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

func twoModelFaithfulnessSteps() []eval.StepResults {
	extraction := statementExtraction{Statements: []string{"claim one", "claim two"}}
	return []eval.StepResults{
		{Results: []eval.ModelResult[any]{
			eval.Succeeded[any]("model-a", "", 0, extraction),
			eval.Succeeded[any]("model-b", "", 0, extraction),
		}},
		{Results: []eval.ModelResult[any]{
			eval.Succeeded[any]("model-a", "", 0, verdictList{Verdicts: []statementVerdict{
				{Statement: "claim one", Verdict: 1},
				{Statement: "claim two", Verdict: 0},
			}}),
			eval.Succeeded[any]("model-b", "", 0, verdictList{Verdicts: []statementVerdict{
				{Statement: "claim one", Verdict: 1},
				{Statement: "claim two", Verdict: 1},
			}}),
		}},
	}
}

func TestFaithfulness_Score_HalfSupportedScoresPointFive(t *testing.T) {
	m := NewFaithfulness(FaithfulnessConfig{})
	steps := twoModelFaithfulnessSteps()

	scoreA, err := m.Score("model-a", eval.Sample{}, steps)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, scoreA, 1e-9)

	scoreB, err := m.Score("model-b", eval.Sample{}, steps)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, scoreB, 1e-9)
}

func TestFaithfulness_Score_NoVerdictsErrors(t *testing.T) {
	m := NewFaithfulness(FaithfulnessConfig{})
	_, err := m.Score("missing-model", eval.Sample{}, twoModelFaithfulnessSteps())
	require.Error(t, err)
}

func TestFaithfulness_Score_EmptyVerdictListScoresZero(t *testing.T) {
	m := NewFaithfulness(FaithfulnessConfig{})
	steps := []eval.StepResults{
		{Results: []eval.ModelResult[any]{eval.Succeeded[any]("m1", "", 0, statementExtraction{})}},
		{Results: []eval.ModelResult[any]{eval.Succeeded[any]("m1", "", 0, verdictList{})}},
	}
	score, err := m.Score("m1", eval.Sample{}, steps)
	require.NoError(t, err)
	assert.Equal(t, 0.0, score)
}

func TestFaithfulness_Metadata_CollectsPerModelVerdictsAndStatements(t *testing.T) {
	m := NewFaithfulness(FaithfulnessConfig{})
	steps := twoModelFaithfulnessSteps()

	meta := m.Metadata(eval.Sample{}, steps, map[string]float64{"model-a": 0.5, "model-b": 1.0})
	require.Equal(t, eval.MetadataFaithfulness, meta.Kind)
	require.NotNil(t, meta.Faithfulness)
	assert.Equal(t, []int{1, 0}, meta.Faithfulness.VerdictsByModel["model-a"])
	assert.Equal(t, []int{1, 1}, meta.Faithfulness.VerdictsByModel["model-b"])
	assert.Len(t, meta.Faithfulness.Statements, 2)
}
