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

func TestAgentGoalAccuracy_Score_TrueVerdictScoresOne(t *testing.T) {
	m := NewAgentGoalAccuracy(AgentGoalAccuracyConfig{})
	steps := []eval.StepResults{{Results: []eval.ModelResult[any]{
		eval.Succeeded[any]("m1", "", 0, boolVerdict{Verdict: true}),
	}}}
	score, err := m.Score("m1", eval.Sample{}, steps)
	require.NoError(t, err)
	assert.Equal(t, 1.0, score)
}

func TestAgentGoalAccuracy_Score_FalseVerdictScoresZero(t *testing.T) {
	m := NewAgentGoalAccuracy(AgentGoalAccuracyConfig{})
	steps := []eval.StepResults{{Results: []eval.ModelResult[any]{
		eval.Succeeded[any]("m1", "", 0, boolVerdict{Verdict: false}),
	}}}
	score, err := m.Score("m1", eval.Sample{}, steps)
	require.NoError(t, err)
	assert.Equal(t, 0.0, score)
}

func TestTopicAdherence_Score_PassesThroughInRangeScore(t *testing.T) {
	m := NewTopicAdherence(TopicAdherenceConfig{AllowedTopics: []string{"billing"}})
	steps := []eval.StepResults{{Results: []eval.ModelResult[any]{
		eval.Succeeded[any]("m1", "", 0, scoreVerdict{Score: 0.6}),
	}}}
	score, err := m.Score("m1", eval.Sample{}, steps)
	require.NoError(t, err)
	assert.InDelta(t, 0.6, score, 1e-9)
}

func TestTopicAdherence_Score_ClampsOutOfRangeScores(t *testing.T) {
	m := NewTopicAdherence(TopicAdherenceConfig{})

	steps := []eval.StepResults{{Results: []eval.ModelResult[any]{
		eval.Succeeded[any]("m1", "", 0, scoreVerdict{Score: 1.4}),
	}}}
	high, err := m.Score("m1", eval.Sample{}, steps)
	require.NoError(t, err)
	assert.Equal(t, 1.0, high)

	steps = []eval.StepResults{{Results: []eval.ModelResult[any]{
		eval.Succeeded[any]("m1", "", 0, scoreVerdict{Score: -0.2}),
	}}}
	low, err := m.Score("m1", eval.Sample{}, steps)
	require.NoError(t, err)
	assert.Equal(t, 0.0, low)
}
