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

func TestAspectCritic_Score_TrueVerdictScoresOne(t *testing.T) {
	m := NewAspectCritic(AspectCriticConfig{Definition: "is harmless"})
	steps := []eval.StepResults{{Results: []eval.ModelResult[any]{eval.Succeeded[any]("m1", "", 0, true)}}}
	score, err := m.Score("m1", eval.Sample{}, steps)
	require.NoError(t, err)
	assert.Equal(t, 1.0, score)
}

func TestAspectCritic_Score_FalseVerdictScoresZero(t *testing.T) {
	m := NewAspectCritic(AspectCriticConfig{Definition: "is harmless"})
	steps := []eval.StepResults{{Results: []eval.ModelResult[any]{eval.Succeeded[any]("m1", "", 0, false)}}}
	score, err := m.Score("m1", eval.Sample{}, steps)
	require.NoError(t, err)
	assert.Equal(t, 0.0, score)
}

func TestAspectCritic_DefaultsStrictnessToOne(t *testing.T) {
	m := NewAspectCritic(AspectCriticConfig{})
	assert.Equal(t, 1, m.cfg.Strictness)
}

func TestMajority_TieGoesToFalse(t *testing.T) {
	assert.False(t, majority([]bool{true, false}))
	assert.True(t, majority([]bool{true, true, false}))
	assert.False(t, majority(nil))
}
