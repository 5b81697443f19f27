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

func TestRubricsScore_NormalizesAgainstHighestRung(t *testing.T) {
	m := NewRubricsScore(RubricsConfig{Rubrics: map[string]string{
		"1": "poor", "2": "fair", "3": "good", "4": "excellent",
	}})
	steps := []eval.StepResults{{Results: []eval.ModelResult[any]{
		eval.Succeeded[any]("m1", "", 0, scoreVerdict{Score: 3}),
	}}}
	score, err := m.Score("m1", eval.Sample{}, steps)
	require.NoError(t, err)
	assert.InDelta(t, 0.75, score, 1e-9)
}

func TestRubricsScore_NoVerdictErrors(t *testing.T) {
	m := NewRubricsScore(RubricsConfig{Rubrics: map[string]string{"1": "poor"}})
	_, err := m.Score("absent", eval.Sample{}, []eval.StepResults{{}})
	require.Error(t, err)
}

func TestRubricsScore_MaxRungDefaultsToOneWhenRubricsEmpty(t *testing.T) {
	m := NewRubricsScore(RubricsConfig{})
	assert.Equal(t, 1.0, m.maxRung)
}
