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

func TestRougeScore_IdenticalTextScoresOne(t *testing.T) {
	m := NewRougeScore(RougeScoreConfig{RougeType: RougeL, Mode: ModeFMeasure})
	sample := eval.Sample{Response: "the cat sat on the mat", Reference: "the cat sat on the mat"}
	assert.InDelta(t, 1.0, m.score(sample), 1e-9)
}

func TestRougeScore_EmptyResponseScoresZero(t *testing.T) {
	m := NewRougeScore(RougeScoreConfig{})
	assert.Equal(t, 0.0, m.score(eval.Sample{Reference: "the cat sat"}))
}

func TestRougeScore_Rouge1PrecisionMode(t *testing.T) {
	m := NewRougeScore(RougeScoreConfig{RougeType: Rouge1, Mode: ModePrecision})
	// candidate has 4 tokens, 2 of which ("cat","mat") appear in reference.
	sample := eval.Sample{Response: "cat mat dog bird", Reference: "cat mat"}
	assert.InDelta(t, 0.5, m.score(sample), 1e-9)
}

func TestRougeScore_Rouge1RecallMode(t *testing.T) {
	m := NewRougeScore(RougeScoreConfig{RougeType: Rouge1, Mode: ModeRecall})
	sample := eval.Sample{Response: "cat mat", Reference: "cat mat dog bird"}
	assert.InDelta(t, 0.5, m.score(sample), 1e-9)
}

func TestRougeScore_DefaultsToRougeLFMeasure(t *testing.T) {
	m := NewRougeScore(RougeScoreConfig{})
	assert.Equal(t, RougeL, m.cfg.RougeType)
	assert.Equal(t, ModeFMeasure, m.cfg.Mode)
}
