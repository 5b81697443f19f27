// Copyright © 2026 Teradata Corporation - All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.

package eval

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(f float64) *float64 { return &f }

func TestCompareWithGolden_MissingFileReportsMissingGoldenNotError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "does-not-exist.json")
	cmp, err := CompareWithGolden(path, "hash-1", MetricEvaluationResult{}, 0.01)
	require.NoError(t, err)
	assert.True(t, cmp.MissingGolden)
}

func TestCompareWithGolden_SampleHashMismatchErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "golden.json")
	require.NoError(t, WriteGolden(path, "hash-1", MetricEvaluationResult{
		Metric:          "faithfulness",
		AggregatedScore: ptr(0.8),
		ModelScores:     map[string]float64{"a": 0.8},
	}))

	_, err := CompareWithGolden(path, "hash-2", MetricEvaluationResult{}, 0.01)
	require.Error(t, err)
}

func TestCompareWithGolden_WithinThresholdMatches(t *testing.T) {
	path := filepath.Join(t.TempDir(), "golden.json")
	require.NoError(t, WriteGolden(path, "hash-1", MetricEvaluationResult{
		Metric:          "faithfulness",
		AggregatedScore: ptr(0.80),
		ModelScores:     map[string]float64{"a": 0.80, "b": 0.80},
	}))

	cmp, err := CompareWithGolden(path, "hash-1", MetricEvaluationResult{
		AggregatedScore: ptr(0.81),
		ModelScores:     map[string]float64{"a": 0.81, "b": 0.805},
	}, 0.02)
	require.NoError(t, err)
	assert.False(t, cmp.MissingGolden)
	assert.True(t, cmp.Matched)
	assert.InDelta(t, 0.01, cmp.Drift, 1e-9)
}

func TestCompareWithGolden_BeyondThresholdDoesNotMatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "golden.json")
	require.NoError(t, WriteGolden(path, "hash-1", MetricEvaluationResult{
		AggregatedScore: ptr(0.80),
		ModelScores:     map[string]float64{"a": 0.80},
	}))

	cmp, err := CompareWithGolden(path, "hash-1", MetricEvaluationResult{
		AggregatedScore: ptr(0.50),
		ModelScores:     map[string]float64{"a": 0.50},
	}, 0.02)
	require.NoError(t, err)
	assert.False(t, cmp.Matched)
	assert.InDelta(t, 0.30, cmp.Drift, 1e-9)
}

func TestCompareWithGolden_MissingModelFailsMatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "golden.json")
	require.NoError(t, WriteGolden(path, "hash-1", MetricEvaluationResult{
		AggregatedScore: ptr(0.80),
		ModelScores:     map[string]float64{"a": 0.80, "b": 0.80},
	}))

	cmp, err := CompareWithGolden(path, "hash-1", MetricEvaluationResult{
		AggregatedScore: ptr(0.80),
		ModelScores:     map[string]float64{"a": 0.80},
	}, 0.02)
	require.NoError(t, err)
	assert.False(t, cmp.Matched)
	assert.Equal(t, []string{"b"}, cmp.MissingActual)
}

func TestCompareWithGolden_ExtraModelNotedButDoesNotFailMatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "golden.json")
	require.NoError(t, WriteGolden(path, "hash-1", MetricEvaluationResult{
		AggregatedScore: ptr(0.80),
		ModelScores:     map[string]float64{"a": 0.80},
	}))

	cmp, err := CompareWithGolden(path, "hash-1", MetricEvaluationResult{
		AggregatedScore: ptr(0.80),
		ModelScores:     map[string]float64{"a": 0.80, "c": 0.99},
	}, 0.02)
	require.NoError(t, err)
	assert.True(t, cmp.Matched)
	assert.Equal(t, []string{"c"}, cmp.ExtraActual)
}

func TestCompareWithGolden_OneSidedScorePresenceIsMaximalDrift(t *testing.T) {
	path := filepath.Join(t.TempDir(), "golden.json")
	require.NoError(t, WriteGolden(path, "hash-1", MetricEvaluationResult{
		AggregatedScore: nil,
		ModelScores:     map[string]float64{},
	}))

	cmp, err := CompareWithGolden(path, "hash-1", MetricEvaluationResult{
		AggregatedScore: ptr(0.5),
		ModelScores:     map[string]float64{},
	}, 0.02)
	require.NoError(t, err)
	assert.Equal(t, 1.0, cmp.Drift)
	assert.False(t, cmp.Matched)
}

func TestWriteGolden_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "golden.json")
	original := MetricEvaluationResult{
		Metric:          "faithfulness",
		AggregatedScore: ptr(0.75),
		ModelScores:     map[string]float64{"a": 0.5, "b": 1.0},
	}
	require.NoError(t, WriteGolden(path, "hash-1", original))

	cmp, err := CompareWithGolden(path, "hash-1", original, 0.0)
	require.NoError(t, err)
	assert.True(t, cmp.Matched)
	assert.Equal(t, 0.0, cmp.Drift)
}
