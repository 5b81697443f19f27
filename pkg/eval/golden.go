// Copyright © 2026 Teradata Corporation - All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.

package eval

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
)

// GoldenResult is the recorded, previously-accepted outcome for one metric
// run against one sample, keyed by the sample's hash so a golden file
// survives reordering of a suite.
type GoldenResult struct {
	SampleHash      string             `json:"sample_hash"`
	Metric          string             `json:"metric"`
	AggregatedScore *float64           `json:"aggregated_score"`
	ModelScores     map[string]float64 `json:"model_scores"`
}

// GoldenComparison reports how a fresh MetricEvaluationResult compares
// against its recorded golden result.
type GoldenComparison struct {
	Matched        bool
	Drift          float64 // |actual - golden| aggregated score delta
	ModelDrift     map[string]float64
	MissingGolden  bool
	MissingActual  []string // model ids present in golden but absent now
	ExtraActual    []string // model ids present now but absent from golden
}

// CompareWithGolden loads the golden file at path and compares it against
// result for the given sample hash. A missing golden file is reported, not
// treated as an error, so a first run can seed one via WriteGolden.
func CompareWithGolden(path string, sampleHash string, result MetricEvaluationResult, threshold float64) (*GoldenComparison, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &GoldenComparison{MissingGolden: true}, nil
		}
		return nil, fmt.Errorf("eval: reading golden file %s: %w", path, err)
	}

	var golden GoldenResult
	if err := json.Unmarshal(data, &golden); err != nil {
		return nil, fmt.Errorf("eval: parsing golden file %s: %w", path, err)
	}
	if golden.SampleHash != sampleHash {
		return nil, fmt.Errorf("eval: golden file %s is for sample %s, not %s", path, golden.SampleHash, sampleHash)
	}

	cmp := &GoldenComparison{ModelDrift: make(map[string]float64, len(golden.ModelScores))}

	if golden.AggregatedScore != nil && result.AggregatedScore != nil {
		cmp.Drift = math.Abs(*result.AggregatedScore - *golden.AggregatedScore)
	} else if golden.AggregatedScore != nil || result.AggregatedScore != nil {
		cmp.Drift = 1.0 // one side has no score at all, treat as maximal drift
	}

	for modelID, goldenScore := range golden.ModelScores {
		actual, ok := result.ModelScores[modelID]
		if !ok {
			cmp.MissingActual = append(cmp.MissingActual, modelID)
			continue
		}
		cmp.ModelDrift[modelID] = math.Abs(actual - goldenScore)
	}
	for modelID := range result.ModelScores {
		if _, ok := golden.ModelScores[modelID]; !ok {
			cmp.ExtraActual = append(cmp.ExtraActual, modelID)
		}
	}

	cmp.Matched = cmp.Drift <= threshold && len(cmp.MissingActual) == 0
	for _, d := range cmp.ModelDrift {
		if d > threshold {
			cmp.Matched = false
		}
	}
	return cmp, nil
}

// WriteGolden records result as the new golden baseline for sampleHash.
func WriteGolden(path string, sampleHash string, result MetricEvaluationResult) error {
	golden := GoldenResult{
		SampleHash:      sampleHash,
		Metric:          result.Metric,
		AggregatedScore: result.AggregatedScore,
		ModelScores:     result.ModelScores,
	}
	data, err := json.MarshalIndent(golden, "", "  ")
	if err != nil {
		return fmt.Errorf("eval: marshalling golden result: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("eval: writing golden file %s: %w", path, err)
	}
	return nil
}
