// Copyright © 2026 Teradata Corporation - All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.

package metrics

import (
	"fmt"

	"github.com/ragloom/ragas-go/pkg/eval"
	"github.com/ragloom/ragas-go/pkg/runner"
)

// RougeType selects the n-gram order ROUGE-N overlaps on, or the
// longest-common-subsequence variant ROUGE-L.
type RougeType string

const (
	Rouge1 RougeType = "ROUGE_1"
	Rouge2 RougeType = "ROUGE_2"
	RougeL RougeType = "ROUGE_L"
)

// ScoreMode selects which side of a precision/recall pair a text metric
// reports, or their harmonic mean.
type ScoreMode string

const (
	ModePrecision ScoreMode = "PRECISION"
	ModeRecall    ScoreMode = "RECALL"
	ModeFMeasure  ScoreMode = "FMEASURE"
)

// RougeScoreConfig selects the ROUGE variant and reported mode.
type RougeScoreConfig struct {
	RougeType RougeType
	Mode      ScoreMode
}

// RougeScore computes ROUGE-1, ROUGE-2, or ROUGE-L between a response and
// its reference.
type RougeScore struct {
	runner.BaseMetric
	cfg RougeScoreConfig
}

func NewRougeScore(cfg RougeScoreConfig) *RougeScore {
	if cfg.RougeType == "" {
		cfg.RougeType = RougeL
	}
	if cfg.Mode == "" {
		cfg.Mode = ModeFMeasure
	}
	return &RougeScore{cfg: cfg}
}

func (*RougeScore) Name() string { return "rouge_score" }

func (m *RougeScore) Steps() []runner.StepDef {
	return []runner.StepDef{
		computeStep("compute_rouge", func(sample eval.Sample, _ string, _ []eval.StepResults) (any, error) {
			return m.score(sample), nil
		}),
	}
}

func (*RougeScore) Score(modelID string, _ eval.Sample, steps []eval.StepResults) (float64, error) {
	v, ok := stepValue(steps, 0, modelID)
	if !ok {
		return 0, fmt.Errorf("rouge_score: no result for model %s", modelID)
	}
	return v.(float64), nil
}

func (m *RougeScore) score(sample eval.Sample) float64 {
	candidate := tokenize(sample.Response)
	reference := tokenize(sample.Reference)
	if len(candidate) == 0 || len(reference) == 0 {
		return 0
	}

	var matchCount, candLen, refLen int
	if m.cfg.RougeType == RougeL {
		matchCount = lcsLength(candidate, reference)
		candLen, refLen = len(candidate), len(reference)
	} else {
		n := 1
		if m.cfg.RougeType == Rouge2 {
			n = 2
		}
		candGrams := count(ngrams(candidate, n))
		refGrams := count(ngrams(reference, n))
		matchCount = clippedOverlap(candGrams, refGrams)
		candLen, refLen = sumCounts(candGrams), sumCounts(refGrams)
	}

	if candLen == 0 || refLen == 0 {
		return 0
	}
	precision := float64(matchCount) / float64(candLen)
	recall := float64(matchCount) / float64(refLen)

	switch m.cfg.Mode {
	case ModePrecision:
		return precision
	case ModeRecall:
		return recall
	default:
		if precision+recall == 0 {
			return 0
		}
		return 2 * precision * recall / (precision + recall)
	}
}

// lcsLength is the classic O(n*m) dynamic-programming longest common
// subsequence length, the core of ROUGE-L.
func lcsLength(a, b []string) int {
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			if a[i-1] == b[j-1] {
				curr[j] = prev[j-1] + 1
			} else if prev[j] >= curr[j-1] {
				curr[j] = prev[j]
			} else {
				curr[j] = curr[j-1]
			}
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}
