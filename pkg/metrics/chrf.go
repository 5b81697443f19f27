// Copyright © 2026 Teradata Corporation - All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.

package metrics

import (
	"fmt"
	"strings"

	"github.com/ragloom/ragas-go/pkg/eval"
	"github.com/ragloom/ragas-go/pkg/runner"
)

// ChrfScoreConfig controls chrF's character n-gram order, an optional word
// n-gram order (chrF++ style), and the beta weighting recall over
// precision.
type ChrfScoreConfig struct {
	CharNgramOrder int
	WordNgramOrder int
	Beta           float64
}

// ChrfScore is the character n-gram F-score: average precision and recall
// across character n-grams of order 1..CharNgramOrder (and, if set, word
// n-grams of order 1..WordNgramOrder), combined with an F-beta that favors
// recall by default (beta=2, as in the original chrF paper).
type ChrfScore struct {
	runner.BaseMetric
	cfg ChrfScoreConfig
}

func NewChrfScore(cfg ChrfScoreConfig) *ChrfScore {
	if cfg.CharNgramOrder <= 0 {
		cfg.CharNgramOrder = 6
	}
	if cfg.Beta <= 0 {
		cfg.Beta = 2
	}
	return &ChrfScore{cfg: cfg}
}

func (*ChrfScore) Name() string { return "chrf_score" }

func (m *ChrfScore) Steps() []runner.StepDef {
	return []runner.StepDef{
		computeStep("compute_chrf", func(sample eval.Sample, _ string, _ []eval.StepResults) (any, error) {
			return m.score(sample), nil
		}),
	}
}

func (*ChrfScore) Score(modelID string, _ eval.Sample, steps []eval.StepResults) (float64, error) {
	v, ok := stepValue(steps, 0, modelID)
	if !ok {
		return 0, fmt.Errorf("chrf_score: no result for model %s", modelID)
	}
	return v.(float64), nil
}

func (m *ChrfScore) score(sample eval.Sample) float64 {
	candidateChars := charTokens(sample.Response)
	referenceChars := charTokens(sample.Reference)
	if len(candidateChars) == 0 || len(referenceChars) == 0 {
		return 0
	}

	var precisionSum, recallSum float64
	orders := 0
	for n := 1; n <= m.cfg.CharNgramOrder; n++ {
		p, r, ok := ngramPrecisionRecall(candidateChars, referenceChars, n)
		if !ok {
			continue
		}
		precisionSum += p
		recallSum += r
		orders++
	}

	candidateWords := tokenize(sample.Response)
	referenceWords := tokenize(sample.Reference)
	for n := 1; n <= m.cfg.WordNgramOrder; n++ {
		p, r, ok := ngramPrecisionRecall(candidateWords, referenceWords, n)
		if !ok {
			continue
		}
		precisionSum += p
		recallSum += r
		orders++
	}

	if orders == 0 {
		return 0
	}
	precision := precisionSum / float64(orders)
	recall := recallSum / float64(orders)
	if precision+recall == 0 {
		return 0
	}
	beta2 := m.cfg.Beta * m.cfg.Beta
	return (1 + beta2) * precision * recall / (beta2*precision + recall)
}

func ngramPrecisionRecall(candidate, reference []string, n int) (precision, recall float64, ok bool) {
	candGrams := count(ngrams(candidate, n))
	refGrams := count(ngrams(reference, n))
	candTotal := sumCounts(candGrams)
	refTotal := sumCounts(refGrams)
	if candTotal == 0 || refTotal == 0 {
		return 0, 0, false
	}
	overlap := clippedOverlap(candGrams, refGrams)
	return float64(overlap) / float64(candTotal), float64(overlap) / float64(refTotal), true
}

// charTokens splits a string into individual characters (runes), chrF's
// unit of comparison, preserving whitespace so word boundaries still
// contribute to higher-order character n-grams.
func charTokens(s string) []string {
	s = strings.ToLower(s)
	runes := []rune(s)
	out := make([]string, len(runes))
	for i, r := range runes {
		out[i] = string(r)
	}
	return out
}
