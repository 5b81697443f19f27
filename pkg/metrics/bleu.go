// Copyright © 2026 Teradata Corporation - All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.

package metrics

import (
	"fmt"
	"math"

	"github.com/ragloom/ragas-go/pkg/eval"
	"github.com/ragloom/ragas-go/pkg/runner"
)

// BleuScoreConfig controls the n-gram order BLEU averages over and whether
// additive smoothing is applied to zero-count precisions.
type BleuScoreConfig struct {
	MaxNgram  int
	Smoothing bool
}

// BleuScore is the standard corpus-BLEU formula applied to a single
// response/reference pair: the geometric mean of n-gram precisions (1
// through MaxNgram), scaled by a brevity penalty that punishes responses
// shorter than their reference.
type BleuScore struct {
	runner.BaseMetric
	cfg BleuScoreConfig
}

func NewBleuScore(cfg BleuScoreConfig) *BleuScore {
	if cfg.MaxNgram <= 0 {
		cfg.MaxNgram = 4
	}
	return &BleuScore{cfg: cfg}
}

func (*BleuScore) Name() string { return "bleu_score" }

func (m *BleuScore) Steps() []runner.StepDef {
	return []runner.StepDef{
		computeStep("compute_bleu", func(sample eval.Sample, _ string, _ []eval.StepResults) (any, error) {
			return m.score(sample), nil
		}),
	}
}

func (*BleuScore) Score(modelID string, _ eval.Sample, steps []eval.StepResults) (float64, error) {
	v, ok := stepValue(steps, 0, modelID)
	if !ok {
		return 0, fmt.Errorf("bleu_score: no result for model %s", modelID)
	}
	return v.(float64), nil
}

func (m *BleuScore) score(sample eval.Sample) float64 {
	candidate := tokenize(sample.Response)
	reference := tokenize(sample.Reference)
	if len(candidate) == 0 || len(reference) == 0 {
		return 0
	}

	logSum := 0.0
	usedOrders := 0
	for n := 1; n <= m.cfg.MaxNgram; n++ {
		candGrams := count(ngrams(candidate, n))
		refGrams := count(ngrams(reference, n))
		total := sumCounts(candGrams)
		if total == 0 {
			continue
		}
		overlap := clippedOverlap(candGrams, refGrams)

		var precision float64
		switch {
		case overlap > 0:
			precision = float64(overlap) / float64(total)
		case m.cfg.Smoothing:
			precision = 1.0 / float64(2*total)
		default:
			return 0 // an unsmoothed zero precision collapses the geometric mean to zero
		}
		logSum += math.Log(precision)
		usedOrders++
	}
	if usedOrders == 0 {
		return 0
	}

	geometricMean := math.Exp(logSum / float64(usedOrders))
	brevityPenalty := 1.0
	if len(candidate) < len(reference) {
		brevityPenalty = math.Exp(1 - float64(len(reference))/float64(len(candidate)))
	}
	return geometricMean * brevityPenalty
}
