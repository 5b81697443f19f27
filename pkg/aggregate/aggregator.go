// Copyright © 2026 Teradata Corporation - All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.

// Package aggregate implements the Score Aggregator: reduces a non-empty
// map of per-model scores to a single scalar via a chosen rule. Grounded on
// the weighted-average/percentile math in this codebase's judge score
// aggregator, narrowed to the six rules the metric pipeline runner needs.
package aggregate

import (
	"fmt"
	"sort"
)

// Rule names an aggregation strategy.
type Rule string

const (
	RuleAverage         Rule = "AVERAGE"
	RuleMedian          Rule = "MEDIAN"
	RuleMin             Rule = "MIN"
	RuleMax             Rule = "MAX"
	RulePercentile      Rule = "PERCENTILE"
	RuleWeightedAverage Rule = "WEIGHTED_AVERAGE"
)

// Config selects a rule and its parameters. Percentile is only consulted
// for RulePercentile (0-100); Weights is only consulted for
// RuleWeightedAverage and is keyed by model id.
type Config struct {
	Rule       Rule
	Percentile float64
	Weights    map[string]float64
}

// Default is AVERAGE, the runner's documented default aggregator.
func Default() Config {
	return Config{Rule: RuleAverage}
}

// ErrEmpty is returned when aggregating over an empty map, which the runner
// reports as "no surviving models" rather than treating as a computed
// score of zero.
var ErrEmpty = fmt.Errorf("aggregate: cannot aggregate an empty score map")

// Aggregate reduces scores to a single value per cfg.Rule.
func Aggregate(scores map[string]float64, cfg Config) (float64, error) {
	if len(scores) == 0 {
		return 0, ErrEmpty
	}

	switch cfg.Rule {
	case "", RuleAverage:
		return average(values(scores)), nil
	case RuleMedian:
		return median(values(scores)), nil
	case RuleMin:
		return minOf(values(scores)), nil
	case RuleMax:
		return maxOf(values(scores)), nil
	case RulePercentile:
		return percentile(values(scores), cfg.Percentile), nil
	case RuleWeightedAverage:
		return weightedAverage(scores, cfg.Weights)
	default:
		return 0, fmt.Errorf("aggregate: unknown rule %q", cfg.Rule)
	}
}

func values(scores map[string]float64) []float64 {
	out := make([]float64, 0, len(scores))
	for _, v := range scores {
		out = append(out, v)
	}
	return out
}

func average(vs []float64) float64 {
	var sum float64
	for _, v := range vs {
		sum += v
	}
	return sum / float64(len(vs))
}

func median(vs []float64) float64 {
	sorted := append([]float64(nil), vs...)
	sort.Float64s(sorted)
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

func minOf(vs []float64) float64 {
	m := vs[0]
	for _, v := range vs[1:] {
		if v < m {
			m = v
		}
	}
	return m
}

func maxOf(vs []float64) float64 {
	m := vs[0]
	for _, v := range vs[1:] {
		if v > m {
			m = v
		}
	}
	return m
}

// percentile uses linear interpolation between closest ranks (the
// "R-7"/Excel method), the variant this codebase's judge aggregator uses
// for its pass-rate percentile calculations.
func percentile(vs []float64, p float64) float64 {
	sorted := append([]float64(nil), vs...)
	sort.Float64s(sorted)
	n := len(sorted)
	if n == 1 {
		return sorted[0]
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 100 {
		return sorted[n-1]
	}

	rank := (p / 100) * float64(n-1)
	lower := int(rank)
	upper := lower + 1
	if upper >= n {
		return sorted[lower]
	}
	frac := rank - float64(lower)
	return sorted[lower]*(1-frac) + sorted[upper]*frac
}

func weightedAverage(scores, weights map[string]float64) (float64, error) {
	var weightedSum, weightSum float64
	for model, score := range scores {
		w, ok := weights[model]
		if !ok {
			w = 1.0
		}
		weightedSum += score * w
		weightSum += w
	}
	if weightSum == 0 {
		return 0, fmt.Errorf("aggregate: weighted average has zero total weight")
	}
	return weightedSum / weightSum, nil
}
