// Copyright © 2026 Teradata Corporation - All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.

package metrics

import (
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/ragloom/ragas-go/pkg/eval"
	"github.com/ragloom/ragas-go/pkg/runner"
)

// DistanceAlgorithm selects the edit-distance family String Similarity
// normalizes into a 0..1 score.
type DistanceAlgorithm string

const (
	DistanceLevenshtein DistanceAlgorithm = "LEVENSHTEIN"
	DistanceJaroWinkler DistanceAlgorithm = "JAROWINKLER"
	DistanceHamming     DistanceAlgorithm = "HAMMING"
)

// StringSimilarityConfig selects the distance algorithm and whether
// comparison is case-sensitive.
type StringSimilarityConfig struct {
	Distance      DistanceAlgorithm
	CaseSensitive bool
}

// StringSimilarity scores raw lexical closeness between a response and its
// reference, independent of any judge model. Levenshtein distance is
// computed via this codebase's diff-match-patch dependency rather than a
// hand-rolled edit-distance table.
type StringSimilarity struct {
	runner.BaseMetric
	cfg StringSimilarityConfig
}

func NewStringSimilarity(cfg StringSimilarityConfig) *StringSimilarity {
	if cfg.Distance == "" {
		cfg.Distance = DistanceLevenshtein
	}
	return &StringSimilarity{cfg: cfg}
}

func (*StringSimilarity) Name() string { return "string_similarity" }

func (m *StringSimilarity) Steps() []runner.StepDef {
	return []runner.StepDef{
		computeStep("compute_string_similarity", func(sample eval.Sample, _ string, _ []eval.StepResults) (any, error) {
			return m.score(sample), nil
		}),
	}
}

func (*StringSimilarity) Score(modelID string, _ eval.Sample, steps []eval.StepResults) (float64, error) {
	v, ok := stepValue(steps, 0, modelID)
	if !ok {
		return 0, fmt.Errorf("string_similarity: no result for model %s", modelID)
	}
	return v.(float64), nil
}

func (m *StringSimilarity) score(sample eval.Sample) float64 {
	a, b := sample.Response, sample.Reference
	if !m.cfg.CaseSensitive {
		a, b = strings.ToLower(a), strings.ToLower(b)
	}
	if a == "" && b == "" {
		return 1.0
	}

	switch m.cfg.Distance {
	case DistanceJaroWinkler:
		return jaroWinkler(a, b)
	case DistanceHamming:
		return hammingSimilarity(a, b)
	default:
		return levenshteinSimilarity(a, b)
	}
}

func levenshteinSimilarity(a, b string) float64 {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(a, b, false)
	distance := dmp.DiffLevenshtein(diffs)
	maxLen := len([]rune(a))
	if bl := len([]rune(b)); bl > maxLen {
		maxLen = bl
	}
	if maxLen == 0 {
		return 1.0
	}
	return 1.0 - float64(distance)/float64(maxLen)
}

func hammingSimilarity(a, b string) float64 {
	ar, br := []rune(a), []rune(b)
	n := len(ar)
	if len(br) > n {
		n = len(br)
	}
	if n == 0 {
		return 1.0
	}
	mismatches := 0
	for i := 0; i < n; i++ {
		var ca, cb rune
		if i < len(ar) {
			ca = ar[i]
		}
		if i < len(br) {
			cb = br[i]
		}
		if ca != cb {
			mismatches++
		}
	}
	return 1.0 - float64(mismatches)/float64(n)
}

// jaroWinkler is the standard Jaro similarity with Winkler's common-prefix
// boost (scaling factor 0.1, capped at a 4-character prefix).
func jaroWinkler(a, b string) float64 {
	ar, br := []rune(a), []rune(b)
	jaro := jaroSimilarity(ar, br)
	if jaro == 0 {
		return 0
	}

	prefix := 0
	for prefix < len(ar) && prefix < len(br) && prefix < 4 && ar[prefix] == br[prefix] {
		prefix++
	}
	return jaro + float64(prefix)*0.1*(1-jaro)
}

func jaroSimilarity(a, b []rune) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 1.0
	}
	if len(a) == 0 || len(b) == 0 {
		return 0.0
	}

	matchDistance := len(a)
	if len(b) > matchDistance {
		matchDistance = len(b)
	}
	matchDistance = matchDistance/2 - 1
	if matchDistance < 0 {
		matchDistance = 0
	}

	aMatches := make([]bool, len(a))
	bMatches := make([]bool, len(b))
	matches := 0
	for i := range a {
		start, end := i-matchDistance, i+matchDistance+1
		if start < 0 {
			start = 0
		}
		if end > len(b) {
			end = len(b)
		}
		for j := start; j < end; j++ {
			if bMatches[j] || a[i] != b[j] {
				continue
			}
			aMatches[i] = true
			bMatches[j] = true
			matches++
			break
		}
	}
	if matches == 0 {
		return 0.0
	}

	transpositions := 0
	k := 0
	for i := range a {
		if !aMatches[i] {
			continue
		}
		for !bMatches[k] {
			k++
		}
		if a[i] != b[k] {
			transpositions++
		}
		k++
	}

	m := float64(matches)
	return (m/float64(len(a)) + m/float64(len(b)) + (m-float64(transpositions/2))/m) / 3.0
}
