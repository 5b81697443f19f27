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

func TestStringSimilarity_Levenshtein_IdenticalStrings(t *testing.T) {
	m := NewStringSimilarity(StringSimilarityConfig{Distance: DistanceLevenshtein})
	assert.InDelta(t, 1.0, m.score(eval.Sample{Response: "hello", Reference: "hello"}), 1e-9)
}

func TestStringSimilarity_Hamming_EqualLengthSingleMismatch(t *testing.T) {
	m := NewStringSimilarity(StringSimilarityConfig{Distance: DistanceHamming})
	got := m.score(eval.Sample{Response: "abcd", Reference: "abcx"})
	assert.InDelta(t, 0.75, got, 1e-9)
}

func TestStringSimilarity_JaroWinkler_IdenticalStrings(t *testing.T) {
	m := NewStringSimilarity(StringSimilarityConfig{Distance: DistanceJaroWinkler})
	assert.InDelta(t, 1.0, m.score(eval.Sample{Response: "martha", Reference: "martha"}), 1e-9)
}

func TestStringSimilarity_JaroWinkler_ClassicExample(t *testing.T) {
	m := NewStringSimilarity(StringSimilarityConfig{Distance: DistanceJaroWinkler})
	got := m.score(eval.Sample{Response: "martha", Reference: "marhta"})
	assert.InDelta(t, 0.961, got, 0.01)
}

func TestStringSimilarity_BothEmptyScoresOne(t *testing.T) {
	m := NewStringSimilarity(StringSimilarityConfig{})
	assert.Equal(t, 1.0, m.score(eval.Sample{}))
}
