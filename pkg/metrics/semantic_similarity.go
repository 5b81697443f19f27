// Copyright © 2026 Teradata Corporation - All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.

package metrics

import (
	"fmt"

	"github.com/ragloom/ragas-go/pkg/eval"
	"github.com/ragloom/ragas-go/pkg/execengine"
	"github.com/ragloom/ragas-go/pkg/runner"
)

// SemanticSimilarityConfig carries no tunables; the metric runs its
// embedding step against whichever embedding model ids it is invoked with.
type SemanticSimilarityConfig struct{}

// SemanticSimilarity scores the cosine similarity between a response and
// its reference answer's embeddings. Unlike the chat-judge metrics, the
// "surviving models" this metric runs against are embedding model ids
// directly: callers pass execengine.Executor.EmbeddingModelIDs() (or a
// subset) as the model list.
type SemanticSimilarity struct {
	runner.BaseMetric
}

func NewSemanticSimilarity(SemanticSimilarityConfig) *SemanticSimilarity {
	return &SemanticSimilarity{}
}

func (*SemanticSimilarity) Name() string { return "semantic_similarity" }

func (*SemanticSimilarity) Steps() []runner.StepDef {
	return []runner.StepDef{
		embeddingStep("embed_response_and_reference", func(sample eval.Sample, _ []eval.StepResults) []string {
			return []string{sample.Response, sample.Reference}
		}),
	}
}

func (*SemanticSimilarity) Score(modelID string, _ eval.Sample, steps []eval.StepResults) (float64, error) {
	v, ok := stepValue(steps, 0, modelID)
	if !ok {
		return 0, fmt.Errorf("semantic_similarity: no embeddings for model %s", modelID)
	}
	batch := v.(execengine.EmbeddingBatch)
	if len(batch) < 2 {
		return 0, nil
	}
	return cosineSimilarity(batch[0], batch[1]), nil
}
