// Copyright © 2026 Teradata Corporation - All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.

package metrics

import (
	"context"
	"fmt"

	"github.com/ragloom/ragas-go/pkg/eval"
	"github.com/ragloom/ragas-go/pkg/execengine"
	"github.com/ragloom/ragas-go/pkg/runner"
)

// AnswerCorrectnessConfig weights how much factual agreement (claims
// judged against the reference) counts versus embedding similarity, and
// names the embedding model the similarity half uses.
type AnswerCorrectnessConfig struct {
	FactualWeight  float64
	EmbeddingModel string
}

// AnswerCorrectness combines factual agreement between a response and its
// reference with their semantic similarity, the standard two-signal
// composite this metric is known for.
type AnswerCorrectness struct {
	runner.BaseMetric
	cfg AnswerCorrectnessConfig
}

func NewAnswerCorrectness(cfg AnswerCorrectnessConfig) *AnswerCorrectness {
	if cfg.FactualWeight <= 0 {
		cfg.FactualWeight = 0.75
	}
	return &AnswerCorrectness{cfg: cfg}
}

func (*AnswerCorrectness) Name() string { return "answer_correctness" }

func (m *AnswerCorrectness) Steps() []runner.StepDef {
	return []runner.StepDef{
		llmStep("extract_claims", factualExtractPrompt, parseStatementExtraction),
		perModelLLMStep("judge_claims", factualJudgePrompt, parseVerdictList),
		{
			Name: "embed_answers",
			Kind: eval.StepEmbedding,
			Run: func(ctx context.Context, exec *execengine.Executor, sample eval.Sample, modelIDs []string, prior []eval.StepResults) eval.StepResults {
				out := eval.StepResults{Results: make([]eval.ModelResult[any], 0, len(modelIDs))}
				for _, id := range modelIDs {
					r := exec.ExecuteEmbeddingOnModel(ctx, m.cfg.EmbeddingModel, []string{sample.Response, sample.Reference})
					if !r.Success {
						out.Results = append(out.Results, eval.Failed[any](id, "embed_answers", r.Duration, r.Err.Kind, r.Err.Message))
						continue
					}
					out.Results = append(out.Results, eval.Succeeded[any](id, "embed_answers", r.Duration, any(r.Value)))
				}
				return out
			},
		},
	}
}

func (m *AnswerCorrectness) Score(modelID string, _ eval.Sample, steps []eval.StepResults) (float64, error) {
	claimValue, ok := stepValue(steps, 1, modelID)
	if !ok {
		return 0, fmt.Errorf("answer_correctness: no claim verdicts for model %s", modelID)
	}
	verdicts := claimValue.(verdictList).Verdicts
	factual := 0.0
	if len(verdicts) > 0 {
		supported := 0
		for _, vd := range verdicts {
			if vd.Verdict == 1 {
				supported++
			}
		}
		factual = float64(supported) / float64(len(verdicts))
	}

	batchValue, ok := stepValue(steps, 2, modelID)
	if !ok {
		return 0, fmt.Errorf("answer_correctness: no embeddings for model %s", modelID)
	}
	batch := batchValue.(execengine.EmbeddingBatch)
	semantic := 0.0
	if len(batch) >= 2 {
		semantic = cosineSimilarity(batch[0], batch[1])
	}

	return m.cfg.FactualWeight*factual + (1-m.cfg.FactualWeight)*semantic, nil
}
