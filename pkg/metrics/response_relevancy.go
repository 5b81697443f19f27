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

// ResponseRelevancyConfig controls how many hypothetical questions to
// generate and which registered embedding model judges their similarity to
// the original question. A judging chat model that fails its own question
// generation is excluded before the embedding step runs; the embedding
// model itself is shared infrastructure, not part of the surviving set.
type ResponseRelevancyConfig struct {
	NumQuestions   int
	EmbeddingModel string
}

// ResponseRelevancy measures how directly a response answers its question:
// generate hypothetical questions the response would answer, embed them
// alongside the real question, and average their cosine similarity.
type ResponseRelevancy struct {
	runner.BaseMetric
	cfg ResponseRelevancyConfig
}

func NewResponseRelevancy(cfg ResponseRelevancyConfig) *ResponseRelevancy {
	if cfg.NumQuestions <= 0 {
		cfg.NumQuestions = 3
	}
	return &ResponseRelevancy{cfg: cfg}
}

func (*ResponseRelevancy) Name() string { return "response_relevancy" }

func (m *ResponseRelevancy) Steps() []runner.StepDef {
	return []runner.StepDef{
		llmStep("generate_questions", m.questionPrompt, parseQuestionGeneration),
		{Name: "embed_questions", Kind: eval.StepEmbedding, Run: m.embedQuestions},
	}
}

func (m *ResponseRelevancy) questionPrompt(sample eval.Sample, _ []eval.StepResults) string {
	return fmt.Sprintf(
		"Generate exactly %d questions that the following response would be a direct, complete answer to. "+
			"For each question, also judge whether the response is noncommittal (vague, evasive, or refuses to answer). "+
			`Return JSON exactly as {"questions": ["...", ...], "noncommittal": [true or false, ...]}.`+
			"\n\nResponse: %s",
		m.cfg.NumQuestions, sample.Response,
	)
}

func (m *ResponseRelevancy) embedQuestions(ctx context.Context, exec *execengine.Executor, sample eval.Sample, modelIDs []string, prior []eval.StepResults) eval.StepResults {
	out := eval.StepResults{Results: make([]eval.ModelResult[any], 0, len(modelIDs))}
	for _, id := range modelIDs {
		v, ok := stepValue(prior, 0, id)
		if !ok {
			out.Results = append(out.Results, eval.Failed[any](id, "embed_questions", 0, "PARSE", "no generated questions"))
			continue
		}
		gen := v.(questionGeneration)
		texts := append([]string{sample.UserInput}, gen.Questions...)

		r := exec.ExecuteEmbeddingOnModel(ctx, m.cfg.EmbeddingModel, texts)
		if !r.Success {
			out.Results = append(out.Results, eval.Failed[any](id, "embed_questions", r.Duration, r.Err.Kind, r.Err.Message))
			continue
		}
		out.Results = append(out.Results, eval.Succeeded[any](id, "embed_questions", r.Duration, any(r.Value)))
	}
	return out
}

func (*ResponseRelevancy) Score(modelID string, _ eval.Sample, steps []eval.StepResults) (float64, error) {
	genValue, ok := stepValue(steps, 0, modelID)
	if !ok {
		return 0, fmt.Errorf("response_relevancy: no generated questions for model %s", modelID)
	}
	gen := genValue.(questionGeneration)
	if allNoncommittal(gen.Noncommittal) {
		return 0, nil
	}

	batchValue, ok := stepValue(steps, 1, modelID)
	if !ok {
		return 0, fmt.Errorf("response_relevancy: no embeddings for model %s", modelID)
	}
	batch := batchValue.(execengine.EmbeddingBatch)
	if len(batch) < 2 {
		return 0, nil
	}
	userInputVector := batch[0]

	var sum float64
	count := 0
	for i := 1; i < len(batch); i++ {
		sum += cosineSimilarity(userInputVector, batch[i])
		count++
	}
	if count == 0 {
		return 0, nil
	}
	return sum / float64(count), nil
}

func allNoncommittal(flags []bool) bool {
	if len(flags) == 0 {
		return false
	}
	for _, f := range flags {
		if !f {
			return false
		}
	}
	return true
}
