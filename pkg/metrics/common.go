// Copyright © 2026 Teradata Corporation - All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.

package metrics

import (
	"context"
	"math"
	"sync"

	"github.com/ragloom/ragas-go/pkg/eval"
	"github.com/ragloom/ragas-go/pkg/execengine"
	"github.com/ragloom/ragas-go/pkg/runner"
)

// llmStep builds a StepDef that sends one prompt (built from the sample and
// whatever prior step results exist) to every surviving model and parses
// each response per parse.
func llmStep(name string, promptFn func(sample eval.Sample, prior []eval.StepResults) string, parse execengine.ParseFunc) runner.StepDef {
	return runner.StepDef{
		Name: name,
		Kind: eval.StepLLM,
		Run: func(ctx context.Context, exec *execengine.Executor, sample eval.Sample, modelIDs []string, prior []eval.StepResults) eval.StepResults {
			prompt := promptFn(sample, prior)
			results := exec.ExecuteLLMOnAll(ctx, modelIDs, prompt, parse)
			return toStepResults(modelIDs, results)
		},
	}
}

// embeddingStep builds a StepDef that embeds textsFn's output (one batch,
// possibly several texts) on every surviving embedding model. Each model's
// Value is its full execengine.EmbeddingBatch, one vector per input text in
// order; scoring functions pull individual vectors back out with
// embeddingBatchAt.
func embeddingStep(name string, textsFn func(sample eval.Sample, prior []eval.StepResults) []string) runner.StepDef {
	return runner.StepDef{
		Name: name,
		Kind: eval.StepEmbedding,
		Run: func(ctx context.Context, exec *execengine.Executor, sample eval.Sample, modelIDs []string, prior []eval.StepResults) eval.StepResults {
			texts := textsFn(sample, prior)
			results := exec.ExecuteEmbeddingOnAll(ctx, modelIDs, texts)
			out := eval.StepResults{Results: make([]eval.ModelResult[any], 0, len(modelIDs))}
			for _, id := range modelIDs {
				if r, ok := results[id]; ok {
					out.Results = append(out.Results, widenEmbedding(r))
				}
			}
			return out
		},
	}
}

// perModelLLMStep builds a StepDef whose prompt depends on each surviving
// model's own prior results (e.g. a verdict pass over statements that model
// itself extracted in an earlier step), rather than one prompt shared by
// every model.
func perModelLLMStep(name string, promptFn func(sample eval.Sample, prior []eval.StepResults, modelID string) (string, error), parse execengine.ParseFunc) runner.StepDef {
	return runner.StepDef{
		Name: name,
		Kind: eval.StepLLM,
		Run: func(ctx context.Context, exec *execengine.Executor, sample eval.Sample, modelIDs []string, prior []eval.StepResults) eval.StepResults {
			out := eval.StepResults{Results: make([]eval.ModelResult[any], len(modelIDs))}
			var wg sync.WaitGroup
			for i, id := range modelIDs {
				i, id := i, id
				wg.Add(1)
				go func() {
					defer wg.Done()
					prompt, err := promptFn(sample, prior, id)
					if err != nil {
						out.Results[i] = eval.Failed[any](id, name, 0, "PARSE", err.Error())
						return
					}
					out.Results[i] = exec.ExecuteLLMOnModel(ctx, id, prompt, parse)
				}()
			}
			wg.Wait()
			return out
		},
	}
}

// computeStep builds a StepDef that runs a pure, non-LLM computation over
// every surviving model; a model for which fn returns an error gets a
// failed PARSE result.
func computeStep(name string, fn func(sample eval.Sample, modelID string, prior []eval.StepResults) (any, error)) runner.StepDef {
	return runner.StepDef{
		Name: name,
		Kind: eval.StepCompute,
		Run: func(ctx context.Context, exec *execengine.Executor, sample eval.Sample, modelIDs []string, prior []eval.StepResults) eval.StepResults {
			out := eval.StepResults{Results: make([]eval.ModelResult[any], 0, len(modelIDs))}
			for _, id := range modelIDs {
				value, err := fn(sample, id, prior)
				if err != nil {
					out.Results = append(out.Results, eval.Failed[any](id, name, 0, "PARSE", err.Error()))
					continue
				}
				out.Results = append(out.Results, eval.Succeeded[any](id, name, 0, value))
			}
			return out
		},
	}
}

func toStepResults(modelIDs []string, results map[string]eval.ModelResult[any]) eval.StepResults {
	out := eval.StepResults{Results: make([]eval.ModelResult[any], 0, len(modelIDs))}
	for _, id := range modelIDs {
		if r, ok := results[id]; ok {
			out.Results = append(out.Results, r)
		}
	}
	return out
}

func widenEmbedding(r eval.ModelResult[execengine.EmbeddingBatch]) eval.ModelResult[any] {
	if !r.Success {
		return eval.Failed[any](r.ModelID, r.Prompt, r.Duration, r.Err.Kind, r.Err.Message)
	}
	return eval.Succeeded[any](r.ModelID, r.Prompt, r.Duration, any(r.Value))
}

// stepValue finds modelID's successful value at step index idx, returning
// ok=false if the model has no successful result there (it was already
// excluded, or that step was never reached).
func stepValue(prior []eval.StepResults, idx int, modelID string) (any, bool) {
	if idx < 0 || idx >= len(prior) {
		return nil, false
	}
	for _, r := range prior[idx].Results {
		if r.ModelID == modelID && r.Success {
			return r.Value, true
		}
	}
	return nil, false
}

// embeddingBatchAt returns the i'th vector of modelID's embedding batch at
// step idx, matching the order textsFn produced for that step.
func embeddingBatchAt(prior []eval.StepResults, idx int, modelID string, i int) ([]float64, bool) {
	v, ok := stepValue(prior, idx, modelID)
	if !ok {
		return nil, false
	}
	batch, ok := v.(execengine.EmbeddingBatch)
	if !ok || i < 0 || i >= len(batch) {
		return nil, false
	}
	return batch[i], true
}

// cosineSimilarity returns the cosine similarity of two equal-length
// vectors, or 0 if either is empty or they differ in length.
func cosineSimilarity(a, b []float64) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		dot += a[i] * b[i]
		na += a[i] * a[i]
		nb += b[i] * b[i]
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
