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

// ContextPrecisionStrategy picks which field of the sample a context's
// relevance is judged against.
type ContextPrecisionStrategy string

const (
	ContextPrecisionReferenceBased ContextPrecisionStrategy = "REFERENCE_BASED"
	ContextPrecisionResponseBased  ContextPrecisionStrategy = "RESPONSE_BASED"
	ContextPrecisionAuto           ContextPrecisionStrategy = "AUTO"
)

// ContextPrecisionConfig selects the relevance-judging strategy.
type ContextPrecisionConfig struct {
	Strategy ContextPrecisionStrategy
}

// ContextPrecision scores how well a retriever ranks relevant contexts
// first: each context is judged relevant or not against the reference (or
// the response, if AUTO and no reference is present), then weighted by its
// precision-at-k.
type ContextPrecision struct {
	runner.BaseMetric
	cfg ContextPrecisionConfig
}

func NewContextPrecision(cfg ContextPrecisionConfig) *ContextPrecision {
	if cfg.Strategy == "" {
		cfg.Strategy = ContextPrecisionAuto
	}
	return &ContextPrecision{cfg: cfg}
}

func (*ContextPrecision) Name() string { return "context_precision" }

func (m *ContextPrecision) Steps() []runner.StepDef {
	return []runner.StepDef{
		{
			Name: "judge_context_relevance",
			Kind: eval.StepLLM,
			Run:  m.judgeRelevance,
		},
	}
}

func (m *ContextPrecision) judgeRelevance(ctx context.Context, exec *execengine.Executor, sample eval.Sample, modelIDs []string, _ []eval.StepResults) eval.StepResults {
	answer := sample.Reference
	if m.cfg.Strategy == ContextPrecisionResponseBased || (m.cfg.Strategy == ContextPrecisionAuto && !sample.HasReference) {
		answer = sample.Response
	}

	verdictsByModel := make(map[string][]int, len(modelIDs))
	for _, id := range modelIDs {
		verdictsByModel[id] = make([]int, len(sample.RetrievedContexts))
	}
	failed := make(map[string]*eval.ResultError)

	for i, c := range sample.RetrievedContexts {
		prompt := contextPrecisionPrompt(sample.UserInput, answer, c)
		perModel := exec.ExecuteLLMOnAll(ctx, modelIDs, prompt, parseBinaryVerdict)
		for _, id := range modelIDs {
			if _, already := failed[id]; already {
				continue
			}
			r, ok := perModel[id]
			if !ok || !r.Success {
				if ok {
					failed[id] = r.Err
				} else {
					failed[id] = &eval.ResultError{Kind: "INTERNAL", Message: "missing result"}
				}
				continue
			}
			verdictsByModel[id][i] = r.Value.(binaryVerdict).Verdict
		}
	}

	out := eval.StepResults{Results: make([]eval.ModelResult[any], 0, len(modelIDs))}
	for _, id := range modelIDs {
		if err, bad := failed[id]; bad {
			out.Results = append(out.Results, eval.Failed[any](id, "judge_context_relevance", 0, err.Kind, err.Message))
			continue
		}
		out.Results = append(out.Results, eval.Succeeded[any](id, "judge_context_relevance", 0, verdictsByModel[id]))
	}
	return out
}

func (*ContextPrecision) Score(modelID string, _ eval.Sample, steps []eval.StepResults) (float64, error) {
	v, ok := stepValue(steps, 0, modelID)
	if !ok {
		return 0, fmt.Errorf("context_precision: no relevance verdicts for model %s", modelID)
	}
	relevance := v.([]int)
	if len(relevance) == 0 {
		return 0, nil
	}

	var weightedSum float64
	var relevantCount float64
	for k := range relevance {
		if relevance[k] != 1 {
			continue
		}
		relevantCount++
		precisionAtK := relevantCount / float64(k+1)
		weightedSum += precisionAtK * float64(relevance[k])
	}
	if relevantCount == 0 {
		return 0, nil
	}
	return weightedSum / relevantCount, nil
}

func contextPrecisionPrompt(question, answer, context string) string {
	return fmt.Sprintf(
		"Given the question, the expected answer, and a single retrieved context, "+
			"decide whether the context was useful in arriving at the answer. "+
			`Return JSON exactly as {"verdict": 0 or 1, "reason": "..."}.`+
			"\n\nQuestion: %s\nAnswer: %s\nContext: %s",
		question, answer, context,
	)
}
