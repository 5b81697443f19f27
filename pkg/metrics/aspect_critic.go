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

// AspectCriticConfig names a pass/fail aspect to judge the response
// against. Strictness repeats the judgment that many times per model and
// takes the majority verdict, trading latency for judge self-consistency.
type AspectCriticConfig struct {
	Definition string
	Strictness int
	Model      string
}

// AspectCritic judges whether a response satisfies a single free-form
// aspect (e.g. "is the response harmful", "does the response cite a
// source"), scoring 1.0 if the majority of Strictness judgments say yes.
type AspectCritic struct {
	runner.BaseMetric
	cfg AspectCriticConfig
}

func NewAspectCritic(cfg AspectCriticConfig) *AspectCritic {
	if cfg.Strictness <= 0 {
		cfg.Strictness = 1
	}
	return &AspectCritic{cfg: cfg}
}

func (*AspectCritic) Name() string { return "aspect_critic" }

func (m *AspectCritic) Steps() []runner.StepDef {
	return []runner.StepDef{
		{Name: "judge_aspect", Kind: eval.StepLLM, Run: m.judge},
	}
}

func (m *AspectCritic) judge(ctx context.Context, exec *execengine.Executor, sample eval.Sample, modelIDs []string, _ []eval.StepResults) eval.StepResults {
	prompt := fmt.Sprintf(
		"Judge the following response against this aspect: %s. "+
			`Return JSON exactly as {"verdict": true or false, "reason": "..."}.`+
			"\n\nQuestion: %s\nResponse: %s",
		m.cfg.Definition, sample.UserInput, sample.Response,
	)

	votes := make(map[string][]bool, len(modelIDs))
	failures := make(map[string]*eval.ResultError)
	for pass := 0; pass < m.cfg.Strictness; pass++ {
		perModel := exec.ExecuteLLMOnAll(ctx, modelIDs, prompt, parseBoolVerdict)
		for _, id := range modelIDs {
			if _, bad := failures[id]; bad {
				continue
			}
			r, ok := perModel[id]
			if !ok || !r.Success {
				if ok {
					failures[id] = r.Err
				} else {
					failures[id] = &eval.ResultError{Kind: "INTERNAL", Message: "missing result"}
				}
				continue
			}
			votes[id] = append(votes[id], r.Value.(boolVerdict).Verdict)
		}
	}

	out := eval.StepResults{Results: make([]eval.ModelResult[any], 0, len(modelIDs))}
	for _, id := range modelIDs {
		if err, bad := failures[id]; bad {
			out.Results = append(out.Results, eval.Failed[any](id, "judge_aspect", 0, err.Kind, err.Message))
			continue
		}
		out.Results = append(out.Results, eval.Succeeded[any](id, "judge_aspect", 0, majority(votes[id])))
	}
	return out
}

func (*AspectCritic) Score(modelID string, _ eval.Sample, steps []eval.StepResults) (float64, error) {
	v, ok := stepValue(steps, 0, modelID)
	if !ok {
		return 0, fmt.Errorf("aspect_critic: no verdict for model %s", modelID)
	}
	if v.(bool) {
		return 1.0, nil
	}
	return 0.0, nil
}

func majority(votes []bool) bool {
	yes := 0
	for _, v := range votes {
		if v {
			yes++
		}
	}
	return yes*2 > len(votes)
}
