// Copyright © 2026 Teradata Corporation - All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.

package metrics

import (
	"fmt"

	"github.com/ragloom/ragas-go/pkg/eval"
	"github.com/ragloom/ragas-go/pkg/runner"
)

// AnswerAccuracyConfig carries no tunables; the metric always runs its two
// NVIDIA-style judge passes.
type AnswerAccuracyConfig struct{}

// AnswerAccuracy is the NVIDIA-style dual-judge answer accuracy metric: two
// independently-worded prompts each ask a judge to score the response
// against the reference on a 0/1/2 scale, and the two judgments are
// averaged after normalizing each to 0..1.
type AnswerAccuracy struct {
	runner.BaseMetric
}

func NewAnswerAccuracy(AnswerAccuracyConfig) *AnswerAccuracy { return &AnswerAccuracy{} }

func (*AnswerAccuracy) Name() string { return "nv_answer_accuracy" }

func (*AnswerAccuracy) Steps() []runner.StepDef {
	return []runner.StepDef{
		llmStep("judge_pass_1", answerAccuracyPromptA, parseNVIDIAJudgment),
		llmStep("judge_pass_2", answerAccuracyPromptB, parseNVIDIAJudgment),
	}
}

func (*AnswerAccuracy) Score(modelID string, _ eval.Sample, steps []eval.StepResults) (float64, error) {
	return averageNVIDIAJudgments(modelID, steps, "nv_answer_accuracy", 0, 1)
}

func averageNVIDIAJudgments(modelID string, steps []eval.StepResults, metricName string, indices ...int) (float64, error) {
	var sum float64
	found := 0
	for _, idx := range indices {
		v, ok := stepValue(steps, idx, modelID)
		if !ok {
			continue
		}
		sum += float64(v.(nvidiaJudgment).Judgment) / 2.0
		found++
	}
	if found == 0 {
		return 0, fmt.Errorf("%s: no judgments for model %s", metricName, modelID)
	}
	return sum / float64(found), nil
}

func answerAccuracyPromptA(sample eval.Sample, _ []eval.StepResults) string {
	return fmt.Sprintf(
		"Rate how accurately the response matches the reference answer. "+
			"0 means no overlap, 1 means partially accurate, 2 means fully accurate. "+
			`Return JSON exactly as {"judgment": 0, 1, or 2, "reason": "..."}.`+
			"\n\nQuestion: %s\nReference: %s\nResponse: %s",
		sample.UserInput, sample.Reference, sample.Response,
	)
}

func answerAccuracyPromptB(sample eval.Sample, _ []eval.StepResults) string {
	return fmt.Sprintf(
		"Compare the response against the reference answer from the opposite direction: does the reference "+
			"capture everything correct in the response, and nothing more? "+
			"0 means they disagree, 1 means they partially agree, 2 means they fully agree. "+
			`Return JSON exactly as {"judgment": 0, 1, or 2, "reason": "..."}.`+
			"\n\nQuestion: %s\nResponse: %s\nReference: %s",
		sample.UserInput, sample.Response, sample.Reference,
	)
}
