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

// ResponseGroundednessConfig carries no tunables.
type ResponseGroundednessConfig struct{}

// ResponseGroundedness is the NVIDIA-style dual-judge groundedness metric:
// two prompts each score how well the response is supported by the
// retrieved contexts on a 0/1/2 scale, averaged after normalizing to 0..1.
type ResponseGroundedness struct {
	runner.BaseMetric
}

func NewResponseGroundedness(ResponseGroundednessConfig) *ResponseGroundedness {
	return &ResponseGroundedness{}
}

func (*ResponseGroundedness) Name() string { return "nv_response_groundedness" }

func (*ResponseGroundedness) Steps() []runner.StepDef {
	return []runner.StepDef{
		llmStep("judge_pass_1", groundednessPromptA, parseNVIDIAJudgment),
		llmStep("judge_pass_2", groundednessPromptB, parseNVIDIAJudgment),
	}
}

func (*ResponseGroundedness) Score(modelID string, _ eval.Sample, steps []eval.StepResults) (float64, error) {
	return averageNVIDIAJudgments(modelID, steps, "nv_response_groundedness", 0, 1)
}

func groundednessPromptA(sample eval.Sample, _ []eval.StepResults) string {
	return fmt.Sprintf(
		"Rate how well the response is grounded in the given contexts, claim by claim. "+
			"0 means ungrounded, 1 means partially grounded, 2 means fully grounded. "+
			`Return JSON exactly as {"judgment": 0, 1, or 2, "reason": "..."}.`+
			"\n\nContexts:\n%s\nResponse: %s",
		joinContexts(sample.RetrievedContexts), sample.Response,
	)
}

func groundednessPromptB(sample eval.Sample, _ []eval.StepResults) string {
	return fmt.Sprintf(
		"Independently verify whether every sentence in the response can be traced back to the contexts below. "+
			"0 means no, 1 means partially, 2 means yes entirely. "+
			`Return JSON exactly as {"judgment": 0, 1, or 2, "reason": "..."}.`+
			"\n\nContexts:\n%s\nResponse: %s",
		joinContexts(sample.RetrievedContexts), sample.Response,
	)
}

func joinContexts(contexts []string) string {
	out := ""
	for _, c := range contexts {
		out += "- " + c + "\n"
	}
	return out
}
