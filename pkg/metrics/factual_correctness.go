// Copyright © 2026 Teradata Corporation - All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.

package metrics

import (
	"fmt"
	"strings"

	"github.com/ragloom/ragas-go/pkg/eval"
	"github.com/ragloom/ragas-go/pkg/runner"
)

// FactualCorrectnessConfig carries no tunables.
type FactualCorrectnessConfig struct{}

// FactualCorrectness decomposes a response into atomic claims and checks
// each against the reference via natural-language inference, scoring the
// fraction the reference supports. This is the precision half of the
// metric's usual precision/recall pairing (see DESIGN.md for why recall
// was scoped out).
type FactualCorrectness struct {
	runner.BaseMetric
}

func NewFactualCorrectness(FactualCorrectnessConfig) *FactualCorrectness {
	return &FactualCorrectness{}
}

func (*FactualCorrectness) Name() string { return "factual_correctness" }

func (*FactualCorrectness) Steps() []runner.StepDef {
	return []runner.StepDef{
		llmStep("extract_claims", factualExtractPrompt, parseStatementExtraction),
		perModelLLMStep("judge_claims", factualJudgePrompt, parseVerdictList),
	}
}

func (*FactualCorrectness) Score(modelID string, _ eval.Sample, steps []eval.StepResults) (float64, error) {
	v, ok := stepValue(steps, 1, modelID)
	if !ok {
		return 0, fmt.Errorf("factual_correctness: no verdicts for model %s", modelID)
	}
	verdicts := v.(verdictList).Verdicts
	if len(verdicts) == 0 {
		return 0, nil
	}
	supported := 0
	for _, vd := range verdicts {
		if vd.Verdict == 1 {
			supported++
		}
	}
	return float64(supported) / float64(len(verdicts)), nil
}

func factualExtractPrompt(sample eval.Sample, _ []eval.StepResults) string {
	var b strings.Builder
	b.WriteString("Break the following response into a list of simple, atomic factual claims. ")
	b.WriteString(`Return JSON exactly as {"statements": ["...", ...]}.`)
	b.WriteString("\n\nResponse: " + sample.Response)
	return b.String()
}

func factualJudgePrompt(sample eval.Sample, prior []eval.StepResults, modelID string) (string, error) {
	v, ok := stepValue(prior, 0, modelID)
	if !ok {
		return "", fmt.Errorf("factual_correctness: claim extraction missing for model %s", modelID)
	}
	claims := v.(statementExtraction).Statements

	var b strings.Builder
	b.WriteString("For each claim below, decide whether the reference answer supports it. Verdict 1 means supported, 0 means not. ")
	b.WriteString(`Return JSON exactly as {"verdicts": [{"statement": "...", "verdict": 0 or 1, "reason": "..."}, ...]}, one entry per claim, in order.`)
	b.WriteString("\n\nReference: " + sample.Reference)
	b.WriteString("\nClaims:\n")
	for i, c := range claims {
		fmt.Fprintf(&b, "%d. %s\n", i+1, c)
	}
	return b.String(), nil
}
