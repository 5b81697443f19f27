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

// FaithfulnessConfig carries no tunables; it exists so callers have a
// uniform per-metric config type to thread through configuration loading.
type FaithfulnessConfig struct{}

// Faithfulness measures how many claims in a response are supported by its
// retrieved contexts: extract atomic statements from the response, judge
// each against the contexts, score as supported/total.
type Faithfulness struct {
	runner.BaseMetric
}

func NewFaithfulness(FaithfulnessConfig) *Faithfulness { return &Faithfulness{} }

func (*Faithfulness) Name() string { return "faithfulness" }

func (*Faithfulness) Steps() []runner.StepDef {
	return []runner.StepDef{
		llmStep("extract_statements", faithfulnessExtractPrompt, parseStatementExtraction),
		perModelLLMStep("judge_statements", faithfulnessVerdictPrompt, parseVerdictList),
	}
}

func (*Faithfulness) Score(modelID string, _ eval.Sample, steps []eval.StepResults) (float64, error) {
	v, ok := stepValue(steps, 1, modelID)
	if !ok {
		return 0, fmt.Errorf("faithfulness: no verdicts for model %s", modelID)
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

func (*Faithfulness) Metadata(_ eval.Sample, steps []eval.StepResults, scores map[string]float64) eval.Metadata {
	byModel := make(map[string][]int, len(scores))
	var statements []string
	for modelID := range scores {
		if v, ok := stepValue(steps, 1, modelID); ok {
			vl := v.(verdictList).Verdicts
			ints := make([]int, len(vl))
			for i, vd := range vl {
				ints[i] = vd.Verdict
				if len(statements) < len(vl) {
					statements = append(statements, vd.Statement)
				}
			}
			byModel[modelID] = ints
		}
	}
	return eval.Metadata{
		Kind:         eval.MetadataFaithfulness,
		Faithfulness: &eval.FaithfulnessMetadata{Statements: statements, VerdictsByModel: byModel},
	}
}

func faithfulnessExtractPrompt(sample eval.Sample, _ []eval.StepResults) string {
	var b strings.Builder
	b.WriteString("Break the following response into a list of simple, atomic factual statements. ")
	b.WriteString("Each statement must stand alone and be verifiable independently. ")
	b.WriteString(`Return JSON exactly as {"statements": ["...", ...]}.`)
	b.WriteString("\n\nQuestion: " + sample.UserInput)
	b.WriteString("\nResponse: " + sample.Response)
	return b.String()
}

func faithfulnessVerdictPrompt(sample eval.Sample, prior []eval.StepResults, modelID string) (string, error) {
	v, ok := stepValue(prior, 0, modelID)
	if !ok {
		return "", fmt.Errorf("faithfulness: statement extraction missing for model %s", modelID)
	}
	statements := v.(statementExtraction).Statements

	var b strings.Builder
	b.WriteString("For each statement below, decide whether it is directly supported by the given contexts. ")
	b.WriteString("Verdict 1 means supported, 0 means not supported. ")
	b.WriteString(`Return JSON exactly as {"verdicts": [{"statement": "...", "verdict": 0 or 1, "reason": "..."}, ...]}, one entry per statement, in order.`)
	b.WriteString("\n\nContexts:\n")
	for _, c := range sample.RetrievedContexts {
		b.WriteString("- " + c + "\n")
	}
	b.WriteString("\nStatements:\n")
	for i, s := range statements {
		fmt.Fprintf(&b, "%d. %s\n", i+1, s)
	}
	return b.String(), nil
}
