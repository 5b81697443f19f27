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

// ContextRecallConfig carries no tunables.
type ContextRecallConfig struct{}

// ContextRecall measures whether every claim in the reference answer can be
// attributed to the retrieved contexts: split the reference into
// statements, classify each as attributed (1) or not (0), score as
// attributed/total.
type ContextRecall struct {
	runner.BaseMetric
}

func NewContextRecall(ContextRecallConfig) *ContextRecall { return &ContextRecall{} }

func (*ContextRecall) Name() string { return "context_recall" }

func (*ContextRecall) Steps() []runner.StepDef {
	return []runner.StepDef{
		llmStep("classify_attribution", contextRecallPrompt, parseVerdictList),
	}
}

func (*ContextRecall) Score(modelID string, _ eval.Sample, steps []eval.StepResults) (float64, error) {
	v, ok := stepValue(steps, 0, modelID)
	if !ok {
		return 0, fmt.Errorf("context_recall: no attribution verdicts for model %s", modelID)
	}
	verdicts := v.(verdictList).Verdicts
	if len(verdicts) == 0 {
		return 0, nil
	}
	attributed := 0
	for _, vd := range verdicts {
		if vd.Verdict == 1 {
			attributed++
		}
	}
	return float64(attributed) / float64(len(verdicts)), nil
}

func contextRecallPrompt(sample eval.Sample, _ []eval.StepResults) string {
	var b strings.Builder
	b.WriteString("Break the reference answer below into simple factual statements, then for each one decide ")
	b.WriteString("whether it can be attributed to the given contexts. Verdict 1 means attributable, 0 means not. ")
	b.WriteString(`Return JSON exactly as {"verdicts": [{"statement": "...", "verdict": 0 or 1, "reason": "..."}, ...]}.`)
	b.WriteString("\n\nContexts:\n")
	for _, c := range sample.RetrievedContexts {
		b.WriteString("- " + c + "\n")
	}
	b.WriteString("\nReference answer: " + sample.Reference)
	return b.String()
}
