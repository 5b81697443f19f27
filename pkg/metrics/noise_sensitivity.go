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

// NoiseSensitivityConfig carries no tunables.
type NoiseSensitivityConfig struct{}

// NoiseSensitivity estimates how much of a response's content was pulled in
// from retrieved context that the reference answer doesn't support: extract
// entities mentioned in the response and in the reference, then score the
// fraction of response-only entities that also appear in the retrieved
// contexts (evidence the model leaned on noisy context rather than
// fabricating freely).
type NoiseSensitivity struct {
	runner.BaseMetric
}

func NewNoiseSensitivity(NoiseSensitivityConfig) *NoiseSensitivity {
	return &NoiseSensitivity{}
}

func (*NoiseSensitivity) Name() string { return "noise_sensitivity" }

func (*NoiseSensitivity) Steps() []runner.StepDef {
	return []runner.StepDef{
		llmStep("extract_response_entities", func(sample eval.Sample, _ []eval.StepResults) string {
			return entityExtractionPrompt(sample.Response)
		}, parseEntityExtraction),
		llmStep("extract_reference_entities", func(sample eval.Sample, _ []eval.StepResults) string {
			return entityExtractionPrompt(sample.Reference)
		}, parseEntityExtraction),
	}
}

func (*NoiseSensitivity) Score(modelID string, sample eval.Sample, steps []eval.StepResults) (float64, error) {
	responseValue, ok := stepValue(steps, 0, modelID)
	if !ok {
		return 0, fmt.Errorf("noise_sensitivity: no response entities for model %s", modelID)
	}
	referenceValue, ok := stepValue(steps, 1, modelID)
	if !ok {
		return 0, fmt.Errorf("noise_sensitivity: no reference entities for model %s", modelID)
	}
	responseEntities := responseValue.(entityExtraction).Entities
	referenceEntities := referenceValue.(entityExtraction).Entities
	if len(responseEntities) == 0 {
		return 0, nil
	}

	referenceSet := make(map[string]bool, len(referenceEntities))
	for _, e := range referenceEntities {
		referenceSet[strings.ToLower(e)] = true
	}
	contextText := strings.ToLower(strings.Join(sample.RetrievedContexts, "\n"))

	noiseDerived := 0
	for _, e := range responseEntities {
		lower := strings.ToLower(e)
		if referenceSet[lower] {
			continue
		}
		if strings.Contains(contextText, lower) {
			noiseDerived++
		}
	}
	return float64(noiseDerived) / float64(len(responseEntities)), nil
}

func entityExtractionPrompt(text string) string {
	return fmt.Sprintf(
		"Extract the named entities (people, places, organizations, dates, quantities) mentioned in the "+
			"following text. "+`Return JSON exactly as {"entities": ["...", ...]}.`+"\n\nText: %s",
		text,
	)
}
