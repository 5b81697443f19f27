// Copyright © 2026 Teradata Corporation - All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.

package metrics

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/ragloom/ragas-go/pkg/eval"
	"github.com/ragloom/ragas-go/pkg/runner"
)

// RubricsConfig maps a numeric score level (as a string key, e.g. "1"
// through "5") to the rubric description a judge should match the response
// against.
type RubricsConfig struct {
	Rubrics map[string]string
}

// RubricsScore asks a judge to pick the rubric level that best describes
// the response, then normalizes that level against the highest level in
// the rubric.
type RubricsScore struct {
	runner.BaseMetric
	cfg     RubricsConfig
	maxRung float64
}

func NewRubricsScore(cfg RubricsConfig) *RubricsScore {
	maxRung := 1.0
	for key := range cfg.Rubrics {
		if n, err := strconv.ParseFloat(key, 64); err == nil && n > maxRung {
			maxRung = n
		}
	}
	return &RubricsScore{cfg: cfg, maxRung: maxRung}
}

func (*RubricsScore) Name() string { return "rubrics_score" }

func (m *RubricsScore) Steps() []runner.StepDef {
	return []runner.StepDef{
		llmStep("judge_rubric", m.prompt, parseScoreVerdict),
	}
}

func (m *RubricsScore) Score(modelID string, _ eval.Sample, steps []eval.StepResults) (float64, error) {
	v, ok := stepValue(steps, 0, modelID)
	if !ok {
		return 0, fmt.Errorf("rubrics_score: no verdict for model %s", modelID)
	}
	raw := v.(scoreVerdict).Score
	if m.maxRung == 0 {
		return 0, nil
	}
	return raw / m.maxRung, nil
}

func (m *RubricsScore) prompt(sample eval.Sample, _ []eval.StepResults) string {
	keys := make([]string, 0, len(m.cfg.Rubrics))
	for k := range m.cfg.Rubrics {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString("Score the response against the rubric below, picking the level whose description best fits. ")
	b.WriteString(`Return JSON exactly as {"score": <the chosen level's number>, "reason": "..."}.`)
	b.WriteString("\n\nRubric:\n")
	for _, k := range keys {
		fmt.Fprintf(&b, "%s: %s\n", k, m.cfg.Rubrics[k])
	}
	b.WriteString("\nQuestion: " + sample.UserInput)
	b.WriteString("\nResponse: " + sample.Response)
	return b.String()
}
