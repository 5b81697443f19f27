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

// SimpleCriteriaConfig names one free-form scoring criterion and the
// maximum score a judge may award for it.
type SimpleCriteriaConfig struct {
	Criteria string
	MaxScore int
}

// SimpleCriteria asks a judge to score a response against a single
// criterion on an integer scale, normalized to 0..1 by MaxScore. It is the
// unranked counterpart to RubricsScore, for criteria that don't need a
// full level-by-level description.
type SimpleCriteria struct {
	runner.BaseMetric
	cfg SimpleCriteriaConfig
}

func NewSimpleCriteria(cfg SimpleCriteriaConfig) *SimpleCriteria {
	if cfg.MaxScore <= 0 {
		cfg.MaxScore = 5
	}
	return &SimpleCriteria{cfg: cfg}
}

func (*SimpleCriteria) Name() string { return "simple_criteria_score" }

func (m *SimpleCriteria) Steps() []runner.StepDef {
	return []runner.StepDef{
		llmStep("judge_criteria", m.prompt, parseScoreVerdict),
	}
}

func (m *SimpleCriteria) Score(modelID string, _ eval.Sample, steps []eval.StepResults) (float64, error) {
	v, ok := stepValue(steps, 0, modelID)
	if !ok {
		return 0, fmt.Errorf("simple_criteria_score: no verdict for model %s", modelID)
	}
	return v.(scoreVerdict).Score / float64(m.cfg.MaxScore), nil
}

func (m *SimpleCriteria) prompt(sample eval.Sample, _ []eval.StepResults) string {
	return fmt.Sprintf(
		"Score the response against this criterion: %s. Use an integer scale from 0 to %d. "+
			`Return JSON exactly as {"score": <integer>, "reason": "..."}.`+
			"\n\nQuestion: %s\nResponse: %s",
		m.cfg.Criteria, m.cfg.MaxScore, sample.UserInput, sample.Response,
	)
}
