// Copyright © 2026 Teradata Corporation - All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.

package metrics

import (
	"fmt"
	"reflect"

	"github.com/ragloom/ragas-go/pkg/eval"
	"github.com/ragloom/ragas-go/pkg/runner"
)

// ToolCallAccuracyMode selects how strictly a tool call's arguments must
// match its reference counterpart to count as matched.
type ToolCallAccuracyMode string

const (
	ToolCallStrict   ToolCallAccuracyMode = "STRICT"
	ToolCallFlexible ToolCallAccuracyMode = "FLEXIBLE"
)

// ToolCallAccuracyConfig selects the matching mode and, for FLEXIBLE, the
// minimum fraction of reference arguments that must be shared.
type ToolCallAccuracyConfig struct {
	Mode                  ToolCallAccuracyMode
	ArgumentMatchThreshold float64
}

// ToolCallAccuracy is a pure computation: match the actual tool calls a
// response made against the reference tool calls, and report the F1 of
// that matching. It needs no judge model at all, so it runs on every
// surviving model but produces the same score for all of them.
type ToolCallAccuracy struct {
	runner.BaseMetric
	cfg ToolCallAccuracyConfig
}

func NewToolCallAccuracy(cfg ToolCallAccuracyConfig) *ToolCallAccuracy {
	if cfg.Mode == "" {
		cfg.Mode = ToolCallStrict
	}
	return &ToolCallAccuracy{cfg: cfg}
}

func (*ToolCallAccuracy) Name() string { return "tool_call_accuracy" }

func (m *ToolCallAccuracy) Steps() []runner.StepDef {
	return []runner.StepDef{
		computeStep("match_tool_calls", func(sample eval.Sample, _ string, _ []eval.StepResults) (any, error) {
			return m.f1(sample), nil
		}),
	}
}

func (*ToolCallAccuracy) Score(modelID string, _ eval.Sample, steps []eval.StepResults) (float64, error) {
	v, ok := stepValue(steps, 0, modelID)
	if !ok {
		return 0, fmt.Errorf("tool_call_accuracy: no match result for model %s", modelID)
	}
	return v.(float64), nil
}

func (m *ToolCallAccuracy) f1(sample eval.Sample) float64 {
	actual := sample.ToolCalls
	reference := sample.ReferenceToolCalls

	if len(actual) == 0 && len(reference) == 0 {
		return 1.0
	}
	if len(actual) == 0 || len(reference) == 0 {
		return 0.0
	}

	usedReference := make([]bool, len(reference))
	matched := 0
	for _, a := range actual {
		for j, r := range reference {
			if usedReference[j] {
				continue
			}
			if m.matches(a, r) {
				usedReference[j] = true
				matched++
				break
			}
		}
	}

	precision := float64(matched) / float64(len(actual))
	recall := float64(matched) / float64(len(reference))
	if precision+recall == 0 {
		return 0.0
	}
	return 2 * precision * recall / (precision + recall)
}

func (m *ToolCallAccuracy) matches(actual, reference eval.ToolCall) bool {
	if actual.Name != reference.Name {
		return false
	}
	switch m.cfg.Mode {
	case ToolCallFlexible:
		if len(reference.Args) == 0 {
			return len(actual.Args) == 0
		}
		shared := 0
		for k, v := range reference.Args {
			if av, ok := actual.Args[k]; ok && reflect.DeepEqual(av, v) {
				shared++
			}
		}
		threshold := m.cfg.ArgumentMatchThreshold
		if threshold <= 0 {
			threshold = 0.5
		}
		return float64(shared)/float64(len(reference.Args)) >= threshold
	default: // STRICT
		return reflect.DeepEqual(actual.Args, reference.Args)
	}
}
