// Copyright © 2026 Teradata Corporation - All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.

// Package runner implements the Metric Pipeline Runner: it drives a Metric's
// declared steps across a surviving set of judge models, tracks exclusions,
// scores and aggregates, and narrates the run through a listener Session.
// Grounded on the INIT/READY/STEP_RUNNING/AGGREGATING/COMPLETE shape of this
// codebase's evaluation runner, generalized from a fixed judge pipeline to
// an arbitrary per-metric step sequence.
package runner

import (
	"context"

	"github.com/ragloom/ragas-go/pkg/aggregate"
	"github.com/ragloom/ragas-go/pkg/eval"
	"github.com/ragloom/ragas-go/pkg/execengine"
)

// StepDef is one step in a metric's pipeline: an LLM call, an embedding
// call, or a pure computation, run once per evaluation over the models
// still surviving at that point. Run must return one ModelResult (or
// embedding ModelResult) per entry in modelIDs; a model missing from the
// returned results is treated as failed.
type StepDef struct {
	Name string
	Kind eval.StepKind
	Run  func(ctx context.Context, exec *execengine.Executor, sample eval.Sample, modelIDs []string, prior []eval.StepResults) eval.StepResults
}

// Metric is the contract every catalog metric implements. Steps declares
// the pipeline; Score computes one surviving model's final value from its
// own outputs across all completed steps, never another model's; Metadata
// builds the optional per-metric explanation data after scoring succeeds.
type Metric interface {
	Name() string
	Steps() []StepDef
	Score(modelID string, sample eval.Sample, steps []eval.StepResults) (float64, error)
	Aggregation() aggregate.Config
	Metadata(sample eval.Sample, steps []eval.StepResults, scores map[string]float64) eval.Metadata
}

// BaseMetric gives metrics a default AVERAGE aggregation and no metadata,
// for embedding into catalog metrics that don't need to override them.
type BaseMetric struct{}

func (BaseMetric) Aggregation() aggregate.Config { return aggregate.Default() }

func (BaseMetric) Metadata(eval.Sample, []eval.StepResults, map[string]float64) eval.Metadata {
	return eval.Metadata{Kind: eval.MetadataNone}
}
