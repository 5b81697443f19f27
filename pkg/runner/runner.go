// Copyright © 2026 Teradata Corporation - All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.

package runner

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/ragloom/ragas-go/pkg/aggregate"
	"github.com/ragloom/ragas-go/pkg/eval"
	"github.com/ragloom/ragas-go/pkg/execengine"
	"github.com/ragloom/ragas-go/pkg/listener"
	"github.com/ragloom/ragas-go/pkg/ragerr"
)

// Runner drives one Metric's pipeline to completion, never returning an
// error itself: every failure mode is folded into the returned
// MetricEvaluationResult, per the contract that only ConfigurationError and
// ValidationError are allowed to escape the core, and only before the first
// listener event fires.
type Runner struct {
	executor *execengine.Executor
	bus      *listener.Bus
}

// New builds a Runner over an Executor and the listener Bus whose
// registered listeners should observe every evaluation it drives.
func New(executor *execengine.Executor, bus *listener.Bus) *Runner {
	return &Runner{executor: executor, bus: bus}
}

// Run evaluates metric against sample, using modelIDs as the initial
// surviving set (pass execengine.Executor.ModelIDs() to use every
// registered chat model).
func (r *Runner) Run(ctx context.Context, metric Metric, sample eval.Sample, modelIDs []string) eval.MetricEvaluationResult {
	start := time.Now()
	evalID := uuid.NewString()
	session := r.bus.ForEvaluation()
	steps := metric.Steps()

	evalCtx := eval.MetricEvaluationContext{
		ID:            evalID,
		Metric:        metric.Name(),
		Sample:        sample,
		InitialModels: append([]string(nil), modelIDs...),
		TotalSteps:    len(steps),
	}
	session.BeforeMetricEvaluation(ctx, evalCtx)

	surviving := append([]string(nil), modelIDs...)
	var exclusions []eval.ModelExclusionEvent
	var excludedModels []string
	var stepResultsAll []eval.StepResults
	cancelReason := eval.ReasonNone

stepLoop:
	for i, step := range steps {
		if len(surviving) == 0 {
			break
		}
		if ctx.Err() != nil {
			cancelReason = eval.ReasonCancelled
			for _, modelID := range surviving {
				ev := eval.ModelExclusionEvent{ModelID: modelID, FailedStepIndex: i, Err: &ragerr.CancelledError{Stage: step.Name}}
				exclusions = append(exclusions, ev)
				excludedModels = append(excludedModels, modelID)
				session.OnModelExcluded(ctx, ev)
			}
			surviving = nil
			break stepLoop
		}

		stepCtx := eval.StepContext{Name: step.Name, Index: i, TotalSteps: len(steps), Kind: step.Kind}
		session.BeforeStep(ctx, stepCtx)

		results := step.Run(ctx, r.executor, sample, surviving, stepResultsAll)
		results.Context = stepCtx

		var nextSurviving []string
		returned := make(map[string]bool, len(results.Results))
		for _, res := range results.Results {
			returned[res.ModelID] = true
			if res.Success {
				nextSurviving = append(nextSurviving, res.ModelID)
				continue
			}
			ev := eval.ModelExclusionEvent{ModelID: res.ModelID, FailedStepIndex: i, Err: res.Err}
			exclusions = append(exclusions, ev)
			excludedModels = append(excludedModels, res.ModelID)
			session.OnModelExcluded(ctx, ev)
		}
		for _, modelID := range surviving {
			if returned[modelID] {
				continue
			}
			ev := eval.ModelExclusionEvent{ModelID: modelID, FailedStepIndex: i, Err: &eval.ResultError{Kind: string(ragerr.KindInternal), Message: "step " + step.Name + " returned no result for this model"}}
			exclusions = append(exclusions, ev)
			excludedModels = append(excludedModels, modelID)
			session.OnModelExcluded(ctx, ev)
		}

		stepResultsAll = append(stepResultsAll, results)
		session.AfterStep(ctx, results)
		surviving = nextSurviving
	}

	modelScores := make(map[string]float64, len(surviving))
	var scoreErr error
	for _, modelID := range surviving {
		score, err := metric.Score(modelID, sample, stepResultsAll)
		if err != nil {
			scoreErr = err
			break
		}
		modelScores[modelID] = score
	}

	var aggregatedScore *float64
	if scoreErr == nil && len(modelScores) > 0 {
		agg, err := aggregate.Aggregate(modelScores, metric.Aggregation())
		if err != nil && err != aggregate.ErrEmpty {
			scoreErr = err
		} else if err == nil {
			aggregatedScore = &agg
		}
	}

	metadata := eval.Metadata{Kind: eval.MetadataNone}
	switch {
	case scoreErr != nil:
		modelScores = map[string]float64{}
		metadata = eval.Metadata{Kind: eval.MetadataError, Error: &eval.ErrorMetadata{Message: scoreErr.Error()}}
	case len(modelScores) > 0:
		metadata = metric.Metadata(sample, stepResultsAll, modelScores)
	}

	result := eval.MetricEvaluationResult{
		EvaluationID:    evalID,
		Metric:          metric.Name(),
		Sample:          sample,
		AggregatedScore: aggregatedScore,
		ModelScores:     modelScores,
		ExcludedModels:  excludedModels,
		Exclusions:      exclusions,
		Duration:        time.Since(start),
		StepResults:     stepResultsAll,
		Metadata:        metadata,
		CancelReason:    cancelReason,
	}
	session.AfterMetricEvaluation(ctx, result)
	return result
}
