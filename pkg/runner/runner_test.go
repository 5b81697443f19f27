// Copyright © 2026 Teradata Corporation - All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.

package runner_test

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ragloom/ragas-go/pkg/eval"
	"github.com/ragloom/ragas-go/pkg/execengine"
	"github.com/ragloom/ragas-go/pkg/judge"
	"github.com/ragloom/ragas-go/pkg/listener"
	"github.com/ragloom/ragas-go/pkg/ragerr"
	"github.com/ragloom/ragas-go/pkg/runner"
)

// scriptedClient answers every Chat call with a canned response, optionally
// failing on a specific call number (1-indexed) for a given model.
type scriptedClient struct {
	mu        sync.Mutex
	modelID   string
	responses []string
	failOn    int
	calls     int
}

func (c *scriptedClient) Chat(_ context.Context, _ []judge.Message) (*judge.Response, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls++
	if c.failOn != 0 && c.calls == c.failOn {
		return nil, &ragerr.TransportError{Provider: "fake", Message: "simulated transport failure"}
	}
	idx := c.calls - 1
	if idx >= len(c.responses) {
		idx = len(c.responses) - 1
	}
	return &judge.Response{Content: c.responses[idx]}, nil
}

func (c *scriptedClient) Name() string  { return "fake" }
func (c *scriptedClient) Model() string { return c.modelID }

type statementExtractionPayload struct {
	Statements []string `json:"statements"`
}

type verdict struct {
	Statement string `json:"statement"`
	Verdict   int    `json:"verdict"`
}

type verdictListPayload struct {
	Verdicts []verdict `json:"verdicts"`
}

func parseStatements(raw string) (any, error) {
	var out statementExtractionPayload
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func parseVerdicts(raw string) (any, error) {
	var out verdictListPayload
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// faithfulnessLike mirrors the catalog Faithfulness metric's two-step shape
// (shared extraction, per-model verdicts) without importing pkg/metrics,
// to keep this a pure runner-package test.
type faithfulnessLike struct {
	runner.BaseMetric
}

func (faithfulnessLike) Name() string { return "faithfulness_like" }

func (faithfulnessLike) Steps() []runner.StepDef {
	return []runner.StepDef{
		{
			Name: "extract_statements",
			Kind: eval.StepLLM,
			Run: func(ctx context.Context, exec *execengine.Executor, sample eval.Sample, modelIDs []string, _ []eval.StepResults) eval.StepResults {
				results := exec.ExecuteLLMOnAll(ctx, modelIDs, "extract", parseStatements)
				out := eval.StepResults{}
				for _, id := range modelIDs {
					out.Results = append(out.Results, results[id])
				}
				return out
			},
		},
		{
			Name: "judge_statements",
			Kind: eval.StepLLM,
			Run: func(ctx context.Context, exec *execengine.Executor, sample eval.Sample, modelIDs []string, _ []eval.StepResults) eval.StepResults {
				out := eval.StepResults{}
				var wg sync.WaitGroup
				var mu sync.Mutex
				for _, id := range modelIDs {
					id := id
					wg.Add(1)
					go func() {
						defer wg.Done()
						r := exec.ExecuteLLMOnModel(ctx, id, "judge", parseVerdicts)
						mu.Lock()
						out.Results = append(out.Results, r)
						mu.Unlock()
					}()
				}
				wg.Wait()
				return out
			},
		},
	}
}

func (faithfulnessLike) Score(modelID string, _ eval.Sample, steps []eval.StepResults) (float64, error) {
	for _, r := range steps[1].Results {
		if r.ModelID != modelID {
			continue
		}
		payload := r.Value.(verdictListPayload)
		if len(payload.Verdicts) == 0 {
			return 0, nil
		}
		supported := 0
		for _, v := range payload.Verdicts {
			if v.Verdict == 1 {
				supported++
			}
		}
		return float64(supported) / float64(len(payload.Verdicts)), nil
	}
	return 0, fmt.Errorf("no verdicts for %s", modelID)
}

func buildExecutor(t *testing.T, clients map[string]*scriptedClient) *execengine.Executor {
	t.Helper()
	models := judge.NewModelRegistry()
	limits := judge.NewRateLimiterRegistry()
	for id, c := range clients {
		models.AddChat(id, c)
		limits.MapModel(id, "fake")
	}
	return execengine.New(models, limits, execengine.Config{MetricPoolSize: 4, HTTPPoolSize: 4})
}

func TestRunner_Faithfulness_TwoModels_AverageAggregation(t *testing.T) {
	clientA := &scriptedClient{modelID: "A", responses: []string{
		`{"statements":["s1","s2"]}`,
		`{"verdicts":[{"statement":"s1","verdict":1},{"statement":"s2","verdict":0}]}`,
	}}
	clientB := &scriptedClient{modelID: "B", responses: []string{
		`{"statements":["s1","s2"]}`,
		`{"verdicts":[{"statement":"s1","verdict":1},{"statement":"s2","verdict":1}]}`,
	}}
	executor := buildExecutor(t, map[string]*scriptedClient{"A": clientA, "B": clientB})
	r := runner.New(executor, listener.New())

	result := r.Run(context.Background(), faithfulnessLike{}, eval.Sample{}, []string{"A", "B"})

	require.Empty(t, result.ExcludedModels)
	require.Len(t, result.ModelScores, 2)
	assert.InDelta(t, 0.5, result.ModelScores["A"], 1e-9)
	assert.InDelta(t, 1.0, result.ModelScores["B"], 1e-9)
	require.NotNil(t, result.AggregatedScore)
	assert.InDelta(t, 0.75, *result.AggregatedScore, 1e-9)
}

func TestRunner_ModelExclusion_SingleEventBetweenBeforeAndAfterStep(t *testing.T) {
	clientA := &scriptedClient{modelID: "A", responses: []string{
		`{"statements":["s1"]}`,
		`{"verdicts":[{"statement":"s1","verdict":1}]}`,
	}}
	clientB := &scriptedClient{modelID: "B", responses: []string{
		`{"statements":["s1"]}`,
	}, failOn: 2} // fails on its step-1 (judge_statements) call

	executor := buildExecutor(t, map[string]*scriptedClient{"A": clientA, "B": clientB})

	var events []string
	var mu sync.Mutex
	l := &trackingListener{record: func(name string) {
		mu.Lock()
		events = append(events, name)
		mu.Unlock()
	}}
	bus := listener.New()
	bus.Register(l)
	r := runner.New(executor, bus)

	result := r.Run(context.Background(), faithfulnessLike{}, eval.Sample{}, []string{"A", "B"})

	assert.Equal(t, []string{"B"}, result.ExcludedModels)
	require.Len(t, result.Exclusions, 1)
	assert.Equal(t, 1, result.Exclusions[0].FailedStepIndex)
	var resErr *eval.ResultError
	require.ErrorAs(t, result.Exclusions[0].Err, &resErr)
	assert.Equal(t, ragerr.KindTransport, ragerr.Kind(resErr.Kind))
	require.Contains(t, result.ModelScores, "A")
	assert.NotContains(t, result.ModelScores, "B")

	beforeIdx, afterIdx, excludedIdx := -1, -1, -1
	for i, name := range events {
		switch {
		case name == "beforeStep:1" && beforeIdx == -1:
			beforeIdx = i
		case name == "afterStep:1" && afterIdx == -1:
			afterIdx = i
		case name == "onModelExcluded:B" && excludedIdx == -1:
			excludedIdx = i
		}
	}
	require.True(t, beforeIdx >= 0 && excludedIdx >= 0 && afterIdx >= 0)
	assert.True(t, beforeIdx < excludedIdx && excludedIdx < afterIdx)
}

func TestRunner_CancellationMidStep_NoAggregatedScore(t *testing.T) {
	clientA := &scriptedClient{modelID: "A", responses: []string{`{"statements":["s1"]}`}}
	executor := buildExecutor(t, map[string]*scriptedClient{"A": clientA})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	bus := listener.New()
	bus.Register(&trackingListener{record: func(name string) {
		if name == "afterStep:0" {
			cancel() // cancel once step 0 has completed
		}
	}})

	r := runner.New(executor, bus)
	result := r.Run(ctx, faithfulnessLike{}, eval.Sample{}, []string{"A"})

	assert.Nil(t, result.AggregatedScore)
	assert.Equal(t, eval.ReasonCancelled, result.CancelReason)
	require.Len(t, result.Exclusions, 1)
	assert.Equal(t, 1, result.Exclusions[0].FailedStepIndex)
	kind, ok := ragerr.KindOf(result.Exclusions[0].Err)
	require.True(t, ok)
	assert.Equal(t, ragerr.KindCancelled, kind)
}

func TestRunner_NoModels_NoAggregatedScore(t *testing.T) {
	executor := buildExecutor(t, map[string]*scriptedClient{})
	r := runner.New(executor, listener.New())
	result := r.Run(context.Background(), faithfulnessLike{}, eval.Sample{}, nil)
	assert.Nil(t, result.AggregatedScore)
	assert.Empty(t, result.ModelScores)
}

type trackingListener struct {
	listener.Base
	record func(string)
}

func (l *trackingListener) ForEvaluation() listener.Listener { return l }

func (l *trackingListener) BeforeStep(_ context.Context, sc eval.StepContext) {
	l.record(fmt.Sprintf("beforeStep:%d", sc.Index))
}

func (l *trackingListener) AfterStep(_ context.Context, sr eval.StepResults) {
	l.record(fmt.Sprintf("afterStep:%d", sr.Context.Index))
}

func (l *trackingListener) OnModelExcluded(_ context.Context, ev eval.ModelExclusionEvent) {
	l.record(fmt.Sprintf("onModelExcluded:%s", ev.ModelID))
}
