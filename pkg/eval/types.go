// Copyright © 2026 Teradata Corporation - All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.

// Package eval defines the data model shared by the multi-model executor,
// the score aggregator, the listener bus, and the metric pipeline runner:
// Sample, ModelResult, step bookkeeping, and the per-evaluation context and
// result types.
package eval

import (
	"time"

	"github.com/google/uuid"
)

// ToolCall is one agent tool invocation: a name and its named arguments.
type ToolCall struct {
	Name string
	Args map[string]interface{}
}

// Turn is one message in an optional multi-turn conversation sample.
type Turn struct {
	Role    string
	Content string
}

// Sample is the immutable input to one evaluation.
type Sample struct {
	UserInput          string
	Response           string
	Reference          string
	HasReference       bool
	RetrievedContexts  []string
	ToolCalls          []ToolCall
	ReferenceToolCalls []ToolCall
	ConversationTurns  []Turn
}

// ResultError captures a failed ModelResult: its taxonomy kind, a message,
// and (best-effort) a captured stack for InternalError diagnosis.
type ResultError struct {
	Kind    string
	Message string
	Stack   string
}

func (e *ResultError) Error() string { return e.Message }

// ModelResult is one invocation outcome, produced once and never mutated.
// On success Value holds the typed result; on failure Err is set and Value
// is the zero value of T. CallID identifies this one call; listeners see it
// in the StepResults passed to AfterStep.
type ModelResult[T any] struct {
	CallID   string
	ModelID  string
	Success  bool
	Duration time.Duration
	Prompt   string
	Value    T
	Err      *ResultError
}

// Succeeded builds a successful ModelResult.
func Succeeded[T any](modelID string, prompt string, duration time.Duration, value T) ModelResult[T] {
	return ModelResult[T]{CallID: uuid.NewString(), ModelID: modelID, Success: true, Duration: duration, Prompt: prompt, Value: value}
}

// Failed builds a failed ModelResult.
func Failed[T any](modelID string, prompt string, duration time.Duration, kind, message string) ModelResult[T] {
	return ModelResult[T]{
		CallID:   uuid.NewString(),
		ModelID:  modelID,
		Success:  false,
		Duration: duration,
		Prompt:   prompt,
		Err:      &ResultError{Kind: kind, Message: message},
	}
}

// StepKind is the kind of work a pipeline step performs.
type StepKind string

const (
	StepLLM       StepKind = "LLM"
	StepEmbedding StepKind = "EMBEDDING"
	StepCompute   StepKind = "COMPUTE"
)

// StepContext describes one step about to run.
type StepContext struct {
	Name       string
	Index      int // 0-based
	TotalSteps int
	Kind       StepKind
	Request    string // the prompt or embedding input, empty for COMPUTE
}

// StepResults is the outcome of one completed step: one ModelResult per
// surviving model, regardless of step kind. An EMBEDDING step's Value holds
// its model's embedding batch (one vector per input text); an LLM step's
// Value holds its parsed response; a COMPUTE step's Value holds whatever
// that computation produced.
type StepResults struct {
	Context StepContext
	Results []ModelResult[any]
}

// Duration returns the step's wall-clock duration: the max across its
// per-model results, per the data model's definition.
func (s StepResults) Duration() time.Duration {
	var max time.Duration
	for _, r := range s.Results {
		if r.Duration > max {
			max = r.Duration
		}
	}
	return max
}

// ModelExclusionEvent records that a model dropped out of an evaluation at
// a given step, emitted exactly once per excluded model.
type ModelExclusionEvent struct {
	ModelID         string
	FailedStepIndex int
	Err             error
}

// MetricEvaluationContext is the per-evaluation bookkeeping visible to
// listeners at beforeMetricEvaluation. ID reappears as the EvaluationID of
// this evaluation's MetricEvaluationResult; step events and ModelResults do
// not carry it.
type MetricEvaluationContext struct {
	ID            string
	Metric        string
	Sample        Sample
	InitialModels []string
	TotalSteps    int
}

// MetadataKind discriminates the closed tagged union of per-metric
// explanation metadata. Renderers (out of scope here) match on Kind.
type MetadataKind string

const (
	MetadataNone          MetadataKind = "NONE"
	MetadataFaithfulness  MetadataKind = "FAITHFULNESS"
	MetadataToolCall      MetadataKind = "TOOL_CALL_ACCURACY"
	MetadataHallucination MetadataKind = "HALLUCINATION"
	MetadataError         MetadataKind = "ERROR"
)

// Metadata is the tagged union of per-metric explanation data. Exactly one
// of the pointer fields matching Kind is populated; the rest are nil.
//
// HallucinationMetadata exists in the union (some metrics could populate
// it) but no current metric does, and no renderer reads it — the original
// explanation factory returns an empty result for it too, so this is
// treated as deliberate rather than an oversight (see DESIGN.md).
type Metadata struct {
	Kind          MetadataKind
	Faithfulness  *FaithfulnessMetadata
	ToolCall      *ToolCallMetadata
	Hallucination *HallucinationMetadata
	Error         *ErrorMetadata
}

// FaithfulnessMetadata records the extracted statements and per-model
// verdicts behind a Faithfulness score.
type FaithfulnessMetadata struct {
	Statements      []string
	VerdictsByModel map[string][]int
}

// ToolCallMetadata records the matched/unmatched tool calls behind a
// Tool-Call Accuracy score.
type ToolCallMetadata struct {
	Matched    int
	ActualN    int
	ReferenceN int
}

// HallucinationMetadata is defined for completeness of the tagged union;
// see the Metadata doc comment on why it is never populated or rendered.
type HallucinationMetadata struct {
	HallucinatedStatements []string
}

// ErrorMetadata records an InternalError that aborted scoring or
// aggregation, so the evaluation result explains its absent score.
type ErrorMetadata struct {
	Message string
}

// CancelReason distinguishes a normal completion from a cancelled one.
type CancelReason string

const (
	ReasonNone      CancelReason = ""
	ReasonCancelled CancelReason = "CANCELLED"
)

// MetricEvaluationResult is the terminal, immutable output of one
// evaluation. EvaluationID matches the MetricEvaluationContext.ID listeners
// saw at beforeMetricEvaluation, so a caller can correlate the two.
type MetricEvaluationResult struct {
	EvaluationID    string
	Metric          string
	Sample          Sample
	AggregatedScore *float64
	ModelScores     map[string]float64
	ExcludedModels  []string
	Exclusions      []ModelExclusionEvent
	Duration        time.Duration
	StepResults     []StepResults
	Metadata        Metadata
	CancelReason    CancelReason
}
