// Copyright © 2026 Teradata Corporation - All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.

package metrics

import (
	"fmt"

	"github.com/ragloom/ragas-go/pkg/runner"
)

// Names lists every catalog metric's registered name. The order is not
// defined; it follows map iteration.
func Names() []string {
	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	return names
}

// New builds the named catalog metric with its zero-value config. Callers
// needing a non-default config (e.g. a custom embedding model id, a
// strictness threshold) should construct the metric directly with its
// New<Metric> constructor instead.
func New(name string) (runner.Metric, error) {
	factory, ok := factories[name]
	if !ok {
		return nil, fmt.Errorf("metrics: unknown metric %q", name)
	}
	return factory(), nil
}

var factories = map[string]func() runner.Metric{
	"faithfulness":          func() runner.Metric { return NewFaithfulness(FaithfulnessConfig{}) },
	"context_precision":     func() runner.Metric { return NewContextPrecision(ContextPrecisionConfig{}) },
	"context_recall":        func() runner.Metric { return NewContextRecall(ContextRecallConfig{}) },
	"tool_call_accuracy":    func() runner.Metric { return NewToolCallAccuracy(ToolCallAccuracyConfig{}) },
	"bleu_score":            func() runner.Metric { return NewBleuScore(BleuScoreConfig{}) },
	"rouge_score":           func() runner.Metric { return NewRougeScore(RougeScoreConfig{}) },
	"chrf_score":            func() runner.Metric { return NewChrfScore(ChrfScoreConfig{}) },
	"string_similarity":     func() runner.Metric { return NewStringSimilarity(StringSimilarityConfig{}) },
	"answer_accuracy":       func() runner.Metric { return NewAnswerAccuracy(AnswerAccuracyConfig{}) },
	"response_groundedness": func() runner.Metric { return NewResponseGroundedness(ResponseGroundednessConfig{}) },
	"aspect_critic":         func() runner.Metric { return NewAspectCritic(AspectCriticConfig{}) },
	"rubrics_score":         func() runner.Metric { return NewRubricsScore(RubricsConfig{}) },
	"simple_criteria":       func() runner.Metric { return NewSimpleCriteria(SimpleCriteriaConfig{}) },
	"semantic_similarity":   func() runner.Metric { return NewSemanticSimilarity(SemanticSimilarityConfig{}) },
	"noise_sensitivity":     func() runner.Metric { return NewNoiseSensitivity(NoiseSensitivityConfig{}) },
	"agent_goal_accuracy":   func() runner.Metric { return NewAgentGoalAccuracy(AgentGoalAccuracyConfig{}) },
	"topic_adherence":       func() runner.Metric { return NewTopicAdherence(TopicAdherenceConfig{}) },
	"factual_correctness":   func() runner.Metric { return NewFactualCorrectness(FactualCorrectnessConfig{}) },
	"answer_correctness":    func() runner.Metric { return NewAnswerCorrectness(AnswerCorrectnessConfig{}) },
	// response_relevancy needs a caller-chosen embedding model id and is
	// intentionally omitted from the zero-config catalog; build it with
	// NewResponseRelevancy(ResponseRelevancyConfig{EmbeddingModel: ...}).
}
