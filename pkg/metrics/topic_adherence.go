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

// TopicAdherenceConfig lists the topics an agent conversation is allowed to
// engage with; anything outside that list counts against the score.
type TopicAdherenceConfig struct {
	AllowedTopics []string
}

// TopicAdherence judges how well a multi-turn agent conversation stayed
// within its allowed subject matter, scored 0..1 by a single judge pass.
type TopicAdherence struct {
	runner.BaseMetric
	cfg TopicAdherenceConfig
}

func NewTopicAdherence(cfg TopicAdherenceConfig) *TopicAdherence {
	return &TopicAdherence{cfg: cfg}
}

func (*TopicAdherence) Name() string { return "topic_adherence" }

func (m *TopicAdherence) Steps() []runner.StepDef {
	return []runner.StepDef{
		llmStep("judge_topic_adherence", m.prompt, parseScoreVerdict),
	}
}

func (*TopicAdherence) Score(modelID string, _ eval.Sample, steps []eval.StepResults) (float64, error) {
	v, ok := stepValue(steps, 0, modelID)
	if !ok {
		return 0, fmt.Errorf("topic_adherence: no verdict for model %s", modelID)
	}
	score := v.(scoreVerdict).Score
	if score < 0 {
		score = 0
	}
	if score > 1 {
		score = 1
	}
	return score, nil
}

func (m *TopicAdherence) prompt(sample eval.Sample, _ []eval.StepResults) string {
	var b strings.Builder
	b.WriteString("Read the conversation below and score, from 0.0 to 1.0, how well the agent stayed within ")
	b.WriteString("the allowed topics. A conversation that never strays scores 1.0; one that drifts entirely ")
	b.WriteString("off-topic scores 0.0. ")
	b.WriteString(`Return JSON exactly as {"score": <number 0.0 to 1.0>, "reason": "..."}.`)
	b.WriteString("\n\nAllowed topics: " + strings.Join(m.cfg.AllowedTopics, ", "))
	b.WriteString("\nConversation:\n")
	for _, t := range sample.ConversationTurns {
		fmt.Fprintf(&b, "%s: %s\n", t.Role, t.Content)
	}
	return b.String()
}
