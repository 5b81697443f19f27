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

// AgentGoalAccuracyConfig carries no tunables.
type AgentGoalAccuracyConfig struct{}

// AgentGoalAccuracy judges whether a multi-turn agent conversation achieved
// the user's underlying goal, comparing the conversation's outcome against
// the reference statement of that goal.
type AgentGoalAccuracy struct {
	runner.BaseMetric
}

func NewAgentGoalAccuracy(AgentGoalAccuracyConfig) *AgentGoalAccuracy {
	return &AgentGoalAccuracy{}
}

func (*AgentGoalAccuracy) Name() string { return "agent_goal_accuracy" }

func (*AgentGoalAccuracy) Steps() []runner.StepDef {
	return []runner.StepDef{
		llmStep("judge_goal_achieved", agentGoalPrompt, parseBoolVerdict),
	}
}

func (*AgentGoalAccuracy) Score(modelID string, _ eval.Sample, steps []eval.StepResults) (float64, error) {
	v, ok := stepValue(steps, 0, modelID)
	if !ok {
		return 0, fmt.Errorf("agent_goal_accuracy: no verdict for model %s", modelID)
	}
	if v.(boolVerdict).Verdict {
		return 1.0, nil
	}
	return 0.0, nil
}

func agentGoalPrompt(sample eval.Sample, _ []eval.StepResults) string {
	var b strings.Builder
	b.WriteString("Read the conversation below and decide whether the agent achieved the user's goal, as ")
	b.WriteString("described in the reference. ")
	b.WriteString(`Return JSON exactly as {"verdict": true or false, "reason": "..."}.`)
	b.WriteString("\n\nConversation:\n")
	for _, t := range sample.ConversationTurns {
		fmt.Fprintf(&b, "%s: %s\n", t.Role, t.Content)
	}
	b.WriteString("\nGoal (reference): " + sample.Reference)
	return b.String()
}
