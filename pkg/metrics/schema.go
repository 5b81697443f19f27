// Copyright © 2026 Teradata Corporation - All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.

// Package metrics is the catalog of concrete metric implementations driven
// by the metric pipeline runner. Each metric declares its LLM/EMBEDDING/
// COMPUTE steps and a per-model scoring function, grounded on this
// codebase's judge prompt/parse pairs, generalized to the runner's
// ModelResult-per-step contract.
package metrics

import (
	"encoding/json"
	"fmt"
)

// statementExtraction is the { "statements": [...] } schema a Faithfulness
// statement-extraction call must return.
type statementExtraction struct {
	Statements []string `json:"statements"`
}

func parseStatementExtraction(raw string) (any, error) {
	var out statementExtraction
	if err := json.Unmarshal([]byte(extractJSON(raw)), &out); err != nil {
		return nil, fmt.Errorf("statement extraction: %w", err)
	}
	return out, nil
}

// statementVerdict is one entry of the { "verdicts": [...] } schema a
// Faithfulness NLI call must return.
type statementVerdict struct {
	Statement string `json:"statement"`
	Verdict   int    `json:"verdict"`
	Reason    string `json:"reason"`
}

type verdictList struct {
	Verdicts []statementVerdict `json:"verdicts"`
}

func parseVerdictList(raw string) (any, error) {
	var out verdictList
	if err := json.Unmarshal([]byte(extractJSON(raw)), &out); err != nil {
		return nil, fmt.Errorf("verdict list: %w", err)
	}
	return out, nil
}

// binaryVerdict is the { "verdict": 0|1, "reason": "..." } schema used by
// Context Precision's per-context verdicts.
type binaryVerdict struct {
	Verdict int    `json:"verdict"`
	Reason  string `json:"reason"`
}

func parseBinaryVerdict(raw string) (any, error) {
	var out binaryVerdict
	if err := json.Unmarshal([]byte(extractJSON(raw)), &out); err != nil {
		return nil, fmt.Errorf("binary verdict: %w", err)
	}
	return out, nil
}

// boolVerdict is the { "verdict": true|false, "reason": "..." } schema used
// by Aspect Critic and Agent Goal Accuracy.
type boolVerdict struct {
	Verdict bool   `json:"verdict"`
	Reason  string `json:"reason"`
}

func parseBoolVerdict(raw string) (any, error) {
	var out boolVerdict
	if err := json.Unmarshal([]byte(extractJSON(raw)), &out); err != nil {
		return nil, fmt.Errorf("bool verdict: %w", err)
	}
	return out, nil
}

// scoreVerdict is the { "score": <number>, "reason": "..." } schema used by
// Simple Criteria and Rubrics Score.
type scoreVerdict struct {
	Score  float64 `json:"score"`
	Reason string  `json:"reason"`
}

func parseScoreVerdict(raw string) (any, error) {
	var out scoreVerdict
	if err := json.Unmarshal([]byte(extractJSON(raw)), &out); err != nil {
		return nil, fmt.Errorf("score verdict: %w", err)
	}
	return out, nil
}

// questionGeneration is the { "questions": [...], "noncommittal": [...] }
// schema Response Relevancy's generation step must return.
type questionGeneration struct {
	Questions    []string `json:"questions"`
	Noncommittal []bool   `json:"noncommittal"`
}

func parseQuestionGeneration(raw string) (any, error) {
	var out questionGeneration
	if err := json.Unmarshal([]byte(extractJSON(raw)), &out); err != nil {
		return nil, fmt.Errorf("question generation: %w", err)
	}
	return out, nil
}

// entityExtraction is the { "entities": [...] } schema Noise Sensitivity's
// entity-extraction step must return.
type entityExtraction struct {
	Entities []string `json:"entities"`
}

func parseEntityExtraction(raw string) (any, error) {
	var out entityExtraction
	if err := json.Unmarshal([]byte(extractJSON(raw)), &out); err != nil {
		return nil, fmt.Errorf("entity extraction: %w", err)
	}
	return out, nil
}

// nliVerdict is the { "verdict": "SUPPORTED"|"REFUTED"|"NOT_INFERRABLE",
// "reason": "..." } schema. No catalog metric parses it: Factual Correctness
// and Answer Correctness read their verdicts with parseVerdictList.
type nliVerdict struct {
	Verdict string `json:"verdict"`
	Reason  string `json:"reason"`
}

func parseNLIVerdict(raw string) (any, error) {
	var out nliVerdict
	if err := json.Unmarshal([]byte(extractJSON(raw)), &out); err != nil {
		return nil, fmt.Errorf("nli verdict: %w", err)
	}
	return out, nil
}

// nvidiaJudgment is the { "judgment": 0|1|2, "reason": "..." } schema used
// by Answer Accuracy and Response Groundedness's NVIDIA-style prompts.
type nvidiaJudgment struct {
	Judgment int    `json:"judgment"`
	Reason   string `json:"reason"`
}

func parseNVIDIAJudgment(raw string) (any, error) {
	var out nvidiaJudgment
	if err := json.Unmarshal([]byte(extractJSON(raw)), &out); err != nil {
		return nil, fmt.Errorf("nvidia judgment: %w", err)
	}
	return out, nil
}

// extractJSON trims the common wrapping a judge model adds around its JSON
// payload (markdown fences, leading/trailing prose) by slicing from the
// first '{' to the last '}'. A judge that returns bare JSON is unaffected.
func extractJSON(raw string) string {
	start := -1
	end := -1
	for i, r := range raw {
		if r == '{' && start == -1 {
			start = i
		}
		if r == '}' {
			end = i
		}
	}
	if start == -1 || end == -1 || end < start {
		return raw
	}
	return raw[start : end+1]
}
