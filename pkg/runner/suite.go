// Copyright © 2026 Teradata Corporation - All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.

package runner

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ragloom/ragas-go/pkg/eval"
)

// SuiteYAML is the on-disk shape of a suite file: a named, versioned list
// of samples, each run through one or more named metrics.
type SuiteYAML struct {
	APIVersion string          `yaml:"apiVersion"`
	Name       string          `yaml:"name"`
	Metrics    []string        `yaml:"metrics"`
	Cases      []SuiteCaseYAML `yaml:"cases"`
}

// SuiteCaseYAML is one sample plus the model ids it should be evaluated
// against (empty means "every model the executor knows about").
type SuiteCaseYAML struct {
	Name       string      `yaml:"name"`
	Sample     eval.Sample `yaml:"sample"`
	ModelIDs   []string    `yaml:"model_ids"`
	GoldenFile string      `yaml:"golden_file"`
}

// LoadSuite reads and parses a suite file.
func LoadSuite(path string) (*SuiteYAML, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("runner: reading suite %s: %w", path, err)
	}
	var suite SuiteYAML
	if err := yaml.Unmarshal(data, &suite); err != nil {
		return nil, fmt.Errorf("runner: parsing suite %s: %w", path, err)
	}
	return &suite, nil
}

// CaseResult is one case's outcome across every metric the suite named.
type CaseResult struct {
	Case    string
	Results []eval.MetricEvaluationResult
}

// SuiteResult aggregates a full suite run: every case's results plus a
// simple pass count, where "pass" means every metric in the case produced
// an aggregated score (no cancellation, no total-exclusion).
type SuiteResult struct {
	Name   string
	Cases  []CaseResult
	Passed int
	Failed int
}

// RunSuite runs every case in suite through metrics, in suite order. The
// metrics map must contain a Metric for every name the suite references;
// callers typically build it from pkg/metrics.New per suite.Metrics entry.
func RunSuite(ctx context.Context, r *Runner, suite *SuiteYAML, metrics map[string]Metric, defaultModelIDs []string) (*SuiteResult, error) {
	result := &SuiteResult{Name: suite.Name}

	for _, c := range suite.Cases {
		modelIDs := c.ModelIDs
		if len(modelIDs) == 0 {
			modelIDs = defaultModelIDs
		}

		caseResult := CaseResult{Case: c.Name}
		casePassed := true
		for _, metricName := range suite.Metrics {
			metric, ok := metrics[metricName]
			if !ok {
				return nil, fmt.Errorf("runner: suite %q references unknown metric %q", suite.Name, metricName)
			}
			evalResult := r.Run(ctx, metric, c.Sample, modelIDs)
			caseResult.Results = append(caseResult.Results, evalResult)
			if evalResult.AggregatedScore == nil || evalResult.CancelReason != eval.ReasonNone {
				casePassed = false
			}
		}

		result.Cases = append(result.Cases, caseResult)
		if casePassed {
			result.Passed++
		} else {
			result.Failed++
		}
	}

	return result, nil
}
