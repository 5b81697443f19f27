// Copyright © 2026 Teradata Corporation - All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ragloom/ragas-go/internal/config"
	"github.com/ragloom/ragas-go/internal/log"
	"github.com/ragloom/ragas-go/pkg/eval"
	"github.com/ragloom/ragas-go/pkg/execengine"
	"github.com/ragloom/ragas-go/pkg/judge"
	"github.com/ragloom/ragas-go/pkg/judge/providers"
	"github.com/ragloom/ragas-go/pkg/judge/providers/anthropic"
	"github.com/ragloom/ragas-go/pkg/judge/providers/bedrock"
	"github.com/ragloom/ragas-go/pkg/listener"
	"github.com/ragloom/ragas-go/pkg/metrics"
	"github.com/ragloom/ragas-go/pkg/runner"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:     "ragas-eval",
	Short:   "Multi-model RAG/agent evaluation engine",
	Long:    "ragas-eval runs a catalog metric against a sample, fanning the judgment out across every configured judge model.",
	Version: "0.1.0",
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to config file (YAML/JSON/TOML)")
	rootCmd.AddCommand(runCmd, suiteCmd, providersCmd, validateConfigCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var runCmd = &cobra.Command{
	Use:   "run <metric> <sample.json>",
	Short: "Run one catalog metric against a sample",
	Args:  cobra.ExactArgs(2),
	RunE:  runMetric,
}

var suiteCmd = &cobra.Command{
	Use:   "suite <suite.yaml>",
	Short: "Run every case in a suite file through its configured metrics",
	Args:  cobra.ExactArgs(1),
	RunE:  runSuite,
}

var providersCmd = &cobra.Command{
	Use:   "providers",
	Short: "List configured judge models",
	RunE:  listProviders,
}

var validateConfigCmd = &cobra.Command{
	Use:   "validate-config",
	Short: "Load and validate the config file without running anything",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		fmt.Printf("config OK: %d provider(s), %d rate limit(s)\n", len(cfg.Providers), len(cfg.RateLimits))
		return nil
	},
}

func buildExecutor(ctx context.Context, cfg *config.Config) (*execengine.Executor, error) {
	models := judge.NewModelRegistry()
	limits := judge.NewRateLimiterRegistry()

	for _, p := range cfg.Providers {
		providerCfg := providers.ProviderConfig{
			Anthropic: anthropic.Config{APIKey: p.APIKey},
			Bedrock: bedrock.Config{
				Region:          p.AWSRegion,
				AccessKeyID:     p.AWSAccessKey,
				SecretAccessKey: p.AWSSecretKey,
				Profile:         p.AWSProfile,
			},
		}
		client, err := providers.New(ctx, judge.ModelSpec{
			Name:     p.Name,
			Provider: p.Provider,
			Model:    p.Model,
		}, providerCfg)
		if err != nil {
			return nil, fmt.Errorf("provider %q: %w", p.Name, err)
		}
		models.AddChat(p.Name, client)
		limits.MapModel(p.Name, p.Provider)
	}
	for _, rl := range cfg.RateLimits {
		limits.Configure(rl.Provider, judge.LimiterConfig{
			RequestsPerSecond: rl.RequestsPerMinute / 60,
			Burst:             rl.Burst,
			Strategy:          rl.RateLimitStrategy(),
		})
	}

	return execengine.New(models, limits, execengine.Config{
		MetricPoolSize: cfg.Runtime.MetricPoolSize,
		HTTPPoolSize:   cfg.Runtime.HTTPPoolSize,
	}), nil
}

func runMetric(cmd *cobra.Command, args []string) error {
	log.InitFromLevel("NORMAL")
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	log.InitFromLevel(cfg.Logging.Level)

	metricName, samplePath := args[0], args[1]
	metric, err := metrics.New(metricName)
	if err != nil {
		return err
	}

	raw, err := os.ReadFile(samplePath)
	if err != nil {
		return fmt.Errorf("reading sample: %w", err)
	}
	var sample eval.Sample
	if err := json.Unmarshal(raw, &sample); err != nil {
		return fmt.Errorf("parsing sample: %w", err)
	}

	ctx := cmd.Context()
	executor, err := buildExecutor(ctx, cfg)
	if err != nil {
		return err
	}
	r := runner.New(executor, listener.New())

	result := r.Run(ctx, metric, sample, executor.ModelIDs())
	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

func runSuite(cmd *cobra.Command, args []string) error {
	log.InitFromLevel("NORMAL")
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	log.InitFromLevel(cfg.Logging.Level)

	suite, err := runner.LoadSuite(args[0])
	if err != nil {
		return err
	}

	metricSet := make(map[string]runner.Metric, len(suite.Metrics))
	for _, name := range suite.Metrics {
		metric, err := metrics.New(name)
		if err != nil {
			return fmt.Errorf("suite %q: %w", suite.Name, err)
		}
		metricSet[name] = metric
	}

	ctx := cmd.Context()
	executor, err := buildExecutor(ctx, cfg)
	if err != nil {
		return err
	}
	r := runner.New(executor, listener.New())

	result, err := runner.RunSuite(ctx, r, suite, metricSet, executor.ModelIDs())
	if err != nil {
		return err
	}
	fmt.Printf("suite %q: %d passed, %d failed\n", result.Name, result.Passed, result.Failed)
	return nil
}

func listProviders(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	for _, p := range cfg.Providers {
		fmt.Printf("%s\tprovider=%s\tmodel=%s\n", p.Name, p.Provider, p.Model)
	}
	return nil
}
