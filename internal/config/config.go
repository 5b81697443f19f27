// Copyright © 2026 Teradata Corporation - All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.

// Package config loads the evaluation engine's runtime configuration:
// provider credentials, rate limits, and per-metric tunables. Priority
// follows the usual viper order: environment variables > config file >
// defaults. No CLI flags are bound to configuration keys.
package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/ragloom/ragas-go/pkg/judge"
)

// ProviderConfig describes one judge endpoint: which backend to talk to,
// which model name to request from it, and how to authenticate.
type ProviderConfig struct {
	Name     string `mapstructure:"name" validate:"required"`
	Provider string `mapstructure:"provider" validate:"required,oneof=anthropic bedrock openai azureopenai mistral gemini huggingface ollama"`
	Model    string `mapstructure:"model" validate:"required"`

	APIKey string `mapstructure:"api_key"`

	AWSRegion    string `mapstructure:"aws_region"`
	AWSProfile   string `mapstructure:"aws_profile"`
	AWSAccessKey string `mapstructure:"aws_access_key"`
	AWSSecretKey string `mapstructure:"aws_secret_key"`

	Embedding bool `mapstructure:"embedding"`
}

// RateLimitConfig configures the token bucket guarding one provider.
type RateLimitConfig struct {
	Provider          string  `mapstructure:"provider" validate:"required"`
	RequestsPerMinute float64 `mapstructure:"requests_per_minute" validate:"required,gt=0"`
	Burst             int     `mapstructure:"burst" validate:"gte=0"`
	Strategy          string  `mapstructure:"strategy" validate:"omitempty,oneof=WAIT FAIL_FAST SKIP"`
}

// RuntimeConfig controls the Multi-Model Executor's worker pools.
type RuntimeConfig struct {
	MetricPoolSize int `mapstructure:"metric_pool_size" validate:"gte=0"`
	HTTPPoolSize   int `mapstructure:"http_pool_size" validate:"gte=0"`
}

// LoggingConfig controls the global zap logger's verbosity.
type LoggingConfig struct {
	Level string `mapstructure:"level" validate:"omitempty,oneof=MINIMAL NORMAL VERBOSE"`
}

// Config is the fully-resolved evaluation engine configuration.
type Config struct {
	Runtime    RuntimeConfig     `mapstructure:"runtime"`
	Logging    LoggingConfig     `mapstructure:"logging"`
	Providers  []ProviderConfig  `mapstructure:"providers" validate:"dive"`
	RateLimits []RateLimitConfig `mapstructure:"rate_limits" validate:"dive"`

	Metrics MetricsConfig `mapstructure:"metrics"`
}

// MetricsConfig groups the per-metric tunables read from a config file.
// The CLI does not consult them: it builds every metric with metrics.New,
// which uses the metric's zero-value config (every catalog metric is built
// to tolerate that).
type MetricsConfig struct {
	Faithfulness       map[string]any `mapstructure:"faithfulness"`
	ContextPrecision   map[string]any `mapstructure:"context_precision"`
	ResponseRelevancy  map[string]any `mapstructure:"response_relevancy"`
	ToolCallAccuracy   map[string]any `mapstructure:"tool_call_accuracy"`
	BleuScore          map[string]any `mapstructure:"bleu_score"`
	RougeScore         map[string]any `mapstructure:"rouge_score"`
	ChrfScore          map[string]any `mapstructure:"chrf_score"`
	StringSimilarity   map[string]any `mapstructure:"string_similarity"`
	AspectCritic       map[string]any `mapstructure:"aspect_critic"`
	RubricsScore       map[string]any `mapstructure:"rubrics_score"`
	SimpleCriteria     map[string]any `mapstructure:"simple_criteria"`
	TopicAdherence     map[string]any `mapstructure:"topic_adherence"`
	AnswerCorrectness  map[string]any `mapstructure:"answer_correctness"`
}

var validate = validator.New()

// Load reads configuration from the given file path (if non-empty), layers
// the RAGAS_-prefixed environment over it, applies defaults, and validates
// the result. An empty path skips the file layer and relies on env/defaults
// alone, which is enough to run against a single provider in a smoke test.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("RAGAS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("runtime.metric_pool_size", 4)
	v.SetDefault("runtime.http_pool_size", 16)
	v.SetDefault("logging.level", "NORMAL")

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: reading %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshalling: %w", err)
	}
	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}

// RateLimitStrategy resolves the configured strategy name to the judge
// package's Strategy type, defaulting to WAIT when unset.
func (c RateLimitConfig) RateLimitStrategy() judge.Strategy {
	switch c.Strategy {
	case "FAIL_FAST":
		return judge.StrategyFailFast
	case "SKIP":
		return judge.StrategySkip
	default:
		return judge.StrategyWait
	}
}
