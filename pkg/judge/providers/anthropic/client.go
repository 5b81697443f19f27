// Copyright © 2026 Teradata Corporation - All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.

// Package anthropic implements judge.ChatClient against the Anthropic
// Messages API directly (not via Bedrock).
package anthropic

import (
	"context"
	"fmt"
	"os"
	"time"

	anthropicsdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/ragloom/ragas-go/pkg/judge"
	"github.com/ragloom/ragas-go/pkg/ragerr"
)

const (
	// DefaultModel is used when Config.Model is empty and no env override is set.
	DefaultModel     = "claude-3-5-sonnet-20241022"
	DefaultMaxTokens = 1024
	DefaultTemp      = 0.0
)

// Config holds construction parameters for Client.
type Config struct {
	APIKey      string
	Model       string
	MaxTokens   int64
	Temperature float64
}

// Client implements judge.ChatClient against the Anthropic API.
type Client struct {
	sdk         anthropicsdk.Client
	model       string
	maxTokens   int64
	temperature float64
}

// NewClient builds an Anthropic judge client. Judge prompts do not need
// tool calling or streaming, so this is narrower than a general agent LLM
// client: one request in, one parsed completion out.
func NewClient(cfg Config) (*Client, error) {
	apiKey := cfg.APIKey
	if apiKey == "" {
		apiKey = os.Getenv("ANTHROPIC_API_KEY")
	}
	if apiKey == "" {
		return nil, &ragerr.ConfigurationError{Field: "anthropic.api_key", Message: "no API key provided and ANTHROPIC_API_KEY is unset"}
	}

	model := cfg.Model
	if model == "" {
		if envModel := os.Getenv("ANTHROPIC_DEFAULT_MODEL"); envModel != "" {
			model = envModel
		} else {
			model = DefaultModel
		}
	}
	maxTokens := cfg.MaxTokens
	if maxTokens == 0 {
		maxTokens = DefaultMaxTokens
	}

	return &Client{
		sdk:         anthropicsdk.NewClient(option.WithAPIKey(apiKey)),
		model:       model,
		maxTokens:   maxTokens,
		temperature: cfg.Temperature,
	}, nil
}

func (c *Client) Name() string  { return "anthropic" }
func (c *Client) Model() string { return c.model }

// Chat sends the judge prompt to Claude and returns its completion.
func (c *Client) Chat(ctx context.Context, messages []judge.Message) (*judge.Response, error) {
	var system string
	var userContent string
	for _, m := range messages {
		switch m.Role {
		case "system":
			system = m.Content
		default:
			userContent = m.Content
		}
	}

	params := anthropicsdk.MessageNewParams{
		Model:       anthropicsdk.Model(c.model),
		MaxTokens:   c.maxTokens,
		Temperature: anthropicsdk.Float(c.temperature),
		Messages: []anthropicsdk.MessageParam{
			anthropicsdk.NewUserMessage(anthropicsdk.NewTextBlock(userContent)),
		},
	}
	if system != "" {
		params.System = []anthropicsdk.TextBlockParam{{Text: system}}
	}

	start := time.Now()
	msg, err := c.sdk.Messages.New(ctx, params)
	if err != nil {
		if ctx.Err() != nil {
			return nil, &ragerr.CancelledError{Stage: "anthropic.chat"}
		}
		return nil, &ragerr.TransportError{Provider: c.Name(), Message: fmt.Sprintf("messages.new failed after %s", time.Since(start)), Cause: err}
	}

	var content string
	for _, block := range msg.Content {
		if block.Type == "text" {
			content += block.Text
		}
	}

	return &judge.Response{
		Content:    content,
		StopReason: string(msg.StopReason),
		Usage: judge.Usage{
			InputTokens:  int(msg.Usage.InputTokens),
			OutputTokens: int(msg.Usage.OutputTokens),
			TotalTokens:  int(msg.Usage.InputTokens + msg.Usage.OutputTokens),
		},
	}, nil
}

var _ judge.ChatClient = (*Client)(nil)
