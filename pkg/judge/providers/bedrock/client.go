// Copyright © 2026 Teradata Corporation - All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.

// Package bedrock implements judge.ChatClient against AWS Bedrock, using
// the Anthropic SDK's Bedrock backend so the same MessageNewParams request
// shape used by the direct Anthropic client also drives Claude-on-Bedrock.
package bedrock

import (
	"context"
	"fmt"
	"os"
	"time"

	anthropicsdk "github.com/anthropics/anthropic-sdk-go"
	sdkbedrock "github.com/anthropics/anthropic-sdk-go/bedrock"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"

	"github.com/ragloom/ragas-go/pkg/judge"
	"github.com/ragloom/ragas-go/pkg/ragerr"
)

const (
	DefaultModelID     = "anthropic.claude-3-5-sonnet-20241022-v2:0"
	DefaultRegion      = "us-east-1"
	DefaultMaxTokens   = 1024
	DefaultTemperature = 0.0
)

// Config holds construction parameters for Client.
type Config struct {
	ModelID         string
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	SessionToken    string
	Profile         string
	MaxTokens       int64
	Temperature     float64
}

// Client implements judge.ChatClient against Bedrock-hosted Claude models.
type Client struct {
	sdk         anthropicsdk.Client
	modelID     string
	maxTokens   int64
	temperature float64
}

// NewClient builds a Bedrock judge client. Credential resolution mirrors
// the three options a Bedrock-backed provider offers elsewhere in this
// codebase: explicit static credentials, a named profile, or the default
// AWS credential chain (IAM role, environment, shared config).
func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	modelID := cfg.ModelID
	if modelID == "" {
		if envModel := os.Getenv("AWS_BEDROCK_MODEL_ID"); envModel != "" {
			modelID = envModel
		} else {
			modelID = DefaultModelID
		}
	}
	region := cfg.Region
	if region == "" {
		if envRegion := os.Getenv("AWS_DEFAULT_REGION"); envRegion != "" {
			region = envRegion
		} else {
			region = DefaultRegion
		}
	}

	var awsCfg aws.Config
	var err error
	switch {
	case cfg.AccessKeyID != "" && cfg.SecretAccessKey != "":
		awsCfg, err = awsconfig.LoadDefaultConfig(ctx,
			awsconfig.WithRegion(region),
			awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
				cfg.AccessKeyID, cfg.SecretAccessKey, cfg.SessionToken)))
	case cfg.Profile != "":
		awsCfg, err = awsconfig.LoadDefaultConfig(ctx,
			awsconfig.WithRegion(region),
			awsconfig.WithSharedConfigProfile(cfg.Profile))
	default:
		awsCfg, err = awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	}
	if err != nil {
		return nil, &ragerr.ConfigurationError{Field: "bedrock.credentials", Message: err.Error()}
	}

	maxTokens := cfg.MaxTokens
	if maxTokens == 0 {
		maxTokens = DefaultMaxTokens
	}

	return &Client{
		sdk:         anthropicsdk.NewClient(sdkbedrock.WithConfig(awsCfg)),
		modelID:     modelID,
		maxTokens:   maxTokens,
		temperature: cfg.Temperature,
	}, nil
}

func (c *Client) Name() string  { return "bedrock" }
func (c *Client) Model() string { return c.modelID }

// Chat sends the judge prompt to the Bedrock-hosted model and returns its
// completion.
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
		Model:       anthropicsdk.Model(c.modelID),
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
			return nil, &ragerr.CancelledError{Stage: "bedrock.chat"}
		}
		return nil, &ragerr.TransportError{Provider: c.Name(), Message: fmt.Sprintf("bedrock invocation failed after %s", time.Since(start)), Cause: err}
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
