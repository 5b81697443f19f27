// Copyright © 2026 Teradata Corporation - All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultsAppliedWithNoFile(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.Runtime.MetricPoolSize)
	assert.Equal(t, 16, cfg.Runtime.HTTPPoolSize)
	assert.Equal(t, "NORMAL", cfg.Logging.Level)
}

func TestLoad_FromYAMLFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
runtime:
  metric_pool_size: 2
  http_pool_size: 8
providers:
  - name: claude
    provider: anthropic
    model: claude-sonnet
rate_limits:
  - provider: anthropic
    requests_per_minute: 60
    burst: 5
    strategy: WAIT
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.Runtime.MetricPoolSize)
	require.Len(t, cfg.Providers, 1)
	assert.Equal(t, "anthropic", cfg.Providers[0].Provider)
	require.Len(t, cfg.RateLimits, 1)
	assert.Equal(t, "WAIT", cfg.RateLimits[0].Strategy)
}

func TestLoad_InvalidProviderNameFailsValidation(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
providers:
  - name: bad
    provider: not-a-real-provider
    model: x
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	_, err := Load(path)
	require.Error(t, err)
}
