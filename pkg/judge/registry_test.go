// Copyright © 2026 Teradata Corporation - All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.

package judge_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ragloom/ragas-go/pkg/judge"
)

type noopChat struct{ name, model string }

func (c noopChat) Chat(context.Context, []judge.Message) (*judge.Response, error) { return nil, nil }
func (c noopChat) Name() string                                                   { return c.name }
func (c noopChat) Model() string                                                  { return c.model }

func TestRegistry_ChatIDsSortedDeterministic(t *testing.T) {
	r := judge.NewModelRegistry()
	r.AddChat("zebra", noopChat{name: "z"})
	r.AddChat("apple", noopChat{name: "a"})
	r.AddChat("mango", noopChat{name: "m"})
	assert.Equal(t, []string{"apple", "mango", "zebra"}, r.ChatIDs())
}

func TestRegistry_AddChatTwiceAppendsForDualJudge(t *testing.T) {
	r := judge.NewModelRegistry()
	r.AddChat("m", noopChat{name: "first"})
	r.AddChat("m", noopChat{name: "second"})
	clients, err := r.Get("m")
	require.NoError(t, err)
	require.Len(t, clients, 2)
}

func TestRegistry_UnknownChatIDErrors(t *testing.T) {
	r := judge.NewModelRegistry()
	_, err := r.Get("missing")
	require.Error(t, err)
}

func TestRegistry_Has(t *testing.T) {
	r := judge.NewModelRegistry()
	r.AddChat("m", noopChat{name: "x"})
	assert.True(t, r.Has("m"))
	assert.False(t, r.Has("other"))
}

func TestRegistry_GetOrDefault_FallsBackWhenIDEmpty(t *testing.T) {
	r := judge.NewModelRegistry()
	r.AddChat("default-model", noopChat{name: "d"})
	r.SetDefault("default-model")

	clients, err := r.GetOrDefault("")
	require.NoError(t, err)
	require.Len(t, clients, 1)
}
