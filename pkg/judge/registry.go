// Copyright © 2026 Teradata Corporation - All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.

package judge

import (
	"sort"

	"github.com/ragloom/ragas-go/pkg/ragerr"
)

// Registry is the Model Registry: two keyed collections, chat clients
// (an id may front one or more judge endpoints, for dual-judge metrics)
// and embedding models (one endpoint per id), plus a remembered default
// endpoint for legacy single-model callers. It is built once and never
// mutated afterward; lookups need no locking.
type Registry struct {
	chat       map[string][]ChatClient
	embedding  map[string]EmbeddingClient
	defaultID  string
}

// NewModelRegistry builds an empty registry, to be filled with its chat and
// embedding endpoints before any lookup.
func NewModelRegistry() *Registry {
	return &Registry{
		chat:      make(map[string][]ChatClient),
		embedding: make(map[string]EmbeddingClient),
	}
}

// AddChat registers one or more judge endpoints under id. Calling it twice
// for the same id appends endpoints (supporting dual-judge configurations).
func (r *Registry) AddChat(id string, clients ...ChatClient) {
	r.chat[id] = append(r.chat[id], clients...)
}

// AddEmbedding registers a single embedding endpoint under id.
func (r *Registry) AddEmbedding(id string, client EmbeddingClient) {
	r.embedding[id] = client
}

// SetDefault remembers id as the endpoint legacy single-model callers
// should use when they do not name a model explicitly.
func (r *Registry) SetDefault(id string) {
	r.defaultID = id
}

// ChatIDs returns the registered chat model ids, in insertion-independent
// but deterministic (sorted) order.
func (r *Registry) ChatIDs() []string {
	return sortedKeys(r.chat)
}

// EmbeddingIDs returns the registered embedding model ids, sorted.
func (r *Registry) EmbeddingIDs() []string {
	return sortedKeysEmbedding(r.embedding)
}

// Has reports whether id is a registered chat model.
func (r *Registry) Has(id string) bool {
	_, ok := r.chat[id]
	return ok
}

// Get returns the judge endpoints registered under id, or a
// ConfigurationError if id is unknown.
func (r *Registry) Get(id string) ([]ChatClient, error) {
	clients, ok := r.chat[id]
	if !ok {
		return nil, &ragerr.ConfigurationError{Field: "model.id", Message: "unknown chat model id: " + id}
	}
	return clients, nil
}

// GetEmbedding returns the embedding endpoint registered under id, or a
// ConfigurationError if id is unknown.
func (r *Registry) GetEmbedding(id string) (EmbeddingClient, error) {
	client, ok := r.embedding[id]
	if !ok {
		return nil, &ragerr.ConfigurationError{Field: "model.id", Message: "unknown embedding model id: " + id}
	}
	return client, nil
}

// GetOrDefault returns the endpoints for id, falling back to the default
// endpoint if id is empty.
func (r *Registry) GetOrDefault(id string) ([]ChatClient, error) {
	if id == "" {
		id = r.defaultID
	}
	return r.Get(id)
}

func sortedKeys(m map[string][]ChatClient) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func sortedKeysEmbedding(m map[string]EmbeddingClient) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
