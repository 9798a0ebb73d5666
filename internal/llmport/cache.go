// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package llmport

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sync"

	"golang.org/x/sync/singleflight"
)

// CachedPort wraps a Port with an unbounded sha256-keyed response cache
// and singleflight request coalescing, so identical prompts issued
// concurrently by the analyser's per-node fan-out share a single
// in-flight request and never pay for the same completion twice.
//
// Grounded on
// jinterlante1206-AleutianLocal/services/trace/agent/classifier/llm_classifier.go's
// cache + singleflight.Group combination.
type CachedPort struct {
	inner    Port
	inflight singleflight.Group

	mu    sync.RWMutex
	cache map[string]json.RawMessage
}

// NewCachedPort wraps inner with caching and request coalescing.
func NewCachedPort(inner Port) *CachedPort {
	return &CachedPort{
		inner: inner,
		cache: make(map[string]json.RawMessage),
	}
}

// Prompt implements Port.
func (c *CachedPort) Prompt(ctx context.Context, prompt string) (json.RawMessage, error) {
	key := promptCacheKey(prompt)

	c.mu.RLock()
	if cached, ok := c.cache[key]; ok {
		c.mu.RUnlock()
		return cached, nil
	}
	c.mu.RUnlock()

	result, err, _ := c.inflight.Do(key, func() (interface{}, error) {
		return c.inner.Prompt(ctx, prompt)
	})
	if err != nil {
		return nil, err
	}

	response := result.(json.RawMessage)
	c.mu.Lock()
	c.cache[key] = response
	c.mu.Unlock()

	return response, nil
}

func promptCacheKey(prompt string) string {
	h := sha256.Sum256([]byte(prompt))
	return hex.EncodeToString(h[:])
}
