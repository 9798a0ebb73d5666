// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/aleutian-labs/parversion/internal/llmport"
	"github.com/aleutian-labs/parversion/internal/persist"
)

// buildPort resolves the --provider/--api-key/--model/--no-cache flags
// into a concrete llmport.Port, wrapping it in a CachedPort unless caching
// was disabled.
func buildPort() (llmport.Port, error) {
	var port llmport.Port

	switch provider {
	case "anthropic":
		key := apiKey
		if key == "" {
			key = os.Getenv("ANTHROPIC_API_KEY")
		}
		if key == "" {
			return nil, fmt.Errorf("--api-key or ANTHROPIC_API_KEY is required for --provider=anthropic")
		}
		port = llmport.NewAnthropicPort(key, model)
	case "openai":
		key := apiKey
		if key == "" {
			key = os.Getenv("OPENAI_API_KEY")
		}
		if key == "" {
			return nil, fmt.Errorf("--api-key or OPENAI_API_KEY is required for --provider=openai")
		}
		port = llmport.NewOpenAIPort(key, model)
	case "mock":
		port = llmport.NewMockPort()
	default:
		return nil, fmt.Errorf("unknown --provider %q (want anthropic, openai, or mock)", provider)
	}

	if !noCache {
		port = llmport.NewCachedPort(port)
	}
	return port, nil
}

// openProfileStore resolves the --profile-backend flag into a concrete
// persist.ProfileProvider, along with its Save method and a close func
// callers should defer.
func openProfileStore() (store *profileStore, closeFn func() error, err error) {
	switch profileBackend {
	case "yaml":
		store, err := persist.NewYAMLProfileStore(profileDir)
		if err != nil {
			return nil, nil, err
		}
		return &profileStore{yaml: store}, func() error { return nil }, nil
	case "badger":
		store, err := persist.OpenBadgerProfileStore(profileDBPath)
		if err != nil {
			return nil, nil, err
		}
		return &profileStore{badger: store}, store.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown --profile-backend %q (want yaml or badger)", profileBackend)
	}
}

// profileStore adapts whichever concrete backend was opened to a single
// Load/Save surface, since persist.ProfileProvider only names Load and the
// build command also needs to Save.
type profileStore struct {
	yaml   *persist.YAMLProfileStore
	badger *persist.BadgerProfileStore
}

// Load satisfies persist.ProfileProvider.
func (s *profileStore) Load(ctx context.Context, featureHash []string) (*persist.DocumentProfile, error) {
	if s.yaml != nil {
		return s.yaml.Load(ctx, featureHash)
	}
	return s.badger.Load(ctx, featureHash)
}

// Save persists profile to whichever backend was opened.
func (s *profileStore) Save(ctx context.Context, profile *persist.DocumentProfile) error {
	if s.yaml != nil {
		return s.yaml.Save(ctx, profile)
	}
	return s.badger.Save(ctx, profile)
}
