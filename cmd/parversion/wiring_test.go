// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/aleutian-labs/parversion/internal/persist"
)

func resetGlobalFlags() {
	provider = "mock"
	apiKey = ""
	model = ""
	noCache = false
	profileBackend = "yaml"
	featureHash = nil
}

func TestBuildPort_DefaultsToCachedMock(t *testing.T) {
	resetGlobalFlags()
	t.Cleanup(resetGlobalFlags)

	port, err := buildPort()
	if err != nil {
		t.Fatalf("buildPort() error = %v", err)
	}
	if port == nil {
		t.Fatal("buildPort() returned a nil port")
	}
}

func TestBuildPort_RejectsUnknownProvider(t *testing.T) {
	resetGlobalFlags()
	t.Cleanup(resetGlobalFlags)
	provider = "carrier-pigeon"

	if _, err := buildPort(); err == nil {
		t.Error("expected an error for an unknown provider")
	}
}

func TestBuildPort_RequiresAnthropicAPIKey(t *testing.T) {
	resetGlobalFlags()
	t.Cleanup(resetGlobalFlags)
	provider = "anthropic"

	if _, err := buildPort(); err == nil {
		t.Error("expected an error when no Anthropic API key is configured")
	}
}

func TestRequireFeatureHash_RejectsEmpty(t *testing.T) {
	resetGlobalFlags()
	t.Cleanup(resetGlobalFlags)

	if _, err := requireFeatureHash(); err == nil {
		t.Error("expected an error when --feature-hash is unset")
	}
}

func TestOpenProfileStore_YAMLRoundTrips(t *testing.T) {
	resetGlobalFlags()
	t.Cleanup(resetGlobalFlags)
	profileBackend = "yaml"
	profileDir = filepath.Join(t.TempDir(), "profiles")

	store, closeFn, err := openProfileStore()
	if err != nil {
		t.Fatalf("openProfileStore() error = %v", err)
	}
	defer closeFn()

	docPath := writeSampleFile(t)
	_, basisRoot, err := loadDocument(docPath)
	if err != nil {
		t.Fatalf("loadDocument() error = %v", err)
	}

	ctx := context.Background()
	profile := &persist.DocumentProfile{FeatureHash: []string{"cli-test"}, Graph: basisRoot}
	if err := store.Save(ctx, profile); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := store.Load(ctx, []string{"cli-test"})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if loaded.Graph.ID != basisRoot.ID {
		t.Errorf("loaded graph root ID = %q, want %q", loaded.Graph.ID, basisRoot.ID)
	}
}
