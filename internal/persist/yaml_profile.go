// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package persist

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/aleutian-labs/parversion/internal/basis"
	"gopkg.in/yaml.v3"
)

// yamlProfileRecord is one profile's on-disk shape. The basis graph
// itself goes through SerializeGraph first: graph.Node carries unexported
// parent/child slices behind a mutex, so yaml.v3's struct-tag reflection
// cannot walk it directly the way it walks config.Config. GraphJSON is
// marshalled by yaml.v3 as a base64 !!binary scalar, keeping the profile a
// single self-contained YAML document.
type yamlProfileRecord struct {
	FeatureHash []string                 `yaml:"feature_hash"`
	GraphJSON   []byte                   `yaml:"graph_json"`
	Groups      []basis.AssociativeGroup `yaml:"associative_groups,omitempty"`
}

// YAMLProfileStore is a file-backed ProfileProvider, one YAML file per
// feature-hash set, grounded on the teacher's gopkg.in/yaml.v3 dependency
// (already used for config.Config's own file loading).
type YAMLProfileStore struct {
	dir string
}

// NewYAMLProfileStore roots a store at dir, creating it if necessary.
func NewYAMLProfileStore(dir string) (*YAMLProfileStore, error) {
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("persist: create profile dir %s: %w", dir, err)
	}
	return &YAMLProfileStore{dir: dir}, nil
}

func (s *YAMLProfileStore) path(featureHash []string) string {
	return filepath.Join(s.dir, FeatureKey(featureHash)+".yaml")
}

// Load implements ProfileProvider.
func (s *YAMLProfileStore) Load(ctx context.Context, featureHash []string) (*DocumentProfile, error) {
	raw, err := os.ReadFile(s.path(featureHash))
	if os.IsNotExist(err) {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("persist: read profile: %w", err)
	}

	var record yamlProfileRecord
	if err := yaml.Unmarshal(raw, &record); err != nil {
		return nil, fmt.Errorf("persist: unmarshal profile: %w", err)
	}

	graph, err := DeserializeGraph(record.GraphJSON)
	if err != nil {
		return nil, fmt.Errorf("persist: deserialize profile graph: %w", err)
	}

	return &DocumentProfile{
		FeatureHash: record.FeatureHash,
		Graph:       graph,
		Groups:      record.Groups,
	}, nil
}

// Save writes profile to its feature-hash file, overwriting any existing
// entry. Save is not part of ProfileProvider: the core only ever reads
// through a provider, so writing is a caller concern (e.g. the build CLI
// subcommand, after running internal/analyse over a freshly learned
// document).
func (s *YAMLProfileStore) Save(ctx context.Context, profile *DocumentProfile) error {
	graphJSON, err := SerializeGraph(profile.Graph)
	if err != nil {
		return fmt.Errorf("persist: serialize profile graph: %w", err)
	}

	record := yamlProfileRecord{
		FeatureHash: profile.FeatureHash,
		GraphJSON:   graphJSON,
		Groups:      profile.Groups,
	}

	data, err := yaml.Marshal(&record)
	if err != nil {
		return fmt.Errorf("persist: marshal profile: %w", err)
	}

	path := s.path(profile.FeatureHash)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0640); err != nil {
		return fmt.Errorf("persist: write profile: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("persist: rename profile: %w", err)
	}
	return nil
}
