// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package persist

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strings"

	"github.com/aleutian-labs/parversion/internal/basis"
)

// DocumentProfile is a previously-analysed basis graph, keyed by the
// feature-hash set of the document family it was learned from. Groups
// carries associative groups a caller precomputed out of band; the stores
// save and load it with the profile, but nothing copies it onto the basis
// graph's nodes, so the harvester only sees the AssociativeStructure that
// analyse.AnalyseAssociations writes (SPEC_FULL.md Open Question (b)).
type DocumentProfile struct {
	FeatureHash []string                 `json:"feature_hash"`
	Graph       *basis.Graph             `json:"graph"`
	Groups      []basis.AssociativeGroup `json:"associative_groups,omitempty"`
}

// ProfileProvider is an opaque source of previously-saved basis graphs,
// resolved by a document's feature-hash set. The core only ever reads
// through a provider; nothing in internal/analyse or internal/harvest
// writes one.
type ProfileProvider interface {
	// Load returns the stored profile for featureHash, or ErrProfileNotFound
	// if none has been saved.
	Load(ctx context.Context, featureHash []string) (*DocumentProfile, error)
}

// FeatureKey canonicalises a feature-hash set into one stable lookup key:
// sorted, joined on a separator that cannot appear in a shape-hash, and
// hashed, so a provider's storage layer never depends on the order a
// caller happened to build its feature-hash slice in.
func FeatureKey(featureHash []string) string {
	sorted := append([]string{}, featureHash...)
	sort.Strings(sorted)
	sum := sha256.Sum256([]byte(strings.Join(sorted, "\x1f")))
	return hex.EncodeToString(sum[:])
}
