// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package persist

import (
	"bytes"
	"compress/gzip"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"

	"github.com/aleutian-labs/parversion/internal/basis"
	badger "github.com/dgraph-io/badger/v4"
)

// badgerProfileRecord is the value stored per feature key: the basis
// graph's JSON form plus an integrity hash, following the clear-hash-
// restore pattern of services/trace/agent/mcts/crs/persistence.go's
// writeMetadata/readMetadata (there applied to a metadata.json sidecar;
// here applied to the record itself since BadgerDB has no separate
// sidecar file to hang a hash off of).
type badgerProfileRecord struct {
	FeatureHash []string                 `json:"feature_hash"`
	GraphJSON   []byte                   `json:"graph_json"`
	Groups      []basis.AssociativeGroup `json:"associative_groups,omitempty"`
	ContentHash string                   `json:"content_hash,omitempty"`
}

// BadgerProfileStore is a ProfileProvider backed by an embedded BadgerDB
// instance, gzip-compressing each stored profile and guarding it with a
// SHA256 content hash exactly as the teacher's CRS backup path does for
// its own journal snapshots.
type BadgerProfileStore struct {
	db *badger.DB
}

// OpenBadgerProfileStore opens (creating if necessary) a persistent
// BadgerDB at path.
func OpenBadgerProfileStore(path string) (*BadgerProfileStore, error) {
	db, err := badger.Open(badger.DefaultOptions(path))
	if err != nil {
		return nil, fmt.Errorf("persist: open badger store at %s: %w", path, err)
	}
	return &BadgerProfileStore{db: db}, nil
}

// OpenInMemoryBadgerProfileStore opens an ephemeral, in-memory BadgerDB,
// for tests and short-lived CLI invocations that don't need a durable
// profile cache.
func OpenInMemoryBadgerProfileStore() (*BadgerProfileStore, error) {
	db, err := badger.Open(badger.DefaultOptions("").WithInMemory(true))
	if err != nil {
		return nil, fmt.Errorf("persist: open in-memory badger store: %w", err)
	}
	return &BadgerProfileStore{db: db}, nil
}

// Close releases the underlying BadgerDB handle.
func (s *BadgerProfileStore) Close() error {
	return s.db.Close()
}

func badgerProfileKey(featureHash []string) []byte {
	return []byte("profile:" + FeatureKey(featureHash))
}

// Load implements ProfileProvider.
func (s *BadgerProfileStore) Load(ctx context.Context, featureHash []string) (*DocumentProfile, error) {
	var compressed []byte

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(badgerProfileKey(featureHash))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			compressed = append([]byte{}, val...)
			return nil
		})
	})
	if err == badger.ErrKeyNotFound {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("persist: read from badger: %w", err)
	}

	gzipReader, err := gzip.NewReader(bytes.NewReader(compressed))
	if err != nil {
		return nil, fmt.Errorf("persist: decompress profile: %w", err)
	}
	defer gzipReader.Close()

	raw, err := io.ReadAll(gzipReader)
	if err != nil {
		return nil, fmt.Errorf("persist: decompress profile: %w", err)
	}

	var record badgerProfileRecord
	if err := json.Unmarshal(raw, &record); err != nil {
		return nil, fmt.Errorf("persist: unmarshal profile record: %w", err)
	}

	if record.ContentHash != "" {
		expected := record.ContentHash
		record.ContentHash = ""
		hashable, err := json.Marshal(&record)
		if err != nil {
			return nil, fmt.Errorf("persist: marshal for hash verification: %w", err)
		}
		sum := sha256.Sum256(hashable)
		if hex.EncodeToString(sum[:]) != expected {
			return nil, ErrCorrupted
		}
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

// Save writes profile under its feature key, gzip-compressed with a
// SHA256 content hash guarding against partial or bit-rotted reads. Not
// part of ProfileProvider: see YAMLProfileStore.Save for why writing is a
// caller concern.
func (s *BadgerProfileStore) Save(ctx context.Context, profile *DocumentProfile) error {
	graphJSON, err := SerializeGraph(profile.Graph)
	if err != nil {
		return fmt.Errorf("persist: serialize profile graph: %w", err)
	}

	record := badgerProfileRecord{
		FeatureHash: profile.FeatureHash,
		GraphJSON:   graphJSON,
		Groups:      profile.Groups,
	}

	hashable, err := json.Marshal(&record)
	if err != nil {
		return fmt.Errorf("persist: marshal for hash: %w", err)
	}
	sum := sha256.Sum256(hashable)
	record.ContentHash = hex.EncodeToString(sum[:])

	final, err := json.Marshal(&record)
	if err != nil {
		return fmt.Errorf("persist: marshal profile record: %w", err)
	}

	var buf bytes.Buffer
	gzipWriter := gzip.NewWriter(&buf)
	if _, err := gzipWriter.Write(final); err != nil {
		gzipWriter.Close()
		return fmt.Errorf("persist: compress profile: %w", err)
	}
	if err := gzipWriter.Close(); err != nil {
		return fmt.Errorf("persist: compress profile: %w", err)
	}

	key := badgerProfileKey(profile.FeatureHash)
	compressed := buf.Bytes()
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, compressed)
	})
}
