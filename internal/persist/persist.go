// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package persist serialises analysed basis graphs to JSON and provides
// pluggable lookup of previously-saved graphs by a document's feature-hash
// set, per spec.md §6: "Basis graphs, once analysed, are serialised as
// JSON (nodes by id, children/parents as id references) and reloaded for
// reuse. Optional profile provider (YAML/JSON/SQLite) returns a
// previously-saved DocumentProfile given a feature-hash set; the core
// treats it as an opaque source of basis graphs."
//
// Grounded on services/trace/agent/mcts/crs/persistence.go's gzip+JSON
// snapshotting with a SHA256 content-hash integrity check, and on
// original_source's implied NodeData/XmlNode Serialize/Deserialize JSON
// round trip (the original never names a persist module directly; the
// round trip is reconstructed from the serde derives throughout
// graph_node/mod.rs and node_data.rs).
package persist

import "errors"

var (
	// ErrProfileNotFound is returned by a ProfileProvider when no profile
	// is stored under the given feature-hash set.
	ErrProfileNotFound = errors.New("persist: no profile for feature hash")

	// ErrCorrupted is returned when a stored profile fails its integrity
	// check on load.
	ErrCorrupted = errors.New("persist: stored profile failed integrity check")
)
