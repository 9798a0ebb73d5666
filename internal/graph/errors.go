// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package-level sentinel errors for the graph package, following the
// teacher's convention of exporting comparable sentinel errors rather than
// opaque wrapped strings (grounded on
// jinterlante1206-AleutianLocal/services/trace/graph/errors.go).
package graph

import "errors"

var (
	// ErrParse is returned when a document cannot be parsed into a graph.
	ErrParse = errors.New("graph: malformed input")

	// ErrEmptyGraph names a basis graph with no primary child (an un-built
	// or empty graph). Apply does not return it: a lineage walk against
	// such a graph reports no match.
	ErrEmptyGraph = errors.New("graph: basis graph has no primary child")

	// ErrNoHomologousNodes is returned by callers that require at least one
	// homologous node and find none.
	ErrNoHomologousNodes = errors.New("graph: no homologous nodes found")
)
