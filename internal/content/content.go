// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package content defines the tree-shaped result of harvesting an output
// document against a basis graph: a nested Content value per output node,
// carrying whatever ContentValues survived ApplyData plus structural
// metadata (recursion, enumeration, association) inherited from the basis
// node that governed it.
//
// Grounded on original_source/src/harvest.rs's usage of Content — the
// original's own src/content.rs was not among the retrieved
// original_source files, so these types are reconstructed from every call
// site that builds or reads one.
package content

import "github.com/aleutian-labs/parversion/internal/basis"

// ContentMetadataAssociative names the other subgraph hashes considered
// linked to this node's own subgraph hash, mirroring harvest.rs's
// process_node associative branch (subgraph, associated_subgraphs).
type ContentMetadataAssociative struct {
	Subgraph            string   `json:"subgraph"`
	AssociatedSubgraphs []string `json:"associated_subgraphs"`
}

// ContentMetadata carries the structural judgements a basis node's
// NodeDataStructure entries contribute to the output node's harvested
// content: whether the node recurses, whether it is one of a set of
// enumerated siblings, and what it is associated with.
type ContentMetadata struct {
	Recursive   *basis.RecursiveStructure   `json:"recursive,omitempty"`
	Enumerative *basis.EnumerativeStructure `json:"enumerative,omitempty"`
	Associative *ContentMetadataAssociative `json:"associative,omitempty"`
}

// Content is one output node's harvested content: the ContentValues that
// survived ApplyData at this node, its structural metadata, and the
// harvested content of its children, nested the same way the output tree
// itself nests.
type Content struct {
	ID           string            `json:"id"`
	Values       []basis.ContentValue `json:"values"`
	Meta         ContentMetadata   `json:"meta"`
	InnerContent []Content         `json:"inner_content"`
}

// IsEmpty reports whether a Content node carries nothing worth keeping:
// no values of its own, no structural metadata, and (transitively) no
// non-empty descendants.
func (c Content) IsEmpty() bool {
	if len(c.Values) > 0 {
		return false
	}
	if c.Meta.Recursive != nil || c.Meta.Enumerative != nil || c.Meta.Associative != nil {
		return false
	}
	for _, inner := range c.InnerContent {
		if !inner.IsEmpty() {
			return false
		}
	}
	return true
}
