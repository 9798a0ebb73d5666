// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package basis defines the mutable interpretation store attached to each
// basis graph node: the semantic judgements the analyser accumulates about
// what a node means (a data field, a list item, a recursive nesting point,
// or scaffolding with no content of its own).
//
// Grounded on original_source/src/node_data.rs (NodeData, ElementData,
// TextData, apply_data) and original_source/src/graph_node/analysis.rs
// (the NodeDataStructure construction sites in analyze_structure and
// analyze_structure_classically).
package basis

import "sync"

// TextData is the semantic judgement for a text node.
type TextData struct {
	IsPresentational   bool   `json:"is_presentational"`
	IsTitle            bool   `json:"is_title"`
	IsPrimaryContent   bool   `json:"is_primary_content"`
	IsPeripheralContent bool  `json:"is_peripheral_content"`
	IsAdvertisement    bool   `json:"is_advertisement"`
	IsLabel            bool   `json:"is_label"`
	Description        string `json:"description"`
}

// ElementData is the semantic judgement for an element node's single
// meaningful attribute. Only "href" and "title" are ever eligible.
type ElementData struct {
	Attribute           string `json:"attribute"`
	IsPageLink          bool   `json:"is_page_link"`
	IsPeripheralContent bool   `json:"is_peripheral_content"`
	IsAdvertisement     bool   `json:"is_advertisement"`
	Description         string `json:"description"`
}

// NodeData is one semantic interpretation of a basis node: exactly one of
// Text or Element is set.
type NodeData struct {
	Name    string       `json:"name"`
	Text    *TextData    `json:"text,omitempty"`
	Element *ElementData `json:"element,omitempty"`
}

// IsText reports whether this interpretation concerns a text node.
func (d NodeData) IsText() bool { return d.Text != nil }

// IsElement reports whether this interpretation concerns an element
// attribute.
func (d NodeData) IsElement() bool { return d.Element != nil }

// EnumerativeStructure marks a basis node as occurring among a set of
// structurally-identical siblings (a list item). IntrinsicComponentID is
// the interpreting basis node's own id — the Rust original carries a set
// of ids here, but only ever populates it with the single interpreting
// node, so the Go type keeps the single-id case directly.
type EnumerativeStructure struct {
	IntrinsicComponentID string `json:"intrinsic_component_id"`
}

// RecursiveStructure marks a basis node as participating in a cycle: its
// realisations in an output tree nest arbitrarily deep.
type RecursiveStructure struct {
	IsRecursive bool   `json:"is_recursive"`
	Description string `json:"description"`
}

// AssociativeGroup is one group of subgraph hashes the LLM (or the
// sibling-association pass) determined are semantically linked — e.g. a
// comment and its author badge.
type AssociativeGroup struct {
	SubgraphHashes []string `json:"subgraph_hashes"`
}

// AssociativeStructure groups of subgraph hashes considered linked.
// Populated by internal/analyse/associate.go; persist.DocumentProfile's
// Groups are stored with a profile but not applied to basis nodes
// (SPEC_FULL.md Open Question (b)).
type AssociativeStructure struct {
	Groups []AssociativeGroup `json:"groups"`
}

// NodeDataStructure is zero or more of {Recursive, Enumerative,
// Associative} describing the structural role of a basis node, as
// distinct from NodeData's description of its content.
type NodeDataStructure struct {
	Recursive   *RecursiveStructure   `json:"recursive,omitempty"`
	Enumerative *EnumerativeStructure `json:"enumerative,omitempty"`
	Associative *AssociativeStructure `json:"associative,omitempty"`
}

// Annotations is the mutable interpretation store attached to a basis
// graph node. Append-only during analysis (I5): a node's Data/Structure
// lists only ever grow, and each append is a single slice-replace guarded
// by Annotations' own mutex, so concurrent analyser tasks never observe a
// torn write.
type Annotations struct {
	mu        sync.RWMutex
	Data      []NodeData          `json:"data"`
	Structure []NodeDataStructure `json:"structure"`
}

// New builds an empty annotation store. description is accepted to satisfy
// internal/graph.Factory's signature; a fresh Annotations value carries no
// content of its own regardless of description.
func New(description string) *Annotations {
	return &Annotations{}
}

// Describe satisfies internal/graph.Payload.
func (a *Annotations) Describe() string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if len(a.Data) == 0 && len(a.Structure) == 0 {
		return "unannotated"
	}
	return "annotated"
}

// IsAnnotated reports whether any data or structure has been recorded —
// used by the analyser to skip nodes on re-runs (idempotence).
func (a *Annotations) IsAnnotated() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return len(a.Data) > 0 || len(a.Structure) > 0
}

// AppendData appends interpretations to the node's data list.
func (a *Annotations) AppendData(data ...NodeData) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.Data = append(a.Data, data...)
}

// AppendStructure appends a structural interpretation to the node's
// structure list.
func (a *Annotations) AppendStructure(structure NodeDataStructure) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.Structure = append(a.Structure, structure)
}

// DataSnapshot returns a copy of the node's data list, safe to range over
// without holding the lock.
func (a *Annotations) DataSnapshot() []NodeData {
	a.mu.RLock()
	defer a.mu.RUnlock()
	out := make([]NodeData, len(a.Data))
	copy(out, a.Data)
	return out
}

// StructureSnapshot returns a copy of the node's structure list.
func (a *Annotations) StructureSnapshot() []NodeDataStructure {
	a.mu.RLock()
	defer a.mu.RUnlock()
	out := make([]NodeDataStructure, len(a.Structure))
	copy(out, a.Structure)
	return out
}
