// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package graph

// DeepCopy recursively copies a subgraph, preserving DAG structure across
// one call via an id-keyed cache: a node reachable by more than one path
// within the copied subgraph is copied once and shared thereafter, exactly
// as the source graph shared it. The copy's payload is rebuilt from the
// original's description via factory rather than cloned directly, since a
// copy may cross into a differently-owned graph (e.g. absorbing into a
// graph that will go on to be mutated independently of the donor).
//
// Ported from original_source/src/graph_node/mod.rs's deep_copy, adapted
// to a single type parameter: SPEC_FULL.md's absorb always merges
// same-payload graphs (document graph into document graph, or basis graph
// into basis graph), so the Rust original's T/U cross-type generality has
// no caller in this repository.
func DeepCopy[T Payload](node *Node[T], parents []*Node[T], copies map[string]*Node[T], factory Factory[T]) *Node[T] {
	if existing, ok := copies[node.ID]; ok {
		return existing
	}

	newNode := &Node[T]{
		ID:   node.ID,
		Hash: node.Hash,
		Data: factory(node.Data.Describe()),
	}
	newNode.SetParents(parents)
	copies[node.ID] = newNode

	children := make([]*Node[T], 0)
	for _, child := range node.Children() {
		children = append(children, DeepCopy(child, []*Node[T]{newNode}, copies, factory))
	}
	newNode.SetChildren(children)

	return newNode
}

// Absorb merges donor's subtree in as a child of recipient: if recipient
// already has a child with donor's shape-hash, each child of donor is
// absorbed into that matching child in turn, unless the two subgraphs are
// already structurally identical (same Hash), in which case nothing more
// needs doing. Otherwise the whole donor subtree is deep-copied and
// appended as a new child of recipient. Repeated absorption of a donor
// contributing no novel shape is a no-op: the donor finds a
// structurally-identical match and nothing is copied.
//
// Ported from original_source/src/graph_node/mod.rs's absorb.
func Absorb[T Payload](recipient, donor *Node[T], factory Factory[T]) {
	var match *Node[T]
	for _, child := range recipient.Children() {
		if child.Hash == donor.Hash {
			match = child
			break
		}
	}

	if match == nil {
		copied := DeepCopy(donor, []*Node[T]{recipient}, map[string]*Node[T]{}, factory)
		recipient.AppendChild(copied)
		return
	}

	if Hash(match) != Hash(donor) {
		for _, donorChild := range donor.Children() {
			Absorb(match, donorChild, factory)
		}
	}
}
