// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package graph

// Prune merges twin sibling subtrees: breadth-first over the graph, at
// each visited parent it repeatedly finds two distinct children with the
// same shape-hash and merges the second into the first, until no twin
// pair remains among that parent's children. Establishes invariant I2 (no
// two sibling children of the same parent share a shape-hash). Prune is a
// fixpoint operator: running it again on an already-pruned graph is a
// no-op, since no twin pair remains to find.
//
// Ported from original_source/src/graph_node/mod.rs's prune/is_twin/
// merge_nodes.
func Prune[T Payload](root *Node[T]) {
	BFT(root, func(parent *Node[T]) bool {
		for {
			keep, discard := findTwins(parent)
			if keep == nil {
				break
			}
			mergeNodes(parent, keep, discard)
		}
		return true
	})
}

func findTwins[T Payload](parent *Node[T]) (keep, discard *Node[T]) {
	children := parent.Children()
	for _, a := range children {
		for _, b := range children {
			if a.ID != b.ID && a.Hash == b.Hash {
				return a, b
			}
		}
	}
	return nil, nil
}

// mergeNodes re-parents every child of discard onto keep and detaches
// discard from parent. keep's identity survives; discard's does not.
func mergeNodes[T Payload](parent, keep, discard *Node[T]) {
	discard.SetParents(nil)

	for _, child := range discard.Children() {
		child.ReplaceParent(discard, keep)
		keep.AppendChild(child)
	}

	parent.RemoveChild(discard.ID)
}
