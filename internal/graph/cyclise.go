// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package graph

// Cyclise rewrites repeating shapes into back-edges: depth-first with a
// path-local map from shape-hash to its first occurrence on the current
// path. When a hash recurs on the same path, every parent of the
// recurring node is repointed at the first occurrence instead, every
// child of the recurring node is re-parented onto the first occurrence,
// and the recurring node itself is detached (orphaned, left for the
// garbage collector). Establishes invariant I3 (every shape-hash appears
// at most once on any root-to-node path). The map is path-local — a hash
// recorded while descending one branch is removed again on return, so the
// same hash recurring on a sibling branch does not produce a false cycle.
// Already-cyclised input is tolerated: a hash with no occurrence later on
// the same path simply records and recurses as usual, and an existing
// back-edge that leads to a node already on the path is left in place.
//
// Ported from original_source/src/graph_node/mod.rs's cyclize/dfs.
func Cyclise[T Payload](root *Node[T]) {
	visited := make(map[string]*Node[T])
	cycliseDFS(root, visited)
}

func cycliseDFS[T Payload](node *Node[T], visited map[string]*Node[T]) {
	if first, ok := visited[node.Hash]; ok {
		if first == node {
			return
		}
		for _, parent := range node.Parents() {
			parent.ReplaceChild(node, first)
		}

		for _, child := range node.Children() {
			child.ReplaceParent(node, first)
			first.AppendChild(child)
		}

		node.SetParents(nil)
		node.SetChildren(nil)
		return
	}

	visited[node.Hash] = node
	for _, child := range node.Children() {
		cycliseDFS(child, visited)
	}
	delete(visited, node.Hash)
}
