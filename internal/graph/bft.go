// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package graph

// BFT walks the graph breadth-first from root, invoking visit once per
// distinct node id. Traversal stops early if visit returns false. A node
// already visited (reachable via more than one path after cyclisation) is
// skipped on subsequent encounters.
func BFT[T Payload](root *Node[T], visit func(*Node[T]) bool) {
	visited := make(map[string]bool)
	queue := []*Node[T]{root}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		if visited[current.ID] {
			continue
		}
		visited[current.ID] = true

		if !visit(current) {
			return
		}

		queue = append(queue, current.Children()...)
	}
}

// Collect returns every distinct node reachable from root via BFT, in
// visit order.
func Collect[T Payload](root *Node[T]) []*Node[T] {
	var nodes []*Node[T]
	BFT(root, func(n *Node[T]) bool {
		nodes = append(nodes, n)
		return true
	})
	return nodes
}
