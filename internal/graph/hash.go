// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package graph

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strings"
)

// Hash computes the subgraph hash of node: a digest over its own
// shape-hash and the subgraph hash of every child, with a path-local
// cycle sentinel so a back-edge contributes a fixed "cycle" token instead
// of recursing forever. Two subgraphs with the same Hash are structurally
// identical; used by Absorb to decide whether a donor subtree is already
// present in the recipient.
func Hash[T Payload](node *Node[T]) string {
	visited := make(map[string]bool)
	return computeHash(node, visited)
}

func computeHash[T Payload](node *Node[T], visited map[string]bool) string {
	if visited[node.ID] {
		return "cycle"
	}

	visited[node.ID] = true
	items := []string{node.Hash}
	for _, child := range node.Children() {
		items = append(items, computeHash(child, visited))
	}
	delete(visited, node.ID)

	sort.Strings(items)
	sum := sha256.Sum256([]byte(strings.Join(items, "")))
	return hex.EncodeToString(sum[:])
}
