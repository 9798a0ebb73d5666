// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package graph

// Lineage returns the ordered sequence of shape-hashes from the root to
// node inclusive, following the single-parent path (an output tree node
// is expected to have at most one parent even though the type allows
// more, matching original_source/src/graph_node/mod.rs's get_lineage).
func Lineage[T Payload](node *Node[T]) []string {
	var lineage []string
	current := node

	for {
		lineage = append([]string{current.Hash}, lineage...)
		parents := current.Parents()
		if len(parents) == 0 {
			break
		}
		current = parents[0]
	}

	return lineage
}

// Apply walks basisRoot's single primary child, descending into the
// unique child whose shape-hash matches each successive lineage entry
// after the root's own (lineage[0] identifies the root itself, which
// basisRoot's primary child already represents). It returns the matched
// basis node and true, or (nil, false) the first time no child matches —
// this is a deliberate correction of the behavior implied by a literal
// reading of original_source/src/graph_node/mod.rs's apply_lineage, which
// does not break its loop on a miss and instead keeps consuming
// subsequent lineage entries against the same unmatched node. SPEC_FULL.md
// §4.3 specifies the clean stop-on-first-miss behavior implemented here.
func Apply[T Payload](basisRoot *Node[T], lineage []string) (*Node[T], bool) {
	children := basisRoot.Children()
	if len(children) == 0 {
		return nil, false
	}
	current := children[0]

	if len(lineage) <= 1 {
		return current, true
	}

	for _, hash := range lineage[1:] {
		var next *Node[T]
		for _, child := range current.Children() {
			if child.Hash == hash {
				next = child
				break
			}
		}
		if next == nil {
			return nil, false
		}
		current = next
	}

	return current, true
}

// FindHomologousNodes walks outputTree breadth-first and collects every
// node whose lineage resolves (via Apply against basisGraph) to target.
//
// Ported from original_source/src/graph_node/mod.rs's
// find_homologous_nodes.
func FindHomologousNodes[B Payload, O Payload](target, basisGraph *Node[B], outputTree *Node[O]) []*Node[O] {
	var matches []*Node[O]

	BFT(outputTree, func(outputNode *Node[O]) bool {
		lineage := Lineage(outputNode)
		basisNode, ok := Apply(basisGraph, lineage)
		if ok && basisNode.ID == target.ID {
			matches = append(matches, outputNode)
		}
		return true
	})

	return matches
}
