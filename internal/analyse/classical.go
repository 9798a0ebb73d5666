// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package analyse

import (
	"github.com/aleutian-labs/parversion/internal/basis"
	"github.com/aleutian-labs/parversion/internal/config"
	"github.com/aleutian-labs/parversion/internal/graph"
)

// BasisNode is the basis graph node type the analyser annotates.
type BasisNode = graph.Node[*basis.Annotations]

// classifyClassically reports whether targetNode needs no LLM interpretation
// at all: it is the root sentinel, has no homologous output nodes (a
// basis-graph inconsistency callers should not spend LLM budget chasing),
// or its output shape is one of the always-structural tags a basis graph
// never harvests content from.
func classifyClassically(targetNode *BasisNode, homologousNodes []*DocNode, cfg *config.Config) bool {
	if targetNode.Hash == graph.RootNodeHash {
		return true
	}
	if len(homologousNodes) == 0 {
		return true
	}

	outputNode := homologousNodes[0]
	if outputNode.Data.IsElement() && cfg.IsTagBlacklisted(outputNode.Data.Tag) {
		return true
	}

	return false
}

// analyzeStructureClassically decides, without any LLM call, whether
// targetNode's structure is already fully understood: it detects
// enumerative content (homologous output nodes that all share the same
// parent, implying a list of repeated items) as a side effect, writing an
// EnumerativeStructure directly onto the basis node, and reports true
// (skip the LLM structure prompt) for text nodes, lone children, and
// basis nodes with more than one parent (which a prior normalisation pass
// has already identified as recursive — see RecursiveStructure below).
func analyzeStructureClassically(targetNode *BasisNode, homologousNodes []*DocNode) bool {
	exemplary := homologousNodes[0]
	parents := exemplary.Parents()
	var exemplaryParent *DocNode
	if len(parents) > 0 {
		exemplaryParent = parents[0]
	}

	if exemplaryParent != nil && len(homologousNodes) > 1 {
		areSiblings := true
		for _, node := range homologousNodes {
			nodeParents := node.Parents()
			if len(nodeParents) == 0 || nodeParents[0].ID != exemplaryParent.ID {
				areSiblings = false
				break
			}
		}

		if areSiblings {
			targetNode.Data.AppendStructure(basis.NodeDataStructure{
				Enumerative: &basis.EnumerativeStructure{IntrinsicComponentID: targetNode.ID},
			})
		}
	}

	if exemplary.Data.IsText() {
		return true
	}

	if exemplaryParent == nil {
		return true
	}
	if len(exemplaryParent.Children()) < 2 {
		return true
	}

	// A basis node reachable through more than one parent has already
	// been folded into a cycle by normalisation (internal/graph/cyclise.go),
	// which only happens for genuinely recursive shapes (a reply nesting
	// another reply, say) — so the relationship is recursive by
	// construction and needs no LLM confirmation.
	if len(targetNode.Parents()) > 1 {
		targetNode.Data.AppendStructure(basis.NodeDataStructure{
			Recursive: &basis.RecursiveStructure{
				IsRecursive: true,
				Description: "classically detected: basis node is reachable through more than one parent",
			},
		})
		return true
	}

	return false
}

// analyzeDataClassically reports whether targetNode's data is already
// fully understood without an LLM call: an element with no meaningful
// attributes carries nothing worth interpreting.
func analyzeDataClassically(homologousNodes []*DocNode) bool {
	outputNode := homologousNodes[0]
	if outputNode.Data.IsElement() && len(outputNode.Data.MeaningfulAttributes()) == 0 {
		return true
	}
	return false
}
