// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package harvest replays a basis graph against a document graph to
// extract typed content, without any further LLM calls.
//
// Grounded on original_source/src/harvest.rs's process_node/harvest, the
// one harvester lineage this repository keeps (SPEC_FULL.md Open Question
// (a)): the original's two overlapping harvesters collapse into this
// single package, and analyse.AnalyseAssociations calls the same
// Harvest function the Rust original's analyze_associations sampled
// internally.
package harvest

import (
	"github.com/aleutian-labs/parversion/internal/basis"
	"github.com/aleutian-labs/parversion/internal/content"
	"github.com/aleutian-labs/parversion/internal/domnode"
	"github.com/aleutian-labs/parversion/internal/graph"
)

// DocNode is the document graph node type harvested from.
type DocNode = graph.Node[*domnode.Node]

// BasisNode is the basis graph node type replayed against.
type BasisNode = graph.Node[*basis.Annotations]

// Result pairs a node's primary content with its peripheral ("related")
// content — the split apply.go's NodeData/IsPeripheralContent marks on
// each interpretation decide.
type Result struct {
	Content        content.Content
	RelatedContent content.Content
}

// Harvest replays basisGraph against outputTree, producing the primary and
// peripheral content trees. The returned trees mirror outputTree's shape,
// with runs of linear (single-parent, single-child) nodes collapsed into
// one Content entry per SPEC_FULL.md §4.5.
func Harvest(outputTree *DocNode, basisGraph *BasisNode) Result {
	out := content.Content{ID: outputTree.ID}
	related := content.Content{ID: outputTree.ID}

	recurse(outputTree, basisGraph, &out, &related)

	content.Postprocess(&out)
	content.Postprocess(&related)

	return Result{Content: out, RelatedContent: related}
}

func recurse(outputNode *DocNode, basisGraph *BasisNode, out, related *content.Content) {
	for outputNode.IsLinear() {
		processNode(outputNode, basisGraph, out, related)
		outputNode = outputNode.Children()[0]
	}
	processNode(outputNode, basisGraph, out, related)

	for _, child := range outputNode.Children() {
		childOut := content.Content{ID: child.ID}
		childRelated := content.Content{ID: child.ID}

		recurse(child, basisGraph, &childOut, &childRelated)

		out.InnerContent = append(out.InnerContent, childOut)
		related.InnerContent = append(related.InnerContent, childRelated)
	}
}

// processNode resolves outputNode's basis node via its lineage and applies
// its accumulated NodeData/NodeDataStructure onto out/related. A node
// whose parent is interpreted as an action-link element (e.g.
// <a href="reply?id=1">reply</a>) is discarded entirely: it describes the
// action, not content worth harvesting.
func processNode(outputNode *DocNode, basisGraph *BasisNode, out, related *content.Content) {
	lineage := graph.Lineage(outputNode)
	basisNode, ok := graph.Apply(basisGraph, lineage)
	if !ok {
		return
	}

	if parents := outputNode.Parents(); len(parents) > 0 {
		parentLineage := graph.Lineage(parents[0])
		if parentBasisNode, ok := graph.Apply(basisGraph, parentLineage); ok {
			if isActionLinkParent(parentBasisNode) {
				return
			}
		}
	}

	applyNodeData(basisNode, outputNode, out, related)
	applyNodeStructure(basisNode, outputNode, out, related)
}

func isActionLinkParent(parentBasisNode *BasisNode) bool {
	for _, data := range parentBasisNode.Data.DataSnapshot() {
		if data.Element != nil && data.Element.Attribute == "href" && !data.Element.IsPageLink {
			return true
		}
	}
	return false
}

func applyNodeData(basisNode *BasisNode, outputNode *DocNode, out, related *content.Content) {
	for _, nodeData := range basisNode.Data.DataSnapshot() {
		value, ok := basis.ApplyData(nodeData, outputNode)
		if !ok {
			continue
		}

		isPeripheral := false
		if nodeData.Text != nil {
			isPeripheral = nodeData.Text.IsPeripheralContent
		} else if nodeData.Element != nil {
			isPeripheral = nodeData.Element.IsPeripheralContent
		}

		if isPeripheral {
			related.Values = append(related.Values, value)
		} else {
			out.Values = append(out.Values, value)
		}
	}
}

func applyNodeStructure(basisNode *BasisNode, outputNode *DocNode, out, related *content.Content) {
	for _, structure := range basisNode.Data.StructureSnapshot() {
		if structure.Associative != nil {
			applyAssociative(*structure.Associative, outputNode, out)
			continue
		}

		meta := basis.ApplyStructure(structure)
		if meta.Recursive != nil {
			out.Meta.Recursive = meta.Recursive
			related.Meta.Recursive = meta.Recursive
		}
		if meta.Enumerative != nil {
			out.Meta.Enumerative = meta.Enumerative
			related.Meta.Enumerative = meta.Enumerative
		}
	}
}

// applyAssociative records which other subgraphs outputNode's own subgraph
// hash is grouped with, when any configured group contains it.
func applyAssociative(associative basis.AssociativeStructure, outputNode *DocNode, out *content.Content) {
	subgraphHash := graph.Hash(outputNode)

	var associated []string
	for _, group := range associative.Groups {
		inGroup := false
		for _, h := range group.SubgraphHashes {
			if h == subgraphHash {
				inGroup = true
				break
			}
		}
		if !inGroup {
			continue
		}
		for _, h := range group.SubgraphHashes {
			if h != subgraphHash {
				associated = append(associated, h)
			}
		}
	}

	if len(associated) > 0 {
		out.Meta.Associative = &content.ContentMetadataAssociative{
			Subgraph:            subgraphHash,
			AssociatedSubgraphs: associated,
		}
	}
}
