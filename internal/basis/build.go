// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package basis

import (
	"github.com/aleutian-labs/parversion/internal/domnode"
	"github.com/aleutian-labs/parversion/internal/graph"
)

// Graph is a basis graph: a root-sentinel Node[*Annotations] whose shape
// mirrors a normalised document graph, but whose payload is a mutable
// interpretation store instead of raw DOM data.
type Graph = graph.Node[*Annotations]

// FromDocument builds a fresh, unannotated basis graph from a normalised
// document graph (the output of graph.Prune + graph.Cyclise). Every
// document node gets a corresponding basis node carrying an empty
// Annotations value and the same shape-hash, wrapped under a root
// sentinel exactly as internal/graph.Apply expects.
//
// Grounded on original_source/src/graph_node/mod.rs's from_xml, which
// builds the graph_node tree directly off the parsed document — the Go
// split keeps the document graph (internal/graph over domnode.Node) and
// the basis graph (internal/graph over *Annotations) as distinct
// instantiations of the same generic Node type, rather than mutating the
// document graph's payload in place.
func FromDocument(doc *graph.Node[*domnode.Node]) *Graph {
	sentinel := graph.FromVoid[*Annotations](New)
	body := copyShape(doc, nil)
	sentinel.AppendChild(body)
	body.SetParents([]*Graph{sentinel})
	return sentinel
}

func copyShape(doc *graph.Node[*domnode.Node], parents []*Graph) *Graph {
	node := graph.New[*Annotations](doc.Hash, &Annotations{}, parents)
	var children []*Graph
	for _, child := range doc.Children() {
		children = append(children, copyShape(child, []*Graph{node}))
	}
	node.SetChildren(children)
	return node
}

// Merge absorbs a second document's basis shape into an existing basis
// graph, growing it to cover shapes the first document never exercised.
// It operates directly on the sentinel's primary child, mirroring
// internal/graph.Absorb's recipient/donor shape.
func Merge(existing *Graph, doc *graph.Node[*domnode.Node]) {
	donor := copyShape(doc, nil)
	if len(existing.Children()) == 0 {
		existing.AppendChild(donor)
		donor.SetParents([]*Graph{existing})
		return
	}
	graph.Absorb(existing, donor, New)
}
