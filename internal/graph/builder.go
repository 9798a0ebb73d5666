// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package graph

import "github.com/aleutian-labs/parversion/internal/domnode"

// Build parses a normalised-XML document and constructs its document graph:
// one Node[*domnode.Node] per DOM node, each with a fresh id and a
// shape-hash, parented depth-first exactly as the builder-parent that
// materialised it.
//
// Grounded on services/trace/graph/builder.go's recursive-descent id
// assignment and original_source/src/graph_node/mod.rs's
// GraphNode::from_xml / build_graph.
func Build(xml string) (*Node[*domnode.Node], error) {
	root, err := domnode.ParseString(xml)
	if err != nil {
		return nil, err
	}
	return buildFromDOM(root, nil), nil
}

// BuildFromNode builds a document graph from an already-parsed DOM tree.
func BuildFromNode(root *domnode.Node) *Node[*domnode.Node] {
	return buildFromDOM(root, nil)
}

func buildFromDOM(n *domnode.Node, parents []*Node[*domnode.Node]) *Node[*domnode.Node] {
	node := New(n.ShapeHash(), n.WithoutChildren(), parents)

	children := make([]*Node[*domnode.Node], 0, len(n.Children))
	for _, child := range n.Children {
		children = append(children, buildFromDOM(child, []*Node[*domnode.Node]{node}))
	}
	node.SetChildren(children)

	return node
}
