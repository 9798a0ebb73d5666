// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package persist

import (
	"encoding/json"
	"fmt"

	"github.com/aleutian-labs/parversion/internal/basis"
	"github.com/aleutian-labs/parversion/internal/graph"
)

// serializedNode is one basis graph node flattened into id references,
// exactly as spec.md §6 specifies: "nodes by id, children/parents as id
// references".
type serializedNode struct {
	ID        string             `json:"id"`
	Hash      string             `json:"hash"`
	Data      *basis.Annotations `json:"data"`
	ParentIDs []string           `json:"parent_ids"`
	ChildIDs  []string           `json:"child_ids"`
}

// serializedGraph is the on-disk/on-wire shape of a whole basis graph.
type serializedGraph struct {
	RootID string           `json:"root_id"`
	Nodes  []serializedNode `json:"nodes"`
}

// SerializeGraph flattens a basis graph into the JSON shape spec.md §6
// names. Node identity survives the round trip via Node.ID; shape is
// recovered from ParentIDs/ChildIDs rather than nested JSON objects, so a
// cyclised graph (a node reachable from more than one parent) serialises
// without duplication.
func SerializeGraph(root *basis.Graph) ([]byte, error) {
	nodes := graph.Collect(root)
	out := serializedGraph{
		RootID: root.ID,
		Nodes:  make([]serializedNode, 0, len(nodes)),
	}

	for _, n := range nodes {
		sn := serializedNode{ID: n.ID, Hash: n.Hash, Data: n.Data}
		for _, p := range n.Parents() {
			sn.ParentIDs = append(sn.ParentIDs, p.ID)
		}
		for _, c := range n.Children() {
			sn.ChildIDs = append(sn.ChildIDs, c.ID)
		}
		out.Nodes = append(out.Nodes, sn)
	}

	data, err := json.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("persist: marshal basis graph: %w", err)
	}
	return data, nil
}

// DeserializeGraph rebuilds a basis graph from SerializeGraph's output.
// Nodes are constructed once by id (graph.NewWithID, preserving identity),
// then wired together in a second pass so forward references — a node
// whose parent appears later in the Nodes slice — resolve correctly.
func DeserializeGraph(data []byte) (*basis.Graph, error) {
	var in serializedGraph
	if err := json.Unmarshal(data, &in); err != nil {
		return nil, fmt.Errorf("persist: unmarshal basis graph: %w", err)
	}

	byID := make(map[string]*basis.Graph, len(in.Nodes))
	for _, sn := range in.Nodes {
		annotations := sn.Data
		if annotations == nil {
			annotations = &basis.Annotations{}
		}
		byID[sn.ID] = graph.NewWithID[*basis.Annotations](sn.ID, sn.Hash, annotations)
	}

	for _, sn := range in.Nodes {
		node, ok := byID[sn.ID]
		if !ok {
			continue
		}

		var parents []*basis.Graph
		for _, id := range sn.ParentIDs {
			if p, ok := byID[id]; ok {
				parents = append(parents, p)
			}
		}
		node.SetParents(parents)

		var children []*basis.Graph
		for _, id := range sn.ChildIDs {
			if c, ok := byID[id]; ok {
				children = append(children, c)
			}
		}
		node.SetChildren(children)
	}

	root, ok := byID[in.RootID]
	if !ok {
		return nil, fmt.Errorf("persist: root node %q missing from serialized graph", in.RootID)
	}
	return root, nil
}
