// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"fmt"
	"os"

	"github.com/aleutian-labs/parversion/internal/basis"
	"github.com/aleutian-labs/parversion/internal/domnode"
	"github.com/aleutian-labs/parversion/internal/graph"
)

// loadDocumentGraph reads a normalised-XML file and builds its document
// graph, without deriving a basis graph from it.
func loadDocumentGraph(path string) (*graph.Node[*domnode.Node], error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	root, err := domnode.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", graph.ErrParse, err)
	}

	return graph.BuildFromNode(root), nil
}

// loadDocument reads a normalised-XML file and builds its document graph
// and basis graph, the common first step of build/interpret.
func loadDocument(path string) (docRoot *graph.Node[*domnode.Node], basisRoot *basis.Graph, err error) {
	docRoot, err = loadDocumentGraph(path)
	if err != nil {
		return nil, nil, err
	}
	basisRoot = basis.FromDocument(docRoot)
	return docRoot, basisRoot, nil
}

// documentFeatureHash derives a default feature-hash set from a document's
// top-level shape when the caller does not supply one with --feature-hash:
// the shape hashes of the basis root's immediate children, which is stable
// across documents sharing the same outer template.
func documentFeatureHash(basisRoot *basis.Graph) []string {
	var hashes []string
	for _, child := range basisRoot.Children() {
		hashes = append(hashes, child.Hash)
	}
	if len(hashes) == 0 {
		hashes = []string{basisRoot.Hash}
	}
	return hashes
}
