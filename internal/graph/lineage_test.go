// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aleutian-labs/parversion/internal/domnode"
)

func basisFactory(description string) *domnode.Node {
	return domnode.NewText(description)
}

// buildBasisGraph wraps a document graph in a root sentinel, the shape
// internal/graph.Apply expects (basisRoot.Children()[0] is the primary
// node lineage application starts from).
func buildBasisGraph(xml string) (*Node[*domnode.Node], error) {
	body, err := Build(xml)
	if err != nil {
		return nil, err
	}
	sentinel := FromVoid[*domnode.Node](basisFactory)
	sentinel.AppendChild(body)
	body.SetParents([]*Node[*domnode.Node]{sentinel})
	return sentinel, nil
}

// TestApply_ResolvesMatchingLineage is spec.md §8's I4 property: applying
// an output-tree node's own lineage against the basis graph it was built
// from must resolve to the basis node governing it.
func TestApply_ResolvesMatchingLineage(t *testing.T) {
	basis, err := buildBasisGraph(`<div><p>a</p><span>b</span></div>`)
	require.NoError(t, err, "buildBasisGraph()")

	// An output tree built from the very same shape (and, unlike a basis
	// graph, not wrapped in a root sentinel) should resolve every node's
	// lineage back to its corresponding basis node.
	output, err := Build(`<div><p>x</p><span>y</span></div>`)
	require.NoError(t, err, "Build()")

	target := output.Children()[0] // the <p>
	lineage := Lineage(target)

	resolved, ok := Apply(basis, lineage)
	require.True(t, ok, "Apply() returned no match for a lineage built from an identically-shaped tree")
	assert.Equal(t, target.Hash, resolved.Hash, "resolved basis node hash should match target's")
}

// TestApply_LineageMiss is spec.md §8 scenario 5: a lineage with a hash
// sequence absent from the basis graph yields "no match", not a crash.
func TestApply_LineageMiss(t *testing.T) {
	basis, err := buildBasisGraph(`<div><p>a</p></div>`)
	require.NoError(t, err, "buildBasisGraph()")

	output, err := Build(`<table><tr><td>novel</td></tr></table>`)
	require.NoError(t, err, "Build()")

	novel := output.Children()[0].Children()[0] // <td>
	lineage := Lineage(novel)

	_, ok := Apply(basis, lineage)
	assert.False(t, ok, "expected Apply() to report no match for a lineage absent from the basis graph")
}

// TestLineage_RootToNodeInclusive checks the lineage sequence starts at
// the root hash and ends at the target node's own hash.
func TestLineage_RootToNodeInclusive(t *testing.T) {
	root, err := Build(`<div><p><span>leaf</span></p></div>`)
	require.NoError(t, err, "Build()")
	leaf := root.Children()[0].Children()[0]

	lineage := Lineage(leaf)
	require.Len(t, lineage, 3)
	assert.Equal(t, root.Hash, lineage[0], "lineage should start at the root hash")
	assert.Equal(t, leaf.Hash, lineage[len(lineage)-1], "lineage should end at the leaf's own hash")
}

// TestFindHomologousNodes_EmptyWhenNoneMatch ensures the BFS-based
// collector returns nil rather than panicking when nothing resolves to
// the target.
func TestFindHomologousNodes_EmptyWhenNoneMatch(t *testing.T) {
	basis, err := buildBasisGraph(`<div><p>a</p></div>`)
	require.NoError(t, err, "buildBasisGraph()")
	unrelatedOutput, err := Build(`<section><em>x</em></section>`)
	require.NoError(t, err, "Build()")

	target := basis.Children()[0].Children()[0]
	matches := FindHomologousNodes(target, basis, unrelatedOutput)
	assert.Empty(t, matches)
}
