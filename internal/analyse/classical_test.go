// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package analyse

import (
	"testing"

	"github.com/aleutian-labs/parversion/internal/basis"
	"github.com/aleutian-labs/parversion/internal/config"
	"github.com/aleutian-labs/parversion/internal/domnode"
	"github.com/aleutian-labs/parversion/internal/graph"
)

func TestClassifyClassically_RootSentinelIsClassified(t *testing.T) {
	root := domnode.NewElement("div", nil)
	docRoot := graph.BuildFromNode(root)
	basisRoot := basis.FromDocument(docRoot)

	if !classifyClassically(basisRoot, []*DocNode{docRoot}, config.Default()) {
		t.Error("expected the root sentinel basis node to be classified")
	}
}

func TestClassifyClassically_EmptyHomologousNodesIsClassified(t *testing.T) {
	root := domnode.NewElement("div", nil)
	docRoot := graph.BuildFromNode(root)
	basisRoot := basis.FromDocument(docRoot)
	body := basisRoot.Children()[0]

	if !classifyClassically(body, nil, config.Default()) {
		t.Error("expected a node with no homologous output nodes to be classified")
	}
}

func TestClassifyClassically_BlacklistedTagIsClassified(t *testing.T) {
	root := domnode.NewElement("script", nil)
	root.Children = []*domnode.Node{domnode.NewText("alert(1)")}
	docRoot := graph.BuildFromNode(root)
	basisRoot := basis.FromDocument(docRoot)
	body := basisRoot.Children()[0]

	cfg := config.Default()
	if !classifyClassically(body, []*DocNode{docRoot}, cfg) {
		t.Error("expected a blacklisted tag to be classified")
	}
}

func TestClassifyClassically_OrdinaryElementIsNotClassified(t *testing.T) {
	root := domnode.NewElement("p", nil)
	root.Children = []*domnode.Node{domnode.NewText("hello")}
	docRoot := graph.BuildFromNode(root)
	basisRoot := basis.FromDocument(docRoot)
	body := basisRoot.Children()[0]

	if classifyClassically(body, []*DocNode{docRoot}, config.Default()) {
		t.Error("expected an ordinary <p> with homologous nodes to require further analysis")
	}
}

func TestAnalyzeStructureClassically_SiblingsWithSameParentAreEnumerative(t *testing.T) {
	item1 := domnode.NewElement("li", nil)
	item1.Children = []*domnode.Node{domnode.NewText("one")}
	item2 := domnode.NewElement("li", nil)
	item2.Children = []*domnode.Node{domnode.NewText("two")}
	list := domnode.NewElement("ul", nil)
	list.Children = []*domnode.Node{item1, item2}

	docRoot := graph.BuildFromNode(list)
	basisRoot := basis.FromDocument(docRoot)

	docItem1, docItem2 := docRoot.Children()[0], docRoot.Children()[1]
	itemBasisNode := basisRoot.Children()[0].Children()[0]

	done := analyzeStructureClassically(itemBasisNode, []*DocNode{docItem1, docItem2})
	if done {
		t.Fatal("expected element siblings under a multi-child parent to still need the LLM structure pass")
	}

	structures := itemBasisNode.Data.StructureSnapshot()
	found := false
	for _, s := range structures {
		if s.Enumerative != nil && s.Enumerative.IntrinsicComponentID == itemBasisNode.ID {
			found = true
		}
	}
	if !found {
		t.Error("expected an EnumerativeStructure to be recorded for same-parent homologous siblings")
	}
}

func TestAnalyzeStructureClassically_TextNodeReturnsTrueWithoutEnumerative(t *testing.T) {
	textNode := domnode.NewText("just text")
	wrapper := domnode.NewElement("span", nil)
	wrapper.Children = []*domnode.Node{textNode}

	docRoot := graph.BuildFromNode(wrapper)
	basisRoot := basis.FromDocument(docRoot)
	docText := docRoot.Children()[0]
	textBasisNode := basisRoot.Children()[0].Children()[0]

	if !analyzeStructureClassically(textBasisNode, []*DocNode{docText}) {
		t.Error("expected a text node to be classically resolved")
	}
	if len(textBasisNode.Data.StructureSnapshot()) != 0 {
		t.Error("expected no structure recorded for a lone text node")
	}
}

func TestAnalyzeStructureClassically_MultiParentBasisNodeIsRecursive(t *testing.T) {
	// A basis node reachable through two distinct parents can only arise
	// from genuine shape recursion (see internal/graph/cyclise.go); build
	// that shape directly rather than going through Cyclise. The exemplary
	// node needs its own parent with at least one sibling, or the
	// lone-child early return fires before the multi-parent check runs.
	comment := domnode.NewElement("comment", nil)
	comment.Children = []*domnode.Node{domnode.NewText("leaf")}
	sibling := domnode.NewElement("aside", nil)
	wrapper := domnode.NewElement("div", nil)
	wrapper.Children = []*domnode.Node{comment, sibling}

	docRoot := graph.BuildFromNode(wrapper)
	basisRoot := basis.FromDocument(docRoot)

	docComment := docRoot.Children()[0]
	commentBasisNode := basisRoot.Children()[0].Children()[0]

	otherParent := graph.New[*basis.Annotations]("other-parent-hash", basis.New(""), nil)
	commentBasisNode.AppendParent(otherParent)

	homologous := []*DocNode{docComment}

	done := analyzeStructureClassically(commentBasisNode, homologous)
	if !done {
		t.Fatal("expected the multi-parent check to classically resolve the node")
	}

	structures := commentBasisNode.Data.StructureSnapshot()
	found := false
	for _, s := range structures {
		if s.Recursive != nil && s.Recursive.IsRecursive {
			found = true
		}
	}
	if !found {
		t.Error("expected a RecursiveStructure to be recorded for a multi-parent basis node")
	}
}

func TestAnalyzeDataClassically_ElementWithNoMeaningfulAttributesIsClassified(t *testing.T) {
	el := domnode.NewElement("div", nil)
	docRoot := graph.BuildFromNode(el)

	if !analyzeDataClassically([]*DocNode{docRoot}) {
		t.Error("expected an element with no meaningful attributes to be classically resolved")
	}
}

func TestAnalyzeDataClassically_ElementWithHrefIsNotClassified(t *testing.T) {
	el := domnode.NewElement("a", map[string]string{"href": "https://example.com/x"})
	docRoot := graph.BuildFromNode(el)

	if analyzeDataClassically([]*DocNode{docRoot}) {
		t.Error("expected an element with a meaningful href to require further analysis")
	}
}
