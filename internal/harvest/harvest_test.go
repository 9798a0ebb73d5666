// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package harvest

import (
	"testing"

	"github.com/aleutian-labs/parversion/internal/basis"
	"github.com/aleutian-labs/parversion/internal/content"
	"github.com/aleutian-labs/parversion/internal/domnode"
	"github.com/aleutian-labs/parversion/internal/graph"
)

// buildTree constructs a document graph from a domnode tree, returning
// the graph root alongside a same-shape basis graph so tests can attach
// interpretations to the basis node matching a given document node.
func buildTree(root *domnode.Node) (*DocNode, *BasisNode) {
	docRoot := toDocGraph(root, nil)
	basisRoot := basis.FromDocument(docRoot)
	return docRoot, basisRoot
}

func toDocGraph(n *domnode.Node, parents []*DocNode) *DocNode {
	node := graph.New[*domnode.Node](n.ShapeHash(), n.WithoutChildren(), parents)
	var children []*DocNode
	for _, c := range n.Children {
		children = append(children, toDocGraph(c, []*DocNode{node}))
	}
	node.SetChildren(children)
	return node
}

// basisNodeFor resolves the basis node matching doc, by lineage, exactly
// as the harvester itself does.
func basisNodeFor(doc *DocNode, basisRoot *BasisNode) *BasisNode {
	lineage := graph.Lineage(doc)
	node, ok := graph.Apply(basisRoot, lineage)
	if !ok {
		panic("no basis node for document node")
	}
	return node
}

// hasValueAnywhere searches a Content tree for a harvested value at any
// depth, since linear-chain collapsing means a value's exact position in
// the tree is an implementation detail tests should not over-specify.
func hasValueAnywhere(c content.Content, value string) bool {
	for _, v := range c.Values {
		if v.Value == value {
			return true
		}
	}
	for _, inner := range c.InnerContent {
		if hasValueAnywhere(inner, value) {
			return true
		}
	}
	return false
}

func TestHarvest_DiscardsContentWhoseParentIsActionLink(t *testing.T) {
	replyText := domnode.NewText("reply")
	actionLink := domnode.NewElement("a", map[string]string{"href": "reply?id=1"})
	actionLink.Children = []*domnode.Node{replyText}

	greetingText := domnode.NewText("Hello")
	span := domnode.NewElement("span", nil)
	span.Children = []*domnode.Node{greetingText}

	root := domnode.NewElement("div", nil)
	root.Children = []*domnode.Node{actionLink, span}

	docRoot, basisRoot := buildTree(root)

	docA := docRoot.Children()[0]
	docReply := docA.Children()[0]
	docSpan := docRoot.Children()[1]
	docGreeting := docSpan.Children()[0]

	basisNodeFor(docA, basisRoot).Data.AppendData(basis.NodeData{
		Name:    "action",
		Element: &basis.ElementData{Attribute: "href", IsPageLink: false},
	})
	basisNodeFor(docReply, basisRoot).Data.AppendData(basis.NodeData{
		Name: "label",
		Text: &basis.TextData{IsPrimaryContent: true},
	})
	basisNodeFor(docGreeting, basisRoot).Data.AppendData(basis.NodeData{
		Name: "greeting",
		Text: &basis.TextData{IsPrimaryContent: true},
	})

	result := Harvest(docRoot, basisRoot)

	if hasValueAnywhere(result.Content, "reply") {
		t.Error("expected \"reply\" to be discarded (its parent is an action link)")
	}
	if !hasValueAnywhere(result.Content, "Hello") {
		t.Error("expected \"Hello\" to survive harvesting")
	}
}

func TestHarvest_SplitsPeripheralContentIntoRelatedContent(t *testing.T) {
	byline := domnode.NewText("Posted by admin")
	body := domnode.NewText("Breaking news")

	article := domnode.NewElement("article", nil)
	bylineEl := domnode.NewElement("span", nil)
	bylineEl.Children = []*domnode.Node{byline}
	bodyEl := domnode.NewElement("p", nil)
	bodyEl.Children = []*domnode.Node{body}
	article.Children = []*domnode.Node{bylineEl, bodyEl}

	docRoot, basisRoot := buildTree(article)

	docByline := docRoot.Children()[0].Children()[0]
	docBody := docRoot.Children()[1].Children()[0]

	basisNodeFor(docByline, basisRoot).Data.AppendData(basis.NodeData{
		Name: "byline",
		Text: &basis.TextData{IsPrimaryContent: false, IsPeripheralContent: true},
	})
	basisNodeFor(docBody, basisRoot).Data.AppendData(basis.NodeData{
		Name: "body",
		Text: &basis.TextData{IsPrimaryContent: true},
	})

	result := Harvest(docRoot, basisRoot)

	if hasValueAnywhere(result.Content, "Posted by admin") {
		t.Error("peripheral content should not appear in primary content")
	}
	if !hasValueAnywhere(result.RelatedContent, "Posted by admin") {
		t.Error("expected peripheral content in related content")
	}
	if !hasValueAnywhere(result.Content, "Breaking news") {
		t.Error("expected primary content in content")
	}
}

func TestHarvest_EnumerativeStructureAppliesToListItems(t *testing.T) {
	item1Text := domnode.NewText("First")
	item2Text := domnode.NewText("Second")
	item1 := domnode.NewElement("li", nil)
	item1.Children = []*domnode.Node{item1Text}
	item2 := domnode.NewElement("li", nil)
	item2.Children = []*domnode.Node{item2Text}

	list := domnode.NewElement("ul", nil)
	list.Children = []*domnode.Node{item1, item2}

	docRoot, basisRoot := buildTree(list)

	docItem1 := docRoot.Children()[0]
	docItem1Text := docItem1.Children()[0]

	itemBasisNode := basisNodeFor(docItem1, basisRoot)
	itemBasisNode.Data.AppendStructure(basis.NodeDataStructure{
		Enumerative: &basis.EnumerativeStructure{IntrinsicComponentID: itemBasisNode.ID},
	})
	// Both list items share the same shape-hash lineage and therefore the
	// same basis node; one AppendData covers both occurrences.
	basisNodeFor(docItem1Text, basisRoot).Data.AppendData(basis.NodeData{
		Name: "label",
		Text: &basis.TextData{IsPrimaryContent: true},
	})

	result := Harvest(docRoot, basisRoot)

	if !hasValueAnywhere(result.Content, "First") || !hasValueAnywhere(result.Content, "Second") {
		t.Error("expected both list item labels to be harvested")
	}
}
