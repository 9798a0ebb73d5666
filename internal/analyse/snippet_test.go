// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package analyse

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/aleutian-labs/parversion/internal/domnode"
	"github.com/aleutian-labs/parversion/internal/graph"
)

func TestTakeFromEnd_NeverSplitsAMultibyteRune(t *testing.T) {
	// Each "café" ends with the two-byte rune 'é' (U+00E9); cutting at a
	// byte offset that lands mid-rune must walk forward to the next
	// boundary rather than return invalid UTF-8.
	s := strings.Repeat("café ", 20)

	for amount := 0; amount < 12; amount++ {
		got := takeFromEnd(s, amount)
		if !utf8.ValidString(got) {
			t.Fatalf("takeFromEnd(%q, %d) = %q, not valid UTF-8", s, amount, got)
		}
	}
}

func TestTakeFromStart_NeverSplitsAMultibyteRune(t *testing.T) {
	s := strings.Repeat("café ", 20)

	for amount := 0; amount < 12; amount++ {
		got := takeFromStart(s, amount)
		if !utf8.ValidString(got) {
			t.Fatalf("takeFromStart(%q, %d) = %q, not valid UTF-8", s, amount, got)
		}
	}
}

func TestTakeFromEnd_ReturnsWholeStringWhenAmountExceedsLength(t *testing.T) {
	s := "short"
	if got := takeFromEnd(s, 100); got != s {
		t.Errorf("takeFromEnd(%q, 100) = %q, want %q", s, got, s)
	}
}

func TestTakeFromStart_ReturnsWholeStringWhenAmountExceedsLength(t *testing.T) {
	s := "short"
	if got := takeFromStart(s, 100); got != s {
		t.Errorf("takeFromStart(%q, 100) = %q, want %q", s, got, s)
	}
}

func TestNodeToSnippet_WrapsElementTargetWithMarkers(t *testing.T) {
	target := domnode.NewElement("span", map[string]string{"class": "price"})
	target.Children = []*domnode.Node{domnode.NewText("$9.99")}

	before := domnode.NewElement("span", nil)
	before.Children = []*domnode.Node{domnode.NewText("before")}

	root := domnode.NewElement("div", nil)
	root.Children = []*domnode.Node{before, target}

	docRoot := graph.BuildFromNode(root)
	targetDoc := docRoot.Children()[1]

	snippet := nodeToSnippet(targetDoc, docRoot, 500)

	if !strings.Contains(snippet, "<!--Target node start -->") || !strings.Contains(snippet, "<!--Target node end -->") {
		t.Fatalf("snippet missing target markers: %q", snippet)
	}
	if !strings.Contains(snippet, `<span class="price">`) {
		t.Errorf("snippet missing target opening tag: %q", snippet)
	}
}

func TestNodeToSnippet_WrapsTextTargetWithMarkers(t *testing.T) {
	target := domnode.NewText("headline")
	wrapper := domnode.NewElement("h1", nil)
	wrapper.Children = []*domnode.Node{target}

	docRoot := graph.BuildFromNode(wrapper)
	targetDoc := docRoot.Children()[0]

	snippet := nodeToSnippet(targetDoc, docRoot, 500)

	if !strings.Contains(snippet, "<!--Target node start -->headline<!--Target node end -->") {
		t.Errorf("expected text content wrapped directly in markers, got %q", snippet)
	}
}

func TestMakeSnippets_TakesOnlyAPrefixOfHomologousNodes(t *testing.T) {
	root := domnode.NewElement("ul", nil)
	for i := 0; i < 5; i++ {
		item := domnode.NewElement("li", nil)
		item.Children = []*domnode.Node{domnode.NewText("item")}
		root.Children = append(root.Children, item)
	}

	docRoot := graph.BuildFromNode(root)
	homologous := docRoot.Children()

	snippets := makeSnippets(homologous, docRoot, 2, 500)
	if len(snippets) != 2 {
		t.Fatalf("makeSnippets returned %d snippets, want 2", len(snippets))
	}
}
