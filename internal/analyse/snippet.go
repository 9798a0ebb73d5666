// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package analyse implements the analyser (SPEC_FULL.md §4.4): classical
// rule-based shortcuts that decide node roles without an LLM call, and the
// LLM-driven structure/data interpretation paths that run for whatever
// survives those classical gates.
package analyse

import (
	"unicode/utf8"

	"github.com/aleutian-labs/parversion/internal/domnode"
	"github.com/aleutian-labs/parversion/internal/graph"
)

// DocNode is the document graph node type the analyser walks: raw DOM data
// threaded through internal/graph's generic node.
type DocNode = graph.Node[*domnode.Node]

// makeSnippets renders up to targetNodeExamplesCount of homologousNodes
// (a plain prefix slice, not a random sample, matching the original's
// homologous_nodes[..target_node_examples_count]) into example snippets for
// an LLM prompt.
func makeSnippets(homologousNodes []*DocNode, outputTree *DocNode, targetNodeExamplesCount, contextLength int) []string {
	n := targetNodeExamplesCount
	if n > len(homologousNodes) {
		n = len(homologousNodes)
	}

	snippets := make([]string, 0, n)
	for _, node := range homologousNodes[:n] {
		snippets = append(snippets, nodeToSnippet(node, outputTree, contextLength))
	}
	return snippets
}

// nodeToSnippet renders a single occurrence of node within outputTree as an
// XML fragment with the node itself wrapped in target-node markers and the
// surrounding context truncated to contextLength bytes on each side.
func nodeToSnippet(node, outputTree *DocNode, contextLength int) string {
	parts := buildXMLWithTargetNode(outputTree, node)

	if node.Data.IsText() {
		return takeFromEnd(parts.before, contextLength) +
			"<!--Target node start -->" + parts.targetChildContent + "<!--Target node end -->" +
			takeFromStart(parts.after, contextLength)
	}

	afterStartTag := parts.targetChildContent + parts.targetClosing + parts.after
	return takeFromEnd(parts.before, contextLength) +
		"<!--Target node start -->" + parts.targetOpening + "<!--Target node end -->" +
		takeFromStart(afterStartTag, contextLength)
}

// xmlSplit is the five-part split of a document rendered around one target
// node, mirroring build_xml_with_target_node's tuple return.
type xmlSplit struct {
	before             string
	targetOpening      string
	targetChildContent string
	targetClosing      string
	after              string
}

// buildXMLWithTargetNode walks outputTree depth-first, accumulating markup
// into whichever of the five buckets is active: everything before the
// target node is found, the target's own opening tag, its content (the
// text itself for a text target, the rendered children for an element
// target), its closing tag, and everything after. Node identity is
// compared by pointer.
func buildXMLWithTargetNode(outputTree, target *DocNode) xmlSplit {
	var split xmlSplit
	found := false
	recurseXMLSplit(outputTree, target, &found, &split)
	return split
}

func recurseXMLSplit(current, target *DocNode, found *bool, split *xmlSplit) {
	data := current.Data

	if data.IsElement() {
		opening := data.OpeningTag()
		closing := data.ClosingTag()
		isTarget := current == target

		switch {
		case *found:
			split.after += opening
		case isTarget:
			*found = true
			split.targetOpening += opening
			var inner xmlSplit
			innerFound := true
			for _, child := range current.Children() {
				recurseXMLSplit(child, target, &innerFound, &inner)
			}
			split.targetChildContent += inner.after
			split.targetClosing += closing
			return
		default:
			split.before += opening
		}

		for _, child := range current.Children() {
			recurseXMLSplit(child, target, found, split)
		}

		switch {
		case *found:
			split.after += closing
		default:
			split.before += closing
		}
		return
	}

	text := data.Text
	switch {
	case *found:
		split.after += text
	case current == target:
		*found = true
		split.targetChildContent += text
	default:
		split.before += text
	}
}

// takeFromEnd returns the trailing amount bytes of s, walking forward from
// the computed cut point to the next UTF-8 character boundary so a
// multibyte rune straddling the cut is never split.
func takeFromEnd(s string, amount int) string {
	length := len(s)
	if amount >= length {
		return s
	}

	start := length - amount
	for start < length && !utf8.RuneStart(s[start]) {
		start++
	}
	return s[start:]
}

// takeFromStart returns the leading amount bytes of s, walking backward
// from the computed cut point to the previous UTF-8 character boundary.
func takeFromStart(s string, amount int) string {
	if amount >= len(s) {
		return s
	}

	end := amount
	for end > 0 && !utf8.RuneStart(s[end]) {
		end--
	}
	return s[:end]
}
