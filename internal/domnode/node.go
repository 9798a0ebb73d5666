// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package domnode models a single parsed DOM node — element or text — and
// the structural shape-hash used to recognise recurring node shapes across
// a site's pages.
//
// A Node is the payload carried by internal/graph.Node[T] before a document
// graph is normalised into a basis graph; it is deliberately ignorant of its
// position in any graph (no parent/child graph pointers live here, only the
// node's own children as parsed from the document).
package domnode

import (
	"encoding/xml"
	"fmt"
	"io"
	"sort"
	"strings"
)

// Node is either a text node (IsText) or an element node (IsElement), never
// both.
type Node struct {
	Tag      string
	Attrs    map[string]string
	Children []*Node
	Text     string
	isText   bool
}

// NewText builds a text node.
func NewText(text string) *Node {
	return &Node{isText: true, Text: text}
}

// NewElement builds an element node with no children.
func NewElement(tag string, attrs map[string]string) *Node {
	if attrs == nil {
		attrs = map[string]string{}
	}
	return &Node{Tag: tag, Attrs: attrs}
}

// IsText reports whether this is a text node.
func (n *Node) IsText() bool { return n.isText }

// IsElement reports whether this is an element node.
func (n *Node) IsElement() bool { return !n.isText }

// GetAttributeValue returns an element's attribute value. Always "", false
// on a text node.
func (n *Node) GetAttributeValue(name string) (string, bool) {
	if n.isText {
		return "", false
	}
	v, ok := n.Attrs[name]
	return v, ok
}

// WithoutChildren returns a shallow copy of n with its children dropped,
// mirroring the graph invariant that a node's own data excludes its
// children (children live as separate graph nodes).
func (n *Node) WithoutChildren() *Node {
	cp := *n
	cp.Children = nil
	return &cp
}

// Describe satisfies internal/graph.Payload; it renders the node (without
// recursing into a huge subtree it does not itself retain structurally —
// the one-line log-friendly description is just the node's own markup).
func (n *Node) Describe() string {
	return n.String()
}

// String renders the node as XML: a trimmed text run for text nodes, or a
// self-closing or open/children/close element otherwise. Attributes are
// emitted in sorted order for deterministic output.
func (n *Node) String() string {
	if n.isText {
		return strings.Trim(n.Text, " \n")
	}
	var b strings.Builder
	n.writeXML(&b)
	return b.String()
}

func (n *Node) writeXML(b *strings.Builder) {
	b.WriteString("<")
	b.WriteString(n.Tag)
	b.WriteString(n.attrString())
	if len(n.Children) == 0 {
		b.WriteString("/>")
		return
	}
	b.WriteString(">")
	for _, c := range n.Children {
		if c.isText {
			b.WriteString(c.Text)
		} else {
			c.writeXML(b)
		}
	}
	b.WriteString("</")
	b.WriteString(n.Tag)
	b.WriteString(">")
}

func (n *Node) attrString() string {
	keys := sortedAttrNames(n.Attrs)
	var b strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%q", k, n.Attrs[k])
	}
	return b.String()
}

func sortedAttrNames(attrs map[string]string) []string {
	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// OpeningTag renders just this element's opening tag with sorted,
// quote-escaped attributes — used when building analyser snippets, where
// determinism of the rendered tag matters more than round-trip fidelity.
func (n *Node) OpeningTag() string {
	if n.isText {
		return ""
	}
	return "<" + n.Tag + n.attrString() + ">"
}

// ClosingTag renders this element's closing tag.
func (n *Node) ClosingTag() string {
	if n.isText {
		return ""
	}
	return "</" + n.Tag + ">"
}

// Parse decodes a well-formed XML document (or fragment) into a Node tree.
// It is panic-free on malformed input, surfacing ErrParse instead.
func Parse(r io.Reader) (root *Node, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			root, err = nil, fmt.Errorf("%w: %v", ErrParse, rec)
		}
	}()

	dec := xml.NewDecoder(r)
	dec.Strict = false

	var stack []*Node
	for {
		tok, tokErr := dec.Token()
		if tokErr == io.EOF {
			break
		}
		if tokErr != nil {
			return nil, fmt.Errorf("%w: %v", ErrParse, tokErr)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			node := &Node{Tag: t.Name.Local, Attrs: map[string]string{}}
			for _, a := range t.Attr {
				node.Attrs[a.Name.Local] = a.Value
			}
			if len(stack) > 0 {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, node)
			}
			stack = append(stack, node)

		case xml.EndElement:
			if len(stack) == 0 {
				return nil, fmt.Errorf("%w: unmatched closing tag %q", ErrParse, t.Name.Local)
			}
			finished := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if len(stack) == 0 {
				root = finished
			}

		case xml.CharData:
			if len(stack) == 0 {
				continue
			}
			text := string(t)
			if strings.TrimSpace(text) == "" {
				continue
			}
			parent := stack[len(stack)-1]
			parent.Children = append(parent.Children, NewText(text))
		}
	}

	if root == nil {
		return nil, fmt.Errorf("%w: empty document", ErrParse)
	}
	return root, nil
}

// ParseString is a convenience wrapper around Parse for in-memory XML.
func ParseString(s string) (*Node, error) {
	return Parse(strings.NewReader(s))
}
