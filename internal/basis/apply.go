// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package basis

import (
	"strings"

	"github.com/aleutian-labs/parversion/internal/domnode"
	"github.com/aleutian-labs/parversion/internal/graph"
)

// ContentValue is the yield of applying one NodeData interpretation to a
// concrete output node: a named, typed scrap of content ready for
// internal/content to assemble into a harvest.
//
// Grounded on original_source/src/node_data.rs's apply_data and its
// ContentValueMetadata.
type ContentValue struct {
	Name  string
	Value string
	Meta  ContentValueMeta
}

// ContentValueMeta carries the flags apply_data derives from the owning
// TextData/ElementData alongside the extracted value.
type ContentValueMeta struct {
	IsTitle          bool
	IsPrimaryContent bool
	IsURL            bool
	Description      string
}

// Value renders the interpretation's value out of a concrete output node:
// for a text interpretation, the node's trimmed rendered text; for an
// element interpretation, the named attribute's value, trimmed the same
// way. Trimming strips only spaces and newlines, mirroring the original's
// use of `trim_matches` against `[' ', '\n']` rather than all whitespace.
func (d NodeData) Value(outputNode *graph.Node[*domnode.Node]) (string, bool) {
	switch {
	case d.Text != nil:
		return trimSpaceNewline(outputNode.Data.String()), true
	case d.Element != nil:
		v, ok := outputNode.Data.GetAttributeValue(d.Element.Attribute)
		if !ok {
			return "", false
		}
		return trimSpaceNewline(v), true
	default:
		return "", false
	}
}

func trimSpaceNewline(s string) string {
	return strings.Trim(s, " \n")
}

// ApplyData is the Go port of apply_data: it decides whether an
// interpretation yields visible content for a given output node, and if
// so builds the ContentValue. It returns (_, false) when the
// interpretation is scaffolding — presentational text, a non-navigational
// href, an advertisement, or a label — exactly the discard order the
// original enforces.
func ApplyData(data NodeData, outputNode *graph.Node[*domnode.Node]) (ContentValue, bool) {
	if t := data.Text; t != nil {
		if t.IsPresentational {
			return ContentValue{}, false
		}
	}
	if e := data.Element; e != nil {
		if e.Attribute == "href" && !e.IsPageLink {
			return ContentValue{}, false
		}
	}
	if isAdvertisement(data) {
		return ContentValue{}, false
	}
	if t := data.Text; t != nil && t.IsLabel {
		return ContentValue{}, false
	}

	value, ok := data.Value(outputNode)
	if !ok {
		return ContentValue{}, false
	}

	return ContentValue{
		Name:  data.Name,
		Value: value,
		Meta:  buildMeta(data),
	}, true
}

func isAdvertisement(data NodeData) bool {
	if data.Text != nil && data.Text.IsAdvertisement {
		return true
	}
	if data.Element != nil && data.Element.IsAdvertisement {
		return true
	}
	return false
}

func buildMeta(data NodeData) ContentValueMeta {
	meta := ContentValueMeta{}
	switch {
	case data.Text != nil:
		meta.IsTitle = data.Text.IsTitle
		meta.IsPrimaryContent = data.Text.IsPrimaryContent
		meta.Description = data.Text.Description
	case data.Element != nil:
		meta.IsURL = data.Element.Attribute == "href"
		meta.Description = data.Element.Description
	}
	return meta
}
