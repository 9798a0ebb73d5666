// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package domnode

import (
	"crypto/sha256"
	"encoding/hex"
	"net/url"
	"sort"
	"strings"
)

// textNodeHash is the fixed sentinel shape-hash shared by every text node:
// text carries no structural identity of its own, only its position in the
// tree does.
const textNodeHash = "7a5f1b4e5d8c0a3f9e2d6b71c4a08f5e3d9b2c6a1f4e7d0b3c8a5f2e9d6c1b40"

// ShapeHash returns the 256-bit structural digest of n, hex-encoded.
//
// A text node always hashes to the same sentinel. An element node hashes
// the sorted concatenation of its tag, one token per attribute name, one
// "CLASS" token per class (classes are counted, not named — visually
// distinct classes collide on purpose), and, for a relative href, one
// token per query parameter name (absolute hrefs contribute nothing: they
// point off-site and carry no structural signal for this page's shape).
func (n *Node) ShapeHash() string {
	if n.isText {
		return textNodeHash
	}

	items := []string{"TAG:" + n.Tag}
	for attr, value := range n.Attrs {
		items = append(items, "ATTRIBUTE:"+attr)

		switch attr {
		case "href":
			for _, part := range urlToHashParts(value) {
				items = append(items, "HREF:"+part)
			}
		case "class":
			for range strings.Fields(value) {
				items = append(items, "CLASS")
			}
		}
	}

	sort.Strings(items)

	sum := sha256.Sum256([]byte(strings.Join(items, "")))
	return hex.EncodeToString(sum[:])
}

// MeaningfulAttributes returns the subset of an element's attributes
// eligible to become element NodeData: "href" when it passes
// isMeaningfulHref, and "title" unconditionally. All other attributes are
// discarded upstream of the analyser.
func (n *Node) MeaningfulAttributes() map[string]string {
	out := map[string]string{}
	if n.isText {
		return out
	}
	for attr, value := range n.Attrs {
		if attr == "href" && isMeaningfulHref(value) {
			out[attr] = value
		}
		if attr == "title" {
			out[attr] = value
		}
	}
	return out
}

// isMeaningfulHref reports whether an href value is structurally
// interesting: not a javascript: pseudo-protocol, not a same-page fragment
// link, and either an absolute URL, a parseable relative URI, or one of
// the mailto:/tel:/sms: schemes.
func isMeaningfulHref(value string) bool {
	leadTrimmed := strings.TrimLeft(value, " \t\r\n")
	if strings.HasPrefix(strings.ToLower(leadTrimmed), "javascript:") {
		return false
	}
	if strings.HasPrefix(leadTrimmed, "#") {
		return false
	}
	if strings.HasPrefix(value, "mailto:") || strings.HasPrefix(value, "tel:") || strings.HasPrefix(value, "sms:") {
		return true
	}
	_, err := url.Parse(value)
	return err == nil
}

// urlToHashParts returns the query parameter names of a relative URL, or
// nil for an absolute URL (which contributes nothing to the shape-hash).
func urlToHashParts(raw string) []string {
	parsed, err := url.Parse(raw)
	if err != nil {
		return nil
	}
	if parsed.IsAbs() {
		return nil
	}
	if parsed.RawQuery == "" {
		return nil
	}

	var out []string
	for _, param := range strings.Split(parsed.RawQuery, "&") {
		if param == "" {
			continue
		}
		if name, _, found := strings.Cut(param, "="); found {
			out = append(out, name)
		} else {
			out = append(out, param)
		}
	}
	return out
}
