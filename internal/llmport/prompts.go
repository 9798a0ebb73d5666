// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package llmport

import (
	"encoding/json"
	"fmt"
	"strings"
)

// StructureResult is the decoded response to a structure-interpretation
// prompt: whether the node's repeated-shape recurrence represents a
// genuinely recursive data relationship (a comment thread nesting
// replies, say) as opposed to incidental structural repetition.
//
// Grounded on original_source/src/graph_node/analysis.rs's
// analyze_structure, which wraps interpret_data_structure's result
// directly in NodeDataStructure{recursive: Some(...)}.
type StructureResult struct {
	Recursive struct {
		IsRecursive bool   `json:"is_recursive"`
		Description string `json:"description"`
	} `json:"recursive"`
}

// TextDataResult is the decoded response to a text-data prompt. Name is a
// short machine-friendly field name the LLM assigns the content (e.g.
// "title", "author") — the same name later surfaces as the key on the
// harvested ContentValue.
type TextDataResult struct {
	Name                string `json:"name"`
	IsPresentational    bool   `json:"is_presentational"`
	IsTitle             bool   `json:"is_title"`
	IsPrimaryContent    bool   `json:"is_primary_content"`
	IsPeripheralContent bool   `json:"is_peripheral_content"`
	IsAdvertisement     bool   `json:"is_advertisement"`
	IsLabel             bool   `json:"is_label"`
	Description         string `json:"description"`
}

// ElementDataResult is the decoded response to an element-data prompt:
// one entry per meaningful attribute the node carries.
type ElementDataResult struct {
	Name                string `json:"name"`
	Attribute           string `json:"attribute"`
	IsPageLink          bool   `json:"is_page_link"`
	IsPeripheralContent bool   `json:"is_peripheral_content"`
	IsAdvertisement     bool   `json:"is_advertisement"`
	Description         string `json:"description"`
}

// BuildStructurePrompt builds the prompt asking whether a repeated node
// shape, shown via a handful of example snippets, represents a recursive
// data relationship.
func BuildStructurePrompt(snippets []string) string {
	var b strings.Builder
	b.WriteString("You are analyzing a repeating structural element found in HTML documents scraped from a website. ")
	b.WriteString("The following snippets each show one occurrence of the repeating element, marked between ")
	b.WriteString("<!--Target node start --> and <!--Target node end -->, along with surrounding context. ")
	b.WriteString("Determine whether this repetition represents a recursive data relationship (for example, nested replies in a comment thread, where the same shape can nest inside itself to an arbitrary depth) ")
	b.WriteString("as opposed to a flat, non-recursive structure. ")
	b.WriteString(`Respond with JSON only: {"recursive": {"is_recursive": bool, "description": "brief explanation"}}` + "\n\n")
	writeSnippets(&b, snippets)
	return b.String()
}

// BuildTextDataPrompt builds the prompt asking what role a text node
// plays in the document.
func BuildTextDataPrompt(snippets []string) string {
	var b strings.Builder
	b.WriteString("You are analyzing a text node found at a consistent structural position across pages of a website. ")
	b.WriteString("The following snippets each show one occurrence of the text node, marked between ")
	b.WriteString("<!--Target node start --> and <!--Target node end -->, along with surrounding context. ")
	b.WriteString("Classify the node's role and assign it a short machine-friendly field name (e.g. \"title\", \"author\", \"published_at\"). ")
	b.WriteString(`Respond with JSON only: {"name": string, "is_presentational": bool, "is_title": bool, "is_primary_content": bool, "is_peripheral_content": bool, "is_advertisement": bool, "is_label": bool, "description": "brief explanation"}` + "\n\n")
	b.WriteString("is_presentational means the node is purely decorative whitespace or styling filler with no semantic content. ")
	b.WriteString("is_label means the node names or introduces adjacent content (e.g. \"Posted by\") rather than being the content itself.\n\n")
	writeSnippets(&b, snippets)
	return b.String()
}

// BuildElementDataPrompt builds the prompt asking which of an element's
// meaningful attributes carry content worth harvesting.
func BuildElementDataPrompt(meaningfulAttributes []string, snippets []string) string {
	var b strings.Builder
	b.WriteString("You are analyzing an HTML element found at a consistent structural position across pages of a website. ")
	b.WriteString(fmt.Sprintf("Its meaningful attributes are: %s. ", strings.Join(meaningfulAttributes, ", ")))
	b.WriteString("The following snippets each show one occurrence of the element, marked between ")
	b.WriteString("<!--Target node start --> and <!--Target node end -->, along with surrounding context. ")
	b.WriteString("For each meaningful attribute that carries content worth harvesting, classify its role and assign it a short machine-friendly field name. ")
	b.WriteString(`Respond with JSON only: {"attributes": [{"name": string, "attribute": string, "is_page_link": bool, "is_peripheral_content": bool, "is_advertisement": bool, "description": "brief explanation"}]}` + "\n\n")
	b.WriteString("is_page_link applies only to href attributes that navigate to another page of actual content, as opposed to action links (reply, vote, share) or fragment/script links.\n\n")
	writeSnippets(&b, snippets)
	return b.String()
}

func writeSnippets(b *strings.Builder, snippets []string) {
	for i, s := range snippets {
		fmt.Fprintf(b, "Example %d:\n%s\n\n", i+1, s)
	}
}

// DecodeStructureResult parses a raw Port response into a StructureResult.
func DecodeStructureResult(raw json.RawMessage) (StructureResult, error) {
	var result StructureResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return StructureResult{}, fmt.Errorf("%w: %v", ErrSchema, err)
	}
	return result, nil
}

// DecodeTextDataResult parses a raw Port response into a TextDataResult.
func DecodeTextDataResult(raw json.RawMessage) (TextDataResult, error) {
	var result TextDataResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return TextDataResult{}, fmt.Errorf("%w: %v", ErrSchema, err)
	}
	return result, nil
}

// ElementDataResponse wraps the decoded list an element-data prompt
// returns.
type ElementDataResponse struct {
	Attributes []ElementDataResult `json:"attributes"`
}

// DecodeElementDataResult parses a raw Port response into the list of
// per-attribute interpretations.
func DecodeElementDataResult(raw json.RawMessage) ([]ElementDataResult, error) {
	var result ElementDataResponse
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSchema, err)
	}
	return result.Attributes, nil
}

// documentTypePromptHeader is the classification prompt asked once per
// document, grounded on
// original_source/src/prompts/document_types.rs's DOCUMENT_TYPES_PROMPT
// (rewritten in the Go idiom of this repository rather than copied
// verbatim).
const documentTypePromptHeader = `Classify the following document sample against each of these document types, setting is_present to true only when the document's own content (not links or references to other documents) matches the criteria:

{"long_form":{"is_present":false,"criteria":"large blocks of text split into sections or chapters, like a novel or textbook"},
"chat":{"is_present":false,"criteria":"small to medium user-generated text blocks such as forum posts, article comments, or chat messages"},
"weather":{"is_present":false,"criteria":"daily or weekly forecasts for a city or region"},
"business_details":{"is_present":false,"criteria":"information about a business such as opening hours or address"},
"curated_listing":{"is_present":false,"criteria":"a user-generated listing of links from various sources, possibly with voting, ranking, tags, or discussion references"},
"event_listing":{"is_present":false,"criteria":"a listing of events such as concerts or meetups"},
"job_listing":{"is_present":false,"criteria":"a listing of job postings"},
"real_estate_listing":{"is_present":false,"criteria":"a listing of properties for sale or rent"},
"search_engine_listing":{"is_present":false,"criteria":"a listing of search result links"}}

Respond with the same JSON shape, each is_present updated, and a sibling "justification" key added beside each is_present. Respond with JSON only, no preamble or summary.

The document to analyze:
`

// BuildDocumentTypePrompt builds the document-type classification prompt
// for a sample of document text.
func BuildDocumentTypePrompt(sample string) string {
	return documentTypePromptHeader + sample
}

// DocumentTypeEntry is one document-type classification verdict.
type DocumentTypeEntry struct {
	IsPresent     bool   `json:"is_present"`
	Criteria      string `json:"criteria"`
	Justification string `json:"justification"`
}

// DecodeDocumentTypeResult parses the document-type classification
// response into a name-keyed map.
func DecodeDocumentTypeResult(raw json.RawMessage) (map[string]DocumentTypeEntry, error) {
	var result map[string]DocumentTypeEntry
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSchema, err)
	}
	return result, nil
}
