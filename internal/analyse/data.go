// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package analyse

import (
	"context"
	"sort"

	"github.com/aleutian-labs/parversion/internal/basis"
	"github.com/aleutian-labs/parversion/internal/config"
	"github.com/aleutian-labs/parversion/internal/llmport"
)

// analyzeData decides what semantic role targetNode's content plays. It
// first tries analyzeDataClassically; an element with no meaningful
// attributes never reaches the LLM. Note the config path here —
// cfg.LLM.TargetNodeExamplesMaxCount/TargetNodeAdjacentXMLLength, not the
// nested DataStructureInterpretation values analyzeStructure reads — is a
// deliberately different, shallower nesting than the structure path.
func analyzeData(ctx context.Context, port llmport.Port, targetNode *BasisNode, homologousNodes []*DocNode, outputTree *DocNode, cfg *config.Config) error {
	if analyzeDataClassically(homologousNodes) {
		return nil
	}

	outputNode := homologousNodes[0]
	examplesCount := min(cfg.LLM.TargetNodeExamplesMaxCount, len(homologousNodes))
	snippets := makeSnippets(homologousNodes, outputTree, examplesCount, cfg.LLM.TargetNodeAdjacentXMLLength)

	if outputNode.Data.IsText() {
		raw, err := port.Prompt(ctx, llmport.BuildTextDataPrompt(snippets))
		if err != nil {
			return err
		}
		result, err := llmport.DecodeTextDataResult(raw)
		if err != nil {
			return err
		}

		targetNode.Data.AppendData(basis.NodeData{
			Name: result.Name,
			Text: &basis.TextData{
				IsPresentational:    result.IsPresentational,
				IsTitle:             result.IsTitle,
				IsPrimaryContent:    result.IsPrimaryContent,
				IsPeripheralContent: result.IsPeripheralContent,
				IsAdvertisement:     result.IsAdvertisement,
				IsLabel:             result.IsLabel,
				Description:         result.Description,
			},
		})
		return nil
	}

	attrs := outputNode.Data.MeaningfulAttributes()
	names := make([]string, 0, len(attrs))
	for name := range attrs {
		names = append(names, name)
	}
	sort.Strings(names)

	raw, err := port.Prompt(ctx, llmport.BuildElementDataPrompt(names, snippets))
	if err != nil {
		return err
	}
	results, err := llmport.DecodeElementDataResult(raw)
	if err != nil {
		return err
	}

	for _, result := range results {
		targetNode.Data.AppendData(basis.NodeData{
			Name: result.Name,
			Element: &basis.ElementData{
				Attribute:           result.Attribute,
				IsPageLink:          result.IsPageLink,
				IsPeripheralContent: result.IsPeripheralContent,
				IsAdvertisement:     result.IsAdvertisement,
				Description:         result.Description,
			},
		})
	}
	return nil
}
