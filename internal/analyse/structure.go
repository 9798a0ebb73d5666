// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package analyse

import (
	"context"

	"github.com/aleutian-labs/parversion/internal/basis"
	"github.com/aleutian-labs/parversion/internal/config"
	"github.com/aleutian-labs/parversion/internal/llmport"
)

// analyzeStructure decides whether targetNode's repeated shape is a
// recursive data relationship. It first tries analyzeStructureClassically;
// only a genuinely ambiguous case reaches the LLM.
func analyzeStructure(ctx context.Context, port llmport.Port, targetNode *BasisNode, homologousNodes []*DocNode, outputTree *DocNode, cfg *config.Config) error {
	if analyzeStructureClassically(targetNode, homologousNodes) {
		return nil
	}

	examplesCount := min(cfg.LLM.DataStructureInterpretation.TargetNodeExamplesMaxCount, len(homologousNodes))
	snippets := makeSnippets(homologousNodes, outputTree, examplesCount, cfg.LLM.DataStructureInterpretation.TargetNodeAdjacentXMLLength)

	raw, err := port.Prompt(ctx, llmport.BuildStructurePrompt(snippets))
	if err != nil {
		return err
	}

	result, err := llmport.DecodeStructureResult(raw)
	if err != nil {
		return err
	}

	targetNode.Data.AppendStructure(basis.NodeDataStructure{
		Recursive: &basis.RecursiveStructure{
			IsRecursive: result.Recursive.IsRecursive,
			Description: result.Recursive.Description,
		},
	})
	return nil
}
