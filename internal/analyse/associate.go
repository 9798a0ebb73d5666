// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package analyse

import (
	"context"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/aleutian-labs/parversion/internal/basis"
	"github.com/aleutian-labs/parversion/internal/config"
	"github.com/aleutian-labs/parversion/internal/graph"
	"github.com/aleutian-labs/parversion/internal/harvest"
)

// AnalyseAssociations walks basisRoot and, for every basis node with
// exactly one parent, samples a harvest per distinct sibling subgraph
// shape and — when more than one sibling yields non-empty content —
// records an AssociativeStructure grouping their subgraph hashes
// together.
//
// Ported from original_source/src/graph_node/analysis.rs's
// analyze_associations, which builds exactly this harvest set but, per
// SPEC_FULL.md Open Question (b), only logs it; recording the grouped
// AssociativeStructure back onto the basis node is this repository's
// supplement completing that scaffolding.
func AnalyseAssociations(ctx context.Context, cfg *config.Config, basisRoot *BasisNode, outputTree *DocNode) error {
	sem := semaphore.NewWeighted(int64(cfg.MaxConcurrency))
	g, gCtx := errgroup.WithContext(ctx)

	for _, node := range graph.Collect(basisRoot) {
		node := node

		if err := sem.Acquire(gCtx, 1); err != nil {
			break
		}

		g.Go(func() error {
			defer sem.Release(1)
			associateNode(gCtx, node, basisRoot, outputTree)
			return nil
		})
	}

	return g.Wait()
}

func associateNode(ctx context.Context, node, basisRoot *BasisNode, outputTree *DocNode) {
	parents := node.Parents()
	if len(parents) != 1 {
		return
	}
	parent := parents[0]

	siblings := []*BasisNode{node}
	for _, child := range parent.Children() {
		if child.ID != node.ID {
			siblings = append(siblings, child)
		}
	}
	if len(siblings) < 2 {
		return
	}

	seenHashes := map[string]bool{}
	var exemplars []*DocNode

	for _, sibling := range siblings {
		for _, homologous := range graph.FindHomologousNodes(sibling, basisRoot, outputTree) {
			h := graph.Hash(homologous)
			if seenHashes[h] {
				continue
			}
			seenHashes[h] = true
			exemplars = append(exemplars, homologous)
		}
	}

	var group basis.AssociativeGroup
	for _, exemplar := range exemplars {
		result := harvest.Harvest(exemplar, basisRoot)
		if isEmptyHarvest(result) {
			continue
		}
		group.SubgraphHashes = append(group.SubgraphHashes, graph.Hash(exemplar))
	}

	if len(group.SubgraphHashes) > 1 {
		node.Data.AppendStructure(basis.NodeDataStructure{
			Associative: &basis.AssociativeStructure{Groups: []basis.AssociativeGroup{group}},
		})
		recordAssociationInferred(ctx)
	}
}

func isEmptyHarvest(result harvest.Result) bool {
	return len(result.Content.Values) == 0 && len(result.Content.InnerContent) == 0
}
