// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package analyse

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/aleutian-labs/parversion/internal/config"
	"github.com/aleutian-labs/parversion/internal/graph"
	"github.com/aleutian-labs/parversion/internal/llmport"
	"github.com/aleutian-labs/parversion/pkg/logging"
)

// Analyze walks basisRoot breadth-first and interprets every node that has
// not already been annotated, bounding concurrency with cfg.MaxConcurrency
// and letting analyser tasks run against outputTree in parallel via
// errgroup. Per-node failures are logged and swallowed (SPEC_FULL.md §5):
// an LLM hiccup on one node never aborts the run for its siblings.
func Analyze(ctx context.Context, port llmport.Port, cfg *config.Config, basisRoot *BasisNode, outputTree *DocNode) error {
	sem := semaphore.NewWeighted(int64(cfg.MaxConcurrency))
	g, gCtx := errgroup.WithContext(ctx)

	for _, node := range graph.Collect(basisRoot) {
		node := node

		if err := sem.Acquire(gCtx, 1); err != nil {
			break
		}

		g.Go(func() error {
			defer sem.Release(1)
			analyzeNode(gCtx, port, cfg, node, basisRoot, outputTree)
			return nil
		})
	}

	return g.Wait()
}

// analyzeNode is the per-node body of the analyser's fan-out: homologous
// lookup, idempotence check, classical gating, then the LLM-driven
// structure and data passes. Ported from original_source's analyze.
func analyzeNode(ctx context.Context, port llmport.Port, cfg *config.Config, targetNode, basisRoot *BasisNode, outputTree *DocNode) {
	if targetNode.Data.IsAnnotated() {
		recordNodeSkipped(ctx)
		return
	}

	ctx, span := startNodeSpan(ctx, "analyzeNode", targetNode)
	defer span.End()
	start := time.Now()
	defer func() { recordNodeAnalyzed(ctx, time.Since(start)) }()

	homologousNodes := graph.FindHomologousNodes(targetNode, basisRoot, outputTree)

	if classifyClassically(targetNode, homologousNodes, cfg) {
		return
	}

	if err := analyzeStructure(ctx, port, targetNode, homologousNodes, outputTree, cfg); err != nil {
		recordLLMFailure(ctx, "structure")
		logging.Default().Warn("structure analysis failed", "node", targetNode.Data.Describe(), "error", err)
	}
	if err := analyzeData(ctx, port, targetNode, homologousNodes, outputTree, cfg); err != nil {
		recordLLMFailure(ctx, "data")
		logging.Default().Warn("data analysis failed", "node", targetNode.Data.Describe(), "error", err)
	}
}
