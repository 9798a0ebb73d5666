// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"context"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/aleutian-labs/parversion/internal/analyse"
	"github.com/aleutian-labs/parversion/internal/persist"
)

// runBuild builds a document's basis graph, analyses it against the
// document once (structure, data, and sibling-association passes), and
// saves the result for reuse by harvest, keyed by its feature-hash set.
func runBuild(cmd *cobra.Command, args []string) {
	ctx := context.Background()

	docRoot, basisRoot, err := loadDocument(args[0])
	if err != nil {
		log.Fatalf("Error loading document: %v", err)
	}

	port, err := buildPort()
	if err != nil {
		log.Fatalf("Error configuring LLM port: %v", err)
	}

	if err := analyse.Analyze(ctx, port, cfg, basisRoot, docRoot); err != nil {
		log.Fatalf("Error analysing document: %v", err)
	}
	if err := analyse.AnalyseAssociations(ctx, cfg, basisRoot, docRoot); err != nil {
		log.Fatalf("Error inferring sibling associations: %v", err)
	}

	hashes := featureHash
	if len(hashes) == 0 {
		hashes = documentFeatureHash(basisRoot)
	}

	if outPath != "" {
		data, err := persist.SerializeGraph(basisRoot)
		if err != nil {
			log.Fatalf("Error serializing basis graph: %v", err)
		}
		if err := os.WriteFile(outPath, data, 0640); err != nil {
			log.Fatalf("Error writing %s: %v", outPath, err)
		}
		log.Printf("Wrote serialized basis graph to %s (feature hash: %v)", outPath, hashes)
		return
	}

	store, closeFn, err := openProfileStore()
	if err != nil {
		log.Fatalf("Error opening profile store: %v", err)
	}
	defer closeFn()

	profile := &persist.DocumentProfile{
		FeatureHash: hashes,
		Graph:       basisRoot,
	}
	if err := store.Save(ctx, profile); err != nil {
		log.Fatalf("Error saving profile: %v", err)
	}
	log.Printf("Saved basis graph profile (feature hash: %v)", hashes)
}
