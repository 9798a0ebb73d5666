// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/aleutian-labs/parversion/internal/harvest"
)

// runHarvest replays a previously-saved basis graph against a new document
// sharing its feature-hash set, harvesting content with no further LLM
// calls — the whole point of having analysed and saved the profile once.
func runHarvest(cmd *cobra.Command, args []string) {
	ctx := context.Background()

	hashes, err := requireFeatureHash()
	if err != nil {
		log.Fatalf("%v", err)
	}

	store, closeFn, err := openProfileStore()
	if err != nil {
		log.Fatalf("Error opening profile store: %v", err)
	}
	defer closeFn()

	profile, err := store.Load(ctx, hashes)
	if err != nil {
		log.Fatalf("Error loading profile: %v", err)
	}

	docRoot, err := loadDocumentGraph(args[0])
	if err != nil {
		log.Fatalf("Error loading document: %v", err)
	}

	result := harvest.Harvest(docRoot, profile.Graph)

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		log.Fatalf("Error marshalling harvested content: %v", err)
	}
	fmt.Println(string(out))
}
