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

	"github.com/aleutian-labs/parversion/internal/analyse"
	"github.com/aleutian-labs/parversion/internal/harvest"
)

// runInterpret builds, analyses, and harvests a document in one pass,
// printing its harvested content as JSON. Unlike build, nothing is
// persisted; this is the one-shot path for documents seen only once.
func runInterpret(cmd *cobra.Command, args []string) {
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

	result := harvest.Harvest(docRoot, basisRoot)

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		log.Fatalf("Error marshalling harvested content: %v", err)
	}
	fmt.Println(string(out))
}
