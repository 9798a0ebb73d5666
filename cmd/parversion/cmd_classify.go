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
	"os"

	"github.com/spf13/cobra"

	"github.com/aleutian-labs/parversion/internal/llmport"
)

// classifySampleMaxBytes bounds how much of a document is sent to the
// document-type classification prompt, mirroring the snippet budgets
// internal/analyse applies to its own structure and data prompts.
const classifySampleMaxBytes = 8000

// runClassify asks the configured LLM port to classify a document sample
// against the known document types (long-form, chat, listing, and so on),
// printing the per-type verdicts as JSON.
func runClassify(cmd *cobra.Command, args []string) {
	raw, err := os.ReadFile(args[0])
	if err != nil {
		log.Fatalf("Error reading %s: %v", args[0], err)
	}
	if len(raw) > classifySampleMaxBytes {
		raw = raw[:classifySampleMaxBytes]
	}

	port, err := buildPort()
	if err != nil {
		log.Fatalf("Error configuring LLM port: %v", err)
	}

	prompt := llmport.BuildDocumentTypePrompt(string(raw))
	response, err := port.Prompt(context.Background(), prompt)
	if err != nil {
		log.Fatalf("Error classifying document: %v", err)
	}

	result, err := llmport.DecodeDocumentTypeResult(response)
	if err != nil {
		log.Fatalf("Error decoding classification response: %v", err)
	}

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		log.Fatalf("Error marshalling classification result: %v", err)
	}
	fmt.Println(string(out))
}
