// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// --- Global Command Variables ---
var (
	configPath string
	provider   string
	apiKey     string
	model      string
	noCache    bool

	profileBackend string
	profileDir     string
	profileDBPath  string
	featureHash    []string

	outPath string

	rootCmd = &cobra.Command{
		Use:   "parversion",
		Short: "Interprets the structure of a web document and harvests its content",
		Long: `parversion builds a document graph from a normalised-XML input,
analyses its repeated structure with the help of a language model, and
harvests the primary and peripheral content that structure describes.`,
	}

	buildCmd = &cobra.Command{
		Use:   "build [file]",
		Short: "Build and analyse a basis graph from a document, saving it for reuse",
		Args:  cobra.ExactArgs(1),
		Run:   runBuild, // Defined in cmd_build.go
	}

	interpretCmd = &cobra.Command{
		Use:   "interpret [file]",
		Short: "Build, analyse, and harvest a document in one pass, printing its content",
		Args:  cobra.ExactArgs(1),
		Run:   runInterpret, // Defined in cmd_interpret.go
	}

	harvestCmd = &cobra.Command{
		Use:   "harvest [file]",
		Short: "Harvest a document against a previously-saved basis graph, without any LLM calls",
		Args:  cobra.ExactArgs(1),
		Run:   runHarvest, // Defined in cmd_harvest.go
	}

	classifyCmd = &cobra.Command{
		Use:   "classify [file]",
		Short: "Classify a document sample against the known document types",
		Args:  cobra.ExactArgs(1),
		Run:   runClassify, // Defined in cmd_classify.go
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "config.yaml", "Path to the YAML configuration file")
	rootCmd.PersistentFlags().StringVar(&provider, "provider", "mock", "LLM backend: anthropic, openai, or mock")
	rootCmd.PersistentFlags().StringVar(&apiKey, "api-key", "", "API key for the selected provider (falls back to ANTHROPIC_API_KEY/OPENAI_API_KEY)")
	rootCmd.PersistentFlags().StringVar(&model, "model", "", "Model name for the selected provider (provider default if empty)")
	rootCmd.PersistentFlags().BoolVar(&noCache, "no-cache", false, "Disable in-process LLM response caching")

	rootCmd.PersistentFlags().StringVar(&profileBackend, "profile-backend", "yaml", "Profile store backend: yaml or badger")
	rootCmd.PersistentFlags().StringVar(&profileDir, "profile-dir", ".parversion/profiles", "Directory for the YAML profile store")
	rootCmd.PersistentFlags().StringVar(&profileDBPath, "profile-db", ".parversion/profiles.badger", "Path for the Badger profile store")
	rootCmd.PersistentFlags().StringSliceVar(&featureHash, "feature-hash", nil, "Feature-hash set identifying a saved profile (repeatable, or comma-separated)")

	buildCmd.Flags().StringVarP(&outPath, "output", "o", "", "Write the serialized basis graph to this path instead of the profile store")
	rootCmd.AddCommand(buildCmd)

	rootCmd.AddCommand(interpretCmd)

	rootCmd.AddCommand(harvestCmd)

	rootCmd.AddCommand(classifyCmd)
}

func requireFeatureHash() ([]string, error) {
	if len(featureHash) == 0 {
		return nil, fmt.Errorf("--feature-hash is required")
	}
	return featureHash, nil
}
