// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package config loads and validates parversion's YAML configuration,
// grounded on cmd/aleutian/main.go's config.yaml + yaml.Unmarshal loading
// pattern, with struct-tag validation via go-playground/validator/v10
// (services/orchestrator/datatypes's convention).
package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// LLMConfig groups the analyser's snippet-budget knobs. Structure
// interpretation and data interpretation read these from distinct nesting
// paths in the original (CONFIG.llm.data_structure_interpretation.* versus
// CONFIG.llm.* directly) — DataStructureInterpretation mirrors that split
// rather than flattening it away.
type LLMConfig struct {
	TargetNodeExamplesMaxCount int `yaml:"target_node_examples_max_count" validate:"required,min=1"`
	TargetNodeAdjacentXMLLength int `yaml:"target_node_adjacent_xml_length" validate:"required,min=1"`

	DataStructureInterpretation StructureInterpretationConfig `yaml:"data_structure_interpretation" validate:"required"`
}

// StructureInterpretationConfig holds the snippet budget used only when
// interpreting whether a repeated node shape is recursive.
type StructureInterpretationConfig struct {
	TargetNodeExamplesMaxCount  int `yaml:"target_node_examples_max_count" validate:"required,min=1"`
	TargetNodeAdjacentXMLLength int `yaml:"target_node_adjacent_xml_length" validate:"required,min=1"`
}

// Config is parversion's top-level configuration, loaded once at startup
// from config.yaml.
type Config struct {
	MaxConcurrency int       `yaml:"max_concurrency" validate:"required,min=1"`
	LLM            LLMConfig `yaml:"llm" validate:"required"`

	// BlacklistedTags are element tags the classical analyser discards
	// outright, never interpreting or harvesting them (§4.4).
	BlacklistedTags []string `yaml:"blacklisted_tags"`
}

// Default returns the configuration the teacher's own config.yaml ships
// with no further tuning: bounded concurrency, modest snippet budgets, and
// the classical tag blacklist named in SPEC_FULL.md §4.4.
func Default() *Config {
	return &Config{
		MaxConcurrency: 8,
		LLM: LLMConfig{
			TargetNodeExamplesMaxCount:  5,
			TargetNodeAdjacentXMLLength: 500,
			DataStructureInterpretation: StructureInterpretationConfig{
				TargetNodeExamplesMaxCount:  3,
				TargetNodeAdjacentXMLLength: 500,
			},
		},
		BlacklistedTags: []string{"link", "meta", "script", "head", "body", "br", "form"},
	}
}

// Load reads and validates a YAML configuration file at path.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("config: validating %s: %w", path, err)
	}

	return cfg, nil
}

// IsTagBlacklisted reports whether tag is in the classical analyser's
// blacklist, case-sensitively matching the tag names the blacklist is
// configured with.
func (c *Config) IsTagBlacklisted(tag string) bool {
	for _, t := range c.BlacklistedTags {
		if t == tag {
			return true
		}
	}
	return false
}
