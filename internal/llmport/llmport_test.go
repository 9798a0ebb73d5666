// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package llmport

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync/atomic"
	"testing"
)

func TestMockPort_ReturnsRegisteredResponse(t *testing.T) {
	port := NewMockPort().When("structure", json.RawMessage(`{"recursive":{"is_recursive":true,"description":"nested replies"}}`))

	raw, err := port.Prompt(context.Background(), "please analyze this structure snippet")
	if err != nil {
		t.Fatalf("Prompt() error = %v", err)
	}

	result, err := DecodeStructureResult(raw)
	if err != nil {
		t.Fatalf("DecodeStructureResult() error = %v", err)
	}
	if !result.Recursive.IsRecursive {
		t.Error("expected IsRecursive to be true")
	}
	if port.CallCount() != 1 {
		t.Errorf("CallCount() = %d, want 1", port.CallCount())
	}
}

func TestMockPort_ErrorTrigger(t *testing.T) {
	port := NewMockPort().WhenError("boom", ErrTransport)

	_, err := port.Prompt(context.Background(), "this should boom")
	if !errors.Is(err, ErrTransport) {
		t.Errorf("expected ErrTransport, got %v", err)
	}
}

func TestMockPort_NoMatchReturnsSchemaError(t *testing.T) {
	port := NewMockPort()

	_, err := port.Prompt(context.Background(), "unregistered prompt")
	if !errors.Is(err, ErrSchema) {
		t.Errorf("expected ErrSchema for an unregistered prompt, got %v", err)
	}
}

func TestCachedPort_CoalescesIdenticalPrompts(t *testing.T) {
	var calls int64
	inner := PortFunc(func(ctx context.Context, prompt string) (json.RawMessage, error) {
		atomic.AddInt64(&calls, 1)
		return json.RawMessage(`{"is_title":true}`), nil
	})

	cached := NewCachedPort(inner)

	first, err := cached.Prompt(context.Background(), "same prompt")
	if err != nil {
		t.Fatalf("Prompt() error = %v", err)
	}
	second, err := cached.Prompt(context.Background(), "same prompt")
	if err != nil {
		t.Fatalf("Prompt() error = %v", err)
	}

	if string(first) != string(second) {
		t.Errorf("cached responses differ: %q vs %q", first, second)
	}
	if atomic.LoadInt64(&calls) != 1 {
		t.Errorf("inner port called %d times, want 1 (second call should hit cache)", calls)
	}
}

func TestDecodeTextDataResult_RoundTrip(t *testing.T) {
	raw := json.RawMessage(`{"is_presentational":false,"is_title":true,"is_primary_content":true,"is_peripheral_content":false,"is_advertisement":false,"is_label":false,"description":"headline"}`)

	result, err := DecodeTextDataResult(raw)
	if err != nil {
		t.Fatalf("DecodeTextDataResult() error = %v", err)
	}
	if !result.IsTitle || !result.IsPrimaryContent {
		t.Errorf("result = %+v, want IsTitle and IsPrimaryContent set", result)
	}
}

func TestDecodeElementDataResult_MultipleAttributes(t *testing.T) {
	raw := json.RawMessage(`{"attributes":[{"attribute":"href","is_page_link":true,"is_peripheral_content":false,"is_advertisement":false,"description":"article link"}]}`)

	results, err := DecodeElementDataResult(raw)
	if err != nil {
		t.Fatalf("DecodeElementDataResult() error = %v", err)
	}
	if len(results) != 1 || results[0].Attribute != "href" {
		t.Errorf("results = %+v, want one href entry", results)
	}
}

func TestBuildStructurePrompt_IncludesAllSnippets(t *testing.T) {
	prompt := BuildStructurePrompt([]string{"snippet-one", "snippet-two"})
	if !strings.Contains(prompt, "snippet-one") || !strings.Contains(prompt, "snippet-two") {
		t.Errorf("prompt missing one or more snippets: %q", prompt)
	}
}
