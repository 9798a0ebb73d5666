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
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIPort sends prompts through the OpenAI chat completions API,
// grounded on
// jinterlante1206-AleutianLocal/services/llm/openai_llm.go's
// OpenAIClient.
type OpenAIPort struct {
	client *openai.Client
	model  string
}

// NewOpenAIPort builds a Port backed by the OpenAI chat completions API.
func NewOpenAIPort(apiKey, model string) *OpenAIPort {
	if model == "" {
		model = "gpt-4o-mini"
	}
	return &OpenAIPort{
		client: openai.NewClient(apiKey),
		model:  model,
	}
}

// Prompt implements Port.
func (o *OpenAIPort) Prompt(ctx context.Context, prompt string) (json.RawMessage, error) {
	req := openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: "Respond with JSON only, no markdown fencing and no preamble."},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	}

	resp, err := o.client.CreateChatCompletion(ctx, req)
	if err != nil {
		if errors.Is(ctx.Err(), context.Canceled) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: %v", ErrCancelled, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("%w: no choices returned", ErrSchema)
	}

	return json.RawMessage(resp.Choices[0].Message.Content), nil
}
