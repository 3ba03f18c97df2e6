// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/poiesic/grocerypick/ai"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"
)

// Generator implements ai.Generator using the Gemini API.
// It is the primary provider in the fallback chain.
type Generator struct {
	client llms.Model
	logger *slog.Logger
}

// newGenerator is an internal constructor that returns the concrete type.
func newGenerator(ctx context.Context, config *ai.Config) (*Generator, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if config.GeminiAPIKey == "" {
		return nil, errors.New("gemini: GeminiAPIKey is required")
	}

	client, err := googleai.New(ctx,
		googleai.WithAPIKey(config.GeminiAPIKey),
		googleai.WithDefaultModel(config.GeminiModel),
	)
	if err != nil {
		return nil, err
	}

	return &Generator{
		client: client,
		logger: slog.Default().With("component", "gemini-generator"),
	}, nil
}

// NewGenerator creates a Gemini-backed generator using the provided configuration.
//
// Returns ai.Generator interface to enforce abstraction.
func NewGenerator(ctx context.Context, config *ai.Config) (ai.Generator, error) {
	return newGenerator(ctx, config)
}

// Name identifies the provider in logs.
func (g *Generator) Name() string {
	return "Gemini"
}

// Generate produces text for the prompt under the given system instruction.
func (g *Generator) Generate(ctx context.Context, prompt, instruction string) (string, error) {
	content := []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{
				llms.TextPart(instruction),
			},
		},
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextPart(prompt),
			},
		},
	}

	response, err := g.client.GenerateContent(ctx, content, llms.WithTemperature(0.3))
	if err != nil {
		g.logger.Error("failed to generate content", "err", err)
		return "", err
	}

	if len(response.Choices) < 1 {
		return "", fmt.Errorf("gemini: no choices returned from model")
	}

	return response.Choices[0].Content, nil
}
