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


// Package ai provides abstractions for the AI services used in GroceryPick.
//
// This package defines interfaces for text embeddings and generative text,
// plus the Chain type that wraps multiple generative providers in a fixed
// priority order with fallback. Business logic depends on these abstractions
// rather than on any concrete provider SDK.
//
// # Design Principles
//
// The package is designed around two key interfaces:
//
//   - Embedder: generates vector embeddings from text
//   - Generator: a single generative text provider
//
// and one concrete coordinator:
//
//   - Chain: ordered multi-provider fallback over Generators. A provider
//     attempt fails if it errors, returns empty text, or returns the reject
//     sentinel; the chain falls through to the next provider and only fails
//     terminally (core.ErrGenerationUnavailable) when every provider is
//     exhausted.
//
// # Implementation Packages
//
// The ai package includes three implementation sub-packages:
//
//   - ai/gemini: primary provider (Gemini generation and embeddings)
//   - ai/groq: fallback provider (Groq via its OpenAI-compatible API)
//   - ai/mock: test doubles for unit testing without external dependencies
//
// # Usage Example
//
//	cfg := ai.NewConfig(
//	    ai.WithGeminiAPIKey(key),
//	    ai.WithGroqAPIKey(fallbackKey),
//	)
//	primary, err := gemini.NewGenerator(ctx, cfg)
//	fallback, err := groq.NewGenerator(cfg)
//	chain := ai.NewChain([]ai.Generator{primary, fallback})
//
//	text, err := chain.Generate(ctx, prompt, instruction)
package ai
