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


package ai

import "errors"

// Config holds configuration for AI service providers.
type Config struct {
	// GeminiAPIKey is the API key for the primary generative/embedding provider.
	GeminiAPIKey string

	// GroqAPIKey is the API key for the fallback generative provider.
	GroqAPIKey string

	// GeminiModel is the generative model identifier for the primary provider.
	// Default: "gemini-2.0-flash"
	GeminiModel string

	// GroqModel is the generative model identifier for the fallback provider.
	// Default: "llama-3.1-8b-instant"
	GroqModel string

	// EmbeddingModel is the model identifier to use for text embeddings.
	// Default: "text-embedding-004"
	EmbeddingModel string
}

// ConfigOption is a functional option for configuring a Config.
type ConfigOption func(*Config)

// WithGeminiAPIKey sets the Gemini API key.
func WithGeminiAPIKey(key string) ConfigOption {
	return func(c *Config) {
		c.GeminiAPIKey = key
	}
}

// WithGroqAPIKey sets the Groq API key.
func WithGroqAPIKey(key string) ConfigOption {
	return func(c *Config) {
		c.GroqAPIKey = key
	}
}

// WithGeminiModel sets the primary generative model identifier.
func WithGeminiModel(model string) ConfigOption {
	return func(c *Config) {
		c.GeminiModel = model
	}
}

// WithGroqModel sets the fallback generative model identifier.
func WithGroqModel(model string) ConfigOption {
	return func(c *Config) {
		c.GroqModel = model
	}
}

// WithEmbeddingModel sets the embedding model identifier.
func WithEmbeddingModel(model string) ConfigOption {
	return func(c *Config) {
		c.EmbeddingModel = model
	}
}

// DefaultConfig returns a Config with the default model identifiers.
// API keys must be supplied by the caller.
func DefaultConfig() *Config {
	return &Config{
		GeminiModel:    "gemini-2.0-flash",
		GroqModel:      "llama-3.1-8b-instant",
		EmbeddingModel: "text-embedding-004",
	}
}

// NewConfig creates a Config with the default values and applies the provided options.
//
// Example:
//
//	cfg := ai.NewConfig(
//	    ai.WithGeminiAPIKey(os.Getenv("LLM_KEY")),
//	    ai.WithGroqAPIKey(os.Getenv("GROQ_API_KEY")),
//	)
func NewConfig(opts ...ConfigOption) *Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Validate checks that the configuration is valid and complete.
// At least one generative provider key must be configured; validation happens
// once at construction instead of at every call site.
func (c *Config) Validate() error {
	if c.GeminiAPIKey == "" && c.GroqAPIKey == "" {
		return errors.New("ai config: at least one of GeminiAPIKey or GroqAPIKey is required")
	}
	if c.GeminiModel == "" {
		return errors.New("ai config: GeminiModel is required")
	}
	if c.GroqModel == "" {
		return errors.New("ai config: GroqModel is required")
	}
	if c.EmbeddingModel == "" {
		return errors.New("ai config: EmbeddingModel is required")
	}
	return nil
}
