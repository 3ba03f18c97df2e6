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

// Package grocerypick matches free-text grocery requests against a
// supermarket product catalog using embedding retrieval and a
// multi-provider generative fallback chain.
package grocerypick

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"golang.org/x/time/rate"

	"github.com/poiesic/grocerypick/ai"
	"github.com/poiesic/grocerypick/ai/gemini"
	"github.com/poiesic/grocerypick/ai/groq"
	"github.com/poiesic/grocerypick/ingest"
	"github.com/poiesic/grocerypick/listgen"
	"github.com/poiesic/grocerypick/pipeline"
	"github.com/poiesic/grocerypick/retrieval"
	"github.com/poiesic/grocerypick/selection"
	"github.com/poiesic/grocerypick/storage"
	"github.com/poiesic/grocerypick/storage/badger"
)

// ErrEmbedderRequired is returned by operations that need embeddings when
// the planner was configured without a Gemini API key.
var ErrEmbedderRequired = errors.New("embedding provider not configured, a Gemini API key is required")

// Planner wires the catalog store, the embedding gateway and the
// generative provider chain into one entry point.
type Planner struct {
	repo     storage.ProductRepository
	embedder ai.Embedder
	chain    *ai.Chain
	logger   *slog.Logger
}

// defaultProviderRate paces generative provider calls. Batches run five
// selections concurrently, so without pacing a single batch can burst
// straight into provider rate limits.
var defaultProviderRate = rate.Every(100 * time.Millisecond)

// PlannerOption configures a Planner.
type PlannerOption func(*plannerOptions)

type plannerOptions struct {
	aiConfig *ai.Config
	inMemory bool
	limiter  *rate.Limiter
}

// WithAIConfig supplies provider keys and model names.
func WithAIConfig(config *ai.Config) PlannerOption {
	return func(o *plannerOptions) {
		if config != nil {
			o.aiConfig = config
		}
	}
}

// WithInMemoryStore keeps the catalog in memory, for tests and scratch runs.
func WithInMemoryStore() PlannerOption {
	return func(o *plannerOptions) {
		o.inMemory = true
	}
}

// WithProviderLimiter replaces the default pacing of generative provider
// calls. A nil limiter disables pacing.
func WithProviderLimiter(limiter *rate.Limiter) PlannerOption {
	return func(o *plannerOptions) {
		o.limiter = limiter
	}
}

// NewPlanner opens the catalog store at filePath and constructs provider
// bindings from the configured API keys. Providers are tried in order,
// Gemini first, Groq as fallback; at least one key must be present.
func NewPlanner(ctx context.Context, filePath string, opts ...PlannerOption) (*Planner, error) {
	// Apply options
	options := &plannerOptions{
		aiConfig: ai.DefaultConfig(),
		limiter:  rate.NewLimiter(defaultProviderRate, 1),
	}
	for _, opt := range opts {
		opt(options)
	}

	if err := options.aiConfig.Validate(); err != nil {
		return nil, err
	}

	// Open backend
	backend, err := badger.OpenBackend(filePath, options.inMemory)
	if err != nil {
		return nil, err
	}

	repo, err := badger.NewProductRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	// Build the provider chain in fallback order
	var generators []ai.Generator
	var embedder ai.Embedder

	if options.aiConfig.GeminiAPIKey != "" {
		generator, err := gemini.NewGenerator(ctx, options.aiConfig)
		if err != nil {
			backend.Close()
			return nil, err
		}
		generators = append(generators, generator)

		embedder, err = gemini.NewEmbedder(ctx, options.aiConfig)
		if err != nil {
			backend.Close()
			return nil, err
		}
	}

	if options.aiConfig.GroqAPIKey != "" {
		generator, err := groq.NewGenerator(options.aiConfig)
		if err != nil {
			backend.Close()
			return nil, err
		}
		generators = append(generators, generator)
	}

	return &Planner{
		repo:     repo,
		embedder: embedder,
		chain:    ai.NewChain(generators, ai.WithLimiter(options.limiter)),
		logger:   slog.Default(),
	}, nil
}

// Close closes the product repository and with it the underlying store.
func (p *Planner) Close() error {
	if err := p.repo.Close(); err != nil {
		p.logger.Error("error closing product repository", "err", err)
		return err
	}
	return nil
}

func (p *Planner) ProductRepository() storage.ProductRepository {
	return p.repo
}

// NewListService returns the grocery list generation and refinement service.
func (p *Planner) NewListService(opts ...listgen.ServiceOption) *listgen.Service {
	return listgen.NewService(p.chain, opts...)
}

// NewIndexer returns a catalog indexer for loading scraped products.
func (p *Planner) NewIndexer(opts ...ingest.Option) (*ingest.Indexer, error) {
	if p.embedder == nil {
		return nil, ErrEmbedderRequired
	}
	return ingest.NewIndexer(p.repo, p.embedder, opts...), nil
}

// NewSelector returns a product selector over the catalog.
func (p *Planner) NewSelector(opts ...selection.Option) (*selection.Selector, error) {
	if p.embedder == nil {
		return nil, ErrEmbedderRequired
	}
	retriever := retrieval.NewRetriever(p.embedder, p.repo)
	return selection.NewSelector(retriever, p.chain, opts...), nil
}

// NewOrchestrator returns a batch orchestrator over a fresh selector.
func (p *Planner) NewOrchestrator(opts ...pipeline.Option) (*pipeline.Orchestrator, error) {
	selector, err := p.NewSelector()
	if err != nil {
		return nil, err
	}
	return pipeline.NewOrchestrator(selector, opts...)
}
