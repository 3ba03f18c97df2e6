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

// Package ingest loads scraped catalog products into the vector index,
// embedding their names in batches.
package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/poiesic/grocerypick/ai"
	"github.com/poiesic/grocerypick/core"
	"github.com/poiesic/grocerypick/storage"
)

const (
	// DefaultEmbedBatchSize bounds how many product names go into one
	// embedding request.
	DefaultEmbedBatchSize = 50
	// DefaultMaxRetries bounds retry attempts per embedding request.
	DefaultMaxRetries = 3
	// DefaultRetryBaseDelay is the initial backoff delay.
	DefaultRetryBaseDelay = time.Second
)

// Indexer embeds catalog products and stores them for similarity search.
type Indexer struct {
	repo           storage.ProductRepository
	embedder       ai.Embedder
	batchSize      int
	maxRetries     int
	retryBaseDelay time.Duration
	logger         *slog.Logger
}

type Option func(*Indexer)

// WithBatchSize sets how many products are embedded per request.
func WithBatchSize(size int) Option {
	return func(ix *Indexer) {
		if size > 0 {
			ix.batchSize = size
		}
	}
}

// WithRetry configures retry attempts and base backoff delay for
// embedding requests.
func WithRetry(maxRetries int, baseDelay time.Duration) Option {
	return func(ix *Indexer) {
		ix.maxRetries = maxRetries
		ix.retryBaseDelay = baseDelay
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(ix *Indexer) {
		ix.logger = logger
	}
}

func NewIndexer(repo storage.ProductRepository, embedder ai.Embedder, opts ...Option) *Indexer {
	ix := &Indexer{
		repo:           repo,
		embedder:       embedder,
		batchSize:      DefaultEmbedBatchSize,
		maxRetries:     DefaultMaxRetries,
		retryBaseDelay: DefaultRetryBaseDelay,
		logger:         slog.Default().With("component", "ingest"),
	}
	for _, opt := range opts {
		opt(ix)
	}
	return ix
}

// Index embeds the given products batch by batch and upserts them into
// the repository. Vectors are normalized for cosine similarity. Returns
// the number of products stored.
func (ix *Indexer) Index(ctx context.Context, products []*core.Product) (int, error) {
	stored := 0
	for start := 0; start < len(products); start += ix.batchSize {
		end := start + ix.batchSize
		if end > len(products) {
			end = len(products)
		}

		if err := ix.indexBatch(ctx, products[start:end]); err != nil {
			return stored, err
		}
		stored += end - start

		ix.logger.Info("indexed product batch",
			"from", start,
			"to", end,
			"total", len(products))
	}
	return stored, nil
}

func (ix *Indexer) indexBatch(ctx context.Context, batch []*core.Product) error {
	texts := make([]string, len(batch))
	for i, product := range batch {
		texts[i] = product.Name
	}

	var vectors [][]float32
	err := RetryWithBackoff(ctx, func() error {
		var err error
		vectors, err = ix.embedder.EmbedDocuments(ctx, texts)
		return err
	}, ix.maxRetries, ix.retryBaseDelay)
	if err != nil {
		return fmt.Errorf("failed to generate embeddings after %d attempts: %w", ix.maxRetries, err)
	}

	if len(vectors) != len(batch) {
		return fmt.Errorf("%w: expected %d, got %d", ErrEmbeddingCountMismatch, len(batch), len(vectors))
	}

	for i := range batch {
		batch[i].Vector = NormalizeVector(vectors[i])
	}

	if _, err := ix.repo.UpsertProducts(ctx, batch...); err != nil {
		return fmt.Errorf("failed to store products: %w", err)
	}
	return nil
}
