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

// Package retrieval turns a free-text grocery query into ranked catalog
// products by embedding the query and scanning the product index.
package retrieval

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/poiesic/grocerypick/ai"
	"github.com/poiesic/grocerypick/core"
	"github.com/poiesic/grocerypick/storage"
)

// Retriever embeds queries and matches them against the product index.
type Retriever struct {
	embedder ai.Embedder
	repo     storage.ProductRepository
	logger   *slog.Logger
}

type Option func(*Retriever)

func WithLogger(logger *slog.Logger) Option {
	return func(r *Retriever) {
		r.logger = logger
	}
}

func NewRetriever(embedder ai.Embedder, repo storage.ProductRepository, opts ...Option) *Retriever {
	r := &Retriever{
		embedder: embedder,
		repo:     repo,
		logger:   slog.Default().With("component", "retrieval"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Retrieve returns products scoring at or above threshold against the query,
// best first, deduplicated by catalog ID. An empty result is not an error.
func (r *Retriever) Retrieve(ctx context.Context, query string, threshold float32, limit int, filter core.SupermarketFilter) ([]core.Product, error) {
	vector, err := r.embedder.EmbedQuery(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", core.ErrEmbeddingUnavailable, err)
	}
	if len(vector) == 0 {
		return nil, fmt.Errorf("%w: empty vector for query %q", core.ErrEmbeddingUnavailable, query)
	}

	matches, err := r.repo.MatchByEmbedding(ctx, vector, threshold, limit, filter.Exclude)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", core.ErrRetrievalFailure, err)
	}

	products := dedupeByID(matches)
	r.logger.Debug("retrieved products",
		"query", query,
		"matches", len(matches),
		"unique", len(products))
	return products, nil
}

// dedupeByID keeps the first occurrence of each catalog ID, preserving the
// score ordering of the index.
func dedupeByID(matches []*core.ProductMatch) []core.Product {
	seen := make(map[string]struct{}, len(matches))
	products := make([]core.Product, 0, len(matches))
	for _, match := range matches {
		if match == nil || match.Product == nil {
			continue
		}
		if _, ok := seen[match.Product.ID]; ok {
			continue
		}
		seen[match.Product.ID] = struct{}{}
		products = append(products, *match.Product)
	}
	return products
}
