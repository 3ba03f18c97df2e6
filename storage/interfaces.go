package storage

import (
	"context"

	"github.com/poiesic/grocerypick/core"
)

// ProductRepository provides operations for managing the product catalog and
// querying it by similarity. This is the collaborator boundary the matching
// core depends on; implementations must be thread-safe and support concurrent
// access.
type ProductRepository interface {
	// UpsertProducts inserts or replaces catalog products. Rows are keyed by
	// the content ID derived from (supermarket, name), so re-uploading a
	// catalog replaces rows instead of duplicating them. Products without a
	// catalog ID are assigned one. Returns the stored products.
	UpsertProducts(ctx context.Context, products ...*core.Product) ([]*core.Product, error)

	// MatchByEmbedding finds products similar to the given vector.
	// Returns products with similarity >= minSimilarity, up to limit results,
	// ordered by similarity score (highest first). Products sold by a store
	// in excludeSupermarkets are filtered out before the limit is applied.
	MatchByEmbedding(ctx context.Context, vector []float32, minSimilarity float32, limit int, excludeSupermarkets []string) ([]*core.ProductMatch, error)

	// SearchByName is the keyword-match fallback query: case-insensitive
	// substring match on product names, up to limit results.
	SearchByName(ctx context.Context, query string, limit int) ([]*core.Product, error)

	// GetProduct retrieves a single product by its catalog ID.
	// Returns ErrNotFound if the product doesn't exist.
	GetProduct(ctx context.Context, id string) (*core.Product, error)

	// Close closes the storage backend and releases resources.
	Close() error
}
