package badger

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"strings"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"github.com/poiesic/grocerypick/core"
	"github.com/poiesic/grocerypick/storage"
)

// ProductRepository implements storage.ProductRepository on a BadgerDB backend.
type ProductRepository struct {
	backend *Backend
	logger  *slog.Logger
}

// NewProductRepository creates a product repository on the given backend.
//
// Returns storage.ProductRepository interface to enforce abstraction.
func NewProductRepository(backend *Backend) (storage.ProductRepository, error) {
	if backend == nil {
		return nil, errors.New("backend required")
	}
	return &ProductRepository{
		backend: backend,
		logger:  slog.Default().With("component", "badger-products"),
	}, nil
}

// UpsertProducts inserts or replaces catalog products keyed by content ID.
// Products without a catalog ID are assigned a fresh UUID before storing.
func (r *ProductRepository) UpsertProducts(ctx context.Context, products ...*core.Product) ([]*core.Product, error) {
	for _, product := range products {
		if err := core.ValidateProduct(product); err != nil {
			return nil, err
		}
	}

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, product := range products {
			if product.ID == "" {
				product.ID = uuid.NewString()
			}

			contentID := product.ContentID()

			key := makeProductKey(contentID)
			if err := tx.Set(key, storage.MarshalProduct(product)); err != nil {
				return err
			}

			// Catalog-ID index for external lookups
			idxKey := makeCatalogIDKey(product.ID)
			if err := tx.Set(idxKey, storage.MarshalID(contentID)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)

	if err != nil {
		return nil, err
	}

	r.logger.Debug("upserted products", "count", len(products))
	return products, nil
}

// MatchByEmbedding delegates to the backend.
func (r *ProductRepository) MatchByEmbedding(ctx context.Context, vector []float32, minSimilarity float32, limit int, excludeSupermarkets []string) ([]*core.ProductMatch, error) {
	return r.backend.MatchByEmbedding(ctx, vector, minSimilarity, limit, excludeSupermarkets)
}

// SearchByName performs a case-insensitive substring match over product names.
// Results are ordered by name for stable output.
func (r *ProductRepository) SearchByName(ctx context.Context, query string, limit int) ([]*core.Product, error) {
	needle := strings.ToLower(strings.TrimSpace(query))
	if needle == "" {
		return []*core.Product{}, nil
	}

	var results []*core.Product

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(productRecordPrefix)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			var product *core.Product
			err := iter.Item().Value(func(val []byte) error {
				var err error
				product, err = storage.UnmarshalProduct(val)
				return err
			})
			if err != nil {
				return err
			}
			if product == nil {
				continue
			}

			if strings.Contains(strings.ToLower(product.Name), needle) {
				results = append(results, product)
			}
		}
		return nil
	}, false)

	if err != nil {
		return nil, err
	}

	slices.SortFunc(results, func(a, b *core.Product) int {
		return strings.Compare(a.Name, b.Name)
	})
	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}

	return results, nil
}

// GetProduct retrieves a single product by its catalog ID.
func (r *ProductRepository) GetProduct(ctx context.Context, id string) (*core.Product, error) {
	var product *core.Product

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		idxItem, err := tx.Get(makeCatalogIDKey(id))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return storage.ErrNotFound
			}
			return err
		}

		var contentID core.ID
		if err := idxItem.Value(func(val []byte) error {
			var err error
			contentID, err = storage.UnmarshalID(val)
			return err
		}); err != nil {
			return err
		}

		item, err := tx.Get(makeProductKey(contentID))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return storage.ErrNotFound
			}
			return err
		}

		return item.Value(func(val []byte) error {
			var err error
			product, err = storage.UnmarshalProduct(val)
			return err
		})
	}, false)

	if err != nil {
		return nil, err
	}
	return product, nil
}

// Close closes the underlying backend.
func (r *ProductRepository) Close() error {
	return r.backend.Close()
}
