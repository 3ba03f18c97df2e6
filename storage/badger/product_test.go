package badger

import (
	"context"
	"testing"

	"github.com/poiesic/grocerypick/core"
	"github.com/poiesic/grocerypick/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepo(t *testing.T) storage.ProductRepository {
	t.Helper()
	repo, backend, err := NewMemoryRepository()
	require.NoError(t, err)
	t.Cleanup(func() { backend.Close() })
	return repo
}

func TestUpsertProducts_AssignsIDs(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	products := []*core.Product{
		{Name: "Fresh Milk 1L", Supermarket: "FairPrice", Price: "$3.25"},
		{ID: "existing-id", Name: "Eggs 30 Pack", Supermarket: "FairPrice", Price: "$5.00"},
	}

	stored, err := repo.UpsertProducts(ctx, products...)
	require.NoError(t, err)
	require.Len(t, stored, 2)

	assert.NotEmpty(t, stored[0].ID, "missing catalog ID should be assigned")
	assert.Equal(t, "existing-id", stored[1].ID, "existing catalog ID should be kept")
}

func TestUpsertProducts_ReplacesByContentKey(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	_, err := repo.UpsertProducts(ctx, &core.Product{
		ID: "p1", Name: "Bread", Supermarket: "FairPrice", Price: "$2.00",
	})
	require.NoError(t, err)

	// Same (supermarket, name) with a new price replaces the row.
	_, err = repo.UpsertProducts(ctx, &core.Product{
		ID: "p1", Name: "Bread", Supermarket: "FairPrice", Price: "$2.50",
	})
	require.NoError(t, err)

	results, err := repo.SearchByName(ctx, "bread", 10)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "$2.50", results[0].Price)
}

func TestUpsertProducts_ValidationFailure(t *testing.T) {
	repo := newTestRepo(t)

	_, err := repo.UpsertProducts(context.Background(), &core.Product{Name: "No Store"})
	assert.ErrorIs(t, err, core.ErrInvalidProduct)
}

func TestGetProduct(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	stored, err := repo.UpsertProducts(ctx, &core.Product{
		Name: "Fresh Milk 1L", Supermarket: "Cold Storage", Price: "$3.40",
	})
	require.NoError(t, err)

	got, err := repo.GetProduct(ctx, stored[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "Fresh Milk 1L", got.Name)
	assert.Equal(t, "Cold Storage", got.Supermarket)

	_, err = repo.GetProduct(ctx, "missing")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestSearchByName(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	_, err := repo.UpsertProducts(ctx,
		&core.Product{Name: "Fresh Milk 1L", Supermarket: "FairPrice"},
		&core.Product{Name: "Chocolate Milk", Supermarket: "FairPrice"},
		&core.Product{Name: "Wholemeal Bread", Supermarket: "FairPrice"},
	)
	require.NoError(t, err)

	results, err := repo.SearchByName(ctx, "MILK", 10)
	require.NoError(t, err)
	require.Len(t, results, 2)
	// Ordered by name
	assert.Equal(t, "Chocolate Milk", results[0].Name)
	assert.Equal(t, "Fresh Milk 1L", results[1].Name)

	results, err = repo.SearchByName(ctx, "  ", 10)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestMatchByEmbedding(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	_, err := repo.UpsertProducts(ctx,
		&core.Product{Name: "Eggs 30 Pack", Supermarket: "FairPrice", Vector: []float32{1, 0, 0}},
		&core.Product{Name: "Eggs 12 Pack", Supermarket: "Sheng Siong", Vector: []float32{0.9, 0.1, 0}},
		&core.Product{Name: "Dish Soap", Supermarket: "FairPrice", Vector: []float32{0, 0, 1}},
		&core.Product{Name: "Unindexed", Supermarket: "FairPrice"},
	)
	require.NoError(t, err)

	matches, err := repo.MatchByEmbedding(ctx, []float32{1, 0, 0}, 0.5, 10, nil)
	require.NoError(t, err)
	require.Len(t, matches, 2)
	assert.Equal(t, "Eggs 30 Pack", matches[0].Product.Name)
	assert.Equal(t, "Eggs 12 Pack", matches[1].Product.Name)
	assert.Greater(t, matches[0].Score, matches[1].Score)
	assert.Equal(t, matches[0].Score, matches[0].Product.Similarity)
}

func TestMatchByEmbedding_ExclusionFilter(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	_, err := repo.UpsertProducts(ctx,
		&core.Product{Name: "Eggs 30 Pack", Supermarket: "FairPrice", Vector: []float32{1, 0, 0}},
		&core.Product{Name: "Eggs 12 Pack", Supermarket: "Sheng Siong", Vector: []float32{0.9, 0.1, 0}},
	)
	require.NoError(t, err)

	matches, err := repo.MatchByEmbedding(ctx, []float32{1, 0, 0}, 0.5, 10, []string{"FairPrice"})
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "Sheng Siong", matches[0].Product.Supermarket)
}

func TestMatchByEmbedding_Limit(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	_, err := repo.UpsertProducts(ctx,
		&core.Product{Name: "A", Supermarket: "FairPrice", Vector: []float32{1, 0, 0}},
		&core.Product{Name: "B", Supermarket: "FairPrice", Vector: []float32{0.95, 0.05, 0}},
		&core.Product{Name: "C", Supermarket: "FairPrice", Vector: []float32{0.9, 0.1, 0}},
	)
	require.NoError(t, err)

	matches, err := repo.MatchByEmbedding(ctx, []float32{1, 0, 0}, 0.5, 2, nil)
	require.NoError(t, err)
	assert.Len(t, matches, 2)
}

func TestMatchByEmbedding_EmptyVector(t *testing.T) {
	repo := newTestRepo(t)

	_, err := repo.MatchByEmbedding(context.Background(), nil, 0.5, 10, nil)
	assert.ErrorIs(t, err, storage.ErrInvalidQuery)
}

func TestCosineSimilarity(t *testing.T) {
	assert.InDelta(t, 1.0, cosineSimilarity([]float32{1, 0}, []float32{2, 0}), 1e-6)
	assert.InDelta(t, 0.0, cosineSimilarity([]float32{1, 0}, []float32{0, 1}), 1e-6)
	assert.Equal(t, float32(0), cosineSimilarity([]float32{1, 0}, []float32{1, 0, 0}), "mismatched dimensions")
	assert.Equal(t, float32(0), cosineSimilarity([]float32{0, 0}, []float32{1, 0}), "zero vector")
}
