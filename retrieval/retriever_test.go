package retrieval

import (
	"context"
	"errors"
	"testing"

	"github.com/poiesic/grocerypick/ai/mock"
	"github.com/poiesic/grocerypick/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRepo struct {
	matches []*core.ProductMatch
	err     error

	gotVector  []float32
	gotExclude []string
	gotLimit   int
}

func (s *stubRepo) UpsertProducts(ctx context.Context, products ...*core.Product) ([]*core.Product, error) {
	return products, nil
}

func (s *stubRepo) MatchByEmbedding(ctx context.Context, vector []float32, minSimilarity float32, limit int, excludeSupermarkets []string) ([]*core.ProductMatch, error) {
	s.gotVector = vector
	s.gotExclude = excludeSupermarkets
	s.gotLimit = limit
	return s.matches, s.err
}

func (s *stubRepo) SearchByName(ctx context.Context, query string, limit int) ([]*core.Product, error) {
	return nil, nil
}

func (s *stubRepo) GetProduct(ctx context.Context, id string) (*core.Product, error) {
	return nil, nil
}

func (s *stubRepo) Close() error { return nil }

func match(id, name string, score float32) *core.ProductMatch {
	return &core.ProductMatch{
		Product: &core.Product{ID: id, Name: name, Supermarket: "FairPrice", Similarity: score},
		Score:   score,
	}
}

func TestRetrieve(t *testing.T) {
	repo := &stubRepo{matches: []*core.ProductMatch{
		match("p1", "Eggs 30 Pack", 0.92),
		match("p2", "Eggs 12 Pack", 0.81),
	}}
	r := NewRetriever(&mock.MockEmbedder{}, repo)

	products, err := r.Retrieve(context.Background(), "eggs", 0.5, 5, core.SupermarketFilter{Exclude: []string{"Sheng Siong"}})
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "p1", products[0].ID)
	assert.Equal(t, "p2", products[1].ID)
	assert.Equal(t, []string{"Sheng Siong"}, repo.gotExclude)
	assert.Equal(t, 5, repo.gotLimit)
	assert.NotEmpty(t, repo.gotVector)
}

func TestRetrieve_DedupesByID(t *testing.T) {
	repo := &stubRepo{matches: []*core.ProductMatch{
		match("p1", "Eggs 30 Pack", 0.92),
		match("p1", "Eggs 30 Pack", 0.90),
		match("p2", "Eggs 12 Pack", 0.81),
	}}
	r := NewRetriever(&mock.MockEmbedder{}, repo)

	products, err := r.Retrieve(context.Background(), "eggs", 0.5, 5, core.SupermarketFilter{})
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, float32(0.92), products[0].Similarity, "first occurrence wins")
}

func TestRetrieve_EmbeddingError(t *testing.T) {
	embedder := &mock.MockEmbedder{
		EmbedQueryFunc: func(ctx context.Context, text string) ([]float32, error) {
			return nil, errors.New("quota exceeded")
		},
	}
	r := NewRetriever(embedder, &stubRepo{})

	_, err := r.Retrieve(context.Background(), "eggs", 0.5, 5, core.SupermarketFilter{})
	assert.ErrorIs(t, err, core.ErrEmbeddingUnavailable)
}

func TestRetrieve_EmptyVector(t *testing.T) {
	// An empty query produces no vector without calling the backend.
	r := NewRetriever(&mock.MockEmbedder{}, &stubRepo{})

	_, err := r.Retrieve(context.Background(), "", 0.5, 5, core.SupermarketFilter{})
	assert.ErrorIs(t, err, core.ErrEmbeddingUnavailable)
}

func TestRetrieve_IndexError(t *testing.T) {
	repo := &stubRepo{err: errors.New("db closed")}
	r := NewRetriever(&mock.MockEmbedder{}, repo)

	_, err := r.Retrieve(context.Background(), "eggs", 0.5, 5, core.SupermarketFilter{})
	assert.ErrorIs(t, err, core.ErrRetrievalFailure)
}

func TestRetrieve_EmptyResultIsNotError(t *testing.T) {
	r := NewRetriever(&mock.MockEmbedder{}, &stubRepo{})

	products, err := r.Retrieve(context.Background(), "obscure item", 0.5, 5, core.SupermarketFilter{})
	require.NoError(t, err)
	assert.Empty(t, products)
}
