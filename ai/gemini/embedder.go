package gemini

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/poiesic/grocerypick/ai"
	"github.com/tmc/langchaingo/embeddings"
	"github.com/tmc/langchaingo/llms/googleai"
)

// Embedder implements ai.Embedder using the Gemini embedding API.
type Embedder struct {
	embedder embeddings.Embedder
	logger   *slog.Logger
}

// newEmbedder is an internal constructor that returns the concrete type.
func newEmbedder(ctx context.Context, config *ai.Config) (*Embedder, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if config.GeminiAPIKey == "" {
		return nil, errors.New("gemini: GeminiAPIKey is required for embeddings")
	}

	client, err := googleai.New(ctx,
		googleai.WithAPIKey(config.GeminiAPIKey),
		googleai.WithDefaultEmbeddingModel(config.EmbeddingModel),
	)
	if err != nil {
		return nil, err
	}

	// Wrap in langchaingo embedder
	embedder, err := embeddings.NewEmbedder(client, embeddings.WithStripNewLines(true))
	if err != nil {
		return nil, err
	}

	return &Embedder{
		embedder: embedder,
		logger:   slog.Default().With("component", "gemini-embedder"),
	}, nil
}

// NewEmbedder creates a new embedder using the provided configuration.
//
// Returns ai.Embedder interface to enforce abstraction.
func NewEmbedder(ctx context.Context, config *ai.Config) (ai.Embedder, error) {
	return newEmbedder(ctx, config)
}

// EmbedQuery generates a vector embedding for a single query string.
// Input that is empty after whitespace cleaning returns (nil, nil) without a
// remote call.
func (e *Embedder) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	cleaned := cleanText(text)
	if cleaned == "" {
		e.logger.Warn("attempted to embed empty text")
		return nil, nil
	}

	e.logger.Debug("generating embedding for query", "length", len(cleaned))

	vector, err := e.embedder.EmbedQuery(ctx, cleaned)
	if err != nil {
		e.logger.Error("failed to generate embedding", "err", err)
		return nil, err
	}

	return vector, nil
}

// EmbedDocuments generates vector embeddings for multiple document strings in a batch.
func (e *Embedder) EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error) {
	cleaned := make([]string, len(texts))
	for i, text := range texts {
		cleaned[i] = cleanText(text)
	}

	e.logger.Debug("generating embeddings for documents", "count", len(cleaned))

	vectors, err := e.embedder.EmbedDocuments(ctx, cleaned)
	if err != nil {
		e.logger.Error("failed to generate embeddings", "count", len(cleaned), "err", err)
		return nil, err
	}

	return vectors, nil
}

// cleanText collapses runs of whitespace (including newlines) into single
// spaces and trims the result.
func cleanText(text string) string {
	return strings.Join(strings.Fields(text), " ")
}
