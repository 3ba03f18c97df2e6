package ai

import "context"

// Embedder generates vector embeddings from text for semantic similarity search.
// Implementations must be thread-safe for concurrent use.
type Embedder interface {
	// EmbedQuery generates a vector embedding for a single query string.
	// Whitespace is collapsed before embedding; input that is empty after
	// cleaning returns (nil, nil) without a remote call.
	// Returns an error if the embedding generation fails.
	EmbedQuery(ctx context.Context, text string) ([]float32, error)

	// EmbedDocuments generates vector embeddings for multiple document strings
	// in a batch. The returned slice contains embeddings in the same order as
	// the input texts.
	// Returns an error if any embedding generation fails.
	EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error)
}

// Generator is a single generative text provider.
// Implementations must be thread-safe for concurrent use.
type Generator interface {
	// Name identifies the provider in logs.
	Name() string

	// Generate produces text for the prompt under the given system instruction.
	// Returns an error if the provider call fails.
	Generate(ctx context.Context, prompt, instruction string) (string, error)
}

// EmbeddingDimension is the fixed dimension of vectors produced by the
// embedding model (text-embedding-004).
const EmbeddingDimension = 768
