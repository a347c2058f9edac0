package ai

import "context"

// Embedder generates vector embeddings from text for semantic similarity search.
// Implementations must be thread-safe for concurrent use.
//
// The engine treats the embedder as a black box: any error (network failure,
// timeout, missing provider) means "unavailable" and triggers the lexical
// fallback path, never a crash.
type Embedder interface {
	// EmbedText generates a vector embedding for a single text string.
	// The returned vector has the provider's configured dimension.
	// Returns an error if the embedding generation fails.
	EmbedText(ctx context.Context, text string) ([]float32, error)

	// EmbedTexts generates vector embeddings for multiple text strings in a batch.
	// Batch processing is more efficient than calling EmbedText multiple times.
	// The returned slice contains embeddings in the same order as the input texts.
	// Returns an error if any embedding generation fails.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// Provider aggregates the embedding service for convenient initialization and
// lifecycle management. A provider creates and manages the Embedder instance,
// ensuring it shares configuration and resources appropriately.
type Provider interface {
	// Embedder returns the text embedding service.
	// The returned Embedder is safe for concurrent use.
	Embedder() Embedder

	// Dimension returns the fixed output dimension of the embedding model.
	Dimension() int

	// Close releases resources held by the provider and its services.
	// After Close is called, the provider and its services should not be used.
	Close() error
}
