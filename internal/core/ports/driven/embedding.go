package driven

import "context"

// EmbeddingService generates vector embeddings from text. The model is
// treated as an opaque function text -> vector; the core validates the
// returned shape, never the contents.
//
// The embedding dimension is not part of this contract: it is discovered
// from the first batch a pipeline run produces, because remote models
// only reveal it by actually embedding something.
//
// Implementations may include:
//   - Ollama (nomic-embed-text, all-minilm)
//   - OpenAI (text-embedding-3-small, text-embedding-3-large)
type EmbeddingService interface {
	// EmbedBatch generates one embedding per input text, in input
	// order. The returned batch must have exactly len(texts) rows of
	// equal, positive length.
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)

	// ModelName returns the name of the embedding model being used.
	ModelName() string

	// Ping validates the service is reachable with a lightweight
	// request. Used at startup before committing to a long run.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}
