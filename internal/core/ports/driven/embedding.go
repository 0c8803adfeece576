package driven

import "context"

// EmbeddingService turns text into vector embeddings. It only produces
// vectors; storing and searching them is the vector index's job.
type EmbeddingService interface {
	// Embed generates a vector embedding for the given text.
	Embed(ctx context.Context, text string) ([]float32, error)

	// EmbedBatch embeds several texts at once. Providers with a batch
	// endpoint do this in a single round trip.
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)

	// Dimensions returns the embedding vector size produced by the
	// configured model.
	Dimensions() int

	// ModelName returns the name of the embedding model being used.
	// It doubles as the cache provider key: changing the model
	// invalidates cached embeddings.
	ModelName() string

	// Ping checks the provider is reachable with a cheap request.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}
