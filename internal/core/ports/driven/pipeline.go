package driven

import (
	"context"

	"github.com/halcyon-labs/docq-cli/internal/core/domain"
)

// Chunker splits extracted page text into retrieval units.
// Implementations must be pure: identical pages always yield identical
// chunk boundaries and fingerprints.
type Chunker interface {
	// Chunk returns ordered chunk drafts for the pages. Drafts carry
	// positions, page spans, offsets, and fingerprints but no IDs.
	Chunk(pages []domain.Page) []domain.Chunk
}

// EmbeddingCache is the deduplicating front of the embedding provider.
// Services embed through it, never through EmbeddingService directly, so
// every repeated fingerprint costs exactly one provider call.
type EmbeddingCache interface {
	// Embed returns the embedding for text, fingerprinting it first.
	Embed(ctx context.Context, text string) ([]float32, error)

	// EmbedFingerprint embeds text under a pre-computed fingerprint.
	EmbedFingerprint(ctx context.Context, fingerprint, text string) ([]float32, error)

	// Dimensions returns the provider's embedding vector size.
	Dimensions() int

	// ModelName returns the provider model identifier.
	ModelName() string
}
