package driven

import "context"

// VectorIndex stores chunk vectors per scope and answers nearest-neighbour
// queries. A scope is one owner's set of indexed documents; queries never
// cross scopes.
//
// Vector dimensionality must be uniform within one scope; mixing embedding
// providers in a scope is rejected with domain.ErrDimensionMismatch.
type VectorIndex interface {
	// Add inserts a vector for a chunk within a scope.
	Add(ctx context.Context, scope, documentID, chunkID string, vector []float32) error

	// Remove deletes all entries for a document within a scope.
	// Removing an unknown document is a no-op.
	Remove(ctx context.Context, scope, documentID string) error

	// Query finds the k highest-scoring entries in the scope, ordered by
	// descending score with ties broken by earliest insertion. Fewer than
	// k entries returns all of them.
	Query(ctx context.Context, scope string, vector []float32, k int) ([]VectorHit, error)

	// Size returns the number of entries in a scope.
	Size(scope string) int

	// Close releases resources.
	Close() error
}

// VectorHit represents a similarity search result.
type VectorHit struct {
	// DocumentID is the document the matched chunk belongs to.
	DocumentID string

	// ChunkID is the matched chunk.
	ChunkID string

	// Score is the cosine similarity (0-1 for non-negative embeddings).
	Score float64
}
