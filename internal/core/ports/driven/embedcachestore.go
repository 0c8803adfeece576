package driven

import (
	"context"

	"github.com/halcyon-labs/docq-cli/internal/core/domain"
)

// EmbedCacheStore persists content-addressed embedding records so the cache
// survives process restart. Records are keyed by fingerprint + provider;
// a provider change leaves old records behind rather than reusing them.
type EmbedCacheStore interface {
	// Get retrieves a record, or domain.ErrNotFound on a miss.
	Get(ctx context.Context, fingerprint, provider string) (*domain.EmbeddingRecord, error)

	// Put stores a record, overwriting any existing one for the same key.
	Put(ctx context.Context, record *domain.EmbeddingRecord) error
}
