package memory

import (
	"context"
	"sync"

	"github.com/halcyon-labs/docq-cli/internal/core/domain"
	"github.com/halcyon-labs/docq-cli/internal/core/ports/driven"
)

// Ensure EmbedCacheStore implements the interface.
var _ driven.EmbedCacheStore = (*EmbedCacheStore)(nil)

// EmbedCacheStore is an in-memory implementation of driven.EmbedCacheStore.
type EmbedCacheStore struct {
	mu      sync.RWMutex
	records map[string]domain.EmbeddingRecord
}

// NewEmbedCacheStore creates a new in-memory embedding cache store.
func NewEmbedCacheStore() *EmbedCacheStore {
	return &EmbedCacheStore{records: make(map[string]domain.EmbeddingRecord)}
}

func cacheKey(fingerprint, provider string) string {
	return fingerprint + "|" + provider
}

// Get retrieves a record, or domain.ErrNotFound on a miss.
func (s *EmbedCacheStore) Get(_ context.Context, fingerprint, provider string) (*domain.EmbeddingRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	record, ok := s.records[cacheKey(fingerprint, provider)]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &record, nil
}

// Put stores a record, overwriting any existing one for the same key.
func (s *EmbedCacheStore) Put(_ context.Context, record *domain.EmbeddingRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[cacheKey(record.Fingerprint, record.Provider)] = *record
	return nil
}
