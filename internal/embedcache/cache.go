// Package embedcache provides a content-addressed cache in front of an
// embedding provider.
//
// Embeddings are keyed by chunk fingerprint plus provider model, so any two
// chunks with identical normalised text share one provider call, across
// documents and across process restarts (the backing store is persistent).
// Concurrent requests for the same fingerprint are coalesced: at most one
// provider call is in flight per key, with other callers waiting on its
// result. Provider failures are never cached.
package embedcache

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/halcyon-labs/docq-cli/internal/core/domain"
	"github.com/halcyon-labs/docq-cli/internal/core/ports/driven"
	"github.com/halcyon-labs/docq-cli/internal/logger"
	"github.com/halcyon-labs/docq-cli/internal/ratelimit"
)

// call tracks one in-flight provider request.
type call struct {
	done   chan struct{}
	vector []float32
	err    error
}

// Cache deduplicates embedding provider calls by fingerprint.
type Cache struct {
	provider driven.EmbeddingService
	store    driven.EmbedCacheStore
	limiter  *ratelimit.Limiter

	mu       sync.Mutex
	inflight map[string]*call
}

// New creates a cache around a provider and a persistent backing store.
// The limiter is optional; when nil, provider calls are not rate limited.
func New(provider driven.EmbeddingService, store driven.EmbedCacheStore, limiter *ratelimit.Limiter) *Cache {
	return &Cache{
		provider: provider,
		store:    store,
		limiter:  limiter,
		inflight: make(map[string]*call),
	}
}

// Embed returns the embedding for text, fingerprinting it first.
func (c *Cache) Embed(ctx context.Context, text string) ([]float32, error) {
	return c.EmbedFingerprint(ctx, domain.Fingerprint(text), text)
}

// EmbedFingerprint returns the embedding for text under a pre-computed
// fingerprint. The ingestion pipeline uses this form since chunk drafts
// already carry their fingerprints.
func (c *Cache) EmbedFingerprint(ctx context.Context, fingerprint, text string) ([]float32, error) {
	provider := c.provider.ModelName()

	// Fast path: persisted record for the current provider.
	record, err := c.store.Get(ctx, fingerprint, provider)
	if err == nil {
		logger.Debug("Embed cache hit: %s", fingerprint[:12])
		return record.Vector, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("cache lookup: %w", err)
	}

	// Miss: join or become the in-flight call for this fingerprint.
	c.mu.Lock()
	if existing, ok := c.inflight[fingerprint]; ok {
		c.mu.Unlock()
		select {
		case <-existing.done:
			return existing.vector, existing.err
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	cl := &call{done: make(chan struct{})}
	c.inflight[fingerprint] = cl
	c.mu.Unlock()

	cl.vector, cl.err = c.fetch(ctx, fingerprint, provider, text)

	c.mu.Lock()
	delete(c.inflight, fingerprint)
	c.mu.Unlock()
	close(cl.done)

	return cl.vector, cl.err
}

// fetch calls the provider and persists the result on success.
func (c *Cache) fetch(ctx context.Context, fingerprint, provider, text string) ([]float32, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	logger.Debug("Embed cache miss: %s, calling provider", fingerprint[:12])
	vector, err := c.provider.Embed(ctx, text)
	if err != nil {
		if errors.Is(err, domain.ErrRateLimited) && c.limiter != nil {
			c.limiter.RecordRateLimitError(0)
		}
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", domain.ErrEmbeddingProvider, err)
	}
	if len(vector) == 0 {
		return nil, fmt.Errorf("%w: empty vector returned", domain.ErrEmbeddingProvider)
	}

	record := &domain.EmbeddingRecord{
		Fingerprint: fingerprint,
		Provider:    provider,
		Vector:      vector,
		CreatedAt:   time.Now().UTC(),
	}
	if err := c.store.Put(ctx, record); err != nil {
		// The vector is still good; a failed write only costs a
		// future provider call.
		logger.Warn("Failed to persist embedding %s: %v", fingerprint[:12], err)
	}

	return vector, nil
}

// Dimensions returns the provider's embedding vector size.
func (c *Cache) Dimensions() int {
	return c.provider.Dimensions()
}

// ModelName returns the provider model identifier used as the cache key.
func (c *Cache) ModelName() string {
	return c.provider.ModelName()
}
