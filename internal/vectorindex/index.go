// Package vectorindex provides an exact in-memory nearest-neighbour index.
//
// The index keeps L2-normalised vectors grouped by scope and answers top-k
// queries with a linear scan of normalised dot products. Exact linear scan
// is deliberate: at tens of thousands of chunks per scope it is fast enough,
// and it keeps result ordering fully deterministic (descending score, ties
// broken by earliest insertion). An approximate structure can replace it
// behind the same port if scales grow.
package vectorindex

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/halcyon-labs/docq-cli/internal/core/domain"
	"github.com/halcyon-labs/docq-cli/internal/core/ports/driven"
)

// Ensure Index implements the interface.
var _ driven.VectorIndex = (*Index)(nil)

// entry is one indexed vector. Vectors are normalised on insertion.
type entry struct {
	documentID string
	chunkID    string
	vector     []float32
	order      int
}

// scopeIndex holds one scope's entries behind its own lock, so queries in
// one scope never contend with writes in another.
type scopeIndex struct {
	mu         sync.RWMutex
	dimensions int
	nextOrder  int
	entries    []entry
}

// Index is an exact per-scope vector index.
type Index struct {
	mu     sync.Mutex
	scopes map[string]*scopeIndex
}

// New creates an empty index.
func New() *Index {
	return &Index{scopes: make(map[string]*scopeIndex)}
}

// scope returns the index for a scope, creating it if needed.
func (ix *Index) scope(name string) *scopeIndex {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	s, ok := ix.scopes[name]
	if !ok {
		s = &scopeIndex{}
		ix.scopes[name] = s
	}
	return s
}

// Add inserts a vector for a chunk within a scope. The first insertion
// fixes the scope's dimensionality; later vectors must match it.
func (ix *Index) Add(_ context.Context, scope, documentID, chunkID string, vector []float32) error {
	if len(vector) == 0 {
		return fmt.Errorf("%w: empty vector", domain.ErrInvalidInput)
	}

	s := ix.scope(scope)
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.dimensions == 0 {
		s.dimensions = len(vector)
	} else if len(vector) != s.dimensions {
		return fmt.Errorf("%w: scope %s expects %d dimensions, got %d",
			domain.ErrDimensionMismatch, scope, s.dimensions, len(vector))
	}

	s.entries = append(s.entries, entry{
		documentID: documentID,
		chunkID:    chunkID,
		vector:     normalise(vector),
		order:      s.nextOrder,
	})
	s.nextOrder++
	return nil
}

// Remove deletes all entries for a document within a scope.
// Unknown scopes and documents are no-ops.
func (ix *Index) Remove(_ context.Context, scope, documentID string) error {
	ix.mu.Lock()
	s, ok := ix.scopes[scope]
	ix.mu.Unlock()
	if !ok {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.entries[:0]
	for _, e := range s.entries {
		if e.documentID != documentID {
			kept = append(kept, e)
		}
	}
	s.entries = kept
	if len(s.entries) == 0 {
		// Empty scope may be re-populated with a different provider.
		s.dimensions = 0
	}
	return nil
}

// Query returns the k highest-scoring entries in the scope.
func (ix *Index) Query(ctx context.Context, scope string, vector []float32, k int) ([]driven.VectorHit, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if k <= 0 {
		return nil, fmt.Errorf("%w: k must be positive", domain.ErrInvalidInput)
	}

	ix.mu.Lock()
	s, ok := ix.scopes[scope]
	ix.mu.Unlock()
	if !ok {
		return nil, nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.entries) == 0 {
		return nil, nil
	}
	if len(vector) != s.dimensions {
		return nil, fmt.Errorf("%w: scope %s expects %d dimensions, got %d",
			domain.ErrDimensionMismatch, scope, s.dimensions, len(vector))
	}

	query := normalise(vector)

	type scored struct {
		entry *entry
		score float64
	}
	results := make([]scored, len(s.entries))
	for i := range s.entries {
		results[i] = scored{entry: &s.entries[i], score: dot(s.entries[i].vector, query)}
	}

	// Descending score; insertion order breaks ties deterministically.
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].score != results[j].score {
			return results[i].score > results[j].score
		}
		return results[i].entry.order < results[j].entry.order
	})

	if k > len(results) {
		k = len(results)
	}

	hits := make([]driven.VectorHit, k)
	for i := 0; i < k; i++ {
		hits[i] = driven.VectorHit{
			DocumentID: results[i].entry.documentID,
			ChunkID:    results[i].entry.chunkID,
			Score:      results[i].score,
		}
	}
	return hits, nil
}

// Size returns the number of entries in a scope.
func (ix *Index) Size(scope string) int {
	ix.mu.Lock()
	s, ok := ix.scopes[scope]
	ix.mu.Unlock()
	if !ok {
		return 0
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Close releases resources.
func (ix *Index) Close() error {
	return nil
}

// normalise returns the L2-normalised copy of v.
func normalise(v []float32) []float32 {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	norm := math.Sqrt(sum)
	if norm == 0 {
		return append([]float32(nil), v...)
	}

	out := make([]float32, len(v))
	for i, x := range v {
		out[i] = float32(float64(x) / norm)
	}
	return out
}

// dot computes the inner product of two equal-length vectors.
func dot(a, b []float32) float64 {
	var sum float64
	for i := range a {
		sum += float64(a[i]) * float64(b[i])
	}
	return sum
}
