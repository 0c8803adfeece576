package vectorindex

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/halcyon-labs/docq-cli/internal/core/domain"
)

func TestAdd_RejectsEmptyVector(t *testing.T) {
	ix := New()

	err := ix.Add(context.Background(), "owner", "doc1", "chunk1", nil)

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAdd_EnforcesDimensions(t *testing.T) {
	ix := New()
	ctx := context.Background()

	require.NoError(t, ix.Add(ctx, "owner", "doc1", "chunk1", []float32{1, 0, 0}))

	err := ix.Add(ctx, "owner", "doc1", "chunk2", []float32{1, 0})
	assert.ErrorIs(t, err, domain.ErrDimensionMismatch)

	// A different scope has its own dimensionality.
	assert.NoError(t, ix.Add(ctx, "other", "doc1", "chunk1", []float32{1, 0}))
}

func TestQuery_ExactMatchFirst(t *testing.T) {
	ix := New()
	ctx := context.Background()

	require.NoError(t, ix.Add(ctx, "owner", "doc1", "chunk1", []float32{1, 0, 0}))
	require.NoError(t, ix.Add(ctx, "owner", "doc1", "chunk2", []float32{0, 1, 0}))
	require.NoError(t, ix.Add(ctx, "owner", "doc1", "chunk3", []float32{0.9, 0.1, 0}))

	hits, err := ix.Query(ctx, "owner", []float32{1, 0, 0}, 3)
	require.NoError(t, err)

	require.Len(t, hits, 3)
	assert.Equal(t, "chunk1", hits[0].ChunkID)
	assert.InDelta(t, 1.0, hits[0].Score, 1e-6)
	assert.Equal(t, "chunk3", hits[1].ChunkID)
	assert.Equal(t, "chunk2", hits[2].ChunkID)

	// Scores are in descending order.
	assert.GreaterOrEqual(t, hits[0].Score, hits[1].Score)
	assert.GreaterOrEqual(t, hits[1].Score, hits[2].Score)
}

func TestQuery_ScaleInvariant(t *testing.T) {
	ix := New()
	ctx := context.Background()

	// Same direction, different magnitude: cosine treats them equally.
	require.NoError(t, ix.Add(ctx, "owner", "doc1", "chunk1", []float32{2, 0}))

	hits, err := ix.Query(ctx, "owner", []float32{0.5, 0}, 1)
	require.NoError(t, err)

	require.Len(t, hits, 1)
	assert.InDelta(t, 1.0, hits[0].Score, 1e-6)
}

func TestQuery_TieBreakByInsertionOrder(t *testing.T) {
	ix := New()
	ctx := context.Background()

	// Identical vectors tie exactly; earlier insertion wins.
	require.NoError(t, ix.Add(ctx, "owner", "docA", "first", []float32{1, 1}))
	require.NoError(t, ix.Add(ctx, "owner", "docB", "second", []float32{1, 1}))

	hits, err := ix.Query(ctx, "owner", []float32{1, 1}, 2)
	require.NoError(t, err)

	require.Len(t, hits, 2)
	assert.Equal(t, "first", hits[0].ChunkID)
	assert.Equal(t, "second", hits[1].ChunkID)
}

func TestQuery_ClampsKToSize(t *testing.T) {
	ix := New()
	ctx := context.Background()

	require.NoError(t, ix.Add(ctx, "owner", "doc1", "chunk1", []float32{1, 0}))

	hits, err := ix.Query(ctx, "owner", []float32{1, 0}, 100)
	require.NoError(t, err)
	assert.Len(t, hits, 1)
}

func TestQuery_InvalidK(t *testing.T) {
	ix := New()

	_, err := ix.Query(context.Background(), "owner", []float32{1, 0}, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestQuery_UnknownScope(t *testing.T) {
	ix := New()

	hits, err := ix.Query(context.Background(), "nobody", []float32{1, 0}, 5)
	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestQuery_DimensionMismatch(t *testing.T) {
	ix := New()
	ctx := context.Background()

	require.NoError(t, ix.Add(ctx, "owner", "doc1", "chunk1", []float32{1, 0, 0}))

	_, err := ix.Query(ctx, "owner", []float32{1, 0}, 1)
	assert.ErrorIs(t, err, domain.ErrDimensionMismatch)
}

func TestRemove_DeletesDocumentEntries(t *testing.T) {
	ix := New()
	ctx := context.Background()

	require.NoError(t, ix.Add(ctx, "owner", "doc1", "chunk1", []float32{1, 0}))
	require.NoError(t, ix.Add(ctx, "owner", "doc1", "chunk2", []float32{0, 1}))
	require.NoError(t, ix.Add(ctx, "owner", "doc2", "chunk3", []float32{1, 1}))

	require.NoError(t, ix.Remove(ctx, "owner", "doc1"))

	assert.Equal(t, 1, ix.Size("owner"))
	hits, err := ix.Query(ctx, "owner", []float32{1, 1}, 5)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "chunk3", hits[0].ChunkID)
}

func TestRemove_Idempotent(t *testing.T) {
	ix := New()
	ctx := context.Background()

	require.NoError(t, ix.Add(ctx, "owner", "doc1", "chunk1", []float32{1, 0}))

	require.NoError(t, ix.Remove(ctx, "owner", "doc1"))
	require.NoError(t, ix.Remove(ctx, "owner", "doc1"))
	require.NoError(t, ix.Remove(ctx, "owner", "missing"))
	require.NoError(t, ix.Remove(ctx, "unknown-scope", "doc1"))

	assert.Equal(t, 0, ix.Size("owner"))
}

func TestRemove_EmptyScopeResetsDimensions(t *testing.T) {
	ix := New()
	ctx := context.Background()

	require.NoError(t, ix.Add(ctx, "owner", "doc1", "chunk1", []float32{1, 0, 0}))
	require.NoError(t, ix.Remove(ctx, "owner", "doc1"))

	// A fresh dimensionality is acceptable once the scope is empty.
	assert.NoError(t, ix.Add(ctx, "owner", "doc2", "chunk2", []float32{1, 0}))
}

func TestSize_PerScope(t *testing.T) {
	ix := New()
	ctx := context.Background()

	require.NoError(t, ix.Add(ctx, "alice", "doc1", "chunk1", []float32{1, 0}))
	require.NoError(t, ix.Add(ctx, "alice", "doc1", "chunk2", []float32{0, 1}))
	require.NoError(t, ix.Add(ctx, "bob", "doc2", "chunk3", []float32{1, 1}))

	assert.Equal(t, 2, ix.Size("alice"))
	assert.Equal(t, 1, ix.Size("bob"))
	assert.Equal(t, 0, ix.Size("carol"))
}

func TestScopeIsolation(t *testing.T) {
	ix := New()
	ctx := context.Background()

	require.NoError(t, ix.Add(ctx, "alice", "doc1", "alice-chunk", []float32{1, 0}))
	require.NoError(t, ix.Add(ctx, "bob", "doc2", "bob-chunk", []float32{1, 0}))

	hits, err := ix.Query(ctx, "alice", []float32{1, 0}, 10)
	require.NoError(t, err)

	require.Len(t, hits, 1)
	assert.Equal(t, "alice-chunk", hits[0].ChunkID)
}
