package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/halcyon-labs/docq-cli/internal/core/domain"
)

func TestDocumentStore_SaveDocumentCopies(t *testing.T) {
	store := NewDocumentStore()
	ctx := context.Background()

	doc := &domain.Document{ID: "doc-1", OwnerID: "alice", Filename: "a.pdf", Status: domain.StatusPending}
	require.NoError(t, store.SaveDocument(ctx, doc))

	// Mutating the caller's struct must not affect the stored copy.
	doc.Filename = "changed.pdf"

	got, err := store.GetDocument(ctx, "doc-1")
	require.NoError(t, err)
	assert.Equal(t, "a.pdf", got.Filename)
}

func TestDocumentStore_UpdateStatusStampsTime(t *testing.T) {
	store := NewDocumentStore()
	ctx := context.Background()

	old := time.Now().UTC().Add(-time.Hour)
	require.NoError(t, store.SaveDocument(ctx, &domain.Document{
		ID: "doc-1", OwnerID: "alice", Status: domain.StatusPending, UpdatedAt: old,
	}))

	require.NoError(t, store.UpdateStatus(ctx, "doc-1", domain.StatusProcessing, ""))

	got, err := store.GetDocument(ctx, "doc-1")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusProcessing, got.Status)
	assert.True(t, got.UpdatedAt.After(old), "UpdatedAt should be stamped on transition")

	err = store.UpdateStatus(ctx, "missing", domain.StatusReady, "")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDocumentStore_RawBytesIsolated(t *testing.T) {
	store := NewDocumentStore()
	ctx := context.Background()

	data := []byte{1, 2, 3}
	require.NoError(t, store.SaveRaw(ctx, "doc-1", data))
	data[0] = 99

	got, err := store.GetRaw(ctx, "doc-1")
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, got)

	got[1] = 99
	again, err := store.GetRaw(ctx, "doc-1")
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, again)
}

func TestDocumentStore_GetChunksSortedByPosition(t *testing.T) {
	store := NewDocumentStore()
	ctx := context.Background()

	require.NoError(t, store.SaveChunks(ctx, []domain.Chunk{
		{ID: "c-2", DocumentID: "doc-1", Position: 1},
		{ID: "c-1", DocumentID: "doc-1", Position: 0},
	}))

	chunks, err := store.GetChunks(ctx, "doc-1")
	require.NoError(t, err)
	require.Len(t, chunks, 2)
	assert.Equal(t, "c-1", chunks[0].ID)
	assert.Equal(t, "c-2", chunks[1].ID)
}

func TestDocumentStore_ListStaleCutoff(t *testing.T) {
	store := NewDocumentStore()
	ctx := context.Background()

	now := time.Now().UTC()
	require.NoError(t, store.SaveDocument(ctx, &domain.Document{
		ID: "stuck", Status: domain.StatusProcessing, UpdatedAt: now.Add(-time.Hour),
	}))
	require.NoError(t, store.SaveDocument(ctx, &domain.Document{
		ID: "fresh", Status: domain.StatusProcessing, UpdatedAt: now,
	}))
	require.NoError(t, store.SaveDocument(ctx, &domain.Document{
		ID: "done", Status: domain.StatusReady, UpdatedAt: now.Add(-time.Hour),
	}))

	stale, err := store.ListStale(ctx, now.Add(-15*time.Minute))
	require.NoError(t, err)
	require.Len(t, stale, 1)
	assert.Equal(t, "stuck", stale[0].ID)
}

func TestDocumentStore_ListDocumentsByUploadTime(t *testing.T) {
	store := NewDocumentStore()
	ctx := context.Background()

	base := time.Now().UTC()
	require.NoError(t, store.SaveDocument(ctx, &domain.Document{
		ID: "second", OwnerID: "alice", UploadedAt: base.Add(time.Minute),
	}))
	require.NoError(t, store.SaveDocument(ctx, &domain.Document{
		ID: "first", OwnerID: "alice", UploadedAt: base,
	}))
	require.NoError(t, store.SaveDocument(ctx, &domain.Document{
		ID: "other", OwnerID: "bob", UploadedAt: base,
	}))

	docs, err := store.ListDocuments(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "first", docs[0].ID)
	assert.Equal(t, "second", docs[1].ID)
}

func TestEmbedCacheStore_RoundTrip(t *testing.T) {
	store := NewEmbedCacheStore()
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, &domain.EmbeddingRecord{
		Fingerprint: "fp-1", Provider: "p1", Vector: []float32{1, 2},
	}))

	got, err := store.Get(ctx, "fp-1", "p1")
	require.NoError(t, err)
	assert.Equal(t, []float32{1, 2}, got.Vector)

	_, err = store.Get(ctx, "fp-1", "p2")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestHistoryStore_ListLimitNewestFirst(t *testing.T) {
	store := NewHistoryStore()
	ctx := context.Background()

	base := time.Now().UTC()
	for i := 0; i < 3; i++ {
		require.NoError(t, store.Save(ctx, &domain.QARecord{
			ID: string(rune('a' + i)), OwnerID: "alice",
			CreatedAt: base.Add(time.Duration(i) * time.Second),
		}))
	}

	records, err := store.List(ctx, "alice", 2)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "c", records[0].ID)
	assert.Equal(t, "b", records[1].ID)
}

func TestHistoryStore_DeleteByDocumentMatchesCitations(t *testing.T) {
	store := NewHistoryStore()
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, &domain.QARecord{
		ID: "qa-1", OwnerID: "alice",
		Citations: []domain.Citation{{DocumentID: "doc-1"}},
	}))
	require.NoError(t, store.Save(ctx, &domain.QARecord{
		ID: "qa-2", OwnerID: "alice",
		Citations: []domain.Citation{{DocumentID: "doc-2"}},
	}))

	require.NoError(t, store.DeleteByDocument(ctx, "doc-1"))

	records, err := store.List(ctx, "alice", 10)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "qa-2", records[0].ID)
}

func TestSummaryStore_DeleteByDocument(t *testing.T) {
	store := NewSummaryStore()
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, &domain.Summary{ID: "s-1", OwnerID: "alice", DocumentID: "doc-1"}))
	require.NoError(t, store.Save(ctx, &domain.Summary{ID: "s-2", OwnerID: "alice", DocumentID: "doc-2"}))

	require.NoError(t, store.DeleteByDocument(ctx, "doc-1"))

	list, err := store.List(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "s-2", list[0].ID)
}

func TestQuestionStore_ListNewestFirst(t *testing.T) {
	store := NewQuestionStore()
	ctx := context.Background()

	base := time.Now().UTC()
	require.NoError(t, store.Save(ctx, &domain.QuestionSet{
		ID: "qs-1", OwnerID: "alice", DocumentID: "doc-1",
		Type: domain.QuestionsMCQ, Count: 3, CreatedAt: base.Add(-time.Minute),
	}))
	require.NoError(t, store.Save(ctx, &domain.QuestionSet{
		ID: "qs-2", OwnerID: "alice", DocumentID: "doc-1",
		Type: domain.QuestionsEssay, Count: 2, CreatedAt: base,
	}))
	require.NoError(t, store.Save(ctx, &domain.QuestionSet{
		ID: "qs-3", OwnerID: "bob", DocumentID: "doc-1",
		Type: domain.QuestionsMixed, Count: 5, CreatedAt: base,
	}))

	list, err := store.List(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "qs-2", list[0].ID)
	assert.Equal(t, "qs-1", list[1].ID)
}

func TestQuestionStore_DeleteByDocument(t *testing.T) {
	store := NewQuestionStore()
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, &domain.QuestionSet{ID: "qs-1", OwnerID: "alice", DocumentID: "doc-1"}))
	require.NoError(t, store.Save(ctx, &domain.QuestionSet{ID: "qs-2", OwnerID: "alice", DocumentID: "doc-2"}))

	require.NoError(t, store.DeleteByDocument(ctx, "doc-1"))

	list, err := store.List(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "qs-2", list[0].ID)

	require.NoError(t, store.Delete(ctx, "qs-2"))
	list, err = store.List(ctx, "alice")
	require.NoError(t, err)
	assert.Empty(t, list)
}
