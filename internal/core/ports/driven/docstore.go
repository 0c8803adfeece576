package driven

import (
	"context"
	"time"

	"github.com/halcyon-labs/docq-cli/internal/core/domain"
)

// DocumentStore persists documents and chunks.
// Backed by SQLite for metadata storage.
type DocumentStore interface {
	// SaveDocument stores or updates a document.
	SaveDocument(ctx context.Context, doc *domain.Document) error

	// UpdateStatus records a status transition with an optional error detail.
	UpdateStatus(ctx context.Context, id string, status domain.DocumentStatus, errorDetail string) error

	// SaveChunks stores chunks for a document, replacing any existing set.
	SaveChunks(ctx context.Context, chunks []domain.Chunk) error

	// SaveRaw stores the original PDF bytes for a document, so the
	// document can be re-ingested without a fresh upload.
	SaveRaw(ctx context.Context, documentID string, data []byte) error

	// GetRaw retrieves the original PDF bytes for a document.
	GetRaw(ctx context.Context, documentID string) ([]byte, error)

	// GetDocument retrieves a document by ID.
	GetDocument(ctx context.Context, id string) (*domain.Document, error)

	// GetChunks retrieves all chunks for a document, ordered by position.
	GetChunks(ctx context.Context, documentID string) ([]domain.Chunk, error)

	// GetChunk retrieves a specific chunk by ID.
	GetChunk(ctx context.Context, id string) (*domain.Chunk, error)

	// DeleteChunks removes all chunks for a document.
	DeleteChunks(ctx context.Context, documentID string) error

	// DeleteDocument removes a document and its chunks.
	DeleteDocument(ctx context.Context, id string) error

	// ListDocuments returns documents for an owner.
	ListDocuments(ctx context.Context, ownerID string) ([]domain.Document, error)

	// ListStale returns documents stuck in processing since before cutoff.
	// Used by crash recovery to fail abandoned ingestions.
	ListStale(ctx context.Context, cutoff time.Time) ([]domain.Document, error)
}
