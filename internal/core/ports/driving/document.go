package driving

import (
	"context"

	"github.com/halcyon-labs/docq-cli/internal/core/domain"
)

// DocumentService manages uploaded documents.
type DocumentService interface {
	// Upload creates a pending document record from raw PDF bytes.
	// Ingestion is a separate step; see Ingestor.
	Upload(ctx context.Context, ownerID, filename string, data []byte) (*domain.Document, error)

	// Get retrieves a document by ID.
	Get(ctx context.Context, documentID string) (*domain.Document, error)

	// List returns all documents for an owner.
	List(ctx context.Context, ownerID string) ([]domain.Document, error)

	// Delete removes a document, cascading to its chunks, index entries,
	// history records, and summaries.
	Delete(ctx context.Context, documentID string) error

	// Content returns the concatenated chunk text of a ready document.
	Content(ctx context.Context, documentID string) (string, error)
}
