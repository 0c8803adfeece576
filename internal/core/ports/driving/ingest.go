package driving

import "context"

// Ingestor runs the extraction -> chunking -> embedding -> indexing
// pipeline for uploaded documents.
type Ingestor interface {
	// Ingest processes one document end to end. A second call for the
	// same document while one is in flight fails with
	// domain.ErrIngestInProgress. Re-ingesting a failed or ready document
	// replaces all prior chunks and index entries.
	Ingest(ctx context.Context, documentID string) error

	// Status reports the ingestion state of a document.
	Status(ctx context.Context, documentID string) (*IngestStatus, error)

	// RecoverStale fails documents stuck in processing beyond the
	// staleness threshold, making them eligible for re-ingestion.
	// Returns the number of documents recovered.
	RecoverStale(ctx context.Context) (int, error)
}

// IngestStatus represents the current state of an ingestion.
type IngestStatus struct {
	// DocumentID identifies the document.
	DocumentID string

	// Running indicates if ingestion is currently in progress.
	Running bool

	// ChunksEmbedded is the count of chunks embedded so far.
	ChunksEmbedded int
}
