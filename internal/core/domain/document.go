package domain

import "time"

// DocumentStatus tracks a document through the ingestion pipeline.
// Transitions are monotonic: pending -> processing -> ready | failed.
// A failed document may be re-ingested, which restarts the cycle.
type DocumentStatus string

const (
	// StatusPending means the document is uploaded but not yet processed.
	StatusPending DocumentStatus = "pending"

	// StatusProcessing means ingestion is in flight.
	StatusProcessing DocumentStatus = "processing"

	// StatusReady means the document is fully chunked and indexed.
	StatusReady DocumentStatus = "ready"

	// StatusFailed means ingestion failed; ErrorDetail holds the reason.
	StatusFailed DocumentStatus = "failed"
)

// Document represents an uploaded PDF and its processing state.
type Document struct {
	// ID is the unique identifier for the document.
	ID string

	// OwnerID identifies who uploaded the document. It also names the
	// vector index scope the document's chunks belong to.
	OwnerID string

	// Filename is the original upload filename.
	Filename string

	// Status is the current ingestion state.
	Status DocumentStatus

	// PageCount is the number of pages extracted from the PDF.
	PageCount int

	// ErrorDetail holds a stable reason code when Status is failed.
	ErrorDetail string

	// UploadedAt is when the document was created.
	UploadedAt time.Time

	// UpdatedAt is when the document was last modified (status changes included).
	UpdatedAt time.Time
}

// Page is one page of extracted text, as returned by the text extractor.
type Page struct {
	// Number is the 1-based page number.
	Number int

	// Text is the plain text content of the page.
	Text string
}

// Chunk is one retrieval unit of a document. Chunks are immutable once
// created; re-ingesting a document replaces them wholesale.
type Chunk struct {
	// ID is the unique identifier for the chunk.
	ID string

	// DocumentID links to the owning Document.
	DocumentID string

	// Position is the zero-based sequence index within the document.
	// Positions are contiguous and define citation order.
	Position int

	// PageStart and PageEnd are the 1-based page numbers the chunk spans.
	PageStart int
	PageEnd   int

	// StartOffset and EndOffset are rune offsets into the concatenated
	// page text, kept for traceability back to the source.
	StartOffset int
	EndOffset   int

	// Content is the raw chunk text.
	Content string

	// Fingerprint is the deterministic hash of the normalised content,
	// used as the embedding cache key.
	Fingerprint string
}
