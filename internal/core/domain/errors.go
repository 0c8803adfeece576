package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidChunkConfig indicates chunking parameters violate their
	// preconditions (non-positive window, or overlap >= window).
	// This is caller misuse, not a transient condition.
	ErrInvalidChunkConfig = errors.New("invalid chunking configuration")

	// ErrExtractionFailed indicates text extraction rejected the input file
	// (corrupt, password-protected, or empty). Terminal for that document.
	ErrExtractionFailed = errors.New("text extraction failed")

	// ErrEmbeddingProvider indicates the embedding provider call failed.
	// Transient; callers decide retry policy.
	ErrEmbeddingProvider = errors.New("embedding provider failed")

	// ErrAnswerProvider indicates the answer-synthesis provider call failed.
	// Transient; retrieval results may still be usable.
	ErrAnswerProvider = errors.New("answer provider failed")

	// ErrIngestInProgress indicates an ingestion is already running for
	// the document. Callers should retry later or treat as in-flight.
	ErrIngestInProgress = errors.New("ingestion in progress")

	// ErrNoDocumentsIndexed indicates a query scope with zero index entries.
	// Not a fault; answer synthesis is skipped.
	ErrNoDocumentsIndexed = errors.New("no documents indexed")

	// ErrDimensionMismatch indicates a vector whose dimensionality differs
	// from the scope it is being added to. Mixing embedding providers
	// within one scope is rejected.
	ErrDimensionMismatch = errors.New("vector dimension mismatch")

	// ErrRateLimited indicates a provider rate limit was exceeded.
	ErrRateLimited = errors.New("rate limited")

	// ErrEmbeddingUnavailable indicates the embedding service is not configured.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")

	// ErrLLMUnavailable indicates the LLM service is not configured.
	// Answer synthesis and summaries are disabled without it.
	ErrLLMUnavailable = errors.New("LLM service unavailable")
)
