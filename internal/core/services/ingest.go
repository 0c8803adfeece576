package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/halcyon-labs/docq-cli/internal/core/domain"
	"github.com/halcyon-labs/docq-cli/internal/core/ports/driven"
	"github.com/halcyon-labs/docq-cli/internal/core/ports/driving"
	"github.com/halcyon-labs/docq-cli/internal/logger"
)

// Ensure IngestService implements the interface.
var _ driving.Ingestor = (*IngestService)(nil)

// DefaultEmbedWorkers bounds concurrent embedding provider calls per
// ingestion. Unbounded fan-out across a document's chunks would defeat
// the provider rate limiter.
const DefaultEmbedWorkers = 4

// StaleProcessingThreshold is how long a document may sit in processing
// before crash recovery fails it.
const StaleProcessingThreshold = 15 * time.Minute

// Stable reason codes recorded on failed documents. Raw provider error
// text is logged, never stored.
const (
	reasonExtraction      = "extraction_failed"
	reasonNoText          = "no_text_extracted"
	reasonEmbedding       = "embedding_failed"
	reasonIndexing        = "indexing_failed"
	reasonStaleProcessing = "stale_processing"
)

// IngestService runs the extraction -> chunking -> embedding -> indexing
// pipeline for one document at a time per document ID. Independent
// documents ingest fully in parallel.
type IngestService struct {
	docStore  driven.DocumentStore
	extractor driven.TextExtractor
	chunker   driven.Chunker
	cache     driven.EmbeddingCache
	index     driven.VectorIndex
	workers   int

	// In-flight tracking. At most one active ingestion per document.
	mu     sync.RWMutex
	active map[string]*driving.IngestStatus
}

// NewIngestService creates a new ingestion service. workers bounds the
// concurrent embedding calls per document; zero means DefaultEmbedWorkers.
func NewIngestService(
	docStore driven.DocumentStore,
	extractor driven.TextExtractor,
	chunker driven.Chunker,
	cache driven.EmbeddingCache,
	index driven.VectorIndex,
	workers int,
) *IngestService {
	if workers <= 0 {
		workers = DefaultEmbedWorkers
	}
	return &IngestService{
		docStore:  docStore,
		extractor: extractor,
		chunker:   chunker,
		cache:     cache,
		index:     index,
		workers:   workers,
		active:    make(map[string]*driving.IngestStatus),
	}
}

// Ingest processes one document end to end.
//
//nolint:gocyclo // Pipeline orchestration with necessary sequential steps
func (s *IngestService) Ingest(ctx context.Context, documentID string) error {
	doc, err := s.docStore.GetDocument(ctx, documentID)
	if err != nil {
		return fmt.Errorf("get document: %w", err)
	}

	// Serialise per document: a second request while one is in flight
	// is rejected rather than queued.
	status := &driving.IngestStatus{DocumentID: documentID, Running: true}
	s.mu.Lock()
	if _, running := s.active[documentID]; running {
		s.mu.Unlock()
		return fmt.Errorf("document %s: %w", documentID, domain.ErrIngestInProgress)
	}
	s.active[documentID] = status
	s.mu.Unlock()
	defer s.clearStatus(documentID)

	logger.Section("Ingestion")
	logger.Info("Ingesting document %s (%s)", doc.ID, doc.Filename)

	// Re-ingestion replaces everything derived from the document, so the
	// index never holds a stale subset.
	if err := s.index.Remove(ctx, doc.OwnerID, doc.ID); err != nil {
		return fmt.Errorf("clear index entries: %w", err)
	}
	if err := s.docStore.DeleteChunks(ctx, doc.ID); err != nil {
		return fmt.Errorf("clear chunks: %w", err)
	}

	// Persist the transition before any slow work; crash recovery keys
	// off documents stuck in this state.
	if err := s.docStore.UpdateStatus(ctx, doc.ID, domain.StatusProcessing, ""); err != nil {
		return fmt.Errorf("mark processing: %w", err)
	}

	raw, err := s.docStore.GetRaw(ctx, doc.ID)
	if err != nil {
		return s.fail(ctx, doc.ID, reasonExtraction, fmt.Errorf("get raw bytes: %w", err))
	}

	pages, err := s.extractor.Extract(ctx, raw)
	if err != nil {
		logger.Warn("Extraction failed for %s: %v", doc.ID, err)
		return s.fail(ctx, doc.ID, reasonExtraction, fmt.Errorf("%w: %w", domain.ErrExtractionFailed, err))
	}

	chunks := s.chunker.Chunk(pages)
	if len(chunks) == 0 {
		return s.fail(ctx, doc.ID, reasonNoText, fmt.Errorf("%w: document produced no chunks", domain.ErrExtractionFailed))
	}
	for i := range chunks {
		chunks[i].ID = uuid.New().String()
		chunks[i].DocumentID = doc.ID
	}
	logger.Debug("Chunked %s into %d chunks over %d pages", doc.ID, len(chunks), len(pages))

	vectors, err := s.embedAll(ctx, chunks, status)
	if err != nil {
		// Roll back anything indexed for this document; a partially
		// indexed document must never be a terminal state.
		if rmErr := s.index.Remove(ctx, doc.OwnerID, doc.ID); rmErr != nil {
			logger.Warn("Rollback of index entries for %s failed: %v", doc.ID, rmErr)
		}
		return s.fail(ctx, doc.ID, reasonEmbedding, err)
	}

	for i := range chunks {
		if err := s.index.Add(ctx, doc.OwnerID, doc.ID, chunks[i].ID, vectors[i]); err != nil {
			if rmErr := s.index.Remove(ctx, doc.OwnerID, doc.ID); rmErr != nil {
				logger.Warn("Rollback of index entries for %s failed: %v", doc.ID, rmErr)
			}
			return s.fail(ctx, doc.ID, reasonIndexing, fmt.Errorf("index chunk %d: %w", i, err))
		}
	}

	if err := s.docStore.SaveChunks(ctx, chunks); err != nil {
		if rmErr := s.index.Remove(ctx, doc.OwnerID, doc.ID); rmErr != nil {
			logger.Warn("Rollback of index entries for %s failed: %v", doc.ID, rmErr)
		}
		return s.fail(ctx, doc.ID, reasonIndexing, fmt.Errorf("save chunks: %w", err))
	}

	doc.PageCount = len(pages)
	doc.Status = domain.StatusReady
	doc.ErrorDetail = ""
	doc.UpdatedAt = time.Now().UTC()
	if err := s.docStore.SaveDocument(ctx, doc); err != nil {
		return fmt.Errorf("mark ready: %w", err)
	}

	logger.Info("Document %s ready: %d chunks indexed", doc.ID, len(chunks))
	return nil
}

// embedAll obtains vectors for all chunks through the cache, with a fixed
// pool of workers. The first failure cancels the rest.
func (s *IngestService) embedAll(
	ctx context.Context,
	chunks []domain.Chunk,
	status *driving.IngestStatus,
) ([][]float32, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	vectors := make([][]float32, len(chunks))
	sem := make(chan struct{}, s.workers)

	var wg sync.WaitGroup
	var mu sync.Mutex
	var firstErr error

	for i := range chunks {
		select {
		case sem <- struct{}{}:
		case <-ctx.Done():
			wg.Wait()
			return nil, ctx.Err()
		}

		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			defer func() { <-sem }()

			vector, err := s.cache.EmbedFingerprint(ctx, chunks[i].Fingerprint, chunks[i].Content)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				if firstErr == nil {
					firstErr = fmt.Errorf("embed chunk %d: %w", chunks[i].Position, err)
					cancel()
				}
				return
			}
			vectors[i] = vector
			s.mu.Lock()
			status.ChunksEmbedded++
			s.mu.Unlock()
		}(i)
	}

	wg.Wait()
	if firstErr != nil {
		return nil, firstErr
	}
	return vectors, nil
}

// fail records a terminal failed status with a stable reason code and
// returns the underlying error to the caller.
func (s *IngestService) fail(ctx context.Context, documentID, reason string, err error) error {
	if updateErr := s.docStore.UpdateStatus(ctx, documentID, domain.StatusFailed, reason); updateErr != nil {
		logger.Warn("Failed to mark %s failed: %v", documentID, updateErr)
	}
	return err
}

// Status reports the ingestion state of a document.
func (s *IngestService) Status(_ context.Context, documentID string) (*driving.IngestStatus, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if status, ok := s.active[documentID]; ok {
		// Return a copy to avoid race conditions
		return &driving.IngestStatus{
			DocumentID:     status.DocumentID,
			Running:        status.Running,
			ChunksEmbedded: status.ChunksEmbedded,
		}, nil
	}

	return &driving.IngestStatus{DocumentID: documentID, Running: false}, nil
}

// RecoverStale fails documents stuck in processing beyond the staleness
// threshold. Called at startup so a crash mid-ingestion self-heals.
func (s *IngestService) RecoverStale(ctx context.Context) (int, error) {
	cutoff := time.Now().Add(-StaleProcessingThreshold)
	stale, err := s.docStore.ListStale(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("list stale documents: %w", err)
	}

	recovered := 0
	var errs []error
	for i := range stale {
		s.mu.RLock()
		_, running := s.active[stale[i].ID]
		s.mu.RUnlock()
		if running {
			continue
		}

		logger.Info("Recovering stale document %s (processing since %s)",
			stale[i].ID, stale[i].UpdatedAt.Format(time.RFC3339))
		if err := s.docStore.UpdateStatus(ctx, stale[i].ID, domain.StatusFailed, reasonStaleProcessing); err != nil {
			errs = append(errs, fmt.Errorf("recover %s: %w", stale[i].ID, err))
			continue
		}
		recovered++
	}

	if len(errs) > 0 {
		return recovered, errors.Join(errs...)
	}
	return recovered, nil
}

// clearStatus removes the in-flight marker for a document.
func (s *IngestService) clearStatus(documentID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.active, documentID)
}
