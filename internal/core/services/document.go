package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/halcyon-labs/docq-cli/internal/core/domain"
	"github.com/halcyon-labs/docq-cli/internal/core/ports/driven"
	"github.com/halcyon-labs/docq-cli/internal/core/ports/driving"
	"github.com/halcyon-labs/docq-cli/internal/logger"
)

// Ensure DocumentService implements the interface.
var _ driving.DocumentService = (*DocumentService)(nil)

// DocumentService manages uploaded documents and their derived state.
type DocumentService struct {
	docStore      driven.DocumentStore
	index         driven.VectorIndex
	historyStore  driven.HistoryStore
	summaryStore  driven.SummaryStore
	questionStore driven.QuestionStore
}

// NewDocumentService creates a new document service.
// historyStore, summaryStore and questionStore are optional (can be nil).
func NewDocumentService(
	docStore driven.DocumentStore,
	index driven.VectorIndex,
	historyStore driven.HistoryStore,
	summaryStore driven.SummaryStore,
	questionStore driven.QuestionStore,
) *DocumentService {
	return &DocumentService{
		docStore:      docStore,
		index:         index,
		historyStore:  historyStore,
		summaryStore:  summaryStore,
		questionStore: questionStore,
	}
}

// Upload creates a pending document record from raw PDF bytes.
func (s *DocumentService) Upload(ctx context.Context, ownerID, filename string, data []byte) (*domain.Document, error) {
	if ownerID == "" {
		return nil, fmt.Errorf("%w: owner is required", domain.ErrInvalidInput)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty file", domain.ErrInvalidInput)
	}
	if !strings.HasSuffix(strings.ToLower(filename), ".pdf") {
		return nil, fmt.Errorf("%w: only PDF files are supported", domain.ErrInvalidInput)
	}

	now := time.Now().UTC()
	doc := &domain.Document{
		ID:         uuid.New().String(),
		OwnerID:    ownerID,
		Filename:   filename,
		Status:     domain.StatusPending,
		UploadedAt: now,
		UpdatedAt:  now,
	}

	if err := s.docStore.SaveDocument(ctx, doc); err != nil {
		return nil, fmt.Errorf("save document: %w", err)
	}
	if err := s.docStore.SaveRaw(ctx, doc.ID, data); err != nil {
		return nil, fmt.Errorf("save raw bytes: %w", err)
	}

	logger.Info("Uploaded %s as document %s (%d bytes)", filename, doc.ID, len(data))
	return doc, nil
}

// Get retrieves a document by ID.
func (s *DocumentService) Get(ctx context.Context, documentID string) (*domain.Document, error) {
	return s.docStore.GetDocument(ctx, documentID)
}

// List returns all documents for an owner.
func (s *DocumentService) List(ctx context.Context, ownerID string) ([]domain.Document, error) {
	return s.docStore.ListDocuments(ctx, ownerID)
}

// Delete removes a document, cascading to everything derived from it.
// After Delete, no query can cite the document.
func (s *DocumentService) Delete(ctx context.Context, documentID string) error {
	doc, err := s.docStore.GetDocument(ctx, documentID)
	if err != nil {
		return fmt.Errorf("get document: %w", err)
	}

	if err := s.index.Remove(ctx, doc.OwnerID, doc.ID); err != nil {
		return fmt.Errorf("remove index entries: %w", err)
	}

	if s.historyStore != nil {
		if err := s.historyStore.DeleteByDocument(ctx, doc.ID); err != nil {
			return fmt.Errorf("delete history: %w", err)
		}
	}
	if s.summaryStore != nil {
		if err := s.summaryStore.DeleteByDocument(ctx, doc.ID); err != nil {
			return fmt.Errorf("delete summaries: %w", err)
		}
	}
	if s.questionStore != nil {
		if err := s.questionStore.DeleteByDocument(ctx, doc.ID); err != nil {
			return fmt.Errorf("delete question sets: %w", err)
		}
	}

	if err := s.docStore.DeleteDocument(ctx, doc.ID); err != nil {
		return fmt.Errorf("delete document: %w", err)
	}

	logger.Info("Deleted document %s and derived state", doc.ID)
	return nil
}

// Content returns the concatenated chunk text of a document.
func (s *DocumentService) Content(ctx context.Context, documentID string) (string, error) {
	if _, err := s.docStore.GetDocument(ctx, documentID); err != nil {
		return "", err
	}

	chunks, err := s.docStore.GetChunks(ctx, documentID)
	if err != nil {
		return "", fmt.Errorf("get chunks: %w", err)
	}

	var builder strings.Builder
	for i := range chunks {
		if i > 0 {
			builder.WriteString("\n")
		}
		builder.WriteString(chunks[i].Content)
	}
	return builder.String(), nil
}
