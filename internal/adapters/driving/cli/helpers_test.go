package cli

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/halcyon-labs/docq-cli/internal/core/domain"
	"github.com/halcyon-labs/docq-cli/internal/core/ports/driving"
)

// mockDocumentService implements driving.DocumentService for CLI tests.
type mockDocumentService struct {
	uploaded []string
	deleted  []string
}

var _ driving.DocumentService = (*mockDocumentService)(nil)

func (m *mockDocumentService) Upload(_ context.Context, ownerID, filename string, _ []byte) (*domain.Document, error) {
	m.uploaded = append(m.uploaded, filename)
	return &domain.Document{
		ID:       "doc-1",
		OwnerID:  ownerID,
		Filename: filename,
		Status:   domain.StatusPending,
	}, nil
}

func (m *mockDocumentService) Get(_ context.Context, documentID string) (*domain.Document, error) {
	if documentID != "doc-1" {
		return nil, domain.ErrNotFound
	}
	return &domain.Document{
		ID:         "doc-1",
		OwnerID:    "local",
		Filename:   "report.pdf",
		Status:     domain.StatusReady,
		PageCount:  3,
		UploadedAt: time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC),
		UpdatedAt:  time.Date(2026, 1, 15, 10, 1, 0, 0, time.UTC),
	}, nil
}

func (m *mockDocumentService) List(_ context.Context, ownerID string) ([]domain.Document, error) {
	return []domain.Document{
		{ID: "doc-1", OwnerID: ownerID, Filename: "report.pdf", Status: domain.StatusReady, PageCount: 3},
		{ID: "doc-2", OwnerID: ownerID, Filename: "notes.pdf", Status: domain.StatusFailed, ErrorDetail: "extraction_failed"},
	}, nil
}

func (m *mockDocumentService) Delete(_ context.Context, documentID string) error {
	if documentID != "doc-1" {
		return domain.ErrNotFound
	}
	m.deleted = append(m.deleted, documentID)
	return nil
}

func (m *mockDocumentService) Content(_ context.Context, documentID string) (string, error) {
	if documentID != "doc-1" {
		return "", domain.ErrNotFound
	}
	return "extracted document text", nil
}

// mockIngestor implements driving.Ingestor for CLI tests.
type mockIngestor struct {
	ingested     []string
	recovered    int
	recoverCalls atomic.Int32
}

var _ driving.Ingestor = (*mockIngestor)(nil)

func (m *mockIngestor) Ingest(_ context.Context, documentID string) error {
	if documentID != "doc-1" {
		return domain.ErrNotFound
	}
	m.ingested = append(m.ingested, documentID)
	return nil
}

func (m *mockIngestor) Status(_ context.Context, documentID string) (*driving.IngestStatus, error) {
	return &driving.IngestStatus{DocumentID: documentID, Running: true, ChunksEmbedded: 7}, nil
}

func (m *mockIngestor) RecoverStale(_ context.Context) (int, error) {
	m.recoverCalls.Add(1)
	return m.recovered, nil
}

// mockAnswerService implements driving.AnswerService for CLI tests.
type mockAnswerService struct {
	answerErr error
	lastOpts  driving.AnswerOptions
	lastFocus string
	lastCount int
	lastQType domain.QuestionType
}

var _ driving.AnswerService = (*mockAnswerService)(nil)

func (m *mockAnswerService) Answer(_ context.Context, _, question string, opts driving.AnswerOptions) (*domain.Answer, error) {
	m.lastOpts = opts
	answer := &domain.Answer{
		Text: "mock answer to: " + question,
		Citations: []domain.Citation{
			{DocumentID: "doc-1", Filename: "report.pdf", ChunkID: "chunk-1", PageStart: 2, PageEnd: 2, Score: 0.912},
			{DocumentID: "doc-1", Filename: "report.pdf", ChunkID: "chunk-2", PageStart: 3, PageEnd: 4, Score: 0.844},
		},
	}
	if m.answerErr != nil {
		return answer, m.answerErr
	}
	return answer, nil
}

func (m *mockAnswerService) History(_ context.Context, ownerID string, limit int) ([]domain.QARecord, error) {
	records := []domain.QARecord{
		{ID: "qa-1", OwnerID: ownerID, Question: "what is this?", AnswerText: "a test", CreatedAt: time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)},
		{ID: "qa-2", OwnerID: ownerID, Question: "and this?", AnswerText: "also a test", CreatedAt: time.Date(2026, 1, 15, 11, 0, 0, 0, time.UTC)},
	}
	if limit < len(records) {
		records = records[:limit]
	}
	return records, nil
}

func (m *mockAnswerService) Summarise(_ context.Context, documentID string, style domain.SummaryStyle, focus string) (*domain.Summary, error) {
	if !domain.ValidSummaryStyle(style) {
		return nil, domain.ErrInvalidInput
	}
	m.lastFocus = focus
	return &domain.Summary{
		ID:         "sum-1",
		DocumentID: documentID,
		Style:      style,
		Content:    "mock summary content",
	}, nil
}

func (m *mockAnswerService) ListSummaries(_ context.Context, ownerID string) ([]domain.Summary, error) {
	return []domain.Summary{
		{ID: "sum-1", OwnerID: ownerID, DocumentID: "doc-1", Style: domain.SummaryBrief,
			CreatedAt: time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)},
	}, nil
}

func (m *mockAnswerService) DeleteSummary(_ context.Context, summaryID string) error {
	if summaryID != "sum-1" {
		return domain.ErrNotFound
	}
	return nil
}

func (m *mockAnswerService) GenerateQuestions(_ context.Context, documentID string, n int, qtype domain.QuestionType) (*domain.QuestionSet, error) {
	if !domain.ValidQuestionType(qtype) {
		return nil, domain.ErrInvalidInput
	}
	m.lastCount = n
	m.lastQType = qtype
	return &domain.QuestionSet{
		ID:         "qs-1",
		DocumentID: documentID,
		Type:       qtype,
		Count:      n,
		Content:    "mock generated questions",
	}, nil
}

func (m *mockAnswerService) ListQuestionSets(_ context.Context, ownerID string) ([]domain.QuestionSet, error) {
	return []domain.QuestionSet{
		{ID: "qs-1", OwnerID: ownerID, DocumentID: "doc-1", Type: domain.QuestionsMixed, Count: 5,
			CreatedAt: time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)},
	}, nil
}

func (m *mockAnswerService) DeleteQuestionSet(_ context.Context, questionSetID string) error {
	if questionSetID != "qs-1" {
		return domain.ErrNotFound
	}
	return nil
}

// mockConfigStore is an in-memory driven.ConfigStore for CLI tests.
type mockConfigStore struct {
	values map[string]any
}

func newMockConfigStore() *mockConfigStore {
	return &mockConfigStore{values: map[string]any{
		"embedding.provider": "ollama",
		"answer.top_k":       int64(5),
	}}
}

func (m *mockConfigStore) Get(key string) (any, bool) {
	v, ok := m.values[key]
	return v, ok
}

func (m *mockConfigStore) GetString(key string) string {
	if s, ok := m.values[key].(string); ok {
		return s
	}
	return ""
}

func (m *mockConfigStore) GetInt(key string) int {
	if i, ok := m.values[key].(int64); ok {
		return int(i)
	}
	return 0
}

func (m *mockConfigStore) GetFloat(key string) float64 {
	if f, ok := m.values[key].(float64); ok {
		return f
	}
	return 0
}

func (m *mockConfigStore) Set(key string, value any) error {
	m.values[key] = value
	return nil
}

func (m *mockConfigStore) Save() error { return nil }
func (m *mockConfigStore) Load() error { return nil }

func (m *mockConfigStore) Path() string {
	return "/tmp/docq-test/config.toml"
}

// setupTestServices installs mocks and returns a cleanup that restores
// the previous services.
func setupTestServices() func() {
	oldDocument := documentService
	oldIngest := ingestService
	oldAnswer := answerService
	oldConfig := configStore

	SetServices(Services{
		Document: &mockDocumentService{},
		Ingest:   &mockIngestor{},
		Answer:   &mockAnswerService{},
		Config:   newMockConfigStore(),
	})

	return func() {
		documentService = oldDocument
		ingestService = oldIngest
		answerService = oldAnswer
		configStore = oldConfig
	}
}

// failingAnswer installs an answer service whose synthesis fails while
// still returning citations.
func failingAnswer() func() {
	cleanup := setupTestServices()
	answerService = &mockAnswerService{
		answerErr: fmt.Errorf("%w: model unavailable", domain.ErrAnswerProvider),
	}
	return cleanup
}
