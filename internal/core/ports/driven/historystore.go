package driven

import (
	"context"

	"github.com/halcyon-labs/docq-cli/internal/core/domain"
)

// HistoryStore persists question/answer history.
type HistoryStore interface {
	// Save stores a Q&A record.
	Save(ctx context.Context, record *domain.QARecord) error

	// List returns an owner's most recent records, newest first.
	List(ctx context.Context, ownerID string, limit int) ([]domain.QARecord, error)

	// DeleteByDocument removes records that cite the given document.
	// Called when a document is deleted so no dangling citations remain.
	DeleteByDocument(ctx context.Context, documentID string) error
}

// QuestionStore persists generated study question sets.
type QuestionStore interface {
	// Save stores a question set.
	Save(ctx context.Context, set *domain.QuestionSet) error

	// List returns an owner's question sets, newest first.
	List(ctx context.Context, ownerID string) ([]domain.QuestionSet, error)

	// Delete removes a question set by ID.
	Delete(ctx context.Context, id string) error

	// DeleteByDocument removes question sets for the given document.
	DeleteByDocument(ctx context.Context, documentID string) error
}

// SummaryStore persists generated document summaries.
type SummaryStore interface {
	// Save stores a summary.
	Save(ctx context.Context, summary *domain.Summary) error

	// List returns an owner's summaries, newest first.
	List(ctx context.Context, ownerID string) ([]domain.Summary, error)

	// Delete removes a summary by ID.
	Delete(ctx context.Context, id string) error

	// DeleteByDocument removes summaries of the given document.
	DeleteByDocument(ctx context.Context, documentID string) error
}
