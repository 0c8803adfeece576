package driving

import (
	"context"

	"github.com/halcyon-labs/docq-cli/internal/core/domain"
)

// AnswerOptions configures a retrieval-augmented query.
type AnswerOptions struct {
	// K is the number of chunks to retrieve. Zero means the default.
	K int

	// MaxContextChars bounds the assembled context. Zero means the default.
	MaxContextChars int

	// DocumentIDs optionally restricts retrieval to specific documents
	// within the owner's scope. Empty means all documents.
	DocumentIDs []string
}

// AnswerService answers free-text questions from indexed documents.
type AnswerService interface {
	// Answer embeds the question, retrieves the top-k chunks in the
	// owner's scope, and synthesises an answer with citations.
	// An empty scope fails with domain.ErrNoDocumentsIndexed without
	// calling the synthesis provider. A synthesis failure returns the
	// Answer with citations populated alongside domain.ErrAnswerProvider.
	Answer(ctx context.Context, ownerID, question string, opts AnswerOptions) (*domain.Answer, error)

	// History returns an owner's recent Q&A records, newest first.
	History(ctx context.Context, ownerID string, limit int) ([]domain.QARecord, error)

	// Summarise generates and stores a summary of a ready document.
	// A non-empty focus steers the summary towards that topic.
	Summarise(ctx context.Context, documentID string, style domain.SummaryStyle, focus string) (*domain.Summary, error)

	// ListSummaries returns an owner's stored summaries, newest first.
	ListSummaries(ctx context.Context, ownerID string) ([]domain.Summary, error)

	// DeleteSummary removes a stored summary.
	DeleteSummary(ctx context.Context, summaryID string) error

	// GenerateQuestions generates and stores n study questions of the
	// given type for a ready document. n <= 0 means the default.
	GenerateQuestions(ctx context.Context, documentID string, n int, qtype domain.QuestionType) (*domain.QuestionSet, error)

	// ListQuestionSets returns an owner's stored question sets, newest first.
	ListQuestionSets(ctx context.Context, ownerID string) ([]domain.QuestionSet, error)

	// DeleteQuestionSet removes a stored question set.
	DeleteQuestionSet(ctx context.Context, questionSetID string) error
}
