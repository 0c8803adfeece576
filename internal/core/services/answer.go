package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/halcyon-labs/docq-cli/internal/core/domain"
	"github.com/halcyon-labs/docq-cli/internal/core/ports/driven"
	"github.com/halcyon-labs/docq-cli/internal/core/ports/driving"
	"github.com/halcyon-labs/docq-cli/internal/logger"
)

// Ensure AnswerService implements the interface.
var _ driving.AnswerService = (*AnswerService)(nil)

// Retrieval defaults. Chosen to match the behaviour of typical RAG setups
// over 1000-char chunks; overridable per query and via configuration.
const (
	DefaultTopK            = 5
	DefaultMaxContextChars = 6000
	DefaultHistoryLimit    = 50

	// maxSummaryInputChars bounds the document text handed to the LLM
	// when summarising.
	maxSummaryInputChars = 12000

	// DefaultQuestionCount is how many study questions are generated
	// when the caller does not say.
	DefaultQuestionCount = 5

	// maxQuestionInputChars bounds the document sample handed to the
	// LLM when generating study questions.
	maxQuestionInputChars = 3000
)

// AnswerService answers questions by retrieving indexed chunks and
// synthesising an answer from them.
type AnswerService struct {
	docStore      driven.DocumentStore
	index         driven.VectorIndex
	cache         driven.EmbeddingCache
	llm           driven.LLMService
	historyStore  driven.HistoryStore
	summaryStore  driven.SummaryStore
	questionStore driven.QuestionStore
	defaults      domain.AnswerSettings
}

// NewAnswerService creates a new answer service. llm, historyStore,
// summaryStore and questionStore are optional (can be nil). Zero
// fields in defaults fall back to the package constants.
func NewAnswerService(
	docStore driven.DocumentStore,
	index driven.VectorIndex,
	cache driven.EmbeddingCache,
	llm driven.LLMService,
	historyStore driven.HistoryStore,
	summaryStore driven.SummaryStore,
	questionStore driven.QuestionStore,
	defaults domain.AnswerSettings,
) *AnswerService {
	if defaults.TopK <= 0 {
		defaults.TopK = DefaultTopK
	}
	if defaults.MaxContextChars <= 0 {
		defaults.MaxContextChars = DefaultMaxContextChars
	}
	return &AnswerService{
		docStore:      docStore,
		index:         index,
		cache:         cache,
		llm:           llm,
		historyStore:  historyStore,
		summaryStore:  summaryStore,
		questionStore: questionStore,
		defaults:      defaults,
	}
}

// Answer executes a retrieval-augmented query within the owner's scope.
func (s *AnswerService) Answer(
	ctx context.Context, ownerID, question string, opts driving.AnswerOptions,
) (*domain.Answer, error) {
	logger.Section("Query Execution")

	question = strings.TrimSpace(question)
	if question == "" {
		return nil, fmt.Errorf("%w: question is required", domain.ErrInvalidInput)
	}

	// Flag values win over configured defaults.
	k := opts.K
	if k <= 0 {
		k = s.defaults.TopK
	}
	maxContext := opts.MaxContextChars
	if maxContext <= 0 {
		maxContext = s.defaults.MaxContextChars
	}
	logger.Debug("Question: %q, k=%d, maxContext=%d", question, k, maxContext)

	// Empty scope is not a fault; short-circuit before any provider call.
	if s.index.Size(ownerID) == 0 {
		logger.Debug("Scope %s has no indexed documents", ownerID)
		return nil, domain.ErrNoDocumentsIndexed
	}

	// The question is cacheable by fingerprint like any chunk, so
	// repeated questions skip the provider.
	vector, err := s.cache.Embed(ctx, question)
	if err != nil {
		return nil, fmt.Errorf("embed question: %w", err)
	}
	logger.Debug("Question embedding: %d dimensions", len(vector))

	hits, err := s.retrieve(ctx, ownerID, vector, k, opts.DocumentIDs)
	if err != nil {
		return nil, fmt.Errorf("retrieve: %w", err)
	}
	logger.Debug("Retrieved %d chunks", len(hits))

	contextText, citations, err := s.assembleContext(ctx, hits, maxContext)
	if err != nil {
		return nil, fmt.Errorf("assemble context: %w", err)
	}
	logger.Debug("Assembled context: %d chars, %d citations", len(contextText), len(citations))

	answer := &domain.Answer{Question: question, Citations: citations}

	if s.llm == nil {
		return answer, domain.ErrLLMUnavailable
	}

	text, err := s.llm.Generate(ctx, answerPrompt(question, contextText), driven.GenerateOptions{Temperature: 0.2})
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			// Cancellation discards the whole query; queries are
			// read-only so this is always safe.
			return nil, err
		}
		logger.Warn("Answer synthesis failed: %v", err)
		// Retrieval work is not wasted: the caller still gets citations.
		return answer, fmt.Errorf("%w: %w", domain.ErrAnswerProvider, err)
	}
	answer.Text = strings.TrimSpace(text)

	s.recordHistory(ctx, ownerID, answer)
	return answer, nil
}

// retrieve queries the index, over-fetching when a document filter will
// discard hits afterwards.
func (s *AnswerService) retrieve(
	ctx context.Context, scope string, vector []float32, k int, documentIDs []string,
) ([]driven.VectorHit, error) {
	limit := k
	if len(documentIDs) > 0 {
		limit = k * 3
	}

	hits, err := s.index.Query(ctx, scope, vector, limit)
	if err != nil {
		return nil, err
	}

	if len(documentIDs) == 0 {
		return hits, nil
	}

	allowed := make(map[string]bool, len(documentIDs))
	for _, id := range documentIDs {
		allowed[id] = true
	}

	filtered := make([]driven.VectorHit, 0, k)
	for _, hit := range hits {
		if allowed[hit.DocumentID] {
			filtered = append(filtered, hit)
			if len(filtered) == k {
				break
			}
		}
	}
	return filtered, nil
}

// assembleContext builds the synthesis context from hits in descending
// score order. A chunk that would push the context past the budget is
// dropped whole, never truncated mid-text.
func (s *AnswerService) assembleContext(
	ctx context.Context, hits []driven.VectorHit, maxContextChars int,
) (string, []domain.Citation, error) {
	var builder strings.Builder
	citations := make([]domain.Citation, 0, len(hits))
	used := 0

	for _, hit := range hits {
		chunk, err := s.docStore.GetChunk(ctx, hit.ChunkID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				// Chunk was deleted under us, skip it
				continue
			}
			return "", nil, fmt.Errorf("get chunk %s: %w", hit.ChunkID, err)
		}

		doc, err := s.docStore.GetDocument(ctx, chunk.DocumentID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				continue
			}
			return "", nil, fmt.Errorf("get document %s: %w", chunk.DocumentID, err)
		}

		if used+len(chunk.Content) > maxContextChars {
			break
		}
		used += len(chunk.Content)

		if builder.Len() > 0 {
			builder.WriteString("\n\n")
		}
		builder.WriteString(passageTag(doc.Filename, chunk.PageStart, chunk.PageEnd))
		builder.WriteString("\n")
		builder.WriteString(chunk.Content)

		citations = append(citations, domain.Citation{
			DocumentID: doc.ID,
			Filename:   doc.Filename,
			ChunkID:    chunk.ID,
			PageStart:  chunk.PageStart,
			PageEnd:    chunk.PageEnd,
			Score:      hit.Score,
		})
	}

	return builder.String(), citations, nil
}

// passageTag labels a context passage with its source for citation.
func passageTag(filename string, pageStart, pageEnd int) string {
	if pageEnd > pageStart {
		return fmt.Sprintf("[%s, pages %d-%d]", filename, pageStart, pageEnd)
	}
	return fmt.Sprintf("[%s, page %d]", filename, pageStart)
}

// answerPrompt builds the synthesis prompt.
func answerPrompt(question, contextText string) string {
	return fmt.Sprintf(`Based on the following context from uploaded documents, answer the question. If the answer cannot be found in the context, say so.

Context:
%s

Question: %s

Answer:`, contextText, question)
}

// recordHistory stores a successful Q&A exchange. Best effort; a failed
// write never fails the query.
func (s *AnswerService) recordHistory(ctx context.Context, ownerID string, answer *domain.Answer) {
	if s.historyStore == nil {
		return
	}

	record := &domain.QARecord{
		ID:         uuid.New().String(),
		OwnerID:    ownerID,
		Question:   answer.Question,
		AnswerText: answer.Text,
		Citations:  answer.Citations,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.historyStore.Save(ctx, record); err != nil {
		logger.Warn("Failed to save Q&A history: %v", err)
	}
}

// History returns an owner's recent Q&A records, newest first.
func (s *AnswerService) History(ctx context.Context, ownerID string, limit int) ([]domain.QARecord, error) {
	if s.historyStore == nil {
		return nil, nil
	}
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	return s.historyStore.List(ctx, ownerID, limit)
}

// Summarise generates and stores a summary of a ready document. A
// non-empty focus steers the summary towards that topic.
func (s *AnswerService) Summarise(
	ctx context.Context, documentID string, style domain.SummaryStyle, focus string,
) (*domain.Summary, error) {
	if s.llm == nil {
		return nil, domain.ErrLLMUnavailable
	}
	if !domain.ValidSummaryStyle(style) {
		return nil, fmt.Errorf("%w: unknown summary style %q", domain.ErrInvalidInput, style)
	}

	doc, err := s.readyDocument(ctx, documentID)
	if err != nil {
		return nil, err
	}

	content, err := s.documentSample(ctx, documentID, maxSummaryInputChars)
	if err != nil {
		return nil, err
	}

	text, err := s.llm.Generate(ctx, summaryPrompt(style, focus, content), driven.GenerateOptions{Temperature: 0.3})
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", domain.ErrAnswerProvider, err)
	}

	summary := &domain.Summary{
		ID:         uuid.New().String(),
		OwnerID:    doc.OwnerID,
		DocumentID: doc.ID,
		Style:      style,
		Content:    strings.TrimSpace(text),
		CreatedAt:  time.Now().UTC(),
	}
	if s.summaryStore != nil {
		if err := s.summaryStore.Save(ctx, summary); err != nil {
			return nil, fmt.Errorf("save summary: %w", err)
		}
	}
	return summary, nil
}

// readyDocument loads a document and requires it to be fully ingested.
func (s *AnswerService) readyDocument(ctx context.Context, documentID string) (*domain.Document, error) {
	doc, err := s.docStore.GetDocument(ctx, documentID)
	if err != nil {
		return nil, fmt.Errorf("get document: %w", err)
	}
	if doc.Status != domain.StatusReady {
		return nil, fmt.Errorf("%w: document %s is %s, not ready", domain.ErrInvalidInput, doc.ID, doc.Status)
	}
	return doc, nil
}

// documentSample concatenates a document's chunk text up to maxChars,
// dropping whole chunks past the limit.
func (s *AnswerService) documentSample(ctx context.Context, documentID string, maxChars int) (string, error) {
	chunks, err := s.docStore.GetChunks(ctx, documentID)
	if err != nil {
		return "", fmt.Errorf("get chunks: %w", err)
	}

	var builder strings.Builder
	for i := range chunks {
		if builder.Len()+len(chunks[i].Content) > maxChars {
			break
		}
		if i > 0 {
			builder.WriteString("\n")
		}
		builder.WriteString(chunks[i].Content)
	}
	return builder.String(), nil
}

// summaryPrompt builds the summarisation prompt for a style.
func summaryPrompt(style domain.SummaryStyle, focus, content string) string {
	var instruction string
	switch style {
	case domain.SummaryBrief:
		instruction = "Write a brief summary of the document in two to three paragraphs."
	case domain.SummaryComprehensive:
		instruction = "Write a comprehensive summary covering all major topics of the document."
	case domain.SummaryBulletPoints:
		instruction = "Summarise the document as a list of bullet points covering its main ideas."
	case domain.SummaryKeyConcepts:
		instruction = "Extract the key concepts from the document and explain each in one or two sentences."
	case domain.SummaryExamPrep:
		instruction = "Write an exam preparation summary of the document: main topics and subtopics, key facts and figures, important concepts to remember, and potential exam questions."
	}

	prompt := fmt.Sprintf(`%s

Document:
%s

Summary:`, instruction, content)

	if focus != "" {
		prompt += fmt.Sprintf("\n\nPay special attention to information related to: %s", focus)
	}
	return prompt
}

// ListSummaries returns an owner's stored summaries, newest first.
func (s *AnswerService) ListSummaries(ctx context.Context, ownerID string) ([]domain.Summary, error) {
	if s.summaryStore == nil {
		return nil, nil
	}
	return s.summaryStore.List(ctx, ownerID)
}

// DeleteSummary removes a stored summary.
func (s *AnswerService) DeleteSummary(ctx context.Context, summaryID string) error {
	if s.summaryStore == nil {
		return domain.ErrNotFound
	}
	return s.summaryStore.Delete(ctx, summaryID)
}

// GenerateQuestions generates and stores study questions for a ready
// document.
func (s *AnswerService) GenerateQuestions(
	ctx context.Context, documentID string, n int, qtype domain.QuestionType,
) (*domain.QuestionSet, error) {
	if s.llm == nil {
		return nil, domain.ErrLLMUnavailable
	}
	if !domain.ValidQuestionType(qtype) {
		return nil, fmt.Errorf("%w: unknown question type %q", domain.ErrInvalidInput, qtype)
	}
	if n <= 0 {
		n = DefaultQuestionCount
	}

	doc, err := s.readyDocument(ctx, documentID)
	if err != nil {
		return nil, err
	}

	sample, err := s.documentSample(ctx, documentID, maxQuestionInputChars)
	if err != nil {
		return nil, err
	}

	text, err := s.llm.Generate(ctx, questionsPrompt(qtype, n, sample), driven.GenerateOptions{Temperature: 0.4})
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", domain.ErrAnswerProvider, err)
	}

	set := &domain.QuestionSet{
		ID:         uuid.New().String(),
		OwnerID:    doc.OwnerID,
		DocumentID: doc.ID,
		Type:       qtype,
		Count:      n,
		Content:    strings.TrimSpace(text),
		CreatedAt:  time.Now().UTC(),
	}
	if s.questionStore != nil {
		if err := s.questionStore.Save(ctx, set); err != nil {
			return nil, fmt.Errorf("save question set: %w", err)
		}
	}
	return set, nil
}

// questionsPrompt builds the question generation prompt for a type.
func questionsPrompt(qtype domain.QuestionType, n int, sample string) string {
	var instruction string
	switch qtype {
	case domain.QuestionsMCQ:
		instruction = fmt.Sprintf(`Generate %d multiple choice questions based on the following text. Format each question as:
Q: [Question]
A) [Option A]
B) [Option B]
C) [Option C]
D) [Option D]
Correct: [Letter]`, n)
	case domain.QuestionsShortAnswer:
		instruction = fmt.Sprintf("Generate %d short answer questions based on the following text. Each question should be answerable in two to three sentences.", n)
	case domain.QuestionsEssay:
		instruction = fmt.Sprintf("Generate %d essay questions based on the following text. Each question should require analytical thinking and a detailed response.", n)
	default: // mixed
		instruction = fmt.Sprintf("Generate %d questions of mixed types (multiple choice, short answer, and essay) based on the following text.", n)
	}

	return fmt.Sprintf(`%s

Text:
%s

Questions:`, instruction, sample)
}

// ListQuestionSets returns an owner's stored question sets, newest first.
func (s *AnswerService) ListQuestionSets(ctx context.Context, ownerID string) ([]domain.QuestionSet, error) {
	if s.questionStore == nil {
		return nil, nil
	}
	return s.questionStore.List(ctx, ownerID)
}

// DeleteQuestionSet removes a stored question set.
func (s *AnswerService) DeleteQuestionSet(ctx context.Context, questionSetID string) error {
	if s.questionStore == nil {
		return domain.ErrNotFound
	}
	return s.questionStore.Delete(ctx, questionSetID)
}
