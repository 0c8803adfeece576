package domain

import "time"

// Citation points at the chunk a piece of supporting text came from.
type Citation struct {
	// DocumentID identifies the source document.
	DocumentID string

	// Filename is the document's upload filename, for display.
	Filename string

	// ChunkID identifies the exact chunk included in the context.
	ChunkID string

	// PageStart and PageEnd locate the chunk within the document.
	PageStart int
	PageEnd   int

	// Score is the cosine similarity between the question and the chunk.
	Score float64
}

// Answer is the result of a retrieval-augmented query.
type Answer struct {
	// Question is the original question text.
	Question string

	// Text is the synthesised answer. Empty when synthesis failed but
	// retrieval succeeded; Citations are still populated in that case.
	Text string

	// Citations lists the chunks actually included in the context,
	// ordered by descending score.
	Citations []Citation
}

// QARecord is one entry of the question/answer history.
type QARecord struct {
	// ID is the unique identifier for the record.
	ID string

	// OwnerID identifies whose history this belongs to.
	OwnerID string

	// Question and AnswerText are the exchanged texts.
	Question   string
	AnswerText string

	// Citations are the chunks used to answer, ordered by descending score.
	Citations []Citation

	// CreatedAt is when the question was answered.
	CreatedAt time.Time
}

// SummaryStyle selects how a document summary is written.
type SummaryStyle string

const (
	// SummaryBrief is a short two-to-three paragraph overview.
	SummaryBrief SummaryStyle = "brief"

	// SummaryComprehensive covers the whole document in detail.
	SummaryComprehensive SummaryStyle = "comprehensive"

	// SummaryBulletPoints lists the main points.
	SummaryBulletPoints SummaryStyle = "bullet_points"

	// SummaryKeyConcepts extracts and explains the key concepts.
	SummaryKeyConcepts SummaryStyle = "key_concepts"

	// SummaryExamPrep structures the summary as exam preparation
	// material, with key facts and likely exam questions.
	SummaryExamPrep SummaryStyle = "exam_prep"
)

// ValidSummaryStyle reports whether s names a known style.
func ValidSummaryStyle(s SummaryStyle) bool {
	switch s {
	case SummaryBrief, SummaryComprehensive, SummaryBulletPoints, SummaryKeyConcepts, SummaryExamPrep:
		return true
	}
	return false
}

// QuestionType selects the kind of study questions to generate.
type QuestionType string

const (
	// QuestionsMCQ generates multiple choice questions with four
	// options and the correct letter.
	QuestionsMCQ QuestionType = "mcq"

	// QuestionsShortAnswer generates questions answerable in a few
	// sentences.
	QuestionsShortAnswer QuestionType = "short_answer"

	// QuestionsEssay generates questions requiring analytical,
	// long-form responses.
	QuestionsEssay QuestionType = "essay"

	// QuestionsMixed mixes the other three types.
	QuestionsMixed QuestionType = "mixed"
)

// ValidQuestionType reports whether t names a known question type.
func ValidQuestionType(t QuestionType) bool {
	switch t {
	case QuestionsMCQ, QuestionsShortAnswer, QuestionsEssay, QuestionsMixed:
		return true
	}
	return false
}

// QuestionSet is a stored batch of LLM-generated study questions for
// one document.
type QuestionSet struct {
	// ID is the unique identifier for the set.
	ID string

	// OwnerID identifies who requested the questions.
	OwnerID string

	// DocumentID links to the source document.
	DocumentID string

	// Type is the question type that was requested.
	Type QuestionType

	// Count is the number of questions that was requested.
	Count int

	// Content is the generated question text.
	Content string

	// CreatedAt is when the questions were generated.
	CreatedAt time.Time
}

// Summary is a stored LLM-generated document summary.
type Summary struct {
	// ID is the unique identifier for the summary.
	ID string

	// OwnerID identifies who requested the summary.
	OwnerID string

	// DocumentID links to the summarised document.
	DocumentID string

	// Style is the summary style that was requested.
	Style SummaryStyle

	// Content is the generated summary text.
	Content string

	// CreatedAt is when the summary was generated.
	CreatedAt time.Time
}
