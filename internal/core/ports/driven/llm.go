package driven

import "context"

// LLMService generates text for answer synthesis and document
// summaries. It is optional: a nil service leaves retrieval working
// while answers and summaries report unavailable.
type LLMService interface {
	// Generate produces a completion for the given prompt.
	Generate(ctx context.Context, prompt string, opts GenerateOptions) (string, error)

	// ModelName returns the name of the generation model in use.
	ModelName() string

	// Ping checks the provider is reachable with a cheap request.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}

// GenerateOptions configures text generation behaviour.
type GenerateOptions struct {
	// MaxTokens caps the length of the generated text.
	MaxTokens int

	// Temperature controls randomness. Zero is deterministic.
	Temperature float64

	// StopWords end generation when any of them appears.
	StopWords []string
}
