// Package ai constructs embedding and generation services from
// application settings.
package ai

import (
	"context"
	"fmt"
	"time"

	ollamaembed "github.com/halcyon-labs/docq-cli/internal/adapters/driven/embedding/ollama"
	openaiembed "github.com/halcyon-labs/docq-cli/internal/adapters/driven/embedding/openai"
	ollamallm "github.com/halcyon-labs/docq-cli/internal/adapters/driven/llm/ollama"
	openaillm "github.com/halcyon-labs/docq-cli/internal/adapters/driven/llm/openai"
	"github.com/halcyon-labs/docq-cli/internal/core/domain"
	"github.com/halcyon-labs/docq-cli/internal/core/ports/driven"
)

// pingTimeout bounds the connectivity check at startup.
const pingTimeout = 5 * time.Second

// CreateAndValidateEmbeddingService builds an embedding service and
// pings it before handing it over. A nil service with nil error means
// no provider is configured.
func CreateAndValidateEmbeddingService(settings *domain.EmbeddingSettings) (driven.EmbeddingService, error) {
	svc, err := CreateEmbeddingService(settings)
	if err != nil {
		return nil, fmt.Errorf("%w: %w. Run 'docq config set embedding.provider <provider>' to fix",
			domain.ErrEmbeddingUnavailable, err)
	}
	if svc == nil {
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := svc.Ping(ctx); err != nil {
		svc.Close()
		return nil, fmt.Errorf("%w: service unreachable (%w)",
			domain.ErrEmbeddingUnavailable, err)
	}
	return svc, nil
}

// CreateAndValidateLLMService builds an LLM service and pings it
// before handing it over. A nil service with nil error means no
// provider is configured.
func CreateAndValidateLLMService(settings *domain.LLMSettings) (driven.LLMService, error) {
	svc, err := CreateLLMService(settings)
	if err != nil {
		return nil, fmt.Errorf("%w: %w. Run 'docq config set llm.provider <provider>' to fix",
			domain.ErrLLMUnavailable, err)
	}
	if svc == nil {
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := svc.Ping(ctx); err != nil {
		svc.Close()
		return nil, fmt.Errorf("%w: service unreachable (%w)",
			domain.ErrLLMUnavailable, err)
	}
	return svc, nil
}

// CreateEmbeddingService picks the embedding adapter for the
// configured provider. Returns nil when no provider is configured.
func CreateEmbeddingService(settings *domain.EmbeddingSettings) (driven.EmbeddingService, error) {
	if settings == nil || !settings.IsConfigured() {
		return nil, nil
	}

	switch settings.Provider {
	case domain.AIProviderOllama:
		dims := domain.EmbeddingDimensions()[settings.Model]
		if dims == 0 {
			dims = ollamaembed.DefaultDimensions
		}
		return ollamaembed.NewEmbeddingService(ollamaembed.Config{
			BaseURL:    settings.BaseURL,
			Model:      settings.Model,
			Dimensions: dims,
		}), nil

	case domain.AIProviderOpenAI:
		return openaiembed.NewEmbeddingService(openaiembed.Config{
			APIKey:     settings.APIKey,
			BaseURL:    settings.BaseURL,
			Model:      settings.Model,
			Dimensions: domain.EmbeddingDimensions()[settings.Model],
		})

	default:
		return nil, fmt.Errorf("unsupported embedding provider: %s", settings.Provider)
	}
}

// CreateLLMService picks the generation adapter for the configured
// provider. Returns nil when no provider is configured.
func CreateLLMService(settings *domain.LLMSettings) (driven.LLMService, error) {
	if settings == nil || !settings.IsConfigured() {
		return nil, nil
	}

	switch settings.Provider {
	case domain.AIProviderOllama:
		return ollamallm.NewLLMService(ollamallm.LLMConfig{
			BaseURL: settings.BaseURL,
			Model:   settings.Model,
		}), nil

	case domain.AIProviderOpenAI:
		return openaillm.NewLLMService(openaillm.LLMConfig{
			APIKey:  settings.APIKey,
			BaseURL: settings.BaseURL,
			Model:   settings.Model,
		})

	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", settings.Provider)
	}
}
