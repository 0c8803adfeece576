// Command docq is a local question-answering tool for PDF documents.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/halcyon-labs/docq-cli/internal/adapters/driven/ai"
	configfile "github.com/halcyon-labs/docq-cli/internal/adapters/driven/config/file"
	"github.com/halcyon-labs/docq-cli/internal/adapters/driven/extract/pdftext"
	"github.com/halcyon-labs/docq-cli/internal/adapters/driven/storage/sqlite"
	"github.com/halcyon-labs/docq-cli/internal/adapters/driving/cli"
	"github.com/halcyon-labs/docq-cli/internal/chunker"
	"github.com/halcyon-labs/docq-cli/internal/core/domain"
	"github.com/halcyon-labs/docq-cli/internal/core/ports/driven"
	"github.com/halcyon-labs/docq-cli/internal/core/services"
	"github.com/halcyon-labs/docq-cli/internal/embedcache"
	"github.com/halcyon-labs/docq-cli/internal/logger"
	"github.com/halcyon-labs/docq-cli/internal/ratelimit"
	"github.com/halcyon-labs/docq-cli/internal/vectorindex"
)

// version is set at build time via -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	configStore, err := configfile.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("initialise config: %w", err)
	}

	settings, workers := loadSettings(configStore)

	store, err := sqlite.NewStore(configStore.GetString("data.dir"))
	if err != nil {
		return fmt.Errorf("initialise storage: %w", err)
	}
	defer store.Close()

	docStore := store.DocumentStore()
	historyStore := store.HistoryStore()
	summaryStore := store.SummaryStore()
	questionStore := store.QuestionStore()

	index := vectorindex.New()
	defer index.Close()

	svcs := cli.Services{
		Config: configStore,
	}

	// AI providers are optional at startup. An unreachable or
	// misconfigured provider is reported, and commands that need it
	// fail with a clear error instead of docq refusing to start.
	embedSvc, err := ai.CreateAndValidateEmbeddingService(&settings.Embedding)
	if err != nil {
		logger.Warn("Embedding provider unavailable: %v", err)
	}

	llmSvc, err := ai.CreateAndValidateLLMService(&settings.LLM)
	if err != nil {
		logger.Warn("LLM provider unavailable: %v", err)
	}
	if llmSvc != nil {
		defer llmSvc.Close()
	}

	if embedSvc != nil {
		defer embedSvc.Close()

		limiter := ratelimit.New(ratelimit.Config{
			RequestsPerSecond: settings.Answer.RequestsPerSecond,
			BurstSize:         ratelimit.DefaultConfig.BurstSize,
		})
		cache := embedcache.New(embedSvc, store.EmbedCacheStore(), limiter)

		if err := rebuildIndex(ctx, store, index, cache.ModelName()); err != nil {
			return fmt.Errorf("rebuild index: %w", err)
		}

		chk, err := chunker.New(settings.Chunk.MaxChars, settings.Chunk.OverlapChars)
		if err != nil {
			return fmt.Errorf("chunker config: %w", err)
		}

		ingestSvc := services.NewIngestService(docStore, pdftext.New(), chk, cache, index, workers)
		svcs.Ingest = ingestSvc
		svcs.Answer = services.NewAnswerService(docStore, index, cache, llmSvc,
			historyStore, summaryStore, questionStore, settings.Answer)

		// Fail anything left processing by a crashed previous run.
		recovery := services.NewRecovery(ingestSvc)
		if n, err := recovery.Sweep(ctx); err != nil {
			logger.Warn("Stale document recovery failed: %v", err)
		} else if n > 0 {
			logger.Info("Recovered %d stale documents", n)
		}
	}

	svcs.Document = services.NewDocumentService(docStore, index, historyStore, summaryStore, questionStore)

	cli.SetServices(svcs)
	cli.SetVersion(version)

	return cli.Execute()
}

// loadSettings merges config file values over the defaults. The second
// return value is the embedding worker count for ingestion.
func loadSettings(cfg driven.ConfigStore) (domain.AppSettings, int) {
	settings := domain.DefaultAppSettings()

	if v := cfg.GetString("embedding.provider"); v != "" {
		settings.Embedding.Provider = domain.AIProvider(v)
	}
	if v := cfg.GetString("embedding.model"); v != "" {
		settings.Embedding.Model = v
	}
	if v := cfg.GetString("embedding.base_url"); v != "" {
		settings.Embedding.BaseURL = v
	}
	if v := cfg.GetString("embedding.api_key"); v != "" {
		settings.Embedding.APIKey = v
	}

	if v := cfg.GetString("llm.provider"); v != "" {
		settings.LLM.Provider = domain.AIProvider(v)
	}
	if v := cfg.GetString("llm.model"); v != "" {
		settings.LLM.Model = v
	}
	if v := cfg.GetString("llm.base_url"); v != "" {
		settings.LLM.BaseURL = v
	}
	if v := cfg.GetString("llm.api_key"); v != "" {
		settings.LLM.APIKey = v
	}

	if v := cfg.GetInt("chunk.max_chars"); v > 0 {
		settings.Chunk.MaxChars = v
	}
	if _, ok := cfg.Get("chunk.overlap_chars"); ok {
		settings.Chunk.OverlapChars = cfg.GetInt("chunk.overlap_chars")
	}

	if v := cfg.GetInt("answer.top_k"); v > 0 {
		settings.Answer.TopK = v
	}
	if v := cfg.GetInt("answer.max_context_chars"); v > 0 {
		settings.Answer.MaxContextChars = v
	}
	if v := cfg.GetFloat("answer.requests_per_second"); v > 0 {
		settings.Answer.RequestsPerSecond = v
	}

	workers := cfg.GetInt("ingest.workers")

	return settings, workers
}

// rebuildIndex loads every ready document's cached vectors into the
// in-memory index. Vectors are persisted only in the embedding cache,
// so the index is rebuilt from it on every start.
func rebuildIndex(ctx context.Context, store *sqlite.Store, index *vectorindex.Index, provider string) error {
	entries, err := store.ReadyIndexEntries(ctx, provider)
	if err != nil {
		return err
	}

	for i := range entries {
		e := &entries[i]
		if err := index.Add(ctx, e.Scope, e.DocumentID, e.ChunkID, e.Vector); err != nil {
			return fmt.Errorf("index entry %s: %w", e.ChunkID, err)
		}
	}

	if len(entries) > 0 {
		logger.Debug("Rebuilt vector index with %d entries", len(entries))
	}
	return nil
}
