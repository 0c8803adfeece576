// Package driven holds the interfaces through which core services call
// out to infrastructure. These are the secondary ports: the services
// depend on them and adapters implement them.
//
// # Required Interfaces
//
//   - DocumentStore: Document and chunk persistence
//   - TextExtractor: PDF bytes to ordered page text
//   - EmbeddingService: Generates vector embeddings
//   - VectorIndex: Stores vectors and answers nearest-neighbour queries
//   - EmbedCacheStore: Persistent content-addressed embedding cache
//
// # Optional Interfaces
//
// These may be nil and the application degrades gracefully:
//
//   - LLMService: Answer synthesis and summaries. Without it, retrieval
//     still works but answers and summaries are disabled.
//   - HistoryStore / SummaryStore: Q&A history and summary persistence.
//
// # Import Rules
//
// This package imports domain and nothing else. It never imports an
// adapter.
package driven
