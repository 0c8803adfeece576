// Package domain defines the core business entities for docq.
//
// This is the innermost layer of the hexagon. It carries the
// fundamental types:
//
//   - Document: An uploaded PDF and its ingestion state
//   - Chunk: A retrieval unit within a document
//   - EmbeddingRecord: A content-addressed cached embedding
//   - Answer/Citation: The result of a retrieval-augmented query
//
// # Import Rules
//
// Domain imports only the Go standard library. Every other package
// depends on domain and never the other way around.
package domain
