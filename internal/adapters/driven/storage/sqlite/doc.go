// Package sqlite implements the persistence ports on a single SQLite
// database.
//
// The driver is modernc.org/sqlite, a pure Go port that needs no CGO
// and so cross-compiles cleanly. One connection serves four store
// interfaces:
//
//   - DocumentStore: Document, chunk, and raw PDF persistence
//   - EmbedCacheStore: Content-addressed embedding cache persistence
//   - HistoryStore: Question/answer history persistence
//   - SummaryStore: Document summary persistence
//
// # Schema
//
// Versioned migration scripts under migrations/ create and evolve the
// schema. Foreign keys cascade: deleting a document removes its
// chunks, raw bytes, and summaries in one statement.
//
// # Data Location
//
// The database lives at ~/.docq/data/metadata.db unless a different
// data directory is configured.
//
// # Thread Safety
//
// All operations are safe for concurrent use. SQLite in WAL mode
// handles the locking.
package sqlite
