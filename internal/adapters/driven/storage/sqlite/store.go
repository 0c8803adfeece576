package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/halcyon-labs/docq-cli/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/halcyon-labs/docq-cli/internal/core/domain"
	"github.com/halcyon-labs/docq-cli/internal/core/ports/driven"
)

// Store is a unified SQLite-based storage that provides access to
// all metadata store interfaces through wrapper types.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.docq/data/metadata.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".docq", "data")
	}

	// Ensure directory exists
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "metadata.db")

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	// Run migrations
	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// DocumentStore returns a DocumentStore interface backed by this store.
func (s *Store) DocumentStore() driven.DocumentStore {
	return &documentStore{store: s}
}

// EmbedCacheStore returns an EmbedCacheStore interface backed by this store.
func (s *Store) EmbedCacheStore() driven.EmbedCacheStore {
	return &embedCacheStore{store: s}
}

// HistoryStore returns a HistoryStore interface backed by this store.
func (s *Store) HistoryStore() driven.HistoryStore {
	return &historyStore{store: s}
}

// SummaryStore returns a SummaryStore interface backed by this store.
func (s *Store) SummaryStore() driven.SummaryStore {
	return &summaryStore{store: s}
}

// QuestionStore returns a QuestionStore interface backed by this store.
func (s *Store) QuestionStore() driven.QuestionStore {
	return &questionStore{store: s}
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	// Ensure schema_migrations table exists
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	// Get current version
	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	// Find all up migrations
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	// Sort and run migrations
	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_initial.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}

		if version <= currentVersion {
			continue // Already applied
		}

		// Read and execute migration
		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}

		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// IndexEntry is one rebuildable vector index entry: a ready document's
// chunk joined to its cached embedding.
type IndexEntry struct {
	Scope      string
	DocumentID string
	ChunkID    string
	Vector     []float32
}

// ReadyIndexEntries returns the index entries of all ready documents for
// the given embedding provider, in chunk position order per document.
// Used to rebuild the in-memory vector index at startup.
func (s *Store) ReadyIndexEntries(ctx context.Context, provider string) ([]IndexEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT d.owner_id, c.document_id, c.id, e.vector
		FROM chunks c
		JOIN documents d ON d.id = c.document_id
		JOIN embedding_cache e ON e.fingerprint = c.fingerprint AND e.provider = ?
		WHERE d.status = 'ready'
		ORDER BY c.document_id, c.position
	`, provider)
	if err != nil {
		return nil, fmt.Errorf("querying index entries: %w", err)
	}
	defer rows.Close()

	var entries []IndexEntry //nolint:prealloc // size unknown from query
	for rows.Next() {
		var entry IndexEntry
		var vectorBlob []byte
		if err := rows.Scan(&entry.Scope, &entry.DocumentID, &entry.ChunkID, &vectorBlob); err != nil {
			return nil, fmt.Errorf("scanning index entry: %w", err)
		}
		entry.Vector = bytesToFloat32Slice(vectorBlob)
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating index entries: %w", err)
	}

	return entries, nil
}

// ==================== Document Store ====================

// documentStore implements driven.DocumentStore.
type documentStore struct {
	store *Store
}

var _ driven.DocumentStore = (*documentStore)(nil)

// SaveDocument stores or updates a document.
func (s *documentStore) SaveDocument(ctx context.Context, doc *domain.Document) error {
	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO documents (id, owner_id, filename, status, page_count, error_detail, uploaded_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			owner_id = excluded.owner_id,
			filename = excluded.filename,
			status = excluded.status,
			page_count = excluded.page_count,
			error_detail = excluded.error_detail,
			updated_at = excluded.updated_at
	`, doc.ID, doc.OwnerID, doc.Filename, string(doc.Status), doc.PageCount,
		doc.ErrorDetail, doc.UploadedAt, doc.UpdatedAt)

	if err != nil {
		return fmt.Errorf("saving document: %w", err)
	}
	return nil
}

// UpdateStatus records a status transition with an optional error detail.
func (s *documentStore) UpdateStatus(ctx context.Context, id string, status domain.DocumentStatus, errorDetail string) error {
	result, err := s.store.db.ExecContext(ctx, `
		UPDATE documents SET status = ?, error_detail = ?, updated_at = ?
		WHERE id = ?
	`, string(status), errorDetail, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("updating status: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking affected rows: %w", err)
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SaveRaw stores the original PDF bytes for a document.
func (s *documentStore) SaveRaw(ctx context.Context, documentID string, data []byte) error {
	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO document_blobs (document_id, data) VALUES (?, ?)
		ON CONFLICT(document_id) DO UPDATE SET data = excluded.data
	`, documentID, data)
	if err != nil {
		return fmt.Errorf("saving blob: %w", err)
	}
	return nil
}

// GetRaw retrieves the original PDF bytes for a document.
func (s *documentStore) GetRaw(ctx context.Context, documentID string) ([]byte, error) {
	var data []byte
	err := s.store.db.QueryRowContext(ctx,
		"SELECT data FROM document_blobs WHERE document_id = ?", documentID).Scan(&data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("querying blob: %w", err)
	}
	return data, nil
}

// SaveChunks stores chunks for a document, replacing any existing set.
func (s *documentStore) SaveChunks(ctx context.Context, chunks []domain.Chunk) error {
	if len(chunks) == 0 {
		return nil
	}

	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx,
		"DELETE FROM chunks WHERE document_id = ?", chunks[0].DocumentID); err != nil {
		return fmt.Errorf("clearing chunks: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO chunks (id, document_id, position, page_start, page_end, start_offset, end_offset, content, fingerprint)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer stmt.Close()

	for _, chunk := range chunks {
		if _, err := stmt.ExecContext(ctx, chunk.ID, chunk.DocumentID, chunk.Position,
			chunk.PageStart, chunk.PageEnd, chunk.StartOffset, chunk.EndOffset,
			chunk.Content, chunk.Fingerprint); err != nil {
			return fmt.Errorf("saving chunk: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// GetDocument retrieves a document by ID.
func (s *documentStore) GetDocument(ctx context.Context, id string) (*domain.Document, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT id, owner_id, filename, status, page_count, error_detail, uploaded_at, updated_at
		FROM documents WHERE id = ?
	`, id)

	return scanDocument(row)
}

// GetChunks retrieves all chunks for a document, ordered by position.
func (s *documentStore) GetChunks(ctx context.Context, documentID string) ([]domain.Chunk, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, document_id, position, page_start, page_end, start_offset, end_offset, content, fingerprint
		FROM chunks WHERE document_id = ?
		ORDER BY position
	`, documentID)
	if err != nil {
		return nil, fmt.Errorf("querying chunks: %w", err)
	}
	defer rows.Close()

	var chunks []domain.Chunk //nolint:prealloc // size unknown from query
	for rows.Next() {
		var chunk domain.Chunk
		if err := rows.Scan(&chunk.ID, &chunk.DocumentID, &chunk.Position,
			&chunk.PageStart, &chunk.PageEnd, &chunk.StartOffset, &chunk.EndOffset,
			&chunk.Content, &chunk.Fingerprint); err != nil {
			return nil, fmt.Errorf("scanning chunk: %w", err)
		}
		chunks = append(chunks, chunk)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating chunks: %w", err)
	}

	return chunks, nil
}

// GetChunk retrieves a specific chunk by ID.
func (s *documentStore) GetChunk(ctx context.Context, id string) (*domain.Chunk, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT id, document_id, position, page_start, page_end, start_offset, end_offset, content, fingerprint
		FROM chunks WHERE id = ?
	`, id)

	var chunk domain.Chunk
	if err := row.Scan(&chunk.ID, &chunk.DocumentID, &chunk.Position,
		&chunk.PageStart, &chunk.PageEnd, &chunk.StartOffset, &chunk.EndOffset,
		&chunk.Content, &chunk.Fingerprint); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning chunk: %w", err)
	}
	return &chunk, nil
}

// DeleteChunks removes all chunks for a document.
func (s *documentStore) DeleteChunks(ctx context.Context, documentID string) error {
	_, err := s.store.db.ExecContext(ctx, "DELETE FROM chunks WHERE document_id = ?", documentID)
	if err != nil {
		return fmt.Errorf("deleting chunks: %w", err)
	}
	return nil
}

// DeleteDocument removes a document; chunks, blobs, and summaries cascade.
func (s *documentStore) DeleteDocument(ctx context.Context, id string) error {
	_, err := s.store.db.ExecContext(ctx, "DELETE FROM documents WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting document: %w", err)
	}
	return nil
}

// ListDocuments returns documents for an owner.
func (s *documentStore) ListDocuments(ctx context.Context, ownerID string) ([]domain.Document, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, owner_id, filename, status, page_count, error_detail, uploaded_at, updated_at
		FROM documents WHERE owner_id = ?
		ORDER BY uploaded_at
	`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("querying documents: %w", err)
	}
	defer rows.Close()

	return scanDocuments(rows)
}

// ListStale returns documents stuck in processing since before cutoff.
func (s *documentStore) ListStale(ctx context.Context, cutoff time.Time) ([]domain.Document, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, owner_id, filename, status, page_count, error_detail, uploaded_at, updated_at
		FROM documents WHERE status = 'processing' AND updated_at < ?
	`, cutoff)
	if err != nil {
		return nil, fmt.Errorf("querying stale documents: %w", err)
	}
	defer rows.Close()

	return scanDocuments(rows)
}

// ==================== Embedding Cache Store ====================

// embedCacheStore implements driven.EmbedCacheStore.
type embedCacheStore struct {
	store *Store
}

var _ driven.EmbedCacheStore = (*embedCacheStore)(nil)

// Get retrieves a record, or domain.ErrNotFound on a miss.
func (s *embedCacheStore) Get(ctx context.Context, fingerprint, provider string) (*domain.EmbeddingRecord, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT fingerprint, provider, vector, created_at
		FROM embedding_cache WHERE fingerprint = ? AND provider = ?
	`, fingerprint, provider)

	var record domain.EmbeddingRecord
	var vectorBlob []byte
	var createdAt sql.NullTime
	if err := row.Scan(&record.Fingerprint, &record.Provider, &vectorBlob, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning embedding record: %w", err)
	}

	record.Vector = bytesToFloat32Slice(vectorBlob)
	if createdAt.Valid {
		record.CreatedAt = createdAt.Time
	}
	return &record, nil
}

// Put stores a record, overwriting any existing one for the same key.
func (s *embedCacheStore) Put(ctx context.Context, record *domain.EmbeddingRecord) error {
	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO embedding_cache (fingerprint, provider, vector, created_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(fingerprint, provider) DO UPDATE SET
			vector = excluded.vector,
			created_at = excluded.created_at
	`, record.Fingerprint, record.Provider, float32SliceToBytes(record.Vector), record.CreatedAt)

	if err != nil {
		return fmt.Errorf("saving embedding record: %w", err)
	}
	return nil
}

// ==================== History Store ====================

// historyStore implements driven.HistoryStore.
type historyStore struct {
	store *Store
}

var _ driven.HistoryStore = (*historyStore)(nil)

// Save stores a Q&A record.
func (s *historyStore) Save(ctx context.Context, record *domain.QARecord) error {
	citationsJSON, err := json.Marshal(record.Citations)
	if err != nil {
		return fmt.Errorf("marshalling citations: %w", err)
	}

	_, err = s.store.db.ExecContext(ctx, `
		INSERT INTO qa_history (id, owner_id, question, answer, citations, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, record.ID, record.OwnerID, record.Question, record.AnswerText,
		string(citationsJSON), record.CreatedAt)

	if err != nil {
		return fmt.Errorf("saving history record: %w", err)
	}
	return nil
}

// List returns an owner's most recent records, newest first.
func (s *historyStore) List(ctx context.Context, ownerID string, limit int) ([]domain.QARecord, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, owner_id, question, answer, citations, created_at
		FROM qa_history WHERE owner_id = ?
		ORDER BY created_at DESC
		LIMIT ?
	`, ownerID, limit)
	if err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}
	defer rows.Close()

	var records []domain.QARecord //nolint:prealloc // size unknown from query
	for rows.Next() {
		var record domain.QARecord
		var citationsJSON string
		var createdAt sql.NullTime
		if err := rows.Scan(&record.ID, &record.OwnerID, &record.Question,
			&record.AnswerText, &citationsJSON, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning history record: %w", err)
		}

		if err := json.Unmarshal([]byte(citationsJSON), &record.Citations); err != nil {
			return nil, fmt.Errorf("unmarshaling citations: %w", err)
		}
		if createdAt.Valid {
			record.CreatedAt = createdAt.Time
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating history: %w", err)
	}

	return records, nil
}

// DeleteByDocument removes records that cite the given document.
// Citations are a JSON array, so the match walks it with json_each
// rather than substring-matching the column.
func (s *historyStore) DeleteByDocument(ctx context.Context, documentID string) error {
	_, err := s.store.db.ExecContext(ctx, `
		DELETE FROM qa_history WHERE id IN (
			SELECT h.id FROM qa_history h, json_each(h.citations) c
			WHERE json_extract(c.value, '$.DocumentID') = ?
		)
	`, documentID)
	if err != nil {
		return fmt.Errorf("deleting history records: %w", err)
	}
	return nil
}

// ==================== Summary Store ====================

// summaryStore implements driven.SummaryStore.
type summaryStore struct {
	store *Store
}

var _ driven.SummaryStore = (*summaryStore)(nil)

// Save stores a summary.
func (s *summaryStore) Save(ctx context.Context, summary *domain.Summary) error {
	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO summaries (id, owner_id, document_id, style, content, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			style = excluded.style,
			content = excluded.content,
			created_at = excluded.created_at
	`, summary.ID, summary.OwnerID, summary.DocumentID, string(summary.Style),
		summary.Content, summary.CreatedAt)

	if err != nil {
		return fmt.Errorf("saving summary: %w", err)
	}
	return nil
}

// List returns an owner's summaries, newest first.
func (s *summaryStore) List(ctx context.Context, ownerID string) ([]domain.Summary, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, owner_id, document_id, style, content, created_at
		FROM summaries WHERE owner_id = ?
		ORDER BY created_at DESC
	`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("querying summaries: %w", err)
	}
	defer rows.Close()

	var summaries []domain.Summary //nolint:prealloc // size unknown from query
	for rows.Next() {
		var summary domain.Summary
		var style string
		var createdAt sql.NullTime
		if err := rows.Scan(&summary.ID, &summary.OwnerID, &summary.DocumentID,
			&style, &summary.Content, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning summary: %w", err)
		}
		summary.Style = domain.SummaryStyle(style)
		if createdAt.Valid {
			summary.CreatedAt = createdAt.Time
		}
		summaries = append(summaries, summary)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating summaries: %w", err)
	}

	return summaries, nil
}

// Delete removes a summary by ID.
func (s *summaryStore) Delete(ctx context.Context, id string) error {
	_, err := s.store.db.ExecContext(ctx, "DELETE FROM summaries WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting summary: %w", err)
	}
	return nil
}

// DeleteByDocument removes summaries of the given document.
func (s *summaryStore) DeleteByDocument(ctx context.Context, documentID string) error {
	_, err := s.store.db.ExecContext(ctx, "DELETE FROM summaries WHERE document_id = ?", documentID)
	if err != nil {
		return fmt.Errorf("deleting summaries: %w", err)
	}
	return nil
}

// ==================== Question Store ====================

// questionStore implements driven.QuestionStore.
type questionStore struct {
	store *Store
}

var _ driven.QuestionStore = (*questionStore)(nil)

// Save stores a question set.
func (s *questionStore) Save(ctx context.Context, set *domain.QuestionSet) error {
	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO question_sets (id, owner_id, document_id, question_type, question_count, content, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			question_type = excluded.question_type,
			question_count = excluded.question_count,
			content = excluded.content,
			created_at = excluded.created_at
	`, set.ID, set.OwnerID, set.DocumentID, string(set.Type), set.Count,
		set.Content, set.CreatedAt)

	if err != nil {
		return fmt.Errorf("saving question set: %w", err)
	}
	return nil
}

// List returns an owner's question sets, newest first.
func (s *questionStore) List(ctx context.Context, ownerID string) ([]domain.QuestionSet, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, owner_id, document_id, question_type, question_count, content, created_at
		FROM question_sets WHERE owner_id = ?
		ORDER BY created_at DESC
	`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("querying question sets: %w", err)
	}
	defer rows.Close()

	var sets []domain.QuestionSet //nolint:prealloc // size unknown from query
	for rows.Next() {
		var set domain.QuestionSet
		var qtype string
		var createdAt sql.NullTime
		if err := rows.Scan(&set.ID, &set.OwnerID, &set.DocumentID,
			&qtype, &set.Count, &set.Content, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning question set: %w", err)
		}
		set.Type = domain.QuestionType(qtype)
		if createdAt.Valid {
			set.CreatedAt = createdAt.Time
		}
		sets = append(sets, set)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating question sets: %w", err)
	}

	return sets, nil
}

// Delete removes a question set by ID.
func (s *questionStore) Delete(ctx context.Context, id string) error {
	_, err := s.store.db.ExecContext(ctx, "DELETE FROM question_sets WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting question set: %w", err)
	}
	return nil
}

// DeleteByDocument removes question sets for the given document.
func (s *questionStore) DeleteByDocument(ctx context.Context, documentID string) error {
	_, err := s.store.db.ExecContext(ctx, "DELETE FROM question_sets WHERE document_id = ?", documentID)
	if err != nil {
		return fmt.Errorf("deleting question sets: %w", err)
	}
	return nil
}

// ==================== Helper Functions ====================

// float32SliceToBytes converts a []float32 to a byte slice for storage.
func float32SliceToBytes(floats []float32) []byte {
	if len(floats) == 0 {
		return nil
	}
	buf := make([]byte, len(floats)*4)
	for i, f := range floats {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return buf
}

// bytesToFloat32Slice converts a byte slice back to []float32.
func bytesToFloat32Slice(data []byte) []float32 {
	if len(data) == 0 {
		return nil
	}
	floats := make([]float32, len(data)/4)
	for i := range floats {
		floats[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[i*4:]))
	}
	return floats
}

// scanDocument scans a single document row.
func scanDocument(row *sql.Row) (*domain.Document, error) {
	var doc domain.Document
	var status string
	var uploadedAt, updatedAt sql.NullTime

	if err := row.Scan(&doc.ID, &doc.OwnerID, &doc.Filename, &status,
		&doc.PageCount, &doc.ErrorDetail, &uploadedAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning document: %w", err)
	}

	doc.Status = domain.DocumentStatus(status)
	if uploadedAt.Valid {
		doc.UploadedAt = uploadedAt.Time
	}
	if updatedAt.Valid {
		doc.UpdatedAt = updatedAt.Time
	}
	return &doc, nil
}

// scanDocuments scans a set of document rows.
func scanDocuments(rows *sql.Rows) ([]domain.Document, error) {
	var docs []domain.Document //nolint:prealloc // size unknown from query
	for rows.Next() {
		var doc domain.Document
		var status string
		var uploadedAt, updatedAt sql.NullTime
		if err := rows.Scan(&doc.ID, &doc.OwnerID, &doc.Filename, &status,
			&doc.PageCount, &doc.ErrorDetail, &uploadedAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("scanning document: %w", err)
		}

		doc.Status = domain.DocumentStatus(status)
		if uploadedAt.Valid {
			doc.UploadedAt = uploadedAt.Time
		}
		if updatedAt.Valid {
			doc.UpdatedAt = updatedAt.Time
		}
		docs = append(docs, doc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating documents: %w", err)
	}

	return docs, nil
}
