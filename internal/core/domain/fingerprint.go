package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"
)

// Fingerprint returns the deterministic content hash used as the embedding
// cache key. Text is normalised first (whitespace collapsed, lowercased) so
// chunks that differ only in layout share one embedding.
func Fingerprint(text string) string {
	normalised := strings.ToLower(strings.Join(strings.Fields(text), " "))
	sum := sha256.Sum256([]byte(normalised))
	return hex.EncodeToString(sum[:])
}

// EmbeddingRecord is one content-addressed entry of the embedding cache.
// Records are shared by every chunk with the same fingerprint and are
// invalidated when the provider model changes.
type EmbeddingRecord struct {
	// Fingerprint is the content hash the record is keyed by.
	Fingerprint string

	// Provider is the embedding model identifier that produced the vector.
	Provider string

	// Vector is the embedding.
	Vector []float32

	// CreatedAt is when the vector was generated.
	CreatedAt time.Time
}
