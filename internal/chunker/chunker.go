// Package chunker splits extracted page text into overlapping fixed-size
// retrieval units.
//
// The chunker is pure and deterministic: identical pages and parameters
// always yield identical chunk boundaries and fingerprints. That property
// is what makes content-addressed embedding caching possible, so nothing
// here may depend on time, randomness, or iteration order.
package chunker

import (
	"fmt"
	"strings"

	"github.com/halcyon-labs/docq-cli/internal/core/domain"
)

// DefaultMaxChars is the default chunk window size in characters.
const DefaultMaxChars = 1000

// DefaultOverlapChars is the default overlap between adjacent windows.
const DefaultOverlapChars = 200

// Chunker splits page text into fixed-size overlapping windows.
type Chunker struct {
	maxChars     int
	overlapChars int
}

// New creates a chunker. maxChars must be positive and overlapChars must be
// non-negative and strictly less than maxChars; anything else fails with
// domain.ErrInvalidChunkConfig.
func New(maxChars, overlapChars int) (*Chunker, error) {
	if maxChars <= 0 {
		return nil, fmt.Errorf("%w: window size %d must be positive", domain.ErrInvalidChunkConfig, maxChars)
	}
	if overlapChars < 0 || overlapChars >= maxChars {
		return nil, fmt.Errorf("%w: overlap %d must be in [0, %d)", domain.ErrInvalidChunkConfig, overlapChars, maxChars)
	}
	return &Chunker{maxChars: maxChars, overlapChars: overlapChars}, nil
}

// Chunk splits the ordered pages into chunk drafts. Page text is
// concatenated with boundaries tracked for citation, then windowed by
// maxChars runes sliding forward maxChars-overlapChars at a time.
// Windows are cut on rune boundaries, never mid-character. Pure-whitespace
// windows are dropped; surviving chunks get contiguous zero-based positions.
//
// Returned drafts have no ID or DocumentID; the ingestion pipeline
// assigns those.
func (c *Chunker) Chunk(pages []domain.Page) []domain.Chunk {
	text, pageStarts := concat(pages)
	if len(text) == 0 {
		return nil
	}

	stride := c.maxChars - c.overlapChars
	chunks := make([]domain.Chunk, 0, len(text)/stride+1)

	position := 0
	for start := 0; start < len(text); start += stride {
		end := start + c.maxChars
		if end > len(text) {
			end = len(text)
		}

		content := string(text[start:end])
		if strings.TrimSpace(content) == "" {
			continue
		}

		chunks = append(chunks, domain.Chunk{
			Position:    position,
			PageStart:   pageAt(pages, pageStarts, start),
			PageEnd:     pageAt(pages, pageStarts, end-1),
			StartOffset: start,
			EndOffset:   end,
			Content:     content,
			Fingerprint: domain.Fingerprint(content),
		})
		position++

		if end == len(text) {
			break
		}
	}

	return chunks
}

// concat joins page text with newline separators and records the rune
// offset each page starts at.
func concat(pages []domain.Page) ([]rune, []int) {
	var b strings.Builder
	for i, p := range pages {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(p.Text)
	}
	text := []rune(b.String())

	pageStarts := make([]int, len(pages))
	offset := 0
	for i, p := range pages {
		if i > 0 {
			offset++ // separator
		}
		pageStarts[i] = offset
		offset += len([]rune(p.Text))
	}

	return text, pageStarts
}

// pageAt returns the 1-based page number containing the given rune offset.
func pageAt(pages []domain.Page, pageStarts []int, offset int) int {
	if len(pages) == 0 {
		return 0
	}
	page := pages[0].Number
	for i := len(pageStarts) - 1; i >= 0; i-- {
		if offset >= pageStarts[i] {
			page = pages[i].Number
			break
		}
	}
	return page
}
