package driven

import (
	"context"

	"github.com/halcyon-labs/docq-cli/internal/core/domain"
)

// TextExtractor turns raw PDF bytes into ordered page text.
// Extraction quality is the extractor's problem; the core only reports
// failures, wrapped in domain.ErrExtractionFailed.
type TextExtractor interface {
	// Extract returns the ordered (page number, text) pairs of the file.
	// Corrupt, password-protected, or text-free files fail with
	// domain.ErrExtractionFailed.
	Extract(ctx context.Context, data []byte) ([]domain.Page, error)
}
