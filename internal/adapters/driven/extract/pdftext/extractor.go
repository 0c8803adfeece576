// Package pdftext extracts plain text from PDF bytes, page by page.
package pdftext

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/halcyon-labs/docq-cli/internal/core/domain"
	"github.com/halcyon-labs/docq-cli/internal/core/ports/driven"
	"github.com/halcyon-labs/docq-cli/internal/logger"
)

// Ensure Extractor implements the interface.
var _ driven.TextExtractor = (*Extractor)(nil)

// Extractor reads PDF text using the ledongthuc/pdf parser.
// No OCR and no layout analysis: pages without a text layer come back
// empty, and a document with no text at all is an extraction failure.
type Extractor struct{}

// New creates a PDF text extractor.
func New() *Extractor {
	return &Extractor{}
}

// Extract returns the ordered (page number, text) pairs of the file.
func (e *Extractor) Extract(ctx context.Context, data []byte) ([]domain.Page, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty file", domain.ErrExtractionFailed)
	}

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrExtractionFailed, err)
	}

	numPages := reader.NumPage()
	if numPages == 0 {
		return nil, fmt.Errorf("%w: document has no pages", domain.ErrExtractionFailed)
	}

	pages := make([]domain.Page, 0, numPages)
	hasText := false
	for i := 1; i <= numPages; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		page := reader.Page(i)
		if page.V.IsNull() {
			pages = append(pages, domain.Page{Number: i})
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			// A single unreadable page is not fatal; it just
			// contributes no text.
			logger.Debug("Page %d text extraction failed: %v", i, err)
			text = ""
		}
		if strings.TrimSpace(text) != "" {
			hasText = true
		}
		pages = append(pages, domain.Page{Number: i, Text: text})
	}

	if !hasText {
		return nil, fmt.Errorf("%w: no text found in document", domain.ErrExtractionFailed)
	}

	return pages, nil
}
