package pdf

import (
	"context"
	"fmt"

	"github.com/ledongthuc/pdf"

	"BillFighter/internal/ports"
)

// TextExtractor reads embedded text from born-digital PDFs, one string per
// page. Pages that fail extraction become empty strings; only a document
// that cannot be opened at all is an error.
type TextExtractor struct{}

var _ ports.DocumentExtractor = (*TextExtractor)(nil)

// NewTextExtractor builds the direct-text strategy.
func NewTextExtractor() *TextExtractor {
	return &TextExtractor{}
}

// Extract returns per-page plain text.
func (e *TextExtractor) Extract(ctx context.Context, path string) ([]string, error) {
	file, reader, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf %s: %w", path, err)
	}
	defer file.Close()

	total := reader.NumPage()
	pages := make([]string, 0, total)
	for number := 1; number <= total; number++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		page := reader.Page(number)
		if page.V.IsNull() {
			pages = append(pages, "")
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			pages = append(pages, "")
			continue
		}
		pages = append(pages, text)
	}

	return pages, nil
}
