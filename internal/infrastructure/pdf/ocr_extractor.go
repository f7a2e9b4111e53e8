package pdf

import (
	"bytes"
	"context"
	"fmt"
	"image/png"
	"strings"

	"github.com/gen2brain/go-fitz"
	"github.com/otiai10/gosseract/v2"

	"BillFighter/internal/ports"
)

// OCRExtractor handles scanned documents: each page is rasterized and run
// through Tesseract. Far more expensive than direct text extraction, so the
// selector only reaches for it when the direct result is thin or broken.
type OCRExtractor struct {
	language string
}

var _ ports.DocumentExtractor = (*OCRExtractor)(nil)

// NewOCRExtractor builds the fallback strategy; language is a Tesseract
// language pack name, "eng" when empty.
func NewOCRExtractor(language string) *OCRExtractor {
	if language == "" {
		language = "eng"
	}
	return &OCRExtractor{language: language}
}

// Extract rasterizes every page and recognizes its text. A page that fails
// to render or recognize becomes an empty string; the document as a whole
// only fails when it cannot be opened or Tesseract is unavailable.
func (e *OCRExtractor) Extract(ctx context.Context, path string) ([]string, error) {
	document, err := fitz.New(path)
	if err != nil {
		return nil, fmt.Errorf("rasterize %s: %w", path, err)
	}
	defer document.Close()

	client := gosseract.NewClient()
	defer client.Close()
	if err := client.SetLanguage(e.language); err != nil {
		return nil, fmt.Errorf("tesseract language %s: %w", e.language, err)
	}

	total := document.NumPage()
	pages := make([]string, 0, total)
	for number := 0; number < total; number++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		image, err := document.Image(number)
		if err != nil {
			pages = append(pages, "")
			continue
		}

		var buf bytes.Buffer
		if err := png.Encode(&buf, image); err != nil {
			pages = append(pages, "")
			continue
		}
		if err := client.SetImageFromBytes(buf.Bytes()); err != nil {
			pages = append(pages, "")
			continue
		}

		text, err := client.Text()
		if err != nil {
			pages = append(pages, "")
			continue
		}
		pages = append(pages, strings.TrimSpace(text))
	}

	return pages, nil
}
