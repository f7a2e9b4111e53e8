// Package extract decides which document-extraction strategy supplies the
// text for a run. Direct extraction is cheap and reliable for born-digital
// documents but silent on scanned ones, so a thin result triggers the
// expensive rasterize-and-recognize fallback.
package extract

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"BillFighter/internal/domain"
	"BillFighter/internal/ports"
)

// DefaultMinTextThreshold is the combined trimmed character count below
// which direct output is treated as a missed scan.
const DefaultMinTextThreshold = 50

// Selector runs the direct strategy first and falls back on thin or failed
// output.
type Selector struct {
	direct    ports.DocumentExtractor
	fallback  ports.DocumentExtractor
	threshold int
	logger    *slog.Logger
}

// NewSelector wires the two strategies. A non-positive threshold takes the
// default.
func NewSelector(direct, fallback ports.DocumentExtractor, threshold int, logger *slog.Logger) *Selector {
	if threshold <= 0 {
		threshold = DefaultMinTextThreshold
	}
	return &Selector{
		direct:    direct,
		fallback:  fallback,
		threshold: threshold,
		logger:    logger,
	}
}

// Extract returns page-segmented text and which strategy supplied it. The
// fallback runs when the direct strategy errors or its combined trimmed text
// is below the threshold; its pages are accepted regardless of length. Both
// strategies failing yields a single error naming both causes.
func (s *Selector) Extract(ctx context.Context, path string) (domain.ExtractionOutcome, error) {
	pages, directErr := s.direct.Extract(ctx, path)
	if directErr == nil {
		length := combinedTextLength(pages)
		if length >= s.threshold {
			s.debug("direct extraction accepted", "chars", length, "pages", len(pages))
			return domain.ExtractionOutcome{Pages: pages, Method: domain.MethodDirect}, nil
		}
		s.debug("direct extraction too thin, falling back", "chars", length, "threshold", s.threshold)
	} else {
		s.debug("direct extraction failed, falling back", "error", directErr)
	}

	fallbackPages, fallbackErr := s.fallback.Extract(ctx, path)
	if fallbackErr != nil {
		directCause := "produced text below threshold"
		if directErr != nil {
			directCause = directErr.Error()
		}
		return domain.ExtractionOutcome{}, fmt.Errorf(
			"both extraction strategies failed: direct: %s; fallback: %s", directCause, fallbackErr)
	}

	s.debug("fallback extraction accepted", "pages", len(fallbackPages))
	return domain.ExtractionOutcome{Pages: fallbackPages, Method: domain.MethodFallback}, nil
}

func combinedTextLength(pages []string) int {
	return len(strings.TrimSpace(strings.Join(pages, "")))
}

func (s *Selector) debug(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Debug(msg, args...)
	}
}
