// Package agents holds the three sequential pipeline stages, each a thin
// wrapper around one JSON-mode completion call plus normalization.
package agents

import (
	"context"
	"fmt"
	"log/slog"

	"BillFighter/internal/domain"
	"BillFighter/internal/normalize"
	"BillFighter/internal/ports"
)

// Extractor turns raw bill text into structured line items.
type Extractor struct {
	completer   ports.Completer
	temperature float64
	logger      *slog.Logger
}

// NewExtractor wires the completion service with the stage temperature.
func NewExtractor(completer ports.Completer, temperature float64, logger *slog.Logger) *Extractor {
	return &Extractor{completer: completer, temperature: temperature, logger: logger}
}

// Run extracts line items from the bill text. An empty list is a valid
// outcome, not an error.
func (e *Extractor) Run(ctx context.Context, billText string) ([]domain.LineItem, error) {
	raw, err := e.completer.Complete(ctx, ports.CompletionRequest{
		System:      extractionSystem,
		Prompt:      buildExtractionPrompt(billText),
		Temperature: e.temperature,
		JSONMode:    true,
	})
	if err != nil {
		return nil, fmt.Errorf("extraction completion: %w", err)
	}

	items, err := normalize.LineItems(raw)
	if err != nil {
		return nil, fmt.Errorf("extraction response: %w", err)
	}

	e.info("extraction done", "items", len(items))
	return items, nil
}

func (e *Extractor) info(msg string, args ...any) {
	if e.logger != nil {
		e.logger.Info(msg, args...)
	}
}
