package agents

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"BillFighter/internal/domain"
	"BillFighter/internal/normalize"
	"BillFighter/internal/ports"
)

// Analyzer enriches line items with cost-anomaly signals.
type Analyzer struct {
	completer   ports.Completer
	temperature float64
	logger      *slog.Logger
}

// NewAnalyzer wires the completion service with the stage temperature.
func NewAnalyzer(completer ports.Completer, temperature float64, logger *slog.Logger) *Analyzer {
	return &Analyzer{completer: completer, temperature: temperature, logger: logger}
}

// Run produces a fresh enriched collection; the input items are not mutated.
func (a *Analyzer) Run(ctx context.Context, items []domain.LineItem) ([]domain.AnalysisItem, error) {
	itemsJSON, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal line items: %w", err)
	}

	raw, err := a.completer.Complete(ctx, ports.CompletionRequest{
		System:      analysisSystem,
		Prompt:      buildAnalysisPrompt(string(itemsJSON)),
		Temperature: a.temperature,
		JSONMode:    true,
	})
	if err != nil {
		return nil, fmt.Errorf("analysis completion: %w", err)
	}

	enriched, err := normalize.AnalysisItems(raw)
	if err != nil {
		return nil, fmt.Errorf("analysis response: %w", err)
	}

	a.info("analysis done", "items", len(enriched))
	return enriched, nil
}

func (a *Analyzer) info(msg string, args ...any) {
	if a.logger != nil {
		a.logger.Info(msg, args...)
	}
}
