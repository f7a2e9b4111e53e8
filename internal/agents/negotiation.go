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

// Negotiator generates the email / phone script / summary triple from the
// enriched collection.
type Negotiator struct {
	completer   ports.Completer
	temperature float64
	logger      *slog.Logger
}

// NewNegotiator wires the completion service with the stage temperature.
func NewNegotiator(completer ports.Completer, temperature float64, logger *slog.Logger) *Negotiator {
	return &Negotiator{completer: completer, temperature: temperature, logger: logger}
}

// Run builds negotiation materials. Callers skip this stage entirely for an
// empty collection and substitute the placeholder triple instead.
func (n *Negotiator) Run(ctx context.Context, items []domain.AnalysisItem, totals domain.SummaryStats) (domain.NegotiationMaterials, error) {
	itemsJSON, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return domain.NegotiationMaterials{}, fmt.Errorf("marshal analysis items: %w", err)
	}

	raw, err := n.completer.Complete(ctx, ports.CompletionRequest{
		System:      negotiationSystem,
		Prompt:      buildNegotiationPrompt(string(itemsJSON), totals.TotalBilled, totals.TotalExpected, totals.PotentialSavings),
		Temperature: n.temperature,
		JSONMode:    true,
	})
	if err != nil {
		return domain.NegotiationMaterials{}, fmt.Errorf("negotiation completion: %w", err)
	}

	record, err := normalize.Object(raw)
	if err != nil {
		return domain.NegotiationMaterials{}, fmt.Errorf("negotiation response: %w", err)
	}

	materials := domain.NegotiationMaterials{
		Email:       normalize.Text(record, "email"),
		PhoneScript: normalize.Text(record, "phone_script"),
		Summary:     normalize.Text(record, "summary"),
	}
	if materials.Email == "" || materials.PhoneScript == "" || materials.Summary == "" {
		n.warn("some negotiation materials are missing")
	}

	n.info("negotiation done")
	return materials, nil
}

func (n *Negotiator) info(msg string, args ...any) {
	if n.logger != nil {
		n.logger.Info(msg, args...)
	}
}

func (n *Negotiator) warn(msg string, args ...any) {
	if n.logger != nil {
		n.logger.Warn(msg, args...)
	}
}
