package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"BillFighter/internal/agents"
	"BillFighter/internal/domain"
	"BillFighter/internal/stats"
)

// PipelineDeps wires the three stage agents into the orchestration pipeline.
type PipelineDeps struct {
	Extractor  *agents.Extractor
	Analyzer   *agents.Analyzer
	Negotiator *agents.Negotiator
	Logger     *slog.Logger
}

// Pipeline implements the extraction → analysis → negotiation workflow over
// one bill's text. Each stage owns the collection it produces; nothing is
// mutated across stages.
type Pipeline struct {
	extractor  *agents.Extractor
	analyzer   *agents.Analyzer
	negotiator *agents.Negotiator
	logger     *slog.Logger
}

// NewPipeline constructs the orchestration component.
func NewPipeline(deps PipelineDeps) *Pipeline {
	return &Pipeline{
		extractor:  deps.Extractor,
		analyzer:   deps.Analyzer,
		negotiator: deps.Negotiator,
		logger:     deps.Logger,
	}
}

// Process runs the three stages in sequence. Zero recognized line items is a
// documented degradation, not an error: analysis stays empty, the fixed
// placeholder materials are substituted, and all stats are zero. Stage
// failures are fatal and propagate unwrapped alongside the stage name.
func (p *Pipeline) Process(ctx context.Context, billText string) (domain.PipelineResult, error) {
	p.info("pipeline starting")

	lineItems, err := p.extractor.Run(ctx, billText)
	if err != nil {
		return domain.PipelineResult{}, fmt.Errorf("extraction stage: %w", err)
	}

	analysisItems := []domain.AnalysisItem{}
	if len(lineItems) > 0 {
		analysisItems, err = p.analyzer.Run(ctx, lineItems)
		if err != nil {
			return domain.PipelineResult{}, fmt.Errorf("analysis stage: %w", err)
		}
	} else {
		p.warn("no line items extracted, continuing with empty collections")
	}

	summary := stats.Compute(analysisItems)

	materials := placeholderMaterials()
	if len(analysisItems) > 0 {
		materials, err = p.negotiator.Run(ctx, analysisItems, summary)
		if err != nil {
			return domain.PipelineResult{}, fmt.Errorf("negotiation stage: %w", err)
		}
	}

	p.info("pipeline completed",
		"items", summary.TotalItems,
		"potential_savings", summary.PotentialSavings,
		"flagged_items", summary.FlaggedItems)

	return domain.PipelineResult{
		Extraction:   lineItems,
		Analysis:     analysisItems,
		Negotiation:  materials,
		SummaryStats: summary,
	}, nil
}

// placeholderMaterials is the fixed triple substituted when nothing was
// recognized on the bill.
func placeholderMaterials() domain.NegotiationMaterials {
	return domain.NegotiationMaterials{
		Email:       "No line items were extracted from this bill. Please review the document manually.",
		PhoneScript: "No specific issues were identified. Please review the bill with the billing department.",
		Summary:     "The bill could not be automatically processed. Please review it manually or try again with a clearer image/PDF.",
	}
}

func (p *Pipeline) info(msg string, args ...any) {
	if p.logger != nil {
		p.logger.Info(msg, args...)
	}
}

func (p *Pipeline) warn(msg string, args ...any) {
	if p.logger != nil {
		p.logger.Warn(msg, args...)
	}
}
