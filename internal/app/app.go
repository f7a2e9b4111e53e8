package app

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"BillFighter/internal/agents"
	"BillFighter/internal/config"
	"BillFighter/internal/debate"
	"BillFighter/internal/domain"
	"BillFighter/internal/extract"
	"BillFighter/internal/infrastructure/llm"
	"BillFighter/internal/infrastructure/pdf"
	"BillFighter/internal/logging"
	"BillFighter/internal/usecase"
)

// Application wires configs to use cases and lifecycle orchestration.
type Application struct {
	cfg      config.Config
	logger   *slog.Logger
	selector *extract.Selector
	pipeline *usecase.Pipeline
	debate   *debate.Debate
}

// RunOptions carries per-invocation parameters from the CLI.
type RunOptions struct {
	File       string
	Prompt     string
	Rounds     int
	SkipDebate bool
}

// RunReport is the envelope emitted for one processed bill.
type RunReport struct {
	RunID   string `json:"run_id"`
	OCRText string `json:"ocr_text"`
	Prompt  string `json:"prompt"`
	domain.PipelineResult
	DebateTranscript []domain.DebateMessage `json:"debate_transcript"`
	DebateSummary    *domain.DebateSummary  `json:"debate_summary"`
}

// New builds a runnable application instance.
func New(cfg config.Config, baseLogger *slog.Logger) *Application {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level)
	}

	completer := llm.NewClient(cfg.OpenAI, baseLogger.With("component", "llm"))

	selector := extract.NewSelector(
		pdf.NewTextExtractor(),
		pdf.NewOCRExtractor(cfg.Extraction.Language),
		cfg.Extraction.MinTextThreshold,
		baseLogger.With("component", "extract"),
	)

	temps := cfg.OpenAI.Temperatures
	pipeline := usecase.NewPipeline(usecase.PipelineDeps{
		Extractor:  agents.NewExtractor(completer, temps.Extraction, baseLogger.With("component", "agent.extraction")),
		Analyzer:   agents.NewAnalyzer(completer, temps.Analysis, baseLogger.With("component", "agent.analysis")),
		Negotiator: agents.NewNegotiator(completer, temps.Negotiation, baseLogger.With("component", "agent.negotiation")),
		Logger:     baseLogger.With("component", "pipeline"),
	})

	debater := debate.New(completer, temps.Debate, temps.Summary, cfg.Debate.MaxRounds,
		baseLogger.With("component", "debate"))

	return &Application{
		cfg:      cfg,
		logger:   baseLogger,
		selector: selector,
		pipeline: pipeline,
		debate:   debater,
	}
}

// Run processes one document end to end: extraction selector, stage
// pipeline, then the optional debate and its summary. A summary failure is
// downgraded to a warning; every other failure is fatal for the run.
func (a *Application) Run(ctx context.Context, opts RunOptions) (RunReport, error) {
	outcome, err := a.selector.Extract(ctx, opts.File)
	if err != nil {
		return RunReport{}, fmt.Errorf("extract document: %w", err)
	}

	billText := strings.TrimSpace(strings.Join(outcome.Pages, "\n\n"))
	if billText == "" {
		return RunReport{}, fmt.Errorf("document produced no text (method %s)", outcome.Method)
	}
	a.logger.Info("document extracted", "method", outcome.Method, "pages", len(outcome.Pages), "chars", len(billText))

	result, err := a.pipeline.Process(ctx, billText)
	if err != nil {
		return RunReport{}, err
	}

	transcript := []domain.DebateMessage{}
	var summary *domain.DebateSummary
	if !opts.SkipDebate && len(result.Analysis) > 0 {
		transcript, err = a.debate.Run(ctx, result.Analysis, opts.Rounds)
		if err != nil {
			return RunReport{}, fmt.Errorf("debate: %w", err)
		}

		if s, err := a.debate.Summarize(ctx, result.Analysis, transcript); err != nil {
			a.logger.Warn("debate summary generation failed", "error", err)
		} else {
			summary = &s
		}
	}

	return RunReport{
		RunID:            uuid.NewString(),
		OCRText:          billText,
		Prompt:           opts.Prompt,
		PipelineResult:   result,
		DebateTranscript: transcript,
		DebateSummary:    summary,
	}, nil
}
