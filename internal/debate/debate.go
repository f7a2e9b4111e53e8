// Package debate stages a bounded adversarial exchange between a patient
// advocate and a hospital billing representative over one analyzed bill.
package debate

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"BillFighter/internal/domain"
	"BillFighter/internal/ports"
	"BillFighter/internal/stats"
)

// DefaultMaxRounds is the construction-time ceiling on requested rounds.
const DefaultMaxRounds = 10

// Debate orchestrates the turn-based exchange. All turns run through one
// Completer; the two personas differ only in system prompt and templates.
type Debate struct {
	completer          ports.Completer
	turnTemperature    float64
	summaryTemperature float64
	maxRounds          int
	logger             *slog.Logger
}

// New builds the orchestrator. A non-positive maxRounds takes the default.
func New(completer ports.Completer, turnTemperature, summaryTemperature float64, maxRounds int, logger *slog.Logger) *Debate {
	if maxRounds <= 0 {
		maxRounds = DefaultMaxRounds
	}
	return &Debate{
		completer:          completer,
		turnTemperature:    turnTemperature,
		summaryTemperature: summaryTemperature,
		maxRounds:          maxRounds,
		logger:             logger,
	}
}

// Run executes clamp(requested, 1, maxRounds) rounds and returns the
// transcript: exactly two messages per round, strictly alternating, fighter
// first. The item collection is fixed for the whole debate; aggregate
// figures are recomputed fresh each turn from it. Any turn failing or
// returning empty content fails the whole run; no partial transcript is
// returned.
func (d *Debate) Run(ctx context.Context, items []domain.AnalysisItem, requested int) ([]domain.DebateMessage, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("debate requires a non-empty analysis collection")
	}

	rounds := clampRounds(requested, d.maxRounds)

	billJSON, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal bill data: %w", err)
	}

	d.info("debate starting", "rounds", rounds, "items", len(items))

	transcript := make([]domain.DebateMessage, 0, 2*rounds)
	var previous *string

	for state := Next(State{}, rounds); state.Phase != PhaseCompleted; state = Next(state, rounds) {
		speaker := personaFor(state.Role())
		prompt := speaker.buildPrompt(turnContext{
			round:    state.Round,
			billJSON: string(billJSON),
			totals:   stats.Compute(items),
			previous: previous,
		})

		content, err := d.completer.Complete(ctx, ports.CompletionRequest{
			System:      speaker.system,
			Prompt:      prompt,
			Temperature: d.turnTemperature,
		})
		if err != nil {
			return nil, fmt.Errorf("%s turn, round %d: %w", speaker.role, state.Round, err)
		}
		content = strings.TrimSpace(content)
		if content == "" {
			return nil, fmt.Errorf("%s turn, round %d: empty message", speaker.role, state.Round)
		}

		transcript = append(transcript, domain.DebateMessage{Role: speaker.role, Content: content})
		previous = &content

		d.debug("turn complete", "role", speaker.role, "round", state.Round, "chars", len(content))
	}

	d.info("debate completed", "messages", len(transcript))
	return transcript, nil
}

func (d *Debate) info(msg string, args ...any) {
	if d.logger != nil {
		d.logger.Info(msg, args...)
	}
}

func (d *Debate) debug(msg string, args ...any) {
	if d.logger != nil {
		d.logger.Debug(msg, args...)
	}
}
