package debate

import (
	"context"
	"fmt"
	"strings"

	"BillFighter/internal/domain"
	"BillFighter/internal/normalize"
	"BillFighter/internal/ports"
	"BillFighter/internal/stats"
)

const summarySystem = `You are a medical billing analyst summarizing a debate between a patient advocate and a hospital billing representative.

Extract the strongest patient-side arguments, the hospital's key defense points, and a final recommendation for the patient's real negotiation. Be objective, concise, and actionable.`

// Summarize condenses a finished transcript into the negotiation-facing
// summary triple with one JSON-mode completion.
func (d *Debate) Summarize(ctx context.Context, items []domain.AnalysisItem, transcript []domain.DebateMessage) (domain.DebateSummary, error) {
	totals := stats.Compute(items)

	var formatted strings.Builder
	for i, message := range transcript {
		if i > 0 {
			formatted.WriteString("\n\n")
		}
		fmt.Fprintf(&formatted, "[%s] %s", strings.ToUpper(string(message.Role)), message.Content)
	}

	prompt := fmt.Sprintf(`Summarize the following debate about a medical bill:

Bill Summary:
- Total Billed: $%.2f
- Expected Market Rate: $%.2f
- Potential Overcharge: $%.2f
- Items Flagged: %d out of %d

Debate Transcript:
%s

Provide a JSON summary with three keys:
1. "patient_arguments": the strongest patient-side arguments for reducing charges (100-150 words)
2. "hospital_arguments": the hospital's main defense points (100-150 words)
3. "recommendation": what the patient should focus on in actual negotiations (100-150 words)

Return ONLY valid JSON with these three keys.`,
		totals.TotalBilled,
		totals.TotalExpected,
		totals.PotentialSavings,
		totals.FlaggedItems,
		totals.TotalItems,
		formatted.String())

	raw, err := d.completer.Complete(ctx, ports.CompletionRequest{
		System:      summarySystem,
		Prompt:      prompt,
		Temperature: d.summaryTemperature,
		JSONMode:    true,
	})
	if err != nil {
		return domain.DebateSummary{}, fmt.Errorf("debate summary completion: %w", err)
	}

	record, err := normalize.Object(raw)
	if err != nil {
		return domain.DebateSummary{}, fmt.Errorf("debate summary response: %w", err)
	}

	d.info("debate summary generated")
	return domain.DebateSummary{
		PatientArguments:  normalize.Text(record, "patient_arguments"),
		HospitalArguments: normalize.Text(record, "hospital_arguments"),
		Recommendation:    normalize.Text(record, "recommendation"),
	}, nil
}
