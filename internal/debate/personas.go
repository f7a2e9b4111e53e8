package debate

import (
	"fmt"

	"BillFighter/internal/domain"
)

const fighterSystem = `You are a Medical Bill Fighter, a patient advocate who specializes in spotting inflated charges, duplicates, miscoding, and billing errors.

Your role:
- Advocate for the patient by calling out problematic charges
- Compare billed prices against typical market rates
- Point out duplicate charges and suspicious billing codes
- Push for reductions and corrections on the patient's behalf
- Cite specific line items, codes, and prices from the bill data

Style: professional but firm, evidence-based, assertive yet respectful. Your goal is to reduce the patient's bill by surfacing legitimate billing issues.`

const hospitalSystem = `You are a Hospital Billing Representative defending the charges on a medical bill.

Your role:
- Defend the charges as justified and standard
- Explain that pricing reflects quality of care, facility overhead, and regulatory requirements
- Address overcharge concerns with market variation and regional differences
- Defend the billing codes as correctly applied
- Maintain that the bill accurately represents services rendered

Style: professional and courteous, educational about billing practice, respectful but firm. Your goal is to explain why the charges are fair and appropriate.`

// persona pairs a transcript role with its system prompt and turn templates.
// Construction differs between the two only in which templates are active
// and, on round 1, in whether an opening statement (fighter) or a rebuttal
// (hospital, which never opens) is produced.
type persona struct {
	role   domain.DebateRole
	system string
}

var (
	fighterPersona  = persona{role: domain.RoleFighter, system: fighterSystem}
	hospitalPersona = persona{role: domain.RoleHospital, system: hospitalSystem}
)

func personaFor(role domain.DebateRole) persona {
	if role == domain.RoleHospital {
		return hospitalPersona
	}
	return fighterPersona
}

// turnContext is everything one turn's prompt is assembled from: the fixed
// item collection, figures recomputed fresh from it, and the immediately
// preceding message (nil only for the very first turn).
type turnContext struct {
	round    int
	billJSON string
	totals   domain.SummaryStats
	previous *string
}

func (p persona) buildPrompt(ctx turnContext) string {
	summary := fmt.Sprintf(`Bill Summary:
- Total Billed: $%.2f
- Expected Market Rate: $%.2f
- Potential Overcharge: $%.2f
- Items Flagged: %d out of %d

Structured Bill Data:
%s`,
		ctx.totals.TotalBilled,
		ctx.totals.TotalExpected,
		ctx.totals.PotentialSavings,
		ctx.totals.FlaggedItems,
		ctx.totals.TotalItems,
		ctx.billJSON)

	if p.role == domain.RoleHospital {
		if ctx.previous == nil {
			// The state machine never routes an opening to the hospital;
			// kept so the prompt builder is total over its inputs.
			return fmt.Sprintf(`You are opening in Round %d, which is unusual: normally you respond to the patient advocate.

%s

Defend the bill: explain why the charges are justified and standard, highlight quality of care and facility costs, and give context for pricing variation. Be concise and professional.`, ctx.round, summary)
		}
		return fmt.Sprintf(`You are responding in Round %d. The patient advocate just argued:

"%s"

Address their specific points, reinforce why the charges are justified, explain market variation and facility costs, and stay professional.

%s

Provide a concise rebuttal (75-100 words) defending the bill.`, ctx.round, *ctx.previous, summary)
	}

	if ctx.previous == nil {
		return fmt.Sprintf(`You are starting the debate. This is Round %d, your opening argument.

%s

Present your opening argument: the most egregious overcharges, duplicate or suspicious charges, miscoded or inflated items, with specific evidence from the bill data. Keep it to ~75 words.`, ctx.round, summary)
	}
	return fmt.Sprintf(`You are responding in Round %d. The hospital representative just said:

"%s"

Counter their points where they are wrong, reinforce your strongest evidence, and highlight issues they ignored.

%s

Provide a concise rebuttal (~75 words) reinforcing the patient's position.`, ctx.round, *ctx.previous, summary)
}
