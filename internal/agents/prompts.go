package agents

import "fmt"

const extractionSystem = `You are a medical billing expert who extracts structured data from medical bills.

Extract every line item you can identify from the bill text, even when the text is noisy, badly formatted, or incomplete. For each line item determine:
1. Code: the CPT, HCPCS, or ICD code (for example "99213", "J3420", "E11.9"); infer it from the description when it is not printed
2. Description: the service or item description
3. Quantity: number of units, 1.0 when unspecified
4. Price: unit or total price for the line
5. Notes: any extra relevant detail, or null

Correct obvious OCR confusions ("O" vs "0", "I" vs "1"). Return an empty list when no line items can be found.

Return a JSON object with a "line_items" key holding the array. No extra text, no markdown.`

const analysisSystem = `You are a medical billing analyst who detects overcharges, duplicates, and anomalies.

For each line item determine:
1. expected_cost: a reasonable market-rate cost for the service or item
2. overcharge_flag: whether the billed price is significantly above that rate
3. flag_level: severity, one of "low", "medium", or "high" (price more than 20% above expected is "medium", more than 50% is "high")
4. issue: a short explanation of the problem (duplicate, suspicious code, excessive price), or null

Flag duplicate codes and unusual codes. Account for regional price variation. When nothing is wrong, use overcharge_flag false, flag_level "low", and issue null.

Return a JSON object with a "line_items" key holding the enriched array. No extra text.`

const negotiationSystem = `You are a medical billing advocate helping a patient dispute overcharges.

Produce three artifacts:
1. email: a professional, polite dispute email for the billing department, ready to send with placeholders for personal details
2. phone_script: concise, actionable talking points for a billing-department call
3. summary: a plain-language explanation of the findings for the patient

Reference specific codes, descriptions, prices, and dollar amounts. Stay respectful, not confrontational.

Return ONLY valid JSON with keys "email", "phone_script", and "summary".`

func buildExtractionPrompt(billText string) string {
	return fmt.Sprintf(`Extract all line items from the following medical bill text:

%s

Return a JSON object shaped like:
{
  "line_items": [
    {"code": "...", "description": "...", "quantity": 1.0, "price": 0.0, "notes": null}
  ]
}`, billText)
}

func buildAnalysisPrompt(itemsJSON string) string {
	return fmt.Sprintf(`Analyze the following medical bill line items:

%s

For each item add expected_cost, overcharge_flag, flag_level ("low"|"medium"|"high"), and issue (or null).

Return a JSON object shaped like:
{
  "line_items": [
    {"code": "...", "description": "...", "quantity": 1.0, "price": 0.0, "notes": null, "expected_cost": 0.0, "overcharge_flag": false, "flag_level": "low", "issue": null}
  ]
}`, itemsJSON)
}

func buildNegotiationPrompt(itemsJSON string, totalBilled, totalExpected, potentialSavings float64) string {
	return fmt.Sprintf(`Create negotiation materials from this medical bill analysis:

Total Billed: $%.2f
Total Expected: $%.2f
Potential Savings: $%.2f

Line Items Analysis:
%s

Generate a dispute email, a phone call script, and a patient-friendly summary. Return JSON with "email", "phone_script", and "summary" keys.`,
		totalBilled, totalExpected, potentialSavings, itemsJSON)
}
