// Package stats derives summary figures from an analysis collection. It is
// the single rounding boundary: totals are accumulated unrounded and rounded
// to two decimals only here, so repeated calls during the debate never
// compound rounding error.
package stats

import (
	"math"

	"BillFighter/internal/domain"
)

// Compute aggregates billed and expected totals, savings, and flag counts.
// PotentialSavings may be negative (pricing judged at or below market) and
// is never clamped.
func Compute(items []domain.AnalysisItem) domain.SummaryStats {
	var billed, expected float64
	flagged := 0

	for _, item := range items {
		billed += item.Price * item.Quantity
		expected += item.ExpectedCost * item.Quantity
		if item.OverchargeFlag {
			flagged++
		}
	}

	return domain.SummaryStats{
		TotalItems:       len(items),
		TotalBilled:      round2(billed),
		TotalExpected:    round2(expected),
		PotentialSavings: round2(billed - expected),
		FlaggedItems:     flagged,
	}
}

func round2(value float64) float64 {
	return math.Round(value*100) / 100
}
