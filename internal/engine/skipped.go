package engine

import "math"

// skipReasons lists every tallied reason in report order.
var skipReasons = []SkipReason{
	SkipCreditCardPayment,
	SkipUncategorizedTransfer,
	SkipTrackingAccount,
	SkipStartingBalance,
	SkipReconciliation,
	SkipTrackingIncome,
	SkipFutureDatedIncome,
	SkipTransferIncome,
}

// expense-side reasons: their totals explain the gap between the engine's
// expense figure and the budgeting tool's.
var expenseSkipReasons = map[SkipReason]bool{
	SkipCreditCardPayment:     true,
	SkipUncategorizedTransfer: true,
	SkipTrackingAccount:       true,
}

// tallySkipped produces per-reason counts, absolute totals and up to five
// samples for everything the normalizer excluded.
func tallySkipped(stream []Effective) map[SkipReason]*SkipSummary {
	out := make(map[SkipReason]*SkipSummary, len(skipReasons))
	for _, r := range skipReasons {
		out[r] = &SkipSummary{}
	}
	for _, e := range stream {
		if e.Kind != KindSkipped || e.SkipReason == skipNone {
			continue
		}
		s := out[e.SkipReason]
		s.Count++
		s.Total += math.Abs(e.Amount)
		if len(s.Samples) < maxDiagnosticSamples {
			s.Samples = append(s.Samples, sampleOf(e))
		}
	}
	return out
}

// skippedExpenseTotal sums the expense-side skip totals.
func skippedExpenseTotal(skipped map[SkipReason]*SkipSummary) float64 {
	var total float64
	for reason, s := range skipped {
		if expenseSkipReasons[reason] {
			total += s.Total
		}
	}
	return total
}
