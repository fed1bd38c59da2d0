package engine

import (
	"math"

	"github.com/spendplan/csp-backend/internal/model"
)

// incomeGapTolerance is the absolute residual (major units) under which an
// income gap is considered explained outright.
const incomeGapTolerance = 1000.0

// refundExplanationRatio: a gap is also considered explained when refunds
// (positive non-income inflows) cover at least this share of it. The
// budgeting tool counts refunds as income; the engine nets them against
// expense categories, so a gap of roughly the refund total is expected.
const refundExplanationRatio = 0.8

// reconcile re-derives the budgeting tool's own totals from month snapshots
// alone and works out what portion of the difference against the engine's
// figures is explained by known substitutions and skips. The residuals are
// computed by subtraction, so the expense identity
//
//	(appExpenses − budgetedSavingsAdded) + skippedExpenses + unexplainedGap = toolExpenses
//
// holds exactly by construction; a large residual is the diagnostic signal.
func reconcile(snapshots []model.MonthSnapshot, months []string, income incomeResult, expenses expenseResult, skipped map[SkipReason]*SkipSummary) Reconciliation {
	inWindow := make(map[string]bool, len(months))
	for _, m := range months {
		inWindow[m] = true
	}

	var rec Reconciliation
	var monthActivity, categoryActivitySum float64
	for _, snap := range snapshots {
		if !inWindow[snap.Month] {
			continue
		}
		rec.MonthCount++
		rec.ToolIncome += snap.Income.Major()
		monthActivity += snap.Activity.Major()
		for _, mc := range snap.Categories {
			categoryActivitySum += mc.Activity.Major()
		}
	}
	// Activity is negative for net spending; report expenses as positive.
	rec.ToolExpenses = -monthActivity
	rec.SumOfCategoryExpenses = -categoryActivitySum
	rec.CategorySumDelta = monthActivity - categoryActivitySum

	appExpenses := expenses.totalAmount() - expenses.SavingsAdjustment
	rec.AppExpenses = appExpenses
	rec.BudgetedSavingsAdded = expenses.BudgetedSavingsAdded
	rec.SkippedExpensesTotal = skippedExpenseTotal(skipped)
	rec.UnexplainedExpenseGap = rec.ToolExpenses - (appExpenses - expenses.BudgetedSavingsAdded) - rec.SkippedExpensesTotal

	rec.AppIncome = income.Total
	rec.TrackingIncome = skipped[SkipTrackingIncome].Total
	rec.ExcludedIncome = income.ExcludedTotal
	rec.StartingBalanceIncome = skipped[SkipStartingBalance].Total
	rec.ReconciliationIncome = skipped[SkipReconciliation].Total
	rec.UnexplainedIncomeGap = (rec.AppIncome - rec.ToolIncome) +
		rec.TrackingIncome + rec.ExcludedIncome + rec.StartingBalanceIncome + rec.ReconciliationIncome

	rec.PositiveNonIncomeTotal = income.PositiveNonIncome.Total
	gap := math.Abs(rec.UnexplainedIncomeGap)
	rec.GapExplainedByRefunds = gap < incomeGapTolerance ||
		rec.PositiveNonIncomeTotal >= refundExplanationRatio*gap

	return rec
}

// totalAmount sums the four bucket window totals.
func (r expenseResult) totalAmount() float64 {
	var total float64
	for _, b := range r.Buckets {
		total += b.Amount
	}
	return total
}
