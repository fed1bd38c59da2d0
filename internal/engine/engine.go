package engine

import (
	"time"

	"github.com/spendplan/csp-backend/internal/model"
)

// Compute is the CSP transform. It is referentially transparent: the same
// inputs, settings, selector and clock always produce the same report. The
// only error it can return is ErrInvalidPeriod; every other anomaly —
// inconsistent references, malformed settings entries, an empty ledger —
// degrades into diagnostics on a fully rendered report.
func Compute(inputs Inputs, settings *model.Settings, periodSelector int, now time.Time) (*Report, error) {
	period, err := resolvePeriod(periodSelector, now, inputs.Transactions)
	if err != nil {
		return nil, err
	}

	if settings == nil {
		settings = &model.Settings{}
	}
	cls := newClassifier(inputs.Categories, settings)

	stream := normalize(inputs.Transactions, inputs.Accounts, period)
	income := aggregateIncome(stream, inputs.ScheduledTransactions, cls, settings, period)
	expenses := aggregateExpenses(stream, cls, settings, period)
	skipped := tallySkipped(stream)

	amounts := model.BucketAmounts{}
	for _, b := range model.Buckets {
		amounts.Set(b, expenses.Buckets[b].Amount)
	}
	score := scoreAmounts(income.Total, amounts)
	for _, b := range model.Buckets {
		expenses.Buckets[b].Percentage = score.Percentages[b]
		expenses.Buckets[b].IsOnTarget = score.OnTarget[b]
	}

	report := &Report{
		Period:               period,
		TotalIncome:          income.Total,
		MonthlyIncome:        income.Total / float64(period.Length),
		Buckets:              expenses.Buckets,
		MonthlyData:          expenses.MonthlyData,
		IncomePayees:         income.Payees,
		IncomeCategories:     income.Categories,
		AllExpenseCategories: expenses.AllCategories,
		Score:                score.Score,
		IsOnTrack:            score.IsOnTrack,
		Suggestions:          score.Suggestions,
		Diagnostics: Diagnostics{
			Skipped:                skipped,
			IncomeByCategory:       income.ByCategory,
			PositiveNonIncome:      income.PositiveNonIncome,
			ScheduledIncome:        income.Scheduled,
			BudgetedSavingsAdded:   expenses.BudgetedSavingsAdded,
			CategoriesWithZeroTxns: expenses.ZeroActivity,
			SavingsAdjustment:      expenses.SavingsAdjustment,
			ExcludedIncomeTotal:    income.ExcludedTotal,
			ExcludedExpenseTotal:   expenses.ExcludedTotal,
			DroppedSettingsEntries: cls.droppedEntries,
			Reconciliation:         reconcile(inputs.MonthSnapshots, period.Months, income, expenses, skipped),
		},
	}
	return report, nil
}
