package engine

import (
	"sort"

	"github.com/spendplan/csp-backend/internal/model"
)

// expenseResult is the expense aggregator's output: per-bucket window totals,
// per-month series, per-category rollups, and the adjustments the reconciler
// needs to explain.
type expenseResult struct {
	Buckets              map[model.Bucket]*BucketSummary
	MonthlyData          []MonthlyData
	AllCategories        []CategorySummary
	BudgetedSavingsAdded float64
	ZeroActivity         []ZeroActivityCategory
	SavingsAdjustment    float64
	ExcludedTotal        float64
}

type categoryActivity struct {
	id           string
	name         string
	contribution float64
	count        int
	bucket       model.Bucket
	custom       bool
	substituted  bool
}

// aggregateExpenses folds expense-candidate records into buckets, then
// applies two savings-bucket adjustments in order: balance substitution
// (the savings valuator) and budgeted fold-in for dormant categories.
//
// Substitution replaces a category's summed activity with its available
// balance divided by the period length, reflecting money accumulated rather
// than money moved. Fold-in covers savings categories with no activity at
// all: the budgeted amount is added for every month in the window. A
// category with an available balance is always valued by substitution, so
// fold-in only applies where no balance is known.
func aggregateExpenses(stream []Effective, cls *classifier, settings *model.Settings, period PeriodInfo) expenseResult {
	res := expenseResult{Buckets: make(map[model.Bucket]*BucketSummary)}
	for _, b := range model.Buckets {
		res.Buckets[b] = &BucketSummary{}
	}

	byCategory := make(map[string]*categoryActivity)
	byMonth := make(map[string]*model.BucketAmounts)
	for _, m := range period.Months {
		byMonth[m] = &model.BucketAmounts{}
	}

	for _, e := range stream {
		if e.Kind != KindExpense {
			continue
		}
		amount := -e.Amount
		if settings.HasExpenseCategoryExcluded(e.CategoryId) {
			res.ExcludedTotal += amount
			continue
		}

		bucket, custom := cls.bucketFor(e.CategoryId, e.CategoryName)
		ca := byCategory[e.CategoryId]
		if ca == nil {
			ca = &categoryActivity{
				id:     e.CategoryId,
				name:   expenseCategoryLabel(e, cls),
				bucket: bucket,
				custom: custom,
			}
			byCategory[e.CategoryId] = ca
		}
		ca.contribution += amount
		ca.count++

		if m, ok := byMonth[e.Month]; ok {
			m.Set(bucket, m.Get(bucket)+amount)
		}
	}

	applySavingsValuation(byCategory, cls, settings, period, &res)
	foldInBudgetedSavings(byCategory, byMonth, cls, settings, period, &res)

	for _, ca := range byCategory {
		res.Buckets[ca.bucket].Amount += ca.contribution
		res.Buckets[ca.bucket].Categories = append(res.Buckets[ca.bucket].Categories, summaryOf(ca, period.Length))
	}
	for _, b := range res.Buckets {
		sortSummaries(b.Categories)
	}

	res.MonthlyData = make([]MonthlyData, 0, len(period.Months))
	for _, m := range period.Months {
		res.MonthlyData = append(res.MonthlyData, MonthlyData{
			Month:         m,
			Label:         monthLabel(m),
			BucketAmounts: *byMonth[m],
		})
	}

	res.AllCategories = allExpenseCategories(byCategory, cls, period.Length)
	return res
}

// applySavingsValuation substitutes available/period_length for summed
// activity on every savings-bucket category that carries a snapshot balance.
// Dormant categories with a balance get the same valuation: the money is
// accumulated whether or not it moved this window.
func applySavingsValuation(byCategory map[string]*categoryActivity, cls *classifier, settings *model.Settings, period PeriodInfo, res *expenseResult) {
	for id, ca := range byCategory {
		if ca.bucket != model.BucketSavings {
			continue
		}
		cat, ok := cls.category(id)
		if !ok || cat.Balance == nil {
			continue
		}
		substituted := cat.Balance.Major() / float64(period.Length)
		res.SavingsAdjustment += substituted - ca.contribution
		ca.contribution = substituted
		ca.substituted = true
	}

	for id, cat := range cls.categoriesByID {
		if _, ok := byCategory[id]; ok {
			continue
		}
		if cat.Balance == nil || *cat.Balance == 0 {
			continue
		}
		if cls.isIncomeCategory(id, cat.Name) || settings.HasExpenseCategoryExcluded(id) {
			continue
		}
		bucket, custom := cls.bucketFor(id, cat.Name)
		if bucket != model.BucketSavings {
			continue
		}
		substituted := cat.Balance.Major() / float64(period.Length)
		byCategory[id] = &categoryActivity{
			id:           id,
			name:         cat.Name,
			bucket:       bucket,
			custom:       custom,
			contribution: substituted,
			substituted:  true,
		}
		res.SavingsAdjustment += substituted
	}
}

// foldInBudgetedSavings adds budgeted-per-month amounts for savings-bucket
// categories that saw no activity in the window, so regular contributions
// the user budgets but hasn't moved yet still count toward the savings rate.
func foldInBudgetedSavings(byCategory map[string]*categoryActivity, byMonth map[string]*model.BucketAmounts, cls *classifier, settings *model.Settings, period PeriodInfo, res *expenseResult) {
	for _, cat := range cls.categoriesByID {
		if cat.Budgeted == nil || *cat.Budgeted == 0 {
			continue
		}
		if cls.isIncomeCategory(cat.Id, cat.Name) || settings.HasExpenseCategoryExcluded(cat.Id) {
			continue
		}
		bucket, custom := cls.bucketFor(cat.Id, cat.Name)
		if bucket != model.BucketSavings {
			continue
		}
		if ca, ok := byCategory[cat.Id]; ok && (ca.count > 0 || ca.substituted) {
			continue
		}
		if cat.Balance != nil {
			// Valued by substitution instead.
			continue
		}

		monthly := cat.Budgeted.Major()
		added := monthly * float64(period.Length)
		ca := byCategory[cat.Id]
		if ca == nil {
			ca = &categoryActivity{id: cat.Id, name: cat.Name, bucket: bucket, custom: custom}
			byCategory[cat.Id] = ca
		}
		ca.contribution += added
		for _, m := range byMonth {
			m.Savings += monthly
		}

		res.BudgetedSavingsAdded += added
		res.ZeroActivity = append(res.ZeroActivity, ZeroActivityCategory{
			CategoryId:      cat.Id,
			Name:            cat.Name,
			MonthlyBudgeted: monthly,
			Added:           added,
		})
	}
	sort.Slice(res.ZeroActivity, func(i, j int) bool { return res.ZeroActivity[i].Name < res.ZeroActivity[j].Name })
}

// allExpenseCategories returns the union of categories seen in the window
// and every dormant non-income category, so the caller can offer bucket
// assignment for categories with no transactions yet.
func allExpenseCategories(byCategory map[string]*categoryActivity, cls *classifier, periodLength int) []CategorySummary {
	out := make([]CategorySummary, 0, len(byCategory))
	seen := make(map[string]bool, len(byCategory))
	for id, ca := range byCategory {
		out = append(out, summaryOf(ca, periodLength))
		seen[id] = true
	}
	for id, cat := range cls.categoriesByID {
		if seen[id] || cls.isIncomeCategory(id, cat.Name) {
			continue
		}
		bucket, custom := cls.bucketFor(id, cat.Name)
		out = append(out, summaryOf(&categoryActivity{id: id, name: cat.Name, bucket: bucket, custom: custom}, periodLength))
	}
	sortSummaries(out)
	return out
}

func summaryOf(ca *categoryActivity, periodLength int) CategorySummary {
	s := CategorySummary{
		CategoryId:       ca.id,
		Name:             ca.name,
		MonthlyAmount:    ca.contribution / float64(periodLength),
		TransactionCount: ca.count,
		InferredBucket:   inferBucket(ca.name),
	}
	if ca.custom {
		s.CustomBucket = ca.bucket
	}
	return s
}

func sortSummaries(list []CategorySummary) {
	sort.Slice(list, func(i, j int) bool {
		if list[i].MonthlyAmount != list[j].MonthlyAmount {
			return list[i].MonthlyAmount > list[j].MonthlyAmount
		}
		return list[i].Name < list[j].Name
	})
}

func expenseCategoryLabel(e Effective, cls *classifier) string {
	if e.CategoryName != "" {
		return e.CategoryName
	}
	if cat, ok := cls.category(e.CategoryId); ok && cat.Name != "" {
		return cat.Name
	}
	return "Uncategorized"
}
