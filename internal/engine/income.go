package engine

import (
	"sort"
	"time"

	"github.com/spendplan/csp-backend/internal/model"
)

// incomeResult carries everything the income aggregator derives from the
// effective stream plus scheduled templates.
type incomeResult struct {
	Total             float64
	Payees            []IncomeSource
	Categories        []IncomeSource
	ByCategory        map[string]float64
	PositiveNonIncome PositiveNonIncome
	ExcludedTotal     float64
	Scheduled         []ScheduledProjection
	ScheduledTotal    float64
}

// aggregateIncome computes total income over the window with payee and
// category exclusions applied, projects recurring scheduled income, and
// separates positive non-income inflows (refund candidates) out of the
// income total entirely: the budgeting tool counts those as income, the
// engine attributes them to the expense side, and the reconciler uses the
// difference to explain the resulting gap.
func aggregateIncome(stream []Effective, scheduled []model.ScheduledTransaction, cls *classifier, settings *model.Settings, period PeriodInfo) incomeResult {
	res := incomeResult{ByCategory: make(map[string]float64)}

	payees := make(map[string]*incomeRollup)
	categories := make(map[string]*incomeRollup)

	for _, e := range stream {
		if e.Kind != KindIncome {
			continue
		}
		if !cls.isIncomeCategory(e.CategoryId, e.CategoryName) {
			res.PositiveNonIncome.Total += e.Amount
			res.PositiveNonIncome.Count++
			if len(res.PositiveNonIncome.Samples) < maxDiagnosticSamples {
				res.PositiveNonIncome.Samples = append(res.PositiveNonIncome.Samples, sampleOf(e))
			}
			continue
		}

		payeeExcluded := settings.HasPayeeExcluded(e.PayeeName)
		categoryExcluded := settings.HasIncomeCategoryExcluded(e.CategoryId)
		excluded := payeeExcluded || categoryExcluded

		p := payees[e.PayeeName]
		if p == nil {
			p = &incomeRollup{name: e.PayeeName, excluded: payeeExcluded}
			payees[e.PayeeName] = p
		}
		p.total += e.Amount
		p.count++

		catName := incomeCategoryLabel(e, cls)
		c := categories[e.CategoryId]
		if c == nil {
			c = &incomeRollup{id: e.CategoryId, name: catName, excluded: categoryExcluded}
			categories[e.CategoryId] = c
		}
		c.total += e.Amount
		c.count++

		res.ByCategory[catName] += e.Amount

		if excluded {
			res.ExcludedTotal += e.Amount
			continue
		}
		res.Total += e.Amount
	}

	res.Scheduled, res.ScheduledTotal = projectScheduledIncome(scheduled, cls, settings, period)
	res.Total += res.ScheduledTotal

	res.Payees = finishRollups(payees, period.Length)
	res.Categories = finishRollups(categories, period.Length)
	return res
}

func incomeCategoryLabel(e Effective, cls *classifier) string {
	if e.CategoryName != "" {
		return e.CategoryName
	}
	if cat, ok := cls.category(e.CategoryId); ok && cat.Name != "" {
		return cat.Name
	}
	return "Uncategorized"
}

// incomeRollup accumulates one payee's or category's income rows.
type incomeRollup struct {
	id       string
	name     string
	total    float64
	count    int
	excluded bool
}

func finishRollups(byKey map[string]*incomeRollup, periodLength int) []IncomeSource {
	out := make([]IncomeSource, 0, len(byKey))
	for _, r := range byKey {
		out = append(out, IncomeSource{
			Id:               r.id,
			Name:             r.name,
			Total:            r.total,
			Monthly:          r.total / float64(periodLength),
			TransactionCount: r.count,
			IsExcluded:       r.excluded,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Total != out[j].Total {
			return out[i].Total > out[j].Total
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// projectScheduledIncome walks each recurring template whose category is an
// income category and counts the occurrences that fall inside the projection
// horizon. The horizon runs to the end of the window's last month, not to
// "now": a paycheck dated later this month still belongs to this month's
// income. Templates under an excluded payee or category are not projected.
func projectScheduledIncome(scheduled []model.ScheduledTransaction, cls *classifier, settings *model.Settings, period PeriodInfo) ([]ScheduledProjection, float64) {
	var out []ScheduledProjection
	var total float64

	horizon := projectionHorizon(period)
	for _, st := range scheduled {
		if st.Amount <= 0 {
			continue
		}
		if !cls.isIncomeCategory(st.CategoryId, st.CategoryName) {
			continue
		}
		if settings.HasPayeeExcluded(st.PayeeName) || settings.HasIncomeCategoryExcluded(st.CategoryId) {
			continue
		}

		proj := ScheduledProjection{Id: st.Id, PayeeName: st.PayeeName, Frequency: st.Frequency}
		date := st.DateNext
		for i := 0; i < maxScheduledProjectionLen && date.Before(horizon); i++ {
			if !date.Before(period.Start) {
				proj.Occurrences++
				proj.Projected += st.Amount.Major()
			}
			next := nextOccurrence(date, st.Frequency)
			if !next.After(date) {
				break
			}
			date = next
		}
		if proj.Occurrences > 0 {
			total += proj.Projected
			out = append(out, proj)
		}
	}
	return out, total
}

// projectionHorizon is the first instant after the window's last month.
func projectionHorizon(period PeriodInfo) time.Time {
	if len(period.Months) == 0 {
		return period.End
	}
	last, err := time.Parse(monthKeyLayout, period.Months[len(period.Months)-1])
	if err != nil {
		return period.End
	}
	return last.AddDate(0, 1, 0)
}

// nextOccurrence advances a scheduled date by one recurrence step.
// Monthly-family frequencies keep the same calendar slot; the rest step by a
// fixed day count.
func nextOccurrence(t time.Time, f model.Frequency) time.Time {
	switch f {
	case model.FreqWeekly:
		return t.AddDate(0, 0, 7)
	case model.FreqEveryOtherWeek:
		return t.AddDate(0, 0, 14)
	case model.FreqTwiceAMonth:
		return t.AddDate(0, 0, 15)
	case model.FreqEvery4Weeks:
		return t.AddDate(0, 0, 28)
	case model.FreqMonthly:
		return t.AddDate(0, 1, 0)
	case model.FreqEveryOtherMonth:
		return t.AddDate(0, 2, 0)
	case model.FreqEvery3Months:
		return t.AddDate(0, 3, 0)
	case model.FreqEvery4Months:
		return t.AddDate(0, 4, 0)
	case model.FreqTwiceAYear:
		return t.AddDate(0, 6, 0)
	case model.FreqYearly:
		return t.AddDate(1, 0, 0)
	case model.FreqEveryOtherYear:
		return t.AddDate(2, 0, 0)
	default:
		// Unknown frequency: jump past any horizon to end the loop.
		return t.AddDate(100, 0, 0)
	}
}

func sampleOf(e Effective) TxnSample {
	return TxnSample{PayeeName: e.PayeeName, Date: e.Date, Amount: e.Amount}
}
