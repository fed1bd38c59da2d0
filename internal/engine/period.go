package engine

import (
	"errors"
	"time"

	"github.com/spendplan/csp-backend/internal/model"
)

// ErrInvalidPeriod is returned when the period selector is outside the
// allowed set {0, 3, 6, 12, 24, 999}.
var ErrInvalidPeriod = errors.New("invalid period selector")

const (
	// PeriodCurrentMonth selects the current calendar month to date.
	PeriodCurrentMonth = 0
	// PeriodAllHistory selects everything back to the earliest transaction.
	PeriodAllHistory = 999
)

var allowedPeriods = map[int]bool{0: true, 3: true, 6: true, 12: true, 24: true, 999: true}

const monthKeyLayout = "2006-01"

func monthKey(t time.Time) string {
	return t.Format(monthKeyLayout)
}

func monthLabel(key string) string {
	t, err := time.Parse(monthKeyLayout, key)
	if err != nil {
		return key
	}
	return t.Format("Jan 2006")
}

func startOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// resolvePeriod turns a period selector into the ordered month-key list and
// the half-open date window [Start, End). End is always now; Length is the
// month count and is what every downstream average divides by, never the
// selector itself.
func resolvePeriod(selector int, now time.Time, txns []model.Transaction) (PeriodInfo, error) {
	if !allowedPeriods[selector] {
		return PeriodInfo{}, ErrInvalidPeriod
	}

	p := PeriodInfo{Selector: selector, End: now}

	switch selector {
	case PeriodCurrentMonth:
		p.Start = startOfMonth(now)
		p.Months = []string{monthKey(now)}

	case PeriodAllHistory:
		earliest := now
		for _, t := range txns {
			if t.Date.Before(earliest) {
				earliest = t.Date
			}
		}
		p.Start = earliest
		p.Months = monthsBetween(startOfMonth(earliest), startOfMonth(now))

	default:
		first := startOfMonth(now).AddDate(0, -(selector - 1), 0)
		p.Start = first
		p.Months = monthsBetween(first, startOfMonth(now))
	}

	p.Length = len(p.Months)
	return p, nil
}

// monthsBetween returns every month key from first through last inclusive.
// Both arguments must be first-of-month dates.
func monthsBetween(first, last time.Time) []string {
	var months []string
	for m := first; !m.After(last); m = m.AddDate(0, 1, 0) {
		months = append(months, monthKey(m))
	}
	return months
}
