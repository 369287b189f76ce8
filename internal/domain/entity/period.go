package entity

import (
	"time"

	domainerror "github.com/personal-finance/backend/internal/domain/error"
)

// PeriodWindow is an inclusive time range.
type PeriodWindow struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls inside the window, bounds included.
func (w PeriodWindow) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

// months returns the length of one cycle.
func (p BudgetPeriod) months() int {
	switch p {
	case BudgetPeriodQuarterly:
		return 3
	case BudgetPeriodYearly:
		return 12
	default:
		return 1
	}
}

// cycleStart returns midnight of the first day of the cycle containing t.
func (p BudgetPeriod) cycleStart(t time.Time) time.Time {
	year, month, _ := t.Date()
	switch p {
	case BudgetPeriodQuarterly:
		quarter := (int(month) - 1) / 3
		return time.Date(year, time.Month(quarter*3+1), 1, 0, 0, 0, 0, t.Location())
	case BudgetPeriodYearly:
		return time.Date(year, time.January, 1, 0, 0, 0, 0, t.Location())
	default:
		return time.Date(year, month, 1, 0, 0, 0, 0, t.Location())
	}
}

// Window returns the calendar-aligned cycle a budget anchored at anchor is in at now.
// The cycle containing now is used, unless the anchor sits in a later cycle,
// in which case the anchor's cycle is returned. Start is 00:00:00.000 and end
// is 23:59:59.999 of the cycle's last day, in now's location.
func (p BudgetPeriod) Window(anchor, now time.Time) (PeriodWindow, error) {
	if !p.IsValid() {
		return PeriodWindow{}, domainerror.NewValidation(
			domainerror.ErrCodeInvalidBudgetPeriod,
			"period must be 'monthly', 'quarterly', or 'yearly'",
			domainerror.ErrInvalidBudgetPeriod,
		)
	}

	reference := now
	anchor = anchor.In(now.Location())
	if p.cycleStart(anchor).After(p.cycleStart(now)) {
		reference = anchor
	}

	start := p.cycleStart(reference)
	end := start.AddDate(0, p.months(), 0).Add(-time.Millisecond)

	return PeriodWindow{Start: start, End: end}, nil
}
