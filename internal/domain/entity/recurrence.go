package entity

import (
	"time"

	domainerror "github.com/personal-finance/backend/internal/domain/error"
)

// RecurringFrequency represents how often a recurring transaction repeats.
type RecurringFrequency string

const (
	RecurringFrequencyDaily   RecurringFrequency = "daily"
	RecurringFrequencyWeekly  RecurringFrequency = "weekly"
	RecurringFrequencyMonthly RecurringFrequency = "monthly"
	RecurringFrequencyYearly  RecurringFrequency = "yearly"
)

// IsValid reports whether the frequency is a known kind.
func (f RecurringFrequency) IsValid() bool {
	switch f {
	case RecurringFrequencyDaily, RecurringFrequencyWeekly, RecurringFrequencyMonthly, RecurringFrequencyYearly:
		return true
	}
	return false
}

// AddInterval advances t by one frequency step.
// Month and year steps clamp to the last valid day of the target month,
// so Jan 31 + 1 month is Feb 28/29 and Feb 29 + 1 year is Feb 28.
func AddInterval(t time.Time, frequency RecurringFrequency) (time.Time, error) {
	switch frequency {
	case RecurringFrequencyDaily:
		return t.AddDate(0, 0, 1), nil
	case RecurringFrequencyWeekly:
		return t.AddDate(0, 0, 7), nil
	case RecurringFrequencyMonthly:
		return addMonthsClamped(t, 1), nil
	case RecurringFrequencyYearly:
		return addMonthsClamped(t, 12), nil
	}

	return time.Time{}, domainerror.NewValidation(
		domainerror.ErrCodeInvalidRecurringFrequency,
		"recurring frequency must be 'daily', 'weekly', 'monthly', or 'yearly'",
		domainerror.ErrInvalidRecurringFrequency,
	)
}

func addMonthsClamped(t time.Time, months int) time.Time {
	year, month, day := t.Date()
	target := time.Date(year, month+time.Month(months), 1, 0, 0, 0, 0, t.Location())

	if last := daysIn(target.Year(), target.Month(), t.Location()); day > last {
		day = last
	}

	return time.Date(target.Year(), target.Month(), day, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

func daysIn(year int, month time.Month, loc *time.Location) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, loc).Day()
}
