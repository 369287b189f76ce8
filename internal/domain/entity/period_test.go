package entity

import (
	"testing"
	"time"

	domainerror "github.com/personal-finance/backend/internal/domain/error"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func TestBudgetPeriodWindow(t *testing.T) {
	tests := []struct {
		name          string
		period        BudgetPeriod
		anchor        time.Time
		now           time.Time
		expectedStart time.Time
		expectedEnd   time.Time
	}{
		{
			name:          "monthly in anchor month",
			period:        BudgetPeriodMonthly,
			anchor:        date(2024, time.February, 10),
			now:           time.Date(2024, time.February, 20, 15, 30, 0, 0, time.UTC),
			expectedStart: date(2024, time.February, 1),
			expectedEnd:   time.Date(2024, time.February, 29, 23, 59, 59, 999_000_000, time.UTC),
		},
		{
			name:          "monthly rolls forward with now",
			period:        BudgetPeriodMonthly,
			anchor:        date(2023, time.June, 15),
			now:           date(2024, time.April, 3),
			expectedStart: date(2024, time.April, 1),
			expectedEnd:   time.Date(2024, time.April, 30, 23, 59, 59, 999_000_000, time.UTC),
		},
		{
			name:          "quarterly second quarter",
			period:        BudgetPeriodQuarterly,
			anchor:        date(2024, time.January, 1),
			now:           date(2024, time.May, 17),
			expectedStart: date(2024, time.April, 1),
			expectedEnd:   time.Date(2024, time.June, 30, 23, 59, 59, 999_000_000, time.UTC),
		},
		{
			name:          "quarterly december",
			period:        BudgetPeriodQuarterly,
			anchor:        date(2024, time.January, 1),
			now:           date(2024, time.December, 31),
			expectedStart: date(2024, time.October, 1),
			expectedEnd:   time.Date(2024, time.December, 31, 23, 59, 59, 999_000_000, time.UTC),
		},
		{
			name:          "yearly",
			period:        BudgetPeriodYearly,
			anchor:        date(2022, time.July, 4),
			now:           date(2024, time.March, 9),
			expectedStart: date(2024, time.January, 1),
			expectedEnd:   time.Date(2024, time.December, 31, 23, 59, 59, 999_000_000, time.UTC),
		},
		{
			name:          "anchor in a future cycle uses the anchor cycle",
			period:        BudgetPeriodMonthly,
			anchor:        date(2024, time.September, 12),
			now:           date(2024, time.July, 1),
			expectedStart: date(2024, time.September, 1),
			expectedEnd:   time.Date(2024, time.September, 30, 23, 59, 59, 999_000_000, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			window, err := tt.period.Window(tt.anchor, tt.now)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !window.Start.Equal(tt.expectedStart) {
				t.Errorf("expected start %v, got %v", tt.expectedStart, window.Start)
			}
			if !window.End.Equal(tt.expectedEnd) {
				t.Errorf("expected end %v, got %v", tt.expectedEnd, window.End)
			}
		})
	}
}

func TestMonthlyWindowContainsAnchorAndSpansTheMonth(t *testing.T) {
	for month := time.January; month <= time.December; month++ {
		anchor := time.Date(2023, month, 17, 9, 0, 0, 0, time.UTC)
		now := time.Date(2023, month, 28, 12, 0, 0, 0, time.UTC)

		window, err := BudgetPeriodMonthly.Window(anchor, now)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !window.Contains(anchor) {
			t.Errorf("%s: expected window to contain anchor", month)
		}

		daysInMonth := time.Date(2023, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
		expected := time.Duration(daysInMonth) * 24 * time.Hour
		if got := window.End.Sub(window.Start) + time.Millisecond; got != expected {
			t.Errorf("%s: expected duration %v, got %v", month, expected, got)
		}
	}
}

func TestPeriodWindowBoundaries(t *testing.T) {
	window, err := BudgetPeriodMonthly.Window(date(2024, time.March, 1), date(2024, time.March, 15))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !window.Contains(window.Start) || !window.Contains(window.End) {
		t.Error("expected bounds to be inclusive")
	}
	if window.Contains(window.Start.Add(-time.Millisecond)) {
		t.Error("expected 1ms before start to be outside the window")
	}
	if window.Contains(window.End.Add(time.Millisecond)) {
		t.Error("expected 1ms after end to be outside the window")
	}
}

func TestBudgetPeriodWindowUnknownKind(t *testing.T) {
	_, err := BudgetPeriod("weekly").Window(date(2024, time.March, 1), date(2024, time.March, 15))
	if !domainerror.IsKind(err, domainerror.KindValidation) {
		t.Errorf("expected validation error, got %v", err)
	}
}
