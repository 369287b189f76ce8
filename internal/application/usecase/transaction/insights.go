package transaction

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/personal-finance/backend/internal/application/adapter"
	"github.com/personal-finance/backend/internal/domain/entity"
	domainerror "github.com/personal-finance/backend/internal/domain/error"
)

// Date ranges accepted by the analytics use case.
const (
	DateRangeLast7Days  = "last7days"
	DateRangeLast30Days = "last30days"
	DateRangeThisMonth  = "thisMonth"
)

const (
	defaultOverviewLimit = 5
	maxOverviewLimit     = 50
	dueSoonWindow        = 7 * 24 * time.Hour
)

var hundred = decimal.NewFromInt(100)

// GetOverviewInput represents the input for the recent transactions overview.
type GetOverviewInput struct {
	UserID uuid.UUID
	Limit  int
	Oldest bool // Oldest first instead of latest first
}

// GetOverviewOutput represents the recent transactions overview.
type GetOverviewOutput struct {
	Transactions []*entity.Transaction
}

// GetOverviewUseCase lists the owner's most recently touched transactions.
type GetOverviewUseCase struct {
	transactionRepo adapter.TransactionRepository
}

// NewGetOverviewUseCase creates a new GetOverviewUseCase instance.
func NewGetOverviewUseCase(transactionRepo adapter.TransactionRepository) *GetOverviewUseCase {
	return &GetOverviewUseCase{
		transactionRepo: transactionRepo,
	}
}

// Execute performs the overview query.
func (uc *GetOverviewUseCase) Execute(ctx context.Context, input GetOverviewInput) (*GetOverviewOutput, error) {
	limit := input.Limit
	if limit < 1 {
		limit = defaultOverviewLimit
	}
	if limit > maxOverviewLimit {
		limit = maxOverviewLimit
	}

	order := adapter.SortDesc
	if input.Oldest {
		order = adapter.SortAsc
	}

	result, err := uc.transactionRepo.FindByFilter(ctx, adapter.TransactionFilter{UserID: input.UserID}, adapter.Pagination{
		Page:      1,
		Limit:     limit,
		SortBy:    "updated_at",
		SortOrder: order,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load transaction overview: %w", err)
	}

	return &GetOverviewOutput{
		Transactions: result.Transactions,
	}, nil
}

// GetAnalyticsInput represents the input for transaction analytics.
type GetAnalyticsInput struct {
	UserID    uuid.UUID
	DateRange string // Defaults to last30days
}

// DailyTrend is the summed amount of one calendar day.
type DailyTrend struct {
	Date   string // YYYY-MM-DD
	Amount decimal.Decimal
}

// CategoryShare is the part of the total amount spent in one category.
type CategoryShare struct {
	Category   string
	Amount     decimal.Decimal
	Percentage int64 // Rounded to a whole percent
}

// GetAnalyticsOutput represents transaction analytics over a date range.
type GetAnalyticsOutput struct {
	Start      time.Time
	End        time.Time
	Trends     []DailyTrend    // Ascending by date
	Categories []CategoryShare // Ascending by category
}

// GetAnalyticsUseCase aggregates transactions into daily trends and a category breakdown.
type GetAnalyticsUseCase struct {
	transactionRepo adapter.TransactionRepository
	clock           adapter.Clock
}

// NewGetAnalyticsUseCase creates a new GetAnalyticsUseCase instance.
func NewGetAnalyticsUseCase(transactionRepo adapter.TransactionRepository, clock adapter.Clock) *GetAnalyticsUseCase {
	return &GetAnalyticsUseCase{
		transactionRepo: transactionRepo,
		clock:           clock,
	}
}

// Execute performs the analytics aggregation.
func (uc *GetAnalyticsUseCase) Execute(ctx context.Context, input GetAnalyticsInput) (*GetAnalyticsOutput, error) {
	now := uc.clock.Now()

	var start time.Time
	switch input.DateRange {
	case "", DateRangeLast30Days:
		start = now.Add(-30 * 24 * time.Hour)
	case DateRangeLast7Days:
		start = now.Add(-7 * 24 * time.Hour)
	case DateRangeThisMonth:
		start = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	default:
		return nil, domainerror.NewValidation(
			domainerror.ErrCodeInvalidDateRange,
			"Invalid date range",
			domainerror.ErrInvalidDateRange,
		)
	}

	transactions, err := uc.transactionRepo.FindInRange(ctx, input.UserID, start, now)
	if err != nil {
		return nil, fmt.Errorf("failed to load transactions: %w", err)
	}

	byDay := make(map[string]decimal.Decimal)
	byCategory := make(map[string]decimal.Decimal)
	total := decimal.Zero
	for _, t := range transactions {
		day := t.Date.Format(time.DateOnly)
		byDay[day] = byDay[day].Add(t.Amount)
		byCategory[t.Category] = byCategory[t.Category].Add(t.Amount)
		total = total.Add(t.Amount)
	}

	trends := make([]DailyTrend, 0, len(byDay))
	for day, amount := range byDay {
		trends = append(trends, DailyTrend{Date: day, Amount: amount})
	}
	sort.Slice(trends, func(i, j int) bool { return trends[i].Date < trends[j].Date })

	categories := make([]CategoryShare, 0, len(byCategory))
	for category, amount := range byCategory {
		percentage := int64(0)
		if total.IsPositive() {
			percentage = amount.Div(total).Mul(hundred).Round(0).IntPart()
		}
		categories = append(categories, CategoryShare{
			Category:   category,
			Amount:     amount,
			Percentage: percentage,
		})
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i].Category < categories[j].Category })

	return &GetAnalyticsOutput{
		Start:      start,
		End:        now,
		Trends:     trends,
		Categories: categories,
	}, nil
}

// GetRecurringBillsSummaryInput represents the input for the recurring bills summary.
type GetRecurringBillsSummaryInput struct {
	UserID uuid.UUID
}

// GetRecurringBillsSummaryOutput summarizes the owner's recurring transactions.
type GetRecurringBillsSummaryOutput struct {
	TotalPaid     int
	TotalUpcoming int
	DueSoon       []*entity.Transaction // Upcoming within seven days, ascending by date
}

// GetRecurringBillsSummaryUseCase splits recurring transactions into paid and upcoming bills.
type GetRecurringBillsSummaryUseCase struct {
	transactionRepo adapter.TransactionRepository
	clock           adapter.Clock
}

// NewGetRecurringBillsSummaryUseCase creates a new GetRecurringBillsSummaryUseCase instance.
func NewGetRecurringBillsSummaryUseCase(transactionRepo adapter.TransactionRepository, clock adapter.Clock) *GetRecurringBillsSummaryUseCase {
	return &GetRecurringBillsSummaryUseCase{
		transactionRepo: transactionRepo,
		clock:           clock,
	}
}

// Execute performs the summary. A bill dated before now is paid, anything else is upcoming.
func (uc *GetRecurringBillsSummaryUseCase) Execute(ctx context.Context, input GetRecurringBillsSummaryInput) (*GetRecurringBillsSummaryOutput, error) {
	transactions, err := uc.transactionRepo.FindRecurringByUser(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load recurring transactions: %w", err)
	}

	now := uc.clock.Now()
	dueSoonEnd := now.Add(dueSoonWindow)

	output := &GetRecurringBillsSummaryOutput{
		DueSoon: make([]*entity.Transaction, 0),
	}
	for _, t := range transactions {
		if t.Date.Before(now) {
			output.TotalPaid++
			continue
		}
		output.TotalUpcoming++
		if !t.Date.After(dueSoonEnd) {
			output.DueSoon = append(output.DueSoon, t)
		}
	}
	sort.SliceStable(output.DueSoon, func(i, j int) bool {
		return output.DueSoon[i].Date.Before(output.DueSoon[j].Date)
	})

	return output, nil
}
