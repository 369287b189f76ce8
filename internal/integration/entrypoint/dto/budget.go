package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/personal-finance/backend/internal/application/usecase/budget"
	"github.com/personal-finance/backend/internal/domain/entity"
)

// CreateBudgetRequest represents the request body for budget creation.
type CreateBudgetRequest struct {
	Category  string           `json:"category" binding:"required"`
	Amount    *decimal.Decimal `json:"amount" binding:"required"`
	Theme     *string          `json:"theme,omitempty"`
	Period    *string          `json:"period,omitempty"`
	StartDate *string          `json:"start_date,omitempty"`
	IsActive  *bool            `json:"is_active,omitempty"`
}

// UpdateBudgetRequest represents the request body for budget update.
type UpdateBudgetRequest struct {
	Category  *string          `json:"category,omitempty"`
	Amount    *decimal.Decimal `json:"amount,omitempty"`
	Theme     *string          `json:"theme,omitempty"`
	Period    *string          `json:"period,omitempty"`
	StartDate *string          `json:"start_date,omitempty"`
	IsActive  *bool            `json:"is_active,omitempty"`
}

// CheckBudgetLimitRequest represents the request body for a limit check.
type CheckBudgetLimitRequest struct {
	Amount        *decimal.Decimal `json:"amount" binding:"required"`
	TransactionID *string          `json:"transaction_id,omitempty"`
}

// BudgetResponse represents a single budget in API responses.
type BudgetResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Category  string    `json:"category"`
	Amount    string    `json:"amount"`
	Theme     string    `json:"theme"`
	Period    string    `json:"period"`
	StartDate string    `json:"start_date"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BudgetListResponse represents the response for listing budgets.
type BudgetListResponse struct {
	Budgets    []BudgetResponse   `json:"budgets"`
	Pagination PaginationResponse `json:"pagination"`
}

// BudgetUtilizationResponse represents a budget with its current-window spend.
type BudgetUtilizationResponse struct {
	Budget         BudgetResponse `json:"budget"`
	Spent          string         `json:"spent"`
	Remaining      string         `json:"remaining"`
	PercentageUsed string         `json:"percentage_used"`
	PeriodStart    time.Time      `json:"period_start"`
	PeriodEnd      time.Time      `json:"period_end"`
}

// NearLimitBudgetsResponse represents the response for near-limit budgets.
type NearLimitBudgetsResponse struct {
	Threshold string                      `json:"threshold"`
	Budgets   []BudgetUtilizationResponse `json:"budgets"`
}

// CheckBudgetLimitResponse represents the response of a limit check.
type CheckBudgetLimitResponse struct {
	BudgetID    string `json:"budget_id"`
	WithinLimit bool   `json:"within_limit"`
	Limit       string `json:"limit"`
	Spent       string `json:"spent"`
	Remaining   string `json:"remaining"`
}

// ToBudgetResponse converts a domain Budget entity to a BudgetResponse DTO.
func ToBudgetResponse(b *entity.Budget) BudgetResponse {
	return BudgetResponse{
		ID:        b.ID.String(),
		UserID:    b.UserID.String(),
		Category:  b.Category,
		Amount:    Money(b.Amount),
		Theme:     b.Theme,
		Period:    string(b.Period),
		StartDate: b.StartDate.UTC().Format(DateLayout),
		IsActive:  b.IsActive,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

// ToBudgetListResponse converts a list output to a BudgetListResponse DTO.
func ToBudgetListResponse(output *budget.ListBudgetsOutput) BudgetListResponse {
	budgets := make([]BudgetResponse, len(output.Budgets))
	for i, b := range output.Budgets {
		budgets[i] = ToBudgetResponse(b)
	}
	return BudgetListResponse{
		Budgets: budgets,
		Pagination: PaginationResponse{
			Page:       output.Pagination.Page,
			Limit:      output.Pagination.Limit,
			Total:      output.Pagination.Total,
			TotalPages: output.Pagination.TotalPages,
		},
	}
}

// ToBudgetUtilizationResponse converts a utilization snapshot to its DTO.
func ToBudgetUtilizationResponse(u *entity.BudgetUtilization) BudgetUtilizationResponse {
	return BudgetUtilizationResponse{
		Budget:         ToBudgetResponse(u.Budget),
		Spent:          Money(u.Spent),
		Remaining:      Money(u.Remaining),
		PercentageUsed: u.PercentageUsed.StringFixed(1),
		PeriodStart:    u.Window.Start,
		PeriodEnd:      u.Window.End,
	}
}

// ToNearLimitBudgetsResponse converts a near-limit output to its DTO.
func ToNearLimitBudgetsResponse(output *budget.ListNearLimitBudgetsOutput) NearLimitBudgetsResponse {
	budgets := make([]BudgetUtilizationResponse, len(output.Budgets))
	for i, u := range output.Budgets {
		budgets[i] = ToBudgetUtilizationResponse(u)
	}
	return NearLimitBudgetsResponse{
		Threshold: output.Threshold.String(),
		Budgets:   budgets,
	}
}

// ToCheckBudgetLimitResponse converts a limit check output to its DTO.
func ToCheckBudgetLimitResponse(output *budget.CheckBudgetLimitOutput) CheckBudgetLimitResponse {
	return CheckBudgetLimitResponse{
		BudgetID:    output.Budget.ID.String(),
		WithinLimit: output.WithinLimit,
		Limit:       Money(output.Budget.Amount),
		Spent:       Money(output.Spent),
		Remaining:   Money(output.Remaining),
	}
}
