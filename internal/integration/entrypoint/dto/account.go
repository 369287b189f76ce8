package dto

import (
	"github.com/personal-finance/backend/internal/application/usecase/account"
)

// AccountSummaryResponse represents the owner's income, expenses and balance.
type AccountSummaryResponse struct {
	CurrentBalance string `json:"current_balance"`
	Income         string `json:"income"`
	Expenses       string `json:"expenses"`
}

// PotsOverviewResponse represents the savings overview.
type PotsOverviewResponse struct {
	TotalSaved string        `json:"total_saved"`
	Breakdown  []PotResponse `json:"breakdown"`
}

// BudgetOverviewResponse represents the spending overview of active budgets.
type BudgetOverviewResponse struct {
	TotalBudget string                      `json:"total_budget"`
	AmountSpent string                      `json:"amount_spent"`
	Budgets     []BudgetUtilizationResponse `json:"budgets"`
}

// ToAccountSummaryResponse converts a summary output to its DTO.
func ToAccountSummaryResponse(output *account.GetSummaryOutput) AccountSummaryResponse {
	return AccountSummaryResponse{
		CurrentBalance: Money(output.CurrentBalance),
		Income:         Money(output.Income),
		Expenses:       Money(output.Expenses),
	}
}

// ToPotsOverviewResponse converts a pots overview output to its DTO.
func ToPotsOverviewResponse(output *account.GetPotsOverviewOutput) PotsOverviewResponse {
	return PotsOverviewResponse{
		TotalSaved: Money(output.TotalSaved),
		Breakdown:  ToPotResponses(output.Breakdown),
	}
}

// ToBudgetOverviewResponse converts a budget overview output to its DTO.
func ToBudgetOverviewResponse(output *account.GetBudgetOverviewOutput) BudgetOverviewResponse {
	budgets := make([]BudgetUtilizationResponse, len(output.Budgets))
	for i, u := range output.Budgets {
		budgets[i] = ToBudgetUtilizationResponse(u)
	}
	return BudgetOverviewResponse{
		TotalBudget: Money(output.TotalBudget),
		AmountSpent: Money(output.AmountSpent),
		Budgets:     budgets,
	}
}
