package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/personal-finance/backend/internal/application/usecase/account"
	"github.com/personal-finance/backend/internal/application/usecase/transaction"
	"github.com/personal-finance/backend/internal/integration/entrypoint/dto"
)

// AccountController handles the account overview and recurring bills endpoints.
type AccountController struct {
	summaryUseCase        *account.GetSummaryUseCase
	potsOverviewUseCase   *account.GetPotsOverviewUseCase
	budgetOverviewUseCase *account.GetBudgetOverviewUseCase
	recurringBillsUseCase *transaction.GetRecurringBillsSummaryUseCase
}

// NewAccountController creates a new account controller instance.
func NewAccountController(
	summaryUseCase *account.GetSummaryUseCase,
	potsOverviewUseCase *account.GetPotsOverviewUseCase,
	budgetOverviewUseCase *account.GetBudgetOverviewUseCase,
	recurringBillsUseCase *transaction.GetRecurringBillsSummaryUseCase,
) *AccountController {
	return &AccountController{
		summaryUseCase:        summaryUseCase,
		potsOverviewUseCase:   potsOverviewUseCase,
		budgetOverviewUseCase: budgetOverviewUseCase,
		recurringBillsUseCase: recurringBillsUseCase,
	}
}

// Summary handles GET /account/summary requests.
func (c *AccountController) Summary(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	output, err := c.summaryUseCase.Execute(ctx.Request.Context(), account.GetSummaryInput{UserID: userID})
	if err != nil {
		respondError(ctx, err, "Failed to compute account summary")
		return
	}

	ctx.JSON(http.StatusOK, dto.ToAccountSummaryResponse(output))
}

// PotsOverview handles GET /account/pots-overview requests.
func (c *AccountController) PotsOverview(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	output, err := c.potsOverviewUseCase.Execute(ctx.Request.Context(), account.GetPotsOverviewInput{UserID: userID})
	if err != nil {
		respondError(ctx, err, "Failed to compute pots overview")
		return
	}

	ctx.JSON(http.StatusOK, dto.ToPotsOverviewResponse(output))
}

// BudgetOverview handles GET /account/budget-overview requests.
func (c *AccountController) BudgetOverview(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	output, err := c.budgetOverviewUseCase.Execute(ctx.Request.Context(), account.GetBudgetOverviewInput{UserID: userID})
	if err != nil {
		respondError(ctx, err, "Failed to compute budget overview")
		return
	}

	ctx.JSON(http.StatusOK, dto.ToBudgetOverviewResponse(output))
}

// RecurringBills handles GET /recurring-bills/summary requests.
func (c *AccountController) RecurringBills(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	output, err := c.recurringBillsUseCase.Execute(ctx.Request.Context(), transaction.GetRecurringBillsSummaryInput{UserID: userID})
	if err != nil {
		respondError(ctx, err, "Failed to compute recurring bills summary")
		return
	}

	ctx.JSON(http.StatusOK, dto.ToRecurringBillsSummaryResponse(output))
}
