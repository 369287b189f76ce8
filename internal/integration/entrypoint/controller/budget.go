package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/personal-finance/backend/internal/application/usecase/budget"
	"github.com/personal-finance/backend/internal/domain/entity"
	domainerror "github.com/personal-finance/backend/internal/domain/error"
	"github.com/personal-finance/backend/internal/integration/entrypoint/dto"
)

// BudgetController handles budget endpoints.
type BudgetController struct {
	createUseCase        *budget.CreateBudgetUseCase
	getUseCase           *budget.GetBudgetUseCase
	getByCategoryUseCase *budget.GetBudgetByCategoryUseCase
	listUseCase          *budget.ListBudgetsUseCase
	nearLimitUseCase     *budget.ListNearLimitBudgetsUseCase
	updateUseCase        *budget.UpdateBudgetUseCase
	deleteUseCase        *budget.DeleteBudgetUseCase
	utilizationUseCase   *budget.GetBudgetUtilizationUseCase
	checkLimitUseCase    *budget.CheckBudgetLimitUseCase
}

// NewBudgetController creates a new budget controller instance.
func NewBudgetController(
	createUseCase *budget.CreateBudgetUseCase,
	getUseCase *budget.GetBudgetUseCase,
	getByCategoryUseCase *budget.GetBudgetByCategoryUseCase,
	listUseCase *budget.ListBudgetsUseCase,
	nearLimitUseCase *budget.ListNearLimitBudgetsUseCase,
	updateUseCase *budget.UpdateBudgetUseCase,
	deleteUseCase *budget.DeleteBudgetUseCase,
	utilizationUseCase *budget.GetBudgetUtilizationUseCase,
	checkLimitUseCase *budget.CheckBudgetLimitUseCase,
) *BudgetController {
	return &BudgetController{
		createUseCase:        createUseCase,
		getUseCase:           getUseCase,
		getByCategoryUseCase: getByCategoryUseCase,
		listUseCase:          listUseCase,
		nearLimitUseCase:     nearLimitUseCase,
		updateUseCase:        updateUseCase,
		deleteUseCase:        deleteUseCase,
		utilizationUseCase:   utilizationUseCase,
		checkLimitUseCase:    checkLimitUseCase,
	}
}

// Create handles POST /budgets requests.
func (c *BudgetController) Create(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	var req dto.CreateBudgetRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request body: "+err.Error(), domainerror.ErrCodeMissingBudgetFields)
		return
	}

	startDate, err := dto.ParseOptionalDate(req.StartDate)
	if err != nil {
		badRequest(ctx, err.Error(), domainerror.ErrCodeMissingBudgetFields)
		return
	}

	input := budget.CreateBudgetInput{
		UserID:    userID,
		Category:  req.Category,
		Amount:    *req.Amount,
		Theme:     req.Theme,
		StartDate: startDate,
		IsActive:  req.IsActive,
	}
	if req.Period != nil {
		period := entity.BudgetPeriod(*req.Period)
		input.Period = &period
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		respondError(ctx, err, "Failed to create budget")
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToBudgetResponse(output.Budget))
}

// List handles GET /budgets requests.
func (c *BudgetController) List(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	input := budget.ListBudgetsInput{
		UserID:     userID,
		Categories: queryList(ctx, "category"),
		Search:     ctx.Query("search"),
		Page:       queryInt(ctx, "page"),
		Limit:      queryInt(ctx, "limit"),
		SortBy:     ctx.Query("sort_by"),
		SortOrder:  ctx.Query("sort_order"),
	}
	if raw := ctx.Query("period"); raw != "" {
		period := entity.BudgetPeriod(raw)
		input.Period = &period
	}

	var err error
	if input.IsActive, err = queryBool(ctx, "is_active"); err != nil {
		badRequest(ctx, "Invalid is_active filter", domainerror.ErrCodeMissingBudgetFields)
		return
	}
	if input.MinAmount, err = queryDecimal(ctx, "min_amount"); err != nil {
		badRequest(ctx, "Invalid min_amount filter", domainerror.ErrCodeInvalidBudgetAmount)
		return
	}
	if input.MaxAmount, err = queryDecimal(ctx, "max_amount"); err != nil {
		badRequest(ctx, "Invalid max_amount filter", domainerror.ErrCodeInvalidBudgetAmount)
		return
	}
	if input.StartDate, err = queryDate(ctx, "start_date"); err != nil {
		badRequest(ctx, err.Error(), domainerror.ErrCodeMissingBudgetFields)
		return
	}
	if input.EndDate, err = queryDate(ctx, "end_date"); err != nil {
		badRequest(ctx, err.Error(), domainerror.ErrCodeMissingBudgetFields)
		return
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		respondError(ctx, err, "Failed to retrieve budgets")
		return
	}

	ctx.JSON(http.StatusOK, dto.ToBudgetListResponse(output))
}

// NearLimit handles GET /budgets/near-limit requests.
func (c *BudgetController) NearLimit(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	input := budget.ListNearLimitBudgetsInput{UserID: userID}
	if raw := ctx.Query("threshold"); raw != "" {
		threshold, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			badRequest(ctx, "Invalid threshold", domainerror.ErrCodeInvalidThreshold)
			return
		}
		input.Threshold = &threshold
	}

	output, err := c.nearLimitUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		respondError(ctx, err, "Failed to retrieve near-limit budgets")
		return
	}

	ctx.JSON(http.StatusOK, dto.ToNearLimitBudgetsResponse(output))
}

// GetByCategory handles GET /budgets/category/:category requests.
func (c *BudgetController) GetByCategory(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	output, err := c.getByCategoryUseCase.Execute(ctx.Request.Context(), budget.GetBudgetByCategoryInput{
		UserID:   userID,
		Category: ctx.Param("category"),
	})
	if err != nil {
		respondError(ctx, err, "Failed to retrieve budget")
		return
	}

	ctx.JSON(http.StatusOK, dto.ToBudgetResponse(output.Budget))
}

// Get handles GET /budgets/:id requests.
func (c *BudgetController) Get(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}
	budgetID, ok := parseIDParam(ctx, "budget")
	if !ok {
		return
	}

	output, err := c.getUseCase.Execute(ctx.Request.Context(), budget.GetBudgetInput{
		BudgetID: budgetID,
		UserID:   userID,
	})
	if err != nil {
		respondError(ctx, err, "Failed to retrieve budget")
		return
	}

	ctx.JSON(http.StatusOK, dto.ToBudgetResponse(output.Budget))
}

// Update handles PUT /budgets/:id requests.
func (c *BudgetController) Update(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}
	budgetID, ok := parseIDParam(ctx, "budget")
	if !ok {
		return
	}

	var req dto.UpdateBudgetRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request body: "+err.Error(), domainerror.ErrCodeMissingBudgetFields)
		return
	}

	startDate, err := dto.ParseOptionalDate(req.StartDate)
	if err != nil {
		badRequest(ctx, err.Error(), domainerror.ErrCodeMissingBudgetFields)
		return
	}

	input := budget.UpdateBudgetInput{
		BudgetID:  budgetID,
		UserID:    userID,
		Category:  req.Category,
		Amount:    req.Amount,
		Theme:     req.Theme,
		StartDate: startDate,
		IsActive:  req.IsActive,
	}
	if req.Period != nil {
		period := entity.BudgetPeriod(*req.Period)
		input.Period = &period
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		respondError(ctx, err, "Failed to update budget")
		return
	}

	ctx.JSON(http.StatusOK, dto.ToBudgetResponse(output.Budget))
}

// Delete handles DELETE /budgets/:id requests.
func (c *BudgetController) Delete(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}
	budgetID, ok := parseIDParam(ctx, "budget")
	if !ok {
		return
	}

	err := c.deleteUseCase.Execute(ctx.Request.Context(), budget.DeleteBudgetInput{
		BudgetID: budgetID,
		UserID:   userID,
	})
	if err != nil {
		respondError(ctx, err, "Failed to delete budget")
		return
	}

	ctx.Status(http.StatusNoContent)
}

// Utilization handles GET /budgets/:id/utilization requests.
func (c *BudgetController) Utilization(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}
	budgetID, ok := parseIDParam(ctx, "budget")
	if !ok {
		return
	}

	output, err := c.utilizationUseCase.Execute(ctx.Request.Context(), budget.GetBudgetUtilizationInput{
		UserID:   userID,
		BudgetID: budgetID,
	})
	if err != nil {
		respondError(ctx, err, "Failed to compute budget utilization")
		return
	}

	ctx.JSON(http.StatusOK, dto.ToBudgetUtilizationResponse(output.Utilization))
}

// CheckLimit handles POST /budgets/:id/check-limit requests.
func (c *BudgetController) CheckLimit(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}
	budgetID, ok := parseIDParam(ctx, "budget")
	if !ok {
		return
	}

	var req dto.CheckBudgetLimitRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request body: "+err.Error(), domainerror.ErrCodeMissingBudgetFields)
		return
	}

	excludeID, err := parseOptionalID(req.TransactionID)
	if err != nil {
		badRequest(ctx, "Invalid transaction ID format", domainerror.ErrCodeMissingBudgetFields)
		return
	}

	output, err := c.checkLimitUseCase.Execute(ctx.Request.Context(), budget.CheckBudgetLimitInput{
		UserID:               userID,
		BudgetID:             budgetID,
		Amount:               *req.Amount,
		ExcludeTransactionID: excludeID,
	})
	if err != nil {
		respondError(ctx, err, "Failed to check budget limit")
		return
	}

	ctx.JSON(http.StatusOK, dto.ToCheckBudgetLimitResponse(output))
}
