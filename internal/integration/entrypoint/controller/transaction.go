package controller

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/personal-finance/backend/internal/application/usecase/transaction"
	"github.com/personal-finance/backend/internal/domain/entity"
	domainerror "github.com/personal-finance/backend/internal/domain/error"
	"github.com/personal-finance/backend/internal/integration/entrypoint/dto"
)

// TransactionController handles transaction endpoints.
type TransactionController struct {
	createUseCase    *transaction.CreateTransactionUseCase
	getUseCase       *transaction.GetTransactionUseCase
	listUseCase      *transaction.ListTransactionsUseCase
	updateUseCase    *transaction.UpdateTransactionUseCase
	deleteUseCase    *transaction.DeleteTransactionUseCase
	restoreUseCase   *transaction.RestoreTransactionUseCase
	overviewUseCase  *transaction.GetOverviewUseCase
	analyticsUseCase *transaction.GetAnalyticsUseCase
}

// NewTransactionController creates a new transaction controller instance.
func NewTransactionController(
	createUseCase *transaction.CreateTransactionUseCase,
	getUseCase *transaction.GetTransactionUseCase,
	listUseCase *transaction.ListTransactionsUseCase,
	updateUseCase *transaction.UpdateTransactionUseCase,
	deleteUseCase *transaction.DeleteTransactionUseCase,
	restoreUseCase *transaction.RestoreTransactionUseCase,
	overviewUseCase *transaction.GetOverviewUseCase,
	analyticsUseCase *transaction.GetAnalyticsUseCase,
) *TransactionController {
	return &TransactionController{
		createUseCase:    createUseCase,
		getUseCase:       getUseCase,
		listUseCase:      listUseCase,
		updateUseCase:    updateUseCase,
		deleteUseCase:    deleteUseCase,
		restoreUseCase:   restoreUseCase,
		overviewUseCase:  overviewUseCase,
		analyticsUseCase: analyticsUseCase,
	}
}

// Create handles POST /transactions requests.
func (c *TransactionController) Create(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	var req dto.CreateTransactionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request body: "+err.Error(), domainerror.ErrCodeMissingTransactionFields)
		return
	}

	date, err := dto.ParseOptionalDate(req.Date)
	if err != nil {
		badRequest(ctx, err.Error(), domainerror.ErrCodeInvalidTransactionDate)
		return
	}
	budgetID, err := parseOptionalID(req.BudgetID)
	if err != nil {
		badRequest(ctx, "Invalid budget ID format", domainerror.ErrCodeMissingTransactionFields)
		return
	}
	potID, err := parseOptionalID(req.PotID)
	if err != nil {
		badRequest(ctx, "Invalid pot ID format", domainerror.ErrCodeMissingTransactionFields)
		return
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), transaction.CreateTransactionInput{
		UserID:             userID,
		Name:               req.Name,
		Amount:             *req.Amount,
		Type:               entity.TransactionType(req.Type),
		Category:           req.Category,
		Description:        req.Description,
		Date:               date,
		Recurring:          req.Recurring,
		RecurringFrequency: entity.RecurringFrequency(req.RecurringFrequency),
		Avatar:             req.Avatar,
		BudgetID:           budgetID,
		PotID:              potID,
		Tags:               req.Tags,
	})
	if err != nil {
		respondError(ctx, err, "Failed to create transaction")
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToTransactionResponse(output.Transaction))
}

// List handles GET /transactions requests.
func (c *TransactionController) List(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	input := transaction.ListTransactionsInput{
		UserID:     userID,
		Categories: queryList(ctx, "category"),
		Tags:       queryList(ctx, "tags"),
		Search:     ctx.Query("search"),
		Page:       queryInt(ctx, "page"),
		Limit:      queryInt(ctx, "limit"),
		SortBy:     ctx.Query("sort_by"),
		SortOrder:  ctx.Query("sort_order"),
	}
	if raw := ctx.Query("type"); raw != "" {
		txnType := entity.TransactionType(raw)
		input.Type = &txnType
	}

	var err error
	if input.StartDate, err = queryDate(ctx, "start_date"); err != nil {
		badRequest(ctx, err.Error(), domainerror.ErrCodeInvalidTransactionDate)
		return
	}
	if input.EndDate, err = queryDate(ctx, "end_date"); err != nil {
		badRequest(ctx, err.Error(), domainerror.ErrCodeInvalidTransactionDate)
		return
	}
	if input.MinAmount, err = queryDecimal(ctx, "min_amount"); err != nil {
		badRequest(ctx, "Invalid min_amount filter", domainerror.ErrCodeInvalidTransactionAmount)
		return
	}
	if input.MaxAmount, err = queryDecimal(ctx, "max_amount"); err != nil {
		badRequest(ctx, "Invalid max_amount filter", domainerror.ErrCodeInvalidTransactionAmount)
		return
	}
	if input.Recurring, err = queryBool(ctx, "recurring"); err != nil {
		badRequest(ctx, "Invalid recurring filter", domainerror.ErrCodeMissingTransactionFields)
		return
	}
	if input.BudgetID, err = parseOptionalID(optionalQuery(ctx, "budget_id")); err != nil {
		badRequest(ctx, "Invalid budget ID format", domainerror.ErrCodeMissingTransactionFields)
		return
	}
	if input.PotID, err = parseOptionalID(optionalQuery(ctx, "pot_id")); err != nil {
		badRequest(ctx, "Invalid pot ID format", domainerror.ErrCodeMissingTransactionFields)
		return
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		respondError(ctx, err, "Failed to retrieve transactions")
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTransactionListResponse(output))
}

// Get handles GET /transactions/:id requests.
func (c *TransactionController) Get(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}
	transactionID, ok := parseIDParam(ctx, "transaction")
	if !ok {
		return
	}

	output, err := c.getUseCase.Execute(ctx.Request.Context(), transaction.GetTransactionInput{
		TransactionID: transactionID,
		UserID:        userID,
	})
	if err != nil {
		respondError(ctx, err, "Failed to retrieve transaction")
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTransactionResponse(output.Transaction))
}

// Update handles PUT /transactions/:id requests.
func (c *TransactionController) Update(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}
	transactionID, ok := parseIDParam(ctx, "transaction")
	if !ok {
		return
	}

	var req dto.UpdateTransactionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request body: "+err.Error(), domainerror.ErrCodeMissingTransactionFields)
		return
	}

	input, err := buildUpdateTransactionInput(transactionID, userID, req)
	if err != nil {
		badRequest(ctx, err.Error(), domainerror.ErrCodeMissingTransactionFields)
		return
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		respondError(ctx, err, "Failed to update transaction")
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTransactionResponse(output.Transaction))
}

// Delete handles DELETE /transactions/:id requests.
func (c *TransactionController) Delete(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}
	transactionID, ok := parseIDParam(ctx, "transaction")
	if !ok {
		return
	}

	err := c.deleteUseCase.Execute(ctx.Request.Context(), transaction.DeleteTransactionInput{
		TransactionID: transactionID,
		UserID:        userID,
	})
	if err != nil {
		respondError(ctx, err, "Failed to delete transaction")
		return
	}

	ctx.Status(http.StatusNoContent)
}

// Restore handles PATCH /transactions/:id/restore requests.
func (c *TransactionController) Restore(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}
	transactionID, ok := parseIDParam(ctx, "transaction")
	if !ok {
		return
	}

	output, err := c.restoreUseCase.Execute(ctx.Request.Context(), transaction.RestoreTransactionInput{
		TransactionID: transactionID,
		UserID:        userID,
	})
	if err != nil {
		respondError(ctx, err, "Failed to restore transaction")
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTransactionResponse(output.Transaction))
}

// Overview handles GET /transactions/overview requests.
func (c *TransactionController) Overview(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	output, err := c.overviewUseCase.Execute(ctx.Request.Context(), transaction.GetOverviewInput{
		UserID: userID,
		Limit:  queryInt(ctx, "limit"),
		Oldest: ctx.Query("sort") == "oldest",
	})
	if err != nil {
		respondError(ctx, err, "Failed to retrieve transaction overview")
		return
	}

	ctx.JSON(http.StatusOK, dto.TransactionsResponse{
		Transactions: dto.ToTransactionResponses(output.Transactions),
	})
}

// Analytics handles GET /transactions/analytics requests.
func (c *TransactionController) Analytics(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	output, err := c.analyticsUseCase.Execute(ctx.Request.Context(), transaction.GetAnalyticsInput{
		UserID:    userID,
		DateRange: ctx.Query("date_range"),
	})
	if err != nil {
		respondError(ctx, err, "Failed to compute analytics")
		return
	}

	ctx.JSON(http.StatusOK, dto.ToAnalyticsResponse(output))
}

func buildUpdateTransactionInput(transactionID, userID uuid.UUID, req dto.UpdateTransactionRequest) (transaction.UpdateTransactionInput, error) {
	input := transaction.UpdateTransactionInput{
		TransactionID: transactionID,
		UserID:        userID,
		Name:          req.Name,
		Amount:        req.Amount,
		Category:      req.Category,
		Description:   req.Description,
		Recurring:     req.Recurring,
		Avatar:        req.Avatar,
	}
	if req.Type != nil {
		txnType := entity.TransactionType(*req.Type)
		input.Type = &txnType
	}
	if req.RecurringFrequency != nil {
		frequency := entity.RecurringFrequency(*req.RecurringFrequency)
		input.RecurringFrequency = &frequency
	}

	date, err := dto.ParseOptionalDate(req.Date)
	if err != nil {
		return input, err
	}
	input.Date = date

	if req.BudgetID != nil {
		if strings.TrimSpace(*req.BudgetID) == "" {
			input.ClearBudget = true
		} else if input.BudgetID, err = parseOptionalID(req.BudgetID); err != nil {
			return input, errInvalidBudgetID
		}
	}
	if req.PotID != nil {
		if strings.TrimSpace(*req.PotID) == "" {
			input.ClearPot = true
		} else if input.PotID, err = parseOptionalID(req.PotID); err != nil {
			return input, errInvalidPotID
		}
	}
	if req.Tags != nil {
		input.Tags = *req.Tags
		input.ReplaceTags = true
	}
	return input, nil
}

func optionalQuery(ctx *gin.Context, name string) *string {
	value, ok := ctx.GetQuery(name)
	if !ok {
		return nil
	}
	return &value
}
