package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/personal-finance/backend/internal/application/usecase/pot"
	"github.com/personal-finance/backend/internal/domain/entity"
	domainerror "github.com/personal-finance/backend/internal/domain/error"
	"github.com/personal-finance/backend/internal/integration/entrypoint/dto"
)

// PotController handles savings pot endpoints.
type PotController struct {
	createUseCase *pot.CreatePotUseCase
	getUseCase    *pot.GetPotUseCase
	listUseCase   *pot.ListPotsUseCase
	updateUseCase *pot.UpdatePotUseCase
	deleteUseCase *pot.DeletePotUseCase
	adjustUseCase *pot.AdjustPotBalanceUseCase
}

// NewPotController creates a new pot controller instance.
func NewPotController(
	createUseCase *pot.CreatePotUseCase,
	getUseCase *pot.GetPotUseCase,
	listUseCase *pot.ListPotsUseCase,
	updateUseCase *pot.UpdatePotUseCase,
	deleteUseCase *pot.DeletePotUseCase,
	adjustUseCase *pot.AdjustPotBalanceUseCase,
) *PotController {
	return &PotController{
		createUseCase: createUseCase,
		getUseCase:    getUseCase,
		listUseCase:   listUseCase,
		updateUseCase: updateUseCase,
		deleteUseCase: deleteUseCase,
		adjustUseCase: adjustUseCase,
	}
}

// Create handles POST /pots requests.
func (c *PotController) Create(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	var req dto.CreatePotRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request body: "+err.Error(), domainerror.ErrCodeMissingPotFields)
		return
	}

	targetDate, err := dto.ParseOptionalDate(req.TargetDate)
	if err != nil {
		badRequest(ctx, err.Error(), domainerror.ErrCodeMissingPotFields)
		return
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), pot.CreatePotInput{
		UserID:      userID,
		Name:        req.Name,
		GoalAmount:  *req.GoalAmount,
		TargetDate:  targetDate,
		Description: req.Description,
		Category:    req.Category,
	})
	if err != nil {
		respondError(ctx, err, "Failed to create pot")
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToPotResponse(output.Pot))
}

// List handles GET /pots requests.
func (c *PotController) List(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), pot.ListPotsInput{UserID: userID})
	if err != nil {
		respondError(ctx, err, "Failed to retrieve pots")
		return
	}

	ctx.JSON(http.StatusOK, dto.PotListResponse{Pots: dto.ToPotResponses(output.Pots)})
}

// Get handles GET /pots/:id requests.
func (c *PotController) Get(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}
	potID, ok := parseIDParam(ctx, "pot")
	if !ok {
		return
	}

	output, err := c.getUseCase.Execute(ctx.Request.Context(), pot.GetPotInput{
		UserID: userID,
		PotID:  potID,
	})
	if err != nil {
		respondError(ctx, err, "Failed to retrieve pot")
		return
	}

	ctx.JSON(http.StatusOK, dto.ToPotResponse(output.Pot))
}

// Update handles PUT /pots/:id requests.
func (c *PotController) Update(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}
	potID, ok := parseIDParam(ctx, "pot")
	if !ok {
		return
	}

	var req dto.UpdatePotRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request body: "+err.Error(), domainerror.ErrCodeMissingPotFields)
		return
	}

	targetDate, err := dto.ParseOptionalDate(req.TargetDate)
	if err != nil {
		badRequest(ctx, err.Error(), domainerror.ErrCodeMissingPotFields)
		return
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), pot.UpdatePotInput{
		UserID:      userID,
		PotID:       potID,
		Name:        req.Name,
		GoalAmount:  req.GoalAmount,
		TargetDate:  targetDate,
		Description: req.Description,
		Category:    req.Category,
	})
	if err != nil {
		respondError(ctx, err, "Failed to update pot")
		return
	}

	ctx.JSON(http.StatusOK, dto.ToPotResponse(output.Pot))
}

// Delete handles DELETE /pots/:id requests.
func (c *PotController) Delete(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}
	potID, ok := parseIDParam(ctx, "pot")
	if !ok {
		return
	}

	err := c.deleteUseCase.Execute(ctx.Request.Context(), pot.DeletePotInput{
		UserID: userID,
		PotID:  potID,
	})
	if err != nil {
		respondError(ctx, err, "Failed to delete pot")
		return
	}

	ctx.Status(http.StatusNoContent)
}

// AdjustBalance handles PATCH /pots/:id/balance requests.
func (c *PotController) AdjustBalance(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}
	potID, ok := parseIDParam(ctx, "pot")
	if !ok {
		return
	}

	var req dto.AdjustPotBalanceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request body: "+err.Error(), domainerror.ErrCodeMissingPotFields)
		return
	}

	output, err := c.adjustUseCase.Execute(ctx.Request.Context(), pot.AdjustPotBalanceInput{
		UserID:    userID,
		PotID:     potID,
		Amount:    *req.Amount,
		Operation: entity.PotOperation(req.Operation),
	})
	if err != nil {
		respondError(ctx, err, "Failed to adjust pot balance")
		return
	}

	ctx.JSON(http.StatusOK, dto.ToPotResponse(output.Pot))
}
