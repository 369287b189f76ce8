package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/personal-finance/backend/internal/application/usecase/category"
	domainerror "github.com/personal-finance/backend/internal/domain/error"
	"github.com/personal-finance/backend/internal/integration/entrypoint/dto"
)

// CategoryController handles category endpoints.
type CategoryController struct {
	listUseCase   *category.ListCategoriesUseCase
	createUseCase *category.CreateCategoryUseCase
	updateUseCase *category.UpdateCategoryUseCase
}

// NewCategoryController creates a new category controller instance.
func NewCategoryController(
	listUseCase *category.ListCategoriesUseCase,
	createUseCase *category.CreateCategoryUseCase,
	updateUseCase *category.UpdateCategoryUseCase,
) *CategoryController {
	return &CategoryController{
		listUseCase:   listUseCase,
		createUseCase: createUseCase,
		updateUseCase: updateUseCase,
	}
}

// List handles GET /categories requests.
func (c *CategoryController) List(ctx *gin.Context) {
	activeOnly, err := queryBool(ctx, "active_only")
	if err != nil {
		badRequest(ctx, "Invalid active_only filter", domainerror.ErrCodeMissingCategoryFields)
		return
	}

	input := category.ListCategoriesInput{}
	if activeOnly != nil {
		input.ActiveOnly = *activeOnly
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		respondError(ctx, err, "Failed to retrieve categories")
		return
	}

	ctx.JSON(http.StatusOK, dto.ToCategoryListResponse(output.Categories))
}

// Create handles POST /categories requests.
func (c *CategoryController) Create(ctx *gin.Context) {
	var req dto.CreateCategoryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request body: "+err.Error(), domainerror.ErrCodeMissingCategoryFields)
		return
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), category.CreateCategoryInput{
		Name:        req.Name,
		Description: req.Description,
		Icon:        req.Icon,
		Theme:       req.Theme,
	})
	if err != nil {
		respondError(ctx, err, "Failed to create category")
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToCategoryResponse(output.Category))
}

// Update handles PUT /categories/:id requests.
func (c *CategoryController) Update(ctx *gin.Context) {
	categoryID, ok := parseIDParam(ctx, "category")
	if !ok {
		return
	}

	var req dto.UpdateCategoryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request body: "+err.Error(), domainerror.ErrCodeMissingCategoryFields)
		return
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), category.UpdateCategoryInput{
		CategoryID:  categoryID,
		Name:        req.Name,
		Description: req.Description,
		Icon:        req.Icon,
		Theme:       req.Theme,
		IsActive:    req.IsActive,
	})
	if err != nil {
		respondError(ctx, err, "Failed to update category")
		return
	}

	ctx.JSON(http.StatusOK, dto.ToCategoryResponse(output.Category))
}
