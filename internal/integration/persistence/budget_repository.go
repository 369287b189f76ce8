package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/personal-finance/backend/internal/application/adapter"
	"github.com/personal-finance/backend/internal/domain/entity"
	domainerror "github.com/personal-finance/backend/internal/domain/error"
	"github.com/personal-finance/backend/internal/integration/persistence/model"
)

// budgetRepository implements the adapter.BudgetRepository interface.
type budgetRepository struct {
	db *gorm.DB
}

// NewBudgetRepository creates a new budget repository instance.
func NewBudgetRepository(db *gorm.DB) adapter.BudgetRepository {
	return &budgetRepository{
		db: db,
	}
}

// Create creates a new budget in the database.
func (r *budgetRepository) Create(ctx context.Context, budget *entity.Budget) error {
	budgetModel := model.BudgetFromEntity(budget)
	result := r.db.WithContext(ctx).Create(budgetModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return domainerror.ErrBudgetCategoryExists
		}
		return result.Error
	}
	return nil
}

// FindByIDAndUser retrieves a budget owned by userID.
func (r *budgetRepository) FindByIDAndUser(ctx context.Context, id, userID uuid.UUID) (*entity.Budget, error) {
	var budgetModel model.BudgetModel
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&budgetModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrBudgetNotFound
		}
		return nil, result.Error
	}
	return budgetModel.ToEntity(), nil
}

// FindByUserAndCategory retrieves the owner's budget for a category label.
func (r *budgetRepository) FindByUserAndCategory(ctx context.Context, userID uuid.UUID, category string) (*entity.Budget, error) {
	var budgetModel model.BudgetModel
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND category = ?", userID, category).
		First(&budgetModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrBudgetNotFound
		}
		return nil, result.Error
	}
	return budgetModel.ToEntity(), nil
}

// ExistsByUserAndCategory checks whether the owner already budgets the category.
func (r *budgetRepository) ExistsByUserAndCategory(ctx context.Context, userID uuid.UUID, category string, excludeID *uuid.UUID) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&model.BudgetModel{}).
		Where("user_id = ? AND category = ?", userID, category)
	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// FindByFilter retrieves budgets based on filter criteria with pagination.
func (r *budgetRepository) FindByFilter(ctx context.Context, filter adapter.BudgetFilter, pagination adapter.Pagination) (*adapter.BudgetListResult, error) {
	query := r.db.WithContext(ctx).Model(&model.BudgetModel{})

	// Apply filters
	query = query.Where("user_id = ?", filter.UserID)

	if len(filter.Categories) > 0 {
		query = query.Where("category IN ?", filter.Categories)
	}
	if filter.Period != nil {
		query = query.Where("period = ?", string(*filter.Period))
	}
	if filter.IsActive != nil {
		query = query.Where("is_active = ?", *filter.IsActive)
	}
	if filter.MinAmount != nil {
		query = query.Where("amount >= ?", *filter.MinAmount)
	}
	if filter.MaxAmount != nil {
		query = query.Where("amount <= ?", *filter.MaxAmount)
	}
	if filter.Search != "" {
		searchPattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(category) LIKE ?", searchPattern)
	}
	if filter.StartDate != nil {
		query = query.Where("start_date >= ?", filter.StartDate.UTC())
	}
	if filter.EndDate != nil {
		query = query.Where("start_date <= ?", filter.EndDate.UTC())
	}

	// Get total count
	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, err
	}

	var budgetModels []model.BudgetModel
	result := query.
		Order(orderClause(pagination)).
		Offset(pagination.Offset()).
		Limit(pagination.Limit).
		Find(&budgetModels)
	if result.Error != nil {
		return nil, result.Error
	}

	budgets := make([]*entity.Budget, len(budgetModels))
	for i, bm := range budgetModels {
		budgets[i] = bm.ToEntity()
	}

	return &adapter.BudgetListResult{
		Budgets:    budgets,
		Total:      total,
		Page:       pagination.Page,
		Limit:      pagination.Limit,
		TotalPages: pagination.TotalPages(total),
	}, nil
}

// FindActiveByUser retrieves all active budgets of an owner.
func (r *budgetRepository) FindActiveByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Budget, error) {
	var budgetModels []model.BudgetModel
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND is_active = ?", userID, true).
		Order("category ASC").
		Find(&budgetModels)
	if result.Error != nil {
		return nil, result.Error
	}

	budgets := make([]*entity.Budget, len(budgetModels))
	for i, bm := range budgetModels {
		budgets[i] = bm.ToEntity()
	}
	return budgets, nil
}

// Update updates an existing budget in the database.
func (r *budgetRepository) Update(ctx context.Context, budget *entity.Budget) error {
	budgetModel := model.BudgetFromEntity(budget)
	result := r.db.WithContext(ctx).Save(budgetModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return domainerror.ErrBudgetCategoryExists
		}
		return result.Error
	}
	return nil
}

// Delete removes a budget owned by userID.
func (r *budgetRepository) Delete(ctx context.Context, id, userID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&model.BudgetModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrBudgetNotFound
	}
	return nil
}

// orderClause builds the ORDER BY clause of a listing. SortBy is a column
// the use case has already validated; id keeps page boundaries stable.
func orderClause(pagination adapter.Pagination) string {
	order := "DESC"
	if pagination.SortOrder == adapter.SortAsc {
		order = "ASC"
	}
	sortBy := pagination.SortBy
	if sortBy == "" {
		sortBy = "created_at"
	}
	return fmt.Sprintf("%s %s, id %s", sortBy, order, order)
}
