package adaptertest

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/personal-finance/backend/internal/application/adapter"
	"github.com/personal-finance/backend/internal/domain/entity"
	domainerror "github.com/personal-finance/backend/internal/domain/error"
)

// BudgetRepository is an in-memory adapter.BudgetRepository.
type BudgetRepository struct {
	mu      sync.Mutex
	budgets map[uuid.UUID]entity.Budget

	// Err, when set, is returned by every method.
	Err error
}

// NewBudgetRepository creates an empty BudgetRepository.
func NewBudgetRepository() *BudgetRepository {
	return &BudgetRepository{budgets: make(map[uuid.UUID]entity.Budget)}
}

// Seed stores budgets without going through Create.
func (r *BudgetRepository) Seed(budgets ...*entity.Budget) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range budgets {
		r.budgets[b.ID] = *b
	}
}

// Len returns the number of stored budgets.
func (r *BudgetRepository) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.budgets)
}

func (r *BudgetRepository) Create(_ context.Context, budget *entity.Budget) error {
	if r.Err != nil {
		return r.Err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.budgets[budget.ID] = *budget
	return nil
}

func (r *BudgetRepository) FindByIDAndUser(_ context.Context, id, userID uuid.UUID) (*entity.Budget, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.budgets[id]
	if !ok || b.UserID != userID {
		return nil, domainerror.ErrBudgetNotFound
	}
	return &b, nil
}

func (r *BudgetRepository) FindByUserAndCategory(_ context.Context, userID uuid.UUID, category string) (*entity.Budget, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range r.budgets {
		if b.UserID == userID && b.Category == category {
			found := b
			return &found, nil
		}
	}
	return nil, domainerror.ErrBudgetNotFound
}

func (r *BudgetRepository) ExistsByUserAndCategory(_ context.Context, userID uuid.UUID, category string, excludeID *uuid.UUID) (bool, error) {
	if r.Err != nil {
		return false, r.Err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range r.budgets {
		if excludeID != nil && b.ID == *excludeID {
			continue
		}
		if b.UserID == userID && b.Category == category {
			return true, nil
		}
	}
	return false, nil
}

func (r *BudgetRepository) FindByFilter(_ context.Context, filter adapter.BudgetFilter, pagination adapter.Pagination) (*adapter.BudgetListResult, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	r.mu.Lock()
	matched := make([]*entity.Budget, 0)
	for _, b := range r.budgets {
		if budgetMatches(b, filter) {
			found := b
			matched = append(matched, &found)
		}
	}
	r.mu.Unlock()

	sort.SliceStable(matched, func(i, j int) bool {
		less := budgetLess(matched[i], matched[j], pagination.SortBy)
		if pagination.SortOrder == adapter.SortDesc {
			return budgetLess(matched[j], matched[i], pagination.SortBy)
		}
		return less
	})

	total := int64(len(matched))
	return &adapter.BudgetListResult{
		Budgets:    paginate(matched, pagination),
		Total:      total,
		Page:       pagination.Page,
		Limit:      pagination.Limit,
		TotalPages: pagination.TotalPages(total),
	}, nil
}

func (r *BudgetRepository) FindActiveByUser(_ context.Context, userID uuid.UUID) ([]*entity.Budget, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]*entity.Budget, 0)
	for _, b := range r.budgets {
		if b.UserID == userID && b.IsActive {
			found := b
			result = append(result, &found)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Category < result[j].Category })
	return result, nil
}

func (r *BudgetRepository) Update(_ context.Context, budget *entity.Budget) error {
	if r.Err != nil {
		return r.Err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.budgets[budget.ID]; !ok {
		return domainerror.ErrBudgetNotFound
	}
	r.budgets[budget.ID] = *budget
	return nil
}

func (r *BudgetRepository) Delete(_ context.Context, id, userID uuid.UUID) error {
	if r.Err != nil {
		return r.Err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.budgets[id]
	if !ok || b.UserID != userID {
		return domainerror.ErrBudgetNotFound
	}
	delete(r.budgets, id)
	return nil
}

func budgetMatches(b entity.Budget, f adapter.BudgetFilter) bool {
	if b.UserID != f.UserID {
		return false
	}
	if len(f.Categories) > 0 && !containsString(f.Categories, b.Category) {
		return false
	}
	if f.Period != nil && b.Period != *f.Period {
		return false
	}
	if f.IsActive != nil && b.IsActive != *f.IsActive {
		return false
	}
	if f.MinAmount != nil && b.Amount.LessThan(*f.MinAmount) {
		return false
	}
	if f.MaxAmount != nil && b.Amount.GreaterThan(*f.MaxAmount) {
		return false
	}
	if f.Search != "" && !strings.Contains(strings.ToLower(b.Category), strings.ToLower(f.Search)) {
		return false
	}
	if f.StartDate != nil && b.StartDate.Before(*f.StartDate) {
		return false
	}
	if f.EndDate != nil && b.StartDate.After(*f.EndDate) {
		return false
	}
	return true
}

func budgetLess(a, b *entity.Budget, column string) bool {
	switch column {
	case "amount":
		return a.Amount.LessThan(b.Amount)
	case "category":
		return a.Category < b.Category
	case "start_date":
		return a.StartDate.Before(b.StartDate)
	case "updated_at":
		return a.UpdatedAt.Before(b.UpdatedAt)
	default:
		return a.CreatedAt.Before(b.CreatedAt)
	}
}

func paginate[T any](items []T, p adapter.Pagination) []T {
	if p.Limit <= 0 {
		return items
	}
	start := p.Offset()
	if start >= len(items) {
		return []T{}
	}
	end := start + p.Limit
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

func containsString(values []string, v string) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}
