package persistence

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/personal-finance/backend/internal/application/adapter"
	"github.com/personal-finance/backend/internal/domain/entity"
	domainerror "github.com/personal-finance/backend/internal/domain/error"
	"github.com/personal-finance/backend/internal/integration/persistence/model"
)

// transactionRepository implements the adapter.TransactionRepository interface.
// Soft-deleted rows are hidden by the gorm.DeletedAt scope unless a query
// explicitly goes Unscoped.
type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new transaction repository instance.
func NewTransactionRepository(db *gorm.DB) adapter.TransactionRepository {
	return &transactionRepository{
		db: db,
	}
}

// Create creates a new transaction in the database.
func (r *transactionRepository) Create(ctx context.Context, transaction *entity.Transaction) error {
	transactionModel := model.TransactionFromEntity(transaction)
	result := r.db.WithContext(ctx).Create(transactionModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// FindByID retrieves a transaction by its ID, deleted or not.
func (r *transactionRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Transaction, error) {
	var transactionModel model.TransactionModel
	result := r.db.WithContext(ctx).Unscoped().Where("id = ?", id).First(&transactionModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrTransactionNotFound
		}
		return nil, result.Error
	}
	return transactionModel.ToEntity(), nil
}

// FindByIDAndUser retrieves a live transaction owned by userID.
func (r *transactionRepository) FindByIDAndUser(ctx context.Context, id, userID uuid.UUID) (*entity.Transaction, error) {
	var transactionModel model.TransactionModel
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&transactionModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrTransactionNotFound
		}
		return nil, result.Error
	}
	return transactionModel.ToEntity(), nil
}

// FindDeletedByIDAndUser retrieves a soft-deleted transaction owned by userID.
func (r *transactionRepository) FindDeletedByIDAndUser(ctx context.Context, id, userID uuid.UUID) (*entity.Transaction, error) {
	var transactionModel model.TransactionModel
	result := r.db.WithContext(ctx).Unscoped().
		Where("id = ? AND user_id = ? AND deleted_at IS NOT NULL", id, userID).
		First(&transactionModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrTransactionNotFound
		}
		return nil, result.Error
	}
	return transactionModel.ToEntity(), nil
}

// FindByFilter retrieves transactions based on filter criteria with pagination.
func (r *transactionRepository) FindByFilter(ctx context.Context, filter adapter.TransactionFilter, pagination adapter.Pagination) (*adapter.TransactionListResult, error) {
	query := r.db.WithContext(ctx).Model(&model.TransactionModel{})

	// Apply filters
	query = query.Where("user_id = ?", filter.UserID)

	if filter.StartDate != nil {
		query = query.Where("date >= ?", filter.StartDate.UTC())
	}
	if filter.EndDate != nil {
		query = query.Where("date <= ?", filter.EndDate.UTC())
	}
	if len(filter.Categories) > 0 {
		query = query.Where("category IN ?", filter.Categories)
	}
	if filter.Type != nil {
		query = query.Where("type = ?", string(*filter.Type))
	}
	if filter.MinAmount != nil {
		query = query.Where("amount >= ?", *filter.MinAmount)
	}
	if filter.MaxAmount != nil {
		query = query.Where("amount <= ?", *filter.MaxAmount)
	}
	if filter.Search != "" {
		searchPattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(name) LIKE ?", searchPattern)
	}
	if filter.BudgetID != nil {
		query = query.Where("budget_id = ?", *filter.BudgetID)
	}
	if filter.PotID != nil {
		query = query.Where("pot_id = ?", *filter.PotID)
	}
	if filter.Recurring != nil {
		query = query.Where("recurring = ?", *filter.Recurring)
	}
	if len(filter.Tags) > 0 {
		query = query.Where(r.tagCondition(filter.Tags))
	}

	// Get total count
	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, err
	}

	var transactionModels []model.TransactionModel
	result := query.
		Order(orderClause(pagination)).
		Offset(pagination.Offset()).
		Limit(pagination.Limit).
		Find(&transactionModels)
	if result.Error != nil {
		return nil, result.Error
	}

	return &adapter.TransactionListResult{
		Transactions: toTransactionEntities(transactionModels),
		Total:        total,
		Page:         pagination.Page,
		Limit:        pagination.Limit,
		TotalPages:   pagination.TotalPages(total),
	}, nil
}

// tagCondition matches rows carrying any of tags. Tags are stored in
// array literal form, {"a","b"}, so each tag is matched with its quotes.
func (r *transactionRepository) tagCondition(tags []string) *gorm.DB {
	condition := r.db.Where("tags LIKE ?", quotedTagPattern(tags[0]))
	for _, tag := range tags[1:] {
		condition = condition.Or("tags LIKE ?", quotedTagPattern(tag))
	}
	return condition
}

func quotedTagPattern(tag string) string {
	return `%"` + tag + `"%`
}

// FindInRange retrieves the owner's live transactions dated within [start, end].
func (r *transactionRepository) FindInRange(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]*entity.Transaction, error) {
	var transactionModels []model.TransactionModel
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND date >= ? AND date <= ?", userID, start.UTC(), end.UTC()).
		Order("date ASC, id ASC").
		Find(&transactionModels)
	if result.Error != nil {
		return nil, result.Error
	}
	return toTransactionEntities(transactionModels), nil
}

// FindRecurringByUser retrieves the owner's live recurring transactions.
func (r *transactionRepository) FindRecurringByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Transaction, error) {
	var transactionModels []model.TransactionModel
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND recurring = ?", userID, true).
		Order("date ASC, id ASC").
		Find(&transactionModels)
	if result.Error != nil {
		return nil, result.Error
	}
	return toTransactionEntities(transactionModels), nil
}

// FindDueRecurring retrieves live recurring transactions dated at or before cutoff.
func (r *transactionRepository) FindDueRecurring(ctx context.Context, cutoff time.Time) ([]*entity.Transaction, error) {
	var transactionModels []model.TransactionModel
	result := r.db.WithContext(ctx).
		Where("recurring = ? AND date <= ?", true, cutoff.UTC()).
		Order("date ASC, id ASC").
		Find(&transactionModels)
	if result.Error != nil {
		return nil, result.Error
	}
	return toTransactionEntities(transactionModels), nil
}

// ExistsChildOn checks whether parentID already produced a transaction on
// day's UTC calendar date. Deleted children count, so a removed occurrence
// is not generated again.
func (r *transactionRepository) ExistsChildOn(ctx context.Context, parentID uuid.UUID, day time.Time) (bool, error) {
	day = day.UTC()
	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	dayEnd := dayStart.AddDate(0, 0, 1)

	var count int64
	result := r.db.WithContext(ctx).Unscoped().Model(&model.TransactionModel{}).
		Where("parent_transaction_id = ? AND date >= ? AND date < ?", parentID, dayStart, dayEnd).
		Count(&count)
	if result.Error != nil {
		return false, result.Error
	}
	return count > 0, nil
}

// SumExpenses sums live expense amounts matching the query.
func (r *transactionRepository) SumExpenses(ctx context.Context, query adapter.SpendingQuery) (decimal.Decimal, error) {
	var sum struct {
		Total decimal.Decimal
	}

	q := r.db.WithContext(ctx).Model(&model.TransactionModel{}).
		Select("COALESCE(SUM(amount), 0) as total").
		Where("user_id = ? AND budget_id = ? AND type = ?", query.UserID, query.BudgetID, string(entity.TransactionTypeExpense)).
		Where("date >= ? AND date <= ?", query.Start.UTC(), query.End.UTC())
	if query.ExcludeID != nil {
		q = q.Where("id <> ?", *query.ExcludeID)
	}
	if err := q.Scan(&sum).Error; err != nil {
		return decimal.Zero, err
	}
	return sum.Total, nil
}

// GetTotals sums the owner's live income and expenses.
func (r *transactionRepository) GetTotals(ctx context.Context, userID uuid.UUID) (*adapter.TransactionTotals, error) {
	var rows []struct {
		Type  string
		Total decimal.Decimal
	}
	result := r.db.WithContext(ctx).Model(&model.TransactionModel{}).
		Select("type, COALESCE(SUM(amount), 0) as total").
		Where("user_id = ?", userID).
		Group("type").
		Scan(&rows)
	if result.Error != nil {
		return nil, result.Error
	}

	totals := &adapter.TransactionTotals{
		IncomeTotal:  decimal.Zero,
		ExpenseTotal: decimal.Zero,
	}
	for _, row := range rows {
		switch entity.TransactionType(row.Type) {
		case entity.TransactionTypeIncome:
			totals.IncomeTotal = row.Total
		case entity.TransactionTypeExpense:
			totals.ExpenseTotal = row.Total
		}
	}
	return totals, nil
}

// Update updates an existing transaction in the database, including its
// deleted state.
func (r *transactionRepository) Update(ctx context.Context, transaction *entity.Transaction) error {
	transactionModel := model.TransactionFromEntity(transaction)
	result := r.db.WithContext(ctx).Unscoped().Save(transactionModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

func toTransactionEntities(transactionModels []model.TransactionModel) []*entity.Transaction {
	transactions := make([]*entity.Transaction, len(transactionModels))
	for i, tm := range transactionModels {
		transactions[i] = tm.ToEntity()
	}
	return transactions
}
