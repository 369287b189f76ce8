package adaptertest

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/personal-finance/backend/internal/application/adapter"
	"github.com/personal-finance/backend/internal/domain/entity"
	domainerror "github.com/personal-finance/backend/internal/domain/error"
)

// TransactionRepository is an in-memory adapter.TransactionRepository.
type TransactionRepository struct {
	mu           sync.Mutex
	transactions map[uuid.UUID]entity.Transaction
	order        []uuid.UUID

	// Err, when set, is returned by every method.
	Err error
	// CreateErr, when set, is returned by Create only.
	CreateErr func(transaction *entity.Transaction) error
}

// NewTransactionRepository creates an empty TransactionRepository.
func NewTransactionRepository() *TransactionRepository {
	return &TransactionRepository{transactions: make(map[uuid.UUID]entity.Transaction)}
}

// Seed stores transactions without going through Create.
func (r *TransactionRepository) Seed(transactions ...*entity.Transaction) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range transactions {
		r.put(t)
	}
}

// All returns every stored transaction, deleted ones included, in insertion order.
func (r *TransactionRepository) All() []*entity.Transaction {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]*entity.Transaction, 0, len(r.order))
	for _, id := range r.order {
		result = append(result, cloneTransaction(r.transactions[id]))
	}
	return result
}

// ChildrenOf returns the transactions generated from parentID.
func (r *TransactionRepository) ChildrenOf(parentID uuid.UUID) []*entity.Transaction {
	result := make([]*entity.Transaction, 0)
	for _, t := range r.All() {
		if t.ParentTransactionID != nil && *t.ParentTransactionID == parentID {
			result = append(result, t)
		}
	}
	return result
}

func (r *TransactionRepository) put(t *entity.Transaction) {
	if _, ok := r.transactions[t.ID]; !ok {
		r.order = append(r.order, t.ID)
	}
	r.transactions[t.ID] = *cloneTransaction(*t)
}

func (r *TransactionRepository) Create(_ context.Context, transaction *entity.Transaction) error {
	if r.Err != nil {
		return r.Err
	}
	if r.CreateErr != nil {
		if err := r.CreateErr(transaction); err != nil {
			return err
		}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.put(transaction)
	return nil
}

func (r *TransactionRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.Transaction, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.transactions[id]
	if !ok {
		return nil, domainerror.ErrTransactionNotFound
	}
	return cloneTransaction(t), nil
}

func (r *TransactionRepository) FindByIDAndUser(_ context.Context, id, userID uuid.UUID) (*entity.Transaction, error) {
	return r.findOwned(id, userID, false)
}

func (r *TransactionRepository) FindDeletedByIDAndUser(_ context.Context, id, userID uuid.UUID) (*entity.Transaction, error) {
	return r.findOwned(id, userID, true)
}

func (r *TransactionRepository) findOwned(id, userID uuid.UUID, deleted bool) (*entity.Transaction, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.transactions[id]
	if !ok || t.UserID != userID || t.IsDeleted != deleted {
		return nil, domainerror.ErrTransactionNotFound
	}
	return cloneTransaction(t), nil
}

func (r *TransactionRepository) FindByFilter(_ context.Context, filter adapter.TransactionFilter, pagination adapter.Pagination) (*adapter.TransactionListResult, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	matched := r.collect(func(t entity.Transaction) bool { return transactionMatches(t, filter) })

	sort.SliceStable(matched, func(i, j int) bool {
		if pagination.SortOrder == adapter.SortAsc {
			return transactionLess(matched[i], matched[j], pagination.SortBy)
		}
		return transactionLess(matched[j], matched[i], pagination.SortBy)
	})

	total := int64(len(matched))
	return &adapter.TransactionListResult{
		Transactions: paginate(matched, pagination),
		Total:        total,
		Page:         pagination.Page,
		Limit:        pagination.Limit,
		TotalPages:   pagination.TotalPages(total),
	}, nil
}

func (r *TransactionRepository) FindInRange(_ context.Context, userID uuid.UUID, start, end time.Time) ([]*entity.Transaction, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	result := r.collect(func(t entity.Transaction) bool {
		return t.UserID == userID && !t.IsDeleted && !t.Date.Before(start) && !t.Date.After(end)
	})
	sortByDate(result)
	return result, nil
}

func (r *TransactionRepository) FindRecurringByUser(_ context.Context, userID uuid.UUID) ([]*entity.Transaction, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	result := r.collect(func(t entity.Transaction) bool {
		return t.UserID == userID && t.Recurring && !t.IsDeleted
	})
	sortByDate(result)
	return result, nil
}

func (r *TransactionRepository) FindDueRecurring(_ context.Context, cutoff time.Time) ([]*entity.Transaction, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	result := r.collect(func(t entity.Transaction) bool {
		return t.Recurring && !t.IsDeleted && !t.Date.After(cutoff)
	})
	sortByDate(result)
	return result, nil
}

func (r *TransactionRepository) ExistsChildOn(_ context.Context, parentID uuid.UUID, day time.Time) (bool, error) {
	if r.Err != nil {
		return false, r.Err
	}
	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)
	children := r.collect(func(t entity.Transaction) bool {
		return t.ParentTransactionID != nil && *t.ParentTransactionID == parentID &&
			!t.Date.Before(dayStart) && t.Date.Before(dayEnd)
	})
	return len(children) > 0, nil
}

func (r *TransactionRepository) SumExpenses(_ context.Context, query adapter.SpendingQuery) (decimal.Decimal, error) {
	if r.Err != nil {
		return decimal.Zero, r.Err
	}
	total := decimal.Zero
	for _, t := range r.collect(func(t entity.Transaction) bool {
		if query.ExcludeID != nil && t.ID == *query.ExcludeID {
			return false
		}
		return t.UserID == query.UserID && t.BudgetID != nil && *t.BudgetID == query.BudgetID &&
			t.CountsAgainstBudget() && !t.Date.Before(query.Start) && !t.Date.After(query.End)
	}) {
		total = total.Add(t.Amount)
	}
	return total, nil
}

func (r *TransactionRepository) GetTotals(_ context.Context, userID uuid.UUID) (*adapter.TransactionTotals, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	totals := &adapter.TransactionTotals{IncomeTotal: decimal.Zero, ExpenseTotal: decimal.Zero}
	for _, t := range r.collect(func(t entity.Transaction) bool { return t.UserID == userID && !t.IsDeleted }) {
		if t.IsExpense() {
			totals.ExpenseTotal = totals.ExpenseTotal.Add(t.Amount)
		} else {
			totals.IncomeTotal = totals.IncomeTotal.Add(t.Amount)
		}
	}
	return totals, nil
}

func (r *TransactionRepository) Update(_ context.Context, transaction *entity.Transaction) error {
	if r.Err != nil {
		return r.Err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.transactions[transaction.ID]; !ok {
		return domainerror.ErrTransactionNotFound
	}
	r.put(transaction)
	return nil
}

func (r *TransactionRepository) collect(match func(entity.Transaction) bool) []*entity.Transaction {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]*entity.Transaction, 0)
	for _, id := range r.order {
		t := r.transactions[id]
		if match(t) {
			result = append(result, cloneTransaction(t))
		}
	}
	return result
}

func transactionMatches(t entity.Transaction, f adapter.TransactionFilter) bool {
	if t.UserID != f.UserID || t.IsDeleted {
		return false
	}
	if f.StartDate != nil && t.Date.Before(*f.StartDate) {
		return false
	}
	if f.EndDate != nil && t.Date.After(*f.EndDate) {
		return false
	}
	if len(f.Categories) > 0 && !containsString(f.Categories, t.Category) {
		return false
	}
	if f.Type != nil && t.Type != *f.Type {
		return false
	}
	if f.MinAmount != nil && t.Amount.LessThan(*f.MinAmount) {
		return false
	}
	if f.MaxAmount != nil && t.Amount.GreaterThan(*f.MaxAmount) {
		return false
	}
	if f.Search != "" && !strings.Contains(strings.ToLower(t.Name), strings.ToLower(f.Search)) {
		return false
	}
	if f.BudgetID != nil && (t.BudgetID == nil || *t.BudgetID != *f.BudgetID) {
		return false
	}
	if f.PotID != nil && (t.PotID == nil || *t.PotID != *f.PotID) {
		return false
	}
	if f.Recurring != nil && t.Recurring != *f.Recurring {
		return false
	}
	if len(f.Tags) > 0 {
		found := false
		for _, tag := range t.Tags {
			if containsString(f.Tags, tag) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func transactionLess(a, b *entity.Transaction, column string) bool {
	switch column {
	case "amount":
		return a.Amount.LessThan(b.Amount)
	case "name":
		return a.Name < b.Name
	case "category":
		return a.Category < b.Category
	case "created_at":
		return a.CreatedAt.Before(b.CreatedAt)
	case "updated_at":
		return a.UpdatedAt.Before(b.UpdatedAt)
	default:
		return a.Date.Before(b.Date)
	}
}

func sortByDate(transactions []*entity.Transaction) {
	sort.SliceStable(transactions, func(i, j int) bool {
		return transactions[i].Date.Before(transactions[j].Date)
	})
}

func cloneTransaction(t entity.Transaction) *entity.Transaction {
	c := t
	c.Tags = append([]string{}, t.Tags...)
	if t.BudgetID != nil {
		id := *t.BudgetID
		c.BudgetID = &id
	}
	if t.PotID != nil {
		id := *t.PotID
		c.PotID = &id
	}
	if t.ParentTransactionID != nil {
		id := *t.ParentTransactionID
		c.ParentTransactionID = &id
	}
	if t.DeletedAt != nil {
		at := *t.DeletedAt
		c.DeletedAt = &at
	}
	return &c
}
