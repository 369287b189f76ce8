package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/personal-finance/backend/internal/application/usecase/transaction"
	"github.com/personal-finance/backend/internal/domain/entity"
)

// CreateTransactionRequest represents the request body for transaction creation.
type CreateTransactionRequest struct {
	Name               string           `json:"name" binding:"required"`
	Amount             *decimal.Decimal `json:"amount" binding:"required"`
	Type               string           `json:"type" binding:"required"`
	Category           string           `json:"category" binding:"required"`
	Description        string           `json:"description,omitempty"`
	Date               *string          `json:"date,omitempty"`
	Recurring          bool             `json:"recurring,omitempty"`
	RecurringFrequency string           `json:"recurring_frequency,omitempty"`
	Avatar             string           `json:"avatar,omitempty"`
	BudgetID           *string          `json:"budget_id,omitempty"`
	PotID              *string          `json:"pot_id,omitempty"`
	Tags               []string         `json:"tags,omitempty"`
}

// UpdateTransactionRequest represents the request body for transaction update.
// An empty budget_id or pot_id unlinks the reference.
type UpdateTransactionRequest struct {
	Name               *string          `json:"name,omitempty"`
	Amount             *decimal.Decimal `json:"amount,omitempty"`
	Type               *string          `json:"type,omitempty"`
	Category           *string          `json:"category,omitempty"`
	Description        *string          `json:"description,omitempty"`
	Date               *string          `json:"date,omitempty"`
	Recurring          *bool            `json:"recurring,omitempty"`
	RecurringFrequency *string          `json:"recurring_frequency,omitempty"`
	Avatar             *string          `json:"avatar,omitempty"`
	BudgetID           *string          `json:"budget_id,omitempty"`
	PotID              *string          `json:"pot_id,omitempty"`
	Tags               *[]string        `json:"tags,omitempty"`
}

// TransactionResponse represents a single transaction in API responses.
type TransactionResponse struct {
	ID                  string     `json:"id"`
	UserID              string     `json:"user_id"`
	Name                string     `json:"name"`
	Amount              string     `json:"amount"`
	Type                string     `json:"type"`
	Category            string     `json:"category"`
	Description         string     `json:"description,omitempty"`
	Date                time.Time  `json:"date"`
	Recurring           bool       `json:"recurring"`
	RecurringFrequency  string     `json:"recurring_frequency,omitempty"`
	Avatar              string     `json:"avatar,omitempty"`
	BudgetID            *string    `json:"budget_id,omitempty"`
	PotID               *string    `json:"pot_id,omitempty"`
	ParentTransactionID *string    `json:"parent_transaction_id,omitempty"`
	Tags                []string   `json:"tags"`
	IsDeleted           bool       `json:"is_deleted"`
	DeletedAt           *time.Time `json:"deleted_at,omitempty"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
}

// TransactionListResponse represents the response for listing transactions.
type TransactionListResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	Pagination   PaginationResponse    `json:"pagination"`
}

// TransactionsResponse wraps a plain transaction list.
type TransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
}

// DailyTrendResponse represents one day of the spending trend.
type DailyTrendResponse struct {
	Date   string `json:"date"`
	Amount string `json:"amount"`
}

// CategoryShareResponse represents one category of the spending breakdown.
type CategoryShareResponse struct {
	Category   string `json:"category"`
	Amount     string `json:"amount"`
	Percentage int64  `json:"percentage"`
}

// AnalyticsResponse represents the spending analytics of a date range.
type AnalyticsResponse struct {
	StartDate  string                  `json:"start_date"`
	EndDate    string                  `json:"end_date"`
	Trends     []DailyTrendResponse    `json:"trends"`
	Categories []CategoryShareResponse `json:"categories"`
}

// RecurringBillsSummaryResponse represents the recurring bills summary.
type RecurringBillsSummaryResponse struct {
	TotalPaid     int                   `json:"total_paid"`
	TotalUpcoming int                   `json:"total_upcoming"`
	DueSoon       []TransactionResponse `json:"due_soon"`
}

// ToTransactionResponse converts a domain Transaction entity to a TransactionResponse DTO.
func ToTransactionResponse(t *entity.Transaction) TransactionResponse {
	tags := t.Tags
	if tags == nil {
		tags = []string{}
	}

	response := TransactionResponse{
		ID:          t.ID.String(),
		UserID:      t.UserID.String(),
		Name:        t.Name,
		Amount:      Money(t.Amount),
		Type:        string(t.Type),
		Category:    t.Category,
		Description: t.Description,
		Date:        t.Date,
		Recurring:   t.Recurring,
		Avatar:      t.Avatar,
		Tags:        tags,
		IsDeleted:   t.IsDeleted,
		DeletedAt:   t.DeletedAt,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
	if t.Recurring {
		response.RecurringFrequency = string(t.RecurringFrequency)
	}
	if t.BudgetID != nil {
		id := t.BudgetID.String()
		response.BudgetID = &id
	}
	if t.PotID != nil {
		id := t.PotID.String()
		response.PotID = &id
	}
	if t.ParentTransactionID != nil {
		id := t.ParentTransactionID.String()
		response.ParentTransactionID = &id
	}
	return response
}

// ToTransactionResponses converts a slice of transactions.
func ToTransactionResponses(transactions []*entity.Transaction) []TransactionResponse {
	responses := make([]TransactionResponse, len(transactions))
	for i, t := range transactions {
		responses[i] = ToTransactionResponse(t)
	}
	return responses
}

// ToTransactionListResponse converts a list output to a TransactionListResponse DTO.
func ToTransactionListResponse(output *transaction.ListTransactionsOutput) TransactionListResponse {
	return TransactionListResponse{
		Transactions: ToTransactionResponses(output.Transactions),
		Pagination: PaginationResponse{
			Page:       output.Pagination.Page,
			Limit:      output.Pagination.Limit,
			Total:      output.Pagination.Total,
			TotalPages: output.Pagination.TotalPages,
		},
	}
}

// ToAnalyticsResponse converts an analytics output to its DTO.
func ToAnalyticsResponse(output *transaction.GetAnalyticsOutput) AnalyticsResponse {
	trends := make([]DailyTrendResponse, len(output.Trends))
	for i, trend := range output.Trends {
		trends[i] = DailyTrendResponse{Date: trend.Date, Amount: Money(trend.Amount)}
	}
	categories := make([]CategoryShareResponse, len(output.Categories))
	for i, share := range output.Categories {
		categories[i] = CategoryShareResponse{
			Category:   share.Category,
			Amount:     Money(share.Amount),
			Percentage: share.Percentage,
		}
	}
	return AnalyticsResponse{
		StartDate:  output.Start.UTC().Format(DateLayout),
		EndDate:    output.End.UTC().Format(DateLayout),
		Trends:     trends,
		Categories: categories,
	}
}

// ToRecurringBillsSummaryResponse converts a recurring bills summary to its DTO.
func ToRecurringBillsSummaryResponse(output *transaction.GetRecurringBillsSummaryOutput) RecurringBillsSummaryResponse {
	return RecurringBillsSummaryResponse{
		TotalPaid:     output.TotalPaid,
		TotalUpcoming: output.TotalUpcoming,
		DueSoon:       ToTransactionResponses(output.DueSoon),
	}
}
