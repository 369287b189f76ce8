package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/personal-finance/backend/internal/domain/entity"
)

// CreatePotRequest represents the request body for pot creation.
type CreatePotRequest struct {
	Name        string           `json:"name" binding:"required"`
	GoalAmount  *decimal.Decimal `json:"goal_amount" binding:"required"`
	TargetDate  *string          `json:"target_date,omitempty"`
	Description string           `json:"description,omitempty"`
	Category    string           `json:"category,omitempty"`
}

// UpdatePotRequest represents the request body for pot update.
type UpdatePotRequest struct {
	Name        *string          `json:"name,omitempty"`
	GoalAmount  *decimal.Decimal `json:"goal_amount,omitempty"`
	TargetDate  *string          `json:"target_date,omitempty"`
	Description *string          `json:"description,omitempty"`
	Category    *string          `json:"category,omitempty"`
}

// AdjustPotBalanceRequest represents the request body for a deposit or withdrawal.
type AdjustPotBalanceRequest struct {
	Amount    *decimal.Decimal `json:"amount" binding:"required"`
	Operation string           `json:"operation" binding:"required"`
}

// PotResponse represents a single pot in API responses.
type PotResponse struct {
	ID            string    `json:"id"`
	UserID        string    `json:"user_id"`
	Name          string    `json:"name"`
	GoalAmount    string    `json:"goal_amount"`
	CurrentAmount string    `json:"current_amount"`
	Progress      string    `json:"progress"`
	TargetDate    *string   `json:"target_date,omitempty"`
	Description   string    `json:"description,omitempty"`
	Category      string    `json:"category,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// PotListResponse represents the response for listing pots.
type PotListResponse struct {
	Pots []PotResponse `json:"pots"`
}

// ToPotResponse converts a domain Pot entity to a PotResponse DTO.
func ToPotResponse(p *entity.Pot) PotResponse {
	return PotResponse{
		ID:            p.ID.String(),
		UserID:        p.UserID.String(),
		Name:          p.Name,
		GoalAmount:    Money(p.GoalAmount),
		CurrentAmount: Money(p.CurrentAmount),
		Progress:      p.Progress().StringFixed(1),
		TargetDate:    formatOptionalDate(p.TargetDate),
		Description:   p.Description,
		Category:      p.Category,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

// ToPotResponses converts a slice of pots.
func ToPotResponses(pots []*entity.Pot) []PotResponse {
	responses := make([]PotResponse, len(pots))
	for i, p := range pots {
		responses[i] = ToPotResponse(p)
	}
	return responses
}
