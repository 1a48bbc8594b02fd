package dto

import (
	"time"

	"github.com/primestaffing/recruiter-tracker/internal/models"
)

// CommissionCreateRequest captures a commission logged by an administrator.
type CommissionCreateRequest struct {
	RecruiterID uint    `json:"recruiterId" validate:"required"`
	Amount      float64 `json:"amount" validate:"gt=0"`
	LoggedDate  string  `json:"loggedDate" validate:"required"`
	Notes       *string `json:"notes" validate:"omitempty,max=2000"`
}

// CommissionListRequest filters the commission ledger. A nil RecruiterID means the caller.
type CommissionListRequest struct {
	RecruiterID *uint
	From        string
	To          string
}

// PersonName is the display name of a related user.
type PersonName struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// CommissionResponse serializes a ledger entry.
type CommissionResponse struct {
	ID          uint        `json:"id"`
	RecruiterID uint        `json:"recruiterId"`
	LoggedByID  uint        `json:"loggedById"`
	LoggedBy    *PersonName `json:"loggedBy,omitempty"`
	Amount      float64     `json:"amount"`
	LoggedDate  time.Time   `json:"loggedDate"`
	Notes       *string     `json:"notes"`
	CreatedAt   time.Time   `json:"createdAt"`
}

// NewCommissionResponse converts a commission model into a DTO.
func NewCommissionResponse(commission models.Commission) CommissionResponse {
	response := CommissionResponse{
		ID:          commission.ID,
		RecruiterID: commission.RecruiterID,
		LoggedByID:  commission.LoggedByID,
		Amount:      commission.Amount,
		LoggedDate:  commission.LoggedDate,
		Notes:       commission.Notes,
		CreatedAt:   commission.CreatedAt,
	}
	if commission.LoggedBy.ID != 0 {
		response.LoggedBy = &PersonName{
			FirstName: commission.LoggedBy.FirstName,
			LastName:  commission.LoggedBy.LastName,
		}
	}
	return response
}

// NewCommissionResponseSlice converts a list of commissions.
func NewCommissionResponseSlice(commissions []models.Commission) []CommissionResponse {
	result := make([]CommissionResponse, 0, len(commissions))
	for _, commission := range commissions {
		result = append(result, NewCommissionResponse(commission))
	}
	return result
}
