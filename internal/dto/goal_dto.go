package dto

import (
	"time"

	"github.com/primestaffing/recruiter-tracker/internal/models"
)

// GoalCreateRequest captures a new goal for the calling recruiter.
type GoalCreateRequest struct {
	Amount      float64 `json:"amount" validate:"gt=0"`
	PeriodStart string  `json:"periodStart" validate:"required"`
	PeriodEnd   string  `json:"periodEnd" validate:"required"`
}

// GoalResponse serializes a goal.
type GoalResponse struct {
	ID          uint      `json:"id"`
	RecruiterID uint      `json:"recruiterId"`
	Amount      float64   `json:"amount"`
	PeriodStart time.Time `json:"periodStart"`
	PeriodEnd   time.Time `json:"periodEnd"`
	CreatedAt   time.Time `json:"createdAt"`
}

// NewGoalResponse converts a goal model into a DTO.
func NewGoalResponse(goal models.Goal) GoalResponse {
	return GoalResponse{
		ID:          goal.ID,
		RecruiterID: goal.RecruiterID,
		Amount:      goal.Amount,
		PeriodStart: goal.PeriodStart,
		PeriodEnd:   goal.PeriodEnd,
		CreatedAt:   goal.CreatedAt,
	}
}

// NewGoalResponseSlice converts a list of goals.
func NewGoalResponseSlice(goals []models.Goal) []GoalResponse {
	result := make([]GoalResponse, 0, len(goals))
	for _, goal := range goals {
		result = append(result, NewGoalResponse(goal))
	}
	return result
}
