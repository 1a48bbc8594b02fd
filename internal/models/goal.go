package models

import (
	"time"

	"gorm.io/gorm"
)

// Goal is an earnings target a recruiter sets for a period.
type Goal struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	RecruiterID uint           `gorm:"not null;index" json:"recruiterId"`
	Recruiter   User           `gorm:"foreignKey:RecruiterID" json:"-"`
	Amount      float64        `gorm:"type:numeric(12,2);not null" json:"amount"`
	PeriodStart time.Time      `gorm:"not null" json:"periodStart"`
	PeriodEnd   time.Time      `gorm:"not null;index" json:"periodEnd"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// BlocksNewGoal reports whether the goal still counts as active at the given instant.
func (g Goal) BlocksNewGoal(now time.Time) bool {
	return g.State().Active() && !g.PeriodEnd.Before(now)
}

// State reports the soft-delete lifecycle of the goal.
func (g Goal) State() RecordState {
	return stateOf(g.DeletedAt)
}
