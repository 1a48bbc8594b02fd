package models

import (
	"time"

	"gorm.io/gorm"
)

// Commission records an earnings event for a recruiter, logged by an administrator.
type Commission struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	RecruiterID uint           `gorm:"not null;index" json:"recruiterId"`
	Recruiter   User           `gorm:"foreignKey:RecruiterID" json:"-"`
	LoggedByID  uint           `gorm:"not null" json:"loggedById"`
	LoggedBy    User           `gorm:"foreignKey:LoggedByID" json:"-"`
	Amount      float64        `gorm:"type:numeric(12,2);not null" json:"amount"`
	LoggedDate  time.Time      `gorm:"not null;index" json:"loggedDate"`
	Notes       *string        `gorm:"type:text" json:"notes"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// State reports the soft-delete lifecycle of the commission.
func (c Commission) State() RecordState {
	return stateOf(c.DeletedAt)
}
