package models

import (
	"time"

	"gorm.io/gorm"
)

// Role identifies what a user may do in the tracker.
type Role string

const (
	RoleRecruiter  Role = "RECRUITER"
	RoleAdmin      Role = "ADMIN"
	RoleSuperAdmin Role = "SUPERADMIN"
)

// IsAdmin reports whether the role carries administrative rights.
func (r Role) IsAdmin() bool {
	return r == RoleAdmin || r == RoleSuperAdmin
}

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	switch r {
	case RoleRecruiter, RoleAdmin, RoleSuperAdmin:
		return true
	}
	return false
}

// UserStatus captures whether an account may sign in.
type UserStatus string

const (
	UserStatusActive   UserStatus = "ACTIVE"
	UserStatusInactive UserStatus = "INACTIVE"
)

// User is an account of a recruiter or an administrator.
type User struct {
	ID               uint           `gorm:"primaryKey" json:"id"`
	Email            string         `gorm:"size:255;uniqueIndex;not null" json:"email"`
	PasswordHash     string         `gorm:"size:255;not null" json:"-"`
	FirstName        string         `gorm:"size:120;not null" json:"firstName"`
	LastName         string         `gorm:"size:120;not null" json:"lastName"`
	Role             Role           `gorm:"size:16;not null;default:RECRUITER;index" json:"role"`
	Status           UserStatus     `gorm:"size:16;not null;default:ACTIVE" json:"status"`
	CommissionRate   *float64       `gorm:"type:numeric(5,2)" json:"commissionRate"`
	ResetTokenHash   *string        `gorm:"size:64;index" json:"-"`
	ResetTokenExpiry *time.Time     `json:"-"`
	CreatedAt        time.Time      `json:"createdAt"`
	UpdatedAt        time.Time      `json:"updatedAt"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`
}

// FullName joins the first and last name the way it is shown on leaderboards and audit entries.
func (u User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// Rate returns the commission rate percentage, treating an unset rate as zero.
func (u User) Rate() float64 {
	if u.CommissionRate == nil {
		return 0
	}
	return *u.CommissionRate
}

// State reports the soft-delete lifecycle of the user.
func (u User) State() RecordState {
	return stateOf(u.DeletedAt)
}
