package models

import (
	"time"

	"gorm.io/datatypes"
)

// AuditAction enumerates the mutations that leave an audit trail.
type AuditAction string

const (
	AuditCommissionCreated AuditAction = "COMMISSION_CREATED"
	AuditCommissionDeleted AuditAction = "COMMISSION_DELETED"
	AuditGoalCreated       AuditAction = "GOAL_CREATED"
	AuditUserStatusChanged AuditAction = "USER_STATUS_CHANGED"
)

// Valid reports whether a is one of the recorded actions.
func (a AuditAction) Valid() bool {
	switch a {
	case AuditCommissionCreated, AuditCommissionDeleted, AuditGoalCreated, AuditUserStatusChanged:
		return true
	}
	return false
}

// Entity types referenced by audit entries.
const (
	EntityUser       = "User"
	EntityGoal       = "Goal"
	EntityCommission = "Commission"
)

// AuditLog is an append-only trail entry. Rows are never updated or deleted.
type AuditLog struct {
	ID         uint              `gorm:"primaryKey" json:"id"`
	ActorID    uint              `gorm:"not null;index" json:"actorId"`
	Actor      User              `gorm:"foreignKey:ActorID" json:"-"`
	Action     AuditAction       `gorm:"size:32;not null;index" json:"action"`
	EntityType string            `gorm:"size:32;not null" json:"entityType"`
	EntityID   uint              `gorm:"not null" json:"entityId"`
	Metadata   datatypes.JSONMap `gorm:"type:json" json:"metadata"`
	CreatedAt  time.Time         `gorm:"index" json:"createdAt"`
}
