package models

import (
	"time"

	"gorm.io/gorm"
)

// RecordState is the soft-delete lifecycle of a row: either active or deleted at a point in time.
// The zero value is active.
type RecordState struct {
	deletedAt time.Time
	deleted   bool
}

// Active is the state of a row that has not been soft deleted.
func Active() RecordState {
	return RecordState{}
}

// Deleted is the state of a row soft deleted at the given time.
func Deleted(at time.Time) RecordState {
	return RecordState{deletedAt: at, deleted: true}
}

// Active reports whether the row is live.
func (s RecordState) Active() bool {
	return !s.deleted
}

// DeletedAt returns the deletion time and true when the row has been soft deleted.
func (s RecordState) DeletedAt() (time.Time, bool) {
	return s.deletedAt, s.deleted
}

func stateOf(value gorm.DeletedAt) RecordState {
	if value.Valid {
		return Deleted(value.Time)
	}
	return Active()
}
