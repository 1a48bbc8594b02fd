// Package access decides whether a caller may reach a route or a resource.
package access

import (
	"github.com/primestaffing/recruiter-tracker/internal/apperror"
	"github.com/primestaffing/recruiter-tracker/internal/models"
)

// Caller is the identity resolved from a request's session.
type Caller struct {
	ID   uint
	Role models.Role
}

// IsAdmin reports whether the caller holds ADMIN or SUPERADMIN.
func (c Caller) IsAdmin() bool {
	return c.Role.IsAdmin()
}

// Requirement is the capability a route or resource demands.
type Requirement int

const (
	// Authenticated admits any caller with a session.
	Authenticated Requirement = iota
	// AdminOrAbove admits ADMIN and SUPERADMIN.
	AdminOrAbove
	// SuperAdminOnly admits SUPERADMIN.
	SuperAdminOnly
	// SelfOrAdmin admits the resource owner and any administrator.
	SelfOrAdmin
)

// Decision is the outcome of an authorization check.
type Decision int

const (
	Allowed Decision = iota
	Unauthenticated
	Forbidden
)

// Decide evaluates the gate rules in order: no session, role, ownership.
// ownerID is only consulted for SelfOrAdmin.
func Decide(caller *Caller, req Requirement, ownerID uint) Decision {
	if caller == nil {
		return Unauthenticated
	}

	switch req {
	case AdminOrAbove:
		if !caller.IsAdmin() {
			return Forbidden
		}
	case SuperAdminOnly:
		if caller.Role != models.RoleSuperAdmin {
			return Forbidden
		}
	case SelfOrAdmin:
		if caller.ID != ownerID && !caller.IsAdmin() {
			return Forbidden
		}
	}

	return Allowed
}

// Err converts a denial into the matching application error, or nil when allowed.
func (d Decision) Err() error {
	switch d {
	case Unauthenticated:
		return apperror.Unauthorized("Unauthorized")
	case Forbidden:
		return apperror.Forbidden("Forbidden")
	default:
		return nil
	}
}

// Check is Decide followed by Err.
func Check(caller *Caller, req Requirement, ownerID uint) error {
	return Decide(caller, req, ownerID).Err()
}
