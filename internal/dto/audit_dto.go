package dto

import (
	"time"

	"github.com/primestaffing/recruiter-tracker/internal/models"
)

// AuditLogListRequest filters the audit trail.
type AuditLogListRequest struct {
	Action string
	Limit  int
}

// AuditActor identifies who performed an audited action.
type AuditActor struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

// AuditLogResponse serializes an audit entry.
type AuditLogResponse struct {
	ID         uint                   `json:"id"`
	ActorID    uint                   `json:"actorId"`
	Actor      *AuditActor            `json:"actor"`
	Action     string                 `json:"action"`
	EntityType string                 `json:"entityType"`
	EntityID   uint                   `json:"entityId"`
	Metadata   map[string]interface{} `json:"metadata"`
	CreatedAt  time.Time              `json:"createdAt"`
}

// NewAuditLogResponse converts an audit model into a DTO.
func NewAuditLogResponse(entry models.AuditLog) AuditLogResponse {
	metadata := map[string]interface{}{}
	for key, value := range entry.Metadata {
		metadata[key] = value
	}

	response := AuditLogResponse{
		ID:         entry.ID,
		ActorID:    entry.ActorID,
		Action:     string(entry.Action),
		EntityType: entry.EntityType,
		EntityID:   entry.EntityID,
		Metadata:   metadata,
		CreatedAt:  entry.CreatedAt,
	}
	if entry.Actor.ID != 0 {
		response.Actor = &AuditActor{
			FirstName: entry.Actor.FirstName,
			LastName:  entry.Actor.LastName,
			Email:     entry.Actor.Email,
		}
	}
	return response
}

// NewAuditLogResponseSlice converts a list of audit entries.
func NewAuditLogResponseSlice(entries []models.AuditLog) []AuditLogResponse {
	result := make([]AuditLogResponse, 0, len(entries))
	for _, entry := range entries {
		result = append(result, NewAuditLogResponse(entry))
	}
	return result
}
