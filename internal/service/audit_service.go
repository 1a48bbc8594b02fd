package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
	"gorm.io/datatypes"

	"github.com/primestaffing/recruiter-tracker/internal/apperror"
	"github.com/primestaffing/recruiter-tracker/internal/dto"
	"github.com/primestaffing/recruiter-tracker/internal/models"
	"github.com/primestaffing/recruiter-tracker/internal/observability"
	"github.com/primestaffing/recruiter-tracker/internal/repository"
)

const (
	defaultAuditLimit = 100
	maxAuditLimit     = 500
)

// AuditEntry captures the details required to append an audit record.
type AuditEntry struct {
	ActorID    uint
	Action     models.AuditAction
	EntityType string
	EntityID   uint
	Metadata   map[string]interface{}
}

// AuditRecorder appends entries to the audit trail.
type AuditRecorder interface {
	Record(ctx context.Context, entry AuditEntry) (models.AuditLog, error)
}

// AuditPublisher fans recorded entries out to other consumers.
type AuditPublisher interface {
	Publish(ctx context.Context, entry models.AuditLog) error
}

// AuditService records and lists audit entries.
type AuditService interface {
	AuditRecorder
	List(ctx context.Context, req dto.AuditLogListRequest) ([]dto.AuditLogResponse, error)
}

type auditService struct {
	repo      repository.AuditLogRepository
	publisher AuditPublisher
	logger    zerolog.Logger
}

// NewAuditService constructs the audit recorder. publisher may be nil.
func NewAuditService(repo repository.AuditLogRepository, publisher AuditPublisher, logger zerolog.Logger) AuditService {
	return &auditService{
		repo:      repo,
		publisher: publisher,
		logger:    logger.With().Str("component", "audit_service").Logger(),
	}
}

// Record appends the entry. Callers invoke it after their own write has committed and treat failure as
// non-fatal; the error is logged here.
func (s *auditService) Record(ctx context.Context, entry AuditEntry) (models.AuditLog, error) {
	model := models.AuditLog{
		ActorID:    entry.ActorID,
		Action:     entry.Action,
		EntityType: entry.EntityType,
		EntityID:   entry.EntityID,
		Metadata:   sanitizeMetadata(entry.Metadata),
	}

	if err := s.repo.Create(ctx, &model); err != nil {
		observability.AuditEntries().WithLabelValues(string(entry.Action), "failed").Inc()
		s.logger.Error().Err(err).
			Str("action", string(entry.Action)).
			Str("entity_type", entry.EntityType).
			Uint("entity_id", entry.EntityID).
			Msg("failed to persist audit entry")
		return models.AuditLog{}, err
	}
	observability.AuditEntries().WithLabelValues(string(entry.Action), "recorded").Inc()

	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, model); err != nil {
			s.logger.Warn().Err(err).Uint("audit_id", model.ID).Msg("failed to publish audit entry")
		}
	}

	return model, nil
}

func (s *auditService) List(ctx context.Context, req dto.AuditLogListRequest) ([]dto.AuditLogResponse, error) {
	filter := repository.AuditLogFilter{Limit: defaultAuditLimit}

	if action := strings.TrimSpace(req.Action); action != "" {
		parsed := models.AuditAction(strings.ToUpper(action))
		if !parsed.Valid() {
			return nil, apperror.Validation("action must be one of: COMMISSION_CREATED, COMMISSION_DELETED, GOAL_CREATED, USER_STATUS_CHANGED")
		}
		filter.Action = parsed
	}

	if req.Limit > 0 {
		filter.Limit = req.Limit
	}
	if filter.Limit > maxAuditLimit {
		filter.Limit = maxAuditLimit
	}

	entries, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	return dto.NewAuditLogResponseSlice(entries), nil
}

// sanitizeMetadata keeps secrets out of the trail.
func sanitizeMetadata(metadata map[string]interface{}) datatypes.JSONMap {
	sanitized := datatypes.JSONMap{}
	for key, value := range metadata {
		lower := strings.ToLower(key)
		if strings.Contains(lower, "password") || strings.Contains(lower, "token") {
			sanitized[key] = "***"
			continue
		}
		sanitized[key] = value
	}
	return sanitized
}
