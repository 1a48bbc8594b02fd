package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/primestaffing/recruiter-tracker/internal/models"
)

// AuditLogFilter narrows audit trail queries.
type AuditLogFilter struct {
	Action models.AuditAction
	Limit  int
}

// AuditLogRepository appends to and reads the audit trail.
type AuditLogRepository interface {
	Create(ctx context.Context, entry *models.AuditLog) error
	List(ctx context.Context, filter AuditLogFilter) ([]models.AuditLog, error)
}

type auditLogRepository struct {
	db *gorm.DB
}

// NewAuditLogRepository constructs the audit log repository.
func NewAuditLogRepository(db *gorm.DB) AuditLogRepository {
	return &auditLogRepository{db: db}
}

func (r *auditLogRepository) Create(ctx context.Context, entry *models.AuditLog) error {
	return r.db.WithContext(ctx).Omit("Actor").Create(entry).Error
}

func (r *auditLogRepository) List(ctx context.Context, filter AuditLogFilter) ([]models.AuditLog, error) {
	query := r.db.WithContext(ctx).Model(&models.AuditLog{}).
		Preload("Actor", func(db *gorm.DB) *gorm.DB { return db.Unscoped() })

	if filter.Action != "" {
		query = query.Where("action = ?", filter.Action)
	}

	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	var entries []models.AuditLog
	if err := query.Order("created_at DESC").Order("id DESC").Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}
