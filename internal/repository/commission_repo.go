package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/primestaffing/recruiter-tracker/internal/models"
)

// CommissionFilter narrows ledger queries. Bounds are inclusive.
type CommissionFilter struct {
	RecruiterIDs []uint
	From         *time.Time
	To           *time.Time
}

// CommissionRepository persists the commission ledger.
type CommissionRepository interface {
	Create(ctx context.Context, commission *models.Commission) error
	GetByID(ctx context.Context, id uint) (models.Commission, error)
	List(ctx context.Context, filter CommissionFilter) ([]models.Commission, error)
	SoftDelete(ctx context.Context, id uint) error
}

type commissionRepository struct {
	db *gorm.DB
}

// NewCommissionRepository constructs the commission repository.
func NewCommissionRepository(db *gorm.DB) CommissionRepository {
	return &commissionRepository{db: db}
}

func (r *commissionRepository) Create(ctx context.Context, commission *models.Commission) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(commission).Error
}

// GetByID loads a live commission with its recruiter, even if the recruiter was removed since.
func (r *commissionRepository) GetByID(ctx context.Context, id uint) (models.Commission, error) {
	var commission models.Commission
	err := r.db.WithContext(ctx).
		Preload("Recruiter", func(db *gorm.DB) *gorm.DB { return db.Unscoped() }).
		Where("id = ?", id).
		First(&commission).Error
	if err != nil {
		return models.Commission{}, err
	}
	return commission, nil
}

// List returns live commissions, newest logged date first, with the logging admin preloaded.
func (r *commissionRepository) List(ctx context.Context, filter CommissionFilter) ([]models.Commission, error) {
	query := r.db.WithContext(ctx).
		Preload("LoggedBy", func(db *gorm.DB) *gorm.DB { return db.Unscoped() })

	if len(filter.RecruiterIDs) == 1 {
		query = query.Where("recruiter_id = ?", filter.RecruiterIDs[0])
	} else if len(filter.RecruiterIDs) > 1 {
		query = query.Where("recruiter_id IN ?", filter.RecruiterIDs)
	}

	if filter.From != nil {
		query = query.Where("logged_date >= ?", *filter.From)
	}

	if filter.To != nil {
		query = query.Where("logged_date <= ?", *filter.To)
	}

	var commissions []models.Commission
	if err := query.Order("logged_date DESC").Order("id DESC").Find(&commissions).Error; err != nil {
		return nil, err
	}
	return commissions, nil
}

func (r *commissionRepository) SoftDelete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Commission{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
