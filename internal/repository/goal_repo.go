package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/primestaffing/recruiter-tracker/internal/models"
)

// ErrActiveGoalExists is returned when the recruiter already has a goal whose period has not ended.
var ErrActiveGoalExists = errors.New("active goal already exists")

// Window is an inclusive time range.
type Window struct {
	Start time.Time
	End   time.Time
}

// GoalRepository persists recruiter goals.
type GoalRepository interface {
	CreateIfNoActive(ctx context.Context, goal *models.Goal, now time.Time) error
	ListByRecruiter(ctx context.Context, recruiterID uint) ([]models.Goal, error)
	LatestByRecruiters(ctx context.Context, recruiterIDs []uint, window *Window) (map[uint]models.Goal, error)
}

type goalRepository struct {
	db *gorm.DB
}

// NewGoalRepository constructs the goal repository.
func NewGoalRepository(db *gorm.DB) GoalRepository {
	return &goalRepository{db: db}
}

// CreateIfNoActive serializes goal creation per recruiter by locking the owner's user row,
// then re-checks for a goal ending at or after now before inserting.
func (r *goalRepository) CreateIfNoActive(ctx context.Context, goal *models.Goal, now time.Time) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		owner := tx.Model(&models.User{}).Select("id").Where("id = ?", goal.RecruiterID)
		if tx.Dialector.Name() == "postgres" {
			owner = owner.Clauses(clause.Locking{Strength: "UPDATE"})
		}

		var user models.User
		if err := owner.Take(&user).Error; err != nil {
			return err
		}

		var active int64
		err := tx.Model(&models.Goal{}).
			Where("recruiter_id = ?", goal.RecruiterID).
			Where("period_end >= ?", now).
			Count(&active).Error
		if err != nil {
			return err
		}

		if active > 0 {
			return ErrActiveGoalExists
		}

		return tx.Omit(clause.Associations).Create(goal).Error
	})
}

func (r *goalRepository) ListByRecruiter(ctx context.Context, recruiterID uint) ([]models.Goal, error) {
	var goals []models.Goal
	err := r.db.WithContext(ctx).
		Where("recruiter_id = ?", recruiterID).
		Order("created_at DESC").
		Order("id DESC").
		Find(&goals).Error
	if err != nil {
		return nil, err
	}
	return goals, nil
}

// LatestByRecruiters returns the most recently created goal per recruiter. With a window, only goals
// lying entirely inside it are considered.
func (r *goalRepository) LatestByRecruiters(ctx context.Context, recruiterIDs []uint, window *Window) (map[uint]models.Goal, error) {
	result := make(map[uint]models.Goal, len(recruiterIDs))
	if len(recruiterIDs) == 0 {
		return result, nil
	}

	query := r.db.WithContext(ctx).Where("recruiter_id IN ?", recruiterIDs)
	if window != nil {
		query = query.Where("period_start >= ? AND period_end <= ?", window.Start, window.End)
	}

	var goals []models.Goal
	if err := query.Order("created_at DESC").Order("id DESC").Find(&goals).Error; err != nil {
		return nil, err
	}

	for _, goal := range goals {
		if _, seen := result[goal.RecruiterID]; !seen {
			result[goal.RecruiterID] = goal
		}
	}
	return result, nil
}
