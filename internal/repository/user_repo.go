package repository

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/primestaffing/recruiter-tracker/internal/models"
)

// RecruiterFilter narrows the recruiters considered by the leaderboard.
type RecruiterFilter struct {
	ActiveOnly bool
}

// UserRepository persists accounts.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (models.User, error)
	FindByEmail(ctx context.Context, email string) (models.User, error)
	EmailTaken(ctx context.Context, email string, excludeID uint) (bool, error)
	List(ctx context.Context) ([]models.User, error)
	ListRecruiters(ctx context.Context, filter RecruiterFilter) ([]models.User, error)
	Update(ctx context.Context, id uint, updates map[string]interface{}) (models.User, error)
	SoftDelete(ctx context.Context, id uint) error
	UpdatePassword(ctx context.Context, id uint, passwordHash string) error
	SetResetToken(ctx context.Context, id uint, tokenHash string, expiry time.Time) error
	FindByResetToken(ctx context.Context, tokenHash string, now time.Time) (models.User, error)
	RedeemResetToken(ctx context.Context, id uint, tokenHash, passwordHash string) (bool, error)
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository constructs the user repository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// NormalizeEmail is the canonical stored form of an address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	user.Email = NormalizeEmail(user.Email)
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) GetByID(ctx context.Context, id uint) (models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("email = ?", NormalizeEmail(email)).First(&user).Error; err != nil {
		return models.User{}, err
	}
	return user, nil
}

// EmailTaken also sees soft-deleted accounts since the unique index still covers them.
func (r *userRepository) EmailTaken(ctx context.Context, email string, excludeID uint) (bool, error) {
	query := r.db.WithContext(ctx).Unscoped().Model(&models.User{}).
		Where("email = ?", NormalizeEmail(email))
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *userRepository) List(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := r.db.WithContext(ctx).Order("created_at DESC").Order("id DESC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userRepository) ListRecruiters(ctx context.Context, filter RecruiterFilter) ([]models.User, error) {
	query := r.db.WithContext(ctx).Model(&models.User{}).Where("role = ?", models.RoleRecruiter)
	if filter.ActiveOnly {
		query = query.Where("status = ?", models.UserStatusActive)
	}

	var users []models.User
	if err := query.Order("id ASC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userRepository) Update(ctx context.Context, id uint, updates map[string]interface{}) (models.User, error) {
	if email, ok := updates["email"].(string); ok {
		updates["email"] = NormalizeEmail(email)
	}

	if len(updates) > 0 {
		err := r.db.WithContext(ctx).Model(&models.User{}).
			Where("id = ?", id).
			Updates(updates).Error
		if err != nil {
			return models.User{}, err
		}
	}

	return r.GetByID(ctx, id)
}

func (r *userRepository) SoftDelete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		update := tx.Model(&models.User{}).
			Where("id = ?", id).
			Update("status", models.UserStatusInactive)
		if update.Error != nil {
			return update.Error
		}

		if update.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		return tx.Delete(&models.User{}, id).Error
	})
}

func (r *userRepository) UpdatePassword(ctx context.Context, id uint, passwordHash string) error {
	update := r.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", id).
		Update("password_hash", passwordHash)
	if update.Error != nil {
		return update.Error
	}
	if update.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *userRepository) SetResetToken(ctx context.Context, id uint, tokenHash string, expiry time.Time) error {
	return r.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"reset_token_hash":   tokenHash,
			"reset_token_expiry": expiry,
		}).Error
}

func (r *userRepository) FindByResetToken(ctx context.Context, tokenHash string, now time.Time) (models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).
		Where("reset_token_hash = ?", tokenHash).
		Where("reset_token_expiry >= ?", now).
		First(&user).Error
	if err != nil {
		return models.User{}, err
	}
	return user, nil
}

// RedeemResetToken swaps the password and clears the token only while the token is still in place.
// It reports false when another request redeemed it first.
func (r *userRepository) RedeemResetToken(ctx context.Context, id uint, tokenHash, passwordHash string) (bool, error) {
	update := r.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", id).
		Where("reset_token_hash = ?", tokenHash).
		Updates(map[string]interface{}{
			"password_hash":      passwordHash,
			"reset_token_hash":   nil,
			"reset_token_expiry": nil,
		})
	if update.Error != nil {
		return false, update.Error
	}
	return update.RowsAffected == 1, nil
}
