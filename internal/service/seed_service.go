package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/primestaffing/recruiter-tracker/internal/models"
	"github.com/primestaffing/recruiter-tracker/internal/repository"
)

// SeedService bootstraps the first administrator.
type SeedService interface {
	EnsureAdmin(ctx context.Context, email, password string) (models.User, bool, error)
}

type seedService struct {
	repo     repository.UserRepository
	logger   zerolog.Logger
	hashCost int
}

// NewSeedService constructs the seed service.
func NewSeedService(repo repository.UserRepository, logger zerolog.Logger) SeedService {
	return &seedService{
		repo:     repo,
		logger:   logger.With().Str("component", "seed_service").Logger(),
		hashCost: PasswordHashCost,
	}
}

// EnsureAdmin creates an ACTIVE admin with the given credentials unless the email already exists.
// An existing account is left untouched. The boolean reports whether a user was created.
func (s *seedService) EnsureAdmin(ctx context.Context, email, password string) (models.User, bool, error) {
	existing, err := s.repo.FindByEmail(ctx, email)
	if err == nil {
		s.logger.Info().Str("email", maskEmail(existing.Email)).Msg("admin already present")
		return existing, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return models.User{}, false, err
	}

	hash, err := hashPassword(password, s.hashCost)
	if err != nil {
		return models.User{}, false, err
	}

	admin := models.User{
		Email:        email,
		PasswordHash: hash,
		FirstName:    "Admin",
		LastName:     "User",
		Role:         models.RoleAdmin,
		Status:       models.UserStatusActive,
	}
	if err := s.repo.Create(ctx, &admin); err != nil {
		return models.User{}, false, err
	}

	s.logger.Info().Uint("user_id", admin.ID).Str("email", maskEmail(admin.Email)).Msg("admin seeded")
	return admin, true, nil
}
