package service

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/primestaffing/recruiter-tracker/internal/access"
	"github.com/primestaffing/recruiter-tracker/internal/apperror"
	"github.com/primestaffing/recruiter-tracker/internal/dto"
	"github.com/primestaffing/recruiter-tracker/internal/mail"
	"github.com/primestaffing/recruiter-tracker/internal/models"
	"github.com/primestaffing/recruiter-tracker/internal/repository"
)

// PasswordHashCost is the bcrypt cost used for every stored password.
const PasswordHashCost = 12

var errEmailInUse = apperror.Conflict("Email already in use")

// UserService manages accounts from the admin panel.
type UserService interface {
	List(ctx context.Context, caller access.Caller) ([]dto.UserResponse, error)
	Get(ctx context.Context, caller access.Caller, id uint) (dto.UserResponse, error)
	Create(ctx context.Context, caller access.Caller, req dto.UserCreateRequest) (dto.UserResponse, error)
	Update(ctx context.Context, caller access.Caller, id uint, req dto.UserUpdateRequest) (dto.UserResponse, error)
	Delete(ctx context.Context, caller access.Caller, id uint) error
}

type userService struct {
	repo      repository.UserRepository
	audit     AuditRecorder
	mailer    Mailer
	validator *validator.Validate
	logger    zerolog.Logger
	loginURL  string
	hashCost  int
	dispatch  dispatcher
}

// NewUserService constructs the user management service.
func NewUserService(repo repository.UserRepository, audit AuditRecorder, mailer Mailer, validator *validator.Validate, logger zerolog.Logger, loginURL string) UserService {
	return &userService{
		repo:      repo,
		audit:     audit,
		mailer:    mailer,
		validator: validator,
		logger:    logger.With().Str("component", "user_service").Logger(),
		loginURL:  loginURL,
		hashCost:  PasswordHashCost,
		dispatch:  goDispatch,
	}
}

func (s *userService) List(ctx context.Context, caller access.Caller) ([]dto.UserResponse, error) {
	if err := access.Check(&caller, access.AdminOrAbove, 0); err != nil {
		return nil, err
	}

	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return dto.NewUserResponseSlice(users), nil
}

func (s *userService) Get(ctx context.Context, caller access.Caller, id uint) (dto.UserResponse, error) {
	if err := access.Check(&caller, access.SelfOrAdmin, id); err != nil {
		return dto.UserResponse{}, err
	}

	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return dto.UserResponse{}, notFoundOr(err, "User not found")
	}
	return dto.NewUserResponse(user), nil
}

func (s *userService) Create(ctx context.Context, caller access.Caller, req dto.UserCreateRequest) (dto.UserResponse, error) {
	if err := access.Check(&caller, access.AdminOrAbove, 0); err != nil {
		return dto.UserResponse{}, err
	}

	if err := s.validator.Struct(req); err != nil {
		return dto.UserResponse{}, validationError(err)
	}

	firstName := sanitizeText(req.FirstName)
	lastName := sanitizeText(req.LastName)
	if firstName == "" || lastName == "" {
		return dto.UserResponse{}, apperror.Validation("firstName and lastName are required")
	}

	taken, err := s.repo.EmailTaken(ctx, req.Email, 0)
	if err != nil {
		return dto.UserResponse{}, err
	}
	if taken {
		return dto.UserResponse{}, errEmailInUse
	}

	hash, err := hashPassword(req.Password, s.hashCost)
	if err != nil {
		return dto.UserResponse{}, err
	}

	role := models.RoleRecruiter
	if req.Role != "" {
		role = models.Role(req.Role)
	}

	user := models.User{
		Email:          req.Email,
		PasswordHash:   hash,
		FirstName:      firstName,
		LastName:       lastName,
		Role:           role,
		Status:         models.UserStatusActive,
		CommissionRate: req.CommissionRate,
	}

	if err := s.repo.Create(ctx, &user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return dto.UserResponse{}, errEmailInUse
		}
		return dto.UserResponse{}, err
	}

	s.logger.Info().Uint("user_id", user.ID).Str("email", maskEmail(user.Email)).Str("role", string(user.Role)).Uint("actor_id", caller.ID).Msg("user created")

	if s.mailer != nil {
		welcome := mail.Welcome{To: user.Email, FirstName: user.FirstName, Password: req.Password, LoginURL: s.loginURL}
		sendDetached(ctx, s.dispatch, s.logger, "welcome", func(ctx context.Context) error {
			return s.mailer.SendWelcome(ctx, welcome)
		})
	}

	return dto.NewUserResponse(user), nil
}

func (s *userService) Update(ctx context.Context, caller access.Caller, id uint, req dto.UserUpdateRequest) (dto.UserResponse, error) {
	if err := access.Check(&caller, access.AdminOrAbove, 0); err != nil {
		return dto.UserResponse{}, err
	}

	if err := s.validator.Struct(req); err != nil {
		return dto.UserResponse{}, validationError(err)
	}

	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return dto.UserResponse{}, notFoundOr(err, "User not found")
	}

	updates := map[string]interface{}{}

	if req.FirstName != nil {
		name := sanitizeText(*req.FirstName)
		if name == "" {
			return dto.UserResponse{}, apperror.Validation("firstName is required")
		}
		updates["first_name"] = name
	}

	if req.LastName != nil {
		name := sanitizeText(*req.LastName)
		if name == "" {
			return dto.UserResponse{}, apperror.Validation("lastName is required")
		}
		updates["last_name"] = name
	}

	if req.Email != nil {
		email := repository.NormalizeEmail(*req.Email)
		if email != existing.Email {
			taken, err := s.repo.EmailTaken(ctx, email, id)
			if err != nil {
				return dto.UserResponse{}, err
			}
			if taken {
				return dto.UserResponse{}, errEmailInUse
			}
			updates["email"] = email
		}
	}

	if req.Role != nil {
		updates["role"] = models.Role(*req.Role)
	}

	if req.CommissionRate.Set {
		if rate := req.CommissionRate.Value; rate != nil && (*rate < 0 || *rate > 100) {
			return dto.UserResponse{}, apperror.Validation("commissionRate must be between 0 and 100")
		}
		updates["commission_rate"] = req.CommissionRate.Value
	}

	newStatus := existing.Status
	if req.Status != nil {
		newStatus = models.UserStatus(*req.Status)
		updates["status"] = newStatus
	}

	updated, err := s.repo.Update(ctx, id, updates)
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return dto.UserResponse{}, errEmailInUse
		}
		return dto.UserResponse{}, notFoundOr(err, "User not found")
	}

	if newStatus != existing.Status {
		_, _ = s.audit.Record(ctx, AuditEntry{
			ActorID:    caller.ID,
			Action:     models.AuditUserStatusChanged,
			EntityType: models.EntityUser,
			EntityID:   id,
			Metadata: map[string]interface{}{
				"oldStatus": string(existing.Status),
				"newStatus": string(newStatus),
			},
		})
	}

	return dto.NewUserResponse(updated), nil
}

// Delete soft deletes an account and forces it INACTIVE. Callers cannot delete themselves.
func (s *userService) Delete(ctx context.Context, caller access.Caller, id uint) error {
	if err := access.Check(&caller, access.SuperAdminOnly, 0); err != nil {
		return err
	}

	if id == caller.ID {
		return apperror.Validation("Cannot delete your own account")
	}

	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return notFoundOr(err, "User not found")
	}

	if err := s.repo.SoftDelete(ctx, id); err != nil {
		return notFoundOr(err, "User not found")
	}

	if existing.Status != models.UserStatusInactive {
		_, _ = s.audit.Record(ctx, AuditEntry{
			ActorID:    caller.ID,
			Action:     models.AuditUserStatusChanged,
			EntityType: models.EntityUser,
			EntityID:   id,
			Metadata: map[string]interface{}{
				"oldStatus": string(existing.Status),
				"newStatus": string(models.UserStatusInactive),
				"reason":    "deleted",
			},
		})
	}

	s.logger.Info().Uint("user_id", id).Uint("actor_id", caller.ID).Msg("user deleted")
	return nil
}

func notFoundOr(err error, message string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperror.NotFound(message)
	}
	return err
}
