package service

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/primestaffing/recruiter-tracker/internal/apperror"
	"github.com/primestaffing/recruiter-tracker/internal/dto"
	"github.com/primestaffing/recruiter-tracker/internal/models"
	"github.com/primestaffing/recruiter-tracker/internal/repository"
)

var errInvalidCredentials = apperror.Unauthorized("Invalid email or password")

// SessionClaims are the JWT claims carried by a session token.
type SessionClaims struct {
	Role string `json:"role"`
	Name string `json:"name"`
	jwt.RegisteredClaims
}

// AuthService signs users in.
type AuthService interface {
	Login(ctx context.Context, req dto.LoginRequest) (dto.LoginResponse, error)
}

type authService struct {
	repo      repository.UserRepository
	validator *validator.Validate
	logger    zerolog.Logger
	secret    []byte
	ttl       time.Duration
	now       func() time.Time
}

// NewAuthService constructs the login service.
func NewAuthService(repo repository.UserRepository, validator *validator.Validate, logger zerolog.Logger, secret string, ttl time.Duration) AuthService {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &authService{
		repo:      repo,
		validator: validator,
		logger:    logger.With().Str("component", "auth_service").Logger(),
		secret:    []byte(secret),
		ttl:       ttl,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Login verifies credentials of an active, non-deleted account and issues a session token.
func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (dto.LoginResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.LoginResponse{}, validationError(err)
	}

	user, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.LoginResponse{}, errInvalidCredentials
		}
		return dto.LoginResponse{}, err
	}

	if user.Status == models.UserStatusInactive {
		s.logger.Info().Uint("user_id", user.ID).Msg("login rejected for inactive account")
		return dto.LoginResponse{}, errInvalidCredentials
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		return dto.LoginResponse{}, errInvalidCredentials
	}

	issuedAt := s.now()
	expiresAt := issuedAt.Add(s.ttl)
	token, err := SignSession(s.secret, user, issuedAt, expiresAt)
	if err != nil {
		return dto.LoginResponse{}, err
	}

	s.logger.Info().Uint("user_id", user.ID).Str("role", string(user.Role)).Msg("user signed in")

	return dto.LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      dto.NewUserResponse(user),
	}, nil
}

// SignSession issues an HS256 session token for user.
func SignSession(secret []byte, user models.User, issuedAt, expiresAt time.Time) (string, error) {
	claims := SessionClaims{
		Role: string(user.Role),
		Name: user.FullName(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(user.ID), 10),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}
